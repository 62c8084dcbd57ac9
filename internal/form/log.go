package form

import "time"

type Message struct {
	Timestamp time.Time
	Text      string
	IsError   bool
}

func (f *Form) AddMessage(text string, isError bool) {
	msg := Message{
		Timestamp: time.Now(),
		Text:      text,
		IsError:   isError,
	}
	f.Log = append(f.Log, msg)

	if len(f.Log) > f.maxLogSize {
		f.Log = f.Log[len(f.Log)-f.maxLogSize:]
	}
}
