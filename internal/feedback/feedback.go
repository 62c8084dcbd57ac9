package feedback

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/gommon/log"
)

const maxErrorBody = 512

var (
	ErrTransmission = errors.New("feedback: transmission failed")
	ErrEmptyMessage = errors.New("feedback: empty message")
	ErrNoWebhook    = errors.New("feedback: no webhook configured")
)

// StatusError is returned when the webhook answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("feedback: webhook returned %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrTransmission
}

type Message struct {
	Text     string
	Image    []byte // PNG, optional
	Filename string
}

// Client posts feedback to a chat webhook as multipart/form-data: the text in
// a "content" field and the image, if any, in a "file" part.
type Client struct {
	URL        string
	HTTPClient *http.Client
}

func NewClient(url string) *Client {
	return &Client{URL: url, HTTPClient: http.DefaultClient}
}

func (c *Client) Send(ctx context.Context, msg Message) error {
	if c.URL == "" {
		return ErrNoWebhook
	}
	if strings.TrimSpace(msg.Text) == "" && len(msg.Image) == 0 {
		return ErrEmptyMessage
	}

	body, contentType, err := encode(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, body)
	if err != nil {
		return fmt.Errorf("feedback: build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransmission, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.Warnf("Feedback rejected by webhook: %d", resp.StatusCode)
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	log.Infof("Feedback sent (%d chars, image %d bytes)", len(msg.Text), len(msg.Image))
	return nil
}

func encode(msg Message) (io.Reader, string, error) {
	buf := new(bytes.Buffer)
	mw := multipart.NewWriter(buf)

	if msg.Text != "" {
		if err := mw.WriteField("content", msg.Text); err != nil {
			return nil, "", fmt.Errorf("feedback: write content: %w", err)
		}
	}

	if len(msg.Image) > 0 {
		name := msg.Filename
		if name == "" {
			name = "image.png"
		}
		fw, err := mw.CreateFormFile("file", name)
		if err != nil {
			return nil, "", fmt.Errorf("feedback: create file part: %w", err)
		}
		if _, err := fw.Write(msg.Image); err != nil {
			return nil, "", fmt.Errorf("feedback: write file part: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("feedback: close multipart: %w", err)
	}
	return buf, mw.FormDataContentType(), nil
}
