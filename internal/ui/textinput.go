package ui

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type TextInput struct {
	Label    string
	Text     string
	IsActive bool
	Numeric  bool
	X, Y     int
	Width    int
	Height   int
	OnSubmit func(string)
	// OnStep is called with +1/-1 for Up/Down while active.
	OnStep func(int)
	// Placeholder is shown while inactive, usually the committed value.
	Placeholder func() string
}

func NewTextInput(label string, x, y, width, height int, onSubmit func(string)) *TextInput {
	return &TextInput{
		Label:    label,
		Text:     "",
		IsActive: false,
		X:        x,
		Y:        y,
		Width:    width,
		Height:   height,
		OnSubmit: onSubmit,
	}
}

func NewNumberInput(label string, x, y, width, height int, onSubmit func(string), onStep func(int), value func() string) *TextInput {
	ti := NewTextInput(label, x, y, width, height, onSubmit)
	ti.Numeric = true
	ti.OnStep = onStep
	ti.Placeholder = value
	return ti
}

func (ti *TextInput) Activate() {
	ti.IsActive = true
	if ti.Placeholder != nil {
		ti.Text = ti.Placeholder()
	}
}

func (ti *TextInput) Deactivate() {
	ti.IsActive = false
	ti.Text = ""
}

func (ti *TextInput) Update() {
	if !ti.IsActive {
		return
	}

	for _, r := range ebiten.AppendInputChars(nil) {
		if ti.Numeric && !strings.ContainsRune("0123456789.-+eE", r) {
			continue
		}
		ti.Text += string(r)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		if len(ti.Text) > 0 {
			ti.Text = ti.Text[:len(ti.Text)-1]
		}
	}

	if ti.OnStep != nil {
		if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
			ti.OnStep(1)
			ti.Activate()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
			ti.OnStep(-1)
			ti.Activate()
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		if ti.OnSubmit != nil {
			ti.OnSubmit(strings.TrimSpace(ti.Text))
		}
		ti.Deactivate()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		ti.Deactivate()
	}
}

func (ti *TextInput) Draw(screen *ebiten.Image) {
	if ti.Label != "" {
		ebitenutil.DebugPrintAt(screen, ti.Label, ti.X, ti.Y-16)
	}

	bgColor := color.RGBA{50, 50, 50, 255}
	if ti.IsActive {
		bgColor = color.RGBA{80, 80, 80, 255}
	}
	x, y, width, height := float32(ti.X), float32(ti.Y), float32(ti.Width), float32(ti.Height)
	vector.DrawFilledRect(screen, x, y, width, height, bgColor, false)

	// Border
	vector.DrawFilledRect(screen, x, y, width, 1, color.White, false)
	vector.DrawFilledRect(screen, x, y+height-1, width, 1, color.White, false)
	vector.DrawFilledRect(screen, x, y, 1, height, color.White, false)
	vector.DrawFilledRect(screen, x+width-1, y, 1, height, color.White, false)

	displayTxt := ti.Text
	if ti.IsActive {
		displayTxt += "_" // Cursor
	} else if ti.Placeholder != nil {
		displayTxt = ti.Placeholder()
	}

	ebitenutil.DebugPrintAt(screen, displayTxt, ti.X+5, ti.Y+(ti.Height-16)/2)
}

// IsClicked checks if the mouse click is within the text input bounds
func (ti *TextInput) IsClicked(mouseX, mouseY int) bool {
	return mouseX >= ti.X && mouseX <= ti.X+ti.Width &&
		mouseY >= ti.Y && mouseY <= ti.Y+ti.Height
}
