package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Toggle is a labelled check box. State is read from the caller on every
// draw so the widget never holds a stale copy.
type Toggle struct {
	Label    string
	X, Y     int
	Size     int
	IsOn     func() bool
	OnToggle func()
}

func NewToggle(label string, x, y int, isOn func() bool, onToggle func()) *Toggle {
	return &Toggle{Label: label, X: x, Y: y, Size: 14, IsOn: isOn, OnToggle: onToggle}
}

func (t *Toggle) Draw(screen *ebiten.Image) {
	x, y, s := float32(t.X), float32(t.Y), float32(t.Size)
	vector.StrokeRect(screen, x, y, s, s, 1, color.White, false)
	if t.IsOn != nil && t.IsOn() {
		vector.DrawFilledRect(screen, x+3, y+3, s-6, s-6, color.RGBA{0, 200, 255, 255}, false)
	}
	ebitenutil.DebugPrintAt(screen, t.Label, t.X+t.Size+6, t.Y-1)
}

// HandleClick flips the toggle if the click hits the box or its label.
func (t *Toggle) HandleClick(mouseX, mouseY int) bool {
	labelWidth := 6 * len(t.Label)
	hit := mouseX >= t.X && mouseX <= t.X+t.Size+6+labelWidth &&
		mouseY >= t.Y && mouseY <= t.Y+t.Size
	if hit && t.OnToggle != nil {
		t.OnToggle()
	}
	return hit
}
