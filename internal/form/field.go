package form

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type FieldID int

const (
	LauncherX FieldID = iota
	LauncherY
	LauncherHeight
	Angle
	TargetX
	TargetY
	TargetHeight
)

var FieldLabelMap = map[FieldID]string{
	LauncherX:      "Launcher X [m]",
	LauncherY:      "Launcher Y [m]",
	LauncherHeight: "Launcher height [mm]",
	Angle:          "Launch angle [deg]",
	TargetX:        "Target X [m]",
	TargetY:        "Target Y [m]",
	TargetHeight:   "Target height [m]",
}

var ErrInvalidValue = errors.New("invalid value")

// Field is a bounded numeric input.
type Field struct {
	Value   float64
	Default float64
	Min     float64
	Max     float64
	Step    float64
}

func newField(def, min, max, step float64) *Field {
	return &Field{Value: def, Default: def, Min: min, Max: max, Step: step}
}

// Set parses text and stores it clamped to [Min, Max]. It reports whether
// the value had to be clamped.
func (f *Field) Set(text string) (bool, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) {
		return false, fmt.Errorf("%w: %q", ErrInvalidValue, text)
	}
	clamped := f.clamp(v)
	f.Value = clamped
	return clamped != v, nil
}

// Nudge moves the value by n steps, staying within bounds.
func (f *Field) Nudge(n int) {
	f.Value = f.clamp(f.Value + float64(n)*f.Step)
}

func (f *Field) Reset() {
	f.Value = f.Default
}

func (f *Field) Text() string {
	return strconv.FormatFloat(f.Value, 'f', -1, 64)
}

func (f *Field) clamp(v float64) float64 {
	return math.Max(f.Min, math.Min(f.Max, v))
}
