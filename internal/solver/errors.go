package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrGeometrySingular means launcher and target coincide (or the
	// positions are not finite), so bearing and distance are undefined.
	ErrGeometrySingular = errors.New("geometry singular")
	// ErrUnreachableAtAngle means z*tan(theta) - h <= 0: no real launch speed
	// reaches the target at the requested angle.
	ErrUnreachableAtAngle = errors.New("target unreachable at launch angle")
	ErrAngleOutOfRange    = errors.New("launch angle out of range")
	ErrInvalidInput       = errors.New("invalid input")
)

// SolveError carries the quantity that made Solve fail. Err is always one
// of the package sentinels.
type SolveError struct {
	Err   error
	Field string
	Value float64
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("%s: %s=%g", e.Err, e.Field, e.Value)
}

func (e *SolveError) Unwrap() error {
	return e.Err
}

func newSolveError(err error, field string, value float64) error {
	return &SolveError{Err: err, Field: field, Value: value}
}

// Hint turns a Solve failure into a message a user can act on.
func Hint(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrGeometrySingular):
		return "Change the position values."
	case errors.Is(err, ErrUnreachableAtAngle):
		return "Increase the launch angle."
	case errors.Is(err, ErrAngleOutOfRange):
		return "Keep the launch angle within range."
	case errors.Is(err, ErrInvalidInput):
		return "Check the input values."
	default:
		return "Physically impossible. Change the values."
	}
}
