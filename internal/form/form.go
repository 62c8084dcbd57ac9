package form

import (
	"fmt"
	"math"

	"ballistic-calculator/internal/solver"
	"ballistic-calculator/pkg/types"

	"github.com/labstack/gommon/log"
)

const (
	MIN_VALUE     = 0.0
	DEFAULT_VALUE = 0.0
	VALUE_STEP    = 1.0
	MAX_LOG_SIZE  = 50
)

// Form is the caller-held input state of the calculator: the last entered
// values, the display toggles, the pending feedback text and the most recent
// result. The solver itself keeps nothing between calls.
type Form struct {
	Fields    map[FieldID]*Field
	Order     []FieldID
	UseTarget bool
	Unit      solver.SpeedUnit
	Feedback  string

	Last    *solver.TrajectorySolution
	LastErr error
	Log     []Message

	policy     solver.Policy
	maxLogSize int
}

func New(policy solver.Policy, fixed solver.TargetParameters) *Form {
	unbounded := math.Inf(1)
	f := &Form{
		Fields: map[FieldID]*Field{
			LauncherX:      newField(DEFAULT_VALUE, MIN_VALUE, unbounded, VALUE_STEP),
			LauncherY:      newField(DEFAULT_VALUE, MIN_VALUE, unbounded, VALUE_STEP),
			LauncherHeight: newField(DEFAULT_VALUE, MIN_VALUE, unbounded, VALUE_STEP),
			Angle:          newField(DEFAULT_VALUE, MIN_VALUE, policy.MaxAngleDeg, VALUE_STEP),
			TargetX:        newField(fixed.Position.X, MIN_VALUE, unbounded, VALUE_STEP),
			TargetY:        newField(fixed.Position.Y, MIN_VALUE, unbounded, VALUE_STEP),
			TargetHeight:   newField(fixed.Height, MIN_VALUE, unbounded, VALUE_STEP/10),
		},
		Order:      []FieldID{LauncherX, LauncherY, LauncherHeight, Angle, TargetX, TargetY, TargetHeight},
		Unit:       solver.MetersPerSecond,
		policy:     policy,
		maxLogSize: MAX_LOG_SIZE,
	}
	return f
}

func (f *Form) Value(id FieldID) float64 {
	return f.Fields[id].Value
}

// Set parses text into the field and recomputes.
func (f *Form) Set(id FieldID, text string) error {
	field, ok := f.Fields[id]
	if !ok {
		return fmt.Errorf("unknown field %d", id)
	}
	clamped, err := field.Set(text)
	if err != nil {
		log.Printf("Invalid input for %s: %v", FieldLabelMap[id], err)
		f.AddMessage(fmt.Sprintf("%s: not a number", FieldLabelMap[id]), true)
		return err
	}
	if clamped {
		log.Debugf("%s clamped to %s", FieldLabelMap[id], field.Text())
	}
	f.Solve()
	return nil
}

func (f *Form) Step(id FieldID, n int) {
	if field, ok := f.Fields[id]; ok {
		field.Nudge(n)
		f.Solve()
	}
}

func (f *Form) ToggleUnit() {
	if f.Unit == solver.KilometersPerHour {
		f.Unit = solver.MetersPerSecond
	} else {
		f.Unit = solver.KilometersPerHour
	}
}

func (f *Form) ToggleTarget() {
	f.UseTarget = !f.UseTarget
	f.Solve()
}

// Visible lists the fields that apply to the current target mode.
func (f *Form) Visible() []FieldID {
	if f.UseTarget {
		return f.Order
	}
	return f.Order[:TargetX]
}

// Reset restores every field to its default, clears the feedback buffer and
// the last result.
func (f *Form) Reset() {
	for _, field := range f.Fields {
		field.Reset()
	}
	f.UseTarget = false
	f.Unit = solver.MetersPerSecond
	f.ClearFeedback()
	f.Last = nil
	f.LastErr = nil
	f.Log = nil
	log.Printf("Form reset")
}

func (f *Form) ClearFeedback() {
	f.Feedback = ""
}

func (f *Form) Launch() solver.LaunchParameters {
	return solver.LaunchParameters{
		Position: types.NewPose2D(f.Value(LauncherX), f.Value(LauncherY)),
		HeightMM: f.Value(LauncherHeight),
		AngleDeg: f.Value(Angle),
	}
}

func (f *Form) Options() []solver.Option {
	opts := []solver.Option{solver.WithPolicy(f.policy)}
	if f.UseTarget {
		opts = append(opts, solver.WithTarget(solver.TargetParameters{
			Position: types.NewPose2D(f.Value(TargetX), f.Value(TargetY)),
			Height:   f.Value(TargetHeight),
		}))
	} else {
		// The fixed target may come from configuration; keep the signed
		// clearance of the fixed-target setup.
		opts = append(opts,
			solver.WithTarget(solver.TargetParameters{
				Position: types.NewPose2D(f.Fields[TargetX].Default, f.Fields[TargetY].Default),
				Height:   f.Fields[TargetHeight].Default,
			}),
			solver.WithClearance(solver.ClearanceSigned),
		)
	}
	return opts
}

// Solve runs the solver on the current values and keeps the outcome.
func (f *Form) Solve() (*solver.TrajectorySolution, error) {
	sol, err := solver.Solve(f.Launch(), f.Options()...)
	f.Last, f.LastErr = sol, err
	if err != nil {
		log.Printf("Solve failed: %v", err)
		f.AddMessage(solver.Hint(err), true)
		return nil, err
	}
	log.Debugf("Solved: bearing %.2f, distance %.2f, speed %.2f", sol.Bearing, sol.Distance, sol.InitialSpeed)
	return sol, nil
}

// ResultLines formats the last result for display, or the hint for the last
// failure.
func (f *Form) ResultLines() []string {
	if f.LastErr != nil {
		return []string{"Physically impossible.", solver.Hint(f.LastErr)}
	}
	if f.Last == nil {
		return nil
	}
	s := f.Last
	return []string{
		fmt.Sprintf("Bearing: %.2f deg", s.Bearing),
		fmt.Sprintf("Distance: %.2f m", s.Distance),
		fmt.Sprintf("Speed: %s", s.Speed(f.Unit)),
		fmt.Sprintf("Impact angle: %.2f deg", s.ImpactAngle),
	}
}
