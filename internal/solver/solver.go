package solver

import (
	"math"

	"ballistic-calculator/pkg/types"

	"gonum.org/v1/gonum/floats"
)

// ClearanceMode selects how the target height relative to the muzzle enters
// the speed equation.
type ClearanceMode int

const (
	// ClearanceSigned allows a target below the muzzle (negative clearance height).
	ClearanceSigned ClearanceMode = iota
	// ClearanceMagnitude always treats the target as above the muzzle.
	ClearanceMagnitude
)

type LaunchParameters struct {
	Position types.Pose2D
	HeightMM float64 // muzzle height above ground
	AngleDeg float64
}

type TargetParameters struct {
	Position types.Pose2D
	Height   float64 // meters above ground
}

type TrajectorySolution struct {
	// Bearing is acos(x/z) with x = launcher X - target X, so it is measured
	// from the -X axis as seen from the launcher.
	Bearing      float64 // degrees
	Distance     float64 // planar distance z, meters
	InitialSpeed float64 // m/s
	ImpactAngle  float64 // degrees

	LaunchAngle  float64 // degrees
	LaunchHeight float64 // meters
	// ClearanceHeight is h, the target height relative to the muzzle used
	// in the speed equation.
	ClearanceHeight float64
	VelocityX       float64
	VelocityY       float64

	Target types.Pose2D
	// TargetHeight is the entered target height. The arc ends at
	// ImpactHeight, which differs when a magnitude-mode target sits below
	// the muzzle.
	TargetHeight float64
	Curve        []types.Sample

	policy Policy
}

type options struct {
	policy       Policy
	target       TargetParameters
	clearance    ClearanceMode
	clearanceSet bool
	override     bool
}

type Option func(*options)

// WithTarget replaces the fixed target. Unless WithClearance says otherwise,
// an overridden target is solved in ClearanceMagnitude mode.
func WithTarget(t TargetParameters) Option {
	return func(o *options) {
		o.target = t
		o.override = true
	}
}

func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

func WithClearance(mode ClearanceMode) Option {
	return func(o *options) {
		o.clearance = mode
		o.clearanceSet = true
	}
}

// Solve computes the launch speed that carries a drag-free point mass from
// the launcher to the target at the given angle, and the values derived
// from it. It holds no state and is safe for concurrent use.
func Solve(launch LaunchParameters, opts ...Option) (*TrajectorySolution, error) {
	o := options{policy: DefaultPolicy(), target: FixedTarget()}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.clearanceSet {
		o.clearance = ClearanceSigned
		if o.override {
			o.clearance = ClearanceMagnitude
		}
	}
	p := o.policy

	if !(p.Gravity > 0) || math.IsInf(p.Gravity, 0) {
		return nil, newSolveError(ErrInvalidInput, "gravity", p.Gravity)
	}
	if !launch.Position.IsFinite() {
		return nil, newSolveError(ErrGeometrySingular, "launcher", math.NaN())
	}
	if !o.target.Position.IsFinite() {
		return nil, newSolveError(ErrGeometrySingular, "target", math.NaN())
	}
	if !isFinite(launch.HeightMM) || launch.HeightMM < 0 {
		return nil, newSolveError(ErrInvalidInput, "launch_height_mm", launch.HeightMM)
	}
	if !isFinite(o.target.Height) {
		return nil, newSolveError(ErrInvalidInput, "target_height", o.target.Height)
	}
	if !isFinite(launch.AngleDeg) || launch.AngleDeg < 0 || launch.AngleDeg > p.MaxAngleDeg || launch.AngleDeg >= 90 {
		return nil, newSolveError(ErrAngleOutOfRange, "angle_deg", launch.AngleDeg)
	}

	offset := launch.Position.Sub(o.target.Position)
	z := math.Sqrt(offset.X*offset.X + offset.Y*offset.Y)
	if !isFinite(z) || z <= p.MinDistance {
		return nil, newSolveError(ErrGeometrySingular, "distance", z)
	}

	// Rounding can push |x/z| past 1.
	ratio := math.Max(-1, math.Min(1, offset.X/z))
	yaw := math.Acos(ratio)

	theta := launch.AngleDeg * math.Pi / 180.0
	launchHeight := launch.HeightMM / 1000
	h := o.target.Height - launchHeight
	if o.clearance == ClearanceMagnitude {
		h = math.Abs(h)
	}

	clearance := z*math.Tan(theta) - h
	if !(clearance > 0) {
		return nil, newSolveError(ErrUnreachableAtAngle, "clearance", clearance)
	}

	cos := math.Cos(theta)
	v := math.Sqrt((p.Gravity * z * z) / (2 * cos * cos * clearance))
	if !(v > 0) || math.IsInf(v, 0) {
		return nil, newSolveError(ErrUnreachableAtAngle, "speed", v)
	}

	vx := v * cos
	// Time of flight is taken as x / v_x with the signed launcher-target
	// offset along X, not z. Exact only when the target lies on that axis.
	vy := v*math.Sin(theta) - p.Gravity*offset.X/vx

	sol := &TrajectorySolution{
		Bearing:         yaw * 180.0 / math.Pi,
		Distance:        z,
		InitialSpeed:    v,
		ImpactAngle:     math.Atan2(vy, vx) * 180.0 / math.Pi,
		LaunchAngle:     launch.AngleDeg,
		LaunchHeight:    launchHeight,
		ClearanceHeight: h,
		VelocityX:       vx,
		VelocityY:       vy,
		Target:          o.target.Position,
		TargetHeight:    o.target.Height,
		policy:          p,
	}
	sol.Curve = sol.sample(p.SampleCount)
	return sol, nil
}

// HeightAt evaluates the trajectory height at horizontal distance d from the launcher.
func (s *TrajectorySolution) HeightAt(d float64) float64 {
	theta := s.LaunchAngle * math.Pi / 180.0
	cos := math.Cos(theta)
	g := s.policy.Gravity
	return s.LaunchHeight + d*math.Tan(theta) - (g*d*d)/(2*s.InitialSpeed*s.InitialSpeed*cos*cos)
}

// ImpactHeight is the height the arc reaches at the planar distance.
func (s *TrajectorySolution) ImpactHeight() float64 {
	return s.LaunchHeight + s.ClearanceHeight
}

func (s *TrajectorySolution) Speed(unit SpeedUnit) SpeedReading {
	return ConvertSpeed(s.InitialSpeed, unit, s.policy)
}

func (s *TrajectorySolution) sample(n int) []types.Sample {
	if n < 2 {
		n = 2
	}
	ds := floats.Span(make([]float64, n), 0, s.Distance)
	curve := make([]types.Sample, n)
	for i, d := range ds {
		curve[i] = types.Sample{Distance: d, Height: s.HeightAt(d)}
	}
	return curve
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
