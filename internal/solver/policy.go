package solver

import "ballistic-calculator/pkg/types"

const (
	GRAVITY        = 9.80665 // m/s^2
	MAX_ANGLE_DEG  = 89.0
	MACH_THRESHOLD = 331.0 // m/s
	SPEED_OF_SOUND = 340.0 // m/s
	SAMPLE_COUNT   = 500
	MIN_DISTANCE   = 1e-9 // m

	FIXED_TARGET_X         = 0.35  // m
	FIXED_TARGET_Y         = 3.15  // m
	FIXED_TARGET_HEIGHT_MM = 345.0 // mm
)

// Policy holds the tunable limits the solver enforces. The angle bound and
// the Mach threshold are policy, not physics, so they live here instead of
// being inlined.
type Policy struct {
	Gravity       float64
	MaxAngleDeg   float64
	MachThreshold float64
	SpeedOfSound  float64
	SampleCount   int
	MinDistance   float64
}

func DefaultPolicy() Policy {
	return Policy{
		Gravity:       GRAVITY,
		MaxAngleDeg:   MAX_ANGLE_DEG,
		MachThreshold: MACH_THRESHOLD,
		SpeedOfSound:  SPEED_OF_SOUND,
		SampleCount:   SAMPLE_COUNT,
		MinDistance:   MIN_DISTANCE,
	}
}

// FixedTarget is the target used when the caller supplies none.
func FixedTarget() TargetParameters {
	return TargetParameters{
		Position: types.NewPose2D(FIXED_TARGET_X, FIXED_TARGET_Y),
		Height:   FIXED_TARGET_HEIGHT_MM / 1000,
	}
}
