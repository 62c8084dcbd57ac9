package types

import "math"

// Pose2D is a ground-plane position in meters.
type Pose2D struct {
	X float64
	Y float64
}

func NewPose2D(x, y float64) Pose2D {
	return Pose2D{x, y}
}

// Sub returns the offset p1 - p2.
func (p1 Pose2D) Sub(p2 Pose2D) Pose2D {
	return Pose2D{p1.X - p2.X, p1.Y - p2.Y}
}

func (p1 Pose2D) DistanceTo(p2 Pose2D) float64 {
	dx := p1.X - p2.X
	dy := p1.Y - p2.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func (p1 Pose2D) IsFinite() bool {
	return !math.IsNaN(p1.X) && !math.IsInf(p1.X, 0) && !math.IsNaN(p1.Y) && !math.IsInf(p1.Y, 0)
}

// Sample is one point of a sampled trajectory: horizontal distance from the
// launcher and height above ground, both in meters.
type Sample struct {
	Distance float64
	Height   float64
}
