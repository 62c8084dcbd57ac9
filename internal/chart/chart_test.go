package chart

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"ballistic-calculator/internal/solver"
	"ballistic-calculator/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

func solve(t *testing.T) *solver.TrajectorySolution {
	t.Helper()
	sol, err := solver.Solve(solver.LaunchParameters{Position: types.NewPose2D(0, 0), AngleDeg: 45})
	require.NoError(t, err)
	return sol
}

func TestNew(t *testing.T) {
	p, err := New(solve(t))
	require.NoError(t, err)

	assert.Equal(t, "Trajectory", p.Title.Text)
	assert.Equal(t, "Flying distance (m)", p.X.Label.Text)
	assert.Equal(t, "Altitude (m)", p.Y.Label.Text)
	assert.Equal(t, 0.0, p.X.Min)
	assert.GreaterOrEqual(t, p.X.Max, 3.16)
	assert.GreaterOrEqual(t, p.Y.Max, 0.345)
}

func TestNew_NoSolution(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNoSolution)

	_, err = New(&solver.TrajectorySolution{})
	assert.ErrorIs(t, err, ErrNoSolution)
}

func TestRender(t *testing.T) {
	img, err := Render(solve(t), 6*vg.Inch, 4*vg.Inch)
	require.NoError(t, err)

	b := img.Bounds()
	require.Positive(t, b.Dy())
	assert.InDelta(t, 1.5, float64(b.Dx())/float64(b.Dy()), 0.02)
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trajectory.png")
	require.NoError(t, Save(solve(t), path, 4*vg.Inch, 4*vg.Inch))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, img.Bounds().Dx(), img.Bounds().Dy())
}

func TestNew_TargetMarkerAtEnteredHeight(t *testing.T) {
	// Entered target below the muzzle: magnitude clearance ends the arc at
	// 1.0 m while the target itself sits on the ground.
	sol, err := solver.Solve(
		solver.LaunchParameters{Position: types.NewPose2D(0, 0), HeightMM: 500, AngleDeg: 40},
		solver.WithTarget(solver.TargetParameters{Position: types.NewPose2D(3, 0), Height: 0}),
	)
	require.NoError(t, err)
	require.InDelta(t, 1.0, sol.ImpactHeight(), 1e-9)
	require.Equal(t, 0.0, sol.TargetHeight)

	for _, s := range sol.Curve {
		require.Greater(t, s.Height, 0.0, "arc stays above ground")
	}

	p, err := New(sol)
	require.NoError(t, err)
	// Only the target marker reaches height 0.
	assert.Equal(t, 0.0, p.Y.Min)
}
