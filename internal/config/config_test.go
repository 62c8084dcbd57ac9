package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ballistic-calculator/internal/solver"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Empty(t *testing.T) {
	c, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	if diff := cmp.Diff(Default(), c); diff != "" {
		t.Errorf("empty config should equal defaults (-want +got):\n%s", diff)
	}
	assert.Equal(t, solver.DefaultPolicy(), c.Policy())
	assert.Equal(t, solver.FixedTarget(), c.FixedTarget())
}

func TestLoad_Overrides(t *testing.T) {
	doc := `
window:
  title: Range
solver:
  max_angle_deg: 80
  mach_threshold: 300
  samples: 50
target:
  x: 1.5
  y: 2
  height: 0.5
feedback:
  webhook_url: https://chat.example.com/hook
  timeout: 3s
log:
  level: debug
`
	c, err := Load(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "Range", c.Window.Title)
	assert.Equal(t, 1024, c.Window.Width, "unset keys keep defaults")
	assert.Equal(t, 80.0, c.Policy().MaxAngleDeg)
	assert.Equal(t, 300.0, c.Policy().MachThreshold)
	assert.Equal(t, 50, c.Policy().SampleCount)
	assert.Equal(t, solver.GRAVITY, c.Policy().Gravity)
	assert.Equal(t, 1.5, c.FixedTarget().Position.X)
	assert.Equal(t, 0.5, c.FixedTarget().Height)
	assert.Equal(t, "https://chat.example.com/hook", c.Feedback.WebhookURL)
	assert.Equal(t, 3*time.Second, c.Feedback.Timeout)
	assert.Equal(t, "debug", c.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		msg  string
	}{
		{"angle at vertical", "solver:\n  max_angle_deg: 90\n", "max_angle_deg"},
		{"too few samples", "solver:\n  samples: 1\n", "samples"},
		{"negative gravity", "solver:\n  gravity: -9.8\n", "gravity"},
		{"zero window", "window:\n  width: 0\n", "window size"},
		{"unknown key", "solver:\n  drag: 0.3\n", "drag"},
		{"not yaml", "solver: [", "decode config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoadFile(t *testing.T) {
	c, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o644))
	c, err = LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", c.Log.Level)
}
