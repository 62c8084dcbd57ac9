package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"ballistic-calculator/internal/solver"
	"ballistic-calculator/pkg/types"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Solver   SolverConfig   `yaml:"solver"`
	Target   TargetConfig   `yaml:"target"`
	Feedback FeedbackConfig `yaml:"feedback"`
	Log      LogConfig      `yaml:"log"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type SolverConfig struct {
	Gravity       float64 `yaml:"gravity"`
	MaxAngleDeg   float64 `yaml:"max_angle_deg"`
	MachThreshold float64 `yaml:"mach_threshold"`
	SpeedOfSound  float64 `yaml:"speed_of_sound"`
	Samples       int     `yaml:"samples"`
}

// TargetConfig is the fixed target used when no override is entered.
type TargetConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Height float64 `yaml:"height"` // meters
}

type FeedbackConfig struct {
	WebhookURL string        `yaml:"webhook_url"`
	Timeout    time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Default() *Config {
	p := solver.DefaultPolicy()
	t := solver.FixedTarget()
	return &Config{
		Window: WindowConfig{Width: 1024, Height: 768, Title: "Trajectory Calculator"},
		Solver: SolverConfig{
			Gravity:       p.Gravity,
			MaxAngleDeg:   p.MaxAngleDeg,
			MachThreshold: p.MachThreshold,
			SpeedOfSound:  p.SpeedOfSound,
			Samples:       p.SampleCount,
		},
		Target:   TargetConfig{X: t.Position.X, Y: t.Position.Y, Height: t.Height},
		Feedback: FeedbackConfig{Timeout: 10 * time.Second},
		Log:      LogConfig{Level: "info"},
	}
}

// Load decodes YAML from r on top of Default, so absent keys keep their
// default values.
func Load(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile reads path with Load. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Solver.Gravity <= 0 {
		errs = append(errs, fmt.Errorf("solver.gravity %g must be positive", c.Solver.Gravity))
	}
	if c.Solver.MaxAngleDeg <= 0 || c.Solver.MaxAngleDeg >= 90 {
		errs = append(errs, fmt.Errorf("solver.max_angle_deg %g must be in (0, 90)", c.Solver.MaxAngleDeg))
	}
	if c.Solver.SpeedOfSound <= 0 {
		errs = append(errs, fmt.Errorf("solver.speed_of_sound %g must be positive", c.Solver.SpeedOfSound))
	}
	if c.Solver.MachThreshold < 0 {
		errs = append(errs, fmt.Errorf("solver.mach_threshold %g must not be negative", c.Solver.MachThreshold))
	}
	if c.Solver.Samples < 2 {
		errs = append(errs, fmt.Errorf("solver.samples %d must be at least 2", c.Solver.Samples))
	}
	if c.Target.Height < 0 {
		errs = append(errs, fmt.Errorf("target.height %g must not be negative", c.Target.Height))
	}
	if c.Feedback.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("feedback.timeout %s must be positive", c.Feedback.Timeout))
	}
	return errors.Join(errs...)
}

func (c *Config) Policy() solver.Policy {
	p := solver.DefaultPolicy()
	p.Gravity = c.Solver.Gravity
	p.MaxAngleDeg = c.Solver.MaxAngleDeg
	p.MachThreshold = c.Solver.MachThreshold
	p.SpeedOfSound = c.Solver.SpeedOfSound
	p.SampleCount = c.Solver.Samples
	return p
}

func (c *Config) FixedTarget() solver.TargetParameters {
	return solver.TargetParameters{
		Position: types.NewPose2D(c.Target.X, c.Target.Y),
		Height:   c.Target.Height,
	}
}
