package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertSpeed(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name string
		v    float64
		unit SpeedUnit
		want SpeedReading
		text string
	}{
		{"native", 350, MetersPerSecond, SpeedReading{Value: 350, Unit: MetersPerSecond}, "350.00 m/s"},
		{"kmh supersonic", 350, KilometersPerHour, SpeedReading{Value: 350.0 * 1000 / 3600, Unit: KilometersPerHour, Mach: 350.0 / 340, Supersonic: true}, "97.22 km/h (Mach 1.03)"},
		{"kmh at threshold", 331, KilometersPerHour, SpeedReading{Value: 331.0 * 1000 / 3600, Unit: KilometersPerHour, Mach: 331.0 / 340, Supersonic: true}, "91.94 km/h (Mach 0.97)"},
		{"kmh subsonic", 330.9, KilometersPerHour, SpeedReading{Value: 330.9 * 1000 / 3600, Unit: KilometersPerHour}, "91.92 km/h"},
		{"m/s never reports mach", 500, MetersPerSecond, SpeedReading{Value: 500, Unit: MetersPerSecond}, "500.00 m/s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertSpeed(tt.v, tt.unit, p)
			assert.InDelta(t, tt.want.Value, got.Value, 1e-9)
			assert.InDelta(t, tt.want.Mach, got.Mach, 1e-9)
			assert.Equal(t, tt.want.Unit, got.Unit)
			assert.Equal(t, tt.want.Supersonic, got.Supersonic)
			assert.Equal(t, tt.text, got.String())
		})
	}
}

func TestConvertSpeed_PolicyThreshold(t *testing.T) {
	p := DefaultPolicy()
	p.MachThreshold = 100
	p.SpeedOfSound = 200

	got := ConvertSpeed(150, KilometersPerHour, p)
	assert.True(t, got.Supersonic)
	assert.InDelta(t, 0.75, got.Mach, 1e-12)
}

func TestTrajectorySolution_Speed(t *testing.T) {
	sol, err := Solve(origin(0, 45))
	assert.NoError(t, err)

	assert.Equal(t, sol.InitialSpeed, sol.Speed(MetersPerSecond).Value)
	kmh := sol.Speed(KilometersPerHour)
	assert.InDelta(t, sol.InitialSpeed*1000/3600, kmh.Value, 1e-12)
	assert.False(t, kmh.Supersonic)
}
