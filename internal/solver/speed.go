package solver

import "fmt"

type SpeedUnit int

const (
	MetersPerSecond SpeedUnit = iota
	KilometersPerHour
)

var SpeedUnitStringMap = map[SpeedUnit]string{
	MetersPerSecond:   "m/s",
	KilometersPerHour: "km/h",
}

// SpeedReading is a launch speed prepared for display. Mach is only set when
// the reading is in km/h and the speed reaches the Mach threshold.
type SpeedReading struct {
	Value      float64
	Unit       SpeedUnit
	Mach       float64
	Supersonic bool
}

// ConvertSpeed converts v (m/s) into unit. The km/h figure is v*1000/3600,
// kept as-is for compatibility with existing readouts.
func ConvertSpeed(v float64, unit SpeedUnit, p Policy) SpeedReading {
	if unit != KilometersPerHour {
		return SpeedReading{Value: v, Unit: MetersPerSecond}
	}

	r := SpeedReading{Value: v * 1000 / 3600, Unit: KilometersPerHour}
	if v >= p.MachThreshold {
		r.Supersonic = true
		r.Mach = v / p.SpeedOfSound
	}
	return r
}

func (r SpeedReading) String() string {
	s := fmt.Sprintf("%.2f %s", r.Value, SpeedUnitStringMap[r.Unit])
	if r.Supersonic {
		s += fmt.Sprintf(" (Mach %.2f)", r.Mach)
	}
	return s
}
