package control

import "fmt"

type ActuatorType int

const (
	Fan          ActuatorType = 1
	Light        ActuatorType = 2
	AC           ActuatorType = 3
	Heater       ActuatorType = 4
	Humidifier   ActuatorType = 5
	Dehumidifier ActuatorType = 6
)

func (a ActuatorType) Valid() bool {
	return a >= Fan && a <= Dehumidifier
}

func (a ActuatorType) String() string {
	switch a {
	case Fan:
		return "fan"
	case Light:
		return "light"
	case AC:
		return "ac"
	case Heater:
		return "heater"
	case Humidifier:
		return "humidifier"
	case Dehumidifier:
		return "dehumidifier"
	}
	return fmt.Sprintf("actuator(%d)", int(a))
}

// Range is the declared value interval of an actuator, bounds inclusive.
type Range struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Unit string  `json:"unit"`
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

var defaultRanges = map[ActuatorType]Range{
	Fan:          {Min: 0, Max: 100, Unit: "%"},
	Light:        {Min: 0, Max: 100, Unit: "%"},
	AC:           {Min: 16, Max: 30, Unit: "°C"},
	Heater:       {Min: 5, Max: 35, Unit: "°C"},
	Humidifier:   {Min: 0, Max: 100, Unit: "%RH"},
	Dehumidifier: {Min: 0, Max: 100, Unit: "%RH"},
}

// DefaultRange returns the range used for actuators that do not declare one themselves.
func DefaultRange(a ActuatorType) (Range, bool) {
	r, ok := defaultRanges[a]
	return r, ok
}
