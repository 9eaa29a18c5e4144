package evaluator

import (
	"fmt"

	"github.com/diwise/iot-climate-control/internal/pkg/application/control"
	"github.com/diwise/iot-climate-control/internal/pkg/application/registry"
	"github.com/diwise/iot-climate-control/internal/pkg/application/thresholds"
	"github.com/diwise/iot-climate-control/pkg/types"
	"github.com/samber/lo"
)

// Config holds the hysteresis margins, in the unit of each dimension.
type Config struct {
	TemperatureMargin float64 `yaml:"temperature"`
	HumidityMargin    float64 `yaml:"humidity"`
	GasMargin         float64 `yaml:"gas"`
	LightMargin       float64 `yaml:"light"`
}

func DefaultConfig() Config {
	return Config{
		TemperatureMargin: 1.0,
		HumidityMargin:    3.0,
		GasMargin:         50,
		LightMargin:       50,
	}
}

type Trigger int

const (
	Cooling Trigger = iota
	Heating
	Dehumidifying
	Humidifying
	Ventilation
	Lighting
	triggerCount
)

func (t Trigger) String() string {
	switch t {
	case Cooling:
		return "cooling"
	case Heating:
		return "heating"
	case Dehumidifying:
		return "dehumidifying"
	case Humidifying:
		return "humidifying"
	case Ventilation:
		return "ventilation"
	case Lighting:
		return "lighting"
	}
	return fmt.Sprintf("trigger(%d)", int(t))
}

// State remembers which triggers are engaged for a warehouse. The zero value has nothing engaged.
type State struct {
	engaged [triggerCount]bool
}

func (s State) Engaged(t Trigger) bool {
	return t >= 0 && t < triggerCount && s.engaged[t]
}

// Engage returns a copy of s where t is engaged.
func (s State) Engage(t Trigger) State {
	if t >= 0 && t < triggerCount {
		s.engaged[t] = true
	}
	return s
}

// Disengage returns a copy of s where t is no longer engaged.
func (s State) Disengage(t Trigger) State {
	if t >= 0 && t < triggerCount {
		s.engaged[t] = false
	}
	return s
}

type Decision struct {
	Trigger    Trigger
	ActuatorID string
	Actuator   control.ActuatorType
	Kind       control.Kind
	On         bool
	Value      *float64
}

const (
	Above string = "above"
	Below string = "below"
)

// Breach describes a trigger that engaged during an evaluation.
type Breach struct {
	Trigger   Trigger
	Dimension string
	Direction string
	Value     float64
	Bound     float64
}

func (b Breach) String() string {
	return fmt.Sprintf("%s %g is %s %g", b.Dimension, b.Value, b.Direction, b.Bound)
}

type Result struct {
	Decisions []Decision
	Breaches  []Breach
}

type Evaluator struct {
	cfg Config
}

func New(cfg Config) Evaluator {
	return Evaluator{cfg: cfg}
}

type rule struct {
	trigger   Trigger
	dimension string
	direction string
	actuator  control.ActuatorType
	metric    func(types.Sample) float64
	bound     func(thresholds.Threshold) thresholds.Bound
	margin    func(Config) float64
	setpoint  func(bound, margin float64, r control.Range) float64
}

var rules = []rule{
	{
		trigger: Cooling, dimension: "temperature", direction: Above, actuator: control.AC,
		metric:   func(s types.Sample) float64 { return s.Temperature },
		bound:    func(t thresholds.Threshold) thresholds.Bound { return t.Temperature.Hi },
		margin:   func(c Config) float64 { return c.TemperatureMargin },
		setpoint: func(b, m float64, r control.Range) float64 { return r.Clamp(b - m) },
	},
	{
		trigger: Heating, dimension: "temperature", direction: Below, actuator: control.Heater,
		metric:   func(s types.Sample) float64 { return s.Temperature },
		bound:    func(t thresholds.Threshold) thresholds.Bound { return t.Temperature.Lo },
		margin:   func(c Config) float64 { return c.TemperatureMargin },
		setpoint: func(b, m float64, r control.Range) float64 { return r.Clamp(b + m) },
	},
	{
		trigger: Dehumidifying, dimension: "humidity", direction: Above, actuator: control.Dehumidifier,
		metric:   func(s types.Sample) float64 { return s.Humidity },
		bound:    func(t thresholds.Threshold) thresholds.Bound { return t.Humidity.Hi },
		margin:   func(c Config) float64 { return c.HumidityMargin },
		setpoint: func(b, m float64, r control.Range) float64 { return r.Clamp(b - m) },
	},
	{
		trigger: Humidifying, dimension: "humidity", direction: Below, actuator: control.Humidifier,
		metric:   func(s types.Sample) float64 { return s.Humidity },
		bound:    func(t thresholds.Threshold) thresholds.Bound { return t.Humidity.Lo },
		margin:   func(c Config) float64 { return c.HumidityMargin },
		setpoint: func(b, m float64, r control.Range) float64 { return r.Clamp(b + m) },
	},
	{
		trigger: Ventilation, dimension: "gas", direction: Above, actuator: control.Fan,
		metric:   func(s types.Sample) float64 { return s.Gas },
		bound:    func(t thresholds.Threshold) thresholds.Bound { return t.Gas.Hi },
		margin:   func(c Config) float64 { return c.GasMargin },
		setpoint: func(_, _ float64, r control.Range) float64 { return r.Max },
	},
	{
		trigger: Lighting, dimension: "light", direction: Below, actuator: control.Light,
		metric:   func(s types.Sample) float64 { return s.Light },
		bound:    func(t thresholds.Threshold) thresholds.Bound { return t.Light.Lo },
		margin:   func(c Config) float64 { return c.LightMargin },
		setpoint: func(_, _ float64, r control.Range) float64 { return r.Max },
	},
}

// Evaluate compares a sample with the threshold of its warehouse and decides which actuators
// to switch. Only active actuators are considered. Evaluate has no side effects, the
// returned state must be passed to the next call for the same warehouse.
func (e Evaluator) Evaluate(s types.Sample, t thresholds.Threshold, actuators []registry.Actuator, prev State) (Result, State) {
	result := Result{}
	next := prev

	for _, r := range rules {
		bound, active := r.bound(t).Value()
		if !active {
			next.engaged[r.trigger] = false
			continue
		}

		value := r.metric(s)
		margin := r.margin(e.cfg)
		targets := actuatorsOfType(actuators, r.actuator)

		if !prev.engaged[r.trigger] {
			if !r.breached(value, bound) {
				continue
			}

			for _, a := range targets {
				setpoint := r.setpoint(bound, margin, a.Range)
				result.Decisions = append(result.Decisions, Decision{
					Trigger:    r.trigger,
					ActuatorID: a.ID,
					Actuator:   a.Type,
					Kind:       control.KindSetValue,
					On:         true,
					Value:      &setpoint,
				})
			}

			if len(targets) > 0 {
				next.engaged[r.trigger] = true
				result.Breaches = append(result.Breaches, Breach{
					Trigger:   r.trigger,
					Dimension: r.dimension,
					Direction: r.direction,
					Value:     value,
					Bound:     bound,
				})
			}

			continue
		}

		if !r.released(value, bound, margin) {
			continue
		}

		for _, a := range targets {
			result.Decisions = append(result.Decisions, Decision{
				Trigger:    r.trigger,
				ActuatorID: a.ID,
				Actuator:   a.Type,
				Kind:       control.KindToggle,
				On:         false,
			})
		}

		next.engaged[r.trigger] = false
	}

	return result, next
}

func (r rule) breached(value, bound float64) bool {
	if r.direction == Above {
		return value > bound
	}
	return value < bound
}

func (r rule) released(value, bound, margin float64) bool {
	if r.direction == Above {
		return value < bound-margin
	}
	return value > bound+margin
}

func actuatorsOfType(actuators []registry.Actuator, t control.ActuatorType) []registry.Actuator {
	return lo.Filter(actuators, func(a registry.Actuator, _ int) bool {
		return a.Type == t && a.Active
	})
}
