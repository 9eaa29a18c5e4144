package thresholds

import (
	"fmt"
	"math"

	"github.com/diwise/iot-climate-control/pkg/types"
)

// Bound is an optional threshold limit. The zero value is a disabled bound.
type Bound struct {
	value float64
	set   bool
}

func At(v float64) Bound {
	return Bound{value: v, set: true}
}

func Disabled() Bound {
	return Bound{}
}

func (b Bound) Active() bool {
	return b.set
}

func (b Bound) Value() (float64, bool) {
	return b.value, b.set
}

func (b Bound) String() string {
	if !b.set {
		return "disabled"
	}
	return fmt.Sprintf("%g", b.value)
}

type Range struct {
	Lo Bound
	Hi Bound
}

// Threshold holds the automation limits of one warehouse. Gas only has an upper bound.
type Threshold struct {
	Temperature Range
	Humidity    Range
	Gas         Range
	Light       Range
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid threshold %s: %s", e.Field, e.Reason)
}

type envelope struct {
	lo, hi float64
}

var (
	tempEnvelope  = envelope{types.TempDisabledLo, types.TempDisabledHi}
	humEnvelope   = envelope{types.HumDisabledLo, types.HumDisabledHi}
	gasEnvelope   = envelope{math.Inf(-1), types.GasDisabledHi}
	lightEnvelope = envelope{types.LightDisabledLo, types.LightDisabledHi}
)

func fromSentinel(v, sentinel float64) Bound {
	if v == sentinel {
		return Disabled()
	}
	return At(v)
}

func toSentinel(b Bound, sentinel float64) float64 {
	if v, ok := b.Value(); ok {
		return v
	}
	return sentinel
}

// FromWire converts the sentinel encoded representation into a threshold and validates it.
func FromWire(w types.Threshold) (Threshold, error) {
	t := Threshold{
		Temperature: Range{fromSentinel(w.TempLo, types.TempDisabledLo), fromSentinel(w.TempHi, types.TempDisabledHi)},
		Humidity:    Range{fromSentinel(w.HumLo, types.HumDisabledLo), fromSentinel(w.HumHi, types.HumDisabledHi)},
		Gas:         Range{Disabled(), fromSentinel(w.GasHi, types.GasDisabledHi)},
		Light:       Range{fromSentinel(w.LightLo, types.LightDisabledLo), fromSentinel(w.LightHi, types.LightDisabledHi)},
	}

	return t, t.Validate()
}

func ToWire(t Threshold) types.Threshold {
	return types.Threshold{
		TempLo:  toSentinel(t.Temperature.Lo, types.TempDisabledLo),
		TempHi:  toSentinel(t.Temperature.Hi, types.TempDisabledHi),
		HumLo:   toSentinel(t.Humidity.Lo, types.HumDisabledLo),
		HumHi:   toSentinel(t.Humidity.Hi, types.HumDisabledHi),
		GasHi:   toSentinel(t.Gas.Hi, types.GasDisabledHi),
		LightLo: toSentinel(t.Light.Lo, types.LightDisabledLo),
		LightHi: toSentinel(t.Light.Hi, types.LightDisabledHi),
	}
}

// AllDisabled is the threshold of a warehouse that has never been configured.
func AllDisabled() Threshold {
	return Threshold{}
}

func (t Threshold) Validate() error {
	checks := []struct {
		name string
		r    Range
		env  envelope
	}{
		{"temp", t.Temperature, tempEnvelope},
		{"hum", t.Humidity, humEnvelope},
		{"gas", t.Gas, gasEnvelope},
		{"light", t.Light, lightEnvelope},
	}

	for _, c := range checks {
		if err := c.r.validate(c.name, c.env); err != nil {
			return err
		}
	}

	if t.Gas.Lo.Active() {
		return &ValidationError{Field: "gas_lo", Reason: "gas has no lower bound"}
	}

	return nil
}

func (r Range) validate(name string, env envelope) error {
	lo, loOK := r.Lo.Value()
	hi, hiOK := r.Hi.Value()

	if loOK {
		if math.IsNaN(lo) || lo <= env.lo || lo >= env.hi {
			return &ValidationError{Field: name + "_lo", Reason: fmt.Sprintf("must be within (%g, %g)", env.lo, env.hi)}
		}
	}

	if hiOK {
		if math.IsNaN(hi) || hi <= env.lo || hi >= env.hi {
			return &ValidationError{Field: name + "_hi", Reason: fmt.Sprintf("must be within (%g, %g)", env.lo, env.hi)}
		}
	}

	if loOK && hiOK && lo > hi {
		return &ValidationError{Field: name + "_lo", Reason: "must not exceed " + name + "_hi"}
	}

	return nil
}
