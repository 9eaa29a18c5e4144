package control

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

type Kind int

const (
	KindQuery           Kind = 0
	KindToggle          Kind = 1
	KindSetValue        Kind = 2
	KindThresholdUpdate Kind = 3
)

func (k Kind) Valid() bool {
	return k >= KindQuery && k <= KindThresholdUpdate
}

func (k Kind) String() string {
	switch k {
	case KindQuery:
		return "query"
	case KindToggle:
		return "toggle"
	case KindSetValue:
		return "set-value"
	case KindThresholdUpdate:
		return "threshold-update"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

const DefaultTTL time.Duration = 30 * time.Second

// Packet is a single command for one actuator. Value is only carried by set-value packets.
type Packet struct {
	ID       string
	Target   string
	Kind     Kind
	Actuator ActuatorType
	On       bool
	Value    *float64
	TTL      time.Duration
}

var ErrValidation = errors.New("validation failed")
var ErrMalformed = errors.New("malformed packet")

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

type MalformedError struct {
	Err error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed packet: %s", e.Err.Error())
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformed
}

// New builds a validated packet. A zero ttl means DefaultTTL, value is dropped for everything but
// set-value packets and must lie within rng when kept.
func New(kind Kind, actuator ActuatorType, on bool, value *float64, ttl time.Duration, rng Range) (Packet, error) {
	p := Packet{
		Kind:     kind,
		Actuator: actuator,
		On:       on,
		Value:    value,
		TTL:      ttl,
	}

	if p.TTL == 0 {
		p.TTL = DefaultTTL
	}

	p = normalize(p)

	if err := Validate(p, rng); err != nil {
		return Packet{}, err
	}

	return p, nil
}

func normalize(p Packet) Packet {
	if p.Kind != KindSetValue {
		p.Value = nil
	} else if p.Value != nil {
		v := *p.Value
		p.Value = &v
	}
	return p
}

// Validate checks p against the declared range of its actuator.
func Validate(p Packet, rng Range) error {
	if !p.Kind.Valid() {
		return invalid("kind", "unknown kind %d", int(p.Kind))
	}

	if !p.Actuator.Valid() {
		return invalid("actuator", "unknown actuator %d", int(p.Actuator))
	}

	if p.TTL <= 0 {
		return invalid("ttl_ms", "must be positive")
	}

	if p.TTL%time.Millisecond != 0 {
		return invalid("ttl_ms", "must be a whole number of milliseconds")
	}

	if p.Kind == KindSetValue {
		if p.Value == nil {
			return invalid("value", "required for %s", p.Kind)
		}

		v := *p.Value
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalid("value", "not a number")
		}

		if !rng.Contains(v) {
			return invalid("value", "%g out of range [%g,%g]", v, rng.Min, rng.Max)
		}
	}

	return nil
}

type wirePacket struct {
	ID       string   `json:"id,omitempty"`
	Target   string   `json:"target,omitempty"`
	Kind     *int     `json:"kind"`
	Actuator *int     `json:"actuator"`
	On       *int     `json:"on"`
	Value    *float64 `json:"value,omitempty"`
	TTL      *int64   `json:"ttl_ms,omitempty"`
}

// Encode validates p and returns its wire representation.
func Encode(p Packet, rng Range) ([]byte, error) {
	p = normalize(p)

	if err := Validate(p, rng); err != nil {
		return nil, err
	}

	kind, actuator, on := int(p.Kind), int(p.Actuator), 0
	if p.On {
		on = 1
	}
	ttl := p.TTL.Milliseconds()

	return json.Marshal(wirePacket{
		ID:       p.ID,
		Target:   p.Target,
		Kind:     &kind,
		Actuator: &actuator,
		On:       &on,
		Value:    p.Value,
		TTL:      &ttl,
	})
}

// Decode parses a wire packet. Range checks need the actuator capability and are left to Validate.
func Decode(b []byte) (Packet, error) {
	w := wirePacket{}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&w); err != nil {
		return Packet{}, &MalformedError{Err: err}
	}

	if dec.More() {
		return Packet{}, &MalformedError{Err: errors.New("trailing data after packet")}
	}

	return FromFields(w.Kind, w.Actuator, w.On, w.Value, w.TTL, w.ID, w.Target)
}

// FromFields builds a packet from optional wire fields, applying the same structural rules as Decode.
func FromFields(kind, actuator, on *int, value *float64, ttlMs *int64, id, target string) (Packet, error) {
	if kind == nil {
		return Packet{}, invalid("kind", "missing")
	}
	if actuator == nil {
		return Packet{}, invalid("actuator", "missing")
	}

	p := Packet{
		ID:       id,
		Target:   target,
		Kind:     Kind(*kind),
		Actuator: ActuatorType(*actuator),
		Value:    value,
		TTL:      DefaultTTL,
	}

	if !p.Kind.Valid() {
		return Packet{}, invalid("kind", "unknown kind %d", *kind)
	}
	if !p.Actuator.Valid() {
		return Packet{}, invalid("actuator", "unknown actuator %d", *actuator)
	}

	if on != nil {
		switch *on {
		case 0:
		case 1:
			p.On = true
		default:
			return Packet{}, invalid("on", "must be 0 or 1")
		}
	} else if p.Kind == KindToggle {
		return Packet{}, invalid("on", "missing")
	}

	if ttlMs != nil {
		if *ttlMs <= 0 {
			return Packet{}, invalid("ttl_ms", "must be positive")
		}
		p.TTL = time.Duration(*ttlMs) * time.Millisecond
	}

	p = normalize(p)

	if p.Kind == KindSetValue && p.Value == nil {
		return Packet{}, invalid("value", "required for %s", p.Kind)
	}

	return p, nil
}
