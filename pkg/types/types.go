package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sample is one environmental reading for a warehouse, as delivered by the ingestion tick.
type Sample struct {
	Temperature float64 `json:"temp"`
	Humidity    float64 `json:"hum"`
	Gas         float64 `json:"gasValue"`
	Light       float64 `json:"luxValue"`
}

var ErrIncompleteSample = errors.New("incomplete sample")

// UnmarshalJSON rejects samples that lack any of the readings, a missing reading is not a zero.
func (s *Sample) UnmarshalJSON(b []byte) error {
	var w struct {
		Temperature *float64 `json:"temp"`
		Humidity    *float64 `json:"hum"`
		Gas         *float64 `json:"gasValue"`
		Light       *float64 `json:"luxValue"`
	}

	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	missing := []string{}
	for i, v := range []*float64{w.Temperature, w.Humidity, w.Gas, w.Light} {
		if v == nil {
			missing = append(missing, [...]string{"temp", "hum", "gasValue", "luxValue"}[i])
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompleteSample, strings.Join(missing, ", "))
	}

	*s = Sample{Temperature: *w.Temperature, Humidity: *w.Humidity, Gas: *w.Gas, Light: *w.Light}

	return nil
}

// Threshold is the external representation of a warehouse threshold. Disabled bounds
// are encoded with the sentinel values below.
type Threshold struct {
	TempLo  float64 `json:"temp_lo"`
	TempHi  float64 `json:"temp_hi"`
	HumLo   float64 `json:"hum_lo"`
	HumHi   float64 `json:"hum_hi"`
	GasHi   float64 `json:"gas_hi"`
	LightLo float64 `json:"light_lo"`
	LightHi float64 `json:"light_hi"`
}

const (
	TempDisabledLo  float64 = -99
	TempDisabledHi  float64 = 200
	HumDisabledLo   float64 = -1
	HumDisabledHi   float64 = 101
	GasDisabledHi   float64 = 1000
	LightDisabledLo float64 = -100
	LightDisabledHi float64 = 3000
)

// DisabledThreshold returns a threshold where every dimension is switched off.
func DisabledThreshold() Threshold {
	return Threshold{
		TempLo:  TempDisabledLo,
		TempHi:  TempDisabledHi,
		HumLo:   HumDisabledLo,
		HumHi:   HumDisabledHi,
		GasHi:   GasDisabledHi,
		LightLo: LightDisabledLo,
		LightHi: LightDisabledHi,
	}
}

// ControlRequest is the body of a manual control command.
type ControlRequest struct {
	Kind     int      `json:"kind"`
	Actuator int      `json:"actuator"`
	On       int      `json:"on"`
	Value    *float64 `json:"value,omitempty"`
	TTL      int64    `json:"ttl_ms,omitempty"`
}

type ControlAccepted struct {
	CommandID string    `json:"commandId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ValidationProblem struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

const (
	AlertLevelInfo     string = "info"
	AlertLevelWarning  string = "warning"
	AlertLevelCritical string = "critical"
)

type Alert struct {
	Reason string `json:"reason"`
	Level  string `json:"level"`
}

type RFIDError struct {
	Message string `json:"message"`
}

type CommandStatus struct {
	CommandID   string    `json:"commandId"`
	SubDeviceID string    `json:"subDeviceId"`
	Source      string    `json:"source"`
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
}

// InFlightCommand describes a command that is waiting for acknowledgement.
type InFlightCommand struct {
	CommandID   string    `json:"commandId"`
	SubDeviceID string    `json:"subDeviceId"`
	WarehouseID string    `json:"warehouseId"`
	Source      string    `json:"source"`
	Kind        int       `json:"kind"`
	Actuator    int       `json:"actuator"`
	On          int       `json:"on"`
	Value       *float64  `json:"value,omitempty"`
	IssuedAt    time.Time `json:"issuedAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// CommandAck is sent by a gateway once a control packet has been applied.
type CommandAck struct {
	ID     string   `json:"id"`
	Target string   `json:"target"`
	On     int      `json:"on"`
	Value  *float64 `json:"value,omitempty"`
}
