package api

import (
	"encoding/json"
	"io"

	"github.com/diwise/iot-climate-control/pkg/types"
)

type meta struct {
	TotalRecords uint64 `json:"totalRecords"`
	Count        uint64 `json:"count"`
}

type ApiResponse struct {
	Meta *meta `json:"meta,omitempty"`
	Data any   `json:"data"`
}

func (r ApiResponse) Byte() []byte {
	b, _ := json.Marshal(r)
	return b
}

// controlRequest keeps track of which fields were present in the request body.
type controlRequest struct {
	Kind     *int     `json:"kind"`
	Actuator *int     `json:"actuator"`
	On       *int     `json:"on"`
	Value    *float64 `json:"value"`
	TTL      *int64   `json:"ttl_ms"`
}

type thresholdRequest struct {
	TempLo  *float64 `json:"temp_lo"`
	TempHi  *float64 `json:"temp_hi"`
	HumLo   *float64 `json:"hum_lo"`
	HumHi   *float64 `json:"hum_hi"`
	GasHi   *float64 `json:"gas_hi"`
	LightLo *float64 `json:"light_lo"`
	LightHi *float64 `json:"light_hi"`
}

type thresholdField struct {
	name  string
	value *float64
	dst   *float64
}

// toThreshold requires every field of the request. Unset dimensions are sent as sentinels.
func (t thresholdRequest) toThreshold() (types.Threshold, *types.ValidationProblem) {
	th := types.Threshold{}

	fields := []thresholdField{
		{"temp_lo", t.TempLo, &th.TempLo},
		{"temp_hi", t.TempHi, &th.TempHi},
		{"hum_lo", t.HumLo, &th.HumLo},
		{"hum_hi", t.HumHi, &th.HumHi},
		{"gas_hi", t.GasHi, &th.GasHi},
		{"light_lo", t.LightLo, &th.LightLo},
		{"light_hi", t.LightHi, &th.LightHi},
	}

	for _, f := range fields {
		if f.value == nil {
			return types.Threshold{}, &types.ValidationProblem{Field: f.name, Reason: "missing"}
		}
		*f.dst = *f.value
	}

	return th, nil
}

// decodeStrict decodes a single json object and rejects unknown fields.
func decodeStrict(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
