package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diwise/iot-climate-control/pkg/types"
	"github.com/matryer/is"
)

func TestControl(t *testing.T) {
	is := is.New(t)

	var received types.ControlRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is.Equal(r.Method, http.MethodPost)
		is.Equal(r.URL.Path, "/api/v0/control/ac-1")
		is.Equal(r.Header.Get("Authorization"), "Bearer secret")
		is.Equal(r.Header.Get("Content-Type"), "application/json")

		b, _ := io.ReadAll(r.Body)
		is.NoErr(json.Unmarshal(b, &received))

		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(`{"commandId":"c1","expiresAt":"2023-03-01T12:00:30Z"}`))
	}))
	defer server.Close()

	value := 21.0
	c := NewClimateControlClient(server.URL, WithToken("secret"))

	accepted, err := c.Control(context.Background(), "ac-1", types.ControlRequest{Kind: 2, Actuator: 3, On: 1, Value: &value})
	is.NoErr(err)
	is.Equal(accepted.CommandID, "c1")
	is.Equal(received.Kind, 2)
	is.Equal(*received.Value, 21.0)
}

func TestControlValidationError(t *testing.T) {
	is := is.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"field":"value","reason":"999 outside 16..30"}`))
	}))
	defer server.Close()

	value := 999.0
	_, err := NewClimateControlClient(server.URL).Control(context.Background(), "ac-1", types.ControlRequest{Kind: 2, Actuator: 3, On: 1, Value: &value})

	var verr *ValidationError
	is.True(errors.As(err, &verr))
	is.Equal(verr.Field, "value")
}

func TestStatusCodesMapToErrors(t *testing.T) {
	is := is.New(t)

	status := http.StatusNotFound
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer server.Close()

	c := NewClimateControlClient(server.URL)

	err := c.CancelCommand(context.Background(), "ac-1", "c1")
	is.True(errors.Is(err, ErrNotFound))

	status = http.StatusServiceUnavailable
	_, err = c.Control(context.Background(), "ac-1", types.ControlRequest{Kind: 1, Actuator: 3})
	is.True(errors.Is(err, ErrTransportUnavailable))

	status = http.StatusForbidden
	_, err = c.GetThreshold(context.Background(), "12")
	is.True(errors.Is(err, ErrUnauthorized))
}

func TestThresholds(t *testing.T) {
	is := is.New(t)

	var stored types.Threshold
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			is.Equal(r.URL.Path, "/api/v0/control/gw-1/threshold")
			is.NoErr(json.NewDecoder(r.Body).Decode(&stored))
			w.WriteHeader(http.StatusNoContent)
		case http.MethodGet:
			is.Equal(r.URL.Path, "/api/v0/threshold/12")
			json.NewEncoder(w).Encode(stored)
		}
	}))
	defer server.Close()

	c := NewClimateControlClient(server.URL)

	th := types.DisabledThreshold()
	th.TempLo, th.TempHi = 18, 30

	is.NoErr(c.SetThreshold(context.Background(), "gw-1", th))

	fetched, err := c.GetThreshold(context.Background(), "12")
	is.NoErr(err)
	is.Equal(fetched, th)
}

func TestInFlight(t *testing.T) {
	is := is.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"meta":{"totalRecords":1,"count":1},"data":[{"commandId":"c1","subDeviceId":"ac-1","warehouseId":"12"}]}`))
	}))
	defer server.Close()

	commands, err := NewClimateControlClient(server.URL).InFlight(context.Background())
	is.NoErr(err)
	is.Equal(len(commands), 1)
	is.Equal(commands[0].SubDeviceID, "ac-1")
}
