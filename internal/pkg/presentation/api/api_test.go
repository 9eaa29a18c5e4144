package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/diwise/iot-climate-control/internal/pkg/application"
	"github.com/diwise/iot-climate-control/internal/pkg/application/control"
	"github.com/diwise/iot-climate-control/internal/pkg/application/dispatcher"
	"github.com/diwise/iot-climate-control/internal/pkg/application/registry"
	"github.com/diwise/iot-climate-control/internal/pkg/application/rooms"
	"github.com/diwise/iot-climate-control/internal/pkg/application/thresholds"
	"github.com/diwise/iot-climate-control/pkg/types"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/matryer/is"
)

func TestHealth(t *testing.T) {
	is, _, server := setupTest(t, nil)

	res, err := http.Get(server.URL + "/health")
	is.NoErr(err)
	is.Equal(res.StatusCode, http.StatusNoContent)
}

func TestControlIsAccepted(t *testing.T) {
	is, app, server := setupTest(t, nil)

	res, body := post(t, server.URL+"/api/v0/control/ac-1", `{"kind":2,"actuator":3,"on":1,"value":21.5,"ttl_ms":5000}`)
	is.Equal(res.StatusCode, http.StatusAccepted)

	accepted := types.ControlAccepted{}
	is.NoErr(json.Unmarshal(body, &accepted))
	is.Equal(accepted.CommandID, "c1")

	calls := app.ControlCalls()
	is.Equal(len(calls), 1)
	is.Equal(calls[0].Cmd.SubDeviceID, "ac-1")
	is.Equal(calls[0].Cmd.Kind, control.KindSetValue)
	is.Equal(calls[0].Cmd.Actuator, control.AC)
	is.Equal(*calls[0].Cmd.Value, 21.5)
	is.Equal(calls[0].Cmd.TTL, 5*time.Second)
}

func TestControlWithoutTTLUsesTheDefault(t *testing.T) {
	is, app, server := setupTest(t, nil)

	res, _ := post(t, server.URL+"/api/v0/control/ac-1", `{"kind":1,"actuator":3,"on":0}`)
	is.Equal(res.StatusCode, http.StatusAccepted)
	is.Equal(app.ControlCalls()[0].Cmd.TTL, time.Duration(0))
}

func TestControlValueOutOfRange(t *testing.T) {
	is, app, server := setupTest(t, nil)

	app.ControlFunc = func(ctx context.Context, cmd dispatcher.Command) (types.ControlAccepted, error) {
		return types.ControlAccepted{}, &control.ValidationError{Field: "value", Reason: "999 outside 0..100"}
	}

	res, body := post(t, server.URL+"/api/v0/control/light-1", `{"kind":2,"actuator":3,"on":1,"value":999}`)
	is.Equal(res.StatusCode, http.StatusBadRequest)

	problem := types.ValidationProblem{}
	is.NoErr(json.Unmarshal(body, &problem))
	is.Equal(problem.Field, "value")
}

func TestMalformedControlRequests(t *testing.T) {
	is, app, server := setupTest(t, nil)

	for body, field := range map[string]string{
		`{"actuator":3,"on":1}`:                     "kind",
		`{"kind":7,"actuator":3,"on":1}`:            "kind",
		`{"kind":1,"actuator":9,"on":1}`:            "actuator",
		`{"kind":1,"actuator":3,"on":2}`:            "on",
		`{"kind":2,"actuator":3,"on":1}`:            "value",
		`{"kind":1,"actuator":3,"on":1,"ttl_ms":0}`: "ttl_ms",
		`{"kind":1,"actuator":3,"on":1,"x":1}`:      "body",
		`not json`:                                  "body",
	} {
		res, b := post(t, server.URL+"/api/v0/control/ac-1", body)
		is.Equal(res.StatusCode, http.StatusBadRequest)

		problem := types.ValidationProblem{}
		is.NoErr(json.Unmarshal(b, &problem))
		is.Equal(problem.Field, field)
	}

	is.Equal(len(app.ControlCalls()), 0)
}

func TestControlErrorsMapToStatusCodes(t *testing.T) {
	is, app, server := setupTest(t, nil)

	for err, status := range map[error]int{
		fmt.Errorf("unable to resolve x: %w", registry.ErrNotFound): http.StatusNotFound,
		dispatcher.ErrTransportUnavailable:                          http.StatusServiceUnavailable,
		fmt.Errorf("boom"):                                          http.StatusInternalServerError,
	} {
		e := err
		app.ControlFunc = func(ctx context.Context, cmd dispatcher.Command) (types.ControlAccepted, error) {
			return types.ControlAccepted{}, e
		}

		res, _ := post(t, server.URL+"/api/v0/control/ac-1", `{"kind":1,"actuator":3,"on":1}`)
		is.Equal(res.StatusCode, status)
	}
}

func TestControlOfUnknownDevice(t *testing.T) {
	is, app, server := setupTest(t, nil)

	res, _ := post(t, server.URL+"/api/v0/control/unknown", `{"kind":1,"actuator":3,"on":1}`)
	is.Equal(res.StatusCode, http.StatusNotFound)
	is.Equal(len(app.ControlCalls()), 0)
}

func TestSetThreshold(t *testing.T) {
	is, app, server := setupTest(t, nil)

	res, _ := post(t, server.URL+"/api/v0/control/gw-1/threshold", `{"temp_lo":18,"temp_hi":30,"hum_lo":-1,"hum_hi":101,"gas_hi":1000,"light_lo":-100,"light_hi":3000}`)
	is.Equal(res.StatusCode, http.StatusNoContent)

	calls := app.SetThresholdCalls()
	is.Equal(len(calls), 1)
	is.Equal(calls[0].DeviceID, "gw-1")
	is.Equal(calls[0].Threshold.TempHi, 30.0)
	is.Equal(calls[0].Threshold.GasHi, 1000.0)
}

func TestSetThresholdRequiresEveryField(t *testing.T) {
	is, app, server := setupTest(t, nil)

	res, body := post(t, server.URL+"/api/v0/control/gw-1/threshold", `{"temp_lo":18,"temp_hi":30}`)
	is.Equal(res.StatusCode, http.StatusBadRequest)

	problem := types.ValidationProblem{}
	is.NoErr(json.Unmarshal(body, &problem))
	is.Equal(problem.Field, "hum_lo")
	is.Equal(len(app.SetThresholdCalls()), 0)
}

func TestSetThresholdValidationError(t *testing.T) {
	is, app, server := setupTest(t, nil)

	app.SetThresholdFunc = func(ctx context.Context, deviceID string, threshold types.Threshold) error {
		return &thresholds.ValidationError{Field: "temp_lo", Reason: "must not exceed temp_hi"}
	}

	res, body := post(t, server.URL+"/api/v0/control/gw-1/threshold", `{"temp_lo":30,"temp_hi":18,"hum_lo":-1,"hum_hi":101,"gas_hi":1000,"light_lo":-100,"light_hi":3000}`)
	is.Equal(res.StatusCode, http.StatusBadRequest)

	problem := types.ValidationProblem{}
	is.NoErr(json.Unmarshal(body, &problem))
	is.Equal(problem.Field, "temp_lo")
}

func TestGetThreshold(t *testing.T) {
	is, _, server := setupTest(t, nil)

	res, err := http.Get(server.URL + "/api/v0/threshold/12")
	is.NoErr(err)
	defer res.Body.Close()
	is.Equal(res.StatusCode, http.StatusOK)

	th := types.Threshold{}
	is.NoErr(json.NewDecoder(res.Body).Decode(&th))
	is.Equal(th, types.DisabledThreshold())

	res, err = http.Get(server.URL + "/api/v0/threshold/north")
	is.NoErr(err)
	is.Equal(res.StatusCode, http.StatusBadRequest)
}

func TestGetCommands(t *testing.T) {
	is, _, server := setupTest(t, nil)

	res, err := http.Get(server.URL + "/api/v0/commands")
	is.NoErr(err)
	defer res.Body.Close()
	is.Equal(res.StatusCode, http.StatusOK)

	response := struct {
		Meta meta                    `json:"meta"`
		Data []types.InFlightCommand `json:"data"`
	}{}
	is.NoErr(json.NewDecoder(res.Body).Decode(&response))
	is.Equal(response.Meta.Count, uint64(1))
	is.Equal(response.Data[0].CommandID, "c1")
}

func TestCancelCommand(t *testing.T) {
	is, app, server := setupTest(t, nil)

	req, _ := http.NewRequest(http.MethodDelete, server.URL+"/api/v0/commands/ac-1/c1", nil)
	res, err := http.DefaultClient.Do(req)
	is.NoErr(err)
	is.Equal(res.StatusCode, http.StatusNoContent)

	app.CancelCommandFunc = func(ctx context.Context, subDeviceID, commandID string) error {
		return dispatcher.ErrUnknownCommand
	}

	req, _ = http.NewRequest(http.MethodDelete, server.URL+"/api/v0/commands/ac-1/c1", nil)
	res, err = http.DefaultClient.Do(req)
	is.NoErr(err)
	is.Equal(res.StatusCode, http.StatusNotFound)
}

func TestPoliciesRestrictWarehouses(t *testing.T) {
	is, app, server := setupTest(t, strings.NewReader(testPolicy))

	send := func(method, url, token, body string) int {
		req, _ := http.NewRequest(method, server.URL+url, strings.NewReader(body))
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		res, err := http.DefaultClient.Do(req)
		is.NoErr(err)
		res.Body.Close()
		return res.StatusCode
	}

	is.Equal(send(http.MethodPost, "/api/v0/control/ac-1", "", `{"kind":1,"actuator":3,"on":1}`), http.StatusUnauthorized)
	is.Equal(send(http.MethodPost, "/api/v0/control/ac-1", "viewer", `{"kind":1,"actuator":3,"on":1}`), http.StatusUnauthorized)
	is.Equal(send(http.MethodPost, "/api/v0/control/ac-1", "operator-13", `{"kind":1,"actuator":3,"on":1}`), http.StatusForbidden)
	is.Equal(send(http.MethodPost, "/api/v0/control/ac-1", "operator-12", `{"kind":1,"actuator":3,"on":1}`), http.StatusAccepted)
	is.Equal(send(http.MethodGet, "/api/v0/threshold/12", "viewer", ""), http.StatusOK)
	is.Equal(send(http.MethodGet, "/api/v0/threshold/13", "operator-12", ""), http.StatusForbidden)
	is.Equal(send(http.MethodGet, "/api/v0/events/12", "viewer", ""), http.StatusOK)
	is.Equal(send(http.MethodGet, "/api/v0/events/13", "operator-12", ""), http.StatusForbidden)

	is.Equal(len(app.ControlCalls()), 1)
}

func TestRealtimeRooms(t *testing.T) {
	is, app, server := setupTest(t, nil)

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/api/v0/ws", nil)
	is.NoErr(err)
	defer ws.Close()

	is.NoErr(ws.WriteJSON(types.RealtimeEvent{Event: types.EventJoinRoom, Room: "12"}))
	reply := readEvent(t, ws)
	is.Equal(reply.Event, types.EventJoinedRoom)
	is.Equal(reply.Room, "12")

	is.NoErr(app.Hub().PublishData("12", types.EventMessage, types.Sample{Temperature: 21}))
	msg := readEvent(t, ws)
	is.Equal(msg.Event, types.EventMessage)

	is.NoErr(ws.WriteJSON(types.RealtimeEvent{Event: types.EventJoinRoom, Room: "0042"}))
	reply = readEvent(t, ws)
	is.Equal(reply.Event, types.EventError)

	is.Equal(app.Hub().Members("12"), 0)

	is.NoErr(ws.WriteJSON(types.RealtimeEvent{Event: types.EventLeaveRoom, Room: "12"}))
	is.Equal(readEvent(t, ws).Event, types.EventError)
}

func TestEventStreams(t *testing.T) {
	is, _, server := setupTest(t, nil)

	res, err := http.Get(server.URL + "/api/v0/events/12")
	is.NoErr(err)
	res.Body.Close()
	is.Equal(res.StatusCode, http.StatusOK)
	is.Equal(res.Header.Get("Content-Type"), "text/event-stream")

	res, err = http.Get(server.URL + "/api/v0/events/0042")
	is.NoErr(err)
	res.Body.Close()
	is.Equal(res.StatusCode, http.StatusBadRequest)
}

func readEvent(t *testing.T, ws *websocket.Conn) types.RealtimeEvent {
	t.Helper()

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))

	e := types.RealtimeEvent{}
	if err := ws.ReadJSON(&e); err != nil {
		t.Fatalf("no event received: %s", err.Error())
	}
	return e
}

func post(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()

	res, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	return res, b
}

func setupTest(t *testing.T, policies *strings.Reader) (*is.I, *application.AppMock, *httptest.Server) {
	is := is.New(t)
	hub := rooms.NewHub(8)

	app := &application.AppMock{
		ControlFunc: func(ctx context.Context, cmd dispatcher.Command) (types.ControlAccepted, error) {
			return types.ControlAccepted{CommandID: "c1", ExpiresAt: time.Now().Add(30 * time.Second)}, nil
		},
		WarehouseFunc: func(ctx context.Context, deviceID string) (string, error) {
			switch deviceID {
			case "ac-1", "light-1", "gw-1":
				return "12", nil
			}
			return "", fmt.Errorf("device %s: %w", deviceID, registry.ErrNotFound)
		},
		SetThresholdFunc: func(ctx context.Context, deviceID string, threshold types.Threshold) error {
			return nil
		},
		GetThresholdFunc: func(ctx context.Context, warehouseID string) (types.Threshold, error) {
			if !rooms.ValidRoomID(warehouseID) {
				return types.Threshold{}, application.ErrInvalidWarehouse
			}
			return types.DisabledThreshold(), nil
		},
		InFlightFunc: func(ctx context.Context) []types.InFlightCommand {
			return []types.InFlightCommand{{CommandID: "c1", SubDeviceID: "ac-1", WarehouseID: "12"}}
		},
		CancelCommandFunc: func(ctx context.Context, subDeviceID, commandID string) error {
			return nil
		},
		HubFunc: func() rooms.Hub {
			return hub
		},
	}

	events := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
	})

	var router *chi.Mux
	var err error
	if policies != nil {
		router, err = RegisterHandlers(context.Background(), chi.NewRouter(), policies, app, events, time.Second)
	} else {
		router, err = RegisterHandlers(context.Background(), chi.NewRouter(), nil, app, events, time.Second)
	}
	is.NoErr(err)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return is, app, server
}

const testPolicy string = `
package example.authz

default allow = false

allow = response {
	input.token == "operator-12"
	response := {"access": {"12": ["climate.read", "climate.control"]}}
}

allow = response {
	input.token == "operator-13"
	response := {"access": {"13": ["climate.read", "climate.control"]}}
}

allow = response {
	input.token == "viewer"
	input.scopes[_] == "climate.read"
	response := {"access": {"*": ["climate.read"]}}
}
`
