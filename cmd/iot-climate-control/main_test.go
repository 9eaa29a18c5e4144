package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diwise/iot-climate-control/internal/pkg/application"
	"github.com/diwise/iot-climate-control/internal/pkg/application/webevents"
	"github.com/diwise/iot-climate-control/pkg/types"
	"github.com/matryer/is"
)

func TestHealth(t *testing.T) {
	is, server := setupTest(t)

	resp, _ := testRequest(is, server, http.MethodGet, "/health", nil)
	is.Equal(resp.StatusCode, http.StatusNoContent)
}

func TestThresholdCanBeSetThroughTheGateway(t *testing.T) {
	is, server := setupTest(t)

	resp, _ := testRequest(is, server, http.MethodPost, "/api/v0/control/aa:00:00:00:00:01/threshold",
		strings.NewReader(`{"temp_lo":18,"temp_hi":30,"hum_lo":-1,"hum_hi":101,"gas_hi":1000,"light_lo":-100,"light_hi":3000}`))
	is.Equal(resp.StatusCode, http.StatusNoContent)

	resp, body := testRequest(is, server, http.MethodGet, "/api/v0/threshold/12", nil)
	is.Equal(resp.StatusCode, http.StatusOK)

	th := types.Threshold{}
	is.NoErr(json.Unmarshal([]byte(body), &th))
	is.Equal(th.TempLo, 18.0)
	is.Equal(th.TempHi, 30.0)
	is.Equal(th.HumHi, types.HumDisabledHi)
}

func TestUnknownWarehouseHasNoThreshold(t *testing.T) {
	is, server := setupTest(t)

	resp, body := testRequest(is, server, http.MethodGet, "/api/v0/threshold/99", nil)
	is.Equal(resp.StatusCode, http.StatusOK)

	th := types.Threshold{}
	is.NoErr(json.Unmarshal([]byte(body), &th))
	is.Equal(th, types.DisabledThreshold())
}

func TestValueOutsideTheActuatorRangeIsRejected(t *testing.T) {
	is, server := setupTest(t)

	resp, body := testRequest(is, server, http.MethodPost, "/api/v0/control/ac-1", strings.NewReader(`{"kind":2,"actuator":3,"on":1,"value":999}`))
	is.Equal(resp.StatusCode, http.StatusBadRequest)

	problem := types.ValidationProblem{}
	is.NoErr(json.Unmarshal([]byte(body), &problem))
	is.Equal(problem.Field, "value")
}

func TestCommandStaysInFlightWhenBrokerIsUnavailable(t *testing.T) {
	is, server := setupTest(t)

	resp, _ := testRequest(is, server, http.MethodPost, "/api/v0/control/ac-1", strings.NewReader(`{"kind":2,"actuator":3,"on":1,"value":22}`))
	is.Equal(resp.StatusCode, http.StatusServiceUnavailable)

	resp, body := testRequest(is, server, http.MethodGet, "/api/v0/commands", nil)
	is.Equal(resp.StatusCode, http.StatusOK)
	is.True(strings.Contains(body, `"subDeviceId":"ac-1"`))
}

func TestUnknownSubDevice(t *testing.T) {
	is, server := setupTest(t)

	resp, _ := testRequest(is, server, http.MethodPost, "/api/v0/control/nosuchdevice", strings.NewReader(`{"kind":1,"actuator":3,"on":1}`))
	is.Equal(resp.StatusCode, http.StatusNotFound)
}

func setupTest(t *testing.T) (*is.I, *httptest.Server) {
	is := is.New(t)
	ctx := context.Background()

	t.Setenv("RABBITMQ_DISABLED", "true")

	flags := defaultFlags()
	cfg := application.DefaultConfig()

	we := webevents.New()

	app, _, err := initialize(ctx, flags, &cfg, we, io.NopCloser(strings.NewReader(devicesCSV)))
	is.NoErr(err)
	t.Cleanup(app.Stop)

	r, err := setupRouter(ctx, nil, app, we, &cfg)
	is.NoErr(err)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	t.Cleanup(we.Shutdown)

	return is, server
}

func testRequest(is *is.I, ts *httptest.Server, method, path string, body io.Reader) (*http.Response, string) {
	req, _ := http.NewRequest(method, ts.URL+path, body)
	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err)
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	return resp, string(respBody)
}

const devicesCSV string = `mac;type;state;parent;warehouse;x;y;subDevices
aa:00:00:00:00:01;gateway;active;;12;0;0;
aa:00:00:00:00:02;controller-node;active;aa:00:00:00:00:01;12;4.5;2;ac-1:3:16:30,fan-1:1`
