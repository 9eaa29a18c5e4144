package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/diwise/iot-climate-control/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrTransportUnavailable = errors.New("transport unavailable")
	ErrUnauthorized         = errors.New("unauthorized")
)

// ValidationError is returned when the service rejects a request as invalid.
type ValidationError struct {
	types.ValidationProblem
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type ClimateControlClient interface {
	Control(ctx context.Context, subDeviceID string, req types.ControlRequest) (types.ControlAccepted, error)
	CancelCommand(ctx context.Context, subDeviceID, commandID string) error
	InFlight(ctx context.Context) ([]types.InFlightCommand, error)
	GetThreshold(ctx context.Context, warehouseID string) (types.Threshold, error)
	SetThreshold(ctx context.Context, deviceID string, threshold types.Threshold) error
}

type climateControlClient struct {
	url        string
	token      string
	httpClient http.Client
}

var tracer = otel.Tracer("climate-control-client")

type Option func(*climateControlClient)

// WithToken sends the token as a bearer token with every request.
func WithToken(token string) Option {
	return func(c *climateControlClient) {
		c.token = token
	}
}

func NewClimateControlClient(serviceURL string, opts ...Option) ClimateControlClient {
	c := &climateControlClient{
		url: serviceURL,
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *climateControlClient) Control(ctx context.Context, subDeviceID string, req types.ControlRequest) (types.ControlAccepted, error) {
	var err error
	ctx, span := tracer.Start(ctx, "control-sub-device")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)
	log.Debug().Str("subDeviceID", subDeviceID).Msg("sending control command")

	accepted := types.ControlAccepted{}
	err = c.do(ctx, http.MethodPost, "/api/v0/control/"+url.PathEscape(subDeviceID), req, http.StatusAccepted, &accepted)

	return accepted, err
}

func (c *climateControlClient) CancelCommand(ctx context.Context, subDeviceID, commandID string) error {
	var err error
	ctx, span := tracer.Start(ctx, "cancel-command")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	err = c.do(ctx, http.MethodDelete, "/api/v0/commands/"+url.PathEscape(subDeviceID)+"/"+url.PathEscape(commandID), nil, http.StatusNoContent, nil)
	return err
}

func (c *climateControlClient) InFlight(ctx context.Context) ([]types.InFlightCommand, error) {
	var err error
	ctx, span := tracer.Start(ctx, "get-in-flight-commands")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	response := struct {
		Data []types.InFlightCommand `json:"data"`
	}{}

	err = c.do(ctx, http.MethodGet, "/api/v0/commands", nil, http.StatusOK, &response)

	return response.Data, err
}

func (c *climateControlClient) GetThreshold(ctx context.Context, warehouseID string) (types.Threshold, error) {
	var err error
	ctx, span := tracer.Start(ctx, "get-threshold")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	th := types.Threshold{}
	err = c.do(ctx, http.MethodGet, "/api/v0/threshold/"+url.PathEscape(warehouseID), nil, http.StatusOK, &th)

	return th, err
}

func (c *climateControlClient) SetThreshold(ctx context.Context, deviceID string, threshold types.Threshold) error {
	var err error
	ctx, span := tracer.Start(ctx, "set-threshold")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	err = c.do(ctx, http.MethodPost, "/api/v0/control/"+url.PathEscape(deviceID)+"/threshold", threshold, http.StatusNoContent, nil)
	return err
}

func (c *climateControlClient) do(ctx context.Context, method, path string, body any, expected int, result any) error {
	var reader io.Reader

	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create http request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expected {
		return statusError(resp.StatusCode, respBody)
	}

	if result == nil {
		return nil
	}

	if err = json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to unmarshal response body: %w", err)
	}

	return nil
}

func statusError(code int, body []byte) error {
	switch code {
	case http.StatusBadRequest:
		problem := types.ValidationProblem{}
		if err := json.Unmarshal(body, &problem); err != nil {
			return fmt.Errorf("bad request: %s", string(body))
		}
		return &ValidationError{ValidationProblem: problem}
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusServiceUnavailable:
		return ErrTransportUnavailable
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w (%d)", ErrUnauthorized, code)
	}

	return fmt.Errorf("request failed with status code %d", code)
}
