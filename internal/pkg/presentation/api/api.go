package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/diwise/iot-climate-control/internal/pkg/application"
	"github.com/diwise/iot-climate-control/internal/pkg/application/control"
	"github.com/diwise/iot-climate-control/internal/pkg/application/dispatcher"
	"github.com/diwise/iot-climate-control/internal/pkg/application/rooms"
	"github.com/diwise/iot-climate-control/internal/pkg/application/thresholds"
	"github.com/diwise/iot-climate-control/internal/pkg/presentation/api/auth"
	"github.com/diwise/iot-climate-control/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("iot-climate-control/api")

var errForbidden = errors.New("access to warehouse denied")

// RegisterHandlers adds the control api to the router. Requests are authorized against the
// policies when a policy reader is given. The server sent event streams are only served when
// an events handler is given.
func RegisterHandlers(ctx context.Context, router *chi.Mux, policies io.Reader, app application.App, events http.Handler, writeTimeout time.Duration) (*chi.Mux, error) {

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	log := logging.GetFromContext(ctx)

	requireAccess := func(scopes ...auth.Scope) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler { return next }
	}

	if policies != nil {
		authenticator, err := auth.NewAuthenticator(ctx, policies)
		if err != nil {
			return nil, fmt.Errorf("failed to create api authenticator: %w", err)
		}
		requireAccess = authenticator.RequireAccess
	} else {
		log.Warn().Msg("no authorization policies configured, the control api is open")
	}

	router.Route("/api/v0", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(requireAccess(auth.ScopeControl))

			r.Post("/control/{deviceID}", controlHandler(log, app))
			r.Post("/control/{deviceID}/threshold", setThresholdHandler(log, app))
			r.Delete("/commands/{subDeviceID}/{commandID}", cancelCommandHandler(log, app))
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAccess(auth.ScopeRead))

			r.Get("/threshold/{warehouseID}", getThresholdHandler(log, app))
			r.Get("/commands", getCommandsHandler(log, app))
			r.Get("/ws", realtimeHandler(log, app.Hub(), writeTimeout))

			if events != nil {
				r.Get("/events/{warehouseID}", eventsHandler(log, events))
			}
		})
	})

	return router, nil
}

func controlHandler(log zerolog.Logger, app application.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "control-sub-device")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		subDeviceID := chi.URLParam(r, "deviceID")
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log.With().Str("subDeviceID", subDeviceID).Logger(), ctx)

		req := controlRequest{}
		if err = decodeStrict(r.Body, &req); err != nil {
			requestLogger.Error().Err(err).Msg("unable to decode control request")
			writeProblem(w, http.StatusBadRequest, types.ValidationProblem{Field: "body", Reason: err.Error()})
			return
		}

		p, err := control.FromFields(req.Kind, req.Actuator, req.On, req.Value, req.TTL, "", subDeviceID)
		if err != nil {
			requestLogger.Debug().Err(err).Msg("invalid control request")
			writeError(w, err)
			return
		}

		if err = authorizeDevice(ctx, app, subDeviceID, auth.ScopeControl); err != nil {
			requestLogger.Warn().Err(err).Msg("control request not allowed")
			writeError(w, err)
			return
		}

		cmd := dispatcher.Command{
			SubDeviceID: subDeviceID,
			Kind:        p.Kind,
			Actuator:    p.Actuator,
			On:          p.On,
			Value:       p.Value,
		}
		if req.TTL != nil {
			cmd.TTL = p.TTL
		}

		accepted, err := app.Control(ctx, cmd)
		if err != nil {
			requestLogger.Error().Err(err).Msg("control command rejected")
			writeError(w, err)
			return
		}

		requestLogger.Info().Str("commandID", accepted.CommandID).Msg("control command accepted")

		writeJSON(w, http.StatusAccepted, accepted)
	}
}

func setThresholdHandler(log zerolog.Logger, app application.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "set-threshold")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		deviceID := chi.URLParam(r, "deviceID")
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log.With().Str("deviceID", deviceID).Logger(), ctx)

		req := thresholdRequest{}
		if err = decodeStrict(r.Body, &req); err != nil {
			requestLogger.Error().Err(err).Msg("unable to decode threshold")
			writeProblem(w, http.StatusBadRequest, types.ValidationProblem{Field: "body", Reason: err.Error()})
			return
		}

		th, problem := req.toThreshold()
		if problem != nil {
			err = fmt.Errorf("invalid %s: %s", problem.Field, problem.Reason)
			writeProblem(w, http.StatusBadRequest, *problem)
			return
		}

		if err = authorizeDevice(ctx, app, deviceID, auth.ScopeControl); err != nil {
			requestLogger.Warn().Err(err).Msg("threshold update not allowed")
			writeError(w, err)
			return
		}

		if err = app.SetThreshold(ctx, deviceID, th); err != nil {
			requestLogger.Error().Err(err).Msg("unable to set threshold")
			writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func getThresholdHandler(log zerolog.Logger, app application.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-threshold")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		warehouseID := chi.URLParam(r, "warehouseID")
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log.With().Str("warehouseID", warehouseID).Logger(), ctx)

		if !auth.Allowed(ctx, warehouseID, auth.ScopeRead) {
			err = errForbidden
			writeError(w, err)
			return
		}

		th, err := app.GetThreshold(ctx, warehouseID)
		if err != nil {
			requestLogger.Error().Err(err).Msg("unable to fetch threshold")
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, th)
	}
}

func eventsHandler(log zerolog.Logger, events http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		warehouseID := chi.URLParam(r, "warehouseID")

		if !rooms.ValidRoomID(warehouseID) {
			writeError(w, application.ErrInvalidWarehouse)
			return
		}

		if !auth.Allowed(r.Context(), warehouseID, auth.ScopeRead) {
			log.Warn().Str("warehouseID", warehouseID).Msg("event stream not allowed")
			writeError(w, errForbidden)
			return
		}

		events.ServeHTTP(w, r)
	}
}

func getCommandsHandler(log zerolog.Logger, app application.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-commands")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, _ = o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		commands := []types.InFlightCommand{}
		for _, c := range app.InFlight(ctx) {
			if auth.Allowed(ctx, c.WarehouseID, auth.ScopeRead) {
				commands = append(commands, c)
			}
		}

		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(ApiResponse{
			Meta: &meta{TotalRecords: uint64(len(commands)), Count: uint64(len(commands))},
			Data: commands,
		}.Byte())
	}
}

func cancelCommandHandler(log zerolog.Logger, app application.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "cancel-command")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		subDeviceID := chi.URLParam(r, "subDeviceID")
		commandID := chi.URLParam(r, "commandID")
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log.With().Str("subDeviceID", subDeviceID).Str("commandID", commandID).Logger(), ctx)

		if err = authorizeDevice(ctx, app, subDeviceID, auth.ScopeControl); err != nil {
			writeError(w, err)
			return
		}

		if err = app.CancelCommand(ctx, subDeviceID, commandID); err != nil {
			requestLogger.Debug().Err(err).Msg("unable to cancel command")
			writeError(w, err)
			return
		}

		requestLogger.Info().Msg("command cancelled")

		w.WriteHeader(http.StatusNoContent)
	}
}

func authorizeDevice(ctx context.Context, app application.App, deviceID string, scopes ...auth.Scope) error {
	warehouseID, err := app.Warehouse(ctx, deviceID)
	if err != nil {
		return err
	}

	if !auth.Allowed(ctx, warehouseID, scopes...) {
		return errForbidden
	}

	return nil
}

// writeError maps domain errors onto status codes.
func writeError(w http.ResponseWriter, err error) {
	var cverr *control.ValidationError
	var tverr *thresholds.ValidationError

	switch {
	case errors.As(err, &cverr):
		writeProblem(w, http.StatusBadRequest, types.ValidationProblem{Field: cverr.Field, Reason: cverr.Reason})
	case errors.As(err, &tverr):
		writeProblem(w, http.StatusBadRequest, types.ValidationProblem{Field: tverr.Field, Reason: tverr.Reason})
	case errors.Is(err, application.ErrInvalidWarehouse):
		writeProblem(w, http.StatusBadRequest, types.ValidationProblem{Field: "warehouseId", Reason: err.Error()})
	case errors.Is(err, errForbidden):
		w.WriteHeader(http.StatusForbidden)
	case errors.Is(err, dispatcher.ErrNotFound), errors.Is(err, dispatcher.ErrUnknownCommand):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, dispatcher.ErrTransportUnavailable):
		w.WriteHeader(http.StatusServiceUnavailable)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		w.WriteHeader(http.StatusServiceUnavailable)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func writeProblem(w http.ResponseWriter, status int, p types.ValidationProblem) {
	writeJSON(w, status, p)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}
