package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/diwise/iot-climate-control/internal/pkg/application/automation"
	"github.com/diwise/iot-climate-control/internal/pkg/application/dispatcher"
	"github.com/diwise/iot-climate-control/internal/pkg/application/evaluator"
	"github.com/diwise/iot-climate-control/internal/pkg/application/events"
	"github.com/diwise/iot-climate-control/internal/pkg/application/registry"
	"github.com/diwise/iot-climate-control/internal/pkg/application/rooms"
	"github.com/diwise/iot-climate-control/internal/pkg/application/thresholds"
	"github.com/diwise/iot-climate-control/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

var ErrInvalidWarehouse = errors.New("invalid warehouse id")

//go:generate moq -rm -out application_mock.go . App

type App interface {
	HandleSample(ctx context.Context, warehouseID string, sample types.Sample)
	HandleRFIDError(ctx context.Context, warehouseID string, rfidErr types.RFIDError)
	HandleAck(ctx context.Context, gateway string, ack types.CommandAck)

	Control(ctx context.Context, cmd dispatcher.Command) (types.ControlAccepted, error)
	CancelCommand(ctx context.Context, subDeviceID, commandID string) error
	InFlight(ctx context.Context) []types.InFlightCommand

	Warehouse(ctx context.Context, deviceID string) (string, error)
	GetThreshold(ctx context.Context, warehouseID string) (types.Threshold, error)
	SetThreshold(ctx context.Context, deviceID string, threshold types.Threshold) error

	Hub() rooms.Hub
	Stop()
}

type app struct {
	registry   registry.Registry
	store      thresholds.Store
	dispatcher dispatcher.Dispatcher
	hub        rooms.Hub
	engine     automation.Engine

	alertSender events.AlertSender
	messenger   messaging.MsgContext
}

func New(ctx context.Context, cfg Config, reg registry.Registry, store thresholds.Store, d dispatcher.Dispatcher, hub rooms.Hub, alertSender events.AlertSender, messenger messaging.MsgContext) App {
	a := &app{
		registry:    reg,
		store:       store,
		dispatcher:  d,
		hub:         hub,
		alertSender: alertSender,
		messenger:   messenger,
	}

	a.engine = automation.New(ctx, cfg.Automation, hub, store, reg, evaluator.New(cfg.Margins), d, a.alert)

	d.RegisterOutcomeHandler(a.outcome)

	return a
}

func (a *app) HandleSample(ctx context.Context, warehouseID string, sample types.Sample) {
	if err := a.engine.Enqueue(ctx, warehouseID, sample); err != nil {
		log := logging.GetFromContext(ctx)
		log.Error().Err(err).Str("warehouseID", warehouseID).Msg("sample dropped")
	}
}

func (a *app) HandleRFIDError(ctx context.Context, warehouseID string, rfidErr types.RFIDError) {
	log := logging.GetFromContext(ctx).With().Str("warehouseID", warehouseID).Logger()

	if !rooms.ValidRoomID(warehouseID) {
		log.Error().Msg("rfid error for invalid warehouse dropped")
		return
	}

	if err := a.hub.PublishData(warehouseID, types.EventRFIDError, rfidErr); err != nil {
		log.Error().Err(err).Msg("failed to publish rfid error")
	}
}

func (a *app) HandleAck(ctx context.Context, gateway string, ack types.CommandAck) {
	log := logging.GetFromContext(ctx).With().Str("gateway", gateway).Str("commandID", ack.ID).Logger()

	err := a.dispatcher.Acknowledge(ctx, MapAck(ack))
	if err != nil {
		if errors.Is(err, dispatcher.ErrUnknownCommand) {
			log.Debug().Msg("ignoring ack for a command that is no longer in flight")
			return
		}
		log.Error().Err(err).Msg("failed to handle ack")
		return
	}

	log.Debug().Msg("command acknowledged")
}

// Control dispatches a manual command and waits until it has been handed to the gateway transport.
func (a *app) Control(ctx context.Context, cmd dispatcher.Command) (types.ControlAccepted, error) {
	cmd.Source = dispatcher.Manual

	ticket, err := a.dispatcher.Dispatch(ctx, cmd)
	if err != nil {
		return types.ControlAccepted{}, err
	}

	if err := ticket.Wait(ctx); err != nil {
		return types.ControlAccepted{}, err
	}

	return types.ControlAccepted{
		CommandID: ticket.CommandID,
		ExpiresAt: ticket.ExpiresAt,
	}, nil
}

func (a *app) CancelCommand(ctx context.Context, subDeviceID, commandID string) error {
	return a.dispatcher.Cancel(ctx, subDeviceID, commandID)
}

func (a *app) InFlight(ctx context.Context) []types.InFlightCommand {
	return a.dispatcher.InFlight()
}

// Warehouse returns the warehouse of a device or sub device.
func (a *app) Warehouse(ctx context.Context, deviceID string) (string, error) {
	warehouseID, err := a.registry.Warehouse(ctx, deviceID)
	if err == nil || !errors.Is(err, registry.ErrNotFound) {
		return warehouseID, err
	}

	actuator, err := a.registry.ResolveActuator(ctx, deviceID)
	if err != nil {
		return "", err
	}

	return actuator.WarehouseID, nil
}

func (a *app) GetThreshold(ctx context.Context, warehouseID string) (types.Threshold, error) {
	if !rooms.ValidRoomID(warehouseID) {
		return types.Threshold{}, fmt.Errorf("%w: %q", ErrInvalidWarehouse, warehouseID)
	}

	t, err := a.store.Get(ctx, warehouseID)
	if err != nil {
		return types.Threshold{}, err
	}

	return thresholds.ToWire(t), nil
}

// SetThreshold replaces the threshold of the warehouse the device belongs to.
func (a *app) SetThreshold(ctx context.Context, deviceID string, threshold types.Threshold) error {
	warehouseID, err := a.registry.Warehouse(ctx, deviceID)
	if err != nil {
		return err
	}

	t, err := thresholds.FromWire(threshold)
	if err != nil {
		return err
	}

	if err := a.store.Set(ctx, warehouseID, t); err != nil {
		return err
	}

	log := logging.GetFromContext(ctx)
	log.Info().Str("warehouseID", warehouseID).Str("deviceID", deviceID).Msg("threshold updated")

	return nil
}

func (a *app) Hub() rooms.Hub {
	return a.hub
}

func (a *app) Stop() {
	a.engine.Stop()
	a.dispatcher.Close()
	a.messenger.Close()
}

func (a *app) alert(ctx context.Context, alert types.AlertRaised) {
	log := logging.GetFromContext(ctx).With().Str("warehouseID", alert.WarehouseID).Logger()

	log.Warn().Str("level", alert.Alert.Level).Msg(alert.Alert.Reason)

	if err := a.alertSender.Send(ctx, alert); err != nil {
		log.Error().Err(err).Msg("failed to notify alert subscribers")
	}

	if err := a.messenger.PublishOnTopic(ctx, &alert); err != nil {
		log.Error().Err(err).Msg("failed to publish alert")
	}
}

func (a *app) outcome(ctx context.Context, o dispatcher.Outcome) {
	log := logging.GetFromContext(ctx).With().Str("commandID", o.CommandID).Str("status", string(o.Status)).Logger()

	if o.WarehouseID != "" {
		if err := a.hub.PublishData(o.WarehouseID, types.EventCommandStatus, o.ToType()); err != nil {
			log.Error().Err(err).Msg("failed to publish command status")
		}
	}

	if err := a.messenger.PublishOnTopic(ctx, MapOutcome(o)); err != nil {
		log.Error().Err(err).Msg("failed to publish command outcome")
	}

	a.engine.HandleOutcome(ctx, o)
}
