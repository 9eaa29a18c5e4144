package automation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/diwise/iot-climate-control/internal/pkg/application/dispatcher"
	"github.com/diwise/iot-climate-control/internal/pkg/application/evaluator"
	"github.com/diwise/iot-climate-control/internal/pkg/application/registry"
	"github.com/diwise/iot-climate-control/internal/pkg/application/rooms"
	"github.com/diwise/iot-climate-control/internal/pkg/application/thresholds"
	"github.com/diwise/iot-climate-control/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

type Config struct {
	QueueSize      int           `yaml:"queueSize"`
	SilenceTimeout time.Duration `yaml:"silenceTimeout"`
}

func DefaultConfig() Config {
	return Config{
		QueueSize:      64,
		SilenceTimeout: 15 * time.Minute,
	}
}

var (
	ErrQueueFull        = errors.New("warehouse queue is full")
	ErrInvalidWarehouse = errors.New("invalid warehouse id")
	ErrStopped          = errors.New("automation engine stopped")
)

// AlertFunc is called for every alert raised by the engine.
type AlertFunc func(ctx context.Context, alert types.AlertRaised)

//go:generate moq -rm -out automation_mock.go . Engine

type Engine interface {
	Enqueue(ctx context.Context, warehouseID string, sample types.Sample) error
	HandleOutcome(ctx context.Context, outcome dispatcher.Outcome)
	Stop()
}

type job struct {
	ctx     context.Context
	sample  types.Sample
	outcome *dispatcher.Outcome
}

// automatic is an automatic command that has not reached its outcome yet.
type automatic struct {
	trigger    evaluator.Trigger
	actuatorID string
	on         bool
}

type worker struct {
	warehouseID string
	queue       chan job
	state       evaluator.State

	pending map[string]automatic
	latest  map[string]string
}

type engine struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	cfg        Config
	hub        rooms.Hub
	store      thresholds.Store
	registry   registry.Registry
	evaluator  evaluator.Evaluator
	dispatcher dispatcher.Dispatcher
	alert      AlertFunc

	mu      sync.Mutex
	workers map[string]*worker

	watchdog *watchdog
}

func New(ctx context.Context, cfg Config, hub rooms.Hub, store thresholds.Store, reg registry.Registry, eval evaluator.Evaluator, d dispatcher.Dispatcher, alert AlertFunc) Engine {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultConfig().QueueSize
	}

	ctx, cancel := context.WithCancel(ctx)

	e := &engine{
		ctx:        ctx,
		cancel:     cancel,
		cfg:        cfg,
		hub:        hub,
		store:      store,
		registry:   reg,
		evaluator:  eval,
		dispatcher: d,
		alert:      alert,
		workers:    map[string]*worker{},
	}

	if cfg.SilenceTimeout > 0 {
		e.watchdog = newWatchdog(cfg.SilenceTimeout, e.raise)
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			e.watchdog.run(ctx)
		}()
	}

	return e
}

// Enqueue hands a sample to the worker of its warehouse. Samples of one warehouse are processed
// in the order they are enqueued.
func (e *engine) Enqueue(ctx context.Context, warehouseID string, sample types.Sample) error {
	if !rooms.ValidRoomID(warehouseID) {
		return fmt.Errorf("%w: %q", ErrInvalidWarehouse, warehouseID)
	}

	w, err := e.worker(warehouseID)
	if err != nil {
		return err
	}

	select {
	case w.queue <- job{ctx: ctx, sample: sample}:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrQueueFull, warehouseID)
	}
}

func (e *engine) worker(warehouseID string) (*worker, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ctx.Err() != nil {
		return nil, ErrStopped
	}

	w, ok := e.workers[warehouseID]
	if !ok {
		w = &worker{
			warehouseID: warehouseID,
			queue:       make(chan job, e.cfg.QueueSize),
			pending:     map[string]automatic{},
			latest:      map[string]string{},
		}
		e.workers[warehouseID] = w

		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			e.run(w)
		}()
	}

	return w, nil
}

func (e *engine) run(w *worker) {
	for {
		select {
		case <-e.ctx.Done():
			return
		case j := <-w.queue:
			if j.outcome != nil {
				e.settle(j.ctx, w, *j.outcome)
				continue
			}
			e.process(j.ctx, w, j.sample)
		}
	}
}

func (e *engine) process(ctx context.Context, w *worker, sample types.Sample) {
	log := logging.GetFromContext(ctx).With().Str("warehouseID", w.warehouseID).Logger()
	ctx = logging.NewContextWithLogger(ctx, log)

	if e.watchdog != nil {
		e.watchdog.observed(w.warehouseID, time.Now())
	}

	if err := e.hub.PublishData(w.warehouseID, types.EventMessage, sample); err != nil {
		log.Error().Err(err).Msg("failed to publish sample")
	}

	th, err := e.store.Get(ctx, w.warehouseID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get threshold, skipping evaluation")
		return
	}

	actuators, err := e.registry.Actuators(ctx, w.warehouseID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list actuators, skipping evaluation")
		return
	}

	result, next := e.evaluator.Evaluate(sample, th, actuators, w.state)

	failed := map[evaluator.Trigger]int{}
	dispatched := map[evaluator.Trigger]int{}

	for _, d := range result.Decisions {
		cmd := dispatcher.Command{
			SubDeviceID: d.ActuatorID,
			Kind:        d.Kind,
			Actuator:    d.Actuator,
			On:          d.On,
			Value:       d.Value,
			Source:      dispatcher.Automatic,
		}

		dispatched[d.Trigger]++

		ticket, err := e.dispatcher.Dispatch(ctx, cmd)
		if err != nil {
			log.Error().Err(err).Str("subDeviceID", d.ActuatorID).Str("trigger", d.Trigger.String()).Msg("failed to dispatch automatic command")
			failed[d.Trigger]++
			continue
		}

		w.pending[ticket.CommandID] = automatic{trigger: d.Trigger, actuatorID: d.ActuatorID, on: d.On}
		w.latest[d.ActuatorID] = ticket.CommandID

		log.Info().Str("subDeviceID", d.ActuatorID).Str("commandID", ticket.CommandID).Bool("on", d.On).Msgf("%s command dispatched", d.Trigger)
	}

	// a trigger whose commands were all rejected keeps its previous state and is tried again with the next sample
	for t, n := range failed {
		if n != dispatched[t] {
			continue
		}
		if w.state.Engaged(t) {
			next = next.Engage(t)
		} else {
			next = next.Disengage(t)
		}
	}

	w.state = next

	for _, b := range result.Breaches {
		e.raise(ctx, types.AlertRaised{
			WarehouseID: w.warehouseID,
			Alert:       types.Alert{Reason: b.String(), Level: alertLevel(b)},
			Timestamp:   time.Now().UTC(),
		})
	}
}

// HandleOutcome passes the outcome of an automatic command to the worker that dispatched it.
func (e *engine) HandleOutcome(ctx context.Context, outcome dispatcher.Outcome) {
	if outcome.Source != dispatcher.Automatic {
		return
	}

	e.mu.Lock()
	w, ok := e.workers[outcome.WarehouseID]
	e.mu.Unlock()

	if !ok {
		return
	}

	j := job{ctx: ctx, outcome: &outcome}

	// superseded outcomes are reported from within Dispatch, on the worker itself
	select {
	case w.queue <- j:
	default:
		go func() {
			select {
			case w.queue <- j:
			case <-e.ctx.Done():
			}
		}()
	}
}

// settle updates the hysteresis state with the outcome of an automatic command. A command that
// never took effect returns its trigger to where it was before the command, so that the next
// sample dispatches it again.
func (e *engine) settle(ctx context.Context, w *worker, outcome dispatcher.Outcome) {
	cmd, ok := w.pending[outcome.CommandID]
	if !ok {
		return
	}
	delete(w.pending, outcome.CommandID)

	if w.latest[cmd.actuatorID] != outcome.CommandID {
		return
	}
	delete(w.latest, cmd.actuatorID)

	if outcome.Status == dispatcher.Acknowledged {
		return
	}

	log := logging.GetFromContext(ctx).With().Str("warehouseID", w.warehouseID).Str("commandID", outcome.CommandID).Logger()
	log.Info().Str("status", string(outcome.Status)).Bool("on", cmd.on).Msgf("%s command did not take effect", cmd.trigger)

	if cmd.on {
		w.state = w.state.Disengage(cmd.trigger)
	} else {
		w.state = w.state.Engage(cmd.trigger)
	}
}

func (e *engine) raise(ctx context.Context, alert types.AlertRaised) {
	if err := e.hub.PublishData(alert.WarehouseID, types.EventAlert, alert.Alert); err != nil {
		log := logging.GetFromContext(ctx)
		log.Error().Err(err).Msg("failed to publish alert")
	}

	if e.alert != nil {
		e.alert(ctx, alert)
	}
}

func alertLevel(b evaluator.Breach) string {
	if b.Trigger == evaluator.Ventilation {
		return types.AlertLevelCritical
	}
	return types.AlertLevelWarning
}

// Stop terminates all workers. Queued samples are discarded.
func (e *engine) Stop() {
	e.mu.Lock()
	e.cancel()
	e.mu.Unlock()

	e.wg.Wait()
}
