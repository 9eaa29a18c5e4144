package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/diwise/iot-climate-control/internal/pkg/application/control"
	"github.com/diwise/iot-climate-control/internal/pkg/application/registry"
	"github.com/diwise/iot-climate-control/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/google/uuid"
)

type Source string

const (
	Manual    Source = "manual"
	Automatic Source = "automatic"
)

// Command is a request to change the state of one sub device.
type Command struct {
	SubDeviceID string
	Kind        control.Kind
	Actuator    control.ActuatorType
	On          bool
	Value       *float64
	TTL         time.Duration
	Source      Source
}

// Ack is a gateway's confirmation that a command has been carried out.
type Ack struct {
	ID     string   `json:"id"`
	Target string   `json:"target"`
	On     bool     `json:"on"`
	Value  *float64 `json:"value,omitempty"`
}

var (
	ErrNotFound             = registry.ErrNotFound
	ErrTransportUnavailable = errors.New("transport unavailable")
	ErrUnknownCommand       = errors.New("unknown command")
	ErrExpired              = errors.New("command expired")
)

//go:generate moq -rm -out transport_mock.go . Transport

// Transport delivers an encoded control packet to the command topic of a gateway.
type Transport interface {
	Send(ctx context.Context, topic string, payload []byte) error
}

type Config struct {
	DefaultTTL time.Duration `yaml:"defaultTTL"`
	OutboxSize int           `yaml:"outboxSize"`
}

func DefaultConfig() Config {
	return Config{
		DefaultTTL: control.DefaultTTL,
		OutboxSize: 32,
	}
}

//go:generate moq -rm -out dispatcher_mock.go . Dispatcher

type Dispatcher interface {
	Dispatch(ctx context.Context, cmd Command) (*Ticket, error)
	Acknowledge(ctx context.Context, ack Ack) error
	Cancel(ctx context.Context, subDeviceID, commandID string) error
	InFlight() []types.InFlightCommand

	RegisterOutcomeHandler(h OutcomeHandler)
	Close()
}

type entry struct {
	id        string
	cmd       Command
	actuator  registry.Actuator
	issuedAt  time.Time
	expiresAt time.Time
	timer     *time.Timer
}

type dispatcher struct {
	ctx    context.Context
	cancel context.CancelFunc

	cfg       Config
	registry  registry.Registry
	transport Transport

	mu       sync.Mutex
	bySubDev map[string]*entry
	byID     map[string]*entry

	outboxMu sync.Mutex
	outboxes map[string]chan job
	closed   bool

	handlersMu sync.RWMutex
	handlers   []OutcomeHandler
}

func New(ctx context.Context, cfg Config, reg registry.Registry, transport Transport) Dispatcher {
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = control.DefaultTTL
	}
	if cfg.OutboxSize <= 0 {
		cfg.OutboxSize = DefaultConfig().OutboxSize
	}

	ctx, cancel := context.WithCancel(ctx)

	return &dispatcher{
		ctx:       ctx,
		cancel:    cancel,
		cfg:       cfg,
		registry:  reg,
		transport: transport,
		bySubDev:  map[string]*entry{},
		byID:      map[string]*entry{},
		outboxes:  map[string]chan job{},
	}
}

// Dispatch validates cmd, registers it as in flight and queues it for delivery. Sending happens
// asynchronously, the returned ticket reports the transport result.
func (d *dispatcher) Dispatch(ctx context.Context, cmd Command) (*Ticket, error) {
	log := logging.GetFromContext(ctx).With().Str("subDeviceID", cmd.SubDeviceID).Str("source", string(cmd.Source)).Logger()

	a, err := d.registry.ResolveActuator(ctx, cmd.SubDeviceID)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve %s: %w", cmd.SubDeviceID, err)
	}

	if !a.Active {
		return nil, &control.ValidationError{Field: "target", Reason: "not active"}
	}

	if cmd.Actuator != a.Type {
		return nil, &control.ValidationError{Field: "actuator", Reason: fmt.Sprintf("%s is a %s", a.ID, a.Type)}
	}

	ttl := cmd.TTL
	if ttl == 0 {
		ttl = d.cfg.DefaultTTL
	}

	p, err := control.New(cmd.Kind, a.Type, cmd.On, cmd.Value, ttl, a.Range)
	if err != nil {
		return nil, err
	}

	route, err := d.registry.ResolveGatewayRoute(ctx, a.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("unable to route %s: %w", cmd.SubDeviceID, err)
	}

	if !route.Active {
		return nil, fmt.Errorf("gateway %s is not active: %w", route.Gateway, ErrTransportUnavailable)
	}

	p.ID = uuid.NewString()
	p.Target = a.ID

	payload, err := control.Encode(p, a.Range)
	if err != nil {
		return nil, err
	}

	cmd.TTL = p.TTL
	cmd.Value = p.Value

	now := time.Now().UTC()
	e := &entry{
		id:        p.ID,
		cmd:       cmd,
		actuator:  a,
		issuedAt:  now,
		expiresAt: now.Add(p.TTL),
	}

	log = log.With().Str("commandID", e.id).Logger()
	ticket := newTicket(e.id, e.expiresAt)

	// packets for a sub device reach its outbox in the order they became in flight
	d.mu.Lock()
	superseded := d.bySubDev[cmd.SubDeviceID]
	if superseded != nil {
		superseded.timer.Stop()
		delete(d.byID, superseded.id)
	}
	d.bySubDev[cmd.SubDeviceID] = e
	d.byID[e.id] = e
	e.timer = time.AfterFunc(p.TTL, func() { d.expire(e) })
	d.enqueue(logging.NewContextWithLogger(ctx, log), route, payload, ticket)
	d.mu.Unlock()

	if superseded != nil {
		log.Debug().Str("superseded", superseded.id).Msg("command supersedes an earlier command")
		d.report(superseded, Superseded)
	}

	return ticket, nil
}

func (d *dispatcher) expire(e *entry) {
	d.mu.Lock()
	if d.byID[e.id] != e {
		d.mu.Unlock()
		return
	}
	delete(d.byID, e.id)
	delete(d.bySubDev, e.cmd.SubDeviceID)
	d.mu.Unlock()

	log := logging.GetFromContext(d.ctx)
	log.Info().Str("commandID", e.id).Str("subDeviceID", e.cmd.SubDeviceID).Msg("command expired without acknowledgement")

	d.report(e, Expired)
}

// Acknowledge clears an in-flight command and records the confirmed state of its sub device.
func (d *dispatcher) Acknowledge(ctx context.Context, ack Ack) error {
	d.mu.Lock()
	e, ok := d.byID[ack.ID]
	if !ok || (ack.Target != "" && ack.Target != e.cmd.SubDeviceID) {
		d.mu.Unlock()
		return fmt.Errorf("ack for %s: %w", ack.ID, ErrUnknownCommand)
	}
	e.timer.Stop()
	delete(d.byID, e.id)
	delete(d.bySubDev, e.cmd.SubDeviceID)
	d.mu.Unlock()

	log := logging.GetFromContext(ctx)

	value := ack.Value
	if value == nil {
		value = e.cmd.Value
	}

	if err := d.registry.RecordCommanded(ctx, e.cmd.SubDeviceID, ack.On, value); err != nil {
		log.Error().Err(err).Str("subDeviceID", e.cmd.SubDeviceID).Msg("failed to record commanded state")
	}

	d.report(e, Acknowledged)

	return nil
}

func (d *dispatcher) Cancel(ctx context.Context, subDeviceID, commandID string) error {
	d.mu.Lock()
	e, ok := d.bySubDev[subDeviceID]
	if !ok || e.id != commandID {
		d.mu.Unlock()
		return fmt.Errorf("cancel %s for %s: %w", commandID, subDeviceID, ErrUnknownCommand)
	}
	e.timer.Stop()
	delete(d.byID, e.id)
	delete(d.bySubDev, subDeviceID)
	d.mu.Unlock()

	log := logging.GetFromContext(ctx)
	log.Info().Str("commandID", commandID).Str("subDeviceID", subDeviceID).Msg("command cancelled")

	d.report(e, Cancelled)

	return nil
}

// InFlight returns the commands waiting for acknowledgement, oldest first.
func (d *dispatcher) InFlight() []types.InFlightCommand {
	d.mu.Lock()
	list := make([]types.InFlightCommand, 0, len(d.byID))
	for _, e := range d.byID {
		list = append(list, e.toType())
	}
	d.mu.Unlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].IssuedAt.Equal(list[j].IssuedAt) {
			return list[i].CommandID < list[j].CommandID
		}
		return list[i].IssuedAt.Before(list[j].IssuedAt)
	})

	return list
}

// Close stops all timers and outboxes. Commands still in flight are dropped without outcome.
func (d *dispatcher) Close() {
	d.cancel()
	d.closeOutboxes()

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, e := range d.byID {
		e.timer.Stop()
	}

	d.byID = map[string]*entry{}
	d.bySubDev = map[string]*entry{}
}

func (e *entry) toType() types.InFlightCommand {
	on := 0
	if e.cmd.On {
		on = 1
	}

	return types.InFlightCommand{
		CommandID:   e.id,
		SubDeviceID: e.cmd.SubDeviceID,
		WarehouseID: e.actuator.WarehouseID,
		Source:      string(e.cmd.Source),
		Kind:        int(e.cmd.Kind),
		Actuator:    int(e.cmd.Actuator),
		On:          on,
		Value:       e.cmd.Value,
		IssuedAt:    e.issuedAt,
		ExpiresAt:   e.expiresAt,
	}
}
