package dispatcher

import (
	"context"
	"fmt"
	"time"

	"github.com/diwise/iot-climate-control/internal/pkg/application/registry"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

// Ticket follows the delivery of a dispatched command to its gateway.
type Ticket struct {
	CommandID string
	ExpiresAt time.Time

	done chan struct{}
	err  error
}

func newTicket(id string, expiresAt time.Time) *Ticket {
	return &Ticket{
		CommandID: id,
		ExpiresAt: expiresAt,
		done:      make(chan struct{}),
	}
}

// ResolvedTicket returns a ticket whose delivery has already completed with err.
func ResolvedTicket(id string, expiresAt time.Time, err error) *Ticket {
	t := newTicket(id, expiresAt)
	t.resolve(err)
	return t
}

func (t *Ticket) resolve(err error) {
	t.err = err
	close(t.done)
}

// Wait blocks until the packet has been handed to the transport. A failed send does not
// remove the command from the in-flight table, it expires with its ttl.
func (t *Ticket) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

type job struct {
	ctx     context.Context
	route   registry.Route
	payload []byte
	ticket  *Ticket
}

// enqueue places a packet on the ordered outbox of its gateway, starting the outbox on first use.
func (d *dispatcher) enqueue(ctx context.Context, route registry.Route, payload []byte, ticket *Ticket) {
	d.outboxMu.Lock()
	defer d.outboxMu.Unlock()

	if d.closed {
		ticket.resolve(fmt.Errorf("dispatcher is closed: %w", ErrTransportUnavailable))
		return
	}

	outbox, ok := d.outboxes[route.Gateway]
	if !ok {
		outbox = make(chan job, d.cfg.OutboxSize)
		d.outboxes[route.Gateway] = outbox
		go d.drain(route.Gateway, outbox)
	}

	select {
	case outbox <- job{ctx: ctx, route: route, payload: payload, ticket: ticket}:
	default:
		log := logging.GetFromContext(ctx)
		log.Error().Str("gateway", route.Gateway).Msg("outbox is full, dropping packet")
		ticket.resolve(fmt.Errorf("outbox for %s is full: %w", route.Gateway, ErrTransportUnavailable))
	}
}

func (d *dispatcher) drain(gateway string, outbox chan job) {
	log := logging.GetFromContext(d.ctx).With().Str("gateway", gateway).Logger()
	log.Debug().Msg("starting outbox")

	for {
		select {
		case <-d.ctx.Done():
			log.Debug().Msg("stopping outbox")
			return
		case j := <-outbox:
			// the request that dispatched the packet may already be gone
			err := d.transport.Send(d.ctx, j.route.Topic, j.payload)
			if err != nil {
				jobLog := logging.GetFromContext(j.ctx)
				jobLog.Error().Err(err).Msg("failed to send control packet")
				err = fmt.Errorf("%w: %s", ErrTransportUnavailable, err.Error())
			}
			j.ticket.resolve(err)
		}
	}
}

// closeOutboxes stops accepting packets and fails the tickets of packets that were never sent.
func (d *dispatcher) closeOutboxes() {
	d.outboxMu.Lock()
	defer d.outboxMu.Unlock()

	d.closed = true

	for gateway, outbox := range d.outboxes {
		for pending := true; pending; {
			select {
			case j := <-outbox:
				j.ticket.resolve(fmt.Errorf("outbox for %s closed before sending: %w", gateway, ErrTransportUnavailable))
			default:
				pending = false
			}
		}
	}
}
