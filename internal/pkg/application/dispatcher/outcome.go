package dispatcher

import (
	"context"
	"time"

	"github.com/diwise/iot-climate-control/pkg/types"
)

type Status string

const (
	Acknowledged Status = "acknowledged"
	Expired      Status = "expired"
	Superseded   Status = "superseded"
	Cancelled    Status = "cancelled"
)

// Outcome is the final state of a dispatched command. Every command gets at most one.
type Outcome struct {
	CommandID   string
	SubDeviceID string
	WarehouseID string
	Source      Source
	Status      Status
	Timestamp   time.Time
}

func (o Outcome) Err() error {
	if o.Status == Expired {
		return ErrExpired
	}
	return nil
}

func (o Outcome) ToType() types.CommandStatus {
	return types.CommandStatus{
		CommandID:   o.CommandID,
		SubDeviceID: o.SubDeviceID,
		Source:      string(o.Source),
		Status:      string(o.Status),
		Timestamp:   o.Timestamp,
	}
}

type OutcomeHandler func(ctx context.Context, o Outcome)

func (d *dispatcher) RegisterOutcomeHandler(h OutcomeHandler) {
	d.handlersMu.Lock()
	defer d.handlersMu.Unlock()

	d.handlers = append(d.handlers, h)
}

func (d *dispatcher) report(e *entry, status Status) {
	o := Outcome{
		CommandID:   e.id,
		SubDeviceID: e.cmd.SubDeviceID,
		WarehouseID: e.actuator.WarehouseID,
		Source:      e.cmd.Source,
		Status:      status,
		Timestamp:   time.Now().UTC(),
	}

	d.handlersMu.RLock()
	handlers := d.handlers
	d.handlersMu.RUnlock()

	for _, h := range handlers {
		h(d.ctx, o)
	}
}
