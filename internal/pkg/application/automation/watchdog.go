package automation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/diwise/iot-climate-control/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

// watchdog raises an alert when a warehouse that has been reporting samples goes silent.
type watchdog struct {
	timeout time.Duration
	raise   func(context.Context, types.AlertRaised)
	now     func() time.Time

	mu       sync.Mutex
	lastSeen map[string]time.Time
	silent   map[string]bool
}

func newWatchdog(timeout time.Duration, raise func(context.Context, types.AlertRaised)) *watchdog {
	return &watchdog{
		timeout:  timeout,
		raise:    raise,
		now:      time.Now,
		lastSeen: map[string]time.Time{},
		silent:   map[string]bool{},
	}
}

func (w *watchdog) observed(warehouseID string, at time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.lastSeen[warehouseID] = at
	w.silent[warehouseID] = false
}

func (w *watchdog) run(ctx context.Context) {
	log := logging.GetFromContext(ctx)

	for {
		wait := w.check(ctx)
		log.Debug().Msgf("watchdog will sleep for %s", wait)

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}

// check raises alerts for warehouses that just went silent and returns the time until the next
// warehouse may go silent.
func (w *watchdog) check(ctx context.Context) time.Duration {
	now := w.now()
	next := w.timeout
	alerts := []types.AlertRaised{}

	w.mu.Lock()
	for id, last := range w.lastSeen {
		if w.silent[id] {
			continue
		}

		remaining := w.timeout - now.Sub(last)
		if remaining <= 0 {
			w.silent[id] = true
			alerts = append(alerts, types.AlertRaised{
				WarehouseID: id,
				Alert: types.Alert{
					Reason: fmt.Sprintf("no samples received since %s", last.UTC().Format(time.RFC3339)),
					Level:  types.AlertLevelInfo,
				},
				Timestamp: now.UTC(),
			})
			continue
		}

		if remaining < next {
			next = remaining
		}
	}
	w.mu.Unlock()

	for _, a := range alerts {
		w.raise(ctx, a)
	}

	return next
}
