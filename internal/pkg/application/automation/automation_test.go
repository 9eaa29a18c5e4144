package automation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/diwise/iot-climate-control/internal/pkg/application/control"
	"github.com/diwise/iot-climate-control/internal/pkg/application/dispatcher"
	"github.com/diwise/iot-climate-control/internal/pkg/application/evaluator"
	"github.com/diwise/iot-climate-control/internal/pkg/application/registry"
	"github.com/diwise/iot-climate-control/internal/pkg/application/rooms"
	"github.com/diwise/iot-climate-control/internal/pkg/application/thresholds"
	"github.com/diwise/iot-climate-control/pkg/types"
	"github.com/matryer/is"
)

func TestHotSampleStartsCoolingAndRaisesAlert(t *testing.T) {
	is, ctx, hub, d, alerts := testSetup(t, nil)

	observer := hub.Connect()
	_, err := hub.Join(observer, "12")
	is.NoErr(err)

	e := New(ctx, DefaultConfig(), hub, testStore(), testRegistry(), evaluator.New(evaluator.DefaultConfig()), d, alertsTo(alerts))
	defer e.Stop()

	is.NoErr(e.Enqueue(ctx, "12", types.Sample{Temperature: 32, Humidity: 45}))

	a := receive(t, alerts)
	is.Equal(a.WarehouseID, "12")
	is.Equal(a.Alert.Level, types.AlertLevelWarning)

	calls := d.DispatchCalls()
	is.Equal(len(calls), 1)
	is.Equal(calls[0].Cmd.SubDeviceID, "ac-1")
	is.Equal(calls[0].Cmd.Source, dispatcher.Automatic)
	is.Equal(calls[0].Cmd.Kind, control.KindSetValue)
	is.Equal(*calls[0].Cmd.Value, 29.0)

	is.Equal(nextEvent(t, observer).Event, types.EventMessage)
	is.Equal(nextEvent(t, observer).Event, types.EventAlert)
}

func TestSamplesOfAWarehouseAreProcessedInOrder(t *testing.T) {
	is, ctx, hub, d, _ := testSetup(t, nil)

	observer := hub.Connect()
	_, err := hub.Join(observer, "12")
	is.NoErr(err)

	e := New(ctx, DefaultConfig(), hub, testStore(), testRegistry(), evaluator.New(evaluator.DefaultConfig()), d, nil)
	defer e.Stop()

	for i := 0; i < 10; i++ {
		is.NoErr(e.Enqueue(ctx, "12", types.Sample{Temperature: float64(20 + i)}))
	}

	for i := 0; i < 10; i++ {
		ev := nextEvent(t, observer)
		is.Equal(ev.Event, types.EventMessage)

		s := types.Sample{}
		is.NoErr(json.Unmarshal(ev.Data, &s))
		is.Equal(s.Temperature, float64(20+i))
	}
}

func TestSamplesForInvalidWarehousesAreRejected(t *testing.T) {
	is, ctx, hub, d, _ := testSetup(t, nil)

	e := New(ctx, DefaultConfig(), hub, testStore(), testRegistry(), evaluator.New(evaluator.DefaultConfig()), d, nil)
	defer e.Stop()

	err := e.Enqueue(ctx, "north-wing", types.Sample{})
	is.True(errors.Is(err, ErrInvalidWarehouse))
}

func TestRejectedCommandsAreRetriedWithTheNextSample(t *testing.T) {
	attempts := 0
	is, ctx, hub, d, alerts := testSetup(t, func(ctx context.Context, cmd dispatcher.Command) (*dispatcher.Ticket, error) {
		attempts++
		if attempts == 1 {
			return nil, dispatcher.ErrTransportUnavailable
		}
		return &dispatcher.Ticket{CommandID: "c2"}, nil
	})

	e := New(ctx, DefaultConfig(), hub, testStore(), testRegistry(), evaluator.New(evaluator.DefaultConfig()), d, alertsTo(alerts))
	defer e.Stop()

	is.NoErr(e.Enqueue(ctx, "12", types.Sample{Temperature: 32}))
	receive(t, alerts)

	is.NoErr(e.Enqueue(ctx, "12", types.Sample{Temperature: 32}))
	receive(t, alerts)

	is.NoErr(e.Enqueue(ctx, "12", types.Sample{Temperature: 32}))
	is.NoErr(e.Enqueue(ctx, "12", types.Sample{Temperature: 28}))

	time.Sleep(50 * time.Millisecond)
	is.Equal(len(d.DispatchCalls()), 3) // failed ON, successful ON and the final OFF
}

func TestFailedReleaseIsRetriedWithTheNextSample(t *testing.T) {
	attempts := 0
	is, ctx, hub, d, alerts := testSetup(t, func(ctx context.Context, cmd dispatcher.Command) (*dispatcher.Ticket, error) {
		attempts++
		if attempts == 2 {
			return nil, dispatcher.ErrTransportUnavailable
		}
		return &dispatcher.Ticket{CommandID: fmt.Sprintf("c%d", attempts)}, nil
	})

	e := New(ctx, DefaultConfig(), hub, testStore(), testRegistry(), evaluator.New(evaluator.DefaultConfig()), d, alertsTo(alerts))
	defer e.Stop()

	is.NoErr(e.Enqueue(ctx, "12", types.Sample{Temperature: 32}))
	receive(t, alerts)

	is.NoErr(e.Enqueue(ctx, "12", types.Sample{Temperature: 28}))
	is.NoErr(e.Enqueue(ctx, "12", types.Sample{Temperature: 28}))
	is.NoErr(e.Enqueue(ctx, "12", types.Sample{Temperature: 28}))

	calls := dispatchCalls(t, d, 3)
	is.True(calls[0].Cmd.On)
	is.True(!calls[1].Cmd.On) // rejected
	is.True(!calls[2].Cmd.On)

	time.Sleep(50 * time.Millisecond)
	is.Equal(len(d.DispatchCalls()), 3)
}

func TestCommandsThatNeverTookEffectAreDispatchedAgain(t *testing.T) {
	for _, status := range []dispatcher.Status{dispatcher.Expired, dispatcher.Superseded, dispatcher.Cancelled} {
		t.Run(string(status), func(t *testing.T) {
			attempts := 0
			is, ctx, hub, d, alerts := testSetup(t, func(ctx context.Context, cmd dispatcher.Command) (*dispatcher.Ticket, error) {
				attempts++
				return &dispatcher.Ticket{CommandID: fmt.Sprintf("c%d", attempts)}, nil
			})

			e := New(ctx, DefaultConfig(), hub, testStore(), testRegistry(), evaluator.New(evaluator.DefaultConfig()), d, alertsTo(alerts))
			defer e.Stop()

			is.NoErr(e.Enqueue(ctx, "12", types.Sample{Temperature: 32}))
			receive(t, alerts)
			dispatchCalls(t, d, 1)

			e.HandleOutcome(ctx, dispatcher.Outcome{CommandID: "c1", SubDeviceID: "ac-1", WarehouseID: "12", Source: dispatcher.Automatic, Status: status})

			is.NoErr(e.Enqueue(ctx, "12", types.Sample{Temperature: 32}))
			receive(t, alerts)

			calls := dispatchCalls(t, d, 2)
			is.Equal(calls[1].Cmd.SubDeviceID, "ac-1")
			is.True(calls[1].Cmd.On)

			// the release is lost as well and must be sent again
			is.NoErr(e.Enqueue(ctx, "12", types.Sample{Temperature: 28}))
			dispatchCalls(t, d, 3)

			e.HandleOutcome(ctx, dispatcher.Outcome{CommandID: "c3", SubDeviceID: "ac-1", WarehouseID: "12", Source: dispatcher.Automatic, Status: status})

			is.NoErr(e.Enqueue(ctx, "12", types.Sample{Temperature: 28}))
			calls = dispatchCalls(t, d, 4)
			is.True(!calls[3].Cmd.On)
		})
	}
}

func TestAcknowledgedCommandsKeepTheTriggerEngaged(t *testing.T) {
	is, ctx, hub, d, alerts := testSetup(t, nil)

	e := New(ctx, DefaultConfig(), hub, testStore(), testRegistry(), evaluator.New(evaluator.DefaultConfig()), d, alertsTo(alerts))
	defer e.Stop()

	is.NoErr(e.Enqueue(ctx, "12", types.Sample{Temperature: 32}))
	receive(t, alerts)

	e.HandleOutcome(ctx, dispatcher.Outcome{CommandID: "c1", SubDeviceID: "ac-1", WarehouseID: "12", Source: dispatcher.Automatic, Status: dispatcher.Acknowledged})
	e.HandleOutcome(ctx, dispatcher.Outcome{CommandID: "m1", SubDeviceID: "ac-1", WarehouseID: "12", Source: dispatcher.Manual, Status: dispatcher.Expired})

	is.NoErr(e.Enqueue(ctx, "12", types.Sample{Temperature: 32}))

	time.Sleep(50 * time.Millisecond)
	is.Equal(len(d.DispatchCalls()), 1)
}

func TestExpiredCommandFromDispatcherIsSentAgain(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	reg := &registry.RegistryMock{
		ActuatorsFunc: testRegistry().Actuators,
		ResolveActuatorFunc: func(ctx context.Context, subDeviceID string) (registry.Actuator, error) {
			return registry.Actuator{ID: subDeviceID, DeviceID: "node-1", WarehouseID: "12", Type: control.AC, Range: control.Range{Min: 16, Max: 30}, Active: true}, nil
		},
		ResolveGatewayRouteFunc: func(ctx context.Context, deviceID string) (registry.Route, error) {
			return registry.Route{DeviceID: deviceID, Gateway: "gw-1", WarehouseID: "12", Topic: registry.CommandTopic("gw-1"), Active: true}, nil
		},
	}

	transport := &dispatcher.TransportMock{
		SendFunc: func(ctx context.Context, topic string, payload []byte) error {
			return nil
		},
	}

	d := dispatcher.New(ctx, dispatcher.Config{DefaultTTL: 20 * time.Millisecond}, reg, transport)
	defer d.Close()

	hub := rooms.NewHub(32)
	e := New(ctx, DefaultConfig(), hub, testStore(), reg, evaluator.New(evaluator.DefaultConfig()), d, nil)
	defer e.Stop()

	expired := make(chan struct{}, 1)
	d.RegisterOutcomeHandler(e.HandleOutcome)
	d.RegisterOutcomeHandler(func(ctx context.Context, o dispatcher.Outcome) {
		if o.Status == dispatcher.Expired {
			expired <- struct{}{}
		}
	})

	is.NoErr(e.Enqueue(ctx, "12", types.Sample{Temperature: 32}))

	select {
	case <-expired:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the command to expire")
	}

	is.NoErr(e.Enqueue(ctx, "12", types.Sample{Temperature: 32}))

	deadline := time.Now().Add(2 * time.Second)
	for len(transport.SendCalls()) < 2 {
		if time.Now().After(deadline) {
			t.Fatal("expired command was not sent again")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestEnqueueAfterStop(t *testing.T) {
	is, ctx, hub, d, _ := testSetup(t, nil)

	e := New(ctx, DefaultConfig(), hub, testStore(), testRegistry(), evaluator.New(evaluator.DefaultConfig()), d, nil)
	e.Stop()

	err := e.Enqueue(ctx, "12", types.Sample{})
	is.True(errors.Is(err, ErrStopped))
}

func testSetup(t *testing.T, dispatch func(ctx context.Context, cmd dispatcher.Command) (*dispatcher.Ticket, error)) (*is.I, context.Context, rooms.Hub, *dispatcher.DispatcherMock, chan types.AlertRaised) {
	if dispatch == nil {
		dispatch = func(ctx context.Context, cmd dispatcher.Command) (*dispatcher.Ticket, error) {
			return &dispatcher.Ticket{CommandID: "c1"}, nil
		}
	}

	d := &dispatcher.DispatcherMock{DispatchFunc: dispatch}

	return is.New(t), context.Background(), rooms.NewHub(32), d, make(chan types.AlertRaised, 10)
}

func testStore() thresholds.Store {
	return &thresholds.StoreMock{
		GetFunc: func(ctx context.Context, warehouseID string) (thresholds.Threshold, error) {
			return thresholds.Threshold{Temperature: thresholds.Range{Lo: thresholds.At(18), Hi: thresholds.At(30)}}, nil
		},
	}
}

func testRegistry() registry.Registry {
	return &registry.RegistryMock{
		ActuatorsFunc: func(ctx context.Context, warehouseID string) ([]registry.Actuator, error) {
			return []registry.Actuator{
				{ID: "ac-1", WarehouseID: warehouseID, Type: control.AC, Range: control.Range{Min: 16, Max: 30}, Active: true},
				{ID: "heat-1", WarehouseID: warehouseID, Type: control.Heater, Range: control.Range{Min: 5, Max: 35}, Active: true},
			}, nil
		},
	}
}

func alertsTo(ch chan types.AlertRaised) AlertFunc {
	return func(ctx context.Context, alert types.AlertRaised) {
		ch <- alert
	}
}

func receive(t *testing.T, ch chan types.AlertRaised) types.AlertRaised {
	select {
	case a := <-ch:
		return a
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for alert")
	}
	return types.AlertRaised{}
}

func nextEvent(t *testing.T, c *rooms.Conn) types.RealtimeEvent {
	select {
	case e := <-c.Events():
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return types.RealtimeEvent{}
}

func dispatchCalls(t *testing.T, d *dispatcher.DispatcherMock, n int) []struct {
	Ctx context.Context
	Cmd dispatcher.Command
} {
	deadline := time.Now().Add(2 * time.Second)
	for {
		calls := d.DispatchCalls()
		if len(calls) >= n {
			return calls
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d dispatched commands, got %d", n, len(calls))
		}
		time.Sleep(5 * time.Millisecond)
	}
}
