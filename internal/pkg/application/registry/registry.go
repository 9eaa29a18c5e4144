package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/diwise/iot-climate-control/internal/pkg/application/control"
	"github.com/diwise/iot-climate-control/internal/pkg/infrastructure/repositories/database/devices"
	"github.com/samber/lo"
)

// Actuator is the working copy of a sub device and the capability it declares.
type Actuator struct {
	ID          string               `json:"id"`
	DeviceID    string               `json:"deviceId"`
	WarehouseID string               `json:"warehouseId"`
	Type        control.ActuatorType `json:"actuator"`
	Range       control.Range        `json:"range"`
	On          bool                 `json:"on"`
	Value       *float64             `json:"value,omitempty"`
	Active      bool                 `json:"active"`
}

// Route tells where commands for a device are handed to the transport.
type Route struct {
	DeviceID    string `json:"deviceId"`
	Gateway     string `json:"gateway"`
	WarehouseID string `json:"warehouseId"`
	Topic       string `json:"topic"`
	Active      bool   `json:"active"`
}

// CommandTopic is the topic a gateway listens to for control packets.
func CommandTopic(gatewayMAC string) string {
	return "gateway/" + gatewayMAC + "/command"
}

var ErrNotFound = errors.New("not found")

//go:generate moq -rm -out registry_mock.go . Registry

type Registry interface {
	ResolveActuator(ctx context.Context, subDeviceID string) (Actuator, error)
	ResolveGatewayRoute(ctx context.Context, deviceID string) (Route, error)
	Actuators(ctx context.Context, warehouseID string) ([]Actuator, error)
	Warehouse(ctx context.Context, deviceID string) (string, error)
	RecordCommanded(ctx context.Context, subDeviceID string, on bool, value *float64) error

	Invalidate(id string)
	InvalidateAll()
}

type registry struct {
	repo devices.DeviceRepository

	mu         sync.RWMutex
	actuators  map[string]Actuator
	routes     map[string]Route
	warehouses map[string][]Actuator
	// generation is bumped on invalidation, lookups started before it must not fill the cache
	generation uint64
}

func New(repo devices.DeviceRepository) Registry {
	return &registry{
		repo:       repo,
		actuators:  map[string]Actuator{},
		routes:     map[string]Route{},
		warehouses: map[string][]Actuator{},
	}
}

func (r *registry) ResolveActuator(ctx context.Context, subDeviceID string) (Actuator, error) {
	r.mu.RLock()
	a, ok := r.actuators[subDeviceID]
	generation := r.generation
	r.mu.RUnlock()

	if ok {
		return a, nil
	}

	sub, owner, err := r.repo.GetSubDeviceByCode(ctx, subDeviceID)
	if err != nil {
		if errors.Is(err, devices.ErrSubDeviceNotFound) {
			return Actuator{}, fmt.Errorf("sub device %s: %w", subDeviceID, ErrNotFound)
		}
		return Actuator{}, err
	}

	a = toActuator(sub, owner)

	r.mu.Lock()
	if r.generation == generation {
		r.actuators[subDeviceID] = a
	}
	r.mu.Unlock()

	return a, nil
}

func (r *registry) ResolveGatewayRoute(ctx context.Context, deviceID string) (Route, error) {
	r.mu.RLock()
	route, ok := r.routes[deviceID]
	generation := r.generation
	r.mu.RUnlock()

	if ok {
		return route, nil
	}

	device, err := r.repo.GetDeviceByMAC(ctx, deviceID)
	if err != nil {
		if errors.Is(err, devices.ErrDeviceNotFound) {
			return Route{}, fmt.Errorf("device %s: %w", deviceID, ErrNotFound)
		}
		return Route{}, err
	}

	route = Route{
		DeviceID:    device.MAC,
		Gateway:     device.MAC,
		WarehouseID: device.WarehouseID,
		Active:      device.State == devices.StateActive,
	}

	if device.Type != devices.TypeGateway && device.ParentMAC != nil {
		gateway, err := r.repo.GetDeviceByMAC(ctx, *device.ParentMAC)
		if err != nil {
			if errors.Is(err, devices.ErrDeviceNotFound) {
				return Route{}, fmt.Errorf("gateway %s of device %s: %w", *device.ParentMAC, deviceID, ErrNotFound)
			}
			return Route{}, err
		}

		route.Gateway = gateway.MAC
		route.Active = route.Active && gateway.State == devices.StateActive
	}

	route.Topic = CommandTopic(route.Gateway)

	r.mu.Lock()
	if r.generation == generation {
		r.routes[deviceID] = route
	}
	r.mu.Unlock()

	return route, nil
}

// Actuators returns the active actuators of a warehouse, ordered by id.
func (r *registry) Actuators(ctx context.Context, warehouseID string) ([]Actuator, error) {
	r.mu.RLock()
	list, ok := r.warehouses[warehouseID]
	generation := r.generation
	r.mu.RUnlock()

	if ok {
		return list, nil
	}

	inWarehouse, err := r.repo.GetDevicesInWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	list = []Actuator{}
	for _, d := range inWarehouse {
		for _, sub := range d.SubDevices {
			list = append(list, toActuator(sub, d))
		}
	}

	list = lo.Filter(list, func(a Actuator, _ int) bool { return a.Active })

	r.mu.Lock()
	if r.generation == generation {
		r.warehouses[warehouseID] = list
	}
	r.mu.Unlock()

	return list, nil
}

func (r *registry) Warehouse(ctx context.Context, deviceID string) (string, error) {
	route, err := r.ResolveGatewayRoute(ctx, deviceID)
	if err != nil {
		return "", err
	}
	return route.WarehouseID, nil
}

// RecordCommanded stores the last commanded state of a sub device. The device's own
// telemetry remains the authoritative source.
func (r *registry) RecordCommanded(ctx context.Context, subDeviceID string, on bool, value *float64) error {
	status := devices.StatusOff
	if on {
		status = devices.StatusOn
	}

	err := r.repo.UpdateSubDeviceStatus(ctx, subDeviceID, status, value)
	if err != nil {
		if errors.Is(err, devices.ErrSubDeviceNotFound) {
			return fmt.Errorf("sub device %s: %w", subDeviceID, ErrNotFound)
		}
		return err
	}

	r.Invalidate(subDeviceID)

	return nil
}

// Invalidate drops every cached entry that is keyed by, or refers to, id. The id may be a
// sub device code, a device mac or a warehouse id.
func (r *registry) Invalidate(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.generation++

	for k, a := range r.actuators {
		if k == id || a.DeviceID == id || a.WarehouseID == id {
			delete(r.actuators, k)
		}
	}

	for k, route := range r.routes {
		if k == id || route.Gateway == id || route.WarehouseID == id {
			delete(r.routes, k)
		}
	}

	r.warehouses = map[string][]Actuator{}
}

func (r *registry) InvalidateAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.generation++

	r.actuators = map[string]Actuator{}
	r.routes = map[string]Route{}
	r.warehouses = map[string][]Actuator{}
}

func toActuator(sub devices.SubDevice, owner devices.Device) Actuator {
	t := control.ActuatorType(sub.ActuatorType)
	rng, _ := control.DefaultRange(t)

	if sub.Min != nil && sub.Max != nil {
		rng.Min, rng.Max = *sub.Min, *sub.Max
	}

	var value *float64
	if sub.Value != nil {
		v := *sub.Value
		value = &v
	}

	return Actuator{
		ID:          sub.Code,
		DeviceID:    owner.MAC,
		WarehouseID: owner.WarehouseID,
		Type:        t,
		Range:       rng,
		On:          sub.Status == devices.StatusOn,
		Value:       value,
		Active:      sub.State == devices.StateActive && owner.State == devices.StateActive,
	}
}
