package events

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/diwise/iot-climate-control/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"golang.org/x/sys/unix"
	yaml "gopkg.in/yaml.v2"
)

const AlertEventType string = "diwise.climate.alert"

//go:generate moq -rm -out events_mock.go . AlertSender

type AlertSender interface {
	Send(ctx context.Context, alert types.AlertRaised) error
}

type subscriber struct {
	endpoint string
	patterns []*regexp.Regexp
}

func (s subscriber) wants(entityID string) bool {
	if len(s.patterns) == 0 {
		return true
	}

	for _, p := range s.patterns {
		if p.MatchString(entityID) {
			return true
		}
	}

	return false
}

type alertSender struct {
	subscribers []subscriber
	client      cloudevents.Client
}

func New(cfg *Config) (AlertSender, error) {
	e := &alertSender{}

	if cfg != nil {
		for _, n := range cfg.Notifications {
			if n.Type != AlertEventType {
				continue
			}

			for _, s := range n.Subscribers {
				sub := subscriber{endpoint: s.Endpoint}

				for _, info := range s.Information {
					for _, entity := range info.Entities {
						p, err := regexp.Compile(entity.IDPattern)
						if err != nil {
							return nil, fmt.Errorf("bad idPattern %q for %s: %w", entity.IDPattern, s.Endpoint, err)
						}
						sub.patterns = append(sub.patterns, p)
					}
				}

				e.subscribers = append(e.subscribers, sub)
			}
		}
	}

	if len(e.subscribers) > 0 {
		c, err := cloudevents.NewClientHTTP()
		if err != nil {
			return nil, err
		}
		e.client = c
	}

	return e, nil
}

// WarehouseURN is the entity id subscribers match their idPattern against.
func WarehouseURN(warehouseID string) string {
	return "urn:ngsi-ld:Warehouse:" + warehouseID
}

func (e *alertSender) Send(ctx context.Context, alert types.AlertRaised) error {
	entityID := WarehouseURN(alert.WarehouseID)

	targets := []string{}
	for _, s := range e.subscribers {
		if s.wants(entityID) {
			targets = append(targets, s.endpoint)
		}
	}

	if len(targets) == 0 {
		return nil
	}

	event := cloudevents.NewEvent()
	event.SetID(fmt.Sprintf("%s:%d", alert.WarehouseID, alert.Timestamp.UnixNano()))
	event.SetTime(alert.Timestamp)
	event.SetSource("github.com/diwise/iot-climate-control")
	event.SetType(AlertEventType)

	eventData := struct {
		EntityID    string `json:"entityID"`
		WarehouseID string `json:"warehouseID"`
		Reason      string `json:"reason"`
		Level       string `json:"level"`
		Timestamp   string `json:"timestamp"`
	}{
		EntityID:    entityID,
		WarehouseID: alert.WarehouseID,
		Reason:      alert.Alert.Reason,
		Level:       alert.Alert.Level,
		Timestamp:   alert.Timestamp.Format(time.RFC3339Nano),
	}

	if err := event.SetData(cloudevents.ApplicationJSON, eventData); err != nil {
		return err
	}

	logger := logging.GetFromContext(ctx)

	var err error

	for _, endpoint := range targets {
		ctxWithTarget := cloudevents.ContextWithTarget(ctx, endpoint)

		result := e.client.Send(ctxWithTarget, event)
		if cloudevents.IsUndelivered(result) || errors.Is(result, unix.ECONNREFUSED) {
			logger.Error().Err(result).Msgf("failed to send alert to %s", endpoint)
			err = fmt.Errorf("%w", result)
		}
	}

	return err
}

type EntityInfo struct {
	IDPattern string `yaml:"idPattern"`
}

type RegistrationInfo struct {
	Entities []EntityInfo `yaml:"entities"`
}

type SubscriberConfig struct {
	Endpoint    string             `yaml:"endpoint"`
	Information []RegistrationInfo `yaml:"information"`
}

type Notification struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Type        string             `yaml:"type"`
	Subscribers []SubscriberConfig `yaml:"subscribers"`
}

type Config struct {
	Notifications []Notification `yaml:"notifications"`
}

func LoadConfiguration(data io.Reader) (*Config, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := Config{}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
