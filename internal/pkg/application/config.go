package application

import (
	"io"
	"time"

	"github.com/diwise/iot-climate-control/internal/pkg/application/automation"
	"github.com/diwise/iot-climate-control/internal/pkg/application/dispatcher"
	"github.com/diwise/iot-climate-control/internal/pkg/application/evaluator"
	"github.com/diwise/iot-climate-control/internal/pkg/application/events"
	yaml "gopkg.in/yaml.v2"
)

type RealtimeConfig struct {
	RoomBuffer   int           `yaml:"roomBuffer"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
}

type Config struct {
	Automation    automation.Config     `yaml:"automation"`
	Dispatcher    dispatcher.Config     `yaml:"dispatcher"`
	Margins       evaluator.Config      `yaml:"margins"`
	Realtime      RealtimeConfig        `yaml:"realtime"`
	Notifications []events.Notification `yaml:"notifications"`
}

func DefaultConfig() Config {
	return Config{
		Automation: automation.DefaultConfig(),
		Dispatcher: dispatcher.DefaultConfig(),
		Margins:    evaluator.DefaultConfig(),
		Realtime: RealtimeConfig{
			RoomBuffer:   16,
			WriteTimeout: 10 * time.Second,
		},
	}
}

func (c Config) Events() *events.Config {
	return &events.Config{Notifications: c.Notifications}
}

// LoadConfiguration reads a yaml configuration. Settings missing from the file keep their defaults.
func LoadConfiguration(data io.Reader) (*Config, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
