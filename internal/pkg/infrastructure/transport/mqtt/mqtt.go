package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/diwise/iot-climate-control/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
)

const (
	SampleTopic    string = "warehouse/+/sample"
	RFIDErrorTopic string = "warehouse/+/rfid/error"
	AckTopic       string = "gateway/+/ack"
)

//go:generate moq -rm -out mqtt_mock.go . InboundHandler

// InboundHandler receives the decoded messages published by sensors and gateways.
type InboundHandler interface {
	HandleSample(ctx context.Context, warehouseID string, sample types.Sample)
	HandleRFIDError(ctx context.Context, warehouseID string, rfidErr types.RFIDError)
	HandleAck(ctx context.Context, gateway string, ack types.CommandAck)
}

type Config struct {
	Broker         string
	ClientID       string
	Username       string
	Password       string
	QoS            byte
	PublishTimeout time.Duration
}

func LoadConfiguration(ctx context.Context, serviceName string) Config {
	log := logging.GetFromContext(ctx)

	return Config{
		Broker:         env.GetVariableOrDefault(log, "MQTT_BROKER", "tcp://localhost:1883"),
		ClientID:       env.GetVariableOrDefault(log, "MQTT_CLIENT_ID", serviceName),
		Username:       env.GetVariableOrDefault(log, "MQTT_USER", ""),
		Password:       env.GetVariableOrDefault(log, "MQTT_PASSWORD", ""),
		QoS:            1,
		PublishTimeout: 5 * time.Second,
	}
}

var ErrPublishTimeout = errors.New("timed out waiting for broker")

// Link is the connection to the broker shared by all gateways.
type Link struct {
	cfg     Config
	client  paho.Client
	handler InboundHandler
	ctx     context.Context
	log     zerolog.Logger
}

// New prepares a link to the broker. Nothing is sent or received until Connect is called.
func New(ctx context.Context, cfg Config) *Link {
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = 5 * time.Second
	}

	l := &Link{
		cfg: cfg,
		ctx: ctx,
		log: logging.GetFromContext(ctx).With().Str("broker", cfg.Broker).Logger(),
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(10 * time.Second)
	opts.SetOnConnectHandler(l.onConnect)
	opts.SetConnectionLostHandler(func(c paho.Client, err error) {
		l.log.Error().Err(err).Msg("connection to broker lost")
	})

	l.client = paho.NewClient(opts)

	return l
}

// Connect connects to the broker and starts delivering inbound messages to handler.
func (l *Link) Connect(handler InboundHandler) error {
	l.handler = handler

	token := l.client.Connect()
	if !token.WaitTimeout(30*time.Second) || token.Error() != nil {
		return fmt.Errorf("failed to connect to mqtt broker %s: %v", l.cfg.Broker, token.Error())
	}

	return nil
}

// onConnect (re)subscribes after every successful connect.
func (l *Link) onConnect(c paho.Client) {
	l.log.Info().Msg("connected to broker")

	filters := map[string]byte{
		SampleTopic:    l.cfg.QoS,
		RFIDErrorTopic: l.cfg.QoS,
		AckTopic:       l.cfg.QoS,
	}

	token := c.SubscribeMultiple(filters, func(_ paho.Client, m paho.Message) {
		l.route(m.Topic(), m.Payload())
	})

	if token.WaitTimeout(10*time.Second) && token.Error() != nil {
		l.log.Error().Err(token.Error()).Msg("failed to subscribe")
	}
}

// route decodes an inbound message and hands it to the matching handler. Messages that can not be
// decoded are logged and dropped.
func (l *Link) route(topic string, payload []byte) {
	log := l.log.With().Str("topic", topic).Logger()
	ctx := logging.NewContextWithLogger(l.ctx, log)

	parts := strings.Split(topic, "/")

	switch {
	case len(parts) == 3 && parts[0] == "warehouse" && parts[2] == "sample":
		s := types.Sample{}
		if err := json.Unmarshal(payload, &s); err != nil {
			log.Error().Err(err).Msg("bad sample payload")
			return
		}
		l.handler.HandleSample(ctx, parts[1], s)

	case len(parts) == 4 && parts[0] == "warehouse" && parts[2] == "rfid" && parts[3] == "error":
		e := types.RFIDError{}
		if err := json.Unmarshal(payload, &e); err != nil {
			log.Error().Err(err).Msg("bad rfid error payload")
			return
		}
		l.handler.HandleRFIDError(ctx, parts[1], e)

	case len(parts) == 3 && parts[0] == "gateway" && parts[2] == "ack":
		ack := types.CommandAck{}
		if err := json.Unmarshal(payload, &ack); err != nil || ack.ID == "" {
			log.Error().Err(err).Msg("bad ack payload")
			return
		}
		l.handler.HandleAck(ctx, parts[1], ack)

	default:
		log.Debug().Msg("ignoring message on unexpected topic")
	}
}

// Send publishes a control packet and waits for the broker to accept it.
func (l *Link) Send(ctx context.Context, topic string, payload []byte) error {
	if l.handler == nil || !l.client.IsConnectionOpen() {
		return fmt.Errorf("not connected to %s", l.cfg.Broker)
	}

	token := l.client.Publish(topic, l.cfg.QoS, false, payload)

	timeout := l.cfg.PublishTimeout
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		timeout = time.Until(deadline)
	}

	if !token.WaitTimeout(timeout) {
		return ErrPublishTimeout
	}

	return token.Error()
}

func (l *Link) Close() {
	l.client.Disconnect(250)
}
