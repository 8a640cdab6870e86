// Package comms publishes readings to an MQTT broker. The node treats
// publishing as best-effort plumbing: a failed publish is logged and the
// next sample tries again.
package comms

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/bytedance/sonic"
	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/rustyeddy/airgraph/sensor"
)

// Config holds broker connection and publish settings.
type Config struct {
	BrokerURL string
	ClientID  string
	Username  string
	Password  string
	Topic     string
	QoS       byte

	// KeepAlive keeps one connection open across publishes, reconnecting
	// when the broker drops it. Off means connect-publish-disconnect per
	// message, which suits a node that publishes once a minute.
	KeepAlive bool
}

// payload is the published JSON document. Field names are part of the wire
// contract with the home-automation side.
type payload struct {
	TS          int64   `json:"ts"` // unix millis
	CO2         float64 `json:"co2"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Sensor      string  `json:"sensor"`
}

func encodePayload(r sensor.Reading, source string) ([]byte, error) {
	return sonic.Marshal(payload{
		TS:          r.Time * 1000,
		CO2:         r.CO2,
		Temperature: r.TemperatureC,
		Humidity:    r.HumidityRH,
		Sensor:      source,
	})
}

// Publisher sends readings over MQTT.
type Publisher struct {
	cfg    Config
	client mqtt.Client
	log    *slog.Logger
}

func NewPublisher(cfg Config, log *slog.Logger) *Publisher {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetKeepAlive(time.Hour).
		SetConnectTimeout(10 * time.Second).
		SetAutoReconnect(cfg.KeepAlive)

	return &Publisher{
		cfg:    cfg,
		client: mqtt.NewClient(opts),
		log:    log,
	}
}

// Connect opens the broker connection. With KeepAlive off this is optional;
// Publish connects on demand.
func (p *Publisher) Connect() error {
	return p.wait(p.client.Connect(), "connect")
}

// Publish sends one reading on the configured topic.
func (p *Publisher) Publish(r sensor.Reading, source string) error {
	if !p.client.IsConnectionOpen() {
		p.log.Debug("reconnecting to mqtt broker", "broker", p.cfg.BrokerURL)
		if err := p.Connect(); err != nil {
			return err
		}
	}

	body, err := encodePayload(r, source)
	if err != nil {
		return fmt.Errorf("comms: encode payload: %w", err)
	}

	if err := p.wait(p.client.Publish(p.cfg.Topic, p.cfg.QoS, false, body), "publish"); err != nil {
		return err
	}
	p.log.Debug("published reading", "topic", p.cfg.Topic, "co2", r.CO2)

	if !p.cfg.KeepAlive {
		p.client.Disconnect(250)
	}
	return nil
}

// Close tears the connection down.
func (p *Publisher) Close() {
	if p.client.IsConnectionOpen() {
		p.client.Disconnect(250)
	}
}

func (p *Publisher) wait(tok mqtt.Token, op string) error {
	if !tok.WaitTimeout(10 * time.Second) {
		return fmt.Errorf("comms: %s timed out", op)
	}
	if err := tok.Error(); err != nil {
		return fmt.Errorf("comms: %s: %w", op, err)
	}
	return nil
}
