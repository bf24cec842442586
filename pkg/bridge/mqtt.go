package bridge

import (
	"errors"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/ied-protocol/ied-go/pkg/report"
)

// Bridge errors.
var (
	ErrConnectionFailed = errors.New("mqtt connection failed")
	ErrPublishFailed    = errors.New("mqtt publish failed")
	ErrNotConnected     = errors.New("mqtt client not connected")
)

// Default timeouts for broker operations.
const (
	defaultConnectTimeout = 10 * time.Second
	defaultPublishTimeout = 5 * time.Second
)

// Config holds the broker settings for the report bridge.
type Config struct {
	// BrokerURL is the broker address, e.g. "tcp://localhost:1883".
	BrokerURL string

	// ClientID identifies this bridge to the broker.
	ClientID string

	// Topic is the topic reports are published to.
	Topic string

	// Username and Password are optional broker credentials.
	Username string
	Password string

	// QoS is the publish quality of service (0, 1, or 2).
	QoS byte
}

// MQTT publishes reports to an MQTT broker.
// It is safe for concurrent use; report control blocks may share one
// bridge across sinks.
type MQTT struct {
	client pahomqtt.Client
	cfg    Config
}

// Connect creates the bridge and establishes the broker connection.
func Connect(cfg Config) (*MQTT, error) {
	if cfg.ClientID == "" {
		cfg.ClientID = "ied-report-bridge"
	}
	if cfg.Topic == "" {
		cfg.Topic = "ied/reports"
	}

	opts := pahomqtt.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetryInterval(time.Second)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	b := &MQTT{
		client: pahomqtt.NewClient(opts),
		cfg:    cfg,
	}

	token := b.client.Connect()
	if !token.WaitTimeout(defaultConnectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, defaultConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	return b, nil
}

// Close disconnects from the broker, allowing in-flight publishes a
// short grace period.
func (b *MQTT) Close() {
	b.client.Disconnect(250)
}

// Sink returns a report sink that publishes every report to the
// configured topic. Errors are returned to the report control block,
// which logs them; delivery stays best-effort.
func (b *MQTT) Sink() report.Sink {
	return func(reportID string, data map[string]any, reason report.Reason) error {
		payload, err := encodePayload(reportID, data, reason)
		if err != nil {
			return err
		}
		return b.publish(payload)
	}
}

// publish sends one encoded report to the broker.
func (b *MQTT) publish(payload []byte) error {
	if !b.client.IsConnected() {
		return ErrNotConnected
	}

	token := b.client.Publish(b.cfg.Topic, b.cfg.QoS, false, payload)
	if !token.WaitTimeout(defaultPublishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, defaultPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	return nil
}

// encodePayload builds the CBOR message published for one report.
func encodePayload(reportID string, data map[string]any, reason report.Reason) ([]byte, error) {
	return report.EncodeReport(&report.Report{
		ReportID:  reportID,
		Reason:    reason,
		Data:      data,
		Timestamp: time.Now(),
	})
}
