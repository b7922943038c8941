package mqtt

import (
	"strings"
	"testing"

	"github.com/rfallows/hearth-bridge/internal/infrastructure/config"
)

func TestTopics(t *testing.T) {
	tests := []struct {
		name  string
		build func() string
		want  string
	}{
		{"SystemStatus", Topics{}.SystemStatus, "hearth/system/status"},
		{"CommandResult", Topics{}.CommandResult, "hearth/event/command"},
		{"DeviceSnapshot", Topics{}.DeviceSnapshot, "hearth/event/devices"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.build(); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestBuildClientOptions_BrokerURL(t *testing.T) {
	cfg := config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{Host: "broker.local", Port: 1883, ClientID: "test"},
	}
	opts := buildClientOptions(cfg)

	if len(opts.Servers) != 1 {
		t.Fatalf("expected 1 broker, got %d", len(opts.Servers))
	}
	if got := opts.Servers[0].String(); got != "tcp://broker.local:1883" {
		t.Errorf("broker URL = %q, want tcp://broker.local:1883", got)
	}
}

func TestBuildClientOptions_TLSScheme(t *testing.T) {
	cfg := config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{Host: "broker.local", Port: 8883, TLS: true, ClientID: "test"},
	}
	opts := buildClientOptions(cfg)

	if got := opts.Servers[0].Scheme; got != "ssl" {
		t.Errorf("scheme = %q, want ssl", got)
	}
	if opts.TLSConfig == nil {
		t.Error("expected TLS config to be set")
	}
}

func TestBuildClientOptions_Auth(t *testing.T) {
	cfg := config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{Host: "localhost", Port: 1883, ClientID: "test"},
		Auth:   config.MQTTAuthConfig{Username: "bridge", Password: "secret"},
	}
	opts := buildClientOptions(cfg)

	if opts.Username != "bridge" {
		t.Errorf("username = %q, want bridge", opts.Username)
	}
	if opts.Password != "secret" {
		t.Errorf("password not propagated")
	}
}

func TestConfigureLWT(t *testing.T) {
	cfg := config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{Host: "localhost", Port: 1883, ClientID: "hearth-test"},
	}
	opts := buildClientOptions(cfg)
	configureLWT(opts, cfg.Broker.ClientID)

	if !opts.WillEnabled {
		t.Fatal("expected LWT to be enabled")
	}
	if opts.WillTopic != "hearth/system/status" {
		t.Errorf("will topic = %q, want hearth/system/status", opts.WillTopic)
	}
	payload := string(opts.WillPayload)
	if !strings.Contains(payload, `"status":"offline"`) {
		t.Errorf("will payload missing offline status: %s", payload)
	}
	if !strings.Contains(payload, "hearth-test") {
		t.Errorf("will payload missing client ID: %s", payload)
	}
}

func TestStatusPayloads(t *testing.T) {
	online := buildOnlinePayload("c1")
	if !strings.Contains(online, `"status":"online"`) {
		t.Errorf("online payload = %s", online)
	}

	offline := buildOfflinePayload("c1")
	if !strings.Contains(offline, `"status":"offline"`) || !strings.Contains(offline, "graceful_shutdown") {
		t.Errorf("offline payload = %s", offline)
	}
}

func TestPublish_Validation(t *testing.T) {
	c := &Client{}

	if err := c.Publish("", []byte("x"), 1, false); err != ErrInvalidTopic {
		t.Errorf("empty topic: err = %v, want ErrInvalidTopic", err)
	}
	if err := c.Publish("hearth/event/command", []byte("x"), 3, false); err != ErrInvalidQoS {
		t.Errorf("bad qos: err = %v, want ErrInvalidQoS", err)
	}
}

func TestConnect_UnreachableBroker(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping broker connection test in short mode")
	}

	cfg := config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{Host: "127.0.0.1", Port: 1, ClientID: "test"},
		QoS:    1,
	}

	_, err := Connect(cfg)
	if err == nil {
		t.Error("Connect() to unreachable broker expected error, got nil")
	}
}
