package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for Hearth Bridge.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Hub          HubConfig          `yaml:"hub"`
	API          APIConfig          `yaml:"api"`
	Features     FeatureConfig      `yaml:"features"`
	Conversation ConversationConfig `yaml:"conversation"`
	Database     DatabaseConfig     `yaml:"database"`
	MQTT         MQTTConfig         `yaml:"mqtt"`
	InfluxDB     InfluxDBConfig     `yaml:"influxdb"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// HubConfig contains connection settings for the smart-home hub's REST API.
type HubConfig struct {
	// URL is the hub base URL (e.g., "http://localhost:8123").
	URL string `yaml:"url"`

	// Token is the long-lived bearer token used for hub API calls.
	// Set via HEARTH_HUB_TOKEN rather than the config file.
	Token string `yaml:"token"`

	// Timeout is the total per-request timeout in seconds.
	Timeout int `yaml:"timeout"`
}

// APIConfig contains HTTP API server settings.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
}

// APITimeoutConfig contains HTTP timeout settings (seconds).
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// FeatureConfig contains per-feature toggles. A disabled feature gates its
// endpoint with 403 but is still reported in /api/status.
type FeatureConfig struct {
	// Voice gates /api/conversation.
	Voice bool `yaml:"voice"`

	// Automations gates /api/automation-suggest.
	Automations bool `yaml:"automations"`

	// ImageRecognition gates /api/analyze.
	ImageRecognition bool `yaml:"image_recognition"`
}

// ConversationConfig contains conversation history settings.
type ConversationConfig struct {
	// HistorySize is the maximum number of turns retained in memory.
	// Older turns are evicted once the window is full.
	HistorySize int `yaml:"history_size"`
}

// DatabaseConfig contains SQLite database settings for the optional
// conversation and command audit stores.
type DatabaseConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// MQTTConfig contains MQTT broker connection settings for the optional
// event publisher.
type MQTTConfig struct {
	Enabled bool             `yaml:"enabled"`
	Broker  MQTTBrokerConfig `yaml:"broker"`
	Auth    MQTTAuthConfig   `yaml:"auth"`
	QoS     int              `yaml:"qos"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// InfluxDBConfig contains InfluxDB connection settings for the optional
// telemetry recorder.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: HEARTH_SECTION_KEY
// For example: HEARTH_HUB_URL, HEARTH_HUB_TOKEN, HEARTH_LOG_LEVEL
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns a Config with sensible defaults.
// The hub bearer token has no default; it must come from the file or environment.
func Default() *Config {
	return &Config{
		Hub: HubConfig{
			URL:     "http://localhost:8123",
			Timeout: 30,
		},
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 8124,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		Features: FeatureConfig{
			Voice:            true,
			Automations:      true,
			ImageRecognition: true,
		},
		Conversation: ConversationConfig{
			HistorySize: 256,
		},
		Database: DatabaseConfig{
			Enabled:     false,
			Path:        "./data/hearthbridge.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "hearth-bridge",
			},
			QoS: 1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: HEARTH_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Hub
	if v := os.Getenv("HEARTH_HUB_URL"); v != "" {
		cfg.Hub.URL = v
	}
	if v := os.Getenv("HEARTH_HUB_TOKEN"); v != "" {
		cfg.Hub.Token = v
	}

	// API
	if v := os.Getenv("HEARTH_API_HOST"); v != "" {
		cfg.API.Host = v
	}
	if v := os.Getenv("HEARTH_API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.API.Port = port
		}
	}

	// Feature toggles
	if v, ok := envBool("HEARTH_FEATURES_VOICE"); ok {
		cfg.Features.Voice = v
	}
	if v, ok := envBool("HEARTH_FEATURES_AUTOMATIONS"); ok {
		cfg.Features.Automations = v
	}
	if v, ok := envBool("HEARTH_FEATURES_IMAGE_RECOGNITION"); ok {
		cfg.Features.ImageRecognition = v
	}

	// Database
	if v := os.Getenv("HEARTH_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// MQTT
	if v := os.Getenv("HEARTH_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("HEARTH_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("HEARTH_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// InfluxDB
	if v := os.Getenv("HEARTH_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}

	// Logging
	if v := os.Getenv("HEARTH_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// envBool reads a boolean environment variable.
// Accepts the usual strconv forms plus bare "true"/"false" in any case.
func envBool(key string) (value, ok bool) {
	v := os.Getenv(key)
	if v == "" {
		return false, false
	}
	parsed, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		return false, false
	}
	return parsed, true
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if c.Hub.URL == "" {
		errs = append(errs, "hub.url is required")
	} else if !strings.HasPrefix(c.Hub.URL, "http://") && !strings.HasPrefix(c.Hub.URL, "https://") {
		errs = append(errs, "hub.url must start with http:// or https://")
	}
	if c.Hub.Timeout <= 0 {
		errs = append(errs, "hub.timeout must be positive")
	}

	if c.API.Port < 1 || c.API.Port > 65535 {
		errs = append(errs, "api.port must be between 1 and 65535")
	}

	if c.Conversation.HistorySize < 1 {
		errs = append(errs, "conversation.history_size must be at least 1")
	}

	if c.Database.Enabled && c.Database.Path == "" {
		errs = append(errs, "database.path is required when database.enabled is true")
	}

	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}

	if c.InfluxDB.Enabled {
		if c.InfluxDB.URL == "" {
			errs = append(errs, "influxdb.url is required when influxdb.enabled is true")
		}
		if c.InfluxDB.Org == "" || c.InfluxDB.Bucket == "" {
			errs = append(errs, "influxdb.org and influxdb.bucket are required when influxdb.enabled is true")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// HubTimeout returns the hub request timeout as a Duration.
func (c *Config) HubTimeout() time.Duration {
	return time.Duration(c.Hub.Timeout) * time.Second
}

// GetReadTimeout returns the API read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the API write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the API idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Idle) * time.Second
}
