// Hearth Bridge - natural-language gateway for smart-home hubs
//
// This is the main entry point for the Hearth Bridge service. The bridge
// sits between natural-language clients and a smart-home hub's REST API:
// commands come in as text, get classified into device actions, and fan
// out as hub service calls.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rfallows/hearth-bridge/internal/api"
	"github.com/rfallows/hearth-bridge/internal/conversation"
	"github.com/rfallows/hearth-bridge/internal/dispatch"
	"github.com/rfallows/hearth-bridge/internal/hub"
	"github.com/rfallows/hearth-bridge/internal/infrastructure/config"
	"github.com/rfallows/hearth-bridge/internal/infrastructure/database"
	"github.com/rfallows/hearth-bridge/internal/infrastructure/influxdb"
	"github.com/rfallows/hearth-bridge/internal/infrastructure/logging"
	"github.com/rfallows/hearth-bridge/internal/infrastructure/mqtt"
	"github.com/rfallows/hearth-bridge/internal/intent"
	"github.com/rfallows/hearth-bridge/internal/suggest"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Hearth Bridge",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database (optional)
	var db *database.DB
	if cfg.Database.Enabled {
		db, err = database.Open(database.Config{
			Path:        cfg.Database.Path,
			WALMode:     cfg.Database.WALMode,
			BusyTimeout: cfg.Database.BusyTimeout,
		})
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer func() {
			log.Info("closing database")
			if closeErr := db.Close(); closeErr != nil {
				log.Error("error closing database", "error", closeErr)
			}
		}()

		if bootErr := db.Bootstrap(ctx); bootErr != nil {
			return fmt.Errorf("bootstrapping database schema: %w", bootErr)
		}
		log.Info("database connected", "path", cfg.Database.Path)
	} else {
		log.Info("database disabled, conversation and command history are memory-only")
	}

	// Connect to MQTT broker (optional)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})
	} else {
		log.Info("MQTT disabled")
	}

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
	} else {
		log.Info("InfluxDB disabled")
	}

	// Hub client, wrapped so every snapshot fetch feeds telemetry
	hubClient := hub.New(cfg.Hub, log)
	instrumented := &instrumentedHub{
		client:  hubClient,
		events:  newEventPublisher(mqttClient, cfg.MQTT, log),
		metrics: influxClient,
	}

	// Command dispatcher with optional audit, events, and metrics
	dispatcher := dispatch.New(hubClient, log)
	if db != nil {
		dispatcher.SetRecorder(dispatch.NewCommandStore(db))
	}
	if sink := instrumented.events; sink != nil {
		dispatcher.SetEventSink(sink)
	}
	if influxClient != nil {
		dispatcher.SetMetrics(influxClient)
	}

	// Conversation history with optional persistence
	history := conversation.New(cfg.Conversation.HistorySize, conversation.EchoResponder{}, log)
	if db != nil {
		history.SetRepository(conversation.NewSQLiteRepository(db))
	}

	// API server
	server, err := api.New(api.Deps{
		Config:       cfg.API,
		Features:     cfg.Features,
		Logger:       log,
		Hub:          instrumented,
		Classifier:   intent.NewRuleClassifier(),
		Dispatcher:   dispatcher,
		Conversation: history,
		Suggester:    suggest.NewBuilder(),
		Version:      version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	// Verify infrastructure connections are healthy
	if err := healthCheck(ctx, db, mqttClient, influxClient, server); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	// The hub is allowed to be down at startup: commands soft-fail until
	// it comes back, so only warn.
	if err := hubClient.HealthCheck(ctx); err != nil {
		log.Warn("hub unreachable at startup", "url", cfg.Hub.URL, "error", err)
	} else {
		log.Info("hub reachable", "url", cfg.Hub.URL)
	}

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls will run in reverse order:
	// 1. API server
	// 2. InfluxDB (if enabled)
	// 3. MQTT (if enabled)
	// 4. Database (if enabled)

	log.Info("Hearth Bridge stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses HEARTH_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("HEARTH_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies all infrastructure connections are healthy.
// Optional components may be nil when disabled.
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client, server *api.Server) error {
	if db != nil {
		if err := db.HealthCheck(ctx); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}
	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}
	if err := server.HealthCheck(ctx); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

// eventPublisher adapts the infrastructure MQTT client to the dispatcher's
// EventSink interface and publishes device snapshot events. Publish
// failures are logged, never propagated; a broker outage must not affect
// command execution.
type eventPublisher struct {
	client *mqtt.Client
	qos    byte
	log    *logging.Logger
}

// newEventPublisher returns nil when MQTT is disabled, keeping the
// nil-check at the call sites.
func newEventPublisher(client *mqtt.Client, cfg config.MQTTConfig, log *logging.Logger) *eventPublisher {
	if client == nil {
		return nil
	}
	return &eventPublisher{
		client: client,
		qos:    byte(cfg.QoS),
		log:    log,
	}
}

// PublishCommandResult implements dispatch.EventSink.
func (p *eventPublisher) PublishCommandResult(result dispatch.CommandResult) {
	payload, err := json.Marshal(result)
	if err != nil {
		p.log.Error("encoding command event", "command_id", result.ID, "error", err)
		return
	}
	if err := p.client.Publish(mqtt.Topics{}.CommandResult(), payload, p.qos, false); err != nil {
		p.log.Warn("publishing command event", "command_id", result.ID, "error", err)
	}
}

// publishSnapshot announces the size of a fresh device snapshot.
// Retained so late subscribers see the last known inventory size.
func (p *eventPublisher) publishSnapshot(count int) {
	payload, err := json.Marshal(map[string]any{
		"count":     count,
		"timestamp": time.Now().UTC(),
	})
	if err != nil {
		p.log.Error("encoding snapshot event", "error", err)
		return
	}
	if err := p.client.Publish(mqtt.Topics{}.DeviceSnapshot(), payload, p.qos, true); err != nil {
		p.log.Warn("publishing snapshot event", "error", err)
	}
}

// instrumentedHub wraps the hub client so every states fetch feeds the
// optional MQTT and InfluxDB sinks. It satisfies api.HubClient.
type instrumentedHub struct {
	client  *hub.Client
	events  *eventPublisher
	metrics *influxdb.Client
}

// FetchStates implements api.HubClient.
func (h *instrumentedHub) FetchStates(ctx context.Context) *hub.Snapshot {
	snap := h.client.FetchStates(ctx)
	if h.events != nil {
		h.events.publishSnapshot(snap.Len())
	}
	if h.metrics != nil {
		h.metrics.WriteDeviceSnapshot(snap.Len())
	}
	return snap
}
