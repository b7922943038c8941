// Package dispatch executes classified commands against the hub.
//
// The Dispatcher takes the actions produced by intent classification,
// matches each action's entity pattern against a device snapshot, and
// invokes the corresponding hub service for every match. Execution is
// sequential, deterministic, and best-effort: one failing device never
// blocks the rest.
//
// Optional collaborators hang off the dispatcher via setters:
//   - Recorder (CommandStore): append-only SQLite audit of every command
//   - EventSink: publishes results to MQTT
//   - MetricsWriter: records duration and failure counts to InfluxDB
//
// All three are nil-safe; the bridge runs fine with none of them attached.
package dispatch
