package dispatch

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rfallows/hearth-bridge/internal/hub"
	"github.com/rfallows/hearth-bridge/internal/infrastructure/logging"
	"github.com/rfallows/hearth-bridge/internal/intent"
)

// EntityResult is the outcome of one service call against one entity.
type EntityResult struct {
	EntityID string `json:"entity_id"`
	Action   string `json:"action"`
	Success  bool   `json:"success"`
}

// CommandResult is the full outcome of executing one command.
//
// Success reflects the entity calls only: it is true when no call failed,
// including the case where the command matched no devices at all. Results
// is never nil, so it marshals as [] rather than null.
type CommandResult struct {
	ID        string         `json:"id"`
	Command   string         `json:"command"`
	Success   bool           `json:"success"`
	Results   []EntityResult `json:"results"`
	Timestamp time.Time      `json:"timestamp"`
	Error     string         `json:"error,omitempty"`
}

// ServiceCaller invokes a hub service for a single entity.
// *hub.Client satisfies this; tests substitute fakes.
type ServiceCaller interface {
	CallService(ctx context.Context, domain, service, entityID string, extra map[string]any) bool
}

// Recorder persists command results. Optional on the dispatcher.
type Recorder interface {
	RecordCommand(ctx context.Context, result CommandResult) error
}

// EventSink receives command results for external publication.
// Optional on the dispatcher; failures inside the sink must not propagate.
type EventSink interface {
	PublishCommandResult(result CommandResult)
}

// MetricsWriter receives per-command telemetry. Optional on the dispatcher.
type MetricsWriter interface {
	WriteCommandMetric(commandID string, durationMs float64, total, failed int)
}

// Dispatcher fans a classified command out to matching devices.
//
// Execution is sequential and deterministic: actions run in classifier
// order, and within each action the entities run in hub snapshot order.
// Execution is best-effort: a failed entity call is recorded and the
// remaining calls proceed.
//
// Thread Safety:
//   - Execute is safe for concurrent use once the optional sinks are set.
//   - SetRecorder/SetEventSink/SetMetrics must be called before serving.
type Dispatcher struct {
	caller  ServiceCaller
	logger  *logging.Logger
	store   Recorder
	events  EventSink
	metrics MetricsWriter
}

// New creates a dispatcher with the required collaborators.
func New(caller ServiceCaller, logger *logging.Logger) *Dispatcher {
	return &Dispatcher{
		caller: caller,
		logger: logger,
	}
}

// SetRecorder attaches a command audit store. Call before serving traffic.
func (d *Dispatcher) SetRecorder(r Recorder) {
	d.store = r
}

// SetEventSink attaches an external event publisher. Call before serving traffic.
func (d *Dispatcher) SetEventSink(s EventSink) {
	d.events = s
}

// SetMetrics attaches a telemetry writer. Call before serving traffic.
func (d *Dispatcher) SetMetrics(m MetricsWriter) {
	d.metrics = m
}

// Execute runs every action against every matching device in the snapshot.
//
// Parameters:
//   - ctx: Context for timeout/cancellation, passed through to hub calls
//   - command: Original command text, echoed into the result
//   - actions: Classified actions, executed in order
//   - snap: Device snapshot to match entity patterns against
//
// Returns:
//   - CommandResult: Per-entity outcomes plus overall success
func (d *Dispatcher) Execute(ctx context.Context, command string, actions []intent.Action, snap *hub.Snapshot) CommandResult {
	start := time.Now()

	result := CommandResult{
		ID:        "cmd-" + uuid.NewString()[:8],
		Command:   command,
		Success:   true,
		Results:   []EntityResult{},
		Timestamp: start.UTC(),
	}

	for _, action := range actions {
		for _, entityID := range snap.MatchPrefix(action.EntityPrefix()) {
			ok := d.caller.CallService(ctx, action.Domain, action.Service, entityID, nil)
			if !ok {
				result.Success = false
			}
			result.Results = append(result.Results, EntityResult{
				EntityID: entityID,
				Action:   action.Descriptor(),
				Success:  ok,
			})
		}
	}

	failed := 0
	for _, r := range result.Results {
		if !r.Success {
			failed++
		}
	}

	d.logger.Info("command executed",
		"command_id", result.ID,
		"actions", len(actions),
		"entities", len(result.Results),
		"failed", failed,
		"success", result.Success,
	)

	if d.store != nil {
		if err := d.store.RecordCommand(ctx, result); err != nil {
			d.logger.Error("recording command", "command_id", result.ID, "error", err)
		}
	}
	if d.events != nil {
		d.events.PublishCommandResult(result)
	}
	if d.metrics != nil {
		d.metrics.WriteCommandMetric(result.ID, float64(time.Since(start).Milliseconds()), len(result.Results), failed)
	}

	return result
}
