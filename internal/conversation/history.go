package conversation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rfallows/hearth-bridge/internal/infrastructure/logging"
)

// Responder produces the assistant's reply to a user message.
//
// Implementations must be safe for concurrent use. The built-in
// EchoResponder is a placeholder for an NLP backend; swapping one in
// only touches this interface.
type Responder interface {
	Respond(ctx context.Context, message string) string
}

// EchoResponder acknowledges messages without interpreting them.
type EchoResponder struct{}

// Respond implements Responder.
func (EchoResponder) Respond(_ context.Context, message string) string {
	return "Processing: " + message
}

// History runs the conversational exchange and remembers it.
//
// Every exchange appends a user turn and an assistant turn to the bounded
// in-memory log, and mirrors both to the optional repository. Repository
// failures are logged and do not affect the reply.
type History struct {
	log       *Log
	responder Responder
	repo      Repository
	logger    *logging.Logger
}

// New creates a conversation history.
//
// Parameters:
//   - capacity: In-memory log bound; <= 0 uses the default
//   - responder: Reply generator
//   - logger: Logger for repository soft failures
func New(capacity int, responder Responder, logger *logging.Logger) *History {
	return &History{
		log:       NewLog(capacity),
		responder: responder,
		logger:    logger,
	}
}

// SetRepository attaches persistent turn storage. Call before serving traffic.
func (h *History) SetRepository(r Repository) {
	h.repo = r
}

// Exchange processes one user message and returns the assistant reply
// along with the in-memory history length after both turns are recorded.
func (h *History) Exchange(ctx context.Context, message string) (string, int) {
	h.record(ctx, Turn{
		ID:        "trn-" + uuid.NewString()[:8],
		Role:      RoleUser,
		Content:   message,
		Timestamp: time.Now().UTC(),
	})

	reply := h.responder.Respond(ctx, message)

	h.record(ctx, Turn{
		ID:        "trn-" + uuid.NewString()[:8],
		Role:      RoleAssistant,
		Content:   reply,
		Timestamp: time.Now().UTC(),
	})

	return reply, h.log.Len()
}

// Len returns the in-memory history length.
func (h *History) Len() int {
	return h.log.Len()
}

// Recent returns up to n turns from the in-memory log, oldest first.
func (h *History) Recent(n int) []Turn {
	return h.log.Recent(n)
}

func (h *History) record(ctx context.Context, turn Turn) {
	h.log.Append(turn)
	if h.repo == nil {
		return
	}
	if err := h.repo.AppendTurn(ctx, turn); err != nil {
		h.logger.Error("persisting conversation turn", "turn_id", turn.ID, "error", err)
	}
}
