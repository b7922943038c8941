package conversation

import (
	"sync"
	"time"
)

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message in the conversation, from either side.
type Turn struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// defaultCapacity bounds the in-memory log when no size is configured.
const defaultCapacity = 256

// Log is a bounded in-memory conversation history.
//
// Appends beyond capacity evict the oldest turn, so memory stays flat no
// matter how long the bridge runs. The zero value is not usable; create
// with NewLog.
//
// Thread Safety:
//   - All methods are safe for concurrent use.
type Log struct {
	mu       sync.Mutex
	turns    []Turn
	capacity int
}

// NewLog creates a bounded log. Capacities <= 0 fall back to the default.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Log{capacity: capacity}
}

// Append adds a turn, evicting the oldest if the log is full.
func (l *Log) Append(t Turn) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.turns) == l.capacity {
		copy(l.turns, l.turns[1:])
		l.turns = l.turns[:l.capacity-1]
	}
	l.turns = append(l.turns, t)
}

// Len returns the number of turns currently held.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.turns)
}

// Recent returns up to n turns in chronological order, oldest first.
// n <= 0 returns everything held. The result is a copy.
func (l *Log) Recent(n int) []Turn {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n <= 0 || n > len(l.turns) {
		n = len(l.turns)
	}
	out := make([]Turn, n)
	copy(out, l.turns[len(l.turns)-n:])
	return out
}
