// Package conversation tracks the message exchange with the assistant.
//
// The in-memory Log is the source of truth for history length and recent
// context; it is bounded, so a long-running bridge never grows without
// limit. The optional SQLite repository mirrors every turn for audit and
// survives restarts, but the bridge does not read it back on startup.
//
// Replies come from a Responder. The default EchoResponder simply
// acknowledges the message; a real NLP backend slots in behind the same
// interface.
package conversation
