// Package session provides the session registry and per-session message
// history for the shopping assistant.
package session

import (
	"sync"

	"github.com/shopmate/orchestrator/domain"
)

// MessageLog is an append-only, mutex-guarded record of a session's turns.
// A snapshot always reflects a prefix of completed appends.
type MessageLog struct {
	mu       sync.Mutex
	messages []domain.Message
}

// NewMessageLog creates an empty log.
func NewMessageLog() *MessageLog {
	return &MessageLog{}
}

// Append adds one message to the end of the log.
func (l *MessageLog) Append(msg domain.Message) {
	l.mu.Lock()
	l.messages = append(l.messages, msg)
	l.mu.Unlock()
}

// Snapshot returns a copy of the full history in insertion order.
func (l *MessageLog) Snapshot() []domain.Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Clear empties the log in place.
func (l *MessageLog) Clear() {
	l.mu.Lock()
	l.messages = nil
	l.mu.Unlock()
}

// Len returns the number of appended messages.
func (l *MessageLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.messages)
}
