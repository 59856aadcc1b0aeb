package session

import (
	"sync"
	"time"

	"github.com/shopmate/orchestrator/agent"
)

// Session is one user's isolated bundle of engine instances and message
// history. No field is ever shared between two sessions.
type Session struct {
	ID        string
	CreatedAt time.Time
	Engines   *agent.Set
	Log       *MessageLog

	turnMu sync.Mutex
}

// LockTurn serializes chat turns on this session. Concurrent turns would
// interleave log appends and race on the conversation engine's dialogue
// state.
func (s *Session) LockTurn() {
	s.turnMu.Lock()
}

// UnlockTurn releases the turn lock.
func (s *Session) UnlockTurn() {
	s.turnMu.Unlock()
}
