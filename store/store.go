// Package store defines the turn archive interface and implementations.
package store

import (
	"context"

	"github.com/shopmate/orchestrator/domain"
)

// Store is the diagnostics archive for chat turns and messages. Sessions
// themselves are never persisted; the archive outlives session deletion
// and is read back through the history endpoint.
type Store interface {
	// Turn operations
	RecordTurn(ctx context.Context, rec *domain.TurnRecord) error
	GetTurns(ctx context.Context, sessionID string, limit int) ([]domain.TurnRecord, error)

	// Message operations
	RecordMessage(ctx context.Context, sessionID string, msg domain.Message) error
	GetMessages(ctx context.Context, sessionID string, limit int) ([]domain.Message, error)

	// Lifecycle
	Close() error
}
