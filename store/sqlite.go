package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/shopmate/orchestrator/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS turns (
			turn_id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			reply TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_turns_session ON turns(session_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS archived_messages (
			message_id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			role TEXT NOT NULL,
			kind TEXT,
			content TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_archived_messages_session ON archived_messages(session_id, created_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// RecordTurn archives one completed chat turn.
func (s *SQLiteStore) RecordTurn(ctx context.Context, rec *domain.TurnRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO turns (turn_id, session_id, kind, reply, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.TurnID, rec.SessionID, string(rec.Kind), rec.Reply, rec.CreatedAt)
	return err
}

// GetTurns retrieves archived turns for a session in insertion order.
func (s *SQLiteStore) GetTurns(ctx context.Context, sessionID string, limit int) ([]domain.TurnRecord, error) {
	query := `SELECT turn_id, session_id, kind, reply, created_at FROM turns WHERE session_id = ? ORDER BY created_at ASC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []domain.TurnRecord
	for rows.Next() {
		var rec domain.TurnRecord
		var kind string
		if err := rows.Scan(&rec.TurnID, &rec.SessionID, &kind, &rec.Reply, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Kind = domain.TurnKind(kind)
		turns = append(turns, rec)
	}
	return turns, rows.Err()
}

// RecordMessage archives one appended message.
func (s *SQLiteStore) RecordMessage(ctx context.Context, sessionID string, msg domain.Message) error {
	messageID := "msg_" + uuid.New().String()[:8]
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO archived_messages (message_id, session_id, role, kind, content, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		messageID, sessionID, msg.Role, msg.Kind, msg.Content, msg.CreatedAt)
	return err
}

// GetMessages retrieves archived messages for a session in insertion order.
func (s *SQLiteStore) GetMessages(ctx context.Context, sessionID string, limit int) ([]domain.Message, error) {
	query := `SELECT role, kind, content, created_at FROM archived_messages WHERE session_id = ? ORDER BY created_at ASC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		var kind sql.NullString
		if err := rows.Scan(&msg.Role, &kind, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, err
		}
		if kind.Valid {
			msg.Kind = kind.String
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
