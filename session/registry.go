package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shopmate/orchestrator/agent"
	"github.com/shopmate/orchestrator/domain"
)

// Registry maps session ids to their engine bundles and history. All
// methods are safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	factory  agent.Factory
}

// NewRegistry creates an empty registry that builds engines with factory.
func NewRegistry(factory agent.Factory) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		factory:  factory,
	}
}

// Create validates the credentials, builds the engine set and stores a new
// session under a freshly generated id. Ids are never reused.
func (r *Registry) Create(cfg domain.EngineConfig) (*Session, error) {
	if cfg.LLMAPIKey == "" || cfg.SearchAPIKey == "" || cfg.FirecrawlAPIKey == "" {
		return nil, domain.NewConfigurationError("missing required API keys")
	}

	engines, err := r.factory(cfg)
	if err != nil {
		return nil, domain.NewProcessingError("failed to initialize engines", err)
	}

	sess := &Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		Engines:   engines,
		Log:       NewMessageLog(),
	}

	r.mu.Lock()
	r.sessions[sess.ID] = sess
	r.mu.Unlock()

	return sess, nil
}

// Get returns the session for id.
func (r *Registry) Get(sessionID string) (*Session, error) {
	r.mu.RLock()
	sess := r.sessions[sessionID]
	r.mu.RUnlock()
	if sess == nil {
		return nil, domain.NewNotFoundError("session not found")
	}
	return sess, nil
}

// Clear empties the session's history and resets the conversation engine
// to its initial dialogue state. The engine instances are kept, so the
// configured credentials survive.
func (r *Registry) Clear(sessionID string) error {
	sess, err := r.Get(sessionID)
	if err != nil {
		return err
	}

	sess.LockTurn()
	defer sess.UnlockTurn()
	sess.Log.Clear()
	sess.Engines.Conversation.Reset()
	return nil
}

// Delete removes the session entirely.
func (r *Registry) Delete(sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[sessionID]; !ok {
		return domain.NewNotFoundError("session not found")
	}
	delete(r.sessions, sessionID)
	return nil
}

// List returns a point-in-time view of all sessions.
func (r *Registry) List() []domain.SessionInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]domain.SessionInfo, 0, len(r.sessions))
	for _, sess := range r.sessions {
		infos = append(infos, domain.SessionInfo{
			SessionID:    sess.ID,
			CreatedAt:    sess.CreatedAt,
			MessageCount: sess.Log.Len(),
		})
	}
	return infos
}
