// Package domain defines the core domain models for the shopping assistant.
package domain

import (
	"time"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// MessageKindProductResults tags assistant messages that carry rendered
// product-search results rather than an ordinary reply.
const MessageKindProductResults = "product_results"

// TurnKind distinguishes the two outcomes of a chat turn.
type TurnKind string

const (
	TurnKindConversation  TurnKind = "conversation"
	TurnKindProductSearch TurnKind = "product_search"
)

// Message is a single entry in a session's history. Immutable once appended.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Kind      string    `json:"type,omitempty"`
	CreatedAt time.Time `json:"timestamp"`
}

// ChatTurnResult is the outcome of one pass through the chat pipeline.
type ChatTurnResult struct {
	Kind                 TurnKind  `json:"type"`
	Reply                string    `json:"message"`
	ProductsHTML         string    `json:"products_html,omitempty"`
	ContinueConversation bool      `json:"continue_conversation"`
	Timestamp            time.Time `json:"timestamp"`
}

// SessionInfo is a point-in-time listing entry for one session.
type SessionInfo struct {
	SessionID    string    `json:"session_id"`
	CreatedAt    time.Time `json:"created_at"`
	MessageCount int       `json:"message_count"`
}

// EngineConfig carries the credentials and mode selectors used to build a
// session's engines.
type EngineConfig struct {
	LLMAPIKey       string `json:"api_key_llm"`
	SearchAPIKey    string `json:"api_key_search_tool"`
	FirecrawlAPIKey string `json:"api_key_firecrawl"`
	WebSearchMode   string `json:"web_search_mode"`
	LLMMode         string `json:"llm_mode"`
}

// TurnRecord is one archived chat turn.
type TurnRecord struct {
	TurnID    string    `json:"turn_id"`
	SessionID string    `json:"session_id"`
	Kind      TurnKind  `json:"type"`
	Reply     string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
