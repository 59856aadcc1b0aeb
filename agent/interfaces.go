// Package agent provides the capability interfaces the chat pipeline
// depends on and their LLM-backed implementations.
package agent

import (
	"context"
	"encoding/json"
)

// Evaluation is the conversation engine's verdict for one user message.
// Intent is present iff ContinueConversation is false.
type Evaluation struct {
	ContinueConversation bool
	Reply                string
	Intent               json.RawMessage
}

// ImageInterpreter turns a product image (plus an optional caption hint)
// into descriptive text. The caption is folded into the output.
type ImageInterpreter interface {
	Interpret(ctx context.Context, image []byte, hint string) (string, error)
}

// ConversationEngine decides, per message, whether to keep gathering
// requirements or hand off to product search. Implementations own their
// dialogue state; one instance serves exactly one session and callers must
// serialize access.
type ConversationEngine interface {
	Evaluate(ctx context.Context, text string) (*Evaluation, error)
	Reset()
}

// ProductSearchEngine runs a product search from the extracted shopping
// intent and returns rendered output.
type ProductSearchEngine interface {
	Search(ctx context.Context, intent json.RawMessage) (string, error)
}

// Set bundles the three engines bound to one session.
type Set struct {
	Image        ImageInterpreter
	Conversation ConversationEngine
	Search       ProductSearchEngine
}
