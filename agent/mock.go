package agent

import (
	"context"
	"encoding/json"
	"fmt"
)

// MockImageInterpreter is a mock implementation of ImageInterpreter for
// running without an LLM upstream.
type MockImageInterpreter struct{}

// Ensure MockImageInterpreter implements ImageInterpreter.
var _ ImageInterpreter = (*MockImageInterpreter)(nil)

func (m *MockImageInterpreter) Interpret(ctx context.Context, image []byte, hint string) (string, error) {
	if hint == "" {
		return fmt.Sprintf("[MOCK] product photo (%d bytes)", len(image)), nil
	}
	return fmt.Sprintf("[MOCK] product photo (%d bytes): %s", len(image), hint), nil
}

// MockConversationEngine signals a product search once it has seen two
// messages, mimicking a short requirement-gathering dialogue.
type MockConversationEngine struct {
	turns int
}

var _ ConversationEngine = (*MockConversationEngine)(nil)

func (m *MockConversationEngine) Evaluate(ctx context.Context, text string) (*Evaluation, error) {
	m.turns++
	if m.turns < 2 {
		return &Evaluation{
			ContinueConversation: true,
			Reply:                fmt.Sprintf("[MOCK] Tell me more about %q.", truncate(text, 60)),
		}, nil
	}

	intent, err := json.Marshal(map[string]string{"item": truncate(text, 60)})
	if err != nil {
		return nil, err
	}
	return &Evaluation{
		Reply:  "[MOCK] Got it, searching for matching products.",
		Intent: intent,
	}, nil
}

func (m *MockConversationEngine) Reset() {
	m.turns = 0
}

// MockProductSearchEngine echoes the intent back as a rendered product list.
type MockProductSearchEngine struct{}

var _ ProductSearchEngine = (*MockProductSearchEngine)(nil)

func (m *MockProductSearchEngine) Search(ctx context.Context, intent json.RawMessage) (string, error) {
	return fmt.Sprintf(`<div class="product-list">[MOCK] results for %s</div>`, string(intent)), nil
}

// NewMockSet returns a full set of mock engines.
func NewMockSet() *Set {
	return &Set{
		Image:        &MockImageInterpreter{},
		Conversation: &MockConversationEngine{},
		Search:       &MockProductSearchEngine{},
	}
}

// truncate truncates a string to the given length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
