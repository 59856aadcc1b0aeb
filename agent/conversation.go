package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopmate/orchestrator/llmclient"
)

const conversationSystemPrompt = `You are a shopping assistant gathering the requirements for a product search.
Ask short follow-up questions until you know what the user wants to buy and any constraints (size, budget, brand, color).
Respond with a JSON object: {"have_further_conversation": <bool>, "message": <string>, "data": <object>}.
Set have_further_conversation to false only once the requirements are complete, and put the extracted requirements in data (for example {"item": "running shoes", "size": 10, "max_price": 100}).
While still gathering requirements, set have_further_conversation to true and leave data empty.`

// conversationEngine drives requirement gathering through an LLM, keeping
// the dialogue history between turns.
type conversationEngine struct {
	llm     *llmclient.Client
	model   string
	history []llmclient.ChatMessage
}

// NewConversationEngine creates an LLM-backed conversation engine in its
// initial dialogue state.
func NewConversationEngine(llm *llmclient.Client, model string) ConversationEngine {
	return &conversationEngine{
		llm:   llm,
		model: model,
		history: []llmclient.ChatMessage{
			{Role: "system", Content: conversationSystemPrompt},
		},
	}
}

// verdict is the JSON shape the LLM is instructed to return.
type verdict struct {
	HaveFurtherConversation bool            `json:"have_further_conversation"`
	Message                 string          `json:"message"`
	Data                    json.RawMessage `json:"data"`
}

func (e *conversationEngine) Evaluate(ctx context.Context, text string) (*Evaluation, error) {
	e.history = append(e.history, llmclient.ChatMessage{Role: "user", Content: text})

	resp, err := e.llm.CreateChatCompletion(ctx, &llmclient.ChatCompletionRequest{
		Model:          e.model,
		Messages:       e.history,
		ResponseFormat: map[string]interface{}{"type": "json_object"},
	})
	if err != nil {
		// a failed turn must not linger in the dialogue state
		e.history = e.history[:len(e.history)-1]
		return nil, fmt.Errorf("conversation completion failed: %w", err)
	}

	content := resp.FirstContent()
	var v verdict
	if err := json.Unmarshal([]byte(content), &v); err != nil {
		e.history = e.history[:len(e.history)-1]
		return nil, fmt.Errorf("conversation engine returned malformed verdict: %w", err)
	}

	e.history = append(e.history, llmclient.ChatMessage{Role: "assistant", Content: content})

	eval := &Evaluation{
		ContinueConversation: v.HaveFurtherConversation,
		Reply:                v.Message,
	}
	if !v.HaveFurtherConversation {
		eval.Intent = v.Data
	}
	return eval, nil
}

// Reset returns the engine to its initial dialogue state, keeping only the
// system prompt.
func (e *conversationEngine) Reset() {
	e.history = e.history[:1]
}
