package agent

import (
	"log"
	"os"
	"time"

	"github.com/shopmate/orchestrator/domain"
	"github.com/shopmate/orchestrator/llmclient"
	"github.com/shopmate/orchestrator/searchclient"
)

const (
	// EnvMode is the environment variable name for mode selection.
	EnvMode = "SHOPMATE_MODE"
	// ModeMock indicates mock engines should be used.
	ModeMock = "MOCK"
)

// Factory builds a session's engine set from its credentials.
type Factory func(cfg domain.EngineConfig) (*Set, error)

// NewFactory returns the engine factory for the configured endpoints.
// If SHOPMATE_MODE=MOCK, the factory produces mock engines instead.
func NewFactory(llmBaseURL, searchBaseURL string, timeout time.Duration) Factory {
	if os.Getenv(EnvMode) == ModeMock {
		log.Println("SHOPMATE_MODE=MOCK detected, using mock engines")
		return func(cfg domain.EngineConfig) (*Set, error) {
			return NewMockSet(), nil
		}
	}

	return func(cfg domain.EngineConfig) (*Set, error) {
		llm := llmclient.NewClient(llmBaseURL, cfg.LLMAPIKey, timeout)
		search := searchclient.NewClient(searchBaseURL, cfg.SearchAPIKey, timeout)
		model := modelForMode(cfg.LLMMode)
		return &Set{
			Image:        NewImageInterpreter(llm, model),
			Conversation: NewConversationEngine(llm, model),
			Search:       NewProductSearchEngine(search, llm, model),
		}, nil
	}
}

func modelForMode(mode string) string {
	switch mode {
	case "", "OpenAI":
		return "gpt-4o-mini"
	default:
		return mode
	}
}
