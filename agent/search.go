package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/shopmate/orchestrator/llmclient"
	"github.com/shopmate/orchestrator/searchclient"
)

const renderPrompt = `You are given a shopping intent and a set of web search results as JSON.
Select the results that match the intent and render them as an HTML fragment: a <div class="product-list"> containing one <div class="product"> per hit with the title linked to its URL and a one-line summary.
Answer with the HTML fragment only.`

const maxSearchResults = 5

// productSearchEngine searches the web for products matching the extracted
// intent and has the LLM render the hits as an HTML product list.
type productSearchEngine struct {
	search *searchclient.Client
	llm    *llmclient.Client
	model  string
}

// NewProductSearchEngine creates a web-search-backed product engine.
func NewProductSearchEngine(search *searchclient.Client, llm *llmclient.Client, model string) ProductSearchEngine {
	return &productSearchEngine{search: search, llm: llm, model: model}
}

func (e *productSearchEngine) Search(ctx context.Context, intent json.RawMessage) (string, error) {
	query, err := QueryFromIntent(intent)
	if err != nil {
		return "", err
	}

	results, err := e.search.Search(ctx, query, maxSearchResults)
	if err != nil {
		return "", fmt.Errorf("product search failed: %w", err)
	}
	if len(results) == 0 {
		return `<div class="product-list"><p>No matching products found.</p></div>`, nil
	}

	return e.render(ctx, intent, results)
}

func (e *productSearchEngine) render(ctx context.Context, intent json.RawMessage, results []searchclient.Result) (string, error) {
	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("failed to marshal search results: %w", err)
	}

	resp, err := e.llm.CreateChatCompletion(ctx, &llmclient.ChatCompletionRequest{
		Model: e.model,
		Messages: []llmclient.ChatMessage{
			{Role: "system", Content: renderPrompt},
			{Role: "user", Content: fmt.Sprintf("Intent: %s\nResults: %s", string(intent), string(resultsJSON))},
		},
	})
	if err != nil {
		return "", fmt.Errorf("product rendering failed: %w", err)
	}

	rendered := resp.FirstContent()
	if rendered == "" {
		return "", fmt.Errorf("product renderer returned empty content")
	}
	return rendered, nil
}

// QueryFromIntent flattens the extracted shopping intent into a search
// query string, with the item (when present) leading.
func QueryFromIntent(intent json.RawMessage) (string, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal(intent, &fields); err != nil {
		return "", fmt.Errorf("malformed shopping intent: %w", err)
	}
	if len(fields) == 0 {
		return "", fmt.Errorf("empty shopping intent")
	}

	var parts []string
	if item, ok := fields["item"]; ok {
		parts = append(parts, fmt.Sprint(item))
		delete(fields, "item")
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %v", k, fields[k]))
	}

	return strings.Join(parts, " "), nil
}
