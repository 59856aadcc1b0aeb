package agent

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/shopmate/orchestrator/llmclient"
)

const imagePrompt = "Describe the product in this image for a shopping search: item type, brand if visible, color, size and distinguishing features. Answer with the description only."

// imageInterpreter extracts product text from an image via a multimodal
// LLM request.
type imageInterpreter struct {
	llm   *llmclient.Client
	model string
}

// NewImageInterpreter creates an LLM-backed image interpreter.
func NewImageInterpreter(llm *llmclient.Client, model string) ImageInterpreter {
	return &imageInterpreter{llm: llm, model: model}
}

func (p *imageInterpreter) Interpret(ctx context.Context, image []byte, hint string) (string, error) {
	prompt := imagePrompt
	if hint != "" {
		prompt += "\nFold the user's caption into the description: " + hint
	}

	dataURI := "data:" + http.DetectContentType(image) + ";base64," + base64.StdEncoding.EncodeToString(image)

	resp, err := p.llm.CreateChatCompletion(ctx, &llmclient.ChatCompletionRequest{
		Model: p.model,
		Messages: []llmclient.ChatMessage{
			{
				Role: "user",
				Content: []llmclient.ContentPart{
					{Type: "text", Text: prompt},
					{Type: "image_url", ImageURL: &llmclient.ImageURL{URL: dataURI}},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("image interpretation failed: %w", err)
	}

	text := resp.FirstContent()
	if text == "" {
		return "", fmt.Errorf("image interpreter returned empty content")
	}
	return text, nil
}
