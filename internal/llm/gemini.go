package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"finmitra-backend/internal/models"
)

// GeminiClient serves completions through the Gemini SDK's native streaming
// iterator.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.3)
	model.SetTopP(0.95)
	return &GeminiClient{client: client, model: model}, nil
}

func (c *GeminiClient) Close() {
	c.client.Close()
}

func (c *GeminiClient) Name() string { return "gemini" }

// Stream flattens the conversation into a single prompt (the SDK chat session
// is stateful, but session history already lives in our own memory layer) and
// relays each candidate part as a token.
func (c *GeminiClient) Stream(ctx context.Context, system string, messages []models.ChatMessage, onToken func(string)) (string, error) {
	var prompt strings.Builder
	if system != "" {
		prompt.WriteString(system)
		prompt.WriteString("\n\n")
	}
	for _, m := range messages {
		prompt.WriteString(m.Role)
		prompt.WriteString(": ")
		prompt.WriteString(m.Content)
		prompt.WriteString("\n")
	}

	iter := c.model.GenerateContentStream(ctx, genai.Text(prompt.String()))
	var full strings.Builder
	for {
		resp, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			// Tokens may already be on the wire; hand back the partial text.
			return full.String(), fmt.Errorf("gemini stream: %w", err)
		}
		for _, cand := range resp.Candidates {
			if cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				if text, ok := part.(genai.Text); ok && text != "" {
					full.WriteString(string(text))
					if onToken != nil {
						onToken(string(text))
					}
				}
			}
		}
	}
	return full.String(), nil
}
