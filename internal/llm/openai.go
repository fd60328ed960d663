package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"finmitra-backend/internal/models"
	"finmitra-backend/internal/stream"
)

const openAIMaxAttempts = 3

// OpenAIClient talks to any OpenAI-compatible /chat/completions endpoint in
// streaming mode.
type OpenAIClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewOpenAIClient(baseURL, apiKey, model string) *OpenAIClient {
	return &OpenAIClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (c *OpenAIClient) Name() string { return "openai" }

// Stream posts the conversation with stream=true and relays the SSE deltas.
// Connection and status failures are retried with backoff; a stream that has
// already emitted tokens is not retried, since the caller may have forwarded
// them.
func (c *OpenAIClient) Stream(ctx context.Context, system string, messages []models.ChatMessage, onToken func(string)) (string, error) {
	payload := c.buildPayload(system, messages)

	var lastErr error
	for attempt := 1; attempt <= openAIMaxAttempts; attempt++ {
		emitted := false
		full, err := c.doStream(ctx, payload, func(t string) {
			emitted = true
			if onToken != nil {
				onToken(t)
			}
		})
		if err == nil {
			return full, nil
		}
		lastErr = err
		if emitted {
			// Tokens may already be on the wire; hand back the partial text.
			return full, err
		}
		if ctx.Err() != nil {
			break
		}
		log.Printf("llm request failed (attempt %d/%d): %v", attempt, openAIMaxAttempts, err)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
		}
	}
	return "", lastErr
}

func (c *OpenAIClient) buildPayload(system string, messages []models.ChatMessage) []byte {
	msgs := make([]map[string]string, 0, len(messages)+1)
	if system != "" {
		msgs = append(msgs, map[string]string{"role": "system", "content": system})
	}
	for _, m := range messages {
		msgs = append(msgs, map[string]string{"role": m.Role, "content": m.Content})
	}
	body := map[string]interface{}{
		"model":    c.model,
		"stream":   true,
		"messages": msgs,
	}
	payload, _ := json.Marshal(body)
	return payload
}

func (c *OpenAIClient) doStream(ctx context.Context, payload []byte, onToken func(string)) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("llm status %d: %s", resp.StatusCode, data)
	}

	return stream.RelaySSE(resp.Body, stream.Callbacks{OnToken: onToken})
}
