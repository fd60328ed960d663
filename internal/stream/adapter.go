// Package stream normalizes the three response shapes (a complete local
// string, a locally typed-out string, and a genuine upstream token stream)
// into one incremental callback interface. Concatenating every emitted token
// always reconstructs the full response exactly.
package stream

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// Typed-out pacing for UX parity with real streaming.
const (
	TypeOutChunkRunes = 24
	TypeOutDelay      = 30 * time.Millisecond
)

// Callbacks receive the normalized stream. OnDone always gets the complete
// response text; OnError is terminal and mutually exclusive with OnDone.
type Callbacks struct {
	OnToken func(token string)
	OnDone  func(full string)
	OnError func(err error)
}

func (cb Callbacks) token(t string) {
	if cb.OnToken != nil && t != "" {
		cb.OnToken(t)
	}
}

func (cb Callbacks) done(full string) {
	if cb.OnDone != nil {
		cb.OnDone(full)
	}
}

// Whole emits a fully-formed response in a single token.
func Whole(text string, cb Callbacks) {
	cb.token(text)
	cb.done(text)
}

// TypedOut reveals a local response incrementally in fixed-size rune chunks
// with a fixed delay, stopping early on context cancellation (the emitted
// prefix plus remainder still equals the full text on completion).
func TypedOut(ctx context.Context, text string, cb Callbacks) {
	runes := []rune(text)
	for i := 0; i < len(runes); i += TypeOutChunkRunes {
		end := i + TypeOutChunkRunes
		if end > len(runes) {
			end = len(runes)
		}
		cb.token(string(runes[i:end]))
		if end < len(runes) {
			select {
			case <-ctx.Done():
				// Flush the remainder so the reconstruction invariant holds.
				cb.token(string(runes[end:]))
				cb.done(text)
				return
			case <-time.After(TypeOutDelay):
			}
		}
	}
	cb.done(text)
}

// sseChunk is the OpenAI-compatible delta frame shape.
type sseChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// RelaySSE parses an upstream server-sent-event body and re-emits content
// deltas as they arrive. A malformed data payload is buffered and retried
// against the next incoming frame; it only surfaces as an error if the
// buffer never resolves to valid JSON before the stream ends. The [DONE]
// sentinel terminates cleanly; reaching EOF without it is an error.
func RelaySSE(body io.Reader, cb Callbacks) (string, error) {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var full strings.Builder
	var pending string
	finished := false

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "[DONE]" {
			finished = true
			break
		}

		candidate := pending + payload
		var chunk sseChunk
		if err := json.Unmarshal([]byte(candidate), &chunk); err != nil {
			// Frame may have been split across reads; retry with the next one.
			pending = candidate
			continue
		}
		pending = ""
		for _, c := range chunk.Choices {
			if c.Delta.Content != "" {
				full.WriteString(c.Delta.Content)
				cb.token(c.Delta.Content)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return full.String(), fmt.Errorf("read stream: %w", err)
	}
	if pending != "" {
		return full.String(), errors.New("stream ended with unparseable frame")
	}
	if !finished {
		return full.String(), errors.New("stream ended without [DONE]")
	}
	cb.done(full.String())
	return full.String(), nil
}
