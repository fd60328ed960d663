package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finmitra-backend/internal/knowledge"
	"finmitra-backend/internal/memory"
	"finmitra-backend/internal/middleware"
	"finmitra-backend/internal/models"
	"finmitra-backend/internal/orchestrator"
)

func withSession(r *http.Request, sessionID string) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.SessionIDKey, sessionID)
	return r.WithContext(ctx)
}

func TestSessionCreate(t *testing.T) {
	auth := middleware.NewSessionAuth("test-secret", time.Hour)
	h := NewSessionHandler(auth, memory.NewMemStore())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/session", nil)
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", rec.Code)
	}
	var resp models.SessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if resp.SessionID == "" || resp.Token == "" {
		t.Fatalf("Expected session id and token, got %+v", resp)
	}
	if resp.ExpiresIn != 3600 {
		t.Errorf("Expected expires_in 3600, got %d", resp.ExpiresIn)
	}

	// The issued token must verify back to the same session.
	id, err := auth.ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if id != resp.SessionID {
		t.Errorf("Expected token to carry %s, got %s", resp.SessionID, id)
	}
}

func TestSessionReset(t *testing.T) {
	auth := middleware.NewSessionAuth("test-secret", time.Hour)
	store := memory.NewMemStore()
	h := NewSessionHandler(auth, store)
	ctx := context.Background()

	mem := memory.New(store, "sess-reset")
	if err := mem.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	mem.AddMessage(ctx, models.RoleUser, "hello")

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/session/reset", nil), "sess-reset")
	rec := httptest.NewRecorder()
	h.Reset(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if _, err := store.Get(ctx, "sess-reset"); err != memory.ErrNotFound {
		t.Errorf("Expected session wiped from the store, got %v", err)
	}
}

func chatBody(t *testing.T, text string) *strings.Reader {
	t.Helper()
	b, err := json.Marshal(models.ChatRequest{
		Messages: []models.ChatMessage{{Role: models.RoleUser, Content: text}},
		Language: "en",
	})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	return strings.NewReader(string(b))
}

func TestChatStream(t *testing.T) {
	orch := orchestrator.New(nil, knowledge.NewRetriever(knowledge.Docs), nil)
	h := NewChatHandler(memory.NewMemStore(), orch)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/chat", chatBody(t, "what is a CIBIL score?")), "sess-chat")
	rec := httptest.NewRecorder()
	h.Stream(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected text/event-stream, got %q", ct)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "event: rag") {
		t.Error("Expected a rag event for a knowledge question")
	}
	if !strings.Contains(body, `data: {"usedDocs":[{"id":"kb-cibil"`) {
		t.Error("Expected the rag payload under the usedDocs key")
	}
	if !strings.Contains(body, `"delta"`) {
		t.Error("Expected at least one token frame")
	}
	if !strings.Contains(body, "event: metadata") {
		t.Error("Expected a metadata event")
	}
	if !strings.HasSuffix(body, "data: [DONE]\n\n") {
		t.Errorf("Expected the stream to end with [DONE], got tail %q", body[len(body)-30:])
	}

	// The metadata frame names the answering agent.
	var agent string
	for _, line := range strings.Split(body, "\n") {
		if !strings.HasPrefix(line, "data: {") || !strings.Contains(line, "agent_type") {
			continue
		}
		var meta map[string]interface{}
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &meta); err != nil {
			t.Fatalf("Decode metadata: %v", err)
		}
		agent, _ = meta["agent_type"].(string)
	}
	if agent != orchestrator.AgentFallback {
		t.Errorf("Expected fallback agent with no provider configured, got %q", agent)
	}
}

func TestChatStream_EmptyMessageRejected(t *testing.T) {
	orch := orchestrator.New(nil, knowledge.NewRetriever(knowledge.Docs), nil)
	h := NewChatHandler(memory.NewMemStore(), orch)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/chat", chatBody(t, "   ")), "sess-chat")
	rec := httptest.NewRecorder()
	h.Stream(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	var resp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if resp.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected VALIDATION_ERROR, got %q", resp.Error.Code)
	}
}

type downStore struct{}

func (downStore) Get(context.Context, string) ([]byte, error) { return nil, memory.ErrNotFound }

func (downStore) Put(context.Context, string, []byte) error {
	return errors.New("store unavailable")
}

func (downStore) Delete(context.Context, string) error { return nil }

func TestChatStream_ErrorFrame(t *testing.T) {
	orch := orchestrator.New(nil, knowledge.NewRetriever(knowledge.Docs), nil)
	h := NewChatHandler(downStore{}, orch)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/chat", chatBody(t, "hello")), "sess-down")
	rec := httptest.NewRecorder()
	h.Stream(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "event: error") {
		t.Error("Expected an error event when the turn fails")
	}
	if !strings.Contains(body, `data: {"error":"`+orchestrator.ErrorReply+`"}`) {
		t.Errorf("Expected the error payload under the error key, got:\n%s", body)
	}
	if !strings.HasSuffix(body, "data: [DONE]\n\n") {
		t.Error("Expected the stream to terminate with [DONE]")
	}
}

func TestChatStream_TokensReconstructResponse(t *testing.T) {
	orch := orchestrator.New(nil, knowledge.NewRetriever(knowledge.Docs), nil)
	store := memory.NewMemStore()
	h := NewChatHandler(store, orch)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/chat", chatBody(t, "calculate emi for 5 lakhs at 10% for 5 years")), "sess-emi")
	rec := httptest.NewRecorder()
	h.Stream(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	// Concatenate every delta frame and compare with the recorded response.
	var streamed strings.Builder
	for _, line := range strings.Split(rec.Body.String(), "\n") {
		if !strings.HasPrefix(line, "data: {\"choices\"") {
			continue
		}
		var frame struct {
			Choices []struct {
				Delta struct {
					Content string `json:"content"`
				} `json:"delta"`
			} `json:"choices"`
		}
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &frame); err != nil {
			t.Fatalf("Decode frame: %v", err)
		}
		for _, c := range frame.Choices {
			streamed.WriteString(c.Delta.Content)
		}
	}

	mem := memory.New(store, "sess-emi")
	if err := mem.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	msgs := mem.Messages()
	if len(msgs) != 2 {
		t.Fatalf("Expected 2 recorded messages, got %d", len(msgs))
	}
	if streamed.String() != msgs[1].Content {
		t.Errorf("Expected streamed tokens to equal the stored response.\nstreamed: %q\nstored:   %q", streamed.String(), msgs[1].Content)
	}
}
