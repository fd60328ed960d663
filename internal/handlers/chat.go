package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"finmitra-backend/internal/memory"
	"finmitra-backend/internal/middleware"
	"finmitra-backend/internal/models"
	"finmitra-backend/internal/orchestrator"
)

type ChatHandler struct {
	store memory.Store
	orch  *orchestrator.Orchestrator
}

func NewChatHandler(store memory.Store, orch *orchestrator.Orchestrator) *ChatHandler {
	return &ChatHandler{store: store, orch: orch}
}

// sseWriter emits server-sent-event frames and flushes after each one, so
// tokens reach the browser as they are produced.
type sseWriter struct {
	w http.ResponseWriter
	f http.Flusher
}

func (s *sseWriter) event(name string, data interface{}) {
	j, _ := json.Marshal(data)
	fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", name, j)
	s.f.Flush()
}

// delta writes a token in the OpenAI-compatible chunk shape, which the
// frontend streaming parser already understands.
func (s *sseWriter) delta(token string) {
	frame := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"delta": map[string]string{"content": token}},
		},
	}
	j, _ := json.Marshal(frame)
	fmt.Fprintf(s.w, "data: %s\n\n", j)
	s.f.Flush()
}

func (s *sseWriter) done() {
	fmt.Fprint(s.w, "data: [DONE]\n\n")
	s.f.Flush()
}

// Stream processes one chat turn and streams the response over SSE:
// an optional rag event with the grounding documents, token frames, a
// metadata event, and a terminal [DONE].
func (h *ChatHandler) Stream(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	text := strings.TrimSpace(req.LastUserMessage())
	if text == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "A user message is required", r))
		return
	}
	lang := models.ParseLanguage(req.Language)

	sessionID := middleware.GetSessionID(r.Context())
	mem := memory.New(h.store, sessionID)
	if err := mem.Load(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL", "Failed to load session", r))
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL", "Streaming unsupported", r))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sse := &sseWriter{w: w, f: flusher}

	ev := orchestrator.Events{
		OnRAG: func(refs []models.DocRef) {
			sse.event("rag", map[string]interface{}{"usedDocs": refs})
		},
		OnToken: sse.delta,
	}

	out, err := h.orch.Process(r.Context(), mem, text, lang, ev)
	if err != nil {
		log.Printf("chat turn failed (session %s): %v", sessionID, err)
		sse.event("error", map[string]string{"error": orchestrator.ErrorReply})
		sse.done()
		return
	}

	meta := map[string]interface{}{"agent_type": out.AgentType}
	for k, v := range out.Metadata {
		meta[k] = v
	}
	sse.event("metadata", meta)
	sse.done()
}
