// Package websocket is the bidirectional chat transport, for clients that
// prefer one socket over SSE. Frames mirror the SSE events one-to-one.
package websocket

import (
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"finmitra-backend/internal/memory"
	"finmitra-backend/internal/middleware"
	"finmitra-backend/internal/models"
	"finmitra-backend/internal/orchestrator"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// inFrame is one user turn sent by the client.
type inFrame struct {
	Content  string `json:"content"`
	Language string `json:"language,omitempty"`
}

// outFrame is one event pushed to the client.
type outFrame struct {
	Type      string            `json:"type"` // rag | token | metadata | done | error
	Token     string            `json:"token,omitempty"`
	Documents []models.DocRef   `json:"documents,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Message   string            `json:"message,omitempty"`
}

type Hub struct {
	auth  *middleware.SessionAuth
	store memory.Store
	orch  *orchestrator.Orchestrator
}

func NewHub(auth *middleware.SessionAuth, store memory.Store, orch *orchestrator.Orchestrator) *Hub {
	return &Hub{auth: auth, store: store, orch: orch}
}

// HandleWebSocket authenticates via the token query param, upgrades, and
// serves chat turns until the client disconnects. Turns on one socket are
// processed strictly in order.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	sessionID, err := h.auth.ParseToken(tokenStr)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("WebSocket connected: session %s", sessionID)

	var writeMu sync.Mutex
	send := func(f outFrame) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(f); err != nil {
			log.Printf("WebSocket write failed (session %s): %v", sessionID, err)
		}
	}

	for {
		var in inFrame
		if err := conn.ReadJSON(&in); err != nil {
			break
		}
		text := strings.TrimSpace(in.Content)
		if text == "" {
			send(outFrame{Type: "error", Message: "A message is required"})
			continue
		}

		mem := memory.New(h.store, sessionID)
		if err := mem.Load(r.Context()); err != nil {
			log.Printf("WebSocket session load failed (session %s): %v", sessionID, err)
			send(outFrame{Type: "error", Message: "Failed to load session"})
			continue
		}

		ev := orchestrator.Events{
			OnRAG:   func(refs []models.DocRef) { send(outFrame{Type: "rag", Documents: refs}) },
			OnToken: func(t string) { send(outFrame{Type: "token", Token: t}) },
		}

		out, err := h.orch.Process(r.Context(), mem, text, models.ParseLanguage(in.Language), ev)
		if err != nil {
			log.Printf("WebSocket chat turn failed (session %s): %v", sessionID, err)
			send(outFrame{Type: "error", Message: orchestrator.ErrorReply})
			continue
		}

		meta := map[string]string{"agent_type": out.AgentType}
		for k, v := range out.Metadata {
			meta[k] = v
		}
		send(outFrame{Type: "metadata", Metadata: meta})
		send(outFrame{Type: "done"})
	}

	log.Printf("WebSocket disconnected: session %s", sessionID)
}
