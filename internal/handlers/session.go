package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"finmitra-backend/internal/memory"
	"finmitra-backend/internal/middleware"
	"finmitra-backend/internal/models"
)

type SessionHandler struct {
	auth  *middleware.SessionAuth
	store memory.Store
}

func NewSessionHandler(auth *middleware.SessionAuth, store memory.Store) *SessionHandler {
	return &SessionHandler{auth: auth, store: store}
}

// Create issues a fresh anonymous session and its bearer token.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	sessionID := uuid.NewString()
	token, err := h.auth.GenerateToken(sessionID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL", "Failed to create session", r))
		return
	}
	writeJSON(w, http.StatusCreated, models.SessionResponse{
		SessionID: sessionID,
		Token:     token,
		ExpiresIn: int(h.auth.TTL.Seconds()),
	})
}

// Reset wipes the caller's conversation state: history, collected data, and
// flow context all go at once. The session ID and token stay valid.
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	mem := memory.New(h.store, sessionID)
	if err := mem.Load(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL", "Failed to load session", r))
		return
	}
	if err := mem.Reset(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL", "Failed to reset session", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Session reset", "session_id": sessionID})
}
