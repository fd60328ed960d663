package models

import "time"

// Context keys used by the orchestrator and flow engines.
const (
	CtxActiveFlow   = "activeFlow"   // "eligibility" | "resilience" | unset
	CtxCurrentField = "currentField" // field currently being asked
	CtxEligStarted  = "eligStarted"
	CtxResilStarted = "resilStarted"
)

// ConversationSession owns the ordered message history, the accumulated
// slots, and named context flags for one browser-tab session. It is
// persisted as a single JSON blob under a session-scoped key.
type ConversationSession struct {
	ID        string            `json:"id"`
	Messages  []Message         `json:"messages"`
	Slots     SlotSet           `json:"collectedData"`
	Context   map[string]string `json:"context"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func NewConversationSession(id string) *ConversationSession {
	now := time.Now().UTC()
	return &ConversationSession{
		ID:        id,
		Messages:  []Message{},
		Slots:     SlotSet{},
		Context:   map[string]string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
