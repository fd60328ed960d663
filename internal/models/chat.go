package models

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Language selects the locale for prompts and reports.
type Language string

const (
	LangEnglish Language = "en"
	LangHindi   Language = "hi"
	LangTamil   Language = "ta"
)

// ParseLanguage normalizes a request language, defaulting to English.
func ParseLanguage(s string) Language {
	switch Language(s) {
	case LangHindi:
		return LangHindi
	case LangTamil:
		return LangTamil
	default:
		return LangEnglish
	}
}

// Message is one immutable entry in a conversation. Ordering is append-only
// and defines the conversational context.
type Message struct {
	Role      string            `json:"role"`
	Content   string            `json:"content"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// ChatMessage is the wire form of a message, as sent by clients and to the
// remote model.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the payload of POST /api/v1/chat.
type ChatRequest struct {
	Messages  []ChatMessage `json:"messages"`
	Language  string        `json:"language,omitempty"`
	InputMode string        `json:"inputMode,omitempty"` // "text" or "voice"
}

// LastUserMessage returns the content of the most recent user message.
func (r ChatRequest) LastUserMessage() string {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Role == RoleUser {
			return r.Messages[i].Content
		}
	}
	return ""
}
