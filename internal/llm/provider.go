// Package llm abstracts the remote chat-completion backends. The orchestrator
// only ever sees the Provider interface; which backend serves it is a config
// decision.
package llm

import (
	"context"

	"finmitra-backend/internal/models"
)

// Provider streams a chat completion. onToken is called for each content
// delta in order; the returned string is the complete response and always
// equals the concatenation of the deltas.
type Provider interface {
	Stream(ctx context.Context, system string, messages []models.ChatMessage, onToken func(string)) (string, error)
	Name() string
}

// SystemPrompt builds the grounding prompt for a finance question, embedding
// the retrieved documents so the model answers from them.
func SystemPrompt(lang models.Language, docs []models.KnowledgeDoc) string {
	base := map[models.Language]string{
		models.LangEnglish: "You are FinMitra, a helpful Indian personal-finance assistant. Answer briefly and practically, in English. Use rupee amounts with Indian grouping. If the provided reference notes cover the question, ground your answer in them. Never invent interest rates or bank names.",
		models.LangHindi:   "आप FinMitra हैं, एक सहायक भारतीय व्यक्तिगत-वित्त सहायक। हिंदी में संक्षिप्त और व्यावहारिक उत्तर दें। दिए गए संदर्भ नोट्स प्रश्न को कवर करते हों तो उन्हीं पर आधारित उत्तर दें।",
		models.LangTamil:   "நீங்கள் FinMitra, ஒரு உதவிகரமான இந்திய தனிநபர் நிதி உதவியாளர். தமிழில் சுருக்கமாகவும் நடைமுறையாகவும் பதிலளிக்கவும். கொடுக்கப்பட்ட குறிப்புகள் கேள்வியை உள்ளடக்கினால் அவற்றின் அடிப்படையில் பதிலளிக்கவும்.",
	}
	prompt, ok := base[lang]
	if !ok {
		prompt = base[models.LangEnglish]
	}
	if len(docs) == 0 {
		return prompt
	}
	prompt += "\n\nReference notes:"
	for _, d := range docs {
		prompt += "\n- " + d.Title + ": " + d.Content
	}
	return prompt
}
