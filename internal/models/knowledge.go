package models

// KnowledgeDoc is one static, read-only grounding document.
type KnowledgeDoc struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Content  string   `json:"content"`
	Keywords []string `json:"keywords"`
}

// DocRef is the compact form emitted in the rag SSE event.
type DocRef struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
}
