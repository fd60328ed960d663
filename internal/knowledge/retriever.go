package knowledge

import (
	"sort"
	"strings"

	"finmitra-backend/internal/models"
)

// Scoring weights: keyword containment dominates, then title, then content.
const (
	keywordWeight = 3
	titleWeight   = 2
	contentWeight = 1
)

// Retriever ranks the static corpus by keyword overlap with a query.
type Retriever struct {
	docs []models.KnowledgeDoc
}

func NewRetriever(docs []models.KnowledgeDoc) *Retriever {
	return &Retriever{docs: docs}
}

// Retrieve returns up to k documents with positive scores, ordered by score
// descending. Ties keep the original table order (stable sort), so results
// are reproducible.
func (r *Retriever) Retrieve(query string, k int) []models.KnowledgeDoc {
	q := strings.ToLower(query)
	type scored struct {
		doc   models.KnowledgeDoc
		score int
	}
	var hits []scored
	for _, doc := range r.docs {
		s := 0
		for _, kw := range doc.Keywords {
			if strings.Contains(q, kw) {
				s += keywordWeight
			}
		}
		if containsAnyWord(q, doc.Title) {
			s += titleWeight
		}
		for _, w := range significantWords(q) {
			if strings.Contains(strings.ToLower(doc.Content), w) {
				s += contentWeight
			}
		}
		if s > 0 {
			hits = append(hits, scored{doc, s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	if k > 0 && len(hits) > k {
		hits = hits[:k]
	}
	out := make([]models.KnowledgeDoc, len(hits))
	for i, h := range hits {
		out[i] = h.doc
	}
	return out
}

// containsAnyWord reports whether any significant query word appears in the
// title.
func containsAnyWord(query, title string) bool {
	t := strings.ToLower(title)
	for _, w := range significantWords(query) {
		if strings.Contains(t, w) {
			return true
		}
	}
	return false
}

var stopwords = map[string]bool{
	"what": true, "how": true, "is": true, "the": true, "a": true, "an": true,
	"do": true, "i": true, "my": true, "me": true, "for": true, "to": true,
	"of": true, "in": true, "and": true, "can": true, "are": true,
}

func significantWords(query string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		w = strings.Trim(w, "?.,!")
		if len(w) >= 3 && !stopwords[w] {
			out = append(out, w)
		}
	}
	return out
}
