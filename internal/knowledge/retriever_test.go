package knowledge

import (
	"reflect"
	"strings"
	"testing"
)

func TestRetrieve_RanksKeywordHitFirst(t *testing.T) {
	r := NewRetriever(Docs)

	docs := r.Retrieve("what is a CIBIL score?", 3)
	if len(docs) == 0 {
		t.Fatal("Expected at least one document")
	}
	if docs[0].ID != "kb-cibil" {
		t.Errorf("Expected kb-cibil first, got %s", docs[0].ID)
	}
}

func TestRetrieve_LimitK(t *testing.T) {
	r := NewRetriever(Docs)

	docs := r.Retrieve("loan eligibility documents emi interest", 2)
	if len(docs) > 2 {
		t.Errorf("Expected at most 2 documents, got %d", len(docs))
	}
}

func TestRetrieve_NoHitIsEmpty(t *testing.T) {
	r := NewRetriever(Docs)

	docs := r.Retrieve("zzz qqq xyzzy", 3)
	if len(docs) != 0 {
		t.Errorf("Expected no documents for unrelated query, got %d", len(docs))
	}
}

func TestRetrieve_Deterministic(t *testing.T) {
	r := NewRetriever(Docs)

	first := r.Retrieve("which bank should I pick for a home loan", 3)
	second := r.Retrieve("which bank should I pick for a home loan", 3)
	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical ranking for identical query")
	}
}

func TestFallbackAnswer(t *testing.T) {
	r := NewRetriever(Docs)

	docs := r.Retrieve("what is a CIBIL score?", 3)
	ans := FallbackAnswer(docs)
	if ans != CannedAnswers["credit"] {
		t.Errorf("Expected the credit canned answer, got %q", ans)
	}

	generic := FallbackAnswer(nil)
	if !strings.Contains(generic, "try again") {
		t.Errorf("Expected generic fallback, got %q", generic)
	}
}
