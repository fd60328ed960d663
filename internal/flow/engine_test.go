package flow

import (
	"context"
	"strings"
	"testing"

	"finmitra-backend/internal/memory"
	"finmitra-backend/internal/models"
)

func newTestMemory(t *testing.T) *memory.Memory {
	t.Helper()
	mem := memory.New(memory.NewMemStore(), "flow-test")
	if err := mem.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return mem
}

func TestEngine_StartAsksFirstField(t *testing.T) {
	mem := newTestMemory(t)
	eng := New(EligibilitySchema(), mem)

	turn, err := eng.Start(context.Background(), "I want to check my loan eligibility", models.LangEnglish)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if turn.Done || turn.Yield {
		t.Fatalf("Expected a question, got %+v", turn)
	}
	if !strings.Contains(turn.Reply, "(0/7)") {
		t.Errorf("Expected progress (0/7) in reply, got %q", turn.Reply)
	}
	if mem.Context(models.CtxActiveFlow) != string(KindEligibility) {
		t.Errorf("Expected active flow set, got %q", mem.Context(models.CtxActiveFlow))
	}
	if models.FieldID(mem.Context(models.CtxCurrentField)) != models.FieldMonthlyIncome {
		t.Errorf("Expected first field monthly_income, got %q", mem.Context(models.CtxCurrentField))
	}
}

func TestEngine_ValidAnswerAdvances(t *testing.T) {
	mem := newTestMemory(t)
	eng := New(EligibilitySchema(), mem)
	ctx := context.Background()

	if _, err := eng.Start(ctx, "check my eligibility", models.LangEnglish); err != nil {
		t.Fatalf("Start: %v", err)
	}

	turn, err := eng.Continue(ctx, "50000", models.LangEnglish)
	if err != nil {
		t.Fatalf("Continue: %v", err)
	}
	if got, _ := mem.Slots().Number(models.FieldMonthlyIncome); got != 50000 {
		t.Errorf("Expected income 50000 stored, got %v", got)
	}
	if models.FieldID(mem.Context(models.CtxCurrentField)) != models.FieldLoanAmount {
		t.Errorf("Expected pointer to advance to loan_amount, got %q", mem.Context(models.CtxCurrentField))
	}
	if !strings.Contains(turn.Reply, "(1/7)") {
		t.Errorf("Expected progress (1/7), got %q", turn.Reply)
	}
}

func TestEngine_InvalidAnswerReasks(t *testing.T) {
	mem := newTestMemory(t)
	eng := New(EligibilitySchema(), mem)
	ctx := context.Background()

	if _, err := eng.Start(ctx, "check my eligibility", models.LangEnglish); err != nil {
		t.Fatalf("Start: %v", err)
	}
	missingBefore := len(eng.Missing())

	turn, err := eng.Continue(ctx, "banana", models.LangEnglish)
	if err != nil {
		t.Fatalf("Continue: %v", err)
	}
	if turn.Done || turn.Yield {
		t.Fatalf("Expected a re-ask, got %+v", turn)
	}
	if len(eng.Missing()) != missingBefore {
		t.Error("Expected missing fields unchanged after invalid answer")
	}
	if models.FieldID(mem.Context(models.CtxCurrentField)) != models.FieldMonthlyIncome {
		t.Errorf("Expected pointer to stay on monthly_income, got %q", mem.Context(models.CtxCurrentField))
	}
}

func TestEngine_QuestionYields(t *testing.T) {
	mem := newTestMemory(t)
	eng := New(EligibilitySchema(), mem)
	ctx := context.Background()

	if _, err := eng.Start(ctx, "check my eligibility", models.LangEnglish); err != nil {
		t.Fatalf("Start: %v", err)
	}

	turn, err := eng.Continue(ctx, "what is a CIBIL score?", models.LangEnglish)
	if err != nil {
		t.Fatalf("Continue: %v", err)
	}
	if !turn.Yield {
		t.Fatal("Expected the turn to yield to intent routing")
	}
	if models.FieldID(mem.Context(models.CtxCurrentField)) != models.FieldMonthlyIncome {
		t.Error("Expected field pointer untouched after yield")
	}
}

func TestEngine_MultiFieldAnswer(t *testing.T) {
	mem := newTestMemory(t)
	eng := New(EligibilitySchema(), mem)
	ctx := context.Background()

	if _, err := eng.Start(ctx, "check my eligibility", models.LangEnglish); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Volunteers job type and age while income was asked; both stick, income
	// is asked again.
	if _, err := eng.Continue(ctx, "I am salaried and 35 years old", models.LangEnglish); err != nil {
		t.Fatalf("Continue: %v", err)
	}
	if job, _ := mem.Slots().Enum(models.FieldJobType); job != models.JobSalaried {
		t.Errorf("Expected job_type stored, got %q", job)
	}
	if age, _ := mem.Slots().Number(models.FieldAge); age != 35 {
		t.Errorf("Expected age stored, got %v", age)
	}
	if models.FieldID(mem.Context(models.CtxCurrentField)) != models.FieldMonthlyIncome {
		t.Errorf("Expected income still pending, got %q", mem.Context(models.CtxCurrentField))
	}
}

func TestEngine_DataDumpCompletesImmediately(t *testing.T) {
	mem := newTestMemory(t)
	eng := New(EligibilitySchema(), mem)

	text := "I earn ₹60,000 a month, want a loan of 4 lakhs for 3 years, my cibil score is 760, I have 1 existing loan, salaried, 35 years old"
	turn, err := eng.Start(context.Background(), text, models.LangEnglish)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !turn.Done {
		t.Fatalf("Expected immediate completion, got %+v (missing %v)", turn, eng.Missing())
	}
	if mem.Context(models.CtxActiveFlow) != "" {
		t.Error("Expected flow flags cleared after completion")
	}
}

func TestEngine_FullResilienceRun(t *testing.T) {
	mem := newTestMemory(t)
	eng := New(ResilienceSchema(), mem)
	ctx := context.Background()

	if _, err := eng.Start(ctx, "check my financial resilience", models.LangEnglish); err != nil {
		t.Fatalf("Start: %v", err)
	}

	answers := []string{
		"60000",     // income
		"30000",     // expenses
		"2 lakhs",   // savings
		"5000",      // debt monthly
		"720",       // credit score
		"permanent", // stability
		"2",         // dependents
		"retirement",
	}
	var last TurnResult
	for i, a := range answers {
		turn, err := eng.Continue(ctx, a, models.LangEnglish)
		if err != nil {
			t.Fatalf("Continue %d (%q): %v", i, a, err)
		}
		last = turn
	}
	if !last.Done {
		t.Fatalf("Expected flow done after all answers, missing %v", eng.Missing())
	}
}
