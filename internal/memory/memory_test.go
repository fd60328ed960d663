package memory

import (
	"context"
	"testing"

	"finmitra-backend/internal/models"
)

func TestMemory_WriteThrough(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	mem := New(store, "s1")
	if err := mem.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := mem.AddMessage(ctx, models.RoleUser, "hello"); err != nil {
		t.Fatalf("AddMessage: %v", err)
	}

	// A fresh Memory over the same store must see the message: every mutation
	// is persisted immediately, not at session end.
	reload := New(store, "s1")
	if err := reload.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	msgs := reload.Messages()
	if len(msgs) != 1 || msgs[0].Content != "hello" {
		t.Fatalf("Expected persisted message, got %+v", msgs)
	}
}

func TestMemory_SlotValidationOnUpdate(t *testing.T) {
	ctx := context.Background()
	mem := New(NewMemStore(), "s2")
	if err := mem.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := mem.UpdateSlots(ctx, models.SlotSet{
		models.FieldCreditScore: models.NumberValue(720),
	}); err != nil {
		t.Fatalf("UpdateSlots: %v", err)
	}

	// An invalid replacement must not weaken the stored value.
	if err := mem.UpdateSlots(ctx, models.SlotSet{
		models.FieldCreditScore: models.NumberValue(9999),
	}); err != nil {
		t.Fatalf("UpdateSlots: %v", err)
	}

	if got, _ := mem.Slots().Number(models.FieldCreditScore); got != 720 {
		t.Errorf("Expected stored score 720 to survive, got %v", got)
	}
}

func TestMemory_ContextFlags(t *testing.T) {
	ctx := context.Background()
	mem := New(NewMemStore(), "s3")
	if err := mem.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := mem.SetContext(ctx, models.CtxActiveFlow, "eligibility"); err != nil {
		t.Fatalf("SetContext: %v", err)
	}
	if mem.Context(models.CtxActiveFlow) != "eligibility" {
		t.Errorf("Expected flag set, got %q", mem.Context(models.CtxActiveFlow))
	}

	// Empty value deletes the key.
	if err := mem.SetContext(ctx, models.CtxActiveFlow, ""); err != nil {
		t.Fatalf("SetContext: %v", err)
	}
	if mem.Context(models.CtxActiveFlow) != "" {
		t.Error("Expected flag cleared")
	}
}

func TestMemory_ResetIsAtomic(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	mem := New(store, "s4")
	if err := mem.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	mem.AddMessage(ctx, models.RoleUser, "hi")
	mem.UpdateSlots(ctx, models.SlotSet{models.FieldAge: models.NumberValue(30)})
	mem.SetContext(ctx, models.CtxActiveFlow, "eligibility")

	if err := mem.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	if len(mem.Messages()) != 0 || len(mem.Slots()) != 0 || mem.Context(models.CtxActiveFlow) != "" {
		t.Error("Expected messages, slots, and context all cleared together")
	}
	if _, err := store.Get(ctx, "s4"); err != ErrNotFound {
		t.Errorf("Expected stored blob deleted, got %v", err)
	}
}

func TestMemory_HistoryWindow(t *testing.T) {
	ctx := context.Background()
	mem := New(NewMemStore(), "s5")
	if err := mem.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	for i := 0; i < 10; i++ {
		mem.AddMessage(ctx, models.RoleUser, "q")
		mem.AddMessage(ctx, models.RoleAssistant, "a")
	}

	hist := mem.History(3)
	if len(hist) != 6 {
		t.Fatalf("Expected 6 messages in window, got %d", len(hist))
	}
	if hist[len(hist)-1].Role != models.RoleAssistant {
		t.Error("Expected window to end with the latest assistant message")
	}
}

func TestMemory_LazyAllocation(t *testing.T) {
	ctx := context.Background()
	mem := New(NewMemStore(), "never-written")
	if err := mem.Load(ctx); err != nil {
		t.Fatalf("Expected lazy allocation for unknown session, got %v", err)
	}
	if mem.Slots() == nil || len(mem.Messages()) != 0 {
		t.Error("Expected a fresh empty session")
	}
}
