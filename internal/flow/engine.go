// Package flow implements the slot-filling state machines. Both flows share
// one engine; the eligibility and resilience schemas are just ordered field
// tables with localized prompts.
package flow

import (
	"context"
	"fmt"
	"strings"

	"finmitra-backend/internal/extract"
	"finmitra-backend/internal/memory"
	"finmitra-backend/internal/models"
)

// Kind names a flow instance; the value is stored in the session context
// while the flow is active.
type Kind string

const (
	KindEligibility Kind = "eligibility"
	KindResilience  Kind = "resilience"
)

// FieldSpec is one asked field: its ID plus localized prompt and
// validation hint.
type FieldSpec struct {
	ID     models.FieldID
	Prompt map[models.Language]string
	Hint   map[models.Language]string
}

// Schema is a fixed, ordered field table plus the extractor that reads a
// free-text message for the same fields. The order is never reordered by
// answer content.
type Schema struct {
	Kind    Kind
	Fields  []FieldSpec
	Extract func(text string, existing models.SlotSet) extract.Result
}

// TurnResult is what one flow turn produces. Yield means the message looked
// like an unrelated question; the router should handle it and the flow's
// current field pointer stays untouched.
type TurnResult struct {
	Reply string
	Done  bool
	Yield bool
}

// Engine drives one schema against one session's memory.
type Engine struct {
	schema Schema
	mem    *memory.Memory
}

func New(schema Schema, mem *memory.Memory) *Engine {
	return &Engine{schema: schema, mem: mem}
}

func (e *Engine) Kind() Kind { return e.schema.Kind }

// Start enters the flow. A data-dump opening message can fill every field at
// once, in which case the flow completes without asking anything.
func (e *Engine) Start(ctx context.Context, text string, lang models.Language) (TurnResult, error) {
	res := e.schema.Extract(text, e.mem.Slots())
	if err := e.mem.UpdateSlots(ctx, res.Extracted); err != nil {
		return TurnResult{}, err
	}

	missing := e.Missing()
	if len(missing) == 0 {
		if err := e.finish(ctx); err != nil {
			return TurnResult{}, err
		}
		return TurnResult{Done: true}, nil
	}

	if err := e.mem.SetContext(ctx, models.CtxActiveFlow, string(e.schema.Kind)); err != nil {
		return TurnResult{}, err
	}
	return e.ask(ctx, missing[0], lang, "")
}

// Continue validates the message as an answer to the current field.
// Invalid input re-asks the same question with a hint; the field pointer and
// state are unchanged. A message that reads as an unrelated question yields
// back to intent routing instead of being force-fed into validation.
func (e *Engine) Continue(ctx context.Context, text string, lang models.Language) (TurnResult, error) {
	current := models.FieldID(e.mem.Context(models.CtxCurrentField))
	spec := e.fieldSpec(current)
	if spec == nil {
		// Pointer lost (e.g. schema change mid-session); restart cleanly.
		return e.Start(ctx, text, lang)
	}

	answer, answered := extract.ParseAnswer(current, text)
	if !answered && strings.HasSuffix(strings.TrimSpace(text), "?") {
		return TurnResult{Yield: true}, nil
	}

	// A single message may answer several fields at once.
	res := e.schema.Extract(text, e.mem.Slots())
	if answered {
		res.Extracted[current] = answer
	}

	if len(res.Extracted) == 0 {
		return e.ask(ctx, current, lang, hintText(spec, lang))
	}

	if err := e.mem.UpdateSlots(ctx, res.Extracted); err != nil {
		return TurnResult{}, err
	}

	missing := e.Missing()
	if len(missing) == 0 {
		if err := e.finish(ctx); err != nil {
			return TurnResult{}, err
		}
		return TurnResult{Done: true}, nil
	}
	return e.ask(ctx, missing[0], lang, "")
}

// Missing lists still-unanswered fields in schema order.
func (e *Engine) Missing() []models.FieldID {
	slots := e.mem.Slots()
	var out []models.FieldID
	for _, f := range e.schema.Fields {
		if !slots.Has(f.ID) {
			out = append(out, f.ID)
		}
	}
	return out
}

func (e *Engine) ask(ctx context.Context, id models.FieldID, lang models.Language, errPrefix string) (TurnResult, error) {
	if err := e.mem.SetContext(ctx, models.CtxCurrentField, string(id)); err != nil {
		return TurnResult{}, err
	}
	spec := e.fieldSpec(id)
	answered := len(e.schema.Fields) - len(e.Missing())
	reply := promptText(spec, lang)
	if errPrefix != "" {
		reply = errPrefix + " " + reply
	}
	reply = fmt.Sprintf("%s (%d/%d)", reply, answered, len(e.schema.Fields))
	return TurnResult{Reply: reply}, nil
}

// finish clears the flow flags so routing returns to open intent handling.
// Defaulting of still-missing fields happens in the scoring layer.
func (e *Engine) finish(ctx context.Context) error {
	if err := e.mem.SetContext(ctx, models.CtxActiveFlow, ""); err != nil {
		return err
	}
	return e.mem.SetContext(ctx, models.CtxCurrentField, "")
}

func (e *Engine) fieldSpec(id models.FieldID) *FieldSpec {
	for i := range e.schema.Fields {
		if e.schema.Fields[i].ID == id {
			return &e.schema.Fields[i]
		}
	}
	return nil
}

func promptText(spec *FieldSpec, lang models.Language) string {
	if p, ok := spec.Prompt[lang]; ok {
		return p
	}
	return spec.Prompt[models.LangEnglish]
}

func hintText(spec *FieldSpec, lang models.Language) string {
	if h, ok := spec.Hint[lang]; ok {
		return h
	}
	return spec.Hint[models.LangEnglish]
}
