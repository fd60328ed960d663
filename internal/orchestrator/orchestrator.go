// Package orchestrator routes each user turn to exactly one handler: a
// control command, an active slot-filling flow, a deterministic calculator,
// or grounded knowledge Q&A. Precedence is fixed and reproducible.
package orchestrator

import (
	"context"
	"encoding/json"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"finmitra-backend/internal/extract"
	"finmitra-backend/internal/flow"
	"finmitra-backend/internal/intent"
	"finmitra-backend/internal/knowledge"
	"finmitra-backend/internal/llm"
	"finmitra-backend/internal/memory"
	"finmitra-backend/internal/models"
	"finmitra-backend/internal/scoring"
	"finmitra-backend/internal/stream"
)

// Agent types reported in response metadata.
const (
	AgentControl     = "control"
	AgentFlow        = "flow"
	AgentEMI         = "emi_calculator"
	AgentEligibility = "eligibility_report"
	AgentResilience  = "resilience_report"
	AgentKnowledge   = "knowledge"
	AgentFallback    = "fallback"
)

// historyPairs caps the conversation window sent to the remote model.
const historyPairs = 6

// ErrorReply is the apology shown when a turn fails mid-processing. The
// transports stream it and Process records it, so the transcript stays paired.
const ErrorReply = "Something went wrong processing your message."

// Archiver persists a completed assessment out of band. Archive failures are
// logged, never surfaced to the user.
type Archiver interface {
	Enqueue(ctx context.Context, a models.Assessment) error
}

// Events are the caller's streaming hooks. OnRAG fires at most once, before
// any token; OnToken fires for each content delta in order.
type Events struct {
	OnRAG   func(refs []models.DocRef)
	OnToken func(token string)
}

// Outcome is the result of one processed turn. Response always equals the
// concatenation of the tokens emitted through Events.
type Outcome struct {
	Response  string
	AgentType string
	Metadata  map[string]string
}

// Orchestrator wires the intent rules, flow engines, scorers, and knowledge
// retrieval behind a single Process entry point.
type Orchestrator struct {
	provider  llm.Provider
	retriever *knowledge.Retriever
	archiver  Archiver
}

func New(provider llm.Provider, retriever *knowledge.Retriever, archiver Archiver) *Orchestrator {
	return &Orchestrator{provider: provider, retriever: retriever, archiver: archiver}
}

// Process handles one user turn against one session. The user message and the
// final assistant response are each recorded exactly once, on every path that
// produces a response.
func (o *Orchestrator) Process(ctx context.Context, mem *memory.Memory, text string, lang models.Language, ev Events) (*Outcome, error) {
	if err := mem.AddMessage(ctx, models.RoleUser, text); err != nil {
		return nil, err
	}
	out, err := o.route(ctx, mem, text, lang, ev)
	if err != nil {
		// Best effort: pair the already-recorded user message with the same
		// apology the transport streams.
		if aerr := mem.AddMessage(ctx, models.RoleAssistant, ErrorReply); aerr != nil {
			log.Printf("record error reply for session %s: %v", mem.SessionID(), aerr)
		}
		return nil, err
	}
	if out.Metadata == nil {
		out.Metadata = map[string]string{}
	}
	out.Metadata["language"] = string(lang)
	if err := mem.AddMessage(ctx, models.RoleAssistant, out.Response); err != nil {
		return nil, err
	}
	return out, nil
}

func (o *Orchestrator) route(ctx context.Context, mem *memory.Memory, text string, lang models.Language, ev Events) (*Outcome, error) {
	res := intent.Classify(text)

	// 1. Control commands always win, even inside a flow.
	if cmd, ok := res.Entities["control"]; ok {
		return o.handleControl(ctx, mem, lang, cmd, ev)
	}

	// 2. An active flow consumes the message unless the turn yields.
	if active := flow.Kind(mem.Context(models.CtxActiveFlow)); active != "" {
		eng := o.engineFor(active, mem)
		turn, err := eng.Continue(ctx, text, lang)
		if err != nil {
			return nil, err
		}
		if !turn.Yield {
			return o.flowOutcome(ctx, mem, eng, turn, lang, ev)
		}
		// Unrelated question mid-flow: answer it, leave the flow paused.
	}

	// 3. Explicit intents.
	switch res.Intent {
	case models.IntentEMICalculation:
		return o.handleEMI(ctx, text, lang, ev)
	case models.IntentLoanEligibility:
		return o.startFlow(ctx, mem, flow.KindEligibility, text, lang, ev)
	case models.IntentResilienceCheck:
		return o.startFlow(ctx, mem, flow.KindResilience, text, lang, ev)
	}

	// 4. A message that volunteers several profile fields at once starts the
	// matching flow without explicit phrasing.
	if kind, ok := o.detectDataDump(mem, text); ok {
		return o.startFlow(ctx, mem, kind, text, lang, ev)
	}

	// 5. Everything else is grounded knowledge Q&A.
	return o.handleKnowledge(ctx, mem, text, lang, res.Intent, ev)
}

func (o *Orchestrator) engineFor(kind flow.Kind, mem *memory.Memory) *flow.Engine {
	if kind == flow.KindResilience {
		return flow.New(flow.ResilienceSchema(), mem)
	}
	return flow.New(flow.EligibilitySchema(), mem)
}

func (o *Orchestrator) handleControl(ctx context.Context, mem *memory.Memory, lang models.Language, cmd string, ev Events) (*Outcome, error) {
	hadFlow := mem.Context(models.CtxActiveFlow) != ""
	if hadFlow {
		if err := mem.SetContext(ctx, models.CtxActiveFlow, ""); err != nil {
			return nil, err
		}
		if err := mem.SetContext(ctx, models.CtxCurrentField, ""); err != nil {
			return nil, err
		}
	}
	key := "goodbye"
	if hadFlow {
		key = "cancelled"
	}
	reply := label(lang, key)
	stream.Whole(reply, callbacks(ev))
	return &Outcome{
		Response:  reply,
		AgentType: AgentControl,
		Metadata:  map[string]string{"command": cmd},
	}, nil
}

func (o *Orchestrator) startFlow(ctx context.Context, mem *memory.Memory, kind flow.Kind, text string, lang models.Language, ev Events) (*Outcome, error) {
	startedKey := models.CtxEligStarted
	if kind == flow.KindResilience {
		startedKey = models.CtxResilStarted
	}
	if err := mem.SetContext(ctx, startedKey, "true"); err != nil {
		return nil, err
	}
	eng := o.engineFor(kind, mem)
	turn, err := eng.Start(ctx, text, lang)
	if err != nil {
		return nil, err
	}
	return o.flowOutcome(ctx, mem, eng, turn, lang, ev)
}

// flowOutcome turns an engine result into a streamed response: prompts are
// emitted whole, completed reports are typed out.
func (o *Orchestrator) flowOutcome(ctx context.Context, mem *memory.Memory, eng *flow.Engine, turn flow.TurnResult, lang models.Language, ev Events) (*Outcome, error) {
	if !turn.Done {
		stream.Whole(turn.Reply, callbacks(ev))
		return &Outcome{
			Response:  turn.Reply,
			AgentType: AgentFlow,
			Metadata:  map[string]string{"flow": string(eng.Kind()), "field": mem.Context(models.CtxCurrentField)},
		}, nil
	}

	var reply, agent string
	if eng.Kind() == flow.KindEligibility {
		in := scoring.DefaultedEligibility(mem.Slots())
		rep := scoring.Eligibility(in)
		reply = formatEligibilityReport(lang, rep)
		agent = AgentEligibility
		o.archive(ctx, mem.SessionID(), models.AssessmentEligibility, rep.Probability, rep.RiskCategory, rep.Verdict, in, rep)
	} else {
		in := scoring.DefaultedResilience(mem.Slots())
		rep := scoring.Resilience(in)
		reply = formatResilienceReport(lang, rep)
		agent = AgentResilience
		o.archive(ctx, mem.SessionID(), models.AssessmentResilience, rep.Score, rep.RiskCategory, "", in, rep)
	}
	stream.TypedOut(ctx, reply, callbacks(ev))
	return &Outcome{
		Response:  reply,
		AgentType: agent,
		Metadata:  map[string]string{"flow": string(eng.Kind())},
	}, nil
}

func (o *Orchestrator) archive(ctx context.Context, sessionID, kind string, score int, risk models.RiskCategory, verdict string, input, report interface{}) {
	if o.archiver == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{"input": input, "report": report})
	if err != nil {
		log.Printf("encode assessment payload: %v", err)
		return
	}
	a := models.Assessment{
		ID:        uuid.New(),
		SessionID: sessionID,
		Kind:      kind,
		Score:     score,
		Risk:      risk,
		Verdict:   verdict,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
	if err := o.archiver.Enqueue(ctx, a); err != nil {
		log.Printf("enqueue assessment for session %s: %v", sessionID, err)
	}
}

var (
	tenureRe = regexp.MustCompile(`(?i)([0-9]{1,3})\s*(months?|years?|yrs?)`)
	rateRe   = regexp.MustCompile(`(?i)(?:at\s+)?([0-9]{1,2}(?:\.[0-9]+)?)\s*(?:%|percent|per\s*cent)`)
)

// askAmount prompts for a principal when an EMI request carries no usable
// amount.
var askAmount = map[models.Language]string{
	models.LangEnglish: "I can calculate that. What loan amount should I use? (e.g. ₹5 lakhs)",
	models.LangHindi:   "मैं गणना कर सकता हूँ। कितनी ऋण राशि लूँ? (जैसे ₹5 लाख)",
	models.LangTamil:   "கணக்கிடுகிறேன். எவ்வளவு கடன் தொகை? (எ.கா. ₹5 லட்சம்)",
}

func (o *Orchestrator) handleEMI(ctx context.Context, text string, lang models.Language, ev Events) (*Outcome, error) {
	months := 36
	rate := scoring.DefaultAnnualRatePct
	stripped := text

	if m := rateRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil && v > 0 {
			rate = v
			stripped = rateRe.ReplaceAllString(stripped, " ")
		}
	}
	if m := tenureRe.FindStringSubmatch(stripped); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil && v > 0 {
			months = v
			if m[2][0] == 'y' || m[2][0] == 'Y' {
				months *= 12
			}
			stripped = tenureRe.ReplaceAllString(stripped, " ")
		}
	}

	principal, ok := extract.FirstAmount(stripped)
	if !ok || extract.Validate(models.FieldLoanAmount, models.SlotValue{Kind: models.KindNumber, Num: principal}) != nil {
		reply := askAmount[lang]
		if reply == "" {
			reply = askAmount[models.LangEnglish]
		}
		stream.Whole(reply, callbacks(ev))
		return &Outcome{Response: reply, AgentType: AgentEMI}, nil
	}

	emi := scoring.EMI(principal, rate, months)
	reply := formatEMIReply(lang, principal, rate, months, emi)
	stream.TypedOut(ctx, reply, callbacks(ev))
	return &Outcome{
		Response:  reply,
		AgentType: AgentEMI,
		Metadata: map[string]string{
			"principal": strconv.FormatFloat(principal, 'f', 0, 64),
			"tenure":    strconv.Itoa(months),
			"rate":      strconv.FormatFloat(rate, 'f', 1, 64),
		},
	}, nil
}

// resilienceOnly are fields that never appear in the eligibility schema; a
// data dump mentioning several of them belongs to the resilience flow.
var resilienceOnly = map[models.FieldID]bool{
	models.FieldMonthlyExpenses:     true,
	models.FieldEmergencySavings:    true,
	models.FieldExistingDebtMonthly: true,
	models.FieldEmploymentStability: true,
	models.FieldDependents:          true,
	models.FieldFinancialGoal:       true,
	models.FieldInvestmentTypes:     true,
	models.FieldHasInsurance:        true,
}

// detectDataDump classifies an unprompted message that volunteers at least
// two profile fields. Eligibility fields are checked first; a dump dominated
// by resilience-only fields starts the resilience flow instead.
func (o *Orchestrator) detectDataDump(mem *memory.Memory, text string) (flow.Kind, bool) {
	slots := mem.Slots()
	if res := extract.Resilience(text, slots); countIn(res.FieldsFound, resilienceOnly) >= 2 {
		return flow.KindResilience, true
	}
	if res := extract.Eligibility(text, slots); len(res.FieldsFound) >= 2 {
		return flow.KindEligibility, true
	}
	return "", false
}

func countIn(ids []models.FieldID, set map[models.FieldID]bool) int {
	n := 0
	for _, id := range ids {
		if set[id] {
			n++
		}
	}
	return n
}

func (o *Orchestrator) handleKnowledge(ctx context.Context, mem *memory.Memory, text string, lang models.Language, it models.Intent, ev Events) (*Outcome, error) {
	docs := o.retriever.Retrieve(text, 3)
	if ev.OnRAG != nil && len(docs) > 0 {
		refs := make([]models.DocRef, len(docs))
		for i, d := range docs {
			refs[i] = models.DocRef{ID: d.ID, Title: d.Title, Category: d.Category}
		}
		ev.OnRAG(refs)
	}

	meta := map[string]string{"intent": string(it)}
	if o.provider == nil {
		reply := knowledge.FallbackAnswer(docs)
		stream.Whole(reply, callbacks(ev))
		return &Outcome{Response: reply, AgentType: AgentFallback, Metadata: meta}, nil
	}

	system := llm.SystemPrompt(lang, docs)
	var emitted strings.Builder
	onToken := func(t string) {
		emitted.WriteString(t)
		if ev.OnToken != nil {
			ev.OnToken(t)
		}
	}
	full, err := o.provider.Stream(ctx, system, mem.History(historyPairs), onToken)
	if err != nil {
		log.Printf("llm provider %s: %v", o.provider.Name(), err)
		if full == "" {
			// A provider may fail without reporting what it already sent;
			// whatever was emitted is already on the client's screen.
			full = emitted.String()
		}
		if full == "" {
			// The user still gets an answer; fall back to the local corpus.
			full = knowledge.FallbackAnswer(docs)
			stream.Whole(full, callbacks(ev))
		}
		return &Outcome{Response: full, AgentType: AgentFallback, Metadata: meta}, nil
	}
	return &Outcome{Response: full, AgentType: AgentKnowledge, Metadata: meta}, nil
}

func callbacks(ev Events) stream.Callbacks {
	return stream.Callbacks{OnToken: ev.OnToken}
}
