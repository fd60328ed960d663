// Package intent maps a single user message to one labeled intent. The rules
// run in a fixed priority order and the earliest matching rule always wins,
// even on equal keyword overlap, so routing is reproducible.
package intent

import (
	"regexp"
	"strings"

	"finmitra-backend/internal/models"
)

var (
	controlRe = regexp.MustCompile(`(?i)^\s*(?:exit|stop|cancel|reset|quit|bye|goodbye)\s*[.!]?\s*$`)

	emiKeywordRe = regexp.MustCompile(`(?i)\bemis?\b|installment|monthly\s+payment|kitni\s+kisht`)
	numberRe     = regexp.MustCompile(`[0-9]`)

	eligibilityRe = regexp.MustCompile(`(?i)am\s+i\s+eligible|check\s+(?:my\s+)?eligibilit|eligibilit(?:y|ies)\s+check|do\s+i\s+qualify|can\s+i\s+get\s+a\s+loan|loan\s+eligibilit`)
	resilienceRe  = regexp.MustCompile(`(?i)resilien|financial\s+health|stress\s+test|how\s+prepared\s+am\s+i|survive\s+(?:a|an|financially)|emergency\s+readiness`)

	wantsLoanRe = regexp.MustCompile(`(?i)(?:want|need|looking\s+for|apply\s+for)\s+(?:a\s+)?loan`)
)

// gatedRule fires only when both a primary and a qualifying keyword appear,
// so incidental mentions ("my bank sent a message") don't misroute.
type gatedRule struct {
	intent    models.Intent
	primary   *regexp.Regexp
	qualifier *regexp.Regexp
	reason    string
}

var gatedRules = []gatedRule{
	{models.IntentCreditScoreInfo,
		regexp.MustCompile(`(?i)\bcibil\b|credit\s+score`),
		regexp.MustCompile(`(?i)what|how|why|improve|increase|check|good|bad|meaning|affect`),
		"credit keyword with a question qualifier"},
	{models.IntentDocumentInfo,
		regexp.MustCompile(`(?i)documents?|paperwork|kyc`),
		regexp.MustCompile(`(?i)need|required?|list|which|what|submit|loan`),
		"document keyword with a requirement qualifier"},
	{models.IntentBankInfo,
		regexp.MustCompile(`(?i)\bbanks?\b|\bnbfcs?\b|lenders?`),
		regexp.MustCompile(`(?i)best|which|compare|recommend|suggest|top|choose`),
		"bank keyword with a comparison qualifier"},
	{models.IntentFinancialPlanning,
		regexp.MustCompile(`(?i)\bsave\b|savings?|invest(?:ing|ment)?|budget(?:ing)?`),
		regexp.MustCompile(`(?i)how|plan|best|should|start|where|advice|help`),
		"planning keyword with an advice qualifier"},
}

// keywordEntry is one row of the generic fallback table; earlier rows win.
type keywordEntry struct {
	intent   models.Intent
	keywords []string
}

var keywordTable = []keywordEntry{
	{models.IntentInterestRates, []string{"interest rate", "rate of interest", "roi", "current rates"}},
	{models.IntentLoanTypes, []string{"home loan", "personal loan", "car loan", "education loan", "gold loan", "types of loan", "loan types"}},
	{models.IntentLoanEligibility, []string{"eligibility", "eligible", "qualify"}},
	{models.IntentFinancialPlanning, []string{"retirement", "pension", "wealth"}},
	{models.IntentCreditScoreInfo, []string{"credit report", "credit history"}},
}

// Classify evaluates the rule chain in fixed order and returns the first hit.
func Classify(text string) models.IntentResult {
	lower := strings.ToLower(text)

	// 1. Control commands end or reset the conversation immediately.
	if controlRe.MatchString(text) {
		return models.IntentResult{
			Intent:     models.IntentGeneralChat,
			Confidence: 0.98,
			Entities:   map[string]string{"control": strings.ToLower(strings.TrimSpace(strings.Trim(text, " .!")))},
			Reasoning:  "control command",
		}
	}

	// 2. EMI calculation needs both an EMI-ish keyword and a number.
	if emiKeywordRe.MatchString(text) && numberRe.MatchString(text) {
		return models.IntentResult{
			Intent:     models.IntentEMICalculation,
			Confidence: 0.9,
			Entities:   emiEntities(text),
			Reasoning:  "EMI keyword with a numeric amount",
		}
	}

	// 3. High-priority single keywords, each gated by a qualifier.
	for _, r := range gatedRules {
		if r.primary.MatchString(text) && r.qualifier.MatchString(text) {
			return models.IntentResult{
				Intent:     r.intent,
				Confidence: 0.8,
				Reasoning:  r.reason,
			}
		}
	}

	// 4. Explicit eligibility / resilience phrasing.
	if eligibilityRe.MatchString(text) {
		return models.IntentResult{Intent: models.IntentLoanEligibility, Confidence: 0.9, Reasoning: "explicit eligibility phrasing"}
	}
	if resilienceRe.MatchString(text) {
		return models.IntentResult{Intent: models.IntentResilienceCheck, Confidence: 0.85, Reasoning: "explicit resilience phrasing"}
	}

	// 5. "Wants a loan" plus an amount is a finance question, not a forced
	// eligibility flow; the user may just be exploring.
	if wantsLoanRe.MatchString(text) && numberRe.MatchString(text) {
		return models.IntentResult{
			Intent:     models.IntentFinanceQA,
			Confidence: 0.6,
			Entities:   map[string]string{"mentions_loan": "true"},
			Reasoning:  "loan interest with amount, kept as open question",
		}
	}

	// 6. Generic keyword table scan, earliest row wins.
	for _, e := range keywordTable {
		for _, kw := range e.keywords {
			if strings.Contains(lower, kw) {
				return models.IntentResult{Intent: e.intent, Confidence: 0.55, Reasoning: "keyword table: " + kw}
			}
		}
	}

	// 7. Default.
	return models.IntentResult{Intent: models.IntentFinanceQA, Confidence: 0.3, Reasoning: "no rule matched"}
}

var amountInTextRe = regexp.MustCompile(`(?i)(?:₹|rs\.?|inr)?\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*(lakhs?|lacs?|crores?|cr|k|thousand)?`)
var tenureInTextRe = regexp.MustCompile(`(?i)([0-9]{1,3})\s*(months?|years?|yrs?)`)
var rateInTextRe = regexp.MustCompile(`(?i)([0-9]{1,2}(?:\.[0-9]+)?)\s*%`)

func emiEntities(text string) map[string]string {
	ent := map[string]string{}
	if m := amountInTextRe.FindStringSubmatch(text); m != nil {
		ent["amount"] = strings.TrimSpace(m[1] + " " + m[2])
	}
	if m := tenureInTextRe.FindStringSubmatch(text); m != nil {
		ent["tenure"] = m[1] + " " + m[2]
	}
	if m := rateInTextRe.FindStringSubmatch(text); m != nil {
		ent["rate"] = m[1]
	}
	return ent
}
