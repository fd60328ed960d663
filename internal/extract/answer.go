package extract

import (
	"regexp"
	"strings"

	"finmitra-backend/internal/models"
)

var yesRe = regexp.MustCompile(`(?i)^\s*(?:yes|yeah|yep|haan|ha|aam|y)\b`)
var noRe = regexp.MustCompile(`(?i)^\s*(?:no|nope|nahi|illai|illa|n)\b`)

var answerTables = map[models.FieldID][]rule{}

func init() {
	for id, rules := range eligibilityTables {
		answerTables[id] = rules
	}
	for id, rules := range resilienceTables {
		answerTables[id] = rules
	}
}

// ParseAnswer interprets text as a direct answer to the given field, as
// happens inside an active flow. Contextual patterns run first; a bare value
// fallback applies afterwards, which is safe only because the caller knows
// which field was asked. Returns false when nothing usable was said.
func ParseAnswer(id models.FieldID, text string) (models.SlotValue, bool) {
	for _, r := range answerTables[id] {
		m := r.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v, ok := r.conv(m); ok && Validate(id, v) == nil {
			return v, true
		}
	}

	switch id {
	case models.FieldMonthlyIncome, models.FieldLoanAmount, models.FieldMonthlyExpenses,
		models.FieldEmergencySavings, models.FieldExistingDebtMonthly:
		if n, ok := firstAmount(text); ok {
			v := models.NumberValue(n)
			if Validate(id, v) == nil {
				return v, true
			}
		}
	case models.FieldCreditScore, models.FieldAge:
		if n, ok := firstInt(text); ok {
			v := models.NumberValue(float64(n))
			if Validate(id, v) == nil {
				return v, true
			}
		}
	case models.FieldExistingLoans, models.FieldDependents:
		if noRe.MatchString(text) || strings.Contains(strings.ToLower(text), "none") {
			return models.NumberValue(0), true
		}
		if n, ok := firstInt(text); ok {
			v := models.NumberValue(float64(n))
			if Validate(id, v) == nil {
				return v, true
			}
		}
	case models.FieldLoanTenure:
		// A bare number answers the tenure question in months.
		if n, ok := firstInt(text); ok {
			v := models.NumberValue(float64(n))
			if Validate(id, v) == nil {
				return v, true
			}
		}
	case models.FieldHasInsurance:
		if yesRe.MatchString(text) {
			return models.BoolValue(true), true
		}
		if noRe.MatchString(text) {
			return models.BoolValue(false), true
		}
	}
	return models.SlotValue{}, false
}

// MentionsSlotKeyword reports whether the text contains any vocabulary of the
// two schemas. Used by the flows to distinguish an off-topic question from a
// malformed answer.
var slotKeywordRe = regexp.MustCompile(`(?i)income|salary|earn|loan|borrow|cibil|credit|score|emi|tenure|year|month|salaried|self[- ]employed|business|unemployed|age|old|expens|spend|saving|emergency|debt|repay|stable|permanent|contract|dependent|kid|child|goal|retire|insur|invest|[0-9]|₹`)

func MentionsSlotKeyword(text string) bool {
	return slotKeywordRe.MatchString(text)
}
