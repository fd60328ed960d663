package extract

import (
	"regexp"

	"finmitra-backend/internal/models"
)

// EligibilityOrder is the fixed field order of the eligibility schema.
var EligibilityOrder = []models.FieldID{
	models.FieldMonthlyIncome,
	models.FieldLoanAmount,
	models.FieldCreditScore,
	models.FieldExistingLoans,
	models.FieldJobType,
	models.FieldAge,
	models.FieldLoanTenure,
}

// Loan-amount patterns are keyword-anchored so a currency number following
// "emi" or "income" never lands here; the bare-number fallback lives only in
// ParseAnswer, gated on the field being actively asked.
var loanAmountRules = []rule{
	{regexp.MustCompile(`(?i)loan(?:\s+amount)?\s*(?:of|is|:|=|for)?\s*` + amountPat), amountConv},
	{regexp.MustCompile(`(?i)(?:borrow|need|want|looking\s+for)\s*(?:a\s+loan\s+of\s*|about\s+|around\s+)?` + amountPat), amountConv},
}

var existingLoansRules = []rule{
	{regexp.MustCompile(`(?i)(?:no|zero|don'?t\s+have\s+any)\s+(?:existing|other|current|running)?\s*(?:loans?|emis?)`), constConv(models.NumberValue(0))},
	{regexp.MustCompile(`(?i)(?:have|having|with|paying)\s+([0-9])\s+(?:existing|other|current|running)?\s*(?:loans?|emis?)`), intConv(1)},
	{regexp.MustCompile(`(?i)\b([0-9])\s+(?:existing|other|current|running)\s+loans?`), intConv(1)},
}

var jobTypeRules = []rule{
	{regexp.MustCompile(`(?i)unemployed|jobless|no\s+job|not\s+working`), constConv(models.EnumValue(models.JobUnemployed))},
	{regexp.MustCompile(`(?i)self[- ]employed|freelanc`), constConv(models.EnumValue(models.JobSelfEmployed))},
	{regexp.MustCompile(`(?i)business(?:man|woman)?\b|entrepreneur|shop\s+owner|own\s+(?:a\s+)?(?:business|shop)`), constConv(models.EnumValue(models.JobBusiness))},
	{regexp.MustCompile(`(?i)salaried|salary\s+job|private\s+job|government\s+job|employee\b`), constConv(models.EnumValue(models.JobSalaried))},
}

var ageRules = []rule{
	{regexp.MustCompile(`(?i)\bage\s*(?:is|:|=)?\s*([0-9]{2})\b`), intConv(1)},
	{regexp.MustCompile(`(?i)\b([0-9]{2})\s*(?:years?|yrs?)\s*old\b`), intConv(1)},
	{regexp.MustCompile(`(?i)\bi\s*am\s*([0-9]{2})\b`), intConv(1)},
}

// Year-denominated tenure patterns require loan context so "28 years old"
// stays with the age rules (RE2 has no lookahead to exclude "old").
var tenureRules = []rule{
	{regexp.MustCompile(`(?i)(?:tenure|term|duration|period)\s*(?:of|is|:|=)?\s*([0-9]{1,2})\s*(?:years?|yrs?)\b`), intConv(12)},
	{regexp.MustCompile(`(?i)(?:tenure|term|duration|period)\s*(?:of|is|:|=)?\s*([0-9]{1,3})\b`), intConv(1)},
	{regexp.MustCompile(`(?i)\b(?:for|over|repay\s+in)\s+([0-9]{1,2})\s*(?:years?|yrs?)\b`), intConv(12)},
	{regexp.MustCompile(`(?i)\b([0-9]{1,3})\s*(?:months?|mos)\b`), intConv(1)},
}

var eligibilityTables = map[models.FieldID][]rule{
	models.FieldMonthlyIncome: incomeRules,
	models.FieldLoanAmount:    loanAmountRules,
	models.FieldCreditScore:   creditScoreRules,
	models.FieldExistingLoans: existingLoansRules,
	models.FieldJobType:       jobTypeRules,
	models.FieldAge:           ageRules,
	models.FieldLoanTenure:    tenureRules,
}

// Eligibility extracts eligibility-schema fields from free text. Pure: same
// input, same output, no side effects.
func Eligibility(text string, existing models.SlotSet) Result {
	return runTables(text, existing, EligibilityOrder, eligibilityTables)
}
