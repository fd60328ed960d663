package extract

import (
	"regexp"
	"strings"

	"finmitra-backend/internal/models"
)

// ResilienceOrder is the fixed field order of the resilience schema. The two
// trailing optional fields are extracted when mentioned but never asked.
var ResilienceOrder = []models.FieldID{
	models.FieldMonthlyIncome,
	models.FieldMonthlyExpenses,
	models.FieldEmergencySavings,
	models.FieldExistingDebtMonthly,
	models.FieldCreditScore,
	models.FieldEmploymentStability,
	models.FieldDependents,
	models.FieldFinancialGoal,
	models.FieldInvestmentTypes,
	models.FieldHasInsurance,
}

var expensesRules = []rule{
	{regexp.MustCompile(`(?i)(?:expenses?|expenditure|spendings?|spend(?:ing)?)[^0-9₹]{0,24}?` + amountPat), amountConv},
	{regexp.MustCompile(`(?i)` + amountPat + `\s*(?:on|in|as)\s+(?:monthly\s+)?expenses?`), amountConv},
}

var savingsRules = []rule{
	{regexp.MustCompile(`(?i)(?:no|zero|don'?t\s+have\s+any)\s+(?:emergency\s+fund|savings?)`), constConv(models.NumberValue(0))},
	{regexp.MustCompile(`(?i)(?:emergency\s+fund|savings?|saved\s+up|saved)[^0-9₹]{0,24}?` + amountPat), amountConv},
	{regexp.MustCompile(`(?i)` + amountPat + `\s*(?:in|as)\s+(?:savings?|emergency\s+fund)`), amountConv},
}

var debtMonthlyRules = []rule{
	{regexp.MustCompile(`(?i)(?:no|zero)\s+(?:emis?|debts?|debt\s+payments?)`), constConv(models.NumberValue(0))},
	{regexp.MustCompile(`(?i)(?:emis?|debt\s+payments?|loan\s+payments?|repayments?)[^0-9₹]{0,24}?` + amountPat), amountConv},
	{regexp.MustCompile(`(?i)(?:pay|paying)\s*` + amountPat + `\s*(?:in|as|towards?)\s+(?:emis?|debts?|loans?)`), amountConv},
}

// Negated and unstable patterns run first so "not stable" never matches the
// stable keyword.
var stabilityRules = []rule{
	{regexp.MustCompile(`(?i)not\s+(?:very\s+)?(?:stable|secure)|unstable|gig\s+work|temporary\s+job|freelance`), constConv(models.EnumValue(models.StabilityUnstable))},
	{regexp.MustCompile(`(?i)contract(?:ual)?\s+(?:job|role|work)|probation|startup\s+job|somewhat\s+stable`), constConv(models.EnumValue(models.StabilityModerate))},
	{regexp.MustCompile(`(?i)permanent|(?:very\s+|quite\s+)?stable|secure\s+job|government\s+job`), constConv(models.EnumValue(models.StabilityStable))},
}

var dependentsRules = []rule{
	{regexp.MustCompile(`(?i)(?:no|zero)\s+(?:dependents?|kids?|children)`), constConv(models.NumberValue(0))},
	{regexp.MustCompile(`(?i)\b([0-9])\s+(?:dependents?|kids?|children|child)\b`), intConv(1)},
}

var goalRules = []rule{
	{regexp.MustCompile(`(?i)retire`), constConv(models.EnumValue("retirement"))},
	{regexp.MustCompile(`(?i)\b(?:house|home|flat|apartment)\b`), constConv(models.EnumValue("home_purchase"))},
	{regexp.MustCompile(`(?i)education|college|school\s+fees|studies`), constConv(models.EnumValue("education"))},
	{regexp.MustCompile(`(?i)wedding|marriage`), constConv(models.EnumValue("wedding"))},
	{regexp.MustCompile(`(?i)emergency|safety\s+net|rainy\s+day`), constConv(models.EnumValue("emergency_fund"))},
	{regexp.MustCompile(`(?i)wealth|invest|grow\s+(?:my\s+)?money`), constConv(models.EnumValue("wealth_building"))},
}

var insuranceRules = []rule{
	{regexp.MustCompile(`(?i)(?:no|don'?t\s+have|without|not)\s+(?:any\s+)?(?:health\s+|life\s+|term\s+)?insur(?:ance|ed)`), constConv(models.BoolValue(false))},
	{regexp.MustCompile(`(?i)insur(?:ance|ed)`), constConv(models.BoolValue(true))},
}

// investmentKinds are the distinct instrument classes counted for the
// diversification bonus.
var investmentKinds = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bfds?\b|fixed\s+deposits?`),
	regexp.MustCompile(`(?i)mutual\s+funds?|\bsips?\b`),
	regexp.MustCompile(`(?i)stocks?|equit(?:y|ies)|shares`),
	regexp.MustCompile(`(?i)\bgold\b`),
	regexp.MustCompile(`(?i)real\s+estate|property`),
	regexp.MustCompile(`(?i)\bppf\b|\bepf\b|\bnps\b`),
}

var resilienceTables = map[models.FieldID][]rule{
	models.FieldMonthlyIncome:        incomeRules,
	models.FieldMonthlyExpenses:      expensesRules,
	models.FieldEmergencySavings:     savingsRules,
	models.FieldExistingDebtMonthly:  debtMonthlyRules,
	models.FieldCreditScore:          creditScoreRules,
	models.FieldEmploymentStability:  stabilityRules,
	models.FieldDependents:           dependentsRules,
	models.FieldFinancialGoal:        goalRules,
	models.FieldHasInsurance:         insuranceRules,
}

// Resilience extracts resilience-schema fields from free text. Pure function.
func Resilience(text string, existing models.SlotSet) Result {
	res := runTables(text, existing, ResilienceOrder, resilienceTables)

	// Diversification is a count across kinds, not a single-pattern field.
	if strings.Contains(strings.ToLower(text), "invest") || anyKindMentioned(text) {
		count := 0
		for _, re := range investmentKinds {
			if re.MatchString(text) {
				count++
			}
		}
		if count > 0 {
			res.Extracted[models.FieldInvestmentTypes] = models.NumberValue(float64(count))
			res.FieldsFound = append(res.FieldsFound, models.FieldInvestmentTypes)
		}
	}
	return res
}

func anyKindMentioned(text string) bool {
	for _, re := range investmentKinds {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
