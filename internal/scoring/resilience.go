package scoring

import (
	"math"

	"finmitra-backend/internal/models"
)

// DefaultedResilience builds a complete formula input from a possibly partial
// slot set. Expenses default to 60% of income when never stated.
func DefaultedResilience(s models.SlotSet) models.ResilienceInput {
	income := s.NumberOr(models.FieldMonthlyIncome, 0)
	return models.ResilienceInput{
		MonthlyIncome:    income,
		MonthlyExpenses:  s.NumberOr(models.FieldMonthlyExpenses, income*0.6),
		EmergencySavings: s.NumberOr(models.FieldEmergencySavings, 0),
		DebtMonthly:      s.NumberOr(models.FieldExistingDebtMonthly, 0),
		CreditScore:      int(s.NumberOr(models.FieldCreditScore, defaultCreditScore)),
		Stability:        s.EnumOr(models.FieldEmploymentStability, models.StabilityModerate),
		Dependents:       int(s.NumberOr(models.FieldDependents, 0)),
		FinancialGoal:    s.EnumOr(models.FieldFinancialGoal, "emergency_fund"),
		InvestmentTypes:  int(s.NumberOr(models.FieldInvestmentTypes, 1)),
		HasInsurance:     s.Flag(models.FieldHasInsurance),
	}
}

// stressProfile defines how one scenario erodes liquid assets and inflates
// monthly obligations. Combined dominates on both axes, so the worst-case
// minimum is always the combined scenario.
type stressProfile struct {
	scenario       models.StressScenario
	assetFactor    float64
	obligationMult float64
}

var stressProfiles = []stressProfile{
	{models.ScenarioJobLoss, 1.0, 1.0},
	{models.ScenarioMedicalEmergency, 0.7, 1.2},
	{models.ScenarioMarketCrash, 0.6, 1.0},
	{models.ScenarioInflationSurge, 1.0, 1.25},
	{models.ScenarioCombined, 0.5, 1.4},
}

// StressTest runs every scenario against the profile's liquid assets and
// monthly obligations (expenses + debt service; income is assumed lost).
func StressTest(in models.ResilienceInput) []models.ScenarioResult {
	obligation := in.MonthlyExpenses + in.DebtMonthly
	results := make([]models.ScenarioResult, 0, len(stressProfiles))
	for _, p := range stressProfiles {
		months := 0
		if obligation > 0 {
			months = int(math.Floor(in.EmergencySavings * p.assetFactor / (obligation * p.obligationMult)))
		}
		results = append(results, models.ScenarioResult{
			Scenario:       p.scenario,
			SurvivalMonths: months,
			Impact:         impactBucket(months),
		})
	}
	return results
}

func impactBucket(months int) string {
	switch {
	case months >= 12:
		return "Low"
	case months >= 6:
		return "Medium"
	case months >= 2:
		return "High"
	default:
		return "Critical"
	}
}

// Resilience applies the additive model: base 50 plus bonuses for emergency
// fund coverage, DTI, job stability, credit tier, diversification, and
// insurance, clamped to [0, 100]. The reported survival months is the minimum
// across all stress scenarios.
func Resilience(in models.ResilienceInput) models.ResilienceReport {
	score := 50
	var risks, recs []string

	fundMonths := 0.0
	if in.MonthlyExpenses > 0 {
		fundMonths = in.EmergencySavings / in.MonthlyExpenses
	}
	switch {
	case fundMonths >= 6:
		score += 20
	case fundMonths >= 3:
		score += 12
	case fundMonths >= 1:
		score += 5
		recs = append(recs, "Grow your emergency fund towards 6 months of expenses")
	default:
		score -= 10
		risks = append(risks, "Emergency fund covers less than one month of expenses")
		recs = append(recs, "Start an emergency fund — even ₹2,000 a month builds a cushion")
	}

	dti := DTIPercent(in.DebtMonthly, in.MonthlyIncome)
	switch {
	case dti <= 20:
		score += 10
	case dti <= 35:
		score += 4
	case dti <= 50:
		score -= 5
		risks = append(risks, "Debt payments take over a third of your income")
		recs = append(recs, "Prioritize closing the highest-interest debt first")
	default:
		score -= 12
		risks = append(risks, "Debt payments exceed half your income")
		recs = append(recs, "Restructure or consolidate debt to cut the monthly outgo")
	}

	switch in.Stability {
	case models.StabilityStable:
		score += 8
	case models.StabilityUnstable:
		score -= 8
		risks = append(risks, "Income source is unstable")
		recs = append(recs, "Keep a larger cash buffer to offset irregular income")
	}

	switch {
	case in.CreditScore >= 750:
		score += 8
	case in.CreditScore >= 650:
		score += 4
	case in.CreditScore >= 600:
		// neutral
	default:
		score -= 5
		risks = append(risks, "Weak credit score limits emergency borrowing options")
	}

	diversification := in.InvestmentTypes * 2
	if diversification > 6 {
		diversification = 6
	}
	score += diversification
	if in.InvestmentTypes <= 1 {
		recs = append(recs, "Diversify beyond a single instrument — an index fund SIP is a simple start")
	}

	if in.HasInsurance {
		score += 5
	} else if in.Dependents > 0 {
		score -= 6
		risks = append(risks, "Dependents without insurance cover")
		recs = append(recs, "A term life and health policy protects your dependents cheaply")
	}

	score = clampInt(score, 0, 100)

	scenarios := StressTest(in)
	worst := math.MaxInt
	for _, sc := range scenarios {
		if sc.SurvivalMonths < worst {
			worst = sc.SurvivalMonths
		}
	}

	var risk models.RiskCategory
	switch {
	case score >= 75:
		risk = models.RiskLow
	case score >= 55:
		risk = models.RiskMedium
	default:
		risk = models.RiskHigh
	}

	if len(recs) == 0 {
		recs = append(recs, "Solid footing — review the plan yearly and after any big life change")
	}

	return models.ResilienceReport{
		Score:           score,
		RiskCategory:    risk,
		SurvivalMonths:  worst,
		Scenarios:       scenarios,
		RiskFactors:     risks,
		Recommendations: recs,
	}
}
