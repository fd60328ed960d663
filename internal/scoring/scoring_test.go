package scoring

import (
	"math"
	"reflect"
	"testing"

	"finmitra-backend/internal/models"
)

func TestEMI(t *testing.T) {
	// 5 lakhs at 9% over 60 months is a standard anchor value.
	got := EMI(500000, 9, 60)
	if math.Abs(got-10379.5) > 1 {
		t.Errorf("Expected EMI ~10379.5, got %.2f", got)
	}

	if got := EMI(120000, 0, 12); got != 10000 {
		t.Errorf("Expected zero-rate EMI 10000, got %.2f", got)
	}
	if got := EMI(0, 10, 12); got != 0 {
		t.Errorf("Expected zero principal to give 0, got %.2f", got)
	}
	if got := EMI(100000, 10, 0); got != 0 {
		t.Errorf("Expected zero tenure to give 0, got %.2f", got)
	}
}

func TestDTIPercent(t *testing.T) {
	if got := DTIPercent(20000, 50000); got != 40 {
		t.Errorf("Expected 40, got %.2f", got)
	}
	if got := DTIPercent(5000, 0); got != 100 {
		t.Errorf("Expected 100 for zero income, got %.2f", got)
	}
}

func TestEligibility_StrongProfile(t *testing.T) {
	in := models.EligibilityInput{
		MonthlyIncome: 50000,
		LoanAmount:    300000,
		CreditScore:   720,
		ExistingLoans: 0,
		JobType:       models.JobSalaried,
		Age:           28,
		TenureMonths:  36,
		AnnualRatePct: 11,
	}
	rep := Eligibility(in)

	if rep.Probability != 95 {
		t.Errorf("Expected probability clamped to 95, got %d", rep.Probability)
	}
	if rep.RiskCategory != models.RiskLow {
		t.Errorf("Expected Low risk, got %s", rep.RiskCategory)
	}
	if rep.Verdict != models.VerdictLikelyEligible {
		t.Errorf("Expected %q, got %q", models.VerdictLikelyEligible, rep.Verdict)
	}
	if math.Abs(rep.EMI-9822) > 2 {
		t.Errorf("Expected EMI ~9822, got %.2f", rep.EMI)
	}
	if rep.DTIPercent > 25 {
		t.Errorf("Expected DTI under 25%%, got %.1f", rep.DTIPercent)
	}
	if len(rep.Recommendations) == 0 {
		t.Error("Expected at least one recommendation")
	}
}

func TestEligibility_WeakProfile(t *testing.T) {
	in := models.EligibilityInput{
		MonthlyIncome: 15000,
		LoanAmount:    2000000,
		CreditScore:   540,
		ExistingLoans: 3,
		JobType:       models.JobUnemployed,
		Age:           62,
		TenureMonths:  36,
		AnnualRatePct: 11,
	}
	rep := Eligibility(in)

	if rep.Probability != 8 {
		t.Errorf("Expected probability clamped to 8, got %d", rep.Probability)
	}
	if rep.RiskCategory != models.RiskHigh {
		t.Errorf("Expected High risk, got %s", rep.RiskCategory)
	}
	if rep.Verdict != models.VerdictUnlikely {
		t.Errorf("Expected %q, got %q", models.VerdictUnlikely, rep.Verdict)
	}
	if len(rep.RiskFactors) == 0 {
		t.Error("Expected risk factors for a weak profile")
	}
}

func TestEligibility_Idempotent(t *testing.T) {
	in := models.EligibilityInput{
		MonthlyIncome: 60000, LoanAmount: 500000, CreditScore: 680,
		ExistingLoans: 1, JobType: models.JobBusiness, Age: 40,
		TenureMonths: 48, AnnualRatePct: 11,
	}
	first := Eligibility(in)
	second := Eligibility(in)
	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical reports for identical input")
	}
}

func TestResilience_StrongProfile(t *testing.T) {
	in := models.ResilienceInput{
		MonthlyIncome:    60000,
		MonthlyExpenses:  30000,
		EmergencySavings: 180000,
		DebtMonthly:      6000,
		CreditScore:      760,
		Stability:        models.StabilityStable,
		Dependents:       1,
		FinancialGoal:    "retirement",
		InvestmentTypes:  3,
		HasInsurance:     true,
	}
	rep := Resilience(in)

	if rep.Score != 100 {
		t.Errorf("Expected score clamped to 100, got %d", rep.Score)
	}
	if rep.RiskCategory != models.RiskLow {
		t.Errorf("Expected Low risk, got %s", rep.RiskCategory)
	}
	// obligation 36000; combined halves assets and inflates obligations by
	// 1.4x: floor(90000/50400) = 1 month, the worst of all scenarios.
	if rep.SurvivalMonths != 1 {
		t.Errorf("Expected worst-case 1 month, got %d", rep.SurvivalMonths)
	}
}

func TestStressTest_CombinedIsWorst(t *testing.T) {
	profiles := []models.ResilienceInput{
		{MonthlyExpenses: 30000, DebtMonthly: 6000, EmergencySavings: 180000},
		{MonthlyExpenses: 20000, DebtMonthly: 0, EmergencySavings: 300000},
		{MonthlyExpenses: 50000, DebtMonthly: 15000, EmergencySavings: 65000},
		{MonthlyExpenses: 10000, DebtMonthly: 2000, EmergencySavings: 1000000},
	}
	for _, in := range profiles {
		results := StressTest(in)
		if len(results) != 5 {
			t.Fatalf("Expected 5 scenarios, got %d", len(results))
		}
		var combined, minimum int
		minimum = math.MaxInt
		for _, r := range results {
			if r.Scenario == models.ScenarioCombined {
				combined = r.SurvivalMonths
			}
			if r.SurvivalMonths < minimum {
				minimum = r.SurvivalMonths
			}
		}
		if combined != minimum {
			t.Errorf("Expected combined scenario (%d months) to be the minimum (%d)", combined, minimum)
		}
	}
}

func TestImpactBuckets(t *testing.T) {
	tests := []struct {
		months int
		want   string
	}{
		{14, "Low"}, {12, "Low"}, {8, "Medium"}, {6, "Medium"},
		{4, "High"}, {2, "High"}, {1, "Critical"}, {0, "Critical"},
	}
	for _, tc := range tests {
		if got := impactBucket(tc.months); got != tc.want {
			t.Errorf("%d months: expected %s, got %s", tc.months, tc.want, got)
		}
	}
}

func TestDefaultedInputs(t *testing.T) {
	slots := models.SlotSet{
		models.FieldMonthlyIncome: models.NumberValue(50000),
		models.FieldLoanAmount:    models.NumberValue(300000),
	}
	in := DefaultedEligibility(slots)
	if in.CreditScore != 650 {
		t.Errorf("Expected default credit score 650, got %d", in.CreditScore)
	}
	if in.TenureMonths != 36 {
		t.Errorf("Expected default tenure 36, got %d", in.TenureMonths)
	}
	if in.JobType != models.JobSalaried {
		t.Errorf("Expected default job type salaried, got %s", in.JobType)
	}

	rin := DefaultedResilience(slots)
	if rin.MonthlyExpenses != 30000 {
		t.Errorf("Expected expenses defaulted to 60%% of income, got %.0f", rin.MonthlyExpenses)
	}
	if rin.InvestmentTypes != 1 {
		t.Errorf("Expected default investment types 1, got %d", rin.InvestmentTypes)
	}
	if rin.Stability != models.StabilityModerate {
		t.Errorf("Expected default stability moderate, got %s", rin.Stability)
	}
}
