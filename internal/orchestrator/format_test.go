package orchestrator

import (
	"strings"
	"testing"

	"finmitra-backend/internal/models"
	"finmitra-backend/internal/scoring"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{999, "₹999"},
		{1000, "₹1,000"},
		{50000, "₹50,000"},
		{500000, "₹5,00,000"},
		{1234567, "₹12,34,567"},
		{10000000, "₹1,00,00,000"},
		{-50000, "₹-50,000"},
		{10379.54, "₹10,380"},
	}
	for _, tc := range tests {
		if got := FormatINR(tc.amount); got != tc.want {
			t.Errorf("FormatINR(%v): expected %s, got %s", tc.amount, tc.want, got)
		}
	}
}

func TestLabel_FallsBackToEnglish(t *testing.T) {
	if label(models.Language("fr"), "risk") != labels[models.LangEnglish]["risk"] {
		t.Error("Expected unknown language to fall back to English")
	}
	if label(models.LangHindi, "risk") == labels[models.LangEnglish]["risk"] {
		t.Error("Expected a localized Hindi label")
	}
}

func TestFormatEligibilityReport(t *testing.T) {
	rep := scoring.Eligibility(models.EligibilityInput{
		MonthlyIncome: 50000, LoanAmount: 300000, CreditScore: 720,
		JobType: models.JobSalaried, Age: 28, TenureMonths: 36, AnnualRatePct: 11,
	})
	out := formatEligibilityReport(models.LangEnglish, rep)

	for _, want := range []string{"Loan Eligibility Report", "Approval probability", "95%", "₹"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected report to contain %q:\n%s", want, out)
		}
	}
}

func TestFormatResilienceReport(t *testing.T) {
	rep := scoring.Resilience(models.ResilienceInput{
		MonthlyIncome: 60000, MonthlyExpenses: 30000, EmergencySavings: 180000,
		DebtMonthly: 6000, CreditScore: 760, Stability: models.StabilityStable,
		Dependents: 1, InvestmentTypes: 3, HasInsurance: true,
	})
	out := formatResilienceReport(models.LangEnglish, rep)

	for _, want := range []string{"Financial Resilience Report", "Stress scenarios", "months"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected report to contain %q:\n%s", want, out)
		}
	}
}
