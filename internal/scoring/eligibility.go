package scoring

import (
	"math"

	"finmitra-backend/internal/models"
)

// Per-field fallback constants applied when a flow completes with gaps.
const (
	defaultCreditScore   = 650
	defaultAge           = 30
	defaultTenureMonths  = 36
	defaultExistingLoans = 0
)

// DefaultedEligibility builds a complete formula input from a possibly
// partial slot set.
func DefaultedEligibility(s models.SlotSet) models.EligibilityInput {
	return models.EligibilityInput{
		MonthlyIncome: s.NumberOr(models.FieldMonthlyIncome, 0),
		LoanAmount:    s.NumberOr(models.FieldLoanAmount, 0),
		CreditScore:   int(s.NumberOr(models.FieldCreditScore, defaultCreditScore)),
		ExistingLoans: int(s.NumberOr(models.FieldExistingLoans, defaultExistingLoans)),
		JobType:       s.EnumOr(models.FieldJobType, models.JobSalaried),
		Age:           int(s.NumberOr(models.FieldAge, defaultAge)),
		TenureMonths:  int(s.NumberOr(models.FieldLoanTenure, defaultTenureMonths)),
		AnnualRatePct: DefaultAnnualRatePct,
	}
}

// Eligibility applies the additive weight model: base 50, adjusted by bucketed
// credit score, DTI, income level, job type, loan-to-annual-income ratio,
// existing loans, and age, clamped to [8, 95].
func Eligibility(in models.EligibilityInput) models.EligibilityReport {
	emi := EMI(in.LoanAmount, in.AnnualRatePct, in.TenureMonths)

	// Existing loans approximated as a flat obligation each; the schema
	// collects a count, not individual EMIs.
	existingObligation := float64(in.ExistingLoans) * 0.05 * in.MonthlyIncome
	dti := DTIPercent(emi+existingObligation, in.MonthlyIncome)
	surplus := in.MonthlyIncome - emi - existingObligation

	score := 50
	var risks, recs []string

	switch {
	case in.CreditScore >= 750:
		score += 20
	case in.CreditScore >= 700:
		score += 15
	case in.CreditScore >= 650:
		score += 5
	case in.CreditScore >= 600:
		score -= 5
		risks = append(risks, "Credit score below 650 weakens the application")
		recs = append(recs, "Pay all EMIs and card dues on time for 6 months to lift your CIBIL score")
	default:
		score -= 15
		risks = append(risks, "Credit score below 600 — most lenders will decline")
		recs = append(recs, "Clear overdue accounts and rebuild your CIBIL score before applying")
	}

	switch {
	case dti <= 30:
		score += 15
	case dti <= 40:
		score += 8
	case dti <= 50:
		score -= 5
		risks = append(risks, "Debt-to-income ratio above 40%")
		recs = append(recs, "Reduce the loan amount or extend the tenure to bring the EMI down")
	default:
		score -= 15
		risks = append(risks, "Debt-to-income ratio above 50% — repayment capacity is strained")
		recs = append(recs, "Close an existing loan or apply for a smaller amount")
	}

	switch {
	case in.MonthlyIncome >= 100_000:
		score += 10
	case in.MonthlyIncome >= 50_000:
		score += 5
	case in.MonthlyIncome >= 25_000:
		// neutral
	default:
		score -= 8
		risks = append(risks, "Income below the comfortable threshold for this loan size")
	}

	switch in.JobType {
	case models.JobSalaried:
		score += 8
	case models.JobBusiness:
		score += 4
	case models.JobSelfEmployed:
		score += 2
	case models.JobUnemployed:
		score -= 20
		risks = append(risks, "No active income source")
		recs = append(recs, "Lenders require proof of income; consider a co-applicant")
	}

	annualIncome := in.MonthlyIncome * 12
	if annualIncome > 0 {
		ratio := in.LoanAmount / annualIncome
		switch {
		case ratio <= 1:
			score += 8
		case ratio <= 2:
			score += 3
		case ratio <= 3:
			score -= 5
			risks = append(risks, "Loan amount exceeds twice your annual income")
		default:
			score -= 12
			risks = append(risks, "Loan amount exceeds three times your annual income")
			recs = append(recs, "Ask for a smaller amount or add a co-applicant's income")
		}
	}

	switch {
	case in.ExistingLoans == 0:
		score += 5
	case in.ExistingLoans == 1:
		// neutral
	case in.ExistingLoans == 2:
		score -= 5
	default:
		score -= 10
		risks = append(risks, "Several running loans raise lender scrutiny")
		recs = append(recs, "Close or consolidate existing loans before applying")
	}

	switch {
	case in.Age >= 25 && in.Age <= 45:
		score += 4
	case in.Age >= 21 && in.Age <= 55:
		// neutral
	default:
		score -= 5
		risks = append(risks, "Age outside the preferred lending band of 21-55")
	}

	score = clampInt(score, 8, 95)

	var risk models.RiskCategory
	switch {
	case score >= 75:
		risk = models.RiskLow
	case score >= 55:
		risk = models.RiskMedium
	default:
		risk = models.RiskHigh
	}

	var verdict string
	switch {
	case score >= 70 && dti <= 45 && surplus >= 0:
		verdict = models.VerdictLikelyEligible
	case score >= 55 && dti <= 55:
		verdict = models.VerdictBorderline
	default:
		verdict = models.VerdictUnlikely
	}

	if len(recs) == 0 {
		recs = append(recs, "Your profile looks strong — compare rates across 2-3 lenders before committing")
	}

	return models.EligibilityReport{
		Probability:     score,
		RiskCategory:    risk,
		EMI:             math.Round(emi),
		DTIPercent:      math.Round(dti*10) / 10,
		MonthlySurplus:  math.Round(surplus),
		Verdict:         verdict,
		RiskFactors:     risks,
		Recommendations: recs,
	}
}
