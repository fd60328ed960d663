package models

// RiskCategory buckets a score into a lender-facing category.
type RiskCategory string

const (
	RiskLow    RiskCategory = "Low"
	RiskMedium RiskCategory = "Medium"
	RiskHigh   RiskCategory = "High"
)

// Verdicts for the eligibility report.
const (
	VerdictLikelyEligible = "Likely Eligible"
	VerdictBorderline     = "Borderline"
	VerdictUnlikely       = "Unlikely"
)

// Job types accepted by the eligibility schema.
const (
	JobSalaried     = "salaried"
	JobSelfEmployed = "self_employed"
	JobBusiness     = "business"
	JobUnemployed   = "unemployed"
)

// Employment stability levels for the resilience schema.
const (
	StabilityStable   = "stable"
	StabilityModerate = "moderate"
	StabilityUnstable = "unstable"
)

// EligibilityInput is a fully defaulted slot set for the eligibility formula.
type EligibilityInput struct {
	MonthlyIncome float64 `json:"monthly_income"`
	LoanAmount    float64 `json:"loan_amount"`
	CreditScore   int     `json:"credit_score"`
	ExistingLoans int     `json:"existing_loans"`
	JobType       string  `json:"job_type"`
	Age           int     `json:"age"`
	TenureMonths  int     `json:"loan_tenure"`
	AnnualRatePct float64 `json:"annual_rate_pct"`
}

// EligibilityReport is the deterministic output of the eligibility formula.
type EligibilityReport struct {
	Probability     int          `json:"probability"`
	RiskCategory    RiskCategory `json:"risk_category"`
	EMI             float64      `json:"emi"`
	DTIPercent      float64      `json:"dti_percent"`
	MonthlySurplus  float64      `json:"monthly_surplus"`
	Verdict         string       `json:"verdict"`
	RiskFactors     []string     `json:"risk_factors"`
	Recommendations []string     `json:"recommendations"`
}

// ResilienceInput is a fully defaulted slot set for the resilience formula.
type ResilienceInput struct {
	MonthlyIncome    float64 `json:"monthly_income"`
	MonthlyExpenses  float64 `json:"monthly_expenses"`
	EmergencySavings float64 `json:"emergency_savings"`
	DebtMonthly      float64 `json:"existing_debt_monthly"`
	CreditScore      int     `json:"credit_score"`
	Stability        string  `json:"employment_stability"`
	Dependents       int     `json:"dependents"`
	FinancialGoal    string  `json:"financial_goal"`
	InvestmentTypes  int     `json:"investment_types"`
	HasInsurance     bool    `json:"has_insurance"`
}

// StressScenario names one hypothetical adverse event.
type StressScenario string

const (
	ScenarioJobLoss          StressScenario = "job_loss"
	ScenarioMedicalEmergency StressScenario = "medical_emergency"
	ScenarioMarketCrash      StressScenario = "market_crash"
	ScenarioInflationSurge   StressScenario = "inflation_surge"
	ScenarioCombined         StressScenario = "combined"
)

// ScenarioResult reports survival runway under one stress scenario.
type ScenarioResult struct {
	Scenario       StressScenario `json:"scenario"`
	SurvivalMonths int            `json:"survival_months"`
	Impact         string         `json:"impact"` // Low | Medium | High | Critical
}

// ResilienceReport is the deterministic output of the resilience formula.
type ResilienceReport struct {
	Score           int              `json:"score"`
	RiskCategory    RiskCategory     `json:"risk_category"`
	SurvivalMonths  int              `json:"survival_months"` // worst case across scenarios
	Scenarios       []ScenarioResult `json:"scenarios"`
	RiskFactors     []string         `json:"risk_factors"`
	Recommendations []string         `json:"recommendations"`
}
