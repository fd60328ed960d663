package models

// Intent labels the conversational purpose of a single user message.
type Intent string

const (
	IntentGeneralChat       Intent = "general_chat"
	IntentEMICalculation    Intent = "emi_calculation"
	IntentCreditScoreInfo   Intent = "credit_score_info"
	IntentDocumentInfo      Intent = "document_info"
	IntentBankInfo          Intent = "bank_info"
	IntentFinancialPlanning Intent = "financial_planning"
	IntentLoanEligibility   Intent = "loan_eligibility"
	IntentResilienceCheck   Intent = "resilience_check"
	IntentInterestRates     Intent = "interest_rates"
	IntentLoanTypes         Intent = "loan_types"
	IntentFinanceQA         Intent = "finance_qa"
)

// IntentResult is produced fresh per message and used only for routing the
// current turn; it is never persisted.
type IntentResult struct {
	Intent     Intent            `json:"intent"`
	Confidence float64           `json:"confidence"`
	Entities   map[string]string `json:"entities,omitempty"`
	Reasoning  string            `json:"reasoning"`
}
