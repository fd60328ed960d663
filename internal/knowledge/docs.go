// Package knowledge is the static grounding corpus and its keyword-overlap
// retriever. Documents are read-only and compiled in; there is no ingestion.
package knowledge

import "finmitra-backend/internal/models"

// Docs is the full corpus, in table order. Tie-broken retrieval relies on
// this order being stable.
var Docs = []models.KnowledgeDoc{
	{
		ID:       "kb-cibil",
		Title:    "CIBIL score basics",
		Category: "credit",
		Content: "A CIBIL score is a 3-digit number between 300 and 900 that summarizes your credit history. " +
			"Most lenders want 700 or above for unsecured loans. The score improves with on-time EMI and card payments, " +
			"low credit utilization (under 30% of your limit), and a long, clean repayment history. " +
			"Checking your own score is a soft inquiry and does not reduce it.",
		Keywords: []string{"cibil", "credit score", "credit history", "credit report", "score"},
	},
	{
		ID:       "kb-emi",
		Title:    "How EMI is calculated",
		Category: "loans",
		Content: "EMI (Equated Monthly Installment) is the fixed amount you repay every month. It follows the formula " +
			"P x r x (1+r)^n / ((1+r)^n - 1), where P is the principal, r the monthly interest rate and n the tenure in months. " +
			"A longer tenure lowers the EMI but increases total interest paid. Prepayments cut the principal directly.",
		Keywords: []string{"emi", "installment", "monthly payment", "tenure", "principal"},
	},
	{
		ID:       "kb-documents",
		Title:    "Documents needed for a loan application",
		Category: "documents",
		Content: "Typical requirements: PAN card, Aadhaar, 3-6 months of bank statements, salary slips (salaried) or " +
			"ITR for 2 years (self-employed), and address proof. Business owners usually add GST returns and business " +
			"registration proof. Lenders may ask for a photograph and a cancelled cheque for disbursal.",
		Keywords: []string{"documents", "kyc", "pan", "aadhaar", "salary slip", "itr", "paperwork"},
	},
	{
		ID:       "kb-banks",
		Title:    "Choosing between banks and NBFCs",
		Category: "banks",
		Content: "Public banks usually offer the lowest rates but slower processing. Private banks are faster with " +
			"slightly higher rates. NBFCs approve thinner credit files but charge the most. Compare the APR, " +
			"processing fee, prepayment penalty, and turnaround time rather than the headline rate alone.",
		Keywords: []string{"bank", "nbfc", "lender", "compare", "processing fee"},
	},
	{
		ID:       "kb-eligibility",
		Title:    "What lenders check for eligibility",
		Category: "loans",
		Content: "Lenders look at income stability, credit score, existing obligations (FOIR/DTI), age, and employer " +
			"category. A debt-to-income ratio under 40% and a score above 700 clear most screens. " +
			"Co-applicants and collateral improve approval odds for borderline profiles.",
		Keywords: []string{"eligibility", "eligible", "qualify", "dti", "foir", "approval"},
	},
	{
		ID:       "kb-emergency-fund",
		Title:    "Building an emergency fund",
		Category: "resilience",
		Content: "Keep 6 months of essential expenses in liquid instruments: a sweep-in FD or a liquid mutual fund. " +
			"Build it before investing for returns. Insurance (term life and health) protects the fund from being " +
			"drained by a single event. Review the target after any change in rent, EMIs, or dependents.",
		Keywords: []string{"emergency fund", "savings", "resilience", "liquid", "buffer"},
	},
	{
		ID:       "kb-loan-types",
		Title:    "Common loan types in India",
		Category: "loans",
		Content: "Personal loans are unsecured, 10-24% interest, quick disbursal. Home loans run 8-10% with tax benefits " +
			"under 80C and 24(b). Gold loans offer instant liquidity against pledged gold. Education loans have " +
			"moratorium periods. Secured loans are always cheaper than unsecured ones.",
		Keywords: []string{"personal loan", "home loan", "gold loan", "education loan", "car loan", "loan types"},
	},
	{
		ID:       "kb-interest-rates",
		Title:    "How interest rates are set",
		Category: "rates",
		Content: "Banks price loans over an external benchmark (usually the RBI repo rate) plus a spread based on your " +
			"risk profile. A better credit score directly lowers the spread you are offered. Fixed rates stay constant; " +
			"floating rates move with the benchmark and are usually cheaper at the start.",
		Keywords: []string{"interest rate", "repo rate", "floating", "fixed", "spread"},
	},
}

// CannedAnswers provides a keyword-matched local answer per category when the
// remote model is unreachable; the user must always receive a response.
var CannedAnswers = map[string]string{
	"credit":     "Your CIBIL score (300-900) is the single biggest factor lenders check. Keep utilization under 30% and never miss an EMI — most lenders want 700+.",
	"loans":      "Lenders check income, credit score, and existing EMIs. Keeping total EMIs under 40% of income and a score above 700 clears most banks' screens.",
	"documents":  "You'll typically need PAN, Aadhaar, bank statements for 3-6 months, and salary slips or ITR. Self-employed applicants add GST returns.",
	"banks":      "Public banks are cheapest, private banks fastest, NBFCs most lenient. Compare APR and processing fees, not just the headline rate.",
	"resilience": "Aim for 6 months of expenses in liquid savings, then add term and health insurance. That cushion is what survives a job loss or medical event.",
	"rates":      "Loan rates follow the RBI repo rate plus a spread tied to your credit profile. Improving your score is the most direct way to a lower rate.",
}

// FallbackAnswer picks the canned answer for a doc's category, with a safe
// generic default.
func FallbackAnswer(docs []models.KnowledgeDoc) string {
	if len(docs) > 0 {
		if a, ok := CannedAnswers[docs[0].Category]; ok {
			return a
		}
	}
	return "I'm having trouble reaching the answer service right now. For loans, the quick rule: keep total EMIs under 40% of income and your CIBIL score above 700. Please try again in a moment."
}
