package models

// FieldID identifies one collectible slot. Every field the two flows can ask
// for has exactly one ID; validator and parser tables are keyed by it.
type FieldID string

const (
	// Shared between both schemas.
	FieldMonthlyIncome FieldID = "monthly_income"
	FieldCreditScore   FieldID = "credit_score"

	// Eligibility schema.
	FieldLoanAmount    FieldID = "loan_amount"
	FieldExistingLoans FieldID = "existing_loans"
	FieldJobType       FieldID = "job_type"
	FieldAge           FieldID = "age"
	FieldLoanTenure    FieldID = "loan_tenure"

	// Resilience schema.
	FieldMonthlyExpenses     FieldID = "monthly_expenses"
	FieldEmergencySavings    FieldID = "emergency_savings"
	FieldExistingDebtMonthly FieldID = "existing_debt_monthly"
	FieldEmploymentStability FieldID = "employment_stability"
	FieldDependents          FieldID = "dependents"
	FieldFinancialGoal       FieldID = "financial_goal"

	// Optional resilience extras, extracted when mentioned but never asked.
	FieldInvestmentTypes FieldID = "investment_types"
	FieldHasInsurance    FieldID = "has_insurance"
)

// FieldKind is the value type a field carries.
type FieldKind int

const (
	KindNumber FieldKind = iota
	KindEnum
	KindBool
)

// SlotValue is a typed, validated value for one field.
type SlotValue struct {
	Kind FieldKind `json:"kind"`
	Num  float64   `json:"num,omitempty"`
	Str  string    `json:"str,omitempty"`
	Bool bool      `json:"bool,omitempty"`
}

func NumberValue(n float64) SlotValue { return SlotValue{Kind: KindNumber, Num: n} }
func EnumValue(s string) SlotValue    { return SlotValue{Kind: KindEnum, Str: s} }
func BoolValue(b bool) SlotValue      { return SlotValue{Kind: KindBool, Bool: b} }

// SlotSet is a partial record of collected fields.
type SlotSet map[FieldID]SlotValue

func (s SlotSet) Number(id FieldID) (float64, bool) {
	v, ok := s[id]
	if !ok || v.Kind != KindNumber {
		return 0, false
	}
	return v.Num, true
}

func (s SlotSet) Enum(id FieldID) (string, bool) {
	v, ok := s[id]
	if !ok || v.Kind != KindEnum {
		return "", false
	}
	return v.Str, true
}

func (s SlotSet) Flag(id FieldID) bool {
	v, ok := s[id]
	return ok && v.Kind == KindBool && v.Bool
}

func (s SlotSet) Has(id FieldID) bool {
	_, ok := s[id]
	return ok
}

func (s SlotSet) Clone() SlotSet {
	out := make(SlotSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// NumberOr returns the stored number or a fallback when the field is unset.
func (s SlotSet) NumberOr(id FieldID, fallback float64) float64 {
	if n, ok := s.Number(id); ok {
		return n
	}
	return fallback
}

// EnumOr returns the stored enum or a fallback when the field is unset.
func (s SlotSet) EnumOr(id FieldID, fallback string) string {
	if e, ok := s.Enum(id); ok {
		return e
	}
	return fallback
}
