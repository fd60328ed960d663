package extract

import (
	"fmt"

	"finmitra-backend/internal/models"
)

// Declared ranges for number fields. Values outside the range are rejected at
// extraction time and re-asked by the flows.
const (
	MinMonthlyIncome = 5_000
	MaxMonthlyIncome = 10_000_000
	MinLoanAmount    = 10_000
	MaxLoanAmount    = 100_000_000
	MinCreditScore   = 300
	MaxCreditScore   = 900
	MinAge           = 18
	MaxAge           = 75
	MinTenureMonths  = 6
	MaxTenureMonths  = 360
)

var jobTypes = map[string]bool{
	models.JobSalaried:     true,
	models.JobSelfEmployed: true,
	models.JobBusiness:     true,
	models.JobUnemployed:   true,
}

var stabilityLevels = map[string]bool{
	models.StabilityStable:   true,
	models.StabilityModerate: true,
	models.StabilityUnstable: true,
}

var financialGoals = map[string]bool{
	"retirement":      true,
	"home_purchase":   true,
	"education":       true,
	"wedding":         true,
	"emergency_fund":  true,
	"wealth_building": true,
}

// Validate checks a value against the field's declared range or enum set.
// The switch is exhaustive over every FieldID the schemas can produce.
func Validate(id models.FieldID, v models.SlotValue) error {
	switch id {
	case models.FieldMonthlyIncome:
		return numberInRange(v, MinMonthlyIncome, MaxMonthlyIncome)
	case models.FieldLoanAmount:
		return numberInRange(v, MinLoanAmount, MaxLoanAmount)
	case models.FieldCreditScore:
		return numberInRange(v, MinCreditScore, MaxCreditScore)
	case models.FieldExistingLoans:
		return numberInRange(v, 0, 10)
	case models.FieldJobType:
		return enumIn(v, jobTypes)
	case models.FieldAge:
		return numberInRange(v, MinAge, MaxAge)
	case models.FieldLoanTenure:
		return numberInRange(v, MinTenureMonths, MaxTenureMonths)
	case models.FieldMonthlyExpenses:
		return numberInRange(v, 500, 10_000_000)
	case models.FieldEmergencySavings:
		return numberInRange(v, 0, 1_000_000_000)
	case models.FieldExistingDebtMonthly:
		return numberInRange(v, 0, 10_000_000)
	case models.FieldEmploymentStability:
		return enumIn(v, stabilityLevels)
	case models.FieldDependents:
		return numberInRange(v, 0, 10)
	case models.FieldFinancialGoal:
		return enumIn(v, financialGoals)
	case models.FieldInvestmentTypes:
		return numberInRange(v, 0, 6)
	case models.FieldHasInsurance:
		if v.Kind != models.KindBool {
			return fmt.Errorf("field %s: expected boolean", id)
		}
		return nil
	}
	return fmt.Errorf("unknown field %q", id)
}

func numberInRange(v models.SlotValue, lo, hi float64) error {
	if v.Kind != models.KindNumber {
		return fmt.Errorf("expected a number")
	}
	if v.Num < lo || v.Num > hi {
		return fmt.Errorf("value %g out of range [%g, %g]", v.Num, lo, hi)
	}
	return nil
}

func enumIn(v models.SlotValue, allowed map[string]bool) error {
	if v.Kind != models.KindEnum {
		return fmt.Errorf("expected an enum value")
	}
	if !allowed[v.Str] {
		return fmt.Errorf("value %q not allowed", v.Str)
	}
	return nil
}
