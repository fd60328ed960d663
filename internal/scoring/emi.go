// Package scoring holds the deterministic formulas: EMI/DTI, the eligibility
// probability, and the resilience score with its stress scenarios. Every
// function is pure: identical inputs always produce identical reports.
package scoring

import "math"

// DefaultAnnualRatePct is assumed when the user does not state a rate.
const DefaultAnnualRatePct = 11.0

// EMI computes the equated monthly installment:
// P·r·(1+r)^n / ((1+r)^n − 1), r = monthly rate, n = tenure in months.
func EMI(principal, annualRatePct float64, months int) float64 {
	if months <= 0 || principal <= 0 {
		return 0
	}
	r := annualRatePct / 12 / 100
	if r == 0 {
		return principal / float64(months)
	}
	factor := math.Pow(1+r, float64(months))
	return principal * r * factor / (factor - 1)
}

// DTIPercent is total monthly obligations over income, as a percentage.
func DTIPercent(obligations, income float64) float64 {
	if income <= 0 {
		return 100
	}
	return obligations / income * 100
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
