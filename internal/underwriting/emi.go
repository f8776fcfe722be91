package underwriting

import "math"

// Defaults applied when the applicant has not declared tenure or a rate is
// not configured.
const (
	DefaultAnnualRate   = 12.5
	DefaultTenureMonths = 36
)

// EMI computes the equated monthly installment with the standard amortization
// formula: P*r*(1+r)^n / ((1+r)^n - 1), where r is the monthly rate.
func EMI(principal float64, tenureMonths int, annualRate float64) float64 {
	monthlyRate := annualRate / 12 / 100
	pow := math.Pow(1+monthlyRate, float64(tenureMonths))
	return principal * monthlyRate * pow / (pow - 1)
}
