// Package confidence holds the four-dimension confidence model that drives
// loan decisioning. Each dimension is scored 0-100 by its owning step, capped
// below 100 to reflect irreducible uncertainty per signal type, and folded
// into an overall score with fixed weights.
package confidence

// Dimension names one independently scored confidence signal.
type Dimension string

const (
	DimensionIntent   Dimension = "intent"
	DimensionIdentity Dimension = "identity"
	DimensionIncome   Dimension = "income"
	DimensionCredit   Dimension = "credit"
)

// Dimensions returns all dimensions in their fixed evaluation order. The
// governor breaks weakest-dimension ties by this order, keeping the first
// minimum encountered.
func Dimensions() []Dimension {
	return []Dimension{DimensionIntent, DimensionIdentity, DimensionIncome, DimensionCredit}
}

// Per-dimension caps. No dimension ever contributes a value above its cap:
// borrower intent can't be fully certain (97), documents can be forged (99),
// income fluctuates (92), and credit models carry inherent uncertainty (96).
const (
	CapIntent   = 97
	CapIdentity = 99
	CapIncome   = 92
	CapCredit   = 96
)

// Fixed aggregation weights, summing to 1.0.
const (
	WeightIntent   = 0.30
	WeightIdentity = 0.25
	WeightCredit   = 0.25
	WeightIncome   = 0.20
)

// Cap returns the cap for a dimension.
func Cap(d Dimension) int {
	switch d {
	case DimensionIntent:
		return CapIntent
	case DimensionIdentity:
		return CapIdentity
	case DimensionIncome:
		return CapIncome
	case DimensionCredit:
		return CapCredit
	}
	return 100
}

// Clamp bounds a raw value to [0, Cap(d)].
func Clamp(d Dimension, value int) int {
	if value < 0 {
		return 0
	}
	if limit := Cap(d); value > limit {
		return limit
	}
	return value
}

// Vector is the per-session confidence state. Raw dimension values are
// mutated only by step handlers; Overall is recomputed exclusively by Model.
type Vector struct {
	Intent   int `json:"intent"`
	Identity int `json:"identity"`
	Income   int `json:"income"`
	Credit   int `json:"credit"`
	Overall  int `json:"overall"`
}

// Raw returns the stored (uncapped) value for a dimension.
func (v Vector) Raw(d Dimension) int {
	switch d {
	case DimensionIntent:
		return v.Intent
	case DimensionIdentity:
		return v.Identity
	case DimensionIncome:
		return v.Income
	case DimensionCredit:
		return v.Credit
	}
	return 0
}

// Weakest returns the dimension with the numerically lowest raw value, ties
// broken by the fixed order returned from Dimensions.
func (v Vector) Weakest() Dimension {
	weakest := DimensionIntent
	min := v.Raw(weakest)
	for _, d := range Dimensions()[1:] {
		if raw := v.Raw(d); raw < min {
			weakest = d
			min = raw
		}
	}
	return weakest
}
