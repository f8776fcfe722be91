package confidence

import "math"

// StagnationThreshold is the number of consecutive unchanged overall scores
// after which the model flags that a manual-review fallback is available.
const StagnationThreshold = 3

// Model recomputes the derived overall score and tracks stagnation across
// recomputes. One Model instance belongs to one session; it carries no other
// state between orchestration cycles.
type Model struct {
	lastOverall int
	stagnantFor int
}

func NewModel() *Model {
	return &Model{}
}

// Recompute clamps each raw dimension at its cap, applies the fixed weights,
// rounds half-up, and stores the result in v.Overall.
//
// The boolean result reports stagnation: true once the overall value has held
// unchanged for StagnationThreshold consecutive recomputes. Stagnation is
// informational only; it never changes decision state. Any change in the
// overall value resets the counter.
func (m *Model) Recompute(v *Vector) (int, bool) {
	weighted := float64(Clamp(DimensionIntent, v.Intent))*WeightIntent +
		float64(Clamp(DimensionIdentity, v.Identity))*WeightIdentity +
		float64(Clamp(DimensionCredit, v.Credit))*WeightCredit +
		float64(Clamp(DimensionIncome, v.Income))*WeightIncome

	v.Overall = int(math.Floor(weighted + 0.5))

	if v.Overall == m.lastOverall {
		m.stagnantFor++
	} else {
		m.lastOverall = v.Overall
		m.stagnantFor = 0
	}

	return v.Overall, m.stagnantFor >= StagnationThreshold
}

// StagnantFor returns the current consecutive-unchanged counter.
func (m *Model) StagnantFor() int {
	return m.stagnantFor
}
