package decision

import (
	"fmt"
	"strings"

	"lendgate/internal/confidence"
	"lendgate/pkg/domain"
)

// Decision thresholds on the overall confidence score.
const (
	ThresholdRejected   = 40 // below this after enough checks, reject
	ThresholdProcessing = 50
	ThresholdReview     = 70
	ThresholdApproved   = 89
)

// Hard floors and ceilings applied before the threshold ladder.
const (
	CreditScoreFloor      = 550 // verified score below this rejects outright
	CreditHighRiskCeiling = 650
	IdentityFailureFloor  = 50 // identity confidence below this after a document fails KYC
	IdentityVerifiedFloor = 90 // identity confidence at or above this counts as verified
	DTIRejectCeiling      = 60.0
)

// ShouldReject applies the rejection rules, which short-circuit the threshold
// ladder. Evaluated first on every cycle.
func ShouldReject(f Facts) bool {
	if f.CreditScore > 0 && f.CreditScore < CreditScoreFloor {
		return true
	}
	// At least verification and underwriting have run, yet confidence landed
	// below the rejection threshold.
	if f.CompletedSteps >= 2 && f.Vector.Overall > 0 && f.Vector.Overall < ThresholdRejected {
		return true
	}
	if f.IdentityDocSubmitted && f.Vector.Identity < IdentityFailureFloor {
		return true
	}
	return false
}

// ClassifyState maps facts onto the decision state machine: rejection rules
// first, then the overall-confidence threshold ladder.
func ClassifyState(f Facts) domain.DecisionState {
	if ShouldReject(f) {
		return domain.DecisionRejected
	}
	switch {
	case f.Vector.Overall >= ThresholdApproved:
		return domain.DecisionApproved
	case f.Vector.Overall >= ThresholdReview:
		return domain.DecisionReview
	case f.Vector.Overall >= ThresholdProcessing:
		return domain.DecisionProcessing
	default:
		return domain.DecisionPending
	}
}

// AssessRisk classifies qualitative risk independently of decision state.
// First matching rule wins.
func AssessRisk(f Facts) (domain.RiskLevel, string) {
	identityVerified := f.Vector.Identity >= IdentityVerifiedFloor

	// HIGH: missing identity or credit below 700.
	if !identityVerified || (f.CreditScore > 0 && f.CreditScore < 700) {
		if !identityVerified {
			return domain.RiskHigh, "identity verification incomplete - KYC pending"
		}
		return domain.RiskHigh, fmt.Sprintf("credit score %d below threshold (700) - elevated default risk", f.CreditScore)
	}

	// MEDIUM: partial income proof or marginal credit band.
	if !f.IncomeVerified || (f.CreditScore >= 700 && f.CreditScore <= 740) {
		if !f.IncomeVerified {
			return domain.RiskMedium, "income partially verified - salary slip recommended for confirmation"
		}
		return domain.RiskMedium, fmt.Sprintf("credit score %d in marginal range (700-740) - standard monitoring applies", f.CreditScore)
	}

	// LOW: strong credit with verified income.
	if f.CreditScore > 740 && f.IncomeVerified {
		return domain.RiskLow, fmt.Sprintf("strong profile: credit score %d with verified net salary of %.0f", f.CreditScore, f.VerifiedNetSalary)
	}

	// LOW (weaker): strong credit alone.
	if f.CreditScore > 740 {
		return domain.RiskLow, fmt.Sprintf("credit score %d indicates strong creditworthiness - income verification would further strengthen", f.CreditScore)
	}

	return domain.RiskMedium, "assessment in progress - awaiting additional verification signals"
}

// OwningStep maps a confidence dimension to the step responsible for
// improving it.
func OwningStep(d confidence.Dimension) domain.Step {
	switch d {
	case confidence.DimensionIntent:
		return domain.StepSales
	case confidence.DimensionIdentity:
		return domain.StepIdentity
	default:
		return domain.StepUnderwriting
	}
}

// ActionKind is what the governor recommends the caller do next.
type ActionKind string

const (
	ActionApprove  ActionKind = "APPROVE"
	ActionActivate ActionKind = "ACTIVATE"
	ActionWait     ActionKind = "WAIT"
)

// NextAction is the governor's recommendation for the next cycle.
type NextAction struct {
	Kind   ActionKind
	Step   domain.Step
	Reason string
}

// SelectNextAction picks the next action: approve at threshold, otherwise
// activate the step owning the weakest dimension, otherwise wait for more
// signals.
func SelectNextAction(v confidence.Vector, isCompleted func(domain.Step) bool) NextAction {
	if v.Overall >= ThresholdApproved {
		return NextAction{
			Kind:   ActionApprove,
			Step:   domain.StepSanction,
			Reason: fmt.Sprintf("confidence threshold met (%d%% >= %d%%)", v.Overall, ThresholdApproved),
		}
	}

	weakest := v.Weakest()
	owner := OwningStep(weakest)
	if !isCompleted(owner) {
		return NextAction{
			Kind:   ActionActivate,
			Step:   owner,
			Reason: fmt.Sprintf("%s confidence at %d%% - requires improvement", weakest, v.Raw(weakest)),
		}
	}

	return NextAction{
		Kind:   ActionWait,
		Reason: "awaiting user input or additional documents",
	}
}

// RejectionReasons lists every currently-true rejection reason in a
// human-readable form.
func RejectionReasons(f Facts) []string {
	var reasons []string

	if f.CreditScore > 0 && f.CreditScore < CreditScoreFloor {
		reasons = append(reasons, fmt.Sprintf("your credit score (%d) is below our minimum requirement of %d", f.CreditScore, CreditScoreFloor))
	}
	if f.CreditScore >= CreditScoreFloor && f.CreditScore < CreditHighRiskCeiling {
		reasons = append(reasons, fmt.Sprintf("your credit score (%d) indicates high risk", f.CreditScore))
	}
	if f.IdentityDocSubmitted && f.Vector.Identity < IdentityFailureFloor {
		reasons = append(reasons, "identity verification could not be completed successfully")
	}
	if f.DTIRatio > DTIRejectCeiling {
		reasons = append(reasons, fmt.Sprintf("your debt-to-income ratio (%.1f%%) exceeds our maximum threshold of %.0f%%", f.DTIRatio, DTIRejectCeiling))
	}
	if f.Vector.Overall > 0 && f.Vector.Overall < ThresholdRejected {
		reasons = append(reasons, fmt.Sprintf("overall assessment confidence (%d%%) is below our approval threshold", f.Vector.Overall))
	}

	return reasons
}

// RejectionExplanation joins all currently-true rejection reasons, falling
// back to a generic message when none individually apply.
func RejectionExplanation(f Facts) string {
	reasons := RejectionReasons(f)
	if len(reasons) == 0 {
		return "your application did not meet our lending criteria at this time"
	}
	return strings.Join(reasons, ", and ")
}
