package identity

import (
	"context"
	"fmt"

	"lendgate/internal/confidence"
	"lendgate/internal/journal"
	"lendgate/internal/session"
	"lendgate/pkg/requestcontext"
)

// Risk factor names recorded by the credit sub-step.
const (
	FactorFairCredit = "fair credit score - monitor closely"
	FactorLowCredit  = "low credit score - elevated default risk"
)

// ApplyCreditScore is the credit sub-step shared by both verification paths
// and by underwriting: it categorizes the bureau score, rolls a confidence
// value inside the category band, clamps at the credit cap, and maintains the
// credit-related risk factors. Strong categories retract any earlier credit
// factor.
func (s *Service) ApplyCreditScore(ctx context.Context, st *session.State, score int) {
	now := requestcontext.Now(ctx)

	var (
		tier session.CreditTier
		conf int
	)
	switch {
	case score >= 800:
		tier = session.TierExcellent
		conf = s.source.Between(91, 95)
		st.RemoveRiskFactorsContaining("credit")
	case score >= 750:
		tier = session.TierVeryGood
		conf = s.source.Between(82, 89)
		st.RemoveRiskFactorsContaining("credit")
	case score >= 700:
		tier = session.TierGood
		conf = s.source.Between(70, 77)
	case score >= 650:
		tier = session.TierFair
		conf = s.source.Between(52, 59)
		st.AddRiskFactor(FactorFairCredit)
	default:
		tier = session.TierPoor
		conf = s.source.Between(28, 37)
		st.AddRiskFactor(FactorLowCredit)
	}

	conf = confidence.Clamp(confidence.DimensionCredit, conf)

	st.Verified.CreditScore = score
	st.Verified.CreditTier = tier
	st.Confidence.Credit = conf

	st.Record(now, journal.ActorVerification, journal.ActionCreditScore,
		fmt.Sprintf("credit score: %d (%s)", score, tier),
		fmt.Sprintf("credit confidence: %d%% (model uncertainty: %d%%)", conf, 100-conf))
}
