// Package sanction produces the approval artifact. Generation is gated on
// the approval threshold and decision state; a blocked attempt is itself
// journaled so the trail shows every time the applicant asked too early.
package sanction

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"lendgate/internal/decision"
	"lendgate/internal/journal"
	"lendgate/internal/platform/metrics"
	"lendgate/internal/session"
	"lendgate/internal/underwriting"
	"lendgate/pkg/domain"
	"lendgate/pkg/requestcontext"
)

// Pricing constants. BaseAnnualRate is the anchor before the credit-tier
// adjustment; ProcessingFeeRate applies to the principal.
const (
	BaseAnnualRate    = 10.5
	ProcessingFeeRate = 0.02
	ValidityDays      = 30
)

// Service generates sanction letters.
type Service struct {
	logger   *slog.Logger
	metrics  *metrics.Metrics
	baseRate float64
}

// NewService constructs the generator. A non-positive baseRate falls back to
// BaseAnnualRate.
func NewService(logger *slog.Logger, m *metrics.Metrics, baseRate float64) *Service {
	if baseRate <= 0 {
		baseRate = BaseAnnualRate
	}
	return &Service{logger: logger, metrics: m, baseRate: baseRate}
}

// CanGenerate reports whether the preconditions for a letter currently hold.
func CanGenerate(st *session.State) bool {
	return st.Confidence.Overall >= decision.ThresholdApproved &&
		st.Decision == domain.DecisionApproved
}

// InterestRate prices the loan from the bureau score: the base rate less a
// discount for strong tiers, plus a premium below 650. An unknown score
// prices as mid-tier. Rounded to one decimal.
func InterestRate(baseRate float64, creditScore int) float64 {
	rate := baseRate
	if creditScore == 0 {
		creditScore = 700
	}
	switch {
	case creditScore >= 800:
		rate -= 1.5
	case creditScore >= 750:
		rate -= 1.0
	case creditScore >= 700:
		rate -= 0.5
	case creditScore < 650:
		rate += 2.0
	}
	return math.Round(rate*10) / 10
}

// Generate produces a letter, or nil when the preconditions do not hold.
// Each successful call mints a fresh letter; completion marking is
// idempotent across calls.
func (s *Service) Generate(ctx context.Context, st *session.State) *Letter {
	now := requestcontext.Now(ctx)
	s.metrics.IncStepRun(string(domain.StepSanction))

	if !CanGenerate(st) {
		st.Record(now, journal.ActorSanction, journal.ActionBlocked,
			fmt.Sprintf("cannot generate - confidence at %d%%", st.Confidence.Overall),
			fmt.Sprintf("required: %d%% and APPROVED state", decision.ThresholdApproved))
		s.metrics.IncSanctionBlocked()
		if s.logger != nil {
			s.logger.WarnContext(ctx, "sanction generation blocked",
				"session_id", st.ID,
				"overall_confidence", st.Confidence.Overall,
				"decision_state", st.Decision,
			)
		}
		return nil
	}

	st.ActiveStep = domain.StepSanction
	st.Record(now, journal.ActorSanction, journal.ActionTriggered,
		"generating sanction letter", "")

	tenure := st.Applicant.TenureMonths
	if tenure <= 0 {
		tenure = underwriting.DefaultTenureMonths
	}
	rate := InterestRate(s.baseRate, st.Verified.CreditScore)
	emi := math.Round(underwriting.EMI(st.Applicant.LoanAmount, tenure, rate))
	fee := math.Round(st.Applicant.LoanAmount * ProcessingFeeRate)

	rationale := st.Risk.Rationale
	if rationale == "" {
		rationale = "profile meets all approval criteria with acceptable risk parameters"
	}

	letter := &Letter{
		ID:        domain.NewSanctionID(now),
		SessionID: st.ID,
		Status:    "APPROVED",
		IssuedAt:  now,
		ValidTill: now.AddDate(0, 0, ValidityDays),
		Applicant: Applicant{
			Name:        st.ApplicantName(),
			TaxID:       st.Applicant.TaxID,
			CreditScore: st.Verified.CreditScore,
		},
		Loan: LoanTerms{
			Amount:        st.Applicant.LoanAmount,
			TenureMonths:  tenure,
			InterestRate:  rate,
			EMI:           emi,
			ProcessingFee: fee,
			TotalPayable:  emi * float64(tenure),
		},
		Confidence:    st.Confidence,
		RiskLevel:     st.Risk.Level,
		RiskRationale: rationale,
		Terms:         append([]string{}, standardTerms...),
	}

	st.Record(now, journal.ActorSanction, journal.ActionGenerated,
		fmt.Sprintf("sanction letter: %s", letter.ID),
		fmt.Sprintf("loan amount: %.0f @ %.1f%% p.a.", letter.Loan.Amount, rate))
	st.MarkCompleted(domain.StepSanction)
	s.metrics.IncSanctionGenerated()

	if s.logger != nil {
		s.logger.InfoContext(ctx, "sanction letter generated",
			"session_id", st.ID,
			"sanction_id", letter.ID,
			"interest_rate", rate,
			"emi", emi,
		)
	}
	return letter
}
