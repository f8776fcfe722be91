// Package underwriting is the income-assessment step. It runs in two passes:
// a preliminary credit/DTI evaluation from declared figures, and a salary-slip
// document pass whose OCR extraction supersedes the preliminary estimate.
package underwriting

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"lendgate/internal/confidence"
	"lendgate/internal/decision"
	"lendgate/internal/identity"
	"lendgate/internal/journal"
	"lendgate/internal/platform/metrics"
	"lendgate/internal/session"
	"lendgate/internal/signals"
	"lendgate/pkg/domain"
	"lendgate/pkg/requestcontext"
)

// FactorHighDTI is recorded when the installment burden leaves little income
// headroom.
const FactorHighDTI = "high debt-to-income ratio"

// CreditResult reports the preliminary evaluation.
type CreditResult struct {
	CreditScore int     `json:"credit_score"`
	CreditTier  string  `json:"credit_tier,omitempty"`
	DTIRatio    float64 `json:"dti_ratio"`
}

// SlipResult reports the salary-slip pass.
type SlipResult struct {
	Slip            session.SalarySlip `json:"slip"`
	VariancePercent float64            `json:"variance_percent"`
}

// Service is the underwriting step handler.
type Service struct {
	logger   *slog.Logger
	source   signals.Source
	identity *identity.Service
	orch     *decision.Orchestrator
	metrics  *metrics.Metrics
}

func NewService(logger *slog.Logger, source signals.Source, ident *identity.Service, orch *decision.Orchestrator, m *metrics.Metrics) *Service {
	return &Service{logger: logger, source: source, identity: ident, orch: orch, metrics: m}
}

// EvaluateCredit runs the preliminary pass: pull the bureau score through the
// credit sub-step if it has not run yet, then derive the DTI ratio from the
// requested loan and declared income. Income confidence only ever moves up
// here; the authoritative figure comes from the document pass. Does not mark
// the step completed.
func (s *Service) EvaluateCredit(ctx context.Context, st *session.State) CreditResult {
	now := requestcontext.Now(ctx)
	s.metrics.IncStepRun(string(domain.StepUnderwriting))

	st.ActiveStep = domain.StepUnderwriting
	st.Record(now, journal.ActorUnderwriting, journal.ActionTriggered,
		"initiating credit and income evaluation", "")

	if st.Verified.CreditScore == 0 && st.Verified.Profile != nil && st.Verified.Profile.CreditScore > 0 {
		s.identity.ApplyCreditScore(ctx, st, st.Verified.Profile.CreditScore)
	}

	if st.Applicant.LoanAmount > 0 {
		income := st.DeclaredIncome()
		tenure := st.Applicant.TenureMonths
		if tenure <= 0 {
			tenure = DefaultTenureMonths
		}
		emi := EMI(st.Applicant.LoanAmount, tenure, DefaultAnnualRate)
		dti := emi / income * 100
		st.Verified.DTIRatio = dti

		impact := "healthy DTI ratio"
		if dti >= 40 {
			impact = "high DTI - may need review"
		}
		st.Record(now, journal.ActorUnderwriting, journal.ActionDTIAnalysis,
			fmt.Sprintf("estimated EMI: %.0f | DTI ratio: %.1f%%", emi, dti), impact)

		var band int
		switch {
		case dti < 30:
			band = s.source.Between(58, 65)
		case dti < 40:
			band = s.source.Between(48, 55)
		case dti < 50:
			band = s.source.Between(38, 45)
		default:
			band = 25
			st.AddRiskFactor(FactorHighDTI)
		}
		// Preliminary pass never lowers an income confidence already earned.
		if band > st.Confidence.Income {
			st.Confidence.Income = confidence.Clamp(confidence.DimensionIncome, band)
			st.Record(now, journal.ActorUnderwriting, journal.ActionConfidenceUpdate,
				fmt.Sprintf("income confidence -> %d%%", st.Confidence.Income),
				"based on preliminary DTI assessment")
		}
	}

	s.orch.Run(ctx, st)

	if s.logger != nil {
		s.logger.InfoContext(ctx, "credit evaluated",
			"session_id", st.ID,
			"credit_score", st.Verified.CreditScore,
			"dti_ratio", st.Verified.DTIRatio,
		)
	}
	return CreditResult{
		CreditScore: st.Verified.CreditScore,
		CreditTier:  string(st.Verified.CreditTier),
		DTIRatio:    st.Verified.DTIRatio,
	}
}

// ProcessSalarySlip runs the document pass: a synthetic OCR extraction seeded
// by the session identifier, compared against the declared income. The
// resulting income confidence overwrites any earlier estimate — documentary
// evidence supersedes declarations even when it is worse. Marks the step
// completed on first call.
func (s *Service) ProcessSalarySlip(ctx context.Context, st *session.State, filename string) SlipResult {
	now := requestcontext.Now(ctx)
	s.metrics.IncStepRun(string(domain.StepUnderwriting))

	st.ActiveStep = domain.StepUnderwriting
	st.Record(now, journal.ActorUnderwriting, journal.ActionTriggered,
		"processing salary slip document", "")

	st.Documents.SalarySlip = session.DocumentStatus{
		Submitted:   true,
		Filename:    filename,
		Method:      "upload",
		SubmittedAt: now,
	}
	st.Record(now, journal.ActorUnderwriting, journal.ActionOCRProcessing,
		"extracting salary data from document", "")

	slip := s.extractSlip(st, now)
	st.Verified.SalarySlip = &slip
	st.Verified.IncomeVerified = true
	st.Record(now, journal.ActorUnderwriting, journal.ActionOCRComplete,
		fmt.Sprintf("extracted net salary: %.0f from %s", slip.NetSalary, slip.Employer),
		fmt.Sprintf("OCR confidence: %d%%", slip.OCRConfidence))

	declared := st.DeclaredIncome()
	variance := math.Abs(slip.NetSalary-declared) / declared * 100

	var band int
	switch {
	case variance < 10:
		st.Record(now, journal.ActorUnderwriting, journal.ActionIncomeMatch,
			fmt.Sprintf("extracted income matches declaration (variance %.1f%%)", variance),
			"strong income verification")
		band = s.source.Between(88, 91)
	case variance < 25:
		st.Record(now, journal.ActorUnderwriting, journal.ActionIncomeVariance,
			fmt.Sprintf("moderate variance between extracted and declared income (%.1f%%)", variance),
			"income verified with minor discrepancy")
		band = s.source.Between(82, 87)
	default:
		st.Record(now, journal.ActorUnderwriting, journal.ActionIncomeMismatch,
			fmt.Sprintf("significant variance between extracted and declared income (%.1f%%)", variance),
			"income verified with notable discrepancy")
		band = s.source.Between(75, 81)
	}

	// Overwrite, not max: the document is now the authoritative income signal.
	st.Confidence.Income = confidence.Clamp(confidence.DimensionIncome, band)
	st.Record(now, journal.ActorUnderwriting, journal.ActionConfidenceUpdate,
		fmt.Sprintf("income confidence -> %d%%", st.Confidence.Income),
		fmt.Sprintf("based on OCR quality (%d%%) and variance (%.1f%%)", slip.OCRConfidence, variance))

	if st.MarkCompleted(domain.StepUnderwriting) {
		st.Record(now, journal.ActorUnderwriting, journal.ActionComplete,
			"underwriting assessment complete", "")
	}

	s.orch.Run(ctx, st)

	if s.logger != nil {
		s.logger.InfoContext(ctx, "salary slip processed",
			"session_id", st.ID,
			"net_salary", slip.NetSalary,
			"variance_percent", variance,
			"income_confidence", st.Confidence.Income,
		)
	}
	return SlipResult{Slip: slip, VariancePercent: variance}
}
