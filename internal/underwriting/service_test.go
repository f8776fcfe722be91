package underwriting

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"lendgate/internal/decision"
	"lendgate/internal/identity"
	"lendgate/internal/journal"
	"lendgate/internal/session"
	"lendgate/internal/signals"
	"lendgate/pkg/domain"
	"lendgate/pkg/requestcontext"
)

// =============================================================================
// Underwriting Service Test Suite
// =============================================================================
// Justification for unit tests: the two passes apply opposite update policies
// to the income dimension (never-regress vs overwrite), and the OCR extraction
// must be deterministic per session. Both contracts need state-level checks.

type UnderwritingServiceSuite struct {
	suite.Suite
	source  *signals.StaticSource
	service *Service
	ctx     context.Context
}

func TestUnderwritingServiceSuite(t *testing.T) {
	suite.Run(t, new(UnderwritingServiceSuite))
}

func (s *UnderwritingServiceSuite) SetupTest() {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), now)
	s.source = &signals.StaticSource{
		Profile: signals.Profile{Name: "Arun Verma", CreditScore: 760},
	}
	orch := decision.NewOrchestrator(nil, nil)
	ident := identity.NewService(nil, s.source, orch, nil)
	s.service = NewService(nil, s.source, ident, orch, nil)
}

func (s *UnderwritingServiceSuite) newState() *session.State {
	return session.New(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), rand.New(rand.NewSource(1)))
}

// =============================================================================
// EMI
// =============================================================================

func (s *UnderwritingServiceSuite) TestEMI() {
	s.Run("standard amortization", func() {
		// 500000 over 36 months at 12.5% p.a. is roughly 16726 per month.
		emi := EMI(500000, 36, 12.5)
		s.InDelta(16726, emi, 10)
	})

	s.Run("longer tenure lowers the installment", func() {
		s.Less(EMI(500000, 60, 12.5), EMI(500000, 36, 12.5))
	})
}

// =============================================================================
// Preliminary Credit Evaluation
// =============================================================================

func (s *UnderwritingServiceSuite) TestEvaluateCredit() {
	s.Run("pulls bureau score from the verified profile", func() {
		st := s.newState()
		st.Verified.Profile = &signals.Profile{CreditScore: 760}

		res := s.service.EvaluateCredit(s.ctx, st)
		s.Equal(760, res.CreditScore)
		s.Equal(session.TierVeryGood, st.Verified.CreditTier)
		s.Equal(82, st.Confidence.Credit)
	})

	s.Run("does not rerun the credit sub-step once scored", func() {
		st := s.newState()
		st.Verified.CreditScore = 820
		st.Verified.Profile = &signals.Profile{CreditScore: 600}

		res := s.service.EvaluateCredit(s.ctx, st)
		s.Equal(820, res.CreditScore)
	})

	s.Run("derives dti from loan and declared income", func() {
		st := s.newState()
		st.Applicant.LoanAmount = 500000
		st.Applicant.TenureMonths = 36
		st.Applicant.MonthlyIncome = 85000

		res := s.service.EvaluateCredit(s.ctx, st)
		// EMI ~16726 against 85000: below the healthy 30% line.
		s.InDelta(19.7, res.DTIRatio, 0.5)
		s.Equal(58, st.Confidence.Income)
	})

	s.Run("missing tenure defaults to 36 months", func() {
		st := s.newState()
		st.Applicant.LoanAmount = 500000
		st.Applicant.MonthlyIncome = 85000

		res := s.service.EvaluateCredit(s.ctx, st)
		s.Greater(res.DTIRatio, 0.0)
	})

	s.Run("dti above fifty flags a risk factor", func() {
		st := s.newState()
		st.Applicant.LoanAmount = 2000000
		st.Applicant.TenureMonths = 36
		st.Applicant.MonthlyIncome = 85000

		s.service.EvaluateCredit(s.ctx, st)
		s.Contains(st.Risk.Factors, FactorHighDTI)
	})

	s.Run("never lowers income confidence already earned", func() {
		st := s.newState()
		st.Confidence.Income = 88
		st.Applicant.LoanAmount = 500000
		st.Applicant.TenureMonths = 36
		st.Applicant.MonthlyIncome = 85000

		s.service.EvaluateCredit(s.ctx, st)
		s.Equal(88, st.Confidence.Income)
	})

	s.Run("does not mark the step completed", func() {
		st := s.newState()
		st.Applicant.LoanAmount = 500000
		st.Applicant.MonthlyIncome = 85000

		s.service.EvaluateCredit(s.ctx, st)
		s.False(st.IsCompleted(domain.StepUnderwriting))
	})
}

// =============================================================================
// Salary Slip Pass
// =============================================================================

func (s *UnderwritingServiceSuite) TestProcessSalarySlip() {
	s.Run("stores document status and extraction", func() {
		st := s.newState()
		st.Applicant.MonthlyIncome = 50000

		res := s.service.ProcessSalarySlip(s.ctx, st, "slip_march.pdf")

		s.True(st.Documents.SalarySlip.Submitted)
		s.Equal("slip_march.pdf", st.Documents.SalarySlip.Filename)
		s.True(st.Verified.IncomeVerified)
		s.Require().NotNil(st.Verified.SalarySlip)
		s.Greater(res.Slip.GrossSalary, 0.0)
		s.Greater(res.Slip.GrossSalary, res.Slip.NetSalary)
		s.True(st.IsCompleted(domain.StepUnderwriting))
	})

	s.Run("extraction is deterministic per session", func() {
		a := s.newState()
		b := s.newState()
		a.Applicant.MonthlyIncome = 50000
		b.Applicant.MonthlyIncome = 50000

		resA := s.service.ProcessSalarySlip(s.ctx, a, "slip.pdf")
		resB := s.service.ProcessSalarySlip(s.ctx, b, "slip.pdf")
		s.Equal(resA.Slip.GrossSalary, resB.Slip.GrossSalary)
		s.Equal(resA.Slip.OCRConfidence, resB.Slip.OCRConfidence)
	})

	s.Run("ocr confidence stays inside its band", func() {
		st := s.newState()
		s.service.ProcessSalarySlip(s.ctx, st, "slip.pdf")
		s.GreaterOrEqual(st.Verified.SalarySlip.OCRConfidence, 91)
		s.LessOrEqual(st.Verified.SalarySlip.OCRConfidence, 98)
	})

	s.Run("variance tier drives the income band", func() {
		st := s.newState()
		st.Applicant.MonthlyIncome = 50000

		res := s.service.ProcessSalarySlip(s.ctx, st, "slip.pdf")
		// StaticSource rolls resolve to the band's low bound.
		switch {
		case res.VariancePercent < 10:
			s.Equal(88, st.Confidence.Income)
		case res.VariancePercent < 25:
			s.Equal(82, st.Confidence.Income)
		default:
			s.Equal(75, st.Confidence.Income)
		}
	})

	s.Run("document evidence overwrites a higher estimate", func() {
		st := s.newState()
		st.Applicant.MonthlyIncome = 50000
		st.Confidence.Income = 92

		s.service.ProcessSalarySlip(s.ctx, st, "slip.pdf")
		s.Less(st.Confidence.Income, 92)
	})

	s.Run("uses profile employer when available", func() {
		st := s.newState()
		st.Verified.Profile = &signals.Profile{Employer: "TCS Limited"}

		res := s.service.ProcessSalarySlip(s.ctx, st, "slip.pdf")
		s.Equal("TCS Limited", res.Slip.Employer)
	})

	s.Run("journals the extraction lifecycle", func() {
		st := s.newState()
		s.service.ProcessSalarySlip(s.ctx, st, "slip.pdf")

		var sawProcessing, sawComplete bool
		for _, e := range st.Journal.Entries() {
			switch e.Action {
			case journal.ActionOCRProcessing:
				sawProcessing = true
			case journal.ActionOCRComplete:
				sawComplete = true
			}
		}
		s.True(sawProcessing)
		s.True(sawComplete)
	})
}
