// Package intent is the sales step: it scores the applicant's declared loan
// intent. Each call may carry any subset of the inputs; contributions from
// the supplied inputs accumulate on the intent dimension until the step
// reaches its sufficiency threshold.
package intent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"lendgate/internal/confidence"
	"lendgate/internal/decision"
	"lendgate/internal/journal"
	"lendgate/internal/platform/metrics"
	"lendgate/internal/session"
	"lendgate/pkg/domain"
	"lendgate/pkg/requestcontext"
)

// CompletionThreshold is the intent confidence at which the step counts as
// completed.
const CompletionThreshold = 75

// Input carries the declared intent fields; every field is optional.
// Range validation against business bounds is the caller's responsibility —
// out-of-band values are accepted and scored with the non-standard bands.
type Input struct {
	LoanAmount     *float64
	TenureMonths   *int
	Purpose        string
	EmploymentType string
	IncomeRange    string
}

// Result reports the updated intent confidence and the factors that
// contributed in this call.
type Result struct {
	IntentConfidence int      `json:"intent_confidence"`
	Factors          []string `json:"factors"`
}

// Service is the sales step handler.
type Service struct {
	logger  *slog.Logger
	orch    *decision.Orchestrator
	metrics *metrics.Metrics
}

func NewService(logger *slog.Logger, orch *decision.Orchestrator, m *metrics.Metrics) *Service {
	return &Service{logger: logger, orch: orch, metrics: m}
}

var (
	lowRiskPurposes = map[string]bool{"home_improvement": true, "education": true, "medical": true}
	medRiskPurposes = map[string]bool{"wedding": true, "travel": true, "debt_consolidation": true}
)

// Process ingests the supplied inputs, adds their score contributions to the
// intent dimension (capped at store time), and runs a full orchestration
// cycle.
func (s *Service) Process(ctx context.Context, st *session.State, in Input) Result {
	now := requestcontext.Now(ctx)
	s.metrics.IncStepRun(string(domain.StepSales))

	st.ActiveStep = domain.StepSales
	st.Record(now, journal.ActorSales, journal.ActionTriggered,
		"processing customer intent and loan requirements", "")

	score := 0
	var factors []string

	if in.LoanAmount != nil {
		amount := *in.LoanAmount
		st.Applicant.LoanAmount = amount
		switch {
		case amount >= 50000 && amount <= 2500000:
			score += 18
			factors = append(factors, "loan amount within eligible range")
		case amount > 2500000:
			score += 12
			factors = append(factors, "high loan amount - additional verification needed")
		default:
			score += 15
			factors = append(factors, "small loan amount")
		}
		st.Record(now, journal.ActorSales, journal.ActionCaptured,
			fmt.Sprintf("loan amount: %.0f", amount), "")
	}

	if in.TenureMonths != nil {
		tenure := *in.TenureMonths
		st.Applicant.TenureMonths = tenure
		if tenure >= 12 && tenure <= 60 {
			score += 18
			factors = append(factors, "tenure within standard range")
		} else {
			score += 10
			factors = append(factors, "non-standard tenure requested")
		}
		st.Record(now, journal.ActorSales, journal.ActionCaptured,
			fmt.Sprintf("tenure: %d months", tenure), "")
	}

	if in.Purpose != "" {
		st.Applicant.Purpose = in.Purpose
		switch {
		case lowRiskPurposes[in.Purpose]:
			score += 22
			factors = append(factors, "low-risk loan purpose")
		case medRiskPurposes[in.Purpose]:
			score += 17
			factors = append(factors, "standard loan purpose")
		default:
			// Unrecognized purposes degrade to the lowest band.
			score += 12
			factors = append(factors, "purpose noted")
		}
		st.Record(now, journal.ActorSales, journal.ActionCaptured,
			"purpose: "+strings.ReplaceAll(in.Purpose, "_", " "), "")
	}

	if in.EmploymentType != "" {
		st.Applicant.EmploymentType = in.EmploymentType
		switch in.EmploymentType {
		case "salaried":
			score += 22
			factors = append(factors, "salaried employment - stable income expected")
		case "self-employed":
			score += 16
			factors = append(factors, "self-employed - income verification important")
		default:
			// Business owners and unrecognized categories share the lowest band.
			score += 14
			factors = append(factors, "business or undeclared employment - additional documentation may be required")
		}
		st.Record(now, journal.ActorSales, journal.ActionCaptured,
			"employment: "+in.EmploymentType, "")
	}

	if in.IncomeRange != "" {
		st.Applicant.IncomeRange = in.IncomeRange
		st.Applicant.MonthlyIncome = parseIncomeRange(in.IncomeRange)
		score += 12
		factors = append(factors, "income range provided")
		st.Record(now, journal.ActorSales, journal.ActionCaptured,
			"income range: "+in.IncomeRange, "")
	}

	// The running value itself is capped, so the dimension never needs
	// uncapping later.
	updated := confidence.Clamp(confidence.DimensionIntent, st.Confidence.Intent+score)
	delta := updated - st.Confidence.Intent
	st.Confidence.Intent = updated

	st.Record(now, journal.ActorSales, journal.ActionConfidenceUpdate,
		fmt.Sprintf("intent confidence: +%d%% -> %d%%", delta, updated),
		strings.Join(factors, "; "))

	if st.Confidence.Intent >= CompletionThreshold && st.MarkCompleted(domain.StepSales) {
		st.Record(now, journal.ActorSales, journal.ActionComplete,
			"intent capture complete - sufficient data collected", "")
	}

	s.orch.Run(ctx, st)

	if s.logger != nil {
		s.logger.InfoContext(ctx, "intent processed",
			"session_id", st.ID,
			"intent_confidence", st.Confidence.Intent,
			"contributions", len(factors),
		)
	}

	return Result{IntentConfidence: st.Confidence.Intent, Factors: factors}
}

// parseIncomeRange maps a declared bracket to its midpoint for downstream
// income math.
func parseIncomeRange(r string) float64 {
	switch r {
	case "0-25000":
		return 12500
	case "25000-50000":
		return 37500
	case "50000-100000":
		return 75000
	case "100000+":
		return 150000
	default:
		return 50000
	}
}
