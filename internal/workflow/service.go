// Package workflow is the façade over the decisioning pipeline. It owns the
// single live session and serializes all step invocations, so the governor
// always evaluates a settled confidence vector even when HTTP handlers
// overlap.
package workflow

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"

	"lendgate/internal/decision"
	"lendgate/internal/identity"
	"lendgate/internal/intent"
	"lendgate/internal/journal"
	"lendgate/internal/platform/metrics"
	"lendgate/internal/sanction"
	"lendgate/internal/session"
	"lendgate/internal/signals"
	"lendgate/internal/underwriting"
	"lendgate/pkg/requestcontext"
)

// Service coordinates the step handlers over one session.
type Service struct {
	mu sync.Mutex

	logger  *slog.Logger
	rng     *rand.Rand
	metrics *metrics.Metrics

	st *session.State

	intent       *intent.Service
	identity     *identity.Service
	underwriting *underwriting.Service
	sanction     *sanction.Service
	orch         *decision.Orchestrator
}

// New wires the step handlers and opens the initial session. The rand source
// seeds both identifier minting and band rolls; pass a fixed-seed source for
// reproducible runs. baseRate prices sanctioned loans (non-positive falls
// back to the default).
func New(ctx context.Context, logger *slog.Logger, source signals.Source, rng *rand.Rand, m *metrics.Metrics, baseRate float64) *Service {
	orch := decision.NewOrchestrator(logger, m)
	ident := identity.NewService(logger, source, orch, m)
	s := &Service{
		logger:       logger,
		rng:          rng,
		metrics:      m,
		intent:       intent.NewService(logger, orch, m),
		identity:     ident,
		underwriting: underwriting.NewService(logger, source, ident, orch, m),
		sanction:     sanction.NewService(logger, m, baseRate),
		orch:         orch,
	}
	s.st = session.New(requestcontext.Now(ctx), rng)
	return s
}

// SubmitIntent runs the sales step with the declared inputs.
func (s *Service) SubmitIntent(ctx context.Context, in intent.Input) (intent.Result, session.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.intent.Process(ctx, s.st, in)
	return res, s.st.Snapshot()
}

// VerifyIdentityManual runs the document KYC path.
func (s *Service) VerifyIdentityManual(ctx context.Context, taxID string) (identity.Result, session.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.identity.VerifyManual(ctx, s.st, taxID)
	return res, s.st.Snapshot(), err
}

// VerifyIdentityFederated runs the OAuth KYC path.
func (s *Service) VerifyIdentityFederated(ctx context.Context) (identity.Result, session.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.identity.VerifyFederated(ctx, s.st)
	return res, s.st.Snapshot(), err
}

// RunUnderwriting runs the preliminary credit and DTI evaluation.
func (s *Service) RunUnderwriting(ctx context.Context) (underwriting.CreditResult, session.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.underwriting.EvaluateCredit(ctx, s.st)
	return res, s.st.Snapshot()
}

// SubmitSalarySlip runs the underwriting document pass.
func (s *Service) SubmitSalarySlip(ctx context.Context, filename string) (underwriting.SlipResult, session.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if filename == "" {
		filename = "salary_slip.pdf"
	}
	res := s.underwriting.ProcessSalarySlip(ctx, s.st, filename)
	return res, s.st.Snapshot()
}

// CanGenerateSanction reports whether the sanction preconditions hold.
func (s *Service) CanGenerateSanction() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sanction.CanGenerate(s.st)
}

// GenerateSanction produces a sanction letter, or nil when blocked.
func (s *Service) GenerateSanction(ctx context.Context) (*sanction.Letter, session.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	letter := s.sanction.Generate(ctx, s.st)
	return letter, s.st.Snapshot()
}

// Snapshot returns a defensive copy of the current session state.
func (s *Service) Snapshot() session.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Snapshot()
}

// RejectionExplanation lists the currently-true rejection reasons in prose.
func (s *Service) RejectionExplanation() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orch.Explain(s.st)
}

// Reset replaces the session wholesale: new identifier, zeroed confidence,
// fresh journal. Nothing from the previous session survives.
func (s *Service) Reset(ctx context.Context) session.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := requestcontext.Now(ctx)
	prev := s.st.ID
	s.st = session.New(now, s.rng)
	s.st.Record(now, journal.ActorSystem, journal.ActionReset,
		"session reset - all application state cleared", "previous session: "+string(prev))
	s.metrics.IncSessionReset()

	if s.logger != nil {
		s.logger.InfoContext(ctx, "session reset",
			"previous_session_id", prev,
			"session_id", s.st.ID,
		)
	}
	return s.st.Snapshot()
}
