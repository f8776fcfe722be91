// Package identity is the verification step. It acquires KYC evidence over
// one of two alternative paths — a manual document lookup or a federated
// OAuth provider — and feeds the resulting bureau score into the credit
// sub-step. The federated path earns a higher identity confidence band,
// modeling its stronger provenance guarantee.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"lendgate/internal/confidence"
	"lendgate/internal/decision"
	"lendgate/internal/journal"
	"lendgate/internal/platform/metrics"
	"lendgate/internal/session"
	"lendgate/internal/signals"
	"lendgate/pkg/domain"
	dErrors "lendgate/pkg/domain-errors"
	"lendgate/pkg/platform/sentinel"
	"lendgate/pkg/requestcontext"
)

// KYC acquisition methods, recorded on the profile and the document status.
const (
	MethodManual    = "manual"
	MethodFederated = "federated_oauth"
)

// Result reports a completed verification.
type Result struct {
	Verified bool            `json:"verified"`
	Method   string          `json:"method"`
	Profile  signals.Profile `json:"profile"`
}

// Service is the verification step handler.
type Service struct {
	logger  *slog.Logger
	source  signals.Source
	orch    *decision.Orchestrator
	metrics *metrics.Metrics
}

func NewService(logger *slog.Logger, source signals.Source, orch *decision.Orchestrator, m *metrics.Metrics) *Service {
	return &Service{logger: logger, source: source, orch: orch, metrics: m}
}

// VerifyManual runs the document path. A missing tax identifier is
// synthesized; an identifier unknown to the registry gets a synthesized
// profile. Calling either path after completion overwrites the earlier
// profile and confidence — later call wins.
func (s *Service) VerifyManual(ctx context.Context, st *session.State, taxID string) (Result, error) {
	now := requestcontext.Now(ctx)
	s.metrics.IncStepRun(string(domain.StepIdentity))

	st.ActiveStep = domain.StepIdentity
	st.Record(now, journal.ActorVerification, journal.ActionTriggered,
		"initiating KYC verification", "")
	st.Record(now, journal.ActorVerification, journal.ActionAPICall,
		"connecting to customer registry", "")

	normalized := strings.ToUpper(strings.TrimSpace(taxID))
	if normalized == "" {
		normalized = s.source.SynthesizeTaxID()
	}
	st.Applicant.TaxID = normalized

	profile, ok, err := s.source.LookupProfile(ctx, normalized)
	if err != nil {
		return Result{}, wrapSourceErr(err, "registry lookup failed")
	}
	if !ok {
		profile, err = s.source.SynthesizeProfile(ctx, normalized)
		if err != nil {
			return Result{}, dErrors.Wrap(err, dErrors.CodeInternal, "profile synthesis failed")
		}
	}
	profile.KYCMethod = MethodManual

	s.applyProfile(st, now, profile, MethodManual)
	st.Record(now, journal.ActorVerification, journal.ActionVerified,
		fmt.Sprintf("tax id: %s - %s", normalized, profile.Name),
		"KYC verification successful")

	// Capped at 99: 1% residual document fraud risk is never bought back.
	boost := s.source.Between(85, 94)
	st.Confidence.Identity = confidence.Clamp(confidence.DimensionIdentity, boost)
	st.Record(now, journal.ActorVerification, journal.ActionConfidenceUpdate,
		fmt.Sprintf("identity confidence -> %d%%", st.Confidence.Identity),
		"KYC verification complete (1% residual fraud risk retained)")

	s.finish(ctx, st, profile)
	return Result{Verified: true, Method: MethodManual, Profile: profile}, nil
}

// VerifyFederated runs the OAuth path. The identifier is always synthesized
// and the provider also shares address evidence; profile and address are
// gathered concurrently.
func (s *Service) VerifyFederated(ctx context.Context, st *session.State) (Result, error) {
	now := requestcontext.Now(ctx)
	s.metrics.IncStepRun(string(domain.StepIdentity))

	st.ActiveStep = domain.StepIdentity
	st.Record(now, journal.ActorVerification, journal.ActionTriggered,
		"initiating federated OAuth verification", "")
	st.Record(now, journal.ActorVerification, journal.ActionOAuthInit,
		"connecting to federated identity provider", "")

	taxID := s.source.SynthesizeTaxID()
	st.Applicant.TaxID = taxID

	var (
		profile signals.Profile
		addr    signals.Address
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// The identifier is freshly minted, so the registry is never consulted.
		p, err := s.source.SynthesizeProfile(gctx, taxID)
		if err != nil {
			return err
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		a, err := s.source.FetchAddress(gctx)
		if err != nil {
			return err
		}
		addr = a
		return nil
	})
	if err := g.Wait(); err != nil {
		return Result{}, wrapSourceErr(err, "federated evidence gathering failed")
	}

	profile.Address = &addr
	profile.KYCMethod = MethodFederated

	s.applyProfile(st, now, profile, MethodFederated)
	st.Record(now, journal.ActorVerification, journal.ActionOAuthSuccess,
		"federated authentication successful",
		"user authorized data sharing via OAuth 2.0 flow")
	st.Record(now, journal.ActorVerification, journal.ActionVerified,
		fmt.Sprintf("tax id: %s | name: %s | dob: %s", taxID, profile.Name, profile.DateOfBirth),
		fmt.Sprintf("address verified: %s, %s", addr.City, addr.State))

	// Deliberately above the manual band: OAuth plus provider verification.
	boost := s.source.Between(94, 98)
	st.Confidence.Identity = confidence.Clamp(confidence.DimensionIdentity, boost)
	st.Record(now, journal.ActorVerification, journal.ActionConfidenceUpdate,
		fmt.Sprintf("identity confidence -> %d%%", st.Confidence.Identity),
		"federated OAuth verification provides higher confidence than manual upload")

	s.finish(ctx, st, profile)
	return Result{Verified: true, Method: MethodFederated, Profile: profile}, nil
}

// wrapSourceErr translates signal-source failures into coded errors. Modeled
// outages carry sentinel.ErrUnavailable and keep that fact in the message.
func wrapSourceErr(err error, msg string) error {
	if errors.Is(err, sentinel.ErrUnavailable) {
		msg += ": provider unavailable"
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

// applyProfile records the verified profile and marks the identity document
// as submitted. A repeat verification overwrites the earlier profile.
func (s *Service) applyProfile(st *session.State, now time.Time, profile signals.Profile, method string) {
	p := profile
	st.Verified.TaxIDVerified = true
	st.Verified.Profile = &p
	st.Applicant.Name = profile.Name
	st.Documents.TaxDocument = session.DocumentStatus{
		Submitted:   true,
		Method:      method,
		SubmittedAt: now,
	}
}

func (s *Service) finish(ctx context.Context, st *session.State, profile signals.Profile) {
	now := requestcontext.Now(ctx)

	if profile.CreditScore > 0 {
		s.ApplyCreditScore(ctx, st, profile.CreditScore)
	}

	if st.MarkCompleted(domain.StepIdentity) {
		st.Record(now, journal.ActorVerification, journal.ActionComplete,
			"identity verification complete", "")
	}

	s.orch.Run(ctx, st)

	if s.logger != nil {
		s.logger.InfoContext(ctx, "identity verified",
			"session_id", st.ID,
			"method", profile.KYCMethod,
			"identity_confidence", st.Confidence.Identity,
			"credit_score", profile.CreditScore,
		)
	}
}
