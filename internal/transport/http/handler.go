package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"lendgate/internal/identity"
	"lendgate/internal/intent"
	"lendgate/internal/sanction"
	"lendgate/internal/session"
	"lendgate/internal/underwriting"
	dErrors "lendgate/pkg/domain-errors"
	"lendgate/pkg/platform/httputil"
	"lendgate/pkg/requestcontext"
)

// Service defines the interface for workflow operations.
type Service interface {
	SubmitIntent(ctx context.Context, in intent.Input) (intent.Result, session.Snapshot)
	VerifyIdentityManual(ctx context.Context, taxID string) (identity.Result, session.Snapshot, error)
	VerifyIdentityFederated(ctx context.Context) (identity.Result, session.Snapshot, error)
	RunUnderwriting(ctx context.Context) (underwriting.CreditResult, session.Snapshot)
	SubmitSalarySlip(ctx context.Context, filename string) (underwriting.SlipResult, session.Snapshot)
	CanGenerateSanction() bool
	GenerateSanction(ctx context.Context) (*sanction.Letter, session.Snapshot)
	Snapshot() session.Snapshot
	RejectionExplanation() string
	Reset(ctx context.Context) session.Snapshot
}

// Handler wires workflow endpoints to the workflow service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a workflow handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts workflow endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/workflow", func(r chi.Router) {
		r.Get("/session", h.HandleSession)
		r.Post("/session/reset", h.HandleReset)
		r.Get("/session/explanation", h.HandleExplanation)

		r.Post("/intent", h.HandleIntent)
		r.Post("/identity/verify", h.HandleVerifyManual)
		r.Post("/identity/federated", h.HandleVerifyFederated)
		r.Post("/underwriting/evaluate", h.HandleUnderwriting)
		r.Post("/underwriting/salary-slip", h.HandleSalarySlip)
		r.Get("/sanction/eligibility", h.HandleSanctionEligibility)
		r.Post("/sanction", h.HandleSanctionGenerate)
	})
}

// HandleSession handles GET /workflow/session requests.
func (h *Handler) HandleSession(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.Snapshot())
}

// HandleReset handles POST /workflow/session/reset requests.
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	snap := h.service.Reset(ctx)
	h.logger.InfoContext(ctx, "session reset requested",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", snap.SessionID,
	)
	httputil.WriteJSON(w, http.StatusOK, snap)
}

// HandleExplanation handles GET /workflow/session/explanation requests.
func (h *Handler) HandleExplanation(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, explanationResponse{
		Explanation: h.service.RejectionExplanation(),
	})
}

// HandleIntent handles POST /workflow/intent requests.
func (h *Handler) HandleIntent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[IntentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, snap := h.service.SubmitIntent(ctx, req.Input())
	httputil.WriteJSON(w, http.StatusOK, intentResponse{Result: result, Session: snap})
}

// HandleVerifyManual handles POST /workflow/identity/verify requests.
func (h *Handler) HandleVerifyManual(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[VerifyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, snap, err := h.service.VerifyIdentityManual(ctx, req.TaxID)
	if err != nil {
		h.logger.ErrorContext(ctx, "manual verification failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "identity verified",
		"request_id", requestID,
		"method", result.Method,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, verifyResponse{Result: result, Session: snap})
}

// HandleVerifyFederated handles POST /workflow/identity/federated requests.
func (h *Handler) HandleVerifyFederated(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	result, snap, err := h.service.VerifyIdentityFederated(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "federated verification failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "identity verified",
		"request_id", requestID,
		"method", result.Method,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, verifyResponse{Result: result, Session: snap})
}

// HandleUnderwriting handles POST /workflow/underwriting/evaluate requests.
func (h *Handler) HandleUnderwriting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	result, snap := h.service.RunUnderwriting(ctx)
	httputil.WriteJSON(w, http.StatusOK, creditResponse{CreditResult: result, Session: snap})
}

// HandleSalarySlip handles POST /workflow/underwriting/salary-slip requests.
func (h *Handler) HandleSalarySlip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SalarySlipRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, snap := h.service.SubmitSalarySlip(ctx, req.Filename)
	httputil.WriteJSON(w, http.StatusOK, slipResponse{SlipResult: result, Session: snap})
}

// HandleSanctionEligibility handles GET /workflow/sanction/eligibility requests.
func (h *Handler) HandleSanctionEligibility(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, eligibilityResponse{
		Eligible: h.service.CanGenerateSanction(),
	})
}

// HandleSanctionGenerate handles POST /workflow/sanction requests. A blocked
// generation maps to 412: the journal records the attempt either way.
func (h *Handler) HandleSanctionGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	letter, snap := h.service.GenerateSanction(ctx)
	if letter == nil {
		h.logger.InfoContext(ctx, "sanction generation blocked",
			"request_id", requestID,
			"overall_confidence", snap.Confidence.Overall,
			"decision_state", snap.DecisionState,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodePrecondition,
			"approval threshold not met - sanction letter cannot be generated"))
		return
	}

	h.logger.InfoContext(ctx, "sanction letter issued",
		"request_id", requestID,
		"sanction_id", letter.ID,
	)
	httputil.WriteJSON(w, http.StatusCreated, sanctionResponse{Letter: letter, Session: snap})
}
