package decision

import (
	"context"
	"fmt"
	"log/slog"

	"lendgate/internal/journal"
	"lendgate/internal/platform/metrics"
	"lendgate/internal/session"
	"lendgate/pkg/domain"
	"lendgate/pkg/requestcontext"
)

// Orchestrator applies the pure rules to a session and journals the outcome.
// Every step handler ends its call by running one full orchestration cycle so
// the governor always observes a settled confidence vector.
type Orchestrator struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewOrchestrator(logger *slog.Logger, m *metrics.Metrics) *Orchestrator {
	return &Orchestrator{logger: logger, metrics: m}
}

// Run recomputes overall confidence, the decision state, and the risk
// assessment, then selects the next recommended action. Transitions and
// stagnation are journaled as they happen.
func (o *Orchestrator) Run(ctx context.Context, st *session.State) NextAction {
	now := requestcontext.Now(ctx)

	overall, stagnant := st.Model.Recompute(&st.Confidence)
	if stagnant {
		st.Record(now, journal.ActorGovernor, journal.ActionFallbackAware,
			fmt.Sprintf("confidence stagnant at %d%% for %d cycles", overall, st.Model.StagnantFor()),
			"manual-review fallback available if needed")
	}
	o.metrics.SetOverallConfidence(overall)

	facts := FactsFrom(st)
	prev := st.Decision
	st.Decision = ClassifyState(facts)

	// Risk is recomputed even for rejected applications so the UI can still
	// display an assessment.
	st.Risk.Level, st.Risk.Rationale = AssessRisk(facts)

	if prev != st.Decision {
		st.Record(now, journal.ActorGovernor, journal.ActionStateChange,
			fmt.Sprintf("decision state: %s -> %s", prev, st.Decision),
			fmt.Sprintf("risk: %s", st.Risk.Level))
		o.metrics.ObserveTransition(string(prev), string(st.Decision))
	}

	st.Record(now, journal.ActorGovernor, journal.ActionEvaluate,
		"analyzing confidence vector for next action", "")

	weakest := st.Confidence.Weakest()
	st.Record(now, journal.ActorGovernor, journal.ActionStepTrigger,
		fmt.Sprintf("weakest dimension: %s (%d%%)", weakest, st.Confidence.Raw(weakest)),
		fmt.Sprintf("owning step: %s", OwningStep(weakest)))

	next := SelectNextAction(st.Confidence, st.IsCompleted)
	switch next.Kind {
	case ActionApprove:
		// Rejection rules take precedence over the approval threshold.
		if st.Decision != domain.DecisionRejected {
			o.transitionToApproved(ctx, st)
		}
	case ActionActivate:
		if next.Step != st.ActiveStep {
			st.ActiveStep = next.Step
			st.Record(now, journal.ActorGovernor, journal.ActionOrchestrate,
				fmt.Sprintf("activating step: %s", next.Step), next.Reason)
		}
	case ActionWait:
		st.Record(now, journal.ActorGovernor, journal.ActionStalled,
			fmt.Sprintf("all steps completed, overall confidence at %d%%", overall),
			"may require additional documentation or manual underwriter intervention")
	}

	if o.logger != nil {
		o.logger.DebugContext(ctx, "orchestration cycle complete",
			"session_id", st.ID,
			"overall", overall,
			"decision_state", st.Decision,
			"risk", st.Risk.Level,
			"next_action", next.Kind,
			"next_step", next.Step,
		)
	}

	return next
}

// transitionToApproved finalizes the approved state; no further step
// activation happens past this point.
func (o *Orchestrator) transitionToApproved(ctx context.Context, st *session.State) {
	now := requestcontext.Now(ctx)
	st.Decision = domain.DecisionApproved
	st.Risk.Level = domain.RiskLow
	st.ActiveStep = ""
	st.Record(now, journal.ActorGovernor, journal.ActionApproved,
		fmt.Sprintf("loan application approved with %d%% confidence", st.Confidence.Overall),
		"sanction letter can be generated")
}

// Explain produces the rejection explanation for the current facts.
func (o *Orchestrator) Explain(st *session.State) string {
	return RejectionExplanation(FactsFrom(st))
}
