// Package metrics provides Prometheus observability for the decisioning
// workflow. All methods are nil-safe so services can run without metrics in
// tests.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	StepRuns           *prometheus.CounterVec
	StateTransitions   *prometheus.CounterVec
	OverallConfidence  prometheus.Gauge
	SanctionsGenerated prometheus.Counter
	SanctionsBlocked   prometheus.Counter
	SessionResets      prometheus.Counter
}

// New creates and registers all metrics with the default registry.
func New() *Metrics {
	return &Metrics{
		StepRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lendgate_step_runs_total",
			Help: "Total step handler invocations by step",
		}, []string{"step"}),

		StateTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lendgate_decision_transitions_total",
			Help: "Total decision state transitions by previous and new state",
		}, []string{"from", "to"}),

		OverallConfidence: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "lendgate_overall_confidence",
			Help: "Current overall confidence of the active session",
		}),

		SanctionsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lendgate_sanctions_generated_total",
			Help: "Total sanction letters generated",
		}),

		SanctionsBlocked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lendgate_sanctions_blocked_total",
			Help: "Total sanction generation attempts blocked by preconditions",
		}),

		SessionResets: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lendgate_session_resets_total",
			Help: "Total explicit session resets",
		}),
	}
}

// IncStepRun records one step handler invocation.
func (m *Metrics) IncStepRun(step string) {
	if m != nil {
		m.StepRuns.WithLabelValues(step).Inc()
	}
}

// ObserveTransition records a decision state transition.
func (m *Metrics) ObserveTransition(from, to string) {
	if m != nil {
		m.StateTransitions.WithLabelValues(from, to).Inc()
	}
}

// SetOverallConfidence publishes the recomputed overall score.
func (m *Metrics) SetOverallConfidence(overall int) {
	if m != nil {
		m.OverallConfidence.Set(float64(overall))
	}
}

// IncSanctionGenerated records a successful sanction letter generation.
func (m *Metrics) IncSanctionGenerated() {
	if m != nil {
		m.SanctionsGenerated.Inc()
	}
}

// IncSanctionBlocked records a blocked sanction generation attempt.
func (m *Metrics) IncSanctionBlocked() {
	if m != nil {
		m.SanctionsBlocked.Inc()
	}
}

// IncSessionReset records an explicit session reset.
func (m *Metrics) IncSessionReset() {
	if m != nil {
		m.SessionResets.Inc()
	}
}
