package domain

// DecisionState is the lifecycle stage of a loan application session.
// Exactly one value is active per session, recomputed from scratch on every
// orchestration cycle rather than patched incrementally.
type DecisionState string

const (
	DecisionPending    DecisionState = "PENDING"
	DecisionProcessing DecisionState = "PROCESSING"
	DecisionReview     DecisionState = "REVIEW"
	DecisionApproved   DecisionState = "APPROVED"
	DecisionRejected   DecisionState = "REJECTED"
)

// RiskLevel is the qualitative risk label, an axis independent of the
// decision state.
type RiskLevel string

const (
	RiskLow     RiskLevel = "LOW"
	RiskMedium  RiskLevel = "MEDIUM"
	RiskHigh    RiskLevel = "HIGH"
	RiskUnknown RiskLevel = "UNKNOWN"
)
