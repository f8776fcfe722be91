package session

import (
	"time"

	"lendgate/internal/confidence"
	"lendgate/internal/journal"
	"lendgate/pkg/domain"
)

// Snapshot is the read-only view handed to the UI collaborator. Everything is
// a defensive copy; holding a Snapshot never aliases live session state.
type Snapshot struct {
	SessionID      domain.SessionID     `json:"session_id"`
	StartedAt      time.Time            `json:"started_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
	DecisionState  domain.DecisionState `json:"decision_state"`
	Confidence     confidence.Vector    `json:"confidence"`
	Risk           Risk                 `json:"risk"`
	Applicant      ApplicantData        `json:"applicant"`
	Verified       VerifiedData         `json:"verified"`
	Documents      Documents            `json:"documents"`
	ActiveStep     domain.Step          `json:"active_step,omitempty"`
	CompletedSteps []domain.Step        `json:"completed_steps"`
	ActivityLog    []journal.Entry      `json:"activity_log"`
}

// Snapshot builds a defensive copy of the current state.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		SessionID:      s.ID,
		StartedAt:      s.StartedAt,
		UpdatedAt:      s.UpdatedAt,
		DecisionState:  s.Decision,
		Confidence:     s.Confidence,
		Applicant:      s.Applicant,
		Verified:       s.Verified,
		Documents:      s.Documents,
		ActiveStep:     s.ActiveStep,
		CompletedSteps: append([]domain.Step{}, s.Completed...),
		ActivityLog:    s.Journal.Entries(),
	}

	snap.Risk = Risk{
		Level:     s.Risk.Level,
		Rationale: s.Risk.Rationale,
		Factors:   append([]string{}, s.Risk.Factors...),
	}

	if s.Verified.Profile != nil {
		profile := *s.Verified.Profile
		if s.Verified.Profile.Address != nil {
			addr := *s.Verified.Profile.Address
			profile.Address = &addr
		}
		snap.Verified.Profile = &profile
	}
	if s.Verified.SalarySlip != nil {
		slip := *s.Verified.SalarySlip
		snap.Verified.SalarySlip = &slip
	}

	return snap
}
