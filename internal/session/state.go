// Package session owns the mutable state of one loan application: the
// confidence vector, applicant and verified data, document tracking, the
// completed-step set, and the activity journal.
//
// State is passed explicitly into each step handler rather than living as
// ambient shared state, so multiple sessions could coexist if ever needed.
// Nothing here persists across process restarts.
package session

import (
	"math/rand"
	"time"

	"lendgate/internal/confidence"
	"lendgate/internal/journal"
	"lendgate/internal/signals"
	"lendgate/pkg/domain"
	pstrings "lendgate/pkg/platform/strings"
)

// CreditTier categorizes a bureau score.
type CreditTier string

const (
	TierExcellent CreditTier = "EXCELLENT"
	TierVeryGood  CreditTier = "VERY_GOOD"
	TierGood      CreditTier = "GOOD"
	TierFair      CreditTier = "FAIR"
	TierPoor      CreditTier = "POOR"
)

// ApplicantData accumulates what the applicant has declared so far. Fields
// stay at their zero value until the corresponding input arrives; the intent
// step may be called repeatedly with partial data.
type ApplicantData struct {
	LoanAmount     float64 `json:"loan_amount,omitempty"`
	TenureMonths   int     `json:"tenure_months,omitempty"`
	Purpose        string  `json:"purpose,omitempty"`
	EmploymentType string  `json:"employment_type,omitempty"`
	IncomeRange    string  `json:"income_range,omitempty"`
	MonthlyIncome  float64 `json:"monthly_income,omitempty"`
	TaxID          string  `json:"tax_id,omitempty"`
	Name           string  `json:"name,omitempty"`
}

// Deductions breaks down the synthetic salary-slip extraction.
type Deductions struct {
	PF    float64 `json:"pf"`
	Tax   float64 `json:"tax"`
	Other float64 `json:"other"`
}

// SalarySlip is the extraction result of the underwriting document path.
type SalarySlip struct {
	GrossSalary   float64    `json:"gross_salary"`
	NetSalary     float64    `json:"net_salary"`
	Employer      string     `json:"employer"`
	Month         string     `json:"month"`
	OCRConfidence int        `json:"ocr_confidence"`
	Deductions    Deductions `json:"deductions"`
	Method        string     `json:"extraction_method"`
}

// VerifiedData holds externally sourced facts. Profile is written once by the
// identity step; only income-related fields are enriched afterwards by
// underwriting. CreditScore of zero means unknown.
type VerifiedData struct {
	TaxIDVerified  bool             `json:"tax_id_verified"`
	Profile        *signals.Profile `json:"profile,omitempty"`
	CreditScore    int              `json:"credit_score,omitempty"`
	CreditTier     CreditTier       `json:"credit_tier,omitempty"`
	IncomeVerified bool             `json:"income_verified"`
	SalarySlip     *SalarySlip      `json:"salary_slip,omitempty"`
	DTIRatio       float64          `json:"dti_ratio,omitempty"`
}

// DocumentStatus tracks one submitted document.
type DocumentStatus struct {
	Submitted   bool      `json:"submitted"`
	Filename    string    `json:"filename,omitempty"`
	Method      string    `json:"method,omitempty"`
	SubmittedAt time.Time `json:"submitted_at,omitzero"`
}

// Documents tracks the identity document and the salary slip.
type Documents struct {
	TaxDocument DocumentStatus `json:"tax_document"`
	SalarySlip  DocumentStatus `json:"salary_slip"`
}

// Risk is the current qualitative assessment, recomputed every orchestration
// cycle. Factors are deduplicated named flags.
type Risk struct {
	Level     domain.RiskLevel `json:"level"`
	Rationale string           `json:"rationale,omitempty"`
	Factors   []string         `json:"factors"`
}

// State is the aggregate for one loan application session.
type State struct {
	ID        domain.SessionID
	StartedAt time.Time
	UpdatedAt time.Time

	Decision   domain.DecisionState
	Confidence confidence.Vector
	Model      *confidence.Model

	Applicant ApplicantData
	Verified  VerifiedData
	Documents Documents
	Risk      Risk

	ActiveStep domain.Step
	Completed  []domain.Step

	Journal *journal.Journal
}

// New creates a fresh session with a unique identifier and the opening
// journal entries. Reset replaces the whole State with a New one rather than
// clearing fields.
func New(now time.Time, r *rand.Rand) *State {
	st := &State{
		ID:        domain.NewSessionID(now, r),
		StartedAt: now,
		UpdatedAt: now,
		Decision:  domain.DecisionPending,
		Model:     confidence.NewModel(),
		Risk:      Risk{Level: domain.RiskUnknown},
		Journal:   journal.New(),
	}
	st.Record(now, journal.ActorSystem, journal.ActionInit, "session started: "+string(st.ID), "")
	st.Record(now, journal.ActorGovernor, journal.ActionReady, "loan decisioning workflow initialized", "awaiting customer input")
	return st
}

// Record appends a journal entry and advances the last-updated timestamp.
func (s *State) Record(now time.Time, step string, action journal.Action, details, impact string) journal.Entry {
	s.UpdatedAt = now
	return s.Journal.Record(now, step, action, details, impact)
}

// MarkCompleted adds the step to the completed set. Idempotent; reports
// whether the step was newly added.
func (s *State) MarkCompleted(step domain.Step) bool {
	if s.IsCompleted(step) {
		return false
	}
	s.Completed = append(s.Completed, step)
	return true
}

// IsCompleted reports whether the step has reached its sufficiency threshold.
func (s *State) IsCompleted(step domain.Step) bool {
	for _, c := range s.Completed {
		if c == step {
			return true
		}
	}
	return false
}

// AddRiskFactor records a named risk flag, keeping the set deduplicated.
func (s *State) AddRiskFactor(factor string) {
	s.Risk.Factors = pstrings.DedupeAndTrim(append(s.Risk.Factors, factor))
}

// RemoveRiskFactorsContaining retracts factors whose name mentions substr,
// e.g. clearing credit-related flags once a strong bureau score arrives.
func (s *State) RemoveRiskFactorsContaining(substr string) {
	s.Risk.Factors = pstrings.FilterNotContaining(s.Risk.Factors, substr)
}

// DeclaredIncome returns the best-known monthly income: the declared figure,
// falling back to the verified profile, then to a conservative default.
func (s *State) DeclaredIncome() float64 {
	if s.Applicant.MonthlyIncome > 0 {
		return s.Applicant.MonthlyIncome
	}
	if s.Verified.Profile != nil && s.Verified.Profile.MonthlyIncome > 0 {
		return s.Verified.Profile.MonthlyIncome
	}
	return 50000
}

// ApplicantName resolves the display name for artifacts.
func (s *State) ApplicantName() string {
	if s.Applicant.Name != "" {
		return s.Applicant.Name
	}
	if s.Verified.Profile != nil && s.Verified.Profile.Name != "" {
		return s.Verified.Profile.Name
	}
	return "Applicant"
}
