// Package journal is the append-only activity trail of a session. Every
// state-affecting action records an entry; consumers treat the sequence as a
// causal audit trail, so ordering across steps is preserved and entries are
// never edited or removed except on full session reset.
package journal

import (
	"sync"
	"time"
)

// Action tags classify journal entries for display and tests.
type Action string

const (
	ActionInit             Action = "INIT"
	ActionReady            Action = "READY"
	ActionReset            Action = "RESET"
	ActionTriggered        Action = "TRIGGERED"
	ActionCaptured         Action = "CAPTURED"
	ActionConfidenceUpdate Action = "CONFIDENCE_UPDATE"
	ActionComplete         Action = "COMPLETE"
	ActionEvaluate         Action = "EVALUATE"
	ActionStepTrigger      Action = "STEP_TRIGGER"
	ActionOrchestrate      Action = "ORCHESTRATE"
	ActionStateChange      Action = "STATE_CHANGE"
	ActionStalled          Action = "STALLED"
	ActionFallbackAware    Action = "FALLBACK_AWARE"
	ActionAPICall          Action = "API_CALL"
	ActionVerified         Action = "VERIFIED"
	ActionCreditScore      Action = "CREDIT_SCORE"
	ActionOAuthInit        Action = "OAUTH_INIT"
	ActionOAuthSuccess     Action = "OAUTH_SUCCESS"
	ActionDTIAnalysis      Action = "DTI_ANALYSIS"
	ActionOCRProcessing    Action = "OCR_PROCESSING"
	ActionOCRComplete      Action = "OCR_COMPLETE"
	ActionIncomeMatch      Action = "INCOME_MATCH"
	ActionIncomeVariance   Action = "INCOME_VARIANCE"
	ActionIncomeMismatch   Action = "INCOME_MISMATCH"
	ActionApproved         Action = "APPROVED"
	ActionBlocked          Action = "BLOCKED"
	ActionGenerated        Action = "GENERATED"
)

// Entry is one immutable journal record.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Step      string    `json:"step"`
	Action    Action    `json:"action"`
	Details   string    `json:"details"`
	Impact    string    `json:"impact,omitempty"`
}

// Journal is an append-only, mutex-guarded entry log.
type Journal struct {
	mu      sync.RWMutex
	entries []Entry
}

func New() *Journal {
	return &Journal{}
}

// Record appends an entry. Impact may be empty.
func (j *Journal) Record(now time.Time, step string, action Action, details, impact string) Entry {
	entry := Entry{
		Timestamp: now,
		Step:      step,
		Action:    action,
		Details:   details,
		Impact:    impact,
	}
	j.mu.Lock()
	j.entries = append(j.entries, entry)
	j.mu.Unlock()
	return entry
}

// Entries returns a defensive copy of the full log in append order.
func (j *Journal) Entries() []Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return append([]Entry{}, j.entries...)
}

// Len returns the number of entries.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.entries)
}

// Last returns the most recent entry and whether one exists.
func (j *Journal) Last() (Entry, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if len(j.entries) == 0 {
		return Entry{}, false
	}
	return j.entries[len(j.entries)-1], true
}
