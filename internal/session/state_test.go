package session

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendgate/internal/journal"
	"lendgate/internal/signals"
	"lendgate/pkg/domain"
)

func newState(t *testing.T) *State {
	t.Helper()
	return New(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), rand.New(rand.NewSource(1)))
}

func TestNew(t *testing.T) {
	st := newState(t)

	assert.True(t, strings.HasPrefix(string(st.ID), "LOAN-"))
	assert.Equal(t, domain.DecisionPending, st.Decision)
	assert.Equal(t, domain.RiskUnknown, st.Risk.Level)
	assert.Empty(t, st.Completed)

	entries := st.Journal.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, journal.ActionInit, entries[0].Action)
	assert.Equal(t, journal.ActionReady, entries[1].Action)
}

func TestMarkCompleted(t *testing.T) {
	st := newState(t)

	assert.True(t, st.MarkCompleted(domain.StepSales))
	assert.False(t, st.MarkCompleted(domain.StepSales))
	assert.True(t, st.IsCompleted(domain.StepSales))
	assert.False(t, st.IsCompleted(domain.StepIdentity))
	assert.Len(t, st.Completed, 1)
}

func TestRiskFactors(t *testing.T) {
	st := newState(t)

	st.AddRiskFactor("low credit score")
	st.AddRiskFactor("low credit score")
	st.AddRiskFactor("  high dti  ")
	assert.Equal(t, []string{"low credit score", "high dti"}, st.Risk.Factors)

	st.RemoveRiskFactorsContaining("credit")
	assert.Equal(t, []string{"high dti"}, st.Risk.Factors)
}

func TestDeclaredIncome(t *testing.T) {
	st := newState(t)
	assert.Equal(t, 50000.0, st.DeclaredIncome())

	st.Verified.Profile = &signals.Profile{MonthlyIncome: 85000}
	assert.Equal(t, 85000.0, st.DeclaredIncome())

	st.Applicant.MonthlyIncome = 60000
	assert.Equal(t, 60000.0, st.DeclaredIncome())
}

func TestApplicantName(t *testing.T) {
	st := newState(t)
	assert.Equal(t, "Applicant", st.ApplicantName())

	st.Verified.Profile = &signals.Profile{Name: "Priya Patel"}
	assert.Equal(t, "Priya Patel", st.ApplicantName())

	st.Applicant.Name = "P. Patel"
	assert.Equal(t, "P. Patel", st.ApplicantName())
}

func TestSnapshotDeepCopies(t *testing.T) {
	st := newState(t)
	addr := signals.Address{City: "Pune"}
	st.Verified.Profile = &signals.Profile{Name: "Amit Kumar", Address: &addr}
	st.Verified.SalarySlip = &SalarySlip{NetSalary: 70125}
	st.AddRiskFactor("factor")
	st.MarkCompleted(domain.StepSales)

	snap := st.Snapshot()
	snap.Verified.Profile.Name = "mutated"
	snap.Verified.Profile.Address.City = "mutated"
	snap.Verified.SalarySlip.NetSalary = 0
	snap.Risk.Factors[0] = "mutated"
	snap.CompletedSteps[0] = domain.StepSanction
	snap.ActivityLog[0].Details = "mutated"

	assert.Equal(t, "Amit Kumar", st.Verified.Profile.Name)
	assert.Equal(t, "Pune", st.Verified.Profile.Address.City)
	assert.Equal(t, 70125.0, st.Verified.SalarySlip.NetSalary)
	assert.Equal(t, []string{"factor"}, st.Risk.Factors)
	assert.Equal(t, domain.StepSales, st.Completed[0])
	assert.NotEqual(t, "mutated", st.Journal.Entries()[0].Details)
}

func TestRecordAdvancesUpdatedAt(t *testing.T) {
	st := newState(t)
	later := st.StartedAt.Add(time.Minute)

	st.Record(later, journal.ActorSales, journal.ActionTriggered, "details", "")
	assert.Equal(t, later, st.UpdatedAt)
	assert.Equal(t, 3, st.Journal.Len())
}
