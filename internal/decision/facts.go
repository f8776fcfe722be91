// Package decision is the governor of the loan workflow. It recomputes the
// decision state, the qualitative risk assessment, and the next recommended
// step as a pure function of current session facts on every orchestration
// cycle — no hidden memory between cycles.
package decision

import (
	"lendgate/internal/confidence"
	"lendgate/internal/session"
)

// Facts is the read-only projection of session state the rules consume.
// Keeping rules on a value snapshot rather than the live aggregate keeps the
// scoring pure and testable in isolation.
type Facts struct {
	Vector confidence.Vector

	// CreditScore is zero while unknown.
	CreditScore int

	IdentityDocSubmitted bool
	IncomeVerified       bool

	// VerifiedNetSalary is the extracted net salary, zero while unknown.
	VerifiedNetSalary float64

	// DTIRatio is zero while unknown.
	DTIRatio float64

	CompletedSteps int
}

// FactsFrom projects the live state into a rule snapshot.
func FactsFrom(st *session.State) Facts {
	f := Facts{
		Vector:               st.Confidence,
		CreditScore:          st.Verified.CreditScore,
		IdentityDocSubmitted: st.Documents.TaxDocument.Submitted,
		IncomeVerified:       st.Verified.IncomeVerified,
		DTIRatio:             st.Verified.DTIRatio,
		CompletedSteps:       len(st.Completed),
	}
	if st.Verified.SalarySlip != nil {
		f.VerifiedNetSalary = st.Verified.SalarySlip.NetSalary
	}
	return f
}
