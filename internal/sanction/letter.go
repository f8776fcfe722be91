package sanction

import (
	"time"

	"lendgate/internal/confidence"
	"lendgate/pkg/domain"
)

// Applicant is the applicant snapshot embedded in a letter.
type Applicant struct {
	Name        string `json:"name"`
	TaxID       string `json:"tax_id,omitempty"`
	CreditScore int    `json:"credit_score,omitempty"`
}

// LoanTerms are the computed financials of the sanctioned loan.
type LoanTerms struct {
	Amount        float64 `json:"amount"`
	TenureMonths  int     `json:"tenure_months"`
	InterestRate  float64 `json:"interest_rate"`
	EMI           float64 `json:"emi"`
	ProcessingFee float64 `json:"processing_fee"`
	TotalPayable  float64 `json:"total_payable"`
}

// Letter is the sanction artifact. It is a point-in-time snapshot derived
// from session state, immutable once produced; regenerating mints a new
// Letter with a new identifier.
type Letter struct {
	ID        domain.SanctionID `json:"sanction_id"`
	SessionID domain.SessionID  `json:"session_id"`
	Status    string            `json:"status"`
	IssuedAt  time.Time         `json:"issued_at"`
	ValidTill time.Time         `json:"valid_till"`

	Applicant Applicant `json:"applicant"`
	Loan      LoanTerms `json:"loan"`

	Confidence    confidence.Vector `json:"confidence_breakdown"`
	RiskLevel     domain.RiskLevel  `json:"risk_level"`
	RiskRationale string            `json:"risk_rationale"`

	Terms []string `json:"terms"`
}

// standardTerms is the boilerplate attached to every letter.
var standardTerms = []string{
	"Loan disbursement subject to document verification",
	"Interest rate may vary based on RBI guidelines",
	"Processing fee is non-refundable",
	"Insurance is optional but recommended",
}
