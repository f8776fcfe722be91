package httptransport

import (
	"strings"

	"lendgate/internal/intent"
	dErrors "lendgate/pkg/domain-errors"
)

// Business bounds enforced at the boundary. The scoring core accepts any
// figure and scores out-of-band values with its non-standard bands; these
// limits reject requests no product configuration could serve.
const (
	minLoanAmount = 50000
	maxLoanAmount = 5000000
	minTenure     = 6
	maxTenure     = 84
)

// IntentRequest is the HTTP request body for POST /workflow/intent.
// Every field is optional; the step accumulates across calls.
type IntentRequest struct {
	LoanAmount     *float64 `json:"loan_amount,omitempty"`
	TenureMonths   *int     `json:"tenure_months,omitempty"`
	Purpose        string   `json:"purpose,omitempty"`
	EmploymentType string   `json:"employment_type,omitempty"`
	IncomeRange    string   `json:"income_range,omitempty"`
}

// Validate validates the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *IntentRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	if r.LoanAmount != nil && (*r.LoanAmount < minLoanAmount || *r.LoanAmount > maxLoanAmount) {
		return dErrors.New(dErrors.CodeValidation, "loan_amount must be between 50000 and 5000000")
	}
	if r.TenureMonths != nil && (*r.TenureMonths < minTenure || *r.TenureMonths > maxTenure) {
		return dErrors.New(dErrors.CodeValidation, "tenure_months must be between 6 and 84")
	}

	r.Purpose = strings.TrimSpace(strings.ToLower(r.Purpose))
	r.EmploymentType = strings.TrimSpace(strings.ToLower(r.EmploymentType))
	r.IncomeRange = strings.TrimSpace(r.IncomeRange)
	return nil
}

// Input converts the request to the step input.
func (r *IntentRequest) Input() intent.Input {
	return intent.Input{
		LoanAmount:     r.LoanAmount,
		TenureMonths:   r.TenureMonths,
		Purpose:        r.Purpose,
		EmploymentType: r.EmploymentType,
		IncomeRange:    r.IncomeRange,
	}
}

// VerifyRequest is the HTTP request body for POST /workflow/identity/verify.
// An empty tax_id asks the registry to synthesize one.
type VerifyRequest struct {
	TaxID string `json:"tax_id,omitempty"`
}

// Validate validates the request.
func (r *VerifyRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.TaxID = strings.TrimSpace(r.TaxID)
	if len(r.TaxID) > 20 {
		return dErrors.New(dErrors.CodeValidation, "tax_id must be at most 20 characters")
	}
	return nil
}

// SalarySlipRequest is the HTTP request body for POST
// /workflow/underwriting/salary-slip. An empty filename gets a default.
type SalarySlipRequest struct {
	Filename string `json:"filename,omitempty"`
}

// Validate validates the request.
func (r *SalarySlipRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Filename = strings.TrimSpace(r.Filename)
	if len(r.Filename) > 255 {
		return dErrors.New(dErrors.CodeValidation, "filename must be at most 255 characters")
	}
	return nil
}
