package underwriting

import (
	"math"
	"time"

	"lendgate/internal/session"
)

// extractionMethod labels the synthetic OCR pipeline on the slip artifact.
const extractionMethod = "OCR + NLP pattern matching"

// extractSlip synthesizes the salary-slip extraction. The variance factor and
// OCR confidence derive from the session identifier, not true randomness, so
// the same session always yields the same extraction.
func (s *Service) extractSlip(st *session.State, now time.Time) session.SalarySlip {
	base := st.DeclaredIncome()
	seed := st.ID.Seed()

	// Session-based variance in [0.85, 1.10] of the declared income.
	factor := 0.85 + float64(seed)/100*0.25
	gross := math.Round(base * factor)

	var deductionRate float64
	switch {
	case gross > 100000:
		deductionRate = 0.18
	case gross > 50000:
		deductionRate = 0.15
	default:
		deductionRate = 0.12
	}
	net := math.Round(gross * (1 - deductionRate))

	employer := ""
	if st.Verified.Profile != nil {
		employer = st.Verified.Profile.Employer
	}
	if employer == "" {
		employer = s.source.SynthesizeEmployer(gross)
	}

	return session.SalarySlip{
		GrossSalary:   gross,
		NetSalary:     net,
		Employer:      employer,
		Month:         now.Format("January 2006"),
		OCRConfidence: 91 + seed%8,
		Deductions: session.Deductions{
			PF:    math.Round(gross * 0.12 * 0.4),
			Tax:   math.Round(gross * deductionRate * 0.6),
			Other: 0,
		},
		Method: extractionMethod,
	}
}
