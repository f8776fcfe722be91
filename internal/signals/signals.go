// Package signals models the external verification systems the workflow
// consults: the customer registry, the credit bureau feed, and document
// extraction variance. Nothing here talks to a real bureau; every signal is
// synthetic, generated within the ranges the decisioning core expects.
//
// The Source interface keeps the synthetic generation injectable so tests can
// substitute a deterministic fake.
package signals

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Profile is the verified customer record returned by a registry lookup or
// synthesized when the tax identifier is unknown. Written once by the
// identity step; income-related fields may be enriched later by underwriting.
type Profile struct {
	Name            string   `json:"name"`
	TaxID           string   `json:"tax_id"`
	DateOfBirth     string   `json:"date_of_birth"`
	Verified        bool     `json:"verified"`
	CreditScore     int      `json:"credit_score"`
	ExistingLoans   int      `json:"existing_loans"`
	MonthlyIncome   float64  `json:"monthly_income"`
	Employer        string   `json:"employer"`
	EmploymentYears int      `json:"employment_years"`
	Address         *Address `json:"address,omitempty"`
	KYCMethod       string   `json:"kyc_method,omitempty"`
}

// Address is populated only by the federated verification path.
type Address struct {
	Line1      string `json:"line1"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// Source supplies external verification signals. The profile and address
// operations carry a context and an error return because they model remote
// registries, even though the mock implementation never fails. Between is the
// shared uniform roll used for confidence bands: it returns an integer in
// [lo, hi] inclusive.
type Source interface {
	// LookupProfile checks the customer registry; ok is false when the tax
	// identifier is unknown there.
	LookupProfile(ctx context.Context, taxID string) (profile Profile, ok bool, err error)

	// SynthesizeProfile generates a plausible profile for an identifier the
	// registry does not know.
	SynthesizeProfile(ctx context.Context, taxID string) (Profile, error)

	// FetchAddress returns the address evidence the federated provider shares.
	FetchAddress(ctx context.Context) (Address, error)

	SynthesizeTaxID() string
	SynthesizeEmployer(grossSalary float64) string
	Between(lo, hi int) int
}

// Fixed registry seeded with known customers, keyed by tax identifier.
// Lookups outside this set fall back to synthesis.
var registry = map[string]Profile{
	"ABCDE1234F": {
		Name: "Rahul Sharma", TaxID: "ABCDE1234F", DateOfBirth: "1990-05-15",
		Verified: true, CreditScore: 780, ExistingLoans: 1,
		MonthlyIncome: 85000, Employer: "TCS Limited", EmploymentYears: 5,
	},
	"XYZAB5678G": {
		Name: "Priya Patel", TaxID: "XYZAB5678G", DateOfBirth: "1988-11-22",
		Verified: true, CreditScore: 650, ExistingLoans: 3,
		MonthlyIncome: 45000, Employer: "Freelance", EmploymentYears: 2,
	},
	"LMNOP9012H": {
		Name: "Amit Kumar", TaxID: "LMNOP9012H", DateOfBirth: "1995-03-10",
		Verified: true, CreditScore: 820, ExistingLoans: 0,
		MonthlyIncome: 120000, Employer: "Infosys", EmploymentYears: 8,
	},
}

var (
	syntheticNames     = []string{"Arun Verma", "Sneha Reddy", "Vikram Singh", "Ananya Iyer", "Rajesh Gupta"}
	syntheticEmployers = []string{"Wipro", "HCL Technologies", "Tech Mahindra", "Accenture", "Cognizant"}

	addressCities  = []string{"Mumbai", "Delhi", "Bangalore", "Hyderabad", "Chennai", "Pune", "Kolkata"}
	addressStates  = []string{"Maharashtra", "Delhi", "Karnataka", "Telangana", "Tamil Nadu", "Maharashtra", "West Bengal"}
	addressStreets = []string{"MG Road", "Park Street", "Residency Road", "Main Road"}

	smallEmployers  = []string{"Nexus Solutions Pvt Ltd", "Vertex Technologies", "Quantum Infotech"}
	mediumEmployers = []string{"Mindtree Ltd", "Tech Mahindra", "L&T Infotech"}
	largeEmployers  = []string{"Tata Consultancy Services", "Infosys Limited", "Wipro Limited"}
)

// MockSource is the default Source, backed by math/rand. The mutex makes it
// safe for the federated path, which gathers profile and address evidence
// concurrently.
type MockSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewMockSource builds a source seeded with seed; pass 0 to seed from the
// wall clock.
func NewMockSource(seed int64) *MockSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &MockSource{r: rand.New(rand.NewSource(seed))}
}

func (m *MockSource) LookupProfile(_ context.Context, taxID string) (Profile, bool, error) {
	p, ok := registry[taxID]
	return p, ok, nil
}

func (m *MockSource) SynthesizeProfile(_ context.Context, taxID string) (Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Profile{
		Name:            syntheticNames[m.r.Intn(len(syntheticNames))],
		TaxID:           taxID,
		DateOfBirth:     "1992-07-20",
		Verified:        true,
		CreditScore:     650 + m.r.Intn(200),
		ExistingLoans:   m.r.Intn(3),
		MonthlyIncome:   float64(40000 + m.r.Intn(100000)),
		Employer:        syntheticEmployers[m.r.Intn(len(syntheticEmployers))],
		EmploymentYears: 1 + m.r.Intn(10),
	}, nil
}

// SynthesizeTaxID produces a plausible identifier: five uppercase letters,
// four digits, one uppercase letter.
func (m *MockSource) SynthesizeTaxID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	const digits = "0123456789"
	buf := make([]byte, 0, 10)
	for i := 0; i < 5; i++ {
		buf = append(buf, letters[m.r.Intn(len(letters))])
	}
	for i := 0; i < 4; i++ {
		buf = append(buf, digits[m.r.Intn(len(digits))])
	}
	buf = append(buf, letters[m.r.Intn(len(letters))])
	return string(buf)
}

func (m *MockSource) FetchAddress(_ context.Context) (Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.r.Intn(len(addressCities))
	return Address{
		Line1:      fmt.Sprintf("%d, %s", 1+m.r.Intn(500), addressStreets[m.r.Intn(len(addressStreets))]),
		City:       addressCities[idx],
		State:      addressStates[idx],
		PostalCode: fmt.Sprintf("%d", 100000+m.r.Intn(900000)),
	}, nil
}

// SynthesizeEmployer picks an employer name sized to the extracted salary, for
// documents whose owner has no registry profile.
func (m *MockSource) SynthesizeEmployer(grossSalary float64) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch {
	case grossSalary > 100000:
		return largeEmployers[m.r.Intn(len(largeEmployers))]
	case grossSalary > 50000:
		return mediumEmployers[m.r.Intn(len(mediumEmployers))]
	default:
		return smallEmployers[m.r.Intn(len(smallEmployers))]
	}
}

func (m *MockSource) Between(lo, hi int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hi <= lo {
		return lo
	}
	return lo + m.r.Intn(hi-lo+1)
}
