package signals

import "context"

// StaticSource is a deterministic Source for tests and reproducible demos.
// Band rolls resolve to the low bound plus Offset (clamped to the band), and
// synthesis returns the configured fixtures verbatim.
type StaticSource struct {
	Registry map[string]Profile // nil falls back to the built-in registry
	Profile  Profile            // returned by SynthesizeProfile (TaxID overridden)
	TaxID    string
	Addr     Address
	Employer string
	Offset   int

	// Err, when set, is returned by the remote-modeling operations.
	Err error
}

func (s *StaticSource) LookupProfile(_ context.Context, taxID string) (Profile, bool, error) {
	if s.Err != nil {
		return Profile{}, false, s.Err
	}
	if s.Registry != nil {
		p, ok := s.Registry[taxID]
		return p, ok, nil
	}
	p, ok := registry[taxID]
	return p, ok, nil
}

func (s *StaticSource) SynthesizeProfile(_ context.Context, taxID string) (Profile, error) {
	if s.Err != nil {
		return Profile{}, s.Err
	}
	p := s.Profile
	p.TaxID = taxID
	p.Verified = true
	return p, nil
}

func (s *StaticSource) FetchAddress(context.Context) (Address, error) {
	if s.Err != nil {
		return Address{}, s.Err
	}
	return s.Addr, nil
}

func (s *StaticSource) SynthesizeTaxID() string {
	if s.TaxID == "" {
		return "QWERT1234Z"
	}
	return s.TaxID
}

func (s *StaticSource) SynthesizeEmployer(float64) string {
	if s.Employer == "" {
		return "Vertex Technologies"
	}
	return s.Employer
}

func (s *StaticSource) Between(lo, hi int) int {
	v := lo + s.Offset
	if v > hi {
		return hi
	}
	return v
}
