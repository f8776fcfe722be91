package domain

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// SessionID identifies one loan application session. The format is
// LOAN-<base36 millisecond timestamp>-<base36 random suffix>, uppercased,
// so identifiers sort roughly by creation time and stay human-quotable.
type SessionID string

// SanctionID identifies a generated sanction letter. Every generation mints
// a fresh identifier, even for the same session.
type SanctionID string

// NewSessionID mints a session identifier from the given clock reading and
// randomness source.
func NewSessionID(now time.Time, r *rand.Rand) SessionID {
	ts := strconv.FormatInt(now.UnixMilli(), 36)
	suffix := fmt.Sprintf("%05s", strconv.FormatInt(r.Int63n(60466176), 36)) // 36^5
	return SessionID(strings.ToUpper("LOAN-" + ts + "-" + suffix))
}

// NewSanctionID mints a sanction letter identifier from the given clock reading.
func NewSanctionID(now time.Time) SanctionID {
	return SanctionID(strings.ToUpper("SANC-" + strconv.FormatInt(now.UnixMilli(), 36)))
}

// Seed derives a small deterministic number from the timestamp component of
// the session identifier. Document extraction uses it so repeated runs within
// one session always produce the same synthetic values.
func (id SessionID) Seed() int {
	parts := strings.Split(string(id), "-")
	if len(parts) < 2 {
		return 0
	}
	v, err := strconv.ParseInt(strings.ToLower(parts[1]), 36, 64)
	if err != nil {
		return 0
	}
	return int(v % 100)
}
