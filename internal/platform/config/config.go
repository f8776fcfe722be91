package config

import (
	"os"
	"strconv"
)

// Server captures process-level configuration.
type Server struct {
	Addr     string
	BaseRate float64
	Seed     int64
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("LENDGATE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	baseRate := 10.5
	if v := os.Getenv("LENDGATE_BASE_RATE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			baseRate = parsed
		}
	}

	// Seed 0 means non-deterministic; set it for reproducible demo runs.
	var seed int64
	if v := os.Getenv("LENDGATE_SEED"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			seed = parsed
		}
	}

	return Server{
		Addr:     addr,
		BaseRate: baseRate,
		Seed:     seed,
	}
}
