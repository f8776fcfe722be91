package logger

import (
	"log/slog"
	"os"
)

// New returns a structured JSON logger writing to stdout. LENDGATE_LOG_LEVEL
// selects the minimum level (debug, info, warn, error); the default is info.
func New() *slog.Logger {
	level := slog.LevelInfo
	switch os.Getenv("LENDGATE_LOG_LEVEL") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
