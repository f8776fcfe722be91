package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lendgate/internal/platform/config"
	"lendgate/internal/platform/httpserver"
	"lendgate/internal/platform/logger"
	"lendgate/internal/platform/metrics"
	"lendgate/internal/signals"
	httptransport "lendgate/internal/transport/http"
	"lendgate/internal/workflow"
	"lendgate/pkg/requestcontext"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	source := signals.NewMockSource(seed)
	m := metrics.New()

	ctx := requestcontext.WithTime(context.Background(), time.Now())
	svc := workflow.New(ctx, log, source, rng, m, cfg.BaseRate)

	handler := httptransport.New(svc, log)
	router := httptransport.NewRouter(handler)
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting lendgate", "addr", cfg.Addr, "base_rate", cfg.BaseRate)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error("server error", "error", err)
		os.Exit(1)
	case sig := <-quit:
		log.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
