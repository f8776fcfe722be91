// Package httptransport is the thin HTTP layer. Handlers delegate to the
// workflow service without embedding business logic so transport concerns
// remain isolated.
package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lendgate/pkg/platform/middleware/metadata"
	"lendgate/pkg/platform/middleware/requesttime"
)

// NewRouter wires all public endpoints plus health and metrics.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(metadata.Middleware)
	r.Use(requesttime.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	h.Register(r)
	return r
}
