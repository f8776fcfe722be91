// Package metadata assigns a request ID to every inbound request and echoes
// it back in the response headers so the UI collaborator can correlate its
// calls with server logs.
package metadata

import (
	"net/http"

	"github.com/google/uuid"

	"lendgate/pkg/requestcontext"
)

const headerRequestID = "X-Request-ID"

// Middleware injects a request ID into the context, honoring one supplied by
// the caller when present.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(headerRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		w.Header().Set(headerRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
