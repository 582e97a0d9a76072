package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

// simulateMiddleware makes the API behave like a flaky remote service:
// every request waits out a random latency, and write requests are then
// rejected with a transient 500 with independent probability, before the
// handler ever runs. Reads are delayed but never failed, and a failed write
// leaves the store untouched, so retrying is always safe.
func (s *Server) simulateMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		delay := s.sim.Delay()

		if isWrite(r.Method) && s.sim.FailWrite() {
			slog.Info("simulated write failure",
				"method", r.Method,
				"path", r.URL.Path,
				"delay_ms", delay.Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
			respondError(w, http.StatusInternalServerError, failureMessage(r.URL.Path))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// failureMessage keeps the original per-route error wording
func failureMessage(path string) string {
	if strings.HasSuffix(path, "/reorder") {
		return "Reorder failed - simulated error"
	}
	return "Internal server error"
}
