package middleware

import (
	"context"
	"net/http"
)

// HealthCheckFilter marks probe and scrape requests so the access logger
// skips them. Kubernetes probes and Prometheus scrapes would otherwise
// dominate the log volume.
type HealthCheckFilter struct {
	quietEndpoints  map[string]struct{}
	logHealthChecks bool
}

func NewHealthCheckFilter(logHealthChecks bool) *HealthCheckFilter {
	return &HealthCheckFilter{
		quietEndpoints: map[string]struct{}{
			"/health":  {},
			"/status":  {},
			"/metrics": {},
			"/healthz": {},
			"/livez":   {},
			"/readyz":  {},
		},
		logHealthChecks: logHealthChecks,
	}
}

func (h *HealthCheckFilter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.logHealthChecks {
			next.ServeHTTP(w, r)

			return
		}

		if _, quiet := h.quietEndpoints[r.URL.Path]; quiet {
			ctx := context.WithValue(r.Context(), skipAccessLogKey, true)
			next.ServeHTTP(w, r.WithContext(ctx))

			return
		}

		next.ServeHTTP(w, r)
	})
}
