package middleware

import (
	"net/http"
	"time"

	"github.com/architeacher/svc-admin-monitor/internal/infrastructure"
	"github.com/architeacher/svc-admin-monitor/internal/ports"
)

// excludedPaths keeps probe and scrape traffic out of the sample window so
// monitoring does not observe itself.
var excludedPaths = map[string]struct{}{
	"/health":  {},
	"/status":  {},
	"/metrics": {},
}

// RequestMetrics feeds every API request into the in-memory sample window
// and the metrics backend. Recording happens in a deferred block so
// panicking handlers are still counted as failures before the panic
// continues up the stack.
type RequestMetrics struct {
	serviceName   string
	slowThreshold time.Duration
	recorder      ports.MetricsRecorder
	metrics       infrastructure.Metrics
	logger        infrastructure.Logger
}

func NewRequestMetrics(
	serviceName string,
	slowThreshold time.Duration,
	recorder ports.MetricsRecorder,
	metrics infrastructure.Metrics,
	logger infrastructure.Logger,
) *RequestMetrics {
	return &RequestMetrics{
		serviceName:   serviceName,
		slowThreshold: slowThreshold,
		recorder:      recorder,
		metrics:       metrics,
		logger:        logger.Component("request_metrics"),
	}
}

func (m *RequestMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, excluded := excludedPaths[r.URL.Path]; excluded {
			next.ServeHTTP(w, r)

			return
		}

		startTime := time.Now()
		wrapped := NewResponseRecorder(w)

		panicked := true

		defer func() {
			duration := time.Since(startTime)

			statusCode := wrapped.StatusCode()
			if panicked {
				statusCode = http.StatusInternalServerError
			}

			success := !panicked && statusCode < http.StatusBadRequest

			m.recorder.Record(m.serviceName, r.URL.Path, duration, success)
			m.metrics.RecordHTTPRequest(
				r.Context(),
				r.Method,
				r.URL.Path,
				statusCode,
				duration,
				r.ContentLength,
				wrapped.BytesWritten(),
			)

			if duration > m.slowThreshold {
				m.logger.Warn().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Dur("duration", duration).
					Dur("threshold", m.slowThreshold).
					Msg("slow request")
			}
		}()

		next.ServeHTTP(wrapped, r)

		panicked = false
	})
}
