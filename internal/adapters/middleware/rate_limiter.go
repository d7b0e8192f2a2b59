package middleware

import (
	"fmt"
	"net"
	"net/http"

	"github.com/architeacher/svc-admin-monitor/internal/config"
	"github.com/architeacher/svc-admin-monitor/internal/infrastructure"
	"github.com/throttled/throttled/v2"
	"github.com/throttled/throttled/v2/store/memstore"
)

// RateLimiter throttles API clients per remote address using GCRA over an
// in-memory store. Probe endpoints are not exempted; a misbehaving client
// hammering /v1/monitoring/health can take the whole fleet's probes with it.
type RateLimiter struct {
	limiter *throttled.GCRARateLimiterCtx
	logger  infrastructure.Logger
	enabled bool
}

func NewRateLimiter(cfg config.ThrottledRateLimitingConfig, logger infrastructure.Logger) (*RateLimiter, error) {
	if !cfg.Enabled {
		return &RateLimiter{enabled: false}, nil
	}

	store, err := memstore.NewCtx(cfg.MaxKeys)
	if err != nil {
		return nil, fmt.Errorf("creating rate limit store: %w", err)
	}

	quota := throttled.RateQuota{
		MaxRate:  throttled.PerSec(cfg.RequestsPerSecond),
		MaxBurst: cfg.BurstSize,
	}

	limiter, err := throttled.NewGCRARateLimiterCtx(store, quota)
	if err != nil {
		return nil, fmt.Errorf("creating rate limiter: %w", err)
	}

	return &RateLimiter{
		limiter: limiter,
		logger:  logger.Component("rate_limiter"),
		enabled: true,
	}, nil
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	if !rl.enabled {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limited, result, err := rl.limiter.RateLimitCtx(r.Context(), clientKey(r), 1)
		if err != nil {
			rl.logger.Error().Err(err).Msg("rate limiter failed, letting request through")
			next.ServeHTTP(w, r)

			return
		}

		if limited {
			w.Header().Set("Retry-After", fmt.Sprintf("%.0f", result.RetryAfter.Seconds()))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)

			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
