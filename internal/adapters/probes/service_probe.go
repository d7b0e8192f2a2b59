package probes

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/architeacher/svc-admin-monitor/internal/config"
	"github.com/architeacher/svc-admin-monitor/internal/domain"
	"github.com/architeacher/svc-admin-monitor/internal/infrastructure"
	"github.com/go-resty/resty/v2"
)

const (
	// timeoutSentinelMs is reported as the response time whenever a
	// service could not be reached at all.
	timeoutSentinelMs = 5000

	healthyLatencyCutoff  = 500 * time.Millisecond
	degradedLatencyCutoff = 2000 * time.Millisecond

	probeKindService = "service"
)

// candidatePaths are tried in order; the first completed response, success
// or not, decides the outcome.
var candidatePaths = []string{"/health", "/status", "/"}

// ServiceProbe checks a monitored service over HTTP. A probe is a single
// attempt: no retries, and no failure ever escapes as an error.
type ServiceProbe struct {
	client  *resty.Client
	timeout time.Duration
	metrics infrastructure.Metrics
	logger  infrastructure.Logger

	// lastIncidents keeps the sticky last-unhealthy marker per service.
	mu            sync.Mutex
	lastIncidents map[string]time.Time
}

func NewServiceProbe(cfg config.MonitorConfig, logger infrastructure.Logger, metrics infrastructure.Metrics) *ServiceProbe {
	client := resty.New().
		SetTimeout(cfg.ServiceProbeTimeout).
		SetRetryCount(0).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(3)).
		SetHeader("User-Agent", "AdminMonitor/1.0").
		SetHeader("Accept", "application/json")

	return &ServiceProbe{
		client:        client,
		timeout:       cfg.ServiceProbeTimeout,
		metrics:       metrics,
		logger:        logger.Component("service_probe"),
		lastIncidents: make(map[string]time.Time),
	}
}

// Probe checks one service and classifies the outcome. All failure modes
// are captured in the returned record.
func (p *ServiceProbe) Probe(ctx context.Context, name, baseURL string) domain.ServiceHealth {
	record := domain.ServiceHealth{
		ServiceName: name,
		BaseURL:     baseURL,
		CheckedAt:   time.Now(),
	}

	// One deadline bounds the attempts across all candidate paths.
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	resp, err := p.firstCompletedResponse(ctx, baseURL)
	elapsed := time.Since(start)

	if err != nil {
		record.Status = domain.HealthStatusUnhealthy
		record.ResponseTimeMs = timeoutSentinelMs
		record.ErrorMessage = probeFailureMessage(err)

		p.markIncident(&record)
		p.metrics.RecordProbe(ctx, name, probeKindService, string(record.Status), elapsed)

		return record
	}

	record.ResponseTimeMs = elapsed.Milliseconds()
	record.Status = classifyServiceResponse(resp.StatusCode(), elapsed)

	if record.Status == domain.HealthStatusUnhealthy && record.ErrorMessage == "" {
		record.ErrorMessage = "HTTP " + resp.Status()
	}

	// A body that self-reports unhealthy overrides the latency-derived
	// classification.
	if reportsUnhealthy(resp.Body()) {
		record.Status = domain.HealthStatusUnhealthy
		record.ErrorMessage = "service reported unhealthy status"
	}

	p.markIncident(&record)
	p.metrics.RecordProbe(ctx, name, probeKindService, string(record.Status), elapsed)

	p.logger.Debug().
		Str("service", name).
		Str("status", string(record.Status)).
		Int64("response_time_ms", record.ResponseTimeMs).
		Msg("service probed")

	return record
}

// firstCompletedResponse walks the candidate paths and returns the first
// response that completes, regardless of its status code. Transport errors
// fall through to the next path.
func (p *ServiceProbe) firstCompletedResponse(ctx context.Context, baseURL string) (*resty.Response, error) {
	base := strings.TrimRight(baseURL, "/")

	var lastErr error

	for _, path := range candidatePaths {
		resp, err := p.client.R().SetContext(ctx).Get(base + path)
		if err == nil {
			return resp, nil
		}

		lastErr = err

		if ctx.Err() != nil {
			break
		}
	}

	return nil, lastErr
}

func (p *ServiceProbe) markIncident(record *domain.ServiceHealth) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if record.Status == domain.HealthStatusUnhealthy {
		p.lastIncidents[record.ServiceName] = record.CheckedAt
	}

	if incident, ok := p.lastIncidents[record.ServiceName]; ok {
		record.LastIncidentAt = &incident
	}
}

func classifyServiceResponse(statusCode int, elapsed time.Duration) domain.HealthStatus {
	if statusCode < 200 || statusCode >= 300 {
		return domain.HealthStatusUnhealthy
	}

	switch {
	case elapsed < healthyLatencyCutoff:
		return domain.HealthStatusHealthy
	case elapsed < degradedLatencyCutoff:
		return domain.HealthStatusDegraded
	default:
		return domain.HealthStatusUnhealthy
	}
}

// reportsUnhealthy checks an optional JSON body for a status field whose
// value contains "unhealthy", case-insensitively. Non-JSON bodies are
// ignored.
func reportsUnhealthy(body []byte) bool {
	if len(body) == 0 {
		return false
	}

	var payload struct {
		Status string `json:"status"`
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return false
	}

	return strings.Contains(strings.ToLower(payload.Status), "unhealthy")
}

func probeFailureMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "probe timed out: " + err.Error()
	}

	return "connection failed: " + err.Error()
}
