package probes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/architeacher/svc-admin-monitor/internal/config"
	"github.com/architeacher/svc-admin-monitor/internal/domain"
	"github.com/architeacher/svc-admin-monitor/internal/infrastructure"
)

const probeKindCache = "cache"

// CacheProbe pings the KeyDB instance. An unconfigured cache is reported
// as unknown rather than unhealthy, since absence is a deployment choice.
type CacheProbe struct {
	cfg     config.CacheConfig
	client  *infrastructure.KeydbClient
	metrics infrastructure.Metrics
	logger  infrastructure.Logger
}

func NewCacheProbe(cfg config.CacheConfig, client *infrastructure.KeydbClient, logger infrastructure.Logger, metrics infrastructure.Metrics) *CacheProbe {
	return &CacheProbe{
		cfg:     cfg,
		client:  client,
		metrics: metrics,
		logger:  logger.Component("cache_probe"),
	}
}

func (p *CacheProbe) Name() string { return "cache" }

func (p *CacheProbe) Kind() domain.DependencyKind { return domain.DependencyKindCache }

func (p *CacheProbe) Probe(ctx context.Context) domain.DependencyHealth {
	record := domain.DependencyHealth{
		Name:      p.Name(),
		Kind:      p.Kind(),
		CheckedAt: time.Now(),
	}

	if !p.cfg.Configured() || p.client == nil {
		record.Status = domain.HealthStatusUnknown
		record.ErrorMessage = "cache is not configured"

		return record
	}

	start := time.Now()
	err := p.client.Ping(ctx)
	elapsed := time.Since(start)

	record.ResponseTimeMs = elapsed.Milliseconds()

	switch {
	case err != nil:
		record.Status = domain.HealthStatusUnhealthy
		record.ErrorMessage = fmt.Sprintf("cache unreachable: %v", err)
	case elapsed < healthyLatencyCutoff:
		record.Status = domain.HealthStatusHealthy
	default:
		record.Status = domain.HealthStatusDegraded
	}

	if err == nil {
		record.AdditionalInfo = p.serverInfo(ctx)
	}

	p.metrics.RecordProbe(ctx, record.Name, probeKindCache, string(record.Status), elapsed)

	return record
}

// serverInfo pulls a few identifying fields out of the INFO server section.
// Failures here never change the probe outcome.
func (p *CacheProbe) serverInfo(ctx context.Context) map[string]any {
	raw, err := p.client.Info(ctx, "server")
	if err != nil {
		p.logger.Debug().Err(err).Msg("cache INFO lookup failed")

		return nil
	}

	info := make(map[string]any)

	for _, line := range strings.Split(raw, "\n") {
		key, value, found := strings.Cut(strings.TrimSpace(line), ":")
		if !found {
			continue
		}

		switch key {
		case "redis_version", "redis_mode", "uptime_in_seconds":
			info[key] = value
		}
	}

	if len(info) == 0 {
		return nil
	}

	return info
}
