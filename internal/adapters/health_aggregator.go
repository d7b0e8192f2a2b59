package adapters

import (
	"context"
	"sort"
	"time"

	"github.com/architeacher/svc-admin-monitor/internal/config"
	"github.com/architeacher/svc-admin-monitor/internal/domain"
	"github.com/architeacher/svc-admin-monitor/internal/infrastructure"
	"github.com/architeacher/svc-admin-monitor/internal/ports"
	"github.com/google/uuid"
)

type probeResult struct {
	service    *domain.ServiceHealth
	dependency *domain.DependencyHealth
}

// FanOutHealthAggregator runs every probe in its own goroutine and waits
// for all of them under one deadline. A probe that misses the deadline is
// reported as unknown rather than stalling the snapshot.
type FanOutHealthAggregator struct {
	serviceURLs  map[string]string
	serviceProbe ports.ServiceProber
	depProbes    []ports.DependencyProber
	deadline     time.Duration
	metrics      infrastructure.Metrics
	logger       infrastructure.Logger
}

func NewFanOutHealthAggregator(
	cfg config.MonitorConfig,
	serviceProbe ports.ServiceProber,
	depProbes []ports.DependencyProber,
	logger infrastructure.Logger,
	metrics infrastructure.Metrics,
) *FanOutHealthAggregator {
	// Probes bound themselves first; the aggregate deadline only catches
	// the ones that fail to.
	deadline := cfg.ServiceProbeTimeout
	if cfg.BrokerProbeTimeout > deadline {
		deadline = cfg.BrokerProbeTimeout
	}
	deadline += cfg.AggregationSlack

	return &FanOutHealthAggregator{
		serviceURLs:  cfg.ServiceURLs,
		serviceProbe: serviceProbe,
		depProbes:    depProbes,
		deadline:     deadline,
		metrics:      metrics,
		logger:       logger.Component("health_aggregator"),
	}
}

func (a *FanOutHealthAggregator) CheckAll(ctx context.Context) *domain.SystemHealthCheck {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, a.deadline)
	defer cancel()

	check := &domain.SystemHealthCheck{
		CheckID:   uuid.New(),
		CheckedAt: start,
	}

	serviceNames := sortedKeys(a.serviceURLs)
	total := len(serviceNames) + len(a.depProbes)
	results := make(chan probeResult, total)

	for _, name := range serviceNames {
		go func(name, baseURL string) {
			health := a.serviceProbe.Probe(ctx, name, baseURL)
			results <- probeResult{service: &health}
		}(name, a.serviceURLs[name])
	}

	for _, probe := range a.depProbes {
		go func(probe ports.DependencyProber) {
			health := probe.Probe(ctx)
			results <- probeResult{dependency: &health}
		}(probe)
	}

	services := make(map[string]domain.ServiceHealth, len(serviceNames))
	dependencies := make(map[string]domain.DependencyHealth, len(a.depProbes))

	received := 0

gather:
	for received < total {
		select {
		case result := <-results:
			received++

			if result.service != nil {
				services[result.service.ServiceName] = *result.service
			} else {
				dependencies[result.dependency.Name] = *result.dependency
			}
		case <-ctx.Done():
			// Stragglers get an unknown placeholder; the goroutines
			// drain into the buffered channel and exit on their own.
			break gather
		}
	}

	if received < total {
		a.logger.Warn().
			Int("missing", total-received).
			Dur("deadline", a.deadline).
			Msg("health check deadline exceeded, marking stragglers unknown")
	}

	now := time.Now()

	for _, name := range serviceNames {
		if record, ok := services[name]; ok {
			check.Services = append(check.Services, record)

			continue
		}

		check.Services = append(check.Services, domain.ServiceHealth{
			ServiceName:  name,
			BaseURL:      a.serviceURLs[name],
			Status:       domain.HealthStatusUnknown,
			ErrorMessage: "probe did not complete before the aggregation deadline",
			CheckedAt:    now,
		})
	}

	for _, probe := range a.depProbes {
		if record, ok := dependencies[probe.Name()]; ok {
			check.Dependencies = append(check.Dependencies, record)

			continue
		}

		check.Dependencies = append(check.Dependencies, domain.DependencyHealth{
			Name:         probe.Name(),
			Kind:         probe.Kind(),
			Status:       domain.HealthStatusUnknown,
			ErrorMessage: "probe did not complete before the aggregation deadline",
			CheckedAt:    now,
		})
	}

	elapsed := time.Since(start)
	check.TotalResponseTimeMs = elapsed.Milliseconds()
	check.OverallStatus = domain.CalculateOverallStatus(check.Statuses())

	a.metrics.RecordHealthCheck(ctx, string(check.OverallStatus), elapsed)

	a.logger.Info().
		Str("check_id", check.CheckID.String()).
		Str("overall_status", string(check.OverallStatus)).
		Int64("total_response_time_ms", check.TotalResponseTimeMs).
		Msg("system health check completed")

	return check
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
