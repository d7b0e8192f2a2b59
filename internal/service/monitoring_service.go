package service

import (
	"context"
	"sort"
	"time"

	"github.com/architeacher/svc-admin-monitor/internal/config"
	"github.com/architeacher/svc-admin-monitor/internal/domain"
	"github.com/architeacher/svc-admin-monitor/internal/infrastructure"
	"github.com/architeacher/svc-admin-monitor/internal/ports"
)

type (
	// MonitoringService is the application surface behind the monitoring
	// API. Every call recomputes from live probes and the in-memory
	// sample window; nothing is served from a stored snapshot.
	MonitoringService interface {
		FetchSystemHealth(ctx context.Context) (*domain.SystemHealthCheck, error)
		FetchMetricsReport(ctx context.Context, period time.Duration) (*domain.MetricsReport, error)
		FetchAlerts(ctx context.Context, period time.Duration) ([]domain.Alert, error)
	}

	monitoringService struct {
		cfg         *config.ServiceConfig
		aggregator  ports.HealthAggregator
		source      ports.MetricsSource
		resources   ports.ResourceCollector
		dbStats     ports.DatabaseStatsCollector
		brokerStats ports.BrokerStatsCollector
		metrics     infrastructure.Metrics
		logger      infrastructure.Logger
	}
)

func NewMonitoringService(
	cfg *config.ServiceConfig,
	aggregator ports.HealthAggregator,
	source ports.MetricsSource,
	resources ports.ResourceCollector,
	dbStats ports.DatabaseStatsCollector,
	brokerStats ports.BrokerStatsCollector,
	logger infrastructure.Logger,
	metrics infrastructure.Metrics,
) MonitoringService {
	return &monitoringService{
		cfg:         cfg,
		aggregator:  aggregator,
		source:      source,
		resources:   resources,
		dbStats:     dbStats,
		brokerStats: brokerStats,
		metrics:     metrics,
		logger:      logger.Component("monitoring_service"),
	}
}

func (s *monitoringService) FetchSystemHealth(ctx context.Context) (*domain.SystemHealthCheck, error) {
	return s.aggregator.CheckAll(ctx), nil
}

// FetchMetricsReport summarizes the trailing period per service. The
// resource, database and broker sections degrade to nil individually when
// their collectors fail; service summaries are never blocked by them.
func (s *monitoringService) FetchMetricsReport(ctx context.Context, period time.Duration) (*domain.MetricsReport, error) {
	if period <= 0 {
		period = s.cfg.Monitor.DefaultPeriod
	}

	now := time.Now()

	report := &domain.MetricsReport{
		GeneratedAt: now,
		Period:      period,
		Services:    []domain.ServiceMetricsSummary{},
	}

	for _, name := range s.reportedServiceNames() {
		report.Services = append(report.Services, summarizeService(name, s.source.Samples(name), period, now))
	}

	if s.resources != nil {
		resources, err := s.resources.Collect(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("resource metrics unavailable")
		} else {
			report.Resources = resources
		}
	}

	if s.dbStats != nil {
		database, err := s.dbStats.Collect(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("database metrics unavailable")
		} else {
			report.Database = database
		}
	}

	if s.brokerStats != nil {
		broker, err := s.brokerStats.Collect(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("broker metrics unavailable")
		} else {
			report.Broker = broker
		}
	}

	return report, nil
}

// FetchAlerts evaluates the alert rules against a fresh health snapshot
// and metrics report. Trigger levels are read from config on every call,
// so a reload retunes alerting without a restart.
func (s *monitoringService) FetchAlerts(ctx context.Context, period time.Duration) ([]domain.Alert, error) {
	start := time.Now()

	check := s.aggregator.CheckAll(ctx)

	report, err := s.FetchMetricsReport(ctx, period)
	if err != nil {
		return nil, err
	}

	thresholds := s.currentThresholds()
	alerts := evaluateAlerts(check, report, thresholds, time.Now())

	s.metrics.RecordAlertEvaluation(ctx, len(alerts), time.Since(start))

	s.logger.Debug().
		Int("alerts", len(alerts)).
		Float64("error_rate_threshold", thresholds.ErrorRatePct).
		Msg("alert evaluation completed")

	return alerts, nil
}

func (s *monitoringService) currentThresholds() domain.Thresholds {
	thresholds := domain.DefaultThresholds()

	alertsCfg := s.cfg.Alerts

	if alertsCfg.ErrorRateThreshold > 0 {
		thresholds.ErrorRatePct = alertsCfg.ErrorRateThreshold
	}

	if alertsCfg.ResponseTimeThresholdMs > 0 {
		thresholds.ResponseTimeMs = alertsCfg.ResponseTimeThresholdMs
	}

	if alertsCfg.DiskUsageThreshold > 0 {
		thresholds.DiskUsagePct = alertsCfg.DiskUsageThreshold
	}

	return thresholds
}

// reportedServiceNames is the union of configured services and services
// that have recorded samples, so the report covers quiet services too.
func (s *monitoringService) reportedServiceNames() []string {
	seen := make(map[string]struct{})

	for name := range s.cfg.Monitor.ServiceURLs {
		seen[name] = struct{}{}
	}

	for _, name := range s.source.ServiceNames() {
		seen[name] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
