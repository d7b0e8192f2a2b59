package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/architeacher/svc-admin-monitor/internal/config"
	"github.com/architeacher/svc-admin-monitor/internal/domain"
	"github.com/architeacher/svc-admin-monitor/internal/infrastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAggregator struct {
	check *domain.SystemHealthCheck
	calls int
}

func (s *stubAggregator) CheckAll(_ context.Context) *domain.SystemHealthCheck {
	s.calls++

	return s.check
}

type stubMetricsSource struct {
	samples map[string][]domain.MetricSample
}

func (s *stubMetricsSource) Samples(serviceName string) []domain.MetricSample {
	return s.samples[serviceName]
}

func (s *stubMetricsSource) ServiceNames() []string {
	names := make([]string, 0, len(s.samples))
	for name := range s.samples {
		names = append(names, name)
	}

	return names
}

type stubResourceCollector struct {
	metrics *domain.SystemResourceMetrics
	err     error
}

func (s *stubResourceCollector) Collect(_ context.Context) (*domain.SystemResourceMetrics, error) {
	return s.metrics, s.err
}

type stubDatabaseStats struct {
	metrics *domain.DatabaseMetrics
	err     error
}

func (s *stubDatabaseStats) Collect(_ context.Context) (*domain.DatabaseMetrics, error) {
	return s.metrics, s.err
}

type stubBrokerStats struct {
	metrics *domain.BrokerMetrics
	err     error
}

func (s *stubBrokerStats) Collect(_ context.Context) (*domain.BrokerMetrics, error) {
	return s.metrics, s.err
}

func testConfig() *config.ServiceConfig {
	return &config.ServiceConfig{
		Alerts: config.AlertsConfig{
			ErrorRateThreshold:      5.0,
			ResponseTimeThresholdMs: 2000,
			DiskUsageThreshold:      90.0,
		},
		Monitor: config.MonitorConfig{
			ServiceURLs:   map[string]string{"users": "http://users:8080"},
			DefaultPeriod: 15 * time.Minute,
		},
	}
}

func newTestMonitoringService(
	cfg *config.ServiceConfig,
	aggregator *stubAggregator,
	source *stubMetricsSource,
	resources *stubResourceCollector,
	dbStats *stubDatabaseStats,
	brokerStats *stubBrokerStats,
) MonitoringService {
	return NewMonitoringService(
		cfg,
		aggregator,
		source,
		resources,
		dbStats,
		brokerStats,
		infrastructure.Logger{},
		infrastructure.NewNoOpMetrics(),
	)
}

func TestMonitoringService_FetchSystemHealth(t *testing.T) {
	t.Parallel()

	check := &domain.SystemHealthCheck{OverallStatus: domain.OverallStatusHealthy}
	aggregator := &stubAggregator{check: check}

	svc := newTestMonitoringService(
		testConfig(),
		aggregator,
		&stubMetricsSource{},
		&stubResourceCollector{},
		&stubDatabaseStats{},
		&stubBrokerStats{},
	)

	result, err := svc.FetchSystemHealth(context.Background())

	require.NoError(t, err)
	assert.Same(t, check, result)
	assert.Equal(t, 1, aggregator.calls)
}

func TestMonitoringService_FetchMetricsReport(t *testing.T) {
	t.Parallel()

	now := time.Now()

	source := &stubMetricsSource{samples: map[string][]domain.MetricSample{
		"bookings": {
			{ServiceName: "bookings", Endpoint: "/v1/bookings", ResponseTimeMs: 150, Success: true, Timestamp: now},
		},
	}}

	svc := newTestMonitoringService(
		testConfig(),
		&stubAggregator{check: &domain.SystemHealthCheck{}},
		source,
		&stubResourceCollector{metrics: &domain.SystemResourceMetrics{CPUUsagePercent: 12.5}},
		&stubDatabaseStats{metrics: &domain.DatabaseMetrics{ActiveConnections: 7}},
		&stubBrokerStats{metrics: &domain.BrokerMetrics{QueueName: "admin_events", QueueDepth: 3}},
	)

	report, err := svc.FetchMetricsReport(context.Background(), 10*time.Minute)

	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, report.Period)

	// Configured services appear even without traffic, recorded ones too.
	require.Len(t, report.Services, 2)
	assert.Equal(t, "bookings", report.Services[0].ServiceName)
	assert.Equal(t, 1, report.Services[0].RequestCount)
	assert.Equal(t, "users", report.Services[1].ServiceName)
	assert.Zero(t, report.Services[1].RequestCount)

	require.NotNil(t, report.Resources)
	assert.InDelta(t, 12.5, report.Resources.CPUUsagePercent, 0.001)
	require.NotNil(t, report.Database)
	assert.Equal(t, 7, report.Database.ActiveConnections)
	require.NotNil(t, report.Broker)
	assert.Equal(t, 3, report.Broker.QueueDepth)
}

func TestMonitoringService_FetchMetricsReport_DefaultPeriod(t *testing.T) {
	t.Parallel()

	svc := newTestMonitoringService(
		testConfig(),
		&stubAggregator{check: &domain.SystemHealthCheck{}},
		&stubMetricsSource{},
		&stubResourceCollector{},
		&stubDatabaseStats{},
		&stubBrokerStats{},
	)

	report, err := svc.FetchMetricsReport(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, report.Period)
}

func TestMonitoringService_CollectorFailuresDegradeToNilSections(t *testing.T) {
	t.Parallel()

	svc := newTestMonitoringService(
		testConfig(),
		&stubAggregator{check: &domain.SystemHealthCheck{}},
		&stubMetricsSource{},
		&stubResourceCollector{err: errors.New("proc unavailable")},
		&stubDatabaseStats{err: errors.New("connection refused")},
		&stubBrokerStats{err: errors.New("channel closed")},
	)

	report, err := svc.FetchMetricsReport(context.Background(), time.Minute)

	require.NoError(t, err)
	assert.Nil(t, report.Resources)
	assert.Nil(t, report.Database)
	assert.Nil(t, report.Broker)
	assert.NotNil(t, report.Services)
}

func TestMonitoringService_FetchAlerts(t *testing.T) {
	t.Parallel()

	check := &domain.SystemHealthCheck{
		Services: []domain.ServiceHealth{
			{ServiceName: "users", Status: domain.HealthStatusUnhealthy, ErrorMessage: "connection refused"},
		},
	}

	svc := newTestMonitoringService(
		testConfig(),
		&stubAggregator{check: check},
		&stubMetricsSource{},
		&stubResourceCollector{metrics: &domain.SystemResourceMetrics{DiskUsagePercent: 91.0}},
		&stubDatabaseStats{},
		&stubBrokerStats{},
	)

	alerts, err := svc.FetchAlerts(context.Background(), time.Minute)

	require.NoError(t, err)
	require.Len(t, alerts, 2)

	// Critical service-down alert sorts ahead of the disk warning.
	assert.Equal(t, domain.AlertTypeServiceDown, alerts[0].Type)
	assert.Equal(t, domain.AlertSeverityCritical, alerts[0].Severity)
	assert.Equal(t, domain.AlertTypeResource, alerts[1].Type)
	assert.Equal(t, domain.AlertSeverityWarning, alerts[1].Severity)
}

func TestMonitoringService_ThresholdChangesApplyWithoutRestart(t *testing.T) {
	t.Parallel()

	now := time.Now()

	cfg := testConfig()

	source := &stubMetricsSource{samples: map[string][]domain.MetricSample{
		"users": {
			{ServiceName: "users", Endpoint: "/v1/users", ResponseTimeMs: 100, Success: true, Timestamp: now},
			{ServiceName: "users", Endpoint: "/v1/users", ResponseTimeMs: 100, Success: false, Timestamp: now},
		},
	}}

	svc := newTestMonitoringService(
		cfg,
		&stubAggregator{check: &domain.SystemHealthCheck{}},
		source,
		&stubResourceCollector{},
		&stubDatabaseStats{},
		&stubBrokerStats{},
	)

	// 50% error rate exceeds the default 5% threshold.
	alerts, err := svc.FetchAlerts(context.Background(), time.Minute)
	require.NoError(t, err)
	require.Len(t, alerts, 1)

	// Raising the threshold in config silences the alert on the next call.
	cfg.Alerts.ErrorRateThreshold = 60.0

	alerts, err = svc.FetchAlerts(context.Background(), time.Minute)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}
