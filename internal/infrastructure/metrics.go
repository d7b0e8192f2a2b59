package infrastructure

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/architeacher/svc-admin-monitor/internal/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	metricsNamespace = "admin_monitor"
)

type (
	Metrics interface {
		RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration, requestSize, responseSize int64)
		RecordProbe(ctx context.Context, target, kind, status string, duration time.Duration)
		RecordHealthCheck(ctx context.Context, overallStatus string, duration time.Duration)
		RecordAlertEvaluation(ctx context.Context, alertCount int, duration time.Duration)
		RecordQuery(ctx context.Context, action string, success bool, duration time.Duration)
		Handler() http.Handler
		Shutdown(ctx context.Context) error
	}

	OTELMetrics struct {
		meterProvider *sdkmetric.MeterProvider
		meter         metric.Meter
		logger        Logger

		httpRequestTotal        metric.Int64Counter
		httpRequestDuration     metric.Float64Histogram
		httpRequestSize         metric.Int64Histogram
		httpResponseSize        metric.Int64Histogram
		probeTotal              metric.Int64Counter
		probeDuration           metric.Float64Histogram
		healthCheckTotal        metric.Int64Counter
		healthCheckDuration     metric.Float64Histogram
		alertEvaluationTotal    metric.Int64Counter
		alertEvaluationDuration metric.Float64Histogram
		alertsEmitted           metric.Int64Counter
		queryTotal              metric.Int64Counter
		queryDuration           metric.Float64Histogram
	}
)

func NewMetrics(ctx context.Context, cfg config.ServiceConfig, logger Logger) (Metrics, error) {
	if !cfg.Telemetry.Metrics.Enabled {
		logger.Info().Msg("metrics disabled, using NoOp implementation")

		return &NoOpMetrics{}, nil
	}

	return NewOTELMetrics(ctx, cfg, logger)
}

func NewOTELMetrics(ctx context.Context, cfg config.ServiceConfig, logger Logger) (*OTELMetrics, error) {
	endpoint := fmt.Sprintf("%s:%s", cfg.Telemetry.OtelGRPCHost, cfg.Telemetry.OtelGRPCPort)

	conn, err := grpc.NewClient(
		endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection to OTEL collector: %w", err)
	}

	exporter, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metric exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.AppConfig.ServiceName),
			semconv.ServiceVersionKey.String(cfg.AppConfig.ServiceVersion),
			semconv.ServiceInstanceIDKey.String(cfg.AppConfig.CommitSHA),
			semconv.DeploymentEnvironmentKey.String(cfg.AppConfig.Env),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(
		metricsNamespace,
		metric.WithInstrumentationVersion(cfg.AppConfig.ServiceVersion),
	)

	provider := &OTELMetrics{
		meterProvider: meterProvider,
		meter:         meter,
		logger:        logger,
	}

	if err := provider.initializeMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	logger.Info().
		Str("otel_endpoint", endpoint).
		Msg("OTEL metrics provider initialized successfully")

	return provider, nil
}

func (om *OTELMetrics) initializeMetrics() error {
	var err error

	om.httpRequestTotal, err = om.meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	om.httpRequestDuration, err = om.meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	om.httpRequestSize, err = om.meter.Int64Histogram(
		"http_request_size_bytes",
		metric.WithDescription("HTTP request size in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return fmt.Errorf("failed to create http_request_size_bytes histogram: %w", err)
	}

	om.httpResponseSize, err = om.meter.Int64Histogram(
		"http_response_size_bytes",
		metric.WithDescription("HTTP response size in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return fmt.Errorf("failed to create http_response_size_bytes histogram: %w", err)
	}

	om.probeTotal, err = om.meter.Int64Counter(
		"probes_total",
		metric.WithDescription("Total number of health probes performed"),
		metric.WithUnit("{probe}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create probes_total counter: %w", err)
	}

	om.probeDuration, err = om.meter.Float64Histogram(
		"probe_duration_seconds",
		metric.WithDescription("Health probe duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create probe_duration_seconds histogram: %w", err)
	}

	om.healthCheckTotal, err = om.meter.Int64Counter(
		"health_checks_total",
		metric.WithDescription("Total number of system health aggregations"),
		metric.WithUnit("{check}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create health_checks_total counter: %w", err)
	}

	om.healthCheckDuration, err = om.meter.Float64Histogram(
		"health_check_duration_seconds",
		metric.WithDescription("Wall-clock duration of a full health aggregation in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create health_check_duration_seconds histogram: %w", err)
	}

	om.alertEvaluationTotal, err = om.meter.Int64Counter(
		"alert_evaluations_total",
		metric.WithDescription("Total number of alert evaluations"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create alert_evaluations_total counter: %w", err)
	}

	om.alertEvaluationDuration, err = om.meter.Float64Histogram(
		"alert_evaluation_duration_seconds",
		metric.WithDescription("Alert evaluation duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create alert_evaluation_duration_seconds histogram: %w", err)
	}

	om.alertsEmitted, err = om.meter.Int64Counter(
		"alerts_emitted_total",
		metric.WithDescription("Total number of alerts emitted by evaluations"),
		metric.WithUnit("{alert}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create alerts_emitted_total counter: %w", err)
	}

	om.queryTotal, err = om.meter.Int64Counter(
		"queries_total",
		metric.WithDescription("Total number of application queries executed"),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create queries_total counter: %w", err)
	}

	om.queryDuration, err = om.meter.Float64Histogram(
		"query_duration_seconds",
		metric.WithDescription("Application query duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create query_duration_seconds histogram: %w", err)
	}

	return nil
}

func (om *OTELMetrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration, requestSize, responseSize int64) {
	om.httpRequestTotal.Add(ctx, 1,
		metric.WithAttributes(
			HTTPMethodAttr(method),
			HTTPPathAttr(path),
			HTTPStatusCodeAttr(statusCode),
		),
	)

	om.httpRequestDuration.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			HTTPMethodAttr(method),
			HTTPPathAttr(path),
			HTTPStatusCodeAttr(statusCode),
		),
	)

	om.httpRequestSize.Record(ctx, requestSize,
		metric.WithAttributes(
			HTTPMethodAttr(method),
			HTTPPathAttr(path),
		),
	)

	om.httpResponseSize.Record(ctx, responseSize,
		metric.WithAttributes(
			HTTPMethodAttr(method),
			HTTPPathAttr(path),
			HTTPStatusCodeAttr(statusCode),
		),
	)
}

func (om *OTELMetrics) RecordProbe(ctx context.Context, target, kind, status string, duration time.Duration) {
	om.probeTotal.Add(ctx, 1,
		metric.WithAttributes(
			TargetAttr(target),
			ProbeKindAttr(kind),
			StatusAttr(status),
		),
	)

	om.probeDuration.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			TargetAttr(target),
			ProbeKindAttr(kind),
		),
	)
}

func (om *OTELMetrics) RecordHealthCheck(ctx context.Context, overallStatus string, duration time.Duration) {
	om.healthCheckTotal.Add(ctx, 1,
		metric.WithAttributes(
			StatusAttr(overallStatus),
		),
	)

	om.healthCheckDuration.Record(ctx, duration.Seconds())
}

func (om *OTELMetrics) RecordAlertEvaluation(ctx context.Context, alertCount int, duration time.Duration) {
	om.alertEvaluationTotal.Add(ctx, 1)
	om.alertEvaluationDuration.Record(ctx, duration.Seconds())

	if alertCount > 0 {
		om.alertsEmitted.Add(ctx, int64(alertCount))
	}
}

func (om *OTELMetrics) RecordQuery(ctx context.Context, action string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}

	om.queryTotal.Add(ctx, 1,
		metric.WithAttributes(
			ActionAttr(action),
			StatusAttr(status),
		),
	)

	om.queryDuration.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			ActionAttr(action),
		),
	)
}

func (om *OTELMetrics) Handler() http.Handler {
	return promhttp.Handler()
}

func (om *OTELMetrics) Shutdown(ctx context.Context) error {
	if err := om.meterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown meter provider: %w", err)
	}

	return nil
}
