package queries

import (
	"context"
	"time"

	"github.com/architeacher/svc-admin-monitor/internal/domain"
	"github.com/architeacher/svc-admin-monitor/internal/infrastructure"
	"github.com/architeacher/svc-admin-monitor/internal/service"
	"github.com/architeacher/svc-admin-monitor/internal/shared/decorator"
	"go.opentelemetry.io/otel/trace"
)

type (
	FetchMetricsReportQuery struct {
		Period time.Duration
	}

	FetchMetricsReportQueryHandler decorator.QueryHandler[FetchMetricsReportQuery, *domain.MetricsReport]

	fetchMetricsReportQueryHandler struct {
		monitoringService service.MonitoringService
	}
)

func NewFetchMetricsReportQueryHandler(
	monitoringService service.MonitoringService,
	logger infrastructure.Logger,
	tracerProvider trace.TracerProvider,
	metricsClient decorator.MetricsClient,
) decorator.QueryHandler[FetchMetricsReportQuery, *domain.MetricsReport] {
	return decorator.ApplyQueryDecorators[FetchMetricsReportQuery, *domain.MetricsReport](
		fetchMetricsReportQueryHandler{
			monitoringService: monitoringService,
		},
		logger,
		tracerProvider,
		metricsClient,
	)
}

func (h fetchMetricsReportQueryHandler) Execute(ctx context.Context, q FetchMetricsReportQuery) (*domain.MetricsReport, error) {
	return h.monitoringService.FetchMetricsReport(ctx, q.Period)
}
