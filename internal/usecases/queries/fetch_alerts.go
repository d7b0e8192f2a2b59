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
	FetchAlertsQuery struct {
		Period time.Duration
	}

	FetchAlertsQueryHandler decorator.QueryHandler[FetchAlertsQuery, []domain.Alert]

	fetchAlertsQueryHandler struct {
		monitoringService service.MonitoringService
	}
)

func NewFetchAlertsQueryHandler(
	monitoringService service.MonitoringService,
	logger infrastructure.Logger,
	tracerProvider trace.TracerProvider,
	metricsClient decorator.MetricsClient,
) decorator.QueryHandler[FetchAlertsQuery, []domain.Alert] {
	return decorator.ApplyQueryDecorators[FetchAlertsQuery, []domain.Alert](
		fetchAlertsQueryHandler{
			monitoringService: monitoringService,
		},
		logger,
		tracerProvider,
		metricsClient,
	)
}

func (h fetchAlertsQueryHandler) Execute(ctx context.Context, q FetchAlertsQuery) ([]domain.Alert, error) {
	return h.monitoringService.FetchAlerts(ctx, q.Period)
}
