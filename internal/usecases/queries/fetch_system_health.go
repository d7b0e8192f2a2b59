package queries

import (
	"context"

	"github.com/architeacher/svc-admin-monitor/internal/domain"
	"github.com/architeacher/svc-admin-monitor/internal/infrastructure"
	"github.com/architeacher/svc-admin-monitor/internal/service"
	"github.com/architeacher/svc-admin-monitor/internal/shared/decorator"
	"go.opentelemetry.io/otel/trace"
)

type (
	FetchSystemHealthQuery struct{}

	FetchSystemHealthQueryHandler decorator.QueryHandler[FetchSystemHealthQuery, *domain.SystemHealthCheck]

	fetchSystemHealthQueryHandler struct {
		monitoringService service.MonitoringService
	}
)

func NewFetchSystemHealthQueryHandler(
	monitoringService service.MonitoringService,
	logger infrastructure.Logger,
	tracerProvider trace.TracerProvider,
	metricsClient decorator.MetricsClient,
) decorator.QueryHandler[FetchSystemHealthQuery, *domain.SystemHealthCheck] {
	return decorator.ApplyQueryDecorators[FetchSystemHealthQuery, *domain.SystemHealthCheck](
		fetchSystemHealthQueryHandler{
			monitoringService: monitoringService,
		},
		logger,
		tracerProvider,
		metricsClient,
	)
}

func (h fetchSystemHealthQueryHandler) Execute(ctx context.Context, _ FetchSystemHealthQuery) (*domain.SystemHealthCheck, error) {
	return h.monitoringService.FetchSystemHealth(ctx)
}
