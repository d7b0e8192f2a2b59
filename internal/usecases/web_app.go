package usecases

import (
	"github.com/architeacher/svc-admin-monitor/internal/infrastructure"
	"github.com/architeacher/svc-admin-monitor/internal/service"
	"github.com/architeacher/svc-admin-monitor/internal/shared/decorator"
	"github.com/architeacher/svc-admin-monitor/internal/usecases/queries"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	WebApplication struct {
		Queries Queries
	}

	Queries struct {
		FetchSystemHealthQueryHandler  queries.FetchSystemHealthQueryHandler
		FetchMetricsReportQueryHandler queries.FetchMetricsReportQueryHandler
		FetchAlertsQueryHandler        queries.FetchAlertsQueryHandler
	}
)

func NewWebApplication(
	monitoringService service.MonitoringService,
	logger infrastructure.Logger,
	tracerProvider otelTrace.TracerProvider,
	metricsClient decorator.MetricsClient,
) *WebApplication {
	return &WebApplication{
		Queries: Queries{
			FetchSystemHealthQueryHandler: queries.NewFetchSystemHealthQueryHandler(
				monitoringService, logger, tracerProvider, metricsClient,
			),
			FetchMetricsReportQueryHandler: queries.NewFetchMetricsReportQueryHandler(
				monitoringService, logger, tracerProvider, metricsClient,
			),
			FetchAlertsQueryHandler: queries.NewFetchAlertsQueryHandler(
				monitoringService, logger, tracerProvider, metricsClient,
			),
		},
	}
}
