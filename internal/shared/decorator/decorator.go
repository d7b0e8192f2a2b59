package decorator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/architeacher/svc-admin-monitor/internal/infrastructure"
	"go.opentelemetry.io/otel/trace"
)

type (
	// QueryHandler executes one read-side use case.
	QueryHandler[Q any, R any] interface {
		Execute(ctx context.Context, query Q) (R, error)
	}

	// MetricsClient records use case executions for the metrics backend.
	MetricsClient interface {
		RecordQueryExecution(ctx context.Context, action string, success bool, duration time.Duration)
	}
)

// ApplyQueryDecorators wraps a handler with logging, tracing and metrics.
func ApplyQueryDecorators[Q any, R any](
	handler QueryHandler[Q, R],
	logger infrastructure.Logger,
	tracerProvider trace.TracerProvider,
	metricsClient MetricsClient,
) QueryHandler[Q, R] {
	return queryLoggingDecorator[Q, R]{
		base: queryMetricsDecorator[Q, R]{
			base: queryTracingDecorator[Q, R]{
				base:           handler,
				tracerProvider: tracerProvider,
			},
			client: metricsClient,
		},
		logger: logger,
	}
}

type queryLoggingDecorator[Q any, R any] struct {
	base   QueryHandler[Q, R]
	logger infrastructure.Logger
}

func (d queryLoggingDecorator[Q, R]) Execute(ctx context.Context, query Q) (R, error) {
	action := queryActionName(query)

	result, err := d.base.Execute(ctx, query)
	if err != nil {
		d.logger.Error().Err(err).Str("query", action).Msg("query failed")

		return result, err
	}

	d.logger.Debug().Str("query", action).Msg("query executed")

	return result, nil
}

type queryMetricsDecorator[Q any, R any] struct {
	base   QueryHandler[Q, R]
	client MetricsClient
}

func (d queryMetricsDecorator[Q, R]) Execute(ctx context.Context, query Q) (R, error) {
	start := time.Now()

	result, err := d.base.Execute(ctx, query)

	d.client.RecordQueryExecution(ctx, queryActionName(query), err == nil, time.Since(start))

	return result, err
}

type queryTracingDecorator[Q any, R any] struct {
	base           QueryHandler[Q, R]
	tracerProvider trace.TracerProvider
}

func (d queryTracingDecorator[Q, R]) Execute(ctx context.Context, query Q) (R, error) {
	tracer := d.tracerProvider.Tracer("usecases")

	ctx, span := tracer.Start(ctx, queryActionName(query))
	defer span.End()

	result, err := d.base.Execute(ctx, query)
	if err != nil {
		span.RecordError(err)
	}

	return result, err
}

func queryActionName(query any) string {
	return strings.ToLower(strings.TrimPrefix(fmt.Sprintf("%T", query), "queries."))
}
