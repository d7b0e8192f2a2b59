package adapters

import (
	"context"
	"time"

	"github.com/architeacher/svc-admin-monitor/internal/infrastructure"
	"github.com/architeacher/svc-admin-monitor/internal/shared/decorator"
)

// MetricsAdapter bridges the use case decorators to the metrics backend.
type MetricsAdapter struct {
	metrics infrastructure.Metrics
}

func NewMetricsAdapter(metrics infrastructure.Metrics) decorator.MetricsClient {
	return &MetricsAdapter{
		metrics: metrics,
	}
}

func (m *MetricsAdapter) RecordQueryExecution(ctx context.Context, action string, success bool, duration time.Duration) {
	m.metrics.RecordQuery(ctx, action, success, duration)
}
