package ports

import (
	"context"
	"time"

	"github.com/architeacher/svc-admin-monitor/internal/domain"
)

type (
	// ServiceProber checks one monitored service's liveness and latency
	// over HTTP. Implementations never return an error; every failure
	// mode is folded into the returned record.
	ServiceProber interface {
		Probe(ctx context.Context, name, baseURL string) domain.ServiceHealth
	}

	// DependencyProber checks one infrastructure dependency. Like
	// ServiceProber it is total: failures become data.
	DependencyProber interface {
		Name() string
		Kind() domain.DependencyKind
		Probe(ctx context.Context) domain.DependencyHealth
	}

	// HealthAggregator fans out all probes concurrently and rolls the
	// results up into one snapshot.
	HealthAggregator interface {
		CheckAll(ctx context.Context) *domain.SystemHealthCheck
	}

	// MetricsRecorder is the write path of the sample store. Record never
	// fails; overflow evicts the oldest sample.
	MetricsRecorder interface {
		Record(serviceName, endpoint string, responseTime time.Duration, success bool)
	}

	// MetricsSource is the read path of the sample store. Samples returns
	// a point-in-time copy that tolerates concurrent writes.
	MetricsSource interface {
		Samples(serviceName string) []domain.MetricSample
		ServiceNames() []string
	}

	// ResourceCollector reads host CPU and memory usage.
	ResourceCollector interface {
		Collect(ctx context.Context) (*domain.SystemResourceMetrics, error)
	}

	// DatabaseStatsCollector reads connection and query activity from the
	// database, separate from the liveness probe.
	DatabaseStatsCollector interface {
		Collect(ctx context.Context) (*domain.DatabaseMetrics, error)
	}

	// BrokerStatsCollector reads queue depth and consumer counts from the
	// message broker.
	BrokerStatsCollector interface {
		Collect(ctx context.Context) (*domain.BrokerMetrics, error)
	}
)
