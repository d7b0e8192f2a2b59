package domain

import (
	"time"
)

type (
	// MetricSample is one request observation. Samples are immutable once
	// recorded and evicted in FIFO order when a service's window is full.
	MetricSample struct {
		ServiceName    string    `json:"service_name"`
		Endpoint       string    `json:"endpoint"`
		ResponseTimeMs int64     `json:"response_time_ms"`
		Success        bool      `json:"success"`
		Timestamp      time.Time `json:"timestamp"`
	}

	// EndpointMetrics is the per-endpoint breakdown inside a service summary.
	EndpointMetrics struct {
		Endpoint          string  `json:"endpoint"`
		RequestCount      int     `json:"request_count"`
		AvgResponseTimeMs float64 `json:"avg_response_time_ms"`
		ErrorRatePct      float64 `json:"error_rate_pct"`
	}

	// ServiceMetricsSummary is computed on read over the trailing period,
	// never stored.
	ServiceMetricsSummary struct {
		ServiceName       string            `json:"service_name"`
		Period            time.Duration     `json:"period"`
		RequestCount      int               `json:"request_count"`
		SuccessCount      int               `json:"success_count"`
		ErrorCount        int               `json:"error_count"`
		ErrorRatePct      float64           `json:"error_rate_pct"`
		AvgResponseTimeMs float64           `json:"avg_response_time_ms"`
		P95ResponseTimeMs int64             `json:"p95_response_time_ms"`
		P99ResponseTimeMs int64             `json:"p99_response_time_ms"`
		Endpoints         []EndpointMetrics `json:"endpoints"`
	}

	// SystemResourceMetrics is a point-in-time host resource reading.
	SystemResourceMetrics struct {
		CPUUsagePercent    float64   `json:"cpu_usage_percent"`
		MemoryUsagePercent float64   `json:"memory_usage_percent"`
		MemoryUsedMB       uint64    `json:"memory_used_mb"`
		MemoryTotalMB      uint64    `json:"memory_total_mb"`
		DiskUsagePercent   float64   `json:"disk_usage_percent"`
		DiskFreeMB         uint64    `json:"disk_free_mb"`
		DiskTotalMB        uint64    `json:"disk_total_mb"`
		CollectedAt        time.Time `json:"collected_at"`
	}

	// DatabaseMetrics carries connection pool and activity statistics
	// collected alongside the database probe.
	DatabaseMetrics struct {
		ActiveConnections int       `json:"active_connections"`
		SlowQueries       int       `json:"slow_queries"`
		DatabaseSizeMB    float64   `json:"database_size_mb"`
		CollectedAt       time.Time `json:"collected_at"`
	}

	// BrokerMetrics carries the monitored queue's depth and consumer count.
	BrokerMetrics struct {
		QueueName     string    `json:"queue_name"`
		QueueDepth    int       `json:"queue_depth"`
		ConsumerCount int       `json:"consumer_count"`
		CollectedAt   time.Time `json:"collected_at"`
	}

	// MetricsReport bundles every summary the dashboard reads for one
	// collection period. Resource, database and broker sections are nil
	// when their collectors are unavailable.
	MetricsReport struct {
		GeneratedAt time.Time               `json:"generated_at"`
		Period      time.Duration           `json:"period"`
		Services    []ServiceMetricsSummary `json:"services"`
		Resources   *SystemResourceMetrics  `json:"resources,omitempty"`
		Database    *DatabaseMetrics        `json:"database,omitempty"`
		Broker      *BrokerMetrics          `json:"broker,omitempty"`
	}
)
