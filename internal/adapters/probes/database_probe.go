package probes

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/architeacher/svc-admin-monitor/internal/config"
	"github.com/architeacher/svc-admin-monitor/internal/domain"
	"github.com/architeacher/svc-admin-monitor/internal/infrastructure"
)

const probeKindDatabase = "database"

// DatabaseProbe verifies Postgres connectivity with a trivial round trip.
type DatabaseProbe struct {
	storage *infrastructure.Storage
	metrics infrastructure.Metrics
	logger  infrastructure.Logger
}

func NewDatabaseProbe(storage *infrastructure.Storage, logger infrastructure.Logger, metrics infrastructure.Metrics) *DatabaseProbe {
	return &DatabaseProbe{
		storage: storage,
		metrics: metrics,
		logger:  logger.Component("database_probe"),
	}
}

func (p *DatabaseProbe) Name() string { return "database" }

func (p *DatabaseProbe) Kind() domain.DependencyKind { return domain.DependencyKindDatabase }

func (p *DatabaseProbe) Probe(ctx context.Context) domain.DependencyHealth {
	record := domain.DependencyHealth{
		Name:      p.Name(),
		Kind:      p.Kind(),
		CheckedAt: time.Now(),
	}

	start := time.Now()

	db, err := p.storage.GetDB()
	if err != nil {
		record.Status = domain.HealthStatusUnhealthy
		record.ErrorMessage = fmt.Sprintf("database unreachable: %v", err)
		record.ResponseTimeMs = time.Since(start).Milliseconds()

		p.metrics.RecordProbe(ctx, record.Name, probeKindDatabase, string(record.Status), time.Since(start))

		return record
	}

	// A dead connection and a failing query are different outcomes: the
	// first means the database is gone, the second that it accepts
	// connections but cannot serve work yet.
	pingErr := db.PingContext(ctx)

	var queryErr error

	if pingErr == nil {
		var one int
		queryErr = db.GetContext(ctx, &one, "SELECT 1")
	}

	elapsed := time.Since(start)
	record.ResponseTimeMs = elapsed.Milliseconds()
	record.Status, record.ErrorMessage = classifyDatabaseProbe(pingErr, queryErr, elapsed)

	p.metrics.RecordProbe(ctx, record.Name, probeKindDatabase, string(record.Status), elapsed)

	return record
}

func classifyDatabaseProbe(pingErr, queryErr error, elapsed time.Duration) (domain.HealthStatus, string) {
	switch {
	case pingErr != nil:
		return domain.HealthStatusUnhealthy, fmt.Sprintf("database unreachable: %v", pingErr)
	case queryErr != nil:
		return domain.HealthStatusDegraded, fmt.Sprintf("liveness query failed: %v", queryErr)
	case elapsed < healthyLatencyCutoff:
		return domain.HealthStatusHealthy, ""
	default:
		return domain.HealthStatusDegraded, ""
	}
}

// DatabaseStatsCollector reads connection and workload statistics from the
// Postgres catalog views for the metrics report.
type DatabaseStatsCollector struct {
	storage       *infrastructure.Storage
	slowCutoff    time.Duration
	logger        infrastructure.Logger
	statusBuilder sq.StatementBuilderType
}

func NewDatabaseStatsCollector(cfg config.StorageConfig, storage *infrastructure.Storage, logger infrastructure.Logger) *DatabaseStatsCollector {
	return &DatabaseStatsCollector{
		storage:       storage,
		slowCutoff:    cfg.SlowQueryCutoff,
		logger:        logger.Component("database_stats"),
		statusBuilder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (c *DatabaseStatsCollector) Collect(ctx context.Context) (*domain.DatabaseMetrics, error) {
	db, err := c.storage.GetDB()
	if err != nil {
		return nil, fmt.Errorf("acquiring database handle: %w", err)
	}

	stats := domain.DatabaseMetrics{CollectedAt: time.Now()}

	activeQuery, activeArgs, err := c.statusBuilder.
		Select("count(*)").
		From("pg_stat_activity").
		Where(sq.Eq{"state": "active"}).
		Where(sq.Expr("pid <> pg_backend_pid()")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building active connections query: %w", err)
	}

	if err := db.GetContext(ctx, &stats.ActiveConnections, activeQuery, activeArgs...); err != nil {
		return nil, fmt.Errorf("counting active connections: %w", err)
	}

	slowQuery, slowArgs, err := c.statusBuilder.
		Select("count(*)").
		From("pg_stat_activity").
		Where(sq.Eq{"state": "active"}).
		Where(sq.Expr("now() - query_start > ?::interval", c.slowCutoff.String())).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building slow queries query: %w", err)
	}

	if err := db.GetContext(ctx, &stats.SlowQueries, slowQuery, slowArgs...); err != nil {
		return nil, fmt.Errorf("counting slow queries: %w", err)
	}

	if err := db.GetContext(ctx, &stats.DatabaseSizeMB,
		"SELECT pg_database_size(current_database())::float8 / (1024 * 1024)"); err != nil {
		return nil, fmt.Errorf("reading database size: %w", err)
	}

	return &stats, nil
}
