package probes

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/architeacher/svc-admin-monitor/internal/config"
	"github.com/architeacher/svc-admin-monitor/internal/domain"
	"github.com/architeacher/svc-admin-monitor/internal/infrastructure"
	"github.com/shirou/gopsutil/v3/disk"
)

const (
	probeKindStorage = "file_storage"

	diskDegradedPct  = 80.0
	diskUnhealthyPct = 90.0
)

// StorageProbe inspects the volume backing file uploads. Health follows
// remaining capacity rather than latency.
type StorageProbe struct {
	path    string
	metrics infrastructure.Metrics
	logger  infrastructure.Logger
}

func NewStorageProbe(cfg config.VolumeConfig, logger infrastructure.Logger, metrics infrastructure.Metrics) *StorageProbe {
	path := cfg.Path
	if path == "" {
		if cwd, err := os.Getwd(); err == nil {
			path = cwd
		} else {
			path = "/"
		}
	}

	return &StorageProbe{
		path:    path,
		metrics: metrics,
		logger:  logger.Component("storage_probe"),
	}
}

func (p *StorageProbe) Name() string { return "file_storage" }

func (p *StorageProbe) Kind() domain.DependencyKind { return domain.DependencyKindFileStorage }

func (p *StorageProbe) Probe(ctx context.Context) domain.DependencyHealth {
	record := domain.DependencyHealth{
		Name:      p.Name(),
		Kind:      p.Kind(),
		CheckedAt: time.Now(),
	}

	start := time.Now()
	usage, err := disk.UsageWithContext(ctx, p.path)
	elapsed := time.Since(start)

	record.ResponseTimeMs = elapsed.Milliseconds()

	if err != nil {
		record.Status = domain.HealthStatusUnhealthy
		record.ErrorMessage = fmt.Sprintf("volume %q inaccessible: %v", p.path, err)

		p.metrics.RecordProbe(ctx, record.Name, probeKindStorage, string(record.Status), elapsed)

		return record
	}

	usedPct := usedPercent(usage.Free, usage.Total)

	record.Status = classifyDiskUsage(usedPct)
	record.AdditionalInfo = map[string]any{
		"path":          p.path,
		"free_bytes":    usage.Free,
		"total_bytes":   usage.Total,
		"usage_percent": usedPct,
	}

	if record.Status != domain.HealthStatusHealthy {
		record.ErrorMessage = fmt.Sprintf("disk usage at %.1f%%", usedPct)
	}

	p.metrics.RecordProbe(ctx, record.Name, probeKindStorage, string(record.Status), elapsed)

	return record
}

// usedPercent derives usage from free space so reserved blocks count as
// used, matching what operators see running out first.
func usedPercent(free, total uint64) float64 {
	if total == 0 {
		return 0
	}

	return 100 - (float64(free)/float64(total))*100
}

func classifyDiskUsage(usedPct float64) domain.HealthStatus {
	switch {
	case usedPct >= diskUnhealthyPct:
		return domain.HealthStatusUnhealthy
	case usedPct >= diskDegradedPct:
		return domain.HealthStatusDegraded
	default:
		return domain.HealthStatusHealthy
	}
}
