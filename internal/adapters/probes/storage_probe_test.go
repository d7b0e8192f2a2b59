package probes

import (
	"context"
	"testing"

	"github.com/architeacher/svc-admin-monitor/internal/config"
	"github.com/architeacher/svc-admin-monitor/internal/domain"
	"github.com/architeacher/svc-admin-monitor/internal/infrastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyDiskUsage(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		usedPct  float64
		expected domain.HealthStatus
	}{
		{"plenty of space", 42.0, domain.HealthStatusHealthy},
		{"just under degraded", 79.9, domain.HealthStatusHealthy},
		{"degraded boundary", 80.0, domain.HealthStatusDegraded},
		{"nearly full", 89.9, domain.HealthStatusDegraded},
		{"unhealthy boundary", 90.0, domain.HealthStatusUnhealthy},
		{"full", 100.0, domain.HealthStatusUnhealthy},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, classifyDiskUsage(tc.usedPct))
		})
	}
}

func TestUsedPercent(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 75.0, usedPercent(250, 1000), 0.001)
	assert.InDelta(t, 0.0, usedPercent(1000, 1000), 0.001)
	assert.InDelta(t, 100.0, usedPercent(0, 1000), 0.001)
	assert.Zero(t, usedPercent(0, 0))
}

func TestStorageProbe_UsesTempDirVolume(t *testing.T) {
	t.Parallel()

	probe := NewStorageProbe(
		config.VolumeConfig{Path: t.TempDir()},
		infrastructure.Logger{},
		infrastructure.NewNoOpMetrics(),
	)

	result := probe.Probe(context.Background())

	require.NotEqual(t, domain.HealthStatusUnknown, result.Status)
	assert.Equal(t, domain.DependencyKindFileStorage, result.Kind)
	require.NotNil(t, result.AdditionalInfo)
	assert.Contains(t, result.AdditionalInfo, "free_bytes")
	assert.Contains(t, result.AdditionalInfo, "total_bytes")
	assert.Contains(t, result.AdditionalInfo, "usage_percent")
}

func TestStorageProbe_MissingVolume(t *testing.T) {
	t.Parallel()

	probe := NewStorageProbe(
		config.VolumeConfig{Path: "/definitely/not/a/mount"},
		infrastructure.Logger{},
		infrastructure.NewNoOpMetrics(),
	)

	result := probe.Probe(context.Background())

	assert.Equal(t, domain.HealthStatusUnhealthy, result.Status)
	assert.Contains(t, result.ErrorMessage, "inaccessible")
}
