package probes

import (
	"context"
	"testing"

	"github.com/architeacher/svc-admin-monitor/internal/config"
	"github.com/architeacher/svc-admin-monitor/internal/domain"
	"github.com/architeacher/svc-admin-monitor/internal/infrastructure"
	"github.com/stretchr/testify/assert"
)

func TestCacheProbe_UnconfiguredReportsUnknown(t *testing.T) {
	t.Parallel()

	probe := NewCacheProbe(
		config.CacheConfig{},
		nil,
		infrastructure.Logger{},
		infrastructure.NewNoOpMetrics(),
	)

	result := probe.Probe(context.Background())

	assert.Equal(t, domain.HealthStatusUnknown, result.Status)
	assert.Equal(t, domain.DependencyKindCache, result.Kind)
	assert.Equal(t, "cache is not configured", result.ErrorMessage)
	assert.Zero(t, result.ResponseTimeMs)
}
