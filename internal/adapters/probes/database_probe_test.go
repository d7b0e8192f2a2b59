package probes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/architeacher/svc-admin-monitor/internal/config"
	"github.com/architeacher/svc-admin-monitor/internal/domain"
	"github.com/architeacher/svc-admin-monitor/internal/infrastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseProbe_UnreachableIsUnhealthy(t *testing.T) {
	t.Parallel()

	storage, err := infrastructure.NewStorage(config.StorageConfig{
		Host:           "127.0.0.1",
		Port:           1,
		Database:       "admin_console",
		Username:       "postgres",
		SSLMode:        "disable",
		ConnectTimeout: time.Second,
	})
	require.NoError(t, err)

	probe := NewDatabaseProbe(storage, infrastructure.Logger{}, infrastructure.NewNoOpMetrics())

	result := probe.Probe(context.Background())

	assert.Equal(t, domain.HealthStatusUnhealthy, result.Status)
	assert.Equal(t, domain.DependencyKindDatabase, result.Kind)
	assert.Contains(t, result.ErrorMessage, "database unreachable")
}

func TestClassifyDatabaseProbe(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name            string
		pingErr         error
		queryErr        error
		elapsed         time.Duration
		expectedStatus  domain.HealthStatus
		expectedMessage string
	}{
		{
			name:            "connection failure is unhealthy",
			pingErr:         errors.New("connection refused"),
			elapsed:         20 * time.Millisecond,
			expectedStatus:  domain.HealthStatusUnhealthy,
			expectedMessage: "database unreachable: connection refused",
		},
		{
			name:            "query failure on a live connection is degraded",
			queryErr:        errors.New("the database system is starting up"),
			elapsed:         20 * time.Millisecond,
			expectedStatus:  domain.HealthStatusDegraded,
			expectedMessage: "liveness query failed: the database system is starting up",
		},
		{
			name:           "fast round trip is healthy",
			elapsed:        20 * time.Millisecond,
			expectedStatus: domain.HealthStatusHealthy,
		},
		{
			name:           "slow round trip is degraded",
			elapsed:        600 * time.Millisecond,
			expectedStatus: domain.HealthStatusDegraded,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			status, message := classifyDatabaseProbe(tc.pingErr, tc.queryErr, tc.elapsed)

			assert.Equal(t, tc.expectedStatus, status)
			assert.Equal(t, tc.expectedMessage, message)
		})
	}
}
