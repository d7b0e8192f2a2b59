package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	t.Setenv("APP_ENVIRONMENT", "sandbox")
	t.Setenv("APP_SERVICE_VERSION", "1.0.0")
	t.Setenv("APP_COMMIT_SHA", "1234xwz")
	t.Setenv("LOGGING_LEVEL", "debug")
	t.Setenv("POSTGRES_PASSWORD", "test.Secret")
	t.Setenv("RABBITMQ_USERNAME", "john.doe")
	t.Setenv("MONITOR_SERVICE_URLS", "users:http://users:8080,bookings:http://bookings:8081")

	cfg, err := Init()
	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "sandbox", cfg.AppConfig.Env)
	assert.Equal(t, "svc-admin-monitor", cfg.AppConfig.ServiceName)
	assert.Equal(t, "1.0.0", cfg.AppConfig.ServiceVersion)
	assert.Equal(t, "1234xwz", cfg.AppConfig.CommitSHA)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "test.Secret", cfg.Storage.Password)
	assert.Equal(t, "john.doe", cfg.Queue.Username)
	assert.Equal(t, "http://users:8080", cfg.Monitor.ServiceURLs["users"])
	assert.Equal(t, "http://bookings:8081", cfg.Monitor.ServiceURLs["bookings"])
}

func TestInit_Defaults(t *testing.T) {
	cfg, err := Init()
	assert.NoError(t, err)

	assert.Equal(t, 5.0, cfg.Alerts.ErrorRateThreshold)
	assert.Equal(t, int64(2000), cfg.Alerts.ResponseTimeThresholdMs)
	assert.Equal(t, 90.0, cfg.Alerts.DiskUsageThreshold)
	assert.Equal(t, 5*time.Second, cfg.Monitor.ServiceProbeTimeout)
	assert.Equal(t, 3*time.Second, cfg.Monitor.BrokerProbeTimeout)
	assert.Equal(t, 10000, cfg.Monitor.SampleCapacity)
	assert.False(t, cfg.Cache.Configured(), "cache endpoint unset by default")
}

func TestLoader_ApplySecretToConfig(t *testing.T) {
	cfg, err := Init()
	assert.NoError(t, err)

	loader := NewLoader(cfg, nil, 0)

	assert.NoError(t, loader.applySecretToConfig(cfg, "ALERTS_ERROR_RATE_THRESHOLD", "7.5"))
	assert.NoError(t, loader.applySecretToConfig(cfg, "ALERTS_RESPONSE_TIME_THRESHOLD_MS", "1500"))
	assert.NoError(t, loader.applySecretToConfig(cfg, "ALERTS_DISK_USAGE_THRESHOLD", "85"))
	assert.NoError(t, loader.applySecretToConfig(cfg, "KEYDB_ADDR", "keydb:6379"))

	assert.Equal(t, 7.5, cfg.Alerts.ErrorRateThreshold)
	assert.Equal(t, int64(1500), cfg.Alerts.ResponseTimeThresholdMs)
	assert.Equal(t, 85.0, cfg.Alerts.DiskUsageThreshold)
	assert.Equal(t, "keydb:6379", cfg.Cache.Addr)

	assert.Error(t, loader.applySecretToConfig(cfg, "ALERTS_ERROR_RATE_THRESHOLD", "not-a-number"))
}
