package probes

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/architeacher/svc-admin-monitor/internal/config"
	"github.com/architeacher/svc-admin-monitor/internal/domain"
	"github.com/architeacher/svc-admin-monitor/internal/infrastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBrokerProbe(t *testing.T, host string, port int) *BrokerProbe {
	t.Helper()

	return NewBrokerProbe(
		config.QueueConfig{Host: host, Port: port},
		config.MonitorConfig{BrokerProbeTimeout: 500 * time.Millisecond},
		nil,
		infrastructure.Logger{},
		infrastructure.NewNoOpMetrics(),
	)
}

func TestBrokerProbe_ReachableBroker(t *testing.T) {
	t.Parallel()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	go func() {
		for {
			conn, acceptErr := listener.Accept()
			if acceptErr != nil {
				return
			}
			_ = conn.Close()
		}
	}()

	host, portText, err := net.SplitHostPort(listener.Addr().String())
	require.NoError(t, err)

	port, err := strconv.Atoi(portText)
	require.NoError(t, err)

	probe := newTestBrokerProbe(t, host, port)

	result := probe.Probe(context.Background())

	assert.Equal(t, domain.HealthStatusHealthy, result.Status)
	assert.Equal(t, "message_broker", result.Name)
	assert.Equal(t, domain.DependencyKindMessageBroker, result.Kind)
	assert.Empty(t, result.ErrorMessage)
}

func TestBrokerProbe_UnreachableBroker(t *testing.T) {
	t.Parallel()

	probe := newTestBrokerProbe(t, "127.0.0.1", 1)

	result := probe.Probe(context.Background())

	assert.Equal(t, domain.HealthStatusUnhealthy, result.Status)
	assert.Contains(t, result.ErrorMessage, "broker unreachable")
}

func TestServerInfo(t *testing.T) {
	t.Parallel()

	info := serverInfo(map[string]any{
		"product":      "RabbitMQ",
		"version":      "3.13.1",
		"cluster_name": "rabbit@host",
		"copyright":    "ignored",
	})

	assert.Equal(t, map[string]any{
		"product":      "RabbitMQ",
		"version":      "3.13.1",
		"cluster_name": "rabbit@host",
	}, info)

	assert.Nil(t, serverInfo(map[string]any{"copyright": "ignored"}))
}
