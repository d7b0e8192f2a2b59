package probes

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/architeacher/svc-admin-monitor/internal/config"
	"github.com/architeacher/svc-admin-monitor/internal/domain"
	"github.com/architeacher/svc-admin-monitor/internal/infrastructure"
)

const probeKindBroker = "broker"

// BrokerProbe checks RabbitMQ reachability with a plain TCP dial, so the
// check stays independent of any long-lived AMQP connection the client
// holds. Server metadata is enriched from the client when one is connected.
type BrokerProbe struct {
	cfg     config.QueueConfig
	timeout time.Duration
	client  *infrastructure.BrokerClient
	metrics infrastructure.Metrics
	logger  infrastructure.Logger
}

func NewBrokerProbe(
	cfg config.QueueConfig,
	monitorCfg config.MonitorConfig,
	client *infrastructure.BrokerClient,
	logger infrastructure.Logger,
	metrics infrastructure.Metrics,
) *BrokerProbe {
	return &BrokerProbe{
		cfg:     cfg,
		timeout: monitorCfg.BrokerProbeTimeout,
		client:  client,
		metrics: metrics,
		logger:  logger.Component("broker_probe"),
	}
}

func (p *BrokerProbe) Name() string { return "message_broker" }

func (p *BrokerProbe) Kind() domain.DependencyKind { return domain.DependencyKindMessageBroker }

func (p *BrokerProbe) Probe(ctx context.Context) domain.DependencyHealth {
	record := domain.DependencyHealth{
		Name:      p.Name(),
		Kind:      p.Kind(),
		CheckedAt: time.Now(),
	}

	address := net.JoinHostPort(p.cfg.Host, fmt.Sprintf("%d", p.cfg.Port))

	timeout := p.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	start := time.Now()
	conn, err := net.DialTimeout("tcp", address, timeout)
	elapsed := time.Since(start)

	record.ResponseTimeMs = elapsed.Milliseconds()

	switch {
	case err != nil:
		record.Status = domain.HealthStatusUnhealthy
		record.ErrorMessage = fmt.Sprintf("broker unreachable at %s: %v", address, err)
	case elapsed < healthyLatencyCutoff:
		record.Status = domain.HealthStatusHealthy
	default:
		record.Status = domain.HealthStatusDegraded
	}

	if conn != nil {
		_ = conn.Close()
	}

	if record.Status != domain.HealthStatusUnhealthy && p.client != nil {
		if props := p.client.ServerProperties(); len(props) > 0 {
			record.AdditionalInfo = serverInfo(props)
		}
	}

	p.metrics.RecordProbe(ctx, record.Name, probeKindBroker, string(record.Status), elapsed)

	return record
}

func serverInfo(props map[string]any) map[string]any {
	info := make(map[string]any, 2)

	for _, key := range []string{"product", "version", "cluster_name"} {
		if value, ok := props[key]; ok {
			info[key] = value
		}
	}

	if len(info) == 0 {
		return nil
	}

	return info
}
