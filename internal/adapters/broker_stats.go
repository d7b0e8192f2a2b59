package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/architeacher/svc-admin-monitor/internal/config"
	"github.com/architeacher/svc-admin-monitor/internal/domain"
	"github.com/architeacher/svc-admin-monitor/internal/infrastructure"
)

// BrokerQueueStatsCollector reads the monitored queue's depth and consumer
// count over the AMQP connection the broker client maintains.
type BrokerQueueStatsCollector struct {
	queueName string
	client    *infrastructure.BrokerClient
}

func NewBrokerQueueStatsCollector(cfg config.QueueConfig, client *infrastructure.BrokerClient) *BrokerQueueStatsCollector {
	return &BrokerQueueStatsCollector{
		queueName: cfg.QueueName,
		client:    client,
	}
}

func (c *BrokerQueueStatsCollector) Collect(ctx context.Context) (*domain.BrokerMetrics, error) {
	if c.client == nil {
		return nil, fmt.Errorf("broker client is not configured")
	}

	messages, consumers, err := c.client.InspectQueue(ctx, c.queueName)
	if err != nil {
		return nil, fmt.Errorf("inspecting queue %q: %w", c.queueName, err)
	}

	return &domain.BrokerMetrics{
		QueueName:     c.queueName,
		QueueDepth:    messages,
		ConsumerCount: consumers,
		CollectedAt:   time.Now(),
	}, nil
}
