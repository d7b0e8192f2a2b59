package infrastructure

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/architeacher/svc-admin-monitor/internal/config"
	"github.com/architeacher/svc-admin-monitor/internal/shared/backoff"
	amqp "github.com/rabbitmq/amqp091-go"
)

const brokerConnectAttempts = 3

// BrokerClient holds an AMQP connection to the message broker. It is used
// to enrich broker health records with server properties and to read queue
// depth for the metrics report; liveness classification itself happens at
// the socket level in the broker probe.
type BrokerClient struct {
	cfg      config.QueueConfig
	strategy backoff.Strategy
	logger   Logger

	mu   sync.Mutex
	conn *amqp.Connection
}

func NewBrokerClient(cfg config.QueueConfig, strategy backoff.Strategy, logger Logger) *BrokerClient {
	return &BrokerClient{
		cfg:      cfg,
		strategy: strategy,
		logger:   logger.Component("broker_client"),
	}
}

// Connect dials the broker, retrying with backoff. It is safe to call
// repeatedly; an open connection is reused.
func (b *BrokerClient) Connect(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn != nil && !b.conn.IsClosed() {
		return nil
	}

	uri := amqp.URI{
		Scheme:   "amqp",
		Username: b.cfg.Username,
		Password: b.cfg.Password,
		Host:     b.cfg.Host,
		Port:     b.cfg.Port,
		Vhost:    b.cfg.VirtualHost,
	}

	var lastErr error

	for attempt := 0; attempt < brokerConnectAttempts; attempt++ {
		if attempt > 0 {
			delay := b.strategy.Backoff(attempt)

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return fmt.Errorf("broker connect cancelled: %w", ctx.Err())
			}
		}

		conn, err := amqp.DialConfig(uri.String(), amqp.Config{
			Heartbeat: b.cfg.Heartbeat,
			Dial:      amqp.DefaultDial(b.cfg.ConnectTimeout),
		})
		if err != nil {
			lastErr = err
			b.logger.Warn().Err(err).Int("attempt", attempt+1).Msg("broker dial failed")

			continue
		}

		b.conn = conn

		return nil
	}

	return fmt.Errorf("failed to connect to broker after %d attempts: %w", brokerConnectAttempts, lastErr)
}

// ServerProperties returns what the broker announced during the handshake
// (product, version, platform). Returns nil when not connected.
func (b *BrokerClient) ServerProperties() map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn == nil || b.conn.IsClosed() {
		return nil
	}

	props := make(map[string]any, len(b.conn.Properties))
	for k, v := range b.conn.Properties {
		props[k] = v
	}

	return props
}

// InspectQueue reports the monitored queue's current message and consumer
// counts without consuming from it.
func (b *BrokerClient) InspectQueue(ctx context.Context, name string) (int, int, error) {
	if err := b.Connect(ctx); err != nil {
		return 0, 0, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	ch, err := b.conn.Channel()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open broker channel: %w", err)
	}

	defer func() {
		if closeErr := ch.Close(); closeErr != nil {
			b.logger.Warn().Err(closeErr).Msg("failed to close broker channel")
		}
	}()

	queue, err := ch.QueueInspect(name)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to inspect queue %s: %w", name, err)
	}

	return queue.Messages, queue.Consumers, nil
}

func (b *BrokerClient) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn == nil || b.conn.IsClosed() {
		return nil
	}

	if err := b.conn.Close(); err != nil {
		return fmt.Errorf("failed to close broker connection: %w", err)
	}

	b.conn = nil

	return nil
}
