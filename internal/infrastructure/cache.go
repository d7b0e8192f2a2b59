package infrastructure

import (
	"context"
	"fmt"

	"github.com/architeacher/svc-admin-monitor/internal/config"
	"github.com/redis/go-redis/v9"
)

// KeydbClient wraps the Redis-protocol client used against KeyDB.
type KeydbClient struct {
	client *redis.Client
	logger Logger
}

func NewKeyDBClient(cfg config.CacheConfig, logger Logger) *KeydbClient {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolTimeout:  cfg.PoolTimeout,
		MaxRetries:   cfg.MaxRetries,
	})

	return &KeydbClient{
		client: client,
		logger: logger,
	}
}

func (c *KeydbClient) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("cache ping failed: %w", err)
	}

	return nil
}

// Info returns the raw INFO output for one section, e.g. "memory".
func (c *KeydbClient) Info(ctx context.Context, section string) (string, error) {
	info, err := c.client.Info(ctx, section).Result()
	if err != nil {
		return "", fmt.Errorf("cache info failed: %w", err)
	}

	return info, nil
}

func (c *KeydbClient) Close() error {
	return c.client.Close()
}
