package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/healthfair/backend/pkg/config"
	"github.com/healthfair/backend/pkg/retry"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Client wraps the go-redis client shared by the cache and the event bus
type Client struct {
	client *redis.Client
}

// NewClient connects to Redis. Redis is optional, so only a few quick
// attempts are made before the caller falls back to in-process adapters.
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.RedisAddr(),
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 2 * time.Second,
	})

	err := retry.DoWithLog(ctx, retry.OptionalDependencyConfig(), "redis ping",
		func() error {
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx).Err()
		},
		func(attempt int, err error, nextDelay time.Duration) {
			log.Debug().Err(err).Int("attempt", attempt).Dur("retry_in", nextDelay).Msg("Redis not ready")
		},
	)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.RedisAddr(), err)
	}

	return &Client{client: client}, nil
}

// Client returns the underlying go-redis client
func (c *Client) Client() *redis.Client {
	return c.client
}

// Close closes the connection pool
func (c *Client) Close() error {
	return c.client.Close()
}
