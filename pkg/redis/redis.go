package redis

import (
	"context"
	"fmt"
	"time"

	"product-api/pkg/config"
	"product-api/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis client with additional functionality
type Client struct {
	client *redis.Client
}

// NewClient creates a new Redis client
func NewClient(cfg *config.Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result := rdb.Ping(ctx)
	if result.Err() != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", result.Err())
	}

	logger.Info("Connected to Redis successfully")

	return &Client{
		client: rdb,
	}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.client.Close()
}

// IncrWindow increments the counter stored at key and starts its expiry
// when the counter is new. It returns the count and the remaining TTL.
func (c *Client) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	ttl := pipe.PTTL(ctx, key)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to increment window: %w", err)
	}

	remaining := ttl.Val()
	if remaining < 0 {
		// new counter, start the window
		err = c.client.PExpire(ctx, key, window).Err()
		if err != nil {
			return 0, 0, fmt.Errorf("failed to set window expiration: %w", err)
		}
		remaining = window
	}

	return incr.Val(), remaining, nil
}
