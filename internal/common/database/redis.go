// internal/common/database/redis.go
package database

import (
	"context"
	"fmt"
	"time"

	"fishlog-identify/internal/common/config"

	"github.com/redis/go-redis/v9"
)

// Redis only backs the request rate limiter, which fails open. Timeouts are
// kept short so a slow Redis delays a request by at most a few hundred ms.
const (
	redisClientName   = "fishlog-identify-ratelimit"
	redisDialTimeout  = 2 * time.Second
	redisReadTimeout  = 300 * time.Millisecond
	redisWriteTimeout = 300 * time.Millisecond
	redisPoolSize     = 20
)

// RedisClient wraps the client used by the rate limiter.
type RedisClient struct {
	Client *redis.Client
}

func NewRedis(cfg config.RedisConfig) (*RedisClient, error) {
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ClientName:   redisClientName,
		DialTimeout:  redisDialTimeout,
		ReadTimeout:  redisReadTimeout,
		WriteTimeout: redisWriteTimeout,
		PoolSize:     redisPoolSize,
		MinIdleConns: 2,
		MaxRetries:   1,
	})

	return &RedisClient{Client: rdb}, nil
}

func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (c *RedisClient) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}

func (c *RedisClient) GetClient() *redis.Client {
	return c.Client
}
