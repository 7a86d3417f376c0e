package cache

import (
	"context"
	"fmt"
	"time"

	"sanctuary/internal/config"

	"github.com/redis/go-redis/v9"
)

// ErrRedisNotConfigured is returned when no Redis address is configured.
var ErrRedisNotConfigured = fmt.Errorf("redis address is not configured")

// NewRedisClient creates a client and pings the server once. Callers treat
// any error as "run without a cache".
func NewRedisClient(redisCfg config.RedisConfig) (*redis.Client, error) {
	if redisCfg.Address == "" {
		return nil, ErrRedisNotConfigured
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Address,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", redisCfg.Address, err)
	}

	return client, nil
}
