// Package cache owns the shared Redis client.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gymstack/gymcore/config"
)

// Connect opens the configured Redis server and pings it. On failure the
// client is closed and an error returned, so callers can fall back to an
// in-process store.
func Connect(ctx context.Context) (*redis.Client, error) {
	addr := config.RedisAddr()
	if addr == "" {
		return nil, fmt.Errorf("cache: REDIS_ADDR not set")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     config.RedisPassword(),
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("cache: redis ping %s: %w", addr, err)
	}
	return rdb, nil
}
