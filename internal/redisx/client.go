package redisx

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// New creates a Redis client for addr. An empty addr returns nil, which
// callers treat as "dedup disabled".
func New(addr string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr})
}

// Ping checks connectivity.
func Ping(ctx context.Context, rdb *redis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return rdb.Ping(ctx).Err()
}
