package redisx

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Dedup key layout: dedup:{scope}:{id}.
const keyDedup = "dedup:%s:%s"

// DefaultDedupTTL bounds how long a processed event key is remembered.
var DefaultDedupTTL = 48 * time.Hour

// Deduper remembers processed event keys in Redis. FirstSeen is a SETNX, so
// exactly one competing consumer claims a given key.
type Deduper struct {
	rdb   *redis.Client
	scope string
	ttl   time.Duration
}

// NewDeduper creates a Deduper for scope. A nil client disables dedup: every
// key reads as first-seen.
func NewDeduper(rdb *redis.Client, scope string, ttl time.Duration) *Deduper {
	if ttl <= 0 {
		ttl = DefaultDedupTTL
	}
	return &Deduper{rdb: rdb, scope: scope, ttl: ttl}
}

// FirstSeen claims id. It returns true when this call is the first to see
// the id within the TTL window.
func (d *Deduper) FirstSeen(ctx context.Context, id string) (bool, error) {
	if d == nil || d.rdb == nil {
		return true, nil
	}
	key := fmt.Sprintf(keyDedup, d.scope, id)
	return d.rdb.SetNX(ctx, key, "1", d.ttl).Result()
}
