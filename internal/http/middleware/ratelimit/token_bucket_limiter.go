package ratelimit

import (
	"sync"
	"time"
)

// Config stores TokenBucketLimiter settings.
type Config struct {
	Rate       float64       // tokens per second
	Burst      int           // capacity (max tokens)
	TTL        time.Duration // delete idle buckets (0 disables)
	MaxBuckets int           // maximum number of buckets
}

// TokenBucketLimiter keeps one token bucket per key. Buckets refill
// continuously at Rate up to Burst; each allowed request costs one token.
type TokenBucketLimiter struct {
	rate       float64
	burst      float64
	ttl        time.Duration
	maxBuckets int

	clock Clock

	mu        sync.RWMutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

// bucket is the per-key state. touched is both the refill anchor and the
// idle marker for TTL sweeps.
type bucket struct {
	mu      sync.Mutex
	tokens  float64
	touched time.Time
}

// NewTokenBucketLimiter creates a limiter with an injected clock. Zero or
// negative Rate and Burst fall back to 1.
func NewTokenBucketLimiter(clock Clock, cfg Config) *TokenBucketLimiter {
	if clock == nil {
		clock = RealClock{}
	}
	if cfg.Rate <= 0 {
		cfg.Rate = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	return &TokenBucketLimiter{
		rate:       cfg.Rate,
		burst:      float64(cfg.Burst),
		ttl:        cfg.TTL,
		maxBuckets: max(cfg.MaxBuckets, 0),
		clock:      clock,
		buckets:    make(map[string]*bucket),
	}
}

// Allow reports whether key may proceed. When the bucket cap is reached,
// unknown keys are rejected outright.
func (l *TokenBucketLimiter) Allow(key string) bool {
	now := l.clock.Now()
	l.maybeSweep(now)

	b := l.lookup(key)
	if b == nil {
		b = l.register(key, now)
	}
	if b == nil {
		return false
	}
	return l.spend(b, now)
}

func (l *TokenBucketLimiter) lookup(key string) *bucket {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.buckets[key]
}

// register creates the bucket for key unless another goroutine got there
// first or the map is full.
func (l *TokenBucketLimiter) register(key string, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b := l.buckets[key]; b != nil {
		return b
	}
	if l.maxBuckets > 0 && len(l.buckets) >= l.maxBuckets {
		return nil
	}

	b := &bucket{tokens: l.burst, touched: now}
	l.buckets[key] = b
	return b
}

func (l *TokenBucketLimiter) spend(b *bucket, now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if dt := now.Sub(b.touched); dt > 0 {
		b.tokens = min(b.tokens+dt.Seconds()*l.rate, l.burst)
	}
	b.touched = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// maybeSweep drops buckets idle for longer than TTL, at most once per
// max(minute, TTL/2).
func (l *TokenBucketLimiter) maybeSweep(now time.Time) {
	if l.ttl <= 0 {
		return
	}
	interval := max(time.Minute, l.ttl/2)

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.lastSweep.IsZero() && now.Sub(l.lastSweep) < interval {
		return
	}
	l.lastSweep = now

	for k, b := range l.buckets {
		b.mu.Lock()
		idle := now.Sub(b.touched)
		b.mu.Unlock()

		if idle > l.ttl {
			delete(l.buckets, k)
		}
	}
}
