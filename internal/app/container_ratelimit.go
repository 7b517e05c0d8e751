package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"dispatch-platform-go/internal/config"
	"dispatch-platform-go/internal/http/middleware/ratelimit"
	"dispatch-platform-go/internal/logx"
)

func newRateLimitClock() ratelimit.Clock { return ratelimit.RealClock{} }

// newRateLimiter yields a no-op limiter when rate limiting is disabled,
// so the middleware chain stays the same either way.
func newRateLimiter(cfg *config.Config, clock ratelimit.Clock, logger logx.Logger) ratelimit.Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled {
		logger.Info("rate limiting disabled")
		return ratelimit.NopLimiter{}
	}
	logger.Info("rate limiting enabled",
		logx.Float64("rate", rl.Rate),
		logx.Int("burst", rl.Burst),
	)
	return ratelimit.NewTokenBucketLimiter(clock, ratelimit.Config{
		Rate:       rl.Rate,
		Burst:      rl.Burst,
		TTL:        rl.TTL,
		MaxBuckets: rl.MaxBuckets,
	})
}

type rateLimitIn struct {
	dig.In
	Logger  logx.Logger
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
	Limiter ratelimit.Limiter
}

func newRateLimitMiddleware(in rateLimitIn) *ratelimit.Middleware {
	return ratelimit.New(in.Logger, in.Counter, in.Limiter)
}
