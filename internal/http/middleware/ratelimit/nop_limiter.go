package ratelimit

// NopLimiter admits every request; used when rate limiting is disabled.
type NopLimiter struct{}

// Allow always reports true.
func (NopLimiter) Allow(string) bool { return true }

var _ Limiter = NopLimiter{}
