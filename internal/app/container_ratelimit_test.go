package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dispatch-platform-go/internal/config"
	"dispatch-platform-go/internal/http/middleware/ratelimit"
	testlog "dispatch-platform-go/internal/testutil"
)

func TestNewRateLimiter_Disabled_ReturnsNop(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{RateLimit: config.RateLimit{Enabled: false}}

	rec := testlog.New()
	l := newRateLimiter(cfg, ratelimit.RealClock{}, rec.Logger())

	require.IsType(t, ratelimit.NopLimiter{}, l)
	entries := rec.Entries()
	require.Len(t, entries, 1)
	require.Equal(t, "rate limiting disabled", entries[0].Msg)
}

func TestNewRateLimiter_Enabled_LogsSettings(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{RateLimit: config.RateLimit{
		Enabled:    true,
		Rate:       2.5,
		Burst:      10,
		TTL:        time.Minute,
		MaxBuckets: 100,
	}}

	rec := testlog.New()
	l := newRateLimiter(cfg, ratelimit.RealClock{}, rec.Logger())

	require.IsType(t, &ratelimit.TokenBucketLimiter{}, l)

	entries := rec.Entries()
	require.Len(t, entries, 1)
	require.Equal(t, "rate limiting enabled", entries[0].Msg)

	fields := map[string]any{}
	for _, f := range entries[0].Fields {
		fields[f.Key] = f.Value
	}
	require.Equal(t, 2.5, fields["rate"])
	require.Equal(t, 10, fields["burst"])
}
