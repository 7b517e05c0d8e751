package app

import (
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"dispatch-platform-go/internal/config"
	"dispatch-platform-go/internal/intake"
	"dispatch-platform-go/internal/redisx"
	"dispatch-platform-go/internal/transport/kafka"
)

func TestRegisterWorker_NoKafkaConfig_ProvidesNilConsumer(t *testing.T) {
	t.Parallel()

	c := setupTestContainerWithCfg(t, &config.Config{Port: 8080})
	require.NoError(t, registerWorker(c))

	err := c.Invoke(func(
		consumer *kafka.Consumer,
		rdb *redis.Client,
		dedup *redisx.Deduper,
		p *intake.Processor,
		h kafka.HandleFunc,
	) {
		require.Nil(t, consumer, "no brokers configured")
		require.Nil(t, rdb, "no redis address configured")
		require.NotNil(t, dedup)
		require.NotNil(t, p)
		require.NotNil(t, h)
	})
	require.NoError(t, err)
}
