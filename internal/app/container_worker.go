package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"dispatch-platform-go/internal/config"
	"dispatch-platform-go/internal/intake"
	"dispatch-platform-go/internal/logx"
	"dispatch-platform-go/internal/redisx"
	"dispatch-platform-go/internal/service/orders"
	"dispatch-platform-go/internal/transport/kafka"
)

// MustBuildWorkerContainer builds the dig container for the intake worker
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

// MustBuildWorker builds and returns the dig container for the intake worker
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container, err := b.build(ctx)
	if err != nil {
		return nil, err
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

type intakeIn struct {
	dig.In

	Orders   *orders.Service
	Dedup    *redisx.Deduper
	Consumed *prometheus.CounterVec `name:"intake_events_total"`
	Logger   logx.Logger
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config) *redis.Client {
			return redisx.New(cfg.Redis.Addr)
		},
		func(cfg *config.Config, rdb *redis.Client) *redisx.Deduper {
			return redisx.NewDeduper(rdb, "intake", cfg.Redis.DedupTTL)
		},
		func(in intakeIn) *intake.Processor {
			return intake.NewProcessor(in.Orders, in.Dedup, in.Consumed, in.Logger)
		},
		makeIntakeHandler,
		func(cfg *config.Config, h kafka.HandleFunc, logger logx.Logger) (*kafka.Consumer, error) {
			return kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.IntakeGroup, cfg.Kafka.IntakeTopic, h, logger)
		},
	)
}
