package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"dispatch-platform-go/internal/config"
	"dispatch-platform-go/internal/fanout"
	"dispatch-platform-go/internal/http/handlers"
	"dispatch-platform-go/internal/http/middleware/ratelimit"
	"dispatch-platform-go/internal/http/pprofserver"
	"dispatch-platform-go/internal/http/router"
	"dispatch-platform-go/internal/logx"
	"dispatch-platform-go/internal/notify"
	"dispatch-platform-go/internal/repository"
	"dispatch-platform-go/internal/service/assignment"
	"dispatch-platform-go/internal/service/orders"
	"dispatch-platform-go/internal/service/partners"
	"dispatch-platform-go/internal/transport/kafka"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, logx.Logger, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, logx.Logger, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns the dig container for the HTTP service
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerMetrics(container); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerFanout(container); err != nil {
		return nil, fmt.Errorf("fanout: %w", err)
	}
	if err := registerNotify(container); err != nil {
		return nil, fmt.Errorf("notify: %w", err)
	}
	if err := registerDomainServices(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		config.Load,
		NewLogger,
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, logx.Logger, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, logger logx.Logger, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, logger, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB)
}

type hubIn struct {
	dig.In

	Cfg     *config.Config
	Logger  logx.Logger
	Dropped prometheus.Counter `name:"fanout_dropped_total"`
}

func newHub(in hubIn) *fanout.Hub {
	return fanout.NewHub(in.Cfg.Fanout.Buffer, in.Logger, in.Dropped)
}

func newBridgeProducer(cfg *config.Config) (*kafka.Producer, error) {
	return kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.BridgeTopic)
}

type publisherIn struct {
	dig.In

	Hub      *fanout.Hub
	Producer *kafka.Producer
	Logger   logx.Logger
	Events   *prometheus.CounterVec `name:"fanout_events_total"`
}

func newEventPublisher(in publisherIn) *fanout.Publisher {
	// a typed nil *kafka.Producer must not end up inside the Sink interface
	var sink fanout.Sink
	if in.Producer != nil {
		sink = in.Producer
	}
	return fanout.NewPublisher(in.Hub, sink, in.Logger, in.Events)
}

func registerFanout(container *dig.Container) error {
	return provideAll(container,
		newHub,
		newBridgeProducer,
		newEventPublisher,
	)
}

func newWebhookClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}

func newNotifyChannels(cfg *config.Config, client *http.Client) []notify.Channel {
	return []notify.Channel{
		notify.NewAlertChannel(notify.ChannelConfig{
			Endpoint: cfg.Notify.Alert.Endpoint,
			APIKey:   cfg.Notify.Alert.APIKey,
		}, client),
		notify.NewSMSChannel(notify.ChannelConfig{
			Endpoint: cfg.Notify.SMS.Endpoint,
			APIKey:   cfg.Notify.SMS.APIKey,
		}, client),
		notify.NewPushChannel(notify.ChannelConfig{
			Endpoint: cfg.Notify.Push.Endpoint,
			APIKey:   cfg.Notify.Push.APIKey,
		}, client),
	}
}

type dispatcherIn struct {
	dig.In

	Cfg      *config.Config
	Channels []notify.Channel
	Logger   logx.Logger
	Outcomes *prometheus.CounterVec `name:"notifications_total"`
}

func newNotifyDispatcher(in dispatcherIn) *notify.Dispatcher {
	return notify.NewDispatcher(in.Channels, in.Cfg.Notify.SendTimeout, in.Logger, in.Outcomes)
}

func registerNotify(container *dig.Container) error {
	return provideAll(container,
		newWebhookClient,
		newNotifyChannels,
		newNotifyDispatcher,
	)
}

type coordinatorIn struct {
	dig.In

	Tx          *repository.DispatchRepo
	Pub         *fanout.Publisher
	Notifier    *notify.Dispatcher
	Assignments prometheus.Counter `name:"assignments_total"`
	Timeout     time.Duration
	Logger      logx.Logger
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		repository.NewOrderRepo,
		repository.NewPartnerRepo,
		repository.NewDispatchRepo,
		func() time.Duration { return 3 * time.Second },
		func(
			repo *repository.OrderRepo,
			partnerRepo *repository.PartnerRepo,
			txr *repository.DispatchRepo,
			pub *fanout.Publisher,
			n *notify.Dispatcher,
			timeout time.Duration,
			logger logx.Logger,
		) *orders.Service {
			return orders.NewService(repo, partnerRepo, txr, pub, n, timeout, logger)
		},
		func(
			repo *repository.PartnerRepo,
			txr *repository.DispatchRepo,
			pub *fanout.Publisher,
			timeout time.Duration,
			logger logx.Logger,
		) *partners.Service {
			return partners.NewService(repo, txr, pub, timeout, logger)
		},
		func(in coordinatorIn) *assignment.Coordinator {
			return assignment.NewCoordinator(in.Tx, in.Pub, in.Notifier, in.Assignments, in.Timeout, in.Logger)
		},
	)
}

type pprofOut struct {
	dig.Out

	Server *http.Server `name:"pprof_server"`
}

// providePprofServer returns a nil server when cfg.Pprof.Addr is empty.
func providePprofServer(cfg *config.Config) pprofOut {
	if cfg.Pprof.Addr == "" {
		return pprofOut{}
	}
	return pprofOut{Server: &http.Server{
		Addr:              cfg.Pprof.Addr,
		Handler:           pprofserver.Handler(pprofserver.Auth{User: cfg.Pprof.User, Pass: cfg.Pprof.Pass}),
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	routerProvider := func(
		base *handlers.Handlers,
		orderHandler *handlers.OrderHandler,
		partnerHandler *handlers.PartnerHandler,
		eventsHandler *handlers.EventsHandler,
		rl *ratelimit.Middleware,
	) http.Handler {
		return router.New(router.Deps{
			Base:      base,
			Orders:    orderHandler,
			Partners:  partnerHandler,
			Events:    eventsHandler,
			RateLimit: rl,
		})
	}
	return provideAll(container,
		handlers.New,
		handlers.NewOrderUsecase,
		handlers.NewAssignUsecase,
		handlers.NewPartnerUsecase,
		handlers.NewOrderHandler,
		handlers.NewPartnerHandler,
		handlers.NewEventsHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		routerProvider,
		serverProvider,
		providePprofServer,
	)
}
