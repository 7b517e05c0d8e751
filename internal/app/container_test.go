package app

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"dispatch-platform-go/internal/config"
	"dispatch-platform-go/internal/http/handlers"
	"dispatch-platform-go/internal/logx"
)

// provideStubMetrics supplies unregistered named collectors so container
// tests never touch the default Prometheus registry.
func provideStubMetrics(t *testing.T, c *dig.Container) {
	t.Helper()

	counters := []string{
		"rate_limit_exceeded_total",
		"assignments_total",
		"fanout_dropped_total",
	}
	for _, name := range counters {
		require.NoError(t, c.Provide(func() prometheus.Counter {
			return prometheus.NewCounter(prometheus.CounterOpts{Name: name + "_unit", Help: "stub"})
		}, dig.Name(name)))
	}

	vecs := map[string][]string{
		"fanout_events_total": {"kind"},
		"notifications_total": {"channel", "status"},
		"intake_events_total": {"result"},
	}
	for name, labels := range vecs {
		require.NoError(t, c.Provide(func() *prometheus.CounterVec {
			return prometheus.NewCounterVec(prometheus.CounterOpts{Name: name + "_unit", Help: "stub"}, labels)
		}, dig.Name(name)))
	}
}

func setupTestContainerWithCfg(t *testing.T, cfg *config.Config) *dig.Container {
	t.Helper()

	c := dig.New()

	require.NoError(t, c.Provide(func() context.Context { return context.Background() }))
	require.NoError(t, c.Provide(logx.Nop))
	require.NoError(t, c.Provide(func() *config.Config { return cfg }))
	require.NoError(t, c.Provide(func() *pgxpool.Pool { return &pgxpool.Pool{} }))
	provideStubMetrics(t, c)

	require.NoError(t, registerFanout(c))
	require.NoError(t, registerNotify(c))
	require.NoError(t, registerDomainServices(c))
	require.NoError(t, registerHTTP(c))

	return c
}

func setupTestContainer(t *testing.T) *dig.Container {
	t.Helper()
	return setupTestContainerWithCfg(t, &config.Config{Port: 8080})
}

func verifyServer(t *testing.T, srv *http.Server) {
	t.Helper()

	require.NotNil(t, srv, "http.Server is nil")
	require.Equal(t, ":8080", srv.Addr)
	require.Greater(t, srv.ReadHeaderTimeout, time.Duration(0))
	require.Greater(t, srv.ReadTimeout, time.Duration(0))
	require.Greater(t, srv.WriteTimeout, time.Duration(0))
	require.Greater(t, srv.IdleTimeout, time.Duration(0))
}

func TestRegisterServicesAndHTTP_ProvidesHttpServerAndHandlers(t *testing.T) {
	t.Parallel()

	c := setupTestContainer(t)

	err := c.Invoke(func(
		srv *http.Server,
		base *handlers.Handlers,
		orderHandler *handlers.OrderHandler,
		partnerHandler *handlers.PartnerHandler,
		eventsHandler *handlers.EventsHandler,
	) {
		verifyServer(t, srv)
		require.NotNil(t, base)
		require.NotNil(t, orderHandler)
		require.NotNil(t, partnerHandler)
		require.NotNil(t, eventsHandler)
	})
	require.NoError(t, err)
}

func TestProvideAll_Success(t *testing.T) {
	t.Parallel()

	c := dig.New()

	err := provideAll(c,
		func() context.Context { return context.Background() },
		func() time.Duration { return 3 * time.Second },
	)
	require.NoError(t, err)

	err = c.Invoke(func(ctx context.Context, d time.Duration) {
		require.NotNil(t, ctx)
		require.Equal(t, 3*time.Second, d)
	})
	require.NoError(t, err)
}

func TestProvideAll_InvalidProvider(t *testing.T) {
	t.Parallel()

	c := dig.New()

	type bad struct{}
	err := provideAll(c, bad{})
	require.Error(t, err)
}

func TestRegisterCore_ProvidesContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := dig.New()
	require.NoError(t, registerCore(c, ctx))

	err := c.Invoke(func(got context.Context) {
		require.Equal(t, ctx, got)
	})
	require.NoError(t, err)
}

func TestRegisterDb_UsesInjectedConnect(t *testing.T) {
	t.Parallel()

	wantPool := &pgxpool.Pool{}
	var gotDSN string
	connect := func(_ context.Context, _ logx.Logger, dsn string, _ int, _ time.Duration) (*pgxpool.Pool, error) {
		gotDSN = dsn
		return wantPool, nil
	}

	c := dig.New()
	require.NoError(t, c.Provide(func() context.Context { return context.Background() }))
	require.NoError(t, c.Provide(logx.Nop))
	require.NoError(t, c.Provide(func() *config.Config {
		return &config.Config{DB: config.DB{
			Host: "db", Port: "5432", User: "u", Pass: "p", Name: "dispatch",
		}}
	}))
	require.NoError(t, registerDb(c, connect))

	err := c.Invoke(func(pool *pgxpool.Pool) {
		require.Same(t, wantPool, pool)
	})
	require.NoError(t, err)
	require.Contains(t, gotDSN, "dispatch")
}
