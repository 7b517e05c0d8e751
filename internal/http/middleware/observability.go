package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"dispatch-platform-go/internal/logx"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration)
}

// Observability records per-request metrics and an access log entry.
func Observability(logger logx.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			observe(logger, r, ww.Status(), time.Since(start))
		})
	}
}

func observe(logger logx.Logger, r *http.Request, status int, took time.Duration) {
	// route pattern, not the raw path: keeps label cardinality bounded
	path := pathPattern(r)
	code := strconv.Itoa(status)

	requestsTotal.WithLabelValues(r.Method, path, code).Inc()
	requestDuration.WithLabelValues(r.Method, path, code).Observe(took.Seconds())

	logger.Info("http request",
		logx.String("method", r.Method),
		logx.String("path", path),
		logx.Int("status", status),
		logx.Duration("duration", took),
	)
}

func pathPattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}
