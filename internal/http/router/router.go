package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dispatch-platform-go/internal/http/handlers"
	appmw "dispatch-platform-go/internal/http/middleware"
	"dispatch-platform-go/internal/http/middleware/ratelimit"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Base      *handlers.Handlers
	Orders    *handlers.OrderHandler
	Partners  *handlers.PartnerHandler
	Events    *handlers.EventsHandler
	RateLimit *ratelimit.Middleware
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(appmw.Observability(d.Base.Logger))
	if d.RateLimit != nil {
		r.Use(d.RateLimit.Handler())
	}

	// long-lived SSE connections must not sit under the request timeout
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(5 * time.Second))

		r.Get("/ping", d.Base.Ping)
		r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
		r.Handle("/metrics", promhttp.Handler())

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", d.Orders.Create)
			r.Get("/available", d.Orders.ListAvailable)
			r.Get("/{id}", d.Orders.GetByID)
			r.Post("/{id}/assign", d.Orders.Assign)
			r.Post("/{id}/status", d.Orders.UpdateStatus)
		})

		r.Route("/partners", func(r chi.Router) {
			r.Post("/", d.Partners.Register)
			r.Get("/assignable", d.Partners.ListAssignable)
			r.Get("/{id}", d.Partners.GetByID)
			r.Post("/{id}/availability", d.Partners.SetAvailability)
		})
	})

	r.Get("/events", d.Events.Stream)

	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	return r
}
