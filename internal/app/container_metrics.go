package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"dispatch-platform-go/internal/metrics"
)

type metricsOut struct {
	dig.Out

	RateLimitExceededTotal prometheus.Counter     `name:"rate_limit_exceeded_total"`
	AssignmentsTotal       prometheus.Counter     `name:"assignments_total"`
	FanoutDroppedTotal     prometheus.Counter     `name:"fanout_dropped_total"`
	FanoutEventsTotal      *prometheus.CounterVec `name:"fanout_events_total"`
	NotificationsTotal     *prometheus.CounterVec `name:"notifications_total"`
	IntakeEventsTotal      *prometheus.CounterVec `name:"intake_events_total"`
}

// provideMetrics registers the service collectors with the default registry.
// A collector that is already registered is reused, so building more than one
// container in a single process is safe.
func provideMetrics() (metricsOut, error) {
	var out metricsOut
	var err error

	if out.RateLimitExceededTotal, err = registeredCounter("rate_limit_exceeded_total", metrics.NewRateLimitExceededTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.AssignmentsTotal, err = registeredCounter("assignments_total", metrics.NewAssignmentsTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.FanoutDroppedTotal, err = registeredCounter("fanout_dropped_total", metrics.NewFanoutDroppedTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.FanoutEventsTotal, err = registeredCounterVec("fanout_events_total", metrics.NewFanoutEventsTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.NotificationsTotal, err = registeredCounterVec("notifications_total", metrics.NewNotificationsTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.IntakeEventsTotal, err = registeredCounterVec("intake_events_total", metrics.NewIntakeEventsTotal()); err != nil {
		return metricsOut{}, err
	}
	return out, nil
}

func registeredCounter(name string, c prometheus.Counter) (prometheus.Counter, error) {
	err := prometheus.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
			return existing, nil
		}
	}
	return nil, fmt.Errorf("register %s: %w", name, err)
}

func registeredCounterVec(name string, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	err := prometheus.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
			return existing, nil
		}
	}
	return nil, fmt.Errorf("register %s: %w", name, err)
}

func registerMetrics(container *dig.Container) error {
	return provideAll(container, provideMetrics)
}
