package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewAssignmentsTotal returns a Prometheus counter for successful order assignments
func NewAssignmentsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assignments_total",
		Help: "Total number of successful order to partner assignments",
	})
}

// NewFanoutEventsTotal returns a Prometheus counter vector for published fanout events by kind
func NewFanoutEventsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fanout_events_total",
		Help: "Total number of published fanout events by kind",
	}, []string{"kind"})
}

// NewFanoutDroppedTotal returns a Prometheus counter for events dropped on full subscriber buffers
func NewFanoutDroppedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fanout_dropped_total",
		Help: "Total number of fanout events dropped on full subscriber buffers",
	})
}

// NewNotificationsTotal returns a Prometheus counter vector for notification attempts by channel and outcome
func NewNotificationsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_total",
		Help: "Total number of notification attempts by channel and outcome",
	}, []string{"channel", "status"})
}

// NewIntakeEventsTotal returns a Prometheus counter vector for consumed intake events by result
func NewIntakeEventsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "intake_events_total",
		Help: "Total number of consumed intake events by result",
	}, []string{"result"})
}
