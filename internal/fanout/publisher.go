package fanout

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"dispatch-platform-go/internal/domain"
	"dispatch-platform-go/internal/logx"
)

// Sink receives a copy of every published event, e.g. a Kafka bridge for
// out-of-process observers. A nil Sink is fine.
type Sink interface {
	Publish(ctx context.Context, ev Event) error
}

// Publisher turns semantic state changes into fanout events and computes
// group routing server-side. Each state change produces exactly one event.
type Publisher struct {
	hub    *Hub
	sink   Sink
	logger logx.Logger
	events *prometheus.CounterVec
	now    func() time.Time
}

// NewPublisher creates a Publisher. sink and events may be nil.
func NewPublisher(hub *Hub, sink Sink, logger logx.Logger, events *prometheus.CounterVec) *Publisher {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Publisher{
		hub:    hub,
		sink:   sink,
		logger: logger,
		events: events,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// OrderCreated announces a new PREP order to the manager group.
func (p *Publisher) OrderCreated(ctx context.Context, o *domain.Order) {
	p.publish(ctx, Event{
		Kind:    KindOrderCreated,
		OrderID: o.ID,
		Status:  string(o.Status),
		At:      p.now(),
		Summary: fmt.Sprintf("order %s created", o.ID),
	}, GroupManagers)
}

// OrderAssigned announces a partner binding to managers and the partner.
func (p *Publisher) OrderAssigned(ctx context.Context, o *domain.Order, partnerID string) {
	p.publish(ctx, Event{
		Kind:      KindOrderAssigned,
		OrderID:   o.ID,
		PartnerID: partnerID,
		Status:    string(o.Status),
		At:        p.now(),
		Summary:   fmt.Sprintf("order %s assigned to partner %s", o.ID, partnerID),
	}, GroupManagers, PartnerGroup(partnerID))
}

// OrderStatusUpdated announces a lifecycle transition.
func (p *Publisher) OrderStatusUpdated(ctx context.Context, o *domain.Order, partnerID string) {
	p.publish(ctx, Event{
		Kind:      KindOrderStatusUpdated,
		OrderID:   o.ID,
		PartnerID: partnerID,
		Status:    string(o.Status),
		At:        p.now(),
		Summary:   fmt.Sprintf("order %s is now %s", o.ID, o.Status),
	}, GroupManagers, PartnerGroup(partnerID))
}

// DeliveryCompleted announces the terminal transition.
func (p *Publisher) DeliveryCompleted(ctx context.Context, o *domain.Order, partnerID string) {
	p.publish(ctx, Event{
		Kind:      KindDeliveryCompleted,
		OrderID:   o.ID,
		PartnerID: partnerID,
		Status:    string(domain.StatusDelivered),
		At:        p.now(),
		Summary:   fmt.Sprintf("order %s delivered by partner %s", o.ID, partnerID),
	}, GroupManagers, PartnerGroup(partnerID))
}

// PartnerAvailabilityChanged announces an availability flip.
func (p *Publisher) PartnerAvailabilityChanged(ctx context.Context, partnerID string, available bool) {
	state := "off shift"
	if available {
		state = "available"
	}
	p.publish(ctx, Event{
		Kind:      KindPartnerAvailabilityChanged,
		PartnerID: partnerID,
		Available: &available,
		At:        p.now(),
		Summary:   fmt.Sprintf("partner %s is %s", partnerID, state),
	}, GroupManagers, PartnerGroup(partnerID))
}

// publish sends ev once per group, then tees it to the sink. Sink failures
// are logged and never surface to the triggering request.
func (p *Publisher) publish(ctx context.Context, ev Event, groups ...string) {
	for _, g := range groups {
		p.hub.Broadcast(g, ev)
	}
	if p.events != nil {
		p.events.WithLabelValues(string(ev.Kind)).Inc()
	}
	if p.sink != nil {
		if err := p.sink.Publish(ctx, ev); err != nil {
			p.logger.Error("event sink publish failed",
				logx.String("kind", string(ev.Kind)),
				logx.Any("err", err),
			)
		}
	}
}
