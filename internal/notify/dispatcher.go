package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"dispatch-platform-go/internal/domain"
	"dispatch-platform-go/internal/logx"
)

const defaultSendTimeout = 5 * time.Second

// Channel is one out-of-band delivery mechanism. Send is only called on a
// configured channel and must respect ctx.
type Channel interface {
	Name() string
	Configured() bool
	Send(ctx context.Context, msg Message) error
}

// Dispatcher attempts delivery through every registered channel. Channel
// attempts are isolated: one failing or unconfigured channel never blocks
// the others. Dispatch itself never fails; outcomes come back as data.
type Dispatcher struct {
	channels    []Channel
	sendTimeout time.Duration
	logger      logx.Logger
	outcomes    *prometheus.CounterVec
}

// NewDispatcher creates a Dispatcher. outcomes may be nil.
func NewDispatcher(channels []Channel, sendTimeout time.Duration, logger logx.Logger, outcomes *prometheus.CounterVec) *Dispatcher {
	if sendTimeout <= 0 {
		sendTimeout = defaultSendTimeout
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Dispatcher{
		channels:    channels,
		sendTimeout: sendTimeout,
		logger:      logger,
		outcomes:    outcomes,
	}
}

// Dispatch sends a notification about order/partner through every channel
// and aggregates the per-channel outcomes. It always runs after the
// authoritative state change and never gates it.
func (d *Dispatcher) Dispatch(ctx context.Context, kind Kind, o *domain.Order, p *domain.Partner) []Result {
	msg := buildMessage(kind, o, p)
	results := make([]Result, 0, len(d.channels))

	for _, ch := range d.channels {
		results = append(results, d.attempt(ctx, ch, msg))
	}

	for _, res := range results {
		if d.outcomes != nil {
			d.outcomes.WithLabelValues(res.Channel, string(res.Status)).Inc()
		}
		fields := []logx.Field{
			logx.String("kind", string(kind)),
			logx.String("order_id", msg.OrderID),
			logx.String("channel", res.Channel),
			logx.String("status", string(res.Status)),
		}
		if res.Err != nil {
			fields = append(fields, logx.Any("err", res.Err))
			d.logger.Warn("notification channel failed", fields...)
			continue
		}
		d.logger.Info("notification channel result", fields...)
	}

	return results
}

func (d *Dispatcher) attempt(ctx context.Context, ch Channel, msg Message) Result {
	if !ch.Configured() {
		return Result{Channel: ch.Name(), Status: StatusSkipped}
	}

	sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
	defer cancel()

	if err := ch.Send(sendCtx, msg); err != nil {
		return Result{Channel: ch.Name(), Status: StatusFailed, Err: err}
	}
	return Result{Channel: ch.Name(), Status: StatusSent}
}

func buildMessage(kind Kind, o *domain.Order, p *domain.Partner) Message {
	msg := Message{Kind: kind}
	if o != nil {
		msg.OrderID = o.ID
		msg.CustomerName = o.CustomerName
		msg.CustomerPhone = o.CustomerPhone
	}
	if p != nil {
		msg.PartnerID = p.ID
		msg.PartnerPhone = p.Phone
	}
	msg.Body = messageBody(kind, o, p)
	return msg
}

func messageBody(kind Kind, o *domain.Order, p *domain.Partner) string {
	orderID := ""
	if o != nil {
		orderID = o.ID
	}
	switch kind {
	case KindAssignment:
		name := ""
		if p != nil {
			name = p.Name
		}
		return fmt.Sprintf("Order %s has been assigned to %s", orderID, name)
	case KindStatusUpdate:
		status := ""
		if o != nil {
			status = string(o.Status)
		}
		return fmt.Sprintf("Order %s is now %s", orderID, status)
	case KindDeliveryCompleted:
		return fmt.Sprintf("Order %s has been delivered", orderID)
	default:
		return fmt.Sprintf("Update for order %s", orderID)
	}
}
