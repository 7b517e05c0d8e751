package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"dispatch-platform-go/internal/apperr"
	"dispatch-platform-go/internal/domain"
	"dispatch-platform-go/internal/logx"
	"dispatch-platform-go/internal/service/orders"
)

// Intake event results, used as the counter label.
const (
	resultCreated   = "created"
	resultDuplicate = "duplicate"
	resultIgnored   = "ignored"
	resultInvalid   = "invalid"
)

// Processor turns upstream order events into dispatch orders. Only "created"
// events act; the rest of the upstream lifecycle belongs to dispatch itself
// and is ignored.
type Processor struct {
	orders   orderCreator
	dedup    deduper
	consumed *prometheus.CounterVec
	logger   logx.Logger
	factory  *actionFactory
}

// NewProcessor creates a Processor. dedup and consumed may be nil.
func NewProcessor(creator orderCreator, dedup deduper, consumed *prometheus.CounterVec, logger logx.Logger) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	p := &Processor{
		orders:   creator,
		dedup:    dedup,
		consumed: consumed,
		logger:   logger,
	}
	p.factory = newActionFactory(p.onCreated)
	return p
}

// Handle processes a single upstream event.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	fn, ok := p.factory.get(e.Status)
	if !ok {
		p.count(resultIgnored)
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onCreated(ctx context.Context, e Event) error {
	key := e.DedupKey()
	if key == "" {
		p.count(resultInvalid)
		return fmt.Errorf("order event without id: %w", apperr.ErrInvalid)
	}

	first, err := p.dedupFirstSeen(ctx, key)
	if err != nil {
		return fmt.Errorf("dedup check for %q: %w", key, err)
	}
	if !first {
		p.count(resultDuplicate)
		p.logger.Debug("duplicate order event skipped", logx.String("key", key))
		return nil
	}

	o, err := p.orders.Create(ctx, toCreateInput(e))
	if err != nil {
		if errors.Is(err, apperr.ErrInvalid) {
			p.count(resultInvalid)
			p.logger.Warn("order event rejected",
				logx.String("key", key),
				logx.Any("err", err),
			)
		}
		return err
	}

	p.count(resultCreated)
	p.logger.Info("order created from event",
		logx.String("event", "intake_order_created"),
		logx.String("key", key),
		logx.String("order_id", o.ID),
	)
	return nil
}

func (p *Processor) dedupFirstSeen(ctx context.Context, key string) (bool, error) {
	if p.dedup == nil {
		return true, nil
	}
	return p.dedup.FirstSeen(ctx, key)
}

func (p *Processor) count(result string) {
	if p.consumed != nil {
		p.consumed.WithLabelValues(result).Inc()
	}
}

func toCreateInput(e Event) orders.CreateInput {
	items := make([]domain.Item, 0, len(e.Items))
	for _, it := range e.Items {
		items = append(items, domain.Item{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return orders.CreateInput{
		Items:         items,
		CustomerName:  e.CustomerName,
		CustomerPhone: e.CustomerPhone,
		Address:       e.Address,
		PrepMinutes:   e.PrepMinutes,
	}
}

type actionFunc func(context.Context, Event) error

type actionFactory struct {
	byStatus map[string]actionFunc
}

func newActionFactory(onCreated actionFunc) *actionFactory {
	return &actionFactory{
		byStatus: map[string]actionFunc{
			"created": onCreated,
			// canceled/completed are deliberately unmapped: once an order is
			// in dispatch, its lifecycle is owned here.
		},
	}
}

func (f *actionFactory) get(status string) (actionFunc, bool) {
	status = strings.ToLower(strings.TrimSpace(status))
	fn, ok := f.byStatus[status]
	return fn, ok
}
