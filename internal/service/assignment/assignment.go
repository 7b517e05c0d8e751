package assignment

import (
	"context"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"dispatch-platform-go/internal/apperr"
	"dispatch-platform-go/internal/domain"
	"dispatch-platform-go/internal/logx"
	"dispatch-platform-go/internal/notify"
	"dispatch-platform-go/internal/ports/dispatchtx"
)

// Coordinator binds orders to partners. The whole bind runs in one
// transaction under both row locks, order first, so two racing assigns on
// the same order or partner serialize and exactly one wins.
type Coordinator struct {
	txr              dispatchtx.Runner
	pub              publisher
	notifier         notifier
	assignments      prometheus.Counter
	operationTimeout time.Duration
	now              func() time.Time
	logger           logx.Logger
}

// NewCoordinator creates a Coordinator. notifier and assignments may be nil.
func NewCoordinator(
	txr dispatchtx.Runner,
	pub publisher,
	n notifier,
	assignments prometheus.Counter,
	timeout time.Duration,
	logger logx.Logger,
) *Coordinator {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Coordinator{
		txr:              txr,
		pub:              pub,
		notifier:         n,
		assignments:      assignments,
		operationTimeout: timeout,
		now:              func() time.Time { return time.Now().UTC() },
		logger:           logger,
	}
}

// Assign binds partnerID to orderID. The order must be an unassigned PREP
// order and the partner must be assignable; both conditions are re-checked
// under row locks, so the pre-flight listings can be stale without harm.
func (c *Coordinator) Assign(ctx context.Context, orderID, partnerID string) (*domain.Order, error) {
	if strings.TrimSpace(orderID) == "" || strings.TrimSpace(partnerID) == "" {
		return nil, apperr.ErrInvalid
	}

	ctx, cancel := context.WithTimeout(ctx, c.operationTimeout)
	defer cancel()

	var (
		order   *domain.Order
		partner *domain.Partner
	)
	err := c.txr.WithTx(ctx, func(tx dispatchtx.Repository) error {
		o, err := tx.GetOrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return apperr.ErrNotFound
		}
		if o.Assigned() {
			return apperr.ErrAlreadyAssigned
		}
		if o.Status != domain.StatusPrep {
			return apperr.ErrInvalid
		}

		p, err := tx.GetPartnerForUpdate(ctx, partnerID)
		if err != nil {
			return err
		}
		if p == nil || !p.Active {
			return apperr.ErrNotFound
		}
		if !p.Assignable() {
			return apperr.ErrPartnerUnavailable
		}

		at := c.now()
		if err := tx.SetOrderPartner(ctx, orderID, partnerID, at); err != nil {
			return err
		}
		if err := tx.BindPartner(ctx, partnerID, orderID); err != nil {
			return err
		}

		o.PartnerID = &partnerID
		o.AssignedAt = &at
		p.CurrentOrderID = &orderID
		p.Available = false
		order, partner = o, p
		return nil
	})
	if err != nil {
		return nil, err
	}

	if c.assignments != nil {
		c.assignments.Inc()
	}
	c.pub.OrderAssigned(ctx, order, partnerID)
	c.logger.Info("order assigned",
		logx.String("event", "order_assigned"),
		logx.String("order_id", orderID),
		logx.String("partner_id", partnerID),
	)
	if c.notifier != nil {
		c.notifier.Dispatch(ctx, notify.KindAssignment, order, partner)
	}
	return order, nil
}
