package orders

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"dispatch-platform-go/internal/apperr"
	"dispatch-platform-go/internal/domain"
	"dispatch-platform-go/internal/logx"
	"dispatch-platform-go/internal/notify"
	"dispatch-platform-go/internal/ports/dispatchtx"
)

// Preparation time bounds in minutes.
const (
	minPrepMinutes = 5
	maxPrepMinutes = 120
)

// Service owns the order lifecycle: creation, the status state machine and
// the available-orders listing. Every status transition runs in one
// transaction under the order's row lock.
type Service struct {
	repo             orderRepository
	partners         partnerGetter
	txr              dispatchtx.Runner
	pub              publisher
	notifier         notifier
	operationTimeout time.Duration
	now              func() time.Time
	logger           logx.Logger
}

// NewService creates and configures an order Service.
func NewService(
	repo orderRepository,
	partners partnerGetter,
	txr dispatchtx.Runner,
	pub publisher,
	n notifier,
	timeout time.Duration,
	logger logx.Logger,
) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		repo:             repo,
		partners:         partners,
		txr:              txr,
		pub:              pub,
		notifier:         n,
		operationTimeout: timeout,
		now:              func() time.Time { return time.Now().UTC() },
		logger:           logger,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// CreateInput carries order creation fields.
type CreateInput struct {
	Items         []domain.Item
	CustomerName  string
	CustomerPhone string
	Address       string
	PrepMinutes   int
}

func (in CreateInput) validate() error {
	if len(in.Items) == 0 {
		return apperr.ErrInvalid
	}
	for _, it := range in.Items {
		if strings.TrimSpace(it.Name) == "" || it.Quantity < 1 || it.UnitPrice < 0 {
			return apperr.ErrInvalid
		}
	}
	if strings.TrimSpace(in.CustomerName) == "" || strings.TrimSpace(in.Address) == "" {
		return apperr.ErrInvalid
	}
	if !domain.ValidatePhone(in.CustomerPhone) {
		return apperr.ErrInvalid
	}
	if in.PrepMinutes < minPrepMinutes || in.PrepMinutes > maxPrepMinutes {
		return apperr.ErrInvalid
	}
	return nil
}

// Create validates the input, persists a new PREP order and announces it.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	o := &domain.Order{
		ID:            uuid.NewString(),
		Items:         in.Items,
		Status:        domain.StatusPrep,
		TotalAmount:   domain.Total(in.Items),
		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerPhone: in.CustomerPhone,
		Address:       strings.TrimSpace(in.Address),
		PrepMinutes:   in.PrepMinutes,
		CreatedAt:     s.now(),
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	s.pub.OrderCreated(ctx, o)
	s.logger.Info("order created",
		logx.String("event", "order_created"),
		logx.String("order_id", o.ID),
	)
	return o, nil
}

// Get retrieves an order by its ID.
func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.ErrNotFound
	}
	return o, nil
}

// ListAvailable returns unassigned orders still in preparation.
func (s *Service) ListAvailable(ctx context.Context) ([]domain.Order, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.ListAvailable(ctx)
}

// UpdateStatus advances the order along its lifecycle. Only the partner
// bound to the order may advance it. The terminal DELIVERED transition
// releases the partner in the same transaction, so the order update and the
// partner release are atomic.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, target domain.OrderStatus, actorPartnerID string) (*domain.Order, error) {
	if strings.TrimSpace(orderID) == "" || strings.TrimSpace(actorPartnerID) == "" {
		return nil, apperr.ErrInvalid
	}
	if !target.Valid() {
		return nil, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		result   *domain.Order
		released bool
	)
	err := s.txr.WithTx(ctx, func(tx dispatchtx.Repository) error {
		o, err := tx.GetOrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return apperr.ErrNotFound
		}
		if o.PartnerID == nil || *o.PartnerID != actorPartnerID {
			return apperr.ErrUnauthorized
		}
		if !o.Status.CanTransition(target) {
			next, _ := o.Status.Next()
			return apperr.NewInvalidTransition(string(o.Status), string(target), string(next))
		}

		at := s.now()
		if err := tx.UpdateOrderStatus(ctx, orderID, target, at); err != nil {
			return err
		}
		o.Status = target
		o.StampStatus(target, at)

		if target == domain.StatusDelivered {
			released, err = tx.ReleasePartner(ctx, actorPartnerID, orderID)
			if err != nil {
				return err
			}
		}
		result = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, result, actorPartnerID, released)
	return result, nil
}

// afterTransition publishes the fanout event and fires notifications once
// the transaction has committed.
func (s *Service) afterTransition(ctx context.Context, o *domain.Order, partnerID string, released bool) {
	kind := notify.KindStatusUpdate
	if o.Status == domain.StatusDelivered {
		kind = notify.KindDeliveryCompleted
		s.pub.DeliveryCompleted(ctx, o, partnerID)
		if released {
			s.pub.PartnerAvailabilityChanged(ctx, partnerID, true)
		}
	} else {
		s.pub.OrderStatusUpdated(ctx, o, partnerID)
	}

	s.logger.Info("order status updated",
		logx.String("event", "order_status_updated"),
		logx.String("order_id", o.ID),
		logx.String("partner_id", partnerID),
		logx.String("status", string(o.Status)),
	)

	if s.notifier == nil {
		return
	}
	p, err := s.partners.Get(ctx, partnerID)
	if err != nil {
		s.logger.Warn("partner lookup for notification failed",
			logx.String("partner_id", partnerID),
			logx.Any("err", err),
		)
	}
	s.notifier.Dispatch(ctx, kind, o, p)
}
