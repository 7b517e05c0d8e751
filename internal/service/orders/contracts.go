package orders

import (
	"context"

	"dispatch-platform-go/internal/domain"
	"dispatch-platform-go/internal/notify"
)

type orderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	Get(ctx context.Context, id string) (*domain.Order, error)
	ListAvailable(ctx context.Context) ([]domain.Order, error)
}

type partnerGetter interface {
	Get(ctx context.Context, id string) (*domain.Partner, error)
}

type publisher interface {
	OrderCreated(ctx context.Context, o *domain.Order)
	OrderStatusUpdated(ctx context.Context, o *domain.Order, partnerID string)
	DeliveryCompleted(ctx context.Context, o *domain.Order, partnerID string)
	PartnerAvailabilityChanged(ctx context.Context, partnerID string, available bool)
}

type notifier interface {
	Dispatch(ctx context.Context, kind notify.Kind, o *domain.Order, p *domain.Partner) []notify.Result
}
