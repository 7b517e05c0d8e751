package intake

import (
	"context"

	"dispatch-platform-go/internal/domain"
	"dispatch-platform-go/internal/service/orders"
)

type orderCreator interface {
	Create(ctx context.Context, in orders.CreateInput) (*domain.Order, error)
}

type deduper interface {
	FirstSeen(ctx context.Context, id string) (bool, error)
}
