package handlers

import (
	"context"

	"dispatch-platform-go/internal/domain"
	"dispatch-platform-go/internal/service/assignment"
	"dispatch-platform-go/internal/service/orders"
	"dispatch-platform-go/internal/service/partners"
)

type orderUsecase interface {
	Create(ctx context.Context, in orders.CreateInput) (*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	ListAvailable(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID string, target domain.OrderStatus, actorPartnerID string) (*domain.Order, error)
}

// NewOrderUsecase wires an orders.Service into an orderUsecase.
func NewOrderUsecase(svc *orders.Service) orderUsecase {
	return svc
}

type assignUsecase interface {
	Assign(ctx context.Context, orderID, partnerID string) (*domain.Order, error)
}

// NewAssignUsecase wires an assignment.Coordinator into an assignUsecase.
func NewAssignUsecase(c *assignment.Coordinator) assignUsecase {
	return c
}

type partnerUsecase interface {
	Register(ctx context.Context, in partners.RegisterInput) (*domain.Partner, error)
	Get(ctx context.Context, id string) (*domain.Partner, error)
	ListAssignable(ctx context.Context) ([]domain.Partner, error)
	SetAvailability(ctx context.Context, partnerID string, available bool) (*domain.Partner, error)
}

// NewPartnerUsecase wires a partners.Service into a partnerUsecase.
func NewPartnerUsecase(svc *partners.Service) partnerUsecase {
	return svc
}
