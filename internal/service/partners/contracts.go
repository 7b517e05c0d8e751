package partners

import (
	"context"

	"dispatch-platform-go/internal/domain"
)

type partnerRepository interface {
	Get(ctx context.Context, id string) (*domain.Partner, error)
	Create(ctx context.Context, p *domain.Partner) error
	ListAssignable(ctx context.Context) ([]domain.Partner, error)
}

type publisher interface {
	PartnerAvailabilityChanged(ctx context.Context, partnerID string, available bool)
}
