package assignment

import (
	"context"

	"dispatch-platform-go/internal/domain"
	"dispatch-platform-go/internal/notify"
)

type publisher interface {
	OrderAssigned(ctx context.Context, o *domain.Order, partnerID string)
}

type notifier interface {
	Dispatch(ctx context.Context, kind notify.Kind, o *domain.Order, p *domain.Partner) []notify.Result
}
