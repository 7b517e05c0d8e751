package dispatchtx

import (
	"context"
	"time"

	"dispatch-platform-go/internal/domain"
)

// Repository is the set of mutations available inside one dispatch
// transaction. The ForUpdate reads take row locks, so every mutating
// operation on a given order or partner is totally ordered.
type Repository interface {
	GetOrderForUpdate(ctx context.Context, orderID string) (*domain.Order, error)
	GetPartnerForUpdate(ctx context.Context, partnerID string) (*domain.Partner, error)

	// SetOrderPartner binds a partner to an order and stamps assigned_at.
	SetOrderPartner(ctx context.Context, orderID, partnerID string, at time.Time) error

	// UpdateOrderStatus moves the order to status and stamps the matching
	// lifecycle timestamp.
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, at time.Time) error

	// BindPartner marks the partner busy with orderID. It only succeeds for
	// a partner that is active, available and not holding an order.
	BindPartner(ctx context.Context, partnerID, orderID string) error

	// ReleasePartner frees the partner from orderID, makes it available
	// again and increments its completed-orders counter. Releasing a partner
	// that is not holding orderID is a no-op reported as released=false,
	// which makes delivery completion idempotent.
	ReleasePartner(ctx context.Context, partnerID, orderID string) (released bool, err error)

	// SetPartnerAvailability flips the availability flag.
	SetPartnerAvailability(ctx context.Context, partnerID string, available bool) error
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
