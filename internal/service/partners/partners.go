package partners

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"dispatch-platform-go/internal/apperr"
	"dispatch-platform-go/internal/domain"
	"dispatch-platform-go/internal/logx"
	"dispatch-platform-go/internal/ports/dispatchtx"
)

// Service is the partner registry: it tracks who can take an order and owns
// the availability toggle.
type Service struct {
	repo             partnerRepository
	txr              dispatchtx.Runner
	pub              publisher
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewService creates and configures a partner Service.
func NewService(repo partnerRepository, txr dispatchtx.Runner, pub publisher, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		repo:             repo,
		txr:              txr,
		pub:              pub,
		operationTimeout: timeout,
		logger:           logger,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// RegisterInput carries partner registration fields.
type RegisterInput struct {
	Name  string
	Phone string
}

// Register creates a new partner. Partners start active but off shift: they
// announce availability themselves.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.Partner, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.ErrInvalid
	}
	if !domain.ValidatePhone(in.Phone) {
		return nil, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	p := &domain.Partner{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Phone:     in.Phone,
		Active:    true,
		Available: false,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("partner registered",
		logx.String("event", "partner_registered"),
		logx.String("partner_id", p.ID),
	)
	return p, nil
}

// Get retrieves a partner by its ID.
func (s *Service) Get(ctx context.Context, id string) (*domain.Partner, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.ErrNotFound
	}
	return p, nil
}

// ListAssignable returns partners that can take a new order. The list is
// advisory and does not reserve anyone: the bind at assignment time
// re-checks assignability under a row lock.
func (s *Service) ListAssignable(ctx context.Context) ([]domain.Partner, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.ListAssignable(ctx)
}

// SetAvailability flips the partner's availability. A partner holding an
// order cannot toggle: release happens through delivery completion only.
// Setting the current value again is a no-op and emits no event.
func (s *Service) SetAvailability(ctx context.Context, partnerID string, available bool) (*domain.Partner, error) {
	if strings.TrimSpace(partnerID) == "" {
		return nil, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		result  *domain.Partner
		changed bool
	)
	err := s.txr.WithTx(ctx, func(tx dispatchtx.Repository) error {
		p, err := tx.GetPartnerForUpdate(ctx, partnerID)
		if err != nil {
			return err
		}
		if p == nil || !p.Active {
			return apperr.ErrNotFound
		}
		if p.Busy() {
			return apperr.ErrConflict
		}
		if p.Available == available {
			result = p
			return nil
		}
		if err := tx.SetPartnerAvailability(ctx, partnerID, available); err != nil {
			return err
		}
		p.Available = available
		result = p
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.pub.PartnerAvailabilityChanged(ctx, partnerID, available)
		s.logger.Info("partner availability changed",
			logx.String("event", "partner_availability_changed"),
			logx.String("partner_id", partnerID),
			logx.Bool("available", available),
		)
	}
	return result, nil
}
