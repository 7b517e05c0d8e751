package partners

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dispatch-platform-go/internal/apperr"
	"dispatch-platform-go/internal/domain"
	"dispatch-platform-go/internal/ports/dispatchtx"
)

type mockPartnerRepo struct {
	getFn            func(ctx context.Context, id string) (*domain.Partner, error)
	createFn         func(ctx context.Context, p *domain.Partner) error
	listAssignableFn func(ctx context.Context) ([]domain.Partner, error)
}

func (m *mockPartnerRepo) Get(ctx context.Context, id string) (*domain.Partner, error) {
	return m.getFn(ctx, id)
}

func (m *mockPartnerRepo) Create(ctx context.Context, p *domain.Partner) error {
	return m.createFn(ctx, p)
}

func (m *mockPartnerRepo) ListAssignable(ctx context.Context) ([]domain.Partner, error) {
	return m.listAssignableFn(ctx)
}

type mockTx struct {
	dispatchtx.Repository

	getPartnerFn      func(ctx context.Context, id string) (*domain.Partner, error)
	setAvailabilityFn func(ctx context.Context, id string, available bool) error
}

func (m *mockTx) GetPartnerForUpdate(ctx context.Context, id string) (*domain.Partner, error) {
	return m.getPartnerFn(ctx, id)
}

func (m *mockTx) SetPartnerAvailability(ctx context.Context, id string, available bool) error {
	return m.setAvailabilityFn(ctx, id, available)
}

type mockRunner struct {
	tx dispatchtx.Repository
}

func (m *mockRunner) WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) error {
	return fn(m.tx)
}

type mockPublisher struct {
	flips []bool
}

func (m *mockPublisher) PartnerAvailabilityChanged(_ context.Context, _ string, available bool) {
	m.flips = append(m.flips, available)
}

func TestService_Register_Success(t *testing.T) {
	t.Parallel()

	var created *domain.Partner
	repo := &mockPartnerRepo{
		createFn: func(_ context.Context, p *domain.Partner) error {
			created = p
			return nil
		},
	}
	svc := NewService(repo, nil, &mockPublisher{}, time.Second, nil)

	p, err := svc.Register(context.Background(), RegisterInput{Name: "  Nikolay  ", Phone: "+79990001122"})
	require.NoError(t, err)
	require.Same(t, created, p)
	require.NotEmpty(t, p.ID)
	require.Equal(t, "Nikolay", p.Name)
	require.True(t, p.Active)
	require.False(t, p.Available, "a fresh partner starts off shift")
}

func TestService_Register_Validation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input RegisterInput
	}{
		{"empty name", RegisterInput{Name: "   ", Phone: "+79990001122"}},
		{"bad phone", RegisterInput{Name: "Nikolay", Phone: "89990001122"}},
		{"short phone", RegisterInput{Name: "Nikolay", Phone: "+7999"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := &mockPartnerRepo{
				createFn: func(_ context.Context, _ *domain.Partner) error {
					t.Fatal("create must not be called on invalid input")
					return nil
				},
			}
			svc := NewService(repo, nil, &mockPublisher{}, time.Second, nil)

			_, err := svc.Register(context.Background(), tc.input)
			require.ErrorIs(t, err, apperr.ErrInvalid)
		})
	}
}

func TestService_Get_NotFound(t *testing.T) {
	t.Parallel()

	repo := &mockPartnerRepo{
		getFn: func(_ context.Context, _ string) (*domain.Partner, error) {
			return nil, nil
		},
	}
	svc := NewService(repo, nil, &mockPublisher{}, time.Second, nil)

	_, err := svc.Get(context.Background(), "missing")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_SetAvailability_Flip(t *testing.T) {
	t.Parallel()

	partner := &domain.Partner{ID: "p1", Active: true, Available: false}
	var stored *bool
	tx := &mockTx{
		getPartnerFn: func(_ context.Context, id string) (*domain.Partner, error) {
			require.Equal(t, "p1", id)
			return partner, nil
		},
		setAvailabilityFn: func(_ context.Context, _ string, available bool) error {
			stored = &available
			return nil
		},
	}
	pub := &mockPublisher{}
	svc := NewService(&mockPartnerRepo{}, &mockRunner{tx: tx}, pub, time.Second, nil)

	got, err := svc.SetAvailability(context.Background(), "p1", true)
	require.NoError(t, err)
	require.True(t, got.Available)
	require.NotNil(t, stored)
	require.True(t, *stored)
	require.Equal(t, []bool{true}, pub.flips)
}

func TestService_SetAvailability_NoOpEmitsNothing(t *testing.T) {
	t.Parallel()

	tx := &mockTx{
		getPartnerFn: func(_ context.Context, _ string) (*domain.Partner, error) {
			return &domain.Partner{ID: "p1", Active: true, Available: true}, nil
		},
		setAvailabilityFn: func(_ context.Context, _ string, _ bool) error {
			t.Fatal("no write expected for a same-value toggle")
			return nil
		},
	}
	pub := &mockPublisher{}
	svc := NewService(&mockPartnerRepo{}, &mockRunner{tx: tx}, pub, time.Second, nil)

	got, err := svc.SetAvailability(context.Background(), "p1", true)
	require.NoError(t, err)
	require.True(t, got.Available)
	require.Empty(t, pub.flips)
}

func TestService_SetAvailability_BusyPartnerConflicts(t *testing.T) {
	t.Parallel()

	orderID := "o1"
	tx := &mockTx{
		getPartnerFn: func(_ context.Context, _ string) (*domain.Partner, error) {
			return &domain.Partner{ID: "p1", Active: true, CurrentOrderID: &orderID}, nil
		},
	}
	pub := &mockPublisher{}
	svc := NewService(&mockPartnerRepo{}, &mockRunner{tx: tx}, pub, time.Second, nil)

	_, err := svc.SetAvailability(context.Background(), "p1", true)
	require.ErrorIs(t, err, apperr.ErrConflict)
	require.Empty(t, pub.flips)
}

func TestService_SetAvailability_UnknownOrInactive(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		partner *domain.Partner
	}{
		{"missing", nil},
		{"inactive", &domain.Partner{ID: "p1", Active: false}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tx := &mockTx{
				getPartnerFn: func(_ context.Context, _ string) (*domain.Partner, error) {
					return tc.partner, nil
				},
			}
			svc := NewService(&mockPartnerRepo{}, &mockRunner{tx: tx}, &mockPublisher{}, time.Second, nil)

			_, err := svc.SetAvailability(context.Background(), "p1", true)
			require.ErrorIs(t, err, apperr.ErrNotFound)
		})
	}
}

func TestService_SetAvailability_TxErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("db down")
	tx := &mockTx{
		getPartnerFn: func(_ context.Context, _ string) (*domain.Partner, error) {
			return nil, boom
		},
	}
	svc := NewService(&mockPartnerRepo{}, &mockRunner{tx: tx}, &mockPublisher{}, time.Second, nil)

	_, err := svc.SetAvailability(context.Background(), "p1", false)
	require.ErrorIs(t, err, boom)
}
