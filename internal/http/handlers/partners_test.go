package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"dispatch-platform-go/internal/apperr"
	"dispatch-platform-go/internal/domain"
	"dispatch-platform-go/internal/service/partners"
)

type stubPartnerUsecase struct {
	registerFn func(ctx context.Context, in partners.RegisterInput) (*domain.Partner, error)
	getFn      func(ctx context.Context, id string) (*domain.Partner, error)
	listFn     func(ctx context.Context) ([]domain.Partner, error)
	setFn      func(ctx context.Context, partnerID string, available bool) (*domain.Partner, error)
}

func (s *stubPartnerUsecase) Register(ctx context.Context, in partners.RegisterInput) (*domain.Partner, error) {
	return s.registerFn(ctx, in)
}

func (s *stubPartnerUsecase) Get(ctx context.Context, id string) (*domain.Partner, error) {
	return s.getFn(ctx, id)
}

func (s *stubPartnerUsecase) ListAssignable(ctx context.Context) ([]domain.Partner, error) {
	return s.listFn(ctx)
}

func (s *stubPartnerUsecase) SetAvailability(ctx context.Context, partnerID string, available bool) (*domain.Partner, error) {
	return s.setFn(ctx, partnerID, available)
}

func partnerRouter(h *PartnerHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/partners", h.Register)
	r.Get("/partners/assignable", h.ListAssignable)
	r.Get("/partners/{id}", h.GetByID)
	r.Post("/partners/{id}/availability", h.SetAvailability)
	return r
}

func TestPartnerHandler_Register_Success(t *testing.T) {
	t.Parallel()

	uc := &stubPartnerUsecase{
		registerFn: func(_ context.Context, in partners.RegisterInput) (*domain.Partner, error) {
			require.Equal(t, "Nikolay", in.Name)
			return &domain.Partner{ID: "p1", Name: in.Name, Phone: in.Phone, Active: true}, nil
		},
	}
	h := NewPartnerHandler(uc, nil)

	rr := doJSON(t, partnerRouter(h), http.MethodPost, "/partners", registerPartnerRequest{
		Name:  "Nikolay",
		Phone: "+79990001122",
	})

	require.Equal(t, http.StatusCreated, rr.Code)
	require.Equal(t, "/partners/p1", rr.Header().Get("Location"))

	var got partnerDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	require.Equal(t, "p1", got.ID)
	require.False(t, got.Available)
}

func TestPartnerHandler_Register_ErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid", apperr.ErrInvalid, http.StatusBadRequest},
		{"duplicate phone", apperr.ErrConflict, http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			uc := &stubPartnerUsecase{
				registerFn: func(_ context.Context, _ partners.RegisterInput) (*domain.Partner, error) {
					return nil, tc.err
				},
			}
			h := NewPartnerHandler(uc, nil)

			rr := doJSON(t, partnerRouter(h), http.MethodPost, "/partners", registerPartnerRequest{})
			require.Equal(t, tc.code, rr.Code)
		})
	}
}

func TestPartnerHandler_ListAssignable(t *testing.T) {
	t.Parallel()

	uc := &stubPartnerUsecase{
		listFn: func(_ context.Context) ([]domain.Partner, error) {
			return []domain.Partner{
				{ID: "p1", Active: true, Available: true},
			}, nil
		},
	}
	h := NewPartnerHandler(uc, nil)

	rr := doJSON(t, partnerRouter(h), http.MethodGet, "/partners/assignable", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var got []partnerDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	require.Len(t, got, 1)
	require.Equal(t, "p1", got[0].ID)
}

func TestPartnerHandler_SetAvailability_Success(t *testing.T) {
	t.Parallel()

	uc := &stubPartnerUsecase{
		setFn: func(_ context.Context, partnerID string, available bool) (*domain.Partner, error) {
			require.Equal(t, "p1", partnerID)
			require.True(t, available)
			return &domain.Partner{ID: "p1", Active: true, Available: true}, nil
		},
	}
	h := NewPartnerHandler(uc, nil)

	avail := true
	rr := doJSON(t, partnerRouter(h), http.MethodPost, "/partners/p1/availability", setAvailabilityRequest{Available: &avail})
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestPartnerHandler_SetAvailability_MissingFlag(t *testing.T) {
	t.Parallel()

	h := NewPartnerHandler(&stubPartnerUsecase{}, nil)

	rr := doJSON(t, partnerRouter(h), http.MethodPost, "/partners/p1/availability", map[string]any{})
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPartnerHandler_SetAvailability_BusyConflicts(t *testing.T) {
	t.Parallel()

	uc := &stubPartnerUsecase{
		setFn: func(_ context.Context, _ string, _ bool) (*domain.Partner, error) {
			return nil, apperr.ErrConflict
		},
	}
	h := NewPartnerHandler(uc, nil)

	avail := true
	rr := doJSON(t, partnerRouter(h), http.MethodPost, "/partners/p1/availability", setAvailabilityRequest{Available: &avail})
	require.Equal(t, http.StatusConflict, rr.Code)

	var body errResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	require.Contains(t, body.Error, "active delivery")
}
