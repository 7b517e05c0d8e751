package handlers

import (
	"errors"
	"net/http"

	"dispatch-platform-go/internal/apperr"
	"dispatch-platform-go/internal/logx"
)

// PartnerHandler serves HTTP endpoints for partner resources.
type PartnerHandler struct {
	uc     partnerUsecase
	logger logx.Logger
}

// NewPartnerHandler wires a partnerUsecase into HTTP handlers.
func NewPartnerHandler(uc partnerUsecase, logger logx.Logger) *PartnerHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &PartnerHandler{uc: uc, logger: logger}
}

// Register handles POST /partners.
func (h *PartnerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerPartnerRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	p, err := h.uc.Register(r.Context(), req.toInput())
	switch {
	case err == nil:
		w.Header().Set("Location", "/partners/"+p.ID)
		writeJSON(h.logger, w, r, http.StatusCreated, partnerToResponse(*p))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "phone already exists")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// GetByID handles GET /partners/{id}.
func (h *PartnerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	p, err := h.uc.Get(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, partnerToResponse(*p))
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// ListAssignable handles GET /partners/assignable.
func (h *PartnerHandler) ListAssignable(w http.ResponseWriter, r *http.Request) {
	list, err := h.uc.ListAssignable(r.Context())
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, partnersToResponse(list))
}

// SetAvailability handles POST /partners/{id}/availability.
func (h *PartnerHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	var req setAvailabilityRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if req.Available == nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
		return
	}

	p, err := h.uc.SetAvailability(r.Context(), id, *req.Available)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, partnerToResponse(*p))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "not found")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "partner is on an active delivery")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
