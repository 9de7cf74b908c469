package coupon

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/backend-shop/internal/common"
	"github.com/noah-isme/backend-shop/internal/events"
)

// Handler wires the coupon service to HTTP.
type Handler struct {
	Svc    *Service
	Events *events.Bus
}

// List returns the coupon book.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "coupon service not configured", nil)
		return
	}
	coupons, err := h.Svc.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, coupons)
}

// Create commits a new coupon from an admin draft. A duplicate code yields a
// rejection result and leaves the book unchanged.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "coupon service not configured", nil)
		return
	}
	var form Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	committed, warnings, err := h.Svc.Add(r.Context(), form)
	if err != nil {
		if errors.Is(err, ErrDuplicateCode) {
			h.emit(r, events.TopicCouponCreated, events.SeverityError, err.Error())
			common.JSONData(w, http.StatusConflict, map[string]any{
				"result": common.Fail(err.Error()),
			})
			return
		}
		h.writeError(w, err)
		return
	}
	h.emit(r, events.TopicCouponCreated, events.SeveritySuccess, "coupon created")
	for _, warning := range warnings {
		h.emit(r, events.TopicCouponCreated, events.SeverityWarning, warning)
	}
	common.JSONData(w, http.StatusCreated, map[string]any{
		"result":   common.Ok("coupon created"),
		"coupon":   committed,
		"warnings": warnings,
	})
}

// Delete removes a coupon by code.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "coupon service not configured", nil)
		return
	}
	code := chi.URLParam(r, "code")
	if err := h.Svc.Remove(r.Context(), code); err != nil {
		h.writeError(w, err)
		return
	}
	h.emit(r, events.TopicCouponDeleted, events.SeveritySuccess, "coupon deleted")
	common.JSONData(w, http.StatusOK, map[string]any{"deleted": code})
}

func (h *Handler) emit(r *http.Request, topic string, severity events.Severity, message string) {
	if h.Events == nil {
		return
	}
	_, _ = h.Events.Emit(r.Context(), topic, severity, message)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, ErrInvalidForm):
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", err.Error(), nil)
	}
}
