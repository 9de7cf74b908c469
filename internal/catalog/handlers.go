package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/backend-shop/internal/common"
	"github.com/noah-isme/backend-shop/internal/events"
	"github.com/noah-isme/backend-shop/internal/pricing"
)

// Handler wires the catalog service to HTTP.
type Handler struct {
	Svc    *Service
	Events *events.Bus
}

// ListItem is one entry of the shop product listing.
type ListItem struct {
	Product
	MaxDiscountRate float64 `json:"maxDiscountRate"`
	LowStock        bool    `json:"lowStock"`
	SoldOut         bool    `json:"soldOut"`
}

// Products lists the catalog, filtered by the optional q search term.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	products, err := h.Svc.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	items := make([]ListItem, 0, len(products))
	for _, p := range products {
		items = append(items, ListItem{
			Product:         p,
			MaxDiscountRate: pricing.MaxTierRate(p.Discounts),
			LowStock:        IsLowStock(p.Stock),
			SoldOut:         p.Stock <= 0,
		})
	}
	common.JSONData(w, http.StatusOK, items)
}

// Create commits a new product from an admin draft.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	var form ProductForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	product, warnings, err := h.Svc.Create(r.Context(), form)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.emit(r, events.TopicProductCreated, events.SeveritySuccess, "product created")
	h.emitWarnings(r, warnings)
	common.JSONData(w, http.StatusCreated, map[string]any{
		"product":  product,
		"warnings": warnings,
	})
}

// Update commits changes to an existing product.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	id := chi.URLParam(r, "id")
	var form ProductForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	product, warnings, err := h.Svc.Update(r.Context(), id, form)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.emit(r, events.TopicProductUpdated, events.SeveritySuccess, "product updated")
	h.emitWarnings(r, warnings)
	common.JSONData(w, http.StatusOK, map[string]any{
		"product":  product,
		"warnings": warnings,
	})
}

// Delete removes a product.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	h.emit(r, events.TopicProductDeleted, events.SeveritySuccess, "product deleted")
	common.JSONData(w, http.StatusOK, map[string]any{"deleted": id})
}

func (h *Handler) emit(r *http.Request, topic string, severity events.Severity, message string) {
	if h.Events == nil {
		return
	}
	_, _ = h.Events.Emit(r.Context(), topic, severity, message)
}

func (h *Handler) emitWarnings(r *http.Request, warnings []string) {
	for _, warning := range warnings {
		h.emit(r, events.TopicProductUpdated, events.SeverityWarning, warning)
	}
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
