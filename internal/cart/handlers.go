package cart

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/backend-shop/internal/catalog"
	"github.com/noah-isme/backend-shop/internal/common"
	"github.com/noah-isme/backend-shop/internal/pricing"
)

// Handler wires cart operations to HTTP.
type Handler struct {
	Svc *Service
}

type lineView struct {
	ProductID string        `json:"productId"`
	Name      string        `json:"name"`
	UnitPrice pricing.Money `json:"unitPrice"`
	Quantity  int           `json:"quantity"`
	LineTotal pricing.Money `json:"lineTotal"`
}

type cartView struct {
	ID         string          `json:"id"`
	Items      []lineView      `json:"items"`
	CouponCode string          `json:"couponCode,omitempty"`
	ItemCount  int             `json:"itemCount"`
	Totals     pricing.Summary `json:"totals"`
}

// Create stores a fresh cart and returns its identifier.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	cart, err := h.Svc.Create(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSONData(w, http.StatusCreated, map[string]any{"cartId": cart.ID})
}

// Get returns cart contents and pricing preview.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	cart, err := h.Svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	view, err := h.view(r, cart)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, view)
}

// AddItem adds or increments a cart line.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	var payload struct {
		ProductID string `json:"productId"`
		Qty       int    `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, common.NewAppError("BAD_REQUEST", "invalid payload", http.StatusBadRequest, err))
		return
	}
	payload.ProductID = strings.TrimSpace(payload.ProductID)
	if payload.ProductID == "" {
		h.writeError(w, common.NewAppError("BAD_REQUEST", "productId is required", http.StatusBadRequest, nil))
		return
	}
	if payload.Qty == 0 {
		payload.Qty = 1
	}
	cart, result, err := h.Svc.AddItem(r.Context(), chi.URLParam(r, "id"), payload.ProductID, payload.Qty)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeResult(w, r, cart, result)
}

// UpdateItem sets a line's quantity; zero removes the line.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	var payload struct {
		Qty int `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, common.NewAppError("BAD_REQUEST", "invalid payload", http.StatusBadRequest, err))
		return
	}
	cart, result, err := h.Svc.UpdateQty(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "productId"), payload.Qty)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeResult(w, r, cart, result)
}

// RemoveItem deletes a cart line.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	cart, result, err := h.Svc.RemoveItem(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "productId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeResult(w, r, cart, result)
}

// ApplyCoupon selects a coupon for the cart.
func (h *Handler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	var payload struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, common.NewAppError("BAD_REQUEST", "invalid payload", http.StatusBadRequest, err))
		return
	}
	payload.Code = strings.TrimSpace(payload.Code)
	if payload.Code == "" {
		h.writeError(w, common.NewAppError("BAD_REQUEST", "code is required", http.StatusBadRequest, nil))
		return
	}
	cart, result, err := h.Svc.ApplyCoupon(r.Context(), chi.URLParam(r, "id"), payload.Code)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeResult(w, r, cart, result)
}

// RemoveCoupon clears the selected coupon.
func (h *Handler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	cart, err := h.Svc.ClearCoupon(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeResult(w, r, cart, common.Ok(""))
}

// Checkout completes the order and clears the cart.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	orderNumber, result, err := h.Svc.Checkout(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, map[string]any{
		"result":      result,
		"orderNumber": orderNumber,
	})
}

func (h *Handler) writeResult(w http.ResponseWriter, r *http.Request, cart Cart, result common.Result) {
	view, err := h.view(r, cart)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, map[string]any{
		"result": result,
		"cart":   view,
	})
}

func (h *Handler) view(r *http.Request, cart Cart) (cartView, error) {
	ctx := r.Context()
	products, err := h.Svc.Catalog.Snapshot(ctx)
	if err != nil {
		return cartView{}, err
	}
	lines := make([]pricing.Line, 0, len(cart.Items))
	names := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		p, ok := catalog.FindByID(products, item.ProductID)
		if !ok {
			continue
		}
		lines = append(lines, pricing.Line{
			ProductID: p.ID,
			UnitPrice: p.Price,
			Qty:       item.Qty,
			Discounts: p.Discounts,
		})
		names = append(names, p.Name)
	}
	hasBulk := pricing.HasBulkPurchase(lines)
	items := make([]lineView, 0, len(lines))
	for i, line := range lines {
		items = append(items, lineView{
			ProductID: line.ProductID,
			Name:      names[i],
			UnitPrice: line.UnitPrice,
			Quantity:  line.Qty,
			LineTotal: pricing.LineTotal(line, hasBulk),
		})
	}
	summary, count, err := h.Svc.Totals(ctx, cart)
	if err != nil {
		return cartView{}, err
	}
	return cartView{
		ID:         cart.ID,
		Items:      items,
		CouponCode: cart.CouponCode,
		ItemCount:  count,
		Totals:     summary,
	}, nil
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if err == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unknown error", nil)
		return
	}
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusBadRequest
		}
		code := appErr.Code
		if code == "" {
			code = "BAD_REQUEST"
		}
		common.JSONError(w, status, code, appErr.Message, appErr.Details)
		return
	}
	switch {
	case errors.Is(err, ErrInvalidInput):
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, catalog.ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", err.Error(), nil)
	}
}
