package cart

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	svc, _ := newTestService(t)
	h := &Handler{Svc: svc}

	r := chi.NewRouter()
	r.Post("/carts", h.Create)
	r.Get("/carts/{id}", h.Get)
	r.Post("/carts/{id}/items", h.AddItem)
	r.Patch("/carts/{id}/items/{productId}", h.UpdateItem)
	r.Delete("/carts/{id}/items/{productId}", h.RemoveItem)
	r.Post("/carts/{id}/coupon", h.ApplyCoupon)
	r.Delete("/carts/{id}/coupon", h.RemoveCoupon)
	r.Post("/carts/{id}/checkout", h.Checkout)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func createCart(t *testing.T, r http.Handler) string {
	t.Helper()
	rec := doJSON(t, r, http.MethodPost, "/carts", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		Data struct {
			CartID string `json:"cartId"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.CartID)
	return resp.Data.CartID
}

func TestHandlerCartFlow(t *testing.T) {
	r := newTestRouter(t)
	cartID := createCart(t, r)

	rec := doJSON(t, r, http.MethodPost, "/carts/"+cartID+"/items", `{"productId":"p1","qty":15}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Result struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			} `json:"result"`
			Cart struct {
				Items []struct {
					ProductID string `json:"productId"`
					Quantity  int    `json:"quantity"`
					LineTotal int64  `json:"lineTotal"`
				} `json:"items"`
				ItemCount int `json:"itemCount"`
				Totals    struct {
					TotalBeforeDiscount int64 `json:"totalBeforeDiscount"`
					TotalAfterDiscount  int64 `json:"totalAfterDiscount"`
				} `json:"totals"`
			} `json:"cart"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Data.Result.Success)
	require.Len(t, resp.Data.Cart.Items, 1)
	require.Equal(t, 15, resp.Data.Cart.ItemCount)
	require.Equal(t, int64(150000), resp.Data.Cart.Totals.TotalBeforeDiscount)
	require.Equal(t, int64(127500), resp.Data.Cart.Totals.TotalAfterDiscount)
	require.Equal(t, int64(127500), resp.Data.Cart.Items[0].LineTotal)

	rec = doJSON(t, r, http.MethodPost, "/carts/"+cartID+"/coupon", `{"code":"AMOUNT5000"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Data.Result.Success)
	require.Equal(t, int64(122500), resp.Data.Cart.Totals.TotalAfterDiscount)

	rec = doJSON(t, r, http.MethodPost, "/carts/"+cartID+"/checkout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var checkout struct {
		Data struct {
			Result struct {
				Success bool `json:"success"`
			} `json:"result"`
			OrderNumber string `json:"orderNumber"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &checkout))
	require.True(t, checkout.Data.Result.Success)
	require.True(t, strings.HasPrefix(checkout.Data.OrderNumber, "ORD-"))
}

func TestHandlerRejectionsAndErrors(t *testing.T) {
	r := newTestRouter(t)
	cartID := createCart(t, r)

	rec := doJSON(t, r, http.MethodGet, "/carts/missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/carts/"+cartID+"/items", `{"qty":1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/carts/"+cartID+"/items", `{"productId":"nope"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, r, http.MethodPatch, "/carts/"+cartID+"/items/p1", `{"qty":-2}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// stock rejection is a 200 with a failed result, not an error status
	rec = doJSON(t, r, http.MethodPost, "/carts/"+cartID+"/items", `{"productId":"p1","qty":99}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data struct {
			Result struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			} `json:"result"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Data.Result.Success)
	require.Contains(t, resp.Data.Result.Message, "insufficient stock")
}

func TestHandlerRemoveCoupon(t *testing.T) {
	r := newTestRouter(t)
	cartID := createCart(t, r)

	rec := doJSON(t, r, http.MethodPost, "/carts/"+cartID+"/items", `{"productId":"p2","qty":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, r, http.MethodPost, "/carts/"+cartID+"/coupon", `{"code":"PERCENT10"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodDelete, "/carts/"+cartID+"/coupon", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data struct {
			Cart struct {
				CouponCode string `json:"couponCode"`
			} `json:"cart"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Empty(t, resp.Data.Cart.CouponCode)
}
