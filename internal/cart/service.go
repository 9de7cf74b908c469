// Package cart manages cart snapshots: line mutations with stock checks,
// coupon selection, totals via the pricing engine, and checkout. Every
// operation loads a snapshot, computes a replacement, and saves it whole;
// business rejections come back as common.Result, never as errors.
package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/backend-shop/internal/catalog"
	"github.com/noah-isme/backend-shop/internal/common"
	"github.com/noah-isme/backend-shop/internal/coupon"
	"github.com/noah-isme/backend-shop/internal/events"
	"github.com/noah-isme/backend-shop/internal/lock"
	"github.com/noah-isme/backend-shop/internal/pricing"
	"github.com/noah-isme/backend-shop/internal/store"
)

// ErrNotFound indicates the requested cart could not be located.
var ErrNotFound = errors.New("cart not found")

// ErrInvalidInput is returned when the provided payload is invalid.
var ErrInvalidInput = errors.New("invalid input")

// Item is one cart line: a product reference and a positive quantity.
type Item struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"quantity"`
}

// Cart is a snapshot of line items plus the optionally selected coupon,
// unique by product identifier.
type Cart struct {
	ID         string `json:"id"`
	Items      []Item `json:"items"`
	CouponCode string `json:"couponCode,omitempty"`
}

// Service encapsulates cart domain operations. When Lock is configured,
// mutations serialise per cart so concurrent load-modify-save cycles cannot
// drop each other's writes.
type Service struct {
	Store   *store.Store
	Catalog *catalog.Service
	Coupons *coupon.Service
	Events  *events.Bus
	Lock    *lock.Locker
	TTL     time.Duration
	Now     func() time.Time
}

func (s *Service) ttl() time.Duration {
	if s == nil || s.TTL <= 0 {
		return 7 * 24 * time.Hour
	}
	return s.TTL
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) withLock(ctx context.Context, cartID string, fn func(context.Context) error) error {
	if s.Lock == nil {
		return fn(ctx)
	}
	return s.Lock.WithLock(ctx, "lock:"+store.CartKey(cartID), 5*time.Second, fn)
}

// Create stores a fresh empty cart and returns it.
func (s *Service) Create(ctx context.Context) (Cart, error) {
	if s == nil || s.Store == nil {
		return Cart{}, errors.New("cart service not configured")
	}
	cart := Cart{ID: uuid.NewString()}
	if err := s.save(ctx, cart); err != nil {
		return Cart{}, err
	}
	return cart, nil
}

// Get loads a cart snapshot by id.
func (s *Service) Get(ctx context.Context, cartID string) (Cart, error) {
	if s == nil || s.Store == nil {
		return Cart{}, errors.New("cart service not configured")
	}
	var cart Cart
	found, err := s.Store.Load(ctx, store.CartKey(cartID), &cart)
	if err != nil {
		return Cart{}, fmt.Errorf("load cart: %w", err)
	}
	if !found {
		return Cart{}, ErrNotFound
	}
	return cart, nil
}

func (s *Service) save(ctx context.Context, cart Cart) error {
	if err := s.Store.SaveFor(ctx, store.CartKey(cart.ID), cart, s.ttl()); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// RemainingStock returns how many units of the product can still be added
// given what the cart already holds.
func RemainingStock(p catalog.Product, cart Cart) int {
	remaining := p.Stock
	for _, item := range cart.Items {
		if item.ProductID == p.ID {
			remaining -= item.Qty
			break
		}
	}
	return remaining
}

// AddItem adds or increments a cart line after checking remaining stock.
// Exceeding the stock is a rejection result; the cart is left unchanged.
func (s *Service) AddItem(ctx context.Context, cartID, productID string, qty int) (cart Cart, result common.Result, err error) {
	if qty <= 0 {
		return Cart{}, common.Result{}, fmt.Errorf("qty must be positive: %w", ErrInvalidInput)
	}
	err = s.withLock(ctx, cartID, func(ctx context.Context) error {
		cart, result, err = s.addItem(ctx, cartID, productID, qty)
		return err
	})
	return cart, result, err
}

func (s *Service) addItem(ctx context.Context, cartID, productID string, qty int) (Cart, common.Result, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return Cart{}, common.Result{}, err
	}
	product, err := s.Catalog.Get(ctx, productID)
	if err != nil {
		return Cart{}, common.Result{}, err
	}
	remaining := RemainingStock(product, cart)
	if remaining <= 0 {
		return cart, common.Fail("insufficient stock"), nil
	}
	if qty > remaining {
		return cart, common.Fail(fmt.Sprintf("insufficient stock: only %d left", remaining)), nil
	}
	updated := false
	for i, item := range cart.Items {
		if item.ProductID == productID {
			cart.Items[i].Qty += qty
			updated = true
			break
		}
	}
	if !updated {
		cart.Items = append(cart.Items, Item{ProductID: productID, Qty: qty})
	}
	if err := s.save(ctx, cart); err != nil {
		return Cart{}, common.Result{}, err
	}
	s.emit(ctx, events.TopicCartItemAdded, events.SeveritySuccess, "added to cart")
	return cart, common.Ok("added to cart"), nil
}

// UpdateQty sets the quantity for a cart line. Zero removes the line;
// negative quantities are invalid input. Exceeding the product's stock is a
// rejection result.
func (s *Service) UpdateQty(ctx context.Context, cartID, productID string, qty int) (cart Cart, result common.Result, err error) {
	if qty < 0 {
		return Cart{}, common.Result{}, fmt.Errorf("qty must not be negative: %w", ErrInvalidInput)
	}
	err = s.withLock(ctx, cartID, func(ctx context.Context) error {
		cart, result, err = s.updateQty(ctx, cartID, productID, qty)
		return err
	})
	return cart, result, err
}

func (s *Service) updateQty(ctx context.Context, cartID, productID string, qty int) (Cart, common.Result, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return Cart{}, common.Result{}, err
	}
	if qty == 0 {
		return s.removeItem(ctx, cartID, productID)
	}
	product, err := s.Catalog.Get(ctx, productID)
	if err != nil {
		return Cart{}, common.Result{}, err
	}
	if qty > product.Stock {
		return cart, common.Fail(fmt.Sprintf("only %d in stock", product.Stock)), nil
	}
	updated := false
	for i, item := range cart.Items {
		if item.ProductID == productID {
			cart.Items[i].Qty = qty
			updated = true
			break
		}
	}
	if !updated {
		return Cart{}, common.Result{}, ErrNotFound
	}
	if err := s.save(ctx, cart); err != nil {
		return Cart{}, common.Result{}, err
	}
	return cart, common.Ok(""), nil
}

// RemoveItem deletes a cart line. Emptying the cart also clears the
// selected coupon.
func (s *Service) RemoveItem(ctx context.Context, cartID, productID string) (cart Cart, result common.Result, err error) {
	err = s.withLock(ctx, cartID, func(ctx context.Context) error {
		cart, result, err = s.removeItem(ctx, cartID, productID)
		return err
	})
	return cart, result, err
}

func (s *Service) removeItem(ctx context.Context, cartID, productID string) (Cart, common.Result, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return Cart{}, common.Result{}, err
	}
	next := make([]Item, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.ProductID == productID {
			continue
		}
		next = append(next, item)
	}
	cart.Items = next
	if len(cart.Items) == 0 {
		cart.CouponCode = ""
	}
	if err := s.save(ctx, cart); err != nil {
		return Cart{}, common.Result{}, err
	}
	s.emit(ctx, events.TopicCartItemRemoved, events.SeveritySuccess, "removed from cart")
	return cart, common.Ok(""), nil
}

// ApplyCoupon validates the coupon against the cart's discounted subtotal
// and selects it. Ineligibility is a rejection result; the selection is
// left unchanged.
func (s *Service) ApplyCoupon(ctx context.Context, cartID, code string) (cart Cart, result common.Result, err error) {
	err = s.withLock(ctx, cartID, func(ctx context.Context) error {
		cart, result, err = s.applyCoupon(ctx, cartID, code)
		return err
	})
	return cart, result, err
}

func (s *Service) applyCoupon(ctx context.Context, cartID, code string) (Cart, common.Result, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return Cart{}, common.Result{}, err
	}
	selected, err := s.Coupons.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, coupon.ErrNotFound) {
			return cart, common.Fail("coupon not found"), nil
		}
		return Cart{}, common.Result{}, err
	}
	lines, err := s.lines(ctx, cart)
	if err != nil {
		return Cart{}, common.Result{}, err
	}
	subtotal := pricing.Totals(lines, nil).TotalAfterDiscount
	if eligibility := pricing.CanApplyCoupon(selected, subtotal); !eligibility.CanApply {
		s.emit(ctx, events.TopicCouponApplied, events.SeverityError, eligibility.Reason)
		return cart, common.Fail(eligibility.Reason), nil
	}
	cart.CouponCode = selected.Code
	if err := s.save(ctx, cart); err != nil {
		return Cart{}, common.Result{}, err
	}
	s.emit(ctx, events.TopicCouponApplied, events.SeveritySuccess, "coupon applied")
	return cart, common.Ok("coupon applied"), nil
}

// ClearCoupon removes the selected coupon.
func (s *Service) ClearCoupon(ctx context.Context, cartID string) (cart Cart, err error) {
	err = s.withLock(ctx, cartID, func(ctx context.Context) error {
		cart, err = s.clearCoupon(ctx, cartID)
		return err
	})
	return cart, err
}

func (s *Service) clearCoupon(ctx context.Context, cartID string) (Cart, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return Cart{}, err
	}
	cart.CouponCode = ""
	if err := s.save(ctx, cart); err != nil {
		return Cart{}, err
	}
	return cart, nil
}

// Totals prices the cart: per-line tier and bulk discounts first, then the
// selected coupon when it is still present in the book and eligible.
func (s *Service) Totals(ctx context.Context, cart Cart) (pricing.Summary, int, error) {
	lines, err := s.lines(ctx, cart)
	if err != nil {
		return pricing.Summary{}, 0, err
	}
	var selected *pricing.Coupon
	if cart.CouponCode != "" {
		c, err := s.Coupons.FindByCode(ctx, cart.CouponCode)
		switch {
		case err == nil:
			selected = &c
		case errors.Is(err, coupon.ErrNotFound):
			// coupon deleted since selection; price without it
		default:
			return pricing.Summary{}, 0, err
		}
	}
	return pricing.Totals(lines, selected), pricing.ItemCount(lines), nil
}

// Checkout completes the order: the cart empties, the coupon clears, and an
// order number is issued. An empty cart is a rejection result.
func (s *Service) Checkout(ctx context.Context, cartID string) (orderNumber string, result common.Result, err error) {
	err = s.withLock(ctx, cartID, func(ctx context.Context) error {
		orderNumber, result, err = s.checkout(ctx, cartID)
		return err
	})
	return orderNumber, result, err
}

func (s *Service) checkout(ctx context.Context, cartID string) (string, common.Result, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return "", common.Result{}, err
	}
	if len(cart.Items) == 0 {
		return "", common.Fail("cart is empty"), nil
	}
	orderNumber := fmt.Sprintf("ORD-%d", s.now().UnixMilli())
	cart.Items = nil
	cart.CouponCode = ""
	if err := s.save(ctx, cart); err != nil {
		return "", common.Result{}, err
	}
	s.emit(ctx, events.TopicCartCheckedOut, events.SeveritySuccess,
		fmt.Sprintf("order %s completed", orderNumber))
	return orderNumber, common.Ok(fmt.Sprintf("order %s completed", orderNumber)), nil
}

// lines joins the cart with the catalog snapshot. Lines whose product has
// disappeared from the catalog are skipped.
func (s *Service) lines(ctx context.Context, cart Cart) ([]pricing.Line, error) {
	products, err := s.Catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	lines := make([]pricing.Line, 0, len(cart.Items))
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
	}
	return lines, nil
}

func (s *Service) emit(ctx context.Context, topic string, severity events.Severity, message string) {
	if s.Events == nil {
		return
	}
	_, _ = s.Events.Emit(ctx, topic, severity, message)
}
