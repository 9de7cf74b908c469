package pricing

import "math"

// CouponKind distinguishes fixed-amount coupons from percentage coupons.
type CouponKind string

const (
	CouponAmount     CouponKind = "amount"
	CouponPercentage CouponKind = "percentage"
)

// Coupon is a cart-level discount identified by its code.
type Coupon struct {
	Name string `json:"name"`
	Code string `json:"code"`
	// Kind selects the discount mode; Value is a currency amount for
	// CouponAmount and a percentage in [0, 100] for CouponPercentage.
	Kind  CouponKind `json:"discountType"`
	Value Money      `json:"discountValue"`
}

// Eligibility is the outcome of a coupon applicability check.
type Eligibility struct {
	CanApply bool   `json:"canApply"`
	Reason   string `json:"reason,omitempty"`
}

// CanApplyCoupon checks whether the coupon may be applied to the given
// discounted subtotal. Percentage coupons require the subtotal to meet
// MinAmountForPercentageCoupon; amount coupons have no minimum.
func CanApplyCoupon(c Coupon, subtotal Money) Eligibility {
	if c.Kind == CouponPercentage && subtotal < MinAmountForPercentageCoupon {
		return Eligibility{
			CanApply: false,
			Reason:   "percentage coupons require a purchase of at least 10,000",
		}
	}
	return Eligibility{CanApply: true}
}

// CouponDiscount computes the discount the coupon contributes to the given
// amount. Amount coupons never discount more than the amount itself;
// percentage coupons round to the nearest currency unit.
func CouponDiscount(c Coupon, amount Money) Money {
	if c.Kind == CouponAmount {
		if c.Value > amount {
			return amount
		}
		return c.Value
	}
	return Money(math.Round(float64(amount) * float64(c.Value) / 100))
}

// ApplyCouponToAmount returns the amount after the coupon discount, never
// below zero. A nil coupon leaves the amount unchanged.
func ApplyCouponToAmount(c *Coupon, amount Money) Money {
	if c == nil {
		return amount
	}
	result := amount - CouponDiscount(*c, amount)
	if result < 0 {
		return 0
	}
	return result
}
