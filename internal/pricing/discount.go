// Package pricing implements the discount computation rules for the shop:
// quantity-tiered product discounts, the cart-wide bulk purchase bonus,
// coupon eligibility and application, and cart total aggregation. The package
// is pure: every function is a computation over in-memory values with no I/O.
package pricing

// Money represents a monetary value stored in whole currency units.
type Money = int64

// Business rule constants.
const (
	// BulkPurchaseThreshold is the line quantity that qualifies the whole
	// cart for the bulk purchase bonus.
	BulkPurchaseThreshold = 10
	// BulkPurchaseBonusRate is added to every line's discount rate when the
	// cart qualifies for the bulk bonus.
	BulkPurchaseBonusRate = 0.05
	// MaxDiscountRate caps the combined tier plus bulk discount rate.
	MaxDiscountRate = 0.5
	// LowStockThreshold marks a product as nearly sold out.
	LowStockThreshold = 5
	// MaxStockLimit bounds a product's stock quantity.
	MaxStockLimit = 9999
)

const (
	// MinAmountForPercentageCoupon is the minimum discounted subtotal
	// required before a percentage coupon can be applied.
	MinAmountForPercentageCoupon Money = 10000
	// MaxDiscountAmount bounds the value of an amount coupon.
	MaxDiscountAmount Money = 100000
)

// Discount is a quantity-threshold tier granting a fractional discount rate.
type Discount struct {
	Quantity int     `json:"quantity"`
	Rate     float64 `json:"rate"`
}

// Valid reports whether the tier is well formed: a positive threshold
// quantity and a rate in (0, 1].
func (d Discount) Valid() bool {
	return d.Quantity > 0 && d.Rate > 0 && d.Rate <= 1
}

// Line describes one cart line used for pricing calculation.
type Line struct {
	ProductID string
	UnitPrice Money
	Qty       int
	Discounts []Discount
}

// TierRate resolves the discount rate for the given purchase quantity.
// Tiers whose threshold exceeds the quantity do not qualify; among the
// qualifying tiers the highest rate wins, regardless of threshold. A
// quantity matching no tier yields 0.
func TierRate(discounts []Discount, qty int) float64 {
	var rate float64
	for _, d := range discounts {
		if qty >= d.Quantity && d.Rate > rate {
			rate = d.Rate
		}
	}
	return rate
}

// MaxTierRate returns the highest rate among a product's tiers without
// regard to quantity. Used for catalog display.
func MaxTierRate(discounts []Discount) float64 {
	var rate float64
	for _, d := range discounts {
		if d.Rate > rate {
			rate = d.Rate
		}
	}
	return rate
}

// HasBulkPurchase reports whether any line qualifies the cart for the bulk
// purchase bonus. Qualifying in one line grants the bonus to every line.
func HasBulkPurchase(lines []Line) bool {
	for _, l := range lines {
		if l.Qty >= BulkPurchaseThreshold {
			return true
		}
	}
	return false
}

// FinalRate combines a line's base tier rate with the cart-wide bulk bonus,
// capped at MaxDiscountRate.
func FinalRate(base float64, hasBulk bool) float64 {
	if !hasBulk {
		return base
	}
	rate := base + BulkPurchaseBonusRate
	if rate > MaxDiscountRate {
		return MaxDiscountRate
	}
	return rate
}
