package pricing

import "math"

// Summary aggregates cart totals before and after discounts.
type Summary struct {
	TotalBeforeDiscount Money `json:"totalBeforeDiscount"`
	TotalAfterDiscount  Money `json:"totalAfterDiscount"`
}

// LineTotal computes the payable amount for one line. The effective rate is
// the line's tier rate combined with the cart-wide bulk bonus, and the result
// is rounded to the nearest currency unit. A non-positive quantity yields 0.
func LineTotal(line Line, hasBulk bool) Money {
	if line.Qty <= 0 {
		return 0
	}
	rate := FinalRate(TierRate(line.Discounts, line.Qty), hasBulk)
	return Money(math.Round(float64(line.UnitPrice) * float64(line.Qty) * (1 - rate)))
}

// Totals computes cart totals over the given lines. Per-line tier and bulk
// discounts apply first; the selected coupon, when present and currently
// eligible, applies second to the sum of discounted line totals. An
// ineligible coupon is skipped rather than rejected here.
func Totals(lines []Line, coupon *Coupon) Summary {
	var before, after Money
	hasBulk := HasBulkPurchase(lines)
	for _, l := range lines {
		if l.Qty <= 0 {
			continue
		}
		before += Money(l.Qty) * l.UnitPrice
		after += LineTotal(l, hasBulk)
	}
	if coupon != nil && CanApplyCoupon(*coupon, after).CanApply {
		after = ApplyCouponToAmount(coupon, after)
	}
	return Summary{TotalBeforeDiscount: before, TotalAfterDiscount: after}
}

// ItemCount sums line quantities, skipping non-positive entries.
func ItemCount(lines []Line) int {
	var n int
	for _, l := range lines {
		if l.Qty > 0 {
			n += l.Qty
		}
	}
	return n
}
