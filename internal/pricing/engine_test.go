package pricing

import "testing"

func TestLineTotalTierPlusBulkBonus(t *testing.T) {
	// Price 10,000, tiers 10->10% and 20->20%, quantity 20. The line itself
	// triggers the bulk bonus, so the effective rate is min(0.2+0.05, 0.5).
	line := Line{
		ProductID: "p1",
		UnitPrice: 10_000,
		Qty:       20,
		Discounts: []Discount{{Quantity: 10, Rate: 0.1}, {Quantity: 20, Rate: 0.2}},
	}
	hasBulk := HasBulkPurchase([]Line{line})
	if !hasBulk {
		t.Fatal("quantity 20 must qualify for the bulk bonus")
	}
	if got := LineTotal(line, hasBulk); got != 150_000 {
		t.Fatalf("expected 150000, got %d", got)
	}
}

func TestLineTotalZeroQuantity(t *testing.T) {
	line := Line{UnitPrice: 10_000, Qty: 0}
	if got := LineTotal(line, true); got != 0 {
		t.Fatalf("zero quantity must yield 0, got %d", got)
	}
}

func TestLineTotalMonotonicInRate(t *testing.T) {
	line := Line{UnitPrice: 7_777, Qty: 3}
	prev := LineTotal(line, false)
	for _, rate := range []float64{0.05, 0.1, 0.25, 0.5} {
		line.Discounts = []Discount{{Quantity: 1, Rate: rate}}
		cur := LineTotal(line, false)
		if cur > prev {
			t.Fatalf("line total increased from %d to %d as rate rose to %v", prev, cur, rate)
		}
		prev = cur
	}
}

func TestTotalsNoCoupon(t *testing.T) {
	lines := []Line{
		{UnitPrice: 1000, Qty: 2},
		{UnitPrice: 500, Qty: 4},
	}
	got := Totals(lines, nil)
	if got.TotalBeforeDiscount != 4000 {
		t.Fatalf("expected before 4000, got %d", got.TotalBeforeDiscount)
	}
	if got.TotalAfterDiscount != 4000 {
		t.Fatalf("no discounts apply, expected after 4000, got %d", got.TotalAfterDiscount)
	}
}

func TestTotalsBulkBonusAppliesToEveryLine(t *testing.T) {
	// The second line qualifies the cart; the first line, with no tier of its
	// own, still receives the 5% bonus.
	lines := []Line{
		{UnitPrice: 1000, Qty: 2},
		{UnitPrice: 500, Qty: 10},
	}
	got := Totals(lines, nil)
	if got.TotalBeforeDiscount != 7000 {
		t.Fatalf("expected before 7000, got %d", got.TotalBeforeDiscount)
	}
	// 2*1000*0.95 + 10*500*0.95 = 1900 + 4750
	if got.TotalAfterDiscount != 6650 {
		t.Fatalf("expected after 6650, got %d", got.TotalAfterDiscount)
	}
}

func TestTotalsPercentageCouponBelowMinimumSkipped(t *testing.T) {
	lines := []Line{{UnitPrice: 9_000, Qty: 1}}
	coupon := &Coupon{Code: "PERCENT10", Kind: CouponPercentage, Value: 10}
	got := Totals(lines, coupon)
	if got.TotalAfterDiscount != 9_000 {
		t.Fatalf("ineligible coupon must not change the total, got %d", got.TotalAfterDiscount)
	}
}

func TestTotalsAmountCoupon(t *testing.T) {
	lines := []Line{{UnitPrice: 20_000, Qty: 1}}
	coupon := &Coupon{Code: "AMOUNT5000", Kind: CouponAmount, Value: 5000}
	got := Totals(lines, coupon)
	if got.TotalAfterDiscount != 15_000 {
		t.Fatalf("expected 15000, got %d", got.TotalAfterDiscount)
	}
}

func TestTotalsPercentageCoupon(t *testing.T) {
	lines := []Line{{UnitPrice: 20_000, Qty: 1}}
	coupon := &Coupon{Code: "PERCENT10", Kind: CouponPercentage, Value: 10}
	got := Totals(lines, coupon)
	if got.TotalAfterDiscount != 18_000 {
		t.Fatalf("expected 18000, got %d", got.TotalAfterDiscount)
	}
}

func TestTotalsCouponAppliesAfterLineDiscounts(t *testing.T) {
	// 10 units at 1000 with a 10% tier and bulk bonus: after = 10*1000*0.85 = 8500.
	// The percentage coupon minimum is checked against 8500, not the 10000
	// pre-discount subtotal, so it must be skipped.
	lines := []Line{{UnitPrice: 1000, Qty: 10, Discounts: []Discount{{Quantity: 10, Rate: 0.1}}}}
	coupon := &Coupon{Kind: CouponPercentage, Value: 10}
	got := Totals(lines, coupon)
	if got.TotalBeforeDiscount != 10_000 {
		t.Fatalf("expected before 10000, got %d", got.TotalBeforeDiscount)
	}
	if got.TotalAfterDiscount != 8_500 {
		t.Fatalf("expected after 8500 with coupon skipped, got %d", got.TotalAfterDiscount)
	}
}

func TestTotalsIdempotent(t *testing.T) {
	lines := []Line{
		{UnitPrice: 10_000, Qty: 20, Discounts: []Discount{{Quantity: 10, Rate: 0.1}, {Quantity: 20, Rate: 0.2}}},
		{UnitPrice: 500, Qty: 0},
	}
	coupon := &Coupon{Kind: CouponAmount, Value: 5000}
	first := Totals(lines, coupon)
	second := Totals(lines, coupon)
	if first != second {
		t.Fatalf("totals must be idempotent: %+v vs %+v", first, second)
	}
}

func TestTotalsSkipsZeroQuantityLines(t *testing.T) {
	lines := []Line{
		{UnitPrice: 1000, Qty: 1},
		{UnitPrice: 99_999, Qty: 0},
	}
	got := Totals(lines, nil)
	if got.TotalBeforeDiscount != 1000 || got.TotalAfterDiscount != 1000 {
		t.Fatalf("zero-quantity line must not contribute, got %+v", got)
	}
}

func TestItemCount(t *testing.T) {
	lines := []Line{{Qty: 2}, {Qty: 5}, {Qty: 0}}
	if got := ItemCount(lines); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
}
