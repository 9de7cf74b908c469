package pricing

import "testing"

func TestTierRatePicksMaxQualifyingRate(t *testing.T) {
	tiers := []Discount{{Quantity: 10, Rate: 0.1}, {Quantity: 20, Rate: 0.2}}

	cases := []struct {
		qty  int
		want float64
	}{
		{0, 0},
		{9, 0},
		{10, 0.1},
		{19, 0.1},
		{20, 0.2},
		{100, 0.2},
	}
	for _, tc := range cases {
		if got := TierRate(tiers, tc.qty); got != tc.want {
			t.Fatalf("TierRate(qty=%d) = %v, want %v", tc.qty, got, tc.want)
		}
	}
}

func TestTierRateIgnoresThresholdOrder(t *testing.T) {
	// A lower threshold carrying a higher rate wins over a met higher threshold.
	tiers := []Discount{{Quantity: 5, Rate: 0.3}, {Quantity: 20, Rate: 0.2}}
	if got := TierRate(tiers, 25); got != 0.3 {
		t.Fatalf("expected max rate 0.3, got %v", got)
	}
}

func TestTierRateEmpty(t *testing.T) {
	if got := TierRate(nil, 50); got != 0 {
		t.Fatalf("expected 0 for no tiers, got %v", got)
	}
}

func TestHasBulkPurchase(t *testing.T) {
	lines := []Line{{Qty: 3}, {Qty: 9}}
	if HasBulkPurchase(lines) {
		t.Fatal("no line reaches the bulk threshold")
	}
	lines = append(lines, Line{Qty: BulkPurchaseThreshold})
	if !HasBulkPurchase(lines) {
		t.Fatal("expected bulk purchase to qualify")
	}
}

func TestFinalRateAddsBonusAndCaps(t *testing.T) {
	if got := FinalRate(0.2, false); got != 0.2 {
		t.Fatalf("no bonus expected, got %v", got)
	}
	if got := FinalRate(0.2, true); got != 0.25 {
		t.Fatalf("expected 0.25, got %v", got)
	}
	if got := FinalRate(0.48, true); got != MaxDiscountRate {
		t.Fatalf("expected cap at %v, got %v", MaxDiscountRate, got)
	}
}

func TestDiscountValid(t *testing.T) {
	valid := []Discount{{Quantity: 1, Rate: 0.01}, {Quantity: 10, Rate: 1}}
	for _, d := range valid {
		if !d.Valid() {
			t.Fatalf("expected %+v to be valid", d)
		}
	}
	invalid := []Discount{{Quantity: 0, Rate: 0.1}, {Quantity: 10, Rate: 0}, {Quantity: 10, Rate: 1.2}}
	for _, d := range invalid {
		if d.Valid() {
			t.Fatalf("expected %+v to be invalid", d)
		}
	}
}

func TestMaxTierRate(t *testing.T) {
	tiers := []Discount{{Quantity: 30, Rate: 0.25}, {Quantity: 10, Rate: 0.2}}
	if got := MaxTierRate(tiers); got != 0.25 {
		t.Fatalf("expected 0.25, got %v", got)
	}
	if got := MaxTierRate(nil); got != 0 {
		t.Fatalf("expected 0 for no tiers, got %v", got)
	}
}
