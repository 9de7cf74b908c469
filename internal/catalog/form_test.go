package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-shop/internal/pricing"
)

func TestFormValidateRequiresName(t *testing.T) {
	err := ProductForm{Name: "   "}.Validate()
	require.ErrorIs(t, err, ErrInvalidForm)

	err = ProductForm{Name: "Widget"}.Validate()
	require.NoError(t, err)
}

func TestNormalizeClampsToBounds(t *testing.T) {
	form := ProductForm{
		Name:  "  Widget  ",
		Price: -500,
		Stock: 12000,
		Discounts: []DiscountForm{
			{Quantity: 0, RatePercent: 150},
			{Quantity: 5, RatePercent: -10},
			{Quantity: 10, RatePercent: 25},
		},
	}

	product, warnings := form.Normalize("p42")
	require.Equal(t, "p42", product.ID)
	require.Equal(t, "Widget", product.Name)
	require.Equal(t, pricing.Money(0), product.Price)
	require.Equal(t, pricing.MaxStockLimit, product.Stock)

	// the negative rate tier clamps to 0% and is dropped
	require.Equal(t, []pricing.Discount{
		{Quantity: 1, Rate: 1},
		{Quantity: 10, Rate: 0.25},
	}, product.Discounts)

	require.Len(t, warnings, 5)
}

func TestNormalizePassesThroughValidDraft(t *testing.T) {
	form := ProductForm{
		Name:      "Widget",
		Price:     2500,
		Stock:     30,
		Discounts: []DiscountForm{{Quantity: 10, RatePercent: 10}},
	}

	product, warnings := form.Normalize("p1")
	require.Empty(t, warnings)
	require.Equal(t, pricing.Money(2500), product.Price)
	require.Equal(t, 30, product.Stock)
	require.Equal(t, []pricing.Discount{{Quantity: 10, Rate: 0.1}}, product.Discounts)
}

func TestFilterBySearchTerm(t *testing.T) {
	products := DefaultProducts()

	require.Len(t, FilterBySearchTerm(products, ""), 3)
	require.Len(t, FilterBySearchTerm(products, "  "), 3)

	matched := FilterBySearchTerm(products, "PRODUCT 2")
	require.Len(t, matched, 1)
	require.Equal(t, "p2", matched[0].ID)

	// description matches too
	matched = FilterBySearchTerm(products, "capacity")
	require.Len(t, matched, 1)
	require.Equal(t, "p3", matched[0].ID)

	require.Empty(t, FilterBySearchTerm(products, "nonexistent"))
}

func TestIsLowStock(t *testing.T) {
	require.False(t, IsLowStock(0))
	require.True(t, IsLowStock(1))
	require.True(t, IsLowStock(pricing.LowStockThreshold))
	require.False(t, IsLowStock(pricing.LowStockThreshold+1))
}
