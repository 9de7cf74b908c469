package catalog

import (
	"fmt"
	"strings"

	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/backend-shop/internal/pricing"
)

var validate = validator.New()

// ErrInvalidForm is returned when a draft fails hard validation.
var ErrInvalidForm = fmt.Errorf("invalid product form")

// DiscountForm is one tier of a product draft. The rate is entered as a
// percentage and converted to a fraction on commit.
type DiscountForm struct {
	Quantity    int `json:"quantity"`
	RatePercent int `json:"rate"`
}

// ProductForm is an admin draft for creating or updating a product. Drafts
// are explicit value types: Validate rejects malformed drafts, Normalize
// clamps out-of-range numbers to their nearest bound so an out-of-range
// value is never committed.
type ProductForm struct {
	Name          string         `json:"name" validate:"required"`
	Price         int64          `json:"price"`
	Stock         int            `json:"stock"`
	Description   string         `json:"description"`
	IsRecommended bool           `json:"isRecommended"`
	Discounts     []DiscountForm `json:"discounts"`
}

// Validate checks the hard constraints that cannot be repaired by clamping.
func (f ProductForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("product name must not be empty: %w", ErrInvalidForm)
	}
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalidForm)
	}
	return nil
}

// Normalize returns the committed product value plus one warning per field
// that was clamped to its nearest bound.
func (f ProductForm) Normalize(id string) (Product, []string) {
	var warnings []string

	price := f.Price
	if price < 0 {
		price = 0
		warnings = append(warnings, "price cannot be negative; set to 0")
	}

	stock := f.Stock
	if stock < 0 {
		stock = 0
		warnings = append(warnings, "stock cannot be negative; set to 0")
	}
	if stock > pricing.MaxStockLimit {
		stock = pricing.MaxStockLimit
		warnings = append(warnings, fmt.Sprintf("stock cannot exceed %d; clamped", pricing.MaxStockLimit))
	}

	discounts := make([]pricing.Discount, 0, len(f.Discounts))
	for _, d := range f.Discounts {
		qty := d.Quantity
		if qty < 1 {
			qty = 1
			warnings = append(warnings, "discount quantity must be at least 1; set to 1")
		}
		percent := d.RatePercent
		if percent < 0 {
			percent = 0
			warnings = append(warnings, "discount rate cannot be negative; set to 0")
		}
		if percent > 100 {
			percent = 100
			warnings = append(warnings, "discount rate cannot exceed 100%; clamped")
		}
		if percent == 0 {
			continue
		}
		discounts = append(discounts, pricing.Discount{Quantity: qty, Rate: float64(percent) / 100})
	}

	return Product{
		ID:            id,
		Name:          strings.TrimSpace(f.Name),
		Price:         price,
		Stock:         stock,
		Discounts:     discounts,
		Description:   strings.TrimSpace(f.Description),
		IsRecommended: f.IsRecommended,
	}, warnings
}
