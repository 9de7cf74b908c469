// Package catalog manages the product snapshot: browsing with search
// filtering for the shop, and create/update/delete for the admin console.
package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/backend-shop/internal/pricing"
)

// Product is a catalog entry. Prices are whole currency units; stock is
// bounded by pricing.MaxStockLimit.
type Product struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Price         pricing.Money      `json:"price"`
	Stock         int                `json:"stock"`
	Discounts     []pricing.Discount `json:"discounts"`
	Description   string             `json:"description,omitempty"`
	IsRecommended bool               `json:"isRecommended,omitempty"`
}

// NewProductID generates a catalog identifier.
func NewProductID() string {
	return fmt.Sprintf("p%d", time.Now().UnixMilli())
}

// FilterBySearchTerm returns the products whose name or description contains
// the term, case-insensitively. A blank term returns the input unchanged.
func FilterBySearchTerm(products []Product, term string) []Product {
	term = strings.TrimSpace(term)
	if term == "" {
		return products
	}
	lower := strings.ToLower(term)
	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), lower) ||
			strings.Contains(strings.ToLower(p.Description), lower) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// FindByID locates a product in a snapshot.
func FindByID(products []Product, id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// IsLowStock reports whether the remaining stock is positive but at or below
// the low-stock threshold.
func IsLowStock(remaining int) bool {
	return remaining > 0 && remaining <= pricing.LowStockThreshold
}

// DefaultProducts is the demo catalog seeded on first run.
func DefaultProducts() []Product {
	return []Product{
		{
			ID:    "p1",
			Name:  "Product 1",
			Price: 10000,
			Stock: 20,
			Discounts: []pricing.Discount{
				{Quantity: 10, Rate: 0.1},
				{Quantity: 20, Rate: 0.2},
			},
			Description: "Premium quality product.",
		},
		{
			ID:            "p2",
			Name:          "Product 2",
			Price:         20000,
			Stock:         20,
			Discounts:     []pricing.Discount{{Quantity: 10, Rate: 0.15}},
			Description:   "Practical product with versatile features.",
			IsRecommended: true,
		},
		{
			ID:    "p3",
			Name:  "Product 3",
			Price: 30000,
			Stock: 20,
			Discounts: []pricing.Discount{
				{Quantity: 10, Rate: 0.2},
				{Quantity: 30, Rate: 0.25},
			},
			Description: "High capacity, high performance product.",
		},
	}
}
