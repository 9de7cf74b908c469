package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-shop/internal/store"
)

// ErrNotFound indicates the requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Service orchestrates product snapshot reads and admin mutations.
type Service struct {
	Store  *store.Store
	Logger zerolog.Logger
	// SeedOnEmpty populates the demo catalog the first time the snapshot
	// is missing.
	SeedOnEmpty bool
}

// Snapshot loads the current product list, seeding the demo catalog when
// the snapshot is absent and seeding is enabled.
func (s *Service) Snapshot(ctx context.Context) ([]Product, error) {
	if s == nil || s.Store == nil {
		return nil, errors.New("catalog service not configured")
	}
	var products []Product
	found, err := s.Store.Load(ctx, store.KeyProducts, &products)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	if !found {
		if !s.SeedOnEmpty {
			return []Product{}, nil
		}
		products = DefaultProducts()
		if err := s.Store.Save(ctx, store.KeyProducts, products); err != nil {
			return nil, fmt.Errorf("seed products: %w", err)
		}
		s.Logger.Info().Int("count", len(products)).Msg("seeded demo catalog")
	}
	return products, nil
}

// List returns the products matching the optional search term.
func (s *Service) List(ctx context.Context, query string) ([]Product, error) {
	products, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return FilterBySearchTerm(products, query), nil
}

// Get returns a single product by id.
func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	products, err := s.Snapshot(ctx)
	if err != nil {
		return Product{}, err
	}
	p, ok := FindByID(products, id)
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

// Create validates and commits a new product from an admin draft. It returns
// the committed product and any clamp warnings.
func (s *Service) Create(ctx context.Context, form ProductForm) (Product, []string, error) {
	if err := form.Validate(); err != nil {
		return Product{}, nil, err
	}
	products, err := s.Snapshot(ctx)
	if err != nil {
		return Product{}, nil, err
	}
	product, warnings := form.Normalize(NewProductID())
	products = append(products, product)
	if err := s.Store.Save(ctx, store.KeyProducts, products); err != nil {
		return Product{}, nil, fmt.Errorf("save products: %w", err)
	}
	return product, warnings, nil
}

// Update validates and commits changes to an existing product.
func (s *Service) Update(ctx context.Context, id string, form ProductForm) (Product, []string, error) {
	if err := form.Validate(); err != nil {
		return Product{}, nil, err
	}
	products, err := s.Snapshot(ctx)
	if err != nil {
		return Product{}, nil, err
	}
	updated, warnings := form.Normalize(id)
	replaced := false
	for i, p := range products {
		if p.ID == id {
			products[i] = updated
			replaced = true
			break
		}
	}
	if !replaced {
		return Product{}, nil, ErrNotFound
	}
	if err := s.Store.Save(ctx, store.KeyProducts, products); err != nil {
		return Product{}, nil, fmt.Errorf("save products: %w", err)
	}
	return updated, warnings, nil
}

// Delete removes a product from the catalog.
func (s *Service) Delete(ctx context.Context, id string) error {
	products, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	next := make([]Product, 0, len(products))
	removed := false
	for _, p := range products {
		if p.ID == id {
			removed = true
			continue
		}
		next = append(next, p)
	}
	if !removed {
		return ErrNotFound
	}
	if err := s.Store.Save(ctx, store.KeyProducts, next); err != nil {
		return fmt.Errorf("save products: %w", err)
	}
	return nil
}
