package coupon

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-shop/internal/pricing"
	"github.com/noah-isme/backend-shop/internal/store"
)

// ErrNotFound indicates no coupon carries the requested code.
var ErrNotFound = errors.New("coupon not found")

// ErrDuplicateCode indicates the code is already taken; the existing coupon
// book is left unchanged.
var ErrDuplicateCode = errors.New("coupon code already exists")

// Service orchestrates coupon book reads and admin mutations.
type Service struct {
	Store       *store.Store
	Logger      zerolog.Logger
	SeedOnEmpty bool
}

// Snapshot loads the coupon book, seeding the demo coupons when the
// snapshot is absent and seeding is enabled.
func (s *Service) Snapshot(ctx context.Context) ([]pricing.Coupon, error) {
	if s == nil || s.Store == nil {
		return nil, errors.New("coupon service not configured")
	}
	var coupons []pricing.Coupon
	found, err := s.Store.Load(ctx, store.KeyCoupons, &coupons)
	if err != nil {
		return nil, fmt.Errorf("load coupons: %w", err)
	}
	if !found {
		if !s.SeedOnEmpty {
			return []pricing.Coupon{}, nil
		}
		coupons = DefaultCoupons()
		if err := s.Store.Save(ctx, store.KeyCoupons, coupons); err != nil {
			return nil, fmt.Errorf("seed coupons: %w", err)
		}
		s.Logger.Info().Int("count", len(coupons)).Msg("seeded demo coupons")
	}
	return coupons, nil
}

// List returns the coupon book.
func (s *Service) List(ctx context.Context) ([]pricing.Coupon, error) {
	return s.Snapshot(ctx)
}

// FindByCode returns the coupon carrying the given code.
func (s *Service) FindByCode(ctx context.Context, code string) (pricing.Coupon, error) {
	coupons, err := s.Snapshot(ctx)
	if err != nil {
		return pricing.Coupon{}, err
	}
	for _, c := range coupons {
		if c.Code == code {
			return c, nil
		}
	}
	return pricing.Coupon{}, ErrNotFound
}

// Add validates and commits a new coupon. A duplicate code is rejected and
// the existing book is left unchanged.
func (s *Service) Add(ctx context.Context, form Form) (pricing.Coupon, []string, error) {
	if err := form.Validate(); err != nil {
		return pricing.Coupon{}, nil, err
	}
	coupons, err := s.Snapshot(ctx)
	if err != nil {
		return pricing.Coupon{}, nil, err
	}
	committed, warnings := form.Normalize()
	for _, c := range coupons {
		if c.Code == committed.Code {
			return pricing.Coupon{}, nil, ErrDuplicateCode
		}
	}
	coupons = append(coupons, committed)
	if err := s.Store.Save(ctx, store.KeyCoupons, coupons); err != nil {
		return pricing.Coupon{}, nil, fmt.Errorf("save coupons: %w", err)
	}
	return committed, warnings, nil
}

// Remove deletes a coupon by code.
func (s *Service) Remove(ctx context.Context, code string) error {
	coupons, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	next := make([]pricing.Coupon, 0, len(coupons))
	removed := false
	for _, c := range coupons {
		if c.Code == code {
			removed = true
			continue
		}
		next = append(next, c)
	}
	if !removed {
		return ErrNotFound
	}
	if err := s.Store.Save(ctx, store.KeyCoupons, next); err != nil {
		return fmt.Errorf("save coupons: %w", err)
	}
	return nil
}

// DefaultCoupons is the demo coupon book seeded on first run.
func DefaultCoupons() []pricing.Coupon {
	return []pricing.Coupon{
		{Name: "5000 off", Code: "AMOUNT5000", Kind: pricing.CouponAmount, Value: 5000},
		{Name: "10% off", Code: "PERCENT10", Kind: pricing.CouponPercentage, Value: 10},
	}
}
