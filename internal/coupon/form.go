// Package coupon manages the coupon book: listing for the shop, create and
// delete for the admin console. Discount semantics live in pricing.
package coupon

import (
	"fmt"
	"regexp"
	"strings"

	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/backend-shop/internal/pricing"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{4,12}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// couponcode: 4-12 uppercase letters or digits
	_ = v.RegisterValidation("couponcode", func(fl validator.FieldLevel) bool {
		return codePattern.MatchString(fl.Field().String())
	})
	return v
}

// ErrInvalidForm is returned when a coupon draft fails hard validation.
var ErrInvalidForm = fmt.Errorf("invalid coupon form")

// Form is an admin draft for a new coupon. Validate rejects malformed
// drafts; Normalize clamps the discount value to the bound of its kind so
// out-of-range values are never committed.
type Form struct {
	Name  string `json:"name" validate:"required"`
	Code  string `json:"code" validate:"required,couponcode"`
	Kind  string `json:"discountType" validate:"oneof=amount percentage"`
	Value int64  `json:"discountValue"`
}

// Validate checks name, code pattern, and kind.
func (f Form) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalidForm)
	}
	return nil
}

// Normalize returns the committed coupon plus one warning per clamped field.
func (f Form) Normalize() (pricing.Coupon, []string) {
	var warnings []string

	value := f.Value
	if value < 0 {
		value = 0
		warnings = append(warnings, "discount value cannot be negative; set to 0")
	}
	kind := pricing.CouponKind(f.Kind)
	switch kind {
	case pricing.CouponPercentage:
		if value > 100 {
			value = 100
			warnings = append(warnings, "percentage discount cannot exceed 100%; clamped")
		}
	default:
		kind = pricing.CouponAmount
		if value > pricing.MaxDiscountAmount {
			value = pricing.MaxDiscountAmount
			warnings = append(warnings, fmt.Sprintf("discount amount cannot exceed %d; clamped", pricing.MaxDiscountAmount))
		}
	}

	return pricing.Coupon{
		Name:  strings.TrimSpace(f.Name),
		Code:  strings.TrimSpace(f.Code),
		Kind:  kind,
		Value: value,
	}, warnings
}
