package domain

import (
	"math"
	"time"
)

// Discount types.
const (
	DiscountPercent = "percent"
	DiscountFixed   = "fixed"
)

// Voucher is a discount code.
type Voucher struct {
	ID            string    `json:"_id"`
	Code          string    `json:"code"`
	Description   string    `json:"description,omitempty"`
	DiscountType  string    `json:"discountType"`
	DiscountValue float64   `json:"discountValue"`
	MinOrderValue float64   `json:"minOrderValue"`
	MaxDiscount   float64   `json:"maxDiscount,omitempty"` // 0 means uncapped
	ExpiresAt     time.Time `json:"expiresAt"`
}

// Expired reports whether the voucher can no longer be used at now.
func (v Voucher) Expired(now time.Time) bool {
	return !v.ExpiresAt.IsZero() && now.After(v.ExpiresAt)
}

// Discount returns the amount taken off subtotal. Orders below
// MinOrderValue get nothing; percent discounts are capped by MaxDiscount
// and no discount exceeds the subtotal.
func (v Voucher) Discount(subtotal float64) float64 {
	if subtotal <= 0 || subtotal < v.MinOrderValue {
		return 0
	}

	var d float64
	switch v.DiscountType {
	case DiscountPercent:
		d = math.Round(subtotal * v.DiscountValue / 100)
		if v.MaxDiscount > 0 && d > v.MaxDiscount {
			d = v.MaxDiscount
		}
	case DiscountFixed:
		d = v.DiscountValue
	}
	return math.Min(d, subtotal)
}

// VoucherApplication is the body of an apply-voucher request.
type VoucherApplication struct {
	Code     string  `json:"code" validate:"required"`
	Subtotal float64 `json:"subtotal" validate:"gte=0"`
}

// AppliedVoucher is the result of applying a voucher to a subtotal.
type AppliedVoucher struct {
	Voucher  Voucher `json:"voucher"`
	Discount float64 `json:"discount"`
}
