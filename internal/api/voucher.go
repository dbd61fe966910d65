package api

import (
	"context"
	"net/http"

	"github.com/hungrynow/hungrynow/internal/domain"
)

// GetVouchers calls GET /vouchers.
func (c *Client) GetVouchers(ctx context.Context) (Envelope[[]domain.Voucher], error) {
	var env Envelope[[]domain.Voucher]
	err := c.doJSON(ctx, http.MethodGet, "/vouchers", nil, &env)
	return env, err
}

// ApplyVoucher asks the backend for the discount code gives on subtotal.
func (c *Client) ApplyVoucher(ctx context.Context, code string, subtotal float64) (Envelope[domain.AppliedVoucher], error) {
	var env Envelope[domain.AppliedVoucher]
	err := c.doJSON(ctx, http.MethodPost, "/vouchers/apply", domain.VoucherApplication{Code: code, Subtotal: subtotal}, &env)
	return env, err
}
