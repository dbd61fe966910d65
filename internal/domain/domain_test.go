package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVoucher_Discount(t *testing.T) {
	percent := Voucher{DiscountType: DiscountPercent, DiscountValue: 10, MinOrderValue: 50000, MaxDiscount: 30000}
	fixed := Voucher{DiscountType: DiscountFixed, DiscountValue: 15000}

	tests := []struct {
		name     string
		v        Voucher
		subtotal float64
		want     float64
	}{
		{"percent under cap", percent, 100000, 10000},
		{"percent capped by max discount", percent, 1000000, 30000},
		{"below minimum order", percent, 40000, 0},
		{"fixed", fixed, 100000, 15000},
		{"fixed capped by subtotal", fixed, 9000, 9000},
		{"empty cart", fixed, 0, 0},
		{"unknown type", Voucher{DiscountType: "bogus", DiscountValue: 5}, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Discount(tt.subtotal))
		})
	}
}

func TestVoucher_Expired(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.False(t, Voucher{}.Expired(now))
	assert.True(t, Voucher{ExpiresAt: now.Add(-time.Hour)}.Expired(now))
	assert.False(t, Voucher{ExpiresAt: now.Add(time.Hour)}.Expired(now))
}

func TestAddressPatch_Apply(t *testing.T) {
	a := Address{ID: "a1", Label: "Home", AddressDetail: "1 Main St", Latitude: 1, Longitude: 2}
	label := "Office"
	yes := true

	got := AddressPatch{Label: &label, IsDefault: &yes}.Apply(a)
	assert.Equal(t, "Office", got.Label)
	assert.True(t, got.IsDefault)
	assert.Equal(t, "1 Main St", got.AddressDetail)
	assert.Equal(t, 2.0, got.Longitude)
	assert.Equal(t, "Home", a.Label, "original must not change")

	assert.True(t, AddressPatch{}.IsEmpty())
	assert.False(t, AddressPatch{IsDefault: &yes}.IsEmpty())
}

func TestDefaultAddress(t *testing.T) {
	_, ok := DefaultAddress(nil)
	assert.False(t, ok)

	got, ok := DefaultAddress([]Address{{ID: "a1"}, {ID: "a2", IsDefault: true}})
	assert.True(t, ok)
	assert.Equal(t, "a2", got.ID)
}

func TestProfilePatch_PhoneChangeClearsVerification(t *testing.T) {
	u := User{PhoneNumber: "0912345678", IsPhoneVerified: true}

	same := "0912345678"
	assert.True(t, ProfilePatch{PhoneNumber: &same}.Apply(u).IsPhoneVerified)

	other := "0987654321"
	got := ProfilePatch{PhoneNumber: &other}.Apply(u)
	assert.Equal(t, other, got.PhoneNumber)
	assert.False(t, got.IsPhoneVerified)
}

func TestCart_Subtotal(t *testing.T) {
	c := Cart{Items: []CartItem{
		{Food: Food{Price: 45000}, Quantity: 2},
		{Food: Food{Price: 30000}, Quantity: 1},
	}}
	assert.Equal(t, 120000.0, c.Subtotal())
	assert.Zero(t, Cart{}.Subtotal())
}
