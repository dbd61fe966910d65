package service

import (
	"time"

	"github.com/hungrynow/hungrynow/internal/domain"
)

// Catalog is the menu and the voucher book a shop starts with.
type Catalog struct {
	Categories []domain.Category
	Foods      []domain.Food
	Vouchers   []domain.Voucher
}

// DemoCatalog returns a small Vietnamese menu with two vouchers valid for
// a year from now.
func DemoCatalog(now time.Time) Catalog {
	expires := now.AddDate(1, 0, 0).UTC()
	return Catalog{
		Categories: []domain.Category{
			{ID: "cat-noodles", Name: "Noodles"},
			{ID: "cat-rice", Name: "Rice"},
			{ID: "cat-banh-mi", Name: "Banh mi"},
			{ID: "cat-drinks", Name: "Drinks"},
		},
		Foods: []domain.Food{
			{ID: "food-pho-bo", Name: "Pho bo", Description: "Beef noodle soup with herbs", Price: 55000, CategoryID: "cat-noodles", Rating: 4.7, RatingCount: 120, IsAvailable: true},
			{ID: "food-bun-cha", Name: "Bun cha", Description: "Grilled pork with rice vermicelli", Price: 50000, CategoryID: "cat-noodles", Rating: 4.6, RatingCount: 85, IsAvailable: true},
			{ID: "food-com-tam", Name: "Com tam", Description: "Broken rice with grilled pork chop", Price: 45000, CategoryID: "cat-rice", Rating: 4.5, RatingCount: 64, IsAvailable: true},
			{ID: "food-com-ga", Name: "Com ga Hoi An", Description: "Hoi An chicken rice", Price: 48000, CategoryID: "cat-rice", Rating: 4.3, RatingCount: 22, IsAvailable: false},
			{ID: "food-banh-mi-thit", Name: "Banh mi thit", Description: "Baguette with pork and pate", Price: 25000, CategoryID: "cat-banh-mi", Rating: 4.8, RatingCount: 210, IsAvailable: true},
			{ID: "food-banh-mi-op-la", Name: "Banh mi op la", Description: "Baguette with fried eggs", Price: 20000, CategoryID: "cat-banh-mi", Rating: 4.2, RatingCount: 40, IsAvailable: true},
			{ID: "food-ca-phe-sua-da", Name: "Ca phe sua da", Description: "Iced coffee with condensed milk", Price: 22000, CategoryID: "cat-drinks", Rating: 4.9, RatingCount: 300, IsAvailable: true},
			{ID: "food-tra-da", Name: "Tra da", Description: "Iced tea", Price: 5000, CategoryID: "cat-drinks", IsAvailable: true},
		},
		Vouchers: []domain.Voucher{
			{
				ID:            "voucher-welcome10",
				Code:          "WELCOME10",
				Description:   "10% off, up to 30,000",
				DiscountType:  domain.DiscountPercent,
				DiscountValue: 10,
				MinOrderValue: 50000,
				MaxDiscount:   30000,
				ExpiresAt:     expires,
			},
			{
				ID:            "voucher-freeship",
				Code:          "FREESHIP",
				Description:   "15,000 off delivery",
				DiscountType:  domain.DiscountFixed,
				DiscountValue: 15000,
				ExpiresAt:     expires,
			},
		},
	}
}
