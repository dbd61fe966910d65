package store

import (
	"maps"
	"slices"

	"github.com/hungrynow/hungrynow/internal/domain"
)

// State holds every slice. Values returned by Store.State are deep copies
// and may be kept or modified freely.
type State struct {
	Address      AddressState
	User         UserState
	Auth         AuthState
	Catalog      CatalogState
	Cart         CartState
	Favorite     FavoriteState
	Rating       RatingState
	Voucher      VoucherState
	Notification NotificationState
}

func (st *State) reduce(a Action) {
	// Signing out forgets everything that belonged to the account.
	if a.Type == ActionLogout && a.Phase == Fulfilled {
		*st = State{}
		st.Auth.Status.fulfilled(msgLoggedOut)
		return
	}
	if isClearMessages(a) {
		if s := st.status(a.Slice()); s != nil {
			s.clear()
		}
		return
	}

	st.Address.reduce(a)
	st.User.reduce(a)
	st.Auth.reduce(a)
	st.Catalog.reduce(a)
	st.Cart.reduce(a)
	st.Favorite.reduce(a)
	st.Rating.reduce(a)
	st.Voucher.reduce(a)
	st.Notification.reduce(a)

	if a.Slice() == SliceCart && a.Phase == Fulfilled {
		st.Voucher.reprice(st.Cart.Cart.Subtotal())
	}
}

func (st State) clone() State {
	st.Address.Addresses = slices.Clone(st.Address.Addresses)

	st.User.Profile = cloneUser(st.User.Profile)
	st.Auth.User = cloneUser(st.Auth.User)

	st.Catalog.Categories = slices.Clone(st.Catalog.Categories)
	st.Catalog.Foods = slices.Clone(st.Catalog.Foods)
	if st.Catalog.Selected != nil {
		f := *st.Catalog.Selected
		st.Catalog.Selected = &f
	}

	st.Cart.Cart.Items = slices.Clone(st.Cart.Cart.Items)
	st.Favorite.Foods = slices.Clone(st.Favorite.Foods)

	if st.Rating.ByFood != nil {
		byFood := maps.Clone(st.Rating.ByFood)
		for k, v := range byFood {
			byFood[k] = slices.Clone(v)
		}
		st.Rating.ByFood = byFood
	}

	st.Voucher.Vouchers = slices.Clone(st.Voucher.Vouchers)
	if st.Voucher.Applied != nil {
		v := *st.Voucher.Applied
		st.Voucher.Applied = &v
	}

	st.Notification.Notifications = slices.Clone(st.Notification.Notifications)
	return st
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	c.Addresses = slices.Clone(u.Addresses)
	return &c
}

// status returns the Status of the named slice.
func (st *State) status(slice string) *Status {
	switch slice {
	case SliceAddress:
		return &st.Address.Status
	case SliceUser:
		return &st.User.Status
	case SliceAuth:
		return &st.Auth.Status
	case SliceCatalog:
		return &st.Catalog.Status
	case SliceCart:
		return &st.Cart.Status
	case SliceFavorite:
		return &st.Favorite.Status
	case SliceRating:
		return &st.Rating.Status
	case SliceVoucher:
		return &st.Voucher.Status
	case SliceNotification:
		return &st.Notification.Status
	}
	return nil
}
