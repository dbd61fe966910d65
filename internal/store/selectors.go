package store

import "github.com/hungrynow/hungrynow/internal/domain"

// Selectors read from a State snapshot.

// SelectAddresses returns the loaded address book.
func SelectAddresses(st State) []domain.Address { return st.Address.Addresses }

// SelectAddressStatus returns the address slice status.
func SelectAddressStatus(st State) Status { return st.Address.Status }

// SelectAddressLoading reports whether an address request is outstanding.
func SelectAddressLoading(st State) bool { return st.Address.Loading }

// SelectAddressError returns the last address failure message.
func SelectAddressError(st State) string { return st.Address.Error }

// SelectAddressSuccessMessage returns the last address success message.
func SelectAddressSuccessMessage(st State) string { return st.Address.SuccessMessage }

// SelectDefaultAddress returns the default address, if one is set.
func SelectDefaultAddress(st State) (domain.Address, bool) {
	return domain.DefaultAddress(st.Address.Addresses)
}

// SelectProfile returns the loaded profile, or nil.
func SelectProfile(st State) *domain.User { return st.User.Profile }

// SelectUserStatus returns the user slice status.
func SelectUserStatus(st State) Status { return st.User.Status }

// SelectIsAuthenticated reports whether a session token is held.
func SelectIsAuthenticated(st State) bool { return st.Auth.Token != "" }

// SelectAuthStatus returns the auth slice status.
func SelectAuthStatus(st State) Status { return st.Auth.Status }

// SelectCategories returns the loaded categories.
func SelectCategories(st State) []domain.Category { return st.Catalog.Categories }

// SelectFoods returns the last food listing.
func SelectFoods(st State) []domain.Food { return st.Catalog.Foods }

// SelectSelectedFood returns the food loaded by FetchFood, or nil.
func SelectSelectedFood(st State) *domain.Food { return st.Catalog.Selected }

// SelectCart returns the cart.
func SelectCart(st State) domain.Cart { return st.Cart.Cart }

// SelectCartSubtotal is the sum of price times quantity over the cart.
func SelectCartSubtotal(st State) float64 { return st.Cart.Cart.Subtotal() }

// SelectCartCount is the number of units in the cart.
func SelectCartCount(st State) int {
	n := 0
	for _, it := range st.Cart.Cart.Items {
		n += it.Quantity
	}
	return n
}

// SelectFavorites returns the favorite foods.
func SelectFavorites(st State) []domain.Food { return st.Favorite.Foods }

// SelectIsFavorite reports whether foodID is a favorite.
func SelectIsFavorite(st State, foodID string) bool {
	for _, f := range st.Favorite.Foods {
		if f.ID == foodID {
			return true
		}
	}
	return false
}

// SelectRatings returns the loaded ratings of foodID.
func SelectRatings(st State, foodID string) []domain.Rating { return st.Rating.ByFood[foodID] }

// SelectVouchers returns the available vouchers.
func SelectVouchers(st State) []domain.Voucher { return st.Voucher.Vouchers }

// SelectAppliedVoucher returns the voucher applied to the cart, or nil.
func SelectAppliedVoucher(st State) *domain.AppliedVoucher { return st.Voucher.Applied }

// SelectOrderTotal is the cart subtotal less the applied discount.
func SelectOrderTotal(st State) float64 {
	total := SelectCartSubtotal(st)
	if st.Voucher.Applied != nil {
		total -= st.Voucher.Applied.Discount
	}
	return max(total, 0)
}

// SelectNotifications returns the notification inbox.
func SelectNotifications(st State) []domain.Notification { return st.Notification.Notifications }

// SelectUnreadCount is the number of unread notifications.
func SelectUnreadCount(st State) int {
	n := 0
	for _, x := range st.Notification.Notifications {
		if !x.IsRead {
			n++
		}
	}
	return n
}

// SelectStatus returns the status of the named slice.
func SelectStatus(st State, slice string) (Status, bool) {
	s := st.status(slice)
	if s == nil {
		return Status{}, false
	}
	return *s, true
}
