package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hungrynow/hungrynow/internal/domain"
	"github.com/hungrynow/hungrynow/pkg/logger"
)

func newReducerStore() *Store {
	return New(nil, logger.Discard())
}

func fulfill(s *Store, typ string, arg, payload any) {
	s.Dispatch(Action{Type: typ, Phase: Fulfilled, Arg: arg, Payload: payload})
}

func home() domain.Address {
	return domain.Address{ID: "a1", Label: "Home", AddressDetail: "1 Main St", Latitude: 1, Longitude: 1, IsDefault: true}
}

func defaults(addrs []domain.Address) []string {
	var ids []string
	for _, a := range addrs {
		if a.IsDefault {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

func TestAddress_FetchScenario(t *testing.T) {
	s := newReducerStore()
	s.Dispatch(Action{Type: ActionFetchAddresses, Phase: Pending})
	fulfill(s, ActionFetchAddresses, nil, []domain.Address{home()})

	st := s.State().Address
	assert.Equal(t, []domain.Address{home()}, st.Addresses)
	assert.False(t, st.Loading)
	assert.Equal(t, "Loaded addresses successfully", st.SuccessMessage)
	assert.Empty(t, st.Error)
}

func TestAddress_AddNewDefaultClearsOthers(t *testing.T) {
	s := newReducerStore()
	fulfill(s, ActionFetchAddresses, nil, []domain.Address{home()})

	work := domain.Address{ID: "a2", Label: "Work", AddressDetail: "2 Side St", IsDefault: true}
	fulfill(s, ActionAddAddress, work, work)

	addrs := s.State().Address.Addresses
	require.Len(t, addrs, 2)
	assert.Equal(t, "Home", addrs[0].Label)
	assert.False(t, addrs[0].IsDefault)
	assert.Equal(t, "Work", addrs[1].Label)
	assert.True(t, addrs[1].IsDefault)
	assert.Equal(t, "Address added successfully", s.State().Address.SuccessMessage)
}

func TestAddress_ManyAddsExactlyOneDefault(t *testing.T) {
	s := newReducerStore()
	for i, id := range []string{"a1", "a2", "a3", "a4", "a5"} {
		a := domain.Address{ID: id, IsDefault: i == 3}
		fulfill(s, ActionAddAddress, a, a)
	}
	assert.Equal(t, []string{"a4"}, defaults(s.State().Address.Addresses))
}

func TestAddress_AddNonDefaultKeepsExistingDefault(t *testing.T) {
	s := newReducerStore()
	fulfill(s, ActionFetchAddresses, nil, []domain.Address{home()})
	fulfill(s, ActionAddAddress, nil, domain.Address{ID: "a2", Label: "Work"})

	assert.Equal(t, []string{"a1"}, defaults(s.State().Address.Addresses))
}

func TestAddress_UpdateToDefaultClearsOthers(t *testing.T) {
	s := newReducerStore()
	fulfill(s, ActionFetchAddresses, nil, []domain.Address{
		home(),
		{ID: "a2", Label: "Work"},
		{ID: "a3", Label: "Gym"},
	})

	fulfill(s, ActionUpdateAddress, nil, domain.Address{ID: "a3", Label: "Gym", IsDefault: true})

	assert.Equal(t, []string{"a3"}, defaults(s.State().Address.Addresses))
	assert.Equal(t, "Address updated successfully", s.State().Address.SuccessMessage)
}

func TestAddress_UpdateWithoutDefaultLeavesOthers(t *testing.T) {
	s := newReducerStore()
	fulfill(s, ActionFetchAddresses, nil, []domain.Address{
		home(),
		{ID: "a2", Label: "Work"},
	})

	fulfill(s, ActionUpdateAddress, nil, domain.Address{ID: "a2", Label: "Office"})

	addrs := s.State().Address.Addresses
	assert.Equal(t, "Office", addrs[1].Label)
	assert.Equal(t, []string{"a1"}, defaults(addrs))
}

func TestAddress_DeletePreservesOrder(t *testing.T) {
	s := newReducerStore()
	fulfill(s, ActionFetchAddresses, nil, []domain.Address{{ID: "a1"}, {ID: "a2"}, {ID: "a3"}})
	fulfill(s, ActionDeleteAddress, "a2", "a2")

	var ids []string
	for _, a := range s.State().Address.Addresses {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"a1", "a3"}, ids)
	assert.Equal(t, "Address deleted successfully", s.State().Address.SuccessMessage)
}

func TestStatus_PendingClearsMessages(t *testing.T) {
	for _, typ := range []string{
		ActionFetchAddresses, ActionAddAddress, ActionUpdateAddress, ActionDeleteAddress,
		ActionFetchProfile, ActionChangePassword, ActionLogin, ActionFetchCart, ActionApplyVoucher,
	} {
		t.Run(typ, func(t *testing.T) {
			s := newReducerStore()
			s.Dispatch(Action{Type: typ, Phase: Rejected, Err: "old error"})
			s.Dispatch(Action{Type: typ, Phase: Pending})

			st, ok := SelectStatus(s.State(), Action{Type: typ}.Slice())
			require.True(t, ok)
			assert.Equal(t, Status{Loading: true}, st)
		})
	}
}

func TestStatus_RejectedUsesPayloadOrFallback(t *testing.T) {
	s := newReducerStore()
	s.Dispatch(Action{Type: ActionAddAddress, Phase: Pending})
	s.Dispatch(Action{Type: ActionAddAddress, Phase: Rejected, Err: "Label is required"})

	st := s.State().Address.Status
	assert.False(t, st.Loading)
	assert.Equal(t, "Label is required", st.Error)
	assert.Empty(t, st.SuccessMessage)

	s.Dispatch(Action{Type: ActionAddAddress, Phase: Rejected})
	assert.Equal(t, defaultErrorMessage, s.State().Address.Error)
}

func TestStatus_FulfilledAfterRejectedClearsError(t *testing.T) {
	s := newReducerStore()
	s.Dispatch(Action{Type: ActionFetchAddresses, Phase: Rejected, Err: "boom"})
	fulfill(s, ActionFetchAddresses, nil, []domain.Address{})

	st := s.State().Address.Status
	assert.Empty(t, st.Error)
	assert.NotEmpty(t, st.SuccessMessage)
}

func TestClearMessages(t *testing.T) {
	s := newReducerStore()
	s.Dispatch(Action{Type: ActionFetchAddresses, Phase: Rejected, Err: "boom"})
	s.Dispatch(Action{Type: ActionFetchProfile, Phase: Rejected, Err: "nope"})

	s.ClearMessages(SliceAddress)

	st := s.State()
	assert.Empty(t, st.Address.Error)
	assert.Equal(t, "nope", st.User.Error, "other slices are untouched")

	// Unknown slices are ignored.
	s.ClearMessages("bogus")
}

func TestUser_ConfirmPhoneVerification(t *testing.T) {
	s := newReducerStore()

	// No profile loaded: only the message changes.
	fulfill(s, ActionConfirmPhoneVerification, "tok", "Phone verified")
	assert.Nil(t, s.State().User.Profile)
	assert.Equal(t, "Phone verified", s.State().User.SuccessMessage)

	fulfill(s, ActionFetchProfile, nil, domain.User{ID: "u1", PhoneNumber: "0912345678"})
	fulfill(s, ActionConfirmPhoneVerification, "tok", "")

	st := s.State().User
	require.NotNil(t, st.Profile)
	assert.True(t, st.Profile.IsPhoneVerified)
	assert.Equal(t, "Phone number verified successfully", st.SuccessMessage)
}

func TestUser_ChangePasswordKeepsProfile(t *testing.T) {
	s := newReducerStore()
	fulfill(s, ActionFetchProfile, nil, domain.User{ID: "u1", FullName: "A"})
	fulfill(s, ActionChangePassword, nil, "Password updated")

	st := s.State().User
	assert.Equal(t, "A", st.Profile.FullName)
	assert.Equal(t, "Password updated", st.SuccessMessage)
}

func TestAuth_LoginSetsUserProfile(t *testing.T) {
	s := newReducerStore()
	fulfill(s, ActionLogin, nil, domain.Session{Token: "tok", User: domain.User{ID: "u1"}})

	st := s.State()
	assert.True(t, SelectIsAuthenticated(st))
	require.NotNil(t, st.User.Profile)
	assert.Equal(t, "u1", st.User.Profile.ID)
	assert.Empty(t, st.User.SuccessMessage, "the user slice status belongs to user actions")
	assert.Equal(t, "Logged in successfully", st.Auth.SuccessMessage)
}

func TestAuth_LogoutResetsEverything(t *testing.T) {
	s := newReducerStore()
	fulfill(s, ActionLogin, nil, domain.Session{Token: "tok", User: domain.User{ID: "u1"}})
	fulfill(s, ActionFetchAddresses, nil, []domain.Address{home()})
	fulfill(s, ActionFetchCart, nil, domain.Cart{Items: []domain.CartItem{{Quantity: 1}}})

	fulfill(s, ActionLogout, nil, struct{}{})

	st := s.State()
	assert.False(t, SelectIsAuthenticated(st))
	assert.Empty(t, st.Address.Addresses)
	assert.Nil(t, st.User.Profile)
	assert.Empty(t, st.Cart.Cart.Items)
	assert.Equal(t, "Logged out successfully", st.Auth.SuccessMessage)
}

func TestAuth_RestoreWithoutSession(t *testing.T) {
	s := newReducerStore()
	fulfill(s, ActionRestoreSession, nil, domain.Session{})

	st := s.State()
	assert.False(t, SelectIsAuthenticated(st))
	assert.Nil(t, st.User.Profile)
	assert.Equal(t, "Please sign in", st.Auth.SuccessMessage)
}

func TestFavorite_AddIsIdempotentAndRemoveFilters(t *testing.T) {
	s := newReducerStore()
	pho := domain.Food{ID: "f1", Name: "Phở"}
	fulfill(s, ActionAddFavorite, "f1", pho)
	fulfill(s, ActionAddFavorite, "f1", pho)
	fulfill(s, ActionAddFavorite, "f2", domain.Food{ID: "f2"})

	st := s.State()
	assert.Len(t, st.Favorite.Foods, 2)
	assert.True(t, SelectIsFavorite(st, "f1"))

	fulfill(s, ActionRemoveFavorite, "f1", "f1")
	st = s.State()
	assert.False(t, SelectIsFavorite(st, "f1"))
	assert.True(t, SelectIsFavorite(st, "f2"))
}

func TestRating_AddPrepends(t *testing.T) {
	s := newReducerStore()
	fulfill(s, ActionFetchRatings, "f1", FoodRatings{FoodID: "f1", Ratings: []domain.Rating{{ID: "r1", FoodID: "f1"}}})
	fulfill(s, ActionAddRating, nil, domain.Rating{ID: "r2", FoodID: "f1"})

	got := SelectRatings(s.State(), "f1")
	require.Len(t, got, 2)
	assert.Equal(t, "r2", got[0].ID)
}

func TestVoucher_ApplyAndRemove(t *testing.T) {
	s := newReducerStore()
	fulfill(s, ActionFetchCart, nil, domain.Cart{Items: []domain.CartItem{{Food: domain.Food{Price: 50000}, Quantity: 2}}})
	fulfill(s, ActionApplyVoucher, nil, domain.AppliedVoucher{Voucher: domain.Voucher{Code: "WELCOME10"}, Discount: 10000})

	st := s.State()
	require.NotNil(t, SelectAppliedVoucher(st))
	assert.Equal(t, 100000.0, SelectCartSubtotal(st))
	assert.Equal(t, 90000.0, SelectOrderTotal(st))

	// A rejected code keeps the applied voucher.
	s.Dispatch(Action{Type: ActionApplyVoucher, Phase: Rejected, Err: "Voucher expired"})
	assert.NotNil(t, SelectAppliedVoucher(s.State()))

	s.RemoveAppliedVoucher()
	assert.Nil(t, SelectAppliedVoucher(s.State()))
	assert.Equal(t, 100000.0, SelectOrderTotal(s.State()))
}

func TestVoucher_CartChangeReprices(t *testing.T) {
	s := newReducerStore()
	pho := domain.Food{ID: "f1", Price: 100}
	fulfill(s, ActionFetchCart, nil, domain.Cart{Items: []domain.CartItem{{Food: pho, Quantity: 2}}})

	percent := domain.Voucher{Code: "PCT10", DiscountType: domain.DiscountPercent, DiscountValue: 10, MinOrderValue: 100}
	fulfill(s, ActionApplyVoucher, nil, domain.AppliedVoucher{Voucher: percent, Discount: 20})
	fulfill(s, ActionAddToCart, nil, domain.Cart{Items: []domain.CartItem{{Food: pho, Quantity: 3}}})

	st := s.State()
	require.NotNil(t, SelectAppliedVoucher(st))
	assert.Equal(t, 30.0, SelectAppliedVoucher(st).Discount)
	assert.Equal(t, 270.0, SelectOrderTotal(st))

	fixed := domain.Voucher{Code: "FIX30", DiscountType: domain.DiscountFixed, DiscountValue: 30, MinOrderValue: 100}
	fulfill(s, ActionApplyVoucher, nil, domain.AppliedVoucher{Voucher: fixed, Discount: 30})
	fulfill(s, ActionUpdateCartItem, nil, domain.Cart{Items: []domain.CartItem{{Food: domain.Food{ID: "f2", Price: 50}, Quantity: 1}}})

	st = s.State()
	assert.Nil(t, SelectAppliedVoucher(st), "cart below the minimum order drops the voucher")
	assert.Equal(t, 50.0, SelectOrderTotal(st))

	fulfill(s, ActionApplyVoucher, nil, domain.AppliedVoucher{Voucher: fixed, Discount: 30})
	s.Dispatch(Action{Type: ActionRemoveCartItem, Phase: Pending})
	assert.NotNil(t, SelectAppliedVoucher(s.State()), "pending cart actions leave the voucher alone")

	fulfill(s, ActionClearCart, nil, domain.Cart{})
	assert.Nil(t, SelectAppliedVoucher(s.State()))
	assert.Zero(t, SelectOrderTotal(s.State()))
}

func TestNotification_MarkRead(t *testing.T) {
	s := newReducerStore()
	fulfill(s, ActionFetchNotifications, nil, []domain.Notification{{ID: "n1"}, {ID: "n2"}, {ID: "n3", IsRead: true}})
	assert.Equal(t, 2, SelectUnreadCount(s.State()))

	fulfill(s, ActionMarkRead, "n1", domain.Notification{ID: "n1", IsRead: true})
	assert.Equal(t, 1, SelectUnreadCount(s.State()))
}

func TestCatalog_FetchFoodsRemembersFilter(t *testing.T) {
	s := newReducerStore()
	f := domain.FoodFilter{CategoryID: "c1"}
	fulfill(s, ActionFetchFoods, f, []domain.Food{{ID: "f1"}})
	fulfill(s, ActionFetchFood, "f1", domain.Food{ID: "f1", Name: "Bánh mì"})

	st := s.State()
	assert.Equal(t, f, st.Catalog.Filter)
	require.NotNil(t, SelectSelectedFood(st))
	assert.Equal(t, "Bánh mì", SelectSelectedFood(st).Name)
}

func TestCart_SelectCount(t *testing.T) {
	s := newReducerStore()
	fulfill(s, ActionAddToCart, nil, domain.Cart{Items: []domain.CartItem{{Quantity: 2}, {Quantity: 3}}})
	assert.Equal(t, 5, SelectCartCount(s.State()))
	assert.Equal(t, "Added to cart", s.State().Cart.SuccessMessage)
}

func TestState_SnapshotIsIsolated(t *testing.T) {
	s := newReducerStore()
	fulfill(s, ActionFetchAddresses, nil, []domain.Address{home()})
	fulfill(s, ActionFetchProfile, nil, domain.User{ID: "u1", FullName: "A"})

	snap := s.State()
	snap.Address.Addresses[0].Label = "Changed"
	snap.User.Profile.FullName = "B"

	st := s.State()
	assert.Equal(t, "Home", st.Address.Addresses[0].Label)
	assert.Equal(t, "A", st.User.Profile.FullName)
}

func TestState_PayloadIsNotAliased(t *testing.T) {
	s := newReducerStore()
	payload := []domain.Address{home(), {ID: "a2"}}
	fulfill(s, ActionFetchAddresses, nil, payload)

	fulfill(s, ActionUpdateAddress, nil, domain.Address{ID: "a2", IsDefault: true})
	assert.True(t, payload[0].IsDefault, "the caller's slice must not change")
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "address/add/pending", Action{Type: ActionAddAddress, Phase: Pending}.String())
	assert.Equal(t, "address/clearMessages", ClearMessages(SliceAddress).String())
	assert.Equal(t, "address", Action{Type: ActionAddAddress}.Slice())
	assert.True(t, Action{Phase: Rejected}.Settled())
	assert.False(t, Action{Phase: Pending}.Settled())
}
