package store

import (
	"context"
	"slices"

	"github.com/hungrynow/hungrynow/internal/domain"
)

// Cart action types.
const (
	ActionFetchCart      = "cart/fetch"
	ActionAddToCart      = "cart/addItem"
	ActionUpdateCartItem = "cart/updateItem"
	ActionRemoveCartItem = "cart/removeItem"
	ActionClearCart      = "cart/clear"
)

// CartState mirrors the backend cart. Every cart route answers with the
// whole cart, which replaces the local copy.
type CartState struct {
	Cart domain.Cart
	Status
}

// CartItemUpdate is the input of UpdateCartItem.
type CartItemUpdate struct {
	FoodID   string
	Quantity int
}

func cartThunk[In any](typ, fallback string, call func(context.Context, Session, In) (domain.Cart, error)) Thunk[In, domain.Cart] {
	return Thunk[In, domain.Cart]{Type: typ, Fallback: fallback, Run: call}
}

var (
	fetchCart = cartThunk(ActionFetchCart, "Failed to fetch cart",
		func(ctx context.Context, sess Session, _ struct{}) (domain.Cart, error) {
			env, err := sess.Client().GetCart(ctx)
			return env.Data, err
		})
	addToCart = cartThunk(ActionAddToCart, "Failed to add item to cart",
		func(ctx context.Context, sess Session, in domain.CartItemInput) (domain.Cart, error) {
			env, err := sess.Client().AddToCart(ctx, in)
			return env.Data, err
		})
	updateCartItem = cartThunk(ActionUpdateCartItem, "Failed to update cart",
		func(ctx context.Context, sess Session, in CartItemUpdate) (domain.Cart, error) {
			env, err := sess.Client().UpdateCartItem(ctx, in.FoodID, in.Quantity)
			return env.Data, err
		})
	removeCartItem = cartThunk(ActionRemoveCartItem, "Failed to remove item from cart",
		func(ctx context.Context, sess Session, foodID string) (domain.Cart, error) {
			env, err := sess.Client().RemoveCartItem(ctx, foodID)
			return env.Data, err
		})
	clearCart = cartThunk(ActionClearCart, "Failed to clear cart",
		func(ctx context.Context, sess Session, _ struct{}) (domain.Cart, error) {
			env, err := sess.Client().ClearCart(ctx)
			return env.Data, err
		})
)

// FetchCart loads the current cart.
func (s *Store) FetchCart(ctx context.Context) (domain.Cart, error) {
	return fetchCart.Dispatch(ctx, s, struct{}{})
}

// AddToCart adds quantity of a food. Adding a food already in the cart
// increases its quantity.
func (s *Store) AddToCart(ctx context.Context, in domain.CartItemInput) (domain.Cart, error) {
	return addToCart.Dispatch(ctx, s, in)
}

// UpdateCartItem sets the quantity of a line; zero removes it.
func (s *Store) UpdateCartItem(ctx context.Context, foodID string, quantity int) (domain.Cart, error) {
	return updateCartItem.Dispatch(ctx, s, CartItemUpdate{FoodID: foodID, Quantity: quantity})
}

// RemoveCartItem drops every unit of foodID from the cart.
func (s *Store) RemoveCartItem(ctx context.Context, foodID string) (domain.Cart, error) {
	return removeCartItem.Dispatch(ctx, s, foodID)
}

// ClearCart empties the cart.
func (s *Store) ClearCart(ctx context.Context) (domain.Cart, error) {
	return clearCart.Dispatch(ctx, s, struct{}{})
}

var cartMessages = map[string]string{
	ActionFetchCart:      "Loaded cart successfully",
	ActionAddToCart:      "Added to cart",
	ActionUpdateCartItem: "Cart updated",
	ActionRemoveCartItem: "Removed from cart",
	ActionClearCart:      "Cart cleared",
}

func (st *CartState) reduce(a Action) {
	msg, ok := cartMessages[a.Type]
	if !ok {
		return
	}
	st.reduceAsync(a, func() string {
		if c, ok := a.Payload.(domain.Cart); ok {
			st.Cart = domain.Cart{Items: slices.Clone(c.Items)}
		}
		return msg
	})
}
