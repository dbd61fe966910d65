package api

import (
	"context"
	"net/http"

	"github.com/hungrynow/hungrynow/internal/domain"
)

// Every cart route answers with the whole updated cart.

// GetCart calls GET /cart.
func (c *Client) GetCart(ctx context.Context) (Envelope[domain.Cart], error) {
	var env Envelope[domain.Cart]
	err := c.doJSON(ctx, http.MethodGet, "/cart", nil, &env)
	return env, err
}

// AddToCart calls POST /cart/items.
func (c *Client) AddToCart(ctx context.Context, in domain.CartItemInput) (Envelope[domain.Cart], error) {
	var env Envelope[domain.Cart]
	err := c.doJSON(ctx, http.MethodPost, "/cart/items", in, &env)
	return env, err
}

// UpdateCartItem calls PUT /cart/items/{foodID}.
func (c *Client) UpdateCartItem(ctx context.Context, foodID string, quantity int) (Envelope[domain.Cart], error) {
	var env Envelope[domain.Cart]
	err := c.doJSON(ctx, http.MethodPut, "/cart/items"+pathID(foodID), domain.QuantityUpdate{Quantity: quantity}, &env)
	return env, err
}

// RemoveCartItem calls DELETE /cart/items/{foodID}.
func (c *Client) RemoveCartItem(ctx context.Context, foodID string) (Envelope[domain.Cart], error) {
	var env Envelope[domain.Cart]
	err := c.doJSON(ctx, http.MethodDelete, "/cart/items"+pathID(foodID), nil, &env)
	return env, err
}

// ClearCart calls DELETE /cart.
func (c *Client) ClearCart(ctx context.Context) (Envelope[domain.Cart], error) {
	var env Envelope[domain.Cart]
	err := c.doJSON(ctx, http.MethodDelete, "/cart", nil, &env)
	return env, err
}
