package api

import (
	"context"
	"net/http"

	"github.com/hungrynow/hungrynow/internal/domain"
)

// GetFavorites calls GET /favorites.
func (c *Client) GetFavorites(ctx context.Context) (Envelope[[]domain.Food], error) {
	var env Envelope[[]domain.Food]
	err := c.doJSON(ctx, http.MethodGet, "/favorites", nil, &env)
	return env, err
}

// AddFavorite returns the food that was added.
func (c *Client) AddFavorite(ctx context.Context, foodID string) (Envelope[domain.Food], error) {
	var env Envelope[domain.Food]
	err := c.doJSON(ctx, http.MethodPost, "/favorites"+pathID(foodID), nil, &env)
	return env, err
}

// RemoveFavorite calls DELETE /favorites/{foodID}.
func (c *Client) RemoveFavorite(ctx context.Context, foodID string) (Envelope[any], error) {
	var env Envelope[any]
	err := c.doJSON(ctx, http.MethodDelete, "/favorites"+pathID(foodID), nil, &env)
	return env, err
}
