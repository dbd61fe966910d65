package api

import (
	"context"
	"net/http"

	"github.com/hungrynow/hungrynow/internal/domain"
)

// GetFoodRatings lists the ratings of one food, newest first.
func (c *Client) GetFoodRatings(ctx context.Context, foodID string) (Envelope[[]domain.Rating], error) {
	var env Envelope[[]domain.Rating]
	err := c.doJSON(ctx, http.MethodGet, "/ratings/food"+pathID(foodID), nil, &env)
	return env, err
}

// AddRating calls POST /ratings.
func (c *Client) AddRating(ctx context.Context, in domain.RatingInput) (Envelope[domain.Rating], error) {
	var env Envelope[domain.Rating]
	err := c.doJSON(ctx, http.MethodPost, "/ratings", in, &env)
	return env, err
}
