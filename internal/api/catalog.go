package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hungrynow/hungrynow/internal/domain"
)

// GetCategories calls GET /categories.
func (c *Client) GetCategories(ctx context.Context) (Envelope[[]domain.Category], error) {
	var env Envelope[[]domain.Category]
	err := c.doJSON(ctx, http.MethodGet, "/categories", nil, &env)
	return env, err
}

// GetFoods lists foods, optionally narrowed by category and search text.
func (c *Client) GetFoods(ctx context.Context, f domain.FoodFilter) (Envelope[[]domain.Food], error) {
	q := url.Values{}
	if f.CategoryID != "" {
		q.Set("categoryId", f.CategoryID)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	path := "/foods"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var env Envelope[[]domain.Food]
	err := c.doJSON(ctx, http.MethodGet, path, nil, &env)
	return env, err
}

// GetFood calls GET /foods/{id}.
func (c *Client) GetFood(ctx context.Context, id string) (Envelope[domain.Food], error) {
	var env Envelope[domain.Food]
	err := c.doJSON(ctx, http.MethodGet, "/foods"+pathID(id), nil, &env)
	return env, err
}
