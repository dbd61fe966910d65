package api

import (
	"context"
	"net/http"

	"github.com/hungrynow/hungrynow/internal/domain"
)

// GetAddresses lists the user's addresses.
func (c *Client) GetAddresses(ctx context.Context) (Envelope[[]domain.Address], error) {
	var env Envelope[[]domain.Address]
	err := c.doJSON(ctx, http.MethodGet, "/addresses", nil, &env)
	return env, err
}

// AddAddress creates an address. The id of a is ignored by the backend.
func (c *Client) AddAddress(ctx context.Context, a domain.Address) (Envelope[domain.Address], error) {
	a.ID = ""
	var env Envelope[domain.Address]
	err := c.doJSON(ctx, http.MethodPost, "/addresses", a, &env)
	return env, err
}

// UpdateAddress applies a partial update to the address with the given id.
func (c *Client) UpdateAddress(ctx context.Context, id string, patch domain.AddressPatch) (Envelope[domain.Address], error) {
	var env Envelope[domain.Address]
	err := c.doJSON(ctx, http.MethodPut, "/addresses"+pathID(id), patch, &env)
	return env, err
}

// DeleteAddress deletes the address with the given id.
func (c *Client) DeleteAddress(ctx context.Context, id string) (Envelope[any], error) {
	var env Envelope[any]
	err := c.doJSON(ctx, http.MethodDelete, "/addresses"+pathID(id), nil, &env)
	return env, err
}
