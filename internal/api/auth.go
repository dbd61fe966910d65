package api

import (
	"context"
	"net/http"

	"github.com/hungrynow/hungrynow/internal/domain"
)

// Login calls POST /auth/login.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (Envelope[domain.Session], error) {
	var env Envelope[domain.Session]
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", creds, &env)
	return env, err
}

// Register calls POST /auth/register.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (Envelope[domain.Session], error) {
	var env Envelope[domain.Session]
	err := c.doJSON(ctx, http.MethodPost, "/auth/register", reg, &env)
	return env, err
}

// Logout revokes the client's token on the backend.
func (c *Client) Logout(ctx context.Context) (Envelope[any], error) {
	var env Envelope[any]
	err := c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, &env)
	return env, err
}

// ForgotPassword calls POST /auth/forgot-password.
func (c *Client) ForgotPassword(ctx context.Context, email string) (Envelope[any], error) {
	var env Envelope[any]
	err := c.doJSON(ctx, http.MethodPost, "/auth/forgot-password", domain.PasswordReset{Email: email}, &env)
	return env, err
}
