package api

import (
	"context"
	"net/http"

	"github.com/hungrynow/hungrynow/internal/domain"
)

// GetProfile returns the signed-in user's profile.
func (c *Client) GetProfile(ctx context.Context) (Envelope[domain.User], error) {
	var env Envelope[domain.User]
	err := c.doJSON(ctx, http.MethodGet, "/users/profile", nil, &env)
	return env, err
}

// UpdateProfile applies a partial profile update.
func (c *Client) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (Envelope[domain.User], error) {
	var env Envelope[domain.User]
	err := c.doJSON(ctx, http.MethodPut, "/users/profile", patch, &env)
	return env, err
}

// ChangePassword changes the password. The backend's message confirms it.
func (c *Client) ChangePassword(ctx context.Context, change domain.PasswordChange) (Envelope[any], error) {
	var env Envelope[any]
	err := c.doJSON(ctx, http.MethodPost, "/users/change-password", change, &env)
	return env, err
}

// ConfirmPhoneVerification marks the phone number verified using the token
// issued by the verification provider.
func (c *Client) ConfirmPhoneVerification(ctx context.Context, idToken string) (Envelope[any], error) {
	var env Envelope[any]
	err := c.doJSON(ctx, http.MethodPost, "/users/verify-phone", domain.PhoneVerification{IDToken: idToken}, &env)
	return env, err
}
