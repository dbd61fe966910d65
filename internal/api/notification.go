package api

import (
	"context"
	"net/http"

	"github.com/hungrynow/hungrynow/internal/domain"
)

// GetNotifications calls GET /notifications.
func (c *Client) GetNotifications(ctx context.Context) (Envelope[[]domain.Notification], error) {
	var env Envelope[[]domain.Notification]
	err := c.doJSON(ctx, http.MethodGet, "/notifications", nil, &env)
	return env, err
}

// MarkNotificationRead calls PUT /notifications/{id}/read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) (Envelope[domain.Notification], error) {
	var env Envelope[domain.Notification]
	err := c.doJSON(ctx, http.MethodPut, "/notifications"+pathID(id)+"/read", nil, &env)
	return env, err
}
