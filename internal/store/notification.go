package store

import (
	"context"
	"slices"

	"github.com/hungrynow/hungrynow/internal/domain"
)

// Notification action types.
const (
	ActionFetchNotifications = "notification/fetch"
	ActionMarkRead           = "notification/markRead"
)

type NotificationState struct {
	Notifications []domain.Notification
	Status
}

var fetchNotifications = Thunk[struct{}, []domain.Notification]{
	Type:     ActionFetchNotifications,
	Fallback: "Failed to fetch notifications",
	Run: func(ctx context.Context, sess Session, _ struct{}) ([]domain.Notification, error) {
		env, err := sess.Client().GetNotifications(ctx)
		return env.Data, err
	},
}

var markRead = Thunk[string, domain.Notification]{
	Type:     ActionMarkRead,
	Fallback: "Failed to mark notification as read",
	Run: func(ctx context.Context, sess Session, id string) (domain.Notification, error) {
		env, err := sess.Client().MarkNotificationRead(ctx, id)
		return env.Data, err
	},
}

// FetchNotifications loads the notification inbox.
func (s *Store) FetchNotifications(ctx context.Context) ([]domain.Notification, error) {
	return fetchNotifications.Dispatch(ctx, s, struct{}{})
}

// MarkNotificationRead flags the notification with id as read.
func (s *Store) MarkNotificationRead(ctx context.Context, id string) (domain.Notification, error) {
	return markRead.Dispatch(ctx, s, id)
}

func (st *NotificationState) reduce(a Action) {
	switch a.Type {
	case ActionFetchNotifications:
		st.reduceAsync(a, func() string {
			ns, _ := a.Payload.([]domain.Notification)
			st.Notifications = slices.Clone(ns)
			return "Loaded notifications successfully"
		})
	case ActionMarkRead:
		st.reduceAsync(a, func() string {
			id, _ := a.Arg.(string)
			for i := range st.Notifications {
				if st.Notifications[i].ID == id {
					st.Notifications[i].IsRead = true
				}
			}
			return "Notification marked as read"
		})
	}
}
