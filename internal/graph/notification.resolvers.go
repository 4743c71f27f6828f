package graph

import (
	"context"
	"time"

	"storefront-be/internal/graph/model"
	"storefront-be/internal/notification"
)

// Notifications is the resolver for the notifications field.
func (r *queryResolver) Notifications(ctx context.Context) ([]*model.Notification, error) {
	items := r.App.ActiveNotifications()
	out := make([]*model.Notification, 0, len(items))
	for _, n := range items {
		out = append(out, MapNotificationToGraphQL(n, r.App.NotificationExiting(n.ID)))
	}
	return out, nil
}

// AddNotification queues a notification, keeping the caller's id and
// duration when given.
func (r *mutationResolver) AddNotification(ctx context.Context, input model.NotificationInput) (*model.Notification, error) {
	n := notification.Notification{Message: input.Message}
	if input.ID != nil {
		n.ID = *input.ID
	}
	if input.Type != nil {
		typ, err := notification.ParseType(*input.Type)
		if err != nil {
			return nil, err
		}
		n.Type = typ
	}
	if input.Duration != nil {
		if *input.Duration < 0 {
			return nil, ErrNegativeDuration
		}
		n.Duration = time.Duration(*input.Duration) * time.Millisecond
	}

	n = r.App.AddNotification(n)
	return MapNotificationToGraphQL(n, false), nil
}

func (r *mutationResolver) DismissNotification(ctx context.Context, id string) (bool, error) {
	r.App.DismissNotification(id)
	return true, nil
}
