package repository

import (
	"context"

	"yen-network/internal/domain"
)

// NotificationRepository defines storage of user notifications.
type NotificationRepository interface {
	// Create inserts a notification.
	Create(ctx context.Context, n *domain.Notification) error

	// ListForUser returns at most limit notifications, newest first.
	ListForUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error)

	// MarkRead flags a notification owned by userID as read.
	// Returns ErrNotificationNotFound when no such notification belongs to the user.
	MarkRead(ctx context.Context, id, userID string) error
}
