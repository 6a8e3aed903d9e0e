package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"yen-network/internal/domain"
	"yen-network/internal/repository"
)

// DefaultNotificationLimit caps how many notifications List returns.
const DefaultNotificationLimit = 50

// NotificationService stores notifications and pushes them to live feeds.
type NotificationService struct {
	notifRepo repository.NotificationRepository
	publisher Publisher
}

// NewNotificationService creates a NotificationService. publisher may be nil
// when no live feed is running.
func NewNotificationService(notifRepo repository.NotificationRepository, publisher Publisher) *NotificationService {
	if notifRepo == nil {
		panic("NotificationRepository cannot be nil for NotificationService")
	}
	return &NotificationService{notifRepo: notifRepo, publisher: publisher}
}

// Deliver persists the notification and publishes it. A publish failure is
// logged only; the notification is already readable through List.
func (s *NotificationService) Deliver(ctx context.Context, n *domain.Notification) error {
	logCtx := logrus.WithFields(logrus.Fields{"recipient": n.UserID, "kind": n.Kind})

	if err := s.notifRepo.Create(ctx, n); err != nil {
		logCtx.WithError(err).Error("Failed to store notification")
		return err
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, n); err != nil {
			logCtx.WithError(err).Warn("Failed to publish notification")
		}
	}
	logCtx.WithField("notification_id", n.ID).Debug("Notification delivered")
	return nil
}

// List returns the user's most recent notifications.
func (s *NotificationService) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	items, err := s.notifRepo.ListForUser(ctx, userID, DefaultNotificationLimit)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to list notifications")
		return nil, ErrInternalServer
	}
	return items, nil
}

// MarkRead marks one of the user's notifications read.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	if err := s.notifRepo.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return ErrNotificationNotFound
		}
		logrus.WithError(err).WithFields(logrus.Fields{"notification_id": id, "user_id": userID}).Error("Failed to mark notification read")
		return ErrInternalServer
	}
	return nil
}
