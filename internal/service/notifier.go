package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"yen-network/internal/domain"
)

// Notifier hands a notification off for asynchronous delivery.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// Publisher pushes a stored notification to live subscribers.
type Publisher interface {
	Publish(ctx context.Context, n *domain.Notification) error
}

// NopNotifier drops every notification.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(context.Context, domain.Notification) error { return nil }

// notify enqueues n and only logs a failure; the request that caused the
// notification has already succeeded.
func notify(ctx context.Context, notifier Notifier, n domain.Notification) {
	if err := notifier.Notify(ctx, n); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"recipient": n.UserID,
			"kind":      n.Kind,
			"subject":   n.Subject,
		}).Warn("Failed to enqueue notification")
	}
}
