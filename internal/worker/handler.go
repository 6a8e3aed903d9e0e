package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"yen-network/internal/domain"
	"yen-network/internal/tasks"
)

// NotificationDeliverer stores and publishes a notification.
type NotificationDeliverer interface {
	Deliver(ctx context.Context, n *domain.Notification) error
}

// StatsProvider computes platform statistics.
type StatsProvider interface {
	Stats(ctx context.Context) (*domain.PlatformStats, error)
}

func taskLogger(ctx context.Context, t *asynq.Task) *logrus.Entry {
	taskID, _ := asynq.GetTaskID(ctx)
	queue, _ := asynq.GetQueueName(ctx)
	retry, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)
	return logrus.WithFields(logrus.Fields{
		"task_id":   taskID,
		"task_type": t.Type(),
		"queue":     queue,
		"retry":     retry,
		"max_retry": maxRetry,
	})
}

// NotificationDeliverHandler processes notification:deliver tasks.
type NotificationDeliverHandler struct {
	notifications NotificationDeliverer
}

// NewNotificationDeliverHandler creates the handler.
func NewNotificationDeliverHandler(notifications NotificationDeliverer) *NotificationDeliverHandler {
	return &NotificationDeliverHandler{notifications: notifications}
}

// ProcessTask implements asynq.Handler.
func (h *NotificationDeliverHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	logCtx := taskLogger(ctx, t)

	var payload tasks.NotificationDeliverPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logCtx.WithError(err).Error("Failed to unmarshal task payload")
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.UserID == "" {
		logCtx.Error("Notification payload has no recipient")
		return fmt.Errorf("notification payload has no recipient: %w", asynq.SkipRetry)
	}
	logCtx = logCtx.WithFields(logrus.Fields{"recipient": payload.UserID, "kind": payload.Kind})

	if err := h.notifications.Deliver(ctx, payload.Notification()); err != nil {
		logCtx.WithError(err).Error("Failed to deliver notification")
		return fmt.Errorf("failed to deliver notification to %s: %w", payload.UserID, err)
	}
	logCtx.Info("Notification task processed successfully")
	return nil
}

// StatsRefreshHandler processes stats:refresh tasks.
type StatsRefreshHandler struct {
	stats StatsProvider
}

// NewStatsRefreshHandler creates the handler.
func NewStatsRefreshHandler(stats StatsProvider) *StatsRefreshHandler {
	return &StatsRefreshHandler{stats: stats}
}

// ProcessTask implements asynq.Handler.
func (h *StatsRefreshHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	logCtx := taskLogger(ctx, t)

	stats, err := h.stats.Stats(ctx)
	if err != nil {
		logCtx.WithError(err).Error("Failed to compute platform stats")
		return err
	}
	logCtx.WithFields(logrus.Fields{
		"users":          stats.Users,
		"ideas":          stats.Ideas,
		"fully_funded":   stats.FullyFundedIdeas,
		"funding_raised": stats.TotalFundingRaised,
		"connections":    stats.Connections,
	}).Info("Platform stats refreshed")
	return nil
}
