// Package tasks defines the background task types and their payloads.
package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"yen-network/internal/domain"
)

// Task types.
const (
	TypeNotificationDeliver = "notification:deliver"
	TypeStatsRefresh        = "stats:refresh"
)

// Queue names.
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// NotificationDeliverPayload carries one notification to the worker.
type NotificationDeliverPayload struct {
	UserID  string                  `json:"userId"`
	Kind    domain.NotificationKind `json:"kind"`
	Subject string                  `json:"subject"`
	Body    string                  `json:"body"`
}

// Notification converts the payload into an unsaved notification.
func (p NotificationDeliverPayload) Notification() *domain.Notification {
	return &domain.Notification{UserID: p.UserID, Kind: p.Kind, Subject: p.Subject, Body: p.Body}
}

// NewNotificationDeliverTask builds the task delivering n.
func NewNotificationDeliverTask(n domain.Notification) (*asynq.Task, error) {
	payload, err := json.Marshal(NotificationDeliverPayload{
		UserID:  n.UserID,
		Kind:    n.Kind,
		Subject: n.Subject,
		Body:    n.Body,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNotificationDeliver, payload, asynq.Queue(QueueCritical), asynq.MaxRetry(5), asynq.Timeout(30*time.Second)), nil
}

// NewStatsRefreshTask builds the periodic stats task.
func NewStatsRefreshTask() *asynq.Task {
	return asynq.NewTask(TypeStatsRefresh, nil, asynq.Queue(QueueLow), asynq.MaxRetry(1))
}

// TaskEnqueuer is the subset of *asynq.Client used by Enqueuer.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Enqueuer hands notifications to the worker through asynq.
type Enqueuer struct {
	client TaskEnqueuer
}

// NewEnqueuer creates an Enqueuer.
func NewEnqueuer(client TaskEnqueuer) *Enqueuer {
	if client == nil {
		panic("asynq client cannot be nil for Enqueuer")
	}
	return &Enqueuer{client: client}
}

// Notify enqueues a delivery task for n.
func (e *Enqueuer) Notify(ctx context.Context, n domain.Notification) error {
	task, err := NewNotificationDeliverTask(n)
	if err != nil {
		return fmt.Errorf("tasks: build notification task: %w", err)
	}
	if _, err := e.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("tasks: enqueue %s: %w", TypeNotificationDeliver, err)
	}
	return nil
}
