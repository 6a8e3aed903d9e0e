package worker

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"yen-network/internal/tasks"
)

// WorkerServer runs the asynq server that processes background tasks.
type WorkerServer struct {
	server        *asynq.Server
	log           *logrus.Entry
	notifications NotificationDeliverer
	stats         StatsProvider
}

// NewWorkerServer creates a WorkerServer.
func NewWorkerServer(redisOpt asynq.RedisClientOpt, concurrency int, notifications NotificationDeliverer, stats StatsProvider, logger *logrus.Logger) *WorkerServer {
	if notifications == nil {
		panic("NotificationDeliverer cannot be nil for WorkerServer")
	}
	if stats == nil {
		panic("StatsProvider cannot be nil for WorkerServer")
	}
	if concurrency <= 0 {
		concurrency = 10
	}
	logEntry := logger.WithField("component", "worker_server")

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				tasks.QueueCritical: 6,
				tasks.QueueDefault:  3,
				tasks.QueueLow:      1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				taskID, _ := asynq.GetTaskID(ctx)
				retryCount, _ := asynq.GetRetryCount(ctx)
				maxRetry, _ := asynq.GetMaxRetry(ctx)
				logEntry.WithFields(logrus.Fields{
					"task_id":   taskID,
					"task_type": task.Type(),
					"retries":   retryCount,
					"max_retry": maxRetry,
				}).Errorf("Task failed: %v", err)
			}),
			Logger:   logEntry,
			LogLevel: asynq.WarnLevel,
		},
	)

	return &WorkerServer{
		server:        server,
		log:           logEntry,
		notifications: notifications,
		stats:         stats,
	}
}

// NewServeMux registers every task handler.
func NewServeMux(notifications NotificationDeliverer, stats StatsProvider) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypeNotificationDeliver, NewNotificationDeliverHandler(notifications))
	mux.Handle(tasks.TypeStatsRefresh, NewStatsRefreshHandler(stats))
	return mux
}

// Start begins processing tasks in the background. Signal handling is left
// to the caller, which stops the server through Shutdown.
func (ws *WorkerServer) Start() error {
	ws.log.Info("Worker server starting...")
	if err := ws.server.Start(NewServeMux(ws.notifications, ws.stats)); err != nil {
		return fmt.Errorf("start worker server: %w", err)
	}
	return nil
}

// Shutdown stops the server after in-flight tasks finish.
func (ws *WorkerServer) Shutdown() {
	ws.log.Info("Shutting down worker server...")
	ws.server.Shutdown()
	ws.log.Info("Worker server shut down complete.")
}
