package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"yen-network/internal/auth"
	"yen-network/internal/hub"
	gormpersistence "yen-network/internal/infra/persistence/gorm"
	redispubsub "yen-network/internal/infra/pubsub/redis"
	"yen-network/internal/infra/setup"
	"yen-network/internal/infra/tracing"
	"yen-network/internal/service"
	"yen-network/internal/tasks"
	"yen-network/internal/worker"
)

const (
	serviceName       = "yen-api"
	serviceVersion    = "1.0.0"
	statsSchedule     = "@every 10m"
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// App holds every long-lived component.
type App struct {
	Config      *Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	AsynqClient *asynq.Client
	AsynqServer *worker.WorkerServer
	Scheduler   *asynq.Scheduler
	Hub         *hub.Hub
	Subscriber  *redispubsub.Subscriber
	HttpServer  *http.Server

	shutdownTracer tracing.ShutdownFunc
	cancelSubs     context.CancelFunc
}

// NewApp loads configuration and wires the application.
func NewApp() (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := NewLogger(cfg)
	log.WithFields(logrus.Fields{"env": cfg.AppEnv, "level": cfg.LogLevel}).Info("Configuration loaded successfully")

	shutdownTracer, err := tracing.InitTracer(context.Background(), tracing.Options{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Environment:    cfg.AppEnv,
		Endpoint:       cfg.OTLPEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init tracing: %w", err)
	}
	if cfg.OTLPEndpoint != "" {
		log.WithField("endpoint", cfg.OTLPEndpoint).Info("Tracing enabled")
	}

	log.Info("Initializing infrastructure...")
	db, err := setup.InitDB(cfg.DBOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to init DB: %w", err)
	}
	if err := setup.MigrateDB(db); err != nil {
		return nil, fmt.Errorf("failed to migrate DB: %w", err)
	}

	redisClient, err := setup.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, fmt.Errorf("failed to init Redis: %w", err)
	}

	redisClientOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
	asynqClient := asynq.NewClient(redisClientOpt)
	log.Info("Infrastructure initialized successfully")

	userRepo := gormpersistence.NewGormUserRepository(db)
	ideaRepo := gormpersistence.NewGormIdeaRepository(db)
	connRepo := gormpersistence.NewGormConnectionRepository(db)
	notifRepo := gormpersistence.NewGormNotificationRepository(db)

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenExpiry)
	notifier := tasks.NewEnqueuer(asynqClient)
	publisher := redispubsub.NewPublisher(redisClient, cfg.KeyPrefix)

	svc := Services{
		Auth:          service.NewAuthService(userRepo, tokens, cfg.AdminEmails),
		Ideas:         service.NewIdeaService(ideaRepo, userRepo, notifier),
		Connections:   service.NewConnectionService(connRepo, userRepo, notifier, cfg.ResolvePolicy),
		Users:         service.NewUserService(userRepo),
		Notifications: service.NewNotificationService(notifRepo, publisher),
		Reports:       service.NewReportService(userRepo, ideaRepo, connRepo),
	}
	log.Info("Services initialized")

	hubInstance := hub.NewHub()
	workerServer := worker.NewWorkerServer(redisClientOpt, cfg.WorkerConcurrency, svc.Notifications, svc.Reports, log)
	scheduler := asynq.NewScheduler(redisClientOpt, &asynq.SchedulerOpts{Logger: log.WithField("component", "scheduler"), LogLevel: asynq.WarnLevel})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := NewRouter(svc, RouterOptions{
		Logger:          log,
		Tokens:          tokens,
		Redis:           redisClient,
		KeyPrefix:       cfg.KeyPrefix,
		RateLimitMax:    cfg.RateLimitMax,
		RateLimitWindow: cfg.RateLimitWindow,
		CORSOrigins:     cfg.CORSAllowedOrigins,
		Hub:             hubInstance,
	})

	return &App{
		Config:      cfg,
		Log:         log,
		DB:          db,
		RedisClient: redisClient,
		AsynqClient: asynqClient,
		AsynqServer: workerServer,
		Scheduler:   scheduler,
		Hub:         hubInstance,
		Subscriber:  redispubsub.NewSubscriber(redisClient, cfg.KeyPrefix),
		HttpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		shutdownTracer: shutdownTracer,
	}, nil
}

// Start launches the background components and the HTTP server. It does
// not block.
func (a *App) Start() {
	go a.Hub.Run()

	subCtx, cancel := context.WithCancel(context.Background())
	a.cancelSubs = cancel
	_, errc := a.Subscriber.Run(subCtx, a.Hub.Deliver)
	go func() {
		for err := range errc {
			a.Log.WithError(err).Error("Notification subscriber failed")
		}
	}()

	if err := a.AsynqServer.Start(); err != nil {
		a.Log.WithError(err).Error("Worker server failed to start; notifications will queue until it runs")
	}
	a.registerPeriodicTasks()

	go func() {
		a.Log.Infof("YEN Server starting to listen on %s", a.HttpServer.Addr)
		if err := a.HttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Log.Fatalf("Failed to start HTTP server: %v", err)
		}
		a.Log.Info("HTTP server stopped listening.")
	}()
}

func (a *App) registerPeriodicTasks() {
	entryID, err := a.Scheduler.Register(statsSchedule, tasks.NewStatsRefreshTask())
	if err != nil {
		a.Log.Errorf("Could not register periodic stats task: %v", err)
		return
	}
	a.Log.Infof("Periodic stats task registered with schedule '%s' (EntryID: %s)", statsSchedule, entryID)

	if err := a.Scheduler.Start(); err != nil {
		a.Log.Errorf("Asynq scheduler failed to start: %v", err)
	}
}

// Shutdown stops components in reverse dependency order.
func (a *App) Shutdown() {
	a.Log.Info("Shutting down application...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.HttpServer.Shutdown(ctx); err != nil {
		a.Log.Errorf("Error shutting down HTTP server: %v", err)
	}

	if a.Scheduler != nil {
		a.Scheduler.Shutdown()
	}
	if a.AsynqServer != nil {
		a.AsynqServer.Shutdown()
	}
	if a.cancelSubs != nil {
		a.cancelSubs()
	}
	if a.Hub != nil {
		a.Hub.Stop()
	}

	if a.AsynqClient != nil {
		if err := a.AsynqClient.Close(); err != nil {
			a.Log.Errorf("Error closing Asynq client: %v", err)
		}
	}
	if a.RedisClient != nil {
		if err := a.RedisClient.Close(); err != nil {
			a.Log.Errorf("Error closing Redis connection: %v", err)
		}
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if a.shutdownTracer != nil {
		if err := a.shutdownTracer(ctx); err != nil {
			a.Log.Errorf("Error shutting down tracer: %v", err)
		}
	}

	a.Log.Info("Application shutdown complete.")
}
