package bootstrap

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"yen-network/internal/auth"
	"yen-network/internal/domain"
	httpHandler "yen-network/internal/handler/http"
	wsHandler "yen-network/internal/handler/websocket"
	"yen-network/internal/hub"
	"yen-network/internal/middleware"
	"yen-network/internal/service"
)

// Services bundles the application services the router exposes.
type Services struct {
	Auth          *service.AuthService
	Ideas         *service.IdeaService
	Connections   *service.ConnectionService
	Users         *service.UserService
	Notifications *service.NotificationService
	Reports       *service.ReportService
}

// RouterOptions configures NewRouter. Redis and Hub may be nil; the rate
// limiter and the WebSocket feed are then not mounted.
type RouterOptions struct {
	Logger          *logrus.Logger
	Tokens          *auth.TokenIssuer
	Redis           *redis.Client
	KeyPrefix       string
	RateLimitMax    int
	RateLimitWindow time.Duration
	CORSOrigins     []string
	Hub             *hub.Hub
}

// corsConfig allows the listed origins. An empty list accepts any origin by
// echoing it back, since a literal "*" is refused alongside credentials.
func corsConfig(origins []string) cors.Config {
	config := cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		config.AllowOrigins = nil
		config.AllowOriginFunc = func(string) bool { return true }
	}
	return config
}

// NewRouter builds the gin engine with every route.
func NewRouter(svc Services, opts RouterOptions) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		opts.Logger.WithField("panic", recovered).WithField("path", c.Request.URL.Path).Error("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": httpHandler.ServerErrorMessage})
	}))
	router.Use(LoggerMiddleware(opts.Logger))
	router.Use(middleware.Tracing())
	router.Use(cors.New(corsConfig(opts.CORSOrigins)))
	if opts.Redis != nil && opts.RateLimitMax > 0 {
		router.Use(middleware.RateLimit(opts.Redis, opts.KeyPrefix, opts.RateLimitMax, opts.RateLimitWindow))
	}

	authHandler := httpHandler.NewAuthHandler(svc.Auth)
	ideaHandler := httpHandler.NewIdeaHandler(svc.Ideas)
	connHandler := httpHandler.NewConnectionHandler(svc.Connections)
	userHandler := httpHandler.NewUserHandler(svc.Users)
	notifHandler := httpHandler.NewNotificationHandler(svc.Notifications)
	adminHandler := httpHandler.NewAdminHandler(svc.Reports, svc.Users)

	requireAuth := middleware.Auth(opts.Tokens)
	optionalAuth := middleware.OptionalAuth(opts.Tokens)

	api := router.Group("/api")
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.GET("/me", requireAuth, authHandler.Me)
	}
	ideaRoutes := api.Group("/ideas")
	{
		ideaRoutes.GET("", optionalAuth, ideaHandler.List)
		ideaRoutes.GET("/user/:userId", ideaHandler.ListByUser)
		ideaRoutes.GET("/:id", optionalAuth, ideaHandler.Get)
		ideaRoutes.POST("", requireAuth, middleware.RequireCapability(domain.CapPitchIdeas), ideaHandler.Create)
		ideaRoutes.POST("/:id/like", requireAuth, ideaHandler.Like)
		ideaRoutes.POST("/:id/fund", requireAuth, middleware.RequireCapability(domain.CapFundIdeas), ideaHandler.Fund)
	}
	connRoutes := api.Group("/connections").Use(requireAuth)
	{
		connRoutes.GET("/:userId", connHandler.List)
		connRoutes.POST("", middleware.RequireCapability(domain.CapConnect), connHandler.Create)
		connRoutes.PATCH("/:id/accept", connHandler.Accept)
		connRoutes.PATCH("/:id/reject", connHandler.Reject)
	}
	userRoutes := api.Group("/users")
	{
		userRoutes.GET("/mentors", userHandler.Mentors)
		userRoutes.GET("/investors", userHandler.Investors)
		userRoutes.GET("/:id", userHandler.Get)
		userRoutes.PUT("/profile", requireAuth, userHandler.UpdateProfile)
	}
	notifRoutes := api.Group("/notifications").Use(requireAuth)
	{
		notifRoutes.GET("", notifHandler.List)
		notifRoutes.PATCH("/:id/read", notifHandler.MarkRead)
	}
	adminRoutes := api.Group("/admin").Use(requireAuth, middleware.RequireAdmin())
	{
		adminRoutes.GET("/stats", adminHandler.Stats)
		adminRoutes.GET("/users", adminHandler.Users)
		adminRoutes.GET("/reports/funding.pdf", adminHandler.FundingReport)
	}

	if opts.Hub != nil {
		feed := wsHandler.NewWebSocketHandler(opts.Hub, wsHandler.AllowOrigins(opts.CORSOrigins))
		router.GET("/ws/notifications", middleware.QueryTokenAuth(opts.Tokens), feed.NotificationFeed)
	}

	router.GET("/health", httpHandler.Health)
	router.NoRoute(httpHandler.NotFound)
	return router
}
