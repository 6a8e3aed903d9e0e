package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"yen-network/internal/dto"
	"yen-network/internal/hub"
	"yen-network/internal/middleware"
)

// WebSocketHandler upgrades authenticated requests into notification feeds.
type WebSocketHandler struct {
	upgrader websocket.Upgrader
	hub      *hub.Hub
}

// NewWebSocketHandler creates a WebSocketHandler. checkOrigin may be nil to
// accept any origin.
func NewWebSocketHandler(h *hub.Hub, checkOrigin func(r *http.Request) bool) *WebSocketHandler {
	if h == nil {
		panic("Hub cannot be nil for WebSocketHandler")
	}
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &WebSocketHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		hub: h,
	}
}

// NotificationFeed handles GET /ws/notifications.
func (h *WebSocketHandler) NotificationFeed(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided or invalid format"})
		return
	}
	logCtx := logrus.WithField("user_id", userID)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		logCtx.WithError(err).Warn("WS Handler: Failed to upgrade connection")
		return
	}

	client := hub.NewClient(h.hub, conn, userID)
	if !h.hub.Register(client) {
		logCtx.Error("WS Handler: Hub unavailable, closing client")
		_ = conn.WriteJSON(dto.NewErrorMessage("Notification feed unavailable"))
		client.CloseConn()
		return
	}
	client.Run()
	logCtx.Info("WS Handler: Notification feed opened")
}

// AllowOrigins returns a CheckOrigin func accepting the listed origins and
// requests without an Origin header. An empty list accepts every origin.
func AllowOrigins(origins []string) func(r *http.Request) bool {
	if len(origins) == 0 {
		return func(*http.Request) bool { return true }
	}
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}
