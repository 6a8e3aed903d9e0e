package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"yen-network/internal/domain"
	"yen-network/internal/dto"
	"yen-network/internal/service"
)

// ConnectionHandler serves /api/connections.
type ConnectionHandler struct {
	connService *service.ConnectionService
}

// NewConnectionHandler creates a ConnectionHandler.
func NewConnectionHandler(connService *service.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connService: connService}
}

// List returns the connections a user sent or received.
func (h *ConnectionHandler) List(c *gin.Context) {
	conns, err := h.connService.ListForUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newConnectionViews(conns))
}

// Create sends a connection request from the caller.
func (h *ConnectionHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateConnectionRequest
	if !bindJSON(c, &req) {
		return
	}

	conn, err := h.connService.Create(c.Request.Context(), userID, req.ToUserID, domain.ConnectionType(req.Type), req.Message)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, gin.H{
		"message": "Connection request sent!",
		"connection": gin.H{
			"id":     conn.ID,
			"type":   conn.Type,
			"status": conn.Status,
		},
	})
}

// Accept accepts a pending request addressed to the caller.
func (h *ConnectionHandler) Accept(c *gin.Context) {
	h.resolve(c, h.connService.Accept, "Connection accepted!", "You are not authorized to accept this request")
}

// Reject rejects a pending request addressed to the caller.
func (h *ConnectionHandler) Reject(c *gin.Context) {
	h.resolve(c, h.connService.Reject, "Connection rejected", "You are not authorized to reject this request")
}

type resolveFunc func(ctx context.Context, connectionID, actingUserID string) (*domain.Connection, error)

func (h *ConnectionHandler) resolve(c *gin.Context, fn resolveFunc, message, forbidden string) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	conn, err := fn(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			ErrorResponse(c, http.StatusForbidden, forbidden)
			return
		}
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{
		"message": message,
		"status":  conn.Status,
	})
}
