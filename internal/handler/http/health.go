package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health reports liveness.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"message":   "YEN Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// NotFound is the fallback for unknown routes.
func NotFound(c *gin.Context) {
	ErrorResponse(c, http.StatusNotFound, "Route not found")
}
