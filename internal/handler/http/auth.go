package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"yen-network/internal/domain"
	"yen-network/internal/dto"
	"yen-network/internal/middleware"
	"yen-network/internal/service"
)

// AuthHandler serves /api/auth.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates an account and returns it with a token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	logrus.WithField("user_id", result.User.ID).Info("Handler.Register: user registered")
	SuccessResponse(c, http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"user":    newUserSummary(result.User),
		"token":   result.Token,
	})
}

// Login authenticates and returns the user with a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Logged in successfully",
		"user":    newUserSummary(result.User),
		"token":   result.Token,
	})
}

// Me returns the current user and what their role may do.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.Me(c.Request.Context(), userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, gin.H{
		"user":         newUserProfile(user),
		"capabilities": user.Role.Capabilities(),
	})
}

// requireUserID returns the authenticated user id or writes a 401.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		logrus.WithField("path", c.FullPath()).Error("User id missing from context after Auth middleware")
		ErrorResponse(c, http.StatusUnauthorized, "No token provided or invalid format")
		return "", false
	}
	return userID, true
}
