package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yen-network/internal/dto"
	"yen-network/internal/repository"
	"yen-network/internal/service"
)

// UserHandler serves /api/users.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Mentors(c *gin.Context) {
	users, err := h.userService.ListMentors(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserProfiles(users))
}

func (h *UserHandler) Investors(c *gin.Context) {
	users, err := h.userService.ListInvestors(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserProfiles(users))
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserProfile(user))
}

// UpdateProfile edits the caller's bio, location and expertise.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, repository.ProfileChanges{
		Bio:       req.Bio,
		Location:  req.Location,
		Expertise: req.Expertise,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    newUserProfile(user),
	})
}
