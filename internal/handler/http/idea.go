package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yen-network/internal/domain"
	"yen-network/internal/dto"
	"yen-network/internal/middleware"
	"yen-network/internal/service"
)

// IdeaHandler serves /api/ideas.
type IdeaHandler struct {
	ideaService *service.IdeaService
}

// NewIdeaHandler creates an IdeaHandler.
func NewIdeaHandler(ideaService *service.IdeaService) *IdeaHandler {
	return &IdeaHandler{ideaService: ideaService}
}

// List returns every idea newest first, with likedByMe for identified viewers.
func (h *IdeaHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	ideas, err := h.ideaService.List(ctx)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	var liked map[string]bool
	if viewerID, ok := middleware.CurrentUserID(c); ok {
		if liked, err = h.ideaService.LikedBy(ctx, viewerID, ideas); err != nil {
			HandleServiceError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, newIdeaViews(ideas, liked))
}

// Get returns one idea.
func (h *IdeaHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	idea, err := h.ideaService.Get(ctx, c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	view := newIdeaView(idea)
	if viewerID, ok := middleware.CurrentUserID(c); ok {
		liked, err := h.ideaService.LikedBy(ctx, viewerID, []domain.Idea{*idea})
		if err != nil {
			HandleServiceError(c, err)
			return
		}
		v := liked[idea.ID]
		view.LikedByMe = &v
	}
	c.JSON(http.StatusOK, view)
}

// ListByUser returns the ideas a user owns.
func (h *IdeaHandler) ListByUser(c *gin.Context) {
	ideas, err := h.ideaService.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newIdeaViews(ideas, nil))
}

// Create submits a new idea owned by the caller.
func (h *IdeaHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateIdeaRequest
	if !bindJSON(c, &req) {
		return
	}

	idea, err := h.ideaService.Create(c.Request.Context(), userID, service.CreateIdeaInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		FundingGoal: req.FundingGoal.Value,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, gin.H{
		"message": "Idea submitted successfully!",
		"idea":    newIdeaView(idea),
	})
}

// Like toggles the caller's like.
func (h *IdeaHandler) Like(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	res, err := h.ideaService.ToggleLike(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"likes": res.Likes, "liked": res.Liked})
}

// Fund adds to the idea's funding. Anything beyond the goal is dropped.
func (h *IdeaHandler) Fund(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.FundRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.ideaService.Fund(c.Request.Context(), c.Param("id"), userID, req.Amount.Value)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{
		"message":        "Funding added successfully!",
		"currentFunding": res.CurrentFunding,
		"fundingGoal":    res.FundingGoal,
	})
}
