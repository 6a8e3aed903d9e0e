package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"

	"yen-network/internal/domain"
	"yen-network/internal/validation"
)

func ErrorResponse(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

func ValidationErrorResponse(c *gin.Context, messages []string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": messages})
}

func SuccessResponse(c *gin.Context, code int, data gin.H) {
	body := gin.H{"success": true}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(code, body)
}

// bindJSON decodes and validates the body into req. An empty body is
// validated as a zero value so every missing field is reported.
func bindJSON(c *gin.Context, req any) bool {
	validation.Init()
	err := c.ShouldBindJSON(req)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(req)
	}
	if err == nil {
		return true
	}
	if msgs := validation.Messages(err); len(msgs) > 0 {
		ValidationErrorResponse(c, msgs)
		return false
	}
	logrus.WithError(err).WithField("path", c.FullPath()).Warn("Invalid request body")
	ValidationErrorResponse(c, []string{"Invalid request body"})
	return false
}

// UserSummary is the identity part of a user.
type UserSummary struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// UserProfile is the public profile of a user.
type UserProfile struct {
	UserSummary
	Bio       string    `json:"bio"`
	Location  string    `json:"location"`
	Expertise []string  `json:"expertise"`
	CreatedAt time.Time `json:"createdAt"`
}

func newUserSummary(u *domain.User) UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func newUserProfile(u *domain.User) UserProfile {
	expertise := u.Expertise
	if expertise == nil {
		expertise = []string{}
	}
	return UserProfile{
		UserSummary: newUserSummary(u),
		Bio:         u.Bio,
		Location:    u.Location,
		Expertise:   expertise,
		CreatedAt:   u.CreatedAt,
	}
}

func newUserProfiles(users []domain.User) []UserProfile {
	out := make([]UserProfile, len(users))
	for i := range users {
		out[i] = newUserProfile(&users[i])
	}
	return out
}

// IdeaView is an idea as sent to clients. LikedByMe is only present when
// the request carried an identity.
type IdeaView struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	UserName       string    `json:"userName"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	FundingGoal    float64   `json:"fundingGoal"`
	CurrentFunding float64   `json:"currentFunding"`
	Likes          int       `json:"likes"`
	LikedByMe      *bool     `json:"likedByMe,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

func newIdeaView(idea *domain.Idea) IdeaView {
	name := idea.Owner.Name
	if name == "" {
		name = "Unknown"
	}
	return IdeaView{
		ID:             idea.ID,
		UserID:         idea.UserID,
		UserName:       name,
		Title:          idea.Title,
		Description:    idea.Description,
		Category:       idea.Category,
		FundingGoal:    idea.FundingGoal,
		CurrentFunding: idea.CurrentFunding,
		Likes:          idea.Likes,
		CreatedAt:      idea.CreatedAt,
	}
}

// newIdeaViews renders ideas; liked is nil for anonymous requests.
func newIdeaViews(ideas []domain.Idea, liked map[string]bool) []IdeaView {
	out := make([]IdeaView, len(ideas))
	for i := range ideas {
		out[i] = newIdeaView(&ideas[i])
		if liked != nil {
			v := liked[ideas[i].ID]
			out[i].LikedByMe = &v
		}
	}
	return out
}

// ConnectionView is a connection as sent to clients.
type ConnectionView struct {
	ID           string                  `json:"id"`
	FromUserID   string                  `json:"fromUserId"`
	ToUserID     string                  `json:"toUserId"`
	FromUserName string                  `json:"fromUserName"`
	ToUserName   string                  `json:"toUserName"`
	Type         domain.ConnectionType   `json:"type"`
	Status       domain.ConnectionStatus `json:"status"`
	Message      string                  `json:"message"`
	CreatedAt    time.Time               `json:"createdAt"`
}

func newConnectionViews(conns []domain.Connection) []ConnectionView {
	out := make([]ConnectionView, len(conns))
	for i, conn := range conns {
		out[i] = ConnectionView{
			ID:           conn.ID,
			FromUserID:   conn.SenderID,
			ToUserID:     conn.ReceiverID,
			FromUserName: conn.Sender.Name,
			ToUserName:   conn.Receiver.Name,
			Type:         conn.Type,
			Status:       conn.Status,
			Message:      conn.Message,
			CreatedAt:    conn.CreatedAt,
		}
	}
	return out
}
