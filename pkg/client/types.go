package client

import "time"

// User is an account as returned by the API.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Bio       string    `json:"bio,omitempty"`
	Location  string    `json:"location,omitempty"`
	Expertise []string  `json:"expertise,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Idea is a pitched idea.
type Idea struct {
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

// FullyFunded reports whether the idea reached its goal.
func (i Idea) FullyFunded() bool {
	return i.FundingGoal > 0 && i.CurrentFunding >= i.FundingGoal
}

// Connection is a connection request between two users.
type Connection struct {
	ID           string    `json:"id"`
	FromUserID   string    `json:"fromUserId"`
	ToUserID     string    `json:"toUserId"`
	FromUserName string    `json:"fromUserName"`
	ToUserName   string    `json:"toUserName"`
	Type         string    `json:"type"`
	Status       string    `json:"status"`
	Message      string    `json:"message"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Notification is a message addressed to the session user.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Kind      string    `json:"kind"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// PlatformStats is the admin dashboard summary.
type PlatformStats struct {
	Users               int64            `json:"users"`
	UsersByRole         map[string]int64 `json:"usersByRole"`
	Ideas               int64            `json:"ideas"`
	FullyFundedIdeas    int64            `json:"fullyFundedIdeas"`
	TotalFundingGoal    float64          `json:"totalFundingGoal"`
	TotalFundingRaised  float64          `json:"totalFundingRaised"`
	Connections         int64            `json:"connections"`
	ConnectionsByStatus map[string]int64 `json:"connectionsByStatus"`
}

// RegisterRequest is the body of Register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// CreateIdeaRequest is the body of CreateIdea.
type CreateIdeaRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	FundingGoal float64 `json:"fundingGoal"`
}

// ConnectionRequest is the body of RequestConnection.
type ConnectionRequest struct {
	ToUserID string `json:"toUserId"`
	Type     string `json:"type"`
	Message  string `json:"message,omitempty"`
}

// ProfileUpdate changes only the non-nil fields.
type ProfileUpdate struct {
	Bio       *string   `json:"bio,omitempty"`
	Location  *string   `json:"location,omitempty"`
	Expertise *[]string `json:"expertise,omitempty"`
}

// LikeResult is the outcome of LikeIdea.
type LikeResult struct {
	Likes int  `json:"likes"`
	Liked bool `json:"liked"`
}

// FundResult is the outcome of FundIdea.
type FundResult struct {
	Message        string  `json:"message"`
	CurrentFunding float64 `json:"currentFunding"`
	FundingGoal    float64 `json:"fundingGoal"`
}
