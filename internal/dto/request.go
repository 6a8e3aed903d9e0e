package dto

import "yen-network/internal/validation"

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name" binding:"notblank,trimmin=2,trimmax=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=100"`
	Role     string `json:"role" binding:"required,selfrole"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"notblank"`
	Password string `json:"password" binding:"required"`
}

// CreateIdeaRequest is the body of POST /api/ideas.
type CreateIdeaRequest struct {
	Title       string            `json:"title" binding:"notblank,trimmin=5,trimmax=100"`
	Description string            `json:"description" binding:"notblank,trimmin=50"`
	Category    string            `json:"category" binding:"required,category"`
	FundingGoal validation.Number `json:"fundingGoal" binding:"present,numeric,gte=100"`
}

// FundRequest is the body of POST /api/ideas/:id/fund.
type FundRequest struct {
	Amount validation.Number `json:"amount" binding:"present,numeric,gt=0"`
}

// CreateConnectionRequest is the body of POST /api/connections.
type CreateConnectionRequest struct {
	ToUserID string `json:"toUserId" binding:"notblank"`
	Type     string `json:"type" binding:"required,oneof=mentor investor partner"`
	Message  string `json:"message" binding:"max=500"`
}

// UpdateProfileRequest is the body of PUT /api/users/profile. Omitted or
// null fields stay unchanged.
type UpdateProfileRequest struct {
	Bio       *string   `json:"bio" binding:"omitempty,max=500"`
	Location  *string   `json:"location" binding:"omitempty,max=100"`
	Expertise *[]string `json:"expertise" binding:"omitempty,max=20,dive,max=50"`
}
