package repository

import (
	"context"

	"yen-network/internal/domain"
)

// IdeaTotals aggregates funding across all ideas.
type IdeaTotals struct {
	Count       int64
	FullyFunded int64
	GoalSum     float64
	RaisedSum   float64
}

// IdeaRepository defines storage and retrieval of ideas and their likes.
type IdeaRepository interface {
	// Create inserts a new idea.
	Create(ctx context.Context, idea *domain.Idea) error

	// FindByID returns the idea with its owner loaded.
	// Returns ErrIdeaNotFound when it does not exist.
	FindByID(ctx context.Context, id string) (*domain.Idea, error)

	// List returns all ideas newest first, owners loaded.
	List(ctx context.Context) ([]domain.Idea, error)

	// ListByUser returns the ideas owned by a user, newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.Idea, error)

	// ToggleLike adds or removes the user's like atomically and returns the
	// new like count and whether the user now likes the idea.
	ToggleLike(ctx context.Context, ideaID, userID string) (likes int, liked bool, err error)

	// AddFunding adds amount clamped to the goal in a single statement and
	// returns the idea as stored afterwards plus the funding it held before.
	AddFunding(ctx context.Context, ideaID string, amount float64) (idea *domain.Idea, previous float64, err error)

	// LikedBy reports which of the given ideas the user has liked.
	LikedBy(ctx context.Context, userID string, ideaIDs []string) (map[string]bool, error)

	// Totals aggregates counts and funding sums.
	Totals(ctx context.Context) (IdeaTotals, error)
}
