package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"yen-network/internal/domain"
	"yen-network/internal/repository"
)

// CreateIdeaInput is an already validated idea submission.
type CreateIdeaInput struct {
	Title       string
	Description string
	Category    string
	FundingGoal float64
}

// LikeResult is the outcome of a like toggle.
type LikeResult struct {
	Likes int
	Liked bool
}

// FundResult is the funding state after a contribution.
type FundResult struct {
	CurrentFunding float64
	FundingGoal    float64
}

// IdeaService handles idea submission, likes and funding.
type IdeaService struct {
	ideaRepo repository.IdeaRepository
	userRepo repository.UserRepository
	notifier Notifier
}

// NewIdeaService creates an IdeaService. A nil notifier disables notifications.
func NewIdeaService(ideaRepo repository.IdeaRepository, userRepo repository.UserRepository, notifier Notifier) *IdeaService {
	if ideaRepo == nil || userRepo == nil {
		panic("IdeaRepository and UserRepository cannot be nil for IdeaService")
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &IdeaService{ideaRepo: ideaRepo, userRepo: userRepo, notifier: notifier}
}

// Create stores a new idea owned by ownerID with zero funding and likes.
func (s *IdeaService) Create(ctx context.Context, ownerID string, in CreateIdeaInput) (*domain.Idea, error) {
	logCtx := logrus.WithFields(logrus.Fields{"owner_id": ownerID, "category": in.Category})

	owner, err := s.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		logCtx.WithError(err).Error("Failed to load idea owner")
		return nil, ErrInternalServer
	}

	idea := &domain.Idea{
		UserID:      ownerID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    in.Category,
		FundingGoal: in.FundingGoal,
	}
	if err := s.ideaRepo.Create(ctx, idea); err != nil {
		logCtx.WithError(err).Error("Failed to create idea")
		return nil, ErrInternalServer
	}
	owner.Password = ""
	idea.Owner = *owner

	logCtx.WithField("idea_id", idea.ID).Info("Idea created")
	return idea, nil
}

// List returns every idea newest first.
func (s *IdeaService) List(ctx context.Context) ([]domain.Idea, error) {
	ideas, err := s.ideaRepo.List(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list ideas")
		return nil, ErrInternalServer
	}
	return ideas, nil
}

// Get returns one idea.
func (s *IdeaService) Get(ctx context.Context, id string) (*domain.Idea, error) {
	idea, err := s.ideaRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrIdeaNotFound) {
			return nil, ErrIdeaNotFound
		}
		logrus.WithError(err).WithField("idea_id", id).Error("Failed to load idea")
		return nil, ErrInternalServer
	}
	return idea, nil
}

// ListByUser returns the ideas a user owns, newest first.
func (s *IdeaService) ListByUser(ctx context.Context, userID string) ([]domain.Idea, error) {
	ideas, err := s.ideaRepo.ListByUser(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to list user ideas")
		return nil, ErrInternalServer
	}
	return ideas, nil
}

// LikedBy reports which of ideas the viewer liked. An empty viewer likes nothing.
func (s *IdeaService) LikedBy(ctx context.Context, viewerID string, ideas []domain.Idea) (map[string]bool, error) {
	if viewerID == "" || len(ideas) == 0 {
		return map[string]bool{}, nil
	}
	ids := make([]string, len(ideas))
	for i := range ideas {
		ids[i] = ideas[i].ID
	}
	liked, err := s.ideaRepo.LikedBy(ctx, viewerID, ids)
	if err != nil {
		logrus.WithError(err).WithField("viewer_id", viewerID).Error("Failed to load liked ideas")
		return nil, ErrInternalServer
	}
	return liked, nil
}

// ToggleLike likes the idea for userID, or removes the like if present.
// Two toggles by the same user restore the original state.
func (s *IdeaService) ToggleLike(ctx context.Context, ideaID, userID string) (*LikeResult, error) {
	likes, liked, err := s.ideaRepo.ToggleLike(ctx, ideaID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrIdeaNotFound) {
			return nil, ErrIdeaNotFound
		}
		logrus.WithError(err).WithFields(logrus.Fields{"idea_id": ideaID, "user_id": userID}).Error("Failed to toggle like")
		return nil, ErrInternalServer
	}
	return &LikeResult{Likes: likes, Liked: liked}, nil
}

// Fund adds amount to the idea; the total is clamped to the goal. The owner
// is notified of contributions from other users and when the goal is reached.
func (s *IdeaService) Fund(ctx context.Context, ideaID, funderID string, amount float64) (*FundResult, error) {
	logCtx := logrus.WithFields(logrus.Fields{"idea_id": ideaID, "funder_id": funderID, "amount": amount})

	idea, previous, err := s.ideaRepo.AddFunding(ctx, ideaID, amount)
	if err != nil {
		if errors.Is(err, repository.ErrIdeaNotFound) {
			return nil, ErrIdeaNotFound
		}
		logCtx.WithError(err).Error("Failed to add funding")
		return nil, ErrInternalServer
	}
	logCtx.WithField("current_funding", idea.CurrentFunding).Info("Funding added")

	added := idea.CurrentFunding - previous
	if funderID != idea.UserID && added > 0 {
		notify(ctx, s.notifier, domain.Notification{
			UserID:  idea.UserID,
			Kind:    domain.NotifyIdeaFunded,
			Subject: idea.ID,
			Body:    fmt.Sprintf("Your idea %q received $%.2f in funding", idea.Title, added),
		})
	}
	if previous < idea.FundingGoal && idea.FullyFunded() {
		notify(ctx, s.notifier, domain.Notification{
			UserID:  idea.UserID,
			Kind:    domain.NotifyIdeaFullyFunded,
			Subject: idea.ID,
			Body:    fmt.Sprintf("Your idea %q reached its funding goal of $%.2f", idea.Title, idea.FundingGoal),
		})
	}

	return &FundResult{CurrentFunding: idea.CurrentFunding, FundingGoal: idea.FundingGoal}, nil
}
