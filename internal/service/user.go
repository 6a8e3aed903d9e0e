package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"yen-network/internal/domain"
	"yen-network/internal/repository"
)

// UserService serves directory listings and profile edits.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	if userRepo == nil {
		panic("UserRepository cannot be nil for UserService")
	}
	return &UserService{userRepo: userRepo}
}

// ListMentors returns every mentor.
func (s *UserService) ListMentors(ctx context.Context) ([]domain.User, error) {
	return s.listByRole(ctx, domain.RoleMentor)
}

// ListInvestors returns every investor.
func (s *UserService) ListInvestors(ctx context.Context) ([]domain.User, error) {
	return s.listByRole(ctx, domain.RoleInvestor)
}

func (s *UserService) listByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	users, err := s.userRepo.ListByRole(ctx, role)
	if err != nil {
		logrus.WithError(err).WithField("role", role).Error("Failed to list users by role")
		return nil, ErrInternalServer
	}
	return scrub(users), nil
}

// ListAll returns every user, newest first.
func (s *UserService) ListAll(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list users")
		return nil, ErrInternalServer
	}
	return scrub(users), nil
}

// Get returns one user's public profile.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		logrus.WithError(err).WithField("user_id", id).Error("Failed to load user")
		return nil, ErrInternalServer
	}
	user.Password = ""
	return user, nil
}

// UpdateProfile overwrites the provided profile fields; nil fields keep
// their stored value.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, changes repository.ProfileChanges) (*domain.User, error) {
	logCtx := logrus.WithField("user_id", userID)

	if changes.Empty() {
		return s.Get(ctx, userID)
	}
	if changes.Location != nil {
		loc := strings.TrimSpace(*changes.Location)
		changes.Location = &loc
	}
	if changes.Expertise != nil {
		tags := make([]string, 0, len(*changes.Expertise))
		for _, tag := range *changes.Expertise {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
		changes.Expertise = &tags
	}

	user, err := s.userRepo.UpdateProfile(ctx, userID, changes)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		logCtx.WithError(err).Error("Failed to update profile")
		return nil, ErrInternalServer
	}
	logCtx.Info("Profile updated")
	user.Password = ""
	return user, nil
}

func scrub(users []domain.User) []domain.User {
	for i := range users {
		users[i].Password = ""
	}
	return users
}
