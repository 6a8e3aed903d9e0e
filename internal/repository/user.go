package repository

import (
	"context"

	"yen-network/internal/domain"
)

// ProfileChanges lists the profile fields to overwrite. Nil fields are left untouched.
type ProfileChanges struct {
	Bio       *string
	Location  *string
	Expertise *[]string
}

// Empty reports whether no field is set.
func (p ProfileChanges) Empty() bool {
	return p.Bio == nil && p.Location == nil && p.Expertise == nil
}

// UserRepository defines storage and retrieval of users.
type UserRepository interface {
	// FindByEmail looks a user up by normalized email.
	// Returns ErrUserNotFound when no user has that email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByID looks a user up by id.
	// Returns ErrUserNotFound when the user does not exist.
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// Create inserts a new user. A taken email yields ErrDuplicateEntry.
	Create(ctx context.Context, user *domain.User) error

	// ListByRole returns all users holding the role, oldest first.
	ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error)

	// ListAll returns every user, newest first.
	ListAll(ctx context.Context) ([]domain.User, error)

	// UpdateProfile applies the changes and returns the updated user.
	UpdateProfile(ctx context.Context, id string, changes ProfileChanges) (*domain.User, error)

	// PromoteToAdmin sets the admin role on every user whose email is listed
	// and returns how many rows changed.
	PromoteToAdmin(ctx context.Context, emails []string) (int64, error)

	// CountByRole returns the number of users per role.
	CountByRole(ctx context.Context) (map[domain.Role]int64, error)
}
