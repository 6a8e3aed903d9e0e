package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"yen-network/internal/domain"
	"yen-network/internal/repository"
)

// GormUserRepository is the GORM implementation of repository.UserRepository.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a GormUserRepository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	if db == nil {
		panic("database connection cannot be nil for GormUserRepository")
	}
	return &GormUserRepository{db: db}
}

// FindByEmail finds a user by normalized email.
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("gorm: find user by email: %w", err)
	}
	return &user, nil
}

// FindByID finds a user by id.
func (r *GormUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("gorm: find user by id %s: %w", id, err)
	}
	return &user, nil
}

// Create inserts the user; the unique email index is the authoritative guard.
func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: create user (email: %s): %w", user.Email, err)
	}
	return nil
}

// ListByRole returns users with the role, oldest first.
func (r *GormUserRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).Where("role = ?", role).Order("created_at ASC").Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list users by role %s: %w", role, err)
	}
	return users, nil
}

// ListAll returns every user, newest first.
func (r *GormUserRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("gorm: list users: %w", err)
	}
	return users, nil
}

// UpdateProfile writes only the provided profile fields.
func (r *GormUserRepository) UpdateProfile(ctx context.Context, id string, changes repository.ProfileChanges) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return err
		}
		if changes.Bio != nil {
			user.Bio = *changes.Bio
		}
		if changes.Location != nil {
			user.Location = *changes.Location
		}
		if changes.Expertise != nil {
			user.Expertise = *changes.Expertise
		}
		// Select limits the UPDATE to profile columns so a concurrent role
		// change is never overwritten.
		return tx.Model(&user).Select("bio", "location", "expertise").Updates(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("gorm: update profile for user %s: %w", id, err)
	}
	return &user, nil
}

// PromoteToAdmin sets role=admin for the listed emails.
func (r *GormUserRepository) PromoteToAdmin(ctx context.Context, emails []string) (int64, error) {
	if len(emails) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("email IN ? AND role <> ?", emails, domain.RoleAdmin).
		Update("role", domain.RoleAdmin)
	if result.Error != nil {
		return 0, fmt.Errorf("gorm: promote admins: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// CountByRole groups users by role.
func (r *GormUserRepository) CountByRole(ctx context.Context) (map[domain.Role]int64, error) {
	var rows []struct {
		Role  domain.Role
		Total int64
	}
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Select("role, COUNT(*) AS total").Group("role").Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: count users by role: %w", err)
	}
	counts := make(map[domain.Role]int64, len(rows))
	for _, row := range rows {
		counts[row.Role] = row.Total
	}
	return counts, nil
}
