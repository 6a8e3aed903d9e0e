package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"yen-network/internal/domain"
	"yen-network/internal/repository"
)

// GormNotificationRepository is the GORM implementation of repository.NotificationRepository.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a GormNotificationRepository.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	if db == nil {
		panic("database connection cannot be nil for GormNotificationRepository")
	}
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return fmt.Errorf("gorm: create notification for user %s: %w", n.UserID, err)
	}
	return nil
}

func (r *GormNotificationRepository) ListForUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	var out []domain.Notification
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list notifications for user %s: %w", userID, err)
	}
	return out, nil
}

func (r *GormNotificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	// Scoping by user_id keeps one user from touching another's rows.
	var n domain.Notification
	err := r.db.WithContext(ctx).Select("id").
		Where("id = ? AND user_id = ?", id, userID).Take(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repository.ErrNotificationNotFound
		}
		return fmt.Errorf("gorm: find notification %s: %w", id, err)
	}
	if err := r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("id = ?", id).Update("is_read", true).Error; err != nil {
		return fmt.Errorf("gorm: mark notification %s read: %w", id, err)
	}
	return nil
}
