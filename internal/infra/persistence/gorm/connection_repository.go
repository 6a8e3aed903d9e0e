package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"yen-network/internal/domain"
	"yen-network/internal/repository"
)

// GormConnectionRepository is the GORM implementation of repository.ConnectionRepository.
type GormConnectionRepository struct {
	db *gorm.DB
}

// NewGormConnectionRepository creates a GormConnectionRepository.
func NewGormConnectionRepository(db *gorm.DB) *GormConnectionRepository {
	if db == nil {
		panic("database connection cannot be nil for GormConnectionRepository")
	}
	return &GormConnectionRepository{db: db}
}

// Create inserts the connection. Both unique indexes map to ErrDuplicateEntry.
func (r *GormConnectionRepository) Create(ctx context.Context, conn *domain.Connection) error {
	err := r.db.WithContext(ctx).Omit("Sender", "Receiver").Create(conn).Error
	if err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: create connection %s -> %s: %w", conn.SenderID, conn.ReceiverID, err)
	}
	return nil
}

// FindByID returns the connection by id.
func (r *GormConnectionRepository) FindByID(ctx context.Context, id string) (*domain.Connection, error) {
	var conn domain.Connection
	err := r.db.WithContext(ctx).First(&conn, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrConnectionNotFound
		}
		return nil, fmt.Errorf("gorm: find connection by id %s: %w", id, err)
	}
	return &conn, nil
}

// FindBetween looks the pair up through the unordered pair key.
func (r *GormConnectionRepository) FindBetween(ctx context.Context, userA, userB string) (*domain.Connection, error) {
	var conn domain.Connection
	err := r.db.WithContext(ctx).
		Where("pair_key = ?", domain.PairKeyFor(userA, userB)).First(&conn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrConnectionNotFound
		}
		return nil, fmt.Errorf("gorm: find connection between %s and %s: %w", userA, userB, err)
	}
	return &conn, nil
}

// ListForUser returns everything the user sent or received.
func (r *GormConnectionRepository) ListForUser(ctx context.Context, userID string) ([]domain.Connection, error) {
	var conns []domain.Connection
	err := r.db.WithContext(ctx).Preload("Sender").Preload("Receiver").
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").Find(&conns).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list connections for user %s: %w", userID, err)
	}
	return conns, nil
}

// Resolve is a conditional update: it only matches a pending row, so two
// racing resolutions cannot both succeed.
func (r *GormConnectionRepository) Resolve(ctx context.Context, id string, status domain.ConnectionStatus) error {
	result := r.db.WithContext(ctx).Model(&domain.Connection{}).
		Where("id = ? AND status = ?", id, domain.StatusPending).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("gorm: resolve connection %s to %s: %w", id, status, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrConflict
	}
	return nil
}

// CountByStatus groups connections by status.
func (r *GormConnectionRepository) CountByStatus(ctx context.Context) (map[domain.ConnectionStatus]int64, error) {
	var rows []struct {
		Status domain.ConnectionStatus
		Total  int64
	}
	err := r.db.WithContext(ctx).Model(&domain.Connection{}).
		Select("status, COUNT(*) AS total").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: count connections by status: %w", err)
	}
	counts := make(map[domain.ConnectionStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
