package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yen-network/internal/domain"
	"yen-network/internal/repository"
)

// GormIdeaRepository is the GORM implementation of repository.IdeaRepository.
type GormIdeaRepository struct {
	db *gorm.DB
}

// NewGormIdeaRepository creates a GormIdeaRepository.
func NewGormIdeaRepository(db *gorm.DB) *GormIdeaRepository {
	if db == nil {
		panic("database connection cannot be nil for GormIdeaRepository")
	}
	return &GormIdeaRepository{db: db}
}

// Create inserts a new idea.
func (r *GormIdeaRepository) Create(ctx context.Context, idea *domain.Idea) error {
	// Omit the association so GORM does not try to upsert the owner row.
	if err := r.db.WithContext(ctx).Omit("Owner").Create(idea).Error; err != nil {
		return fmt.Errorf("gorm: create idea (owner: %s): %w", idea.UserID, err)
	}
	return nil
}

// FindByID returns the idea with its owner.
func (r *GormIdeaRepository) FindByID(ctx context.Context, id string) (*domain.Idea, error) {
	var idea domain.Idea
	err := r.db.WithContext(ctx).Preload("Owner").First(&idea, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrIdeaNotFound
		}
		return nil, fmt.Errorf("gorm: find idea by id %s: %w", id, err)
	}
	return &idea, nil
}

// List returns all ideas newest first.
func (r *GormIdeaRepository) List(ctx context.Context) ([]domain.Idea, error) {
	var ideas []domain.Idea
	err := r.db.WithContext(ctx).Preload("Owner").Order("created_at DESC").Find(&ideas).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list ideas: %w", err)
	}
	return ideas, nil
}

// ListByUser returns a user's ideas newest first.
func (r *GormIdeaRepository) ListByUser(ctx context.Context, userID string) ([]domain.Idea, error) {
	var ideas []domain.Idea
	err := r.db.WithContext(ctx).Preload("Owner").
		Where("user_id = ?", userID).Order("created_at DESC").Find(&ideas).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list ideas for user %s: %w", userID, err)
	}
	return ideas, nil
}

// ToggleLike flips the user's like inside one transaction. The idea row is
// locked first so concurrent toggles on the same idea serialize, and the
// counter is rewritten from the like rows so it cannot drift.
func (r *GormIdeaRepository) ToggleLike(ctx context.Context, ideaID, userID string) (int, bool, error) {
	var likes int
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var idea domain.Idea
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").First(&idea, "id = ?", ideaID).Error; err != nil {
			return err
		}

		removed := tx.Where("idea_id = ? AND user_id = ?", ideaID, userID).Delete(&domain.IdeaLike{})
		if removed.Error != nil {
			return removed.Error
		}
		if removed.RowsAffected == 0 {
			if err := tx.Create(&domain.IdeaLike{IdeaID: ideaID, UserID: userID}).Error; err != nil {
				return err
			}
			liked = true
		}

		var count int64
		if err := tx.Model(&domain.IdeaLike{}).Where("idea_id = ?", ideaID).Count(&count).Error; err != nil {
			return err
		}
		likes = int(count)
		return tx.Model(&domain.Idea{}).Where("id = ?", ideaID).UpdateColumn("likes", likes).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, repository.ErrIdeaNotFound
		}
		return 0, false, fmt.Errorf("gorm: toggle like on idea %s by user %s: %w", ideaID, userID, err)
	}
	return likes, liked, nil
}

// AddFunding clamps the new total to the goal inside the UPDATE itself, so
// concurrent contributions never lose an addition or overshoot the goal.
// The row is locked before the update to report the funding it replaced.
func (r *GormIdeaRepository) AddFunding(ctx context.Context, ideaID string, amount float64) (*domain.Idea, float64, error) {
	var idea domain.Idea
	var previous float64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var before domain.Idea
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "current_funding").First(&before, "id = ?", ideaID).Error; err != nil {
			return err
		}
		previous = before.CurrentFunding

		err := tx.Model(&domain.Idea{}).Where("id = ?", ideaID).
			Update("current_funding", gorm.Expr("LEAST(current_funding + ?, funding_goal)", amount)).Error
		if err != nil {
			return err
		}
		return tx.Preload("Owner").First(&idea, "id = ?", ideaID).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, repository.ErrIdeaNotFound
		}
		return nil, 0, fmt.Errorf("gorm: add funding %.2f to idea %s: %w", amount, ideaID, err)
	}
	return &idea, previous, nil
}

// LikedBy returns the subset of ideaIDs the user has liked.
func (r *GormIdeaRepository) LikedBy(ctx context.Context, userID string, ideaIDs []string) (map[string]bool, error) {
	liked := make(map[string]bool)
	if userID == "" || len(ideaIDs) == 0 {
		return liked, nil // avoid an empty IN query
	}
	var ids []string
	err := r.db.WithContext(ctx).Model(&domain.IdeaLike{}).
		Where("user_id = ? AND idea_id IN ?", userID, ideaIDs).Pluck("idea_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: liked ideas for user %s: %w", userID, err)
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

// Totals aggregates idea counts and funding sums.
func (r *GormIdeaRepository) Totals(ctx context.Context) (repository.IdeaTotals, error) {
	var totals repository.IdeaTotals
	err := r.db.WithContext(ctx).Model(&domain.Idea{}).Select(
		"COUNT(*) AS count, " +
			"COALESCE(SUM(CASE WHEN current_funding >= funding_goal THEN 1 ELSE 0 END), 0) AS fully_funded, " +
			"COALESCE(SUM(funding_goal), 0) AS goal_sum, " +
			"COALESCE(SUM(current_funding), 0) AS raised_sum",
	).Scan(&totals).Error
	if err != nil {
		return repository.IdeaTotals{}, fmt.Errorf("gorm: idea totals: %w", err)
	}
	return totals, nil
}
