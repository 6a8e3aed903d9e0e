package setup

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"yen-network/internal/domain"
	"yen-network/internal/repository"
)

// MigrateDB creates or updates every table and index.
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}
	err := db.AutoMigrate(
		&domain.User{},
		&domain.Idea{},
		&domain.IdeaLike{},
		&domain.Connection{},
		&domain.Notification{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto-migrate tables: %w", err)
	}
	logrus.Info("Database migration completed successfully")
	return nil
}

// BootstrapAdmins promotes already registered users whose email is on the
// admin allow-list. New registrations get the role at sign-up time; this
// covers accounts created before the list changed.
func BootstrapAdmins(ctx context.Context, users repository.UserRepository, emails []string) (int64, error) {
	if len(emails) == 0 {
		logrus.Info("Admin bootstrap skipped: allow-list is empty")
		return 0, nil
	}
	promoted, err := users.PromoteToAdmin(ctx, emails)
	if err != nil {
		return 0, fmt.Errorf("bootstrap admins: %w", err)
	}
	logrus.WithFields(logrus.Fields{"allow_list": len(emails), "promoted": promoted}).Info("Admin bootstrap completed")
	return promoted, nil
}
