// migrate creates or updates the database schema and optionally promotes
// allow-listed accounts to admin.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"yen-network/internal/bootstrap"
	gormpersistence "yen-network/internal/infra/persistence/gorm"
	"yen-network/internal/infra/setup"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var bootstrapAdmins bool
	var adminEmails []string

	flagSet := pflag.NewFlagSet("migrate", pflag.ContinueOnError)
	flagSet.BoolVar(&bootstrapAdmins, "bootstrap-admins", false, "promote existing users on the admin allow-list to admin")
	flagSet.StringSliceVar(&adminEmails, "admin-email", nil, "additional admin email to promote alongside ADMIN_EMAILS (repeatable)")
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	log := bootstrap.NewLogger(cfg)

	db, err := setup.InitDB(cfg.DBOptions())
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := setup.MigrateDB(db); err != nil {
		return err
	}
	if !bootstrapAdmins {
		return nil
	}

	emails := mergeAdminEmails(cfg.AdminEmails, adminEmails)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	promoted, err := setup.BootstrapAdmins(ctx, gormpersistence.NewGormUserRepository(db), emails)
	if err != nil {
		return err
	}
	log.Infof("Promoted %d account(s) to admin", promoted)
	return nil
}

// mergeAdminEmails returns the configured allow-list plus extra, lowercased,
// trimmed and without duplicates.
func mergeAdminEmails(configured, extra []string) []string {
	seen := make(map[string]struct{}, len(configured)+len(extra))
	emails := make([]string, 0, len(configured)+len(extra))
	for _, list := range [][]string{configured, extra} {
		for _, e := range list {
			e = strings.ToLower(strings.TrimSpace(e))
			if e == "" {
				continue
			}
			if _, dup := seen[e]; dup {
				continue
			}
			seen[e] = struct{}{}
			emails = append(emails, e)
		}
	}
	return emails
}
