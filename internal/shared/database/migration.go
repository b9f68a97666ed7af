package database

import (
	"fmt"
	"log/slog"

	"github.com/fpt-software/website-api/internal/config"
	"github.com/fpt-software/website-api/internal/model"

	"gorm.io/gorm"
)

// Models lists every persisted model in dependency order.
func Models() []any {
	return []any{
		&model.User{},
		&model.Industry{},
		&model.Announcement{},
	}
}

// Migrate executes database migration based on configuration
func Migrate(db *gorm.DB, cfg *config.Config) error {
	if !cfg.Database.IsAutoMigrate {
		slog.Info("database migration disabled", "auto_migrate", false, "env", cfg.App.Env)
		return nil
	}

	if cfg.Database.ResetSchema {
		if cfg.IsProduction() {
			return fmt.Errorf("DB_RESET_SCHEMA is refused in prod")
		}
		slog.Warn("dropping every table before migration", "env", cfg.App.Env)
		if err := DropAll(db); err != nil {
			return err
		}
	}

	if err := AutoMigrate(db); err != nil {
		return err
	}

	slog.Info("database migration completed", "env", cfg.App.Env)
	return nil
}

// AutoMigrate creates or alters tables from the model definitions.
func AutoMigrate(db *gorm.DB) error {
	for _, m := range Models() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("migrate %T: %w", m, err)
		}
		slog.Debug("table migrated", "model", fmt.Sprintf("%T", m))
	}
	return nil
}

// DropAll drops the model tables in reverse dependency order.
func DropAll(db *gorm.DB) error {
	models := Models()
	migrator := db.Migrator()
	for i := len(models) - 1; i >= 0; i-- {
		if !migrator.HasTable(models[i]) {
			continue
		}
		if err := migrator.DropTable(models[i]); err != nil {
			return fmt.Errorf("drop %T: %w", models[i], err)
		}
		slog.Debug("table dropped", "model", fmt.Sprintf("%T", models[i]))
	}
	return nil
}
