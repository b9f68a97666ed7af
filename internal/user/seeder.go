package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fpt-software/website-api/internal/config"
	"github.com/fpt-software/website-api/internal/model"
	"github.com/fpt-software/website-api/internal/shared/logger"
	"gorm.io/gorm"
)

// SeedDefaultUsers creates the default admin and editor accounts when their
// e-mails are not registered yet. Existing accounts are never modified.
func SeedDefaultUsers(ctx context.Context, service *UserService, cfg config.SeedConfig) error {
	if !cfg.Enabled {
		slog.Info("default user seeding disabled")
		return nil
	}

	defaults := []CreateUserRequest{
		{Email: cfg.AdminEmail, Password: cfg.AdminPassword, FullName: "System Administrator", Role: model.RoleAdmin},
		{Email: cfg.EditorEmail, Password: cfg.EditorPassword, FullName: "Content Editor", Role: model.RoleEditor},
	}

	for _, request := range defaults {
		if request.Email == "" {
			continue
		}

		_, err := service.repo.FindByEmail(ctx, service.db, request.Email)
		if err == nil {
			slog.Debug("default user already present", "email", logger.MaskEmail(request.Email))
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("look up %s: %w", logger.MaskEmail(request.Email), err)
		}

		if _, err := service.Create(ctx, request); err != nil {
			return fmt.Errorf("seed %s user: %w", request.Role, err)
		}
		slog.Info("default user created", "email", logger.MaskEmail(request.Email), "role", request.Role)
	}
	return nil
}
