package user

import (
	"context"
	"strings"
	"time"

	"github.com/fpt-software/website-api/internal/model"
	"github.com/fpt-software/website-api/internal/shared/crud"
	"gorm.io/gorm"
)

type UserRepository struct {
	*crud.Repository[model.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{Repository: crud.NewRepository[model.User]()}
}

func (r *UserRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.User, error) {
	var user model.User
	err := db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// TouchLastLogin stamps last_login_at without changing updated_at.
func (r *UserRepository) TouchLastLogin(ctx context.Context, db *gorm.DB, id uint, at time.Time) error {
	return db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}

// NormalizeEmail is the stored form of an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
