package user

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fpt-software/website-api/internal/model"
	"github.com/fpt-software/website-api/internal/shared/cache"
	"github.com/fpt-software/website-api/internal/shared/crud"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	resourceName = "User"

	cachePrefix     = "users:"
	filtersCacheKey = cachePrefix + "filters"
)

type UserService struct {
	*crud.Service[model.User, CreateUserRequest, UpdateUserRequest, UserResponse]
	db    *gorm.DB
	repo  *UserRepository
	cache cache.Cache
}

func NewUserService(db *gorm.DB, userRepository *UserRepository, c cache.Cache) *UserService {
	hooks := &userHooks{repo: userRepository, cost: bcrypt.DefaultCost}
	return &UserService{
		Service: crud.NewService[model.User, CreateUserRequest, UpdateUserRequest, UserResponse](
			db, resourceName, ErrUserNotFound, hooks,
		),
		db:    db,
		repo:  userRepository,
		cache: c,
	}
}

func (s *UserService) Create(ctx context.Context, request CreateUserRequest) (UserResponse, error) {
	resp, err := s.Service.Create(ctx, request)
	if err == nil {
		cache.Invalidate(ctx, s.cache, cachePrefix)
	}
	return resp, err
}

func (s *UserService) Update(ctx context.Context, id uint, request UpdateUserRequest) (UserResponse, error) {
	resp, err := s.Service.Update(ctx, id, request)
	if err == nil {
		cache.Invalidate(ctx, s.cache, cachePrefix)
	}
	return resp, err
}

func (s *UserService) Remove(ctx context.Context, id uint) error {
	err := s.Service.Remove(ctx, id)
	if err == nil {
		cache.Invalidate(ctx, s.cache, cachePrefix)
	}
	return err
}

// List pages users narrowed by search, role and status. A purely numeric
// search term matches the id exactly; unknown roles and statuses are ignored.
func (s *UserService) List(ctx context.Context, q ListQuery) (*crud.Page[UserResponse], error) {
	return s.FindAll(ctx, q.PageQuery,
		crud.OneOf("role", q.Role, model.Roles),
		crud.ActiveStatus.Scope("is_active", q.Status),
	)
}

// FilterOptions lists the roles in use and the status words.
func (s *UserService) FilterOptions(ctx context.Context) (FilterOptions, error) {
	return cache.Remember(ctx, s.cache, filtersCacheKey, 0, func(ctx context.Context) (FilterOptions, error) {
		roles, err := s.repo.Distinct(ctx, s.db, "role")
		if err != nil {
			return FilterOptions{}, fmt.Errorf("load user roles: %w", err)
		}
		return FilterOptions{Roles: roles, Statuses: crud.ActiveStatus.Values()}, nil
	})
}

type userHooks struct {
	repo *UserRepository
	cost int
}

func (h *userHooks) NewEntity(_ context.Context, in CreateUserRequest) (*model.User, error) {
	hash, err := h.hash(in.Password)
	if err != nil {
		return nil, err
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	return &model.User{
		Email:        NormalizeEmail(in.Email),
		PasswordHash: hash,
		FullName:     strings.TrimSpace(in.FullName),
		Role:         in.Role,
		IsActive:     isActive,
	}, nil
}

func (h *userHooks) ApplyUpdate(_ context.Context, u *model.User, in UpdateUserRequest) error {
	if in.Email != nil {
		u.Email = NormalizeEmail(*in.Email)
	}
	if in.Password != nil {
		hash, err := h.hash(*in.Password)
		if err != nil {
			return err
		}
		u.PasswordHash = hash
	}
	if in.FullName != nil {
		u.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	return nil
}

func (h *userHooks) ToResponse(u *model.User) UserResponse {
	return toResponse(u)
}

func toResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (h *userHooks) ApplySearch(db *gorm.DB, term string) *gorm.DB {
	if id, err := strconv.ParseUint(term, 10, 64); err == nil {
		return crud.Equals("id", id)(db)
	}
	return crud.AnyContains([]string{"full_name", "email"}, term)(db)
}

func (h *userHooks) ValidateCreate(ctx context.Context, tx *gorm.DB, in CreateUserRequest) error {
	return h.ensureEmailFree(ctx, tx, NormalizeEmail(in.Email), 0)
}

func (h *userHooks) ValidateUpdate(ctx context.Context, tx *gorm.DB, existing *model.User, in UpdateUserRequest) error {
	if in.Email == nil || NormalizeEmail(*in.Email) == existing.Email {
		return nil
	}
	return h.ensureEmailFree(ctx, tx, NormalizeEmail(*in.Email), existing.ID)
}

func (h *userHooks) ensureEmailFree(ctx context.Context, tx *gorm.DB, email string, excludeID uint) error {
	taken, err := h.repo.ExistsBy(ctx, tx, "email", email, excludeID)
	if err != nil {
		return fmt.Errorf("check user email: %w", err)
	}
	if taken {
		return ErrUserAlreadyExists
	}
	return nil
}

func (h *userHooks) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
