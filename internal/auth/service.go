package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fpt-software/website-api/internal/model"
	"github.com/fpt-software/website-api/internal/shared/logger"
	"github.com/fpt-software/website-api/internal/shared/middleware"
	"github.com/fpt-software/website-api/internal/shared/token"
	"github.com/fpt-software/website-api/internal/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db             *gorm.DB
	userRepository *user.UserRepository
	tokenManager   token.Manager
	now            func() time.Time
}

func NewAuthService(db *gorm.DB, userRepository *user.UserRepository, tokenManager token.Manager) *AuthService {
	return &AuthService{
		db:             db,
		userRepository: userRepository,
		tokenManager:   tokenManager,
		now:            time.Now,
	}
}

func (a *AuthService) Login(ctx context.Context, request *LoginRequest) (*LoginResponse, error) {
	log := logger.Named(ctx, "auth")
	email := logger.MaskEmail(request.Email)
	log.Info("login attempt", "email", email)

	// 1. Find an active user by email
	u, err := a.userRepository.FindByEmail(ctx, a.db, request.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("login failed - user not found", "email", email)
			return nil, fmt.Errorf("login: %w", ErrInvalidCredentials) // do not reveal whether the email exists
		}
		log.Error("login failed - user lookup", "error", err)
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !u.IsActive {
		log.Warn("login failed - user inactive", "email", email)
		return nil, fmt.Errorf("login: %w", ErrInvalidCredentials)
	}

	// 2. Validate password
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(request.Password)); err != nil {
		log.Warn("login failed - invalid password", "email", email)
		return nil, fmt.Errorf("login: %w", ErrInvalidCredentials)
	}

	// 3. Stamp the login time
	if err := a.userRepository.TouchLastLogin(ctx, a.db, u.ID, a.now().UTC()); err != nil {
		log.Error("update last login failed", "user_id", u.ID, "error", err)
		return nil, fmt.Errorf("update last login: %w", err)
	}

	// 4. Issue the access token
	accessToken, err := a.tokenManager.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		log.Error("generate access token failed", "error", err)
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	log.Info("login succeeded", "email", email, "user_id", u.ID)
	return &LoginResponse{
		AccessToken: accessToken,
		User:        loginUser(u),
	}, nil
}

// Profile loads the token's user. Tokens of deleted or deactivated users are
// rejected.
func (a *AuthService) Profile(ctx context.Context, userID uint) (*ProfileResponse, error) {
	u, err := a.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ProfileResponse{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}, nil
}

func (a *AuthService) Validate(ctx context.Context, userID uint) (*ValidateResponse, error) {
	u, err := a.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ValidateResponse{Valid: true, User: loginUser(u)}, nil
}

// ResolvePrincipal backs the JWT guard: the token must still belong to an
// active user, and the stored role wins over the role in the claims.
func (a *AuthService) ResolvePrincipal(ctx context.Context, claims *token.Claims) (*middleware.Principal, error) {
	userID, err := claims.UserID()
	if err != nil {
		return nil, middleware.ErrInvalidClaims
	}

	u, err := a.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Role != claims.Role {
		logger.Named(ctx, "auth").Info("token role is stale", "user_id", u.ID, "token_role", claims.Role, "role", u.Role)
	}
	return &middleware.Principal{ID: u.ID, Email: u.Email, Role: u.Role}, nil
}

func (a *AuthService) activeUser(ctx context.Context, userID uint) (*model.User, error) {
	log := logger.Named(ctx, "auth")

	u, err := a.userRepository.FindByID(ctx, a.db, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn("token user not found", "user_id", userID)
		return nil, ErrInactiveUser
	}
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", userID, err)
	}
	if !u.IsActive {
		log.Warn("token user inactive", "user_id", userID)
		return nil, ErrInactiveUser
	}
	return u, nil
}

var _ middleware.PrincipalResolver = (*AuthService)(nil)

func loginUser(u *model.User) LoginUser {
	return LoginUser{ID: u.ID, Email: u.Email, FullName: u.FullName, Role: u.Role}
}
