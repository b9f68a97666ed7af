package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/fpt-software/website-api/internal/shared/middleware"
	"github.com/fpt-software/website-api/internal/shared/token"
)

// MockTokenManager is a mock implementation of token.Manager for testing
type MockTokenManager struct {
	GenerateAccessTokenFunc func(userID uint, email, role string) (string, error)
	ValidateTokenFunc       func(tokenString string) (*token.Claims, error)
}

func (m *MockTokenManager) GenerateAccessToken(userID uint, email, role string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID, email, role)
	}
	return "mock-access-token", nil
}

func (m *MockTokenManager) ValidateToken(tokenString string) (*token.Claims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(tokenString)
	}
	return nil, token.ErrInvalidToken
}

func (m *MockTokenManager) Expiry() time.Duration {
	return time.Hour
}

// Ensure MockTokenManager implements token.Manager
var _ token.Manager = (*MockTokenManager)(nil)

// NewMockTokenManager creates a new mock token manager with default behavior
func NewMockTokenManager() *MockTokenManager {
	return &MockTokenManager{}
}

// NewTokenManager returns a real JWT manager using the test secret.
func NewTokenManager() *token.JWTManager {
	return token.NewJWTManager(NewTestConfig())
}

// BearerHeader issues a token for the principal and returns request headers
// carrying it.
func BearerHeader(t *testing.T, manager token.Manager, userID uint, email, role string) map[string]string {
	t.Helper()

	accessToken, err := manager.GenerateAccessToken(userID, email, role)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + accessToken}
}

// ClaimsPrincipal resolves a token straight from its claims, for handler
// tests that mount the guard without an account store.
var ClaimsPrincipal = middleware.PrincipalResolverFunc(func(_ context.Context, claims *token.Claims) (*middleware.Principal, error) {
	id, err := claims.UserID()
	if err != nil {
		return nil, middleware.ErrInvalidClaims
	}
	return &middleware.Principal{ID: id, Email: claims.Email, Role: claims.Role}, nil
})
