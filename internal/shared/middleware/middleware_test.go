package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fpt-software/website-api/internal/config"
	sharedContext "github.com/fpt-software/website-api/internal/shared/context"
	sharedError "github.com/fpt-software/website-api/internal/shared/error"
	"github.com/fpt-software/website-api/internal/shared/token"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		reused   bool
	}{
		{name: "generates when missing", incoming: "", reused: false},
		{name: "reuses caller id", incoming: "abc-123", reused: true},
		{name: "replaces oversized id", incoming: strings.Repeat("x", maxRequestIDLength+1), reused: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			engine := gin.New()
			engine.Use(RequestID())
			var seen string
			engine.GET("/", func(c *gin.Context) { seen = GetRequestID(c) })

			// When
			recorder := serve(engine, map[string]string{RequestIDHeader: tt.incoming})

			// Then
			got := recorder.Header().Get(RequestIDHeader)
			assert.NotEmpty(t, got)
			assert.Equal(t, got, seen)
			if tt.reused {
				assert.Equal(t, tt.incoming, got)
			} else {
				assert.NotEqual(t, tt.incoming, got)
			}
		})
	}
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		status int
	}{
		{name: "no authenticated user", role: "", status: http.StatusUnauthorized},
		{name: "role not allowed", role: "viewer", status: http.StatusForbidden},
		{name: "role allowed", role: "editor", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			engine := gin.New()
			engine.Use(func(c *gin.Context) {
				if tt.role != "" {
					sharedContext.SetUser(c, 1, "someone@example.com", tt.role)
				}
			})
			engine.GET("/", RequireRoles("admin", "editor"), func(c *gin.Context) { c.Status(http.StatusOK) })

			// When
			recorder := serve(engine, nil)

			// Then
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}

func TestIPRateLimiter(t *testing.T) {
	t.Run("buckets are per ip", func(t *testing.T) {
		// Given
		limiter := NewIPRateLimiter(config.RateLimitConfig{RequestsPerSecond: 1, Burst: 1})
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		limiter.now = func() time.Time { return now }

		// When / Then
		assert.True(t, limiter.Allow("10.0.0.1"))
		assert.False(t, limiter.Allow("10.0.0.1"))
		assert.True(t, limiter.Allow("10.0.0.2"))

		now = now.Add(time.Second)
		assert.True(t, limiter.Allow("10.0.0.1"))
	})

	t.Run("idle clients are evicted", func(t *testing.T) {
		// Given: an exhausted bucket and a short idle TTL
		limiter := newIPRateLimiter(config.RateLimitConfig{RequestsPerSecond: 1, Burst: 1}, 20*time.Millisecond, 0)
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		limiter.now = func() time.Time { return now }
		assert.True(t, limiter.Allow("10.0.0.1"))
		assert.False(t, limiter.Allow("10.0.0.1"))

		// When: the client stays idle past the TTL
		time.Sleep(50 * time.Millisecond)

		// Then: it starts over with a fresh bucket
		_, found := limiter.clients.Get("10.0.0.1")
		assert.False(t, found)
		assert.True(t, limiter.Allow("10.0.0.1"))
	})
}

var errAccountGone = sharedError.NewDomainError("TEST_ACCOUNT_GONE")

func init() {
	sharedError.RegisterDomainErrorResponse("TEST_ACCOUNT_GONE", sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-005",
		Message: "User not found or inactive",
	})
}

func TestJWT_ResolvesStoredAccount(t *testing.T) {
	tokens := token.NewJWTManager(&config.Config{
		App: config.AppConfig{Name: "website-api-test"},
		JWT: config.JWTConfig{Secret: "middleware-test-secret-at-least-32-characters", Expiry: time.Hour},
	})
	accessToken, err := tokens.GenerateAccessToken(7, "editor@example.com", "editor")
	require.NoError(t, err)
	bearer := map[string]string{AuthorizationHeader: "Bearer " + accessToken}

	tests := []struct {
		name     string
		resolver PrincipalResolverFunc
		status   int
		role     string
		code     string
	}{
		{
			name: "stored role replaces the token role",
			resolver: func(_ context.Context, claims *token.Claims) (*Principal, error) {
				return &Principal{ID: 7, Email: claims.Email, Role: "viewer"}, nil
			},
			status: http.StatusOK,
			role:   "viewer",
		},
		{
			name: "account rejected",
			resolver: func(context.Context, *token.Claims) (*Principal, error) {
				return nil, errAccountGone
			},
			status: http.StatusUnauthorized,
			code:   "AUTH-005",
		},
		{
			name: "account store failure",
			resolver: func(context.Context, *token.Claims) (*Principal, error) {
				return nil, errors.New("connection refused")
			},
			status: http.StatusInternalServerError,
			code:   sharedError.InternalServerError.Code,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			engine := gin.New()
			var role string
			engine.GET("/", JWT(tokens, tt.resolver), func(c *gin.Context) {
				role, _ = sharedContext.GetUserRole(c)
				c.Status(http.StatusOK)
			})

			// When
			recorder := serve(engine, bearer)

			// Then
			assert.Equal(t, tt.status, recorder.Code)
			assert.Equal(t, tt.role, role)
			if tt.code != "" {
				assert.Contains(t, recorder.Body.String(), tt.code)
			}
		})
	}
}
