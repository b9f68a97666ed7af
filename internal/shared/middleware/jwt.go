package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	sharedContext "github.com/fpt-software/website-api/internal/shared/context"
	sharedError "github.com/fpt-software/website-api/internal/shared/error"
	"github.com/fpt-software/website-api/internal/shared/token"
	"github.com/gin-gonic/gin"
)

const (
	AuthorizationHeader = "Authorization"
	BearerScheme        = "Bearer"
)

// JWT error constants (errInfo)
const (
	missingToken  = "MISSING_TOKEN"
	invalidToken  = "INVALID_TOKEN"
	expiredToken  = "EXPIRED_TOKEN"
	invalidClaims = "INVALID_CLAIMS"
)

// Domain errors
var (
	ErrMissingToken  = sharedError.NewDomainError(missingToken)
	ErrInvalidToken  = sharedError.NewDomainError(invalidToken)
	ErrExpiredToken  = sharedError.NewDomainError(expiredToken)
	ErrInvalidClaims = sharedError.NewDomainError(invalidClaims)
)

// Register JWT error responses
func init() {
	sharedError.RegisterDomainErrorResponse(missingToken, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-000",
		Message: "Authentication required.",
	})

	sharedError.RegisterDomainErrorResponse(invalidToken, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-001",
		Message: "Invalid token.",
	})

	sharedError.RegisterDomainErrorResponse(expiredToken, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-002",
		Message: "Token has expired, please log in again.",
	})

	sharedError.RegisterDomainErrorResponse(invalidClaims, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-001",
		Message: "Invalid token.",
	})
}

// Principal is the stored account a request acts as.
type Principal struct {
	ID    uint
	Email string
	Role  string
}

// PrincipalResolver loads the current account behind verified claims. A
// registered domain error is answered with its response; any other error is
// a 500.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, claims *token.Claims) (*Principal, error)
}

type PrincipalResolverFunc func(ctx context.Context, claims *token.Claims) (*Principal, error)

func (f PrincipalResolverFunc) ResolvePrincipal(ctx context.Context, claims *token.Claims) (*Principal, error) {
	return f(ctx, claims)
}

// JWT authenticates the bearer token, resolves it to the stored account and
// puts that account, not the claims, on the context.
func JWT(tokenManager token.Manager, resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken, err := extractToken(c)
		if err != nil {
			logAuthFailure(c, "extract_token", err)
			handleAuthError(c, err)
			return
		}

		claims, err := tokenManager.ValidateToken(rawToken)
		if err != nil {
			logAuthFailure(c, "validate_token", err)
			handleAuthError(c, mapTokenError(err))
			return
		}

		if _, err := claims.UserID(); err != nil {
			logAuthFailure(c, "read_claims", err)
			handleAuthError(c, ErrInvalidClaims)
			return
		}

		principal, err := resolver.ResolvePrincipal(c.Request.Context(), claims)
		if err != nil {
			logAuthFailure(c, "resolve_principal", err)
			if _, ok := sharedError.ResolveDomainError(err); !ok {
				c.Error(err)
				c.AbortWithStatusJSON(sharedError.InternalServerError.Status, sharedError.InternalServerError)
				return
			}
			handleAuthError(c, err)
			return
		}

		sharedContext.SetUser(c, principal.ID, principal.Email, principal.Role)
		c.Next()
	}
}

func logAuthFailure(c *gin.Context, step string, err error) {
	slog.Warn("JWT authentication failed",
		"step", step,
		"error", err.Error(),
		"client_ip", c.ClientIP(),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"request_id", GetRequestID(c),
	)
}

// handleAuthError writes the registered response for an auth domain error.
func handleAuthError(c *gin.Context, err error) {
	c.Error(err)
	if resp, ok := sharedError.ResolveDomainError(err); ok {
		c.AbortWithStatusJSON(resp.Status, resp)
		return
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-999",
		Message: "Authentication failed.",
	})
}

func extractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		return "", ErrMissingToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], BearerScheme) || strings.TrimSpace(parts[1]) == "" {
		return "", ErrInvalidToken
	}

	return strings.TrimSpace(parts[1]), nil
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, token.ErrExpiredToken):
		return ErrExpiredToken
	case errors.Is(err, token.ErrInvalidClaims):
		return ErrInvalidClaims
	default:
		return ErrInvalidToken
	}
}
