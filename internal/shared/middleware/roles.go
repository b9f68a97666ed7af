package middleware

import (
	"log/slog"
	"net/http"

	sharedContext "github.com/fpt-software/website-api/internal/shared/context"
	sharedError "github.com/fpt-software/website-api/internal/shared/error"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

const forbidden = "FORBIDDEN"

var ErrForbidden = sharedError.NewDomainError(forbidden)

func init() {
	sharedError.RegisterDomainErrorResponse(forbidden, sharedError.ErrorResponse{
		Status:  http.StatusForbidden,
		Code:    "AUTH-003",
		Message: "You do not have permission to perform this action.",
	})
}

// RequireRoles must run after JWT. It lets the request through only when the
// authenticated role is one of roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := sharedContext.GetUserRole(c)
		if !ok {
			c.AbortWithStatusJSON(sharedContext.Unauthenticated.Status, sharedContext.Unauthenticated)
			return
		}

		if !lo.Contains(roles, role) {
			slog.Warn("role check failed",
				"role", role,
				"required", roles,
				"path", c.Request.URL.Path,
				"request_id", GetRequestID(c),
			)
			handleAuthError(c, ErrForbidden)
			return
		}

		c.Next()
	}
}
