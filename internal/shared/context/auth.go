package context

import (
	"net/http"

	"github.com/fpt-software/website-api/internal/shared/logger"

	sharedError "github.com/fpt-software/website-api/internal/shared/error"
	"github.com/gin-gonic/gin"
)

// Context keys for storing user authentication information
const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
	UserRoleKey  = "user_role"
)

// Unauthenticated is the response sent when a guarded handler runs without a user.
var Unauthenticated = sharedError.ErrorResponse{
	Status:  http.StatusUnauthorized,
	Code:    "AUTH-000",
	Message: "Authentication required.",
}

// SetUser stores the authenticated principal on the gin context.
func SetUser(c *gin.Context, id uint, email, role string) {
	c.Set(UserIDKey, id)
	c.Set(UserEmailKey, email)
	c.Set(UserRoleKey, role)
}

func GetUserID(c *gin.Context) (uint, bool) {
	id, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	userID, ok := id.(uint)
	return userID, ok && userID != 0
}

func GetUserRole(c *gin.Context) (string, bool) {
	role := c.GetString(UserRoleKey)
	return role, role != ""
}

// RequireUserID retrieves the authenticated user's ID from the Gin context.
// If the user ID is not found, automatically sends an authentication error response.
func RequireUserID(c *gin.Context) (uint, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		c.AbortWithStatusJSON(Unauthenticated.Status, Unauthenticated)
		logger.FromContext(c.Request.Context()).Error("authenticated user id missing from context")
		return 0, false
	}
	return userID, true
}
