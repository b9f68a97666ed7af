package auth

import (
	"net/http"

	sharedError "github.com/fpt-software/website-api/internal/shared/error"
)

const (
	invalidCredentials = "INVALID_CREDENTIALS" // errInfo
	inactiveUser       = "INACTIVE_USER"       // errInfo
)

var (
	ErrInvalidCredentials = sharedError.NewDomainError(invalidCredentials)
	ErrInactiveUser       = sharedError.NewDomainError(inactiveUser)
)

func init() {
	sharedError.RegisterDomainErrorResponse(invalidCredentials, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-004",
		Message: "Invalid credentials",
	})

	sharedError.RegisterDomainErrorResponse(inactiveUser, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-005",
		Message: "User not found or inactive",
	})
}
