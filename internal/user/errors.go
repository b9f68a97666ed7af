package user

import (
	"net/http"

	sharedError "github.com/fpt-software/website-api/internal/shared/error"
)

const (
	userNotFound      = "USER_NOT_FOUND"      // errInfo
	userAlreadyExists = "USER_ALREADY_EXISTS" // errInfo
)

var (
	ErrUserNotFound      = sharedError.NewDomainError(userNotFound)
	ErrUserAlreadyExists = sharedError.NewDomainError(userAlreadyExists)
)

func init() {
	sharedError.RegisterDomainErrorResponse(userNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "USER-001",
		Message: "User not found",
	})

	sharedError.RegisterDomainErrorResponse(userAlreadyExists, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "USER-002",
		Message: "User with this email already exists",
	})
}
