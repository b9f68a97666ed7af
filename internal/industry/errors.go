package industry

import (
	"net/http"

	sharedError "github.com/fpt-software/website-api/internal/shared/error"
)

const (
	industryNotFound      = "INDUSTRY_NOT_FOUND"      // errInfo
	industryAlreadyExists = "INDUSTRY_ALREADY_EXISTS" // errInfo
)

var (
	ErrIndustryNotFound      = sharedError.NewDomainError(industryNotFound)
	ErrIndustryAlreadyExists = sharedError.NewDomainError(industryAlreadyExists)
)

func init() {
	sharedError.RegisterDomainErrorResponse(industryNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "INDUSTRY-001",
		Message: "Industry not found",
	})

	sharedError.RegisterDomainErrorResponse(industryAlreadyExists, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "INDUSTRY-002",
		Message: "Industry with this name already exists",
	})
}
