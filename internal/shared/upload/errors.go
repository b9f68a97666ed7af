package upload

import (
	"net/http"

	sharedError "github.com/fpt-software/website-api/internal/shared/error"
)

const (
	fileMissing  = "UPLOAD_FILE_MISSING"   // errInfo
	fileTooLarge = "UPLOAD_FILE_TOO_LARGE" // errInfo
	fileType     = "UPLOAD_FILE_TYPE"      // errInfo
)

var (
	ErrFileMissing  = sharedError.NewDomainError(fileMissing)
	ErrFileTooLarge = sharedError.NewDomainError(fileTooLarge)
	ErrFileType     = sharedError.NewDomainError(fileType)
)

func init() {
	sharedError.RegisterDomainErrorResponse(fileMissing, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "UPLOAD-001",
		Message: "No file provided",
	})

	sharedError.RegisterDomainErrorResponse(fileTooLarge, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "UPLOAD-002",
		Message: "File is too large",
	})

	sharedError.RegisterDomainErrorResponse(fileType, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "UPLOAD-003",
		Message: "File type is not allowed",
	})
}
