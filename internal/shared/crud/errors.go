package crud

import (
	"net/http"

	sharedError "github.com/fpt-software/website-api/internal/shared/error"
)

const (
	fileUploadFailed = "FILE_UPLOAD_FAILED" // errInfo
)

var (
	ErrFileUploadFailed = sharedError.NewDomainError(fileUploadFailed)
)

func init() {
	sharedError.RegisterDomainErrorResponse(fileUploadFailed, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "FILE-001",
		Message: "File upload failed",
	})
}
