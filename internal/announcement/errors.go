package announcement

import (
	"net/http"

	sharedError "github.com/fpt-software/website-api/internal/shared/error"
)

const (
	announcementNotFound = "ANNOUNCEMENT_NOT_FOUND" // errInfo
)

var (
	ErrAnnouncementNotFound = sharedError.NewDomainError(announcementNotFound)
)

func init() {
	sharedError.RegisterDomainErrorResponse(announcementNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "ANNOUNCEMENT-001",
		Message: "Announcement not found",
	})
}
