package error

import (
	"errors"
	"net/http"
)

type DomainError interface {
	error // Embed standard error interface
	Info() string
}

type domainSentinel struct {
	errInfo string
}

func (e *domainSentinel) Error() string {
	return e.errInfo
}

func (e *domainSentinel) Info() string {
	return e.errInfo
}

// detailedError carries a client-facing message for one occurrence of a sentinel.
type detailedError struct {
	sentinel DomainError
	message  string
}

func (e *detailedError) Error() string {
	return e.message
}

func (e *detailedError) Info() string {
	return e.sentinel.Info()
}

func (e *detailedError) Unwrap() error {
	return e.sentinel
}

// FieldViolation describes one failed validation rule.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the JSON response structure for errors
type ErrorResponse struct {
	Status  int              `json:"status"`
	Code    string           `json:"code"`
	Message string           `json:"message"` // client message
	Errors  []FieldViolation `json:"errors,omitempty"`
}

// Common errors
var (
	domainErrorResponses = map[string]ErrorResponse{}

	// ValidationFailed indicates the request payload failed validation
	ValidationFailed = ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "ERROR-001",
		Message: "Validation failed.",
	}

	// InvalidRequest indicates the request format is invalid (e.g., JSON parsing error)
	InvalidRequest = ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "ERROR-002",
		Message: "Malformed request.",
	}

	// InternalServerError indicates an unexpected server error
	InternalServerError = ErrorResponse{
		Status:  http.StatusInternalServerError,
		Code:    "ERROR-003",
		Message: "Internal server error.",
	}

	// TooManyRequests is returned by the rate limiter
	TooManyRequests = ErrorResponse{
		Status:  http.StatusTooManyRequests,
		Code:    "ERROR-004",
		Message: "Too many requests, please retry later.",
	}
)

// NewDomainError creates a sentinel error that can participate in error chains.
func NewDomainError(errInfo string) DomainError {
	return &domainSentinel{errInfo: errInfo}
}

// WithMessage returns an error matching sentinel (errors.Is) whose client message is
// message instead of the registered default.
func WithMessage(sentinel DomainError, message string) error {
	return &detailedError{sentinel: sentinel, message: message}
}

// RegisterDomainErrorResponse registers a mapping between a domain error errInfo and a shared error response.
func RegisterDomainErrorResponse(errInfo string, resp ErrorResponse) {
	domainErrorResponses[errInfo] = resp
}

// ResolveDomainError converts a domain error into a shared error response if a mapping exists.
func ResolveDomainError(err error) (ErrorResponse, bool) {
	if err == nil {
		return ErrorResponse{}, false
	}

	var domainErr DomainError
	if !errors.As(err, &domainErr) {
		return ErrorResponse{}, false
	}

	resp, ok := domainErrorResponses[domainErr.Info()]
	if !ok {
		return ErrorResponse{}, false
	}

	var detailed *detailedError
	if errors.As(err, &detailed) {
		resp.Message = detailed.message
	}
	return resp, true
}
