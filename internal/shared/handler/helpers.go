package handler

import (
	"net/http"
	"strconv"

	sharedError "github.com/fpt-software/website-api/internal/shared/error"
	"github.com/fpt-software/website-api/internal/shared/logger"
	"github.com/fpt-software/website-api/internal/shared/validator"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// BindJSON parses and validates JSON request body
// Returns true if binding succeeded, false if failed (response already sent)
//
// Usage:
//
//	var req SignupRequest
//	if !handler.BindJSON(c, &req) {
//	    return
//	}
func BindJSON(c *gin.Context, obj any) bool {
	return respondBindError(c, c.ShouldBindJSON(obj))
}

// BindQuery binds and validates query string parameters.
func BindQuery(c *gin.Context, obj any) bool {
	return respondBindError(c, c.ShouldBindQuery(obj))
}

// Validate runs struct validation on a value that was populated by hand,
// e.g. from a multipart form.
func Validate(c *gin.Context, obj any) bool {
	return respondBindError(c, binding.Validator.ValidateStruct(obj))
}

func respondBindError(c *gin.Context, err error) bool {
	if err == nil {
		return true
	}

	c.Error(err)
	if resp, ok := validator.ToErrorResponse(err); ok {
		c.JSON(resp.Status, resp)
	} else {
		c.JSON(sharedError.InvalidRequest.Status, sharedError.InvalidRequest)
	}
	return false
}

// ParseID reads a positive integer path parameter. On failure a 400 is sent.
func ParseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		c.Error(err)
		resp := sharedError.ValidationFailed
		resp.Message = param + " must be a positive integer"
		c.JSON(resp.Status, resp)
		return 0, false
	}
	return uint(id), true
}

// RespondError sends an error response with logging
//
// Usage:
//
//	if err := service.DoSomething(); err != nil {
//	    handler.RespondError(c, err, sharedError.InternalServerError)
//	    return
//	}
func RespondError(c *gin.Context, err error, errResp sharedError.ErrorResponse) {
	c.Error(err)
	c.JSON(errResp.Status, errResp)
}

// RespondServiceError maps a service error to its registered response,
// falling back to 500 for anything unmapped.
func RespondServiceError(c *gin.Context, err error) {
	if resp, ok := sharedError.ResolveDomainError(err); ok {
		RespondError(c, err, resp)
		return
	}

	logger.FromContext(c.Request.Context()).Error("unhandled service error", "error", err)
	RespondError(c, err, sharedError.InternalServerError)
}

// NoContent answers 204 without a body.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
