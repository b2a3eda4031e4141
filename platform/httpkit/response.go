// Package httpkit carries the HTTP plumbing shared by all modules:
// response envelopes, error mapping, and router middleware.
package httpkit

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"blocarch_backend/platform/apperr"
)

// ErrorResponse is the envelope every error leaves the API in.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// OK writes payload with a 200 status.
func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Error writes an ErrorResponse with the given status.
func Error(c *gin.Context, status int, message string, details any) {
	c.JSON(status, ErrorResponse{Error: message, Details: details})
}

// HandleError translates err into an HTTP error response and reports whether
// it wrote one. Typed *apperr.Error values map through their Kind; anything
// untyped is treated as a bad request rather than leaking internals as a 500.
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		Error(c, appErr.HTTPStatus(), appErr.Message, appErr.Details)
		return true
	}

	Error(c, http.StatusBadRequest, err.Error(), nil)
	return true
}
