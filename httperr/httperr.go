// Package httperr carries operation failures from the controllers and
// stores up to the HTTP boundary as a single {message, status} record.
package httperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Error struct {
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Status: status}
}

func NotFound(format string, args ...any) *Error {
	return New(http.StatusNotFound, format, args...)
}

func BadRequest(format string, args ...any) *Error {
	return New(http.StatusBadRequest, format, args...)
}

func Unauthorized(format string, args ...any) *Error {
	return New(http.StatusUnauthorized, format, args...)
}

func Forbidden(format string, args ...any) *Error {
	return New(http.StatusForbidden, format, args...)
}

func Internal(format string, args ...any) *Error {
	return New(http.StatusInternalServerError, format, args...)
}

// StatusOf extracts the HTTP status of an error, defaulting to 500 for
// anything that is not an *Error.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}

// Abort writes the error as the single JSON error shape used across
// the API and stops the handler chain.
func Abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(StatusOf(err), gin.H{"error": err.Error()})
}
