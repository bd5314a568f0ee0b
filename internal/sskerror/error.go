package sskerror

import (
	"net/http"

	"github.com/pkg/errors"
)

// Tags rendered in error payloads.
const (
	TagInvalidParameters = "invalid_parameters"
	TagInvalidToken      = "invalid_token"
	TagExpiredToken      = "expired_token"
	TagForbidden         = "forbidden"
	TagNotFound          = "not_found"
	TagRegistration      = "registration_closed"
)

type (
	// An SSKError represents the error format that can be rendered by the Shishikan server.
	SSKError struct {
		HTTPCode   int `json:"-"`
		FieldError err `json:"error"`
	}

	err struct {
		Tag     string `json:"tag,omitempty"`
		Message string `json:"message"`
	}
)

// StatusCode returns the HTTP status code carried by err or one of the errors it wraps.
func StatusCode(err error) int {
	var sskerr *SSKError
	if errors.As(err, &sskerr) && sskerr.HTTPCode != 0 {
		return sskerr.HTTPCode
	}
	return http.StatusInternalServerError
}

// New returns a new SSKError with the given message.
func New(message string) *SSKError {
	return &SSKError{FieldError: err{Message: message}}
}

// NewWithTagCode returns a new SSKError with the given code, tag and message.
func NewWithTagCode(code int, tag, message string) *SSKError {
	return &SSKError{HTTPCode: code, FieldError: err{Tag: tag, Message: message}}
}

// BadRequest returns a 400 error for invalid parameters.
func BadRequest(message string) *SSKError {
	return NewWithTagCode(http.StatusBadRequest, TagInvalidParameters, message)
}

// NotFound returns a 404 error.
func NotFound(message string) *SSKError {
	return NewWithTagCode(http.StatusNotFound, TagNotFound, message)
}

// Forbidden returns a 403 error.
func Forbidden(message string) *SSKError {
	return NewWithTagCode(http.StatusForbidden, TagForbidden, message)
}

// Unauthorized returns a 401 error.
func Unauthorized(message string) *SSKError {
	return NewWithTagCode(http.StatusUnauthorized, TagInvalidToken, message)
}

// Tag returns the error tag.
func (e *SSKError) Tag() string {
	return e.FieldError.Tag
}

// Error implements error interface.
func (e *SSKError) Error() string {
	return e.FieldError.Message
}
