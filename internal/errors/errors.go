package errors

import (
	"errors"
	"net/http"
)

// Error classes. Concrete errors wrap one of these so callers can branch with errors.Is.
var (
	// ErrValidation is returned for malformed or missing input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a uniqueness constraint would be violated.
	ErrConflict = errors.New("conflict")
	// ErrStorage is returned when the underlying store fails.
	ErrStorage = errors.New("storage failure")
	// ErrAuth is returned when credentials or tokens are rejected.
	ErrAuth = errors.New("authentication failed")
	// ErrIDSpaceExhausted is returned when no free identifier could be drawn.
	ErrIDSpaceExhausted = errors.New("identifier space exhausted")
)

var (
	ErrUserNotFound         = wrap(ErrNotFound, "user not found")
	ErrRecipeNotFound       = wrap(ErrNotFound, "recipe not found")
	ErrNotificationNotFound = wrap(ErrNotFound, "notification not found")
	ErrMediaNotFound        = wrap(ErrNotFound, "file not found")

	ErrUsernameTaken = wrap(ErrConflict, "username already in use")

	ErrInvalidCredentials  = wrap(ErrAuth, "incorrect password")
	ErrInvalidRefreshToken = wrap(ErrAuth, "invalid or expired refresh token")
)

// classError carries its own message while matching its class via errors.Is.
type classError struct {
	class error
	msg   string
}

func (e *classError) Error() string { return e.msg }
func (e *classError) Unwrap() error { return e.class }

func wrap(class error, msg string) error {
	return &classError{class: class, msg: msg}
}

// Validation builds a validation error with a caller facing message.
func Validation(msg string) error {
	return wrap(ErrValidation, msg)
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Storage and unknown
// errors never expose their message.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CONFLICT")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrAuth):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrIDSpaceExhausted):
		return NewHTTPError(http.StatusServiceUnavailable, "no free identifier available", "ID_SPACE_EXHAUSTED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
