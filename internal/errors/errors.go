package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNoteNotFound is returned when a note is absent, soft-deleted, or
	// owned by another user. The three cases are deliberately indistinguishable.
	ErrNoteNotFound = errors.New("note not found")
	// ErrInvalidInput is returned when a required field is empty or malformed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrAuthRequired is returned when an operation is attempted without a valid session.
	ErrAuthRequired = errors.New("authentication required")
	// ErrStorageUnavailable is returned when the underlying store is unreachable
	// or a query failed for infrastructure reasons.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

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

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrNoteNotFound):
		return NewHTTPError(http.StatusNotFound, ErrNoteNotFound.Error(), "NOTE_NOT_FOUND")
	case errors.Is(err, ErrInvalidInput):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidInput.Error(), "INVALID_INPUT")
	case errors.Is(err, ErrAuthRequired):
		return NewHTTPError(http.StatusUnauthorized, ErrAuthRequired.Error(), "AUTH_REQUIRED")
	case errors.Is(err, ErrStorageUnavailable):
		return NewHTTPError(http.StatusServiceUnavailable, ErrStorageUnavailable.Error(), "STORAGE_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
