package documents

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/pdf-editor/pkg/handlers"
)

// Domain errors for document operations.
var (
	ErrNotFound        = errors.New("document not found")
	ErrDuplicate       = errors.New("document storage key already exists")
	ErrFileTooLarge    = errors.New("file exceeds maximum upload size")
	ErrInvalidFile     = errors.New("invalid file")
	ErrInvalidPage     = errors.New("page out of range")
	ErrInvalidRotation = errors.New("rotation must be 90, 180, or 270 degrees")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrInvalidFile) ||
		errors.Is(err, ErrInvalidPage) ||
		errors.Is(err, ErrInvalidRotation) ||
		errors.Is(err, handlers.ErrInvalidBody) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
