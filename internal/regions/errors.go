package regions

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/pdf-editor/internal/overlay"
	"github.com/JaimeStill/pdf-editor/pkg/handlers"
)

var (
	ErrNotFound         = errors.New("region not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrDuplicate        = errors.New("region ordinal already exists")
	ErrInvalidPage      = errors.New("page out of range")
	ErrInvalidPoint     = errors.New("point outside page")
	ErrEmptyText        = errors.New("text required")
	ErrEmptyQuery       = errors.New("search query required")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidPage),
		errors.Is(err, ErrInvalidPoint),
		errors.Is(err, ErrEmptyText),
		errors.Is(err, ErrEmptyQuery),
		errors.Is(err, handlers.ErrInvalidBody),
		errors.Is(err, overlay.ErrReadOnlyProperty),
		errors.Is(err, overlay.ErrUnknownProperty),
		errors.Is(err, overlay.ErrInvalidValue),
		errors.Is(err, overlay.ErrInvalidRegion):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
