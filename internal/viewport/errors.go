package viewport

import "errors"

var (
	ErrNoDocument          = errors.New("no document loaded")
	ErrUnsupportedDocument = errors.New("unsupported document")
	ErrPageOutOfRange      = errors.New("page out of range")
	ErrInvalidZoom         = errors.New("invalid zoom level")
	ErrNoSelection         = errors.New("no region selected")
	ErrNotEditing          = errors.New("no region is being edited")
	ErrEmptyQuery          = errors.New("search text is empty")
)
