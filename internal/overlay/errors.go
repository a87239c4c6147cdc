package overlay

import "errors"

var (
	ErrNotFound         = errors.New("region not found")
	ErrInvalidRegion    = errors.New("invalid region")
	ErrPageReassignment = errors.New("region page association is immutable")
	ErrReadOnlyProperty = errors.New("property is read-only")
	ErrUnknownProperty  = errors.New("unknown property")
	ErrInvalidValue     = errors.New("invalid property value")
)
