package reconcile

import "errors"

var (
	ErrNoDocument      = errors.New("no document loaded")
	ErrPending         = errors.New("region is awaiting confirmation from the service")
	ErrInvalidPage     = errors.New("page out of range")
	ErrInvalidRotation = errors.New("rotation must be 90, 180, or 270 degrees")
)
