// Package storage provides blob storage for uploaded and transformed documents.
// The filesystem implementation maps keys to paths under a base directory.
package storage

import (
	"context"
	"errors"

	"github.com/JaimeStill/pdf-editor/internal/lifecycle"
)

var (
	ErrNotFound         = errors.New("storage: key not found")
	ErrPermissionDenied = errors.New("storage: permission denied")

	// ErrInvalidKey covers empty keys and keys that escape the base path.
	ErrInvalidKey = errors.New("storage: invalid key")
)

// System stores opaque blobs by key.
type System interface {
	// Store writes data at key, replacing any previous contents atomically.
	Store(ctx context.Context, key string, data []byte) error

	// Retrieve returns ErrNotFound when key does not exist.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete is idempotent.
	Delete(ctx context.Context, key string) error

	// Validate reports whether key exists.
	Validate(ctx context.Context, key string) (bool, error)

	// Path resolves key to a local file path for readers that need one.
	Path(ctx context.Context, key string) (string, error)

	Start(lc *lifecycle.Coordinator) error
}
