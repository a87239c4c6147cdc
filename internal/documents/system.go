package documents

import (
	"context"

	"github.com/JaimeStill/pdf-editor/pkg/pagination"
	"github.com/google/uuid"
)

// System defines the document operations.
// Implementations keep blob storage and database rows in step.
type System interface {
	Handler(maxUploadSize int64) *Handler
	List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Document], error)
	Find(ctx context.Context, id uuid.UUID) (*Document, error)
	Create(ctx context.Context, cmd CreateCommand) (*Document, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Rotate turns one page clockwise and carries its regions with it.
	Rotate(ctx context.Context, id uuid.UUID, page, degrees int) (*Document, error)

	// MovePage moves one page to a new index, shifting the pages between.
	MovePage(ctx context.Context, id uuid.UUID, from, to int) (*Document, error)

	// Export renders every modified region into a copy of the stored PDF.
	Export(ctx context.Context, id uuid.UUID) ([]byte, *Document, error)
}
