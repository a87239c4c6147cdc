package regions

import (
	"context"

	"github.com/JaimeStill/pdf-editor/internal/overlay"
	"github.com/google/uuid"
)

// System defines the region operations of the mutation service.
type System interface {
	Handler() *Handler

	// List returns the regions of a document, limited to one page when page is non-nil.
	List(ctx context.Context, documentID uuid.UUID, page *int) ([]overlay.Region, error)
	Search(ctx context.Context, documentID uuid.UUID, query string) ([]overlay.Region, error)
	ReplaceContent(ctx context.Context, documentID uuid.UUID, id overlay.ID, text string) (*overlay.Region, error)
	SetProperty(ctx context.Context, documentID uuid.UUID, id overlay.ID, property, value string) (*overlay.Region, error)
	Insert(ctx context.Context, documentID uuid.UUID, cmd InsertCommand) (*overlay.Region, error)
	Delete(ctx context.Context, documentID uuid.UUID, id overlay.ID) error
	Fonts(ctx context.Context, documentID uuid.UUID, page *int) ([]Font, error)
}
