// Package reconcile keeps the local region model consistent with the remote
// mutation service. Every mutation is applied locally first and then sent to
// the service; a rejected mutation is rolled back by re-fetching the affected
// page from the service.
package reconcile

import (
	"context"

	"github.com/JaimeStill/pdf-editor/internal/overlay"
	"github.com/JaimeStill/pdf-editor/pkg/geometry"
)

// PageSize is the size of a page in document units.
type PageSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Document describes an uploaded document as reported by the service.
// Pages holds one entry per page, in page order.
type Document struct {
	ID        string     `json:"id"`
	Filename  string     `json:"filename"`
	PageCount int        `json:"page_count"`
	Pages     []PageSize `json:"pages"`
}

// Insertion is a request to create a region.
type Insertion struct {
	Page       int
	Text       string
	Point      geometry.Point
	Attributes overlay.Attributes
}

// Font is a distinct font used in the document.
type Font struct {
	Name   string  `json:"name"`
	Size   float64 `json:"size"`
	Bold   bool    `json:"is_bold"`
	Italic bool    `json:"is_italic"`
}

// Service is the remote source of truth for document state.
type Service interface {
	Upload(ctx context.Context, filename string, data []byte) (*Document, error)
	Document(ctx context.Context, documentID string) (*Document, error)
	ListRegions(ctx context.Context, documentID string, page *int) ([]overlay.Region, error)
	SearchRegions(ctx context.Context, documentID, query string) ([]overlay.Region, error)
	ReplaceContent(ctx context.Context, documentID string, id overlay.ID, text string) error
	SetProperty(ctx context.Context, documentID string, id overlay.ID, change overlay.Change) error
	InsertRegion(ctx context.Context, documentID string, ins Insertion) (*overlay.Region, error)
	DeleteRegion(ctx context.Context, documentID string, id overlay.ID) error
	RotatePage(ctx context.Context, documentID string, page, degrees int) error
	MovePage(ctx context.Context, documentID string, from, to int) error
	Fonts(ctx context.Context, documentID string, page *int) ([]Font, error)
	Export(ctx context.Context, documentID string) ([]byte, error)
}
