package viewport

import (
	"fmt"
	"image"

	"github.com/JaimeStill/pdf-editor/internal/overlay"
	"github.com/JaimeStill/pdf-editor/internal/reconcile"
)

// Pages renders the pages of one loaded document.
type Pages interface {
	Render(page int, scale float64) (image.Image, error)
	Close() error
}

// Rasterizer turns document bytes into renderable pages.
type Rasterizer interface {
	Load(data []byte) (Pages, error)
}

// RasterizerFunc adapts a function to Rasterizer.
type RasterizerFunc func(data []byte) (Pages, error)

func (f RasterizerFunc) Load(data []byte) (Pages, error) { return f(data) }

// Session is the state of one loaded document. A new upload replaces the
// session wholesale.
type Session struct {
	Document reconcile.Document
	Page     int
	Zoom     float64
	Regions  *overlay.Model

	pages Pages
}

func newSession(doc reconcile.Document, pages Pages) *Session {
	return &Session{
		Document: doc,
		Zoom:     DefaultZoom,
		Regions:  overlay.NewModel(),
		pages:    pages,
	}
}

// PageCount returns the number of pages in the document.
func (s *Session) PageCount() int {
	return s.Document.PageCount
}

// PageSize returns the size of the current page in document units.
func (s *Session) PageSize() reconcile.PageSize {
	if s.Page < len(s.Document.Pages) {
		return s.Document.Pages[s.Page]
	}
	return reconcile.PageSize{}
}

func (s *Session) checkPage(page int) error {
	if page < 0 || page >= s.Document.PageCount {
		return fmt.Errorf("%w: %d (document has %d pages)", ErrPageOutOfRange, page+1, s.Document.PageCount)
	}
	return nil
}

func (s *Session) close() error {
	if s.pages == nil {
		return nil
	}
	return s.pages.Close()
}
