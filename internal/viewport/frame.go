package viewport

import (
	"image"

	"github.com/JaimeStill/pdf-editor/internal/modes"
	"github.com/JaimeStill/pdf-editor/internal/overlay"
	"github.com/JaimeStill/pdf-editor/pkg/geometry"
)

// Overlay is one region as drawn on screen.
type Overlay struct {
	ID        overlay.ID
	Rect      geometry.Rect
	Text      string
	FontSize  float64
	Alignment overlay.Alignment
	Modified  bool
	Selected  bool
	Editing   bool
	Pending   bool
}

// Frame describes the visible surface in screen coordinates.
type Frame struct {
	DocumentID string
	Filename   string
	Page       int
	PageCount  int
	Zoom       float64
	Mode       modes.Mode
	Width      float64
	Height     float64
	Overlays   []Overlay
}

// Presenter displays a rendered page together with its frame.
type Presenter interface {
	Present(page image.Image, f Frame) error
}

// Frame describes the current surface. It reports false when no document
// is loaded.
func (e *Editor) Frame() (Frame, bool) {
	s := e.session
	if s == nil {
		return Frame{}, false
	}

	size := s.PageSize()
	f := Frame{
		DocumentID: s.Document.ID,
		Filename:   s.Document.Filename,
		Page:       s.Page,
		PageCount:  s.PageCount(),
		Zoom:       s.Zoom,
		Mode:       e.modes.Mode(),
		Width:      size.Width * s.Zoom,
		Height:     size.Height * s.Zoom,
	}

	state := e.selection.State()
	for _, r := range s.Regions.Page(s.Page) {
		f.Overlays = append(f.Overlays, Overlay{
			ID:        r.ID,
			Rect:      geometry.ToScreen(r.Rect, s.Zoom),
			Text:      e.selection.Text(r),
			FontSize:  geometry.ScaleFontSize(r.FontSize, s.Zoom),
			Alignment: r.Alignment,
			Modified:  r.Modified,
			Selected:  state.Selected == r.ID,
			Editing:   state.EditTarget() == r.ID,
			Pending:   r.ID.Provisional(),
		})
	}
	return f, true
}

type renderKey struct {
	document string
	page     int
	zoom     float64
	gen      int
}

func (e *Editor) currentKey() renderKey {
	if e.session == nil {
		return renderKey{}
	}
	return renderKey{
		document: e.session.Document.ID,
		page:     e.session.Page,
		zoom:     e.session.Zoom,
		gen:      e.rasterGen,
	}
}

// Redraw presents the current frame. The page bitmap is rasterized off the
// loop when the page, zoom, or document bytes changed since the last render.
func (e *Editor) Redraw() {
	if e.session == nil || e.presenter == nil {
		return
	}

	key := e.currentKey()
	if e.bitmap != nil && e.bitmapKey == key {
		f, _ := e.Frame()
		if err := e.presenter.Present(e.bitmap, f); err != nil {
			e.logger.Error("present failed", "error", err)
		}
		return
	}
	if key == e.renderingKey || key == e.failedKey {
		return
	}

	pages := e.session.pages
	if pages == nil {
		return
	}

	e.renderingKey = key
	e.exec.Execute(func() func() {
		img, err := pages.Render(key.page, key.zoom)
		return func() {
			if e.renderingKey == key {
				e.renderingKey = renderKey{}
			}
			if e.currentKey() != key {
				return
			}
			if err != nil {
				e.failedKey = key
				e.fail("Could not render the page", err)
				return
			}
			e.bitmap = img
			e.bitmapKey = key
		}
	})
}

func (e *Editor) resetBitmap() {
	e.rasterGen++
	e.bitmap = nil
	e.bitmapKey = renderKey{}
	e.failedKey = renderKey{}
}
