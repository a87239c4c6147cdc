// Package viewport coordinates a document editing session: page and zoom,
// gesture routing through the active mode, selection and edits, and the
// rendering of the visible page with its region overlays.
package viewport

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"strings"

	"github.com/JaimeStill/pdf-editor/internal/modes"
	"github.com/JaimeStill/pdf-editor/internal/overlay"
	"github.com/JaimeStill/pdf-editor/internal/reconcile"
	"github.com/JaimeStill/pdf-editor/internal/selection"
	"github.com/JaimeStill/pdf-editor/pkg/geometry"
)

// Config holds editor behavior settings.
type Config struct {
	InsertText    string
	MaxUploadSize int64
}

// Deps are the collaborators of an Editor.
type Deps struct {
	Service    reconcile.Service
	Rasterizer Rasterizer
	Executor   reconcile.Executor
	Notifier   reconcile.Notifier
	Presenter  Presenter
	Logger     *slog.Logger
}

// Editor is the viewport orchestrator. It owns the session and is driven
// entirely from one event loop: every exported method must be called on
// that loop, and every continuation scheduled through the executor runs
// there as well.
type Editor struct {
	cfg       Config
	svc       reconcile.Service
	raster    Rasterizer
	exec      reconcile.Executor
	notify    reconcile.Notifier
	presenter Presenter
	logger    *slog.Logger

	sync      *reconcile.Syncer
	modes     modes.Controller
	selection *selection.Controller
	session   *Session
	uploads   int

	bitmap       image.Image
	bitmapKey    renderKey
	renderingKey renderKey
	failedKey    renderKey
	rasterGen    int
}

func New(deps Deps, cfg Config) *Editor {
	if cfg.InsertText == "" {
		cfg.InsertText = "New text"
	}

	e := &Editor{
		cfg:       cfg,
		svc:       deps.Service,
		raster:    deps.Rasterizer,
		notify:    deps.Notifier,
		presenter: deps.Presenter,
		logger:    deps.Logger.With("system", "viewport"),
	}
	e.exec = redrawing{inner: deps.Executor, editor: e}
	e.sync = reconcile.New(deps.Service, e.exec, deps.Notifier, deps.Logger)
	e.selection = selection.New(overlay.NewModel(), e.sync, e, deps.Logger)
	return e
}

// redrawing presents a fresh frame after every continuation.
type redrawing struct {
	inner  reconcile.Executor
	editor *Editor
}

func (r redrawing) Execute(work func() func()) {
	r.inner.Execute(func() func() {
		next := work()
		return func() {
			if next != nil {
				next()
			}
			r.editor.Redraw()
		}
	})
}

// Session returns the active session, or nil before the first upload.
func (e *Editor) Session() *Session {
	return e.session
}

// Page returns the current page index.
func (e *Editor) Page() int {
	if e.session == nil {
		return 0
	}
	return e.session.Page
}

// Mode returns the active interaction mode.
func (e *Editor) Mode() modes.Mode {
	return e.modes.Mode()
}

// Selection returns the current selection and edit state.
func (e *Editor) Selection() selection.State {
	return e.selection.State()
}

// Pending returns the number of remote calls still in flight.
func (e *Editor) Pending() int {
	return e.sync.Pending()
}

// Upload validates data and sends it to the service. When the service
// accepts it, the previous session is discarded and replaced. Validation
// errors are returned before any state changes.
func (e *Editor) Upload(ctx context.Context, filename string, data []byte) error {
	if err := ValidateDocument(filename, data, e.cfg.MaxUploadSize); err != nil {
		return err
	}

	e.uploads++
	gen := e.uploads
	e.logger.Info("uploading document", "filename", filename, "bytes", len(data))

	e.exec.Execute(func() func() {
		doc, err := e.svc.Upload(ctx, filename, data)
		var pages Pages
		if err == nil {
			pages, err = e.raster.Load(data)
		}

		return func() {
			if gen != e.uploads {
				e.logger.Debug("dropping superseded upload", "filename", filename)
				if pages != nil {
					pages.Close()
				}
				return
			}
			if err != nil {
				e.fail(fmt.Sprintf("Could not open %s", filename), err)
				return
			}
			e.open(ctx, *doc, pages)
		}
	})
	return nil
}

func (e *Editor) open(ctx context.Context, doc reconcile.Document, pages Pages) {
	if e.session != nil {
		if err := e.session.close(); err != nil {
			e.logger.Warn("closing previous document failed", "error", err)
		}
	}

	e.session = newSession(doc, pages)
	e.modes.Reset()
	e.selection = selection.New(e.session.Regions, e.sync, e, e.logger)
	e.resetBitmap()

	e.sync.Bind(&e.session.Document, e.session.Regions)
	e.sync.SetHooks(reconcile.Hooks{
		Invalidated: func(int) { e.selection.Revalidate() },
		Confirmed:   func(provisional, confirmed overlay.ID) { e.selection.Rebind(provisional, confirmed) },
		Reloaded: func() {
			if e.session.Page >= e.session.PageCount() {
				e.session.Page = max(e.session.PageCount()-1, 0)
			}
			e.selection.Revalidate()
		},
		Restructured: func() { e.reloadPages(ctx) },
	})

	e.logger.Info("document opened", "document", doc.ID, "pages", doc.PageCount)
	e.info(fmt.Sprintf("Opened %s (%d pages)", doc.Filename, doc.PageCount))

	if err := e.sync.Reload(ctx); err != nil {
		e.fail("Could not load regions", err)
	}
}

func (e *Editor) reloadPages(ctx context.Context) {
	err := reconcile.SubmitOwned(e.sync, ctx, "reload pages",
		func(ctx context.Context, svc reconcile.Service, doc string) (Pages, error) {
			data, err := svc.Export(ctx, doc)
			if err != nil {
				return nil, err
			}
			return e.raster.Load(data)
		},
		func(pages Pages, err error) {
			if err != nil {
				e.fail("Could not reload the page images", err)
				return
			}
			if err := e.session.close(); err != nil {
				e.logger.Warn("closing stale pages failed", "error", err)
			}
			e.session.pages = pages
			e.resetBitmap()
		},
		func(pages Pages) {
			if pages == nil {
				return
			}
			if err := pages.Close(); err != nil {
				e.logger.Warn("closing superseded pages failed", "error", err)
			}
		},
	)
	if err != nil {
		e.logger.Debug("page reload skipped", "error", err)
	}
}

// GoToPage shows page n (zero-based). The selection is discarded.
func (e *Editor) GoToPage(ctx context.Context, n int) error {
	s, err := e.active()
	if err != nil {
		return err
	}
	if err := s.checkPage(n); err != nil {
		return err
	}
	if n == s.Page {
		return nil
	}

	e.selection.Discard()
	s.Page = n
	if !s.Regions.Loaded(n) {
		if err := e.sync.Refresh(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

func (e *Editor) NextPage(ctx context.Context) error {
	return e.GoToPage(ctx, e.Page()+1)
}

func (e *Editor) PrevPage(ctx context.Context) error {
	return e.GoToPage(ctx, e.Page()-1)
}

// SetZoom changes the zoom to one of ZoomLevels. The selection is discarded
// when the zoom changes.
func (e *Editor) SetZoom(z float64) error {
	s, err := e.active()
	if err != nil {
		return err
	}
	if err := ValidateZoom(z); err != nil {
		return err
	}
	if z != s.Zoom {
		e.selection.Discard()
		s.Zoom = z
	}
	return nil
}

func (e *Editor) ZoomIn() error {
	if e.session == nil {
		return ErrNoDocument
	}
	return e.SetZoom(ZoomIn(e.session.Zoom))
}

func (e *Editor) ZoomOut() error {
	if e.session == nil {
		return ErrNoDocument
	}
	return e.SetZoom(ZoomOut(e.session.Zoom))
}

func (e *Editor) ResetZoom() error {
	return e.SetZoom(DefaultZoom)
}

// SwitchMode activates mode m. Leaving select/edit mode discards the
// selection and any edit in progress without committing it.
func (e *Editor) SwitchMode(m modes.Mode) {
	t := e.modes.Switch(m)
	if t.LeavesSelectEdit() {
		e.selection.Discard()
	}
	if t.Changed() {
		e.logger.Debug("mode switched", "from", t.From, "to", t.To)
	}
}

// Click handles a single click at a screen point.
func (e *Editor) Click(ctx context.Context, p geometry.Point) error {
	return e.gesture(ctx, modes.Click, p)
}

// DoubleClick handles a double click at a screen point.
func (e *Editor) DoubleClick(ctx context.Context, p geometry.Point) error {
	return e.gesture(ctx, modes.DoubleClick, p)
}

func (e *Editor) gesture(ctx context.Context, g modes.Gesture, screen geometry.Point) error {
	s, err := e.active()
	if err != nil {
		return err
	}

	point := geometry.ToDocument(screen, s.Zoom)
	hit, found := s.Regions.At(s.Page, point)

	target := e.selection.State().EditTarget()
	if target != "" && (!found || hit.ID != target) {
		if err := e.selection.Commit(ctx); err != nil {
			e.fail("Could not save the text change", err)
		}
	}

	switch intent := modes.Interpret(e.modes.Mode(), g, point).(type) {
	case modes.None:
	case modes.SelectAt:
		switch {
		case !found:
			e.selection.ClearSelection()
		case hit.ID != target:
			e.selection.Select(hit.ID)
		}
	case modes.EditAt:
		if found {
			e.selection.BeginEdit(hit.ID)
		}
	case modes.InsertAt:
		_, err := e.sync.Insert(ctx, reconcile.Insertion{
			Page:       s.Page,
			Text:       e.cfg.InsertText,
			Point:      intent.Point,
			Attributes: overlay.DefaultAttributes(),
		})
		return err
	default:
		panic(fmt.Sprintf("viewport: unhandled intent %T", intent))
	}
	return nil
}

// Type replaces the edit buffer of the region under edit.
func (e *Editor) Type(text string) error {
	if !e.selection.SetBuffer(text) {
		return ErrNotEditing
	}
	return nil
}

// Save commits the edit in progress.
func (e *Editor) Save(ctx context.Context) error {
	if e.selection.State().EditTarget() == "" {
		return ErrNotEditing
	}
	return e.selection.Commit(ctx)
}

// Escape cancels the edit in progress, or clears the selection when nothing
// is being edited.
func (e *Editor) Escape() {
	if e.selection.State().Editing {
		e.selection.Cancel()
		return
	}
	e.selection.ClearSelection()
}

// SetProperty changes a presentation attribute of the selected region.
// The property is parsed before anything is sent, so read-only attributes
// never reach the service.
func (e *Editor) SetProperty(ctx context.Context, property, value string) error {
	change, err := overlay.ParseChange(property, value)
	if err != nil {
		return err
	}

	id := e.selection.State().Selected
	if id == "" {
		return ErrNoSelection
	}
	return e.selection.ChangeProperty(ctx, id, change)
}

// Delete removes the selected region.
func (e *Editor) Delete(ctx context.Context) error {
	if e.selection.State().Selected == "" {
		return ErrNoSelection
	}
	return e.selection.Delete(ctx)
}

// Rotate turns the current page clockwise by degrees and clears the
// selection.
func (e *Editor) Rotate(ctx context.Context, degrees int) error {
	s, err := e.active()
	if err != nil {
		return err
	}
	if err := e.sync.Rotate(ctx, s.Page, degrees); err != nil {
		return err
	}
	e.selection.Discard()
	return nil
}

// MovePage moves page from to position to (both zero-based). When the
// current page is moved, the view follows it.
func (e *Editor) MovePage(ctx context.Context, from, to int) error {
	s, err := e.active()
	if err != nil {
		return err
	}
	if err := e.sync.MovePage(ctx, from, to); err != nil {
		return err
	}
	e.selection.Discard()
	if s.Page == from {
		s.Page = to
	}
	return nil
}

// Find searches the document for query. The first match is shown and
// selected in select/edit mode.
func (e *Editor) Find(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return ErrEmptyQuery
	}

	return reconcile.Submit(e.sync, ctx, "search regions",
		func(ctx context.Context, svc reconcile.Service, doc string) ([]overlay.Region, error) {
			return svc.SearchRegions(ctx, doc, query)
		},
		func(matches []overlay.Region, err error) {
			if err != nil {
				e.fail("Search failed", err)
				return
			}
			if len(matches) == 0 {
				e.info(fmt.Sprintf("No matches for %q", query))
				return
			}

			first := matches[0]
			if err := e.GoToPage(ctx, first.Page); err != nil {
				e.fail("Could not show the match", err)
				return
			}
			e.SwitchMode(modes.SelectEdit)
			e.selection.Select(first.ID)
			e.info(fmt.Sprintf("%d matches for %q, showing page %d", len(matches), query, first.Page+1))
		},
	)
}

// Fonts lists the fonts used in the document and hands them to done.
func (e *Editor) Fonts(ctx context.Context, done func([]reconcile.Font)) error {
	return reconcile.Submit(e.sync, ctx, "list fonts",
		func(ctx context.Context, svc reconcile.Service, doc string) ([]reconcile.Font, error) {
			return svc.Fonts(ctx, doc, nil)
		},
		func(fonts []reconcile.Font, err error) {
			if err != nil {
				e.fail("Could not list fonts", err)
				return
			}
			done(fonts)
		},
	)
}

// Export downloads the document from the service and writes it to path.
func (e *Editor) Export(ctx context.Context, path string) error {
	return reconcile.Submit(e.sync, ctx, "export document",
		func(ctx context.Context, svc reconcile.Service, doc string) ([]byte, error) {
			return svc.Export(ctx, doc)
		},
		func(data []byte, err error) {
			if err == nil {
				err = os.WriteFile(path, data, 0o644)
			}
			if err != nil {
				e.fail("Export failed", err)
				return
			}
			e.info(fmt.Sprintf("Exported to %s", path))
		},
	)
}

// Close releases the rendering resources of the active session.
func (e *Editor) Close() error {
	e.sync.Unbind()
	if e.session == nil {
		return nil
	}
	return e.session.close()
}

func (e *Editor) active() (*Session, error) {
	if e.session == nil {
		return nil, ErrNoDocument
	}
	return e.session, nil
}

func (e *Editor) info(msg string) {
	if e.notify != nil {
		e.notify.Notify(reconcile.Notice{Level: slog.LevelInfo, Message: msg})
	}
}

func (e *Editor) fail(msg string, err error) {
	e.logger.Warn(msg, "error", err)
	if e.notify != nil {
		e.notify.Notify(reconcile.Notice{Level: slog.LevelError, Message: msg, Err: err})
	}
}
