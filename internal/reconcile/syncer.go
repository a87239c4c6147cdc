package reconcile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/pdf-editor/internal/overlay"
	"github.com/JaimeStill/pdf-editor/pkg/geometry"
)

// Hooks let the owner of the session react to model changes made by
// continuations. Nil hooks are skipped.
type Hooks struct {
	// Invalidated runs after the regions of page were dropped or replaced.
	Invalidated func(page int)
	// Confirmed runs when a provisional region is replaced by the region
	// the service created.
	Confirmed func(provisional, confirmed overlay.ID)
	// Reloaded runs after the document metadata and every page were re-fetched.
	Reloaded func()
	// Restructured runs after a structural mutation succeeds. The stored
	// document bytes changed and any rendering of them is stale.
	Restructured func()
}

// Syncer applies region mutations optimistically and reconciles them with
// the Service. All methods and every continuation run on the event loop.
type Syncer struct {
	svc    Service
	exec   Executor
	notify Notifier
	logger *slog.Logger
	hooks  Hooks

	doc     *Document
	model   *overlay.Model
	pending int
}

func New(svc Service, exec Executor, notify Notifier, logger *slog.Logger) *Syncer {
	return &Syncer{
		svc:    svc,
		exec:   exec,
		notify: notify,
		logger: logger.With("system", "reconcile"),
	}
}

func (s *Syncer) SetHooks(h Hooks) {
	s.hooks = h
}

// Bind points the syncer at a new document session. Responses to calls
// issued for a previously bound document are dropped when they arrive.
// Structural reconciliation updates doc in place.
func (s *Syncer) Bind(doc *Document, model *overlay.Model) {
	s.doc = doc
	s.model = model
}

// Unbind detaches the current session.
func (s *Syncer) Unbind() {
	s.doc = nil
	s.model = nil
}

// DocumentID returns the id of the bound document, or "" when none is bound.
func (s *Syncer) DocumentID() string {
	if s.doc == nil {
		return ""
	}
	return s.doc.ID
}

// Pending returns the number of remote calls whose continuation has not run.
func (s *Syncer) Pending() int {
	return s.pending
}

// Submit runs call through the executor on behalf of the bound document and
// hands the result to done on the event loop. If the bound document changed
// while the call was in flight, done is not called.
func Submit[T any](s *Syncer, ctx context.Context, op string, call func(ctx context.Context, svc Service, documentID string) (T, error), done func(T, error)) error {
	return SubmitOwned(s, ctx, op, call, done, nil)
}

// SubmitOwned is Submit for results that hold resources. A result that
// arrives for a document that is no longer bound is passed to release
// instead of being dropped.
func SubmitOwned[T any](s *Syncer, ctx context.Context, op string, call func(ctx context.Context, svc Service, documentID string) (T, error), done func(T, error), release func(T)) error {
	if s.doc == nil {
		return ErrNoDocument
	}

	doc := s.doc.ID
	s.pending++
	s.exec.Execute(func() func() {
		v, err := call(ctx, s.svc, doc)
		return func() {
			s.pending--
			if s.DocumentID() != doc {
				s.logger.Debug("dropping stale response", "op", op, "document", doc)
				if release != nil && err == nil {
					release(v)
				}
				return
			}
			done(v, err)
		}
	})
	return nil
}

// ReplaceContent sets the text of a region locally and on the service.
func (s *Syncer) ReplaceContent(ctx context.Context, id overlay.ID, text string) error {
	r, err := s.lookup(id)
	if err != nil {
		return err
	}

	if err := s.model.SetText(id, text); err != nil {
		return err
	}

	return Submit(s, ctx, "replace content",
		func(ctx context.Context, svc Service, doc string) (struct{}, error) {
			return struct{}{}, svc.ReplaceContent(ctx, doc, id, text)
		},
		func(_ struct{}, err error) {
			if err != nil {
				s.rollback(ctx, r.Page, "Could not save the text change", err)
			}
		},
	)
}

// SetProperty applies a property change locally and on the service.
func (s *Syncer) SetProperty(ctx context.Context, id overlay.ID, change overlay.Change) error {
	r, err := s.lookup(id)
	if err != nil {
		return err
	}

	if err := s.model.Apply(id, change); err != nil {
		return err
	}

	return Submit(s, ctx, "set property",
		func(ctx context.Context, svc Service, doc string) (struct{}, error) {
			return struct{}{}, svc.SetProperty(ctx, doc, id, change)
		},
		func(_ struct{}, err error) {
			if err != nil {
				s.rollback(ctx, r.Page, fmt.Sprintf("Could not change %s", change.Property()), err)
			}
		},
	)
}

// Insert places a provisional region at ins.Point and asks the service to
// create it. The provisional id is returned; once the service answers, the
// provisional region is replaced by the service's region.
func (s *Syncer) Insert(ctx context.Context, ins Insertion) (overlay.ID, error) {
	if s.doc == nil {
		return "", ErrNoDocument
	}
	if err := s.checkPage(ins.Page); err != nil {
		return "", err
	}

	provisional := overlay.Region{
		ID:         overlay.NewProvisionalID(),
		Page:       ins.Page,
		Rect:       geometry.TextBox(ins.Point, ins.Text, ins.Attributes.FontSize, float64(ins.Attributes.LineSpacing)),
		Text:       ins.Text,
		Modified:   true,
		Attributes: ins.Attributes,
	}
	if err := s.model.Put(provisional); err != nil {
		return "", err
	}

	err := Submit(s, ctx, "insert region",
		func(ctx context.Context, svc Service, doc string) (*overlay.Region, error) {
			return svc.InsertRegion(ctx, doc, ins)
		},
		func(created *overlay.Region, err error) {
			if err != nil {
				s.rollback(ctx, ins.Page, "Could not insert text", err)
				return
			}

			s.model.Remove(provisional.ID)
			if err := s.model.Put(*created); err != nil {
				s.rollback(ctx, ins.Page, "Service returned an unusable region", err)
				return
			}

			if s.hooks.Confirmed != nil {
				s.hooks.Confirmed(provisional.ID, created.ID)
			}
		},
	)
	return provisional.ID, err
}

// Delete removes a region locally and on the service.
func (s *Syncer) Delete(ctx context.Context, id overlay.ID) error {
	r, err := s.lookup(id)
	if err != nil {
		return err
	}

	s.model.Remove(id)

	return Submit(s, ctx, "delete region",
		func(ctx context.Context, svc Service, doc string) (struct{}, error) {
			return struct{}{}, svc.DeleteRegion(ctx, doc, id)
		},
		func(_ struct{}, err error) {
			if err != nil {
				s.rollback(ctx, r.Page, "Could not delete the region", err)
			}
		},
	)
}

// Rotate turns a page clockwise. Region geometry on the page is rotated
// locally; whatever the outcome, the page and the document metadata are
// re-fetched afterwards since the service re-derives page geometry from the
// rotated file.
func (s *Syncer) Rotate(ctx context.Context, page, degrees int) error {
	if s.doc == nil {
		return ErrNoDocument
	}
	if err := s.checkPage(page); err != nil {
		return err
	}
	switch degrees {
	case 90, 180, 270:
	default:
		return fmt.Errorf("%w: %d", ErrInvalidRotation, degrees)
	}

	if page < len(s.doc.Pages) {
		size := s.doc.Pages[page]
		rotated := s.model.Page(page)
		for i := range rotated {
			rotated[i].Rect = geometry.Rotate(rotated[i].Rect, size.Width, size.Height, degrees)
		}
		if err := s.model.ReplacePage(page, rotated); err != nil {
			return err
		}
		if degrees != 180 {
			s.doc.Pages[page] = PageSize{Width: size.Height, Height: size.Width}
		}
	} else {
		s.model.InvalidatePage(page)
	}
	s.invalidated(page)

	return Submit(s, ctx, "rotate page",
		func(ctx context.Context, svc Service, doc string) (struct{}, error) {
			return struct{}{}, svc.RotatePage(ctx, doc, page, degrees)
		},
		func(_ struct{}, err error) {
			if err != nil {
				s.fail("Could not rotate the page", err)
			} else if s.hooks.Restructured != nil {
				s.hooks.Restructured()
			}
			s.resync(ctx, page)
		},
	)
}

// MovePage moves the page at index from so that it ends up at index to.
// Every page between the two shifts, so their regions are dropped locally
// and the whole document is reloaded once the service answers.
func (s *Syncer) MovePage(ctx context.Context, from, to int) error {
	if s.doc == nil {
		return ErrNoDocument
	}
	if err := s.checkPage(from); err != nil {
		return err
	}
	if err := s.checkPage(to); err != nil {
		return err
	}
	if from == to {
		return nil
	}

	for p := min(from, to); p <= max(from, to); p++ {
		s.model.InvalidatePage(p)
		s.invalidated(p)
	}
	s.doc.Pages = movePage(s.doc.Pages, from, to)

	return Submit(s, ctx, "move page",
		func(ctx context.Context, svc Service, doc string) (struct{}, error) {
			return struct{}{}, svc.MovePage(ctx, doc, from, to)
		},
		func(_ struct{}, err error) {
			if err != nil {
				s.fail("Could not move the page", err)
			} else if s.hooks.Restructured != nil {
				s.hooks.Restructured()
			}
			s.Reload(ctx)
		},
	)
}

// Refresh re-fetches the regions of one page and replaces the local copy.
func (s *Syncer) Refresh(ctx context.Context, page int) error {
	return Submit(s, ctx, "list regions",
		func(ctx context.Context, svc Service, doc string) ([]overlay.Region, error) {
			return svc.ListRegions(ctx, doc, &page)
		},
		func(regions []overlay.Region, err error) {
			if err != nil {
				s.fail(fmt.Sprintf("Could not load page %d", page+1), err)
				return
			}
			s.replacePage(page, regions)
		},
	)
}

// Reload re-fetches the document metadata and the regions of every page.
func (s *Syncer) Reload(ctx context.Context) error {
	type snapshot struct {
		doc     *Document
		regions []overlay.Region
	}

	return Submit(s, ctx, "reload document",
		func(ctx context.Context, svc Service, id string) (snapshot, error) {
			doc, err := svc.Document(ctx, id)
			if err != nil {
				return snapshot{}, err
			}
			regions, err := svc.ListRegions(ctx, id, nil)
			return snapshot{doc: doc, regions: regions}, err
		},
		func(snap snapshot, err error) {
			if err != nil {
				s.fail("Could not reload the document", err)
				return
			}
			if err := s.model.Reset(snap.regions, snap.doc.PageCount); err != nil {
				s.fail("Service returned unusable regions", err)
				return
			}
			*s.doc = *snap.doc
			if s.hooks.Reloaded != nil {
				s.hooks.Reloaded()
			}
		},
	)
}

func (s *Syncer) resync(ctx context.Context, page int) {
	type snapshot struct {
		doc     *Document
		regions []overlay.Region
	}

	err := Submit(s, ctx, "resync page",
		func(ctx context.Context, svc Service, id string) (snapshot, error) {
			doc, err := svc.Document(ctx, id)
			if err != nil {
				return snapshot{}, err
			}
			regions, err := svc.ListRegions(ctx, id, &page)
			return snapshot{doc: doc, regions: regions}, err
		},
		func(snap snapshot, err error) {
			if err != nil {
				s.fail(fmt.Sprintf("Could not load page %d", page+1), err)
				return
			}
			*s.doc = *snap.doc
			s.replacePage(page, snap.regions)
		},
	)
	if err != nil {
		s.logger.Debug("resync skipped", "page", page, "error", err)
	}
}

func (s *Syncer) rollback(ctx context.Context, page int, msg string, err error) {
	s.fail(msg, err)
	if err := s.Refresh(ctx, page); err != nil {
		s.logger.Debug("rollback skipped", "page", page, "error", err)
	}
}

func (s *Syncer) fail(msg string, err error) {
	s.logger.Warn(msg, "document", s.DocumentID(), "error", err)
	if s.notify != nil {
		s.notify.Notify(Notice{Level: slog.LevelError, Message: msg, Err: err})
	}
}

func (s *Syncer) replacePage(page int, regions []overlay.Region) {
	if err := s.model.ReplacePage(page, regions); err != nil {
		s.fail(fmt.Sprintf("Service returned unusable regions for page %d", page+1), err)
		return
	}
	s.invalidated(page)
}

func (s *Syncer) invalidated(page int) {
	if s.hooks.Invalidated != nil {
		s.hooks.Invalidated(page)
	}
}

func (s *Syncer) lookup(id overlay.ID) (overlay.Region, error) {
	if s.doc == nil {
		return overlay.Region{}, ErrNoDocument
	}
	r, ok := s.model.Get(id)
	if !ok {
		return overlay.Region{}, fmt.Errorf("%w: %s", overlay.ErrNotFound, id)
	}
	if id.Provisional() {
		return overlay.Region{}, fmt.Errorf("%w: %s", ErrPending, id)
	}
	return r, nil
}

func (s *Syncer) checkPage(page int) error {
	if page < 0 || page >= s.doc.PageCount {
		return fmt.Errorf("%w: %d of %d", ErrInvalidPage, page, s.doc.PageCount)
	}
	return nil
}

func movePage(pages []PageSize, from, to int) []PageSize {
	if from >= len(pages) || to >= len(pages) {
		return pages
	}
	out := make([]PageSize, 0, len(pages))
	moved := pages[from]
	for i, p := range pages {
		if i == from {
			continue
		}
		out = append(out, p)
	}
	return append(out[:to], append([]PageSize{moved}, out[to:]...)...)
}
