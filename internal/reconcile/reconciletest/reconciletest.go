// Package reconciletest provides an in-memory Service and executors for
// testing code built on the reconcile package.
package reconciletest

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/JaimeStill/pdf-editor/internal/overlay"
	"github.com/JaimeStill/pdf-editor/internal/reconcile"
	"github.com/JaimeStill/pdf-editor/pkg/geometry"
)

// ErrRejected is a stock error for Fail entries.
var ErrRejected = errors.New("rejected by service")

var _ reconcile.Service = (*Service)(nil)

// Service is an in-memory reconcile.Service. Operations named in Fail
// return the mapped error without changing state. Every call is recorded in
// Calls by operation name.
type Service struct {
	Doc     reconcile.Document
	Regions map[overlay.ID]overlay.Region
	Fail    map[string]error
	Calls   []string

	serial  int
	uploads int
}

// NewService creates a two-page document holding regions. Every upload
// mints a new document id: doc-1, doc-2 and so on.
func NewService(regions ...overlay.Region) *Service {
	f := &Service{
		Doc: reconcile.Document{
			ID:        "doc-1",
			Filename:  "sample.pdf",
			PageCount: 2,
			Pages:     []reconcile.PageSize{{Width: 600, Height: 800}, {Width: 600, Height: 800}},
		},
		Regions: make(map[overlay.ID]overlay.Region),
		Fail:    make(map[string]error),
	}
	for _, r := range regions {
		f.Regions[r.ID] = r
	}
	return f
}

func (f *Service) record(op string) error {
	f.Calls = append(f.Calls, op)
	return f.Fail[op]
}

// Count returns how many times op was called.
func (f *Service) Count(op string) int {
	n := 0
	for _, c := range f.Calls {
		if c == op {
			n++
		}
	}
	return n
}

func (f *Service) Upload(_ context.Context, filename string, _ []byte) (*reconcile.Document, error) {
	if err := f.record("upload"); err != nil {
		return nil, err
	}
	f.uploads++
	f.Doc.ID = fmt.Sprintf("doc-%d", f.uploads)
	f.Doc.Filename = filename
	doc := f.Doc
	doc.Pages = slices.Clone(f.Doc.Pages)
	return &doc, nil
}

func (f *Service) Document(_ context.Context, id string) (*reconcile.Document, error) {
	if err := f.record("document"); err != nil {
		return nil, err
	}
	doc := f.Doc
	doc.ID = id
	doc.Pages = slices.Clone(f.Doc.Pages)
	return &doc, nil
}

func (f *Service) ListRegions(_ context.Context, _ string, page *int) ([]overlay.Region, error) {
	if err := f.record("list"); err != nil {
		return nil, err
	}
	var out []overlay.Region
	for _, id := range slices.Sorted(maps.Keys(f.Regions)) {
		r := f.Regions[id]
		if page == nil || r.Page == *page {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *Service) SearchRegions(_ context.Context, _ string, query string) ([]overlay.Region, error) {
	if err := f.record("search"); err != nil {
		return nil, err
	}
	var out []overlay.Region
	for _, id := range slices.Sorted(maps.Keys(f.Regions)) {
		if r := f.Regions[id]; strings.Contains(strings.ToLower(r.Text), strings.ToLower(query)) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *Service) ReplaceContent(_ context.Context, _ string, id overlay.ID, text string) error {
	if err := f.record("replace"); err != nil {
		return err
	}
	r := f.Regions[id]
	r.Text = text
	r.Modified = true
	f.Regions[id] = r
	return nil
}

func (f *Service) SetProperty(_ context.Context, _ string, id overlay.ID, change overlay.Change) error {
	if err := f.record("property"); err != nil {
		return err
	}
	r := f.Regions[id]
	c, err := overlay.ParseChange(string(change.Property()), change.Value())
	if err != nil {
		return err
	}
	m := overlay.NewModel()
	_ = m.Put(r)
	if err := m.Apply(id, c); err != nil {
		return err
	}
	f.Regions[id], _ = m.Get(id)
	return nil
}

func (f *Service) InsertRegion(_ context.Context, doc string, ins reconcile.Insertion) (*overlay.Region, error) {
	if err := f.record("insert"); err != nil {
		return nil, err
	}
	f.serial++
	r := overlay.Region{
		ID:         overlay.ID(fmt.Sprintf("%s-%d-new%d", doc, ins.Page, f.serial)),
		Page:       ins.Page,
		Rect:       geometry.TextBox(ins.Point, ins.Text, ins.Attributes.FontSize, float64(ins.Attributes.LineSpacing)),
		Text:       ins.Text,
		Modified:   true,
		Attributes: ins.Attributes,
	}
	f.Regions[r.ID] = r
	return &r, nil
}

func (f *Service) DeleteRegion(_ context.Context, _ string, id overlay.ID) error {
	if err := f.record("delete"); err != nil {
		return err
	}
	delete(f.Regions, id)
	return nil
}

func (f *Service) RotatePage(_ context.Context, doc string, page, degrees int) error {
	if err := f.record("rotate"); err != nil {
		return err
	}
	size := f.Doc.Pages[page]
	i := 0
	for _, id := range slices.Sorted(maps.Keys(f.Regions)) {
		r := f.Regions[id]
		if r.Page != page {
			continue
		}
		delete(f.Regions, id)
		r.ID = overlay.ID(fmt.Sprintf("%s-%d-r%d", doc, page, i))
		r.Rect = geometry.Rotate(r.Rect, size.Width, size.Height, degrees)
		f.Regions[r.ID] = r
		i++
	}
	if degrees != 180 {
		f.Doc.Pages[page] = reconcile.PageSize{Width: size.Height, Height: size.Width}
	}
	return nil
}

func (f *Service) MovePage(_ context.Context, _ string, from, to int) error {
	if err := f.record("move"); err != nil {
		return err
	}
	next := make(map[overlay.ID]overlay.Region, len(f.Regions))
	for _, r := range f.Regions {
		switch {
		case r.Page == from:
			r.Page = to
		case from < to && r.Page > from && r.Page <= to:
			r.Page--
		case to < from && r.Page >= to && r.Page < from:
			r.Page++
		}
		r.ID = overlay.ID(fmt.Sprintf("%s@%d", r.ID, r.Page))
		next[r.ID] = r
	}
	f.Regions = next
	return nil
}

func (f *Service) Fonts(context.Context, string, *int) ([]reconcile.Font, error) {
	if err := f.record("fonts"); err != nil {
		return nil, err
	}
	return []reconcile.Font{{Name: "Helvetica", Size: 12}}, nil
}

func (f *Service) Export(context.Context, string) ([]byte, error) {
	if err := f.record("export"); err != nil {
		return nil, err
	}
	return []byte("%PDF-1.7"), nil
}

// Queue is an executor that defers work until Drain is called, standing in
// for remote calls that are still in flight.
type Queue struct {
	work []func() func()
}

func (q *Queue) Execute(work func() func()) {
	q.work = append(q.work, work)
}

// Drain runs queued work and continuations in order until none remain.
func (q *Queue) Drain() {
	for len(q.work) > 0 {
		w := q.work[0]
		q.work = q.work[1:]
		if next := w(); next != nil {
			next()
		}
	}
}

// Notices records every notice it receives.
type Notices struct {
	Got []reconcile.Notice
}

func (n *Notices) Notify(notice reconcile.Notice) {
	n.Got = append(n.Got, notice)
}

// Region builds a 200x20 region with default attributes.
func Region(id string, page int, text string, left, top float64) overlay.Region {
	return overlay.Region{
		ID:         overlay.ID(id),
		Page:       page,
		Rect:       geometry.Rect{Left: left, Top: top, Right: left + 200, Bottom: top + 20},
		Text:       text,
		Attributes: overlay.DefaultAttributes(),
	}
}
