package viewport_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/pdf-editor/internal/modes"
	"github.com/JaimeStill/pdf-editor/internal/overlay"
	"github.com/JaimeStill/pdf-editor/internal/pdftest"
	"github.com/JaimeStill/pdf-editor/internal/reconcile"
	"github.com/JaimeStill/pdf-editor/internal/reconcile/reconciletest"
	"github.com/JaimeStill/pdf-editor/internal/selection"
	"github.com/JaimeStill/pdf-editor/internal/viewport"
	"github.com/JaimeStill/pdf-editor/pkg/geometry"
)

type pages struct {
	renders []float64
	closed  bool
}

func (p *pages) Render(page int, scale float64) (image.Image, error) {
	p.renders = append(p.renders, scale)
	return image.NewRGBA(image.Rect(0, 0, int(600*scale), int(800*scale))), nil
}

func (p *pages) Close() error {
	p.closed = true
	return nil
}

type presenter struct {
	frames []viewport.Frame
}

func (p *presenter) Present(_ image.Image, f viewport.Frame) error {
	p.frames = append(p.frames, f)
	return nil
}

type harness struct {
	editor    *viewport.Editor
	svc       *reconciletest.Service
	notices   *reconciletest.Notices
	presenter *presenter
	loaded    []*pages
}

func newHarness(exec reconcile.Executor, regions ...overlay.Region) *harness {
	h := &harness{
		svc:       reconciletest.NewService(regions...),
		notices:   &reconciletest.Notices{},
		presenter: &presenter{},
	}
	h.editor = viewport.New(viewport.Deps{
		Service: h.svc,
		Rasterizer: viewport.RasterizerFunc(func([]byte) (viewport.Pages, error) {
			p := &pages{}
			h.loaded = append(h.loaded, p)
			return p, nil
		}),
		Executor:  exec,
		Notifier:  h.notices,
		Presenter: h.presenter,
		Logger:    slog.New(slog.DiscardHandler),
	}, viewport.Config{})
	return h
}

func failures(n *reconciletest.Notices) []reconcile.Notice {
	var out []reconcile.Notice
	for _, notice := range n.Got {
		if notice.Level >= slog.LevelError {
			out = append(out, notice)
		}
	}
	return out
}

var samplePDF = pdftest.Build(pdftest.Letter("Hello"), pdftest.Letter("World"))

func open(t *testing.T, regions ...overlay.Region) *harness {
	t.Helper()

	h := newHarness(reconcile.Inline{}, regions...)
	if err := h.editor.Upload(context.Background(), "sample.pdf", samplePDF); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if h.editor.Session() == nil {
		t.Fatalf("no session after upload; notices = %v", h.notices.Got)
	}
	return h
}

func sampleRegions() []overlay.Region {
	return []overlay.Region{
		reconciletest.Region("r1", 0, "A", 100, 50),
		reconciletest.Region("r2", 0, "Second", 100, 150),
		reconciletest.Region("r3", 1, "World", 100, 50),
	}
}

func TestUpload_RejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
	}{
		{name: "wrong extension", filename: "notes.txt", data: samplePDF},
		{name: "missing header", filename: "fake.pdf", data: []byte("hello world")},
		{name: "corrupt body", filename: "broken.pdf", data: []byte("%PDF-1.4\nnot really a pdf")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(reconcile.Inline{})

			err := h.editor.Upload(context.Background(), tt.filename, tt.data)
			if !errors.Is(err, viewport.ErrUnsupportedDocument) {
				t.Fatalf("Upload() error = %v, want %v", err, viewport.ErrUnsupportedDocument)
			}
			if h.editor.Session() != nil {
				t.Error("session created for rejected upload")
			}
			if len(h.svc.Calls) != 0 {
				t.Errorf("service calls = %v, want none", h.svc.Calls)
			}
		})
	}
}

func TestValidateDocument_Size(t *testing.T) {
	err := viewport.ValidateDocument("sample.pdf", samplePDF, int64(len(samplePDF)-1))
	if !errors.Is(err, viewport.ErrUnsupportedDocument) {
		t.Errorf("ValidateDocument() error = %v, want %v", err, viewport.ErrUnsupportedDocument)
	}
	if err := viewport.ValidateDocument("SAMPLE.PDF", samplePDF, 0); err != nil {
		t.Errorf("ValidateDocument() error = %v, want nil", err)
	}
}

func TestUpload_ReplacesSession(t *testing.T) {
	h := open(t, sampleRegions()...)
	ctx := context.Background()

	h.editor.SwitchMode(modes.SelectEdit)
	if err := h.editor.Click(ctx, geometry.Point{X: 150, Y: 60}); err != nil {
		t.Fatalf("Click() error = %v", err)
	}
	h.editor.ZoomIn()
	first := h.editor.Session()

	if err := h.editor.Upload(ctx, "other.pdf", samplePDF); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	s := h.editor.Session()
	if s == first {
		t.Fatal("session was not replaced")
	}
	if s.Zoom != viewport.DefaultZoom || s.Page != 0 {
		t.Errorf("new session page %d zoom %v, want 0 and %v", s.Page, s.Zoom, viewport.DefaultZoom)
	}
	if h.editor.Selection() != (selection.State{}) {
		t.Errorf("selection carried over: %+v", h.editor.Selection())
	}
	if h.editor.Mode() != modes.Navigate {
		t.Errorf("Mode() = %v, want navigate", h.editor.Mode())
	}
	if !h.loaded[0].closed {
		t.Error("previous pages were not closed")
	}
	if s.Regions.Len() != 3 {
		t.Errorf("regions = %d, want 3", s.Regions.Len())
	}
}

func TestUpload_SupersededResponseDropped(t *testing.T) {
	q := &reconciletest.Queue{}
	h := newHarness(q)
	ctx := context.Background()

	if err := h.editor.Upload(ctx, "first.pdf", samplePDF); err != nil {
		t.Fatal(err)
	}
	if err := h.editor.Upload(ctx, "second.pdf", samplePDF); err != nil {
		t.Fatal(err)
	}
	q.Drain()

	s := h.editor.Session()
	if s == nil || s.Document.Filename != "second.pdf" {
		t.Fatalf("session = %+v, want second.pdf", s)
	}
	if !h.loaded[0].closed {
		t.Error("pages of the superseded upload were not closed")
	}
}

func TestUpload_ServiceFailure(t *testing.T) {
	h := newHarness(reconcile.Inline{})
	h.svc.Fail["upload"] = reconciletest.ErrRejected

	if err := h.editor.Upload(context.Background(), "sample.pdf", samplePDF); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if h.editor.Session() != nil {
		t.Error("session created for failed upload")
	}
	if len(h.notices.Got) != 1 || !errors.Is(h.notices.Got[0].Err, reconciletest.ErrRejected) {
		t.Errorf("notices = %v, want one upload failure", h.notices.Got)
	}
}

func TestZoom_ScreenGeometry(t *testing.T) {
	h := open(t, sampleRegions()...)
	ctx := context.Background()

	h.editor.ZoomIn()
	h.editor.ZoomIn()
	if z := h.editor.Session().Zoom; z != 1.5 {
		t.Fatalf("zoom = %v, want 1.5", z)
	}

	h.editor.SwitchMode(modes.SelectEdit)
	if err := h.editor.Click(ctx, geometry.Point{X: 160, Y: 90}); err != nil {
		t.Fatalf("Click() error = %v", err)
	}
	if got := h.editor.Selection().Selected; got != "r1" {
		t.Fatalf("selected = %q, want r1", got)
	}

	f, ok := h.editor.Frame()
	if !ok {
		t.Fatal("Frame() reported no document")
	}

	want := geometry.Rect{Left: 150, Top: 75, Right: 450, Bottom: 105}
	for _, o := range f.Overlays {
		if o.ID != "r1" {
			continue
		}
		if !geometry.ApproxEqual(o.Rect.Left, want.Left) || !geometry.ApproxEqual(o.Rect.Top, want.Top) ||
			!geometry.ApproxEqual(o.Rect.Right, want.Right) || !geometry.ApproxEqual(o.Rect.Bottom, want.Bottom) {
			t.Errorf("screen rect = %v, want %v", o.Rect, want)
		}
		if !o.Selected {
			t.Error("overlay not marked selected")
		}
		if o.FontSize != 18 {
			t.Errorf("overlay font size = %v, want 18", o.FontSize)
		}
		return
	}
	t.Fatal("r1 missing from frame")
}

func TestZoom_Bounds(t *testing.T) {
	h := open(t)

	for range 10 {
		h.editor.ZoomOut()
	}
	if z := h.editor.Session().Zoom; z != 0.5 {
		t.Errorf("zoom after zooming out = %v, want 0.5", z)
	}

	for range 10 {
		h.editor.ZoomIn()
	}
	if z := h.editor.Session().Zoom; z != 2.0 {
		t.Errorf("zoom after zooming in = %v, want 2", z)
	}

	h.editor.ResetZoom()
	if z := h.editor.Session().Zoom; z != 1.0 {
		t.Errorf("zoom after reset = %v, want 1", z)
	}

	if err := h.editor.SetZoom(0.6); !errors.Is(err, viewport.ErrInvalidZoom) {
		t.Errorf("SetZoom(0.6) error = %v, want %v", err, viewport.ErrInvalidZoom)
	}
}

func TestZoomLevels(t *testing.T) {
	tests := []struct {
		z       float64
		in, out float64
	}{
		{z: 0.5, in: 0.75, out: 0.5},
		{z: 1.0, in: 1.25, out: 0.75},
		{z: 2.0, in: 2.0, out: 1.75},
	}

	for _, tt := range tests {
		if got := viewport.ZoomIn(tt.z); got != tt.in {
			t.Errorf("ZoomIn(%v) = %v, want %v", tt.z, got, tt.in)
		}
		if got := viewport.ZoomOut(tt.z); got != tt.out {
			t.Errorf("ZoomOut(%v) = %v, want %v", tt.z, got, tt.out)
		}
	}
}

func TestPageNavigation(t *testing.T) {
	h := open(t, sampleRegions()...)
	ctx := context.Background()

	if err := h.editor.PrevPage(ctx); !errors.Is(err, viewport.ErrPageOutOfRange) {
		t.Errorf("PrevPage() on first page error = %v, want %v", err, viewport.ErrPageOutOfRange)
	}

	h.editor.SwitchMode(modes.SelectEdit)
	h.editor.DoubleClick(ctx, geometry.Point{X: 150, Y: 60})
	if h.editor.Selection().EditTarget() != "r1" {
		t.Fatalf("edit target = %q, want r1", h.editor.Selection().EditTarget())
	}

	if err := h.editor.NextPage(ctx); err != nil {
		t.Fatalf("NextPage() error = %v", err)
	}
	if h.editor.Page() != 1 {
		t.Errorf("Page() = %d, want 1", h.editor.Page())
	}
	if h.editor.Selection() != (selection.State{}) {
		t.Errorf("selection survived page change: %+v", h.editor.Selection())
	}
	if err := h.editor.NextPage(ctx); !errors.Is(err, viewport.ErrPageOutOfRange) {
		t.Errorf("NextPage() on last page error = %v, want %v", err, viewport.ErrPageOutOfRange)
	}
	if h.svc.Count("replace") != 0 {
		t.Error("page change committed the edit")
	}
}

func TestSwitchMode_DiscardsEdit(t *testing.T) {
	h := open(t, sampleRegions()...)
	ctx := context.Background()

	h.editor.SwitchMode(modes.SelectEdit)
	h.editor.DoubleClick(ctx, geometry.Point{X: 150, Y: 60})
	if err := h.editor.Type("B"); err != nil {
		t.Fatalf("Type() error = %v", err)
	}

	h.editor.SwitchMode(modes.Navigate)

	if h.editor.Selection() != (selection.State{}) {
		t.Errorf("selection = %+v, want zero", h.editor.Selection())
	}
	if h.svc.Count("replace") != 0 {
		t.Error("mode switch committed the edit")
	}
	if got := h.svc.Regions["r1"].Text; got != "A" {
		t.Errorf("remote text = %q, want A", got)
	}
	if r, _ := h.editor.Session().Regions.Get("r1"); r.Text != "A" {
		t.Errorf("local text = %q, want A", r.Text)
	}
}

func TestEdit_CommitOnSaveAndBlur(t *testing.T) {
	h := open(t, sampleRegions()...)
	ctx := context.Background()

	h.editor.SwitchMode(modes.SelectEdit)
	h.editor.DoubleClick(ctx, geometry.Point{X: 150, Y: 60})
	h.editor.Type("Saved")
	if err := h.editor.Save(ctx); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if got := h.svc.Regions["r1"].Text; got != "Saved" {
		t.Errorf("remote text after save = %q, want Saved", got)
	}
	if h.editor.Selection() != (selection.State{Selected: "r1"}) {
		t.Errorf("selection after save = %+v, want r1 selected", h.editor.Selection())
	}

	h.editor.DoubleClick(ctx, geometry.Point{X: 150, Y: 60})
	h.editor.Type("Blurred")
	h.editor.Click(ctx, geometry.Point{X: 150, Y: 160})

	if got := h.svc.Regions["r1"].Text; got != "Blurred" {
		t.Errorf("remote text after blur = %q, want Blurred", got)
	}
	if h.editor.Selection() != (selection.State{Selected: "r2"}) {
		t.Errorf("selection after blur = %+v, want r2 selected", h.editor.Selection())
	}
}

func TestEdit_ClickInsideKeepsEdit(t *testing.T) {
	h := open(t, sampleRegions()...)
	ctx := context.Background()

	h.editor.SwitchMode(modes.SelectEdit)
	h.editor.DoubleClick(ctx, geometry.Point{X: 150, Y: 60})
	h.editor.Type("typing")
	h.editor.Click(ctx, geometry.Point{X: 200, Y: 65})

	want := selection.State{Selected: "r1", Editing: true, Buffer: "typing"}
	if h.editor.Selection() != want {
		t.Errorf("selection = %+v, want %+v", h.editor.Selection(), want)
	}
}

func TestEscape(t *testing.T) {
	h := open(t, sampleRegions()...)
	ctx := context.Background()

	h.editor.SwitchMode(modes.SelectEdit)
	h.editor.DoubleClick(ctx, geometry.Point{X: 150, Y: 60})
	h.editor.Type("discard")

	h.editor.Escape()
	if h.editor.Selection() != (selection.State{Selected: "r1"}) {
		t.Errorf("after first escape = %+v, want r1 selected", h.editor.Selection())
	}

	h.editor.Escape()
	if h.editor.Selection() != (selection.State{}) {
		t.Errorf("after second escape = %+v, want zero", h.editor.Selection())
	}
	if h.svc.Count("replace") != 0 {
		t.Error("escape committed the edit")
	}
}

func TestRotate_RefetchesAndClearsSelection(t *testing.T) {
	h := open(t, sampleRegions()...)
	ctx := context.Background()

	h.editor.SwitchMode(modes.SelectEdit)
	h.editor.Click(ctx, geometry.Point{X: 150, Y: 60})
	lists := h.svc.Count("list")

	if err := h.editor.Rotate(ctx, 90); err != nil {
		t.Fatalf("Rotate() error = %v", err)
	}

	if h.editor.Selection() != (selection.State{}) {
		t.Errorf("selection = %+v, want zero", h.editor.Selection())
	}
	if h.svc.Count("list") != lists+1 {
		t.Errorf("list calls = %d, want %d", h.svc.Count("list"), lists+1)
	}

	regions := h.editor.Session().Regions
	if _, ok := regions.Get("r1"); ok {
		t.Error("pre-rotation region id still present")
	}
	if got := len(regions.Page(0)); got != 2 {
		t.Errorf("page 0 regions = %d, want 2", got)
	}
	if len(h.loaded) != 2 {
		t.Errorf("page images loaded %d times, want 2", len(h.loaded))
	}
	if size := h.editor.Session().PageSize(); size != (reconcile.PageSize{Width: 800, Height: 600}) {
		t.Errorf("page size = %+v, want 800x600", size)
	}
}

func TestRotate_InvalidDegrees(t *testing.T) {
	h := open(t, sampleRegions()...)

	if err := h.editor.Rotate(context.Background(), 45); !errors.Is(err, reconcile.ErrInvalidRotation) {
		t.Errorf("Rotate(45) error = %v, want %v", err, reconcile.ErrInvalidRotation)
	}
	if h.svc.Count("rotate") != 0 {
		t.Error("invalid rotation reached the service")
	}
}

func TestInsert_ContainsClickedPoint(t *testing.T) {
	h := open(t)
	ctx := context.Background()

	h.editor.SetZoom(2.0)
	h.editor.SwitchMode(modes.Insert)
	if err := h.editor.Click(ctx, geometry.Point{X: 400, Y: 600}); err != nil {
		t.Fatalf("Click() error = %v", err)
	}

	page := h.editor.Session().Regions.Page(0)
	if len(page) != 1 {
		t.Fatalf("page 0 regions = %d, want 1", len(page))
	}
	point := geometry.Point{X: 200, Y: 300}
	if !page[0].Rect.Contains(point) {
		t.Errorf("inserted rect %v does not contain %v", page[0].Rect, point)
	}
	if page[0].ID.Provisional() {
		t.Error("inserted region still provisional after confirmation")
	}
}

func TestInsert_EditFollowsConfirmation(t *testing.T) {
	q := &reconciletest.Queue{}
	h := newHarness(q)
	ctx := context.Background()

	if err := h.editor.Upload(ctx, "sample.pdf", samplePDF); err != nil {
		t.Fatal(err)
	}
	q.Drain()

	point := geometry.Point{X: 400, Y: 400}
	h.editor.SwitchMode(modes.Insert)
	if err := h.editor.Click(ctx, point); err != nil {
		t.Fatalf("Click() error = %v", err)
	}
	h.editor.SwitchMode(modes.SelectEdit)
	h.editor.DoubleClick(ctx, point)
	if err := h.editor.Type("typed while pending"); err != nil {
		t.Fatalf("Type() error = %v", err)
	}

	if err := h.editor.Save(ctx); !errors.Is(err, selection.ErrUnconfirmed) {
		t.Fatalf("Save() before confirmation error = %v, want %v", err, selection.ErrUnconfirmed)
	}

	q.Drain()

	state := h.editor.Selection()
	if state.Selected.Provisional() || !state.Editing || state.Buffer != "typed while pending" {
		t.Fatalf("selection after confirmation = %+v", state)
	}
	if _, ok := h.editor.Session().Regions.Get(state.Selected); !ok {
		t.Fatalf("selected region %s not in model", state.Selected)
	}

	if err := h.editor.Save(ctx); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	q.Drain()

	if h.svc.Count("replace") != 1 {
		t.Errorf("replace calls = %d, want 1", h.svc.Count("replace"))
	}
	if got := h.svc.Regions[state.Selected].Text; got != "typed while pending" {
		t.Errorf("remote text = %q, want typed while pending", got)
	}
}

func TestStaleMutation_AfterReupload(t *testing.T) {
	q := &reconciletest.Queue{}
	h := newHarness(q, sampleRegions()...)
	ctx := context.Background()

	if err := h.editor.Upload(ctx, "a.pdf", samplePDF); err != nil {
		t.Fatal(err)
	}
	q.Drain()

	h.editor.SwitchMode(modes.SelectEdit)
	h.editor.DoubleClick(ctx, geometry.Point{X: 150, Y: 60})
	h.editor.Type("late")

	if err := h.editor.Upload(ctx, "b.pdf", samplePDF); err != nil {
		t.Fatal(err)
	}
	if err := h.editor.Save(ctx); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	h.svc.Fail["replace"] = reconciletest.ErrRejected
	q.Drain()

	s := h.editor.Session()
	if s.Document.ID != "doc-2" || s.Document.Filename != "b.pdf" {
		t.Fatalf("session document = %+v, want doc-2 b.pdf", s.Document)
	}
	if h.svc.Count("replace") != 1 {
		t.Errorf("replace calls = %d, want 1", h.svc.Count("replace"))
	}
	if got := failures(h.notices); len(got) != 0 {
		t.Errorf("failure for the replaced document was reported: %v", got)
	}
	if h.editor.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", h.editor.Pending())
	}
}

func TestStalePageReload_ClosesPages(t *testing.T) {
	q := &reconciletest.Queue{}
	h := newHarness(q, sampleRegions()...)
	ctx := context.Background()

	if err := h.editor.Upload(ctx, "a.pdf", samplePDF); err != nil {
		t.Fatal(err)
	}
	q.Drain()

	if err := h.editor.Rotate(ctx, 90); err != nil {
		t.Fatalf("Rotate() error = %v", err)
	}
	if err := h.editor.Upload(ctx, "b.pdf", samplePDF); err != nil {
		t.Fatal(err)
	}
	q.Drain()

	s := h.editor.Session()
	if s.Document.ID != "doc-2" {
		t.Fatalf("session document = %q, want doc-2", s.Document.ID)
	}
	if h.svc.Count("export") != 1 {
		t.Fatalf("export calls = %d, want 1", h.svc.Count("export"))
	}
	if len(h.loaded) != 3 {
		t.Fatalf("loaded %d page handles, want 3", len(h.loaded))
	}
	for i, p := range h.loaded {
		if want := i != 1; p.closed != want {
			t.Errorf("page handle %d closed = %v, want %v", i, p.closed, want)
		}
	}
	if got := failures(h.notices); len(got) != 0 {
		t.Errorf("failures = %v, want none", got)
	}
}

func TestSetProperty(t *testing.T) {
	h := open(t, sampleRegions()...)
	ctx := context.Background()

	if err := h.editor.SetProperty(ctx, "font_size", "14"); !errors.Is(err, viewport.ErrNoSelection) {
		t.Errorf("SetProperty() without selection error = %v, want %v", err, viewport.ErrNoSelection)
	}

	h.editor.SwitchMode(modes.SelectEdit)
	h.editor.Click(ctx, geometry.Point{X: 150, Y: 60})

	if err := h.editor.SetProperty(ctx, "font_name", "Courier"); !errors.Is(err, overlay.ErrReadOnlyProperty) {
		t.Errorf("SetProperty(font_name) error = %v, want %v", err, overlay.ErrReadOnlyProperty)
	}
	if h.svc.Count("property") != 0 {
		t.Error("font family change reached the service")
	}

	if err := h.editor.SetProperty(ctx, "alignment", "center"); err != nil {
		t.Fatalf("SetProperty(alignment) error = %v", err)
	}
	if got := h.svc.Regions["r1"].Alignment; got != overlay.AlignCenter {
		t.Errorf("remote alignment = %q, want center", got)
	}
	if r, _ := h.editor.Session().Regions.Get("r1"); r.FontName != "Helvetica" {
		t.Errorf("font name changed to %q", r.FontName)
	}
}

func TestDelete(t *testing.T) {
	h := open(t, sampleRegions()...)
	ctx := context.Background()

	h.editor.SwitchMode(modes.SelectEdit)
	h.editor.Click(ctx, geometry.Point{X: 150, Y: 60})
	if err := h.editor.Delete(ctx); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok := h.editor.Session().Regions.Get("r1"); ok {
		t.Error("r1 still present locally")
	}
	if _, ok := h.svc.Regions["r1"]; ok {
		t.Error("r1 still present remotely")
	}
	if err := h.editor.Delete(ctx); !errors.Is(err, viewport.ErrNoSelection) {
		t.Errorf("second Delete() error = %v, want %v", err, viewport.ErrNoSelection)
	}
}

func TestMovePage_FollowsCurrentPage(t *testing.T) {
	h := open(t, sampleRegions()...)
	ctx := context.Background()

	if err := h.editor.MovePage(ctx, 0, 1); err != nil {
		t.Fatalf("MovePage() error = %v", err)
	}
	if h.editor.Page() != 1 {
		t.Errorf("Page() = %d, want 1", h.editor.Page())
	}
	if got := len(h.editor.Session().Regions.Page(1)); got != 2 {
		t.Errorf("page 1 regions = %d, want 2", got)
	}
}

func TestFind(t *testing.T) {
	h := open(t, sampleRegions()...)

	if err := h.editor.Find(context.Background(), "world"); err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if h.editor.Page() != 1 {
		t.Errorf("Page() = %d, want 1", h.editor.Page())
	}
	if h.editor.Mode() != modes.SelectEdit {
		t.Errorf("Mode() = %v, want select", h.editor.Mode())
	}
	if got := h.editor.Selection().Selected; got != "r3" {
		t.Errorf("selected = %q, want r3", got)
	}

	if err := h.editor.Find(context.Background(), "  "); !errors.Is(err, viewport.ErrEmptyQuery) {
		t.Errorf("Find(blank) error = %v, want %v", err, viewport.ErrEmptyQuery)
	}
}

func TestExport(t *testing.T) {
	h := open(t)
	path := filepath.Join(t.TempDir(), "out.pdf")

	if err := h.editor.Export(context.Background(), path); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("exported data = %q, want a PDF", data)
	}
}

func TestRedraw_PresentsFrames(t *testing.T) {
	h := open(t, sampleRegions()...)

	h.editor.ZoomIn()
	h.editor.Redraw()

	if len(h.presenter.frames) == 0 {
		t.Fatal("no frames presented")
	}
	last := h.presenter.frames[len(h.presenter.frames)-1]
	if last.Zoom != 1.25 || last.Width != 750 || last.Height != 1000 {
		t.Errorf("last frame zoom %v size %vx%v, want 1.25 and 750x1000", last.Zoom, last.Width, last.Height)
	}
	if len(last.Overlays) != 2 {
		t.Errorf("overlays = %d, want 2", len(last.Overlays))
	}

	renders := h.loaded[0].renders
	if len(renders) == 0 || renders[len(renders)-1] != 1.25 {
		t.Errorf("renders = %v, want last at 1.25", renders)
	}
}

func TestNoDocument(t *testing.T) {
	h := newHarness(reconcile.Inline{})
	ctx := context.Background()

	checks := map[string]error{
		"click":  h.editor.Click(ctx, geometry.Point{}),
		"zoom":   h.editor.ZoomIn(),
		"page":   h.editor.NextPage(ctx),
		"rotate": h.editor.Rotate(ctx, 90),
	}
	for name, err := range checks {
		if !errors.Is(err, viewport.ErrNoDocument) {
			t.Errorf("%s error = %v, want %v", name, err, viewport.ErrNoDocument)
		}
	}
	if _, ok := h.editor.Frame(); ok {
		t.Error("Frame() reported a document")
	}
}
