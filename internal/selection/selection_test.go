package selection_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/JaimeStill/pdf-editor/internal/modes"
	"github.com/JaimeStill/pdf-editor/internal/overlay"
	"github.com/JaimeStill/pdf-editor/internal/selection"
	"github.com/JaimeStill/pdf-editor/pkg/geometry"
)

type view struct {
	page int
	mode modes.Mode
}

func (v *view) Page() int        { return v.page }
func (v *view) Mode() modes.Mode { return v.mode }

type call struct {
	op    string
	id    overlay.ID
	value string
}

type committer struct {
	calls []call
	err   error
}

func (c *committer) ReplaceContent(_ context.Context, id overlay.ID, text string) error {
	c.calls = append(c.calls, call{"replace", id, text})
	return c.err
}

func (c *committer) SetProperty(_ context.Context, id overlay.ID, change overlay.Change) error {
	c.calls = append(c.calls, call{"property", id, change.Value()})
	return c.err
}

func (c *committer) Delete(_ context.Context, id overlay.ID) error {
	c.calls = append(c.calls, call{"delete", id, ""})
	return c.err
}

func setup(t *testing.T) (*selection.Controller, *view, *committer) {
	t.Helper()

	model := overlay.NewModel()
	for _, r := range []overlay.Region{
		{ID: "a", Page: 0, Rect: geometry.Rect{Left: 0, Top: 0, Right: 10, Bottom: 10}, Text: "alpha", Attributes: overlay.DefaultAttributes()},
		{ID: "b", Page: 0, Rect: geometry.Rect{Left: 0, Top: 20, Right: 10, Bottom: 30}, Text: "beta", Attributes: overlay.DefaultAttributes()},
		{ID: "c", Page: 1, Rect: geometry.Rect{Left: 0, Top: 0, Right: 10, Bottom: 10}, Text: "gamma", Attributes: overlay.DefaultAttributes()},
	} {
		if err := model.Put(r); err != nil {
			t.Fatalf("Put(%s) error = %v", r.ID, err)
		}
	}

	v := &view{mode: modes.SelectEdit}
	c := &committer{}
	return selection.New(model, c, v, slog.New(slog.DiscardHandler)), v, c
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name string
		mode modes.Mode
		id   overlay.ID
		want bool
	}{
		{name: "region on page", mode: modes.SelectEdit, id: "a", want: true},
		{name: "region on other page", mode: modes.SelectEdit, id: "c", want: false},
		{name: "unknown region", mode: modes.SelectEdit, id: "zzz", want: false},
		{name: "navigate mode", mode: modes.Navigate, id: "a", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctl, v, _ := setup(t)
			v.mode = tt.mode

			if got := ctl.Select(tt.id); got != tt.want {
				t.Errorf("Select(%q) = %v, want %v", tt.id, got, tt.want)
			}

			want := selection.State{}
			if tt.want {
				want.Selected = tt.id
			}
			if ctl.State() != want {
				t.Errorf("State() = %+v, want %+v", ctl.State(), want)
			}
		})
	}
}

func TestSelect_DiscardsEdit(t *testing.T) {
	ctl, _, c := setup(t)

	ctl.BeginEdit("a")
	ctl.SetBuffer("changed")
	ctl.Select("b")

	if got := ctl.State(); got != (selection.State{Selected: "b"}) {
		t.Errorf("State() = %+v, want only b selected", got)
	}
	if len(c.calls) != 0 {
		t.Errorf("calls = %v, want none", c.calls)
	}
}

func TestBeginEdit(t *testing.T) {
	ctl, _, _ := setup(t)

	if !ctl.BeginEdit("b") {
		t.Fatal("BeginEdit(b) = false")
	}

	want := selection.State{Selected: "b", Editing: true, Buffer: "beta"}
	if ctl.State() != want {
		t.Errorf("State() = %+v, want %+v", ctl.State(), want)
	}
	if ctl.State().EditTarget() != "b" {
		t.Errorf("EditTarget() = %q, want b", ctl.State().EditTarget())
	}

	ctl.SetBuffer("beta two")
	if !ctl.BeginEdit("b") || ctl.State().Buffer != "beta two" {
		t.Errorf("repeated BeginEdit reset the buffer to %q", ctl.State().Buffer)
	}
}

func TestBeginEdit_RequiresSelectMode(t *testing.T) {
	ctl, v, _ := setup(t)
	v.mode = modes.Insert

	if ctl.BeginEdit("a") {
		t.Error("BeginEdit succeeded in insert mode")
	}
	if ctl.State() != (selection.State{}) {
		t.Errorf("State() = %+v, want zero", ctl.State())
	}
}

func TestCommit(t *testing.T) {
	tests := []struct {
		name      string
		buffer    string
		wantCalls int
	}{
		{name: "changed buffer", buffer: "alpha!", wantCalls: 1},
		{name: "unchanged buffer", buffer: "alpha", wantCalls: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctl, _, c := setup(t)

			ctl.BeginEdit("a")
			ctl.SetBuffer(tt.buffer)
			if err := ctl.Commit(context.Background()); err != nil {
				t.Fatalf("Commit() error = %v", err)
			}

			if len(c.calls) != tt.wantCalls {
				t.Fatalf("calls = %v, want %d", c.calls, tt.wantCalls)
			}
			if tt.wantCalls == 1 && c.calls[0] != (call{"replace", "a", tt.buffer}) {
				t.Errorf("call = %+v", c.calls[0])
			}
			if got := ctl.State(); got != (selection.State{Selected: "a"}) {
				t.Errorf("State() after commit = %+v, want a selected", got)
			}
		})
	}
}

func TestCommit_NotEditing(t *testing.T) {
	ctl, _, c := setup(t)
	ctl.Select("a")

	if err := ctl.Commit(context.Background()); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if len(c.calls) != 0 {
		t.Errorf("calls = %v, want none", c.calls)
	}
}

func TestCommit_PropagatesError(t *testing.T) {
	ctl, _, c := setup(t)
	c.err = errors.New("boom")

	ctl.BeginEdit("a")
	ctl.SetBuffer("x")
	if err := ctl.Commit(context.Background()); !errors.Is(err, c.err) {
		t.Errorf("Commit() error = %v, want %v", err, c.err)
	}
	if ctl.State().Editing {
		t.Error("still editing after commit")
	}
}

func TestCommit_Unconfirmed(t *testing.T) {
	model := overlay.NewModel()
	pending := overlay.Region{
		ID:         overlay.NewProvisionalID(),
		Rect:       geometry.Rect{Left: 0, Top: 0, Right: 10, Bottom: 10},
		Text:       "New text",
		Attributes: overlay.DefaultAttributes(),
	}
	if err := model.Put(pending); err != nil {
		t.Fatal(err)
	}
	c := &committer{}
	ctl := selection.New(model, c, &view{mode: modes.SelectEdit}, slog.New(slog.DiscardHandler))

	ctl.BeginEdit(pending.ID)
	ctl.SetBuffer("typed early")
	if err := ctl.Commit(context.Background()); !errors.Is(err, selection.ErrUnconfirmed) {
		t.Fatalf("Commit() error = %v, want %v", err, selection.ErrUnconfirmed)
	}

	want := selection.State{Selected: pending.ID, Editing: true, Buffer: "typed early"}
	if ctl.State() != want {
		t.Errorf("State() = %+v, want %+v", ctl.State(), want)
	}
	if len(c.calls) != 0 {
		t.Errorf("calls = %v, want none", c.calls)
	}
}

func TestCommit_MissingRegion(t *testing.T) {
	model := overlay.NewModel()
	r := overlay.Region{ID: "a", Rect: geometry.Rect{Right: 10, Bottom: 10}, Text: "alpha", Attributes: overlay.DefaultAttributes()}
	if err := model.Put(r); err != nil {
		t.Fatal(err)
	}
	c := &committer{}
	ctl := selection.New(model, c, &view{mode: modes.SelectEdit}, slog.New(slog.DiscardHandler))

	ctl.BeginEdit("a")
	ctl.SetBuffer("lost?")
	model.Remove("a")

	if err := ctl.Commit(context.Background()); !errors.Is(err, selection.ErrNoTarget) {
		t.Errorf("Commit() error = %v, want %v", err, selection.ErrNoTarget)
	}
	if ctl.State() != (selection.State{}) {
		t.Errorf("State() = %+v, want zero", ctl.State())
	}
}

func TestRebind(t *testing.T) {
	ctl, _, _ := setup(t)

	ctl.BeginEdit("a")
	ctl.SetBuffer("kept")

	ctl.Rebind("b", "z")
	if ctl.State().Selected != "a" {
		t.Fatalf("Rebind of another region moved the selection: %+v", ctl.State())
	}

	ctl.Rebind("a", "b")
	want := selection.State{Selected: "b", Editing: true, Buffer: "kept"}
	if ctl.State() != want {
		t.Errorf("State() = %+v, want %+v", ctl.State(), want)
	}
}

func TestCancel(t *testing.T) {
	ctl, _, c := setup(t)

	ctl.BeginEdit("a")
	ctl.SetBuffer("discard me")
	ctl.Cancel()

	if got := ctl.State(); got != (selection.State{Selected: "a"}) {
		t.Errorf("State() = %+v, want a selected", got)
	}
	if len(c.calls) != 0 {
		t.Errorf("calls = %v, want none", c.calls)
	}
}

func TestSetBuffer_NotEditing(t *testing.T) {
	ctl, _, _ := setup(t)
	ctl.Select("a")

	if ctl.SetBuffer("x") {
		t.Error("SetBuffer succeeded without an edit")
	}
}

func TestText(t *testing.T) {
	ctl, _, _ := setup(t)
	a := overlay.Region{ID: "a", Text: "alpha"}
	b := overlay.Region{ID: "b", Text: "beta"}

	ctl.BeginEdit("a")
	ctl.SetBuffer("typed")

	if got := ctl.Text(a); got != "typed" {
		t.Errorf("Text(a) = %q, want typed", got)
	}
	if got := ctl.Text(b); got != "beta" {
		t.Errorf("Text(b) = %q, want beta", got)
	}
}

func TestChangeProperty(t *testing.T) {
	ctl, _, c := setup(t)

	if err := ctl.ChangeProperty(context.Background(), "a", overlay.AlignmentChange(overlay.AlignCenter)); err != nil {
		t.Fatalf("ChangeProperty(a) error = %v", err)
	}
	if err := ctl.ChangeProperty(context.Background(), "c", overlay.FontSize(20)); !errors.Is(err, selection.ErrNoTarget) {
		t.Errorf("ChangeProperty(c) error = %v, want %v", err, selection.ErrNoTarget)
	}

	want := []call{{"property", "a", "center"}}
	if len(c.calls) != 1 || c.calls[0] != want[0] {
		t.Errorf("calls = %v, want %v", c.calls, want)
	}
}

func TestDelete(t *testing.T) {
	ctl, _, c := setup(t)

	if err := ctl.Delete(context.Background()); !errors.Is(err, selection.ErrNoTarget) {
		t.Errorf("Delete() without selection error = %v, want %v", err, selection.ErrNoTarget)
	}

	ctl.BeginEdit("b")
	if err := ctl.Delete(context.Background()); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if ctl.State() != (selection.State{}) {
		t.Errorf("State() = %+v, want zero", ctl.State())
	}
	if len(c.calls) != 1 || c.calls[0] != (call{"delete", "b", ""}) {
		t.Errorf("calls = %v", c.calls)
	}
}

func TestRevalidate(t *testing.T) {
	ctl, v, _ := setup(t)
	ctl.BeginEdit("a")

	ctl.Revalidate()
	if ctl.State().Selected != "a" {
		t.Fatalf("Revalidate dropped a valid selection")
	}

	v.page = 1
	ctl.Revalidate()
	if ctl.State() != (selection.State{}) {
		t.Errorf("State() = %+v, want zero after page change", ctl.State())
	}
}

func TestState_Invariant(t *testing.T) {
	ctl, v, _ := setup(t)

	steps := []func(){
		func() { ctl.Select("a") },
		func() { ctl.BeginEdit("b") },
		func() { ctl.SetBuffer("x") },
		func() { ctl.Select("zzz") },
		func() { ctl.Cancel() },
		func() { ctl.BeginEdit("a") },
		func() { v.mode = modes.Navigate; ctl.Discard() },
		func() { ctl.BeginEdit("a") },
		func() { v.mode = modes.SelectEdit; ctl.BeginEdit("c") },
		func() { _ = ctl.Commit(context.Background()) },
	}

	for i, step := range steps {
		step()
		s := ctl.State()
		if !s.Valid() {
			t.Fatalf("step %d: invalid state %+v", i, s)
		}
		if s.EditTarget() != "" && s.EditTarget() != s.Selected {
			t.Fatalf("step %d: edit target %q differs from selection %q", i, s.EditTarget(), s.Selected)
		}
	}
}
