// Package selection tracks which region is selected and which, if any, is
// being edited. At most one region is editable at a time and the edit target
// is always the selected region.
package selection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/pdf-editor/internal/modes"
	"github.com/JaimeStill/pdf-editor/internal/overlay"
)

// ErrNoTarget is returned when an operation names a region that is not
// selectable on the current page.
var ErrNoTarget = errors.New("no such region on the current page")

// ErrUnconfirmed is returned when an edit is committed on a region the
// service has not created yet. The edit is kept.
var ErrUnconfirmed = errors.New("region is still being created")

// State is the selection and edit state. The zero value selects nothing.
type State struct {
	Selected overlay.ID
	Editing  bool
	Buffer   string
}

// Valid reports whether the state holds the selection/edit invariant.
func (s State) Valid() bool {
	return !s.Editing || s.Selected != ""
}

// EditTarget returns the region under edit, or "" when nothing is edited.
func (s State) EditTarget() overlay.ID {
	if !s.Editing {
		return ""
	}
	return s.Selected
}

// Committer pushes mutations to the synchronization layer.
type Committer interface {
	ReplaceContent(ctx context.Context, id overlay.ID, text string) error
	SetProperty(ctx context.Context, id overlay.ID, change overlay.Change) error
	Delete(ctx context.Context, id overlay.ID) error
}

// View exposes the parts of the session the controller depends on.
type View interface {
	Page() int
	Mode() modes.Mode
}

type Controller struct {
	regions *overlay.Model
	sync    Committer
	view    View
	logger  *slog.Logger
	state   State
}

func New(regions *overlay.Model, sync Committer, view View, logger *slog.Logger) *Controller {
	return &Controller{
		regions: regions,
		sync:    sync,
		view:    view,
		logger:  logger.With("system", "selection"),
	}
}

func (c *Controller) State() State {
	return c.state
}

// Text returns the text to display for r: the edit buffer while r is under
// edit, otherwise its stored text.
func (c *Controller) Text(r overlay.Region) string {
	if c.state.Editing && c.state.Selected == r.ID {
		return c.state.Buffer
	}
	return r.Text
}

// Select selects id. It is a no-op returning false unless id is a region on
// the current page and the controller is in select/edit mode. Any edit in
// progress is discarded.
func (c *Controller) Select(id overlay.ID) bool {
	if !c.selectable(id, "select") {
		return false
	}
	c.state = State{Selected: id}
	return true
}

// ClearSelection drops the selection and discards any edit in progress.
func (c *Controller) ClearSelection() {
	c.state = State{}
}

// BeginEdit starts editing id, selecting it first if needed. The buffer is
// initialized from the region's current text.
func (c *Controller) BeginEdit(id overlay.ID) bool {
	if !c.selectable(id, "edit") {
		return false
	}
	if c.state.Editing && c.state.Selected == id {
		return true
	}

	r, _ := c.regions.Get(id)
	c.state = State{Selected: id, Editing: true, Buffer: r.Text}
	return true
}

// SetBuffer replaces the edit buffer. It is a no-op returning false when
// nothing is under edit.
func (c *Controller) SetBuffer(text string) bool {
	if !c.state.Editing {
		c.logger.Debug("ignoring text outside of an edit")
		return false
	}
	c.state.Buffer = text
	return true
}

// Commit ends the edit and pushes the buffer as a content mutation. The
// selection is kept. An unchanged buffer ends the edit without a remote call.
func (c *Controller) Commit(ctx context.Context) error {
	if !c.state.Editing {
		return nil
	}

	id, text := c.state.Selected, c.state.Buffer
	if id.Provisional() {
		return fmt.Errorf("%w: %s", ErrUnconfirmed, id)
	}
	c.state = State{Selected: id}

	r, ok := c.regions.Get(id)
	if !ok {
		c.logger.Warn("edited region disappeared before commit", "region", id)
		c.state = State{}
		return fmt.Errorf("%w: %s", ErrNoTarget, id)
	}
	if r.Text == text {
		return nil
	}

	return c.sync.ReplaceContent(ctx, id, text)
}

// Cancel ends the edit without changing the region.
func (c *Controller) Cancel() {
	if c.state.Editing {
		c.state = State{Selected: c.state.Selected}
	}
}

// ChangeProperty applies change to id immediately through the
// synchronization layer. An edit in progress on id is kept.
func (c *Controller) ChangeProperty(ctx context.Context, id overlay.ID, change overlay.Change) error {
	if !c.regions.OnPage(id, c.view.Page()) {
		c.logger.Debug("ignoring property change", "region", id, "page", c.view.Page())
		return fmt.Errorf("%w: %s", ErrNoTarget, id)
	}
	return c.sync.SetProperty(ctx, id, change)
}

// Delete removes the selected region and clears the selection.
func (c *Controller) Delete(ctx context.Context) error {
	id := c.state.Selected
	if id == "" {
		return ErrNoTarget
	}

	c.state = State{}
	if !c.regions.OnPage(id, c.view.Page()) {
		return fmt.Errorf("%w: %s", ErrNoTarget, id)
	}
	return c.sync.Delete(ctx, id)
}

// Discard drops selection and edit without committing.
func (c *Controller) Discard() {
	if c.state.Editing {
		c.logger.Debug("discarding edit", "region", c.state.Selected)
	}
	c.state = State{}
}

// Rebind moves the selection, and any edit in progress, from a provisional
// region to the region the service created in its place.
func (c *Controller) Rebind(provisional, confirmed overlay.ID) {
	if provisional == "" || c.state.Selected != provisional {
		return
	}
	c.logger.Debug("selection follows confirmed region", "from", provisional, "to", confirmed)
	c.state.Selected = confirmed
}

// Revalidate drops the selection if the selected region is no longer on the
// current page, which happens after the page is re-fetched.
func (c *Controller) Revalidate() {
	if c.state.Selected != "" && !c.regions.OnPage(c.state.Selected, c.view.Page()) {
		c.Discard()
	}
}

func (c *Controller) selectable(id overlay.ID, op string) bool {
	if c.view.Mode() != modes.SelectEdit {
		c.logger.Debug("ignoring "+op+" outside select mode", "region", id, "mode", c.view.Mode())
		return false
	}
	if !c.regions.OnPage(id, c.view.Page()) {
		c.logger.Debug("ignoring "+op+" of region not on current page", "region", id, "page", c.view.Page())
		return false
	}
	return true
}
