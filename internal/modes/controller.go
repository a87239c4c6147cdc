package modes

import "fmt"

// Transition records a mode change.
type Transition struct {
	From Mode
	To   Mode
}

// Changed reports whether the transition moved to a different mode.
func (t Transition) Changed() bool {
	return t.From != t.To
}

// LeavesSelectEdit reports whether the transition exits SelectEdit, which
// discards any selection and uncommitted edit.
func (t Transition) LeavesSelectEdit() bool {
	return t.From == SelectEdit && t.To != SelectEdit
}

// Controller holds the active mode. The zero value starts in Navigate.
type Controller struct {
	mode Mode
}

// Mode returns the active mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Switch activates mode to and reports the transition. Switching to the
// active mode is a no-op transition.
func (c *Controller) Switch(to Mode) Transition {
	if to < Navigate || to > Rotate {
		panic(fmt.Sprintf("modes: unhandled mode %d", int(to)))
	}
	t := Transition{From: c.mode, To: to}
	c.mode = to
	return t
}

// Reset returns the controller to Navigate.
func (c *Controller) Reset() {
	c.mode = Navigate
}
