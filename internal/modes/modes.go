// Package modes implements the interaction mode state machine and the
// interpretation of pointer gestures under each mode.
package modes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JaimeStill/pdf-editor/pkg/geometry"
)

// ErrUnknownMode is returned when parsing an unrecognized mode name.
var ErrUnknownMode = errors.New("unknown mode")

// Mode is the active interaction mode. Exactly one is active at a time.
type Mode int

const (
	Navigate Mode = iota
	SelectEdit
	Insert
	Reorder
	Rotate
)

// All lists every mode in declaration order.
var All = []Mode{Navigate, SelectEdit, Insert, Reorder, Rotate}

func (m Mode) String() string {
	switch m {
	case Navigate:
		return "navigate"
	case SelectEdit:
		return "select"
	case Insert:
		return "insert"
	case Reorder:
		return "reorder"
	case Rotate:
		return "rotate"
	default:
		panic(fmt.Sprintf("modes: unhandled mode %d", int(m)))
	}
}

// ParseMode resolves a mode by name. "edit" is accepted for SelectEdit.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "navigate", "nav":
		return Navigate, nil
	case "select", "edit", "selectedit":
		return SelectEdit, nil
	case "insert":
		return Insert, nil
	case "reorder":
		return Reorder, nil
	case "rotate":
		return Rotate, nil
	default:
		return Navigate, fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

// Gesture is a pointer gesture on the document surface.
type Gesture int

const (
	Click Gesture = iota
	DoubleClick
)

// Intent is what a gesture means under the active mode. The set of
// implementations is closed.
type Intent interface {
	intent()
}

// None means the gesture has no effect.
type None struct{}

// SelectAt selects the region under Point, or clears the selection when
// there is none.
type SelectAt struct{ Point geometry.Point }

// EditAt enters text editing on the region under Point.
type EditAt struct{ Point geometry.Point }

// InsertAt creates a new region with placeholder content at Point.
type InsertAt struct{ Point geometry.Point }

func (None) intent()     {}
func (SelectAt) intent() {}
func (EditAt) intent()   {}
func (InsertAt) intent() {}

// Interpret maps a gesture at document point p to its meaning under mode.
func Interpret(mode Mode, g Gesture, p geometry.Point) Intent {
	switch mode {
	case Navigate:
		return None{}
	case SelectEdit:
		if g == DoubleClick {
			return EditAt{Point: p}
		}
		return SelectAt{Point: p}
	case Insert:
		if g == Click {
			return InsertAt{Point: p}
		}
		return None{}
	case Reorder:
		// page reordering is a drag gesture, not a point gesture
		return None{}
	case Rotate:
		return None{}
	default:
		panic(fmt.Sprintf("modes: unhandled mode %d", int(mode)))
	}
}
