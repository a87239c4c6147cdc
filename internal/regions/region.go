// Package regions stores the editable text regions of uploaded documents and
// serves the region-level mutations of the service API.
package regions

import (
	"fmt"

	"github.com/JaimeStill/pdf-editor/internal/overlay"
	"github.com/JaimeStill/pdf-editor/pkg/geometry"
	"github.com/google/uuid"
)

// Draft is a region before it has been assigned an ordinal and id.
type Draft struct {
	Page       int
	Text       string
	Rect       geometry.Rect
	Modified   bool
	Attributes overlay.Attributes
}

// FromRegion drops the identity of r.
func FromRegion(r overlay.Region) Draft {
	return Draft{
		Page:       r.Page,
		Text:       r.Text,
		Rect:       r.Rect,
		Modified:   r.Modified,
		Attributes: r.Attributes,
	}
}

// InsertCommand creates a region whose top-left corner is at (X, Y).
// Zero presentation values fall back to the defaults.
type InsertCommand struct {
	Page        int     `json:"page"`
	Text        string  `json:"text"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	FontSize    float64 `json:"font_size,omitempty"`
	LineSpacing float64 `json:"line_spacing,omitempty"`
	Alignment   string  `json:"alignment,omitempty"`
}

// Attributes resolves the presentation attributes of the new region.
func (c InsertCommand) Attributes() (overlay.Attributes, error) {
	attrs := overlay.DefaultAttributes()
	if c.FontSize != 0 {
		attrs.FontSize = c.FontSize
	}
	if c.LineSpacing != 0 {
		attrs.LineSpacing = overlay.LineSpacing(c.LineSpacing)
	}
	if c.Alignment != "" {
		attrs.Alignment = overlay.Alignment(c.Alignment)
	}

	if !(attrs.FontSize > 0) {
		return attrs, fmt.Errorf("%w: font size %v", overlay.ErrInvalidValue, attrs.FontSize)
	}
	if err := attrs.LineSpacing.Validate(); err != nil {
		return attrs, err
	}
	if err := attrs.Alignment.Validate(); err != nil {
		return attrs, err
	}
	return attrs, nil
}

// Font is a distinct font in use by a document's regions.
type Font struct {
	Name   string  `json:"name"`
	Size   float64 `json:"size"`
	Bold   bool    `json:"is_bold"`
	Italic bool    `json:"is_italic"`
}

// NewID formats a region id. Ordinals are unique within a document and never
// reused, so an id survives page rotation and reordering.
func NewID(documentID uuid.UUID, ordinal int) overlay.ID {
	return overlay.ID(fmt.Sprintf("%s-r%d", documentID, ordinal))
}
