// Package overlay holds the in-memory model of the editable regions laid over
// the rendered pages of the loaded document.
package overlay

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/pdf-editor/pkg/geometry"
	"github.com/google/uuid"
)

// ProvisionalPrefix marks identifiers minted locally for optimistic inserts
// that the service has not yet acknowledged.
const ProvisionalPrefix = "local-"

// ID identifies a region within a document. Its contents are owned by the
// service and must be treated as opaque.
type ID string

// NewProvisionalID mints an identifier for a region that exists only locally.
func NewProvisionalID() ID {
	return ID(ProvisionalPrefix + uuid.NewString())
}

// Provisional reports whether the id was minted locally.
func (id ID) Provisional() bool {
	return strings.HasPrefix(string(id), ProvisionalPrefix)
}

// Attributes are the presentation attributes of a region. FontName, Bold and
// Italic reflect the source document and are never changed by the client.
type Attributes struct {
	FontName    string      `json:"font_name"`
	FontSize    float64     `json:"font_size"`
	LineSpacing LineSpacing `json:"line_spacing"`
	Alignment   Alignment   `json:"alignment"`
	Bold        bool        `json:"is_bold"`
	Italic      bool        `json:"is_italic"`
}

// DefaultAttributes are applied to regions created by the insert gesture.
func DefaultAttributes() Attributes {
	return Attributes{
		FontName:    "Helvetica",
		FontSize:    12,
		LineSpacing: SpacingSingle,
		Alignment:   AlignStart,
	}
}

// Region is one editable unit of content on one page. Modified is set once
// the text no longer matches what the source document draws.
type Region struct {
	ID       ID
	Page     int
	Rect     geometry.Rect
	Text     string
	Modified bool
	Attributes
}

// Validate checks the region invariants.
func (r Region) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidRegion)
	}
	if r.Page < 0 {
		return fmt.Errorf("%w: page %d is negative", ErrInvalidRegion, r.Page)
	}
	if !r.Rect.Valid() {
		return fmt.Errorf("%w: rect %s has inverted edges", ErrInvalidRegion, r.Rect)
	}
	if !(r.FontSize > 0) {
		return fmt.Errorf("%w: font size must be positive", ErrInvalidRegion)
	}
	if err := r.LineSpacing.Validate(); err != nil {
		return err
	}
	return r.Alignment.Validate()
}
