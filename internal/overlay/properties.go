package overlay

import (
	"fmt"
	"strconv"
	"strings"
)

// Alignment is the horizontal alignment of text within a region.
type Alignment string

const (
	AlignStart     Alignment = "start"
	AlignCenter    Alignment = "center"
	AlignEnd       Alignment = "end"
	AlignJustified Alignment = "justified"
)

// Validate checks that the alignment is one of the supported values.
func (a Alignment) Validate() error {
	switch a {
	case AlignStart, AlignCenter, AlignEnd, AlignJustified:
		return nil
	default:
		return fmt.Errorf("%w: alignment %q (must be start, center, end, or justified)", ErrInvalidValue, a)
	}
}

// LineSpacing is a line height multiplier restricted to a small fixed set.
type LineSpacing float64

const (
	SpacingSingle      LineSpacing = 1.0
	SpacingComfortable LineSpacing = 1.15
	SpacingOneAndHalf  LineSpacing = 1.5
	SpacingDouble      LineSpacing = 2.0
)

// LineSpacings lists the supported spacing values in ascending order.
var LineSpacings = []LineSpacing{SpacingSingle, SpacingComfortable, SpacingOneAndHalf, SpacingDouble}

// Validate checks that the spacing is one of LineSpacings.
func (s LineSpacing) Validate() error {
	for _, v := range LineSpacings {
		if s == v {
			return nil
		}
	}
	return fmt.Errorf("%w: line spacing %v (must be 1, 1.15, 1.5, or 2)", ErrInvalidValue, float64(s))
}

// Property names a presentation attribute as it appears on the wire.
type Property string

const (
	PropertyFontName    Property = "font_name"
	PropertyFontSize    Property = "font_size"
	PropertyLineSpacing Property = "line_spacing"
	PropertyAlignment   Property = "alignment"
)

// Change is a mutation of a single mutable presentation attribute.
// The set of implementations is closed; font family has none.
type Change interface {
	Property() Property
	Value() string
	apply(*Attributes)
}

// FontSize sets the font size in document units.
type FontSize float64

func (FontSize) Property() Property { return PropertyFontSize }
func (c FontSize) Value() string { return strconv.FormatFloat(float64(c), 'f', -1, 64) }
func (c FontSize) apply(a *Attributes) { a.FontSize = float64(c) }

// LineSpacingChange sets the line spacing.
type LineSpacingChange LineSpacing

func (LineSpacingChange) Property() Property { return PropertyLineSpacing }
func (c LineSpacingChange) Value() string { return strconv.FormatFloat(float64(c), 'f', -1, 64) }
func (c LineSpacingChange) apply(a *Attributes) { a.LineSpacing = LineSpacing(c) }

// AlignmentChange sets the alignment.
type AlignmentChange Alignment

func (AlignmentChange) Property() Property { return PropertyAlignment }
func (c AlignmentChange) Value() string { return string(c) }
func (c AlignmentChange) apply(a *Attributes) { a.Alignment = Alignment(c) }

// With returns a copy of a with c applied.
func (a Attributes) With(c Change) Attributes {
	c.apply(&a)
	return a
}

// ParseChange validates a property change request. Requests that target the
// font family fail with ErrReadOnlyProperty.
func ParseChange(property, value string) (Change, error) {
	value = strings.TrimSpace(value)

	switch Property(property) {
	case PropertyFontName:
		return nil, fmt.Errorf("%w: %s", ErrReadOnlyProperty, property)
	case PropertyFontSize:
		size, err := strconv.ParseFloat(value, 64)
		if err != nil || !(size > 0) || size > 1000 {
			return nil, fmt.Errorf("%w: font size %q", ErrInvalidValue, value)
		}
		return FontSize(size), nil
	case PropertyLineSpacing:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line spacing %q", ErrInvalidValue, value)
		}
		if err := LineSpacing(f).Validate(); err != nil {
			return nil, err
		}
		return LineSpacingChange(f), nil
	case PropertyAlignment:
		a := Alignment(strings.ToLower(value))
		if err := a.Validate(); err != nil {
			return nil, err
		}
		return AlignmentChange(a), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProperty, property)
	}
}
