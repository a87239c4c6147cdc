// Package geometry converts between screen space and document space.
// Document space is measured in PDF points with the origin at the top-left
// corner of the page and y growing downward. Screen space is the same frame
// scaled uniformly by the zoom factor.
package geometry

import (
	"fmt"
	"math"
)

// Point is a location in either screen or document space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle. A valid Rect satisfies
// Left <= Right and Top <= Bottom.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Valid reports whether the rectangle edges are ordered.
func (r Rect) Valid() bool {
	return r.Left <= r.Right && r.Top <= r.Bottom
}

// Normalize returns the rectangle with its edges ordered.
func (r Rect) Normalize() Rect {
	if r.Left > r.Right {
		r.Left, r.Right = r.Right, r.Left
	}
	if r.Top > r.Bottom {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	return r
}

func (r Rect) Width() float64 {
	return r.Right - r.Left
}

func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g)-(%g,%g)", r.Left, r.Top, r.Right, r.Bottom)
}

// ToDocument maps a screen point into document space.
// A zoom that is not strictly positive is a programming error and panics.
func ToDocument(p Point, zoom float64) Point {
	mustZoom(zoom)
	return Point{X: p.X / zoom, Y: p.Y / zoom}
}

// ToScreenPoint maps a document point into screen space.
func ToScreenPoint(p Point, zoom float64) Point {
	mustZoom(zoom)
	return Point{X: p.X * zoom, Y: p.Y * zoom}
}

// ToScreen maps a document rectangle into screen space.
func ToScreen(r Rect, zoom float64) Rect {
	mustZoom(zoom)
	return Rect{
		Left:   r.Left * zoom,
		Top:    r.Top * zoom,
		Right:  r.Right * zoom,
		Bottom: r.Bottom * zoom,
	}
}

// ScaleFontSize returns the on-screen size of a font stored in document units.
func ScaleFontSize(size, zoom float64) float64 {
	mustZoom(zoom)
	return size * zoom
}

// TextBox estimates the box occupied by text placed with its top-left corner
// at origin. The estimate uses half the font size as the average glyph advance.
// The returned rectangle always contains origin.
func TextBox(origin Point, text string, fontSize, lineSpacing float64) Rect {
	runes := max(len([]rune(text)), 1)
	if lineSpacing <= 0 {
		lineSpacing = 1
	}
	return Rect{
		Left:   origin.X,
		Top:    origin.Y,
		Right:  origin.X + float64(runes)*fontSize*0.5,
		Bottom: origin.Y + fontSize*lineSpacing,
	}
}

// Rotate turns r clockwise by degrees inside a page of the given size.
// Degrees must be a multiple of 90; the result is expressed in the frame of
// the rotated page, whose width and height swap for 90 and 270.
func Rotate(r Rect, width, height float64, degrees int) Rect {
	switch ((degrees % 360) + 360) % 360 {
	case 0:
		return r
	case 90:
		return Rect{
			Left:   height - r.Bottom,
			Top:    r.Left,
			Right:  height - r.Top,
			Bottom: r.Right,
		}
	case 180:
		return Rect{
			Left:   width - r.Right,
			Top:    height - r.Bottom,
			Right:  width - r.Left,
			Bottom: height - r.Top,
		}
	case 270:
		return Rect{
			Left:   r.Top,
			Top:    width - r.Right,
			Right:  r.Bottom,
			Bottom: width - r.Left,
		}
	default:
		panic(fmt.Sprintf("geometry: rotation %d is not a multiple of 90", degrees))
	}
}

// ApproxEqual reports whether a and b differ by at most a relative tolerance.
func ApproxEqual(a, b float64) bool {
	const tolerance = 1e-9
	diff := math.Abs(a - b)
	return diff <= tolerance*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func mustZoom(zoom float64) {
	if !(zoom > 0) || math.IsInf(zoom, 0) {
		panic(fmt.Sprintf("geometry: invalid zoom %v", zoom))
	}
}
