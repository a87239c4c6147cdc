// Package surface composes rendered pages and region overlays into images.
package surface

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/JaimeStill/pdf-editor/internal/overlay"
	"github.com/JaimeStill/pdf-editor/internal/viewport"
	"github.com/JaimeStill/pdf-editor/pkg/geometry"
)

// StatusHeight is the height of the status strip drawn below the page.
const StatusHeight = 18

var (
	paper      = color.RGBA{0xff, 0xff, 0xff, 0xff}
	ink        = color.RGBA{0x21, 0x21, 0x21, 0xff}
	statusBack = color.RGBA{0x26, 0x32, 0x38, 0xff}
	statusText = color.RGBA{0xec, 0xef, 0xf1, 0xff}

	regionLine   = color.RGBA{0x1e, 0x88, 0xe5, 0xff}
	regionFill   = color.NRGBA{0x1e, 0x88, 0xe5, 0x22}
	selectedLine = color.RGBA{0xff, 0x98, 0x00, 0xff}
	selectedFill = color.NRGBA{0xff, 0x98, 0x00, 0x33}
	editingLine  = color.RGBA{0x43, 0xa0, 0x47, 0xff}
	pendingLine  = color.RGBA{0x9e, 0x9e, 0x9e, 0xff}
)

// Compositor draws frames. It caches font faces and is not safe for
// concurrent use.
type Compositor struct {
	font  *opentype.Font
	faces map[int]font.Face
}

func New() (*Compositor, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Compositor{font: f, faces: make(map[int]font.Face)}, nil
}

// Compose scales page to the frame size, draws every overlay on top, and
// adds a status strip. A nil page is drawn as blank paper.
func (c *Compositor) Compose(page image.Image, f viewport.Frame) *image.RGBA {
	w, h := int(math.Ceil(f.Width)), int(math.Ceil(f.Height))
	if (w <= 0 || h <= 0) && page != nil {
		w, h = page.Bounds().Dx(), page.Bounds().Dy()
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h+StatusHeight))
	pageRect := image.Rect(0, 0, w, h)

	draw.Draw(dst, pageRect, image.NewUniform(paper), image.Point{}, draw.Src)
	if page != nil {
		draw.ApproxBiLinear.Scale(dst, pageRect, page, page.Bounds(), draw.Over, nil)
	}

	for _, o := range f.Overlays {
		c.drawOverlay(dst, o)
	}

	c.drawStatus(dst, f, h)
	return dst
}

func (c *Compositor) drawOverlay(dst *image.RGBA, o viewport.Overlay) {
	r := toPixels(o.Rect)
	if r.Empty() {
		return
	}

	showText := o.Editing || o.Modified || o.Pending

	switch {
	case showText:
		draw.Draw(dst, r, image.NewUniform(paper), image.Point{}, draw.Src)
	case o.Selected:
		draw.Draw(dst, r, image.NewUniform(selectedFill), image.Point{}, draw.Over)
	default:
		draw.Draw(dst, r, image.NewUniform(regionFill), image.Point{}, draw.Over)
	}

	if showText {
		c.drawText(dst, r, o.Text, o.FontSize, o.Alignment)
	}

	switch {
	case o.Editing:
		stroke(dst, r, 2, editingLine)
	case o.Selected:
		stroke(dst, r, 2, selectedLine)
	case o.Pending:
		stroke(dst, r, 1, pendingLine)
	default:
		stroke(dst, r, 1, regionLine)
	}
}

func (c *Compositor) drawText(dst *image.RGBA, r image.Rectangle, text string, size float64, align overlay.Alignment) {
	face := c.face(size)
	if face == nil {
		return
	}

	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	y := r.Min.Y + metrics.Ascent.Ceil()

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(ink), Face: face}
	for _, line := range strings.Split(text, "\n") {
		width := d.MeasureString(line).Ceil()

		x := r.Min.X
		switch align {
		case overlay.AlignCenter:
			x = r.Min.X + (r.Dx()-width)/2
		case overlay.AlignEnd:
			x = r.Max.X - width
		}

		d.Dot = fixed.P(max(x, r.Min.X), y)
		d.DrawString(line)
		y += lineHeight
	}
}

func (c *Compositor) drawStatus(dst *image.RGBA, f viewport.Frame, top int) {
	band := image.Rect(0, top, dst.Bounds().Dx(), top+StatusHeight)
	draw.Draw(dst, band, image.NewUniform(statusBack), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(statusText),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(4, top+13),
	}
	d.DrawString(Status(f))
}

func (c *Compositor) face(size float64) font.Face {
	if !(size > 0) {
		return nil
	}

	key := int(math.Round(size * 4))
	if face, ok := c.faces[key]; ok {
		return face
	}

	face, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    float64(key) / 4,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil
	}
	c.faces[key] = face
	return face
}

// Status is the one-line summary shown in the status strip.
func Status(f viewport.Frame) string {
	return fmt.Sprintf("%s  page %d/%d  zoom %d%%  mode %s",
		f.Filename, f.Page+1, f.PageCount, int(math.Round(f.Zoom*100)), f.Mode)
}

func toPixels(r geometry.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.Left)), int(math.Floor(r.Top)),
		int(math.Ceil(r.Right)), int(math.Ceil(r.Bottom)),
	)
}

func stroke(dst *image.RGBA, r image.Rectangle, width int, c color.Color) {
	u := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width),
		image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y),
		image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(r), u, image.Point{}, draw.Over)
	}
}
