package documents

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/JaimeStill/pdf-editor/internal/overlay"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

var pdfMagic = []byte("%PDF-")

func config() *model.Configuration {
	return model.NewDefaultConfiguration()
}

// inspect validates data as a PDF and returns its page sizes.
func inspect(data []byte) ([]Page, error) {
	if !bytes.HasPrefix(data, pdfMagic) {
		return nil, fmt.Errorf("%w: missing PDF header", ErrInvalidFile)
	}

	count, err := api.PageCount(bytes.NewReader(data), config())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	if count < 1 {
		return nil, fmt.Errorf("%w: document has no pages", ErrInvalidFile)
	}

	dims, err := api.PageDims(bytes.NewReader(data), config())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	if len(dims) != count {
		return nil, fmt.Errorf("%w: %d page sizes for %d pages", ErrInvalidFile, len(dims), count)
	}

	pages := make([]Page, count)
	for i, d := range dims {
		pages[i] = Page{Width: d.Width, Height: d.Height}
	}
	return pages, nil
}

// rotatePage rotates the zero-based page clockwise.
func rotatePage(data []byte, page, degrees int) ([]byte, error) {
	var out bytes.Buffer
	selected := []string{strconv.Itoa(page + 1)}
	if err := api.Rotate(bytes.NewReader(data), &out, degrees, selected, config()); err != nil {
		return nil, fmt.Errorf("rotate page %d: %w", page, err)
	}
	return out.Bytes(), nil
}

// reorder rewrites data with its pages in order, given as zero-based indexes.
func reorder(data []byte, order []int) ([]byte, error) {
	selected := make([]string, len(order))
	for i, p := range order {
		selected[i] = strconv.Itoa(p + 1)
	}

	var out bytes.Buffer
	if err := api.Collect(bytes.NewReader(data), &out, selected, config()); err != nil {
		return nil, fmt.Errorf("reorder pages: %w", err)
	}
	return out.Bytes(), nil
}

// stamp draws each region's text over its rectangle on an opaque white
// background, hiding the text the source document draws there.
func stamp(data []byte, pages []Page, regions []overlay.Region) ([]byte, error) {
	for _, r := range regions {
		if r.Page < 0 || r.Page >= len(pages) {
			return nil, fmt.Errorf("%w: region %s on page %d", ErrInvalidPage, r.ID, r.Page)
		}

		wm, err := api.TextWatermark(stampText(r.Text), stampDescription(r, pages[r.Page].Height), true, false, types.POINTS)
		if err != nil {
			return nil, fmt.Errorf("stamp region %s: %w", r.ID, err)
		}

		var out bytes.Buffer
		selected := []string{strconv.Itoa(r.Page + 1)}
		if err := api.AddWatermarks(bytes.NewReader(data), &out, selected, wm, config()); err != nil {
			return nil, fmt.Errorf("stamp region %s: %w", r.ID, err)
		}
		data = out.Bytes()
	}
	return data, nil
}

// stampText keeps a deleted-to-empty region covering its area.
func stampText(text string) string {
	if strings.TrimSpace(text) == "" {
		return " "
	}
	return text
}

// stampDescription positions the stamp by the bottom-left corner of the
// region, converting from the top-down page frame to PDF user space.
func stampDescription(r overlay.Region, pageHeight float64) string {
	return strings.Join([]string{
		"fontname:" + coreFont(r.FontName, r.Bold, r.Italic),
		"points:" + format(r.FontSize),
		"position:bl",
		fmt.Sprintf("offset:%s %s", format(r.Rect.Left), format(pageHeight-r.Rect.Bottom)),
		"aligntext:" + alignText(r.Alignment),
		"scalefactor:1 abs",
		"rotation:0",
		"fillcolor:#000000",
		"backgroundcolor:#FFFFFF",
		"opacity:1",
	}, ", ")
}

// coreFont picks the standard Type 1 font closest to name. Embedded fonts
// cannot be reused for arbitrary new text.
func coreFont(name string, bold, italic bool) string {
	lower := strings.ToLower(name)

	family := "Helvetica"
	switch {
	case strings.Contains(lower, "courier"), strings.Contains(lower, "mono"), strings.Contains(lower, "consol"):
		family = "Courier"
	case strings.Contains(lower, "times"), strings.Contains(lower, "georgia"), strings.Contains(lower, "garamond"),
		strings.Contains(lower, "serif") && !strings.Contains(lower, "sans"):
		family = "Times"
	}

	switch {
	case family == "Times" && bold && italic:
		return "Times-BoldItalic"
	case family == "Times" && bold:
		return "Times-Bold"
	case family == "Times" && italic:
		return "Times-Italic"
	case family == "Times":
		return "Times-Roman"
	case bold && italic:
		return family + "-BoldOblique"
	case bold:
		return family + "-Bold"
	case italic:
		return family + "-Oblique"
	default:
		return family
	}
}

func alignText(a overlay.Alignment) string {
	switch a {
	case overlay.AlignCenter:
		return "c"
	case overlay.AlignEnd:
		return "r"
	case overlay.AlignJustified:
		return "j"
	default:
		return "l"
	}
}

func format(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
