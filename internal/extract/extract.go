// Package extract reads the text layer of a PDF and groups it into
// positioned blocks that become the editable regions of a document.
package extract

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/JaimeStill/pdf-editor/internal/overlay"
	"github.com/JaimeStill/pdf-editor/pkg/geometry"
	"github.com/tsawler/tabula/layout"
	"github.com/tsawler/tabula/reader"
	"github.com/tsawler/tabula/text"
)

// ErrOpen is returned when the document cannot be parsed at all.
var ErrOpen = errors.New("document text layer could not be read")

const fallbackFontSize = 12

// Block is one paragraph-like run of text on a page, in top-down document
// coordinates.
type Block struct {
	Text       string
	Rect       geometry.Rect
	Attributes overlay.Attributes
}

// Page holds the blocks of one page in reading order.
type Page struct {
	Width  float64
	Height float64
	Blocks []Block
}

// Extractor detects text blocks with a tabula block detector.
type Extractor struct {
	detector *layout.BlockDetector
	logger   *slog.Logger
}

func New(logger *slog.Logger) *Extractor {
	return &Extractor{
		detector: layout.NewBlockDetector(),
		logger:   logger.With("system", "extract"),
	}
}

// File extracts every page of the PDF at path. A page whose content cannot
// be decoded yields no blocks instead of failing the document.
func (e *Extractor) File(path string) ([]Page, error) {
	r, err := reader.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}
	defer r.Close()

	count, err := r.PageCount()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}

	pages := make([]Page, count)
	for i := range count {
		page, err := r.GetPage(i)
		if err != nil {
			e.logger.Warn("page unreadable", "page", i, "error", err)
			continue
		}

		width, werr := page.Width()
		height, herr := page.Height()
		if err := errors.Join(werr, herr); err != nil {
			e.logger.Warn("page has no media box", "page", i, "error", err)
			continue
		}
		pages[i].Width, pages[i].Height = width, height

		fragments, err := r.ExtractTextFragments(page)
		if err != nil {
			e.logger.Warn("text extraction failed", "page", i, "error", err)
			continue
		}

		detected := e.detector.Detect(fragments, width, height)
		pages[i].Blocks = FromLayout(detected.Blocks, height)
	}

	return pages, nil
}

// FromLayout converts detected blocks, whose boxes use the PDF bottom-up
// origin, into top-down blocks on a page of the given height. Blocks without
// visible text are dropped.
func FromLayout(blocks []layout.Block, pageHeight float64) []Block {
	out := make([]Block, 0, len(blocks))
	for i := range blocks {
		b := &blocks[i]

		content := strings.TrimSpace(b.GetText())
		if content == "" {
			continue
		}

		rect := geometry.Rect{
			Left:   b.BBox.X,
			Top:    pageHeight - (b.BBox.Y + b.BBox.Height),
			Right:  b.BBox.X + b.BBox.Width,
			Bottom: pageHeight - b.BBox.Y,
		}.Normalize()

		out = append(out, Block{
			Text:       content,
			Rect:       rect,
			Attributes: attributes(b),
		})
	}
	return out
}

func attributes(b *layout.Block) overlay.Attributes {
	attrs := overlay.DefaultAttributes()

	size := b.AverageFontSize()
	if !(size > 0) {
		size = fallbackFontSize
	}
	attrs.FontSize = math.Round(size*100) / 100

	if name := dominantFont(b.Fragments); name != "" {
		attrs.FontName = name
		attrs.Bold, attrs.Italic = fontStyle(name)
	}
	return attrs
}

// dominantFont returns the font that draws the most characters.
func dominantFont(fragments []text.TextFragment) string {
	weight := map[string]int{}
	var (
		best  string
		count int
	)
	for _, f := range fragments {
		name := baseFontName(f.FontName)
		if name == "" {
			continue
		}
		weight[name] += utf8.RuneCountInString(f.Text)
		if weight[name] > count || (weight[name] == count && name < best) {
			best, count = name, weight[name]
		}
	}
	return best
}

// baseFontName strips the six-letter subset tag of embedded fonts ("ABCDEF+Arial").
func baseFontName(name string) string {
	name = strings.TrimPrefix(name, "/")
	if i := strings.IndexByte(name, '+'); i == 6 {
		name = name[i+1:]
	}
	return name
}

func fontStyle(name string) (bold, italic bool) {
	lower := strings.ToLower(name)
	for _, s := range []string{"bold", "black", "heavy", "semibold"} {
		if strings.Contains(lower, s) {
			bold = true
			break
		}
	}
	italic = strings.Contains(lower, "italic") || strings.Contains(lower, "oblique")
	return bold, italic
}
