// Package raster renders document pages to bitmaps.
package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"math"
	"os"

	"github.com/JaimeStill/document-context/pkg/config"
	"github.com/JaimeStill/document-context/pkg/document"
	dcimage "github.com/JaimeStill/document-context/pkg/image"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const contentType = "application/pdf"

const (
	minDPI = 72
	maxDPI = 1200
)

var (
	ErrLoad   = errors.New("document could not be loaded")
	ErrRender = errors.New("page could not be rendered")
)

// Rasterizer loads documents into temporary files for rendering.
type Rasterizer struct {
	dir    string
	logger *slog.Logger
}

// New creates a rasterizer. An empty dir uses the system temp directory.
func New(dir string, logger *slog.Logger) *Rasterizer {
	return &Rasterizer{
		dir:    dir,
		logger: logger.With("system", "raster"),
	}
}

// Handle is a loaded document.
type Handle struct {
	path  string
	doc   document.Document
	pages int
}

// Load validates data and opens it for rendering.
func (r *Rasterizer) Load(data []byte) (*Handle, error) {
	n, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	f, err := os.CreateTemp(r.dir, "document-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	path := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	doc, err := document.Open(path, contentType)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	r.logger.Debug("document loaded", "path", path, "pages", n)
	return &Handle{path: path, doc: doc, pages: n}, nil
}

// PageCount returns the number of pages.
func (h *Handle) PageCount() int {
	return h.pages
}

// Render rasterizes a zero-based page at scale, where 1 is one pixel per
// document unit. Scales below 1 render at 72 DPI and are expected to be
// downsampled by the caller.
func (h *Handle) Render(page int, scale float64) (image.Image, error) {
	if page < 0 || page >= h.pages {
		return nil, fmt.Errorf("%w: page %d of %d", ErrRender, page, h.pages)
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("%w: scale %v", ErrRender, scale)
	}

	renderer, err := dcimage.NewImageMagickRenderer(config.ImageConfig{
		Format: string(document.PNG),
		DPI:    DPI(scale),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	p, err := h.doc.ExtractPage(page + 1)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	data, err := p.ToImage(renderer, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return img, nil
}

// Close releases the document and removes its temporary file.
func (h *Handle) Close() error {
	h.doc.Close()
	if err := os.Remove(h.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", h.path, err)
	}
	return nil
}

// DPI converts a render scale to the resolution passed to the renderer.
func DPI(scale float64) int {
	dpi := int(math.Round(72 * scale))
	return min(max(dpi, minDPI), maxDPI)
}
