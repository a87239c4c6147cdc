package surface

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/JaimeStill/pdf-editor/internal/viewport"
)

// PNGWriter presents frames by writing the composed surface to a PNG file.
// The file is replaced atomically so readers never observe a partial image.
type PNGWriter struct {
	path       string
	compositor *Compositor
	logger     *slog.Logger
}

func NewPNGWriter(path string, compositor *Compositor, logger *slog.Logger) *PNGWriter {
	return &PNGWriter{
		path:       path,
		compositor: compositor,
		logger:     logger.With("system", "surface"),
	}
}

func (w *PNGWriter) Present(page image.Image, f viewport.Frame) error {
	img := w.compositor.Compose(page, f)

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".surface-*.png")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("encode png: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, w.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename file: %w", err)
	}

	w.logger.Debug("surface written", "path", w.path, "page", f.Page, "zoom", f.Zoom, "overlays", len(f.Overlays))
	return nil
}
