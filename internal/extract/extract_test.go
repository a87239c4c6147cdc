package extract_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JaimeStill/pdf-editor/internal/extract"
	"github.com/JaimeStill/pdf-editor/internal/pdftest"
	"github.com/JaimeStill/pdf-editor/pkg/geometry"
	"github.com/google/go-cmp/cmp"
	"github.com/tsawler/tabula/layout"
	"github.com/tsawler/tabula/model"
	"github.com/tsawler/tabula/text"
)

func fragment(s, font string, size, x float64) text.TextFragment {
	return text.TextFragment{Text: s, X: x, Y: 700, Width: float64(len(s)) * size / 2, Height: size, FontName: font, FontSize: size}
}

func TestFromLayout(t *testing.T) {
	heading := []text.TextFragment{
		fragment("Quarterly", "ABCDEF+Arial-BoldItalic", 18, 72),
		fragment("Report", "ABCDEF+Arial-BoldItalic", 18, 160),
	}
	body := []text.TextFragment{
		fragment("a", "Times-Roman", 10, 72),
		fragment("longer run of text", "Helvetica-Oblique", 10, 80),
	}

	blocks := []layout.Block{
		{BBox: model.BBox{X: 72, Y: 700, Width: 200, Height: 20}, Fragments: heading, Lines: [][]text.TextFragment{heading}},
		{BBox: model.BBox{X: 72, Y: 600, Width: 300, Height: 40}, Fragments: body, Lines: [][]text.TextFragment{body}},
		{BBox: model.BBox{X: 0, Y: 0, Width: 50, Height: 50}},
	}

	got := extract.FromLayout(blocks, 792)
	if len(got) != 2 {
		t.Fatalf("FromLayout() returned %d blocks, want 2 (empty block dropped)", len(got))
	}

	if diff := cmp.Diff(geometry.Rect{Left: 72, Top: 72, Right: 272, Bottom: 92}, got[0].Rect); diff != "" {
		t.Errorf("heading rect mismatch (-want +got):\n%s", diff)
	}
	if got[0].Text != "Quarterly Report" {
		t.Errorf("heading text = %q", got[0].Text)
	}

	a := got[0].Attributes
	if a.FontName != "Arial-BoldItalic" || !a.Bold || !a.Italic || a.FontSize != 18 {
		t.Errorf("heading attributes = %+v", a)
	}

	b := got[1].Attributes
	if b.FontName != "Helvetica-Oblique" {
		t.Errorf("dominant font = %q, want the font drawing the most characters", b.FontName)
	}
	if b.Bold || !b.Italic {
		t.Errorf("body style = bold %v italic %v", b.Bold, b.Italic)
	}
	if b.Alignment != "start" || b.LineSpacing != 1 {
		t.Errorf("body defaults = %+v", b)
	}
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.pdf")
	data := pdftest.Build(
		pdftest.Letter("Hello world"),
		pdftest.Page{Width: 300, Height: 400},
	)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	ex := extract.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	pages, err := ex.File(path)
	if err != nil {
		t.Fatalf("File() failed: %v", err)
	}

	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	if pages[0].Width != 612 || pages[0].Height != 792 {
		t.Errorf("page 0 size = %vx%v", pages[0].Width, pages[0].Height)
	}
	if len(pages[1].Blocks) != 0 {
		t.Errorf("blank page produced %d blocks", len(pages[1].Blocks))
	}

	var all []string
	for _, b := range pages[0].Blocks {
		all = append(all, b.Text)
		if b.Rect.Top < 0 || b.Rect.Bottom > 792 {
			t.Errorf("block %q outside page: %s", b.Text, b.Rect)
		}
	}
	if !strings.Contains(strings.Join(all, " "), "Hello") {
		t.Errorf("page 0 text = %q, want it to contain Hello", all)
	}
}

func TestFile_NotPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.pdf")
	if err := os.WriteFile(path, []byte("plain text"), 0644); err != nil {
		t.Fatal(err)
	}

	ex := extract.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	if _, err := ex.File(path); err == nil {
		t.Error("File() succeeded on a non-PDF")
	}
}
