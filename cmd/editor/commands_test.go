package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/JaimeStill/pdf-editor/internal/reconcile"
	"github.com/JaimeStill/pdf-editor/pkg/geometry"
	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"", Command{}},
		{"  # comment", Command{}},
		{"open /tmp/report v2.pdf", Command{Name: "open", Text: "/tmp/report v2.pdf"}},
		{"page 3", Command{Name: "page", Ints: []int{2}}},
		{"NEXT", Command{Name: "next"}},
		{"zoom in", Command{Name: "zoom", Text: "in"}},
		{"zoom 1.5", Command{Name: "zoom", Zoom: 1.5}},
		{"zoom 75%", Command{Name: "zoom", Zoom: 0.75}},
		{"mode insert", Command{Name: "mode", Text: "insert"}},
		{"click 10 20.5", Command{Name: "click", Point: geometry.Point{X: 10, Y: 20.5}}},
		{"dblclick 1 2", Command{Name: "dblclick", Point: geometry.Point{X: 1, Y: 2}}},
		{"type  two spaces", Command{Name: "type", Text: " two spaces"}},
		{"type", Command{Name: "type"}},
		{"prop font_size 14", Command{Name: "prop", Text: "font_size 14"}},
		{"rotate -90", Command{Name: "rotate", Ints: []int{-90}}},
		{"move 1 4", Command{Name: "move", Ints: []int{0, 3}}},
		{"find total due", Command{Name: "find", Text: "total due"}},
		{"export out.pdf", Command{Name: "export", Text: "out.pdf"}},
		{"quit", Command{Name: "quit"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := Parse(tt.line)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.line, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		line string
		want error
	}{
		{"fly away", ErrUnknownCommand},
		{"page", ErrUsage},
		{"page 0", ErrUsage},
		{"page two", ErrUsage},
		{"next 2", ErrUsage},
		{"zoom huge", ErrUsage},
		{"click 10", ErrUsage},
		{"click a b", ErrUsage},
		{"move 1", ErrUsage},
		{"rotate", ErrUsage},
		{"open   ", ErrUsage},
		{"find", ErrUsage},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := Parse(tt.line)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.line, err, tt.want)
			}
		})
	}
}

func TestPrintFonts(t *testing.T) {
	var buf bytes.Buffer
	PrintFonts(&buf, []reconcile.Font{
		{Name: "Helvetica", Size: 12},
		{Name: "Arial-BoldItalic", Size: 18, Bold: true, Italic: true},
		{Name: "Times-Italic", Size: 10.5, Italic: true},
	})

	want := "Helvetica 12pt\nArial-BoldItalic 18pt bold italic\nTimes-Italic 10.5pt italic\n"
	if buf.String() != want {
		t.Errorf("PrintFonts() = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	PrintFonts(&buf, nil)
	if buf.String() != "no fonts\n" {
		t.Errorf("empty PrintFonts() = %q", buf.String())
	}
}
