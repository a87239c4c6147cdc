package overlay_test

import (
	"errors"
	"testing"

	"github.com/JaimeStill/pdf-editor/internal/overlay"
)

func TestParseChange(t *testing.T) {
	tests := []struct {
		name     string
		property string
		value    string
		want     overlay.Change
		wantErr  error
	}{
		{"font size", "font_size", "14", overlay.FontSize(14), nil},
		{"fractional font size", "font_size", " 10.5 ", overlay.FontSize(10.5), nil},
		{"zero font size", "font_size", "0", nil, overlay.ErrInvalidValue},
		{"text font size", "font_size", "big", nil, overlay.ErrInvalidValue},
		{"line spacing", "line_spacing", "1.5", overlay.LineSpacingChange(1.5), nil},
		{"unsupported spacing", "line_spacing", "1.3", nil, overlay.ErrInvalidValue},
		{"alignment", "alignment", "Center", overlay.AlignmentChange(overlay.AlignCenter), nil},
		{"bad alignment", "alignment", "middle", nil, overlay.ErrInvalidValue},
		{"font family", "font_name", "Times-Roman", nil, overlay.ErrReadOnlyProperty},
		{"unknown", "color", "#000", nil, overlay.ErrUnknownProperty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := overlay.ParseChange(tt.property, tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseChange() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseChange() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseChange() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestChange_Value(t *testing.T) {
	tests := []struct {
		change overlay.Change
		want   string
	}{
		{overlay.FontSize(12), "12"},
		{overlay.FontSize(10.5), "10.5"},
		{overlay.LineSpacingChange(1.15), "1.15"},
		{overlay.AlignmentChange(overlay.AlignJustified), "justified"},
	}

	for _, tt := range tests {
		if got := tt.change.Value(); got != tt.want {
			t.Errorf("%s Value() = %q, want %q", tt.change.Property(), got, tt.want)
		}
	}
}

func TestAttributes_With(t *testing.T) {
	base := overlay.DefaultAttributes()

	got := base.With(overlay.AlignmentChange(overlay.AlignCenter)).With(overlay.FontSize(18))

	if got.Alignment != overlay.AlignCenter || got.FontSize != 18 {
		t.Errorf("With() = %+v", got)
	}
	if base.Alignment != overlay.AlignStart || base.FontSize != 12 {
		t.Errorf("With() modified its receiver: %+v", base)
	}
}
