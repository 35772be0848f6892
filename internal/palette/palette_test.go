package palette

import (
	"errors"
	"image/color"
	"testing"
)

func TestParseNamedColors(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"red", color.NRGBA{R: 0xff, A: 0xff}},
		{" Grey ", color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}},
		{"BLUE", color.NRGBA{B: 0xff, A: 0xff}},
		{"k", color.NRGBA{A: 0xff}},
		{"tab:blue", color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#ff5733", color.NRGBA{R: 0xff, G: 0x57, B: 0x33, A: 0xff}},
		{"#F53", color.NRGBA{R: 0xff, G: 0x55, B: 0x33, A: 0xff}},
		{"#00ff0080", color.NRGBA{G: 0xff, A: 0x80}},
		{"#0f08", color.NRGBA{G: 0xff, A: 0x88}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	for _, in := range []string{"not-a-color", "", "#12", "#12345", "ff0000", "#gggggg", "reddish"} {
		if _, err := Parse(in); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidColor", in, err)
		}
	}
}

func TestCommonChoicesAreValid(t *testing.T) {
	for _, name := range CommonChoices {
		if err := Validate(name); err != nil {
			t.Errorf("common choice %q invalid: %v", name, err)
		}
	}
}

func TestWithOpacity(t *testing.T) {
	c := WithOpacity(color.NRGBA{R: 255, A: 255}, 0.6)
	if c.A != 153 {
		t.Fatalf("alpha = %d, want 153", c.A)
	}
	if WithOpacity(c, 1).A != c.A {
		t.Fatal("opacity 1 should keep alpha")
	}
	if WithOpacity(c, -1).A != 0 {
		t.Fatal("negative opacity should clear alpha")
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("grey"); got != "Grey" {
		t.Fatalf("DisplayName = %q", got)
	}
}
