package render_test

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"golang.org/x/image/tiff"

	"speciesmap/internal/choropleth"
	"speciesmap/internal/compose"
	"speciesmap/internal/dataset"
	"speciesmap/internal/palette"
	"speciesmap/internal/render"
	"speciesmap/internal/taxonomy"
	"speciesmap/internal/testsupport"
)

func newRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	r, err := render.New(testsupport.AreaSet(t), render.Options{
		DPI:          20,
		WidthInches:  13.2,
		HeightInches: 19,
		Background:   palette.MustParse("white"),
		Outline:      palette.MustParse("black"),
		FillOpacity:  0.6,
	})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	t.Cleanup(r.Close)
	return r
}

func samplePage(t *testing.T) compose.Page {
	t.Helper()
	policy, err := palette.NewSingle("red")
	if err != nil {
		t.Fatalf("NewSingle: %v", err)
	}
	sel, err := taxonomy.NewSelection("Apidae", "Megachile")
	if err != nil {
		t.Fatalf("NewSelection: %v", err)
	}
	c := compose.Composer{
		Areas:   testsupport.AreaSet(t),
		Policy:  policy,
		Neutral: palette.MustParse("white"),
		Records: []dataset.Record{
			{County: "Missoula", Family: "apidae", Genus: "megachile", Species: "relativa"},
		},
		Selection: sel,
		Region:    "MT",
	}
	return c.Compose([]choropleth.SpeciesMap{{Index: 0, Species: "relativa"}}, 0)
}

func countPixels(img image.Image, match func(r, g, b uint32) bool) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if match(r>>8, g>>8, bl>>8) {
				n++
			}
		}
	}
	return n
}

func TestRenderDrawsFillOutlineAndText(t *testing.T) {
	r := newRenderer(t)
	w, h := r.Size()
	if w != 264 || h != 380 {
		t.Fatalf("Size = %dx%d, want 264x380", w, h)
	}

	img, err := r.Render(samplePage(t))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if img.Bounds().Dx() != w || img.Bounds().Dy() != h {
		t.Fatalf("image bounds = %v", img.Bounds())
	}

	// 60% red over white.
	tinted := countPixels(img, func(r, g, b uint32) bool {
		return r > 240 && g > 90 && g < 120 && b > 90 && b < 120
	})
	if tinted == 0 {
		t.Fatal("expected presence fill pixels")
	}
	dark := countPixels(img, func(r, g, b uint32) bool { return r < 80 && g < 80 && b < 80 })
	if dark == 0 {
		t.Fatal("expected outline or text pixels")
	}
}

func TestRenderEmptyPageIsBlankGrid(t *testing.T) {
	r := newRenderer(t)
	page := samplePage(t)
	for i := range page.Cells {
		page.Cells[i] = compose.Cell{Empty: true}
	}
	page.Title = ""
	page.Legend = ""
	img, err := r.Render(page)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	nonWhite := countPixels(img, func(r, g, b uint32) bool { return r != 255 || g != 255 || b != 255 })
	if nonWhite != 0 {
		t.Fatalf("expected a blank page, found %d drawn pixels", nonWhite)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	r := newRenderer(t)
	img, err := r.Render(samplePage(t))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	var tiffBuf bytes.Buffer
	if err := render.EncodeTIFF(&tiffBuf, img); err != nil {
		t.Fatalf("EncodeTIFF: %v", err)
	}
	decoded, err := tiff.Decode(&tiffBuf)
	if err != nil {
		t.Fatalf("tiff.Decode: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Fatalf("tiff bounds = %v, want %v", decoded.Bounds(), img.Bounds())
	}

	var pngBuf bytes.Buffer
	if err := render.EncodePNG(&pngBuf, img); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	if _, err := png.Decode(&pngBuf); err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	if _, err := render.New(testsupport.AreaSet(t), render.Options{DPI: 0, WidthInches: 1, HeightInches: 1}); err == nil {
		t.Fatal("expected error for zero dpi")
	}
}
