package render

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/tiff"
)

// EncodeTIFF writes img as a Deflate-compressed TIFF.
func EncodeTIFF(w io.Writer, img image.Image) error {
	if err := tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true}); err != nil {
		return fmt.Errorf("encode tiff: %w", err)
	}
	return nil
}

// EncodePNG writes img as PNG for previews.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
