package render

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Style selects a font.
type Style int

const (
	Regular Style = iota
	Italic
	Bold
)

var (
	fontsOnce sync.Once
	fontsErr  error
	fontData  map[Style]*opentype.Font
)

func parseFonts() error {
	fontsOnce.Do(func() {
		sources := map[Style][]byte{
			Regular: goregular.TTF,
			Italic:  goitalic.TTF,
			Bold:    gobold.TTF,
		}
		parsed := make(map[Style]*opentype.Font, len(sources))
		for style, ttf := range sources {
			f, err := opentype.Parse(ttf)
			if err != nil {
				fontsErr = fmt.Errorf("parse font: %w", err)
				return
			}
			parsed[style] = f
		}
		fontData = parsed
	})
	return fontsErr
}

type faceKey struct {
	style Style
	size  float64
}

// faceCache hands out faces for one DPI. Faces are not safe for concurrent
// use, so each Renderer owns its cache.
type faceCache struct {
	mu    sync.Mutex
	dpi   float64
	faces map[faceKey]font.Face
}

func (c *faceCache) face(style Style, size float64) (font.Face, error) {
	if err := parseFonts(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	key := faceKey{style: style, size: size}
	if f, ok := c.faces[key]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(fontData[style], &opentype.FaceOptions{
		Size:    size,
		DPI:     c.dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}
	if c.faces == nil {
		c.faces = make(map[faceKey]font.Face)
	}
	c.faces[key] = f
	return f, nil
}

func (c *faceCache) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, f := range c.faces {
		_ = f.Close()
		delete(c.faces, key)
	}
}
