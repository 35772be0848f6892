package palette

import (
	"errors"
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInvalidColor reports a color that is neither a known name nor a hex code.
var ErrInvalidColor = errors.New("invalid color")

var hexPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Parse resolves a color name or hex code to an NRGBA value.
func Parse(value string) (color.NRGBA, error) {
	key := strings.ToLower(strings.TrimSpace(value))
	if key == "" {
		return color.NRGBA{}, fmt.Errorf("%w: empty value", ErrInvalidColor)
	}
	if hex, ok := namedColors[key]; ok {
		return decodeHex(hex), nil
	}
	if hexPattern.MatchString(key) {
		return decodeHex(key), nil
	}
	return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, value)
}

// MustParse is Parse for constant inputs. It panics on an invalid color.
func MustParse(value string) color.NRGBA {
	c, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate reports whether value resolves to a displayable color.
func Validate(value string) error {
	_, err := Parse(value)
	return err
}

// WithOpacity returns c with its alpha scaled by opacity in [0, 1].
func WithOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	switch {
	case opacity <= 0:
		c.A = 0
	case opacity < 1:
		c.A = uint8(float64(c.A)*opacity + 0.5)
	}
	return c
}

// DisplayName title-cases a color name the way legends print it.
func DisplayName(value string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(value))
}

// decodeHex expects a value already checked against hexPattern.
func decodeHex(value string) color.NRGBA {
	digits := strings.TrimPrefix(value, "#")
	if len(digits) == 3 || len(digits) == 4 {
		var expanded strings.Builder
		for _, r := range digits {
			expanded.WriteRune(r)
			expanded.WriteRune(r)
		}
		digits = expanded.String()
	}
	if len(digits) == 6 {
		digits += "ff"
	}
	n, _ := strconv.ParseUint(digits, 16, 32)
	return color.NRGBA{
		R: uint8(n >> 24),
		G: uint8(n >> 16),
		B: uint8(n >> 8),
		A: uint8(n),
	}
}
