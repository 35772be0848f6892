package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeName returns the comparison form of an area name: trimmed,
// lower-cased, with "&" spelled "and". It is idempotent.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, "&", "and")
}

// nullMarkers are spreadsheet renderings of a missing cell.
var nullMarkers = map[string]struct{}{
	"nan":  {},
	"null": {},
	"none": {},
}

// IsBlank reports whether a cell is empty or a textual null marker.
func IsBlank(value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return true
	}
	_, ok := nullMarkers[value]
	return ok
}

// CleanField lower-cases and trims a taxonomic field, mapping null markers to "".
func CleanField(value string) string {
	if IsBlank(value) {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(value))
}

// TitleCase capitalizes each word.
func TitleCase(value string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(value))
}
