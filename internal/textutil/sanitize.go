package textutil

import (
	"strings"
	"unicode"
)

// SanitizeFileName makes name safe as one component of an export file name.
// Path separators and other punctuation become dashes, whitespace runs become
// a single underscore, and quotes and shell metacharacters are dropped.
func SanitizeFileName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	for i, field := range fields {
		if i > 0 {
			b.WriteByte('_')
		}
		for _, r := range field {
			switch {
			case unicode.IsLetter(r), unicode.IsDigit(r), r == '.', r == '_', r == '-':
				b.WriteRune(r)
			case strings.ContainsRune(`"'?<>|`, r):
			default:
				b.WriteByte('-')
			}
		}
	}
	return b.String()
}
