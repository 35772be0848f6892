package choropleth

import (
	"strings"

	"speciesmap/internal/textutil"
)

// Caption holds the figure label and the parts of the scientific name.
type Caption struct {
	Label    string `json:"label"`
	Genus    string `json:"genus"`
	Subgenus string `json:"subgenus,omitempty"`
	Epithet  string `json:"epithet"`
}

// Span is a run of caption text with one style.
type Span struct {
	Text   string
	Italic bool
}

// NewCaption applies the capitalization rules: genus and subgenus title-cased,
// epithet lower-cased.
func NewCaption(label, genus, subgenus, epithet string) Caption {
	c := Caption{
		Label:   label,
		Genus:   textutil.TitleCase(genus),
		Epithet: strings.ToLower(strings.TrimSpace(epithet)),
	}
	if !textutil.IsBlank(subgenus) {
		c.Subgenus = textutil.TitleCase(subgenus)
	}
	return c
}

// ScientificName renders "Genus (Subgenus) epithet" without styling.
func (c Caption) ScientificName() string {
	var b strings.Builder
	for _, span := range c.nameSpans() {
		b.WriteString(span.Text)
	}
	return b.String()
}

// String is the plain caption, label first.
func (c Caption) String() string {
	return c.Label + " " + c.ScientificName()
}

// Spans returns the label upright and the name parts in italics. The
// subgenus parentheses stay upright.
func (c Caption) Spans() []Span {
	return append([]Span{{Text: c.Label + " "}}, c.nameSpans()...)
}

func (c Caption) nameSpans() []Span {
	spans := []Span{{Text: c.Genus, Italic: true}}
	if c.Subgenus != "" {
		spans = append(spans,
			Span{Text: " ("},
			Span{Text: c.Subgenus, Italic: true},
			Span{Text: ")"},
		)
	}
	return append(spans, Span{Text: " "}, Span{Text: c.Epithet, Italic: true})
}
