package taxonomy

import (
	"errors"
	"fmt"
	"strings"

	"speciesmap/internal/textutil"
)

// ErrSelection reports a missing or placeholder family/genus choice.
var ErrSelection = errors.New("invalid taxonomic selection")

// Field names a taxonomic column.
type Field string

const (
	FieldFamily Field = "family"
	FieldGenus  Field = "genus"
)

// Placeholder returns the prompt text that stands for "nothing chosen".
func (f Field) Placeholder() string {
	return "Select " + textutil.TitleCase(string(f))
}

// Kind classifies a selector.
type Kind int

const (
	KindExact Kind = iota
	KindAll
	KindNotSpecified
)

const (
	labelAll          = "All"
	labelNotSpecified = "Not Specified"
)

// Selector matches one field value.
type Selector struct {
	Kind  Kind
	Value string
}

// All matches any populated value.
func All() Selector { return Selector{Kind: KindAll} }

// NotSpecified matches blank values.
func NotSpecified() Selector { return Selector{Kind: KindNotSpecified} }

// Exact matches value case-insensitively.
func Exact(value string) Selector {
	return Selector{Kind: KindExact, Value: strings.ToLower(strings.TrimSpace(value))}
}

// ParseSelector interprets user text for field. Blank text and the field's
// placeholder are rejected with ErrSelection.
func ParseSelector(field Field, text string) (Selector, error) {
	trimmed := strings.TrimSpace(text)
	switch {
	case trimmed == "":
		return Selector{}, fmt.Errorf("%w: %s is required", ErrSelection, field)
	case strings.EqualFold(trimmed, field.Placeholder()):
		return Selector{}, fmt.Errorf("%w: choose a %s", ErrSelection, field)
	case strings.EqualFold(trimmed, labelAll):
		return All(), nil
	case strings.EqualFold(trimmed, labelNotSpecified):
		return NotSpecified(), nil
	default:
		return Exact(trimmed), nil
	}
}

// Matches reports whether a record value satisfies the selector.
func (s Selector) Matches(value string) bool {
	blank := textutil.IsBlank(value)
	switch s.Kind {
	case KindAll:
		return !blank
	case KindNotSpecified:
		return blank
	default:
		return !blank && strings.EqualFold(strings.TrimSpace(value), s.Value)
	}
}

// String renders the selector the way it was chosen, title-cased.
func (s Selector) String() string {
	switch s.Kind {
	case KindAll:
		return labelAll
	case KindNotSpecified:
		return labelNotSpecified
	default:
		return textutil.TitleCase(s.Value)
	}
}

// Selection is the family and genus pair that drives generation.
type Selection struct {
	Family Selector
	Genus  Selector
}

// NewSelection parses both selectors. Both are required.
func NewSelection(family, genus string) (Selection, error) {
	fam, err := ParseSelector(FieldFamily, family)
	if err != nil {
		return Selection{}, err
	}
	gen, err := ParseSelector(FieldGenus, genus)
	if err != nil {
		return Selection{}, err
	}
	return Selection{Family: fam, Genus: gen}, nil
}

// Title is the page heading "<Family> > <Genus>".
func (s Selection) Title() string {
	return s.Family.String() + " > " + s.Genus.String()
}
