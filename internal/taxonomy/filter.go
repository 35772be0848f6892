package taxonomy

import (
	"sort"
	"strings"

	"speciesmap/internal/dataset"
	"speciesmap/internal/textutil"
)

func fieldValue(rec dataset.Record, field Field) string {
	if field == FieldGenus {
		return rec.Genus
	}
	return rec.Family
}

// Filter returns the records whose field satisfies sel, preserving order.
func Filter(records []dataset.Record, field Field, sel Selector) []dataset.Record {
	out := make([]dataset.Record, 0, len(records))
	for _, rec := range records {
		if sel.Matches(fieldValue(rec, field)) {
			out = append(out, rec)
		}
	}
	return out
}

// Apply narrows by family, then by genus.
func Apply(records []dataset.Record, sel Selection) []dataset.Record {
	return Filter(Filter(records, FieldFamily, sel.Family), FieldGenus, sel.Genus)
}

// Species returns distinct species epithets in first-occurrence order,
// skipping blanks and null markers.
func Species(records []dataset.Record) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, rec := range records {
		if textutil.IsBlank(rec.Species) {
			continue
		}
		if _, ok := seen[rec.Species]; ok {
			continue
		}
		seen[rec.Species] = struct{}{}
		out = append(out, rec.Species)
	}
	return out
}

// Families lists the populated families, sorted and title-cased.
func Families(records []dataset.Record) []string {
	return choices(records, FieldFamily)
}

// Genera lists the populated genera within family, sorted and title-cased.
func Genera(records []dataset.Record, family Selector) []string {
	return choices(Filter(records, FieldFamily, family), FieldGenus)
}

func choices(records []dataset.Record, field Field) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, rec := range records {
		value := strings.ToLower(strings.TrimSpace(fieldValue(rec, field)))
		if textutil.IsBlank(value) {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		values = append(values, value)
	}
	sort.Strings(values)
	for i, v := range values {
		values[i] = textutil.TitleCase(v)
	}
	return values
}
