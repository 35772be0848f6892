package choropleth

import (
	"sort"

	"speciesmap/internal/areas"
	"speciesmap/internal/textutil"
)

// UnmatchedSet accumulates raw county values without a reference area over
// one generation run.
type UnmatchedSet struct {
	values map[string]struct{}
}

// Add records values. Blank values are ignored.
func (u *UnmatchedSet) Add(values ...string) {
	for _, v := range values {
		if textutil.IsBlank(v) {
			continue
		}
		if u.values == nil {
			u.values = make(map[string]struct{})
		}
		u.values[v] = struct{}{}
	}
}

// Len returns the number of distinct values.
func (u *UnmatchedSet) Len() int { return len(u.values) }

// Sorted returns the values in lexical order.
func (u *UnmatchedSet) Sorted() []string {
	out := make([]string, 0, len(u.values))
	for v := range u.values {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Report is the once-per-run diagnostic for unmatched counties.
type Report struct {
	Counties    []string          `json:"counties"`
	ValidNames  []string          `json:"valid_names"`
	Suggestions map[string]string `json:"suggestions,omitempty"`
}

// Report pairs the unmatched values with the valid area keys and a closest
// match hint for each value when one exists.
func (u *UnmatchedSet) Report(set *areas.Set) Report {
	report := Report{Counties: u.Sorted(), ValidNames: set.Keys()}
	for _, county := range report.Counties {
		if hint := textutil.SuggestName(county, report.ValidNames); hint != "" {
			if report.Suggestions == nil {
				report.Suggestions = make(map[string]string)
			}
			report.Suggestions[county] = hint
		}
	}
	return report
}
