// Package palette owns color parsing and the color assignment policies used
// when a species map marks occupied counties.
//
// Colors are accepted as CSS/X11 names, matplotlib single-letter and tab:
// names, or hex codes (#RGB, #RGBA, #RRGGBB, #RRGGBBAA). Validation does not
// depend on any renderer so it can run before generation starts.
package palette
