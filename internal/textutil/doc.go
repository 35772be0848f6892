// Package textutil provides the string handling shared by the loader, the map
// builder and the exporter.
//
// NormalizeName is the single canonical form used whenever a county value is
// compared to a reference area name. Fingerprints and SuggestName exist only
// for diagnostics; matching never goes through them.
package textutil
