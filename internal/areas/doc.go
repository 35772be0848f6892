// Package areas loads the reference county polygons maps are drawn over.
//
// A Set is read-only after construction. Overlay colors never live here; the
// choropleth builder keeps them in per-species maps keyed by Area.Key.
package areas
