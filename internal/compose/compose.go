// Package compose lays one gallery page out as a grid of map cells.
//
// Composition is the only place page content is derived: preview, single page
// export and archive export all call Compose, and every filled cell rebuilds
// its overlay and captions from the records rather than reusing a cached map.
package compose

import (
	"fmt"
	"image/color"

	"speciesmap/internal/areas"
	"speciesmap/internal/choropleth"
	"speciesmap/internal/dataset"
	"speciesmap/internal/palette"
	"speciesmap/internal/taxonomy"
	"speciesmap/internal/textutil"
)

// Default grid.
const (
	DefaultColumns = 3
	DefaultRows    = 5
)

// Cell is one grid slot. Empty cells are drawn blank.
type Cell struct {
	Empty   bool
	Row     int
	Column  int
	Overlay choropleth.Overlay
	Caption choropleth.Caption
	// Detail is the second caption line, e.g. "in MT, 2 specimens in 2 counties."
	Detail    string
	Specimens int
	Counties  int
}

// Page is a composed page ready for rendering.
type Page struct {
	Index   int
	Title   string
	Legend  string
	Columns int
	Rows    int
	Cells   []Cell
}

// Number is the 1-based page number used in file names.
func (p Page) Number() int { return p.Index + 1 }

// Filled returns the non-empty cells in order.
func (p Page) Filled() []Cell {
	var out []Cell
	for _, cell := range p.Cells {
		if !cell.Empty {
			out = append(out, cell)
		}
	}
	return out
}

// Composer holds everything needed to rebuild a page's cells.
type Composer struct {
	Areas     *areas.Set
	Policy    palette.Policy
	Neutral   color.NRGBA
	Records   []dataset.Record
	Selection taxonomy.Selection
	Region    string
	Columns   int
	Rows      int
}

// Compose fills the grid row-major with page and blanks the remaining cells.
// Maps beyond the grid capacity are ignored.
func (c Composer) Compose(page []choropleth.SpeciesMap, pageIndex int) Page {
	cols, rows := c.Columns, c.Rows
	if cols <= 0 {
		cols = DefaultColumns
	}
	if rows <= 0 {
		rows = DefaultRows
	}

	out := Page{
		Index:   pageIndex,
		Title:   c.Selection.Title(),
		Legend:  c.Policy.Legend(),
		Columns: cols,
		Rows:    rows,
		Cells:   make([]Cell, cols*rows),
	}

	builder := choropleth.Builder{Areas: c.Areas, Policy: c.Policy, Neutral: c.Neutral}
	for i := range out.Cells {
		cell := Cell{Row: i / cols, Column: i % cols}
		if i >= len(page) {
			cell.Empty = true
			out.Cells[i] = cell
			continue
		}
		built, _ := builder.Build(page[i].Index, page[i].Species, c.Records)
		cell.Overlay = built.Overlay
		cell.Caption = built.Caption
		cell.Specimens = built.Specimens
		cell.Counties = built.Counties
		cell.Detail = DetailLine(c.Region, built.Specimens, built.Counties)
		out.Cells[i] = cell
	}
	return out
}

// DetailLine renders the second caption line with both nouns pluralized.
func DetailLine(region string, specimens, counties int) string {
	return fmt.Sprintf("in %s, %d %s in %d %s.",
		region,
		specimens, textutil.Plural(specimens, "specimen", "specimens"),
		counties, textutil.Plural(counties, "county", "counties"))
}
