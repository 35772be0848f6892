// Package gallery holds the ordered species maps of one generation run and
// slices them into fixed-size pages.
package gallery

import (
	"context"
	"fmt"

	"speciesmap/internal/choropleth"
)

// DefaultPageSize is the number of maps per page.
const DefaultPageSize = 15

// Gallery is immutable once built; generation replaces it wholesale.
type Gallery struct {
	maps     []choropleth.SpeciesMap
	pageSize int
}

// New copies maps into a gallery. A non-positive pageSize uses DefaultPageSize.
func New(maps []choropleth.SpeciesMap, pageSize int) *Gallery {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Gallery{
		maps:     append([]choropleth.SpeciesMap(nil), maps...),
		pageSize: pageSize,
	}
}

// Len returns the number of maps.
func (g *Gallery) Len() int {
	if g == nil {
		return 0
	}
	return len(g.maps)
}

// PageSize returns the number of maps per page.
func (g *Gallery) PageSize() int {
	if g == nil {
		return DefaultPageSize
	}
	return g.pageSize
}

// Maps returns every map in gallery order.
func (g *Gallery) Maps() []choropleth.SpeciesMap {
	if g == nil {
		return nil
	}
	return append([]choropleth.SpeciesMap(nil), g.maps...)
}

// Species returns the species of every map in gallery order.
func (g *Gallery) Species() []string {
	if g == nil {
		return nil
	}
	out := make([]string, len(g.maps))
	for i, m := range g.maps {
		out[i] = m.Species
	}
	return out
}

// PageCount is ceil(Len/PageSize); zero for an empty gallery.
func (g *Gallery) PageCount() int {
	n := g.Len()
	if n == 0 {
		return 0
	}
	return (n + g.pageSize - 1) / g.pageSize
}

// ClampPage bounds n to [0, PageCount-1]. An empty gallery clamps to 0.
func (g *Gallery) ClampPage(n int) int {
	last := g.PageCount() - 1
	if n > last {
		n = last
	}
	if n < 0 {
		n = 0
	}
	return n
}

// Page returns the maps of page n after clamping. The last page may be short.
func (g *Gallery) Page(n int) []choropleth.SpeciesMap {
	if g.Len() == 0 {
		return nil
	}
	n = g.ClampPage(n)
	start := n * g.pageSize
	end := min(start+g.pageSize, len(g.maps))
	return append([]choropleth.SpeciesMap(nil), g.maps[start:end]...)
}

// BuildFunc builds the map for the species at index.
type BuildFunc func(index int, species string) (choropleth.SpeciesMap, error)

// ProgressFunc receives the number of maps built so far and the total.
type ProgressFunc func(current, total int)

// Rebuild builds one map per species into a new gallery. On error or
// cancellation it returns nil and the caller keeps its previous gallery.
func Rebuild(ctx context.Context, species []string, pageSize int, build BuildFunc, progress ProgressFunc) (*Gallery, error) {
	maps := make([]choropleth.SpeciesMap, 0, len(species))
	for i, name := range species {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m, err := build(i, name)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", name, err)
		}
		maps = append(maps, m)
		if progress != nil {
			progress(i+1, len(species))
		}
	}
	return New(maps, pageSize), nil
}
