package choropleth

import (
	"image/color"
	"strings"

	"speciesmap/internal/areas"
	"speciesmap/internal/dataset"
	"speciesmap/internal/palette"
	"speciesmap/internal/textutil"
)

// Overlay maps an area key to its fill color for one species.
type Overlay map[string]color.NRGBA

// Occupied returns the keys whose color differs from neutral.
func (o Overlay) Occupied(neutral color.NRGBA) []string {
	var keys []string
	for key, c := range o {
		if c != neutral {
			keys = append(keys, key)
		}
	}
	return keys
}

// SpeciesMap is one built figure.
type SpeciesMap struct {
	Index     int
	Species   string
	Overlay   Overlay
	Caption   Caption
	Specimens int
	Counties  int
	// CountyKeys lists the matched area keys in first-seen order.
	CountyKeys []string
}

// Builder colors the reference areas for one species at a time.
type Builder struct {
	Areas   *areas.Set
	Policy  palette.Policy
	Neutral color.NRGBA
	// Label numbers figures; FigureLabel when nil.
	Label func(int) string
}

// Build colors every area occupied by species within subset. index is the
// species' position in the enumeration and sets the figure label. Raw county
// values that match no area are returned in first-seen order.
func (b Builder) Build(index int, species string, subset []dataset.Record) (SpeciesMap, []string) {
	overlay := make(Overlay, b.Areas.Len())
	for _, area := range b.Areas.All() {
		overlay[area.Key] = b.Neutral
	}

	species = strings.ToLower(strings.TrimSpace(species))
	var (
		first     *dataset.Record
		specimens int
		order     []string
		years     = make(map[string][]int)
		unmatched []string
		seenRaw   = make(map[string]struct{})
	)
	for i := range subset {
		rec := subset[i]
		if !strings.EqualFold(strings.TrimSpace(rec.Species), species) {
			continue
		}
		if first == nil {
			first = &subset[i]
		}
		area, ok := b.Areas.Lookup(rec.County)
		if !ok {
			if _, seen := seenRaw[rec.County]; !seen && !textutil.IsBlank(rec.County) {
				seenRaw[rec.County] = struct{}{}
				unmatched = append(unmatched, rec.County)
			}
			continue
		}
		specimens++
		if _, seen := years[area.Key]; !seen {
			order = append(order, area.Key)
			years[area.Key] = nil
		}
		if rec.HasYear {
			years[area.Key] = append(years[area.Key], rec.Year)
		}
	}

	for _, key := range order {
		overlay[key] = b.Policy.CountyColor(years[key])
	}

	label := FigureLabel
	if b.Label != nil {
		label = b.Label
	}
	caption := NewCaption(label(index), "", "", species)
	if first != nil {
		caption = NewCaption(label(index), first.Genus, first.Subgenus, first.Species)
	}

	return SpeciesMap{
		Index:      index,
		Species:    species,
		Overlay:    overlay,
		Caption:    caption,
		Specimens:  specimens,
		Counties:   len(order),
		CountyKeys: order,
	}, unmatched
}
