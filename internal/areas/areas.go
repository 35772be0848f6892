package areas

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"speciesmap/internal/textutil"
)

var (
	// ErrNoAreas reports a reference file without usable features.
	ErrNoAreas = errors.New("no reference areas")
	// ErrUnsupportedGeometry reports a feature that is not a polygon.
	ErrUnsupportedGeometry = errors.New("unsupported geometry")
)

// Area is one administrative unit.
type Area struct {
	Name     string
	Key      string
	Geometry geom.T
}

// Set is an ordered, immutable collection of areas indexed by normalized name.
type Set struct {
	areas  []Area
	byKey  map[string]int
	bounds *geom.Bounds
}

// Load reads a GeoJSON FeatureCollection from path.
func Load(path, nameProperty string) (*Set, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference areas: %w", err)
	}
	defer file.Close()
	set, err := Decode(file, nameProperty)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Decode parses a FeatureCollection, naming each area by nameProperty.
func Decode(r io.Reader, nameProperty string) (*Set, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read reference areas: %w", err)
	}
	var collection geojson.FeatureCollection
	if err := collection.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}

	list := make([]Area, 0, len(collection.Features))
	for i, feature := range collection.Features {
		if feature == nil {
			continue
		}
		raw, ok := feature.Properties[nameProperty]
		if !ok || raw == nil {
			return nil, fmt.Errorf("feature %d: missing %q property", i, nameProperty)
		}
		name := strings.TrimSpace(fmt.Sprint(raw))
		if name == "" {
			return nil, fmt.Errorf("feature %d: empty %q property", i, nameProperty)
		}
		switch feature.Geometry.(type) {
		case *geom.Polygon, *geom.MultiPolygon:
		default:
			return nil, fmt.Errorf("feature %d (%s): %w %T", i, name, ErrUnsupportedGeometry, feature.Geometry)
		}
		list = append(list, Area{Name: name, Geometry: feature.Geometry})
	}
	return NewSet(list)
}

// NewSet indexes areas by their normalized names. Duplicate names are rejected.
func NewSet(list []Area) (*Set, error) {
	if len(list) == 0 {
		return nil, ErrNoAreas
	}
	set := &Set{
		areas: make([]Area, 0, len(list)),
		byKey: make(map[string]int, len(list)),
	}
	for _, area := range list {
		area.Key = textutil.NormalizeName(area.Name)
		if _, dup := set.byKey[area.Key]; dup {
			return nil, fmt.Errorf("duplicate reference area %q", area.Name)
		}
		set.byKey[area.Key] = len(set.areas)
		set.areas = append(set.areas, area)
		if area.Geometry == nil {
			continue
		}
		if set.bounds == nil {
			set.bounds = geom.NewBounds(geom.XY)
		}
		set.bounds.Extend(area.Geometry)
	}
	return set, nil
}

// Len returns the number of areas.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.areas)
}

// All returns the areas in file order. Callers must not modify the geometry.
func (s *Set) All() []Area {
	if s == nil {
		return nil
	}
	return append([]Area(nil), s.areas...)
}

// Lookup finds the area matching a raw county value after normalization.
func (s *Set) Lookup(county string) (Area, bool) {
	if s == nil {
		return Area{}, false
	}
	idx, ok := s.byKey[textutil.NormalizeName(county)]
	if !ok {
		return Area{}, false
	}
	return s.areas[idx], true
}

// Contains reports whether county names a known area.
func (s *Set) Contains(county string) bool {
	_, ok := s.Lookup(county)
	return ok
}

// Keys returns the normalized area names, sorted.
func (s *Set) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s.areas))
	for _, area := range s.areas {
		keys = append(keys, area.Key)
	}
	sort.Strings(keys)
	return keys
}

// Bounds returns the XY envelope of every area, or nil without geometry.
func (s *Set) Bounds() *geom.Bounds {
	if s == nil || s.bounds == nil {
		return nil
	}
	return s.bounds.Clone()
}
