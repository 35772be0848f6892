package testsupport

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"speciesmap/internal/areas"
)

// DefaultCounties are the fixture area names. Each becomes a unit square.
var DefaultCounties = []string{
	"Missoula",
	"Gallatin",
	"Flathead",
	"Lewis and Clark",
	"Deer Lodge",
	"Yellowstone",
}

// AreasGeoJSON builds a FeatureCollection of unit squares laid out four per row.
func AreasGeoJSON(t testing.TB, nameProperty string, names ...string) []byte {
	t.Helper()

	if nameProperty == "" {
		nameProperty = "NAME"
	}
	collection := geojson.FeatureCollection{}
	for i, name := range names {
		x := -116.0 + float64(i%4)
		y := 45.0 + float64(i/4)
		poly := geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{
			{x, y}, {x + 1, y}, {x + 1, y + 1}, {x, y + 1}, {x, y},
		}})
		collection.Features = append(collection.Features, &geojson.Feature{
			Geometry:   poly,
			Properties: map[string]interface{}{nameProperty: name},
		})
	}
	data, err := collection.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal fixture areas: %v", err)
	}
	return data
}

// WriteAreas writes fixture areas to path.
func WriteAreas(t testing.TB, path, nameProperty string, names ...string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, AreasGeoJSON(t, nameProperty, names...), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// AreaSet decodes fixture areas. With no names, DefaultCounties are used.
func AreaSet(t testing.TB, names ...string) *areas.Set {
	t.Helper()

	if len(names) == 0 {
		names = DefaultCounties
	}
	set, err := areas.Decode(bytes.NewReader(AreasGeoJSON(t, "NAME", names...)), "NAME")
	if err != nil {
		t.Fatalf("decode fixture areas: %v", err)
	}
	return set
}
