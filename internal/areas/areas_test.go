package areas_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"speciesmap/internal/areas"
	"speciesmap/internal/testsupport"
)

func TestLoadFixtureAreas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counties.geojson")
	testsupport.WriteAreas(t, path, "NAME", "Missoula", "Lewis and Clark", "Flathead")

	set, err := areas.Load(path, "NAME")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if set.Len() != 3 {
		t.Fatalf("Len = %d, want 3", set.Len())
	}
	all := set.All()
	if all[1].Name != "Lewis and Clark" || all[1].Key != "lewis and clark" {
		t.Fatalf("unexpected area: %+v", all[1])
	}
	if !reflect.DeepEqual(set.Keys(), []string{"flathead", "lewis and clark", "missoula"}) {
		t.Fatalf("Keys = %v", set.Keys())
	}

	bounds := set.Bounds()
	if bounds == nil {
		t.Fatal("expected bounds")
	}
	if bounds.Min(0) != -116 || bounds.Max(0) != -113 || bounds.Min(1) != 45 || bounds.Max(1) != 46 {
		t.Fatalf("unexpected bounds: %v %v", bounds.Min(0), bounds.Max(0))
	}
}

func TestLookupNormalizes(t *testing.T) {
	set := testsupport.AreaSet(t)
	area, ok := set.Lookup(" Lewis & Clark ")
	if !ok || area.Name != "Lewis and Clark" {
		t.Fatalf("Lookup = %+v, %v", area, ok)
	}
	if set.Contains("Not-A-County") {
		t.Fatal("unexpected match for Not-A-County")
	}
}

func TestDecodeRejectsMissingName(t *testing.T) {
	data := testsupport.AreasGeoJSON(t, "COUNTY", "Missoula")
	if _, err := areas.Decode(bytes.NewReader(data), "NAME"); err == nil || !strings.Contains(err.Error(), "NAME") {
		t.Fatalf("expected missing property error, got %v", err)
	}
}

func TestDecodeRejectsPoints(t *testing.T) {
	data := `{"type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"Point","coordinates":[1,2]},"properties":{"NAME":"Dot"}}]}`
	_, err := areas.Decode(strings.NewReader(data), "NAME")
	if !errors.Is(err, areas.ErrUnsupportedGeometry) {
		t.Fatalf("expected ErrUnsupportedGeometry, got %v", err)
	}
}

func TestNewSetRejectsDuplicates(t *testing.T) {
	_, err := areas.NewSet([]areas.Area{{Name: "Lewis & Clark"}, {Name: "lewis and clark"}})
	if err == nil {
		t.Fatal("expected duplicate error")
	}
	if _, err := areas.NewSet(nil); !errors.Is(err, areas.ErrNoAreas) {
		t.Fatalf("expected ErrNoAreas, got %v", err)
	}
}
