package compose_test

import (
	"reflect"
	"sort"
	"testing"

	"speciesmap/internal/choropleth"
	"speciesmap/internal/compose"
	"speciesmap/internal/dataset"
	"speciesmap/internal/palette"
	"speciesmap/internal/taxonomy"
	"speciesmap/internal/testsupport"
)

func newComposer(t *testing.T, records []dataset.Record) compose.Composer {
	t.Helper()
	policy, err := palette.NewSingle("grey")
	if err != nil {
		t.Fatalf("NewSingle: %v", err)
	}
	sel, err := taxonomy.NewSelection("apidae", "megachile")
	if err != nil {
		t.Fatalf("NewSelection: %v", err)
	}
	return compose.Composer{
		Areas:     testsupport.AreaSet(t),
		Policy:    policy,
		Neutral:   palette.MustParse("white"),
		Records:   taxonomy.Apply(records, sel),
		Selection: sel,
		Region:    "MT",
	}
}

func megachileRecords() []dataset.Record {
	return []dataset.Record{
		{County: "Missoula", Family: "apidae", Genus: "megachile", Species: "relativa"},
		{County: "Gallatin", Family: "apidae", Genus: "megachile", Species: "relativa"},
		{County: "Flathead", Family: "apidae", Genus: "megachile", Species: "perihirta"},
	}
}

func TestComposeFillsRowMajor(t *testing.T) {
	c := newComposer(t, megachileRecords())
	maps := []choropleth.SpeciesMap{
		{Index: 15, Species: "relativa"},
		{Index: 16, Species: "perihirta"},
	}
	page := c.Compose(maps, 1)

	if page.Number() != 2 || page.Title != "Apidae > Megachile" || page.Legend != "Color Used: Grey" {
		t.Fatalf("unexpected page header: %+v", page)
	}
	if len(page.Cells) != 15 {
		t.Fatalf("expected 15 cells, got %d", len(page.Cells))
	}
	first, second := page.Cells[0], page.Cells[1]
	if first.Empty || second.Empty {
		t.Fatal("first two cells should be filled")
	}
	if second.Row != 0 || second.Column != 1 || page.Cells[3].Row != 1 || page.Cells[3].Column != 0 {
		t.Fatal("cells are not row-major")
	}
	for _, cell := range page.Cells[2:] {
		if !cell.Empty {
			t.Fatalf("trailing cell should be empty: %+v", cell)
		}
	}
	if len(page.Filled()) != 2 {
		t.Fatalf("Filled = %d", len(page.Filled()))
	}

	if first.Caption.String() != "Figure 1P. Megachile relativa" {
		t.Fatalf("caption = %q", first.Caption.String())
	}
	if first.Detail != "in MT, 2 specimens in 2 counties." {
		t.Fatalf("detail = %q", first.Detail)
	}
	if second.Detail != "in MT, 1 specimen in 1 county." {
		t.Fatalf("detail = %q", second.Detail)
	}

	keys := first.Overlay.Occupied(palette.MustParse("white"))
	sort.Strings(keys)
	if !reflect.DeepEqual(keys, []string{"gallatin", "missoula"}) {
		t.Fatalf("occupied = %v", keys)
	}
}

func TestComposeRederivesFromRecords(t *testing.T) {
	c := newComposer(t, megachileRecords())
	stale := choropleth.SpeciesMap{
		Index:   0,
		Species: "relativa",
		Overlay: choropleth.Overlay{"yellowstone": palette.MustParse("red")},
	}
	page := c.Compose([]choropleth.SpeciesMap{stale}, 0)
	if _, ok := page.Cells[0].Overlay["yellowstone"]; !ok {
		t.Fatal("overlay should cover every area")
	}
	if page.Cells[0].Overlay["yellowstone"] != palette.MustParse("white") {
		t.Fatal("composer reused the cached overlay instead of rebuilding")
	}
}

func TestComposeIsDeterministic(t *testing.T) {
	c := newComposer(t, megachileRecords())
	maps := []choropleth.SpeciesMap{{Index: 0, Species: "relativa"}, {Index: 1, Species: "perihirta"}}
	if !reflect.DeepEqual(c.Compose(maps, 0), c.Compose(maps, 0)) {
		t.Fatal("compose should produce identical pages for identical input")
	}
}

func TestDetailLine(t *testing.T) {
	tests := []struct {
		specimens, counties int
		want                string
	}{
		{1, 1, "in MT, 1 specimen in 1 county."},
		{0, 0, "in MT, 0 specimens in 0 counties."},
		{5, 1, "in MT, 5 specimens in 1 county."},
	}
	for _, tt := range tests {
		if got := compose.DetailLine("MT", tt.specimens, tt.counties); got != tt.want {
			t.Errorf("DetailLine(%d,%d) = %q, want %q", tt.specimens, tt.counties, got, tt.want)
		}
	}
}
