package choropleth_test

import (
	"fmt"
	"reflect"
	"sort"
	"testing"

	"speciesmap/internal/choropleth"
	"speciesmap/internal/dataset"
	"speciesmap/internal/palette"
	"speciesmap/internal/taxonomy"
	"speciesmap/internal/testsupport"
)

func TestFigureLabel(t *testing.T) {
	tests := map[int]string{
		0:   "Figure 1A.",
		1:   "Figure 1B.",
		25:  "Figure 1Z.",
		26:  "Figure 2A.",
		51:  "Figure 2Z.",
		52:  "Figure 3A.",
		-4:  "Figure 1A.",
		675: "Figure 26Z.",
	}
	for index, want := range tests {
		if got := choropleth.FigureLabel(index); got != want {
			t.Errorf("FigureLabel(%d) = %q, want %q", index, got, want)
		}
	}
}

func TestFigureLabelClosedForm(t *testing.T) {
	for i := 0; i < 200; i++ {
		label := choropleth.FigureLabel(i)
		var group int
		var letter rune
		if _, err := fmt.Sscanf(label, "Figure %d%c.", &group, &letter); err != nil {
			t.Fatalf("unexpected label %q: %v", label, err)
		}
		if group != i/26+1 || letter != rune('A'+i%26) {
			t.Fatalf("FigureLabel(%d) = %q", i, label)
		}
	}
}

func newBuilder(t *testing.T, color string) choropleth.Builder {
	t.Helper()
	policy, err := palette.NewSingle(color)
	if err != nil {
		t.Fatalf("NewSingle: %v", err)
	}
	return choropleth.Builder{
		Areas:   testsupport.AreaSet(t),
		Policy:  policy,
		Neutral: palette.MustParse("white"),
	}
}

func occupied(m choropleth.SpeciesMap) []string {
	keys := m.Overlay.Occupied(palette.MustParse("white"))
	sort.Strings(keys)
	return keys
}

func TestBuildMegachileScenario(t *testing.T) {
	records := []dataset.Record{
		{County: "missoula", Family: "apidae", Genus: "megachile", Species: "relativa"},
		{County: "gallatin", Family: "apidae", Genus: "megachile", Species: "relativa"},
		{County: "flathead", Family: "apidae", Genus: "megachile", Species: "perihirta"},
	}
	sel, err := taxonomy.NewSelection("Apidae", "Megachile")
	if err != nil {
		t.Fatalf("NewSelection: %v", err)
	}
	subset := taxonomy.Apply(records, sel)
	species := taxonomy.Species(subset)
	if !reflect.DeepEqual(species, []string{"relativa", "perihirta"}) {
		t.Fatalf("species = %v", species)
	}

	b := newBuilder(t, "red")
	relativa, unmatched := b.Build(0, species[0], subset)
	if len(unmatched) != 0 {
		t.Fatalf("unexpected unmatched: %v", unmatched)
	}
	if got := occupied(relativa); !reflect.DeepEqual(got, []string{"gallatin", "missoula"}) {
		t.Fatalf("relativa occupied = %v", got)
	}
	if relativa.Overlay["missoula"] != palette.MustParse("red") {
		t.Fatal("missoula should be red")
	}
	if relativa.Specimens != 2 || relativa.Counties != 2 {
		t.Fatalf("relativa counts = %d/%d", relativa.Specimens, relativa.Counties)
	}
	if relativa.Caption.String() != "Figure 1A. Megachile relativa" {
		t.Fatalf("caption = %q", relativa.Caption.String())
	}

	perihirta, _ := b.Build(1, species[1], subset)
	if got := occupied(perihirta); !reflect.DeepEqual(got, []string{"flathead"}) {
		t.Fatalf("perihirta occupied = %v", got)
	}
	if perihirta.Caption.Label != "Figure 1B." {
		t.Fatalf("label = %q", perihirta.Caption.Label)
	}

	// The first map's overlay must be untouched by the second build.
	if got := occupied(relativa); !reflect.DeepEqual(got, []string{"gallatin", "missoula"}) {
		t.Fatalf("relativa overlay changed after second build: %v", got)
	}
	if len(relativa.Overlay) != 6 {
		t.Fatalf("overlay should cover every area, got %d", len(relativa.Overlay))
	}
}

func TestBuildNormalizesAndReportsUnmatched(t *testing.T) {
	records := []dataset.Record{
		{County: "Lewis & Clark", Genus: "megachile", Species: "relativa"},
		{County: "Not-A-County", Genus: "megachile", Species: "relativa"},
		{County: "Not-A-County", Genus: "megachile", Species: "relativa"},
	}
	b := newBuilder(t, "blue")
	m, unmatched := b.Build(0, "relativa", records)
	if !reflect.DeepEqual(unmatched, []string{"Not-A-County"}) {
		t.Fatalf("unmatched = %v", unmatched)
	}
	if got := occupied(m); !reflect.DeepEqual(got, []string{"lewis and clark"}) {
		t.Fatalf("occupied = %v", got)
	}
	if m.Specimens != 1 {
		t.Fatalf("specimens = %d, want 1", m.Specimens)
	}

	var set choropleth.UnmatchedSet
	set.Add(unmatched...)
	set.Add("Not-A-County", "", "nan")
	report := set.Report(b.Areas)
	if !reflect.DeepEqual(report.Counties, []string{"Not-A-County"}) {
		t.Fatalf("report counties = %v", report.Counties)
	}
	if len(report.ValidNames) != 6 || report.ValidNames[0] != "deer lodge" {
		t.Fatalf("valid names = %v", report.ValidNames)
	}
}

func TestUnmatchedReportSuggests(t *testing.T) {
	var set choropleth.UnmatchedSet
	set.Add("Misoula", "Atlantis")
	report := set.Report(testsupport.AreaSet(t))
	if report.Suggestions["Misoula"] != "missoula" {
		t.Fatalf("suggestions = %v", report.Suggestions)
	}
	if _, ok := report.Suggestions["Atlantis"]; ok {
		t.Fatalf("unexpected suggestion for Atlantis: %v", report.Suggestions)
	}
}

func TestBuildWithYearSplit(t *testing.T) {
	policy, err := palette.NewYearSplit("2014", "green", "red", "grey")
	if err != nil {
		t.Fatalf("NewYearSplit: %v", err)
	}
	b := choropleth.Builder{Areas: testsupport.AreaSet(t), Policy: policy, Neutral: palette.MustParse("white")}
	records := []dataset.Record{
		{County: "Missoula", Species: "relativa", Year: 2010, HasYear: true},
		{County: "Missoula", Species: "relativa", Year: 2018, HasYear: true},
		{County: "Gallatin", Species: "relativa", Year: 2014, HasYear: true},
		{County: "Flathead", Species: "relativa"},
	}
	m, _ := b.Build(0, "relativa", records)
	want := map[string]string{"missoula": "red", "gallatin": "green", "flathead": "grey", "yellowstone": "white"}
	for key, name := range want {
		if m.Overlay[key] != palette.MustParse(name) {
			t.Errorf("%s = %+v, want %s", key, m.Overlay[key], name)
		}
	}
}

func TestCaptionSubgenus(t *testing.T) {
	c := choropleth.NewCaption("Figure 2C.", "megachile", "xanthosarus", "LATIMANUS")
	if got := c.String(); got != "Figure 2C. Megachile (Xanthosarus) latimanus" {
		t.Fatalf("caption = %q", got)
	}
	var italic []string
	for _, span := range c.Spans() {
		if span.Italic {
			italic = append(italic, span.Text)
		}
	}
	if !reflect.DeepEqual(italic, []string{"Megachile", "Xanthosarus", "latimanus"}) {
		t.Fatalf("italic spans = %v", italic)
	}
	if choropleth.NewCaption("Figure 1A.", "bombus", "nan", "rufocinctus").Subgenus != "" {
		t.Fatal("null subgenus should be omitted")
	}
}
