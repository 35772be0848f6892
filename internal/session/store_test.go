package session_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"speciesmap/internal/dataset"
	"speciesmap/internal/palette"
	"speciesmap/internal/session"
	"speciesmap/internal/testsupport"
)

func sampleDataset() *dataset.Dataset {
	return &dataset.Dataset{
		Source: "/data/specimens.xlsx",
		Records: []dataset.Record{
			{County: "Missoula", Family: "apidae", Genus: "megachile", Species: "relativa", Year: 2010, HasYear: true},
			{County: "Lewis & Clark", Family: "apidae", Genus: "megachile", Subgenus: "xanthosarus", Species: "latimanus"},
		},
		Rejected: []dataset.Record{
			{County: "Not-A-County", Family: "apidae", Genus: "megachile", Species: "relativa"},
		},
		Summary: dataset.Summary{
			TotalRows: 3, Matched: 2, Families: 1, Genera: 1, Species: 2, Counties: 2,
			Unmatched: []dataset.UnmatchedCounty{{Value: "Not-A-County", Rows: 1}},
		},
	}
}

func TestOpenCreatesSchemaAndReopens(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	if store.Path() != cfg.SessionDBPath() {
		t.Fatalf("Path = %s", store.Path())
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	again, err := session.Open(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()
}

func TestDatasetRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	loaded, err := store.LoadDataset(ctx)
	if err != nil || loaded != nil {
		t.Fatalf("expected no dataset, got %v %v", loaded, err)
	}

	ds := sampleDataset()
	at := time.Date(2026, 4, 19, 12, 0, 0, 0, time.UTC)
	if err := store.SaveDataset(ctx, ds, at); err != nil {
		t.Fatalf("SaveDataset: %v", err)
	}
	loaded, err = store.LoadDataset(ctx)
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	if !loaded.LoadedAt.Equal(at) {
		t.Fatalf("LoadedAt = %v", loaded.LoadedAt)
	}
	if !reflect.DeepEqual(loaded.Dataset, ds) {
		t.Fatalf("dataset mismatch:\n got %+v\nwant %+v", loaded.Dataset, ds)
	}
}

func TestSaveDatasetClearsGallery(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := store.SaveDataset(ctx, sampleDataset(), time.Now()); err != nil {
		t.Fatalf("SaveDataset: %v", err)
	}
	if err := store.ReplaceGallery(ctx, session.GalleryState{
		Family: "Apidae", Genus: "Megachile", Species: []string{"relativa"},
		Policy: palette.Spec{Kind: palette.KindSingle, Color: "red"}, RunID: "r1", GeneratedAt: time.Now(),
	}); err != nil {
		t.Fatalf("ReplaceGallery: %v", err)
	}
	if err := store.SaveDataset(ctx, sampleDataset(), time.Now()); err != nil {
		t.Fatalf("SaveDataset: %v", err)
	}
	state, err := store.LoadGallery(ctx)
	if err != nil || state != nil {
		t.Fatalf("expected gallery cleared, got %+v %v", state, err)
	}
}

func TestGalleryReplaceAndCursor(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	want := session.GalleryState{
		Family:      "Apidae",
		Genus:       "Megachile",
		Policy:      palette.Spec{Kind: palette.KindYearSplit, Split: "2014", Pre: "green", Post: "red", Fallback: "grey"},
		Species:     []string{"relativa", "perihirta"},
		RunID:       "run-1",
		GeneratedAt: time.Date(2026, 4, 19, 12, 0, 0, 0, time.UTC),
	}
	if err := store.ReplaceGallery(ctx, want); err != nil {
		t.Fatalf("ReplaceGallery: %v", err)
	}
	if err := store.SetCursor(ctx, 3); err != nil {
		t.Fatalf("SetCursor: %v", err)
	}
	page, err := store.Cursor(ctx)
	if err != nil || page != 3 {
		t.Fatalf("Cursor = %d, %v", page, err)
	}

	got, err := store.LoadGallery(ctx)
	if err != nil {
		t.Fatalf("LoadGallery: %v", err)
	}
	if !reflect.DeepEqual(*got, want) {
		t.Fatalf("gallery mismatch:\n got %+v\nwant %+v", *got, want)
	}

	want.Species = []string{"latimanus"}
	want.RunID = "run-2"
	if err := store.ReplaceGallery(ctx, want); err != nil {
		t.Fatalf("ReplaceGallery: %v", err)
	}
	got, _ = store.LoadGallery(ctx)
	if !reflect.DeepEqual(got.Species, []string{"latimanus"}) || got.RunID != "run-2" {
		t.Fatalf("gallery not replaced wholesale: %+v", got)
	}
	if page, _ := store.Cursor(ctx); page != 0 {
		t.Fatalf("cursor should reset, got %d", page)
	}
}

func TestRunsHistory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	base := time.Date(2026, 4, 19, 12, 0, 0, 0, time.UTC)
	first := session.Run{ID: "a", Kind: session.RunGenerate, StartedAt: base, Family: "Apidae", Genus: "Megachile"}
	if err := store.StartRun(ctx, first); err != nil {
		t.Fatalf("StartRun: %v", err)
	}
	first.Status = session.RunSucceeded
	first.FinishedAt = base.Add(time.Second)
	first.Species = 2
	first.Pages = 1
	first.Unmatched = []string{"Not-A-County"}
	if err := store.FinishRun(ctx, first); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	second := session.Run{ID: "b", Kind: session.RunExportAll, StartedAt: base.Add(time.Minute)}
	if err := store.StartRun(ctx, second); err != nil {
		t.Fatalf("StartRun: %v", err)
	}

	runs, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "b" || runs[1].ID != "a" {
		t.Fatalf("unexpected run order: %+v", runs)
	}
	if runs[0].Status != session.RunRunning {
		t.Fatalf("status = %s", runs[0].Status)
	}

	got, err := store.GetRun(ctx, "a")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Status != session.RunSucceeded || got.Species != 2 || !reflect.DeepEqual(got.Unmatched, []string{"Not-A-County"}) {
		t.Fatalf("unexpected run: %+v", got)
	}
	if missing, err := store.GetRun(ctx, "zzz"); err != nil || missing != nil {
		t.Fatalf("expected nil run, got %v %v", missing, err)
	}
	limited, _ := store.ListRuns(ctx, 1)
	if len(limited) != 1 {
		t.Fatalf("limit ignored: %d", len(limited))
	}
}
