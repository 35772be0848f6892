package mapper

import (
	"context"
	"fmt"

	"speciesmap/internal/config"
	"speciesmap/internal/dataset"
	"speciesmap/internal/logging"
	"speciesmap/internal/session"
	"speciesmap/internal/taxonomy"
)

// LoadResult describes a stored dataset.
type LoadResult struct {
	RunID   string          `json:"run_id"`
	Source  string          `json:"source"`
	Summary dataset.Summary `json:"summary"`
}

// Load reads path, keeps the rows whose county matches a reference area, and
// replaces the stored dataset. Any previous gallery is discarded. On error the
// previous session is left as it was.
func (s *Service) Load(ctx context.Context, path string) (result *LoadResult, err error) {
	set, err := s.Areas()
	if err != nil {
		return nil, err
	}
	source, err := config.ExpandPath(path)
	if err != nil {
		return nil, err
	}

	release, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	scope, err := s.startRun(ctx, session.RunLoad, "", "")
	if err != nil {
		return nil, err
	}
	scope.run.Output = source
	defer func() { s.finish(scope, err) }()

	ds, err := dataset.Load(source, set)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	if err := s.store.SaveDataset(scope.ctx, ds, s.now()); err != nil {
		return nil, err
	}

	summary := ds.Summary
	scope.run.Species = summary.Species
	for _, u := range summary.Unmatched {
		scope.run.Unmatched = append(scope.run.Unmatched, u.Value)
	}
	scope.logger.Info("dataset loaded",
		logging.String(logging.FieldEventType, "dataset_loaded"),
		logging.String("source_path", source),
		logging.Int("records", summary.Matched),
		logging.Int("families", summary.Families),
		logging.Int("genera", summary.Genera),
		logging.Int("species_count", summary.Species),
		logging.Int("counties", summary.Counties),
	)
	if len(summary.Unmatched) > 0 || summary.BlankCounty > 0 {
		logging.WarnWithContext(scope.logger, "rows skipped during load", "load_rows_skipped",
			logging.Int("unmatched_values", len(summary.Unmatched)),
			logging.Int("blank_county_rows", summary.BlankCounty),
			logging.String(logging.FieldImpact, "rows without a matching county are not mapped"),
			logging.String(logging.FieldErrorHint, "run generate to see suggested county names"),
		)
	}
	return &LoadResult{RunID: scope.run.ID, Source: source, Summary: summary}, nil
}

func (s *Service) dataset(ctx context.Context) (*dataset.Dataset, error) {
	loaded, err := s.store.LoadDataset(ctx)
	if err != nil {
		return nil, err
	}
	if loaded == nil {
		return nil, ErrNoDataset
	}
	return loaded.Dataset, nil
}

// Families lists the title-cased families in the loaded dataset.
func (s *Service) Families(ctx context.Context) ([]string, error) {
	ds, err := s.dataset(ctx)
	if err != nil {
		return nil, err
	}
	return taxonomy.Families(ds.Records), nil
}

// Genera lists the genera within family. A blank family lists every genus.
func (s *Service) Genera(ctx context.Context, family string) ([]string, error) {
	ds, err := s.dataset(ctx)
	if err != nil {
		return nil, err
	}
	sel := taxonomy.All()
	if family != "" {
		if sel, err = taxonomy.ParseSelector(taxonomy.FieldFamily, family); err != nil {
			return nil, err
		}
	}
	return taxonomy.Genera(ds.Records, sel), nil
}
