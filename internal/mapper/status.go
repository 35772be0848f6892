package mapper

import (
	"context"
	"time"

	"speciesmap/internal/dataset"
	"speciesmap/internal/preflight"
	"speciesmap/internal/session"
)

// Status summarizes the session for the status command.
type Status struct {
	Dataset *DatasetStatus     `json:"dataset,omitempty"`
	Gallery *GalleryStatus     `json:"gallery,omitempty"`
	LastRun *session.Run       `json:"last_run,omitempty"`
	Checks  []preflight.Result `json:"checks"`
	Busy    bool               `json:"busy"`
}

// DatasetStatus describes the loaded table.
type DatasetStatus struct {
	Source   string          `json:"source"`
	LoadedAt time.Time       `json:"loaded_at"`
	Summary  dataset.Summary `json:"summary"`
}

// GalleryStatus describes the stored gallery and cursor.
type GalleryStatus struct {
	Family      string    `json:"family"`
	Genus       string    `json:"genus"`
	Legend      string    `json:"legend"`
	Species     int       `json:"species"`
	Page        int       `json:"page"`
	PageCount   int       `json:"page_count"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Status reports the stored dataset, gallery, last run and preflight checks.
func (s *Service) Status(ctx context.Context) (*Status, error) {
	status := &Status{Checks: preflight.RunAll(ctx, s.cfg)}

	loaded, err := s.store.LoadDataset(ctx)
	if err != nil {
		return nil, err
	}
	if loaded != nil {
		status.Dataset = &DatasetStatus{
			Source:   loaded.Dataset.Source,
			LoadedAt: loaded.LoadedAt,
			Summary:  loaded.Dataset.Summary,
		}
	}

	state, err := s.store.LoadGallery(ctx)
	if err != nil {
		return nil, err
	}
	if state != nil {
		gs := &GalleryStatus{
			Family:      state.Family,
			Genus:       state.Genus,
			Species:     len(state.Species),
			GeneratedAt: state.GeneratedAt,
		}
		if policy, err := state.Policy.Policy(); err == nil {
			gs.Legend = policy.Legend()
		}
		if size := s.cfg.Gallery.PageSize; size > 0 {
			gs.PageCount = (gs.Species + size - 1) / size
		}
		page, err := s.store.Cursor(ctx)
		if err != nil {
			return nil, err
		}
		gs.Page = page + 1
		status.Gallery = gs
	}

	runs, err := s.store.ListRuns(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) > 0 {
		status.LastRun = runs[0]
	}

	if s.running.Load() {
		status.Busy = true
	} else if ok, err := s.lock.TryLock(); err == nil {
		if ok {
			_ = s.lock.Unlock()
		} else {
			status.Busy = true
		}
	}
	return status, nil
}

// Runs returns the most recent runs first. limit <= 0 returns all.
func (s *Service) Runs(ctx context.Context, limit int) ([]*session.Run, error) {
	return s.store.ListRuns(ctx, limit)
}
