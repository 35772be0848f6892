package mapper

import (
	"context"
	"fmt"
	"os"

	"speciesmap/internal/export"
	"speciesmap/internal/gallery"
	"speciesmap/internal/logging"
	"speciesmap/internal/preflight"
	"speciesmap/internal/session"
)

// ExportResult describes a written export.
type ExportResult struct {
	RunID string `json:"run_id"`
	export.Result
}

// ExportPage writes the 1-based page n (the current page when n <= 0) as a
// TIFF into the output directory. The cursor does not move.
func (s *Service) ExportPage(ctx context.Context, n int) (*ExportResult, error) {
	return s.runExport(ctx, session.RunExportPage, func(ctx context.Context, b *export.Bundler, v *view) (export.Result, error) {
		cursor := v.cursor
		if n > 0 {
			cursor = cursor.Set(v.gallery, n-1)
		}
		return b.ExportPage(ctx, v.gallery, cursor.Page)
	})
}

// ExportAll writes every page into one ZIP archive in the output directory.
func (s *Service) ExportAll(ctx context.Context, progress gallery.ProgressFunc) (*ExportResult, error) {
	return s.runExport(ctx, session.RunExportAll, func(ctx context.Context, b *export.Bundler, v *view) (export.Result, error) {
		return b.ExportAll(ctx, v.gallery, progress)
	})
}

type exportFunc func(ctx context.Context, b *export.Bundler, v *view) (export.Result, error)

func (s *Service) runExport(ctx context.Context, kind session.RunKind, fn exportFunc) (result *ExportResult, err error) {
	release, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	v, err := s.loadView(ctx)
	if err != nil {
		return nil, err
	}

	scope, err := s.startRun(ctx, kind, v.state.Family, v.state.Genus)
	if err != nil {
		return nil, err
	}
	defer func() { s.finish(scope, err) }()

	if err := os.MkdirAll(s.cfg.Paths.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	if check := preflight.CheckDirectoryAccess("Output directory", s.cfg.Paths.OutputDir); !check.Passed {
		return nil, fmt.Errorf("output directory unusable: %s", check.Detail)
	}

	bundler, closeFn, err := s.bundler(v)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	written, err := fn(scope.ctx, bundler, v)
	if err != nil {
		return nil, err
	}

	scope.run.Output = written.Path
	scope.run.Pages = len(written.Pages)
	scope.run.Species = v.gallery.Len()
	scope.logger.Info("export written",
		logging.String(logging.FieldEventType, string(kind)+"_written"),
		logging.String("output_path", written.Path),
		logging.Int("pages", len(written.Pages)),
		logging.Int64("output_bytes", written.Bytes),
	)
	return &ExportResult{RunID: scope.run.ID, Result: written}, nil
}
