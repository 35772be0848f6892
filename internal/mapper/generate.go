package mapper

import (
	"context"
	"fmt"
	"strings"

	"speciesmap/internal/choropleth"
	"speciesmap/internal/gallery"
	"speciesmap/internal/logging"
	"speciesmap/internal/palette"
	"speciesmap/internal/session"
	"speciesmap/internal/taxonomy"
)

// GenerateRequest selects the records to map and how to color them. A zero
// Policy uses DefaultPolicy.
type GenerateRequest struct {
	Family string
	Genus  string
	Policy palette.Spec
}

// GenerateResult describes a stored gallery.
type GenerateResult struct {
	RunID     string            `json:"run_id"`
	Title     string            `json:"title"`
	Legend    string            `json:"legend"`
	Species   []string          `json:"species"`
	Pages     int               `json:"pages"`
	Unmatched choropleth.Report `json:"unmatched"`
}

// Generate builds one map per species of the selection and replaces the
// stored gallery. The selection and colors are validated before any map is
// built; on error or cancellation the previous gallery is kept.
func (s *Service) Generate(ctx context.Context, req GenerateRequest, progress gallery.ProgressFunc) (result *GenerateResult, err error) {
	sel, err := taxonomy.NewSelection(req.Family, req.Genus)
	if err != nil {
		return nil, err
	}
	spec := req.Policy
	if spec == (palette.Spec{}) {
		spec = DefaultPolicy(s.cfg)
	}
	policy, err := spec.Policy()
	if err != nil {
		return nil, fmt.Errorf("color policy: %w", err)
	}
	neutral, err := palette.Parse(s.cfg.Render.NeutralColor)
	if err != nil {
		return nil, fmt.Errorf("neutral color: %w", err)
	}
	set, err := s.Areas()
	if err != nil {
		return nil, err
	}

	release, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	ds, err := s.dataset(ctx)
	if err != nil {
		return nil, err
	}

	scope, err := s.startRun(ctx, session.RunGenerate, sel.Family.String(), sel.Genus.String())
	if err != nil {
		return nil, err
	}
	defer func() { s.finish(scope, err) }()

	species := taxonomy.Species(taxonomy.Apply(ds.Records, sel))
	if len(species) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSpecies, sel.Title())
	}

	subset := taxonomy.Apply(ds.All(), sel)
	builder := choropleth.Builder{Areas: set, Policy: policy, Neutral: neutral}
	var unmatched choropleth.UnmatchedSet
	build := func(index int, name string) (choropleth.SpeciesMap, error) {
		m, missing := builder.Build(index, name, subset)
		unmatched.Add(missing...)
		return m, nil
	}

	sampler := logging.NewProgressSampler(10)
	report := func(current, total int) {
		if sampler.ShouldLog(logging.Percent(current, total), "building") {
			scope.logger.Debug("building maps",
				logging.Int("current", current),
				logging.Int("total", total),
				logging.Float64(logging.FieldProgressPercent, logging.Percent(current, total)),
			)
		}
		if progress != nil {
			progress(current, total)
		}
	}

	g, err := gallery.Rebuild(scope.ctx, species, s.cfg.Gallery.PageSize, build, report)
	if err != nil {
		return nil, err
	}

	state := session.GalleryState{
		Family:      sel.Family.String(),
		Genus:       sel.Genus.String(),
		Policy:      policy.Spec(),
		Species:     g.Species(),
		RunID:       scope.run.ID,
		GeneratedAt: s.now(),
	}
	if err := s.store.ReplaceGallery(scope.ctx, state); err != nil {
		return nil, err
	}

	unmatchedReport := unmatched.Report(set)
	scope.run.Species = g.Len()
	scope.run.Pages = g.PageCount()
	scope.run.Unmatched = unmatchedReport.Counties
	if len(unmatchedReport.Counties) > 0 {
		logging.WarnWithContext(scope.logger, "county names without a reference area", "unmatched_counties",
			logging.String("counties", strings.Join(unmatchedReport.Counties, ", ")),
			logging.String("suggestions", formatSuggestions(unmatchedReport)),
			logging.String(logging.FieldImpact, "records from these counties are not drawn"),
			logging.String(logging.FieldErrorHint, "correct the county names in the table and load it again"),
		)
	}
	scope.logger.Info("gallery generated",
		logging.String(logging.FieldEventType, "gallery_generated"),
		logging.String(logging.FieldFamily, state.Family),
		logging.String(logging.FieldGenus, state.Genus),
		logging.Int("species_count", g.Len()),
		logging.Int("pages", g.PageCount()),
	)

	return &GenerateResult{
		RunID:     scope.run.ID,
		Title:     sel.Title(),
		Legend:    policy.Legend(),
		Species:   state.Species,
		Pages:     g.PageCount(),
		Unmatched: unmatchedReport,
	}, nil
}

func formatSuggestions(report choropleth.Report) string {
	parts := make([]string, 0, len(report.Suggestions))
	for _, county := range report.Counties {
		if hint, ok := report.Suggestions[county]; ok {
			parts = append(parts, fmt.Sprintf("%s -> %s", county, hint))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}
