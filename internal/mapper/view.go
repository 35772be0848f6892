package mapper

import (
	"context"
	"fmt"
	"io"

	"speciesmap/internal/choropleth"
	"speciesmap/internal/compose"
	"speciesmap/internal/export"
	"speciesmap/internal/gallery"
	"speciesmap/internal/palette"
	"speciesmap/internal/render"
	"speciesmap/internal/session"
	"speciesmap/internal/taxonomy"
)

// view is the stored gallery rebuilt from the stored records.
type view struct {
	state    *session.GalleryState
	gallery  *gallery.Gallery
	composer compose.Composer
	cursor   gallery.Cursor
}

func (s *Service) loadView(ctx context.Context) (*view, error) {
	ds, err := s.dataset(ctx)
	if err != nil {
		return nil, err
	}
	state, err := s.store.LoadGallery(ctx)
	if err != nil {
		return nil, err
	}
	if state == nil || len(state.Species) == 0 {
		return nil, ErrNoGallery
	}
	set, err := s.Areas()
	if err != nil {
		return nil, err
	}
	policy, err := state.Policy.Policy()
	if err != nil {
		return nil, fmt.Errorf("stored color policy: %w", err)
	}
	neutral, err := palette.Parse(s.cfg.Render.NeutralColor)
	if err != nil {
		return nil, fmt.Errorf("neutral color: %w", err)
	}
	sel, err := taxonomy.NewSelection(state.Family, state.Genus)
	if err != nil {
		return nil, fmt.Errorf("stored selection: %w", err)
	}

	subset := taxonomy.Apply(ds.All(), sel)
	builder := choropleth.Builder{Areas: set, Policy: policy, Neutral: neutral}
	g, err := gallery.Rebuild(ctx, state.Species, s.cfg.Gallery.PageSize, func(index int, name string) (choropleth.SpeciesMap, error) {
		m, _ := builder.Build(index, name, subset)
		return m, nil
	}, nil)
	if err != nil {
		return nil, err
	}

	page, err := s.store.Cursor(ctx)
	if err != nil {
		return nil, err
	}
	return &view{
		state:   state,
		gallery: g,
		composer: compose.Composer{
			Areas:     set,
			Policy:    policy,
			Neutral:   neutral,
			Records:   subset,
			Selection: sel,
			Region:    s.cfg.Areas.RegionLabel,
			Columns:   s.cfg.Gallery.Columns,
			Rows:      s.cfg.Gallery.Rows,
		},
		cursor: gallery.Cursor{}.Set(g, page),
	}, nil
}

// PageView is one composed page and its position in the gallery.
type PageView struct {
	Page      compose.Page `json:"page"`
	PageCount int          `json:"page_count"`
	HasPrev   bool         `json:"has_prev"`
	HasNext   bool         `json:"has_next"`
}

func (v *view) pageView(cursor gallery.Cursor) *PageView {
	return &PageView{
		Page:      v.composer.Compose(v.gallery.Page(cursor.Page), cursor.Page),
		PageCount: v.gallery.PageCount(),
		HasPrev:   cursor.HasPrev(v.gallery),
		HasNext:   cursor.HasNext(v.gallery),
	}
}

// move applies step to the stored cursor and persists the result.
func (s *Service) move(ctx context.Context, step func(gallery.Cursor, *gallery.Gallery) gallery.Cursor) (*PageView, error) {
	v, err := s.loadView(ctx)
	if err != nil {
		return nil, err
	}
	next := step(v.cursor, v.gallery)
	if next.Page != v.cursor.Page {
		if err := s.store.SetCursor(ctx, next.Page); err != nil {
			return nil, err
		}
	}
	return v.pageView(next), nil
}

// ShowPage moves to the 1-based page n, clamped to the gallery. n <= 0 shows
// the current page.
func (s *Service) ShowPage(ctx context.Context, n int) (*PageView, error) {
	return s.move(ctx, func(c gallery.Cursor, g *gallery.Gallery) gallery.Cursor {
		if n <= 0 {
			return c
		}
		return c.Set(g, n-1)
	})
}

// NextPage advances one page; the last page stays put.
func (s *Service) NextPage(ctx context.Context) (*PageView, error) {
	return s.move(ctx, gallery.Cursor.Next)
}

// PrevPage goes back one page; the first page stays put.
func (s *Service) PrevPage(ctx context.Context) (*PageView, error) {
	return s.move(ctx, gallery.Cursor.Prev)
}

// Preview renders the 1-based page n (the current page when n <= 0) as PNG
// into w without moving the cursor.
func (s *Service) Preview(ctx context.Context, n int, w io.Writer) (*PageView, error) {
	v, err := s.loadView(ctx)
	if err != nil {
		return nil, err
	}
	cursor := v.cursor
	if n > 0 {
		cursor = cursor.Set(v.gallery, n-1)
	}
	bundler, closeFn, err := s.bundler(v)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	if _, err := bundler.Preview(v.gallery, cursor.Page, w); err != nil {
		return nil, err
	}
	return v.pageView(cursor), nil
}

func (s *Service) bundler(v *view) (*export.Bundler, func(), error) {
	background, err := palette.Parse(s.cfg.Render.NeutralColor)
	if err != nil {
		return nil, nil, fmt.Errorf("neutral color: %w", err)
	}
	outline, err := palette.Parse(s.cfg.Render.OutlineColor)
	if err != nil {
		return nil, nil, fmt.Errorf("outline color: %w", err)
	}
	renderer, err := render.New(v.composer.Areas, render.Options{
		DPI:          s.cfg.Render.DPI,
		WidthInches:  s.cfg.Render.PageWidthInches,
		HeightInches: s.cfg.Render.PageHeightInches,
		Background:   background,
		Outline:      outline,
		FillOpacity:  s.cfg.Render.FillOpacity,
	})
	if err != nil {
		return nil, nil, err
	}
	return &export.Bundler{
		Composer:  v.composer,
		Renderer:  renderer,
		OutputDir: s.cfg.Paths.OutputDir,
		Prefix:    s.cfg.Export.FilePrefix,
		Genus:     v.state.Genus,
		Layout:    s.cfg.Export.TimestampLayout,
		Now:       s.now,
	}, renderer.Close, nil
}
