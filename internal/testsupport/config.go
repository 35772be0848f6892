package testsupport

import (
	"path/filepath"
	"testing"

	"speciesmap/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
	names   []string
}

// NewConfig produces a config seeded with unique temp directories per test and
// a fixture reference area file. Rendering runs at a low DPI to keep tests fast.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.OutputDir = filepath.Join(base, "out")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Areas.Path = filepath.Join(base, "areas.geojson")
	cfgVal.Render.DPI = 24

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
		names:   DefaultCounties,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if builder.cfg.Areas.Path == filepath.Join(base, "areas.geojson") {
		WriteAreas(t, builder.cfg.Areas.Path, builder.cfg.Areas.NameProperty, builder.names...)
	}
	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithDPI overrides the render resolution.
func WithDPI(dpi int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Render.DPI = dpi
	}
}

// WithPageSize overrides the gallery page size and grid.
func WithPageSize(size, columns, rows int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Gallery.PageSize = size
		b.cfg.Gallery.Columns = columns
		b.cfg.Gallery.Rows = rows
	}
}

// WithCounties replaces the fixture area names.
func WithCounties(names ...string) ConfigOption {
	return func(b *configBuilder) {
		b.names = names
	}
}

// WithAreasPath points the config at an existing GeoJSON file.
func WithAreasPath(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Areas.Path = path
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
