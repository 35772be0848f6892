package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"speciesmap/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "speciesmap")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.Paths.OutputDir != filepath.Join(tempHome, "Downloads") {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	if cfg.SessionDBPath() != filepath.Join(wantState, "session.db") {
		t.Fatalf("unexpected session db path: %q", cfg.SessionDBPath())
	}
	if cfg.Gallery.PageSize != 15 || cfg.Gallery.Columns != 3 || cfg.Gallery.Rows != 5 {
		t.Fatalf("unexpected gallery defaults: %+v", cfg.Gallery)
	}
	if cfg.Colors.Default != "red" {
		t.Fatalf("expected red default color, got %q", cfg.Colors.Default)
	}
	if cfg.Colors.SplitYear != "" {
		t.Fatalf("expected no default split year, got %q", cfg.Colors.SplitYear)
	}
	if cfg.Areas.NameProperty != "NAME" || cfg.Areas.RegionLabel != "MT" {
		t.Fatalf("unexpected area defaults: %+v", cfg.Areas)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.RetentionDays != 30 {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "speciesmap.toml")

	type payload struct {
		Paths struct {
			OutputDir string `toml:"output_dir"`
		} `toml:"paths"`
		Gallery struct {
			PageSize int `toml:"page_size"`
			Columns  int `toml:"columns"`
			Rows     int `toml:"rows"`
		} `toml:"gallery"`
		Colors struct {
			Default   string `toml:"default"`
			SplitYear string `toml:"split_year"`
		} `toml:"colors"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.OutputDir = filepath.Join(tempDir, "maps")
	custom.Gallery.PageSize = 6
	custom.Gallery.Columns = 2
	custom.Gallery.Rows = 3
	custom.Colors.Default = "  #1f77b4 "
	custom.Colors.SplitYear = "2015"
	custom.Logging.Format = "JSON"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.OutputDir != custom.Paths.OutputDir {
		t.Fatalf("expected output dir from file, got %q", cfg.Paths.OutputDir)
	}
	if cfg.Gallery.PageSize != 6 {
		t.Fatalf("expected page size 6, got %d", cfg.Gallery.PageSize)
	}
	if cfg.Colors.Default != "#1f77b4" {
		t.Fatalf("expected trimmed color, got %q", cfg.Colors.Default)
	}
	if cfg.Colors.SplitYear != "2015" {
		t.Fatalf("expected split year 2015, got %q", cfg.Colors.SplitYear)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected lower-cased json format, got %q", cfg.Logging.Format)
	}
	if cfg.Render.DPI != 300 {
		t.Fatalf("expected default DPI to survive partial file, got %d", cfg.Render.DPI)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "speciesmap.toml")
	if err := os.WriteFile(configPath, []byte("[gallery\npage_size = "), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "[areas]") {
		t.Fatalf("sample config missing areas section: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if !strings.Contains(cfg.Paths.StateDir, "speciesmap") {
		t.Fatalf("expected state dir to contain speciesmap, got %q", cfg.Paths.StateDir)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config does not validate: %v", err)
	}
}

func TestPagePixels(t *testing.T) {
	cfg := config.Default()
	w, h := cfg.PagePixels()
	if w != 3960 || h != 5700 {
		t.Fatalf("expected 3960x5700 at 300 dpi, got %dx%d", w, h)
	}

	cfg.Render.DPI = 24
	w, h = cfg.PagePixels()
	if w != 317 || h != 456 {
		t.Fatalf("expected rounded 317x456 at 24 dpi, got %dx%d", w, h)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero page size", func(c *config.Config) { c.Gallery.PageSize = 0 }},
		{"grid too small", func(c *config.Config) { c.Gallery.Columns = 2; c.Gallery.Rows = 2 }},
		{"dpi too high", func(c *config.Config) { c.Render.DPI = 5000 }},
		{"opacity above one", func(c *config.Config) { c.Render.FillOpacity = 1.5 }},
		{"bad neutral color", func(c *config.Config) { c.Render.NeutralColor = "not-a-color" }},
		{"bad default color", func(c *config.Config) { c.Colors.Default = "#12" }},
		{"prefix with separator", func(c *config.Config) { c.Export.FilePrefix = "a/b" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
