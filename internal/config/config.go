package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	StateDir  string `toml:"state_dir"`
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
}

// Areas describes the reference boundary set that maps are drawn over.
type Areas struct {
	// Path points at a GeoJSON FeatureCollection of county polygons.
	Path string `toml:"path"`
	// NameProperty is the feature property holding the canonical area name.
	NameProperty string `toml:"name_property"`
	// RegionLabel is the short region name used in page captions (e.g. "MT").
	RegionLabel string `toml:"region_label"`
}

// Gallery contains pagination and grid layout settings.
type Gallery struct {
	PageSize int `toml:"page_size"`
	Columns  int `toml:"columns"`
	Rows     int `toml:"rows"`
}

// Render contains raster output settings for composite pages.
type Render struct {
	DPI              int     `toml:"dpi"`
	PageWidthInches  float64 `toml:"page_width_in"`
	PageHeightInches float64 `toml:"page_height_in"`
	NeutralColor     string  `toml:"neutral_color"`
	OutlineColor     string  `toml:"outline_color"`
	FillOpacity      float64 `toml:"fill_opacity"`
}

// Colors contains the default presence colors offered to generate.
type Colors struct {
	Default   string `toml:"default"`
	SplitYear string `toml:"split_year"`
	PreColor  string `toml:"pre_color"`
	PostColor string `toml:"post_color"`
}

// Export contains output naming settings.
type Export struct {
	// FilePrefix leads every exported file name. Empty means the title-cased genus.
	FilePrefix      string `toml:"file_prefix"`
	TimestampLayout string `toml:"timestamp_layout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for speciesmap.
//
// Configuration sections by subsystem:
//   - Paths: session state, export output, and log directories
//   - Areas: reference county polygons and region label
//   - Gallery: page size and grid layout
//   - Render: DPI, page size, and fill styling
//   - Colors: default presence colors and the optional year split
//   - Export: file naming
//   - Logging: log format, level, and retention
type Config struct {
	Paths   Paths   `toml:"paths"`
	Areas   Areas   `toml:"areas"`
	Gallery Gallery `toml:"gallery"`
	Render  Render  `toml:"render"`
	Colors  Colors  `toml:"colors"`
	Export  Export  `toml:"export"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/speciesmap/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("speciesmap.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state and log directories. The output
// directory is created on a best-effort basis; exports report their own
// errors when it is unusable.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if strings.TrimSpace(c.Paths.OutputDir) != "" {
		_ = os.MkdirAll(c.Paths.OutputDir, 0o755)
	}
	return nil
}

// SessionDBPath returns the SQLite database that holds the working session.
func (c *Config) SessionDBPath() string {
	return filepath.Join(c.Paths.StateDir, "session.db")
}

// LockPath returns the lock file that serializes generate and export runs.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "speciesmap.lock")
}

// PagePixels returns the raster size of one composite page.
func (c *Config) PagePixels() (int, int) {
	w := int(math.Round(c.Render.PageWidthInches * float64(c.Render.DPI)))
	h := int(math.Round(c.Render.PageHeightInches * float64(c.Render.DPI)))
	return w, h
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
