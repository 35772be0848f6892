package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeAreas(); err != nil {
		return err
	}
	c.normalizeGallery()
	c.normalizeRender()
	c.normalizeColors()
	c.normalizeExport()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeAreas() error {
	var err error
	c.Areas.Path = strings.TrimSpace(c.Areas.Path)
	if c.Areas.Path != "" {
		if c.Areas.Path, err = expandPath(c.Areas.Path); err != nil {
			return fmt.Errorf("areas.path: %w", err)
		}
	}
	c.Areas.NameProperty = strings.TrimSpace(c.Areas.NameProperty)
	if c.Areas.NameProperty == "" {
		c.Areas.NameProperty = defaultAreaNameProperty
	}
	c.Areas.RegionLabel = strings.TrimSpace(c.Areas.RegionLabel)
	if c.Areas.RegionLabel == "" {
		c.Areas.RegionLabel = defaultRegionLabel
	}
	return nil
}

func (c *Config) normalizeGallery() {
	if c.Gallery.PageSize <= 0 {
		c.Gallery.PageSize = defaultPageSize
	}
	if c.Gallery.Columns <= 0 {
		c.Gallery.Columns = defaultGridColumns
	}
	if c.Gallery.Rows <= 0 {
		c.Gallery.Rows = defaultGridRows
	}
}

func (c *Config) normalizeRender() {
	if c.Render.DPI <= 0 {
		c.Render.DPI = defaultDPI
	}
	if c.Render.PageWidthInches <= 0 {
		c.Render.PageWidthInches = defaultPageWidthInches
	}
	if c.Render.PageHeightInches <= 0 {
		c.Render.PageHeightInches = defaultPageHeightInches
	}
	c.Render.NeutralColor = strings.TrimSpace(c.Render.NeutralColor)
	if c.Render.NeutralColor == "" {
		c.Render.NeutralColor = defaultNeutralColor
	}
	c.Render.OutlineColor = strings.TrimSpace(c.Render.OutlineColor)
	if c.Render.OutlineColor == "" {
		c.Render.OutlineColor = defaultOutlineColor
	}
	if c.Render.FillOpacity <= 0 {
		c.Render.FillOpacity = defaultFillOpacity
	}
}

func (c *Config) normalizeColors() {
	c.Colors.Default = strings.TrimSpace(c.Colors.Default)
	if c.Colors.Default == "" {
		c.Colors.Default = defaultColor
	}
	c.Colors.SplitYear = strings.TrimSpace(c.Colors.SplitYear)
	c.Colors.PreColor = strings.TrimSpace(c.Colors.PreColor)
	if c.Colors.PreColor == "" {
		c.Colors.PreColor = defaultPreColor
	}
	c.Colors.PostColor = strings.TrimSpace(c.Colors.PostColor)
	if c.Colors.PostColor == "" {
		c.Colors.PostColor = defaultPostColor
	}
}

func (c *Config) normalizeExport() {
	c.Export.FilePrefix = strings.TrimSpace(c.Export.FilePrefix)
	c.Export.TimestampLayout = strings.TrimSpace(c.Export.TimestampLayout)
	if c.Export.TimestampLayout == "" {
		c.Export.TimestampLayout = defaultTimestampLayout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
