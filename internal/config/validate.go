package config

import (
	"errors"
	"fmt"
	"strings"

	"speciesmap/internal/palette"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateGallery(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	if err := c.validateColors(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateGallery() error {
	if err := ensurePositiveMap(map[string]int{
		"gallery.page_size": c.Gallery.PageSize,
		"gallery.columns":   c.Gallery.Columns,
		"gallery.rows":      c.Gallery.Rows,
	}); err != nil {
		return err
	}
	if c.Gallery.Columns*c.Gallery.Rows < c.Gallery.PageSize {
		return fmt.Errorf("gallery grid %dx%d cannot hold page_size %d", c.Gallery.Columns, c.Gallery.Rows, c.Gallery.PageSize)
	}
	return nil
}

func (c *Config) validateRender() error {
	if c.Render.DPI > 1200 {
		return errors.New("render.dpi must be at most 1200")
	}
	if c.Render.FillOpacity > 1 {
		return errors.New("render.fill_opacity must be between 0 and 1")
	}
	for key, value := range map[string]string{
		"render.neutral_color": c.Render.NeutralColor,
		"render.outline_color": c.Render.OutlineColor,
	} {
		if err := palette.Validate(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func (c *Config) validateColors() error {
	for key, value := range map[string]string{
		"colors.default":    c.Colors.Default,
		"colors.pre_color":  c.Colors.PreColor,
		"colors.post_color": c.Colors.PostColor,
	} {
		if err := palette.Validate(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func (c *Config) validateExport() error {
	if strings.ContainsAny(c.Export.FilePrefix, `/\`) {
		return errors.New("export.file_prefix must not contain path separators")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
