// Package config loads, normalizes, and validates speciesmap configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes the knobs the
// CLI needs: where session state and exports live, which GeoJSON file holds the
// reference county polygons, how the gallery is paginated, and how composite
// pages are rasterized.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
