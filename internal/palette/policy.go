package palette

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Policy decides the overlay color of one matched county.
type Policy interface {
	// CountyColor receives the known collection years of the county's records
	// for the species being drawn. Records without a year are omitted.
	CountyColor(years []int) color.NRGBA
	// Legend is the human-readable explanation printed on composite pages.
	Legend() string
	// Spec returns the serializable description of the policy.
	Spec() Spec
}

// Spec is the persisted form of a policy. Kind is "single" or "year_split".
type Spec struct {
	Kind     string `json:"kind"`
	Color    string `json:"color,omitempty"`
	Split    string `json:"split,omitempty"`
	Pre      string `json:"pre,omitempty"`
	Post     string `json:"post,omitempty"`
	Fallback string `json:"fallback,omitempty"`
}

const (
	KindSingle    = "single"
	KindYearSplit = "year_split"
)

// Policy resolves the spec, validating every color it names.
func (s Spec) Policy() (Policy, error) {
	switch s.Kind {
	case "", KindSingle:
		return NewSingle(s.Color)
	case KindYearSplit:
		return NewYearSplit(s.Split, s.Pre, s.Post, s.Fallback)
	default:
		return nil, fmt.Errorf("unknown color policy %q", s.Kind)
	}
}

// Single colors every occupied county the same.
type Single struct {
	Name  string
	Color color.NRGBA
}

// NewSingle validates name and returns a single-color policy.
func NewSingle(name string) (Single, error) {
	c, err := Parse(name)
	if err != nil {
		return Single{}, err
	}
	return Single{Name: strings.TrimSpace(name), Color: c}, nil
}

func (s Single) CountyColor([]int) color.NRGBA { return s.Color }

func (s Single) Legend() string {
	return "Color Used: " + DisplayName(s.Name)
}

func (s Single) Spec() Spec {
	return Spec{Kind: KindSingle, Color: s.Name}
}

// YearSplit colors a county by whether its records were collected after a
// cutoff year. A county with any record after Split takes Post; otherwise any
// dated record gives Pre; a county with no dated records takes Fallback.
type YearSplit struct {
	Split    int
	Pre      Single
	Post     Single
	Fallback Single
}

// NewYearSplit builds a year split policy. A blank or unparsable split year
// yields Single(fallback) instead. All named colors are validated.
func NewYearSplit(split, pre, post, fallback string) (Policy, error) {
	fb, err := NewSingle(fallback)
	if err != nil {
		return nil, fmt.Errorf("fallback color: %w", err)
	}
	year, ok := parseYear(split)
	if !ok {
		return fb, nil
	}
	preColor, err := NewSingle(pre)
	if err != nil {
		return nil, fmt.Errorf("pre color: %w", err)
	}
	postColor, err := NewSingle(post)
	if err != nil {
		return nil, fmt.Errorf("post color: %w", err)
	}
	return YearSplit{Split: year, Pre: preColor, Post: postColor, Fallback: fb}, nil
}

func parseYear(value string) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	if year, err := strconv.Atoi(value); err == nil {
		return year, true
	}
	// Spreadsheet exports often carry years as floats ("2014.0").
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

func (y YearSplit) CountyColor(years []int) color.NRGBA {
	if len(years) == 0 {
		return y.Fallback.Color
	}
	for _, year := range years {
		if year > y.Split {
			return y.Post.Color
		}
	}
	return y.Pre.Color
}

func (y YearSplit) Legend() string {
	return fmt.Sprintf("Before or equal to %d → %s\nAfter %d → %s",
		y.Split, DisplayName(y.Pre.Name), y.Split, DisplayName(y.Post.Name))
}

func (y YearSplit) Spec() Spec {
	return Spec{
		Kind:     KindYearSplit,
		Split:    strconv.Itoa(y.Split),
		Pre:      y.Pre.Name,
		Post:     y.Post.Name,
		Fallback: y.Fallback.Name,
	}
}
