// Package render turns labelled series into chart files. The core
// packages only describe what to draw; a Renderer decides how.
package render

import (
	"context"
	"errors"
	"fmt"
)

// ErrRendererUnavailable is returned by the Unavailable renderer.
var ErrRendererUnavailable = errors.New("chart renderer unavailable")

// Series is one labelled line.
type Series struct {
	Label string
	X     []float64
	Y     []float64
}

// Marker is a vertical reference line, e.g. an equilibrium rate.
type Marker struct {
	X     float64
	Label string
}

// Chart describes one output file.
type Chart struct {
	Path   string
	Title  string
	XLabel string
	YLabel string
	Series []Series
	Marker *Marker
}

// Validate checks the chart is drawable.
func (c Chart) Validate() error {
	if c.Path == "" {
		return errors.New("chart path is required")
	}
	if len(c.Series) == 0 {
		return errors.New("chart has no series")
	}
	for _, s := range c.Series {
		if len(s.X) != len(s.Y) {
			return fmt.Errorf("series %q: %d x values, %d y values", s.Label, len(s.X), len(s.Y))
		}
	}
	return nil
}

// Options is the per-call rendering configuration.
type Options struct {
	WidthInches  float64 `yaml:"width_inches" json:"width_inches"`
	HeightInches float64 `yaml:"height_inches" json:"height_inches"`
	FontSize     float64 `yaml:"font_size" json:"font_size"`
	// Font is a typeface name registered with gonum/plot's font cache
	// (e.g. "Liberation"). Empty or unknown names fall back to the
	// plot default.
	Font string `yaml:"font" json:"font"`
	Grid         bool    `yaml:"grid" json:"grid"`
	// UnicodeMinus renders negative tick labels with U+2212 instead of an
	// ASCII hyphen.
	UnicodeMinus bool `yaml:"unicode_minus" json:"unicode_minus"`
}

func DefaultOptions() Options {
	return Options{WidthInches: 6.4, HeightInches: 4.8, FontSize: 10, Grid: true}
}

// withDefaults fills zero sizes from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.WidthInches <= 0 {
		o.WidthInches = d.WidthInches
	}
	if o.HeightInches <= 0 {
		o.HeightInches = d.HeightInches
	}
	if o.FontSize <= 0 {
		o.FontSize = d.FontSize
	}
	return o
}

// Renderer renders and persists a chart.
type Renderer interface {
	Render(ctx context.Context, c Chart, o Options) error
}

// Unavailable is the renderer used when charts are switched off.
type Unavailable struct{}

func (Unavailable) Render(context.Context, Chart, Options) error {
	return ErrRendererUnavailable
}
