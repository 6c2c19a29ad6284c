package render

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// GonumRenderer draws charts with gonum/plot. The output format follows
// the file extension (.png, .svg, .pdf, ...).
type GonumRenderer struct{}

func NewGonum() *GonumRenderer { return &GonumRenderer{} }

func (r *GonumRenderer) Render(ctx context.Context, c Chart, o Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	o = o.withDefaults()

	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	applyFont(p, o.Font, o.FontSize)
	if o.UnicodeMinus {
		p.X.Tick.Marker = minusTicker{plot.DefaultTicks{}}
		p.Y.Tick.Marker = minusTicker{plot.DefaultTicks{}}
	}
	if o.Grid {
		p.Add(plotter.NewGrid())
	}

	ymin, ymax := math.Inf(1), math.Inf(-1)
	for i, s := range c.Series {
		xys := make(plotter.XYs, len(s.X))
		for j := range s.X {
			xys[j].X = s.X[j]
			xys[j].Y = s.Y[j]
			ymin = math.Min(ymin, s.Y[j])
			ymax = math.Max(ymax, s.Y[j])
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Label, err)
		}
		line.LineStyle.Color = plotutil.Color(i)
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
		if s.Label != "" {
			p.Legend.Add(s.Label, line)
		}
	}

	if c.Marker != nil && !math.IsInf(ymin, 0) {
		if err := addMarker(p, *c.Marker, ymin, ymax); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return err
	}
	w := vg.Length(o.WidthInches) * vg.Inch
	h := vg.Length(o.HeightInches) * vg.Inch
	if err := p.Save(w, h, c.Path); err != nil {
		return fmt.Errorf("save %s: %w", c.Path, err)
	}
	return nil
}

// applyFont sets the typeface and sizes of every text style on p. A
// typeface the font cache does not know is ignored.
func applyFont(p *plot.Plot, typeface string, size float64) {
	styles := []struct {
		f     *font.Font
		scale float64
	}{
		{&p.Title.TextStyle.Font, 1.2},
		{&p.X.Label.TextStyle.Font, 1},
		{&p.Y.Label.TextStyle.Font, 1},
		{&p.X.Tick.Label.Font, 0.9},
		{&p.Y.Tick.Label.Font, 0.9},
		{&p.Legend.TextStyle.Font, 0.9},
	}
	for _, s := range styles {
		if typeface != "" {
			want := *s.f
			want.Typeface = font.Typeface(typeface)
			if font.DefaultCache.Has(want) {
				s.f.Typeface = want.Typeface
			}
		}
		s.f.Size = vg.Points(size * s.scale)
	}
}

// addMarker draws a dashed vertical line at m.X spanning the data range,
// with its label at 60% height.
func addMarker(p *plot.Plot, m Marker, ymin, ymax float64) error {
	if ymax == ymin {
		ymax = ymin + 1
	}
	line, err := plotter.NewLine(plotter.XYs{{X: m.X, Y: ymin}, {X: m.X, Y: ymax}})
	if err != nil {
		return fmt.Errorf("marker: %w", err)
	}
	line.LineStyle.Color = color.Black
	line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(line)

	if m.Label == "" {
		return nil
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: m.X, Y: ymin + 0.6*(ymax-ymin)}},
		Labels: []string{m.Label},
	})
	if err != nil {
		return fmt.Errorf("marker label: %w", err)
	}
	p.Add(labels)
	return nil
}

type minusTicker struct {
	plot.Ticker
}

func (t minusTicker) Ticks(lo, hi float64) []plot.Tick {
	ticks := t.Ticker.Ticks(lo, hi)
	for i := range ticks {
		ticks[i].Label = strings.ReplaceAll(ticks[i].Label, "-", "−")
	}
	return ticks
}
