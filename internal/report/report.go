// Package report builds the chapter charts from simulation output and
// hands them to a render.Renderer.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"macro-sim/internal/equilibrium"
	"macro-sim/internal/market"
	"macro-sim/internal/model"
	"macro-sim/internal/production"
	"macro-sim/internal/render"
)

// MarginalSpec configures the marginal-product charts.
type MarginalSpec struct {
	Alpha     float64 `yaml:"alpha" json:"alpha"`
	Labor     float64 `yaml:"labor" json:"labor"`
	KMin      float64 `yaml:"k_min" json:"k_min"`
	KMax      float64 `yaml:"k_max" json:"k_max"`
	N         int     `yaml:"n" json:"n"`
	OutPrefix string  `yaml:"out_prefix" json:"out_prefix"`
}

func DefaultMarginalSpec() MarginalSpec {
	return MarginalSpec{Alpha: 0.3, Labor: 50, KMin: 10, KMax: 400, N: 100, OutPrefix: "results/marginal"}
}

// Reporter renders charts with a fixed renderer and options.
type Reporter struct {
	Renderer render.Renderer
	Options  render.Options
	Logger   *slog.Logger
}

func New(r render.Renderer, o render.Options, logger *slog.Logger) *Reporter {
	if r == nil {
		r = render.Unavailable{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{Renderer: r, Options: o, Logger: logger}
}

func (rp *Reporter) render(ctx context.Context, charts ...render.Chart) ([]string, error) {
	paths := make([]string, 0, len(charts))
	for _, c := range charts {
		if err := rp.Renderer.Render(ctx, c, rp.Options); err != nil {
			return paths, fmt.Errorf("render %s: %w", c.Path, err)
		}
		paths = append(paths, c.Path)
	}
	rp.Logger.Info("saved charts", "paths", paths)
	return paths, nil
}

// MarginalProducts plots MPK and MPL against K and against K/L, writing
// <prefix>_vsK.png and <prefix>_vsKtoL.png.
func (rp *Reporter) MarginalProducts(ctx context.Context, ev *production.Evaluator, s MarginalSpec) ([]string, error) {
	if s.N < 2 {
		return nil, fmt.Errorf("marginal products: n must be >= 2, got %d", s.N)
	}
	c := ev.Sweep(s.Alpha, s.Labor, s.KMin, s.KMax, s.N)
	byK := render.Chart{
		Path:   s.OutPrefix + "_vsK.png",
		Title:  fmt.Sprintf("MPK and MPL vs capital K (alpha=%g, L=%g)", s.Alpha, s.Labor),
		XLabel: "capital K",
		YLabel: "marginal product",
		Series: []render.Series{
			{Label: "MPK", X: c.K, Y: c.MPK},
			{Label: "MPL", X: c.K, Y: c.MPL},
		},
	}
	byRatio := render.Chart{
		Path:   s.OutPrefix + "_vsKtoL.png",
		Title:  fmt.Sprintf("MPK and MPL vs capital-labor ratio K/L (alpha=%g)", s.Alpha),
		XLabel: "capital-labor ratio K/L",
		YLabel: "marginal product",
		Series: []render.Series{
			{Label: "MPK", X: c.Ratios, Y: c.MPK},
			{Label: "MPL", X: c.Ratios, Y: c.MPL},
		},
	}
	return rp.render(ctx, byK, byRatio)
}

// PriceDynamics plots a tatonnement price path to out and the demand and
// supply paths to out with a _DS suffix.
func (rp *Reporter) PriceDynamics(ctx context.Context, p model.PriceParams, out string) ([]string, error) {
	tr := market.Tatonnement(p)
	ts := steps(len(tr.Prices))
	prices := render.Chart{
		Path:   out,
		Title:  "Price adjustment (tatonnement)",
		XLabel: "step t",
		YLabel: "price p",
		Series: []render.Series{{Label: "price p", X: ts, Y: tr.Prices}},
	}
	quantities := render.Chart{
		Path:   suffixed(out, "_DS"),
		Title:  "Demand and supply along the adjustment path",
		XLabel: "step t",
		YLabel: "quantity",
		Series: []render.Series{
			{Label: "demand D(p)", X: ts[:len(ts)-1], Y: tr.Demands},
			{Label: "supply S(p)", X: ts[:len(ts)-1], Y: tr.Supplies},
		},
	}
	return rp.render(ctx, prices, quantities)
}

// StickyPrice plots one price path per stickiness value on a single chart.
// With no values, base.Stickiness is used.
func (rp *Reporter) StickyPrice(ctx context.Context, base model.StickyParams, values []float64, out string) ([]string, error) {
	if len(values) == 0 {
		values = []float64{base.Stickiness}
	}
	runs := market.CompareStickiness(base, values)
	series := make([]render.Series, 0, len(runs))
	for _, r := range runs {
		series = append(series, render.Series{
			Label: fmt.Sprintf("stickiness=%g", r.Stickiness),
			X:     steps(len(r.Trace.Prices)),
			Y:     r.Trace.Prices,
		})
	}
	return rp.render(ctx, render.Chart{
		Path:   out,
		Title:  "Price dynamics under sticky prices",
		XLabel: "step t",
		YLabel: "price p",
		Series: series,
	})
}

// SavingsInvestment plots S(r) and I(r) and marks the equilibrium rate
// when the scan finds one.
func (rp *Reporter) SavingsInvestment(ctx context.Context, p model.SavingsInvestmentParams, out string) (equilibrium.Result, error) {
	res := equilibrium.FindRefined(p)
	c := render.Chart{
		Path:   out,
		Title:  "Savings S(r) and investment I(r)",
		XLabel: "interest rate r",
		YLabel: "quantity",
		Series: []render.Series{
			{Label: "savings S(r)", X: res.Rates, Y: res.Savings},
			{Label: "investment I(r)", X: res.Rates, Y: res.Investment},
		},
	}
	if res.Found {
		c.Marker = &render.Marker{X: res.Rate, Label: fmt.Sprintf("r* ≈ %.4f", res.Rate)}
	} else {
		rp.Logger.Info("no savings-investment equilibrium in range", "r_min", p.RMin, "r_max", p.RMax)
	}
	_, err := rp.render(ctx, c)
	return res, err
}

func steps(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

// suffixed inserts suffix before the file extension.
func suffixed(path, suffix string) string {
	if i := strings.LastIndex(path, "."); i > strings.LastIndex(path, "/") {
		return path[:i] + suffix + path[i:]
	}
	return path + suffix
}
