// Package market runs discrete-time price-adjustment simulations over a
// linear demand/supply market.
package market

import (
	"math"

	"macro-sim/internal/model"
)

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run executes steps transitions of rule starting at p0. Quantities and
// prices are clamped to be non-negative at every step. There is no
// convergence check; callers inspect the trace. A step that overflows
// ends the run early with Diverged set.
func (e *Engine) Run(m model.MarketParams, p0 float64, steps int, rule Rule) model.Trace {
	tr := model.NewTrace(p0, steps)
	if !finite(p0) {
		tr.Diverged = true
		return tr
	}
	p := p0
	for t := 0; t < steps; t++ {
		d := m.QuantityDemanded(p)
		s := m.QuantitySupplied(p)
		next := rule.Next(p, d, s)
		if !finite(d) || !finite(s) || !finite(next) {
			tr.Diverged = true
			break
		}
		tr.Demands = append(tr.Demands, d)
		tr.Supplies = append(tr.Supplies, s)

		p = clampNonNegative(next)
		tr.Prices = append(tr.Prices, p)
	}
	return tr
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Tatonnement runs p_{t+1} = max(p_t + gamma*(D_t - S_t), 0).
func Tatonnement(p model.PriceParams) model.Trace {
	return New().Run(p.Market, p.P0, p.Steps, TatonnementRule{Gamma: p.Gamma})
}

// StickyPrice runs the tatonnement target through exponential smoothing:
// p_{t+1} = max(lambda*p_t + (1-lambda)*(p_t + gamma*(D_t - S_t)), 0).
func StickyPrice(p model.StickyParams) model.Trace {
	return New().Run(p.Market, p.P0, p.Steps, StickyRule{Gamma: p.Gamma, Stickiness: p.Stickiness})
}

// Comparison is one sticky-price run in a stickiness sweep.
type Comparison struct {
	Stickiness float64
	Trace      model.Trace
}

// CompareStickiness runs base once per stickiness value.
func CompareStickiness(base model.StickyParams, values []float64) []Comparison {
	out := make([]Comparison, 0, len(values))
	for _, v := range values {
		p := base
		p.Stickiness = v
		out = append(out, Comparison{Stickiness: v, Trace: StickyPrice(p)})
	}
	return out
}

// AnalyticPrice returns the interior clearing price (a-c)/(b+d) when it
// exists. Clamping is ignored, so the value is only meaningful when both
// schedules are positive there.
func AnalyticPrice(m model.MarketParams) (float64, bool) {
	den := m.Demand.Slope + m.Supply.Slope
	if den <= 0 {
		return 0, false
	}
	p := (m.Demand.Intercept - m.Supply.Intercept) / den
	if p < 0 {
		return 0, false
	}
	return p, true
}
