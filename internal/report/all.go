package report

import (
	"context"
	"path/filepath"
	"sort"
	"sync"

	"macro-sim/internal/model"
	"macro-sim/internal/production"

	"golang.org/x/sync/errgroup"
)

// Plan is a full chapter report.
type Plan struct {
	OutDir     string
	Marginal   MarginalSpec
	Price      model.PriceParams
	Sticky     model.StickyParams
	Stickiness []float64
	Savings    model.SavingsInvestmentParams
}

// DefaultPlan reproduces the chapter 2 figures under outDir.
func DefaultPlan(outDir string) Plan {
	m := DefaultMarginalSpec()
	m.OutPrefix = "marginal"
	price := model.DefaultPrice()
	price.Steps = 80
	price.Gamma = 0.05
	return Plan{
		OutDir:     outDir,
		Marginal:   m,
		Price:      price,
		Sticky:     model.DefaultSticky(),
		Stickiness: []float64{0, 0.5, 0.9},
		Savings:    model.DefaultSavingsInvestment(),
	}
}

// All renders every chart of the plan. The charts are independent, so they
// are rendered concurrently; the first error cancels the rest.
func (rp *Reporter) All(ctx context.Context, ev *production.Evaluator, plan Plan) ([]string, error) {
	var (
		mu    sync.Mutex
		paths []string
	)
	collect := func(ps []string) {
		mu.Lock()
		paths = append(paths, ps...)
		mu.Unlock()
	}
	at := func(name string) string { return filepath.Join(plan.OutDir, name) }

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		spec := plan.Marginal
		spec.OutPrefix = at(filepath.Base(spec.OutPrefix))
		ps, err := rp.MarginalProducts(ctx, ev, spec)
		collect(ps)
		return err
	})
	g.Go(func() error {
		ps, err := rp.PriceDynamics(ctx, plan.Price, at("price_dynamics.png"))
		collect(ps)
		return err
	})
	g.Go(func() error {
		ps, err := rp.StickyPrice(ctx, plan.Sticky, plan.Stickiness, at("sticky_price.png"))
		collect(ps)
		return err
	})
	g.Go(func() error {
		out := at("S_I.png")
		if _, err := rp.SavingsInvestment(ctx, plan.Savings, out); err != nil {
			return err
		}
		collect([]string{out})
		return nil
	})
	err := g.Wait()
	sort.Strings(paths)
	return paths, err
}
