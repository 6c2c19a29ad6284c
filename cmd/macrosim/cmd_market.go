package main

import (
	"fmt"
	"io"

	"macro-sim/internal/config"
	"macro-sim/internal/market"
	"macro-sim/internal/model"

	"github.com/spf13/cobra"
)

// clearedTol is the excess-demand band reported as CLEARED in CSV traces.
const clearedTol = 1e-6

type priceFlags struct {
	marketFile string
	p0         float64
	gamma      float64
	steps      int
	csvPath    string
	outPath    string
}

func (f *priceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.marketFile, "market", "", "Market preset YAML (e.g. examples/markets/glut.yaml)")
	cmd.Flags().Float64Var(&f.p0, "p0", 0, "Initial price (overrides config)")
	cmd.Flags().Float64Var(&f.gamma, "gamma", 0, "Adjustment speed (overrides config)")
	cmd.Flags().IntVar(&f.steps, "steps", 0, "Number of steps (overrides config)")
	cmd.Flags().StringVar(&f.csvPath, "csv", "", "Write the trace as CSV to this path")
	cmd.Flags().StringVar(&f.outPath, "out", "", "Render the price chart to this path")
}

func (f *priceFlags) apply(cmd *cobra.Command, p model.PriceParams) (model.PriceParams, error) {
	if f.marketFile != "" {
		if err := config.DecodeMarketFile(f.marketFile, &p.Market); err != nil {
			return p, fmt.Errorf("load market: %w", err)
		}
	}
	if cmd.Flags().Changed("p0") {
		p.P0 = f.p0
	}
	if cmd.Flags().Changed("gamma") {
		p.Gamma = f.gamma
	}
	if cmd.Flags().Changed("steps") {
		p.Steps = f.steps
	}
	return p, nil
}

var (
	tatFlags    priceFlags
	stickyFlags priceFlags

	stickiness float64
	compare    []float64
)

var tatonnementCmd = &cobra.Command{
	Use:   "tatonnement",
	Short: "Simulate Walrasian price adjustment",
	Long: `Runs p(t+1) = max(p(t) + gamma*(D - S), 0) for a fixed number of steps on
linear demand D = a - b*p and supply S = c + d*p.`,
	RunE: runTatonnement,
}

var stickyCmd = &cobra.Command{
	Use:   "sticky",
	Short: "Simulate sticky-price adjustment",
	Long: `Runs p(t+1) = max(lambda*p(t) + (1-lambda)*(p(t) + gamma*(D - S)), 0).
lambda=0 is tatonnement, lambda=1 never moves.

With --out, the chart compares the --compare stickiness values.`,
	RunE: runSticky,
}

func init() {
	tatFlags.register(tatonnementCmd)
	stickyFlags.register(stickyCmd)
	stickyCmd.Flags().Float64Var(&stickiness, "stickiness", 0, "Weight lambda on the previous price (overrides config)")
	stickyCmd.Flags().Float64SliceVar(&compare, "compare", nil, "Stickiness values for the comparison chart (overrides config)")
}

func runTatonnement(cmd *cobra.Command, args []string) error {
	p, err := tatFlags.apply(cmd, cfg.PriceParams())
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid tatonnement parameters: %w", err)
	}

	tr := market.Tatonnement(p)
	out := cmd.OutOrStdout()
	printSummary(out, "tatonnement", p, tr)
	if err := checkDiverged(tr); err != nil {
		return err
	}

	if err := writeCSV(out, tatFlags.csvPath, tr); err != nil {
		return err
	}
	if tatFlags.outPath != "" {
		paths, err := newReporter().PriceDynamics(cmd.Context(), p, tatFlags.outPath)
		if err != nil {
			return err
		}
		printPaths(out, paths)
	}
	return nil
}

func runSticky(cmd *cobra.Command, args []string) error {
	sp := cfg.StickyParams()
	var err error
	sp.PriceParams, err = stickyFlags.apply(cmd, sp.PriceParams)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("stickiness") {
		sp.Stickiness = stickiness
	}
	if err := sp.Validate(); err != nil {
		return fmt.Errorf("invalid sticky parameters: %w", err)
	}

	tr := market.StickyPrice(sp)
	out := cmd.OutOrStdout()
	printSummary(out, fmt.Sprintf("sticky (lambda=%g)", sp.Stickiness), sp.PriceParams, tr)
	if err := checkDiverged(tr); err != nil {
		return err
	}

	if err := writeCSV(out, stickyFlags.csvPath, tr); err != nil {
		return err
	}
	if stickyFlags.outPath != "" {
		values := cfg.Sticky.Compare
		if cmd.Flags().Changed("compare") {
			values = compare
		}
		if len(values) == 0 {
			values = []float64{sp.Stickiness}
		}
		for _, v := range values {
			if v < 0 || v > 1 {
				return fmt.Errorf("invalid compare value %g: stickiness must be in [0, 1]", v)
			}
		}
		paths, err := newReporter().StickyPrice(cmd.Context(), sp, values, stickyFlags.outPath)
		if err != nil {
			return err
		}
		printPaths(out, paths)
	}
	return nil
}

func printSummary(w io.Writer, name string, p model.PriceParams, tr model.Trace) {
	fmt.Fprintf(w, "%s: p0=%g gamma=%g steps=%d\n", name, p.P0, p.Gamma, tr.Steps())
	fmt.Fprintf(w, "final price=%.6f\n", tr.FinalPrice())
	if pstar, ok := market.AnalyticPrice(p.Market); ok {
		fmt.Fprintf(w, "clearing price=%.6f gap=%.6f\n", pstar, tr.FinalPrice()-pstar)
	}
}

func checkDiverged(tr model.Trace) error {
	if tr.Diverged {
		return fmt.Errorf("price overflowed after %d steps; lower gamma or the market coefficients", tr.Steps())
	}
	return nil
}

func writeCSV(w io.Writer, path string, tr model.Trace) error {
	if path == "" {
		return nil
	}
	rows := tr.Rows(clearedTol)
	if err := market.WriteTraceCSV(path, rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(w, "Wrote %d rows to %s\n", len(rows), path)
	return nil
}

func printPaths(w io.Writer, paths []string) {
	for _, p := range paths {
		fmt.Fprintf(w, "Wrote %s\n", p)
	}
}
