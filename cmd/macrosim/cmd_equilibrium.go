package main

import (
	"fmt"

	"macro-sim/internal/equilibrium"

	"github.com/spf13/cobra"
)

var (
	eqRMin float64
	eqRMax float64
	eqN    int
	eqCSV  string
	eqOut  string
)

var equilibriumCmd = &cobra.Command{
	Use:   "equilibrium",
	Short: "Find the rate where savings equals investment",
	Long: `Scans S(r) = s0 + s1*r against I(r) = max(i0 - i1*r, 0) on a uniform grid
and bisects inside the bracketing cell. Not finding a crossing in the range
is reported, not treated as an error.`,
	RunE: runEquilibrium,
}

func init() {
	equilibriumCmd.Flags().Float64Var(&eqRMin, "r-min", 0, "Lower end of the rate grid (overrides config)")
	equilibriumCmd.Flags().Float64Var(&eqRMax, "r-max", 0, "Upper end of the rate grid (overrides config)")
	equilibriumCmd.Flags().IntVar(&eqN, "n", 0, "Number of grid samples (overrides config)")
	equilibriumCmd.Flags().StringVar(&eqCSV, "csv", "", "Write the sampled schedules as CSV to this path")
	equilibriumCmd.Flags().StringVar(&eqOut, "out", "", "Render the savings/investment chart to this path")
}

func runEquilibrium(cmd *cobra.Command, args []string) error {
	p := cfg.SavingsInvestment
	if cmd.Flags().Changed("r-min") {
		p.RMin = eqRMin
	}
	if cmd.Flags().Changed("r-max") {
		p.RMax = eqRMax
	}
	if cmd.Flags().Changed("n") {
		p.N = eqN
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid savings/investment parameters: %w", err)
	}

	res := equilibrium.FindRefined(p)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "grid: r in [%g, %g], n=%d\n", p.RMin, p.RMax, p.N)
	if res.Found {
		fmt.Fprintf(out, "equilibrium rate=%.6f (sample %d)\n", res.Rate, res.Index)
		if res.HasRefined {
			fmt.Fprintf(out, "refined rate=%.8f\n", res.Refined)
		}
	} else {
		fmt.Fprintln(out, "no equilibrium found in range")
	}
	if r, ok := equilibrium.AnalyticRate(p); ok {
		fmt.Fprintf(out, "analytic rate=%.8f\n", r)
	}

	if eqCSV != "" {
		if err := equilibrium.WriteScheduleCSV(eqCSV, res); err != nil {
			return fmt.Errorf("write %s: %w", eqCSV, err)
		}
		fmt.Fprintf(out, "Wrote %d rows to %s\n", len(res.Rates), eqCSV)
	}
	if eqOut != "" {
		if _, err := newReporter().SavingsInvestment(cmd.Context(), p, eqOut); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", eqOut)
	}
	return nil
}
