package main

import (
	"github.com/spf13/cobra"
)

var reportOutDir string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render every chapter chart",
	Long: `Renders the marginal-product, price-dynamics, sticky-price and
savings/investment charts concurrently into one directory.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportOutDir, "out", "", "Output directory (overrides render.out_dir)")
}

func runReport(cmd *cobra.Command, args []string) error {
	plan := cfg.Plan()
	if reportOutDir != "" {
		plan.OutDir = reportOutDir
	}

	paths, err := newReporter().All(cmd.Context(), newEvaluator(), plan)
	if err != nil {
		return err
	}
	printPaths(cmd.OutOrStdout(), paths)
	return nil
}
