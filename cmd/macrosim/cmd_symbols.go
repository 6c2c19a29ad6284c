package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"macro-sim/internal/model"
	"macro-sim/internal/production"
	"macro-sim/internal/symbolic"

	"github.com/spf13/cobra"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols",
	Short: "List the macro variables and the derived production expressions",
	RunE:  runSymbols,
}

func runSymbols(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "symbol\tname\tpositive\tdescription")
	for _, v := range model.Variables() {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", v.Symbol, v.Name, v.Positive, v.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	d := symbolic.AddOf(symbolic.S("C"), symbolic.S("I"))
	fmt.Fprintf(out, "\nD = %s\n", d)

	exprs, err := newEvaluator().Symbolic()
	if errors.Is(err, production.ErrAlgebraUnavailable) {
		fmt.Fprintln(out, "symbolic algebra disabled; production expressions unavailable")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Y   = %s\n", exprs.Output)
	fmt.Fprintf(out, "MPK = %s\n", exprs.MPK)
	fmt.Fprintf(out, "MPL = %s\n", exprs.MPL)
	return nil
}
