package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"macro-sim/internal/config"
	"macro-sim/internal/logging"
	"macro-sim/internal/production"
	"macro-sim/internal/report"

	"github.com/spf13/cobra"
)

var (
	cfgPath  string
	logLevel string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "macrosim",
	Short: "Macroeconomics teaching simulations",
	Long: `macrosim runs the chapter models of the macroeconomics notes:

  - Cobb-Douglas output and marginal products (symbolic and numeric)
  - Walrasian tatonnement and sticky-price adjustment on a linear market
  - savings/investment equilibrium on a rate grid

Every command reads its defaults from --config, and flags override them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.Setup(logLevel)
		if err != nil {
			return err
		}
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger.Debug("config loaded", "path", cfgPath)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config (defaults when empty)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(symbolsCmd)
	rootCmd.AddCommand(productionCmd)
	rootCmd.AddCommand(tatonnementCmd)
	rootCmd.AddCommand(stickyCmd)
	rootCmd.AddCommand(equilibriumCmd)
	rootCmd.AddCommand(reportCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newEvaluator() *production.Evaluator {
	ev := production.NewEvaluator(cfg.Algebra())
	ev.Logger = logger
	return ev
}

func newReporter() *report.Reporter {
	return report.New(cfg.Renderer(), cfg.RenderOptions(), logger)
}
