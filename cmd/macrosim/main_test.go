package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"macro-sim/internal/render"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// resetFlags restores flag defaults between runs of the shared command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestSymbols(t *testing.T) {
	out, err := execute(t, "symbols")
	require.NoError(t, err)
	assert.Contains(t, out, "interest rate")
	assert.Contains(t, out, "D = C + I")
	assert.Contains(t, out, "MPK = alpha*K^(alpha - 1)*L^(-alpha + 1)")
	assert.Contains(t, out, "MPL = K^alpha*L^(-alpha)*(-alpha + 1)")
}

func TestProduction(t *testing.T) {
	out, err := execute(t, "production", "--k", "100", "--l", "50", "--alpha", "0.3")
	require.NoError(t, err)
	assert.Contains(t, out, "K=100 L=50 alpha=0.3")
	assert.Contains(t, out, "MPK = alpha*K^(alpha - 1)*L^(-alpha + 1)")
}

func TestProductionWithoutAlgebra(t *testing.T) {
	cfgFile := writeConfig(t, "symbolic: false\n")
	out, err := execute(t, "production", "--config", cfgFile)
	require.NoError(t, err)
	assert.Contains(t, out, "closed-form fallback")
	assert.NotContains(t, out, "MPK = ")
}

func TestProductionRejectsInvalidAlpha(t *testing.T) {
	_, err := execute(t, "production", "--alpha", "1.5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alpha")
}

func TestTatonnementWritesCSV(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "out", "trace.csv")
	out, err := execute(t, "tatonnement", "--gamma", "0.1", "--steps", "50", "--csv", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "clearing price=120.000000")
	assert.Contains(t, out, "Wrote 50 rows to "+csvPath)
	assert.FileExists(t, csvPath)
}

func TestStickyFullyRigid(t *testing.T) {
	out, err := execute(t, "sticky", "--stickiness", "1", "--p0", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "sticky (lambda=1)")
	assert.Contains(t, out, "final price=10.000000")
}

func TestEquilibrium(t *testing.T) {
	out, err := execute(t, "equilibrium")
	require.NoError(t, err)
	assert.Contains(t, out, "no equilibrium found in range")

	out, err = execute(t, "equilibrium", "--r-max", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "equilibrium rate=")
	assert.Contains(t, out, "refined rate=1.63636")
}

func TestReportWithRenderingDisabled(t *testing.T) {
	cfgFile := writeConfig(t, "render:\n  enabled: false\n")
	_, err := execute(t, "report", "--config", cfgFile, "--out", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, render.ErrRendererUnavailable))
}

func TestCompareDoesNotLeakBetweenRuns(t *testing.T) {
	cfgFile := writeConfig(t, "render:\n  enabled: false\n")
	out := filepath.Join(t.TempDir(), "sticky.png")

	_, err := execute(t, "sticky", "--config", cfgFile, "--out", out, "--compare", "0.2,1.5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid compare value 1.5")

	// Without --compare the config list applies and rendering is reached.
	_, err = execute(t, "sticky", "--config", cfgFile, "--out", out)
	require.Error(t, err)
	assert.ErrorIs(t, err, render.ErrRendererUnavailable)
	assert.Empty(t, compare)
}

func TestMarketPresetKeepsZeroCoefficients(t *testing.T) {
	dir := t.TempDir()
	preset := filepath.Join(dir, "unit.yaml")
	require.NoError(t, os.WriteFile(preset, []byte("market:\n  demand: {intercept: 100, slope: 1}\n  supply: {intercept: 0, slope: 1}\n"), 0o644))

	out, err := execute(t, "tatonnement", "--market", preset, "--steps", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "clearing price=50.000000")
	assert.Contains(t, out, "steps=0")
}

func TestTatonnementOverflowFails(t *testing.T) {
	_, err := execute(t, "tatonnement", "--gamma", "1e307", "--steps", "4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overflowed after 0 steps")
}

func TestStepsAboveLimitRejected(t *testing.T) {
	_, err := execute(t, "tatonnement", "--steps", "100001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps must be in")
}
