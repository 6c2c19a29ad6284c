package config

import (
	"os"
	"path/filepath"
	"testing"

	"macro-sim/internal/model"
	"macro-sim/internal/production"
	"macro-sim/internal/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadEmptyPathGivesDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 200.0, c.Market.Demand.Intercept)
	assert.Equal(t, 0.9, c.StickyParams().Stickiness)
	assert.Equal(t, 50, c.PriceParams().Steps)
	assert.IsType(t, production.SymbolicAlgebra{}, c.Algebra())
	assert.IsType(t, &render.GonumRenderer{}, c.Renderer())
}

func TestLoadOverlaysAndMarketFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "markets/m.yaml", `
market:
  demand: {intercept: 300, slope: 2}
  supply: {intercept: 30, slope: 1}
`)
	path := writeFile(t, dir, "cfg.yaml", `
market_file: markets/m.yaml
market:
  supply: {intercept: 40}
sticky:
  stickiness: 0
symbolic: false
render:
  enabled: false
  grid: false
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 300.0, c.Market.Demand.Intercept)
	assert.Equal(t, 2.0, c.Market.Demand.Slope)
	assert.Equal(t, 40.0, c.Market.Supply.Intercept)
	assert.Equal(t, 1.0, c.Market.Supply.Slope)

	// explicit zero survives the merge
	assert.Equal(t, 0.0, c.StickyParams().Stickiness)
	assert.Equal(t, 80, c.StickyParams().Steps)

	assert.IsType(t, production.UnavailableAlgebra{}, c.Algebra())
	assert.IsType(t, render.Unavailable{}, c.Renderer())
	assert.False(t, c.RenderOptions().Grid)
}

func TestLoadKeepsExplicitZeros(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "markets/unit.yaml", `
market:
  demand: {intercept: 100, slope: 1}
  supply: {intercept: 0, slope: 1}
`)
	path := writeFile(t, dir, "cfg.yaml", `
market_file: markets/unit.yaml
tatonnement:
  p0: 0
  steps: 0
savings_investment:
  investment: {intercept: 100, slope: 0}
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, model.Linear{Intercept: 0, Slope: 1}, c.Market.Supply)
	assert.Equal(t, model.Linear{Intercept: 100, Slope: 1}, c.Market.Demand)
	assert.Equal(t, model.Linear{Intercept: 100, Slope: 0}, c.SavingsInvestment.Investment)
	// untouched siblings keep their defaults
	assert.Equal(t, model.Linear{Intercept: 10, Slope: 5}, c.SavingsInvestment.Savings)

	pp := c.PriceParams()
	assert.Equal(t, 0.0, pp.P0)
	assert.Equal(t, 0, pp.Steps)
	assert.Equal(t, 0.1, pp.Gamma)
}

func TestLoadMarketFileIsComplete(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "m.yaml", "market:\n  supply: {slope: 2}\n")
	m, err := LoadMarketFile(path)
	require.NoError(t, err)
	assert.Equal(t, model.MarketParams{Supply: model.Linear{Slope: 2}}, m)

	base := model.DefaultMarket()
	require.NoError(t, DecodeMarketFile(path, &base))
	assert.Equal(t, model.Linear{Intercept: 20, Slope: 2}, base.Supply)
	assert.Equal(t, model.DefaultMarket().Demand, base.Demand)
}

func TestSymbolicSwitchIsIndependentOfRender(t *testing.T) {
	c, err := Load(writeFile(t, t.TempDir(), "cfg.yaml", "symbolic: false\n"))
	require.NoError(t, err)
	assert.IsType(t, production.UnavailableAlgebra{}, c.Algebra())
	assert.IsType(t, &render.GonumRenderer{}, c.Renderer())
	assert.True(t, c.RenderOptions().Grid)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"alpha":      "production: {alpha: 1.5}\n",
		"gamma":      "tatonnement: {gamma: -1}\n",
		"stickiness": "sticky: {stickiness: 2}\n",
		"compare":    "sticky: {compare: [0.2, 1.5]}\n",
		"grid":       "savings_investment: {n: 1}\n",
		"marginal":   "marginal: {k_min: 500}\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, dir, name+".yaml", body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestExampleConfig(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "examples", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 20.0, c.Market.Supply.Intercept)
	assert.Equal(t, "results", c.Plan().OutDir)
	assert.Equal(t, []float64{0, 0.5, 0.9}, c.Plan().Stickiness)
}
