package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"macro-sim/internal/model"
	"macro-sim/internal/production"
	"macro-sim/internal/render"
	"macro-sim/internal/report"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML). Every section is
// optional. A file is decoded onto Default, so absent keys keep the chapter
// defaults and keys that are present win, including explicit zeros.
type Config struct {
	// Optional: load market parameters from a separate YAML (e.g. examples/markets/*.yaml).
	// Keys under market in the config itself are applied after the file.
	MarketFile        string                        `yaml:"market_file"`
	Production        model.ProductionParams        `yaml:"production"`
	Market            model.MarketParams            `yaml:"market"`
	Tatonnement       PriceConfig                   `yaml:"tatonnement"`
	Sticky            StickyConfig                  `yaml:"sticky"`
	SavingsInvestment model.SavingsInvestmentParams `yaml:"savings_investment"`
	Marginal          report.MarginalSpec           `yaml:"marginal"`
	Render            RenderConfig                  `yaml:"render"`
	Symbolic          bool                          `yaml:"symbolic"`
}

type PriceConfig struct {
	P0    float64 `yaml:"p0"`
	Gamma float64 `yaml:"gamma"`
	Steps int     `yaml:"steps"`
}

type StickyConfig struct {
	PriceConfig `yaml:",inline"`
	Stickiness  float64   `yaml:"stickiness"`
	Compare     []float64 `yaml:"compare"`
}

type RenderConfig struct {
	Enabled      bool    `yaml:"enabled"`
	OutDir       string  `yaml:"out_dir"`
	WidthInches  float64 `yaml:"width_inches"`
	HeightInches float64 `yaml:"height_inches"`
	FontSize     float64 `yaml:"font_size"`
	Font         string  `yaml:"font"`
	Grid         bool    `yaml:"grid"`
	UnicodeMinus bool    `yaml:"unicode_minus"`
}

// Default returns the chapter 2 configuration.
func Default() *Config {
	price := model.DefaultPrice()
	sticky := model.DefaultSticky()
	opts := render.DefaultOptions()
	return &Config{
		Production: model.DefaultProduction(),
		Market:     model.DefaultMarket(),
		Tatonnement: PriceConfig{
			P0: price.P0, Gamma: price.Gamma, Steps: price.Steps,
		},
		Sticky: StickyConfig{
			PriceConfig: PriceConfig{P0: sticky.P0, Gamma: sticky.Gamma, Steps: sticky.Steps},
			Stickiness:  sticky.Stickiness,
			Compare:     []float64{0, 0.5, 0.9},
		},
		SavingsInvestment: model.DefaultSavingsInvestment(),
		Marginal:          report.DefaultMarginalSpec(),
		Render: RenderConfig{
			Enabled:      true,
			OutDir:       "results",
			WidthInches:  opts.WidthInches,
			HeightInches: opts.HeightInches,
			FontSize:     opts.FontSize,
			Grid:         opts.Grid,
		},
		Symbolic: true,
	}
}

// Load decodes path onto Default and validates the result.
// An empty path yields the validated defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		if err := decodeFile(path, c); err != nil {
			return nil, err
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads a config and resolves market_file, but does not
// apply defaults or validate. Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	var c Config
	if err := decodeFile(path, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// decodeFile overlays the market file named by path (if any) and then the
// file itself onto c.
func decodeFile(path string, c *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var head struct {
		MarketFile string `yaml:"market_file"`
	}
	if err := yaml.Unmarshal(raw, &head); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if head.MarketFile != "" {
		marketPath := head.MarketFile
		if !filepath.IsAbs(marketPath) {
			// Prefer interpreting relative paths as relative to the config file directory,
			// but fall back to the provided path (relative to cwd) if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), marketPath)
			if _, err := os.Stat(cand); err == nil {
				marketPath = cand
			}
		}
		if err := DecodeMarketFile(marketPath, &c.Market); err != nil {
			return err
		}
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := c.Production.Validate(); err != nil {
		return fmt.Errorf("production config invalid: %w", err)
	}
	if err := c.PriceParams().Validate(); err != nil {
		return fmt.Errorf("tatonnement config invalid: %w", err)
	}
	if err := c.StickyParams().Validate(); err != nil {
		return fmt.Errorf("sticky config invalid: %w", err)
	}
	for _, v := range c.Sticky.Compare {
		if v < 0 || v > 1 {
			return fmt.Errorf("sticky config invalid: compare value %g outside [0, 1]", v)
		}
	}
	if err := c.SavingsInvestment.Validate(); err != nil {
		return fmt.Errorf("savings_investment config invalid: %w", err)
	}
	if c.Marginal.N < 2 || c.Marginal.N > model.MaxGridSize || c.Marginal.KMin <= 0 || c.Marginal.KMax <= c.Marginal.KMin || c.Marginal.Labor <= 0 {
		return errors.New("marginal config invalid: need n>=2, 0<k_min<k_max, labor>0")
	}
	return nil
}

// PriceParams assembles the tatonnement parameters.
func (c *Config) PriceParams() model.PriceParams {
	return model.PriceParams{
		Market: c.Market,
		P0:     c.Tatonnement.P0,
		Gamma:  c.Tatonnement.Gamma,
		Steps:  c.Tatonnement.Steps,
	}
}

// StickyParams assembles the sticky-price parameters.
func (c *Config) StickyParams() model.StickyParams {
	p := model.StickyParams{
		PriceParams: model.PriceParams{
			Market: c.Market,
			P0:     c.Sticky.P0,
			Gamma:  c.Sticky.Gamma,
			Steps:  c.Sticky.Steps,
		},
	}
	p.Stickiness = c.Sticky.Stickiness
	return p
}

// RenderOptions converts the render section for render.Renderer.
func (c *Config) RenderOptions() render.Options {
	return render.Options{
		WidthInches:  c.Render.WidthInches,
		HeightInches: c.Render.HeightInches,
		FontSize:     c.Render.FontSize,
		Font:         c.Render.Font,
		Grid:         c.Render.Grid,
		UnicodeMinus: c.Render.UnicodeMinus,
	}
}

// Renderer returns the configured chart backend.
func (c *Config) Renderer() render.Renderer {
	if !c.Render.Enabled {
		return render.Unavailable{}
	}
	return render.NewGonum()
}

// Algebra returns the configured symbolic backend.
func (c *Config) Algebra() production.Algebra {
	if !c.Symbolic {
		return production.UnavailableAlgebra{}
	}
	return production.SymbolicAlgebra{}
}

// Plan builds the full chart report under the render output directory.
func (c *Config) Plan() report.Plan {
	return report.Plan{
		OutDir:     c.Render.OutDir,
		Marginal:   c.Marginal,
		Price:      c.PriceParams(),
		Sticky:     c.StickyParams(),
		Stickiness: c.Sticky.Compare,
		Savings:    c.SavingsInvestment,
	}
}

type marketFileWrapper struct {
	Market *model.MarketParams `yaml:"market"`
}

// LoadMarketFile reads a market preset: a YAML document with a top-level
// "market" key. Coefficients missing from the file are zero.
func LoadMarketFile(path string) (model.MarketParams, error) {
	var m model.MarketParams
	err := DecodeMarketFile(path, &m)
	return m, err
}

// DecodeMarketFile overlays the preset at path onto m. Keys absent from the
// file leave m unchanged.
func DecodeMarketFile(path string, m *model.MarketParams) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, &marketFileWrapper{Market: m}); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
