package model

import (
	"errors"
	"fmt"
	"math"
)

// Linear is an affine schedule Intercept + Slope*x. Demand curves use it as
// a - b*p, so the slope is stored as a positive number there.
type Linear struct {
	Intercept float64 `json:"intercept" yaml:"intercept"`
	Slope     float64 `json:"slope" yaml:"slope"`
}

// MarketParams holds linear demand D(p)=a-b*p and supply S(p)=c+d*p.
type MarketParams struct {
	Demand Linear `json:"demand" yaml:"demand"`
	Supply Linear `json:"supply" yaml:"supply"`
}

// QuantityDemanded is D(p) clamped at zero.
func (m MarketParams) QuantityDemanded(p float64) float64 {
	return math.Max(m.Demand.Intercept-m.Demand.Slope*p, 0)
}

// QuantitySupplied is S(p) clamped at zero.
func (m MarketParams) QuantitySupplied(p float64) float64 {
	return math.Max(m.Supply.Intercept+m.Supply.Slope*p, 0)
}

// PriceParams configures a tatonnement run.
type PriceParams struct {
	Market MarketParams `json:"market" yaml:"market"`
	P0     float64      `json:"p0" yaml:"p0"`
	Gamma  float64      `json:"gamma" yaml:"gamma"`
	Steps  int          `json:"steps" yaml:"steps"`
}

// StickyParams configures a sticky-price run. Stickiness is the weight on
// the previous price.
type StickyParams struct {
	PriceParams `yaml:",inline"`
	Stickiness  float64 `json:"stickiness" yaml:"stickiness"`
}

// DefaultMarket is the chapter 2 market: D(p)=200-p, S(p)=20+0.5p.
func DefaultMarket() MarketParams {
	return MarketParams{
		Demand: Linear{Intercept: 200, Slope: 1.0},
		Supply: Linear{Intercept: 20, Slope: 0.5},
	}
}

func DefaultPrice() PriceParams {
	return PriceParams{Market: DefaultMarket(), P0: 10, Gamma: 0.1, Steps: 50}
}

func DefaultSticky() StickyParams {
	return StickyParams{
		PriceParams: PriceParams{Market: DefaultMarket(), P0: 10, Gamma: 0.05, Steps: 80},
		Stickiness:  0.9,
	}
}

func (p PriceParams) Validate() error {
	m := p.Market
	if !allFinite(m.Demand.Intercept, m.Demand.Slope, m.Supply.Intercept, m.Supply.Slope, p.P0, p.Gamma) {
		return errors.New("market coefficients, p0 and gamma must be finite")
	}
	if m.Demand.Slope < 0 || m.Supply.Slope < 0 {
		return errors.New("demand and supply slopes must be >= 0")
	}
	if p.P0 < 0 {
		return errors.New("p0 must be >= 0")
	}
	if p.Gamma <= 0 {
		return errors.New("gamma must be > 0")
	}
	if p.Steps < 0 || p.Steps > MaxSteps {
		return fmt.Errorf("steps must be in [0, %d]", MaxSteps)
	}
	return nil
}

func (p StickyParams) Validate() error {
	if err := p.PriceParams.Validate(); err != nil {
		return err
	}
	if !(p.Stickiness >= 0 && p.Stickiness <= 1) {
		return errors.New("stickiness must be in [0, 1]")
	}
	return nil
}
