package model

import (
	"errors"
	"fmt"
	"math"
)

// SavingsInvestmentParams describes S(r)=s0+s1*r, I(r)=max(i0-i1*r, 0) and
// the interest-rate grid scanned for their intersection.
type SavingsInvestmentParams struct {
	Savings    Linear  `json:"savings" yaml:"savings"`
	Investment Linear  `json:"investment" yaml:"investment"`
	RMin       float64 `json:"r_min" yaml:"r_min"`
	RMax       float64 `json:"r_max" yaml:"r_max"`
	N          int     `json:"n" yaml:"n"`
	Tolerance  float64 `json:"tolerance" yaml:"tolerance"`
}

func DefaultSavingsInvestment() SavingsInvestmentParams {
	return SavingsInvestmentParams{
		Savings:    Linear{Intercept: 10, Slope: 5},
		Investment: Linear{Intercept: 100, Slope: 50},
		RMin:       0,
		RMax:       0.2,
		N:          200,
		Tolerance:  1e-6,
	}
}

// SavingsAt is S(r).
func (p SavingsInvestmentParams) SavingsAt(r float64) float64 {
	return p.Savings.Intercept + p.Savings.Slope*r
}

// InvestmentAt is I(r), clamped at zero.
func (p SavingsInvestmentParams) InvestmentAt(r float64) float64 {
	return math.Max(p.Investment.Intercept-p.Investment.Slope*r, 0)
}

// Gap is S(r)-I(r).
func (p SavingsInvestmentParams) Gap(r float64) float64 {
	return p.SavingsAt(r) - p.InvestmentAt(r)
}

func (p SavingsInvestmentParams) Validate() error {
	if p.N < 2 || p.N > MaxGridSize {
		return fmt.Errorf("n must be in [2, %d]", MaxGridSize)
	}
	if !allFinite(p.Savings.Intercept, p.Savings.Slope, p.Investment.Intercept, p.Investment.Slope, p.RMin, p.RMax, p.Tolerance) {
		return errors.New("schedule coefficients, rate bounds and tolerance must be finite")
	}
	if p.RMax <= p.RMin {
		return errors.New("r_max must be > r_min")
	}
	if p.Tolerance <= 0 {
		return errors.New("tolerance must be > 0")
	}
	// Both schedules are affine in r, so finite endpoints bound every sample.
	if !allFinite(p.SavingsAt(p.RMin), p.SavingsAt(p.RMax), p.InvestmentAt(p.RMin), p.InvestmentAt(p.RMax)) {
		return errors.New("schedules overflow on the rate grid")
	}
	return nil
}
