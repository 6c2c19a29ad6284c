package model

import "errors"

// ProductionParams are the inputs of a Cobb-Douglas production function.
// Units are whatever the caller uses for capital and labor; Alpha is the
// output elasticity of capital.
type ProductionParams struct {
	K     float64 `json:"k" yaml:"k"`
	L     float64 `json:"l" yaml:"l"`
	Alpha float64 `json:"alpha" yaml:"alpha"`
}

// DefaultProduction matches the worked example in chapter 2.
func DefaultProduction() ProductionParams {
	return ProductionParams{K: 100, L: 50, Alpha: 0.3}
}

func (p ProductionParams) Validate() error {
	if !allFinite(p.K, p.L, p.Alpha) {
		return errors.New("K, L and alpha must be finite")
	}
	if p.K <= 0 {
		return errors.New("K must be > 0")
	}
	if p.L <= 0 {
		return errors.New("L must be > 0")
	}
	if p.Alpha <= 0 || p.Alpha >= 1 {
		return errors.New("alpha must be in (0, 1)")
	}
	return nil
}
