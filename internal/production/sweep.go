package production

import (
	"gonum.org/v1/gonum/floats"
)

// Curve holds marginal products sampled over a capital grid at fixed labor.
type Curve struct {
	Alpha  float64
	Labor  float64
	K      []float64
	Ratios []float64 // K/L
	MPK    []float64
	MPL    []float64
}

// Sweep samples n evenly spaced capital stocks in [kMin, kMax].
// n must be at least 2.
func (e *Evaluator) Sweep(alpha, labor, kMin, kMax float64, n int) Curve {
	c := Curve{
		Alpha:  alpha,
		Labor:  labor,
		K:      floats.Span(make([]float64, n), kMin, kMax),
		Ratios: make([]float64, n),
		MPK:    make([]float64, n),
		MPL:    make([]float64, n),
	}
	exprs, symErr := e.Symbolic()
	for i, k := range c.K {
		c.Ratios[i] = k / labor
		if symErr != nil {
			c.MPK[i], c.MPL[i] = MarginalProducts(k, labor, alpha)
			continue
		}
		c.MPK[i], c.MPL[i] = e.eval(exprs, k, labor, alpha)
	}
	return c
}
