// Package production evaluates a Cobb-Douglas production function and its
// marginal products, either through the symbolic kernel or directly from
// the closed-form formulas.
package production

import (
	"math"

	"macro-sim/internal/model"
)

// CobbDouglas returns Y = K^alpha * L^(1-alpha).
func CobbDouglas(k, l, alpha float64) float64 {
	return math.Pow(k, alpha) * math.Pow(l, 1-alpha)
}

// MarginalProducts returns (MPK, MPL) from the closed-form derivatives:
//
//	MPK = alpha * K^(alpha-1) * L^(1-alpha)
//	MPL = (1-alpha) * K^alpha * L^(-alpha)
func MarginalProducts(k, l, alpha float64) (mpk, mpl float64) {
	mpk = alpha * math.Pow(k, alpha-1) * math.Pow(l, 1-alpha)
	mpl = (1 - alpha) * math.Pow(k, alpha) * math.Pow(l, -alpha)
	return mpk, mpl
}

// Output is CobbDouglas over a parameter triple.
func Output(p model.ProductionParams) float64 {
	return CobbDouglas(p.K, p.L, p.Alpha)
}
