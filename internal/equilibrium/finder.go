// Package equilibrium locates the interest rate at which a linear savings
// schedule meets a (clamped) linear investment schedule.
package equilibrium

import (
	"math"

	"macro-sim/internal/model"

	"gonum.org/v1/gonum/floats"
)

// Result is the sampled schedules and the located rate, if any.
type Result struct {
	Rates      []float64 `json:"rates"`
	Savings    []float64 `json:"savings"`
	Investment []float64 `json:"investment"`

	// Found is false when no sample in the grid brackets an equilibrium.
	// Rate, Index and Refined are meaningless in that case.
	Found bool    `json:"found"`
	Rate  float64 `json:"rate"`
	Index int     `json:"index"`

	// Refined is the bisection estimate inside the bracketing cell, set by
	// FindRefined.
	Refined    float64 `json:"refined"`
	HasRefined bool    `json:"has_refined"`
}

// Find scans p.N evenly spaced rates over [p.RMin, p.RMax] and returns the
// first sample r where |S(r)-I(r)| < p.Tolerance, or where S-I changes sign
// between r and r+p.Tolerance, or between r and the next sample.
// A grid of fewer than two samples finds nothing.
func Find(p model.SavingsInvestmentParams) Result {
	if p.N < 2 {
		return Result{Index: -1}
	}
	res := Result{
		Rates:      floats.Span(make([]float64, p.N), p.RMin, p.RMax),
		Savings:    make([]float64, p.N),
		Investment: make([]float64, p.N),
		Index:      -1,
	}
	for i, r := range res.Rates {
		res.Savings[i] = p.SavingsAt(r)
		res.Investment[i] = p.InvestmentAt(r)
	}
	for i, r := range res.Rates {
		gap := res.Savings[i] - res.Investment[i]
		if math.Abs(gap) < p.Tolerance || signChange(gap, p.Gap(r+p.Tolerance)) {
			return res.found(i)
		}
		if i+1 < len(res.Rates) && signChange(gap, res.Savings[i+1]-res.Investment[i+1]) {
			return res.found(i)
		}
	}
	return res
}

func (r Result) found(i int) Result {
	r.Found = true
	r.Index = i
	r.Rate = r.Rates[i]
	return r
}

func signChange(a, b float64) bool {
	return a*b < 0
}

// FindRefined runs Find and, when a bracket is found, bisects inside it.
func FindRefined(p model.SavingsInvestmentParams) Result {
	res := Find(p)
	if !res.Found {
		return res
	}
	lo := res.Rate
	hi := lo + p.Tolerance
	if res.Index+1 < len(res.Rates) {
		hi = res.Rates[res.Index+1]
	}
	if r, ok := Refine(p, lo, hi); ok {
		res.Refined = r
		res.HasRefined = true
	}
	return res
}

// Refine bisects S-I on [lo, hi] until the bracket is narrower than the
// tolerance. It reports false when the endpoints do not bracket a root.
func Refine(p model.SavingsInvestmentParams, lo, hi float64) (float64, bool) {
	glo, ghi := p.Gap(lo), p.Gap(hi)
	switch {
	case glo == 0:
		return lo, true
	case ghi == 0:
		return hi, true
	case !signChange(glo, ghi):
		if math.Abs(glo) < p.Tolerance {
			return lo, true
		}
		return 0, false
	}
	for i := 0; i < 200 && hi-lo > p.Tolerance*1e-3; i++ {
		mid := lo + (hi-lo)/2
		g := p.Gap(mid)
		if g == 0 {
			return mid, true
		}
		if signChange(glo, g) {
			hi = mid
		} else {
			lo, glo = mid, g
		}
	}
	return lo + (hi-lo)/2, true
}

// AnalyticRate solves s0 + s1*r = i0 - i1*r on the unclamped investment
// branch. It reports false when the schedules are parallel or when
// investment would be clamped at the solution.
func AnalyticRate(p model.SavingsInvestmentParams) (float64, bool) {
	den := p.Savings.Slope + p.Investment.Slope
	if den == 0 {
		return 0, false
	}
	r := (p.Investment.Intercept - p.Savings.Intercept) / den
	if p.Investment.Intercept-p.Investment.Slope*r < 0 {
		return 0, false
	}
	return r, true
}
