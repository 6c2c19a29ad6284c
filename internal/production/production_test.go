package production

import (
	"sync"
	"sync/atomic"
	"testing"

	"macro-sim/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericMatchesSymbolic(t *testing.T) {
	sym := NewEvaluator(SymbolicAlgebra{})
	cases := []model.ProductionParams{
		{K: 100, L: 50, Alpha: 0.3},
		{K: 1, L: 1, Alpha: 0.5},
		{K: 0.25, L: 400, Alpha: 0.01},
		{K: 1e4, L: 3, Alpha: 0.99},
	}
	for _, p := range cases {
		wantK, wantL := MarginalProducts(p.K, p.L, p.Alpha)
		gotK, gotL := sym.Numeric(p)
		assert.InDelta(t, wantK, gotK, 1e-6, "MPK at %+v", p)
		assert.InDelta(t, wantL, gotL, 1e-6, "MPL at %+v", p)
	}
}

func TestFallbackWhenAlgebraUnavailable(t *testing.T) {
	for name, ev := range map[string]*Evaluator{
		"unavailable": NewEvaluator(UnavailableAlgebra{}),
		"nil algebra": NewEvaluator(nil),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ev.Symbolic()
			require.ErrorIs(t, err, ErrAlgebraUnavailable)

			p := model.DefaultProduction()
			wantK, wantL := MarginalProducts(p.K, p.L, p.Alpha)
			gotK, gotL := ev.Numeric(p)
			assert.Equal(t, wantK, gotK)
			assert.Equal(t, wantL, gotL)

			res := ev.Evaluate(p)
			assert.False(t, res.Symbolic)
			assert.Empty(t, res.MPKStr)
		})
	}
}

func TestCobbDouglasHomogeneousOfDegreeOne(t *testing.T) {
	for _, scale := range []float64{0.5, 2, 7.25, 100} {
		base := CobbDouglas(100, 50, 0.3)
		scaled := CobbDouglas(scale*100, scale*50, 0.3)
		assert.InDelta(t, scale*base, scaled, 1e-9*scale*base)
	}
}

func TestEulerTheorem(t *testing.T) {
	// Constant returns: K*MPK + L*MPL = Y.
	p := model.ProductionParams{K: 80, L: 120, Alpha: 0.4}
	mpk, mpl := MarginalProducts(p.K, p.L, p.Alpha)
	assert.InDelta(t, Output(p), p.K*mpk+p.L*mpl, 1e-9)
}

func TestEvaluateAttachesExpressions(t *testing.T) {
	res := NewEvaluator(SymbolicAlgebra{}).Evaluate(model.DefaultProduction())
	assert.True(t, res.Symbolic)
	assert.Equal(t, "alpha*K^(alpha - 1)*L^(-alpha + 1)", res.MPKStr)
	assert.Equal(t, "K^alpha*L^(-alpha)*(-alpha + 1)", res.MPLStr)
	assert.InDelta(t, CobbDouglas(100, 50, 0.3), res.Output, 1e-12)
}

func TestSweep(t *testing.T) {
	c := NewEvaluator(SymbolicAlgebra{}).Sweep(0.3, 50, 10, 400, 100)
	require.Len(t, c.K, 100)
	assert.Equal(t, 10.0, c.K[0])
	assert.InDelta(t, 400.0, c.K[99], 1e-9)
	assert.InDelta(t, 0.2, c.Ratios[0], 1e-12)
	for i := 1; i < len(c.K); i++ {
		// Diminishing returns to capital, rising labor productivity.
		assert.Less(t, c.MPK[i], c.MPK[i-1])
		assert.Greater(t, c.MPL[i], c.MPL[i-1])
	}
}

type countingAlgebra struct {
	calls *atomic.Int32
}

func (a countingAlgebra) Derive() (Expressions, error) {
	a.calls.Add(1)
	return SymbolicAlgebra{}.Derive()
}

func TestDerivationIsCached(t *testing.T) {
	var calls atomic.Int32
	ev := NewEvaluator(countingAlgebra{calls: &calls})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ev.Evaluate(model.DefaultProduction())
		}()
	}
	wg.Wait()
	ev.Numeric(model.ProductionParams{K: 50, L: 20, Alpha: 0.5})

	assert.Equal(t, int32(1), calls.Load())
}
