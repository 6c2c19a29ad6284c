package equilibrium

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"macro-sim/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRangeHasNoEquilibrium(t *testing.T) {
	p := model.DefaultSavingsInvestment()
	res := Find(p)

	assert.False(t, res.Found)
	assert.Equal(t, -1, res.Index)
	require.Len(t, res.Rates, 200)
	require.Len(t, res.Savings, 200)
	require.Len(t, res.Investment, 200)
	assert.Equal(t, 0.0, res.Rates[0])
	assert.InDelta(t, 0.2, res.Rates[199], 1e-12)

	refined := FindRefined(p)
	assert.False(t, refined.Found)
	assert.False(t, refined.HasRefined)
}

func TestExtendedRangeFindsEquilibrium(t *testing.T) {
	p := model.DefaultSavingsInvestment()
	p.RMax = 2

	want, ok := AnalyticRate(p)
	require.True(t, ok)
	assert.InDelta(t, 90.0/55.0, want, 1e-12)

	res := FindRefined(p)
	require.True(t, res.Found)
	step := (p.RMax - p.RMin) / float64(p.N-1)
	assert.LessOrEqual(t, res.Rate, want)
	assert.InDelta(t, want, res.Rate, step)

	require.True(t, res.HasRefined)
	assert.InDelta(t, want, res.Refined, 1e-6)
}

func TestExactGridHit(t *testing.T) {
	// S(r)=r, I(r)=1-r meet at r=0.5, which is on a 3-point grid over [0,1].
	p := model.SavingsInvestmentParams{
		Savings:    model.Linear{Intercept: 0, Slope: 1},
		Investment: model.Linear{Intercept: 1, Slope: 1},
		RMin:       0,
		RMax:       1,
		N:          3,
		Tolerance:  1e-9,
	}
	res := Find(p)
	require.True(t, res.Found)
	assert.Equal(t, 1, res.Index)
	assert.Equal(t, 0.5, res.Rate)
}

func TestCrossingBelowGrid(t *testing.T) {
	// Savings is above investment over the whole grid; the lines cross at
	// a negative rate.
	p := model.SavingsInvestmentParams{
		Savings:    model.Linear{Intercept: 5, Slope: 1},
		Investment: model.Linear{Intercept: 4, Slope: 10},
		RMin:       0,
		RMax:       1,
		N:          50,
		Tolerance:  1e-6,
	}
	assert.False(t, Find(p).Found)
	r, ok := AnalyticRate(p)
	require.True(t, ok)
	assert.Less(t, r, p.RMin)
}

func TestAnalyticRateClamped(t *testing.T) {
	// Without the clamp the lines would meet at r=5.5, where I(r) < 0.
	p := model.SavingsInvestmentParams{
		Savings:    model.Linear{Intercept: -10, Slope: 1},
		Investment: model.Linear{Intercept: 1, Slope: 1},
	}
	_, ok := AnalyticRate(p)
	assert.False(t, ok)
}

func TestRefineWithoutBracket(t *testing.T) {
	p := model.DefaultSavingsInvestment()
	_, ok := Refine(p, 0, 0.1)
	assert.False(t, ok)
}

func TestWriteScheduleCSV(t *testing.T) {
	p := model.DefaultSavingsInvestment()
	p.RMax = 2
	res := Find(p)
	require.True(t, res.Found)

	path := filepath.Join(t.TempDir(), "nested", "si.csv")
	require.NoError(t, WriteScheduleCSV(path, res))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, p.N+1)
	assert.Equal(t, []string{"r", "savings", "investment", "gap", "equilibrium"}, records[0])
	marked := 0
	for _, rec := range records[1:] {
		if rec[4] == "true" {
			marked++
		}
	}
	assert.Equal(t, 1, marked)
	assert.Equal(t, "true", records[res.Index+1][4])
}

func TestDegenerateGridFindsNothing(t *testing.T) {
	for _, n := range []int{-1, 0, 1} {
		p := model.DefaultSavingsInvestment()
		p.RMax = 2
		p.N = n

		res := FindRefined(p)
		assert.False(t, res.Found, "n=%d", n)
		assert.Equal(t, -1, res.Index, "n=%d", n)
		assert.Empty(t, res.Rates, "n=%d", n)
	}
}

func TestEquilibriumAtLowerBound(t *testing.T) {
	p := model.DefaultSavingsInvestment()
	p.Investment = model.Linear{Intercept: 10, Slope: 50}

	res := FindRefined(p)
	require.True(t, res.Found)
	assert.Equal(t, 0, res.Index)
	assert.Equal(t, 0.0, res.Rate)
	require.True(t, res.HasRefined)
	assert.Equal(t, 0.0, res.Refined)
}
