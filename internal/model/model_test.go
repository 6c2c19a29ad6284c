package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantitiesAreClamped(t *testing.T) {
	m := DefaultMarket()
	assert.Equal(t, 190.0, m.QuantityDemanded(10))
	assert.Equal(t, 25.0, m.QuantitySupplied(10))
	assert.Equal(t, 0.0, m.QuantityDemanded(500))

	neg := MarketParams{Supply: Linear{Intercept: -20, Slope: 1}}
	assert.Equal(t, 0.0, neg.QuantitySupplied(5))
}

func TestConditionFromExcess(t *testing.T) {
	tests := []struct {
		excess float64
		want   Condition
	}{
		{excess: 1, want: ConditionShortage},
		{excess: -1, want: ConditionSurplus},
		{excess: 1e-9, want: ConditionCleared},
		{excess: 0, want: ConditionCleared},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ConditionFromExcess(tt.excess, 1e-6), "excess=%g", tt.excess)
	}
}

func TestTraceRows(t *testing.T) {
	tr := NewTrace(10, 2)
	tr.Demands = append(tr.Demands, 190, 100)
	tr.Supplies = append(tr.Supplies, 25, 100)
	tr.Prices = append(tr.Prices, 26.5, 26.5)

	require.Equal(t, 2, tr.Steps())
	assert.Equal(t, 26.5, tr.FinalPrice())

	rows := tr.Rows(1e-6)
	require.Len(t, rows, 2)
	assert.Equal(t, TraceRow{
		Step: 0, Price: 10, Demand: 190, Supply: 25,
		ExcessDemand: 165, NextPrice: 26.5, Condition: ConditionShortage,
	}, rows[0])
	assert.Equal(t, ConditionCleared, rows[1].Condition)
}

func TestNewTraceNegativeSteps(t *testing.T) {
	tr := NewTrace(5, -3)
	assert.Equal(t, 0, tr.Steps())
	assert.Equal(t, []float64{5}, tr.Prices)
	assert.Empty(t, tr.Rows(0))
}

func TestDefaultsValidate(t *testing.T) {
	assert.NoError(t, DefaultProduction().Validate())
	assert.NoError(t, DefaultPrice().Validate())
	assert.NoError(t, DefaultSticky().Validate())
	assert.NoError(t, DefaultSavingsInvestment().Validate())
}

func TestValidateRejects(t *testing.T) {
	prod := DefaultProduction()
	prod.Alpha = 1
	assert.Error(t, prod.Validate())

	price := DefaultPrice()
	price.Gamma = 0
	assert.Error(t, price.Validate())

	sticky := DefaultSticky()
	sticky.Stickiness = -0.1
	assert.Error(t, sticky.Validate())

	si := DefaultSavingsInvestment()
	si.RMax = si.RMin
	assert.Error(t, si.Validate())
}

func TestValidateLimitsAndFiniteness(t *testing.T) {
	price := DefaultPrice()
	price.Steps = MaxSteps + 1
	assert.ErrorContains(t, price.Validate(), "steps must be in")
	price.Steps = MaxSteps
	assert.NoError(t, price.Validate())

	price = DefaultPrice()
	price.Gamma = math.Inf(1)
	assert.Error(t, price.Validate())

	sticky := DefaultSticky()
	sticky.Stickiness = math.NaN()
	assert.Error(t, sticky.Validate())

	si := DefaultSavingsInvestment()
	si.N = MaxGridSize + 1
	assert.ErrorContains(t, si.Validate(), "n must be in")

	prod := DefaultProduction()
	prod.K = math.NaN()
	assert.Error(t, prod.Validate())
}

func TestSavingsInvestmentSchedules(t *testing.T) {
	p := DefaultSavingsInvestment()
	assert.Equal(t, 10.0, p.SavingsAt(0))
	assert.Equal(t, 100.0, p.InvestmentAt(0))
	assert.Equal(t, 0.0, p.InvestmentAt(3))
	assert.Equal(t, -90.0, p.Gap(0))
}

func TestVariableCatalog(t *testing.T) {
	vars := Variables()
	require.Len(t, vars, 10)
	assert.Equal(t, "Y", vars[0].Symbol)

	r, ok := LookupVariable("r")
	require.True(t, ok)
	assert.False(t, r.Positive)

	_, ok = LookupVariable("X")
	assert.False(t, ok)
}
