package model

// Variable is one of the named aggregates used throughout the book.
type Variable struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// Positive marks quantities that are strictly positive by assumption.
	// The interest rate is the only signed variable.
	Positive bool `json:"positive"`
}

// Variables returns the core macro variables in the order chapter 1
// introduces them.
func Variables() []Variable {
	return []Variable{
		{Symbol: "Y", Name: "output", Description: "aggregate output / income", Positive: true},
		{Symbol: "C", Name: "consumption", Description: "aggregate consumption", Positive: true},
		{Symbol: "I", Name: "investment", Description: "aggregate investment", Positive: true},
		{Symbol: "L", Name: "liquidity preference", Description: "demand for money", Positive: true},
		{Symbol: "M", Name: "money supply", Description: "nominal money supply", Positive: true},
		{Symbol: "r", Name: "interest rate", Description: "rate of interest", Positive: false},
		{Symbol: "N", Name: "employment", Description: "level of employment", Positive: true},
		{Symbol: "P", Name: "price level", Description: "general price level", Positive: true},
		{Symbol: "Z", Name: "aggregate supply price", Description: "aggregate supply price", Positive: true},
		{Symbol: "D", Name: "aggregate demand price", Description: "aggregate demand price", Positive: true},
	}
}

// LookupVariable finds a catalog entry by symbol.
func LookupVariable(symbol string) (Variable, bool) {
	for _, v := range Variables() {
		if v.Symbol == symbol {
			return v, true
		}
	}
	return Variable{}, false
}
