package market

import "math"

// Rule is a price-update rule: given the current price and the demand and
// supply evaluated at it, return the next price before clamping.
type Rule interface {
	Name() string
	Next(price, demand, supply float64) float64
}

// TatonnementRule moves price proportionally to excess demand.
type TatonnementRule struct {
	Gamma float64
}

func (TatonnementRule) Name() string { return "tatonnement" }

func (r TatonnementRule) Next(price, demand, supply float64) float64 {
	return price + r.Gamma*(demand-supply)
}

// StickyRule smooths the tatonnement target with weight Stickiness on the
// previous price.
type StickyRule struct {
	Gamma      float64
	Stickiness float64
}

func (StickyRule) Name() string { return "sticky" }

func (r StickyRule) Next(price, demand, supply float64) float64 {
	target := price + r.Gamma*(demand-supply)
	return r.Stickiness*price + (1-r.Stickiness)*target
}

func clampNonNegative(x float64) float64 {
	return math.Max(x, 0)
}
