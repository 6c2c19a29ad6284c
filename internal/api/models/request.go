package models

import "macro-sim/internal/model"

// Requests are bound onto their Default* value, so omitted keys keep the
// chapter defaults and explicit zeros are honoured.

// ProductionRequest is the body of POST /api/v1/production.
type ProductionRequest struct {
	K     float64 `json:"k"`
	L     float64 `json:"l"`
	Alpha float64 `json:"alpha"`
}

func DefaultProductionRequest() ProductionRequest {
	p := model.DefaultProduction()
	return ProductionRequest{K: p.K, L: p.L, Alpha: p.Alpha}
}

func (r ProductionRequest) Params() model.ProductionParams {
	return model.ProductionParams{K: r.K, L: r.L, Alpha: r.Alpha}
}

// PriceRequest is the body of POST /api/v1/tatonnement.
type PriceRequest struct {
	Market       model.MarketParams `json:"market"`
	P0           float64            `json:"p0"`
	Gamma        float64            `json:"gamma"`
	Steps        int                `json:"steps"`
	IncludeTrace bool               `json:"include_trace,omitempty"`
}

func DefaultPriceRequest() PriceRequest {
	return priceRequest(model.DefaultPrice())
}

func priceRequest(p model.PriceParams) PriceRequest {
	return PriceRequest{Market: p.Market, P0: p.P0, Gamma: p.Gamma, Steps: p.Steps}
}

func (r PriceRequest) Params() model.PriceParams {
	return model.PriceParams{Market: r.Market, P0: r.P0, Gamma: r.Gamma, Steps: r.Steps}
}

// StickyRequest is the body of POST /api/v1/sticky.
type StickyRequest struct {
	PriceRequest
	Stickiness float64 `json:"stickiness"`
}

func DefaultStickyRequest() StickyRequest {
	p := model.DefaultSticky()
	return StickyRequest{PriceRequest: priceRequest(p.PriceParams), Stickiness: p.Stickiness}
}

func (r StickyRequest) Params() model.StickyParams {
	return model.StickyParams{PriceParams: r.PriceRequest.Params(), Stickiness: r.Stickiness}
}

// EquilibriumRequest is the body of POST /api/v1/equilibrium.
type EquilibriumRequest struct {
	Savings          model.Linear `json:"savings"`
	Investment       model.Linear `json:"investment"`
	RMin             float64      `json:"r_min"`
	RMax             float64      `json:"r_max"`
	N                int          `json:"n"`
	Tolerance        float64      `json:"tolerance"`
	IncludeSchedules bool         `json:"include_schedules,omitempty"`
}

func DefaultEquilibriumRequest() EquilibriumRequest {
	p := model.DefaultSavingsInvestment()
	return EquilibriumRequest{
		Savings:    p.Savings,
		Investment: p.Investment,
		RMin:       p.RMin,
		RMax:       p.RMax,
		N:          p.N,
		Tolerance:  p.Tolerance,
	}
}

func (r EquilibriumRequest) Params() model.SavingsInvestmentParams {
	return model.SavingsInvestmentParams{
		Savings:    r.Savings,
		Investment: r.Investment,
		RMin:       r.RMin,
		RMax:       r.RMax,
		N:          r.N,
		Tolerance:  r.Tolerance,
	}
}
