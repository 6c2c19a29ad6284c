package models

import (
	"macro-sim/internal/model"
	"macro-sim/internal/production"
)

// ProductionResponse is the response of POST /api/v1/production.
type ProductionResponse struct {
	ID     string            `json:"id"`
	Result production.Result `json:"result"`
}

// PriceSummary contains aggregated results of a price simulation.
type PriceSummary struct {
	Steps         int     `json:"steps"`
	Diverged      bool    `json:"diverged"`
	InitialPrice  float64 `json:"initial_price"`
	FinalPrice    float64 `json:"final_price"`
	AnalyticPrice float64 `json:"analytic_price"`
	HasAnalytic   bool    `json:"has_analytic"`
	// Gap is FinalPrice - AnalyticPrice, when the latter exists.
	Gap float64 `json:"gap"`
}

// SimulationResponse is the response of the price simulations.
type SimulationResponse struct {
	ID      string           `json:"id"`
	Kind    string           `json:"kind"`
	Summary PriceSummary     `json:"summary"`
	Trace   []model.TraceRow `json:"trace,omitempty"`
}

// EquilibriumResponse is the response of POST /api/v1/equilibrium.
type EquilibriumResponse struct {
	ID          string    `json:"id"`
	Found       bool      `json:"found"`
	Rate        float64   `json:"rate"`
	Refined     float64   `json:"refined"`
	HasRefined  bool      `json:"has_refined"`
	Analytic    float64   `json:"analytic"`
	HasAnalytic bool      `json:"has_analytic"`
	Rates       []float64 `json:"rates,omitempty"`
	Savings     []float64 `json:"savings,omitempty"`
	Investment  []float64 `json:"investment,omitempty"`
}

// ScenarioInfo represents information about a simulation endpoint.
type ScenarioInfo struct {
	Name        string          `json:"name"`
	Endpoint    string          `json:"endpoint"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a scenario parameter.
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int", "object"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
