package handlers

import (
	"net/http"

	"macro-sim/internal/api/models"
	"macro-sim/internal/model"
	"macro-sim/internal/symbolic"

	"github.com/gin-gonic/gin"
)

// ListVariables handles GET /api/v1/variables
func ListVariables(c *gin.Context) {
	vars := model.Variables()
	c.JSON(http.StatusOK, gin.H{
		"variables": vars,
		"count":     len(vars),
		// Aggregate demand as the sum of its components.
		"example": symbolic.AddOf(symbolic.S("C"), symbolic.S("I")).String(),
	})
}

// ListScenarios handles GET /api/v1/scenarios
func ListScenarios(c *gin.Context) {
	prod := model.DefaultProduction()
	price := model.DefaultPrice()
	sticky := model.DefaultSticky()
	si := model.DefaultSavingsInvestment()

	scenarios := []models.ScenarioInfo{
		{
			Name:        "production",
			Endpoint:    "/api/v1/production",
			Description: "Cobb-Douglas output and marginal products, numeric and symbolic",
			Parameters: []models.ParameterInfo{
				{Name: "k", Type: "float", Description: "capital stock", Default: prod.K},
				{Name: "l", Type: "float", Description: "labor input", Default: prod.L},
				{Name: "alpha", Type: "float", Description: "capital share in (0, 1)", Default: prod.Alpha},
			},
		},
		{
			Name:        "tatonnement",
			Endpoint:    "/api/v1/tatonnement",
			Description: "price adjusts in proportion to excess demand",
			Parameters:  priceParameters(price),
		},
		{
			Name:        "sticky",
			Endpoint:    "/api/v1/sticky",
			Description: "price moves only part of the way to the tatonnement target",
			Parameters: append(priceParameters(sticky.PriceParams), models.ParameterInfo{
				Name: "stickiness", Type: "float", Description: "weight on the previous price in [0, 1]", Default: sticky.Stickiness,
			}),
		},
		{
			Name:        "equilibrium",
			Endpoint:    "/api/v1/equilibrium",
			Description: "grid scan for the rate where savings equals investment",
			Parameters: []models.ParameterInfo{
				{Name: "savings", Type: "object", Description: "S(r) = intercept + slope*r", Default: si.Savings},
				{Name: "investment", Type: "object", Description: "I(r) = max(intercept - slope*r, 0)", Default: si.Investment},
				{Name: "r_min", Type: "float", Description: "lower end of the rate grid", Default: si.RMin},
				{Name: "r_max", Type: "float", Description: "upper end of the rate grid", Default: si.RMax},
				{Name: "n", Type: "int", Description: "number of grid samples", Default: si.N},
				{Name: "tolerance", Type: "float", Description: "|S-I| accepted as equal", Default: si.Tolerance},
			},
		},
	}

	c.JSON(http.StatusOK, gin.H{"scenarios": scenarios})
}

func priceParameters(p model.PriceParams) []models.ParameterInfo {
	return []models.ParameterInfo{
		{Name: "market", Type: "object", Description: "linear demand a-b*p and supply c+d*p", Default: p.Market},
		{Name: "p0", Type: "float", Description: "initial price", Default: p.P0},
		{Name: "gamma", Type: "float", Description: "adjustment speed", Default: p.Gamma},
		{Name: "steps", Type: "int", Description: "number of update steps", Default: p.Steps},
	}
}
