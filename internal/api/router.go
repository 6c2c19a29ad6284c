// Package api assembles the HTTP surface over the simulators.
package api

import (
	"log/slog"
	"net/http"

	"macro-sim/internal/api/handlers"
	"macro-sim/internal/api/middleware"
	"macro-sim/internal/production"
	"macro-sim/internal/runs"

	"github.com/gin-gonic/gin"
)

// Deps are the collaborators the router wires into its handlers.
type Deps struct {
	Store       *runs.Store
	Evaluator   *production.Evaluator
	Logger      *slog.Logger
	CORSOrigins []string
}

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ev := d.Evaluator
	if ev == nil {
		ev = production.NewEvaluator(production.SymbolicAlgebra{})
	}

	router := gin.New()
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(d.CORSOrigins))

	sim := handlers.NewSimulationHandler(d.Store, ev, logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/variables", handlers.ListVariables)
		api.GET("/scenarios", handlers.ListScenarios)

		api.POST("/production", sim.Production)
		api.POST("/tatonnement", sim.Tatonnement)
		api.POST("/sticky", sim.Sticky)
		api.POST("/equilibrium", sim.Equilibrium)

		api.GET("/runs/:id", sim.GetRun)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return router
}
