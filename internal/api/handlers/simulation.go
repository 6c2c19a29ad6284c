package handlers

import (
	"log/slog"
	"net/http"

	"macro-sim/internal/api/models"
	"macro-sim/internal/equilibrium"
	"macro-sim/internal/market"
	"macro-sim/internal/model"
	"macro-sim/internal/production"
	"macro-sim/internal/runs"

	"github.com/gin-gonic/gin"
)

// clearedTol is the excess-demand band reported as CLEARED in traces.
const clearedTol = 1e-6

const divergedMessage = "price overflowed to a non-finite value; lower gamma or the market coefficients"

// SimulationHandler runs simulations and stores their results.
type SimulationHandler struct {
	store     *runs.Store
	evaluator *production.Evaluator
	logger    *slog.Logger
}

// NewSimulationHandler creates a new simulation handler
func NewSimulationHandler(store *runs.Store, ev *production.Evaluator, logger *slog.Logger) *SimulationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SimulationHandler{store: store, evaluator: ev, logger: logger}
}

// Production handles POST /api/v1/production
func (h *SimulationHandler) Production(c *gin.Context) {
	req := models.DefaultProductionRequest()
	if !bindOptionalJSON(c, &req) {
		return
	}
	params := req.Params()
	if err := params.Validate(); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_PARAMS", err)
		return
	}

	res := h.evaluator.Evaluate(params)
	run := h.store.Put(runs.KindProduction, params, res)
	c.JSON(http.StatusOK, models.ProductionResponse{ID: run.ID, Result: res})
}

// Tatonnement handles POST /api/v1/tatonnement
func (h *SimulationHandler) Tatonnement(c *gin.Context) {
	req := models.DefaultPriceRequest()
	if !bindOptionalJSON(c, &req) {
		return
	}
	params := req.Params()
	if err := params.Validate(); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_PARAMS", err)
		return
	}

	tr := market.Tatonnement(params)
	if tr.Diverged {
		h.rejectDiverged(c, runs.KindTatonnement, tr)
		return
	}
	run := h.store.Put(runs.KindTatonnement, params, tr)
	h.logger.Debug("tatonnement run", "id", run.ID, "steps", params.Steps, "final_price", tr.FinalPrice())
	c.JSON(http.StatusOK, buildSimulationResponse(run, params.Market, tr, req.IncludeTrace))
}

// Sticky handles POST /api/v1/sticky
func (h *SimulationHandler) Sticky(c *gin.Context) {
	req := models.DefaultStickyRequest()
	if !bindOptionalJSON(c, &req) {
		return
	}
	params := req.Params()
	if err := params.Validate(); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_PARAMS", err)
		return
	}

	tr := market.StickyPrice(params)
	if tr.Diverged {
		h.rejectDiverged(c, runs.KindSticky, tr)
		return
	}
	run := h.store.Put(runs.KindSticky, params, tr)
	c.JSON(http.StatusOK, buildSimulationResponse(run, params.Market, tr, req.IncludeTrace))
}

// Equilibrium handles POST /api/v1/equilibrium
func (h *SimulationHandler) Equilibrium(c *gin.Context) {
	req := models.DefaultEquilibriumRequest()
	if !bindOptionalJSON(c, &req) {
		return
	}
	params := req.Params()
	if err := params.Validate(); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_PARAMS", err)
		return
	}

	res := equilibrium.FindRefined(params)
	run := h.store.Put(runs.KindEquilibrium, params, res)

	resp := models.EquilibriumResponse{
		ID:         run.ID,
		Found:      res.Found,
		Rate:       res.Rate,
		Refined:    res.Refined,
		HasRefined: res.HasRefined,
	}
	resp.Analytic, resp.HasAnalytic = equilibrium.AnalyticRate(params)
	if req.IncludeSchedules {
		resp.Rates = res.Rates
		resp.Savings = res.Savings
		resp.Investment = res.Investment
	}
	c.JSON(http.StatusOK, resp)
}

// GetRun handles GET /api/v1/runs/:id
func (h *SimulationHandler) GetRun(c *gin.Context) {
	id := c.Param("id")
	run, ok := h.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NOT_FOUND",
				Message: "run not found or expired",
				Details: map[string]interface{}{"id": id},
			},
		})
		return
	}
	c.JSON(http.StatusOK, run)
}

// Helper methods

func (h *SimulationHandler) rejectDiverged(c *gin.Context, kind runs.Kind, tr model.Trace) {
	h.logger.Warn("simulation diverged", "kind", kind, "completed_steps", tr.Steps())
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "DIVERGED",
			Message: divergedMessage,
			Details: map[string]interface{}{"completed_steps": tr.Steps()},
		},
	})
}

func buildSimulationResponse(run runs.Run, m model.MarketParams, tr model.Trace, includeTrace bool) models.SimulationResponse {
	resp := models.SimulationResponse{
		ID:   run.ID,
		Kind: string(run.Kind),
		Summary: models.PriceSummary{
			Steps:        tr.Steps(),
			Diverged:     tr.Diverged,
			InitialPrice: tr.Prices[0],
			FinalPrice:   tr.FinalPrice(),
		},
	}
	if p, ok := market.AnalyticPrice(m); ok {
		resp.Summary.AnalyticPrice = p
		resp.Summary.HasAnalytic = true
		resp.Summary.Gap = tr.FinalPrice() - p
	}
	if includeTrace {
		resp.Trace = tr.Rows(clearedTol)
	}
	return resp
}
