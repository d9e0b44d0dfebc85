package routes

import (
	"buildcost/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathFormulas  = "/formulas"
	PathEstimates = "/estimates"
)

func addEstimatingRoutes(rg *gin.RouterGroup, formulaHandler *handlers.FormulaHandler, estimateHandler *handlers.EstimateHandler) {
	formulas := rg.Group(PathFormulas)
	{
		formulas.POST("", formulaHandler.CreateFormula)
		formulas.GET("", formulaHandler.ListFormulas)
		formulas.POST("/validate", formulaHandler.ValidateFormula)
		formulas.GET("/:id", formulaHandler.GetFormula)
		// Edits never mutate in place: PUT appends a new version to the chain.
		formulas.PUT("/:id", formulaHandler.UpdateFormula)
		formulas.PATCH("/:id/activate", formulaHandler.ActivateFormula)
		formulas.PATCH("/:id/deactivate", formulaHandler.DeactivateFormula)
		formulas.POST("/:id/evaluate", formulaHandler.EvaluateFormula)
	}

	estimates := rg.Group(PathEstimates)
	{
		estimates.POST("", estimateHandler.CreateEstimate)
		estimates.GET("", estimateHandler.ListEstimates)
		estimates.GET("/:id", estimateHandler.GetEstimate)
		estimates.POST("/:id/recompute", estimateHandler.RecomputeTotals)
		estimates.PATCH("/:id/finalize", estimateHandler.FinalizeEstimate)
		estimates.PATCH("/:id/archive", estimateHandler.ArchiveEstimate)

		estimates.POST("/:id/items", estimateHandler.AddLineItem)
		estimates.PATCH("/:id/items/:itemId", estimateHandler.UpdateLineItem)
		estimates.DELETE("/:id/items/:itemId", estimateHandler.DeleteLineItem)
		estimates.POST("/:id/items/:itemId/compute", estimateHandler.ComputeLineItem)
		estimates.POST("/:id/items/:itemId/override", estimateHandler.OverrideLineItem)
		estimates.GET("/:id/items/:itemId/computations", estimateHandler.ListComputations)
	}
}
