package handlers

import (
	"errors"
	"net/http"

	request "buildcost/internal/adapter/http/dto/request"
	response "buildcost/internal/adapter/http/dto/response"
	"buildcost/internal/domain/formula"
	"buildcost/internal/usecase"
	"buildcost/internal/usecase/interfaces"
	"buildcost/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidEstimatePayload = pkg.NewDomainErrorSimple("INVALID_ESTIMATE_INPUT", "Invalid estimate payload", http.StatusBadRequest)

// EstimateHandler handles HTTP requests for estimates and their line-item
// computation pipeline.
type EstimateHandler struct {
	usecase usecase.IEstimateUseCase
}

func NewEstimateHandler(uc usecase.IEstimateUseCase) *EstimateHandler {
	return &EstimateHandler{usecase: uc}
}

func (h *EstimateHandler) CreateEstimate(c *gin.Context) {
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}
	var payload request.CreateEstimateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	e, err := h.usecase.CreateEstimate(c.Request.Context(), actor, usecase.EstimateInput{
		Name:       payload.Name,
		ProjectID:  payload.ProjectID,
		MarkupRate: payload.MarkupRate,
		VATRate:    payload.VATRate,
	})
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromEstimate(e))
}

func (h *EstimateHandler) GetEstimate(c *gin.Context) {
	h.estimateOp(c, func(actor usecase.Actor, id string) (interface{}, error) {
		e, err := h.usecase.GetEstimate(c.Request.Context(), actor, id)
		if err != nil {
			return nil, err
		}
		return response.FromEstimate(e), nil
	})
}

func (h *EstimateHandler) ListEstimates(c *gin.Context) {
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}
	estimates, err := h.usecase.ListEstimates(c.Request.Context(), actor)
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimates(estimates))
}

func (h *EstimateHandler) AddLineItem(c *gin.Context) {
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}
	var payload request.LineItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	e, item, err := h.usecase.AddLineItem(c.Request.Context(), actor, c.Param("id"), usecase.LineItemInput{
		Category:         payload.Category,
		Description:      payload.Description,
		Unit:             payload.Unit,
		Quantity:         payload.Quantity,
		UnitMaterialCost: payload.UnitMaterialCost,
		UnitLaborCost:    payload.UnitLaborCost,
	})
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.LineItemMutationResponse{
		LineItem: response.FromLineItem(item),
		Estimate: response.FromEstimate(e),
	})
}

func (h *EstimateHandler) UpdateLineItem(c *gin.Context) {
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}
	var payload request.LineItemPatchRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	e, item, err := h.usecase.UpdateLineItem(c.Request.Context(), actor, c.Param("id"), c.Param("itemId"), usecase.LineItemPatch{
		Description:      payload.Description,
		Unit:             payload.Unit,
		Quantity:         payload.Quantity,
		UnitMaterialCost: payload.UnitMaterialCost,
		UnitLaborCost:    payload.UnitLaborCost,
	})
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.LineItemMutationResponse{
		LineItem: response.FromLineItem(item),
		Estimate: response.FromEstimate(e),
	})
}

func (h *EstimateHandler) DeleteLineItem(c *gin.Context) {
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}
	e, err := h.usecase.DeleteLineItem(c.Request.Context(), actor, c.Param("id"), c.Param("itemId"))
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(e))
}

// ComputeLineItem applies a formula to a line item: evaluation, output
// resolution, provenance stamping, computation receipt and totals all commit
// in one transaction.
func (h *EstimateHandler) ComputeLineItem(c *gin.Context) {
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}
	var payload request.ComputeLineItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	res, err := h.usecase.ComputeLineItem(c.Request.Context(), actor, c.Param("id"), c.Param("itemId"), usecase.ComputeInput{
		FormulaID:      payload.FormulaID,
		OutputVariable: payload.OutputVariable,
		InputValues:    payload.InputValues,
	})
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.ComputeResponse{
		LineItem:    response.FromLineItem(res.LineItem),
		Estimate:    response.FromEstimate(res.Estimate),
		Computation: response.FromComputationInstance(res.Instance),
	})
}

func (h *EstimateHandler) OverrideLineItem(c *gin.Context) {
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}
	var payload request.OverrideLineItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	e, item, err := h.usecase.OverrideLineItem(c.Request.Context(), actor, c.Param("id"), c.Param("itemId"), payload.Quantity, payload.Reason)
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.LineItemMutationResponse{
		LineItem: response.FromLineItem(item),
		Estimate: response.FromEstimate(e),
	})
}

// RecomputeTotals re-derives the aggregates; idempotent, for use after bulk
// line-item changes.
func (h *EstimateHandler) RecomputeTotals(c *gin.Context) {
	h.estimateOp(c, func(actor usecase.Actor, id string) (interface{}, error) {
		e, err := h.usecase.RecomputeTotals(c.Request.Context(), actor, id)
		if err != nil {
			return nil, err
		}
		return response.FromEstimate(e), nil
	})
}

func (h *EstimateHandler) FinalizeEstimate(c *gin.Context) {
	h.estimateOp(c, func(actor usecase.Actor, id string) (interface{}, error) {
		e, err := h.usecase.FinalizeEstimate(c.Request.Context(), actor, id)
		if err != nil {
			return nil, err
		}
		return response.FromEstimate(e), nil
	})
}

func (h *EstimateHandler) ArchiveEstimate(c *gin.Context) {
	h.estimateOp(c, func(actor usecase.Actor, id string) (interface{}, error) {
		e, err := h.usecase.ArchiveEstimate(c.Request.Context(), actor, id)
		if err != nil {
			return nil, err
		}
		return response.FromEstimate(e), nil
	})
}

func (h *EstimateHandler) ListComputations(c *gin.Context) {
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}
	instances, err := h.usecase.ListComputations(c.Request.Context(), actor, c.Param("id"), c.Param("itemId"))
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	out := make([]response.ComputationInstanceResponse, 0, len(instances))
	for _, ci := range instances {
		out = append(out, response.FromComputationInstance(ci))
	}
	c.JSON(http.StatusOK, out)
}

func (h *EstimateHandler) estimateOp(c *gin.Context, op func(actor usecase.Actor, id string) (interface{}, error)) {
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}
	body, err := op(actor, c.Param("id"))
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, body)
}

func mapEstimateError(err error) *pkg.AppError {
	if fe, ok := formula.AsError(err); ok {
		return appErrorFromFormulaError(fe)
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidEstimateID),
		errors.Is(err, usecase.ErrInvalidProjectID),
		errors.Is(err, usecase.ErrInvalidRate),
		errors.Is(err, usecase.ErrInvalidLineItemID),
		errors.Is(err, usecase.ErrInvalidQuantity),
		errors.Is(err, usecase.ErrInvalidUnitCost),
		errors.Is(err, usecase.ErrInvalidLineItemCategory),
		errors.Is(err, usecase.ErrInvalidFormulaID),
		errors.Is(err, usecase.ErrInvalidOrganization):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOverrideReasonTooShort):
		return pkg.NewDomainErrorSimple("OVERRIDE_REASON_TOO_SHORT", "Override reason must explain the adjustment", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEstimateNotFound):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrLineItemNotFound):
		return pkg.NewDomainErrorSimple("LINE_ITEM_NOT_FOUND", "Line item not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrFormulaNotFound):
		return pkg.NewDomainErrorSimple("FORMULA_NOT_FOUND", "Formula not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrEstimateNotEditable):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_EDITABLE", "Estimate is not editable", http.StatusConflict)
	case errors.Is(err, usecase.ErrLineItemQuantityOverrideRequired):
		return pkg.NewDomainErrorSimple("LINE_ITEM_OVERRIDE_REQUIRED", "Computed quantities change via compute or override; manual quantities are edited directly", http.StatusConflict)
	case errors.Is(err, usecase.ErrFormulaCategoryMismatch):
		return pkg.NewDomainErrorSimple("FORMULA_CATEGORY_MISMATCH", "Formula category does not match the line item", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrFormulaNotCurrent):
		return pkg.NewDomainErrorSimple("FORMULA_VERSION_CONFLICT", "Formula version is superseded", http.StatusConflict)
	case errors.Is(err, usecase.ErrFormulaInactive):
		return pkg.NewDomainErrorSimple("FORMULA_INACTIVE", "Formula is deactivated", http.StatusConflict)
	case errors.Is(err, usecase.ErrEstimateRevisionConflict):
		return pkg.NewDomainErrorSimple("ESTIMATE_REVISION_CONFLICT", "Estimate was modified concurrently; re-read and retry", http.StatusConflict)
	case errors.Is(err, interfaces.ErrDefinitionInvalid):
		return pkg.NewDomainErrorSimple("FORMULA_DEFINITION_INVALID", "Persisted formula definition is invalid", http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
