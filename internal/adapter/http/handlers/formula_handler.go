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

var errInvalidFormulaPayload = pkg.NewDomainErrorSimple("INVALID_FORMULA_INPUT", "Invalid formula payload", http.StatusBadRequest)

// FormulaHandler handles HTTP requests for formula authoring, versioning and
// ad-hoc evaluation.
type FormulaHandler struct {
	usecase usecase.IFormulaUseCase
}

func NewFormulaHandler(uc usecase.IFormulaUseCase) *FormulaHandler {
	return &FormulaHandler{usecase: uc}
}

func (h *FormulaHandler) CreateFormula(c *gin.Context) {
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}
	var payload request.FormulaRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidFormulaPayload.HTTPStatus, errInvalidFormulaPayload.ToHTTPError())
		return
	}

	f, err := h.usecase.CreateFormula(c.Request.Context(), actor, payload.ToInput())
	if err != nil {
		appErr := mapFormulaError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromFormula(f))
}

// UpdateFormula appends a new version to the formula's chain. A 409 means
// the referenced version is no longer the chain head; re-read and resubmit.
func (h *FormulaHandler) UpdateFormula(c *gin.Context) {
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}
	var payload request.FormulaRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidFormulaPayload.HTTPStatus, errInvalidFormulaPayload.ToHTTPError())
		return
	}

	f, err := h.usecase.UpdateFormula(c.Request.Context(), actor, c.Param("id"), payload.ToInput())
	if err != nil {
		appErr := mapFormulaError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromFormula(f))
}

func (h *FormulaHandler) ActivateFormula(c *gin.Context) {
	h.setActive(c, true)
}

func (h *FormulaHandler) DeactivateFormula(c *gin.Context) {
	h.setActive(c, false)
}

func (h *FormulaHandler) setActive(c *gin.Context, active bool) {
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}
	f, err := h.usecase.SetFormulaActive(c.Request.Context(), actor, c.Param("id"), active)
	if err != nil {
		appErr := mapFormulaError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromFormula(f))
}

func (h *FormulaHandler) GetFormula(c *gin.Context) {
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}
	f, err := h.usecase.GetFormula(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		appErr := mapFormulaError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromFormula(f))
}

func (h *FormulaHandler) ListFormulas(c *gin.Context) {
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}
	formulas, err := h.usecase.ListFormulas(c.Request.Context(), actor, c.Query("category"))
	if err != nil {
		appErr := mapFormulaError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromFormulas(formulas))
}

// ValidateFormula runs the full validation (static checks + boundary
// dry-run) without persisting anything.
func (h *FormulaHandler) ValidateFormula(c *gin.Context) {
	if _, ok := actorFromRequest(c); !ok {
		return
	}
	var payload request.FormulaRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidFormulaPayload.HTTPStatus, errInvalidFormulaPayload.ToHTTPError())
		return
	}
	if err := h.usecase.ValidateDefinition(payload.ToDefinition()); err != nil {
		appErr := mapFormulaError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// EvaluateFormula previews a stored formula against ad-hoc input values.
func (h *FormulaHandler) EvaluateFormula(c *gin.Context) {
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}
	var payload request.EvaluateFormulaRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidFormulaPayload.HTTPStatus, errInvalidFormulaPayload.ToHTTPError())
		return
	}
	res, err := h.usecase.EvaluateFormula(c.Request.Context(), actor, c.Param("id"), payload.InputValues)
	if err != nil {
		appErr := mapFormulaError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEvaluation(res))
}

func mapFormulaError(err error) *pkg.AppError {
	if fe, ok := formula.AsError(err); ok {
		return appErrorFromFormulaError(fe)
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidFormulaID),
		errors.Is(err, usecase.ErrInvalidFormulaName),
		errors.Is(err, usecase.ErrInvalidFormulaCategory),
		errors.Is(err, usecase.ErrInvalidOrganization):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrFormulaNotFound):
		return pkg.NewDomainErrorSimple("FORMULA_NOT_FOUND", "Formula not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrFormulaVersionConflict):
		return pkg.NewDomainErrorSimple("FORMULA_VERSION_CONFLICT", "Formula version is not the current one", http.StatusConflict)
	case errors.Is(err, usecase.ErrFormulaInactive):
		return pkg.NewDomainErrorSimple("FORMULA_INACTIVE", "Formula is deactivated", http.StatusConflict)
	case errors.Is(err, interfaces.ErrDefinitionInvalid):
		return pkg.NewDomainErrorSimple("FORMULA_DEFINITION_INVALID", "Persisted formula definition is invalid", http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
