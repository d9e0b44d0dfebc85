package handlers

import (
	"net/http"

	"buildcost/internal/domain/formula"
	"buildcost/internal/usecase"
	"buildcost/pkg"

	"github.com/gin-gonic/gin"
)

// Identity headers injected by the (external) auth layer in front of this
// service. Requests without an organization are rejected before any lookup.
const (
	HeaderOrganizationID = "X-Organization-ID"
	HeaderActorID        = "X-Actor-ID"
)

var errMissingOrganization = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Missing organization identity", http.StatusBadRequest)

func actorFromRequest(c *gin.Context) (usecase.Actor, bool) {
	actor := usecase.Actor{
		OrganizationID: c.GetHeader(HeaderOrganizationID),
		UserID:         c.GetHeader(HeaderActorID),
	}
	if actor.OrganizationID == "" {
		c.JSON(errMissingOrganization.HTTPStatus, errMissingOrganization.ToHTTPError())
		return usecase.Actor{}, false
	}
	return actor, true
}

// appErrorFromFormulaError translates the domain's typed formula failures
// into stable HTTP error codes. Authoring failures share one outer code with
// the precise inner code in details, so clients can both branch coarsely and
// point at the offending variable.
func appErrorFromFormulaError(fe *formula.Error) *pkg.AppError {
	details := map[string]any{"code": string(fe.Code)}
	if fe.Variable != "" {
		details["variable"] = fe.Variable
	}

	var code string
	switch fe.Code {
	case formula.CodeMissingInput:
		code = "FORMULA_INPUT_MISSING"
	case formula.CodeInvalidInput:
		code = "FORMULA_INPUT_INVALID"
	case formula.CodeInputOutOfRange:
		code = "FORMULA_INPUT_OUT_OF_RANGE"
	case formula.CodeEvaluationFailed, formula.CodeInvalidResult, formula.CodeInvalidOutputMapping:
		code = "FORMULA_EVALUATION_FAILED"
	case formula.CodeOutputMappingMissing:
		code = "FORMULA_OUTPUT_MAPPING_MISSING"
	case formula.CodeOutputNotFound:
		code = "FORMULA_OUTPUT_NOT_FOUND"
	case formula.CodeOutputSelectionRequired:
		code = "FORMULA_OUTPUT_SELECTION_REQUIRED"
	default:
		// Definition errors: duplicate/undefined variables, unsafe
		// constructs, bad bounds, failed dry-runs.
		code = "FORMULA_VALIDATION_FAILED"
	}

	return pkg.NewDomainError(code, fe.Message, fe, http.StatusUnprocessableEntity).WithDetails(details)
}
