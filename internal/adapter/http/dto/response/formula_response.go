package response

import (
	"time"

	"buildcost/internal/domain/entities"
	"buildcost/internal/domain/formula"

	"github.com/shopspring/decimal"
)

type FormulaInputResponse struct {
	Variable     string  `json:"variable"`
	Label        string  `json:"label"`
	Unit         string  `json:"unit"`
	Kind         string  `json:"kind"`
	Min          *string `json:"min,omitempty"`
	Max          *string `json:"max,omitempty"`
	DefaultValue *string `json:"defaultValue,omitempty"`
}

type FormulaExpressionResponse struct {
	Variable   string `json:"variable"`
	Expression string `json:"expression"`
}

type FormulaOutputResponse struct {
	Variable    string `json:"variable"`
	TargetField string `json:"targetField"`
	Unit        string `json:"unit"`
}

type FormulaResponse struct {
	ID                string                      `json:"id"`
	OrganizationID    string                      `json:"organization_id"`
	Name              string                      `json:"name"`
	Description       string                      `json:"description"`
	Category          string                      `json:"category"`
	Version           int                         `json:"version"`
	Inputs            []FormulaInputResponse      `json:"inputs"`
	Expressions       []FormulaExpressionResponse `json:"expressions"`
	Outputs           []FormulaOutputResponse     `json:"outputs"`
	IsActive          bool                        `json:"is_active"`
	IsCurrent         bool                        `json:"is_current"`
	PreviousVersionID string                      `json:"previous_version_id,omitempty"`
	CreatedBy         string                      `json:"created_by"`
	CreatedAt         time.Time                   `json:"created_at"`
}

func FromFormula(f entities.Formula) FormulaResponse {
	resp := FormulaResponse{
		ID:                f.ID,
		OrganizationID:    f.OrganizationID,
		Name:              f.Name,
		Description:       f.Description,
		Category:          f.Category,
		Version:           f.Version,
		IsActive:          f.IsActive,
		IsCurrent:         f.IsCurrent(),
		PreviousVersionID: f.PreviousVersionID,
		CreatedBy:         f.CreatedBy,
		CreatedAt:         f.CreatedAt,
	}
	for _, in := range f.Inputs {
		resp.Inputs = append(resp.Inputs, FormulaInputResponse{
			Variable:     in.Variable,
			Label:        in.Label,
			Unit:         in.Unit,
			Kind:         string(in.Kind),
			Min:          decimalPtrToString(in.Min),
			Max:          decimalPtrToString(in.Max),
			DefaultValue: decimalPtrToString(in.DefaultValue),
		})
	}
	for _, expr := range f.Expressions {
		resp.Expressions = append(resp.Expressions, FormulaExpressionResponse(expr))
	}
	for _, out := range f.Outputs {
		resp.Outputs = append(resp.Outputs, FormulaOutputResponse(out))
	}
	return resp
}

func FromFormulas(formulas []entities.Formula) []FormulaResponse {
	out := make([]FormulaResponse, 0, len(formulas))
	for _, f := range formulas {
		out = append(out, FromFormula(f))
	}
	return out
}

// EvaluationResponse renders an evaluation result. All values are decimal
// strings so clients never lose precision to float parsing.
type EvaluationResponse struct {
	ResolvedInputs  map[string]string `json:"resolved_inputs"`
	ComputedResults map[string]string `json:"computed_results"`
	OutputValues    map[string]string `json:"output_values"`
}

func FromEvaluation(res formula.Result) EvaluationResponse {
	return EvaluationResponse{
		ResolvedInputs:  decimalMap(res.ResolvedInputs),
		ComputedResults: decimalMap(res.ComputedResults),
		OutputValues:    decimalMap(res.OutputValues),
	}
}

func decimalMap(m map[string]decimal.Decimal) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v.String()
	}
	return out
}

func decimalPtrToString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}
