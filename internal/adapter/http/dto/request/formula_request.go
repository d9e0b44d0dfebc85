package request

import (
	"buildcost/internal/domain/formula"
	"buildcost/internal/usecase"

	"github.com/shopspring/decimal"
)

// FormulaInputRequest declares one formula input. Min/Max/DefaultValue
// accept JSON numbers or decimal strings; decimal.Decimal handles both.
type FormulaInputRequest struct {
	Variable     string           `json:"variable" binding:"required"`
	Label        string           `json:"label"`
	Unit         string           `json:"unit"`
	Kind         string           `json:"kind" binding:"required"`
	Min          *decimal.Decimal `json:"min"`
	Max          *decimal.Decimal `json:"max"`
	DefaultValue *decimal.Decimal `json:"defaultValue"`
}

type FormulaExpressionRequest struct {
	Variable   string `json:"variable" binding:"required"`
	Expression string `json:"expression" binding:"required"`
}

type FormulaOutputRequest struct {
	Variable    string `json:"variable" binding:"required"`
	TargetField string `json:"targetField"`
	Unit        string `json:"unit"`
}

// FormulaRequest is the authoring payload for create, update and dry
// validation of a formula.
type FormulaRequest struct {
	Name        string                     `json:"name"`
	Description string                     `json:"description"`
	Category    string                     `json:"category"`
	Inputs      []FormulaInputRequest      `json:"inputs"`
	Expressions []FormulaExpressionRequest `json:"expressions" binding:"required"`
	Outputs     []FormulaOutputRequest     `json:"outputs"`
}

func (r FormulaRequest) ToInput() usecase.FormulaInput {
	return usecase.FormulaInput{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Inputs:      r.inputDefinitions(),
		Expressions: r.expressionDefinitions(),
		Outputs:     r.outputDefinitions(),
	}
}

func (r FormulaRequest) ToDefinition() formula.Definition {
	return formula.Definition{
		Inputs:      r.inputDefinitions(),
		Expressions: r.expressionDefinitions(),
		Outputs:     r.outputDefinitions(),
	}
}

func (r FormulaRequest) inputDefinitions() []formula.InputDefinition {
	defs := make([]formula.InputDefinition, 0, len(r.Inputs))
	for _, in := range r.Inputs {
		defs = append(defs, formula.InputDefinition{
			Variable:     in.Variable,
			Label:        in.Label,
			Unit:         in.Unit,
			Kind:         formula.InputKind(in.Kind),
			Min:          in.Min,
			Max:          in.Max,
			DefaultValue: in.DefaultValue,
		})
	}
	return defs
}

func (r FormulaRequest) expressionDefinitions() []formula.ExpressionDefinition {
	defs := make([]formula.ExpressionDefinition, 0, len(r.Expressions))
	for _, expr := range r.Expressions {
		defs = append(defs, formula.ExpressionDefinition{Variable: expr.Variable, Expression: expr.Expression})
	}
	return defs
}

func (r FormulaRequest) outputDefinitions() []formula.OutputDefinition {
	defs := make([]formula.OutputDefinition, 0, len(r.Outputs))
	for _, out := range r.Outputs {
		target := out.TargetField
		if target == "" {
			target = formula.OutputTargetQuantity
		}
		defs = append(defs, formula.OutputDefinition{Variable: out.Variable, TargetField: target, Unit: out.Unit})
	}
	return defs
}

// EvaluateFormulaRequest carries ad-hoc input values for a preview
// evaluation. Values may be JSON numbers or decimal strings.
type EvaluateFormulaRequest struct {
	InputValues map[string]any `json:"input_values"`
}
