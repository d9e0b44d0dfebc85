package formula

import (
	"github.com/shopspring/decimal"

	"buildcost/internal/domain/money"
)

// Validate runs every static check plus the boundary dry-run against def.
// A definition that fails Validate must never be persisted or activated.
//
// Checks, in order:
//  1. structural: identifiers well-formed, input min <= max, integer inputs
//     with integral bounds/defaults, outputs targeting "quantity"
//  2. per expression, against a running in-scope set: no variable collision,
//     parseable, no unsafe construct, only allow-listed functions, only
//     in-scope variable references
//  3. outputs reference in-scope variables
//  4. dry-run at the input extremes, catching failures (division by zero at
//     a boundary, and the like) that static analysis cannot see
func Validate(def Definition) error {
	scope, err := validateInputs(def.Inputs)
	if err != nil {
		return err
	}

	// A formula without expressions is still usable when its outputs bind
	// input variables directly; one that computes nothing and exposes
	// nothing is not.
	if len(def.Expressions) == 0 && len(def.Outputs) == 0 {
		return newError(CodeInvalidDefinition, "", "formula declares no expressions and no outputs")
	}

	for _, expr := range def.Expressions {
		if err := validateExpression(expr, scope); err != nil {
			return err
		}
		// Only enters scope once the expression itself passed.
		scope[expr.Variable] = struct{}{}
	}

	for _, out := range def.Outputs {
		if !IsValidIdentifier(out.Variable) {
			return newError(CodeInvalidDefinition, out.Variable, "output variable is not a valid identifier")
		}
		if out.TargetField != OutputTargetQuantity {
			return newError(CodeInvalidDefinition, out.Variable, "unsupported output target field %q", out.TargetField)
		}
		if _, ok := scope[out.Variable]; !ok {
			return newError(CodeInvalidOutputMapping, out.Variable, "output variable is not an input or expression of this formula")
		}
	}

	return dryRun(def)
}

func validateInputs(inputs []InputDefinition) (map[string]struct{}, error) {
	scope := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		if !IsValidIdentifier(in.Variable) {
			return nil, newError(CodeInvalidDefinition, in.Variable, "input variable is not a valid identifier")
		}
		if IsAllowedFunction(in.Variable) {
			return nil, newError(CodeInvalidDefinition, in.Variable, "input variable collides with built-in function %q", in.Variable)
		}
		if _, dup := scope[in.Variable]; dup {
			return nil, newError(CodeDuplicateVariable, in.Variable, "input variable declared more than once")
		}
		if in.Kind != InputKindNumber && in.Kind != InputKindInteger {
			return nil, newError(CodeInvalidDefinition, in.Variable, "unknown input kind %q", in.Kind)
		}
		if in.Min != nil && in.Max != nil && in.Min.GreaterThan(*in.Max) {
			return nil, newError(CodeInvalidInputBounds, in.Variable, "min %s exceeds max %s", in.Min, in.Max)
		}
		if in.Kind == InputKindInteger {
			for name, v := range map[string]*decimal.Decimal{"min": in.Min, "max": in.Max, "default": in.DefaultValue} {
				if v != nil && !money.IsIntegral(*v) {
					return nil, newError(CodeInvalidDefinition, in.Variable, "integer input has non-integral %s %s", name, v)
				}
			}
		}
		scope[in.Variable] = struct{}{}
	}
	return scope, nil
}

func validateExpression(expr ExpressionDefinition, scope map[string]struct{}) error {
	if !IsValidIdentifier(expr.Variable) {
		return newError(CodeInvalidDefinition, expr.Variable, "expression variable is not a valid identifier")
	}
	if IsAllowedFunction(expr.Variable) {
		return newError(CodeInvalidDefinition, expr.Variable, "expression variable collides with built-in function %q", expr.Variable)
	}
	if _, dup := scope[expr.Variable]; dup {
		return newError(CodeDuplicateVariable, expr.Variable, "variable already declared by an input or earlier expression")
	}

	node, perr := Parse(expr.Expression)
	if perr != nil {
		if pe, ok := perr.(*ParseError); ok && pe.Unsafe {
			return wrapError(CodeUnsafeExpression, expr.Variable, perr, "expression uses a forbidden construct")
		}
		return wrapError(CodeInvalidExpression, expr.Variable, perr, "expression does not parse")
	}

	return Walk(node, func(n Node) error {
		switch t := n.(type) {
		case *CallNode:
			if !IsAllowedFunction(t.Name) {
				return newError(CodeUnsafeFunction, expr.Variable, "function %q is not on the allow-list", t.Name)
			}
			if err := checkArity(t.Name, len(t.Args)); err != nil {
				return wrapError(CodeInvalidExpression, expr.Variable, err, "bad function call")
			}
		case *IdentNode:
			if _, ok := scope[t.Name]; !ok {
				return newError(CodeUndefinedVariable, expr.Variable, "references undefined variable %q", t.Name)
			}
		}
		return nil
	})
}

// dryRun evaluates def twice, once with every input at its lower extreme and
// once at its upper extreme. Failures here are authoring errors: the formula
// blows up inside its own declared input range.
func dryRun(def Definition) error {
	low := make(map[string]decimal.Decimal, len(def.Inputs))
	high := make(map[string]decimal.Decimal, len(def.Inputs))
	for _, in := range def.Inputs {
		low[in.Variable] = firstOf(in.Min, in.DefaultValue, decimal.Zero)
		high[in.Variable] = firstOf(in.Max, in.DefaultValue, in.Min, decimal.NewFromInt(1))
	}

	if _, err := Evaluate(def, low); err != nil {
		return wrapError(CodeDryRunFailed, "", err, "formula fails at lower input boundary")
	}
	if _, err := Evaluate(def, high); err != nil {
		return wrapError(CodeDryRunFailed, "", err, "formula fails at upper input boundary")
	}
	return nil
}

func firstOf(candidates ...any) decimal.Decimal {
	for _, c := range candidates {
		switch v := c.(type) {
		case *decimal.Decimal:
			if v != nil {
				return *v
			}
		case decimal.Decimal:
			return v
		}
	}
	return decimal.Zero
}
