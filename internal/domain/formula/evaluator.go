package formula

import (
	"errors"
	"fmt"
	"math"

	"buildcost/internal/domain/money"

	"github.com/shopspring/decimal"
)

// Result is the outcome of one formula evaluation.
//
// ComputedResults holds every expression result, already rounded to 4
// decimal places. OutputValues holds the values bound to declared outputs;
// when the formula declares no outputs it equals ComputedResults.
type Result struct {
	ResolvedInputs  map[string]decimal.Decimal
	ComputedResults map[string]decimal.Decimal
	OutputValues    map[string]decimal.Decimal
}

// Evaluate runs def's expressions, in declaration order, against the
// supplied input values. Inputs fall back to their declared default; a value
// that is absent, non-integral for an integer input, or outside the declared
// [min, max] fails before anything is evaluated.
//
// Every expression result is rounded half-up to 4 decimal places before it
// enters the scope, so later expressions compound on the rounded value. This
// mirrors what estimators see on screen and must not be "fixed" to full
// precision.
//
// Evaluate is pure: identical (def, inputs) always produce identical results.
func Evaluate(def Definition, inputs map[string]decimal.Decimal) (Result, error) {
	resolved, err := resolveInputs(def.Inputs, inputs)
	if err != nil {
		return Result{}, err
	}

	scope := make(map[string]decimal.Decimal, len(resolved)+len(def.Expressions))
	for k, v := range resolved {
		scope[k] = v
	}

	computed := make(map[string]decimal.Decimal, len(def.Expressions))
	for _, expr := range def.Expressions {
		node, perr := Parse(expr.Expression)
		if perr != nil {
			return Result{}, wrapError(CodeEvaluationFailed, expr.Variable, perr, "cannot parse expression")
		}
		val, eerr := eval(node, scope)
		if eerr != nil {
			if errors.Is(eerr, errNonFinite) {
				return Result{}, wrapError(CodeInvalidResult, expr.Variable, eerr, "expression produced a non-finite result")
			}
			return Result{}, wrapError(CodeEvaluationFailed, expr.Variable, eerr, "expression evaluation failed")
		}
		val = money.Round4(val)
		scope[expr.Variable] = val
		computed[expr.Variable] = val
	}

	outputs, err := bindOutputs(def.Outputs, scope, computed)
	if err != nil {
		return Result{}, err
	}

	return Result{ResolvedInputs: resolved, ComputedResults: computed, OutputValues: outputs}, nil
}

func resolveInputs(defs []InputDefinition, supplied map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	resolved := make(map[string]decimal.Decimal, len(defs))
	for _, in := range defs {
		val, ok := supplied[in.Variable]
		if !ok {
			if in.DefaultValue == nil {
				return nil, newError(CodeMissingInput, in.Variable, "no value supplied and no default declared")
			}
			val = *in.DefaultValue
		}
		if in.Kind == InputKindInteger && !money.IsIntegral(val) {
			return nil, newError(CodeInvalidInput, in.Variable, "declared integer but value %s is not integral", val)
		}
		if in.Min != nil && val.LessThan(*in.Min) {
			return nil, newError(CodeInputOutOfRange, in.Variable, "value %s is below minimum %s", val, in.Min)
		}
		if in.Max != nil && val.GreaterThan(*in.Max) {
			return nil, newError(CodeInputOutOfRange, in.Variable, "value %s is above maximum %s", val, in.Max)
		}
		resolved[in.Variable] = val
	}
	return resolved, nil
}

func bindOutputs(outputs []OutputDefinition, scope, computed map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	if len(outputs) == 0 {
		vals := make(map[string]decimal.Decimal, len(computed))
		for k, v := range computed {
			vals[k] = v
		}
		return vals, nil
	}
	vals := make(map[string]decimal.Decimal, len(outputs))
	for _, out := range outputs {
		v, ok := scope[out.Variable]
		if !ok {
			return nil, newError(CodeInvalidOutputMapping, out.Variable, "output variable is not an input or expression of this formula")
		}
		vals[out.Variable] = v
	}
	return vals, nil
}

func eval(n Node, scope map[string]decimal.Decimal) (decimal.Decimal, error) {
	switch t := n.(type) {
	case *NumberNode:
		return t.Value, nil

	case *IdentNode:
		v, ok := scope[t.Name]
		if !ok {
			return decimal.Zero, fmt.Errorf("undefined variable %q", t.Name)
		}
		return v, nil

	case *UnaryNode:
		v, err := eval(t.Operand, scope)
		if err != nil {
			return decimal.Zero, err
		}
		return v.Neg(), nil

	case *BinaryNode:
		left, err := eval(t.Left, scope)
		if err != nil {
			return decimal.Zero, err
		}
		right, err := eval(t.Right, scope)
		if err != nil {
			return decimal.Zero, err
		}
		return evalBinary(t.Op, left, right)

	case *CallNode:
		fn, ok := builtins[t.Name]
		if !ok {
			return decimal.Zero, fmt.Errorf("function %q is not allowed", t.Name)
		}
		if err := checkArity(t.Name, len(t.Args)); err != nil {
			return decimal.Zero, err
		}
		args := make([]decimal.Decimal, len(t.Args))
		for i, argNode := range t.Args {
			v, err := eval(argNode, scope)
			if err != nil {
				return decimal.Zero, err
			}
			args[i] = v
		}
		return fn.apply(args)

	default:
		return decimal.Zero, fmt.Errorf("unsupported expression node %T", n)
	}
}

func evalBinary(op TokenType, left, right decimal.Decimal) (decimal.Decimal, error) {
	switch op {
	case TokenPlus:
		return left.Add(right), nil
	case TokenMinus:
		return left.Sub(right), nil
	case TokenStar:
		return left.Mul(right), nil
	case TokenSlash:
		if right.IsZero() {
			return decimal.Zero, fmt.Errorf("division by zero")
		}
		return left.DivRound(right, money.QuantityPlaces+4), nil
	case TokenCaret:
		return evalPower(left, right)
	default:
		return decimal.Zero, fmt.Errorf("unsupported operator %s", op)
	}
}

// evalPower handles '^'. Integral exponents stay in exact decimal
// arithmetic; fractional exponents go through float64, which is acceptable
// because the result is rounded to 4 places anyway.
func evalPower(base, exp decimal.Decimal) (decimal.Decimal, error) {
	if exp.Equal(exp.Truncate(0)) && exp.Abs().LessThanOrEqual(decimal.NewFromInt(64)) {
		if base.IsZero() && exp.IsNegative() {
			return decimal.Zero, fmt.Errorf("zero raised to a negative power")
		}
		return base.Pow(exp), nil
	}
	if base.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative base %s with fractional exponent %s", base, exp)
	}
	bf, _ := base.Float64()
	ef, _ := exp.Float64()
	res := math.Pow(bf, ef)
	if math.IsNaN(res) || math.IsInf(res, 0) {
		return decimal.Zero, fmt.Errorf("%w: %s^%s", errNonFinite, base, exp)
	}
	return decimal.NewFromFloat(res), nil
}

// errNonFinite marks evaluation results that escaped the decimal domain
// (NaN/Inf through the float64 fallback paths).
var errNonFinite = errors.New("result is not a finite number")
