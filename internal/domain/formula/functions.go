package formula

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// builtin describes one allow-listed pure function. minArgs/maxArgs bound the
// accepted arity; maxArgs < 0 means variadic.
type builtin struct {
	minArgs int
	maxArgs int
	apply   func(args []decimal.Decimal) (decimal.Decimal, error)
}

// builtins is the complete sandbox allow-list. Anything else called from an
// expression is rejected by the validator and the evaluator alike.
var builtins = map[string]builtin{
	"ceil": {1, 1, func(args []decimal.Decimal) (decimal.Decimal, error) {
		return args[0].Ceil(), nil
	}},
	"ceiling": {1, 1, func(args []decimal.Decimal) (decimal.Decimal, error) {
		return args[0].Ceil(), nil
	}},
	"floor": {1, 1, func(args []decimal.Decimal) (decimal.Decimal, error) {
		return args[0].Floor(), nil
	}},
	"round": {1, 2, func(args []decimal.Decimal) (decimal.Decimal, error) {
		places := int32(0)
		if len(args) == 2 {
			if !args[1].Equal(args[1].Truncate(0)) || args[1].IsNegative() || args[1].GreaterThan(decimal.NewFromInt(8)) {
				return decimal.Zero, fmt.Errorf("round: places must be an integer between 0 and 8, got %s", args[1])
			}
			places = int32(args[1].IntPart())
		}
		return args[0].Round(places), nil
	}},
	"sqrt": {1, 1, func(args []decimal.Decimal) (decimal.Decimal, error) {
		if args[0].IsNegative() {
			return decimal.Zero, fmt.Errorf("sqrt of negative value %s", args[0])
		}
		f, _ := args[0].Float64()
		return decimal.NewFromFloat(math.Sqrt(f)), nil
	}},
	"abs": {1, 1, func(args []decimal.Decimal) (decimal.Decimal, error) {
		return args[0].Abs(), nil
	}},
	"max": {1, -1, func(args []decimal.Decimal) (decimal.Decimal, error) {
		return decimal.Max(args[0], args[1:]...), nil
	}},
	"min": {1, -1, func(args []decimal.Decimal) (decimal.Decimal, error) {
		return decimal.Min(args[0], args[1:]...), nil
	}},
}

// IsAllowedFunction reports whether name is on the sandbox allow-list.
func IsAllowedFunction(name string) bool {
	_, ok := builtins[name]
	return ok
}

func checkArity(name string, argc int) error {
	fn, ok := builtins[name]
	if !ok {
		return fmt.Errorf("unknown function %q", name)
	}
	if argc < fn.minArgs {
		return fmt.Errorf("%s expects at least %d argument(s), got %d", name, fn.minArgs, argc)
	}
	if fn.maxArgs >= 0 && argc > fn.maxArgs {
		return fmt.Errorf("%s expects at most %d argument(s), got %d", name, fn.maxArgs, argc)
	}
	return nil
}
