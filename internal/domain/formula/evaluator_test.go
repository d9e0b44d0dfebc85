package formula

import (
	"testing"

	"buildcost/internal/domain/money"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	return money.MustFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := money.MustFromString(s)
	return &d
}

func inputsOf(t *testing.T, kv map[string]string) map[string]decimal.Decimal {
	t.Helper()
	out := make(map[string]decimal.Decimal, len(kv))
	for k, v := range kv {
		out[k] = dec(t, v)
	}
	return out
}

func TestEvaluate(t *testing.T) {
	t.Run("wall area with waste factor", func(t *testing.T) {
		def := Definition{
			Inputs: []InputDefinition{
				{Variable: "length", Kind: InputKindNumber, Min: decPtr("0")},
				{Variable: "height", Kind: InputKindNumber, Min: decPtr("0")},
				{Variable: "waste", Kind: InputKindNumber, DefaultValue: decPtr("1.1")},
			},
			Expressions: []ExpressionDefinition{
				{Variable: "area", Expression: "length * height"},
				{Variable: "total", Expression: "area * waste"},
			},
		}

		res, err := Evaluate(def, inputsOf(t, map[string]string{"length": "4", "height": "2.5"}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.ComputedResults["area"].Equal(dec(t, "10")) {
			t.Fatalf("expected area 10, got %s", res.ComputedResults["area"])
		}
		if !res.ComputedResults["total"].Equal(dec(t, "11")) {
			t.Fatalf("expected total 11, got %s", res.ComputedResults["total"])
		}
		if !res.ResolvedInputs["waste"].Equal(dec(t, "1.1")) {
			t.Fatalf("expected default waste 1.1, got %s", res.ResolvedInputs["waste"])
		}
	})

	t.Run("division rounds to 4 places", func(t *testing.T) {
		def := Definition{
			Expressions: []ExpressionDefinition{{Variable: "ratio", Expression: "1 / 3"}},
		}
		res, err := Evaluate(def, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := res.ComputedResults["ratio"]; !got.Equal(dec(t, "0.3333")) {
			t.Fatalf("expected 0.3333, got %s", got)
		}
	})

	t.Run("later expressions see the rounded value", func(t *testing.T) {
		def := Definition{
			Expressions: []ExpressionDefinition{
				{Variable: "third", Expression: "1 / 3"},
				{Variable: "tripled", Expression: "third * 3"},
			},
		}
		res, err := Evaluate(def, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// 0.3333 * 3, not 1: rounding compounds by design.
		if got := res.ComputedResults["tripled"]; !got.Equal(dec(t, "0.9999")) {
			t.Fatalf("expected 0.9999, got %s", got)
		}
	})

	t.Run("missing input without default", func(t *testing.T) {
		def := Definition{
			Inputs:      []InputDefinition{{Variable: "length", Kind: InputKindNumber}},
			Expressions: []ExpressionDefinition{{Variable: "x", Expression: "length"}},
		}
		_, err := Evaluate(def, nil)
		if CodeOf(err) != CodeMissingInput {
			t.Fatalf("expected CodeMissingInput, got %v", err)
		}
		fe, _ := AsError(err)
		if fe.Variable != "length" {
			t.Fatalf("expected variable length, got %q", fe.Variable)
		}
	})

	t.Run("integer input rejects fractional value", func(t *testing.T) {
		def := Definition{
			Inputs:      []InputDefinition{{Variable: "count", Kind: InputKindInteger}},
			Expressions: []ExpressionDefinition{{Variable: "x", Expression: "count"}},
		}
		_, err := Evaluate(def, inputsOf(t, map[string]string{"count": "2.5"}))
		if CodeOf(err) != CodeInvalidInput {
			t.Fatalf("expected CodeInvalidInput, got %v", err)
		}
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		def := Definition{
			Inputs: []InputDefinition{
				{Variable: "v", Kind: InputKindNumber, Min: decPtr("0"), Max: decPtr("10")},
			},
			Expressions: []ExpressionDefinition{{Variable: "x", Expression: "v"}},
		}
		if _, err := Evaluate(def, inputsOf(t, map[string]string{"v": "0"})); err != nil {
			t.Fatalf("min boundary should pass: %v", err)
		}
		if _, err := Evaluate(def, inputsOf(t, map[string]string{"v": "10"})); err != nil {
			t.Fatalf("max boundary should pass: %v", err)
		}
		_, err := Evaluate(def, inputsOf(t, map[string]string{"v": "-0.0001"}))
		if CodeOf(err) != CodeInputOutOfRange {
			t.Fatalf("expected CodeInputOutOfRange below min, got %v", err)
		}
		_, err = Evaluate(def, inputsOf(t, map[string]string{"v": "10.0001"}))
		if CodeOf(err) != CodeInputOutOfRange {
			t.Fatalf("expected CodeInputOutOfRange above max, got %v", err)
		}
	})

	t.Run("division by zero", func(t *testing.T) {
		def := Definition{
			Inputs:      []InputDefinition{{Variable: "d", Kind: InputKindNumber}},
			Expressions: []ExpressionDefinition{{Variable: "x", Expression: "1 / d"}},
		}
		_, err := Evaluate(def, inputsOf(t, map[string]string{"d": "0"}))
		if CodeOf(err) != CodeEvaluationFailed {
			t.Fatalf("expected CodeEvaluationFailed, got %v", err)
		}
	})

	t.Run("overflowing power is an invalid result", func(t *testing.T) {
		def := Definition{
			Expressions: []ExpressionDefinition{{Variable: "x", Expression: "10 ^ 1000"}},
		}
		_, err := Evaluate(def, nil)
		if CodeOf(err) != CodeInvalidResult {
			t.Fatalf("expected CodeInvalidResult, got %v", err)
		}
	})

	t.Run("negative sqrt fails", func(t *testing.T) {
		def := Definition{
			Expressions: []ExpressionDefinition{{Variable: "x", Expression: "sqrt(0 - 4)"}},
		}
		_, err := Evaluate(def, nil)
		if CodeOf(err) != CodeEvaluationFailed {
			t.Fatalf("expected CodeEvaluationFailed, got %v", err)
		}
	})

	t.Run("builtins", func(t *testing.T) {
		def := Definition{
			Inputs: []InputDefinition{{Variable: "v", Kind: InputKindNumber}},
			Expressions: []ExpressionDefinition{
				{Variable: "up", Expression: "ceil(v)"},
				{Variable: "down", Expression: "floor(v)"},
				{Variable: "near", Expression: "round(v, 1)"},
				{Variable: "biggest", Expression: "max(up, down, 3)"},
			},
		}
		res, err := Evaluate(def, inputsOf(t, map[string]string{"v": "2.46"}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for name, want := range map[string]string{"up": "3", "down": "2", "near": "2.5", "biggest": "3"} {
			if got := res.ComputedResults[name]; !got.Equal(dec(t, want)) {
				t.Fatalf("%s: expected %s, got %s", name, want, got)
			}
		}
	})

	t.Run("declared outputs bind from scope", func(t *testing.T) {
		def := Definition{
			Inputs:      []InputDefinition{{Variable: "n", Kind: InputKindNumber}},
			Expressions: []ExpressionDefinition{{Variable: "doubled", Expression: "n * 2"}},
			Outputs:     []OutputDefinition{{Variable: "doubled", TargetField: OutputTargetQuantity, Unit: "m2"}},
		}
		res, err := Evaluate(def, inputsOf(t, map[string]string{"n": "3"}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.OutputValues) != 1 || !res.OutputValues["doubled"].Equal(dec(t, "6")) {
			t.Fatalf("unexpected outputs: %v", res.OutputValues)
		}
	})

	t.Run("output bound to an input passes it through", func(t *testing.T) {
		def := Definition{
			Inputs:  []InputDefinition{{Variable: "length", Kind: InputKindNumber}},
			Outputs: []OutputDefinition{{Variable: "length", TargetField: OutputTargetQuantity, Unit: "m"}},
		}
		res, err := Evaluate(def, inputsOf(t, map[string]string{"length": "7.5"}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.OutputValues) != 1 || !res.OutputValues["length"].Equal(dec(t, "7.5")) {
			t.Fatalf("unexpected outputs: %v", res.OutputValues)
		}
	})

	t.Run("no declared outputs expose every expression", func(t *testing.T) {
		def := Definition{
			Expressions: []ExpressionDefinition{
				{Variable: "a", Expression: "1 + 1"},
				{Variable: "b", Expression: "a * 2"},
			},
		}
		res, err := Evaluate(def, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.OutputValues) != 2 {
			t.Fatalf("expected 2 outputs, got %v", res.OutputValues)
		}
	})

	t.Run("output not in scope", func(t *testing.T) {
		def := Definition{
			Expressions: []ExpressionDefinition{{Variable: "a", Expression: "1"}},
			Outputs:     []OutputDefinition{{Variable: "ghost", TargetField: OutputTargetQuantity}},
		}
		_, err := Evaluate(def, nil)
		if CodeOf(err) != CodeInvalidOutputMapping {
			t.Fatalf("expected CodeInvalidOutputMapping, got %v", err)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		def := Definition{
			Inputs: []InputDefinition{
				{Variable: "length", Kind: InputKindNumber},
				{Variable: "width", Kind: InputKindNumber},
			},
			Expressions: []ExpressionDefinition{
				{Variable: "area", Expression: "length * width"},
				{Variable: "padded", Expression: "area * 1.07 + sqrt(area)"},
			},
		}
		in := inputsOf(t, map[string]string{"length": "7.31", "width": "2.97"})
		first, err := Evaluate(def, in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := 0; i < 50; i++ {
			again, err := Evaluate(def, in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for k, v := range first.ComputedResults {
				if !again.ComputedResults[k].Equal(v) {
					t.Fatalf("run %d: %s drifted from %s to %s", i, k, v, again.ComputedResults[k])
				}
			}
		}
	})
}
