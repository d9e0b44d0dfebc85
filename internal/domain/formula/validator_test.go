package formula

import "testing"

func TestValidate(t *testing.T) {
	valid := Definition{
		Inputs: []InputDefinition{
			{Variable: "length", Kind: InputKindNumber, Min: decPtr("0"), Max: decPtr("100")},
			{Variable: "coats", Kind: InputKindInteger, Min: decPtr("1"), Max: decPtr("5"), DefaultValue: decPtr("2")},
		},
		Expressions: []ExpressionDefinition{
			{Variable: "area", Expression: "length * length"},
			{Variable: "paint", Expression: "area * coats / 10"},
		},
		Outputs: []OutputDefinition{
			{Variable: "paint", TargetField: OutputTargetQuantity, Unit: "l"},
		},
	}

	t.Run("valid definition passes", func(t *testing.T) {
		if err := Validate(valid); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("no expressions and no outputs", func(t *testing.T) {
		def := valid
		def.Expressions = nil
		def.Outputs = nil
		if CodeOf(Validate(def)) != CodeInvalidDefinition {
			t.Fatalf("expected CodeInvalidDefinition")
		}
	})

	t.Run("output bound directly to an input", func(t *testing.T) {
		def := Definition{
			Inputs: []InputDefinition{
				{Variable: "length", Kind: InputKindNumber, Min: decPtr("0"), Max: decPtr("100")},
			},
			Outputs: []OutputDefinition{
				{Variable: "length", TargetField: OutputTargetQuantity, Unit: "m"},
			},
		}
		if err := Validate(def); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("bad input identifier", func(t *testing.T) {
		def := valid
		def.Inputs = append([]InputDefinition{{Variable: "9lives", Kind: InputKindNumber}}, def.Inputs...)
		if CodeOf(Validate(def)) != CodeInvalidDefinition {
			t.Fatalf("expected CodeInvalidDefinition")
		}
	})

	t.Run("input shadows builtin", func(t *testing.T) {
		def := valid
		def.Inputs = append([]InputDefinition{{Variable: "sqrt", Kind: InputKindNumber}}, def.Inputs...)
		if CodeOf(Validate(def)) != CodeInvalidDefinition {
			t.Fatalf("expected CodeInvalidDefinition")
		}
	})

	t.Run("duplicate input", func(t *testing.T) {
		def := valid
		def.Inputs = append(def.Inputs, InputDefinition{Variable: "length", Kind: InputKindNumber})
		if CodeOf(Validate(def)) != CodeDuplicateVariable {
			t.Fatalf("expected CodeDuplicateVariable")
		}
	})

	t.Run("expression shadows input", func(t *testing.T) {
		def := valid
		def.Expressions = []ExpressionDefinition{{Variable: "length", Expression: "1 + 1"}}
		def.Outputs = nil
		if CodeOf(Validate(def)) != CodeDuplicateVariable {
			t.Fatalf("expected CodeDuplicateVariable")
		}
	})

	t.Run("min exceeds max", func(t *testing.T) {
		def := valid
		def.Inputs = []InputDefinition{{Variable: "v", Kind: InputKindNumber, Min: decPtr("10"), Max: decPtr("1")}}
		if CodeOf(Validate(def)) != CodeInvalidInputBounds {
			t.Fatalf("expected CodeInvalidInputBounds")
		}
	})

	t.Run("integer input with fractional bound", func(t *testing.T) {
		def := valid
		def.Inputs = []InputDefinition{{Variable: "v", Kind: InputKindInteger, Min: decPtr("1.5")}}
		if CodeOf(Validate(def)) != CodeInvalidDefinition {
			t.Fatalf("expected CodeInvalidDefinition")
		}
	})

	t.Run("undefined variable", func(t *testing.T) {
		def := valid
		def.Expressions = []ExpressionDefinition{{Variable: "area", Expression: "length * width"}}
		def.Outputs = nil
		err := Validate(def)
		if CodeOf(err) != CodeUndefinedVariable {
			t.Fatalf("expected CodeUndefinedVariable, got %v", err)
		}
	})

	t.Run("forward reference is undefined", func(t *testing.T) {
		def := valid
		def.Expressions = []ExpressionDefinition{
			{Variable: "a", Expression: "b + 1"},
			{Variable: "b", Expression: "1"},
		}
		def.Outputs = nil
		if CodeOf(Validate(def)) != CodeUndefinedVariable {
			t.Fatalf("expected CodeUndefinedVariable")
		}
	})

	t.Run("syntax error", func(t *testing.T) {
		def := valid
		def.Expressions = []ExpressionDefinition{{Variable: "area", Expression: "length ** length"}}
		def.Outputs = nil
		if CodeOf(Validate(def)) != CodeInvalidExpression {
			t.Fatalf("expected CodeInvalidExpression")
		}
	})

	t.Run("assignment is unsafe", func(t *testing.T) {
		def := valid
		def.Expressions = []ExpressionDefinition{{Variable: "area", Expression: "length = 4"}}
		def.Outputs = nil
		if CodeOf(Validate(def)) != CodeUnsafeExpression {
			t.Fatalf("expected CodeUnsafeExpression")
		}
	})

	t.Run("unknown function", func(t *testing.T) {
		def := valid
		def.Expressions = []ExpressionDefinition{{Variable: "area", Expression: "exec(length)"}}
		def.Outputs = nil
		if CodeOf(Validate(def)) != CodeUnsafeFunction {
			t.Fatalf("expected CodeUnsafeFunction")
		}
	})

	t.Run("wrong arity", func(t *testing.T) {
		def := valid
		def.Expressions = []ExpressionDefinition{{Variable: "area", Expression: "sqrt(length, coats)"}}
		def.Outputs = nil
		if CodeOf(Validate(def)) != CodeInvalidExpression {
			t.Fatalf("expected CodeInvalidExpression")
		}
	})

	t.Run("output must target quantity", func(t *testing.T) {
		def := valid
		def.Outputs = []OutputDefinition{{Variable: "paint", TargetField: "unit_cost"}}
		if CodeOf(Validate(def)) != CodeInvalidDefinition {
			t.Fatalf("expected CodeInvalidDefinition")
		}
	})

	t.Run("output must be in scope", func(t *testing.T) {
		def := valid
		def.Outputs = []OutputDefinition{{Variable: "ghost", TargetField: OutputTargetQuantity}}
		if CodeOf(Validate(def)) != CodeInvalidOutputMapping {
			t.Fatalf("expected CodeInvalidOutputMapping")
		}
	})

	t.Run("dry run catches boundary division by zero", func(t *testing.T) {
		def := Definition{
			Inputs: []InputDefinition{
				{Variable: "spacing", Kind: InputKindNumber, Min: decPtr("0"), Max: decPtr("2")},
			},
			Expressions: []ExpressionDefinition{
				{Variable: "posts", Expression: "10 / spacing"},
			},
		}
		err := Validate(def)
		if CodeOf(err) != CodeDryRunFailed {
			t.Fatalf("expected CodeDryRunFailed, got %v", err)
		}
	})

	t.Run("dry run uses defaults when bounds are open", func(t *testing.T) {
		def := Definition{
			Inputs: []InputDefinition{
				{Variable: "spacing", Kind: InputKindNumber, DefaultValue: decPtr("2")},
			},
			Expressions: []ExpressionDefinition{
				{Variable: "posts", Expression: "10 / spacing"},
			},
		}
		if err := Validate(def); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
