package formula

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// InputKind constrains the numeric domain of an input.
type InputKind string

const (
	InputKindNumber  InputKind = "number"
	InputKindInteger InputKind = "integer"
)

// InputDefinition declares one named numeric input of a formula.
//
// Min/Max/DefaultValue are optional; when both bounds are present Min must
// not exceed Max. For integer inputs the declared bounds and default must be
// whole numbers.
type InputDefinition struct {
	Variable     string           `json:"variable"`
	Label        string           `json:"label"`
	Unit         string           `json:"unit"`
	Kind         InputKind        `json:"kind"`
	Min          *decimal.Decimal `json:"min,omitempty"`
	Max          *decimal.Decimal `json:"max,omitempty"`
	DefaultValue *decimal.Decimal `json:"defaultValue,omitempty"`
}

// ExpressionDefinition is one named step of a formula. Expressions evaluate
// in declaration order; each may reference any input and any earlier
// expression, never itself or a later one.
type ExpressionDefinition struct {
	Variable   string `json:"variable"`
	Expression string `json:"expression"`
}

// OutputTargetQuantity is the only output target currently supported: the
// computed value feeds a line item's quantity.
const OutputTargetQuantity = "quantity"

// OutputDefinition binds a computed variable to a line item field.
type OutputDefinition struct {
	Variable    string `json:"variable"`
	TargetField string `json:"targetField"`
	Unit        string `json:"unit"`
}

// Definition is the evaluatable part of a formula: its declared inputs, the
// ordered expression list and the output bindings.
type Definition struct {
	Inputs      []InputDefinition      `json:"inputs"`
	Expressions []ExpressionDefinition `json:"expressions"`
	Outputs     []OutputDefinition     `json:"outputs"`
}

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// IsValidIdentifier reports whether name is usable as a variable name.
func IsValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}
