package formula

import (
	"errors"
	"fmt"
)

// Code identifies a formula evaluation or validation failure. Codes are
// stable: collaborators match on them, so renaming one is a breaking change.
type Code string

const (
	// Input errors (caller-correctable, carry the offending variable).
	CodeMissingInput    Code = "MISSING_INPUT"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInputOutOfRange Code = "INPUT_OUT_OF_RANGE"

	// Evaluation errors.
	CodeEvaluationFailed     Code = "EVALUATION_FAILED"
	CodeInvalidResult        Code = "INVALID_RESULT"
	CodeInvalidOutputMapping Code = "INVALID_OUTPUT_MAPPING"

	// Definition errors (caught at authoring time by Validate).
	CodeInvalidDefinition  Code = "INVALID_DEFINITION"
	CodeInvalidInputBounds Code = "INVALID_INPUT_BOUNDS"
	CodeDuplicateVariable  Code = "DUPLICATE_VARIABLE"
	CodeInvalidExpression  Code = "INVALID_EXPRESSION"
	CodeUnsafeExpression   Code = "UNSAFE_EXPRESSION"
	CodeUnsafeFunction     Code = "UNSAFE_FUNCTION"
	CodeUndefinedVariable  Code = "UNDEFINED_VARIABLE"
	CodeDryRunFailed       Code = "DRY_RUN_FAILED"

	// Output mapping errors.
	CodeOutputMappingMissing    Code = "OUTPUT_MAPPING_MISSING"
	CodeOutputNotFound          Code = "OUTPUT_NOT_FOUND"
	CodeOutputSelectionRequired Code = "OUTPUT_SELECTION_REQUIRED"
)

// Error is the typed failure returned by Evaluate, Validate and
// ResolveOutput. Variable names the input/expression/output variable the
// failure refers to, when there is one.
type Error struct {
	Code     Code
	Variable string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Variable != "" {
		msg = fmt.Sprintf("%s: %s: %s", e.Code, e.Variable, e.Message)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code Code, variable, format string, args ...any) *Error {
	return &Error{Code: code, Variable: variable, Message: fmt.Sprintf(format, args...)}
}

func wrapError(code Code, variable string, err error, format string, args ...any) *Error {
	return &Error{Code: code, Variable: variable, Message: fmt.Sprintf(format, args...), Err: err}
}

// AsError unwraps err into a *Error, if it carries one.
func AsError(err error) (*Error, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// CodeOf returns the failure code carried by err, or "" for foreign errors.
func CodeOf(err error) Code {
	if fe, ok := AsError(err); ok {
		return fe.Code
	}
	return ""
}
