package formula

import "strings"

// ResolveOutput picks the formula output that feeds a line item's quantity.
//
// Selection order: an explicit requested variable always wins (and must
// exist); a single declared output needs no selection; with several outputs
// and no explicit choice, a unit match against the line item's unit is
// accepted only when exactly one output matches. Ties and zero matches force
// the caller to choose — unit matching is a convenience, not a tie-breaker.
func ResolveOutput(outputs []OutputDefinition, lineItemUnit, requestedVariable string) (OutputDefinition, error) {
	if len(outputs) == 0 {
		return OutputDefinition{}, newError(CodeOutputMappingMissing, "", "formula declares no outputs")
	}

	if requested := strings.TrimSpace(requestedVariable); requested != "" {
		for _, out := range outputs {
			if out.Variable == requested {
				return out, nil
			}
		}
		return OutputDefinition{}, newError(CodeOutputNotFound, requested, "formula declares no output variable %q", requested)
	}

	if len(outputs) == 1 {
		return outputs[0], nil
	}

	wanted := normalizeUnit(lineItemUnit)
	var match OutputDefinition
	matches := 0
	for _, out := range outputs {
		if wanted != "" && normalizeUnit(out.Unit) == wanted {
			match = out
			matches++
		}
	}
	if matches == 1 {
		return match, nil
	}
	return OutputDefinition{}, newError(CodeOutputSelectionRequired, "",
		"formula declares %d outputs and %d match unit %q; select one explicitly", len(outputs), matches, lineItemUnit)
}

func normalizeUnit(unit string) string {
	return strings.ToLower(strings.TrimSpace(unit))
}
