package request

// CreateEstimateRequest opens a draft estimate for a project. Rates are
// percentages and accept JSON numbers or decimal strings.
type CreateEstimateRequest struct {
	Name       string `json:"name"`
	ProjectID  string `json:"project_id" binding:"required"`
	MarkupRate any    `json:"markup_rate"`
	VATRate    any    `json:"vat_rate"`
}

// LineItemRequest adds a manual line item. Numeric fields accept JSON
// numbers or decimal strings.
type LineItemRequest struct {
	Category         string `json:"category" binding:"required"`
	Description      string `json:"description"`
	Unit             string `json:"unit"`
	Quantity         any    `json:"quantity"`
	UnitMaterialCost any    `json:"unit_material_cost"`
	UnitLaborCost    any    `json:"unit_labor_cost"`
}

// LineItemPatchRequest edits a line item; absent fields stay untouched.
type LineItemPatchRequest struct {
	Description      *string `json:"description"`
	Unit             *string `json:"unit"`
	Quantity         any     `json:"quantity"`
	UnitMaterialCost any     `json:"unit_material_cost"`
	UnitLaborCost    any     `json:"unit_labor_cost"`
}

// ComputeLineItemRequest applies a formula to a line item. OutputVariable is
// only needed when the formula declares several outputs and unit matching
// cannot pick one.
type ComputeLineItemRequest struct {
	FormulaID      string         `json:"formula_id" binding:"required"`
	OutputVariable string         `json:"output_variable"`
	InputValues    map[string]any `json:"input_values"`
}

// OverrideLineItemRequest replaces a computed quantity, with a reason that
// ends up in the audit trail.
type OverrideLineItemRequest struct {
	Quantity any    `json:"quantity" binding:"required"`
	Reason   string `json:"reason" binding:"required"`
}
