package entities

import "github.com/shopspring/decimal"

// CalculationSource is the provenance tag of a line item's quantity.
//
//   - manual:   typed in by the estimator
//   - computed: produced by a formula application
//   - adjusted: a formula result later overridden by hand
type CalculationSource string

const (
	CalculationSourceManual   CalculationSource = "manual"
	CalculationSourceComputed CalculationSource = "computed"
	CalculationSourceAdjusted CalculationSource = "adjusted"
)

// LineItem is a costed quantity inside an estimate.
//
// Invariants:
//   - TotalCost = round2(Quantity * (UnitMaterialCost + UnitLaborCost))
//   - OriginalComputedQuantity/Cost are set iff CalculationSource is
//     adjusted; they always preserve the first formula result, not the
//     previous override.
//   - Locked items (estimate left draft) reject every mutation.
type LineItem struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Description string `json:"description"`

	Quantity         decimal.Decimal `json:"quantity"`
	Unit             string          `json:"unit"`
	UnitMaterialCost decimal.Decimal `json:"unit_material_cost"`
	UnitLaborCost    decimal.Decimal `json:"unit_labor_cost"`
	TotalCost        decimal.Decimal `json:"total_cost"`

	CalculationSource        CalculationSource `json:"calculation_source"`
	OriginalComputedQuantity *decimal.Decimal  `json:"original_computed_quantity,omitempty"`
	OriginalComputedCost     *decimal.Decimal  `json:"original_computed_cost,omitempty"`
	OverrideReason           string            `json:"override_reason,omitempty"`
	Locked                   bool              `json:"locked"`
}
