package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComputationInstance is the immutable receipt of one formula application.
//
// FormulaSnapshot captures the exact definition used, so later edits of the
// formula never retroactively change what a past computation meant.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (line_item_id-index): line_item_id
type ComputationInstance struct {
	ID              string  `json:"id"`
	EstimateID      string  `json:"estimate_id"`
	LineItemID      string  `json:"line_item_id"`
	FormulaID       string  `json:"formula_id"`
	FormulaVersion  int     `json:"formula_version"`
	FormulaSnapshot Formula `json:"formula_snapshot"`

	InputValues     map[string]decimal.Decimal `json:"input_values"`
	ComputedResults map[string]decimal.Decimal `json:"computed_results"`

	ComputedAt time.Time `json:"computed_at"`
	ComputedBy string    `json:"computed_by"`
}
