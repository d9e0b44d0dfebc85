package response

import (
	"time"

	"buildcost/internal/domain/entities"
)

type LineItemResponse struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Description string `json:"description"`

	Quantity         string `json:"quantity"`
	Unit             string `json:"unit"`
	UnitMaterialCost string `json:"unit_material_cost"`
	UnitLaborCost    string `json:"unit_labor_cost"`
	TotalCost        string `json:"total_cost"`

	CalculationSource        string  `json:"calculation_source"`
	OriginalComputedQuantity *string `json:"original_computed_quantity,omitempty"`
	OriginalComputedCost     *string `json:"original_computed_cost,omitempty"`
	OverrideReason           string  `json:"override_reason,omitempty"`
	Locked                   bool    `json:"locked"`
}

type EstimateResponse struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	ProjectID      string `json:"project_id"`
	Name           string `json:"name"`
	Status         string `json:"status"`

	MarkupRate string `json:"markup_rate"`
	VATRate    string `json:"vat_rate"`

	LineItems []LineItemResponse `json:"line_items"`

	Subtotal     string `json:"subtotal"`
	MarkupAmount string `json:"markup_amount"`
	VATAmount    string `json:"vat_amount"`
	TotalAmount  string `json:"total_amount"`

	Revision  int64     `json:"revision"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromLineItem(li entities.LineItem) LineItemResponse {
	return LineItemResponse{
		ID:                       li.ID,
		Category:                 li.Category,
		Description:              li.Description,
		Quantity:                 li.Quantity.String(),
		Unit:                     li.Unit,
		UnitMaterialCost:         li.UnitMaterialCost.String(),
		UnitLaborCost:            li.UnitLaborCost.String(),
		TotalCost:                li.TotalCost.String(),
		CalculationSource:        string(li.CalculationSource),
		OriginalComputedQuantity: decimalPtrToString(li.OriginalComputedQuantity),
		OriginalComputedCost:     decimalPtrToString(li.OriginalComputedCost),
		OverrideReason:           li.OverrideReason,
		Locked:                   li.Locked,
	}
}

func FromEstimate(e entities.Estimate) EstimateResponse {
	resp := EstimateResponse{
		ID:             e.ID,
		OrganizationID: e.OrganizationID,
		ProjectID:      e.ProjectID,
		Name:           e.Name,
		Status:         string(e.Status),
		MarkupRate:     e.MarkupRate.String(),
		VATRate:        e.VATRate.String(),
		LineItems:      []LineItemResponse{},
		Subtotal:       e.Subtotal.String(),
		MarkupAmount:   e.MarkupAmount.String(),
		VATAmount:      e.VATAmount.String(),
		TotalAmount:    e.TotalAmount.String(),
		Revision:       e.Revision,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
	for _, li := range e.LineItems {
		resp.LineItems = append(resp.LineItems, FromLineItem(li))
	}
	return resp
}

func FromEstimates(estimates []entities.Estimate) []EstimateResponse {
	out := make([]EstimateResponse, 0, len(estimates))
	for _, e := range estimates {
		out = append(out, FromEstimate(e))
	}
	return out
}

// LineItemMutationResponse is returned by item-level mutations: the touched
// item plus the estimate (whose aggregates were recomputed in the same
// write).
type LineItemMutationResponse struct {
	LineItem LineItemResponse `json:"line_item"`
	Estimate EstimateResponse `json:"estimate"`
}

type ComputationInstanceResponse struct {
	ID              string            `json:"id"`
	EstimateID      string            `json:"estimate_id"`
	LineItemID      string            `json:"line_item_id"`
	FormulaID       string            `json:"formula_id"`
	FormulaVersion  int               `json:"formula_version"`
	FormulaSnapshot FormulaResponse   `json:"formula_snapshot"`
	InputValues     map[string]string `json:"input_values"`
	ComputedResults map[string]string `json:"computed_results"`
	ComputedAt      time.Time         `json:"computed_at"`
	ComputedBy      string            `json:"computed_by"`
}

func FromComputationInstance(ci entities.ComputationInstance) ComputationInstanceResponse {
	return ComputationInstanceResponse{
		ID:              ci.ID,
		EstimateID:      ci.EstimateID,
		LineItemID:      ci.LineItemID,
		FormulaID:       ci.FormulaID,
		FormulaVersion:  ci.FormulaVersion,
		FormulaSnapshot: FromFormula(ci.FormulaSnapshot),
		InputValues:     decimalMap(ci.InputValues),
		ComputedResults: decimalMap(ci.ComputedResults),
		ComputedAt:      ci.ComputedAt,
		ComputedBy:      ci.ComputedBy,
	}
}

// ComputeResponse bundles everything a compute persisted atomically.
type ComputeResponse struct {
	LineItem    LineItemResponse            `json:"line_item"`
	Estimate    EstimateResponse            `json:"estimate"`
	Computation ComputationInstanceResponse `json:"computation"`
}
