package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstimateStatus represents the lifecycle of an estimate.
//
// Domain notes:
//   - Only draft estimates are mutable. Finalizing or archiving locks every
//     line item permanently.
//   - Aggregates (Subtotal..TotalAmount) are derived; they are recomputed on
//     every line-item change and never written independently.
type EstimateStatus string

const (
	EstimateStatusDraft    EstimateStatus = "draft"
	EstimateStatusFinal    EstimateStatus = "final"
	EstimateStatusArchived EstimateStatus = "archived"
)

// Estimate is a construction cost estimate with its line items embedded.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (org_id-index): organization_id
//
// Revision is the optimistic-lock counter: every write is conditional on the
// revision read, so concurrent line-item mutations against the same estimate
// serialize instead of interleaving (totals always match the items that
// produced them).
type Estimate struct {
	ID             string         `json:"id"`
	OrganizationID string         `json:"organization_id"`
	ProjectID      string         `json:"project_id"`
	Name           string         `json:"name"`
	Status         EstimateStatus `json:"status"`

	MarkupRate decimal.Decimal `json:"markup_rate"`
	VATRate    decimal.Decimal `json:"vat_rate"`

	LineItems []LineItem `json:"line_items"`

	Subtotal     decimal.Decimal `json:"subtotal"`
	MarkupAmount decimal.Decimal `json:"markup_amount"`
	VATAmount    decimal.Decimal `json:"vat_amount"`
	TotalAmount  decimal.Decimal `json:"total_amount"`

	Revision  int64     `json:"revision"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsEditable reports whether line items may still be mutated.
func (e Estimate) IsEditable() bool {
	return e.Status == EstimateStatusDraft
}

// FindLineItem returns the index of the line item with the given id, or -1.
func (e Estimate) FindLineItem(id string) int {
	for i := range e.LineItems {
		if e.LineItems[i].ID == id {
			return i
		}
	}
	return -1
}
