package interfaces

import (
	"context"

	"buildcost/internal/domain/entities"
)

// IEstimateRepository abstracts DynamoDB persistence for Estimate.
//
// Save and SaveWithComputation are conditional on the revision the caller
// read (optimistic lock) and fail with ErrRevisionConflict when it moved.
// SaveWithComputation additionally persists the computation instance in the
// same transaction — the line item write, the receipt and the new aggregates
// land together or not at all.
type IEstimateRepository interface {
	Create(ctx context.Context, e entities.Estimate) (entities.Estimate, error)
	GetByID(ctx context.Context, id string) (entities.Estimate, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]entities.Estimate, error)
	Save(ctx context.Context, e entities.Estimate) (entities.Estimate, error)
	SaveWithComputation(ctx context.Context, e entities.Estimate, ci entities.ComputationInstance) (entities.Estimate, error)
}
