package interfaces

import (
	"context"

	"buildcost/internal/domain/entities"
)

// IComputationInstanceRepository is the read side of computation receipts.
// Writes happen through IEstimateRepository.SaveWithComputation so they share
// the pipeline transaction.
type IComputationInstanceRepository interface {
	GetByID(ctx context.Context, id string) (entities.ComputationInstance, error)
	ListByLineItemID(ctx context.Context, lineItemID string) ([]entities.ComputationInstance, error)
}
