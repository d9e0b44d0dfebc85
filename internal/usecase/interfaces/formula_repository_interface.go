package interfaces

import (
	"context"
	"errors"

	"buildcost/internal/domain/entities"
)

// Repository-level sentinel errors. They live here so repositories can
// report them without importing the usecase layer.
var (
	// ErrVersionChainConflict: the chain head changed between read and
	// write while appending a formula version.
	ErrVersionChainConflict = errors.New("formula version chain conflict")

	// ErrRevisionConflict: the estimate was modified concurrently; the
	// caller should re-read and resubmit.
	ErrRevisionConflict = errors.New("estimate revision conflict")

	// ErrDefinitionInvalid: a persisted formula document no longer matches
	// the expected shape (historical drift); it must not be trusted.
	ErrDefinitionInvalid = errors.New("persisted formula definition invalid")
)

// IFormulaRepository abstracts DynamoDB persistence for Formula versions.
//
// Rows are append-only. AppendVersion must atomically insert the new version
// and mark the old head as superseded; detecting the head and writing the
// successor are one unit, failing with ErrVersionChainConflict when another
// edit won the race.
type IFormulaRepository interface {
	Create(ctx context.Context, f entities.Formula) (entities.Formula, error)
	GetByID(ctx context.Context, id string) (entities.Formula, error)
	ListCurrentByOrganization(ctx context.Context, organizationID, category string) ([]entities.Formula, error)
	AppendVersion(ctx context.Context, newVersion entities.Formula, supersededID string) (entities.Formula, error)
	SetActive(ctx context.Context, id string, active bool) (entities.Formula, error)
}
