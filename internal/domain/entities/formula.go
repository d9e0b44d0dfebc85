package entities

import (
	"time"

	"buildcost/internal/domain/formula"
)

// Formula is one immutable version of a named calculation rule.
//
// Versioning model:
//   - Editing never mutates a row; it appends a new Formula whose
//     PreviousVersionID points at the edited one.
//   - SupersededBy is the maintained reverse pointer: the unique row with an
//     empty SupersededBy is the chain head and the only editable version.
//   - IsActive is a visibility toggle on the chain head; deactivating hides
//     the formula from new computations without touching history.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (org_id-index): organization_id
type Formula struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	Version        int    `json:"version"`

	Inputs      []formula.InputDefinition      `json:"inputs"`
	Expressions []formula.ExpressionDefinition `json:"expressions"`
	Outputs     []formula.OutputDefinition     `json:"outputs"`

	IsActive          bool      `json:"is_active"`
	PreviousVersionID string    `json:"previous_version_id,omitempty"`
	SupersededBy      string    `json:"superseded_by,omitempty"`
	CreatedBy         string    `json:"created_by"`
	CreatedAt         time.Time `json:"created_at"`
}

// Definition extracts the evaluatable part of the formula.
func (f Formula) Definition() formula.Definition {
	return formula.Definition{
		Inputs:      f.Inputs,
		Expressions: f.Expressions,
		Outputs:     f.Outputs,
	}
}

// IsCurrent reports whether this row is the head of its version chain.
func (f Formula) IsCurrent() bool {
	return f.SupersededBy == ""
}
