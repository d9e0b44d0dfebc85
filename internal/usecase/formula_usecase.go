package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"buildcost/internal/domain/entities"
	"buildcost/internal/domain/formula"
	"buildcost/internal/domain/money"
	"buildcost/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrFormulaNotFound        = errors.New("formula not found")
	ErrInvalidFormulaID       = errors.New("invalid formula id")
	ErrInvalidFormulaName     = errors.New("invalid formula name")
	ErrInvalidFormulaCategory = errors.New("invalid formula category")
	ErrInvalidOrganization    = errors.New("invalid organization id")
	ErrFormulaVersionConflict = errors.New("formula version conflict")
	ErrFormulaInactive        = errors.New("formula is deactivated")
)

// FormulaInput is the authoring payload for creating or editing a formula.
type FormulaInput struct {
	Name        string
	Description string
	Category    string
	Inputs      []formula.InputDefinition
	Expressions []formula.ExpressionDefinition
	Outputs     []formula.OutputDefinition
}

func (in FormulaInput) definition() formula.Definition {
	return formula.Definition{Inputs: in.Inputs, Expressions: in.Expressions, Outputs: in.Outputs}
}

// IFormulaUseCase exposes formula authoring and evaluation operations.
//
// Every lookup is organization-scoped; a formula belonging to another
// organization reports ErrFormulaNotFound, never a permission error, so
// callers cannot probe for existence.
type IFormulaUseCase interface {
	CreateFormula(ctx context.Context, actor Actor, in FormulaInput) (entities.Formula, error)
	UpdateFormula(ctx context.Context, actor Actor, formulaID string, in FormulaInput) (entities.Formula, error)
	SetFormulaActive(ctx context.Context, actor Actor, formulaID string, active bool) (entities.Formula, error)
	GetFormula(ctx context.Context, actor Actor, formulaID string) (entities.Formula, error)
	ListFormulas(ctx context.Context, actor Actor, category string) ([]entities.Formula, error)
	ValidateDefinition(def formula.Definition) error
	EvaluateFormula(ctx context.Context, actor Actor, formulaID string, inputValues map[string]any) (formula.Result, error)
}

type FormulaUseCase struct {
	repo interfaces.IFormulaRepository
}

var _ IFormulaUseCase = (*FormulaUseCase)(nil)

func NewFormulaUseCase(repo interfaces.IFormulaRepository) *FormulaUseCase {
	return &FormulaUseCase{repo: repo}
}

func (u *FormulaUseCase) CreateFormula(ctx context.Context, actor Actor, in FormulaInput) (entities.Formula, error) {
	actor = actor.normalized()
	if actor.OrganizationID == "" {
		return entities.Formula{}, ErrInvalidOrganization
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if in.Name == "" {
		return entities.Formula{}, ErrInvalidFormulaName
	}
	if in.Category == "" {
		return entities.Formula{}, ErrInvalidFormulaCategory
	}

	if err := formula.Validate(in.definition()); err != nil {
		return entities.Formula{}, err
	}

	f := entities.Formula{
		ID:             uuid.NewString(),
		OrganizationID: actor.OrganizationID,
		Name:           in.Name,
		Description:    in.Description,
		Category:       in.Category,
		Version:        1,
		Inputs:         in.Inputs,
		Expressions:    in.Expressions,
		Outputs:        in.Outputs,
		IsActive:       true,
		CreatedBy:      actor.UserID,
		CreatedAt:      time.Now().UTC(),
	}
	log.Printf("[formula][usecase] create org=%s name=%q category=%s", actor.OrganizationID, in.Name, in.Category)
	return u.repo.Create(ctx, f)
}

// UpdateFormula appends a new version to the chain. The referenced formula
// must be the chain head; editing a superseded version is rejected, and a
// concurrent edit racing us to the head surfaces as the same conflict.
func (u *FormulaUseCase) UpdateFormula(ctx context.Context, actor Actor, formulaID string, in FormulaInput) (entities.Formula, error) {
	current, err := u.getScoped(ctx, actor, formulaID)
	if err != nil {
		return entities.Formula{}, err
	}
	if !current.IsCurrent() {
		return entities.Formula{}, ErrFormulaVersionConflict
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if in.Name == "" {
		in.Name = current.Name
	}
	if in.Category == "" {
		in.Category = current.Category
	}

	if err := formula.Validate(in.definition()); err != nil {
		return entities.Formula{}, err
	}

	next := entities.Formula{
		ID:                uuid.NewString(),
		OrganizationID:    current.OrganizationID,
		Name:              in.Name,
		Description:       in.Description,
		Category:          in.Category,
		Version:           current.Version + 1,
		Inputs:            in.Inputs,
		Expressions:       in.Expressions,
		Outputs:           in.Outputs,
		IsActive:          current.IsActive,
		PreviousVersionID: current.ID,
		CreatedBy:         actor.normalized().UserID,
		CreatedAt:         time.Now().UTC(),
	}

	appended, err := u.repo.AppendVersion(ctx, next, current.ID)
	if err != nil {
		if errors.Is(err, interfaces.ErrVersionChainConflict) {
			return entities.Formula{}, ErrFormulaVersionConflict
		}
		return entities.Formula{}, err
	}
	log.Printf("[formula][usecase] appended version org=%s chain=%q v%d -> v%d", appended.OrganizationID, appended.Name, current.Version, appended.Version)
	return appended, nil
}

func (u *FormulaUseCase) SetFormulaActive(ctx context.Context, actor Actor, formulaID string, active bool) (entities.Formula, error) {
	current, err := u.getScoped(ctx, actor, formulaID)
	if err != nil {
		return entities.Formula{}, err
	}
	// Activation toggles only make sense on the chain head.
	if !current.IsCurrent() {
		return entities.Formula{}, ErrFormulaVersionConflict
	}
	return u.repo.SetActive(ctx, current.ID, active)
}

func (u *FormulaUseCase) GetFormula(ctx context.Context, actor Actor, formulaID string) (entities.Formula, error) {
	return u.getScoped(ctx, actor, formulaID)
}

func (u *FormulaUseCase) ListFormulas(ctx context.Context, actor Actor, category string) ([]entities.Formula, error) {
	actor = actor.normalized()
	if actor.OrganizationID == "" {
		return nil, ErrInvalidOrganization
	}
	return u.repo.ListCurrentByOrganization(ctx, actor.OrganizationID, strings.TrimSpace(category))
}

func (u *FormulaUseCase) ValidateDefinition(def formula.Definition) error {
	return formula.Validate(def)
}

// EvaluateFormula runs an ad-hoc evaluation against a stored formula without
// touching any estimate. Used for previews while authoring.
func (u *FormulaUseCase) EvaluateFormula(ctx context.Context, actor Actor, formulaID string, inputValues map[string]any) (formula.Result, error) {
	f, err := u.getScoped(ctx, actor, formulaID)
	if err != nil {
		return formula.Result{}, err
	}
	if !f.IsActive {
		return formula.Result{}, ErrFormulaInactive
	}
	inputs, err := NormalizeInputValues(inputValues)
	if err != nil {
		return formula.Result{}, err
	}
	return formula.Evaluate(f.Definition(), inputs)
}

func (u *FormulaUseCase) getScoped(ctx context.Context, actor Actor, formulaID string) (entities.Formula, error) {
	actor = actor.normalized()
	if actor.OrganizationID == "" {
		return entities.Formula{}, ErrInvalidOrganization
	}
	formulaID = strings.TrimSpace(formulaID)
	if formulaID == "" {
		return entities.Formula{}, ErrInvalidFormulaID
	}

	f, err := u.repo.GetByID(ctx, formulaID)
	if err != nil {
		return entities.Formula{}, err
	}
	// Foreign-organization rows look exactly like missing ones.
	if f.ID == "" || f.OrganizationID != actor.OrganizationID {
		return entities.Formula{}, ErrFormulaNotFound
	}
	return f, nil
}

// NormalizeInputValues converts externally supplied input values (decimal
// strings or JSON numbers) into exact decimals. A value that does not parse
// fails with the evaluator's InvalidInput code and the offending variable.
func NormalizeInputValues(raw map[string]any) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(raw))
	for name, v := range raw {
		d, err := money.Parse(v)
		if err != nil {
			return nil, &formula.Error{Code: formula.CodeInvalidInput, Variable: name, Message: "value is not a valid number", Err: err}
		}
		out[name] = d
	}
	return out, nil
}
