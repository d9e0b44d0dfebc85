package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"buildcost/internal/domain/costing"
	"buildcost/internal/domain/entities"
	"buildcost/internal/domain/formula"
	"buildcost/internal/domain/money"
	"buildcost/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEstimateNotFound                 = errors.New("estimate not found")
	ErrInvalidEstimateID                = errors.New("invalid estimate id")
	ErrInvalidProjectID                 = errors.New("invalid project id")
	ErrInvalidRate                      = errors.New("invalid markup/vat rate")
	ErrEstimateNotEditable              = errors.New("estimate is not editable")
	ErrEstimateNotFinal                 = errors.New("estimate is not finalized")
	ErrEstimateRevisionConflict         = errors.New("estimate was modified concurrently")
	ErrLineItemNotFound                 = errors.New("line item not found")
	ErrInvalidLineItemID                = errors.New("invalid line item id")
	ErrInvalidQuantity                  = errors.New("invalid quantity")
	ErrInvalidUnitCost                  = errors.New("invalid unit cost")
	ErrInvalidLineItemCategory          = errors.New("invalid line item category")
	ErrLineItemQuantityOverrideRequired = errors.New("quantity override required for computed line items")
	ErrOverrideReasonTooShort           = errors.New("override reason too short")
	ErrFormulaCategoryMismatch          = errors.New("formula category does not match line item category")
	ErrFormulaNotCurrent                = errors.New("formula version is superseded")
)

// minOverrideReasonLength keeps override audit trails meaningful.
const minOverrideReasonLength = 10

// EstimateInput creates a draft estimate. Rates accept decimal strings or
// JSON numbers and are percentages (10 means 10%).
type EstimateInput struct {
	Name       string
	ProjectID  string
	MarkupRate any
	VATRate    any
}

// LineItemInput adds a manual line item to a draft estimate.
type LineItemInput struct {
	Category         string
	Description      string
	Unit             string
	Quantity         any
	UnitMaterialCost any
	UnitLaborCost    any
}

// LineItemPatch edits a line item in place. Nil fields are left untouched.
// Quantity may only be patched while the item is manual; computed and
// adjusted quantities change through compute/override so provenance stays
// truthful.
type LineItemPatch struct {
	Description      *string
	Unit             *string
	Quantity         any
	UnitMaterialCost any
	UnitLaborCost    any
}

// ComputeInput applies a formula to a line item.
type ComputeInput struct {
	FormulaID      string
	OutputVariable string
	InputValues    map[string]any
}

// ComputeResult bundles everything a compute writes atomically.
type ComputeResult struct {
	Estimate entities.Estimate
	LineItem entities.LineItem
	Instance entities.ComputationInstance
}

// IEstimateUseCase exposes the estimate and line-item pipeline.
//
// Every mutating operation recomputes the estimate aggregates and persists
// line item + aggregates (+ computation receipt, for Compute) in a single
// conditional write, so totals can never go stale relative to the items.
type IEstimateUseCase interface {
	CreateEstimate(ctx context.Context, actor Actor, in EstimateInput) (entities.Estimate, error)
	GetEstimate(ctx context.Context, actor Actor, estimateID string) (entities.Estimate, error)
	ListEstimates(ctx context.Context, actor Actor) ([]entities.Estimate, error)
	AddLineItem(ctx context.Context, actor Actor, estimateID string, in LineItemInput) (entities.Estimate, entities.LineItem, error)
	UpdateLineItem(ctx context.Context, actor Actor, estimateID, lineItemID string, patch LineItemPatch) (entities.Estimate, entities.LineItem, error)
	DeleteLineItem(ctx context.Context, actor Actor, estimateID, lineItemID string) (entities.Estimate, error)
	ComputeLineItem(ctx context.Context, actor Actor, estimateID, lineItemID string, in ComputeInput) (ComputeResult, error)
	OverrideLineItem(ctx context.Context, actor Actor, estimateID, lineItemID string, quantity any, reason string) (entities.Estimate, entities.LineItem, error)
	RecomputeTotals(ctx context.Context, actor Actor, estimateID string) (entities.Estimate, error)
	FinalizeEstimate(ctx context.Context, actor Actor, estimateID string) (entities.Estimate, error)
	ArchiveEstimate(ctx context.Context, actor Actor, estimateID string) (entities.Estimate, error)
	ListComputations(ctx context.Context, actor Actor, estimateID, lineItemID string) ([]entities.ComputationInstance, error)
}

type EstimateUseCase struct {
	repo         interfaces.IEstimateRepository
	formulaRepo  interfaces.IFormulaRepository
	instanceRepo interfaces.IComputationInstanceRepository
}

var _ IEstimateUseCase = (*EstimateUseCase)(nil)

func NewEstimateUseCase(repo interfaces.IEstimateRepository, formulaRepo interfaces.IFormulaRepository, instanceRepo interfaces.IComputationInstanceRepository) *EstimateUseCase {
	return &EstimateUseCase{repo: repo, formulaRepo: formulaRepo, instanceRepo: instanceRepo}
}

func (u *EstimateUseCase) CreateEstimate(ctx context.Context, actor Actor, in EstimateInput) (entities.Estimate, error) {
	actor = actor.normalized()
	if actor.OrganizationID == "" {
		return entities.Estimate{}, ErrInvalidOrganization
	}
	in.ProjectID = strings.TrimSpace(in.ProjectID)
	if in.ProjectID == "" {
		return entities.Estimate{}, ErrInvalidProjectID
	}

	markup, err := parseRate(in.MarkupRate)
	if err != nil {
		return entities.Estimate{}, err
	}
	vat, err := parseRate(in.VATRate)
	if err != nil {
		return entities.Estimate{}, err
	}

	now := time.Now().UTC()
	e := entities.Estimate{
		ID:             uuid.NewString(),
		OrganizationID: actor.OrganizationID,
		ProjectID:      in.ProjectID,
		Name:           strings.TrimSpace(in.Name),
		Status:         entities.EstimateStatusDraft,
		MarkupRate:     markup,
		VATRate:        vat,
		Revision:       1,
		CreatedBy:      actor.UserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	costing.Apply(&e)
	return u.repo.Create(ctx, e)
}

func (u *EstimateUseCase) GetEstimate(ctx context.Context, actor Actor, estimateID string) (entities.Estimate, error) {
	return u.getScoped(ctx, actor, estimateID)
}

func (u *EstimateUseCase) ListEstimates(ctx context.Context, actor Actor) ([]entities.Estimate, error) {
	actor = actor.normalized()
	if actor.OrganizationID == "" {
		return nil, ErrInvalidOrganization
	}
	return u.repo.ListByOrganization(ctx, actor.OrganizationID)
}

func (u *EstimateUseCase) AddLineItem(ctx context.Context, actor Actor, estimateID string, in LineItemInput) (entities.Estimate, entities.LineItem, error) {
	e, err := u.getEditable(ctx, actor, estimateID)
	if err != nil {
		return entities.Estimate{}, entities.LineItem{}, err
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		return entities.Estimate{}, entities.LineItem{}, ErrInvalidLineItemCategory
	}
	quantity, err := parseNonNegative(in.Quantity, ErrInvalidQuantity)
	if err != nil {
		return entities.Estimate{}, entities.LineItem{}, err
	}
	material, err := parseNonNegative(in.UnitMaterialCost, ErrInvalidUnitCost)
	if err != nil {
		return entities.Estimate{}, entities.LineItem{}, err
	}
	labor, err := parseNonNegative(in.UnitLaborCost, ErrInvalidUnitCost)
	if err != nil {
		return entities.Estimate{}, entities.LineItem{}, err
	}

	item := entities.LineItem{
		ID:                uuid.NewString(),
		Category:          category,
		Description:       strings.TrimSpace(in.Description),
		Quantity:          money.Round4(quantity),
		Unit:              strings.TrimSpace(in.Unit),
		UnitMaterialCost:  money.Round2(material),
		UnitLaborCost:     money.Round2(labor),
		CalculationSource: entities.CalculationSourceManual,
	}
	item.TotalCost = costing.LineTotal(item.Quantity, item.UnitMaterialCost, item.UnitLaborCost)

	e.LineItems = append(e.LineItems, item)
	saved, err := u.persist(ctx, e)
	if err != nil {
		return entities.Estimate{}, entities.LineItem{}, err
	}
	return saved, saved.LineItems[len(saved.LineItems)-1], nil
}

func (u *EstimateUseCase) UpdateLineItem(ctx context.Context, actor Actor, estimateID, lineItemID string, patch LineItemPatch) (entities.Estimate, entities.LineItem, error) {
	e, idx, err := u.getEditableItem(ctx, actor, estimateID, lineItemID)
	if err != nil {
		return entities.Estimate{}, entities.LineItem{}, err
	}
	item := &e.LineItems[idx]

	if patch.Quantity != nil {
		if item.CalculationSource != entities.CalculationSourceManual {
			return entities.Estimate{}, entities.LineItem{}, ErrLineItemQuantityOverrideRequired
		}
		quantity, err := parseNonNegative(patch.Quantity, ErrInvalidQuantity)
		if err != nil {
			return entities.Estimate{}, entities.LineItem{}, err
		}
		item.Quantity = money.Round4(quantity)
	}
	if patch.Description != nil {
		item.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Unit != nil {
		item.Unit = strings.TrimSpace(*patch.Unit)
	}
	if patch.UnitMaterialCost != nil {
		material, err := parseNonNegative(patch.UnitMaterialCost, ErrInvalidUnitCost)
		if err != nil {
			return entities.Estimate{}, entities.LineItem{}, err
		}
		item.UnitMaterialCost = money.Round2(material)
	}
	if patch.UnitLaborCost != nil {
		labor, err := parseNonNegative(patch.UnitLaborCost, ErrInvalidUnitCost)
		if err != nil {
			return entities.Estimate{}, entities.LineItem{}, err
		}
		item.UnitLaborCost = money.Round2(labor)
	}
	item.TotalCost = costing.LineTotal(item.Quantity, item.UnitMaterialCost, item.UnitLaborCost)

	saved, err := u.persist(ctx, e)
	if err != nil {
		return entities.Estimate{}, entities.LineItem{}, err
	}
	return saved, saved.LineItems[idx], nil
}

func (u *EstimateUseCase) DeleteLineItem(ctx context.Context, actor Actor, estimateID, lineItemID string) (entities.Estimate, error) {
	e, idx, err := u.getEditableItem(ctx, actor, estimateID, lineItemID)
	if err != nil {
		return entities.Estimate{}, err
	}
	e.LineItems = append(e.LineItems[:idx], e.LineItems[idx+1:]...)
	return u.persist(ctx, e)
}

// ComputeLineItem runs the full pipeline: evaluate the formula, resolve the
// output feeding the quantity, stamp the item as computed, snapshot the
// formula into a computation receipt and persist item + receipt + new
// aggregates in one transaction.
//
// Re-running a formula always resets the item to computed, discarding any
// prior manual adjustment together with its baseline.
func (u *EstimateUseCase) ComputeLineItem(ctx context.Context, actor Actor, estimateID, lineItemID string, in ComputeInput) (ComputeResult, error) {
	e, idx, err := u.getEditableItem(ctx, actor, estimateID, lineItemID)
	if err != nil {
		return ComputeResult{}, err
	}
	item := &e.LineItems[idx]

	f, err := u.loadFormula(ctx, actor, in.FormulaID)
	if err != nil {
		return ComputeResult{}, err
	}
	if !strings.EqualFold(strings.TrimSpace(f.Category), strings.TrimSpace(item.Category)) {
		return ComputeResult{}, ErrFormulaCategoryMismatch
	}

	inputs, err := NormalizeInputValues(in.InputValues)
	if err != nil {
		return ComputeResult{}, err
	}

	result, err := formula.Evaluate(f.Definition(), inputs)
	if err != nil {
		return ComputeResult{}, err
	}

	out, err := formula.ResolveOutput(f.Outputs, item.Unit, in.OutputVariable)
	if err != nil {
		return ComputeResult{}, err
	}

	item.Quantity = result.OutputValues[out.Variable]
	item.Unit = out.Unit
	item.CalculationSource = entities.CalculationSourceComputed
	item.OriginalComputedQuantity = nil
	item.OriginalComputedCost = nil
	item.OverrideReason = ""
	item.TotalCost = costing.LineTotal(item.Quantity, item.UnitMaterialCost, item.UnitLaborCost)

	instance := entities.ComputationInstance{
		ID:              uuid.NewString(),
		EstimateID:      e.ID,
		LineItemID:      item.ID,
		FormulaID:       f.ID,
		FormulaVersion:  f.Version,
		FormulaSnapshot: f,
		InputValues:     result.ResolvedInputs,
		ComputedResults: result.ComputedResults,
		ComputedAt:      time.Now().UTC(),
		ComputedBy:      actor.normalized().UserID,
	}

	costing.Apply(&e)
	e.UpdatedAt = time.Now().UTC()
	saved, err := u.repo.SaveWithComputation(ctx, e, instance)
	if err != nil {
		if errors.Is(err, interfaces.ErrRevisionConflict) {
			return ComputeResult{}, ErrEstimateRevisionConflict
		}
		return ComputeResult{}, err
	}
	log.Printf("[estimate][usecase] computed item=%s estimate=%s formula=%s v%d quantity=%s", item.ID, e.ID, f.ID, f.Version, item.Quantity)
	return ComputeResult{Estimate: saved, LineItem: saved.LineItems[idx], Instance: instance}, nil
}

// OverrideLineItem replaces a computed quantity by hand, keeping the
// first-ever computed values as the audit baseline. Repeated overrides never
// move that baseline; only a fresh compute resets it.
func (u *EstimateUseCase) OverrideLineItem(ctx context.Context, actor Actor, estimateID, lineItemID string, quantity any, reason string) (entities.Estimate, entities.LineItem, error) {
	e, idx, err := u.getEditableItem(ctx, actor, estimateID, lineItemID)
	if err != nil {
		return entities.Estimate{}, entities.LineItem{}, err
	}
	item := &e.LineItems[idx]

	if item.CalculationSource == entities.CalculationSourceManual {
		// Overrides only make sense atop a formula result; manual items are
		// edited directly.
		return entities.Estimate{}, entities.LineItem{}, ErrLineItemQuantityOverrideRequired
	}
	reason = strings.TrimSpace(reason)
	if len(reason) < minOverrideReasonLength {
		return entities.Estimate{}, entities.LineItem{}, ErrOverrideReasonTooShort
	}
	newQuantity, err := parseNonNegative(quantity, ErrInvalidQuantity)
	if err != nil {
		return entities.Estimate{}, entities.LineItem{}, err
	}

	if item.OriginalComputedQuantity == nil {
		baseQuantity := item.Quantity
		baseCost := item.TotalCost
		item.OriginalComputedQuantity = &baseQuantity
		item.OriginalComputedCost = &baseCost
	}

	item.Quantity = money.Round4(newQuantity)
	item.CalculationSource = entities.CalculationSourceAdjusted
	item.OverrideReason = reason
	item.TotalCost = costing.LineTotal(item.Quantity, item.UnitMaterialCost, item.UnitLaborCost)

	saved, err := u.persist(ctx, e)
	if err != nil {
		return entities.Estimate{}, entities.LineItem{}, err
	}
	log.Printf("[estimate][usecase] override item=%s estimate=%s quantity=%s", item.ID, e.ID, item.Quantity)
	return saved, saved.LineItems[idx], nil
}

// RecomputeTotals re-derives the aggregates from the current line items. It
// is idempotent and safe to call after bulk changes such as duplication.
func (u *EstimateUseCase) RecomputeTotals(ctx context.Context, actor Actor, estimateID string) (entities.Estimate, error) {
	e, err := u.getScoped(ctx, actor, estimateID)
	if err != nil {
		return entities.Estimate{}, err
	}
	return u.persist(ctx, e)
}

func (u *EstimateUseCase) FinalizeEstimate(ctx context.Context, actor Actor, estimateID string) (entities.Estimate, error) {
	e, err := u.getScoped(ctx, actor, estimateID)
	if err != nil {
		return entities.Estimate{}, err
	}
	if e.Status != entities.EstimateStatusDraft {
		return entities.Estimate{}, ErrEstimateNotEditable
	}
	e.Status = entities.EstimateStatusFinal
	lockItems(&e)
	return u.persist(ctx, e)
}

func (u *EstimateUseCase) ArchiveEstimate(ctx context.Context, actor Actor, estimateID string) (entities.Estimate, error) {
	e, err := u.getScoped(ctx, actor, estimateID)
	if err != nil {
		return entities.Estimate{}, err
	}
	if e.Status == entities.EstimateStatusArchived {
		return e, nil
	}
	e.Status = entities.EstimateStatusArchived
	lockItems(&e)
	return u.persist(ctx, e)
}

func (u *EstimateUseCase) ListComputations(ctx context.Context, actor Actor, estimateID, lineItemID string) ([]entities.ComputationInstance, error) {
	e, err := u.getScoped(ctx, actor, estimateID)
	if err != nil {
		return nil, err
	}
	lineItemID = strings.TrimSpace(lineItemID)
	if lineItemID == "" {
		return nil, ErrInvalidLineItemID
	}
	if e.FindLineItem(lineItemID) < 0 {
		return nil, ErrLineItemNotFound
	}
	return u.instanceRepo.ListByLineItemID(ctx, lineItemID)
}

func (u *EstimateUseCase) loadFormula(ctx context.Context, actor Actor, formulaID string) (entities.Formula, error) {
	formulaID = strings.TrimSpace(formulaID)
	if formulaID == "" {
		return entities.Formula{}, ErrInvalidFormulaID
	}
	f, err := u.formulaRepo.GetByID(ctx, formulaID)
	if err != nil {
		return entities.Formula{}, err
	}
	if f.ID == "" || f.OrganizationID != actor.normalized().OrganizationID {
		return entities.Formula{}, ErrFormulaNotFound
	}
	// New computations only ever use the live chain head; superseded and
	// deactivated versions stay available for history, not for use.
	if !f.IsCurrent() {
		return entities.Formula{}, ErrFormulaNotCurrent
	}
	if !f.IsActive {
		return entities.Formula{}, ErrFormulaInactive
	}
	return f, nil
}

func (u *EstimateUseCase) getScoped(ctx context.Context, actor Actor, estimateID string) (entities.Estimate, error) {
	actor = actor.normalized()
	if actor.OrganizationID == "" {
		return entities.Estimate{}, ErrInvalidOrganization
	}
	estimateID = strings.TrimSpace(estimateID)
	if estimateID == "" {
		return entities.Estimate{}, ErrInvalidEstimateID
	}
	e, err := u.repo.GetByID(ctx, estimateID)
	if err != nil {
		return entities.Estimate{}, err
	}
	if e.ID == "" || e.OrganizationID != actor.OrganizationID {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	return e, nil
}

func (u *EstimateUseCase) getEditable(ctx context.Context, actor Actor, estimateID string) (entities.Estimate, error) {
	e, err := u.getScoped(ctx, actor, estimateID)
	if err != nil {
		return entities.Estimate{}, err
	}
	if !e.IsEditable() {
		return entities.Estimate{}, ErrEstimateNotEditable
	}
	return e, nil
}

func (u *EstimateUseCase) getEditableItem(ctx context.Context, actor Actor, estimateID, lineItemID string) (entities.Estimate, int, error) {
	e, err := u.getEditable(ctx, actor, estimateID)
	if err != nil {
		return entities.Estimate{}, -1, err
	}
	lineItemID = strings.TrimSpace(lineItemID)
	if lineItemID == "" {
		return entities.Estimate{}, -1, ErrInvalidLineItemID
	}
	idx := e.FindLineItem(lineItemID)
	if idx < 0 {
		return entities.Estimate{}, -1, ErrLineItemNotFound
	}
	if e.LineItems[idx].Locked {
		return entities.Estimate{}, -1, ErrEstimateNotEditable
	}
	return e, idx, nil
}

func (u *EstimateUseCase) persist(ctx context.Context, e entities.Estimate) (entities.Estimate, error) {
	costing.Apply(&e)
	e.UpdatedAt = time.Now().UTC()
	saved, err := u.repo.Save(ctx, e)
	if err != nil {
		if errors.Is(err, interfaces.ErrRevisionConflict) {
			return entities.Estimate{}, ErrEstimateRevisionConflict
		}
		return entities.Estimate{}, err
	}
	return saved, nil
}

func lockItems(e *entities.Estimate) {
	for i := range e.LineItems {
		e.LineItems[i].Locked = true
	}
}

func parseRate(v any) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Zero, nil
	}
	d, err := money.Parse(v)
	if err != nil || d.IsNegative() {
		return decimal.Zero, ErrInvalidRate
	}
	return d, nil
}

func parseNonNegative(v any, invalid error) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Zero, nil
	}
	d, err := money.Parse(v)
	if err != nil || d.IsNegative() {
		return decimal.Zero, invalid
	}
	return d, nil
}
