package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"buildcost/internal/domain/entities"
	"buildcost/internal/domain/formula"
	"buildcost/internal/domain/money"
	"buildcost/internal/usecase/interfaces"
	mock_interfaces "buildcost/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

var testActor = Actor{OrganizationID: "org-1", UserID: "user-1"}

func decp(s string) *decimal.Decimal {
	d := money.MustFromString(s)
	return &d
}

func validFormulaInput() FormulaInput {
	return FormulaInput{
		Name:     "Wall paint",
		Category: "painting",
		Inputs: []formula.InputDefinition{
			{Variable: "length", Kind: formula.InputKindNumber, Min: decp("0")},
			{Variable: "height", Kind: formula.InputKindNumber, Min: decp("0")},
		},
		Expressions: []formula.ExpressionDefinition{
			{Variable: "area", Expression: "length * height"},
		},
		Outputs: []formula.OutputDefinition{
			{Variable: "area", TargetField: formula.OutputTargetQuantity, Unit: "m2"},
		},
	}
}

func storedFormula() entities.Formula {
	in := validFormulaInput()
	return entities.Formula{
		ID:             "formula-1",
		OrganizationID: "org-1",
		Name:           in.Name,
		Category:       in.Category,
		Version:        1,
		Inputs:         in.Inputs,
		Expressions:    in.Expressions,
		Outputs:        in.Outputs,
		IsActive:       true,
		CreatedBy:      "user-1",
		CreatedAt:      time.Now().UTC(),
	}
}

func TestFormulaUseCase_CreateFormula(t *testing.T) {
	t.Run("missing organization", func(t *testing.T) {
		uc := NewFormulaUseCase(nil)
		_, err := uc.CreateFormula(context.Background(), Actor{}, validFormulaInput())
		if !errors.Is(err, ErrInvalidOrganization) {
			t.Fatalf("expected ErrInvalidOrganization, got %v", err)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		uc := NewFormulaUseCase(nil)
		in := validFormulaInput()
		in.Name = "   "
		_, err := uc.CreateFormula(context.Background(), testActor, in)
		if !errors.Is(err, ErrInvalidFormulaName) {
			t.Fatalf("expected ErrInvalidFormulaName, got %v", err)
		}
	})

	t.Run("missing category", func(t *testing.T) {
		uc := NewFormulaUseCase(nil)
		in := validFormulaInput()
		in.Category = ""
		_, err := uc.CreateFormula(context.Background(), testActor, in)
		if !errors.Is(err, ErrInvalidFormulaCategory) {
			t.Fatalf("expected ErrInvalidFormulaCategory, got %v", err)
		}
	})

	t.Run("invalid definition never reaches the repository", func(t *testing.T) {
		uc := NewFormulaUseCase(nil)
		in := validFormulaInput()
		in.Expressions = []formula.ExpressionDefinition{{Variable: "area", Expression: "length * width"}}
		_, err := uc.CreateFormula(context.Background(), testActor, in)
		if formula.CodeOf(err) != formula.CodeUndefinedVariable {
			t.Fatalf("expected CodeUndefinedVariable, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIFormulaRepository(ctrl)
		uc := NewFormulaUseCase(repo)

		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Formula{})).DoAndReturn(
			func(_ context.Context, f entities.Formula) (entities.Formula, error) {
				if f.ID == "" || f.Version != 1 || !f.IsActive {
					t.Fatalf("unexpected formula: %+v", f)
				}
				if f.OrganizationID != "org-1" || f.CreatedBy != "user-1" {
					t.Fatalf("expected actor stamping, got %+v", f)
				}
				if f.PreviousVersionID != "" || f.SupersededBy != "" {
					t.Fatalf("version 1 must start a fresh chain")
				}
				return f, nil
			},
		)

		f, err := uc.CreateFormula(context.Background(), testActor, validFormulaInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !f.IsCurrent() {
			t.Fatalf("expected new formula to be current")
		}
	})
}

func TestFormulaUseCase_UpdateFormula(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIFormulaRepository(ctrl)
		uc := NewFormulaUseCase(repo)
		repo.EXPECT().GetByID(gomock.Any(), "formula-1").Return(entities.Formula{}, nil)

		_, err := uc.UpdateFormula(context.Background(), testActor, "formula-1", validFormulaInput())
		if !errors.Is(err, ErrFormulaNotFound) {
			t.Fatalf("expected ErrFormulaNotFound, got %v", err)
		}
	})

	t.Run("foreign organization looks missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIFormulaRepository(ctrl)
		uc := NewFormulaUseCase(repo)
		other := storedFormula()
		other.OrganizationID = "org-2"
		repo.EXPECT().GetByID(gomock.Any(), "formula-1").Return(other, nil)

		_, err := uc.UpdateFormula(context.Background(), testActor, "formula-1", validFormulaInput())
		if !errors.Is(err, ErrFormulaNotFound) {
			t.Fatalf("expected ErrFormulaNotFound, got %v", err)
		}
	})

	t.Run("superseded version rejects edits", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIFormulaRepository(ctrl)
		uc := NewFormulaUseCase(repo)
		stale := storedFormula()
		stale.SupersededBy = "formula-2"
		repo.EXPECT().GetByID(gomock.Any(), "formula-1").Return(stale, nil)

		_, err := uc.UpdateFormula(context.Background(), testActor, "formula-1", validFormulaInput())
		if !errors.Is(err, ErrFormulaVersionConflict) {
			t.Fatalf("expected ErrFormulaVersionConflict, got %v", err)
		}
	})

	t.Run("losing the append race surfaces as conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIFormulaRepository(ctrl)
		uc := NewFormulaUseCase(repo)
		repo.EXPECT().GetByID(gomock.Any(), "formula-1").Return(storedFormula(), nil)
		repo.EXPECT().AppendVersion(gomock.Any(), gomock.Any(), "formula-1").Return(entities.Formula{}, interfaces.ErrVersionChainConflict)

		_, err := uc.UpdateFormula(context.Background(), testActor, "formula-1", validFormulaInput())
		if !errors.Is(err, ErrFormulaVersionConflict) {
			t.Fatalf("expected ErrFormulaVersionConflict, got %v", err)
		}
	})

	t.Run("success appends the next version", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIFormulaRepository(ctrl)
		uc := NewFormulaUseCase(repo)
		repo.EXPECT().GetByID(gomock.Any(), "formula-1").Return(storedFormula(), nil)
		repo.EXPECT().AppendVersion(gomock.Any(), gomock.AssignableToTypeOf(entities.Formula{}), "formula-1").DoAndReturn(
			func(_ context.Context, next entities.Formula, supersededID string) (entities.Formula, error) {
				if next.Version != 2 || next.PreviousVersionID != "formula-1" {
					t.Fatalf("expected v2 chained to formula-1, got %+v", next)
				}
				if next.ID == "formula-1" {
					t.Fatalf("new version must get its own id")
				}
				return next, nil
			},
		)

		f, err := uc.UpdateFormula(context.Background(), testActor, "formula-1", validFormulaInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.Version != 2 {
			t.Fatalf("expected version 2, got %d", f.Version)
		}
	})
}

func TestFormulaUseCase_SetFormulaActive(t *testing.T) {
	t.Run("only the chain head toggles", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIFormulaRepository(ctrl)
		uc := NewFormulaUseCase(repo)
		stale := storedFormula()
		stale.SupersededBy = "formula-2"
		repo.EXPECT().GetByID(gomock.Any(), "formula-1").Return(stale, nil)

		_, err := uc.SetFormulaActive(context.Background(), testActor, "formula-1", false)
		if !errors.Is(err, ErrFormulaVersionConflict) {
			t.Fatalf("expected ErrFormulaVersionConflict, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIFormulaRepository(ctrl)
		uc := NewFormulaUseCase(repo)
		f := storedFormula()
		repo.EXPECT().GetByID(gomock.Any(), "formula-1").Return(f, nil)
		deactivated := f
		deactivated.IsActive = false
		repo.EXPECT().SetActive(gomock.Any(), "formula-1", false).Return(deactivated, nil)

		res, err := uc.SetFormulaActive(context.Background(), testActor, "formula-1", false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.IsActive {
			t.Fatalf("expected deactivated formula")
		}
	})
}

func TestFormulaUseCase_EvaluateFormula(t *testing.T) {
	t.Run("inactive formula", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIFormulaRepository(ctrl)
		uc := NewFormulaUseCase(repo)
		f := storedFormula()
		f.IsActive = false
		repo.EXPECT().GetByID(gomock.Any(), "formula-1").Return(f, nil)

		_, err := uc.EvaluateFormula(context.Background(), testActor, "formula-1", map[string]any{"length": 4, "height": 2.5})
		if !errors.Is(err, ErrFormulaInactive) {
			t.Fatalf("expected ErrFormulaInactive, got %v", err)
		}
	})

	t.Run("garbage input value", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIFormulaRepository(ctrl)
		uc := NewFormulaUseCase(repo)
		repo.EXPECT().GetByID(gomock.Any(), "formula-1").Return(storedFormula(), nil)

		_, err := uc.EvaluateFormula(context.Background(), testActor, "formula-1", map[string]any{"length": "4,5", "height": 2})
		if formula.CodeOf(err) != formula.CodeInvalidInput {
			t.Fatalf("expected CodeInvalidInput, got %v", err)
		}
		fe, _ := formula.AsError(err)
		if fe.Variable != "length" {
			t.Fatalf("expected offending variable length, got %q", fe.Variable)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIFormulaRepository(ctrl)
		uc := NewFormulaUseCase(repo)
		repo.EXPECT().GetByID(gomock.Any(), "formula-1").Return(storedFormula(), nil)

		res, err := uc.EvaluateFormula(context.Background(), testActor, "formula-1", map[string]any{"length": "4", "height": "2.5"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.OutputValues["area"].Equal(money.MustFromString("10")) {
			t.Fatalf("expected area 10, got %s", res.OutputValues["area"])
		}
	})
}

func TestFormulaUseCase_ListFormulas(t *testing.T) {
	t.Run("missing organization", func(t *testing.T) {
		uc := NewFormulaUseCase(nil)
		if _, err := uc.ListFormulas(context.Background(), Actor{}, ""); !errors.Is(err, ErrInvalidOrganization) {
			t.Fatalf("expected ErrInvalidOrganization, got %v", err)
		}
	})

	t.Run("passes category filter through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIFormulaRepository(ctrl)
		uc := NewFormulaUseCase(repo)
		repo.EXPECT().ListCurrentByOrganization(gomock.Any(), "org-1", "painting").Return([]entities.Formula{storedFormula()}, nil)

		res, err := uc.ListFormulas(context.Background(), testActor, " painting ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res) != 1 {
			t.Fatalf("expected 1 formula, got %d", len(res))
		}
	})
}
