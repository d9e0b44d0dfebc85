package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"buildcost/internal/adapter/http/handlers/mocks"
	"buildcost/internal/domain/entities"
	"buildcost/internal/domain/formula"
	"buildcost/internal/domain/money"
	"buildcost/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestEstimateHandler_CreateEstimate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewEstimateHandler(mocks.NewMockIEstimateUseCase(ctrl))

		r := gin.New()
		r.POST("/v1/estimates", h.CreateEstimate)

		if w := doRequest(t, r, http.MethodPost, "/v1/estimates", "{"); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing project id fails binding", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewEstimateHandler(mocks.NewMockIEstimateUseCase(ctrl))

		r := gin.New()
		r.POST("/v1/estimates", h.CreateEstimate)

		if w := doRequest(t, r, http.MethodPost, "/v1/estimates", `{"name":"x"}`); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success renders decimal strings", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates", h.CreateEstimate)

		uc.EXPECT().CreateEstimate(gomock.Any(), usecase.Actor{OrganizationID: "org-1", UserID: "user-1"}, gomock.Any()).Return(entities.Estimate{
			ID:             "est-1",
			OrganizationID: "org-1",
			ProjectID:      "proj-1",
			Status:         entities.EstimateStatusDraft,
			MarkupRate:     money.MustFromString("10"),
			VATRate:        money.MustFromString("12.5"),
			Revision:       1,
		}, nil)

		w := doRequest(t, r, http.MethodPost, "/v1/estimates", `{"project_id":"proj-1","markup_rate":10,"vat_rate":"12.5"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body struct {
			VATRate   string `json:"vat_rate"`
			LineItems []any  `json:"line_items"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body.VATRate != "12.5" {
			t.Fatalf("expected vat_rate \"12.5\", got %q", body.VATRate)
		}
		if body.LineItems == nil {
			t.Fatalf("line_items must render as [], not null")
		}
	})
}

func TestEstimateHandler_ComputeLineItem(t *testing.T) {
	gin.SetMode(gin.TestMode)

	route := func(h *EstimateHandler) *gin.Engine {
		r := gin.New()
		r.POST("/v1/estimates/:id/items/:itemId/compute", h.ComputeLineItem)
		return r
	}
	body := `{"formula_id":"formula-1","input_values":{"length":"4","height":"2.5"}}`

	t.Run("missing formula id fails binding", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewEstimateHandler(mocks.NewMockIEstimateUseCase(ctrl))

		w := doRequest(t, route(h), http.MethodPost, "/v1/estimates/est-1/items/item-1/compute", `{"input_values":{}}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("category mismatch maps to 422", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		uc.EXPECT().ComputeLineItem(gomock.Any(), gomock.Any(), "est-1", "item-1", gomock.Any()).Return(usecase.ComputeResult{}, usecase.ErrFormulaCategoryMismatch)

		w := doRequest(t, route(h), http.MethodPost, "/v1/estimates/est-1/items/item-1/compute", body)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("superseded formula maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		uc.EXPECT().ComputeLineItem(gomock.Any(), gomock.Any(), "est-1", "item-1", gomock.Any()).Return(usecase.ComputeResult{}, usecase.ErrFormulaNotCurrent)

		w := doRequest(t, route(h), http.MethodPost, "/v1/estimates/est-1/items/item-1/compute", body)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("output selection required maps to 422 with code", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		uc.EXPECT().ComputeLineItem(gomock.Any(), gomock.Any(), "est-1", "item-1", gomock.Any()).Return(usecase.ComputeResult{},
			&formula.Error{Code: formula.CodeOutputSelectionRequired, Message: "select one explicitly"})

		w := doRequest(t, route(h), http.MethodPost, "/v1/estimates/est-1/items/item-1/compute", body)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
		var resp struct {
			Code string `json:"code"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp.Code != "FORMULA_OUTPUT_SELECTION_REQUIRED" {
			t.Fatalf("expected FORMULA_OUTPUT_SELECTION_REQUIRED, got %s", resp.Code)
		}
	})

	t.Run("success returns item, estimate and receipt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		uc.EXPECT().ComputeLineItem(gomock.Any(), gomock.Any(), "est-1", "item-1", gomock.Any()).Return(usecase.ComputeResult{
			Estimate: entities.Estimate{ID: "est-1", Status: entities.EstimateStatusDraft},
			LineItem: entities.LineItem{ID: "item-1", Quantity: money.MustFromString("10"), CalculationSource: entities.CalculationSourceComputed},
			Instance: entities.ComputationInstance{ID: "ci-1", LineItemID: "item-1", FormulaID: "formula-1", FormulaVersion: 1},
		}, nil)

		w := doRequest(t, route(h), http.MethodPost, "/v1/estimates/est-1/items/item-1/compute", body)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp struct {
			LineItem struct {
				Quantity string `json:"quantity"`
				Source   string `json:"calculation_source"`
			} `json:"line_item"`
			Computation struct {
				ID string `json:"id"`
			} `json:"computation"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp.LineItem.Quantity != "10" || resp.LineItem.Source != "computed" {
			t.Fatalf("unexpected line item: %+v", resp.LineItem)
		}
		if resp.Computation.ID != "ci-1" {
			t.Fatalf("expected receipt ci-1, got %q", resp.Computation.ID)
		}
	})
}

func TestEstimateHandler_OverrideLineItem(t *testing.T) {
	gin.SetMode(gin.TestMode)

	route := func(h *EstimateHandler) *gin.Engine {
		r := gin.New()
		r.POST("/v1/estimates/:id/items/:itemId/override", h.OverrideLineItem)
		return r
	}

	t.Run("manual item maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		uc.EXPECT().OverrideLineItem(gomock.Any(), gomock.Any(), "est-1", "item-1", gomock.Any(), "site survey measured more wall").
			Return(entities.Estimate{}, entities.LineItem{}, usecase.ErrLineItemQuantityOverrideRequired)

		w := doRequest(t, route(h), http.MethodPost, "/v1/estimates/est-1/items/item-1/override", `{"quantity":"12","reason":"site survey measured more wall"}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("short reason maps to 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		uc.EXPECT().OverrideLineItem(gomock.Any(), gomock.Any(), "est-1", "item-1", gomock.Any(), "short").
			Return(entities.Estimate{}, entities.LineItem{}, usecase.ErrOverrideReasonTooShort)

		w := doRequest(t, route(h), http.MethodPost, "/v1/estimates/est-1/items/item-1/override", `{"quantity":"12","reason":"short"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success exposes the audit baseline", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		base := money.MustFromString("10")
		baseCost := money.MustFromString("150")
		uc.EXPECT().OverrideLineItem(gomock.Any(), gomock.Any(), "est-1", "item-1", gomock.Any(), "site survey measured more wall").
			Return(entities.Estimate{ID: "est-1"}, entities.LineItem{
				ID:                       "item-1",
				Quantity:                 money.MustFromString("12"),
				CalculationSource:        entities.CalculationSourceAdjusted,
				OriginalComputedQuantity: &base,
				OriginalComputedCost:     &baseCost,
				OverrideReason:           "site survey measured more wall",
			}, nil)

		w := doRequest(t, route(h), http.MethodPost, "/v1/estimates/est-1/items/item-1/override", `{"quantity":"12","reason":"site survey measured more wall"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp struct {
			LineItem struct {
				Source   string  `json:"calculation_source"`
				Baseline *string `json:"original_computed_quantity"`
			} `json:"line_item"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp.LineItem.Source != "adjusted" {
			t.Fatalf("expected adjusted, got %s", resp.LineItem.Source)
		}
		if resp.LineItem.Baseline == nil || *resp.LineItem.Baseline != "10" {
			t.Fatalf("expected baseline \"10\", got %v", resp.LineItem.Baseline)
		}
	})
}

func TestEstimateHandler_Lifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("finalize conflict maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.PATCH("/v1/estimates/:id/finalize", h.FinalizeEstimate)

		uc.EXPECT().FinalizeEstimate(gomock.Any(), gomock.Any(), "est-1").Return(entities.Estimate{}, usecase.ErrEstimateNotEditable)

		w := doRequest(t, r, http.MethodPatch, "/v1/estimates/est-1/finalize", "")
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("revision conflict maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates/:id/recompute", h.RecomputeTotals)

		uc.EXPECT().RecomputeTotals(gomock.Any(), gomock.Any(), "est-1").Return(entities.Estimate{}, usecase.ErrEstimateRevisionConflict)

		w := doRequest(t, r, http.MethodPost, "/v1/estimates/est-1/recompute", "")
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.GET("/v1/estimates/:id", h.GetEstimate)

		uc.EXPECT().GetEstimate(gomock.Any(), gomock.Any(), "ghost").Return(entities.Estimate{}, usecase.ErrEstimateNotFound)

		w := doRequest(t, r, http.MethodGet, "/v1/estimates/ghost", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
