package response

import (
	"encoding/json"
	"testing"

	"buildcost/internal/domain/entities"
	"buildcost/internal/domain/money"
)

func TestFromEstimate(t *testing.T) {
	base := money.MustFromString("10")
	e := entities.Estimate{
		ID:         "est-1",
		Status:     entities.EstimateStatusDraft,
		MarkupRate: money.MustFromString("10"),
		VATRate:    money.MustFromString("12.5"),
		Subtotal:   money.MustFromString("150"),
		LineItems: []entities.LineItem{{
			ID:                       "item-1",
			Quantity:                 money.MustFromString("12"),
			UnitMaterialCost:         money.MustFromString("10"),
			UnitLaborCost:            money.MustFromString("2.5"),
			TotalCost:                money.MustFromString("150"),
			CalculationSource:        entities.CalculationSourceAdjusted,
			OriginalComputedQuantity: &base,
		}},
		Revision: 3,
	}

	resp := FromEstimate(e)
	if resp.VATRate != "12.5" || resp.Subtotal != "150" {
		t.Fatalf("expected decimal strings, got %+v", resp)
	}
	if resp.LineItems[0].OriginalComputedQuantity == nil || *resp.LineItems[0].OriginalComputedQuantity != "10" {
		t.Fatalf("expected baseline \"10\", got %v", resp.LineItems[0].OriginalComputedQuantity)
	}
	if resp.LineItems[0].OriginalComputedCost != nil {
		t.Fatalf("absent baseline cost must stay nil")
	}

	t.Run("empty line items render as json array", func(t *testing.T) {
		raw, err := json.Marshal(FromEstimate(entities.Estimate{ID: "est-2"}))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var decoded map[string]any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if _, ok := decoded["line_items"].([]any); !ok {
			t.Fatalf("expected line_items array, got %T", decoded["line_items"])
		}
	})
}
