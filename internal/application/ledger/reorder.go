package ledger

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Kardex-api/internal/application/dto"
)

// GenerateReorderList devuelve los productos bajo su punto de reorden con la
// cantidad sugerida de pedido, priorizados por déficit relativo. warehouseID
// vacío agrega el stock de toda la empresa.
// Sugerencia: pedir hasta 1.5x el punto de reorden (colchón sobre el umbral).
func (uc *UseCase) GenerateReorderList(ctx context.Context, companyID, warehouseID string) ([]dto.ReorderSuggestionDTO, error) {
	items, err := uc.stockRepo.ListBelowReorderPoint(companyID, warehouseID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []dto.ReorderSuggestionDTO{}, nil
	}

	suggestions := make([]dto.ReorderSuggestionDTO, 0, len(items))
	for _, item := range items {
		idealStock := item.ReorderPoint.Mul(decimal.NewFromFloat(1.5))
		suggestedQty := idealStock.Sub(item.CurrentStock)
		if suggestedQty.LessThanOrEqual(decimal.Zero) {
			suggestedQty = decimal.Zero
		}
		suggestions = append(suggestions, dto.ReorderSuggestionDTO{
			ProductID:          item.ProductID,
			SKU:                item.SKU,
			ProductName:        item.ProductName,
			WarehouseID:        item.WarehouseID,
			CurrentStock:       item.CurrentStock,
			ReorderPoint:       item.ReorderPoint,
			SuggestedOrderQty:  suggestedQty,
			UnitCost:           item.UnitCost,
			EstimatedOrderCost: suggestedQty.Mul(item.UnitCost),
		})
	}

	// Mayor déficit absoluto primero; empate por mayor costo de pedido
	sort.SliceStable(suggestions, func(i, j int) bool {
		defA := suggestions[i].ReorderPoint.Sub(suggestions[i].CurrentStock)
		defB := suggestions[j].ReorderPoint.Sub(suggestions[j].CurrentStock)
		if !defA.Equal(defB) {
			return defA.GreaterThan(defB)
		}
		return suggestions[i].EstimatedOrderCost.GreaterThan(suggestions[j].EstimatedOrderCost)
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
