package inventory

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// CostScale es la precisión fija del costo promedio: 4 decimales, redondeo
// half-up en la división. Mantener el promedio en punto fijo evita la deriva
// por acumulación flotante tras muchas recepciones.
const CostScale = 4

// WeightedAverageCost calcula el costo promedio ponderado sobre los lotes con
// cantidad restante > 0: sum(qty_i * cost_i) / sum(qty_i), redondeado a
// CostScale decimales.
// Devuelve nil si no queda stock en ningún lote: el costo vigente del producto
// se conserva como referencia, no se pone en cero.
func WeightedAverageCost(batches []*entity.Batch) *decimal.Decimal {
	totalQty := decimal.Zero
	totalValue := decimal.Zero
	for _, b := range batches {
		if !b.RemainingQty.IsPositive() {
			continue
		}
		totalQty = totalQty.Add(b.RemainingQty)
		totalValue = totalValue.Add(b.RemainingQty.Mul(b.UnitCost))
	}
	if !totalQty.IsPositive() {
		return nil
	}
	avg := totalValue.DivRound(totalQty, CostScale)
	return &avg
}

// IncrementalAverageCost calcula el nuevo promedio al recibir una entrada:
// ((stockActual * costoActual) + (cantidad * costoEntrada)) / (stockActual + cantidad).
// Se usa para valorar el stock de la bodega al momento del movimiento; el
// promedio global del producto se recalcula con WeightedAverageCost.
func IncrementalAverageCost(currentQty, currentCost, inQty, inCost decimal.Decimal) decimal.Decimal {
	sum := currentQty.Add(inQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := currentQty.Mul(currentCost).Add(inQty.Mul(inCost))
	return num.DivRound(sum, CostScale)
}
