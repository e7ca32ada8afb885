package inventory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// BatchConsumption registra cuánto se tomó de un lote al consumir por FIFO.
type BatchConsumption struct {
	BatchID  string
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
}

// ConsumeFIFO descuenta una cantidad de los lotes del producto en orden de
// recepción (más antiguo primero), mutando RemainingQty de los lotes afectados.
// Devuelve el detalle de consumo por lote. Los lotes nunca se borran: quedan
// con RemainingQty en cero.
// Falla con ErrInsufficientStock si los lotes no cubren la cantidad; el caller
// ya validó el nivel materializado, así que un faltante aquí indica deriva
// entre lotes y kardex y debe abortar la transacción.
func ConsumeFIFO(batches []*entity.Batch, qty decimal.Decimal) ([]BatchConsumption, error) {
	if !qty.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	sorted := make([]*entity.Batch, len(batches))
	copy(sorted, batches)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].ReceivedAt.Equal(sorted[j].ReceivedAt) {
			return sorted[i].ReceivedAt.Before(sorted[j].ReceivedAt)
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	remaining := qty
	var consumed []BatchConsumption
	for _, b := range sorted {
		if !remaining.IsPositive() {
			break
		}
		if !b.RemainingQty.IsPositive() {
			continue
		}
		take := decimal.Min(b.RemainingQty, remaining)
		b.RemainingQty = b.RemainingQty.Sub(take)
		remaining = remaining.Sub(take)
		consumed = append(consumed, BatchConsumption{
			BatchID:  b.ID,
			Quantity: take,
			UnitCost: b.UnitCost,
		})
	}
	if remaining.IsPositive() {
		return nil, domain.ErrInsufficientStock
	}
	return consumed, nil
}

// NewBatch crea un lote de recepción con la cantidad completa disponible.
func NewBatch(companyID, productID string, qty, unitCost decimal.Decimal, receivedAt time.Time) *entity.Batch {
	return &entity.Batch{
		CompanyID:    companyID,
		ProductID:    productID,
		UnitCost:     unitCost,
		ReceivedQty:  qty,
		RemainingQty: qty,
		ReceivedAt:   receivedAt,
		CreatedAt:    receivedAt,
	}
}
