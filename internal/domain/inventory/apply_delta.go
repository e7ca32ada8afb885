package inventory

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// ApplyDelta es el reductor puro del stock: función de (nivel actual, delta con
// signo) que recalcula OnHand y Available preservando Allocated. Es el único
// camino legítimo para cambiar OnHand, y siempre dentro de la misma transacción
// que inserta el Movement correspondiente.
// Rechaza con InsufficientStockError si OnHand quedaría negativo.
func ApplyDelta(level *entity.StockLevel, delta decimal.Decimal, now time.Time) (*entity.StockLevel, error) {
	newOnHand := level.OnHand.Add(delta)
	if newOnHand.IsNegative() {
		return nil, &domain.InsufficientStockError{
			ProductID:   level.ProductID,
			WarehouseID: level.WarehouseID,
			Current:     level.OnHand,
			Requested:   delta.Abs(),
			Resulting:   newOnHand,
		}
	}
	next := *level
	next.OnHand = newOnHand
	next.Available = newOnHand.Sub(next.Allocated)
	next.UpdatedAt = now
	return &next, nil
}

// ApplyAllocation ajusta la reserva del nivel (confirmación de venta sube,
// despacho o cancelación baja) y recalcula Available. No toca OnHand: reservar
// no es un cambio físico y por eso no genera Movement.
// Rechaza si Available quedaría negativo (reservar más de lo disponible) o si
// Allocated quedaría negativo (liberar más de lo reservado).
func ApplyAllocation(level *entity.StockLevel, delta decimal.Decimal, now time.Time) (*entity.StockLevel, error) {
	newAllocated := level.Allocated.Add(delta)
	if newAllocated.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	newAvailable := level.OnHand.Sub(newAllocated)
	if newAvailable.IsNegative() {
		return nil, &domain.InsufficientStockError{
			ProductID:   level.ProductID,
			WarehouseID: level.WarehouseID,
			Current:     level.Available,
			Requested:   delta,
			Resulting:   newAvailable,
		}
	}
	next := *level
	next.Allocated = newAllocated
	next.Available = newAvailable
	next.UpdatedAt = now
	return &next, nil
}

// SignedQuantity aplica la convención de signo del kardex: el tipo del
// movimiento determina si la magnitud suma o resta stock.
func SignedQuantity(movementType string, magnitude decimal.Decimal) decimal.Decimal {
	if entity.IsInbound(movementType) {
		return magnitude
	}
	return magnitude.Neg()
}

// Replay reconstruye el OnHand de un par (producto, bodega) plegando los deltas
// del kardex en orden de inserción. Auditoría: el resultado debe coincidir
// exactamente con la fila materializada en StockLevel.
func Replay(movements []*entity.Movement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		total = total.Add(m.Quantity)
	}
	return total
}
