package ledger

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/inventory"
)

// PostInput describe un movimiento a registrar. Quantity es la magnitud
// (> 0); el signo lo implica Type. AllocationDelta ajusta la reserva en el
// mismo upsert (el despacho de una venta consume su reserva al salir).
type PostInput struct {
	CompanyID   string
	ProductID   string
	WarehouseID string
	Type        string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
	Reference   entity.MovementReference
	Reason      string
	Notes       string
	ActorID     string

	AllocationDelta decimal.Decimal
	// CreateBatch: la entrada abre un lote nuevo a UnitCost (compras, entradas
	// manuales con costo). ConsumeBatches: la salida descuenta lotes por FIFO.
	// Los traslados no tocan lotes: la mercancía sigue existiendo.
	CreateBatch    bool
	ConsumeBatches bool

	Now time.Time
}

// PostMovement es la primitiva del kardex y el único camino que muta OnHand:
// bloquea la fila de stock (SELECT FOR UPDATE), aplica el reductor puro,
// materializa el nivel y agrega la entrada inmutable — todo con los repos de
// la transacción del caller. Si el stock quedaría negativo no escribe nada.
// Las cuatro máquinas de estado y los ajustes pasan por aquí: no existe código
// que actualice el stock sin su asiento de auditoría.
func PostMovement(r TxRepos, in PostInput) (*entity.Movement, *entity.StockLevel, error) {
	if !in.Quantity.IsPositive() || !entity.ValidMovementType(in.Type) {
		return nil, nil, domain.ErrInvalidInput
	}

	level, err := r.Stock.GetForUpdate(in.CompanyID, in.ProductID, in.WarehouseID)
	if err != nil {
		return nil, nil, err
	}

	delta := inventory.SignedQuantity(in.Type, in.Quantity)
	next, err := inventory.ApplyDelta(level, delta, in.Now)
	if err != nil {
		return nil, nil, err
	}
	if !in.AllocationDelta.IsZero() {
		next, err = inventory.ApplyAllocation(next, in.AllocationDelta, in.Now)
		if err != nil {
			return nil, nil, err
		}
	}
	// Una salida que no consume su propia reserva no puede comerse la de otros:
	// el stock reservado por ventas confirmadas solo sale con su despacho.
	if next.Available.IsNegative() {
		return nil, nil, &domain.InsufficientStockError{
			ProductID:   in.ProductID,
			WarehouseID: in.WarehouseID,
			Current:     level.Available,
			Requested:   in.Quantity,
			Resulting:   next.Available,
		}
	}

	var batchID string
	switch {
	case in.CreateBatch:
		batch := inventory.NewBatch(in.CompanyID, in.ProductID, in.Quantity, in.UnitCost, in.Now)
		if err := r.Batches.Create(batch); err != nil {
			return nil, nil, err
		}
		batchID = batch.ID
		// Costo promedio de la bodega al momento de la entrada
		next.UnitCost = inventory.IncrementalAverageCost(level.OnHand, level.UnitCost, in.Quantity, in.UnitCost)
	case in.ConsumeBatches:
		batches, err := r.Batches.ListActiveByProductForUpdate(in.CompanyID, in.ProductID)
		if err != nil {
			return nil, nil, err
		}
		consumed, err := inventory.ConsumeFIFO(batches, in.Quantity)
		if err != nil {
			return nil, nil, err
		}
		for _, b := range batches {
			for _, c := range consumed {
				if c.BatchID == b.ID {
					if err := r.Batches.UpdateRemaining(b.ID, b.RemainingQty); err != nil {
						return nil, nil, err
					}
				}
			}
		}
	}

	if err := r.Stock.Upsert(next); err != nil {
		return nil, nil, err
	}

	mov := &entity.Movement{
		CompanyID:   in.CompanyID,
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		BatchID:     batchID,
		Type:        in.Type,
		Quantity:    delta,
		UnitCost:    in.UnitCost,
		TotalCost:   delta.Mul(in.UnitCost),
		Reference:   in.Reference,
		Reason:      in.Reason,
		Notes:       in.Notes,
		CreatedAt:   in.Now,
		CreatedBy:   in.ActorID,
	}
	if err := r.Movements.Create(mov); err != nil {
		return nil, nil, err
	}
	return mov, next, nil
}

// RecomputeProductCost recalcula el promedio ponderado del producto sobre sus
// lotes con stock, actualiza el puntero denormalizado y agrega la entrada de
// historial de precios — dentro de la transacción del caller.
// Si no queda stock devuelve nil sin tocar el costo vigente (se conserva como
// referencia, no se pone en cero).
func RecomputeProductCost(r TxRepos, companyID, productID, actorID string, now time.Time) (*decimal.Decimal, error) {
	batches, err := r.Batches.ListActiveByProduct(companyID, productID)
	if err != nil {
		return nil, err
	}
	avg := inventory.WeightedAverageCost(batches)
	if avg == nil {
		return nil, nil
	}
	if err := r.Products.UpdateCost(productID, *avg); err != nil {
		return nil, err
	}
	entry := &entity.PriceHistory{
		CompanyID:   companyID,
		ProductID:   productID,
		PriceType:   entity.PriceTypeCost,
		Price:       *avg,
		EffectiveAt: now,
		CreatedAt:   now,
		CreatedBy:   actorID,
	}
	if err := r.Prices.Create(entry); err != nil {
		return nil, err
	}
	return avg, nil
}
