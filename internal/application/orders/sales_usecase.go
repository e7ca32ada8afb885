package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Kardex-api/internal/application/event"
	"github.com/jhoicas/Kardex-api/internal/application/ledger"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/inventory"
	"github.com/jhoicas/Kardex-api/internal/domain/order"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// SalesUseCase implementa la máquina de estados de órdenes de venta:
// DRAFT -> CONFIRMED -> FULFILLED -> INVOICED, con CANCELLED desde estados no
// terminales. Confirmar reserva stock (sube Allocated, sin movimiento);
// despachar consume la reserva y registra la salida en el kardex.
type SalesUseCase struct {
	txRunner      ledger.TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	orderRepo     repository.SalesOrderRepository
	publisher     event.Publisher
}

// NewSalesUseCase construye el caso de uso.
func NewSalesUseCase(
	txRunner ledger.TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	orderRepo repository.SalesOrderRepository,
	publisher event.Publisher,
) *SalesUseCase {
	return &SalesUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		orderRepo:     orderRepo,
		publisher:     publisher,
	}
}

// SalesLineInput línea de una orden de venta nueva.
type SalesLineInput struct {
	ProductID  string
	OrderedQty decimal.Decimal
	UnitPrice  decimal.Decimal
}

// CreateSalesInput entrada para crear una orden de venta en DRAFT.
type CreateSalesInput struct {
	CompanyID    string
	UserID       string
	WarehouseID  string
	Number       string
	CustomerName string
	Lines        []SalesLineInput
	Notes        string
}

// Create crea la orden en DRAFT. No reserva ni mueve stock todavía.
func (uc *SalesUseCase) Create(ctx context.Context, in CreateSalesInput) (*entity.SalesOrder, error) {
	if len(in.Lines) == 0 || in.Number == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := ownedWarehouse(uc.warehouseRepo, in.CompanyID, in.WarehouseID); err != nil {
		return nil, err
	}
	now := time.Now()
	so := &entity.SalesOrder{
		ID:           uuid.New().String(),
		CompanyID:    in.CompanyID,
		WarehouseID:  in.WarehouseID,
		Number:       in.Number,
		CustomerName: in.CustomerName,
		Status:       entity.SalesStatusDraft,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatedBy:    in.UserID,
	}
	for _, l := range in.Lines {
		if !l.OrderedQty.IsPositive() || l.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if _, err := ownedProduct(uc.productRepo, in.CompanyID, l.ProductID); err != nil {
			return nil, err
		}
		so.Lines = append(so.Lines, &entity.SalesOrderLine{
			ID:           uuid.New().String(),
			OrderID:      so.ID,
			ProductID:    l.ProductID,
			OrderedQty:   l.OrderedQty,
			FulfilledQty: decimal.Zero,
			UnitPrice:    l.UnitPrice,
		})
	}
	err := uc.txRunner.Run(ctx, func(r ledger.TxRepos) error {
		return r.SalesOrders.Create(so)
	})
	if err != nil {
		return nil, err
	}
	return so, nil
}

// Confirm reserva el stock de cada línea: bloquea la fila de stock, valida
// disponibilidad y sube Allocated por lo ordenado. Todo o nada entre líneas:
// si una no alcanza, ninguna reserva queda aplicada. No registra movimientos
// (reservar no es un cambio físico).
func (uc *SalesUseCase) Confirm(ctx context.Context, companyID, orderID string) error {
	now := time.Now()
	err := uc.txRunner.Run(ctx, func(r ledger.TxRepos) error {
		so, err := lockedSales(r, companyID, orderID)
		if err != nil {
			return err
		}
		if err := order.ValidateSalesTransition(so.Status, entity.SalesStatusConfirmed); err != nil {
			return err
		}
		for _, line := range so.Lines {
			level, err := r.Stock.GetForUpdate(companyID, line.ProductID, so.WarehouseID)
			if err != nil {
				return err
			}
			next, err := inventory.ApplyAllocation(level, line.OrderedQty, now)
			if err != nil {
				return err
			}
			if err := r.Stock.Upsert(next); err != nil {
				return err
			}
		}
		return r.SalesOrders.UpdateStatus(so.ID, entity.SalesStatusConfirmed)
	})
	if err != nil {
		return err
	}
	uc.publishStatus(ctx, companyID, orderID, entity.SalesStatusDraft, entity.SalesStatusConfirmed)
	return nil
}

// FulfillLineInput cantidad a despachar contra una línea de la orden.
type FulfillLineInput struct {
	LineID   string
	Quantity decimal.Decimal
}

// Fulfill despacha la orden. Sin líneas despacha lo pendiente de cada una (el
// caso normal); con líneas permite un despacho parcial contra líneas
// específicas. Cada cantidad sale del kardex como OUT y baja Allocated por lo
// mismo (la reserva se consume, no se libera). La orden pasa a FULFILLED solo
// cuando todas las líneas quedan completas; un parcial la deja CONFIRMED con
// el resto aún reservado. Una línea que quedaría con despachado > ordenado se
// rechaza con OverFulfillmentError y nada del despacho persiste.
// Solo desde CONFIRMED: el despacho directo desde DRAFT se rechaza, la
// disponibilidad debe haberse validado al confirmar.
func (uc *SalesUseCase) Fulfill(ctx context.Context, companyID, userID, orderID string, lines []FulfillLineInput) error {
	requested := make(map[string]decimal.Decimal, len(lines))
	for _, l := range lines {
		if !l.Quantity.IsPositive() {
			return domain.ErrInvalidInput
		}
		if _, dup := requested[l.LineID]; dup {
			return domain.ErrInvalidInput
		}
		requested[l.LineID] = l.Quantity
	}

	now := time.Now()
	type lowStockCandidate struct {
		product *entity.Product
		level   *entity.StockLevel
	}
	var candidates []lowStockCandidate
	var completed bool

	err := uc.txRunner.Run(ctx, func(r ledger.TxRepos) error {
		so, err := lockedSales(r, companyID, orderID)
		if err != nil {
			return err
		}
		if err := order.ValidateSalesTransition(so.Status, entity.SalesStatusFulfilled); err != nil {
			return err
		}
		if len(requested) > 0 {
			known := make(map[string]bool, len(so.Lines))
			for _, line := range so.Lines {
				known[line.ID] = true
			}
			for id := range requested {
				if !known[id] {
					return domain.ErrInvalidInput
				}
			}
		}

		shippedAny := false
		completed = true
		for _, line := range so.Lines {
			remaining := line.OrderedQty.Sub(line.FulfilledQty)
			qty := remaining
			if len(requested) > 0 {
				qty = requested[line.ID] // cero para las líneas no pedidas
			}
			if qty.IsPositive() {
				if qty.GreaterThan(remaining) {
					return &domain.OverFulfillmentError{
						LineID:    line.ID,
						ProductID: line.ProductID,
						Ordered:   line.OrderedQty,
						Fulfilled: line.FulfilledQty,
						Incoming:  qty,
					}
				}
				product, err := r.Products.GetByID(line.ProductID)
				if err != nil {
					return err
				}
				if product == nil {
					return domain.ErrNotFound
				}
				_, level, err := ledger.PostMovement(r, ledger.PostInput{
					CompanyID:   companyID,
					ProductID:   line.ProductID,
					WarehouseID: so.WarehouseID,
					Type:        entity.MovementTypeOUT,
					Quantity:    qty,
					UnitCost:    product.Cost,
					Reference:   entity.MovementReference{RefType: entity.RefSalesOrder, RefID: so.ID},
					ActorID:     userID,
					// La reserva tomada al confirmar sale junto con el stock físico
					AllocationDelta: qty.Neg(),
					ConsumeBatches:  true,
					Now:             now,
				})
				if err != nil {
					return err
				}
				newFulfilled := line.FulfilledQty.Add(qty)
				if err := r.SalesOrders.UpdateLineFulfilled(line.ID, newFulfilled); err != nil {
					return err
				}
				line.FulfilledQty = newFulfilled
				shippedAny = true
				candidates = append(candidates, lowStockCandidate{product: product, level: level})
			}
			if line.FulfilledQty.LessThan(line.OrderedQty) {
				completed = false
			}
		}
		if !shippedAny {
			return domain.ErrInvalidInput
		}
		if completed {
			return r.SalesOrders.UpdateStatus(so.ID, entity.SalesStatusFulfilled)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if completed {
		uc.publishStatus(ctx, companyID, orderID, entity.SalesStatusConfirmed, entity.SalesStatusFulfilled)
	}
	for _, c := range candidates {
		uc.checkLowStock(ctx, c.product, c.level, now)
	}
	return nil
}

// Invoice marca la orden despachada como facturada (FULFILLED -> INVOICED).
func (uc *SalesUseCase) Invoice(ctx context.Context, companyID, orderID string) error {
	err := uc.txRunner.Run(ctx, func(r ledger.TxRepos) error {
		so, err := lockedSales(r, companyID, orderID)
		if err != nil {
			return err
		}
		if err := order.ValidateSalesTransition(so.Status, entity.SalesStatusInvoiced); err != nil {
			return err
		}
		return r.SalesOrders.UpdateStatus(so.ID, entity.SalesStatusInvoiced)
	})
	if err != nil {
		return err
	}
	uc.publishStatus(ctx, companyID, orderID, entity.SalesStatusFulfilled, entity.SalesStatusInvoiced)
	return nil
}

// Cancel cancela la orden antes del despacho completo. Si estaba CONFIRMED
// libera lo aún reservado de cada línea: lo ya despachado salió del kardex y
// no se compensa aquí (la devolución es un movimiento aparte).
func (uc *SalesUseCase) Cancel(ctx context.Context, companyID, orderID string) error {
	now := time.Now()
	var from string
	err := uc.txRunner.Run(ctx, func(r ledger.TxRepos) error {
		so, err := lockedSales(r, companyID, orderID)
		if err != nil {
			return err
		}
		if err := order.ValidateSalesTransition(so.Status, entity.SalesStatusCancelled); err != nil {
			return err
		}
		from = so.Status
		if so.Status == entity.SalesStatusConfirmed {
			for _, line := range so.Lines {
				remaining := line.OrderedQty.Sub(line.FulfilledQty)
				if !remaining.IsPositive() {
					continue
				}
				level, err := r.Stock.GetForUpdate(companyID, line.ProductID, so.WarehouseID)
				if err != nil {
					return err
				}
				next, err := inventory.ApplyAllocation(level, remaining.Neg(), now)
				if err != nil {
					return err
				}
				if err := r.Stock.Upsert(next); err != nil {
					return err
				}
			}
		}
		return r.SalesOrders.UpdateStatus(so.ID, entity.SalesStatusCancelled)
	})
	if err != nil {
		return err
	}
	uc.publishStatus(ctx, companyID, orderID, from, entity.SalesStatusCancelled)
	return nil
}

// GetByID devuelve la orden con sus líneas, validando pertenencia.
func (uc *SalesUseCase) GetByID(ctx context.Context, companyID, orderID string) (*entity.SalesOrder, error) {
	so, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if so == nil {
		return nil, domain.ErrNotFound
	}
	if so.CompanyID != companyID {
		return nil, &domain.CrossTenantError{Entity: "sales_order", EntityID: orderID, CompanyID: companyID}
	}
	return so, nil
}

// List lista órdenes por empresa, opcionalmente filtradas por estado.
func (uc *SalesUseCase) List(ctx context.Context, companyID, status string, limit, offset int) ([]*entity.SalesOrder, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return uc.orderRepo.ListByCompany(companyID, status, limit, offset)
}

func (uc *SalesUseCase) publishStatus(ctx context.Context, companyID, orderID, from, to string) {
	_ = uc.publisher.Publish(ctx, event.TypeOrderStatusChanged, orderID, event.OrderStatusChanged{
		CompanyID:  companyID,
		Document:   "sales_order",
		OrderID:    orderID,
		From:       from,
		To:         to,
		OccurredAt: time.Now(),
	})
}

func (uc *SalesUseCase) checkLowStock(ctx context.Context, product *entity.Product, level *entity.StockLevel, now time.Time) {
	if level == nil || !product.ReorderPoint.IsPositive() {
		return
	}
	if level.OnHand.GreaterThan(product.ReorderPoint) {
		return
	}
	_ = uc.publisher.Publish(ctx, event.TypeLowStockReached, product.ID, event.LowStockReached{
		CompanyID:    product.CompanyID,
		ProductID:    product.ID,
		WarehouseID:  level.WarehouseID,
		OnHand:       level.OnHand,
		ReorderPoint: product.ReorderPoint,
		OccurredAt:   now,
	})
}

func lockedSales(r ledger.TxRepos, companyID, orderID string) (*entity.SalesOrder, error) {
	so, err := r.SalesOrders.GetByIDForUpdate(orderID)
	if err != nil {
		return nil, err
	}
	if so == nil {
		return nil, domain.ErrNotFound
	}
	if so.CompanyID != companyID {
		return nil, &domain.CrossTenantError{Entity: "sales_order", EntityID: orderID, CompanyID: companyID}
	}
	return so, nil
}
