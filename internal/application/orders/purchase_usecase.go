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
	"github.com/jhoicas/Kardex-api/internal/domain/order"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// PurchaseUseCase implementa la máquina de estados de órdenes de compra:
// DRAFT -> SENT -> PARTIALLY_RECEIVED -> COMPLETED, con CANCELLED desde
// DRAFT/SENT. La recepción registra movimientos IN, abre lotes, deja la
// recepción inmutable y recalcula el costo promedio — en una transacción.
type PurchaseUseCase struct {
	txRunner      ledger.TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	orderRepo     repository.PurchaseOrderRepository
	publisher     event.Publisher
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	txRunner ledger.TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	orderRepo repository.PurchaseOrderRepository,
	publisher event.Publisher,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		orderRepo:     orderRepo,
		publisher:     publisher,
	}
}

// PurchaseLineInput línea de una orden de compra nueva.
type PurchaseLineInput struct {
	ProductID  string
	OrderedQty decimal.Decimal
	UnitCost   decimal.Decimal
}

// CreatePurchaseInput entrada para crear una orden de compra en DRAFT.
type CreatePurchaseInput struct {
	CompanyID    string
	UserID       string
	WarehouseID  string
	Number       string
	SupplierName string
	Lines        []PurchaseLineInput
	Notes        string
}

// ReceiveLineInput cantidad entrante contra una línea de la orden.
type ReceiveLineInput struct {
	LineID   string
	Quantity decimal.Decimal
}

// Create crea la orden en DRAFT validando pertenencia de bodega y productos.
func (uc *PurchaseUseCase) Create(ctx context.Context, in CreatePurchaseInput) (*entity.PurchaseOrder, error) {
	if len(in.Lines) == 0 || in.Number == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := ownedWarehouse(uc.warehouseRepo, in.CompanyID, in.WarehouseID); err != nil {
		return nil, err
	}
	now := time.Now()
	po := &entity.PurchaseOrder{
		ID:           uuid.New().String(),
		CompanyID:    in.CompanyID,
		WarehouseID:  in.WarehouseID,
		Number:       in.Number,
		SupplierName: in.SupplierName,
		Status:       entity.PurchaseStatusDraft,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatedBy:    in.UserID,
	}
	for _, l := range in.Lines {
		if !l.OrderedQty.IsPositive() || l.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if _, err := ownedProduct(uc.productRepo, in.CompanyID, l.ProductID); err != nil {
			return nil, err
		}
		po.Lines = append(po.Lines, &entity.PurchaseOrderLine{
			ID:          uuid.New().String(),
			OrderID:     po.ID,
			ProductID:   l.ProductID,
			OrderedQty:  l.OrderedQty,
			ReceivedQty: decimal.Zero,
			UnitCost:    l.UnitCost,
		})
	}
	err := uc.txRunner.Run(ctx, func(r ledger.TxRepos) error {
		return r.PurchaseOrders.Create(po)
	})
	if err != nil {
		return nil, err
	}
	return po, nil
}

// Send transiciona DRAFT -> SENT (la orden queda abierta a recepciones).
func (uc *PurchaseUseCase) Send(ctx context.Context, companyID, orderID string) error {
	return uc.transition(ctx, companyID, orderID, entity.PurchaseStatusSent)
}

// Cancel transiciona a CANCELLED. Solo desde DRAFT/SENT: con recepciones ya
// aplicadas la orden no se puede cancelar (el stock ya entró al kardex).
func (uc *PurchaseUseCase) Cancel(ctx context.Context, companyID, orderID string) error {
	return uc.transition(ctx, companyID, orderID, entity.PurchaseStatusCancelled)
}

func (uc *PurchaseUseCase) transition(ctx context.Context, companyID, orderID, next string) error {
	var from string
	err := uc.txRunner.Run(ctx, func(r ledger.TxRepos) error {
		po, err := lockedPurchase(r, companyID, orderID)
		if err != nil {
			return err
		}
		if err := order.ValidatePurchaseTransition(po.Status, next); err != nil {
			return err
		}
		from = po.Status
		return r.PurchaseOrders.UpdateStatus(orderID, next)
	})
	if err != nil {
		return err
	}
	uc.publishStatus(ctx, companyID, orderID, from, next)
	return nil
}

// Receive aplica una recepción contra la orden: valida sobre-recepción por
// línea, registra un movimiento IN por línea con su lote, deja el registro
// inmutable de la recepción, deriva el estado de la orden y recalcula el costo
// promedio de cada producto afectado. Atómico: o entra toda la recepción o nada.
func (uc *PurchaseUseCase) Receive(ctx context.Context, companyID, userID, orderID string, lines []ReceiveLineInput) (*entity.Receipt, error) {
	incoming := make(map[string]decimal.Decimal, len(lines))
	anyPositive := false
	for _, l := range lines {
		if l.Quantity.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if _, dup := incoming[l.LineID]; dup {
			// Una línea repetida en la misma recepción es ambigua: ¿sumar o quedarse
			// con la última? Se rechaza en vez de adivinar.
			return nil, domain.ErrInvalidInput
		}
		if l.Quantity.IsPositive() {
			anyPositive = true
		}
		incoming[l.LineID] = l.Quantity
	}
	if !anyPositive {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var receipt *entity.Receipt
	var from, to string

	err := uc.txRunner.Run(ctx, func(r ledger.TxRepos) error {
		po, err := lockedPurchase(r, companyID, orderID)
		if err != nil {
			return err
		}
		if !order.CanReceive(po.Status) {
			return &domain.InvalidTransitionError{Document: "purchase_order", Current: po.Status, Attempted: "receive"}
		}
		from = po.Status

		receipt = &entity.Receipt{
			ID:              uuid.New().String(),
			CompanyID:       companyID,
			PurchaseOrderID: po.ID,
			WarehouseID:     po.WarehouseID,
			ReceivedAt:      now,
			ReceivedBy:      userID,
		}
		affected := make(map[string]bool)

		for _, line := range po.Lines {
			qty, ok := incoming[line.ID]
			if !ok || !qty.IsPositive() {
				continue
			}
			newReceived := line.ReceivedQty.Add(qty)
			if newReceived.GreaterThan(line.OrderedQty) {
				return &domain.OverReceiptError{
					LineID:    line.ID,
					ProductID: line.ProductID,
					Ordered:   line.OrderedQty,
					Received:  line.ReceivedQty,
					Incoming:  qty,
				}
			}
			if _, _, err := ledger.PostMovement(r, ledger.PostInput{
				CompanyID:   companyID,
				ProductID:   line.ProductID,
				WarehouseID: po.WarehouseID,
				Type:        entity.MovementTypeIN,
				Quantity:    qty,
				UnitCost:    line.UnitCost,
				Reference:   entity.MovementReference{RefType: entity.RefPurchaseOrder, RefID: po.ID},
				ActorID:     userID,
				CreateBatch: true,
				Now:         now,
			}); err != nil {
				return err
			}
			if err := r.PurchaseOrders.UpdateLineReceived(line.ID, newReceived); err != nil {
				return err
			}
			line.ReceivedQty = newReceived
			receipt.Lines = append(receipt.Lines, &entity.ReceiptLine{
				ID:        uuid.New().String(),
				ReceiptID: receipt.ID,
				ProductID: line.ProductID,
				Quantity:  qty,
				UnitCost:  line.UnitCost,
			})
			affected[line.ProductID] = true
		}
		if len(receipt.Lines) == 0 {
			// Ninguna línea entrante pertenece a la orden
			return domain.ErrInvalidInput
		}
		if err := r.Receipts.Create(receipt); err != nil {
			return err
		}

		to = order.DerivePurchaseStatus(po.Lines, po.Status)
		if to != po.Status {
			if err := r.PurchaseOrders.UpdateStatus(po.ID, to); err != nil {
				return err
			}
		}

		// La recepción cambió la base de costo de estos productos
		for productID := range affected {
			if _, err := ledger.RecomputeProductCost(r, companyID, productID, userID, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if to != from {
		uc.publishStatus(ctx, companyID, orderID, from, to)
	}
	return receipt, nil
}

// GetByID devuelve la orden con sus líneas, validando pertenencia.
func (uc *PurchaseUseCase) GetByID(ctx context.Context, companyID, orderID string) (*entity.PurchaseOrder, error) {
	po, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	if po.CompanyID != companyID {
		return nil, &domain.CrossTenantError{Entity: "purchase_order", EntityID: orderID, CompanyID: companyID}
	}
	return po, nil
}

// List lista órdenes por empresa, opcionalmente filtradas por estado.
func (uc *PurchaseUseCase) List(ctx context.Context, companyID, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return uc.orderRepo.ListByCompany(companyID, status, limit, offset)
}

func (uc *PurchaseUseCase) publishStatus(ctx context.Context, companyID, orderID, from, to string) {
	_ = uc.publisher.Publish(ctx, event.TypeOrderStatusChanged, orderID, event.OrderStatusChanged{
		CompanyID:  companyID,
		Document:   "purchase_order",
		OrderID:    orderID,
		From:       from,
		To:         to,
		OccurredAt: time.Now(),
	})
}

func lockedPurchase(r ledger.TxRepos, companyID, orderID string) (*entity.PurchaseOrder, error) {
	po, err := r.PurchaseOrders.GetByIDForUpdate(orderID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	if po.CompanyID != companyID {
		return nil, &domain.CrossTenantError{Entity: "purchase_order", EntityID: orderID, CompanyID: companyID}
	}
	return po, nil
}
