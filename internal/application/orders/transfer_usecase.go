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

// TransferUseCase implementa los traslados entre bodegas en dos fases:
// Send debita el origen (TRANSFER_OUT) y Complete acredita el destino
// (TRANSFER_IN). Entre las dos fases el stock está en tránsito: el total del
// sistema se conserva solo a través de ambas, a propósito — modela la realidad
// física y la exposición a pérdida en ruta.
type TransferUseCase struct {
	txRunner      ledger.TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	transferRepo  repository.TransferRepository
	publisher     event.Publisher
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	txRunner ledger.TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	transferRepo repository.TransferRepository,
	publisher event.Publisher,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		transferRepo:  transferRepo,
		publisher:     publisher,
	}
}

// TransferLineInput línea de un traslado nuevo.
type TransferLineInput struct {
	ProductID string
	Quantity  decimal.Decimal
}

// CreateTransferInput entrada para crear un traslado en DRAFT.
type CreateTransferInput struct {
	CompanyID       string
	UserID          string
	FromWarehouseID string
	ToWarehouseID   string
	Number          string
	Lines           []TransferLineInput
	Notes           string
}

// Create crea el traslado en DRAFT. Origen y destino deben ser bodegas
// distintas de la empresa; se valida aquí, antes de cualquier movimiento.
func (uc *TransferUseCase) Create(ctx context.Context, in CreateTransferInput) (*entity.Transfer, error) {
	if len(in.Lines) == 0 || in.Number == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.FromWarehouseID == in.ToWarehouseID {
		return nil, domain.ErrInvalidInput
	}
	if err := ownedWarehouse(uc.warehouseRepo, in.CompanyID, in.FromWarehouseID); err != nil {
		return nil, err
	}
	if err := ownedWarehouse(uc.warehouseRepo, in.CompanyID, in.ToWarehouseID); err != nil {
		return nil, err
	}
	now := time.Now()
	tr := &entity.Transfer{
		ID:              uuid.New().String(),
		CompanyID:       in.CompanyID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Number:          in.Number,
		Status:          entity.TransferStatusDraft,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
		CreatedBy:       in.UserID,
	}
	for _, l := range in.Lines {
		if !l.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		if _, err := ownedProduct(uc.productRepo, in.CompanyID, l.ProductID); err != nil {
			return nil, err
		}
		tr.Lines = append(tr.Lines, &entity.TransferLine{
			ID:         uuid.New().String(),
			TransferID: tr.ID,
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
		})
	}
	err := uc.txRunner.Run(ctx, func(r ledger.TxRepos) error {
		return r.Transfers.Create(tr)
	})
	if err != nil {
		return nil, err
	}
	return tr, nil
}

// Send debita cada línea en la bodega origen (TRANSFER_OUT) y deja el traslado
// IN_TRANSIT. Si alguna línea no tiene stock suficiente, falla la operación
// completa sin debitar nada.
func (uc *TransferUseCase) Send(ctx context.Context, companyID, userID, transferID string) error {
	now := time.Now()
	err := uc.txRunner.Run(ctx, func(r ledger.TxRepos) error {
		tr, err := lockedTransfer(r, companyID, transferID)
		if err != nil {
			return err
		}
		if err := order.ValidateTransferTransition(tr.Status, entity.TransferStatusInTransit); err != nil {
			return err
		}
		if err := uc.moveLines(r, tr, entity.MovementTypeTransferOut, tr.FromWarehouseID, userID, now); err != nil {
			return err
		}
		return r.Transfers.UpdateStatus(tr.ID, entity.TransferStatusInTransit, now)
	})
	if err != nil {
		return err
	}
	uc.publishStatus(ctx, companyID, transferID, entity.TransferStatusDraft, entity.TransferStatusInTransit)
	return nil
}

// Complete acredita cada línea en la bodega destino (TRANSFER_IN) con
// exactamente las cantidades debitadas al enviar. Solo desde IN_TRANSIT.
func (uc *TransferUseCase) Complete(ctx context.Context, companyID, userID, transferID string) error {
	now := time.Now()
	err := uc.txRunner.Run(ctx, func(r ledger.TxRepos) error {
		tr, err := lockedTransfer(r, companyID, transferID)
		if err != nil {
			return err
		}
		if err := order.ValidateTransferTransition(tr.Status, entity.TransferStatusCompleted); err != nil {
			return err
		}
		if err := uc.moveLines(r, tr, entity.MovementTypeTransferIn, tr.ToWarehouseID, userID, now); err != nil {
			return err
		}
		return r.Transfers.UpdateStatus(tr.ID, entity.TransferStatusCompleted, now)
	})
	if err != nil {
		return err
	}
	uc.publishStatus(ctx, companyID, transferID, entity.TransferStatusInTransit, entity.TransferStatusCompleted)
	return nil
}

// Cancel cancela el traslado. Desde IN_TRANSIT la mercancía debitada vuelve al
// origen con un TRANSFER_IN compensatorio por línea: el kardex conserva la ida
// y la vuelta, nunca se borra el débito original.
func (uc *TransferUseCase) Cancel(ctx context.Context, companyID, userID, transferID string) error {
	now := time.Now()
	var from string
	err := uc.txRunner.Run(ctx, func(r ledger.TxRepos) error {
		tr, err := lockedTransfer(r, companyID, transferID)
		if err != nil {
			return err
		}
		if err := order.ValidateTransferTransition(tr.Status, entity.TransferStatusCancelled); err != nil {
			return err
		}
		from = tr.Status
		if tr.Status == entity.TransferStatusInTransit {
			if err := uc.moveLines(r, tr, entity.MovementTypeTransferIn, tr.FromWarehouseID, userID, now); err != nil {
				return err
			}
		}
		return r.Transfers.UpdateStatus(tr.ID, entity.TransferStatusCancelled, now)
	})
	if err != nil {
		return err
	}
	uc.publishStatus(ctx, companyID, transferID, from, entity.TransferStatusCancelled)
	return nil
}

// moveLines registra un movimiento del tipo dado por cada línea del traslado
// en la bodega indicada, al costo promedio vigente de cada producto.
// Los traslados no tocan lotes: la mercancía sigue existiendo en la empresa.
func (uc *TransferUseCase) moveLines(r ledger.TxRepos, tr *entity.Transfer, movType, warehouseID, userID string, now time.Time) error {
	for _, line := range tr.Lines {
		product, err := r.Products.GetByID(line.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if _, _, err := ledger.PostMovement(r, ledger.PostInput{
			CompanyID:   tr.CompanyID,
			ProductID:   line.ProductID,
			WarehouseID: warehouseID,
			Type:        movType,
			Quantity:    line.Quantity,
			UnitCost:    product.Cost,
			Reference:   entity.MovementReference{RefType: entity.RefTransfer, RefID: tr.ID},
			ActorID:     userID,
			Now:         now,
		}); err != nil {
			return err
		}
	}
	return nil
}

// GetByID devuelve el traslado con sus líneas, validando pertenencia.
func (uc *TransferUseCase) GetByID(ctx context.Context, companyID, transferID string) (*entity.Transfer, error) {
	tr, err := uc.transferRepo.GetByID(transferID)
	if err != nil {
		return nil, err
	}
	if tr == nil {
		return nil, domain.ErrNotFound
	}
	if tr.CompanyID != companyID {
		return nil, &domain.CrossTenantError{Entity: "transfer", EntityID: transferID, CompanyID: companyID}
	}
	return tr, nil
}

// List lista traslados por empresa, opcionalmente filtrados por estado.
func (uc *TransferUseCase) List(ctx context.Context, companyID, status string, limit, offset int) ([]*entity.Transfer, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return uc.transferRepo.ListByCompany(companyID, status, limit, offset)
}

func (uc *TransferUseCase) publishStatus(ctx context.Context, companyID, transferID, from, to string) {
	_ = uc.publisher.Publish(ctx, event.TypeOrderStatusChanged, transferID, event.OrderStatusChanged{
		CompanyID:  companyID,
		Document:   "transfer",
		OrderID:    transferID,
		From:       from,
		To:         to,
		OccurredAt: time.Now(),
	})
}

func lockedTransfer(r ledger.TxRepos, companyID, transferID string) (*entity.Transfer, error) {
	tr, err := r.Transfers.GetByIDForUpdate(transferID)
	if err != nil {
		return nil, err
	}
	if tr == nil {
		return nil, domain.ErrNotFound
	}
	if tr.CompanyID != companyID {
		return nil, &domain.CrossTenantError{Entity: "transfer", EntityID: transferID, CompanyID: companyID}
	}
	return tr, nil
}
