package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Kardex-api/internal/application/event"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/inventory"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// UseCase expone las operaciones primitivas del kardex: registrar movimientos
// manuales, ajustes de inventario, consulta de stock y auditoría del ledger.
// Toda mutación corre dentro de una transacción del TxRunner.
type UseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	stockRepo     repository.StockLevelRepository
	movementRepo  repository.MovementRepository
	publisher     event.Publisher
}

// NewUseCase construye el caso de uso del kardex.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	stockRepo repository.StockLevelRepository,
	movementRepo repository.MovementRepository,
	publisher event.Publisher,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		stockRepo:     stockRepo,
		movementRepo:  movementRepo,
		publisher:     publisher,
	}
}

// MovementInput entrada para registrar un movimiento manual.
// Type: IN u OUT. UnitCost obligatorio en IN (abre lote); en OUT se usa el
// costo promedio vigente del producto. Initial marca la carga de inventario
// inicial (referencia INITIAL_STOCK en vez de MANUAL).
type MovementInput struct {
	CompanyID   string
	UserID      string
	ProductID   string
	WarehouseID string
	Type        string
	Quantity    decimal.Decimal
	UnitCost    *decimal.Decimal
	Notes       string
	Initial     bool
}

// AdjustInput entrada para un ajuste de inventario (operación de un solo paso).
type AdjustInput struct {
	CompanyID   string
	UserID      string
	ProductID   string
	WarehouseID string
	Increase    bool
	Quantity    decimal.Decimal
	Reason      string
	Notes       string
}

// RecordMovement registra una entrada o salida manual: valida pertenencia de
// producto y bodega, abre transacción, bloquea la fila de stock y registra el
// asiento. El rechazo por stock insuficiente no escribe nada.
func (uc *UseCase) RecordMovement(ctx context.Context, in MovementInput) (*entity.Movement, error) {
	if in.Type != entity.MovementTypeIN && in.Type != entity.MovementTypeOUT {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if in.Type == entity.MovementTypeIN && (in.UnitCost == nil || in.UnitCost.IsNegative()) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.ownedProduct(in.CompanyID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if err := uc.ownedWarehouse(in.CompanyID, in.WarehouseID); err != nil {
		return nil, err
	}

	refType := entity.RefManual
	if in.Initial {
		refType = entity.RefInitialStock
	}
	now := time.Now()

	var mov *entity.Movement
	var level *entity.StockLevel
	err = uc.txRunner.Run(ctx, func(r TxRepos) error {
		post := PostInput{
			CompanyID:   in.CompanyID,
			ProductID:   in.ProductID,
			WarehouseID: in.WarehouseID,
			Type:        in.Type,
			Quantity:    in.Quantity,
			Reference:   entity.MovementReference{RefType: refType},
			Notes:       in.Notes,
			ActorID:     in.UserID,
			Now:         now,
		}
		if in.Type == entity.MovementTypeIN {
			post.UnitCost = *in.UnitCost
			post.CreateBatch = true
		} else {
			post.UnitCost = product.Cost
			post.ConsumeBatches = true
		}
		mov, level, err = PostMovement(r, post)
		if err != nil {
			return err
		}
		if in.Type == entity.MovementTypeIN {
			// La entrada con costo cambia la base de adquisición
			if _, err := RecomputeProductCost(r, in.CompanyID, in.ProductID, in.UserID, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publishMovement(ctx, mov)
	uc.checkLowStock(ctx, product, level, now)
	return mov, nil
}

// AdjustStock registra un ajuste ADJUSTMENT_IN/OUT con razón cerrada.
// La disminución está sujeta al mismo rechazo por stock insuficiente que
// cualquier otra salida.
func (uc *UseCase) AdjustStock(ctx context.Context, in AdjustInput) (*entity.Movement, error) {
	if !in.Quantity.IsPositive() || !entity.ValidAdjustReason(in.Reason) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.ownedProduct(in.CompanyID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if err := uc.ownedWarehouse(in.CompanyID, in.WarehouseID); err != nil {
		return nil, err
	}

	now := time.Now()
	movType := entity.MovementTypeAdjustmentOut
	if in.Increase {
		movType = entity.MovementTypeAdjustmentIn
	}

	var mov *entity.Movement
	var level *entity.StockLevel
	err = uc.txRunner.Run(ctx, func(r TxRepos) error {
		mov, level, err = PostMovement(r, PostInput{
			CompanyID:   in.CompanyID,
			ProductID:   in.ProductID,
			WarehouseID: in.WarehouseID,
			Type:        movType,
			Quantity:    in.Quantity,
			UnitCost:    product.Cost,
			Reference:   entity.MovementReference{RefType: entity.RefAdjustment},
			Reason:      in.Reason,
			Notes:       in.Notes,
			ActorID:     in.UserID,
			// El ajuste positivo (mercancía encontrada) abre lote al costo
			// promedio vigente; el negativo consume lotes por FIFO.
			CreateBatch:    in.Increase,
			ConsumeBatches: !in.Increase,
			Now:            now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.publishMovement(ctx, mov)
	if !in.Increase {
		uc.checkLowStock(ctx, product, level, now)
	}
	return mov, nil
}

// GetStock devuelve el nivel materializado de un producto en una bodega.
// Refleja siempre el último movimiento confirmado: nivel y kardex se escriben
// en la misma transacción.
func (uc *UseCase) GetStock(ctx context.Context, companyID, productID, warehouseID string) (*entity.StockLevel, error) {
	if _, err := uc.ownedProduct(companyID, productID); err != nil {
		return nil, err
	}
	if err := uc.ownedWarehouse(companyID, warehouseID); err != nil {
		return nil, err
	}
	return uc.stockRepo.Get(companyID, productID, warehouseID)
}

// ListStock lista los niveles materializados de la empresa, opcionalmente
// filtrados por bodega.
func (uc *UseCase) ListStock(ctx context.Context, companyID, warehouseID string, limit, offset int) ([]*entity.StockLevel, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if warehouseID != "" {
		if err := uc.ownedWarehouse(companyID, warehouseID); err != nil {
			return nil, err
		}
	}
	return uc.stockRepo.ListByCompany(companyID, warehouseID, limit, offset)
}

// ListMovements lista el kardex de un producto o una bodega en un rango de fechas.
func (uc *UseCase) ListMovements(ctx context.Context, companyID, productID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	switch {
	case productID != "":
		if _, err := uc.ownedProduct(companyID, productID); err != nil {
			return nil, err
		}
		return uc.movementRepo.ListByProduct(companyID, productID, from, to, limit, offset)
	case warehouseID != "":
		if err := uc.ownedWarehouse(companyID, warehouseID); err != nil {
			return nil, err
		}
		return uc.movementRepo.ListByWarehouse(companyID, warehouseID, from, to, limit, offset)
	default:
		return nil, domain.ErrInvalidInput
	}
}

// AuditResult resultado de la auditoría kardex-vs-cache de un par (producto, bodega).
type AuditResult struct {
	ProductID    string
	WarehouseID  string
	LedgerTotal  decimal.Decimal
	CachedOnHand decimal.Decimal
	Consistent   bool
	Movements    int
}

// AuditPair reconstruye el saldo desde el kardex y lo compara con la fila
// materializada. Con el motor sano los dos valores coinciden siempre: cualquier
// diferencia indica una escritura de stock que evadió PostMovement.
func (uc *UseCase) AuditPair(ctx context.Context, companyID, productID, warehouseID string) (*AuditResult, error) {
	if _, err := uc.ownedProduct(companyID, productID); err != nil {
		return nil, err
	}
	if err := uc.ownedWarehouse(companyID, warehouseID); err != nil {
		return nil, err
	}
	movements, err := uc.movementRepo.ListByPair(companyID, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	level, err := uc.stockRepo.Get(companyID, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	total := inventory.Replay(movements)
	return &AuditResult{
		ProductID:    productID,
		WarehouseID:  warehouseID,
		LedgerTotal:  total,
		CachedOnHand: level.OnHand,
		Consistent:   total.Equal(level.OnHand),
		Movements:    len(movements),
	}, nil
}

func (uc *UseCase) ownedProduct(companyID, productID string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, &domain.CrossTenantError{Entity: "product", EntityID: productID, CompanyID: companyID}
	}
	return product, nil
}

func (uc *UseCase) ownedWarehouse(companyID, warehouseID string) error {
	wh, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return err
	}
	if wh == nil {
		return domain.ErrNotFound
	}
	if wh.CompanyID != companyID {
		return &domain.CrossTenantError{Entity: "warehouse", EntityID: warehouseID, CompanyID: companyID}
	}
	return nil
}

// publishMovement emite el evento post-commit. La publicación nunca afecta la
// operación ya confirmada.
func (uc *UseCase) publishMovement(ctx context.Context, mov *entity.Movement) {
	_ = uc.publisher.Publish(ctx, event.TypeMovementRecorded, mov.ProductID, event.MovementRecorded{
		CompanyID:   mov.CompanyID,
		MovementID:  mov.ID,
		ProductID:   mov.ProductID,
		WarehouseID: mov.WarehouseID,
		Type:        mov.Type,
		Quantity:    mov.Quantity,
		RefType:     mov.Reference.RefType,
		RefID:       mov.Reference.RefID,
		OccurredAt:  mov.CreatedAt,
	})
}

func (uc *UseCase) checkLowStock(ctx context.Context, product *entity.Product, level *entity.StockLevel, now time.Time) {
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
