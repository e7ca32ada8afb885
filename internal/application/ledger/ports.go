package ledger

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
// Todo lo que una operación del motor toque (kardex, stock, lotes, documento,
// recepciones, precios) vive en la misma transacción: o se confirma todo o nada.
type TxRepos struct {
	Movements      repository.MovementRepository
	Stock          repository.StockLevelRepository
	Batches        repository.BatchRepository
	Products       repository.ProductRepository
	PurchaseOrders repository.PurchaseOrderRepository
	SalesOrders    repository.SalesOrderRepository
	Transfers      repository.TransferRepository
	Receipts       repository.ReceiptRepository
	Prices         repository.PriceHistoryRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la frontera de consistencia del motor:
// chequeos de precondición, inserts del kardex, upserts de stock y cambio de
// estado del documento comparten Commit/Rollback.
// El unit-of-work es explícito: las operaciones ...InTx reciben el TxRepos de
// un caller que ya abrió transacción; las variantes públicas la abren aquí.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
