package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Kardex-api/internal/application/ledger"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Es la
// materialización de la frontera de consistencia: todos los repos que recibe
// el callback comparten la misma tx y por tanto el mismo Commit/Rollback.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback según el error del callback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ledger.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := ledger.TxRepos{
		Movements:      NewMovementRepository(tx),
		Stock:          NewStockLevelRepository(tx),
		Batches:        NewBatchRepository(tx),
		Products:       NewProductRepository(tx),
		PurchaseOrders: NewPurchaseOrderRepository(tx),
		SalesOrders:    NewSalesOrderRepository(tx),
		Transfers:      NewTransferRepository(tx),
		Receipts:       NewReceiptRepository(tx),
		Prices:         NewPriceHistoryRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
