package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación de BatchRepository sobre PostgreSQL (usable con pool
// o tx). Los lotes nunca se borran: su cantidad restante baja hasta cero.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// Create persiste un lote de recepción nuevo.
func (r *BatchRepo) Create(batch *entity.Batch) error {
	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}
	query := `
		INSERT INTO batches (id, company_id, product_id, unit_cost, received_qty, remaining_qty, received_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.CompanyID, batch.ProductID, batch.UnitCost,
		batch.ReceivedQty, batch.RemainingQty, batch.ReceivedAt, batch.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create batch: %w", err)
	}
	return nil
}

// ListActiveByProduct devuelve los lotes con cantidad restante > 0 en orden de
// recepción (base del FIFO y del promedio ponderado).
func (r *BatchRepo) ListActiveByProduct(companyID, productID string) ([]*entity.Batch, error) {
	return r.listActive(companyID, productID, "")
}

// ListActiveByProductForUpdate igual que ListActiveByProduct pero bloqueando
// las filas (SELECT FOR UPDATE) para consumirlas dentro de la tx de la salida.
func (r *BatchRepo) ListActiveByProductForUpdate(companyID, productID string) ([]*entity.Batch, error) {
	return r.listActive(companyID, productID, " FOR UPDATE")
}

func (r *BatchRepo) listActive(companyID, productID, suffix string) ([]*entity.Batch, error) {
	query := `
		SELECT id, company_id, product_id, unit_cost, received_qty, remaining_qty, received_at, created_at
		FROM batches
		WHERE company_id = $1 AND product_id = $2 AND remaining_qty > 0
		ORDER BY received_at ASC, created_at ASC` + suffix
	rows, err := r.q.Query(context.Background(), query, companyID, productID)
	if err != nil {
		return nil, fmt.Errorf("list active batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Batch
	for rows.Next() {
		var b entity.Batch
		if err := rows.Scan(&b.ID, &b.CompanyID, &b.ProductID, &b.UnitCost,
			&b.ReceivedQty, &b.RemainingQty, &b.ReceivedAt, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// UpdateRemaining fija la cantidad restante del lote tras un consumo FIFO.
func (r *BatchRepo) UpdateRemaining(batchID string, remaining decimal.Decimal) error {
	query := `UPDATE batches SET remaining_qty = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, batchID, remaining)
	if err != nil {
		return fmt.Errorf("update batch remaining: %w", err)
	}
	return nil
}
