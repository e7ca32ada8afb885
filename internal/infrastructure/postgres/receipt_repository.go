package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo implementación de ReceiptRepository sobre PostgreSQL (usable con
// pool o tx). Append-only: las recepciones nunca se editan.
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

// Create persiste la recepción con sus líneas.
func (r *ReceiptRepo) Create(receipt *entity.Receipt) error {
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	query := `
		INSERT INTO receipts (id, company_id, purchase_order_id, warehouse_id, received_at, received_by)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		receipt.ID, receipt.CompanyID, receipt.PurchaseOrderID, receipt.WarehouseID,
		receipt.ReceivedAt, receipt.ReceivedBy,
	)
	if err != nil {
		return fmt.Errorf("create receipt: %w", err)
	}
	for _, line := range receipt.Lines {
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		lineQuery := `
			INSERT INTO receipt_lines (id, receipt_id, product_id, quantity, unit_cost)
			VALUES ($1, $2, $3, $4, $5)`
		if _, err := r.q.Exec(context.Background(), lineQuery,
			line.ID, receipt.ID, line.ProductID, line.Quantity, line.UnitCost,
		); err != nil {
			return fmt.Errorf("create receipt line: %w", err)
		}
	}
	return nil
}

// ListByPurchaseOrder lista las recepciones de una orden en orden cronológico.
func (r *ReceiptRepo) ListByPurchaseOrder(orderID string) ([]*entity.Receipt, error) {
	query := `
		SELECT id, company_id, purchase_order_id, warehouse_id, received_at, received_by
		FROM receipts WHERE purchase_order_id = $1 ORDER BY received_at ASC`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Receipt
	for rows.Next() {
		var rc entity.Receipt
		if err := rows.Scan(&rc.ID, &rc.CompanyID, &rc.PurchaseOrderID, &rc.WarehouseID,
			&rc.ReceivedAt, &rc.ReceivedBy); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		list = append(list, &rc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, rc := range list {
		if err := r.loadLines(rc); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *ReceiptRepo) loadLines(rc *entity.Receipt) error {
	query := `
		SELECT id, receipt_id, product_id, quantity, unit_cost
		FROM receipt_lines WHERE receipt_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, rc.ID)
	if err != nil {
		return fmt.Errorf("load receipt lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.ReceiptLine
		if err := rows.Scan(&l.ID, &l.ReceiptID, &l.ProductID, &l.Quantity, &l.UnitCost); err != nil {
			return fmt.Errorf("scan receipt line: %w", err)
		}
		rc.Lines = append(rc.Lines, &l)
	}
	return rows.Err()
}
