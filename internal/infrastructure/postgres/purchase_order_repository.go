package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre PostgreSQL
// (usable con pool o tx). Cabecera en purchase_orders, líneas en purchase_order_lines.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste la orden con sus líneas. Number único por empresa.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	query := `
		INSERT INTO purchase_orders (id, company_id, warehouse_id, number, supplier_name, status, notes, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.CompanyID, order.WarehouseID, order.Number, order.SupplierName,
		order.Status, nullable(order.Notes), order.CreatedAt, order.UpdatedAt, order.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create purchase order: %w", err)
	}
	for _, line := range order.Lines {
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		lineQuery := `
			INSERT INTO purchase_order_lines (id, order_id, product_id, ordered_qty, received_qty, unit_cost)
			VALUES ($1, $2, $3, $4, $5, $6)`
		if _, err := r.q.Exec(context.Background(), lineQuery,
			line.ID, order.ID, line.ProductID, line.OrderedQty, line.ReceivedQty, line.UnitCost,
		); err != nil {
			return fmt.Errorf("create purchase order line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus líneas.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	return r.get(id, "")
}

// GetByIDForUpdate obtiene la orden bloqueando la cabecera (SELECT FOR UPDATE).
// Serializa recepciones y transiciones concurrentes sobre la misma orden.
func (r *PurchaseOrderRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.get(id, " FOR UPDATE")
}

func (r *PurchaseOrderRepo) get(id, suffix string) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id, company_id, warehouse_id, number, supplier_name, status, notes, created_at, updated_at, created_by
		FROM purchase_orders WHERE id = $1` + suffix
	var po entity.PurchaseOrder
	var notes *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&po.ID, &po.CompanyID, &po.WarehouseID, &po.Number, &po.SupplierName,
		&po.Status, &notes, &po.CreatedAt, &po.UpdatedAt, &po.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	po.Notes = deref(notes)
	if err := r.loadLines(&po); err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *PurchaseOrderRepo) loadLines(po *entity.PurchaseOrder) error {
	query := `
		SELECT id, order_id, product_id, ordered_qty, received_qty, unit_cost
		FROM purchase_order_lines WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, po.ID)
	if err != nil {
		return fmt.Errorf("load purchase order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.OrderedQty, &l.ReceivedQty, &l.UnitCost); err != nil {
			return fmt.Errorf("scan purchase order line: %w", err)
		}
		po.Lines = append(po.Lines, &l)
	}
	return rows.Err()
}

// UpdateStatus muta el estado de la orden.
func (r *PurchaseOrderRepo) UpdateStatus(orderID, status string) error {
	query := `UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, orderID, status)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	return nil
}

// UpdateLineReceived fija la cantidad recibida acumulada de la línea.
func (r *PurchaseOrderRepo) UpdateLineReceived(lineID string, received decimal.Decimal) error {
	query := `UPDATE purchase_order_lines SET received_qty = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, lineID, received)
	if err != nil {
		return fmt.Errorf("update purchase order line: %w", err)
	}
	return nil
}

// ListByCompany lista órdenes de la empresa, opcionalmente por estado, con
// líneas incluidas.
func (r *PurchaseOrderRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT id, company_id, warehouse_id, number, supplier_name, status, notes, created_at, updated_at, created_by
		FROM purchase_orders WHERE company_id = $1`
	args := []any{companyID}
	pos := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		var po entity.PurchaseOrder
		var notes *string
		if err := rows.Scan(&po.ID, &po.CompanyID, &po.WarehouseID, &po.Number, &po.SupplierName,
			&po.Status, &notes, &po.CreatedAt, &po.UpdatedAt, &po.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		po.Notes = deref(notes)
		list = append(list, &po)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, po := range list {
		if err := r.loadLines(po); err != nil {
			return nil, err
		}
	}
	return list, nil
}
