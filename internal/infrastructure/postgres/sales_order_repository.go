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

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

// SalesOrderRepo implementación de SalesOrderRepository sobre PostgreSQL
// (usable con pool o tx). Cabecera en sales_orders, líneas en sales_order_lines.
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

// Create persiste la orden con sus líneas. Number único por empresa.
func (r *SalesOrderRepo) Create(order *entity.SalesOrder) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sales_orders (id, company_id, warehouse_id, number, customer_name, status, notes, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.CompanyID, order.WarehouseID, order.Number, order.CustomerName,
		order.Status, nullable(order.Notes), order.CreatedAt, order.UpdatedAt, order.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create sales order: %w", err)
	}
	for _, line := range order.Lines {
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		lineQuery := `
			INSERT INTO sales_order_lines (id, order_id, product_id, ordered_qty, fulfilled_qty, unit_price)
			VALUES ($1, $2, $3, $4, $5, $6)`
		if _, err := r.q.Exec(context.Background(), lineQuery,
			line.ID, order.ID, line.ProductID, line.OrderedQty, line.FulfilledQty, line.UnitPrice,
		); err != nil {
			return fmt.Errorf("create sales order line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus líneas.
func (r *SalesOrderRepo) GetByID(id string) (*entity.SalesOrder, error) {
	return r.get(id, "")
}

// GetByIDForUpdate obtiene la orden bloqueando la cabecera (SELECT FOR UPDATE).
func (r *SalesOrderRepo) GetByIDForUpdate(id string) (*entity.SalesOrder, error) {
	return r.get(id, " FOR UPDATE")
}

func (r *SalesOrderRepo) get(id, suffix string) (*entity.SalesOrder, error) {
	query := `
		SELECT id, company_id, warehouse_id, number, customer_name, status, notes, created_at, updated_at, created_by
		FROM sales_orders WHERE id = $1` + suffix
	var so entity.SalesOrder
	var notes *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&so.ID, &so.CompanyID, &so.WarehouseID, &so.Number, &so.CustomerName,
		&so.Status, &notes, &so.CreatedAt, &so.UpdatedAt, &so.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order: %w", err)
	}
	so.Notes = deref(notes)
	if err := r.loadLines(&so); err != nil {
		return nil, err
	}
	return &so, nil
}

func (r *SalesOrderRepo) loadLines(so *entity.SalesOrder) error {
	query := `
		SELECT id, order_id, product_id, ordered_qty, fulfilled_qty, unit_price
		FROM sales_order_lines WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, so.ID)
	if err != nil {
		return fmt.Errorf("load sales order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.SalesOrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.OrderedQty, &l.FulfilledQty, &l.UnitPrice); err != nil {
			return fmt.Errorf("scan sales order line: %w", err)
		}
		so.Lines = append(so.Lines, &l)
	}
	return rows.Err()
}

// UpdateStatus muta el estado de la orden.
func (r *SalesOrderRepo) UpdateStatus(orderID, status string) error {
	query := `UPDATE sales_orders SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, orderID, status)
	if err != nil {
		return fmt.Errorf("update sales order status: %w", err)
	}
	return nil
}

// UpdateLineFulfilled fija la cantidad despachada acumulada de la línea.
func (r *SalesOrderRepo) UpdateLineFulfilled(lineID string, fulfilled decimal.Decimal) error {
	query := `UPDATE sales_order_lines SET fulfilled_qty = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, lineID, fulfilled)
	if err != nil {
		return fmt.Errorf("update sales order line: %w", err)
	}
	return nil
}

// ListByCompany lista órdenes de la empresa, opcionalmente por estado, con
// líneas incluidas.
func (r *SalesOrderRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.SalesOrder, error) {
	query := `
		SELECT id, company_id, warehouse_id, number, customer_name, status, notes, created_at, updated_at, created_by
		FROM sales_orders WHERE company_id = $1`
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
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesOrder
	for rows.Next() {
		var so entity.SalesOrder
		var notes *string
		if err := rows.Scan(&so.ID, &so.CompanyID, &so.WarehouseID, &so.Number, &so.CustomerName,
			&so.Status, &notes, &so.CreatedAt, &so.UpdatedAt, &so.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan sales order: %w", err)
		}
		so.Notes = deref(notes)
		list = append(list, &so)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, so := range list {
		if err := r.loadLines(so); err != nil {
			return nil, err
		}
	}
	return list, nil
}
