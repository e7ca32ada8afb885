package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implementación de StockLevelRepository sobre PostgreSQL
// (usable con pool o tx). La fila (company, product, warehouse) es la unidad de
// bloqueo de todo el motor.
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

const stockColumns = `company_id, product_id, warehouse_id, on_hand, allocated, available, unit_cost, updated_at`

// Get obtiene el nivel de stock; si la fila no existe aún devuelve el nivel en cero.
func (r *StockLevelRepo) Get(companyID, productID, warehouseID string) (*entity.StockLevel, error) {
	return r.get(companyID, productID, warehouseID, "")
}

// GetForUpdate obtiene el nivel y bloquea la fila (SELECT FOR UPDATE).
// El bloqueo serializa los movimientos concurrentes del mismo par.
// Para el primer movimiento del par todavía no hay fila y un FOR UPDATE solo
// no serializa nada: dos transacciones leerían el nivel en cero y la segunda
// pisaría el upsert de la primera. Por eso primero se materializa la fila en
// cero (ON CONFLICT DO NOTHING bloquea hasta que el insert rival confirme) y
// después se lee bloqueando.
func (r *StockLevelRepo) GetForUpdate(companyID, productID, warehouseID string) (*entity.StockLevel, error) {
	zero := entity.NewStockLevel(companyID, productID, warehouseID)
	zero.UpdatedAt = time.Now()
	insert := `
		INSERT INTO stock_levels (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (company_id, product_id, warehouse_id) DO NOTHING`
	_, err := r.q.Exec(context.Background(), insert,
		zero.CompanyID, zero.ProductID, zero.WarehouseID, zero.OnHand,
		zero.Allocated, zero.Available, zero.UnitCost, zero.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("materialize stock level: %w", err)
	}
	return r.get(companyID, productID, warehouseID, " FOR UPDATE")
}

func (r *StockLevelRepo) get(companyID, productID, warehouseID, suffix string) (*entity.StockLevel, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_levels
		WHERE company_id = $1 AND product_id = $2 AND warehouse_id = $3` + suffix
	var s entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, companyID, productID, warehouseID).Scan(
		&s.CompanyID, &s.ProductID, &s.WarehouseID, &s.OnHand, &s.Allocated,
		&s.Available, &s.UnitCost, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.NewStockLevel(companyID, productID, warehouseID), nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza el nivel de stock del par (producto, bodega).
func (r *StockLevelRepo) Upsert(level *entity.StockLevel) error {
	query := `
		INSERT INTO stock_levels (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (company_id, product_id, warehouse_id)
		DO UPDATE SET on_hand = EXCLUDED.on_hand, allocated = EXCLUDED.allocated,
			available = EXCLUDED.available, unit_cost = EXCLUDED.unit_cost,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		level.CompanyID, level.ProductID, level.WarehouseID, level.OnHand,
		level.Allocated, level.Available, level.UnitCost, level.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stock level: %w", err)
	}
	return nil
}

// ListByCompany lista niveles de stock de la empresa, opcionalmente por bodega.
func (r *StockLevelRepo) ListByCompany(companyID, warehouseID string, limit, offset int) ([]*entity.StockLevel, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_levels WHERE company_id = $1`
	args := []any{companyID}
	pos := 2
	if warehouseID != "" {
		query += fmt.Sprintf(" AND warehouse_id = $%d", pos)
		args = append(args, warehouseID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY product_id, warehouse_id LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLevel
	for rows.Next() {
		var s entity.StockLevel
		if err := rows.Scan(&s.CompanyID, &s.ProductID, &s.WarehouseID, &s.OnHand,
			&s.Allocated, &s.Available, &s.UnitCost, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListBelowReorderPoint devuelve los productos cuyo stock quedó en o bajo su
// punto de reorden, con el contexto del producto para el reporte de reposición.
// warehouseID vacío agrega el stock de toda la empresa por producto.
func (r *StockLevelRepo) ListBelowReorderPoint(companyID, warehouseID string) ([]repository.ReorderItem, error) {
	var query string
	args := []any{companyID}
	if warehouseID != "" {
		query = `
			SELECT p.id, p.sku, p.name, s.warehouse_id, s.on_hand, p.reorder_point, p.cost, p.price
			FROM stock_levels s
			JOIN products p ON p.id = s.product_id
			WHERE s.company_id = $1 AND s.warehouse_id = $2
			  AND p.reorder_point > 0 AND s.on_hand <= p.reorder_point`
		args = append(args, warehouseID)
	} else {
		query = `
			SELECT p.id, p.sku, p.name, '' AS warehouse_id, COALESCE(SUM(s.on_hand), 0), p.reorder_point, p.cost, p.price
			FROM products p
			LEFT JOIN stock_levels s ON s.product_id = p.id
			WHERE p.company_id = $1 AND p.reorder_point > 0
			GROUP BY p.id, p.sku, p.name, p.reorder_point, p.cost, p.price
			HAVING COALESCE(SUM(s.on_hand), 0) <= p.reorder_point`
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list below reorder point: %w", err)
	}
	defer rows.Close()
	var list []repository.ReorderItem
	for rows.Next() {
		var item repository.ReorderItem
		if err := rows.Scan(&item.ProductID, &item.SKU, &item.ProductName, &item.WarehouseID,
			&item.CurrentStock, &item.ReorderPoint, &item.UnitCost, &item.Price); err != nil {
			return nil, fmt.Errorf("scan reorder item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}
