package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del kardex sobre PostgreSQL (usable con pool o tx).
// La tabla movements es append-only; no hay Update ni Delete.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, company_id, product_id, warehouse_id, batch_id, type, quantity, unit_cost, total_cost, ref_type, ref_id, reason, notes, created_at, created_by`

// Create persiste una entrada del kardex.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.CompanyID, movement.ProductID, movement.WarehouseID,
		nullable(movement.BatchID), movement.Type, movement.Quantity, movement.UnitCost,
		movement.TotalCost, movement.Reference.RefType, nullable(movement.Reference.RefID),
		nullable(movement.Reason), nullable(movement.Notes), movement.CreatedAt, movement.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// ListByProduct lista movimientos de un producto en un rango de fechas,
// más reciente primero.
func (r *MovementRepo) ListByProduct(companyID, productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE company_id = $1 AND product_id = $2`
	return r.list(query, []any{companyID, productID}, from, to, limit, offset)
}

// ListByWarehouse lista movimientos de una bodega en un rango de fechas,
// más reciente primero.
func (r *MovementRepo) ListByWarehouse(companyID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE company_id = $1 AND warehouse_id = $2`
	return r.list(query, []any{companyID, warehouseID}, from, to, limit, offset)
}

// ListByPair devuelve todos los movimientos de un (producto, bodega) en orden
// de inserción, para reconstruir el saldo en auditoría.
func (r *MovementRepo) ListByPair(companyID, productID, warehouseID string) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE company_id = $1 AND product_id = $2 AND warehouse_id = $3
		ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, companyID, productID, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list by pair: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

func (r *MovementRepo) list(query string, args []any, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	pos := len(args) + 1
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var batchID, refID, reason, notes *string
	err := row.Scan(
		&m.ID, &m.CompanyID, &m.ProductID, &m.WarehouseID, &batchID, &m.Type,
		&m.Quantity, &m.UnitCost, &m.TotalCost, &m.Reference.RefType, &refID,
		&reason, &notes, &m.CreatedAt, &m.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	m.BatchID = deref(batchID)
	m.Reference.RefID = deref(refID)
	m.Reason = deref(reason)
	m.Notes = deref(notes)
	return &m, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
