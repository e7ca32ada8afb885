package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL (usable
// con pool o tx). Cabecera en transfers, líneas en transfer_lines.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create persiste el traslado con sus líneas. Number único por empresa.
func (r *TransferRepo) Create(transfer *entity.Transfer) error {
	if transfer.ID == "" {
		transfer.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transfers (id, company_id, from_warehouse_id, to_warehouse_id, number, status, notes, sent_at, completed_at, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.CompanyID, transfer.FromWarehouseID, transfer.ToWarehouseID,
		transfer.Number, transfer.Status, nullable(transfer.Notes), transfer.SentAt,
		transfer.CompletedAt, transfer.CreatedAt, transfer.UpdatedAt, transfer.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create transfer: %w", err)
	}
	for _, line := range transfer.Lines {
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		lineQuery := `
			INSERT INTO transfer_lines (id, transfer_id, product_id, quantity)
			VALUES ($1, $2, $3, $4)`
		if _, err := r.q.Exec(context.Background(), lineQuery,
			line.ID, transfer.ID, line.ProductID, line.Quantity,
		); err != nil {
			return fmt.Errorf("create transfer line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el traslado con sus líneas.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	return r.get(id, "")
}

// GetByIDForUpdate obtiene el traslado bloqueando la cabecera (SELECT FOR UPDATE).
func (r *TransferRepo) GetByIDForUpdate(id string) (*entity.Transfer, error) {
	return r.get(id, " FOR UPDATE")
}

func (r *TransferRepo) get(id, suffix string) (*entity.Transfer, error) {
	query := `
		SELECT id, company_id, from_warehouse_id, to_warehouse_id, number, status, notes, sent_at, completed_at, created_at, updated_at, created_by
		FROM transfers WHERE id = $1` + suffix
	var tr entity.Transfer
	var notes *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&tr.ID, &tr.CompanyID, &tr.FromWarehouseID, &tr.ToWarehouseID, &tr.Number,
		&tr.Status, &notes, &tr.SentAt, &tr.CompletedAt, &tr.CreatedAt, &tr.UpdatedAt, &tr.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	tr.Notes = deref(notes)
	if err := r.loadLines(&tr); err != nil {
		return nil, err
	}
	return &tr, nil
}

func (r *TransferRepo) loadLines(tr *entity.Transfer) error {
	query := `
		SELECT id, transfer_id, product_id, quantity
		FROM transfer_lines WHERE transfer_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, tr.ID)
	if err != nil {
		return fmt.Errorf("load transfer lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.TransferLine
		if err := rows.Scan(&l.ID, &l.TransferID, &l.ProductID, &l.Quantity); err != nil {
			return fmt.Errorf("scan transfer line: %w", err)
		}
		tr.Lines = append(tr.Lines, &l)
	}
	return rows.Err()
}

// UpdateStatus muta el estado; at alimenta sent_at o completed_at según el
// estado destino.
func (r *TransferRepo) UpdateStatus(transferID, status string, at time.Time) error {
	var query string
	switch status {
	case entity.TransferStatusInTransit:
		query = `UPDATE transfers SET status = $2, sent_at = $3, updated_at = $3 WHERE id = $1`
	case entity.TransferStatusCompleted:
		query = `UPDATE transfers SET status = $2, completed_at = $3, updated_at = $3 WHERE id = $1`
	default:
		query = `UPDATE transfers SET status = $2, updated_at = $3 WHERE id = $1`
	}
	_, err := r.q.Exec(context.Background(), query, transferID, status, at)
	if err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}
	return nil
}

// ListByCompany lista traslados de la empresa, opcionalmente por estado, con
// líneas incluidas.
func (r *TransferRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.Transfer, error) {
	query := `
		SELECT id, company_id, from_warehouse_id, to_warehouse_id, number, status, notes, sent_at, completed_at, created_at, updated_at, created_by
		FROM transfers WHERE company_id = $1`
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
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		var tr entity.Transfer
		var notes *string
		if err := rows.Scan(&tr.ID, &tr.CompanyID, &tr.FromWarehouseID, &tr.ToWarehouseID, &tr.Number,
			&tr.Status, &notes, &tr.SentAt, &tr.CompletedAt, &tr.CreatedAt, &tr.UpdatedAt, &tr.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		tr.Notes = deref(notes)
		list = append(list, &tr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, tr := range list {
		if err := r.loadLines(tr); err != nil {
			return nil, err
		}
	}
	return list, nil
}
