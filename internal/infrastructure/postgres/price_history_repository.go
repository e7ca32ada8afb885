package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.PriceHistoryRepository = (*PriceHistoryRepo)(nil)

// PriceHistoryRepo implementación de PriceHistoryRepository sobre PostgreSQL
// (usable con pool o tx). Append-only.
type PriceHistoryRepo struct {
	q Querier
}

// NewPriceHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceHistoryRepository(q Querier) *PriceHistoryRepo {
	return &PriceHistoryRepo{q: q}
}

// Create persiste una entrada del historial de precios.
func (r *PriceHistoryRepo) Create(entry *entity.PriceHistory) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO price_history (id, company_id, product_id, price_type, price, effective_at, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.CompanyID, entry.ProductID, entry.PriceType, entry.Price,
		entry.EffectiveAt, entry.CreatedAt, entry.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create price history: %w", err)
	}
	return nil
}

// ListByProduct lista el historial de un producto, más reciente primero.
// priceType vacío devuelve SELLING y COST mezclados.
func (r *PriceHistoryRepo) ListByProduct(companyID, productID, priceType string, limit, offset int) ([]*entity.PriceHistory, error) {
	query := `
		SELECT id, company_id, product_id, price_type, price, effective_at, created_at, created_by
		FROM price_history WHERE company_id = $1 AND product_id = $2`
	args := []any{companyID, productID}
	pos := 3
	if priceType != "" {
		query += fmt.Sprintf(" AND price_type = $%d", pos)
		args = append(args, priceType)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY effective_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list price history: %w", err)
	}
	defer rows.Close()
	var list []*entity.PriceHistory
	for rows.Next() {
		var e entity.PriceHistory
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.ProductID, &e.PriceType, &e.Price,
			&e.EffectiveAt, &e.CreatedAt, &e.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan price history: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
