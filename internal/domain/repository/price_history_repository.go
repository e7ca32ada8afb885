package repository

import "github.com/jhoicas/Kardex-api/internal/domain/entity"

// PriceHistoryRepository define el puerto del historial de precios (append-only).
type PriceHistoryRepository interface {
	Create(entry *entity.PriceHistory) error
	ListByProduct(companyID, productID, priceType string, limit, offset int) ([]*entity.PriceHistory, error)
}
