package repository

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// BatchRepository define el puerto de los lotes de recepción.
// Los lotes nunca se borran; su cantidad restante baja hasta cero.
type BatchRepository interface {
	Create(batch *entity.Batch) error
	// ListActiveByProduct devuelve los lotes con cantidad restante > 0 en
	// orden de recepción (para FIFO y promedio ponderado).
	ListActiveByProduct(companyID, productID string) ([]*entity.Batch, error)
	// ListActiveByProductForUpdate bloquea los lotes (SELECT FOR UPDATE) para
	// consumirlos dentro de la transacción de la salida.
	ListActiveByProductForUpdate(companyID, productID string) ([]*entity.Batch, error)
	UpdateRemaining(batchID string, remaining decimal.Decimal) error
}
