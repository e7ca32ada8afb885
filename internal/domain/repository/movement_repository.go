package repository

import (
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del kardex.
// La tabla es append-only: solo Create; nunca update ni delete.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	ListByProduct(companyID, productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	ListByWarehouse(companyID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	// ListByPair devuelve todos los movimientos de un (producto, bodega) en
	// orden de inserción, para reconstruir el saldo en auditoría.
	ListByPair(companyID, productID, warehouseID string) ([]*entity.Movement, error)
}
