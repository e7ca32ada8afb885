package repository

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// SalesOrderRepository define el puerto de persistencia de órdenes de venta.
type SalesOrderRepository interface {
	Create(order *entity.SalesOrder) error
	GetByID(id string) (*entity.SalesOrder, error)
	GetByIDForUpdate(id string) (*entity.SalesOrder, error)
	UpdateStatus(orderID, status string) error
	UpdateLineFulfilled(lineID string, fulfilled decimal.Decimal) error
	ListByCompany(companyID, status string, limit, offset int) ([]*entity.SalesOrder, error)
}
