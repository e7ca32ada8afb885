package repository

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia de órdenes de compra.
// El status es una columna enum cerrada que solo muta la máquina de estados.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	GetByIDForUpdate(id string) (*entity.PurchaseOrder, error)
	UpdateStatus(orderID, status string) error
	UpdateLineReceived(lineID string, received decimal.Decimal) error
	ListByCompany(companyID, status string, limit, offset int) ([]*entity.PurchaseOrder, error)
}
