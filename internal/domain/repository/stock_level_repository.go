package repository

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// ReorderItem es el resultado del reporte de reposición: producto bajo su
// punto de reorden con el contexto para sugerir el pedido.
type ReorderItem struct {
	ProductID    string
	SKU          string
	ProductName  string
	WarehouseID  string
	CurrentStock decimal.Decimal
	ReorderPoint decimal.Decimal
	UnitCost     decimal.Decimal
	Price        decimal.Decimal
}

// StockLevelRepository define el puerto de la vista materializada de stock.
// La fila (producto, bodega) es la unidad de bloqueo: GetForUpdate la bloquea
// con SELECT FOR UPDATE dentro de la transacción del movimiento.
type StockLevelRepository interface {
	// Get devuelve el nivel; si no existe fila aún, un nivel en cero (el
	// primer movimiento la materializa con Upsert).
	Get(companyID, productID, warehouseID string) (*entity.StockLevel, error)
	GetForUpdate(companyID, productID, warehouseID string) (*entity.StockLevel, error)
	Upsert(level *entity.StockLevel) error
	ListByCompany(companyID, warehouseID string, limit, offset int) ([]*entity.StockLevel, error)
	// ListBelowReorderPoint devuelve los productos cuyo stock quedó bajo su
	// punto de reorden. warehouseID vacío agrega el stock de toda la empresa.
	ListBelowReorderPoint(companyID, warehouseID string) ([]ReorderItem, error)
}
