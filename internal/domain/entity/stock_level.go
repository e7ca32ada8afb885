package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel es la vista materializada del stock de un producto en una bodega.
// Derivada del kardex: solo se muta como efecto de registrar un Movement, nunca
// directamente. Invariantes: OnHand >= 0 y Available = OnHand - Allocated.
type StockLevel struct {
	CompanyID   string
	ProductID   string
	WarehouseID string
	OnHand      decimal.Decimal // cantidad física en bodega
	Allocated   decimal.Decimal // reservada por órdenes de venta confirmadas
	Available   decimal.Decimal // OnHand - Allocated (vendible)
	UnitCost    decimal.Decimal // costo promedio vigente al último movimiento
	UpdatedAt   time.Time
}

// NewStockLevel crea el nivel en cero para el primer movimiento de un par
// (producto, bodega). La fila se materializa con el upsert de ese movimiento.
func NewStockLevel(companyID, productID, warehouseID string) *StockLevel {
	return &StockLevel{
		CompanyID:   companyID,
		ProductID:   productID,
		WarehouseID: warehouseID,
		OnHand:      decimal.Zero,
		Allocated:   decimal.Zero,
		Available:   decimal.Zero,
		UnitCost:    decimal.Zero,
	}
}
