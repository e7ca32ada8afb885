package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario (multi-bodega).
// Price y Cost son punteros denormalizados a la última entrada de PriceHistory
// de cada tipo; Cost es promedio ponderado recalculado tras cada recepción.
// El stock se lleva por bodega en StockLevel, nunca aquí.
type Product struct {
	ID           string
	CompanyID    string
	SKU          string // código único por empresa
	Name         string
	Description  string
	Price        decimal.Decimal // precio de venta vigente
	Cost         decimal.Decimal // costo promedio ponderado vigente
	ReorderPoint decimal.Decimal // umbral para alerta de stock bajo (0 = sin alerta)
	UnitMeasure  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
