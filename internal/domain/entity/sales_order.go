package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de venta.
// DRAFT -> CONFIRMED -> FULFILLED -> INVOICED; CANCELLED desde estados no terminales.
const (
	SalesStatusDraft     = "DRAFT"
	SalesStatusConfirmed = "CONFIRMED"
	SalesStatusFulfilled = "FULFILLED"
	SalesStatusInvoiced  = "INVOICED"
	SalesStatusCancelled = "CANCELLED"
)

// SalesOrder es una orden de venta. Al confirmar se reserva stock (Allocated);
// al despachar se consume la reserva y se registra la salida en el kardex.
type SalesOrder struct {
	ID           string
	CompanyID    string
	WarehouseID  string // bodega de despacho
	Number       string
	CustomerName string
	Status       string
	Lines        []*SalesOrderLine
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CreatedBy    string
}

// SalesOrderLine es una línea de la orden. Invariante: FulfilledQty <= OrderedQty.
type SalesOrderLine struct {
	ID           string
	OrderID      string
	ProductID    string
	OrderedQty   decimal.Decimal
	FulfilledQty decimal.Decimal
	UnitPrice    decimal.Decimal
}
