package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt es el registro inmutable de una recepción física contra una orden de
// compra: exactamente lo que entró en ese evento de recepción. Nunca se edita.
type Receipt struct {
	ID              string
	CompanyID       string
	PurchaseOrderID string
	WarehouseID     string
	Lines           []*ReceiptLine
	ReceivedAt      time.Time
	ReceivedBy      string
}

// ReceiptLine es una línea de la recepción (producto, cantidad y costo recibidos).
type ReceiptLine struct {
	ID        string
	ReceiptID string
	ProductID string
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
}
