package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
// DRAFT -> SENT -> PARTIALLY_RECEIVED -> COMPLETED; CANCELLED desde DRAFT/SENT.
const (
	PurchaseStatusDraft             = "DRAFT"
	PurchaseStatusSent              = "SENT"
	PurchaseStatusPartiallyReceived = "PARTIALLY_RECEIVED"
	PurchaseStatusCompleted         = "COMPLETED"
	PurchaseStatusCancelled         = "CANCELLED"
)

// PurchaseOrder es una orden de compra a proveedor. El estado se deriva de las
// líneas (DerivePurchaseStatus), nunca se asigna arbitrariamente.
type PurchaseOrder struct {
	ID           string
	CompanyID    string
	WarehouseID  string // bodega de recepción
	Number       string
	SupplierName string
	Status       string
	Lines        []*PurchaseOrderLine
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CreatedBy    string
}

// PurchaseOrderLine es una línea de la orden. Invariante: ReceivedQty <= OrderedQty.
type PurchaseOrderLine struct {
	ID          string
	OrderID     string
	ProductID   string
	OrderedQty  decimal.Decimal
	ReceivedQty decimal.Decimal
	UnitCost    decimal.Decimal
}

// PendingQty devuelve la cantidad aún no recibida de la línea.
func (l *PurchaseOrderLine) PendingQty() decimal.Decimal {
	return l.OrderedQty.Sub(l.ReceivedQty)
}
