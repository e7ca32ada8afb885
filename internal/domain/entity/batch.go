package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch es un lote de recepción: cantidad recibida a un costo unitario propio.
// Se crea al recibir una compra (o una entrada manual con costo) y nunca se
// borra; su cantidad restante baja a cero al consumirse por FIFO.
type Batch struct {
	ID           string
	CompanyID    string
	ProductID    string
	UnitCost     decimal.Decimal
	ReceivedQty  decimal.Decimal // cantidad original del lote
	RemainingQty decimal.Decimal // cantidad aún en stock
	ReceivedAt   time.Time
	CreatedAt    time.Time
}
