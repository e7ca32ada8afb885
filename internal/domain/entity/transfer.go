package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un traslado entre bodegas.
// DRAFT -> IN_TRANSIT -> COMPLETED; CANCELLED desde DRAFT/IN_TRANSIT.
// Entre Send y Complete el stock está "en tránsito": debitado en origen y aún
// no acreditado en destino.
const (
	TransferStatusDraft     = "DRAFT"
	TransferStatusInTransit = "IN_TRANSIT"
	TransferStatusCompleted = "COMPLETED"
	TransferStatusCancelled = "CANCELLED"
)

// Transfer es un traslado de stock entre dos bodegas de la misma empresa.
// FromWarehouseID y ToWarehouseID deben ser distintas (validado al crear).
type Transfer struct {
	ID              string
	CompanyID       string
	FromWarehouseID string
	ToWarehouseID   string
	Number          string
	Status          string
	Lines           []*TransferLine
	Notes           string
	SentAt          *time.Time
	CompletedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CreatedBy       string
}

// TransferLine es una línea del traslado. La cantidad debitada en origen al
// enviar es exactamente la acreditada en destino al completar.
type TransferLine struct {
	ID         string
	TransferID string
	ProductID  string
	Quantity   decimal.Decimal
}
