package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del kardex. El tipo implica el signo aplicado al stock:
// IN / TRANSFER_IN / ADJUSTMENT_IN suman, OUT / TRANSFER_OUT / ADJUSTMENT_OUT restan.
const (
	MovementTypeIN            = "IN"
	MovementTypeOUT           = "OUT"
	MovementTypeTransferIn    = "TRANSFER_IN"
	MovementTypeTransferOut   = "TRANSFER_OUT"
	MovementTypeAdjustmentIn  = "ADJUSTMENT_IN"
	MovementTypeAdjustmentOut = "ADJUSTMENT_OUT"
)

// Tipos de referencia del movimiento (unión cerrada): documento que lo originó.
const (
	RefPurchaseOrder = "PURCHASE_ORDER"
	RefSalesOrder    = "SALES_ORDER"
	RefTransfer      = "TRANSFER"
	RefAdjustment    = "ADJUSTMENT"
	RefInitialStock  = "INITIAL_STOCK"
	RefManual        = "MANUAL"
)

// Razones de ajuste de inventario (enumeración cerrada, solo para reporting).
const (
	AdjustReasonDamage = "damage"
	AdjustReasonLoss   = "loss"
	AdjustReasonFound  = "found"
	AdjustReasonAudit  = "audit"
	AdjustReasonExpiry = "expiry"
	AdjustReasonOther  = "other"
)

// MovementReference identifica el documento que causó un movimiento.
// RefType es uno de los Ref* anteriores; RefID es vacío solo para MANUAL/INITIAL_STOCK.
type MovementReference struct {
	RefType string
	RefID   string
}

// Movement es una entrada inmutable del kardex: el hecho de que una cantidad
// entró o salió de una bodega. Nunca se edita ni se borra; las correcciones se
// hacen con un movimiento compensatorio en sentido contrario.
type Movement struct {
	ID          string
	CompanyID   string
	ProductID   string
	WarehouseID string
	BatchID     string // opcional: lote afectado (entradas de compra)
	Type        string
	Quantity    decimal.Decimal // con signo: positivo entrada, negativo salida
	UnitCost    decimal.Decimal
	TotalCost   decimal.Decimal
	Reference   MovementReference
	Reason      string // solo ADJUSTMENT_IN/OUT
	Notes       string
	CreatedAt   time.Time
	CreatedBy   string
}

// IsInbound indica si el tipo suma stock.
func IsInbound(movementType string) bool {
	switch movementType {
	case MovementTypeIN, MovementTypeTransferIn, MovementTypeAdjustmentIn:
		return true
	}
	return false
}

// ValidMovementType valida el tipo contra la enumeración cerrada.
func ValidMovementType(movementType string) bool {
	switch movementType {
	case MovementTypeIN, MovementTypeOUT,
		MovementTypeTransferIn, MovementTypeTransferOut,
		MovementTypeAdjustmentIn, MovementTypeAdjustmentOut:
		return true
	}
	return false
}

// ValidAdjustReason valida la razón de ajuste contra la enumeración cerrada.
func ValidAdjustReason(reason string) bool {
	switch reason {
	case AdjustReasonDamage, AdjustReasonLoss, AdjustReasonFound,
		AdjustReasonAudit, AdjustReasonExpiry, AdjustReasonOther:
		return true
	}
	return false
}
