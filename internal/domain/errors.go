package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas). Los handlers hacen el switch
// con errors.Is sobre estos centinelas; los tipos estructurados de abajo los
// envuelven para llevar el detalle diagnóstico.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrOverReceipt        = errors.New("cantidad recibida excede la ordenada")
	ErrOverFulfillment    = errors.New("cantidad despachada excede la ordenada")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
)

// InsufficientStockError: la operación dejaría el stock en negativo.
// Lleva cantidades actual/solicitada/resultante para diagnóstico; nunca se
// recorta silenciosamente la cantidad.
type InsufficientStockError struct {
	ProductID   string
	WarehouseID string
	Current     decimal.Decimal
	Requested   decimal.Decimal
	Resulting   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s en bodega %s: actual=%s solicitado=%s resultante=%s",
		e.ProductID, e.WarehouseID, e.Current, e.Requested, e.Resulting)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// InvalidTransitionError: operación sobre un documento en un estado que no la permite.
type InvalidTransitionError struct {
	Document  string // purchase_order, sales_order, transfer
	Current   string
	Attempted string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s en estado %s no permite la operación %s", e.Document, e.Current, e.Attempted)
}

func (e *InvalidTransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// OverReceiptError: una línea de compra quedaría con recibido > ordenado.
type OverReceiptError struct {
	LineID    string
	ProductID string
	Ordered   decimal.Decimal
	Received  decimal.Decimal
	Incoming  decimal.Decimal
}

func (e *OverReceiptError) Error() string {
	return fmt.Sprintf("línea %s (producto %s): recibido %s + entrante %s excede lo ordenado %s",
		e.LineID, e.ProductID, e.Received, e.Incoming, e.Ordered)
}

func (e *OverReceiptError) Is(target error) bool { return target == ErrOverReceipt }

// OverFulfillmentError: una línea de venta quedaría con despachado > ordenado.
type OverFulfillmentError struct {
	LineID    string
	ProductID string
	Ordered   decimal.Decimal
	Fulfilled decimal.Decimal
	Incoming  decimal.Decimal
}

func (e *OverFulfillmentError) Error() string {
	return fmt.Sprintf("línea %s (producto %s): despachado %s + entrante %s excede lo ordenado %s",
		e.LineID, e.ProductID, e.Fulfilled, e.Incoming, e.Ordered)
}

func (e *OverFulfillmentError) Is(target error) bool { return target == ErrOverFulfillment }

// CrossTenantError: la entidad referenciada no pertenece a la empresa del
// caller. Se trata como falla de seguridad (403), no como validación normal.
type CrossTenantError struct {
	Entity    string
	EntityID  string
	CompanyID string
}

func (e *CrossTenantError) Error() string {
	return fmt.Sprintf("%s %s no pertenece a la empresa %s", e.Entity, e.EntityID, e.CompanyID)
}

func (e *CrossTenantError) Is(target error) bool { return target == ErrForbidden }
