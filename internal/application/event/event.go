package event

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de evento de dominio emitidos por el motor (consumidos por dashboards
// y alertas fuera de este servicio). Se publican después del Commit: un evento
// nunca describe un estado que no quedó persistido.
const (
	TypeMovementRecorded   = "movement.recorded"
	TypeLowStockReached    = "stock.low"
	TypeOrderStatusChanged = "order.status_changed"
)

// Publisher es el puerto de publicación de eventos de dominio.
type Publisher interface {
	Publish(ctx context.Context, eventType, key string, payload any) error
	Close() error
}

// MovementRecorded se emite por cada movimiento confirmado en el kardex.
type MovementRecorded struct {
	CompanyID   string          `json:"company_id"`
	MovementID  string          `json:"movement_id"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	RefType     string          `json:"ref_type"`
	RefID       string          `json:"ref_id,omitempty"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// LowStockReached se emite cuando una salida deja un producto en o bajo su
// punto de reorden.
type LowStockReached struct {
	CompanyID    string          `json:"company_id"`
	ProductID    string          `json:"product_id"`
	WarehouseID  string          `json:"warehouse_id"`
	OnHand       decimal.Decimal `json:"on_hand"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

// OrderStatusChanged se emite cuando una máquina de estados muta un documento.
type OrderStatusChanged struct {
	CompanyID  string    `json:"company_id"`
	Document   string    `json:"document"` // purchase_order, sales_order, transfer
	OrderID    string    `json:"order_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Nop es un publisher nulo para entornos sin broker configurado (y tests).
type Nop struct{}

func (Nop) Publish(context.Context, string, string, any) error { return nil }
func (Nop) Close() error                                       { return nil }
