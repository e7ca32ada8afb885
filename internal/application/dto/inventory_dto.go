package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// UnitCost es obligatorio en entradas (IN); en salidas se ignora y se usa el
// costo promedio vigente del producto.
type RegisterMovementRequest struct {
	ProductID   string           `json:"product_id" validate:"required,uuid"`
	WarehouseID string           `json:"warehouse_id" validate:"required,uuid"`
	Type        string           `json:"type" validate:"required,oneof=IN OUT"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`
	Initial     bool             `json:"initial,omitempty"`
	Notes       string           `json:"notes,omitempty"`
}

// AdjustStockRequest body para POST /api/inventory/adjustments.
type AdjustStockRequest struct {
	ProductID   string           `json:"product_id" validate:"required,uuid"`
	WarehouseID string           `json:"warehouse_id" validate:"required,uuid"`
	Increase    bool             `json:"increase"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`
	Reason      string           `json:"reason" validate:"required,oneof=damage loss found audit expiry other"`
	Notes       string           `json:"notes,omitempty"`
}

// MovementResponse una entrada del kardex.
type MovementResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	BatchID     string          `json:"batch_id,omitempty"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	RefType     string          `json:"ref_type"`
	RefID       string          `json:"ref_id,omitempty"`
	Reason      string          `json:"reason,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	CreatedBy   string          `json:"created_by"`
}

// MovementFromEntity mapea la entidad de dominio a la respuesta HTTP.
func MovementFromEntity(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		WarehouseID: m.WarehouseID,
		BatchID:     m.BatchID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		UnitCost:    m.UnitCost,
		TotalCost:   m.TotalCost,
		RefType:     m.Reference.RefType,
		RefID:       m.Reference.RefID,
		Reason:      m.Reason,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
	}
}

// StockLevelResponse estado de stock de un producto en una bodega.
type StockLevelResponse struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	OnHand      decimal.Decimal `json:"on_hand"`
	Allocated   decimal.Decimal `json:"allocated"`
	Available   decimal.Decimal `json:"available"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// StockLevelFromEntity mapea la entidad de dominio a la respuesta HTTP.
func StockLevelFromEntity(s *entity.StockLevel) StockLevelResponse {
	return StockLevelResponse{
		ProductID:   s.ProductID,
		WarehouseID: s.WarehouseID,
		OnHand:      s.OnHand,
		Allocated:   s.Allocated,
		Available:   s.Available,
		UnitCost:    s.UnitCost,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ReorderSuggestionDTO representa una sugerencia de reposición para un SKU
// que se encuentra por debajo de su punto de reorden.
type ReorderSuggestionDTO struct {
	ProductID          string          `json:"product_id"`
	SKU                string          `json:"sku"`
	ProductName        string          `json:"product_name"`
	WarehouseID        string          `json:"warehouse_id,omitempty"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	ReorderPoint       decimal.Decimal `json:"reorder_point"`
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"` // hasta 1.5x el punto de reorden
	UnitCost           decimal.Decimal `json:"unit_cost"`           // costo promedio ponderado
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"`
	Priority           int             `json:"priority"` // 1 = más urgente
}

// AuditResultResponse resultado de contrastar el kardex contra el stock cacheado.
type AuditResultResponse struct {
	ProductID    string          `json:"product_id"`
	WarehouseID  string          `json:"warehouse_id"`
	LedgerTotal  decimal.Decimal `json:"ledger_total"`
	CachedOnHand decimal.Decimal `json:"cached_on_hand"`
	Consistent   bool            `json:"consistent"`
	Movements    int             `json:"movements"`
}
