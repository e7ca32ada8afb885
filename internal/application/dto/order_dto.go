package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// ─────────────────────────────── Compras ───────────────────────────────

// PurchaseLineRequest línea de una orden de compra nueva.
type PurchaseLineRequest struct {
	ProductID  string          `json:"product_id" validate:"required,uuid"`
	OrderedQty decimal.Decimal `json:"ordered_qty"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseRequest body para POST /api/purchase-orders.
type CreatePurchaseRequest struct {
	WarehouseID  string                `json:"warehouse_id" validate:"required,uuid"`
	Number       string                `json:"number" validate:"required,min=1,max=50"`
	SupplierName string                `json:"supplier_name"`
	Lines        []PurchaseLineRequest `json:"lines" validate:"required,min=1,dive"`
	Notes        string                `json:"notes,omitempty"`
}

// ReceiveLineRequest cantidad entrante contra una línea de la orden.
type ReceiveLineRequest struct {
	LineID   string          `json:"line_id" validate:"required,uuid"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ReceiveRequest body para POST /api/purchase-orders/:id/receive.
type ReceiveRequest struct {
	Lines []ReceiveLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// PurchaseLineResponse línea de orden de compra con lo recibido a la fecha.
type PurchaseLineResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	OrderedQty  decimal.Decimal `json:"ordered_qty"`
	ReceivedQty decimal.Decimal `json:"received_qty"`
	PendingQty  decimal.Decimal `json:"pending_qty"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID           string                 `json:"id"`
	WarehouseID  string                 `json:"warehouse_id"`
	Number       string                 `json:"number"`
	SupplierName string                 `json:"supplier_name"`
	Status       string                 `json:"status"`
	Lines        []PurchaseLineResponse `json:"lines"`
	Notes        string                 `json:"notes,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// PurchaseFromEntity mapea la entidad de dominio a la respuesta HTTP.
func PurchaseFromEntity(po *entity.PurchaseOrder) PurchaseOrderResponse {
	resp := PurchaseOrderResponse{
		ID:           po.ID,
		WarehouseID:  po.WarehouseID,
		Number:       po.Number,
		SupplierName: po.SupplierName,
		Status:       po.Status,
		Lines:        make([]PurchaseLineResponse, 0, len(po.Lines)),
		Notes:        po.Notes,
		CreatedAt:    po.CreatedAt,
		UpdatedAt:    po.UpdatedAt,
	}
	for _, l := range po.Lines {
		resp.Lines = append(resp.Lines, PurchaseLineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			OrderedQty:  l.OrderedQty,
			ReceivedQty: l.ReceivedQty,
			PendingQty:  l.PendingQty(),
			UnitCost:    l.UnitCost,
		})
	}
	return resp
}

// ReceiptLineResponse línea de una recepción.
type ReceiptLineResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// ReceiptResponse registro inmutable de una recepción.
type ReceiptResponse struct {
	ID              string                `json:"id"`
	PurchaseOrderID string                `json:"purchase_order_id"`
	WarehouseID     string                `json:"warehouse_id"`
	Lines           []ReceiptLineResponse `json:"lines"`
	ReceivedAt      time.Time             `json:"received_at"`
	ReceivedBy      string                `json:"received_by"`
}

// ReceiptFromEntity mapea la entidad de dominio a la respuesta HTTP.
func ReceiptFromEntity(rc *entity.Receipt) ReceiptResponse {
	resp := ReceiptResponse{
		ID:              rc.ID,
		PurchaseOrderID: rc.PurchaseOrderID,
		WarehouseID:     rc.WarehouseID,
		Lines:           make([]ReceiptLineResponse, 0, len(rc.Lines)),
		ReceivedAt:      rc.ReceivedAt,
		ReceivedBy:      rc.ReceivedBy,
	}
	for _, l := range rc.Lines {
		resp.Lines = append(resp.Lines, ReceiptLineResponse{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitCost:  l.UnitCost,
		})
	}
	return resp
}

// ─────────────────────────────── Ventas ───────────────────────────────

// SalesLineRequest línea de una orden de venta nueva.
type SalesLineRequest struct {
	ProductID  string          `json:"product_id" validate:"required,uuid"`
	OrderedQty decimal.Decimal `json:"ordered_qty"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// CreateSalesRequest body para POST /api/sales-orders.
type CreateSalesRequest struct {
	WarehouseID  string             `json:"warehouse_id" validate:"required,uuid"`
	Number       string             `json:"number" validate:"required,min=1,max=50"`
	CustomerName string             `json:"customer_name"`
	Lines        []SalesLineRequest `json:"lines" validate:"required,min=1,dive"`
	Notes        string             `json:"notes,omitempty"`
}

// FulfillLineRequest cantidad a despachar contra una línea.
type FulfillLineRequest struct {
	LineID   string          `json:"line_id" validate:"required,uuid"`
	Quantity decimal.Decimal `json:"quantity"`
}

// FulfillRequest body para POST /api/sales-orders/:id/fulfill.
// Sin líneas (o sin body) despacha lo pendiente de toda la orden.
type FulfillRequest struct {
	Lines []FulfillLineRequest `json:"lines,omitempty" validate:"dive"`
}

// SalesLineResponse línea de orden de venta con lo despachado.
type SalesLineResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	OrderedQty   decimal.Decimal `json:"ordered_qty"`
	FulfilledQty decimal.Decimal `json:"fulfilled_qty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

// SalesOrderResponse salida de una orden de venta.
type SalesOrderResponse struct {
	ID           string              `json:"id"`
	WarehouseID  string              `json:"warehouse_id"`
	Number       string              `json:"number"`
	CustomerName string              `json:"customer_name"`
	Status       string              `json:"status"`
	Lines        []SalesLineResponse `json:"lines"`
	Notes        string              `json:"notes,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// SalesFromEntity mapea la entidad de dominio a la respuesta HTTP.
func SalesFromEntity(so *entity.SalesOrder) SalesOrderResponse {
	resp := SalesOrderResponse{
		ID:           so.ID,
		WarehouseID:  so.WarehouseID,
		Number:       so.Number,
		CustomerName: so.CustomerName,
		Status:       so.Status,
		Lines:        make([]SalesLineResponse, 0, len(so.Lines)),
		Notes:        so.Notes,
		CreatedAt:    so.CreatedAt,
		UpdatedAt:    so.UpdatedAt,
	}
	for _, l := range so.Lines {
		resp.Lines = append(resp.Lines, SalesLineResponse{
			ID:           l.ID,
			ProductID:    l.ProductID,
			OrderedQty:   l.OrderedQty,
			FulfilledQty: l.FulfilledQty,
			UnitPrice:    l.UnitPrice,
		})
	}
	return resp
}

// ─────────────────────────────── Traslados ───────────────────────────────

// TransferLineRequest línea de un traslado nuevo.
type TransferLineRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	FromWarehouseID string                `json:"from_warehouse_id" validate:"required,uuid"`
	ToWarehouseID   string                `json:"to_warehouse_id" validate:"required,uuid"`
	Number          string                `json:"number" validate:"required,min=1,max=50"`
	Lines           []TransferLineRequest `json:"lines" validate:"required,min=1,dive"`
	Notes           string                `json:"notes,omitempty"`
}

// TransferLineResponse línea de un traslado.
type TransferLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// TransferResponse salida de un traslado.
type TransferResponse struct {
	ID              string                 `json:"id"`
	FromWarehouseID string                 `json:"from_warehouse_id"`
	ToWarehouseID   string                 `json:"to_warehouse_id"`
	Number          string                 `json:"number"`
	Status          string                 `json:"status"`
	Lines           []TransferLineResponse `json:"lines"`
	Notes           string                 `json:"notes,omitempty"`
	SentAt          *time.Time             `json:"sent_at,omitempty"`
	CompletedAt     *time.Time             `json:"completed_at,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// TransferFromEntity mapea la entidad de dominio a la respuesta HTTP.
func TransferFromEntity(tr *entity.Transfer) TransferResponse {
	resp := TransferResponse{
		ID:              tr.ID,
		FromWarehouseID: tr.FromWarehouseID,
		ToWarehouseID:   tr.ToWarehouseID,
		Number:          tr.Number,
		Status:          tr.Status,
		Lines:           make([]TransferLineResponse, 0, len(tr.Lines)),
		Notes:           tr.Notes,
		SentAt:          tr.SentAt,
		CompletedAt:     tr.CompletedAt,
		CreatedAt:       tr.CreatedAt,
		UpdatedAt:       tr.UpdatedAt,
	}
	for _, l := range tr.Lines {
		resp.Lines = append(resp.Lines, TransferLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
		})
	}
	return resp
}
