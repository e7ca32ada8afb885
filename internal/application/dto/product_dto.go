package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU          string          `json:"sku" validate:"required,min=1,max=100"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	UnitMeasure  string          `json:"unit_measure" validate:"required"`
}

// UpdateProductRequest entrada para actualizar un producto. El costo no se
// edita aquí: solo lo mueven las recepciones y ajustes (promedio ponderado).
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	ReorderPoint *decimal.Decimal `json:"reorder_point"`
	UnitMeasure  *string          `json:"unit_measure"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	CompanyID    string          `json:"company_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	UnitMeasure  string          `json:"unit_measure"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductFromEntity mapea la entidad de dominio a la respuesta HTTP.
func ProductFromEntity(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		CompanyID:    p.CompanyID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Cost:         p.Cost,
		ReorderPoint: p.ReorderPoint,
		UnitMeasure:  p.UnitMeasure,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// PriceHistoryResponse una entrada del historial de precios (SELLING o COST).
type PriceHistoryResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	PriceType   string          `json:"price_type"`
	Price       decimal.Decimal `json:"price"`
	EffectiveAt time.Time       `json:"effective_at"`
	CreatedBy   string          `json:"created_by"`
}

// PriceHistoryFromEntity mapea la entrada del historial a la respuesta HTTP.
func PriceHistoryFromEntity(ph *entity.PriceHistory) PriceHistoryResponse {
	return PriceHistoryResponse{
		ID:          ph.ID,
		ProductID:   ph.ProductID,
		PriceType:   ph.PriceType,
		Price:       ph.Price,
		EffectiveAt: ph.EffectiveAt,
		CreatedBy:   ph.CreatedBy,
	}
}
