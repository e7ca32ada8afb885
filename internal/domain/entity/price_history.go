package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de precio del historial.
const (
	PriceTypeSelling = "SELLING"
	PriceTypeCost    = "COST"
)

// PriceHistory es una entrada append-only del historial de precios de un
// producto. Los campos Price/Cost del producto son solo el puntero "vigente"
// a la última entrada de cada tipo.
type PriceHistory struct {
	ID          string
	CompanyID   string
	ProductID   string
	PriceType   string // SELLING | COST
	Price       decimal.Decimal
	EffectiveAt time.Time
	CreatedAt   time.Time
	CreatedBy   string
}
