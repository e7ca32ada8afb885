package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El costo nunca se edita por
// aquí: lo mueven las recepciones y ajustes vía promedio ponderado. El precio
// de venta sí, y cada cambio queda en el historial.
type ProductUseCase struct {
	repo      repository.ProductRepository
	priceRepo repository.PriceHistoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, priceRepo repository.PriceHistoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, priceRepo: priceRepo}
}

// Create crea un producto. SKU único por empresa; el precio inicial queda como
// primera entrada SELLING del historial.
func (uc *ProductUseCase) Create(companyID, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.ReorderPoint.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCompanyAndSKU(companyID, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		SKU:          in.SKU,
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		Cost:         decimal.Zero,
		ReorderPoint: in.ReorderPoint,
		UnitMeasure:  in.UnitMeasure,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	if in.Price.IsPositive() {
		if err := uc.priceRepo.Create(&entity.PriceHistory{
			ID:          uuid.New().String(),
			CompanyID:   companyID,
			ProductID:   product.ID,
			PriceType:   entity.PriceTypeSelling,
			Price:       in.Price,
			EffectiveAt: now,
			CreatedAt:   now,
			CreatedBy:   userID,
		}); err != nil {
			return nil, err
		}
	}
	resp := dto.ProductFromEntity(product)
	return &resp, nil
}

// GetByID obtiene un producto validando pertenencia.
func (uc *ProductUseCase) GetByID(companyID, productID string) (*dto.ProductResponse, error) {
	product, err := uc.owned(companyID, productID)
	if err != nil {
		return nil, err
	}
	resp := dto.ProductFromEntity(product)
	return &resp, nil
}

// Update actualiza los campos editables. Un cambio de precio de venta deja una
// entrada SELLING nueva en el historial, nunca sobreescribe la anterior.
func (uc *ProductUseCase) Update(companyID, userID, productID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.owned(companyID, productID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.ReorderPoint != nil {
		if in.ReorderPoint.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.ReorderPoint = *in.ReorderPoint
	}
	if in.UnitMeasure != nil {
		product.UnitMeasure = *in.UnitMeasure
	}
	if in.Price != nil && !in.Price.Equal(product.Price) {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
		if err := uc.priceRepo.Create(&entity.PriceHistory{
			ID:          uuid.New().String(),
			CompanyID:   companyID,
			ProductID:   product.ID,
			PriceType:   entity.PriceTypeSelling,
			Price:       *in.Price,
			EffectiveAt: now,
			CreatedAt:   now,
			CreatedBy:   userID,
		}); err != nil {
			return nil, err
		}
	}
	product.UpdatedAt = now
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	resp := dto.ProductFromEntity(product)
	return &resp, nil
}

// List lista productos por empresa con paginación.
func (uc *ProductUseCase) List(companyID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ProductFromEntity(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// PriceHistory lista el historial de precios del producto (SELLING, COST o ambos).
func (uc *ProductUseCase) PriceHistory(companyID, productID, priceType string, page dto.PageRequest) ([]*entity.PriceHistory, error) {
	if _, err := uc.owned(companyID, productID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	return uc.priceRepo.ListByProduct(companyID, productID, priceType, page.Limit, page.Offset)
}

func (uc *ProductUseCase) owned(companyID, productID string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, &domain.CrossTenantError{Entity: "product", EntityID: productID, CompanyID: companyID}
	}
	return product, nil
}
