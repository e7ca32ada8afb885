package orders

import (
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// Chequeos de pertenencia multi-tenant, parte de la validación de
// precondiciones del motor: ninguna mutación referencia entidades de otra
// empresa. La violación se trata como falla de seguridad (CrossTenantError).

func ownedProduct(repo repository.ProductRepository, companyID, productID string) (*entity.Product, error) {
	product, err := repo.GetByID(productID)
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

func ownedWarehouse(repo repository.WarehouseRepository, companyID, warehouseID string) error {
	wh, err := repo.GetByID(warehouseID)
	if err != nil {
		return err
	}
	if wh == nil {
		return domain.ErrNotFound
	}
	if wh.CompanyID != companyID {
		return &domain.CrossTenantError{Entity: "warehouse", EntityID: warehouseID, CompanyID: companyID}
	}
	return nil
}
