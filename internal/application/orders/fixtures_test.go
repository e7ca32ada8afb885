package orders_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/application/event"
	"github.com/jhoicas/Kardex-api/internal/application/orders"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

const (
	testCompany      = "co-1"
	otherCompany     = "co-2"
	testUser         = "user-1"
	mainWarehouse    = "wh-main"
	northWarehouse   = "wh-north"
	foreignWarehouse = "wh-foreign"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// fixture arma el almacén con dos bodegas propias, una ajena y los casos de uso
// cableados sobre el mismo TxRunner en memoria.
type fixture struct {
	store    *memStore
	purchase *orders.PurchaseUseCase
	sales    *orders.SalesUseCase
	transfer *orders.TransferUseCase
}

func newFixture() *fixture {
	s := newMemStore()
	now := time.Now()
	s.warehouses[mainWarehouse] = &entity.Warehouse{ID: mainWarehouse, CompanyID: testCompany, Name: "Bodega Principal", CreatedAt: now}
	s.warehouses[northWarehouse] = &entity.Warehouse{ID: northWarehouse, CompanyID: testCompany, Name: "Bodega Norte", CreatedAt: now}
	s.warehouses[foreignWarehouse] = &entity.Warehouse{ID: foreignWarehouse, CompanyID: otherCompany, Name: "Bodega Ajena", CreatedAt: now}

	runner := &memTxRunner{s: s}
	products := &memProductRepo{s}
	warehouses := &memWarehouseRepo{s}
	return &fixture{
		store:    s,
		purchase: orders.NewPurchaseUseCase(runner, products, warehouses, &memPurchaseRepo{s}, event.Nop{}),
		sales:    orders.NewSalesUseCase(runner, products, warehouses, &memSalesRepo{s}, event.Nop{}),
		transfer: orders.NewTransferUseCase(runner, products, warehouses, &memTransferRepo{s}, event.Nop{}),
	}
}

// seedProduct crea un producto de la empresa de prueba con el costo indicado.
func (f *fixture) seedProduct(id, sku, cost string) *entity.Product {
	p := &entity.Product{
		ID:        id,
		CompanyID: testCompany,
		SKU:       sku,
		Name:      "Producto " + sku,
		Cost:      dec(cost),
		CreatedAt: time.Now(),
	}
	f.store.products[id] = p
	return p
}

// seedStock materializa stock con su lote respaldando el FIFO.
func (f *fixture) seedStock(productID, warehouseID, onHand, unitCost string) {
	qty, cost := dec(onHand), dec(unitCost)
	now := time.Now()
	f.store.stock[stockKey(testCompany, productID, warehouseID)] = &entity.StockLevel{
		CompanyID:   testCompany,
		ProductID:   productID,
		WarehouseID: warehouseID,
		OnHand:      qty,
		Allocated:   decimal.Zero,
		Available:   qty,
		UnitCost:    cost,
		UpdatedAt:   now,
	}
	f.store.batches = append(f.store.batches, &entity.Batch{
		ID:           "batch-" + productID + "-" + warehouseID,
		CompanyID:    testCompany,
		ProductID:    productID,
		UnitCost:     cost,
		ReceivedQty:  qty,
		RemainingQty: qty,
		ReceivedAt:   now,
		CreatedAt:    now,
	})
}

func (f *fixture) stockOf(productID, warehouseID string) *entity.StockLevel {
	if lv, ok := f.store.stock[stockKey(testCompany, productID, warehouseID)]; ok {
		return lv
	}
	return entity.NewStockLevel(testCompany, productID, warehouseID)
}

func (f *fixture) movementCount() int {
	return len(f.store.movements)
}
