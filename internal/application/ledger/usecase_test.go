package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/event"
	"github.com/jhoicas/Kardex-api/internal/application/ledger"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: los puertos que el motor del kardex toca, con un TxRunner
// que restaura el snapshot ante error (mismo contrato que la BD real).
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyA  = "co-a"
	companyB  = "co-b"
	actorID   = "user-1"
	warehouse = "wh-1"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fakeStore struct {
	products   map[string]*entity.Product
	warehouses map[string]*entity.Warehouse
	stock      map[string]*entity.StockLevel
	batches    []*entity.Batch
	movements  []*entity.Movement
	prices     []*entity.PriceHistory
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:   make(map[string]*entity.Product),
		warehouses: make(map[string]*entity.Warehouse),
		stock:      make(map[string]*entity.StockLevel),
	}
}

func key(companyID, productID, warehouseID string) string {
	return companyID + "|" + productID + "|" + warehouseID
}

func (s *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, w := range s.warehouses {
		cw := *w
		c.warehouses[id] = &cw
	}
	for k, lv := range s.stock {
		clv := *lv
		c.stock[k] = &clv
	}
	for _, b := range s.batches {
		cb := *b
		c.batches = append(c.batches, &cb)
	}
	for _, m := range s.movements {
		cm := *m
		c.movements = append(c.movements, &cm)
	}
	for _, ph := range s.prices {
		cph := *ph
		c.prices = append(c.prices, &cph)
	}
	return c
}

func (s *fakeStore) repos() ledger.TxRepos {
	return ledger.TxRepos{
		Movements: &fakeMovementRepo{s},
		Stock:     &fakeStockRepo{s},
		Batches:   &fakeBatchRepo{s},
		Products:  &fakeProductRepo{s},
		Prices:    &fakePriceRepo{s},
	}
}

type fakeTxRunner struct{ s *fakeStore }

func (tr *fakeTxRunner) Run(_ context.Context, fn func(r ledger.TxRepos) error) error {
	backup := tr.s.clone()
	if err := fn(tr.s.repos()); err != nil {
		*tr.s = *backup
		return err
	}
	return nil
}

type fakeProductRepo struct{ s *fakeStore }

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.s.products[p.ID] = p
	return nil
}
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) { return r.s.products[id], nil }
func (r *fakeProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.CompanyID == companyID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.s.products[p.ID] = p
	return nil
}
func (r *fakeProductRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	if p, ok := r.s.products[productID]; ok {
		p.Cost = cost
	}
	return nil
}
func (r *fakeProductRepo) UpdatePrice(productID string, price decimal.Decimal) error {
	if p, ok := r.s.products[productID]; ok {
		p.Price = price
	}
	return nil
}
func (r *fakeProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeWarehouseRepo struct{ s *fakeStore }

var _ repository.WarehouseRepository = (*fakeWarehouseRepo)(nil)

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error {
	r.s.warehouses[w.ID] = w
	return nil
}
func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return r.s.warehouses[id], nil
}
func (r *fakeWarehouseRepo) ListByCompany(companyID string) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.s.warehouses {
		if w.CompanyID == companyID {
			out = append(out, w)
		}
	}
	return out, nil
}

type fakeStockRepo struct{ s *fakeStore }

var _ repository.StockLevelRepository = (*fakeStockRepo)(nil)

func (r *fakeStockRepo) Get(companyID, productID, warehouseID string) (*entity.StockLevel, error) {
	if lv, ok := r.s.stock[key(companyID, productID, warehouseID)]; ok {
		return lv, nil
	}
	return entity.NewStockLevel(companyID, productID, warehouseID), nil
}
func (r *fakeStockRepo) GetForUpdate(companyID, productID, warehouseID string) (*entity.StockLevel, error) {
	// Mismo contrato que la implementación real: la fila del par se materializa
	// en cero antes de bloquearla, para que el primer movimiento también quede
	// serializado.
	k := key(companyID, productID, warehouseID)
	if _, ok := r.s.stock[k]; !ok {
		r.s.stock[k] = entity.NewStockLevel(companyID, productID, warehouseID)
	}
	return r.s.stock[k], nil
}
func (r *fakeStockRepo) Upsert(level *entity.StockLevel) error {
	r.s.stock[key(level.CompanyID, level.ProductID, level.WarehouseID)] = level
	return nil
}
func (r *fakeStockRepo) ListByCompany(companyID, warehouseID string, limit, offset int) ([]*entity.StockLevel, error) {
	var out []*entity.StockLevel
	for _, lv := range r.s.stock {
		if lv.CompanyID != companyID {
			continue
		}
		if warehouseID != "" && lv.WarehouseID != warehouseID {
			continue
		}
		out = append(out, lv)
	}
	return out, nil
}
func (r *fakeStockRepo) ListBelowReorderPoint(companyID, warehouseID string) ([]repository.ReorderItem, error) {
	var out []repository.ReorderItem
	for _, lv := range r.s.stock {
		if lv.CompanyID != companyID {
			continue
		}
		if warehouseID != "" && lv.WarehouseID != warehouseID {
			continue
		}
		p, ok := r.s.products[lv.ProductID]
		if !ok || !p.ReorderPoint.IsPositive() || lv.OnHand.GreaterThan(p.ReorderPoint) {
			continue
		}
		out = append(out, repository.ReorderItem{
			ProductID:    p.ID,
			SKU:          p.SKU,
			ProductName:  p.Name,
			WarehouseID:  lv.WarehouseID,
			CurrentStock: lv.OnHand,
			ReorderPoint: p.ReorderPoint,
			UnitCost:     p.Cost,
			Price:        p.Price,
		})
	}
	return out, nil
}

type fakeBatchRepo struct{ s *fakeStore }

var _ repository.BatchRepository = (*fakeBatchRepo)(nil)

func (r *fakeBatchRepo) Create(b *entity.Batch) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	r.s.batches = append(r.s.batches, b)
	return nil
}
func (r *fakeBatchRepo) ListActiveByProduct(companyID, productID string) ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, b := range r.s.batches {
		if b.CompanyID == companyID && b.ProductID == productID && b.RemainingQty.IsPositive() {
			out = append(out, b)
		}
	}
	return out, nil
}
func (r *fakeBatchRepo) ListActiveByProductForUpdate(companyID, productID string) ([]*entity.Batch, error) {
	return r.ListActiveByProduct(companyID, productID)
}
func (r *fakeBatchRepo) UpdateRemaining(batchID string, remaining decimal.Decimal) error {
	for _, b := range r.s.batches {
		if b.ID == batchID {
			b.RemainingQty = remaining
		}
	}
	return nil
}

type fakeMovementRepo struct{ s *fakeStore }

var _ repository.MovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	r.s.movements = append(r.s.movements, m)
	return nil
}
func (r *fakeMovementRepo) GetByID(id string) (*entity.Movement, error) {
	for _, m := range r.s.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}
func (r *fakeMovementRepo) ListByProduct(companyID, productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if m.CompanyID == companyID && m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}
func (r *fakeMovementRepo) ListByWarehouse(companyID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if m.CompanyID == companyID && m.WarehouseID == warehouseID {
			out = append(out, m)
		}
	}
	return out, nil
}
func (r *fakeMovementRepo) ListByPair(companyID, productID, warehouseID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if m.CompanyID == companyID && m.ProductID == productID && m.WarehouseID == warehouseID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakePriceRepo struct{ s *fakeStore }

var _ repository.PriceHistoryRepository = (*fakePriceRepo)(nil)

func (r *fakePriceRepo) Create(entry *entity.PriceHistory) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	r.s.prices = append(r.s.prices, entry)
	return nil
}
func (r *fakePriceRepo) ListByProduct(companyID, productID, priceType string, limit, offset int) ([]*entity.PriceHistory, error) {
	var out []*entity.PriceHistory
	for _, ph := range r.s.prices {
		if ph.CompanyID != companyID || ph.ProductID != productID {
			continue
		}
		if priceType != "" && ph.PriceType != priceType {
			continue
		}
		out = append(out, ph)
	}
	return out, nil
}

func newLedgerFixture() (*fakeStore, *ledger.UseCase) {
	s := newFakeStore()
	s.warehouses[warehouse] = &entity.Warehouse{ID: warehouse, CompanyID: companyA, Name: "Bodega Principal"}
	uc := ledger.NewUseCase(
		&fakeTxRunner{s},
		&fakeProductRepo{s},
		&fakeWarehouseRepo{s},
		&fakeStockRepo{s},
		&fakeMovementRepo{s},
		event.Nop{},
	)
	return s, uc
}

func seedProduct(s *fakeStore, id, cost, reorderPoint string) *entity.Product {
	p := &entity.Product{
		ID:           id,
		CompanyID:    companyA,
		SKU:          "SKU-" + id,
		Name:         "Producto " + id,
		Cost:         dec(cost),
		ReorderPoint: dec(reorderPoint),
	}
	s.products[id] = p
	return p
}

func seedStock(s *fakeStore, productID, onHand, unitCost string) {
	qty, cost := dec(onHand), dec(unitCost)
	now := time.Now()
	s.stock[key(companyA, productID, warehouse)] = &entity.StockLevel{
		CompanyID:   companyA,
		ProductID:   productID,
		WarehouseID: warehouse,
		OnHand:      qty,
		Allocated:   decimal.Zero,
		Available:   qty,
		UnitCost:    cost,
		UpdatedAt:   now,
	}
	s.batches = append(s.batches, &entity.Batch{
		ID:           "batch-seed-" + productID,
		CompanyID:    companyA,
		ProductID:    productID,
		UnitCost:     cost,
		ReceivedQty:  qty,
		RemainingQty: qty,
		ReceivedAt:   now,
		CreatedAt:    now,
	})
}

func unitCostPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos manuales
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_EntradaAbreLoteYMaterializaStock(t *testing.T) {
	s, uc := newLedgerFixture()
	seedProduct(s, "p1", "0", "0")

	mov, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		CompanyID:   companyA,
		UserID:      actorID,
		ProductID:   "p1",
		WarehouseID: warehouse,
		Type:        entity.MovementTypeIN,
		Quantity:    dec("10"),
		UnitCost:    unitCostPtr("7"),
	})
	require.NoError(t, err)
	assert.True(t, mov.Quantity.Equal(dec("10")))
	assert.Equal(t, entity.RefManual, mov.Reference.RefType)
	assert.NotEmpty(t, mov.BatchID, "la entrada con costo abre su lote")

	level := s.stock[key(companyA, "p1", warehouse)]
	require.NotNil(t, level, "el primer movimiento materializa la fila de stock")
	assert.True(t, level.OnHand.Equal(dec("10")))
	assert.True(t, level.UnitCost.Equal(dec("7")))

	assert.True(t, s.products["p1"].Cost.Equal(dec("7")),
		"la entrada recalcula el costo promedio del producto")
	require.Len(t, s.prices, 1)
	assert.Equal(t, entity.PriceTypeCost, s.prices[0].PriceType)
}

func TestRecordMovement_CargaInicial_ReferenciaInitialStock(t *testing.T) {
	s, uc := newLedgerFixture()
	seedProduct(s, "p1", "0", "0")

	mov, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		CompanyID:   companyA,
		UserID:      actorID,
		ProductID:   "p1",
		WarehouseID: warehouse,
		Type:        entity.MovementTypeIN,
		Quantity:    dec("50"),
		UnitCost:    unitCostPtr("3"),
		Initial:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RefInitialStock, mov.Reference.RefType)
}

func TestRecordMovement_SalidaInsuficiente_NoEscribeNada(t *testing.T) {
	s, uc := newLedgerFixture()
	seedProduct(s, "p1", "4", "0")
	seedStock(s, "p1", "3", "4")

	_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		CompanyID:   companyA,
		UserID:      actorID,
		ProductID:   "p1",
		WarehouseID: warehouse,
		Type:        entity.MovementTypeOUT,
		Quantity:    dec("5"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficientErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficientErr)
	assert.True(t, insufficientErr.Current.Equal(dec("3")))
	assert.True(t, insufficientErr.Requested.Equal(dec("5")))

	assert.Empty(t, s.movements, "el rechazo no deja asiento en el kardex")
	assert.True(t, s.stock[key(companyA, "p1", warehouse)].OnHand.Equal(dec("3")),
		"el stock queda intacto, nunca se recorta la cantidad")
}

func TestRecordMovement_SalidaConsumeLotesPorFIFO(t *testing.T) {
	s, uc := newLedgerFixture()
	seedProduct(s, "p1", "4", "0")
	now := time.Now()
	s.batches = append(s.batches,
		&entity.Batch{ID: "b1", CompanyID: companyA, ProductID: "p1", UnitCost: dec("4"), ReceivedQty: dec("5"), RemainingQty: dec("5"), ReceivedAt: now.Add(-2 * time.Hour)},
		&entity.Batch{ID: "b2", CompanyID: companyA, ProductID: "p1", UnitCost: dec("6"), ReceivedQty: dec("5"), RemainingQty: dec("5"), ReceivedAt: now.Add(-time.Hour)},
	)
	s.stock[key(companyA, "p1", warehouse)] = &entity.StockLevel{
		CompanyID: companyA, ProductID: "p1", WarehouseID: warehouse,
		OnHand: dec("10"), Available: dec("10"), UnitCost: dec("5"),
	}

	_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		CompanyID:   companyA,
		UserID:      actorID,
		ProductID:   "p1",
		WarehouseID: warehouse,
		Type:        entity.MovementTypeOUT,
		Quantity:    dec("7"),
	})
	require.NoError(t, err)

	// El lote más antiguo se agota primero; el siguiente queda parcial
	assert.True(t, s.batches[0].RemainingQty.IsZero())
	assert.True(t, s.batches[1].RemainingQty.Equal(dec("3")))
	assert.True(t, s.stock[key(companyA, "p1", warehouse)].OnHand.Equal(dec("3")))
}

func TestRecordMovement_SalidaNoConsumeLaReservaDeVentas(t *testing.T) {
	s, uc := newLedgerFixture()
	seedProduct(s, "p1", "4", "0")
	seedStock(s, "p1", "10", "4")
	// Una venta confirmada tiene reservadas las 10 unidades
	lv := s.stock[key(companyA, "p1", warehouse)]
	lv.Allocated = dec("10")
	lv.Available = decimal.Zero

	_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		CompanyID:   companyA,
		UserID:      actorID,
		ProductID:   "p1",
		WarehouseID: warehouse,
		Type:        entity.MovementTypeOUT,
		Quantity:    dec("5"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"el stock reservado solo sale con el despacho de su orden")
	assert.Empty(t, s.movements)
	assert.True(t, s.stock[key(companyA, "p1", warehouse)].OnHand.Equal(dec("10")))
	assert.True(t, s.stock[key(companyA, "p1", warehouse)].Allocated.Equal(dec("10")))
}

func TestRecordMovement_ProductoDeOtraEmpresa_Forbidden(t *testing.T) {
	s, uc := newLedgerFixture()
	p := seedProduct(s, "p1", "0", "0")
	p.CompanyID = companyB

	_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		CompanyID:   companyA,
		UserID:      actorID,
		ProductID:   "p1",
		WarehouseID: warehouse,
		Type:        entity.MovementTypeIN,
		Quantity:    dec("1"),
		UnitCost:    unitCostPtr("1"),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRecordMovement_EntradaSinCosto_Rechazada(t *testing.T) {
	s, uc := newLedgerFixture()
	seedProduct(s, "p1", "0", "0")

	_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		CompanyID:   companyA,
		UserID:      actorID,
		ProductID:   "p1",
		WarehouseID: warehouse,
		Type:        entity.MovementTypeIN,
		Quantity:    dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes de inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustStock_DisminucionConsumeFIFO(t *testing.T) {
	s, uc := newLedgerFixture()
	seedProduct(s, "p1", "4", "0")
	seedStock(s, "p1", "10", "4")

	mov, err := uc.AdjustStock(context.Background(), ledger.AdjustInput{
		CompanyID:   companyA,
		UserID:      actorID,
		ProductID:   "p1",
		WarehouseID: warehouse,
		Increase:    false,
		Quantity:    dec("4"),
		Reason:      entity.AdjustReasonDamage,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeAdjustmentOut, mov.Type)
	assert.Equal(t, entity.AdjustReasonDamage, mov.Reason)
	assert.True(t, s.stock[key(companyA, "p1", warehouse)].OnHand.Equal(dec("6")))
	assert.True(t, s.batches[0].RemainingQty.Equal(dec("6")))
}

func TestAdjustStock_RazonInvalida_Rechazada(t *testing.T) {
	s, uc := newLedgerFixture()
	seedProduct(s, "p1", "4", "0")
	seedStock(s, "p1", "10", "4")

	_, err := uc.AdjustStock(context.Background(), ledger.AdjustInput{
		CompanyID:   companyA,
		UserID:      actorID,
		ProductID:   "p1",
		WarehouseID: warehouse,
		Increase:    false,
		Quantity:    dec("1"),
		Reason:      "se me olvidó",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"la razón de ajuste es una enumeración cerrada")
}

func TestAdjustStock_DisminucionSinStock_Rechazada(t *testing.T) {
	s, uc := newLedgerFixture()
	seedProduct(s, "p1", "4", "0")
	seedStock(s, "p1", "2", "4")

	_, err := uc.AdjustStock(context.Background(), ledger.AdjustInput{
		CompanyID:   companyA,
		UserID:      actorID,
		ProductID:   "p1",
		WarehouseID: warehouse,
		Increase:    false,
		Quantity:    dec("3"),
		Reason:      entity.AdjustReasonLoss,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, s.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auditoría y reposición
// ──────────────────────────────────────────────────────────────────────────────

func TestAuditPair_KardexCoincideConCache(t *testing.T) {
	s, uc := newLedgerFixture()
	seedProduct(s, "p1", "0", "0")

	_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		CompanyID: companyA, UserID: actorID, ProductID: "p1", WarehouseID: warehouse,
		Type: entity.MovementTypeIN, Quantity: dec("10"), UnitCost: unitCostPtr("5"),
	})
	require.NoError(t, err)
	_, err = uc.RecordMovement(context.Background(), ledger.MovementInput{
		CompanyID: companyA, UserID: actorID, ProductID: "p1", WarehouseID: warehouse,
		Type: entity.MovementTypeOUT, Quantity: dec("4"),
	})
	require.NoError(t, err)

	result, err := uc.AuditPair(context.Background(), companyA, "p1", warehouse)
	require.NoError(t, err)
	assert.True(t, result.Consistent, "replegar el kardex reproduce el saldo cacheado")
	assert.True(t, result.LedgerTotal.Equal(dec("6")))
	assert.True(t, result.CachedOnHand.Equal(dec("6")))
	assert.Equal(t, 2, result.Movements)
}

func TestAuditPair_DetectaEscrituraPorFuera(t *testing.T) {
	s, uc := newLedgerFixture()
	seedProduct(s, "p1", "0", "0")

	_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		CompanyID: companyA, UserID: actorID, ProductID: "p1", WarehouseID: warehouse,
		Type: entity.MovementTypeIN, Quantity: dec("10"), UnitCost: unitCostPtr("5"),
	})
	require.NoError(t, err)

	// Simular una escritura que evadió el motor
	s.stock[key(companyA, "p1", warehouse)].OnHand = dec("12")

	result, err := uc.AuditPair(context.Background(), companyA, "p1", warehouse)
	require.NoError(t, err)
	assert.False(t, result.Consistent)
	assert.True(t, result.LedgerTotal.Equal(dec("10")))
	assert.True(t, result.CachedOnHand.Equal(dec("12")))
}

func TestGenerateReorderList_SugierePedidoPriorizado(t *testing.T) {
	s, uc := newLedgerFixture()
	seedProduct(s, "p1", "4", "10") // déficit 6
	seedProduct(s, "p2", "9", "20") // déficit 18 → prioridad 1
	seedStock(s, "p1", "4", "4")
	seedStock(s, "p2", "2", "9")

	list, err := uc.GenerateReorderList(context.Background(), companyA, "")
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "p2", list[0].ProductID, "mayor déficit primero")
	assert.Equal(t, 1, list[0].Priority)
	// Sugerido: 1.5 * 20 - 2 = 28
	assert.True(t, list[0].SuggestedOrderQty.Equal(dec("28")))
	assert.True(t, list[0].EstimatedOrderCost.Equal(dec("252")))

	assert.Equal(t, "p1", list[1].ProductID)
	assert.Equal(t, 2, list[1].Priority)
	// Sugerido: 1.5 * 10 - 4 = 11
	assert.True(t, list[1].SuggestedOrderQty.Equal(dec("11")))
}

func TestListMovements_SinFiltro_Rechazado(t *testing.T) {
	_, uc := newLedgerFixture()
	_, err := uc.ListMovements(context.Background(), companyA, "", "", nil, nil, 10, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"el kardex se consulta por producto o por bodega, no completo")
}
