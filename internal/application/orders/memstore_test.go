package orders_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/application/ledger"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria para los tests de casos de uso. Implementa los puertos de
// repositorio sobre mapas y el TxRunner con snapshot/rollback: si el callback
// falla, el estado vuelve íntegro al snapshot (mismo contrato que la BD real).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products   map[string]*entity.Product
	warehouses map[string]*entity.Warehouse
	stock      map[string]*entity.StockLevel
	batches    []*entity.Batch
	movements  []*entity.Movement
	purchases  map[string]*entity.PurchaseOrder
	sales      map[string]*entity.SalesOrder
	transfers  map[string]*entity.Transfer
	receipts   []*entity.Receipt
	prices     []*entity.PriceHistory
}

func newMemStore() *memStore {
	return &memStore{
		products:   make(map[string]*entity.Product),
		warehouses: make(map[string]*entity.Warehouse),
		stock:      make(map[string]*entity.StockLevel),
		purchases:  make(map[string]*entity.PurchaseOrder),
		sales:      make(map[string]*entity.SalesOrder),
		transfers:  make(map[string]*entity.Transfer),
	}
}

func stockKey(companyID, productID, warehouseID string) string {
	return companyID + "|" + productID + "|" + warehouseID
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
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
	for id, po := range s.purchases {
		cpo := *po
		cpo.Lines = nil
		for _, l := range po.Lines {
			cl := *l
			cpo.Lines = append(cpo.Lines, &cl)
		}
		c.purchases[id] = &cpo
	}
	for id, so := range s.sales {
		cso := *so
		cso.Lines = nil
		for _, l := range so.Lines {
			cl := *l
			cso.Lines = append(cso.Lines, &cl)
		}
		c.sales[id] = &cso
	}
	for id, tr := range s.transfers {
		ctr := *tr
		ctr.Lines = nil
		for _, l := range tr.Lines {
			cl := *l
			ctr.Lines = append(ctr.Lines, &cl)
		}
		c.transfers[id] = &ctr
	}
	for _, rc := range s.receipts {
		crc := *rc
		crc.Lines = nil
		for _, l := range rc.Lines {
			cl := *l
			crc.Lines = append(crc.Lines, &cl)
		}
		c.receipts = append(c.receipts, &crc)
	}
	for _, ph := range s.prices {
		cph := *ph
		c.prices = append(c.prices, &cph)
	}
	return c
}

func (s *memStore) txRepos() ledger.TxRepos {
	return ledger.TxRepos{
		Movements:      &memMovementRepo{s},
		Stock:          &memStockRepo{s},
		Batches:        &memBatchRepo{s},
		Products:       &memProductRepo{s},
		PurchaseOrders: &memPurchaseRepo{s},
		SalesOrders:    &memSalesRepo{s},
		Transfers:      &memTransferRepo{s},
		Receipts:       &memReceiptRepo{s},
		Prices:         &memPriceRepo{s},
	}
}

// memTxRunner ejecuta el callback sobre el almacén vivo; ante error restaura el
// snapshot completo, emulando el rollback de la transacción real.
type memTxRunner struct {
	s *memStore
}

func (tr *memTxRunner) Run(_ context.Context, fn func(r ledger.TxRepos) error) error {
	backup := tr.s.clone()
	if err := fn(tr.s.txRepos()); err != nil {
		*tr.s = *backup
		return err
	}
	return nil
}

// ─── Productos ────────────────────────────────────────────────────────────────

type memProductRepo struct{ s *memStore }

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (r *memProductRepo) Create(p *entity.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	r.s.products[p.ID] = p
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}

func (r *memProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.CompanyID == companyID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	r.s.products[p.ID] = p
	return nil
}

func (r *memProductRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	if p, ok := r.s.products[productID]; ok {
		p.Cost = cost
	}
	return nil
}

func (r *memProductRepo) UpdatePrice(productID string, price decimal.Decimal) error {
	if p, ok := r.s.products[productID]; ok {
		p.Price = price
	}
	return nil
}

func (r *memProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

// ─── Bodegas ──────────────────────────────────────────────────────────────────

type memWarehouseRepo struct{ s *memStore }

var _ repository.WarehouseRepository = (*memWarehouseRepo)(nil)

func (r *memWarehouseRepo) Create(w *entity.Warehouse) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	r.s.warehouses[w.ID] = w
	return nil
}

func (r *memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return r.s.warehouses[id], nil
}

func (r *memWarehouseRepo) ListByCompany(companyID string) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.s.warehouses {
		if w.CompanyID == companyID {
			out = append(out, w)
		}
	}
	return out, nil
}

// ─── Stock ────────────────────────────────────────────────────────────────────

type memStockRepo struct{ s *memStore }

var _ repository.StockLevelRepository = (*memStockRepo)(nil)

func (r *memStockRepo) Get(companyID, productID, warehouseID string) (*entity.StockLevel, error) {
	if lv, ok := r.s.stock[stockKey(companyID, productID, warehouseID)]; ok {
		return lv, nil
	}
	return entity.NewStockLevel(companyID, productID, warehouseID), nil
}

func (r *memStockRepo) GetForUpdate(companyID, productID, warehouseID string) (*entity.StockLevel, error) {
	// Igual que la implementación real: materializa la fila en cero antes de
	// entregarla bloqueada, el primer movimiento del par también serializa.
	k := stockKey(companyID, productID, warehouseID)
	if _, ok := r.s.stock[k]; !ok {
		r.s.stock[k] = entity.NewStockLevel(companyID, productID, warehouseID)
	}
	return r.s.stock[k], nil
}

func (r *memStockRepo) Upsert(level *entity.StockLevel) error {
	r.s.stock[stockKey(level.CompanyID, level.ProductID, level.WarehouseID)] = level
	return nil
}

func (r *memStockRepo) ListByCompany(companyID, warehouseID string, limit, offset int) ([]*entity.StockLevel, error) {
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

func (r *memStockRepo) ListBelowReorderPoint(companyID, warehouseID string) ([]repository.ReorderItem, error) {
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

// ─── Lotes ────────────────────────────────────────────────────────────────────

type memBatchRepo struct{ s *memStore }

var _ repository.BatchRepository = (*memBatchRepo)(nil)

func (r *memBatchRepo) Create(b *entity.Batch) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	r.s.batches = append(r.s.batches, b)
	return nil
}

func (r *memBatchRepo) ListActiveByProduct(companyID, productID string) ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, b := range r.s.batches {
		if b.CompanyID == companyID && b.ProductID == productID && b.RemainingQty.IsPositive() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBatchRepo) ListActiveByProductForUpdate(companyID, productID string) ([]*entity.Batch, error) {
	return r.ListActiveByProduct(companyID, productID)
}

func (r *memBatchRepo) UpdateRemaining(batchID string, remaining decimal.Decimal) error {
	for _, b := range r.s.batches {
		if b.ID == batchID {
			b.RemainingQty = remaining
		}
	}
	return nil
}

// ─── Kardex ───────────────────────────────────────────────────────────────────

type memMovementRepo struct{ s *memStore }

var _ repository.MovementRepository = (*memMovementRepo)(nil)

func (r *memMovementRepo) Create(m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	r.s.movements = append(r.s.movements, m)
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.Movement, error) {
	for _, m := range r.s.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) ListByProduct(companyID, productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if m.CompanyID == companyID && m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListByWarehouse(companyID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if m.CompanyID == companyID && m.WarehouseID == warehouseID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListByPair(companyID, productID, warehouseID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if m.CompanyID == companyID && m.ProductID == productID && m.WarehouseID == warehouseID {
			out = append(out, m)
		}
	}
	return out, nil
}

// ─── Órdenes de compra ────────────────────────────────────────────────────────

type memPurchaseRepo struct{ s *memStore }

var _ repository.PurchaseOrderRepository = (*memPurchaseRepo)(nil)

func (r *memPurchaseRepo) Create(po *entity.PurchaseOrder) error {
	if po.ID == "" {
		po.ID = uuid.New().String()
	}
	r.s.purchases[po.ID] = po
	return nil
}

func (r *memPurchaseRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	return r.s.purchases[id], nil
}

func (r *memPurchaseRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.s.purchases[id], nil
}

func (r *memPurchaseRepo) UpdateStatus(orderID, status string) error {
	if po, ok := r.s.purchases[orderID]; ok {
		po.Status = status
	}
	return nil
}

func (r *memPurchaseRepo) UpdateLineReceived(lineID string, received decimal.Decimal) error {
	for _, po := range r.s.purchases {
		for _, l := range po.Lines {
			if l.ID == lineID {
				l.ReceivedQty = received
			}
		}
	}
	return nil
}

func (r *memPurchaseRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, po := range r.s.purchases {
		if po.CompanyID != companyID {
			continue
		}
		if status != "" && po.Status != status {
			continue
		}
		out = append(out, po)
	}
	return out, nil
}

// ─── Órdenes de venta ─────────────────────────────────────────────────────────

type memSalesRepo struct{ s *memStore }

var _ repository.SalesOrderRepository = (*memSalesRepo)(nil)

func (r *memSalesRepo) Create(so *entity.SalesOrder) error {
	if so.ID == "" {
		so.ID = uuid.New().String()
	}
	r.s.sales[so.ID] = so
	return nil
}

func (r *memSalesRepo) GetByID(id string) (*entity.SalesOrder, error) {
	return r.s.sales[id], nil
}

func (r *memSalesRepo) GetByIDForUpdate(id string) (*entity.SalesOrder, error) {
	return r.s.sales[id], nil
}

func (r *memSalesRepo) UpdateStatus(orderID, status string) error {
	if so, ok := r.s.sales[orderID]; ok {
		so.Status = status
	}
	return nil
}

func (r *memSalesRepo) UpdateLineFulfilled(lineID string, fulfilled decimal.Decimal) error {
	for _, so := range r.s.sales {
		for _, l := range so.Lines {
			if l.ID == lineID {
				l.FulfilledQty = fulfilled
			}
		}
	}
	return nil
}

func (r *memSalesRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.SalesOrder, error) {
	var out []*entity.SalesOrder
	for _, so := range r.s.sales {
		if so.CompanyID != companyID {
			continue
		}
		if status != "" && so.Status != status {
			continue
		}
		out = append(out, so)
	}
	return out, nil
}

// ─── Traslados ────────────────────────────────────────────────────────────────

type memTransferRepo struct{ s *memStore }

var _ repository.TransferRepository = (*memTransferRepo)(nil)

func (r *memTransferRepo) Create(tr *entity.Transfer) error {
	if tr.ID == "" {
		tr.ID = uuid.New().String()
	}
	r.s.transfers[tr.ID] = tr
	return nil
}

func (r *memTransferRepo) GetByID(id string) (*entity.Transfer, error) {
	return r.s.transfers[id], nil
}

func (r *memTransferRepo) GetByIDForUpdate(id string) (*entity.Transfer, error) {
	return r.s.transfers[id], nil
}

func (r *memTransferRepo) UpdateStatus(transferID, status string, at time.Time) error {
	tr, ok := r.s.transfers[transferID]
	if !ok {
		return nil
	}
	tr.Status = status
	switch status {
	case entity.TransferStatusInTransit:
		tr.SentAt = &at
	case entity.TransferStatusCompleted:
		tr.CompletedAt = &at
	}
	return nil
}

func (r *memTransferRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.Transfer, error) {
	var out []*entity.Transfer
	for _, tr := range r.s.transfers {
		if tr.CompanyID != companyID {
			continue
		}
		if status != "" && tr.Status != status {
			continue
		}
		out = append(out, tr)
	}
	return out, nil
}

// ─── Recepciones ──────────────────────────────────────────────────────────────

type memReceiptRepo struct{ s *memStore }

var _ repository.ReceiptRepository = (*memReceiptRepo)(nil)

func (r *memReceiptRepo) Create(receipt *entity.Receipt) error {
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	r.s.receipts = append(r.s.receipts, receipt)
	return nil
}

func (r *memReceiptRepo) ListByPurchaseOrder(orderID string) ([]*entity.Receipt, error) {
	var out []*entity.Receipt
	for _, rc := range r.s.receipts {
		if rc.PurchaseOrderID == orderID {
			out = append(out, rc)
		}
	}
	return out, nil
}

// ─── Historial de precios ─────────────────────────────────────────────────────

type memPriceRepo struct{ s *memStore }

var _ repository.PriceHistoryRepository = (*memPriceRepo)(nil)

func (r *memPriceRepo) Create(entry *entity.PriceHistory) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	r.s.prices = append(r.s.prices, entry)
	return nil
}

func (r *memPriceRepo) ListByProduct(companyID, productID, priceType string, limit, offset int) ([]*entity.PriceHistory, error) {
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
