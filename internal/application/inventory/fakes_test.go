package inventory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/ims/backend/internal/domain/audit"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/inventory"
	"github.com/ims/backend/internal/domain/shared"
	"github.com/ims/backend/internal/domain/warehouse"
)

// fakeStockRepo is an in-memory StockEntryRepository. Stateful flows like
// multi-warehouse deduction are much easier to verify against real state
// than against call expectations.
type fakeStockRepo struct {
	entries map[uuid.UUID]*inventory.StockEntry
	// failSaveFor makes SaveWithLock fail for one entry, to exercise
	// compensating rollback paths
	failSaveFor uuid.UUID
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{entries: make(map[uuid.UUID]*inventory.StockEntry)}
}

// cloneEntry copies an entry so callers mutate their own snapshot, the
// way a row read from a real database would behave
func cloneEntry(entry *inventory.StockEntry) *inventory.StockEntry {
	c := *entry
	return &c
}

func (f *fakeStockRepo) seed(warehouseID, productID uuid.UUID, quantity int64) *inventory.StockEntry {
	entry, _ := inventory.NewStockEntry(warehouseID, productID)
	entry.Quantity = quantity
	f.entries[entry.ID] = entry
	return cloneEntry(entry)
}

func (f *fakeStockRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.StockEntry, error) {
	if entry, ok := f.entries[id]; ok {
		return cloneEntry(entry), nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeStockRepo) FindByWarehouseAndProduct(_ context.Context, warehouseID, productID uuid.UUID) (*inventory.StockEntry, error) {
	for _, entry := range f.entries {
		if entry.WarehouseID == warehouseID && entry.ProductID == productID {
			return cloneEntry(entry), nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeStockRepo) GetOrCreate(ctx context.Context, warehouseID, productID uuid.UUID) (*inventory.StockEntry, error) {
	if entry, err := f.FindByWarehouseAndProduct(ctx, warehouseID, productID); err == nil {
		return entry, nil
	}
	entry, err := inventory.NewStockEntry(warehouseID, productID)
	if err != nil {
		return nil, err
	}
	f.entries[entry.ID] = cloneEntry(entry)
	return entry, nil
}

func (f *fakeStockRepo) FindByProductOrdered(_ context.Context, productID uuid.UUID) ([]*inventory.StockEntry, error) {
	var out []*inventory.StockEntry
	for _, entry := range f.entries {
		if entry.ProductID == productID {
			out = append(out, cloneEntry(entry))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].WarehouseID.String() < out[j].WarehouseID.String()
	})
	return out, nil
}

func (f *fakeStockRepo) FindByWarehouse(_ context.Context, warehouseID uuid.UUID, _ shared.Filter) ([]*inventory.StockEntry, error) {
	var out []*inventory.StockEntry
	for _, entry := range f.entries {
		if entry.WarehouseID == warehouseID {
			out = append(out, cloneEntry(entry))
		}
	}
	return out, nil
}

func (f *fakeStockRepo) FindAll(_ context.Context, _ shared.Filter) ([]*inventory.StockEntry, error) {
	out := make([]*inventory.StockEntry, 0, len(f.entries))
	for _, entry := range f.entries {
		out = append(out, cloneEntry(entry))
	}
	return out, nil
}

func (f *fakeStockRepo) SumByProduct(_ context.Context, productID uuid.UUID) (int64, error) {
	var total int64
	for _, entry := range f.entries {
		if entry.ProductID == productID {
			total += entry.Quantity
		}
	}
	return total, nil
}

func (f *fakeStockRepo) SumAllByProduct(_ context.Context) ([]inventory.ProductStock, error) {
	totals := make(map[uuid.UUID]int64)
	for _, entry := range f.entries {
		totals[entry.ProductID] += entry.Quantity
	}
	out := make([]inventory.ProductStock, 0, len(totals))
	for productID, total := range totals {
		out = append(out, inventory.ProductStock{ProductID: productID, Total: total})
	}
	return out, nil
}

func (f *fakeStockRepo) Save(_ context.Context, entry *inventory.StockEntry) error {
	f.entries[entry.ID] = cloneEntry(entry)
	return nil
}

func (f *fakeStockRepo) SaveWithLock(_ context.Context, entry *inventory.StockEntry) error {
	if f.failSaveFor != uuid.Nil && entry.ID == f.failSaveFor {
		return shared.ErrConcurrencyConflict
	}
	f.entries[entry.ID] = cloneEntry(entry)
	return nil
}

func (f *fakeStockRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.entries)), nil
}

func (f *fakeStockRepo) quantity(warehouseID, productID uuid.UUID) int64 {
	for _, entry := range f.entries {
		if entry.WarehouseID == warehouseID && entry.ProductID == productID {
			return entry.Quantity
		}
	}
	return 0
}

// fakeHistoryRepo records appended history in memory
type fakeHistoryRepo struct {
	records []*audit.HistoryRecord
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{}
}

func (f *fakeHistoryRepo) Append(_ context.Context, record *audit.HistoryRecord) error {
	f.records = append(f.records, record)
	return nil
}

func (f *fakeHistoryRepo) FindByID(_ context.Context, id uuid.UUID) (*audit.HistoryRecord, error) {
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeHistoryRepo) FindAll(_ context.Context, _ audit.HistoryFilter) ([]*audit.HistoryRecord, error) {
	return f.records, nil
}

func (f *fakeHistoryRepo) FindByReference(_ context.Context, referenceID uuid.UUID) ([]*audit.HistoryRecord, error) {
	var out []*audit.HistoryRecord
	for _, r := range f.records {
		if r.ReferenceID == referenceID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeHistoryRepo) Count(_ context.Context, _ audit.HistoryFilter) (int64, error) {
	return int64(len(f.records)), nil
}

func (f *fakeHistoryRepo) actions() []audit.HistoryAction {
	out := make([]audit.HistoryAction, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, r.Action)
	}
	return out
}

// fakeWarehouseRepo keeps warehouses in memory
type fakeWarehouseRepo struct {
	warehouses map[uuid.UUID]*warehouse.Warehouse
}

func newFakeWarehouseRepo() *fakeWarehouseRepo {
	return &fakeWarehouseRepo{warehouses: make(map[uuid.UUID]*warehouse.Warehouse)}
}

func (f *fakeWarehouseRepo) seed(code string, isDefault bool) *warehouse.Warehouse {
	w, _ := warehouse.NewWarehouse(code, code)
	if isDefault {
		w.MarkDefault()
	}
	f.warehouses[w.ID] = w
	return w
}

func (f *fakeWarehouseRepo) FindByID(_ context.Context, id uuid.UUID) (*warehouse.Warehouse, error) {
	if w, ok := f.warehouses[id]; ok {
		return w, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeWarehouseRepo) FindByCode(_ context.Context, code string) (*warehouse.Warehouse, error) {
	for _, w := range f.warehouses {
		if w.Code == code {
			return w, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeWarehouseRepo) FindDefault(_ context.Context) (*warehouse.Warehouse, error) {
	for _, w := range f.warehouses {
		if w.IsDefault {
			return w, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeWarehouseRepo) FindAll(_ context.Context, _ shared.Filter) ([]warehouse.Warehouse, error) {
	out := make([]warehouse.Warehouse, 0, len(f.warehouses))
	for _, w := range f.warehouses {
		out = append(out, *w)
	}
	return out, nil
}

func (f *fakeWarehouseRepo) Save(_ context.Context, w *warehouse.Warehouse) error {
	f.warehouses[w.ID] = w
	return nil
}

func (f *fakeWarehouseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.warehouses, id)
	return nil
}

// fakeProductRepo keeps products in memory
type fakeProductRepo struct {
	products map[uuid.UUID]*catalog.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (f *fakeProductRepo) seed(p *catalog.Product) *catalog.Product {
	f.products[p.ID] = p
	return p
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeProductRepo) FindByCode(_ context.Context, code string) (*catalog.Product, error) {
	for _, p := range f.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	out := make([]catalog.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProductRepo) Save(_ context.Context, p *catalog.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(f.products)), nil
}
