package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/ims/backend/internal/domain/shared"
)

// ProductStock aggregates the total quantity of one product across all warehouses
type ProductStock struct {
	ProductID uuid.UUID
	Total     int64
}

// StockEntryRepository defines the persistence contract for stock entries
type StockEntryRepository interface {
	// FindByID retrieves a stock entry by its identifier
	FindByID(ctx context.Context, id uuid.UUID) (*StockEntry, error)

	// FindByWarehouseAndProduct retrieves the entry for a warehouse-product
	// pair, returning shared.ErrNotFound when none exists
	FindByWarehouseAndProduct(ctx context.Context, warehouseID, productID uuid.UUID) (*StockEntry, error)

	// GetOrCreate returns the entry for a warehouse-product pair, creating
	// a zero-quantity entry when none exists yet
	GetOrCreate(ctx context.Context, warehouseID, productID uuid.UUID) (*StockEntry, error)

	// FindByProductOrdered returns all entries holding the product, sorted
	// by ascending warehouse ID so multi-warehouse deduction is deterministic
	FindByProductOrdered(ctx context.Context, productID uuid.UUID) ([]*StockEntry, error)

	// FindByWarehouse returns all entries in one warehouse
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]*StockEntry, error)

	// FindAll returns entries matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]*StockEntry, error)

	// SumByProduct returns the total quantity of one product across all warehouses
	SumByProduct(ctx context.Context, productID uuid.UUID) (int64, error)

	// SumAllByProduct returns per-product totals across all warehouses
	SumAllByProduct(ctx context.Context) ([]ProductStock, error)

	// Save persists a stock entry
	Save(ctx context.Context, entry *StockEntry) error

	// SaveWithLock persists a stock entry with optimistic concurrency control
	SaveWithLock(ctx context.Context, entry *StockEntry) error

	// Count returns the number of stock entries
	Count(ctx context.Context) (int64, error)
}
