package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/ims/backend/internal/domain/shared"
)

// StockEntry records the quantity of one product held in one warehouse.
// The composite identifier is WarehouseID + ProductID; exactly one row
// exists per pair, created lazily on first movement. Quantity never goes
// negative and rows are never deleted by business logic, only zeroed.
type StockEntry struct {
	shared.BaseAggregateRoot
	WarehouseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_entry_warehouse_product,priority:1"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_entry_warehouse_product,priority:2"`
	Quantity    int64     `gorm:"not null;default:0;check:quantity >= 0"`
}

// TableName returns the table name for GORM
func (StockEntry) TableName() string {
	return "stock_entries"
}

// NewStockEntry creates a new, empty stock entry for a warehouse-product pair
func NewStockEntry(warehouseID, productID uuid.UUID) (*StockEntry, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}

	return &StockEntry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		WarehouseID:       warehouseID,
		ProductID:         productID,
		Quantity:          0,
	}, nil
}

// Adjust applies a signed delta to the quantity. A delta that would drive
// the quantity negative is rejected and leaves the entry unchanged.
func (e *StockEntry) Adjust(delta int64) (int64, error) {
	next := e.Quantity + delta
	if next < 0 {
		return e.Quantity, shared.ErrInsufficientStock
	}

	e.Quantity = next
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return e.Quantity, nil
}

// CanDeduct reports whether the entry holds at least the given quantity
func (e *StockEntry) CanDeduct(quantity int64) bool {
	return quantity >= 0 && e.Quantity >= quantity
}

// IsEmpty returns true when no stock is held
func (e *StockEntry) IsEmpty() bool {
	return e.Quantity == 0
}
