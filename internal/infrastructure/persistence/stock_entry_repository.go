package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ims/backend/internal/domain/inventory"
	"github.com/ims/backend/internal/domain/shared"
)

// GormStockEntryRepository implements StockEntryRepository using GORM
type GormStockEntryRepository struct {
	db *gorm.DB
}

// NewGormStockEntryRepository creates a new GormStockEntryRepository
func NewGormStockEntryRepository(db *gorm.DB) *GormStockEntryRepository {
	return &GormStockEntryRepository{db: db}
}

// FindByID finds a stock entry by its ID
func (r *GormStockEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockEntry, error) {
	var entry inventory.StockEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindByWarehouseAndProduct finds the entry for a warehouse-product pair
func (r *GormStockEntryRepository) FindByWarehouseAndProduct(ctx context.Context, warehouseID, productID uuid.UUID) (*inventory.StockEntry, error) {
	var entry inventory.StockEntry
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// GetOrCreate returns the entry for a warehouse-product pair, inserting a
// zero-quantity row when none exists. Concurrent callers are safe because
// the insert does nothing on conflict and the existing row is re-fetched.
func (r *GormStockEntryRepository) GetOrCreate(ctx context.Context, warehouseID, productID uuid.UUID) (*inventory.StockEntry, error) {
	existing, err := r.FindByWarehouseAndProduct(ctx, warehouseID, productID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	entry, err := inventory.NewStockEntry(warehouseID, productID)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "warehouse_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(entry).Error; err != nil {
		return nil, err
	}

	// Conflict means another transaction created the row first
	return r.FindByWarehouseAndProduct(ctx, warehouseID, productID)
}

// FindByProductOrdered returns all entries holding the product ordered by
// warehouse ID ascending, which keeps multi-warehouse deduction deterministic
func (r *GormStockEntryRepository) FindByProductOrdered(ctx context.Context, productID uuid.UUID) ([]*inventory.StockEntry, error) {
	var entries []*inventory.StockEntry
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("warehouse_id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByWarehouse returns entries in one warehouse matching the filter
func (r *GormStockEntryRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]*inventory.StockEntry, error) {
	var entries []*inventory.StockEntry
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockEntry{}).Where("warehouse_id = ?", warehouseID),
		filter,
	)
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindAll returns entries matching the filter
func (r *GormStockEntryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*inventory.StockEntry, error) {
	var entries []*inventory.StockEntry
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.StockEntry{}), filter)
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// SumByProduct returns the total quantity of one product across all warehouses
func (r *GormStockEntryRepository) SumByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockEntry{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// SumAllByProduct returns per-product totals across all warehouses
func (r *GormStockEntryRepository) SumAllByProduct(ctx context.Context) ([]inventory.ProductStock, error) {
	var totals []inventory.ProductStock
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockEntry{}).
		Select("product_id, COALESCE(SUM(quantity), 0) AS total").
		Group("product_id").
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}

// Save creates or updates a stock entry
func (r *GormStockEntryRepository) Save(ctx context.Context, entry *inventory.StockEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormStockEntryRepository) SaveWithLock(ctx context.Context, entry *inventory.StockEntry) error {
	result := r.db.WithContext(ctx).
		Model(entry).
		Where("id = ? AND version = ?", entry.ID, entry.Version-1).
		Updates(map[string]interface{}{
			"quantity":   entry.Quantity,
			"version":    entry.Version,
			"updated_at": entry.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Count returns the number of stock entries
func (r *GormStockEntryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inventory.StockEntry{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies pagination and ordering to the query
func (r *GormStockEntryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "warehouse_id":
			query = query.Where("warehouse_id = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, StockEntrySortFields, "warehouse_id")
	if orderBy == "warehouse_id" && filter.OrderBy == "" {
		return query.Order("warehouse_id ASC, product_id ASC")
	}
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

// Ensure GormStockEntryRepository implements StockEntryRepository
var _ inventory.StockEntryRepository = (*GormStockEntryRepository)(nil)
