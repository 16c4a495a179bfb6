package persistence

import (
	"context"

	"gorm.io/gorm"

	appinv "github.com/ims/backend/internal/application/inventory"
	"github.com/ims/backend/internal/domain/audit"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/inventory"
	"github.com/ims/backend/internal/domain/warehouse"
)

// GormStockTransactionScope implements the stock TransactionScope using
// GORM transactions, so adjustments, transfers and their history records
// commit or roll back together.
type GormStockTransactionScope struct {
	db *gorm.DB
}

// NewGormStockTransactionScope creates a new GormStockTransactionScope
func NewGormStockTransactionScope(db *gorm.DB) *GormStockTransactionScope {
	return &GormStockTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormStockTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStockRepositories{tx: tx})
	})
}

type gormStockRepositories struct {
	tx *gorm.DB
}

// StockRepo returns the stock entry repository scoped to the current transaction
func (r *gormStockRepositories) StockRepo() inventory.StockEntryRepository {
	return NewGormStockEntryRepository(r.tx)
}

// WarehouseRepo returns the warehouse repository scoped to the current transaction
func (r *gormStockRepositories) WarehouseRepo() warehouse.Repository {
	return NewGormWarehouseRepository(r.tx)
}

// ProductRepo returns the product repository scoped to the current transaction
func (r *gormStockRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// HistoryRepo returns the history record repository scoped to the current transaction
func (r *gormStockRepositories) HistoryRepo() audit.Repository {
	return NewGormHistoryRepository(r.tx)
}

// Ensure GormStockTransactionScope implements the stock TransactionScope
var _ appinv.TransactionScope = (*GormStockTransactionScope)(nil)

var _ appinv.TransactionalRepositories = (*gormStockRepositories)(nil)
