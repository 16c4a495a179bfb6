package persistence

import (
	"context"

	"gorm.io/gorm"

	apporders "github.com/ims/backend/internal/application/orders"
	"github.com/ims/backend/internal/domain/audit"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/inventory"
	"github.com/ims/backend/internal/domain/order"
	"github.com/ims/backend/internal/domain/warehouse"
)

// GormOrderTransactionScope implements the order TransactionScope using
// GORM transactions. A status transition updates the order, moves stock
// and appends history in one transaction.
type GormOrderTransactionScope struct {
	db *gorm.DB
}

// NewGormOrderTransactionScope creates a new GormOrderTransactionScope
func NewGormOrderTransactionScope(db *gorm.DB) *GormOrderTransactionScope {
	return &GormOrderTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormOrderTransactionScope) Execute(ctx context.Context, fn func(repos apporders.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormOrderRepositories{tx: tx})
	})
}

type gormOrderRepositories struct {
	tx *gorm.DB
}

// OrderRepo returns the order repository scoped to the current transaction
func (r *gormOrderRepositories) OrderRepo() order.Repository {
	return NewGormOrderRepository(r.tx)
}

// StockRepo returns the stock entry repository scoped to the current transaction
func (r *gormOrderRepositories) StockRepo() inventory.StockEntryRepository {
	return NewGormStockEntryRepository(r.tx)
}

// WarehouseRepo returns the warehouse repository scoped to the current transaction
func (r *gormOrderRepositories) WarehouseRepo() warehouse.Repository {
	return NewGormWarehouseRepository(r.tx)
}

// ProductRepo returns the product repository scoped to the current transaction
func (r *gormOrderRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// HistoryRepo returns the history record repository scoped to the current transaction
func (r *gormOrderRepositories) HistoryRepo() audit.Repository {
	return NewGormHistoryRepository(r.tx)
}

// Ensure GormOrderTransactionScope implements the order TransactionScope
var _ apporders.TransactionScope = (*GormOrderTransactionScope)(nil)

var _ apporders.TransactionalRepositories = (*gormOrderRepositories)(nil)
