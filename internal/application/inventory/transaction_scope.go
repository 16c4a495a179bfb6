package inventory

import (
	"context"

	"github.com/ims/backend/internal/domain/audit"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/inventory"
	"github.com/ims/backend/internal/domain/warehouse"
)

// TransactionScope provides transactional access to stock repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and are committed
// or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories a stock
// operation may touch. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// StockRepo returns the stock entry repository scoped to the current transaction
	StockRepo() inventory.StockEntryRepository
	// WarehouseRepo returns the warehouse repository scoped to the current transaction
	WarehouseRepo() warehouse.Repository
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
	// HistoryRepo returns the history record repository scoped to the current transaction
	HistoryRepo() audit.Repository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing with mock repositories.
type NoOpTransactionScope struct {
	stockRepo     inventory.StockEntryRepository
	warehouseRepo warehouse.Repository
	productRepo   catalog.ProductRepository
	historyRepo   audit.Repository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	stockRepo inventory.StockEntryRepository,
	warehouseRepo warehouse.Repository,
	productRepo catalog.ProductRepository,
	historyRepo audit.Repository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		stockRepo:     stockRepo,
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		historyRepo:   historyRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// StockRepo returns the stock entry repository.
func (s *NoOpTransactionScope) StockRepo() inventory.StockEntryRepository {
	return s.stockRepo
}

// WarehouseRepo returns the warehouse repository.
func (s *NoOpTransactionScope) WarehouseRepo() warehouse.Repository {
	return s.warehouseRepo
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// HistoryRepo returns the history record repository.
func (s *NoOpTransactionScope) HistoryRepo() audit.Repository {
	return s.historyRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
