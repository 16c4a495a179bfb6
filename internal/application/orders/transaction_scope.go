package orders

import (
	"context"

	"github.com/ims/backend/internal/domain/audit"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/inventory"
	"github.com/ims/backend/internal/domain/order"
	"github.com/ims/backend/internal/domain/warehouse"
)

// TransactionScope provides transactional access to the repositories an
// order transition may touch. Status changes couple order state, stock
// movements and history records; they must commit or roll back as one.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories scoped to the
// current transaction.
type TransactionalRepositories interface {
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() order.Repository
	// StockRepo returns the stock entry repository scoped to the current transaction
	StockRepo() inventory.StockEntryRepository
	// WarehouseRepo returns the warehouse repository scoped to the current transaction
	WarehouseRepo() warehouse.Repository
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
	// HistoryRepo returns the history record repository scoped to the current transaction
	HistoryRepo() audit.Repository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for testing with mock repositories.
type NoOpTransactionScope struct {
	orderRepo     order.Repository
	stockRepo     inventory.StockEntryRepository
	warehouseRepo warehouse.Repository
	productRepo   catalog.ProductRepository
	historyRepo   audit.Repository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	orderRepo order.Repository,
	stockRepo inventory.StockEntryRepository,
	warehouseRepo warehouse.Repository,
	productRepo catalog.ProductRepository,
	historyRepo audit.Repository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:     orderRepo,
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

// OrderRepo returns the order repository.
func (s *NoOpTransactionScope) OrderRepo() order.Repository {
	return s.orderRepo
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
