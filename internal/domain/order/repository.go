package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/ims/backend/internal/domain/shared"
)

// Repository defines the persistence contract for orders
type Repository interface {
	// FindByID retrieves an order with its line items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByNumber retrieves an order by its order number
	FindByNumber(ctx context.Context, number string) (*Order, error)

	// FindAll returns orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]*Order, error)

	// FindByKind returns orders of one kind matching the filter
	FindByKind(ctx context.Context, kind OrderKind, filter shared.Filter) ([]*Order, error)

	// FindByStatus returns orders in one status matching the filter
	FindByStatus(ctx context.Context, status OrderStatus, filter shared.Filter) ([]*Order, error)

	// Save persists an order and its line items
	Save(ctx context.Context, o *Order) error

	// SaveWithLock persists an order with optimistic concurrency control,
	// returning shared.ErrConcurrencyConflict when the stored version moved
	SaveWithLock(ctx context.Context, o *Order) error

	// Delete removes an order
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the number of orders of one kind
	Count(ctx context.Context, kind OrderKind) (int64, error)
}
