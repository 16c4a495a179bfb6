package warehouse

import (
	"context"

	"github.com/google/uuid"

	"github.com/ims/backend/internal/domain/shared"
)

// Repository defines the interface for warehouse persistence
type Repository interface {
	// FindByID finds a warehouse by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Warehouse, error)

	// FindByCode finds a warehouse by its unique code
	FindByCode(ctx context.Context, code string) (*Warehouse, error)

	// FindDefault finds the warehouse flagged as default
	FindDefault(ctx context.Context) (*Warehouse, error)

	// FindAll finds all warehouses with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Warehouse, error)

	// Save creates or updates a warehouse
	Save(ctx context.Context, w *Warehouse) error

	// Delete deletes a warehouse
	Delete(ctx context.Context, id uuid.UUID) error
}
