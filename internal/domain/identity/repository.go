package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/ims/backend/internal/domain/shared"
)

// Repository defines the persistence contract for users
type Repository interface {
	// FindByID retrieves a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByUsername retrieves a user by username
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindAll returns users matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]*User, error)

	// Save persists a user
	Save(ctx context.Context, user *User) error

	// Delete removes a user
	Delete(ctx context.Context, id uuid.UUID) error
}
