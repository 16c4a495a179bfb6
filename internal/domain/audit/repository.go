package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ims/backend/internal/domain/shared"
)

// HistoryFilter narrows history queries. Zero values mean no restriction.
type HistoryFilter struct {
	Kind        HistoryKind
	Action      HistoryAction
	ReferenceID uuid.UUID
	WarehouseID uuid.UUID
	From        time.Time
	To          time.Time
	shared.Filter
}

// Repository is the append-only persistence contract for history records.
// There are deliberately no update or delete operations.
type Repository interface {
	// Append persists a new history record
	Append(ctx context.Context, record *HistoryRecord) error

	// FindByID retrieves a history record
	FindByID(ctx context.Context, id uuid.UUID) (*HistoryRecord, error)

	// FindAll returns records matching the filter, newest first
	FindAll(ctx context.Context, filter HistoryFilter) ([]*HistoryRecord, error)

	// FindByReference returns all records for one order or stock entry, newest first
	FindByReference(ctx context.Context, referenceID uuid.UUID) ([]*HistoryRecord, error)

	// Count returns the number of records matching the filter
	Count(ctx context.Context, filter HistoryFilter) (int64, error)
}
