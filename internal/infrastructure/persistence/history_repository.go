package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ims/backend/internal/domain/audit"
	"github.com/ims/backend/internal/domain/shared"
)

// GormHistoryRepository implements the append-only audit.Repository using GORM
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new GormHistoryRepository
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Append persists a new history record
func (r *GormHistoryRepository) Append(ctx context.Context, record *audit.HistoryRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindByID retrieves a history record
func (r *GormHistoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*audit.HistoryRecord, error) {
	var record audit.HistoryRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindAll returns records matching the filter, newest first
func (r *GormHistoryRepository) FindAll(ctx context.Context, filter audit.HistoryFilter) ([]*audit.HistoryRecord, error) {
	var records []*audit.HistoryRecord
	query := r.applyHistoryFilter(r.db.WithContext(ctx).Model(&audit.HistoryRecord{}), filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, HistorySortFields, "occurred_at")
	if err := query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir)).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByReference returns all records for one order or stock entry, newest first
func (r *GormHistoryRepository) FindByReference(ctx context.Context, referenceID uuid.UUID) ([]*audit.HistoryRecord, error) {
	var records []*audit.HistoryRecord
	if err := r.db.WithContext(ctx).
		Where("reference_id = ?", referenceID).
		Order("occurred_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Count returns the number of records matching the filter
func (r *GormHistoryRepository) Count(ctx context.Context, filter audit.HistoryFilter) (int64, error) {
	var count int64
	query := r.applyHistoryFilter(r.db.WithContext(ctx).Model(&audit.HistoryRecord{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormHistoryRepository) applyHistoryFilter(query *gorm.DB, filter audit.HistoryFilter) *gorm.DB {
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.ReferenceID != uuid.Nil {
		query = query.Where("reference_id = ?", filter.ReferenceID)
	}
	if filter.WarehouseID != uuid.Nil {
		query = query.Where("warehouse_id = ?", filter.WarehouseID)
	}
	if !filter.From.IsZero() {
		query = query.Where("occurred_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("occurred_at <= ?", filter.To)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("reference ILIKE ? OR details ILIKE ?", pattern, pattern)
	}
	return query
}

// Ensure GormHistoryRepository implements audit.Repository
var _ audit.Repository = (*GormHistoryRepository)(nil)
