package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ims/backend/internal/domain/order"
	"github.com/ims/backend/internal/domain/shared"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its line items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByNumber finds an order by its order number
func (r *GormOrderRepository) FindByNumber(ctx context.Context, number string) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("number = ?", number).
		First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindAll finds orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*order.Order, error) {
	var result []*order.Order
	query := r.applyFilter(r.db.WithContext(ctx).Model(&order.Order{}).Preload("Items"), filter)
	if err := query.Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// FindByKind finds orders of one kind matching the filter
func (r *GormOrderRepository) FindByKind(ctx context.Context, kind order.OrderKind, filter shared.Filter) ([]*order.Order, error) {
	var result []*order.Order
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&order.Order{}).Preload("Items").Where("kind = ?", kind),
		filter,
	)
	if err := query.Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// FindByStatus finds orders in one status matching the filter
func (r *GormOrderRepository) FindByStatus(ctx context.Context, status order.OrderStatus, filter shared.Filter) ([]*order.Order, error) {
	var result []*order.Order
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&order.Order{}).Preload("Items").Where("status = ?", status),
		filter,
	)
	if err := query.Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// Save creates or updates an order together with its line items
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(o).Error
}

// SaveWithLock saves an order with optimistic locking. The order row is
// updated only when the stored version matches the version the aggregate
// was loaded with; line items are then reconciled against the aggregate.
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, o *order.Order) error {
	result := r.db.WithContext(ctx).
		Model(o).
		Where("id = ? AND version = ?", o.ID, o.Version-1).
		Updates(map[string]interface{}{
			"status":       o.Status,
			"party_name":   o.PartyName,
			"notes":        o.Notes,
			"approved_at":  o.ApprovedAt,
			"completed_at": o.CompletedAt,
			"cancelled_at": o.CancelledAt,
			"version":      o.Version,
			"updated_at":   o.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}

	return r.syncItems(ctx, o)
}

// syncItems upserts the aggregate's line items and removes rows the
// aggregate no longer contains
func (r *GormOrderRepository) syncItems(ctx context.Context, o *order.Order) error {
	if len(o.Items) == 0 {
		return r.db.WithContext(ctx).
			Delete(&order.LineItem{}, "order_id = ?", o.ID).Error
	}

	keep := make([]uuid.UUID, 0, len(o.Items))
	for _, item := range o.Items {
		keep = append(keep, item.ID)
	}
	if err := r.db.WithContext(ctx).
		Delete(&order.LineItem{}, "order_id = ? AND id NOT IN ?", o.ID, keep).Error; err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&o.Items).Error
}

// Delete removes an order and its line items
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&order.LineItem{}, "order_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&order.Order{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts orders of one kind
func (r *GormOrderRepository) Count(ctx context.Context, kind order.OrderKind) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&order.Order{})
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies search, pagination and ordering to the query
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("number ILIKE ? OR party_name ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "kind":
			query = query.Where("kind = ?", value)
		case "created_by_id":
			query = query.Where("created_by_id = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

// Ensure GormOrderRepository implements order.Repository
var _ order.Repository = (*GormOrderRepository)(nil)
