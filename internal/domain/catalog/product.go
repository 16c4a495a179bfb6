package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ims/backend/internal/domain/shared"
)

// Product represents a sellable item in the catalog.
// It is referenced, never owned, by order line items and stock entries.
type Product struct {
	shared.BaseAggregateRoot
	Code         string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Description  string          `gorm:"type:text"`
	CategoryID   *uuid.UUID      `gorm:"type:uuid;index"`
	SupplierName string          `gorm:"type:varchar(255)"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ReorderLevel int64           `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(code, name string, unitPrice decimal.Decimal, reorderLevel int64) (*Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if reorderLevel < 0 {
		return nil, shared.NewDomainError("INVALID_REORDER_LEVEL", "Reorder level cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		UnitPrice:         unitPrice,
		ReorderLevel:      reorderLevel,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// UpdatePrice changes the unit price. Existing order line items keep the
// price captured when they were added.
func (p *Product) UpdatePrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	p.UnitPrice = unitPrice
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetReorderLevel sets the low-stock threshold
func (p *Product) SetReorderLevel(level int64) error {
	if level < 0 {
		return shared.NewDomainError("INVALID_REORDER_LEVEL", "Reorder level cannot be negative")
	}

	p.ReorderLevel = level
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// AssignCategory links the product to a category
func (p *Product) AssignCategory(categoryID uuid.UUID) error {
	if categoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}

	p.CategoryID = &categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IsBelowReorder reports whether the given aggregate stock quantity is at
// or below the product's reorder level.
func (p *Product) IsBelowReorder(totalQuantity int64) bool {
	return totalQuantity <= p.ReorderLevel
}
