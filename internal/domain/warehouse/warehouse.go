package warehouse

import (
	"strings"
	"time"

	"github.com/ims/backend/internal/domain/shared"
)

// WarehouseStatus represents the status of a warehouse
type WarehouseStatus string

const (
	WarehouseStatusActive   WarehouseStatus = "active"
	WarehouseStatusInactive WarehouseStatus = "inactive"
)

// Warehouse represents a physical storage location.
// It owns the stock entries recorded against it.
type Warehouse struct {
	shared.BaseAggregateRoot
	Code       string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name       string          `gorm:"type:varchar(200);not null"`
	Status     WarehouseStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Address    string          `gorm:"type:text"`
	City       string          `gorm:"type:varchar(100)"`
	PostalCode string          `gorm:"type:varchar(20)"`
	Country    string          `gorm:"type:varchar(100)"`
	// IsDefault marks the warehouse used as source/sink for order
	// transitions that are not warehouse-specific.
	IsDefault bool `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a new warehouse with required fields
func NewWarehouse(code, name string) (*Warehouse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Warehouse code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_CODE", "Warehouse code cannot exceed 50 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Warehouse name cannot be empty")
	}

	return &Warehouse{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Status:            WarehouseStatusActive,
	}, nil
}

// Update updates the warehouse's basic information
func (w *Warehouse) Update(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Warehouse name cannot be empty")
	}

	w.Name = name
	w.UpdatedAt = time.Now()
	w.IncrementVersion()

	return nil
}

// SetLocation sets the warehouse's location fields
func (w *Warehouse) SetLocation(address, city, postalCode, country string) {
	w.Address = address
	w.City = city
	w.PostalCode = postalCode
	w.Country = country
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
}

// MarkDefault flags this warehouse as the default for order transitions.
// Callers must clear the flag on the previous default in the same unit of work.
func (w *Warehouse) MarkDefault() {
	w.IsDefault = true
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
}

// ClearDefault removes the default flag
func (w *Warehouse) ClearDefault() {
	w.IsDefault = false
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
}

// Activate marks the warehouse as active
func (w *Warehouse) Activate() {
	w.Status = WarehouseStatusActive
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
}

// Deactivate marks the warehouse as inactive
func (w *Warehouse) Deactivate() error {
	if w.IsDefault {
		return shared.NewDomainError("INVALID_STATE", "Default warehouse cannot be deactivated")
	}

	w.Status = WarehouseStatusInactive
	w.UpdatedAt = time.Now()
	w.IncrementVersion()

	return nil
}

// IsActive returns true if the warehouse can receive or release stock
func (w *Warehouse) IsActive() bool {
	return w.Status == WarehouseStatusActive
}
