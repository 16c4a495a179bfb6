package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ims/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Code         string          `json:"code" binding:"required,min=1,max=50"`
	Name         string          `json:"name" binding:"required,min=1,max=255"`
	Description  string          `json:"description"`
	CategoryID   *uuid.UUID      `json:"category_id"`
	SupplierName string          `json:"supplier_name" binding:"max=255"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ReorderLevel int64           `json:"reorder_level" binding:"omitempty,min=0"`
}

// UpdateProductRequest represents a partial product update
type UpdateProductRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Description  *string          `json:"description"`
	CategoryID   *uuid.UUID       `json:"category_id"`
	SupplierName *string          `json:"supplier_name" binding:"omitempty,max=255"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	ReorderLevel *int64           `json:"reorder_level" binding:"omitempty,min=0"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	CategoryID   *uuid.UUID      `json:"category_id,omitempty"`
	SupplierName string          `json:"supplier_name,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ReorderLevel int64           `json:"reorder_level"`
}

// ToProductResponse converts a product entity to its response form
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Code:         p.Code,
		Name:         p.Name,
		Description:  p.Description,
		CategoryID:   p.CategoryID,
		SupplierName: p.SupplierName,
		UnitPrice:    p.UnitPrice,
		ReorderLevel: p.ReorderLevel,
	}
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=255"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

// ToCategoryResponse converts a category entity to its response form
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}
