package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/ims/backend/internal/domain/inventory"
)

// StockEntryResponse represents a stock entry in API responses
type StockEntryResponse struct {
	ID          uuid.UUID `json:"id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	ProductID   uuid.UUID `json:"product_id"`
	Quantity    int64     `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"`
}

// ToStockEntryResponse converts a stock entry to its response form
func ToStockEntryResponse(entry *inventory.StockEntry) StockEntryResponse {
	return StockEntryResponse{
		ID:          entry.ID,
		WarehouseID: entry.WarehouseID,
		ProductID:   entry.ProductID,
		Quantity:    entry.Quantity,
		CreatedAt:   entry.CreatedAt,
		UpdatedAt:   entry.UpdatedAt,
		Version:     entry.Version,
	}
}

// AdjustStockRequest represents a request to apply a signed stock delta
type AdjustStockRequest struct {
	WarehouseID uuid.UUID `json:"warehouse_id" binding:"required"`
	ProductID   uuid.UUID `json:"product_id" binding:"required"`
	Delta       int64     `json:"delta" binding:"required"`
	Reason      string    `json:"reason"`
	ActorID     *uuid.UUID `json:"actor_id"`
}

// TransferStockRequest represents a request to move stock between warehouses
type TransferStockRequest struct {
	ProductID       uuid.UUID `json:"product_id" binding:"required"`
	FromWarehouseID uuid.UUID `json:"from_warehouse_id" binding:"required"`
	ToWarehouseID   uuid.UUID `json:"to_warehouse_id" binding:"required"`
	Quantity        int64     `json:"quantity" binding:"required"`
	ActorID         *uuid.UUID `json:"actor_id"`
}

// TransferStockResponse reports the state of both entries after a transfer
type TransferStockResponse struct {
	ProductID    uuid.UUID          `json:"product_id"`
	Quantity     int64              `json:"quantity"`
	Source       StockEntryResponse `json:"source"`
	Destination  StockEntryResponse `json:"destination"`
	TransferTime time.Time          `json:"transfer_time"`
}

// Deduction reports stock removed from one warehouse during a
// multi-warehouse deduction
type Deduction struct {
	WarehouseID uuid.UUID `json:"warehouse_id"`
	Quantity    int64     `json:"quantity"`
}

// ProductStockResponse reports the aggregate quantity of a product
type ProductStockResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Total     int64     `json:"total"`
}

// LowStockItem describes a product whose aggregate stock is at or below
// its reorder level
type LowStockItem struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductCode  string    `json:"product_code"`
	ProductName  string    `json:"product_name"`
	Total        int64     `json:"total"`
	ReorderLevel int64     `json:"reorder_level"`
}
