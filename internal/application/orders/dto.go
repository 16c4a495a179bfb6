package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ims/backend/internal/domain/order"
)

// LineItemRequest is one product line in a create or update request
type LineItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest represents a request to open a new order
type CreateOrderRequest struct {
	Kind      string            `json:"kind" binding:"required,oneof=purchase sales"`
	Number    string            `json:"number"`
	PartyName string            `json:"party_name" binding:"required"`
	Notes     string            `json:"notes"`
	Items     []LineItemRequest `json:"items"`
}

// UpdateStatusRequest represents a request to move an order to a new
// status, optionally revising its line items in the same transaction
type UpdateStatusRequest struct {
	Status string            `json:"status" binding:"required"`
	Items  []LineItemRequest `json:"items" binding:"omitempty,dive"`
}

// ReplaceItemsRequest represents a request to swap the full line item
// set of a pending order
type ReplaceItemsRequest struct {
	Items []LineItemRequest `json:"items" binding:"dive"`
}

// LineItemResponse represents a line item in API responses
type LineItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID          uuid.UUID          `json:"id"`
	Number      string             `json:"number"`
	Kind        string             `json:"kind"`
	Status      string             `json:"status"`
	PartyName   string             `json:"party_name"`
	IsActive    bool               `json:"is_active"`
	CreatedByID uuid.UUID          `json:"created_by_id"`
	Items       []LineItemResponse `json:"items"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Notes       string             `json:"notes,omitempty"`
	ApprovedAt  *time.Time         `json:"approved_at,omitempty"`
	CompletedAt *time.Time         `json:"completed_at,omitempty"`
	CancelledAt *time.Time         `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Version     int                `json:"version"`
}

// ToOrderResponse converts an order to its response form
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]LineItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, LineItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount(),
		})
	}

	return OrderResponse{
		ID:          o.ID,
		Number:      o.Number,
		Kind:        o.Kind.String(),
		Status:      o.Status.String(),
		PartyName:   o.PartyName,
		IsActive:    o.IsActive(),
		CreatedByID: o.CreatedByID,
		Items:       items,
		TotalAmount: o.TotalAmount(),
		Notes:       o.Notes,
		ApprovedAt:  o.ApprovedAt,
		CompletedAt: o.CompletedAt,
		CancelledAt: o.CancelledAt,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Version:     o.Version,
	}
}
