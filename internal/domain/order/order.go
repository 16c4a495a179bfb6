package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ims/backend/internal/domain/shared"
)

// LineItem represents a product line within an order
type LineItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_line_item_order_product,priority:1"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_line_item_order_product,priority:2"`
	ProductName string          `gorm:"size:255;not null"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (LineItem) TableName() string {
	return "order_line_items"
}

// NewLineItem creates a new order line item
func NewLineItem(orderID, productID uuid.UUID, productName string, quantity int64, unitPrice decimal.Decimal) (*LineItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &LineItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Amount returns quantity times unit price for this line
func (i *LineItem) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// Order is the aggregate root for both purchase and sales orders.
// The total amount is never stored; it is always derived from the
// line items so the two cannot drift apart.
type Order struct {
	shared.BaseAggregateRoot
	Number      string      `gorm:"size:50;not null;uniqueIndex"`
	Kind        OrderKind   `gorm:"size:20;not null"`
	Status      OrderStatus `gorm:"size:20;not null;default:'pending'"`
	PartyName   string      `gorm:"size:255;not null"` // supplier or customer depending on kind
	CreatedByID uuid.UUID   `gorm:"type:uuid;not null"`
	Items       []LineItem  `gorm:"foreignKey:OrderID"`
	Notes       string      `gorm:"type:text"`
	ApprovedAt  *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order in pending status
func NewOrder(number string, kind OrderKind, partyName string, createdByID uuid.UUID) (*Order, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(number) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Order kind must be purchase or sales")
	}
	if partyName == "" {
		return nil, shared.NewDomainError("INVALID_PARTY", "Party name cannot be empty")
	}
	if createdByID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Creator ID cannot be empty")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		Kind:              kind,
		Status:            OrderStatusPending,
		PartyName:         partyName,
		CreatedByID:       createdByID,
		Items:             make([]LineItem, 0),
	}, nil
}

// AddItem adds a new line item to the order.
// Only allowed in pending status; a product may appear at most once.
func (o *Order) AddItem(productID uuid.UUID, productName string, quantity int64, unitPrice decimal.Decimal) (*LineItem, error) {
	if o.Status != OrderStatusPending {
		return nil, shared.ErrOrderLocked
	}

	for _, item := range o.Items {
		if item.ProductID == productID {
			return nil, shared.ErrDuplicateLineItem
		}
	}

	item, err := NewLineItem(o.ID, productID, productName, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.UpdatedAt = time.Now()

	return item, nil
}

// UpdateItemQuantity updates the quantity of an existing line item.
// Only allowed in pending status.
func (o *Order) UpdateItemQuantity(itemID uuid.UUID, quantity int64) error {
	if o.Status != OrderStatusPending {
		return shared.ErrOrderLocked
	}
	if quantity <= 0 {
		return shared.ErrInvalidQuantity
	}

	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			o.Items[idx].Quantity = quantity
			o.Items[idx].UpdatedAt = time.Now()
			o.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// RemoveItem removes a line item from the order.
// Only allowed in pending status.
func (o *Order) RemoveItem(itemID uuid.UUID) error {
	if o.Status != OrderStatusPending {
		return shared.ErrOrderLocked
	}

	for idx, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// ClearItems removes every line item from the order.
// Only allowed in pending status.
func (o *Order) ClearItems() error {
	if o.Status != OrderStatusPending {
		return shared.ErrOrderLocked
	}

	o.Items = nil
	o.UpdatedAt = time.Now()
	return nil
}

// SetNotes sets the free-form order notes
func (o *Order) SetNotes(notes string) {
	o.Notes = notes
	o.UpdatedAt = time.Now()
}

// Approve transitions the order from pending to approved.
// Requires at least one line item.
func (o *Order) Approve() error {
	if !o.Status.CanTransitionTo(OrderStatusApproved) {
		return shared.NewDomainError("ILLEGAL_TRANSITION", fmt.Sprintf("Cannot approve order in %s status", o.Status))
	}
	if len(o.Items) == 0 {
		return shared.ErrEmptyOrder
	}

	now := time.Now()
	o.Status = OrderStatusApproved
	o.ApprovedAt = &now
	o.UpdatedAt = now

	return nil
}

// Complete transitions the order from approved to completed
func (o *Order) Complete() error {
	if !o.Status.CanTransitionTo(OrderStatusCompleted) {
		return shared.NewDomainError("ILLEGAL_TRANSITION", fmt.Sprintf("Cannot complete order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusCompleted
	o.CompletedAt = &now
	o.UpdatedAt = now

	return nil
}

// Cancel transitions the order to cancelled from any non-terminal status
func (o *Order) Cancel() error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewDomainError("ILLEGAL_TRANSITION", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.UpdatedAt = now

	return nil
}

// WasApproved reports whether the order has ever passed approval
func (o *Order) WasApproved() bool {
	return o.ApprovedAt != nil
}

// TotalAmount returns the sum of all line amounts
func (o *Order) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount())
	}
	return total
}

// TotalQuantity returns the sum of all line quantities
func (o *Order) TotalQuantity() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// ItemCount returns the number of line items in the order
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// IsPending returns true if the order is pending
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// IsApproved returns true if the order is approved
func (o *Order) IsApproved() bool {
	return o.Status == OrderStatusApproved
}

// IsCompleted returns true if the order is completed
func (o *Order) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}

// IsCancelled returns true if the order is cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

// IsTerminal returns true if the order is completed or cancelled
func (o *Order) IsTerminal() bool {
	return o.Status.IsTerminal()
}

// IsActive returns true until the order reaches a terminal status
func (o *Order) IsActive() bool {
	return !o.IsTerminal()
}

// CanModify returns true if line items may still be changed
func (o *Order) CanModify() bool {
	return o.IsPending()
}

// GetItemByProduct returns a line item by product ID
func (o *Order) GetItemByProduct(productID uuid.UUID) *LineItem {
	for idx := range o.Items {
		if o.Items[idx].ProductID == productID {
			return &o.Items[idx]
		}
	}
	return nil
}
