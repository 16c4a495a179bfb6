package order

// OrderStatus represents the lifecycle status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusApproved  OrderStatus = "approved"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusApproved, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is allowed from the status
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status.
// Orders must pass through approval before completion; cancellation is
// allowed from any non-terminal status.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusApproved || target == OrderStatusCancelled
	case OrderStatusApproved:
		return target == OrderStatusCompleted || target == OrderStatusCancelled
	case OrderStatusCompleted, OrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// ParseStatus normalizes a raw status string. The legacy value
// "confirmed" is accepted as an alias of "completed".
func ParseStatus(raw string) (OrderStatus, bool) {
	if raw == "confirmed" {
		return OrderStatusCompleted, true
	}
	s := OrderStatus(raw)
	if s.IsValid() {
		return s, true
	}
	return "", false
}

// OrderKind distinguishes purchase orders from sales orders
type OrderKind string

const (
	OrderKindPurchase OrderKind = "purchase"
	OrderKindSales    OrderKind = "sales"
)

// IsValid checks if the kind is a valid OrderKind
func (k OrderKind) IsValid() bool {
	return k == OrderKindPurchase || k == OrderKindSales
}

// String returns the string representation of OrderKind
func (k OrderKind) String() string {
	return string(k)
}
