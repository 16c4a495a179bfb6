package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidQuantity     = NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	ErrInvalidTransfer     = NewDomainError("INVALID_TRANSFER", "Source and destination warehouses must differ")
	ErrInsufficientStock   = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrIllegalTransition   = NewDomainError("ILLEGAL_TRANSITION", "Status transition not permitted")
	ErrEmptyOrder          = NewDomainError("EMPTY_ORDER", "Order has no line items")
	ErrOrderLocked         = NewDomainError("ORDER_LOCKED", "Line items cannot be changed in the current status")
	ErrDuplicateLineItem   = NewDomainError("DUPLICATE_LINE_ITEM", "Product already present in order")
)
