package audit

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ims/backend/internal/domain/shared"
)

// HistoryKind classifies what part of the system a history record describes
type HistoryKind string

const (
	HistoryKindPurchase HistoryKind = "purchase"
	HistoryKindSales    HistoryKind = "sales"
	HistoryKindStock    HistoryKind = "stock"
)

// IsValid returns true if the kind is a known HistoryKind
func (k HistoryKind) IsValid() bool {
	switch k {
	case HistoryKindPurchase, HistoryKindSales, HistoryKindStock:
		return true
	}
	return false
}

// String returns the string representation of HistoryKind
func (k HistoryKind) String() string {
	return string(k)
}

// HistoryAction names the event that produced a history record
type HistoryAction string

const (
	ActionCreated        HistoryAction = "created"
	ActionUpdated        HistoryAction = "updated"
	ActionStatusChanged  HistoryAction = "status_changed"
	ActionOrderCompleted HistoryAction = "order_completed"
	ActionOrderCancelled HistoryAction = "order_cancelled"
	ActionTransferIn     HistoryAction = "transfer-in"
	ActionTransferOut    HistoryAction = "transfer-out"
)

// IsValid returns true if the action is a known HistoryAction
func (a HistoryAction) IsValid() bool {
	switch a {
	case ActionCreated, ActionUpdated, ActionStatusChanged,
		ActionOrderCompleted, ActionOrderCancelled,
		ActionTransferIn, ActionTransferOut:
		return true
	}
	return false
}

// String returns the string representation of HistoryAction
func (a HistoryAction) String() string {
	return string(a)
}

// validForKind restricts which actions each kind may record
func (a HistoryAction) validForKind(k HistoryKind) bool {
	switch k {
	case HistoryKindStock:
		return a == ActionCreated || a == ActionUpdated ||
			a == ActionTransferIn || a == ActionTransferOut
	case HistoryKindPurchase, HistoryKindSales:
		return a == ActionCreated || a == ActionStatusChanged ||
			a == ActionOrderCompleted || a == ActionOrderCancelled
	}
	return false
}

// HistoryLine captures one product quantity inside a history record
type HistoryLine struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int64     `json:"quantity"`
}

// HistoryLines is stored as a JSONB column
type HistoryLines []HistoryLine

// Value implements driver.Valuer
func (l HistoryLines) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (l *HistoryLines) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("unsupported type %T for HistoryLines", value)
}

// HistoryRecord is an immutable audit entry for order and stock activity.
// Once created, records are never modified or deleted; corrections appear
// as new records.
type HistoryRecord struct {
	shared.BaseEntity
	Kind        HistoryKind     `gorm:"type:varchar(20);not null;index:idx_history_kind_time,priority:1"`
	Action      HistoryAction   `gorm:"type:varchar(30);not null;index"`
	ReferenceID uuid.UUID       `gorm:"type:uuid;not null;index"` // order ID or stock entry ID
	Reference   string          `gorm:"type:varchar(100)"`        // human-readable number or label
	WarehouseID *uuid.UUID      `gorm:"type:uuid;index"`
	Lines       HistoryLines    `gorm:"type:jsonb;not null"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Details     string          `gorm:"type:varchar(255)"`
	ActorID     *uuid.UUID      `gorm:"type:uuid"`
	OccurredAt  time.Time       `gorm:"type:timestamptz;not null;index:idx_history_kind_time,priority:2"`
}

// TableName returns the table name for GORM
func (HistoryRecord) TableName() string {
	return "history_records"
}

// NewHistoryRecord creates a new history record
func NewHistoryRecord(kind HistoryKind, action HistoryAction, referenceID uuid.UUID, lines HistoryLines) (*HistoryRecord, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_HISTORY_KIND", "Invalid history kind")
	}
	if !action.IsValid() {
		return nil, shared.NewDomainError("INVALID_HISTORY_ACTION", "Invalid history action")
	}
	if !action.validForKind(kind) {
		return nil, shared.NewDomainError("INVALID_HISTORY_ACTION", fmt.Sprintf("Action %s not allowed for %s history", action, kind))
	}
	if referenceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Reference ID cannot be empty")
	}

	if lines == nil {
		lines = HistoryLines{}
	}

	return &HistoryRecord{
		BaseEntity:  shared.NewBaseEntity(),
		Kind:        kind,
		Action:      action,
		ReferenceID: referenceID,
		Lines:       lines,
		TotalAmount: decimal.Zero,
		OccurredAt:  time.Now(),
	}, nil
}

// WithReference sets a human-readable reference label
func (r *HistoryRecord) WithReference(reference string) *HistoryRecord {
	r.Reference = reference
	return r
}

// WithWarehouse attaches the warehouse the record concerns
func (r *HistoryRecord) WithWarehouse(warehouseID uuid.UUID) *HistoryRecord {
	r.WarehouseID = &warehouseID
	return r
}

// WithTotalAmount sets the monetary total at the time of the event
func (r *HistoryRecord) WithTotalAmount(amount decimal.Decimal) *HistoryRecord {
	r.TotalAmount = amount
	return r
}

// WithDetails sets a free-form description
func (r *HistoryRecord) WithDetails(details string) *HistoryRecord {
	r.Details = details
	return r
}

// WithActor records the user who triggered the event
func (r *HistoryRecord) WithActor(actorID uuid.UUID) *HistoryRecord {
	r.ActorID = &actorID
	return r
}

// TotalQuantity returns the sum of all line quantities
func (r *HistoryRecord) TotalQuantity() int64 {
	var total int64
	for _, line := range r.Lines {
		total += line.Quantity
	}
	return total
}

// IsOrderHistory reports whether the record concerns an order
func (r *HistoryRecord) IsOrderHistory() bool {
	return r.Kind == HistoryKindPurchase || r.Kind == HistoryKindSales
}
