package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ims/backend/internal/domain/audit"
	"github.com/ims/backend/internal/domain/shared"
)

// HistoryQuery carries the HTTP-facing filter options for listing history
type HistoryQuery struct {
	Kind        string     `form:"kind" binding:"omitempty,oneof=purchase sales stock"`
	Action      string     `form:"action"`
	ReferenceID *uuid.UUID `form:"reference_id"`
	WarehouseID *uuid.UUID `form:"warehouse_id"`
	From        *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To          *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Page        int        `form:"page"`
	PageSize    int        `form:"page_size" binding:"omitempty,max=100"`
}

// HistoryRecordResponse represents a history record in API responses
type HistoryRecordResponse struct {
	ID          uuid.UUID          `json:"id"`
	Kind        string             `json:"kind"`
	Action      string             `json:"action"`
	ReferenceID uuid.UUID          `json:"reference_id"`
	Reference   string             `json:"reference,omitempty"`
	WarehouseID *uuid.UUID         `json:"warehouse_id,omitempty"`
	Lines       audit.HistoryLines `json:"lines"`
	TotalAmount string             `json:"total_amount"`
	Details     string             `json:"details,omitempty"`
	ActorID     *uuid.UUID         `json:"actor_id,omitempty"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

// HistoryService serves read access to the audit trail. Records are only
// ever written by the stock and order services; this service never
// mutates them.
type HistoryService struct {
	historyRepo audit.Repository
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(historyRepo audit.Repository) *HistoryService {
	return &HistoryService{historyRepo: historyRepo}
}

// List returns history records matching the query, newest first
func (s *HistoryService) List(ctx context.Context, query HistoryQuery) (*shared.Paginated[HistoryRecordResponse], error) {
	filter := s.toFilter(query)

	records, err := s.historyRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.historyRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]HistoryRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toRecordResponse(r))
	}

	page := shared.NewPaginated(out, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListByReference returns all records for one order or stock entry
func (s *HistoryService) ListByReference(ctx context.Context, referenceID uuid.UUID) ([]HistoryRecordResponse, error) {
	records, err := s.historyRepo.FindByReference(ctx, referenceID)
	if err != nil {
		return nil, err
	}

	out := make([]HistoryRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toRecordResponse(r))
	}
	return out, nil
}

func (s *HistoryService) toFilter(query HistoryQuery) audit.HistoryFilter {
	filter := audit.HistoryFilter{
		Kind:   audit.HistoryKind(query.Kind),
		Action: audit.HistoryAction(query.Action),
		Filter: shared.DefaultFilter(),
	}
	if query.ReferenceID != nil {
		filter.ReferenceID = *query.ReferenceID
	}
	if query.WarehouseID != nil {
		filter.WarehouseID = *query.WarehouseID
	}
	if query.From != nil {
		filter.From = *query.From
	}
	if query.To != nil {
		filter.To = *query.To
	}
	if query.Page > 0 {
		filter.Page = query.Page
	}
	if query.PageSize > 0 {
		filter.PageSize = query.PageSize
	}
	return filter
}

func toRecordResponse(r *audit.HistoryRecord) HistoryRecordResponse {
	return HistoryRecordResponse{
		ID:          r.ID,
		Kind:        r.Kind.String(),
		Action:      r.Action.String(),
		ReferenceID: r.ReferenceID,
		Reference:   r.Reference,
		WarehouseID: r.WarehouseID,
		Lines:       r.Lines,
		TotalAmount: r.TotalAmount.StringFixed(2),
		Details:     r.Details,
		ActorID:     r.ActorID,
		OccurredAt:  r.OccurredAt,
	}
}
