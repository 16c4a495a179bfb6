package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/ims/backend/internal/domain/audit"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/inventory"
	"github.com/ims/backend/internal/domain/shared"
)

// LedgerService handles stock level queries and adjustments.
// All writes run inside a transaction scope so stock changes and their
// history records commit or roll back together.
type LedgerService struct {
	stockRepo     inventory.StockEntryRepository
	productRepo   catalog.ProductRepository
	domainService *inventory.StockDomainService
	txScope       TransactionScope
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	stockRepo inventory.StockEntryRepository,
	productRepo catalog.ProductRepository,
	txScope TransactionScope,
) *LedgerService {
	return &LedgerService{
		stockRepo:     stockRepo,
		productRepo:   productRepo,
		domainService: inventory.NewStockDomainService(),
		txScope:       txScope,
	}
}

// GetQuantity returns the quantity of a product in one warehouse.
// A pair that has never moved stock reports zero rather than not-found.
func (s *LedgerService) GetQuantity(ctx context.Context, warehouseID, productID uuid.UUID) (int64, error) {
	entry, err := s.stockRepo.FindByWarehouseAndProduct(ctx, warehouseID, productID)
	if err == shared.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return entry.Quantity, nil
}

// GetTotalQuantity returns the aggregate quantity of a product across all warehouses
func (s *LedgerService) GetTotalQuantity(ctx context.Context, productID uuid.UUID) (int64, error) {
	return s.stockRepo.SumByProduct(ctx, productID)
}

// ListEntries returns stock entries matching the filter
func (s *LedgerService) ListEntries(ctx context.Context, filter shared.Filter) ([]StockEntryResponse, error) {
	entries, err := s.stockRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toResponses(entries), nil
}

// ListByWarehouse returns stock entries in one warehouse
func (s *LedgerService) ListByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]StockEntryResponse, error) {
	entries, err := s.stockRepo.FindByWarehouse(ctx, warehouseID, filter)
	if err != nil {
		return nil, err
	}
	return toResponses(entries), nil
}

// Adjust applies a signed delta to one warehouse-product pair. The entry
// is created on first movement; a delta that would drive the quantity
// negative fails with INSUFFICIENT_STOCK and changes nothing.
func (s *LedgerService) Adjust(ctx context.Context, req AdjustStockRequest) (*StockEntryResponse, error) {
	if req.Delta == 0 {
		return nil, shared.ErrInvalidQuantity
	}

	var result StockEntryResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		entry, err := repos.StockRepo().FindByWarehouseAndProduct(ctx, req.WarehouseID, req.ProductID)
		created := false
		if err == shared.ErrNotFound {
			if req.Delta < 0 {
				return shared.ErrInsufficientStock
			}
			entry, err = inventory.NewStockEntry(req.WarehouseID, req.ProductID)
			if err != nil {
				return err
			}
			if err := repos.StockRepo().Save(ctx, entry); err != nil {
				return err
			}
			created = true
		} else if err != nil {
			return err
		}

		if _, err := entry.Adjust(req.Delta); err != nil {
			return err
		}
		if err := repos.StockRepo().SaveWithLock(ctx, entry); err != nil {
			return err
		}

		if created {
			if err := s.appendStockHistory(ctx, repos.HistoryRepo(), entry, audit.ActionCreated, req.Reason, req.ActorID); err != nil {
				return err
			}
		}
		if err := s.appendStockHistory(ctx, repos.HistoryRepo(), entry, audit.ActionUpdated, req.Reason, req.ActorID); err != nil {
			return err
		}

		result = ToStockEntryResponse(entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// DeductAcrossWarehouses removes a quantity of one product across
// warehouses in ascending warehouse ID order, recording one history
// entry per touched warehouse.
func (s *LedgerService) DeductAcrossWarehouses(ctx context.Context, productID uuid.UUID, quantity int64, actorID *uuid.UUID) ([]Deduction, error) {
	var out []Deduction
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		deductions, err := s.domainService.DeductAcrossWarehouses(ctx, repos.StockRepo(), productID, quantity)
		if err != nil {
			return err
		}

		for _, d := range deductions {
			entry, err := repos.StockRepo().FindByID(ctx, d.EntryID)
			if err != nil {
				return err
			}
			if err := s.appendStockHistory(ctx, repos.HistoryRepo(), entry, audit.ActionUpdated, "multi-warehouse deduction", actorID); err != nil {
				return err
			}
			out = append(out, Deduction{WarehouseID: d.WarehouseID, Quantity: d.Quantity})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ProductTotals returns per-product aggregate quantities
func (s *LedgerService) ProductTotals(ctx context.Context) ([]ProductStockResponse, error) {
	totals, err := s.stockRepo.SumAllByProduct(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ProductStockResponse, 0, len(totals))
	for _, t := range totals {
		out = append(out, ProductStockResponse{ProductID: t.ProductID, Total: t.Total})
	}
	return out, nil
}

// LowStock reports products whose aggregate quantity is at or below their
// reorder level. Products that have never had stock count as zero.
func (s *LedgerService) LowStock(ctx context.Context, filter shared.Filter) ([]LowStockItem, error) {
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	totals, err := s.stockRepo.SumAllByProduct(ctx)
	if err != nil {
		return nil, err
	}

	totalByProduct := make(map[uuid.UUID]int64, len(totals))
	for _, t := range totals {
		totalByProduct[t.ProductID] = t.Total
	}

	out := make([]LowStockItem, 0)
	for _, p := range products {
		total := totalByProduct[p.ID]
		if p.ReorderLevel > 0 && p.IsBelowReorder(total) {
			out = append(out, LowStockItem{
				ProductID:    p.ID,
				ProductCode:  p.Code,
				ProductName:  p.Name,
				Total:        total,
				ReorderLevel: p.ReorderLevel,
			})
		}
	}
	return out, nil
}

func (s *LedgerService) appendStockHistory(ctx context.Context, historyRepo audit.Repository, entry *inventory.StockEntry, action audit.HistoryAction, details string, actorID *uuid.UUID) error {
	record, err := audit.NewHistoryRecord(audit.HistoryKindStock, action, entry.ID, audit.HistoryLines{{
		ProductID: entry.ProductID,
		Quantity:  entry.Quantity,
	}})
	if err != nil {
		return err
	}

	record.WithWarehouse(entry.WarehouseID).WithDetails(details)
	if actorID != nil {
		record.WithActor(*actorID)
	}

	return historyRepo.Append(ctx, record)
}

func toResponses(entries []*inventory.StockEntry) []StockEntryResponse {
	out := make([]StockEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, ToStockEntryResponse(entry))
	}
	return out
}
