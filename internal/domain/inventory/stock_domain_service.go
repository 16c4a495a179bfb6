package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/ims/backend/internal/domain/shared"
)

// Deduction records stock removed from one warehouse during a
// multi-warehouse deduction
type Deduction struct {
	WarehouseID uuid.UUID
	EntryID     uuid.UUID
	Quantity    int64
}

// StockDomainService holds stock movement logic that spans more than one
// stock entry. Callers are expected to run these operations inside a
// database transaction; the service still performs explicit compensating
// rollback so partial results never leak even without one.
type StockDomainService struct{}

// NewStockDomainService creates a new StockDomainService
func NewStockDomainService() *StockDomainService {
	return &StockDomainService{}
}

// AddStock increases the stock of a product in one warehouse, creating the
// entry on first movement. Returns the entry and whether it was created.
func (s *StockDomainService) AddStock(ctx context.Context, repo StockEntryRepository, warehouseID, productID uuid.UUID, quantity int64) (*StockEntry, bool, error) {
	if quantity <= 0 {
		return nil, false, shared.ErrInvalidQuantity
	}

	entry, err := repo.FindByWarehouseAndProduct(ctx, warehouseID, productID)
	created := false
	if err == shared.ErrNotFound {
		entry, err = NewStockEntry(warehouseID, productID)
		if err != nil {
			return nil, false, err
		}
		if err := repo.Save(ctx, entry); err != nil {
			return nil, false, err
		}
		created = true
	} else if err != nil {
		return nil, false, err
	}

	if _, err := entry.Adjust(quantity); err != nil {
		return nil, created, err
	}
	if err := repo.SaveWithLock(ctx, entry); err != nil {
		return nil, created, err
	}

	return entry, created, nil
}

// DeductAcrossWarehouses removes a quantity of one product, draining
// warehouses in ascending warehouse ID order so the outcome is
// deterministic. The aggregate quantity is validated up front; if any
// write fails part way, stock already removed is restored before the
// error is returned.
func (s *StockDomainService) DeductAcrossWarehouses(ctx context.Context, repo StockEntryRepository, productID uuid.UUID, quantity int64) ([]Deduction, error) {
	if quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}

	total, err := repo.SumByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if total < quantity {
		return nil, shared.ErrInsufficientStock
	}

	entries, err := repo.FindByProductOrdered(ctx, productID)
	if err != nil {
		return nil, err
	}

	deductions := make([]Deduction, 0, len(entries))
	remaining := quantity

	for _, entry := range entries {
		if remaining == 0 {
			break
		}
		take := entry.Quantity
		if take > remaining {
			take = remaining
		}
		if take == 0 {
			continue
		}

		if _, err := entry.Adjust(-take); err != nil {
			s.rollbackDeductions(ctx, repo, deductions)
			return nil, err
		}
		if err := repo.SaveWithLock(ctx, entry); err != nil {
			s.rollbackDeductions(ctx, repo, deductions)
			return nil, err
		}

		deductions = append(deductions, Deduction{
			WarehouseID: entry.WarehouseID,
			EntryID:     entry.ID,
			Quantity:    take,
		})
		remaining -= take
	}

	// Entries drained between the sum check and the walk
	if remaining > 0 {
		s.rollbackDeductions(ctx, repo, deductions)
		return nil, shared.ErrInsufficientStock
	}

	return deductions, nil
}

// rollbackDeductions restores stock removed by a failed deduction pass.
// Errors here are swallowed; when running inside a transaction the
// surrounding rollback is the final safety net.
func (s *StockDomainService) rollbackDeductions(ctx context.Context, repo StockEntryRepository, deductions []Deduction) {
	for i := len(deductions) - 1; i >= 0; i-- {
		d := deductions[i]
		entry, err := repo.FindByID(ctx, d.EntryID)
		if err != nil {
			continue
		}
		if _, err := entry.Adjust(d.Quantity); err != nil {
			continue
		}
		_ = repo.SaveWithLock(ctx, entry)
	}
}
