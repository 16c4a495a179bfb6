package inventory

import (
	"context"
	"time"

	"github.com/ims/backend/internal/domain/audit"
	"github.com/ims/backend/internal/domain/inventory"
	"github.com/ims/backend/internal/domain/shared"
)

// TransferService moves stock between warehouses. A transfer is a single
// atomic operation: the source deduction, the destination addition and the
// paired history records all commit together or not at all.
type TransferService struct {
	txScope TransactionScope
}

// NewTransferService creates a new TransferService
func NewTransferService(txScope TransactionScope) *TransferService {
	return &TransferService{txScope: txScope}
}

// Transfer moves a quantity of one product from one warehouse to another.
// The source entry must already exist with enough stock; the destination
// entry is created on demand. Two history records are written, one
// transfer-out against the source and one transfer-in against the
// destination.
func (s *TransferService) Transfer(ctx context.Context, req TransferStockRequest) (*TransferStockResponse, error) {
	if req.Quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}
	if req.FromWarehouseID == req.ToWarehouseID {
		return nil, shared.ErrInvalidTransfer
	}

	var result TransferStockResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.WarehouseRepo().FindByID(ctx, req.ToWarehouseID); err != nil {
			return err
		}

		source, err := repos.StockRepo().FindByWarehouseAndProduct(ctx, req.FromWarehouseID, req.ProductID)
		if err != nil {
			return err
		}
		if !source.CanDeduct(req.Quantity) {
			return shared.ErrInsufficientStock
		}

		dest, err := repos.StockRepo().GetOrCreate(ctx, req.ToWarehouseID, req.ProductID)
		if err != nil {
			return err
		}

		if _, err := source.Adjust(-req.Quantity); err != nil {
			return err
		}
		if _, err := dest.Adjust(req.Quantity); err != nil {
			return err
		}

		if err := repos.StockRepo().SaveWithLock(ctx, source); err != nil {
			return err
		}
		if err := repos.StockRepo().SaveWithLock(ctx, dest); err != nil {
			return err
		}

		if err := s.appendTransferHistory(ctx, repos.HistoryRepo(), source, audit.ActionTransferOut, req); err != nil {
			return err
		}
		if err := s.appendTransferHistory(ctx, repos.HistoryRepo(), dest, audit.ActionTransferIn, req); err != nil {
			return err
		}

		result = TransferStockResponse{
			ProductID:    req.ProductID,
			Quantity:     req.Quantity,
			Source:       ToStockEntryResponse(source),
			Destination:  ToStockEntryResponse(dest),
			TransferTime: time.Now(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *TransferService) appendTransferHistory(ctx context.Context, historyRepo audit.Repository, entry *inventory.StockEntry, action audit.HistoryAction, req TransferStockRequest) error {
	record, err := audit.NewHistoryRecord(audit.HistoryKindStock, action, entry.ID, audit.HistoryLines{{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}})
	if err != nil {
		return err
	}

	record.WithWarehouse(entry.WarehouseID)
	if req.ActorID != nil {
		record.WithActor(*req.ActorID)
	}

	return historyRepo.Append(ctx, record)
}
