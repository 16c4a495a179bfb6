package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ims/backend/internal/domain/audit"
	"github.com/ims/backend/internal/domain/identity"
	"github.com/ims/backend/internal/domain/inventory"
	"github.com/ims/backend/internal/domain/order"
	"github.com/ims/backend/internal/domain/shared"
	"github.com/ims/backend/internal/domain/warehouse"
)

// Actor identifies the user performing an operation together with their role
type Actor struct {
	ID   uuid.UUID
	Role identity.Role
}

// OrderService drives the order lifecycle. Every status change runs as a
// single transaction covering the order row, any stock movement the change
// implies, and the history records describing both.
type OrderService struct {
	orderRepo          order.Repository
	stockService       *inventory.StockDomainService
	txScope            TransactionScope
	defaultWarehouseID uuid.UUID
}

// NewOrderService creates a new OrderService. defaultWarehouseID may be
// uuid.Nil, in which case the warehouse flagged as default is used for
// purchase receipts and sales returns.
func NewOrderService(orderRepo order.Repository, txScope TransactionScope, defaultWarehouseID uuid.UUID) *OrderService {
	return &OrderService{
		orderRepo:          orderRepo,
		stockService:       inventory.NewStockDomainService(),
		txScope:            txScope,
		defaultWarehouseID: defaultWarehouseID,
	}
}

// Get returns one order by ID
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// List returns orders matching the filter, optionally restricted to one kind
func (s *OrderService) List(ctx context.Context, kind string, filter shared.Filter) ([]OrderResponse, error) {
	var (
		found []*order.Order
		err   error
	)
	if kind == "" {
		found, err = s.orderRepo.FindAll(ctx, filter)
	} else {
		k := order.OrderKind(kind)
		if !k.IsValid() {
			return nil, shared.NewDomainError("INVALID_KIND", "Order kind must be purchase or sales")
		}
		found, err = s.orderRepo.FindByKind(ctx, k, filter)
	}
	if err != nil {
		return nil, err
	}

	out := make([]OrderResponse, 0, len(found))
	for _, o := range found {
		out = append(out, ToOrderResponse(o))
	}
	return out, nil
}

// Create opens a new order in pending status. Suppliers may only open
// purchase orders and customers only sales orders; warehouse personnel
// may open either.
func (s *OrderService) Create(ctx context.Context, actor Actor, req CreateOrderRequest) (*OrderResponse, error) {
	kind := order.OrderKind(req.Kind)
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Order kind must be purchase or sales")
	}
	if err := s.checkCreatePermission(actor, kind); err != nil {
		return nil, err
	}

	number := strings.TrimSpace(req.Number)
	if number == "" {
		number = generateOrderNumber(kind)
	}

	var result OrderResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := order.NewOrder(number, kind, req.PartyName, actor.ID)
		if err != nil {
			return err
		}
		if req.Notes != "" {
			o.SetNotes(req.Notes)
		}

		for _, item := range req.Items {
			product, err := repos.ProductRepo().FindByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if _, err := o.AddItem(product.ID, product.Name, item.Quantity, product.UnitPrice); err != nil {
				return err
			}
		}

		if err := repos.OrderRepo().Save(ctx, o); err != nil {
			return err
		}

		if err := s.appendOrderHistory(ctx, repos.HistoryRepo(), o, audit.ActionCreated, "", actor); err != nil {
			return err
		}

		result = ToOrderResponse(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// AddItem adds a line item to a pending order
func (s *OrderService) AddItem(ctx context.Context, actor Actor, orderID uuid.UUID, item LineItemRequest) (*OrderResponse, error) {
	var result OrderResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := s.checkModifyPermission(actor, o); err != nil {
			return err
		}

		product, err := repos.ProductRepo().FindByID(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if _, err := o.AddItem(product.ID, product.Name, item.Quantity, product.UnitPrice); err != nil {
			return err
		}

		if err := repos.OrderRepo().SaveWithLock(ctx, o); err != nil {
			return err
		}

		result = ToOrderResponse(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// RemoveItem removes a line item from a pending order
func (s *OrderService) RemoveItem(ctx context.Context, actor Actor, orderID, itemID uuid.UUID) (*OrderResponse, error) {
	var result OrderResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := s.checkModifyPermission(actor, o); err != nil {
			return err
		}

		if err := o.RemoveItem(itemID); err != nil {
			return err
		}
		if err := repos.OrderRepo().SaveWithLock(ctx, o); err != nil {
			return err
		}

		result = ToOrderResponse(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// ReplaceItems swaps the full line item set of a pending order for the
// given items in one transaction. Any item payload against a non-pending
// order is rejected with ORDER_LOCKED.
func (s *OrderService) ReplaceItems(ctx context.Context, actor Actor, orderID uuid.UUID, items []LineItemRequest) (*OrderResponse, error) {
	var result OrderResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := s.checkModifyPermission(actor, o); err != nil {
			return err
		}

		if err := s.replaceLineItems(ctx, repos, o, items); err != nil {
			return err
		}
		if err := repos.OrderRepo().SaveWithLock(ctx, o); err != nil {
			return err
		}

		result = ToOrderResponse(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// replaceLineItems clears the order and rebuilds its items from the
// requested lines, repricing each from the current product catalog
func (s *OrderService) replaceLineItems(ctx context.Context, repos TransactionalRepositories, o *order.Order, items []LineItemRequest) error {
	if err := o.ClearItems(); err != nil {
		return err
	}
	for _, item := range items {
		product, err := repos.ProductRepo().FindByID(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if _, err := o.AddItem(product.ID, product.Name, item.Quantity, product.UnitPrice); err != nil {
			return err
		}
	}
	return nil
}

// UpdateStatus moves an order to a new status, applying the stock effects
// the transition implies:
//
//   - sales approval validates aggregate stock for every line, then deducts
//     it across warehouses in ascending warehouse ID order
//   - purchase completion receives every line into the default warehouse
//   - cancelling a sales order that had been approved returns its stock
//     to the default warehouse
//
// The legacy status value "confirmed" is accepted as an alias of
// "completed".
func (s *OrderService) UpdateStatus(ctx context.Context, actor Actor, orderID uuid.UUID, rawStatus string) (*OrderResponse, error) {
	return s.UpdateStatusWithItems(ctx, actor, orderID, rawStatus, nil)
}

// UpdateStatusWithItems is UpdateStatus with an optional final item
// revision applied in the same transaction, just before the transition.
// Items may only accompany a transition out of pending.
func (s *OrderService) UpdateStatusWithItems(ctx context.Context, actor Actor, orderID uuid.UUID, rawStatus string, items []LineItemRequest) (*OrderResponse, error) {
	target, ok := order.ParseStatus(rawStatus)
	if !ok {
		return nil, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", rawStatus))
	}

	var result OrderResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := s.checkTransitionPermission(actor, o, target); err != nil {
			return err
		}

		if len(items) > 0 {
			if err := s.replaceLineItems(ctx, repos, o, items); err != nil {
				return err
			}
		}

		previous := o.Status

		switch target {
		case order.OrderStatusApproved:
			if err := o.Approve(); err != nil {
				return err
			}
			if o.Kind == order.OrderKindSales {
				if err := s.deductForSales(ctx, repos, o, actor); err != nil {
					return err
				}
			}
			if err := s.appendOrderHistory(ctx, repos.HistoryRepo(), o, audit.ActionStatusChanged,
				fmt.Sprintf("%s -> %s", previous, o.Status), actor); err != nil {
				return err
			}

		case order.OrderStatusCompleted:
			if err := o.Complete(); err != nil {
				return err
			}
			if o.Kind == order.OrderKindPurchase {
				if err := s.receiveAtDefault(ctx, repos, o, actor); err != nil {
					return err
				}
			}
			if err := s.appendOrderHistory(ctx, repos.HistoryRepo(), o, audit.ActionOrderCompleted,
				fmt.Sprintf("%s -> %s", previous, o.Status), actor); err != nil {
				return err
			}

		case order.OrderStatusCancelled:
			wasApproved := o.WasApproved()
			if err := o.Cancel(); err != nil {
				return err
			}
			if o.Kind == order.OrderKindSales && wasApproved {
				if err := s.receiveAtDefault(ctx, repos, o, actor); err != nil {
					return err
				}
			}
			if err := s.appendOrderHistory(ctx, repos.HistoryRepo(), o, audit.ActionOrderCancelled,
				fmt.Sprintf("%s -> %s", previous, o.Status), actor); err != nil {
				return err
			}

		default:
			return shared.ErrIllegalTransition
		}

		if err := repos.OrderRepo().SaveWithLock(ctx, o); err != nil {
			return err
		}

		result = ToOrderResponse(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// deductForSales removes every line's quantity from stock. The aggregate
// level per product is validated before anything is touched, so an order
// that cannot be fully served fails without partial deduction.
func (s *OrderService) deductForSales(ctx context.Context, repos TransactionalRepositories, o *order.Order, actor Actor) error {
	for _, item := range o.Items {
		total, err := repos.StockRepo().SumByProduct(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if total < item.Quantity {
			return shared.ErrInsufficientStock
		}
	}

	for _, item := range o.Items {
		deductions, err := s.stockService.DeductAcrossWarehouses(ctx, repos.StockRepo(), item.ProductID, item.Quantity)
		if err != nil {
			return err
		}
		for _, d := range deductions {
			if err := s.appendStockHistory(ctx, repos.HistoryRepo(), d.EntryID, d.WarehouseID, item, audit.ActionUpdated, o.Number, actor); err != nil {
				return err
			}
		}
	}
	return nil
}

// receiveAtDefault adds every line's quantity to the default warehouse
func (s *OrderService) receiveAtDefault(ctx context.Context, repos TransactionalRepositories, o *order.Order, actor Actor) error {
	wh, err := s.resolveDefaultWarehouse(ctx, repos.WarehouseRepo())
	if err != nil {
		return err
	}

	for _, item := range o.Items {
		entry, created, err := s.stockService.AddStock(ctx, repos.StockRepo(), wh.ID, item.ProductID, item.Quantity)
		if err != nil {
			return err
		}
		if created {
			if err := s.appendStockHistory(ctx, repos.HistoryRepo(), entry.ID, wh.ID, item, audit.ActionCreated, o.Number, actor); err != nil {
				return err
			}
		}
		if err := s.appendStockHistory(ctx, repos.HistoryRepo(), entry.ID, wh.ID, item, audit.ActionUpdated, o.Number, actor); err != nil {
			return err
		}
	}
	return nil
}

func (s *OrderService) resolveDefaultWarehouse(ctx context.Context, repo warehouse.Repository) (*warehouse.Warehouse, error) {
	if s.defaultWarehouseID != uuid.Nil {
		return repo.FindByID(ctx, s.defaultWarehouseID)
	}
	return repo.FindDefault(ctx)
}

func (s *OrderService) checkCreatePermission(actor Actor, kind order.OrderKind) error {
	switch kind {
	case order.OrderKindPurchase:
		if !actor.Role.CanCreatePurchaseOrder() {
			return shared.ErrForbidden
		}
	case order.OrderKindSales:
		if !actor.Role.CanCreateSalesOrder() {
			return shared.ErrForbidden
		}
	}
	return nil
}

func (s *OrderService) checkModifyPermission(actor Actor, o *order.Order) error {
	if actor.Role.IsStaffLike() || actor.ID == o.CreatedByID {
		return nil
	}
	return shared.ErrForbidden
}

// checkTransitionPermission gates transitions by role: approval and
// completion need warehouse personnel, cancellation is also open to the
// order's creator.
func (s *OrderService) checkTransitionPermission(actor Actor, o *order.Order, target order.OrderStatus) error {
	if target == order.OrderStatusCancelled {
		if actor.Role.CanApproveOrders() || actor.ID == o.CreatedByID {
			return nil
		}
		return shared.ErrForbidden
	}
	if !actor.Role.CanApproveOrders() {
		return shared.ErrForbidden
	}
	return nil
}

func (s *OrderService) appendOrderHistory(ctx context.Context, historyRepo audit.Repository, o *order.Order, action audit.HistoryAction, details string, actor Actor) error {
	lines := make(audit.HistoryLines, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, audit.HistoryLine{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
		})
	}

	record, err := audit.NewHistoryRecord(historyKindFor(o.Kind), action, o.ID, lines)
	if err != nil {
		return err
	}
	record.WithReference(o.Number).
		WithTotalAmount(o.TotalAmount()).
		WithDetails(details).
		WithActor(actor.ID)

	return historyRepo.Append(ctx, record)
}

func (s *OrderService) appendStockHistory(ctx context.Context, historyRepo audit.Repository, entryID, warehouseID uuid.UUID, item order.LineItem, action audit.HistoryAction, reference string, actor Actor) error {
	record, err := audit.NewHistoryRecord(audit.HistoryKindStock, action, entryID, audit.HistoryLines{{
		ProductID:   item.ProductID,
		ProductName: item.ProductName,
		Quantity:    item.Quantity,
	}})
	if err != nil {
		return err
	}
	record.WithWarehouse(warehouseID).
		WithReference(reference).
		WithActor(actor.ID)

	return historyRepo.Append(ctx, record)
}

func historyKindFor(kind order.OrderKind) audit.HistoryKind {
	if kind == order.OrderKindPurchase {
		return audit.HistoryKindPurchase
	}
	return audit.HistoryKindSales
}

// generateOrderNumber builds an order number like PO-20260901-3F2D1A
func generateOrderNumber(kind order.OrderKind) string {
	prefix := "SO"
	if kind == order.OrderKindPurchase {
		prefix = "PO"
	}
	suffix := strings.ToUpper(uuid.NewString()[:6])
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().Format("20060102"), suffix)
}
