package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ims/backend/internal/domain/audit"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/identity"
	"github.com/ims/backend/internal/domain/order"
	"github.com/ims/backend/internal/domain/shared"
)

type orderFixture struct {
	orderRepo     *fakeOrderRepo
	stockRepo     *fakeStockRepo
	warehouseRepo *fakeWarehouseRepo
	productRepo   *fakeProductRepo
	historyRepo   *fakeHistoryRepo
	service       *OrderService
}

func newOrderFixture() *orderFixture {
	fx := &orderFixture{
		orderRepo:     newFakeOrderRepo(),
		stockRepo:     newFakeStockRepo(),
		warehouseRepo: newFakeWarehouseRepo(),
		productRepo:   newFakeProductRepo(),
		historyRepo:   newFakeHistoryRepo(),
	}
	scope := NewNoOpTransactionScope(fx.orderRepo, fx.stockRepo, fx.warehouseRepo, fx.productRepo, fx.historyRepo)
	fx.service = NewOrderService(fx.orderRepo, scope, uuid.Nil)
	return fx
}

func (fx *orderFixture) seedProduct(t *testing.T, code string, price int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(code, code+" product", decimal.NewFromInt(price), 1)
	require.NoError(t, err)
	return fx.productRepo.seed(p)
}

func staffActor() Actor {
	return Actor{ID: uuid.New(), Role: identity.RoleStaff}
}

func TestOrderService_Create(t *testing.T) {
	t.Run("staff creates purchase order with items", func(t *testing.T) {
		fx := newOrderFixture()
		product := fx.seedProduct(t, "WID", 10)

		resp, err := fx.service.Create(context.Background(), staffActor(), CreateOrderRequest{
			Kind:      "purchase",
			PartyName: "Acme Supplies",
			Items:     []LineItemRequest{{ProductID: product.ID, Quantity: 3}},
		})

		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Status)
		assert.True(t, resp.IsActive)
		assert.Equal(t, "purchase", resp.Kind)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, product.Name, resp.Items[0].ProductName)
		assert.Equal(t, "30", resp.TotalAmount.String())
		assert.NotEmpty(t, resp.Number)

		// one purchase history record with action created
		records := fx.historyRepo.byKind(audit.HistoryKindPurchase)
		require.Len(t, records, 1)
		assert.Equal(t, audit.ActionCreated, records[0].Action)
		assert.Equal(t, resp.Number, records[0].Reference)
	})

	t.Run("customer may create sales but not purchase orders", func(t *testing.T) {
		fx := newOrderFixture()
		customer := Actor{ID: uuid.New(), Role: identity.RoleCustomer}

		_, err := fx.service.Create(context.Background(), customer, CreateOrderRequest{
			Kind:      "purchase",
			PartyName: "Jane Doe",
		})
		assert.Equal(t, shared.ErrForbidden, err)

		_, err = fx.service.Create(context.Background(), customer, CreateOrderRequest{
			Kind:      "sales",
			PartyName: "Jane Doe",
		})
		assert.NoError(t, err)
	})

	t.Run("supplier may create purchase but not sales orders", func(t *testing.T) {
		fx := newOrderFixture()
		supplier := Actor{ID: uuid.New(), Role: identity.RoleSupplier}

		_, err := fx.service.Create(context.Background(), supplier, CreateOrderRequest{
			Kind:      "sales",
			PartyName: "Acme",
		})
		assert.Equal(t, shared.ErrForbidden, err)
	})

	t.Run("duplicate product in items is rejected", func(t *testing.T) {
		fx := newOrderFixture()
		product := fx.seedProduct(t, "WID", 10)

		_, err := fx.service.Create(context.Background(), staffActor(), CreateOrderRequest{
			Kind:      "sales",
			PartyName: "Jane Doe",
			Items: []LineItemRequest{
				{ProductID: product.ID, Quantity: 1},
				{ProductID: product.ID, Quantity: 2},
			},
		})

		assert.Equal(t, shared.ErrDuplicateLineItem, err)
	})
}

func TestOrderService_UpdateStatus_Approve(t *testing.T) {
	t.Run("sales approval deducts stock across warehouses in order", func(t *testing.T) {
		fx := newOrderFixture()
		product := fx.seedProduct(t, "WID", 10)
		whA := uuid.MustParse("11111111-1111-1111-1111-111111111111")
		whB := uuid.MustParse("22222222-2222-2222-2222-222222222222")
		fx.stockRepo.seed(whA, product.ID, 4)
		fx.stockRepo.seed(whB, product.ID, 6)

		actor := staffActor()
		resp, err := fx.service.Create(context.Background(), actor, CreateOrderRequest{
			Kind:      "sales",
			PartyName: "Jane Doe",
			Items:     []LineItemRequest{{ProductID: product.ID, Quantity: 7}},
		})
		require.NoError(t, err)

		updated, err := fx.service.UpdateStatus(context.Background(), actor, resp.ID, "approved")

		require.NoError(t, err)
		assert.Equal(t, "approved", updated.Status)
		assert.Equal(t, int64(0), fx.stockRepo.quantity(whA, product.ID))
		assert.Equal(t, int64(3), fx.stockRepo.quantity(whB, product.ID))

		stockRecords := fx.historyRepo.byKind(audit.HistoryKindStock)
		assert.Len(t, stockRecords, 2)
		salesRecords := fx.historyRepo.byKind(audit.HistoryKindSales)
		require.Len(t, salesRecords, 2) // created + status_changed
		assert.Equal(t, audit.ActionStatusChanged, salesRecords[1].Action)
		assert.Equal(t, "pending -> approved", salesRecords[1].Details)
	})

	t.Run("sales approval with insufficient stock fails atomically", func(t *testing.T) {
		fx := newOrderFixture()
		product := fx.seedProduct(t, "WID", 10)
		whA := uuid.New()
		fx.stockRepo.seed(whA, product.ID, 4)

		actor := staffActor()
		resp, err := fx.service.Create(context.Background(), actor, CreateOrderRequest{
			Kind:      "sales",
			PartyName: "Jane Doe",
			Items:     []LineItemRequest{{ProductID: product.ID, Quantity: 5}},
		})
		require.NoError(t, err)

		_, err = fx.service.UpdateStatus(context.Background(), actor, resp.ID, "approved")

		assert.Equal(t, shared.ErrInsufficientStock, err)
		assert.Equal(t, order.OrderStatusPending, fx.orderRepo.status(resp.ID))
		assert.Equal(t, int64(4), fx.stockRepo.quantity(whA, product.ID))
	})

	t.Run("purchase approval does not touch stock", func(t *testing.T) {
		fx := newOrderFixture()
		product := fx.seedProduct(t, "WID", 10)

		actor := staffActor()
		resp, err := fx.service.Create(context.Background(), actor, CreateOrderRequest{
			Kind:      "purchase",
			PartyName: "Acme",
			Items:     []LineItemRequest{{ProductID: product.ID, Quantity: 5}},
		})
		require.NoError(t, err)

		updated, err := fx.service.UpdateStatus(context.Background(), actor, resp.ID, "approved")

		require.NoError(t, err)
		assert.Equal(t, "approved", updated.Status)
		assert.Empty(t, fx.historyRepo.byKind(audit.HistoryKindStock))
	})

	t.Run("approving an empty order fails", func(t *testing.T) {
		fx := newOrderFixture()
		actor := staffActor()
		resp, err := fx.service.Create(context.Background(), actor, CreateOrderRequest{
			Kind:      "sales",
			PartyName: "Jane Doe",
		})
		require.NoError(t, err)

		_, err = fx.service.UpdateStatus(context.Background(), actor, resp.ID, "approved")

		assert.Equal(t, shared.ErrEmptyOrder, err)
	})

	t.Run("customer cannot approve", func(t *testing.T) {
		fx := newOrderFixture()
		product := fx.seedProduct(t, "WID", 10)
		customer := Actor{ID: uuid.New(), Role: identity.RoleCustomer}
		resp, err := fx.service.Create(context.Background(), customer, CreateOrderRequest{
			Kind:      "sales",
			PartyName: "Jane Doe",
			Items:     []LineItemRequest{{ProductID: product.ID, Quantity: 1}},
		})
		require.NoError(t, err)

		_, err = fx.service.UpdateStatus(context.Background(), customer, resp.ID, "approved")

		assert.Equal(t, shared.ErrForbidden, err)
	})
}

func TestOrderService_UpdateStatus_Complete(t *testing.T) {
	t.Run("purchase completion receives stock at the default warehouse", func(t *testing.T) {
		fx := newOrderFixture()
		product := fx.seedProduct(t, "WID", 10)
		def := fx.warehouseRepo.seed("MAIN", true)

		actor := staffActor()
		resp, err := fx.service.Create(context.Background(), actor, CreateOrderRequest{
			Kind:      "purchase",
			PartyName: "Acme",
			Items:     []LineItemRequest{{ProductID: product.ID, Quantity: 8}},
		})
		require.NoError(t, err)

		_, err = fx.service.UpdateStatus(context.Background(), actor, resp.ID, "approved")
		require.NoError(t, err)
		updated, err := fx.service.UpdateStatus(context.Background(), actor, resp.ID, "completed")

		require.NoError(t, err)
		assert.Equal(t, "completed", updated.Status)
		assert.False(t, updated.IsActive)
		assert.Equal(t, int64(8), fx.stockRepo.quantity(def.ID, product.ID))

		purchaseRecords := fx.historyRepo.byKind(audit.HistoryKindPurchase)
		require.Len(t, purchaseRecords, 3) // created, status_changed, order_completed
		assert.Equal(t, audit.ActionOrderCompleted, purchaseRecords[2].Action)

		// stock entry was created then updated
		stockRecords := fx.historyRepo.byKind(audit.HistoryKindStock)
		require.Len(t, stockRecords, 2)
		assert.Equal(t, audit.ActionCreated, stockRecords[0].Action)
		assert.Equal(t, audit.ActionUpdated, stockRecords[1].Action)
	})

	t.Run("confirmed is accepted as alias of completed", func(t *testing.T) {
		fx := newOrderFixture()
		product := fx.seedProduct(t, "WID", 10)
		fx.warehouseRepo.seed("MAIN", true)

		actor := staffActor()
		resp, err := fx.service.Create(context.Background(), actor, CreateOrderRequest{
			Kind:      "purchase",
			PartyName: "Acme",
			Items:     []LineItemRequest{{ProductID: product.ID, Quantity: 1}},
		})
		require.NoError(t, err)
		_, err = fx.service.UpdateStatus(context.Background(), actor, resp.ID, "approved")
		require.NoError(t, err)

		updated, err := fx.service.UpdateStatus(context.Background(), actor, resp.ID, "confirmed")

		require.NoError(t, err)
		assert.Equal(t, "completed", updated.Status)
	})

	t.Run("pending order cannot be completed directly", func(t *testing.T) {
		fx := newOrderFixture()
		product := fx.seedProduct(t, "WID", 10)
		fx.warehouseRepo.seed("MAIN", true)

		actor := staffActor()
		resp, err := fx.service.Create(context.Background(), actor, CreateOrderRequest{
			Kind:      "purchase",
			PartyName: "Acme",
			Items:     []LineItemRequest{{ProductID: product.ID, Quantity: 1}},
		})
		require.NoError(t, err)

		_, err = fx.service.UpdateStatus(context.Background(), actor, resp.ID, "completed")

		require.Error(t, err)
		assert.Equal(t, order.OrderStatusPending, fx.orderRepo.status(resp.ID))
	})

	t.Run("purchase completion without a default warehouse fails atomically", func(t *testing.T) {
		fx := newOrderFixture()
		product := fx.seedProduct(t, "WID", 10)

		actor := staffActor()
		resp, err := fx.service.Create(context.Background(), actor, CreateOrderRequest{
			Kind:      "purchase",
			PartyName: "Acme",
			Items:     []LineItemRequest{{ProductID: product.ID, Quantity: 1}},
		})
		require.NoError(t, err)
		_, err = fx.service.UpdateStatus(context.Background(), actor, resp.ID, "approved")
		require.NoError(t, err)

		_, err = fx.service.UpdateStatus(context.Background(), actor, resp.ID, "completed")

		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestOrderService_UpdateStatus_Cancel(t *testing.T) {
	t.Run("cancelling an approved sales order returns stock to the default warehouse", func(t *testing.T) {
		fx := newOrderFixture()
		product := fx.seedProduct(t, "WID", 10)
		def := fx.warehouseRepo.seed("MAIN", true)
		other := fx.warehouseRepo.seed("AUX", false)
		fx.stockRepo.seed(other.ID, product.ID, 5)

		actor := staffActor()
		resp, err := fx.service.Create(context.Background(), actor, CreateOrderRequest{
			Kind:      "sales",
			PartyName: "Jane Doe",
			Items:     []LineItemRequest{{ProductID: product.ID, Quantity: 5}},
		})
		require.NoError(t, err)
		_, err = fx.service.UpdateStatus(context.Background(), actor, resp.ID, "approved")
		require.NoError(t, err)
		require.Equal(t, int64(0), fx.stockRepo.quantity(other.ID, product.ID))

		updated, err := fx.service.UpdateStatus(context.Background(), actor, resp.ID, "cancelled")

		require.NoError(t, err)
		assert.Equal(t, "cancelled", updated.Status)
		assert.False(t, updated.IsActive)
		assert.Equal(t, int64(5), fx.stockRepo.quantity(def.ID, product.ID))

		salesRecords := fx.historyRepo.byKind(audit.HistoryKindSales)
		assert.Equal(t, audit.ActionOrderCancelled, salesRecords[len(salesRecords)-1].Action)
	})

	t.Run("cancelling a pending sales order leaves stock alone", func(t *testing.T) {
		fx := newOrderFixture()
		product := fx.seedProduct(t, "WID", 10)
		wh := fx.warehouseRepo.seed("MAIN", true)
		fx.stockRepo.seed(wh.ID, product.ID, 5)

		actor := staffActor()
		resp, err := fx.service.Create(context.Background(), actor, CreateOrderRequest{
			Kind:      "sales",
			PartyName: "Jane Doe",
			Items:     []LineItemRequest{{ProductID: product.ID, Quantity: 5}},
		})
		require.NoError(t, err)

		updated, err := fx.service.UpdateStatus(context.Background(), actor, resp.ID, "cancelled")

		require.NoError(t, err)
		assert.Equal(t, "cancelled", updated.Status)
		assert.Equal(t, int64(5), fx.stockRepo.quantity(wh.ID, product.ID))
	})

	t.Run("the creator may cancel their own order", func(t *testing.T) {
		fx := newOrderFixture()
		product := fx.seedProduct(t, "WID", 10)
		customer := Actor{ID: uuid.New(), Role: identity.RoleCustomer}
		resp, err := fx.service.Create(context.Background(), customer, CreateOrderRequest{
			Kind:      "sales",
			PartyName: "Jane Doe",
			Items:     []LineItemRequest{{ProductID: product.ID, Quantity: 1}},
		})
		require.NoError(t, err)

		_, err = fx.service.UpdateStatus(context.Background(), customer, resp.ID, "cancelled")

		assert.NoError(t, err)
	})

	t.Run("another customer may not cancel", func(t *testing.T) {
		fx := newOrderFixture()
		product := fx.seedProduct(t, "WID", 10)
		creator := Actor{ID: uuid.New(), Role: identity.RoleCustomer}
		resp, err := fx.service.Create(context.Background(), creator, CreateOrderRequest{
			Kind:      "sales",
			PartyName: "Jane Doe",
			Items:     []LineItemRequest{{ProductID: product.ID, Quantity: 1}},
		})
		require.NoError(t, err)

		stranger := Actor{ID: uuid.New(), Role: identity.RoleCustomer}
		_, err = fx.service.UpdateStatus(context.Background(), stranger, resp.ID, "cancelled")

		assert.Equal(t, shared.ErrForbidden, err)
	})

	t.Run("completed order cannot be cancelled", func(t *testing.T) {
		fx := newOrderFixture()
		product := fx.seedProduct(t, "WID", 10)
		fx.warehouseRepo.seed("MAIN", true)

		actor := staffActor()
		resp, err := fx.service.Create(context.Background(), actor, CreateOrderRequest{
			Kind:      "purchase",
			PartyName: "Acme",
			Items:     []LineItemRequest{{ProductID: product.ID, Quantity: 1}},
		})
		require.NoError(t, err)
		_, err = fx.service.UpdateStatus(context.Background(), actor, resp.ID, "approved")
		require.NoError(t, err)
		_, err = fx.service.UpdateStatus(context.Background(), actor, resp.ID, "completed")
		require.NoError(t, err)

		_, err = fx.service.UpdateStatus(context.Background(), actor, resp.ID, "cancelled")

		require.Error(t, err)
	})
}

func TestOrderService_UpdateStatus_InvalidInput(t *testing.T) {
	fx := newOrderFixture()
	product := fx.seedProduct(t, "WID", 10)

	actor := staffActor()
	resp, err := fx.service.Create(context.Background(), actor, CreateOrderRequest{
		Kind:      "purchase",
		PartyName: "Acme",
		Items:     []LineItemRequest{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = fx.service.UpdateStatus(context.Background(), actor, resp.ID, "shipped")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shipped")

	// pending is never a legal target, not even from pending itself
	_, err = fx.service.UpdateStatus(context.Background(), actor, resp.ID, "pending")
	assert.Equal(t, shared.ErrIllegalTransition, err)

	_, err = fx.service.UpdateStatus(context.Background(), actor, uuid.New(), "approved")
	assert.Equal(t, shared.ErrNotFound, err)
}

func TestOrderService_AddItem(t *testing.T) {
	t.Run("adds item to pending order", func(t *testing.T) {
		fx := newOrderFixture()
		first := fx.seedProduct(t, "WID", 10)
		second := fx.seedProduct(t, "GAD", 4)

		actor := staffActor()
		resp, err := fx.service.Create(context.Background(), actor, CreateOrderRequest{
			Kind:      "sales",
			PartyName: "Jane Doe",
			Items:     []LineItemRequest{{ProductID: first.ID, Quantity: 1}},
		})
		require.NoError(t, err)

		updated, err := fx.service.AddItem(context.Background(), actor, resp.ID, LineItemRequest{
			ProductID: second.ID,
			Quantity:  2,
		})

		require.NoError(t, err)
		assert.Len(t, updated.Items, 2)
		assert.Equal(t, "18", updated.TotalAmount.String())
	})

	t.Run("locked after approval", func(t *testing.T) {
		fx := newOrderFixture()
		product := fx.seedProduct(t, "WID", 10)
		second := fx.seedProduct(t, "GAD", 4)

		actor := staffActor()
		resp, err := fx.service.Create(context.Background(), actor, CreateOrderRequest{
			Kind:      "purchase",
			PartyName: "Acme",
			Items:     []LineItemRequest{{ProductID: product.ID, Quantity: 1}},
		})
		require.NoError(t, err)
		_, err = fx.service.UpdateStatus(context.Background(), actor, resp.ID, "approved")
		require.NoError(t, err)

		_, err = fx.service.AddItem(context.Background(), actor, resp.ID, LineItemRequest{
			ProductID: second.ID,
			Quantity:  2,
		})

		assert.Equal(t, shared.ErrOrderLocked, err)
	})
}

func TestOrderService_ReplaceItems(t *testing.T) {
	t.Run("replaces all items of a pending order", func(t *testing.T) {
		fx := newOrderFixture()
		first := fx.seedProduct(t, "WID", 10)
		second := fx.seedProduct(t, "GAD", 4)
		third := fx.seedProduct(t, "THG", 7)

		actor := staffActor()
		resp, err := fx.service.Create(context.Background(), actor, CreateOrderRequest{
			Kind:      "sales",
			PartyName: "Jane Doe",
			Items:     []LineItemRequest{{ProductID: first.ID, Quantity: 1}},
		})
		require.NoError(t, err)

		updated, err := fx.service.ReplaceItems(context.Background(), actor, resp.ID, []LineItemRequest{
			{ProductID: second.ID, Quantity: 2},
			{ProductID: third.ID, Quantity: 1},
		})

		require.NoError(t, err)
		require.Len(t, updated.Items, 2)
		assert.Equal(t, second.ID, updated.Items[0].ProductID)
		assert.Equal(t, third.ID, updated.Items[1].ProductID)
		assert.Equal(t, "15", updated.TotalAmount.String())
	})

	t.Run("empty replacement clears the order", func(t *testing.T) {
		fx := newOrderFixture()
		product := fx.seedProduct(t, "WID", 10)

		actor := staffActor()
		resp, err := fx.service.Create(context.Background(), actor, CreateOrderRequest{
			Kind:      "sales",
			PartyName: "Jane Doe",
			Items:     []LineItemRequest{{ProductID: product.ID, Quantity: 3}},
		})
		require.NoError(t, err)

		updated, err := fx.service.ReplaceItems(context.Background(), actor, resp.ID, nil)

		require.NoError(t, err)
		assert.Empty(t, updated.Items)
		assert.Equal(t, "0", updated.TotalAmount.String())
	})

	t.Run("locked after approval", func(t *testing.T) {
		fx := newOrderFixture()
		product := fx.seedProduct(t, "WID", 10)

		actor := staffActor()
		resp, err := fx.service.Create(context.Background(), actor, CreateOrderRequest{
			Kind:      "purchase",
			PartyName: "Acme",
			Items:     []LineItemRequest{{ProductID: product.ID, Quantity: 1}},
		})
		require.NoError(t, err)
		_, err = fx.service.UpdateStatus(context.Background(), actor, resp.ID, "approved")
		require.NoError(t, err)

		_, err = fx.service.ReplaceItems(context.Background(), actor, resp.ID, []LineItemRequest{
			{ProductID: product.ID, Quantity: 5},
		})

		assert.Equal(t, shared.ErrOrderLocked, err)
	})

	t.Run("unknown product fails the whole replacement", func(t *testing.T) {
		fx := newOrderFixture()
		product := fx.seedProduct(t, "WID", 10)

		actor := staffActor()
		resp, err := fx.service.Create(context.Background(), actor, CreateOrderRequest{
			Kind:      "sales",
			PartyName: "Jane Doe",
			Items:     []LineItemRequest{{ProductID: product.ID, Quantity: 1}},
		})
		require.NoError(t, err)

		_, err = fx.service.ReplaceItems(context.Background(), actor, resp.ID, []LineItemRequest{
			{ProductID: uuid.New(), Quantity: 1},
		})

		assert.Equal(t, shared.ErrNotFound, err)
	})

	t.Run("other customers may not touch the order", func(t *testing.T) {
		fx := newOrderFixture()
		product := fx.seedProduct(t, "WID", 10)

		owner := Actor{ID: uuid.New(), Role: identity.RoleCustomer}
		resp, err := fx.service.Create(context.Background(), owner, CreateOrderRequest{
			Kind:      "sales",
			PartyName: "Jane Doe",
			Items:     []LineItemRequest{{ProductID: product.ID, Quantity: 1}},
		})
		require.NoError(t, err)

		stranger := Actor{ID: uuid.New(), Role: identity.RoleCustomer}
		_, err = fx.service.ReplaceItems(context.Background(), stranger, resp.ID, nil)

		assert.Equal(t, shared.ErrForbidden, err)
	})
}

func TestOrderService_UpdateStatusWithItems(t *testing.T) {
	t.Run("item revision rides along with approval", func(t *testing.T) {
		fx := newOrderFixture()
		first := fx.seedProduct(t, "WID", 10)
		second := fx.seedProduct(t, "GAD", 4)
		wh := fx.warehouseRepo.seed("MAIN", true)
		fx.stockRepo.seed(wh.ID, second.ID, 10)

		actor := staffActor()
		resp, err := fx.service.Create(context.Background(), actor, CreateOrderRequest{
			Kind:      "sales",
			PartyName: "Jane Doe",
			Items:     []LineItemRequest{{ProductID: first.ID, Quantity: 1}},
		})
		require.NoError(t, err)

		updated, err := fx.service.UpdateStatusWithItems(context.Background(), actor, resp.ID, "approved", []LineItemRequest{
			{ProductID: second.ID, Quantity: 3},
		})

		require.NoError(t, err)
		assert.Equal(t, "approved", updated.Status)
		require.Len(t, updated.Items, 1)
		assert.Equal(t, second.ID, updated.Items[0].ProductID)
		// the revised line is what got deducted, not the original one
		assert.Equal(t, int64(7), fx.stockRepo.quantity(wh.ID, second.ID))
	})

	t.Run("item revision against an approved order is rejected", func(t *testing.T) {
		fx := newOrderFixture()
		product := fx.seedProduct(t, "WID", 10)
		fx.warehouseRepo.seed("MAIN", true)

		actor := staffActor()
		resp, err := fx.service.Create(context.Background(), actor, CreateOrderRequest{
			Kind:      "purchase",
			PartyName: "Acme",
			Items:     []LineItemRequest{{ProductID: product.ID, Quantity: 2}},
		})
		require.NoError(t, err)
		_, err = fx.service.UpdateStatus(context.Background(), actor, resp.ID, "approved")
		require.NoError(t, err)

		_, err = fx.service.UpdateStatusWithItems(context.Background(), actor, resp.ID, "completed", []LineItemRequest{
			{ProductID: product.ID, Quantity: 99},
		})

		assert.Equal(t, shared.ErrOrderLocked, err)
	})
}
