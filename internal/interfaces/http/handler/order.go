package handler

import (
	"github.com/gin-gonic/gin"

	apporders "github.com/ims/backend/internal/application/orders"
)

// OrderHandler handles purchase and sales order API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *apporders.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *apporders.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List returns orders, optionally filtered by kind
func (h *OrderHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	orders, err := h.orderService.List(c.Request.Context(), c.Query("kind"), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// Get returns one order with its line items
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid order ID")
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Create opens a new order in pending status
func (h *OrderHandler) Create(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "user identification required")
		return
	}

	var req apporders.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// AddItem appends a line item to a pending order
func (h *OrderHandler) AddItem(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "user identification required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid order ID")
		return
	}

	var req apporders.LineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.AddItem(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// RemoveItem removes a line item from a pending order
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "user identification required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid order ID")
		return
	}
	itemID, err := parseUUIDParam(c, "itemID")
	if err != nil {
		h.BadRequest(c, "invalid item ID")
		return
	}

	order, err := h.orderService.RemoveItem(c.Request.Context(), actor, id, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// ReplaceItems swaps the full line item set of a pending order
func (h *OrderHandler) ReplaceItems(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "user identification required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid order ID")
		return
	}

	var req apporders.ReplaceItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.ReplaceItems(c.Request.Context(), actor, id, req.Items)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// UpdateStatus moves an order through its lifecycle. Approving a sales
// order deducts stock; completing a purchase order receives it. A final
// item revision may ride along with the transition.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "user identification required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid order ID")
		return
	}

	var req apporders.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.UpdateStatusWithItems(c.Request.Context(), actor, id, req.Status, req.Items)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
