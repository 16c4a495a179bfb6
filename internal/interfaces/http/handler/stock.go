package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appinv "github.com/ims/backend/internal/application/inventory"
	"github.com/ims/backend/internal/interfaces/http/middleware"
)

// StockHandler handles stock ledger API endpoints
type StockHandler struct {
	BaseHandler
	ledgerService   *appinv.LedgerService
	transferService *appinv.TransferService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(ledgerService *appinv.LedgerService, transferService *appinv.TransferService) *StockHandler {
	return &StockHandler{
		ledgerService:   ledgerService,
		transferService: transferService,
	}
}

// List returns stock entries, optionally restricted to one warehouse
// via the warehouse_id query parameter
func (h *StockHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	if raw := c.Query("warehouse_id"); raw != "" {
		warehouseID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "invalid warehouse_id")
			return
		}
		entries, err := h.ledgerService.ListByWarehouse(c.Request.Context(), warehouseID, filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, entries)
		return
	}

	entries, err := h.ledgerService.ListEntries(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// Quantity returns the quantity for one warehouse-product pair,
// or zero when the pair has no entry yet
func (h *StockHandler) Quantity(c *gin.Context) {
	warehouseID, err := uuid.Parse(c.Query("warehouse_id"))
	if err != nil {
		h.BadRequest(c, "invalid warehouse_id")
		return
	}
	productID, err := uuid.Parse(c.Query("product_id"))
	if err != nil {
		h.BadRequest(c, "invalid product_id")
		return
	}

	quantity, err := h.ledgerService.GetQuantity(c.Request.Context(), warehouseID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{
		"warehouse_id": warehouseID,
		"product_id":   productID,
		"quantity":     quantity,
	})
}

// Totals returns per-product quantities summed across all warehouses
func (h *StockHandler) Totals(c *gin.Context) {
	totals, err := h.ledgerService.ProductTotals(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, totals)
}

// LowStock lists products whose aggregate quantity is at or below
// their reorder level
func (h *StockHandler) LowStock(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	items, err := h.ledgerService.LowStock(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Adjust applies a signed quantity delta to one warehouse-product pair
func (h *StockHandler) Adjust(c *gin.Context) {
	var req appinv.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	if actorID := middleware.GetActorID(c); actorID != uuid.Nil {
		req.ActorID = &actorID
	}

	entry, err := h.ledgerService.Adjust(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// Transfer moves stock between two warehouses
func (h *StockHandler) Transfer(c *gin.Context) {
	var req appinv.TransferStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	if actorID := middleware.GetActorID(c); actorID != uuid.Nil {
		req.ActorID = &actorID
	}

	result, err := h.transferService.Transfer(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
