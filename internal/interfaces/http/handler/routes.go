package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the stock ledger endpoints
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stock := rg.Group("/stock")
	{
		stock.GET("", h.List)
		stock.GET("/quantity", h.Quantity)
		stock.GET("/totals", h.Totals)
		stock.GET("/low", h.LowStock)
		stock.POST("/adjust", h.Adjust)
		stock.POST("/transfer", h.Transfer)
	}
}

// RegisterRoutes mounts the order endpoints
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.List)
		orders.POST("", h.Create)
		orders.GET("/:id", h.Get)
		orders.POST("/:id/items", h.AddItem)
		orders.PUT("/:id/items", h.ReplaceItems)
		orders.DELETE("/:id/items/:itemID", h.RemoveItem)
		orders.PATCH("/:id/status", h.UpdateStatus)
	}
}

// RegisterRoutes mounts the history endpoints
func (h *HistoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	history := rg.Group("/history")
	{
		history.GET("", h.List)
		history.GET("/reference/:id", h.ListByReference)
	}
}

// RegisterRoutes mounts the product and category endpoints
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.POST("", h.Create)
		products.GET("/:id", h.Get)
		products.PATCH("/:id", h.Update)
		products.DELETE("/:id", h.Delete)
	}
}

// RegisterRoutes mounts the category endpoints
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	{
		categories.GET("", h.List)
		categories.POST("", h.Create)
		categories.GET("/:id", h.Get)
		categories.PATCH("/:id", h.Update)
		categories.DELETE("/:id", h.Delete)
	}
}

// RegisterRoutes mounts the warehouse endpoints
func (h *WarehouseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	warehouses := rg.Group("/warehouses")
	{
		warehouses.GET("", h.List)
		warehouses.POST("", h.Create)
		warehouses.GET("/:id", h.Get)
		warehouses.PATCH("/:id", h.Update)
		warehouses.DELETE("/:id", h.Delete)
	}
}
