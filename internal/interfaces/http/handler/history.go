package handler

import (
	"github.com/gin-gonic/gin"

	appaudit "github.com/ims/backend/internal/application/audit"
)

// HistoryHandler handles read access to the audit trail
type HistoryHandler struct {
	BaseHandler
	historyService *appaudit.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler
func NewHistoryHandler(historyService *appaudit.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// List returns history records matching the query filters, newest first
func (h *HistoryHandler) List(c *gin.Context) {
	var query appaudit.HistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.historyService.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListByReference returns all records for one order or stock entry
func (h *HistoryHandler) ListByReference(c *gin.Context) {
	referenceID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid reference ID")
		return
	}

	records, err := h.historyService.ListByReference(c.Request.Context(), referenceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, records)
}
