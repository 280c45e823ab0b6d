package handler

import (
	"strings"

	"github.com/cecypo/powerpack-backend/internal/application/selling"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SellingHandler serves sales invoice endpoints
type SellingHandler struct {
	BaseHandler
	invoices *selling.InvoiceService
}

// NewSellingHandler creates a new SellingHandler
func NewSellingHandler(invoices *selling.InvoiceService, logger *zap.Logger) *SellingHandler {
	return &SellingHandler{
		BaseHandler: NewBaseHandler(logger),
		invoices:    invoices,
	}
}

// CancelInvoice cancels a submitted invoice, subject to the ETR guard
func (h *SellingHandler) CancelInvoice(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		h.BadRequest(c, "Invoice name is required")
		return
	}

	if err := h.invoices.CancelInvoice(c.Request.Context(), name); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"name": name, "status": "cancelled"})
}

// RegisterRoutes registers the selling routes
func (h *SellingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	selling := rg.Group("/selling")
	{
		selling.POST("/invoices/:name/cancel", h.CancelInvoice)
	}
}
