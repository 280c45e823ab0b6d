package handler

import (
	"github.com/cecypo/powerpack-backend/internal/application/reconciliation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReconciliationHandler serves the payment reconciliation endpoints
type ReconciliationHandler struct {
	BaseHandler
	service *reconciliation.ZeroAllocationService
}

// NewReconciliationHandler creates a new ReconciliationHandler
func NewReconciliationHandler(service *reconciliation.ZeroAllocationService, logger *zap.Logger) *ReconciliationHandler {
	return &ReconciliationHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ZeroAllocate builds zero-amount allocations for the selected payments
// and invoices without posting anything
func (h *ReconciliationHandler) ZeroAllocate(c *gin.Context) {
	var req reconciliation.ZeroAllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	allocations, err := h.service.ZeroAllocateEntries(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"allocations": allocations})
}

// ZeroReconcile posts prepared allocations to the ledger
func (h *ReconciliationHandler) ZeroReconcile(c *gin.Context) {
	var req reconciliation.ZeroReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.service.ZeroReconcile(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RegisterRoutes registers the reconciliation routes
func (h *ReconciliationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	recon := rg.Group("/reconciliation")
	{
		recon.POST("/zero-allocate", h.ZeroAllocate)
		recon.POST("/zero-reconcile", h.ZeroReconcile)
	}
}
