package handler

import (
	"strings"

	"github.com/cecypo/powerpack-backend/internal/application/powerup"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PowerupHandler serves the item, price, tax ID and warning endpoints
type PowerupHandler struct {
	BaseHandler
	items   *powerup.ItemDetailService
	prices  *powerup.PriceService
	taxIDs  *powerup.TaxIDService
	overdue *powerup.OverdueService
}

// NewPowerupHandler creates a new PowerupHandler
func NewPowerupHandler(
	items *powerup.ItemDetailService,
	prices *powerup.PriceService,
	taxIDs *powerup.TaxIDService,
	overdue *powerup.OverdueService,
	logger *zap.Logger,
) *PowerupHandler {
	return &PowerupHandler{
		BaseHandler: NewBaseHandler(logger),
		items:       items,
		prices:      prices,
		taxIDs:      taxIDs,
		overdue:     overdue,
	}
}

// GetBulkItemDetails resolves enriched detail rows for a set of items
func (h *PowerupHandler) GetBulkItemDetails(c *gin.Context) {
	var req powerup.BulkItemDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	details, err := h.items.GetBulkItemDetails(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.List(c, details, len(details))
}

// GetBulkStockDetails resolves stock-only detail rows for a set of items
func (h *PowerupHandler) GetBulkStockDetails(c *gin.Context) {
	var req powerup.BulkStockDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	details, err := h.items.GetBulkStockItemDetails(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.List(c, details, len(details))
}

// GetQuotationItemInfo returns stock and trade history for one item
func (h *PowerupHandler) GetQuotationItemInfo(c *gin.Context) {
	itemCode := strings.TrimSpace(c.Param("code"))
	if itemCode == "" {
		h.BadRequest(c, "Item code is required")
		return
	}

	info, err := h.items.GetItemInfoForQuotation(c.Request.Context(), itemCode,
		c.Query("customer"), c.Query("warehouse"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

// FetchPrices returns cost and sell rates for a set of items
func (h *PowerupHandler) FetchPrices(c *gin.Context) {
	var req powerup.FetchPricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	rows, err := h.prices.FetchItemPrices(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.List(c, rows, len(rows))
}

// SavePrices applies CODE::RATE price assignments to one price list
func (h *PowerupHandler) SavePrices(c *gin.Context) {
	var req powerup.SavePricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.prices.SaveItemPrices(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// CheckDuplicateTaxID reports other parties sharing a tax ID
func (h *PowerupHandler) CheckDuplicateTaxID(c *gin.Context) {
	taxID := c.Query("tax_id")
	if strings.TrimSpace(taxID) == "" {
		h.BadRequest(c, "Query parameter tax_id is required")
		return
	}

	result, err := h.taxIDs.CheckDuplicateTaxID(c.Request.Context(), taxID, c.Query("party"), c.Query("kind"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetCustomerOverdueInvoices lists a customer's overdue invoices
func (h *PowerupHandler) GetCustomerOverdueInvoices(c *gin.Context) {
	customer := strings.TrimSpace(c.Param("customer"))
	if customer == "" {
		h.BadRequest(c, "Customer is required")
		return
	}

	result, err := h.overdue.GetCustomerOverdueInvoices(c.Request.Context(), customer, c.Query("company"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RegisterRoutes registers the power-up routes
func (h *PowerupHandler) RegisterRoutes(rg *gin.RouterGroup) {
	powerup := rg.Group("/powerup")
	{
		powerup.POST("/items/details", h.GetBulkItemDetails)
		powerup.POST("/items/stock-details", h.GetBulkStockDetails)
		powerup.GET("/items/:code/quotation-info", h.GetQuotationItemInfo)
		powerup.POST("/prices/fetch", h.FetchPrices)
		powerup.POST("/prices/save", h.SavePrices)
		powerup.GET("/tax-id/duplicates", h.CheckDuplicateTaxID)
		powerup.GET("/customers/:customer/overdue-invoices", h.GetCustomerOverdueInvoices)
	}
}
