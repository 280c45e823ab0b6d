package settings

import (
	"time"

	"github.com/cecypo/powerpack-backend/internal/domain/settings"
)

// UpdateSettingsRequest carries flag changes. Only flags present in the
// request are touched; absent flags keep their stored values.
type UpdateSettingsRequest struct {
	Flags map[string]bool `json:"flags" binding:"required"`
}

// SettingsResponse is the wire form of the settings record
type SettingsResponse struct {
	Flags     map[string]bool `json:"flags"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// DebugSettingsResponse exposes the flag map plus cache state for the
// diagnostics endpoint
type DebugSettingsResponse struct {
	Flags      map[string]bool `json:"flags"`
	CacheHit   bool            `json:"cache_hit"`
	CacheError string          `json:"cache_error,omitempty"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func toSettingsResponse(record *settings.PowerPackSettings) *SettingsResponse {
	return &SettingsResponse{
		Flags:     record.Flags(),
		UpdatedAt: record.UpdatedAt,
	}
}

func applyUpdate(record *settings.PowerPackSettings, req UpdateSettingsRequest) {
	for name, value := range req.Flags {
		switch name {
		case settings.FlagPOSPowerup:
			record.EnablePOSPowerup = value
		case settings.FlagQuotationTweaks:
			record.EnableQuotationTweaks = value
		case settings.FlagQuotationBulkSelection:
			record.EnableQuotationBulkSelection = value
		case settings.FlagSalesOrderBulkSelection:
			record.EnableSalesOrderBulkSelection = value
		case settings.FlagSalesInvoiceBulkSelection:
			record.EnableSalesInvoiceBulkSelection = value
		case settings.FlagStockEntryBulkSelection:
			record.EnableStockEntryBulkSelection = value
		case settings.FlagStockReconBulkSelection:
			record.EnableStockReconBulkSelection = value
		case settings.FlagItemListPowerup:
			record.EnableItemListPowerup = value
		case settings.FlagDuplicateTaxIDCheck:
			record.EnableDuplicateTaxIDCheck = value
		case settings.FlagWarnings:
			record.EnableWarnings = value
		case settings.FlagPaymentReconZeroAllocate:
			record.EnablePaymentReconZeroAllocate = value
		case settings.FlagPreventETRInvoiceCancel:
			record.PreventETRInvoiceCancellation = value
		case settings.FlagCompactTheme:
			record.EnableCompactTheme = value
		}
	}
}
