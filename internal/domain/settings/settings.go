package settings

import (
	"time"

	"github.com/google/uuid"
)

// SingletonID is the fixed primary key of the one PowerPackSettings row.
// Exactly one settings record exists system-wide; it is only ever mutated
// through the administrative settings endpoint.
var SingletonID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// Known feature flag names
const (
	FlagPOSPowerup                = "enable_pos_powerup"
	FlagQuotationTweaks           = "enable_quotation_tweaks"
	FlagQuotationBulkSelection    = "enable_quotation_bulk_selection"
	FlagSalesOrderBulkSelection   = "enable_sales_order_bulk_selection"
	FlagSalesInvoiceBulkSelection = "enable_sales_invoice_bulk_selection"
	FlagStockEntryBulkSelection   = "enable_stock_entry_bulk_selection"
	FlagStockReconBulkSelection   = "enable_stock_reconciliation_bulk_selection"
	FlagItemListPowerup           = "enable_item_list_powerup"
	FlagDuplicateTaxIDCheck       = "enable_duplicate_tax_id_check"
	FlagWarnings                  = "enable_warnings"
	FlagPaymentReconZeroAllocate  = "enable_payment_reconciliation_zero_allocate"
	FlagPreventETRInvoiceCancel   = "prevent_etr_invoice_cancellation"
	FlagCompactTheme              = "enable_compact_theme"
)

// KnownFlags lists every recognized flag name
var KnownFlags = []string{
	FlagPOSPowerup,
	FlagQuotationTweaks,
	FlagQuotationBulkSelection,
	FlagSalesOrderBulkSelection,
	FlagSalesInvoiceBulkSelection,
	FlagStockEntryBulkSelection,
	FlagStockReconBulkSelection,
	FlagItemListPowerup,
	FlagDuplicateTaxIDCheck,
	FlagWarnings,
	FlagPaymentReconZeroAllocate,
	FlagPreventETRInvoiceCancel,
	FlagCompactTheme,
}

// IsKnownFlag reports whether name is a recognized flag
func IsKnownFlag(name string) bool {
	for _, flag := range KnownFlags {
		if flag == name {
			return true
		}
	}
	return false
}

// PowerPackSettings is the single configuration record gating all
// power-up behavior
type PowerPackSettings struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	EnablePOSPowerup                bool `gorm:"not null;default:false" json:"enable_pos_powerup"`
	EnableQuotationTweaks           bool `gorm:"not null;default:false" json:"enable_quotation_tweaks"`
	EnableQuotationBulkSelection    bool `gorm:"not null;default:false" json:"enable_quotation_bulk_selection"`
	EnableSalesOrderBulkSelection   bool `gorm:"not null;default:false" json:"enable_sales_order_bulk_selection"`
	EnableSalesInvoiceBulkSelection bool `gorm:"not null;default:false" json:"enable_sales_invoice_bulk_selection"`
	EnableStockEntryBulkSelection   bool `gorm:"not null;default:false" json:"enable_stock_entry_bulk_selection"`
	EnableStockReconBulkSelection   bool `gorm:"not null;default:false" json:"enable_stock_reconciliation_bulk_selection"`
	EnableItemListPowerup           bool `gorm:"not null;default:false" json:"enable_item_list_powerup"`
	EnableDuplicateTaxIDCheck       bool `gorm:"not null;default:false" json:"enable_duplicate_tax_id_check"`
	EnableWarnings                  bool `gorm:"not null;default:false" json:"enable_warnings"`
	EnablePaymentReconZeroAllocate  bool `gorm:"not null;default:false" json:"enable_payment_reconciliation_zero_allocate"`
	PreventETRInvoiceCancellation   bool `gorm:"not null;default:false" json:"prevent_etr_invoice_cancellation"`
	EnableCompactTheme              bool `gorm:"not null;default:false" json:"enable_compact_theme"`
}

// TableName returns the table name for GORM
func (PowerPackSettings) TableName() string {
	return "powerpack_settings"
}

// NewPowerPackSettings creates the settings record with all flags off
func NewPowerPackSettings() *PowerPackSettings {
	now := time.Now()
	return &PowerPackSettings{
		ID:        SingletonID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Flag returns the value of the named flag. Unknown names report false
// so a stale caller can never accidentally enable behavior.
func (s *PowerPackSettings) Flag(name string) bool {
	if s == nil {
		return false
	}
	switch name {
	case FlagPOSPowerup:
		return s.EnablePOSPowerup
	case FlagQuotationTweaks:
		return s.EnableQuotationTweaks
	case FlagQuotationBulkSelection:
		return s.EnableQuotationBulkSelection
	case FlagSalesOrderBulkSelection:
		return s.EnableSalesOrderBulkSelection
	case FlagSalesInvoiceBulkSelection:
		return s.EnableSalesInvoiceBulkSelection
	case FlagStockEntryBulkSelection:
		return s.EnableStockEntryBulkSelection
	case FlagStockReconBulkSelection:
		return s.EnableStockReconBulkSelection
	case FlagItemListPowerup:
		return s.EnableItemListPowerup
	case FlagDuplicateTaxIDCheck:
		return s.EnableDuplicateTaxIDCheck
	case FlagWarnings:
		return s.EnableWarnings
	case FlagPaymentReconZeroAllocate:
		return s.EnablePaymentReconZeroAllocate
	case FlagPreventETRInvoiceCancel:
		return s.PreventETRInvoiceCancellation
	case FlagCompactTheme:
		return s.EnableCompactTheme
	default:
		return false
	}
}

// Flags returns all flags as a map, keyed by their wire names
func (s *PowerPackSettings) Flags() map[string]bool {
	return map[string]bool{
		FlagPOSPowerup:                s.EnablePOSPowerup,
		FlagQuotationTweaks:           s.EnableQuotationTweaks,
		FlagQuotationBulkSelection:    s.EnableQuotationBulkSelection,
		FlagSalesOrderBulkSelection:   s.EnableSalesOrderBulkSelection,
		FlagSalesInvoiceBulkSelection: s.EnableSalesInvoiceBulkSelection,
		FlagStockEntryBulkSelection:   s.EnableStockEntryBulkSelection,
		FlagStockReconBulkSelection:   s.EnableStockReconBulkSelection,
		FlagItemListPowerup:           s.EnableItemListPowerup,
		FlagDuplicateTaxIDCheck:       s.EnableDuplicateTaxIDCheck,
		FlagWarnings:                  s.EnableWarnings,
		FlagPaymentReconZeroAllocate:  s.EnablePaymentReconZeroAllocate,
		FlagPreventETRInvoiceCancel:   s.PreventETRInvoiceCancellation,
		FlagCompactTheme:              s.EnableCompactTheme,
	}
}
