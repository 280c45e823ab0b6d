package catalog

import (
	"strings"

	"github.com/cecypo/powerpack-backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Item represents a sellable SKU in the externally owned catalog schema.
// This service reads items; it does not own their lifecycle.
type Item struct {
	shared.Entity
	Code          string          `gorm:"type:varchar(140);not null;uniqueIndex" json:"item_code"`
	Name          string          `gorm:"type:varchar(200);not null" json:"item_name"`
	Description   string          `gorm:"type:text" json:"description"`
	StockUOM      string          `gorm:"type:varchar(50);not null" json:"stock_uom"`
	Image         string          `gorm:"type:varchar(500)" json:"image"`
	ValuationRate decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0" json:"valuation_rate"`
	IsSalesItem   bool            `gorm:"not null;default:true" json:"is_sales_item"`
	Disabled      bool            `gorm:"not null;default:false" json:"disabled"`

	TaxEntries []ItemTaxEntry `gorm:"foreignKey:ItemCode;references:Code" json:"taxes"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// Sellable reports whether the item may appear on a sales document
func (i *Item) Sellable() bool {
	return i.IsSalesItem && !i.Disabled
}

// SafeImage returns the item image only when it points somewhere the
// front end is allowed to load from: an absolute http(s) URL or the
// framework's public file store. Anything else returns empty.
func (i *Item) SafeImage() string {
	img := strings.TrimSpace(i.Image)
	if img == "" {
		return ""
	}
	if strings.HasPrefix(img, "http://") ||
		strings.HasPrefix(img, "https://") ||
		strings.HasPrefix(img, "/files/") {
		return img
	}
	return ""
}

// ItemTaxEntry links an item to a tax template, optionally scoped to a
// tax category
type ItemTaxEntry struct {
	shared.Entity
	ItemCode    string `gorm:"type:varchar(140);not null;index" json:"item_code"`
	TaxTemplate string `gorm:"type:varchar(140);not null" json:"item_tax_template"`
	TaxCategory string `gorm:"type:varchar(140)" json:"tax_category"`
}

// TableName returns the table name for GORM
func (ItemTaxEntry) TableName() string {
	return "item_tax_entries"
}

// ResolveTaxTemplate picks the tax template for an item given a requested
// tax category. Priority: exact category match, then the entry with no
// category (the default), then the first entry, then empty.
func ResolveTaxTemplate(entries []ItemTaxEntry, taxCategory string) string {
	if len(entries) == 0 {
		return ""
	}
	var defaultTemplate string
	for _, e := range entries {
		if taxCategory != "" && e.TaxCategory == taxCategory {
			return e.TaxTemplate
		}
		if e.TaxCategory == "" && defaultTemplate == "" {
			defaultTemplate = e.TaxTemplate
		}
	}
	if defaultTemplate != "" {
		return defaultTemplate
	}
	return entries[0].TaxTemplate
}
