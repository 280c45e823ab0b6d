package catalog

import (
	"time"

	"github.com/cecypo/powerpack-backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PriceList is a named table of item rates, either buying or selling
type PriceList struct {
	shared.Entity
	Name    string `gorm:"type:varchar(140);not null;uniqueIndex" json:"name"`
	Buying  bool   `gorm:"not null;default:false" json:"buying"`
	Selling bool   `gorm:"not null;default:false" json:"selling"`
	Enabled bool   `gorm:"not null;default:true" json:"enabled"`
}

// TableName returns the table name for GORM
func (PriceList) TableName() string {
	return "price_lists"
}

// ItemPrice holds one item's rate on one price list. A non-empty
// Customer scopes the rate to that customer; the empty string is the
// generic row everyone else gets.
type ItemPrice struct {
	shared.Entity
	ItemCode  string          `gorm:"type:varchar(140);not null;uniqueIndex:idx_item_price_key,priority:1" json:"item_code"`
	PriceList string          `gorm:"type:varchar(140);not null;uniqueIndex:idx_item_price_key,priority:2" json:"price_list"`
	Selling   bool            `gorm:"not null;default:true;uniqueIndex:idx_item_price_key,priority:3" json:"selling"`
	Customer  string          `gorm:"type:varchar(140);not null;default:'';uniqueIndex:idx_item_price_key,priority:4" json:"customer"`
	Rate      decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0" json:"price_list_rate"`
}

// TableName returns the table name for GORM
func (ItemPrice) TableName() string {
	return "item_prices"
}

// NewItemPrice creates a generic selling price row for an item
func NewItemPrice(itemCode, priceList string, rate decimal.Decimal) *ItemPrice {
	return &ItemPrice{
		Entity:    shared.NewEntity(),
		ItemCode:  itemCode,
		PriceList: priceList,
		Selling:   true,
		Rate:      rate,
	}
}

// SetRate updates the rate and touches the row
func (p *ItemPrice) SetRate(rate decimal.Decimal) {
	p.Rate = rate
	p.UpdatedAt = time.Now()
}
