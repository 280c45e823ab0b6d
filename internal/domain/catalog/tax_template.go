package catalog

import (
	"github.com/cecypo/powerpack-backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TaxTemplate groups tax lines applied to sales documents
type TaxTemplate struct {
	shared.Entity
	Name  string            `gorm:"type:varchar(140);not null;uniqueIndex" json:"name"`
	Lines []TaxTemplateLine `gorm:"foreignKey:TemplateName;references:Name" json:"taxes"`
}

// TableName returns the table name for GORM
func (TaxTemplate) TableName() string {
	return "tax_templates"
}

// TaxTemplateLine is a single tax component of a template
type TaxTemplateLine struct {
	shared.Entity
	TemplateName        string          `gorm:"type:varchar(140);not null;index" json:"template_name"`
	Rate                decimal.Decimal `gorm:"type:decimal(9,4);not null;default:0" json:"rate"`
	IncludedInPrintRate bool            `gorm:"not null;default:false" json:"included_in_print_rate"`
}

// TableName returns the table name for GORM
func (TaxTemplateLine) TableName() string {
	return "tax_template_lines"
}

// InclusiveRate sums the rates of all lines already folded into the
// displayed price. This is the percentage that must be backed out to
// obtain a tax-exclusive net rate.
func (t *TaxTemplate) InclusiveRate() decimal.Decimal {
	total := decimal.Zero
	for _, line := range t.Lines {
		if line.IncludedInPrintRate {
			total = total.Add(line.Rate)
		}
	}
	return total
}

// NetRate backs an inclusive tax percentage out of a price-list rate.
// For a positive price p and inclusive rate r, net = p / (1 + r/100);
// otherwise the price is returned unchanged.
func NetRate(priceListRate, inclusiveRate decimal.Decimal) decimal.Decimal {
	if priceListRate.IsPositive() && inclusiveRate.IsPositive() {
		divisor := decimal.NewFromInt(1).Add(inclusiveRate.Div(decimal.NewFromInt(100)))
		return priceListRate.Div(divisor)
	}
	return priceListRate
}
