package selling

import (
	"time"

	"github.com/cecypo/powerpack-backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceStatus mirrors the document lifecycle of the host schema
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSubmitted InvoiceStatus = "submitted"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// SalesInvoice is a posted sales document. This service reads invoices
// for overdue warnings and reconciliation, and only ever writes them to
// cancel or adjust outstanding balances.
type SalesInvoice struct {
	shared.Entity
	Name              string          `gorm:"type:varchar(140);not null;uniqueIndex" json:"name"`
	Customer          string          `gorm:"type:varchar(140);not null;index" json:"customer"`
	Company           string          `gorm:"type:varchar(140);not null" json:"company"`
	PostingDate       time.Time       `gorm:"not null" json:"posting_date"`
	DueDate           time.Time       `gorm:"not null" json:"due_date"`
	Status            InvoiceStatus   `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	GrandTotal        decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0" json:"grand_total"`
	OutstandingAmount decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0" json:"outstanding_amount"`
	Currency          string          `gorm:"type:varchar(10);not null" json:"currency"`
	ConversionRate    decimal.Decimal `gorm:"type:decimal(18,9);not null;default:1" json:"conversion_rate"`
	ETRInvoiceNumber  string          `gorm:"type:varchar(140)" json:"etr_invoice_number"`
	CostCenter        string          `gorm:"type:varchar(140)" json:"cost_center"`
	Project           string          `gorm:"type:varchar(140)" json:"project"`

	Items []SalesInvoiceItem `gorm:"foreignKey:InvoiceName;references:Name" json:"items"`
}

// TableName returns the table name for GORM
func (SalesInvoice) TableName() string {
	return "sales_invoices"
}

// Overdue reports whether the invoice still carries a balance past its
// due date, as of the given day
func (inv *SalesInvoice) Overdue(today time.Time) bool {
	return inv.Status == InvoiceStatusSubmitted &&
		inv.OutstandingAmount.IsPositive() &&
		inv.DueDate.Before(today.Truncate(24*time.Hour))
}

// Cancel marks the invoice cancelled. It fails when an ETR invoice
// number has been assigned and the guard flag is on, because fiscalized
// invoices must not disappear from the tax register.
func (inv *SalesInvoice) Cancel(preventETRCancellation bool) error {
	if inv.Status == InvoiceStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Invoice is already cancelled")
	}
	if preventETRCancellation && inv.ETRInvoiceNumber != "" {
		return shared.NewDomainError("ETR_CANCEL_BLOCKED",
			"This invoice cannot be cancelled as it contains an ETR Invoice Number: "+inv.ETRInvoiceNumber)
	}
	inv.Status = InvoiceStatusCancelled
	inv.Touch()
	return nil
}

// SalesInvoiceItem is a historical sales line used for last-rate lookups
type SalesInvoiceItem struct {
	shared.Entity
	InvoiceName string          `gorm:"type:varchar(140);not null;index" json:"invoice_name"`
	ItemCode    string          `gorm:"type:varchar(140);not null;index" json:"item_code"`
	Rate        decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0" json:"rate"`
}

// TableName returns the table name for GORM
func (SalesInvoiceItem) TableName() string {
	return "sales_invoice_items"
}

// PurchaseInvoiceItem is a historical purchase line used for last
// purchase rate lookups
type PurchaseInvoiceItem struct {
	shared.Entity
	InvoiceName string          `gorm:"type:varchar(140);not null;index" json:"invoice_name"`
	ItemCode    string          `gorm:"type:varchar(140);not null;index" json:"item_code"`
	Rate        decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0" json:"rate"`
	PostingDate time.Time       `gorm:"not null" json:"posting_date"`
}

// TableName returns the table name for GORM
func (PurchaseInvoiceItem) TableName() string {
	return "purchase_invoice_items"
}

// RateHistory is the result of a last-rate lookup against invoice lines
type RateHistory struct {
	Rate        decimal.Decimal `json:"rate"`
	PostingDate time.Time       `json:"posting_date"`
	Found       bool            `json:"-"`
}
