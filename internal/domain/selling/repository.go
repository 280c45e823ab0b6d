package selling

import (
	"context"
	"time"
)

// InvoiceRepository provides access to sales invoices and rate history
type InvoiceRepository interface {
	// FindByName returns the invoice or shared.ErrNotFound
	FindByName(ctx context.Context, name string) (*SalesInvoice, error)

	// FindOverdue returns submitted invoices for a customer with
	// positive outstanding and due date strictly before today, ordered
	// by due date ascending. Company narrows the search when non-empty.
	FindOverdue(ctx context.Context, customer, company string, today time.Time) ([]SalesInvoice, error)

	// Save persists invoice mutations (cancellation, outstanding updates)
	Save(ctx context.Context, inv *SalesInvoice) error

	// LastSaleRate returns the most recent submitted sale of an item,
	// optionally restricted to one customer. Found is false when the
	// item has never been sold.
	LastSaleRate(ctx context.Context, itemCode, customer string) (RateHistory, error)

	// LastPurchaseRate returns the most recent submitted purchase of an
	// item. Found is false when the item has never been bought.
	LastPurchaseRate(ctx context.Context, itemCode string) (RateHistory, error)
}
