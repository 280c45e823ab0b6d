package reconciliation

import (
	"github.com/shopspring/decimal"
)

// PaymentReference is an unreconciled payment side entry. It may be a
// payment entry or a journal entry carrying an unallocated balance.
type PaymentReference struct {
	ReferenceType     string          `json:"reference_type"`
	ReferenceName     string          `json:"reference_name"`
	PostingDate       string          `json:"posting_date"`
	Amount            decimal.Decimal `json:"amount"`
	UnallocatedAmount decimal.Decimal `json:"unallocated_amount"`
	Currency          string          `json:"currency"`
	CostCenter        string          `json:"cost_center"`
}

// InvoiceReference is an outstanding invoice side entry
type InvoiceReference struct {
	InvoiceType       string          `json:"invoice_type"`
	InvoiceNumber     string          `json:"invoice_number"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	Currency          string          `json:"currency"`
	ExchangeRate      decimal.Decimal `json:"exchange_rate"`
	CostCenter        string          `json:"cost_center"`
	Project           string          `json:"project"`
}

// Allocation pairs one payment with one invoice. Zero allocations carry
// an allocated amount of zero and exist only to stamp dimensions onto
// the payment ledger without moving money.
type Allocation struct {
	ReferenceType      string          `json:"reference_type"`
	ReferenceName      string          `json:"reference_name"`
	InvoiceType        string          `json:"invoice_type"`
	InvoiceNumber      string          `json:"invoice_number"`
	AllocatedAmount    decimal.Decimal `json:"allocated_amount"`
	UnreconciledAmount decimal.Decimal `json:"unreconciled_amount"`
	Amount             decimal.Decimal `json:"amount"`
	ExchangeRate       decimal.Decimal `json:"exchange_rate"`
	DifferenceAmount   decimal.Decimal `json:"difference_amount"`
	CostCenter         string          `json:"cost_center"`
	Project            string          `json:"project"`
}

// ZeroAllocate builds the full payment x invoice cross product with zero
// allocated amounts. Every selected payment pairs with every selected
// invoice, drained payments included; m payments and n invoices always
// produce m*n rows.
func ZeroAllocate(payments []PaymentReference, invoices []InvoiceReference, companyCurrency string) []Allocation {
	allocations := make([]Allocation, 0, len(payments)*len(invoices))
	for _, p := range payments {
		for _, inv := range invoices {
			allocations = append(allocations, Allocation{
				ReferenceType:      p.ReferenceType,
				ReferenceName:      p.ReferenceName,
				InvoiceType:        inv.InvoiceType,
				InvoiceNumber:      inv.InvoiceNumber,
				AllocatedAmount:    decimal.Zero,
				UnreconciledAmount: p.UnallocatedAmount,
				Amount:             p.UnallocatedAmount,
				ExchangeRate:       allocationExchangeRate(inv, companyCurrency),
				DifferenceAmount:   decimal.Zero,
				CostCenter:         pickDimension(inv.CostCenter, p.CostCenter),
				Project:            inv.Project,
			})
		}
	}
	return allocations
}

// allocationExchangeRate is 1 when the invoice is booked in the party
// account currency and the invoice's recorded rate otherwise
func allocationExchangeRate(inv InvoiceReference, companyCurrency string) decimal.Decimal {
	if inv.Currency == companyCurrency || inv.Currency == "" {
		return decimal.NewFromInt(1)
	}
	if inv.ExchangeRate.IsPositive() {
		return inv.ExchangeRate
	}
	return decimal.NewFromInt(1)
}

func pickDimension(primary, fallback string) string {
	if primary != "" {
		return primary
	}
	return fallback
}
