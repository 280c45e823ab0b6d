package reconciliation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroAllocateCrossProduct(t *testing.T) {
	payments := []PaymentReference{
		{ReferenceType: "Payment Entry", ReferenceName: "PE-001", UnallocatedAmount: decimal.NewFromInt(500), Currency: "KES"},
		{ReferenceType: "Payment Entry", ReferenceName: "PE-002", UnallocatedAmount: decimal.NewFromInt(300), Currency: "KES"},
	}
	invoices := []InvoiceReference{
		{InvoiceType: "Sales Invoice", InvoiceNumber: "SINV-001", Currency: "KES", CostCenter: "Main - C", Project: "PRJ-1"},
		{InvoiceType: "Sales Invoice", InvoiceNumber: "SINV-002", Currency: "KES"},
		{InvoiceType: "Sales Invoice", InvoiceNumber: "SINV-003", Currency: "KES"},
	}

	allocations := ZeroAllocate(payments, invoices, "KES")
	require.Len(t, allocations, 6)

	for _, a := range allocations {
		assert.True(t, a.AllocatedAmount.IsZero())
		assert.True(t, a.DifferenceAmount.IsZero())
		assert.True(t, a.ExchangeRate.Equal(decimal.NewFromInt(1)))
	}

	first := allocations[0]
	assert.Equal(t, "PE-001", first.ReferenceName)
	assert.Equal(t, "SINV-001", first.InvoiceNumber)
	assert.Equal(t, "Main - C", first.CostCenter)
	assert.Equal(t, "PRJ-1", first.Project)
	assert.True(t, first.Amount.Equal(decimal.NewFromInt(500)))
}

func TestZeroAllocateKeepsDrainedPayments(t *testing.T) {
	payments := []PaymentReference{
		{ReferenceType: "Payment Entry", ReferenceName: "PE-001", UnallocatedAmount: decimal.Zero},
		{ReferenceType: "Payment Entry", ReferenceName: "PE-002", UnallocatedAmount: decimal.Zero},
	}
	invoices := []InvoiceReference{
		{InvoiceType: "Sales Invoice", InvoiceNumber: "SINV-001"},
		{InvoiceType: "Sales Invoice", InvoiceNumber: "SINV-002"},
		{InvoiceType: "Sales Invoice", InvoiceNumber: "SINV-003"},
	}

	allocations := ZeroAllocate(payments, invoices, "KES")

	require.Len(t, allocations, 6)
	for _, a := range allocations {
		assert.True(t, a.AllocatedAmount.IsZero())
		assert.True(t, a.Amount.IsZero())
		assert.True(t, a.UnreconciledAmount.IsZero())
	}
	assert.Equal(t, "PE-001", allocations[0].ReferenceName)
	assert.Equal(t, "PE-002", allocations[3].ReferenceName)
}

func TestZeroAllocateForeignInvoiceUsesRecordedRate(t *testing.T) {
	payments := []PaymentReference{
		{ReferenceName: "PE-001", UnallocatedAmount: decimal.NewFromInt(100), Currency: "KES"},
	}
	invoices := []InvoiceReference{
		{InvoiceNumber: "SINV-USD", Currency: "USD", ExchangeRate: decimal.RequireFromString("129.5")},
	}

	allocations := ZeroAllocate(payments, invoices, "KES")
	require.Len(t, allocations, 1)
	assert.True(t, allocations[0].ExchangeRate.Equal(decimal.RequireFromString("129.5")))
}

func TestZeroAllocateRateIgnoresPaymentCurrency(t *testing.T) {
	payments := []PaymentReference{
		{ReferenceName: "PE-USD", UnallocatedAmount: decimal.NewFromInt(100), Currency: "USD"},
	}
	invoices := []InvoiceReference{
		{InvoiceNumber: "SINV-USD", Currency: "USD", ExchangeRate: decimal.RequireFromString("129.5")},
	}

	// The account currency decides the rate, not the payment currency.
	allocations := ZeroAllocate(payments, invoices, "KES")
	require.Len(t, allocations, 1)
	assert.True(t, allocations[0].ExchangeRate.Equal(decimal.RequireFromString("129.5")))

	allocations = ZeroAllocate(payments, invoices, "USD")
	require.Len(t, allocations, 1)
	assert.True(t, allocations[0].ExchangeRate.Equal(decimal.NewFromInt(1)))
}

func TestZeroAllocatePaymentCostCenterFallback(t *testing.T) {
	payments := []PaymentReference{
		{ReferenceName: "PE-001", UnallocatedAmount: decimal.NewFromInt(10), CostCenter: "Branch - C"},
	}
	invoices := []InvoiceReference{{InvoiceNumber: "SINV-001"}}

	allocations := ZeroAllocate(payments, invoices, "KES")
	require.Len(t, allocations, 1)
	assert.Equal(t, "Branch - C", allocations[0].CostCenter)
}
