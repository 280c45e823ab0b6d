package powerup

import (
	"context"
	"time"

	"github.com/cecypo/powerpack-backend/internal/domain/selling"
	"github.com/cecypo/powerpack-backend/internal/domain/settings"
	"go.uber.org/zap"
)

// OverdueService produces the overdue-invoice warning shown when a
// salesperson picks a customer
type OverdueService struct {
	invoiceRepo selling.InvoiceRepository
	gate        settings.FeatureGate
	logger      *zap.Logger
	now         func() time.Time
}

// OverdueServiceOption configures an OverdueService
type OverdueServiceOption func(*OverdueService)

// WithClock overrides the time source, for tests
func WithClock(now func() time.Time) OverdueServiceOption {
	return func(s *OverdueService) {
		s.now = now
	}
}

// NewOverdueService creates a new OverdueService
func NewOverdueService(invoiceRepo selling.InvoiceRepository, gate settings.FeatureGate, logger *zap.Logger, opts ...OverdueServiceOption) *OverdueService {
	s := &OverdueService{
		invoiceRepo: invoiceRepo,
		gate:        gate,
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetCustomerOverdueInvoices lists submitted invoices past due with an
// outstanding balance, oldest due date first. A disabled warnings flag
// or an empty customer returns an empty result rather than an error so
// pickers can probe freely.
func (s *OverdueService) GetCustomerOverdueInvoices(ctx context.Context, customer, company string) (*OverdueInvoicesResult, error) {
	if !s.gate.IsEnabled(ctx, settings.FlagWarnings) {
		return &OverdueInvoicesResult{Customer: customer, Invoices: []OverdueInvoiceRow{}}, nil
	}
	if customer == "" {
		return &OverdueInvoicesResult{Invoices: []OverdueInvoiceRow{}}, nil
	}

	invoices, err := s.invoiceRepo.FindOverdue(ctx, customer, company, s.now())
	if err != nil {
		return nil, err
	}

	rows := make([]OverdueInvoiceRow, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, OverdueInvoiceRow{
			Name:              inv.Name,
			PostingDate:       inv.PostingDate,
			DueDate:           inv.DueDate,
			GrandTotal:        inv.GrandTotal,
			OutstandingAmount: inv.OutstandingAmount,
			Currency:          inv.Currency,
		})
	}
	return &OverdueInvoicesResult{Customer: customer, Invoices: rows}, nil
}
