package selling

import (
	"context"

	"github.com/cecypo/powerpack-backend/internal/domain/selling"
	"github.com/cecypo/powerpack-backend/internal/domain/settings"
	"go.uber.org/zap"
)

// InvoiceService handles sales invoice lifecycle operations touched by
// the power-ups
type InvoiceService struct {
	invoiceRepo selling.InvoiceRepository
	gate        settings.FeatureGate
	logger      *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo selling.InvoiceRepository, gate settings.FeatureGate, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		gate:        gate,
		logger:      logger,
	}
}

// CancelInvoice cancels a sales invoice by name. When the ETR guard flag
// is on, invoices carrying a fiscal device number are refused.
func (s *InvoiceService) CancelInvoice(ctx context.Context, name string) error {
	inv, err := s.invoiceRepo.FindByName(ctx, name)
	if err != nil {
		return err
	}

	guard := s.gate.IsEnabled(ctx, settings.FlagPreventETRInvoiceCancel)
	if err := inv.Cancel(guard); err != nil {
		return err
	}

	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return err
	}

	s.logger.Info("Sales invoice cancelled",
		zap.String("invoice", inv.Name),
		zap.String("customer", inv.Customer))
	return nil
}
