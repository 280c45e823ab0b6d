package reconciliation

import (
	"context"

	"github.com/cecypo/powerpack-backend/internal/domain/reconciliation"
	"github.com/cecypo/powerpack-backend/internal/domain/settings"
	"github.com/cecypo/powerpack-backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ZeroAllocateRequest carries the selections made in the reconciliation
// tool
type ZeroAllocateRequest struct {
	Company         string                            `json:"company" binding:"required"`
	Party           string                            `json:"party" binding:"required"`
	PartyType       string                            `json:"party_type" binding:"required"`
	AccountCurrency string                            `json:"account_currency"`
	Payments        []reconciliation.PaymentReference `json:"payments" binding:"required"`
	Invoices        []reconciliation.InvoiceReference `json:"invoices" binding:"required"`
}

// ZeroReconcileRequest posts prepared zero allocations to the ledger
type ZeroReconcileRequest struct {
	Company           string                      `json:"company" binding:"required"`
	Party             string                      `json:"party" binding:"required"`
	PartyType         string                      `json:"party_type" binding:"required"`
	ReceivableAccount string                      `json:"receivable_payable_account"`
	Allocations       []reconciliation.Allocation `json:"allocations" binding:"required"`
}

// ZeroReconcileResponse reports what was posted and what was dropped
type ZeroReconcileResponse struct {
	Reconciled int `json:"reconciled"`
	Filtered   int `json:"filtered"`
}

// ZeroAllocationService prepares and posts zero-amount allocations so
// dimension values reach the payment ledger without moving money
type ZeroAllocationService struct {
	engine reconciliation.Engine
	gate   settings.FeatureGate
	logger *zap.Logger
}

// NewZeroAllocationService creates a new ZeroAllocationService
func NewZeroAllocationService(engine reconciliation.Engine, gate settings.FeatureGate, logger *zap.Logger) *ZeroAllocationService {
	return &ZeroAllocationService{
		engine: engine,
		gate:   gate,
		logger: logger,
	}
}

// ZeroAllocateEntries builds the payment x invoice cross product with
// zero allocated amounts. Invoice rows missing a type or number are
// dropped before pairing.
func (s *ZeroAllocationService) ZeroAllocateEntries(ctx context.Context, req ZeroAllocateRequest) ([]reconciliation.Allocation, error) {
	if !s.gate.IsEnabled(ctx, settings.FlagPaymentReconZeroAllocate) {
		return nil, shared.ErrFeatureDisabled
	}
	if len(req.Payments) == 0 || len(req.Invoices) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Select at least one payment and one invoice")
	}

	invoices := make([]reconciliation.InvoiceReference, 0, len(req.Invoices))
	for _, inv := range req.Invoices {
		if inv.InvoiceType == "" || inv.InvoiceNumber == "" {
			s.logger.Warn("Dropping invoice reference without identity",
				zap.String("invoice_type", inv.InvoiceType),
				zap.String("invoice_number", inv.InvoiceNumber))
			continue
		}
		invoices = append(invoices, inv)
	}
	if len(invoices) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "No identifiable invoices selected")
	}

	allocations := reconciliation.ZeroAllocate(req.Payments, invoices, req.AccountCurrency)

	s.logger.Info("Zero allocations prepared",
		zap.String("party", req.Party),
		zap.Int("payments", len(req.Payments)),
		zap.Int("invoices", len(invoices)),
		zap.Int("allocations", len(allocations)))
	return allocations, nil
}

// ZeroReconcile filters out rows without a positive payment amount and
// posts the remainder. The modified-since-fetched guard is disabled for
// this one engine call only; zero-amount rows cannot corrupt balances
// even against a stale snapshot.
func (s *ZeroAllocationService) ZeroReconcile(ctx context.Context, req ZeroReconcileRequest) (*ZeroReconcileResponse, error) {
	if !s.gate.IsEnabled(ctx, settings.FlagPaymentReconZeroAllocate) {
		return nil, shared.ErrFeatureDisabled
	}

	kept := make([]reconciliation.Allocation, 0, len(req.Allocations))
	filtered := 0
	for _, a := range req.Allocations {
		if !a.Amount.IsPositive() {
			filtered++
			continue
		}
		kept = append(kept, a)
	}
	if len(kept) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "No allocations with a positive payment amount remain")
	}

	err := s.engine.Reconcile(ctx, reconciliation.Request{
		Company:           req.Company,
		Party:             req.Party,
		PartyType:         req.PartyType,
		ReceivableAccount: req.ReceivableAccount,
		Allocations:       kept,
	}, reconciliation.Options{SkipModifiedCheck: true})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Zero reconciliation posted",
		zap.String("party", req.Party),
		zap.Int("reconciled", len(kept)),
		zap.Int("filtered", filtered))
	return &ZeroReconcileResponse{Reconciled: len(kept), Filtered: filtered}, nil
}
