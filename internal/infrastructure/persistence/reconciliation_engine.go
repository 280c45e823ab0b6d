package persistence

import (
	"context"
	"errors"

	"github.com/cecypo/powerpack-backend/internal/domain/reconciliation"
	"github.com/cecypo/powerpack-backend/internal/domain/selling"
	"github.com/cecypo/powerpack-backend/internal/domain/shared"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GormReconciliationEngine implements reconciliation.Engine. All
// allocations of one request commit in a single transaction; any
// rejection rolls the whole batch back.
type GormReconciliationEngine struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormReconciliationEngine creates a new GormReconciliationEngine
func NewGormReconciliationEngine(db *gorm.DB, logger *zap.Logger) *GormReconciliationEngine {
	return &GormReconciliationEngine{db: db, logger: logger}
}

// Reconcile applies the allocations against payment entries and
// invoices. Unless opts.SkipModifiedCheck is set, a payment whose
// unallocated balance no longer matches the snapshot the allocations
// were computed from rejects the batch.
func (e *GormReconciliationEngine) Reconcile(ctx context.Context, req reconciliation.Request, opts reconciliation.Options) error {
	if len(req.Allocations) == 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "No allocations to reconcile")
	}

	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, alloc := range req.Allocations {
			if err := e.applyAllocation(tx, alloc, opts); err != nil {
				return err
			}
		}
		e.logger.Info("Reconciliation batch committed",
			zap.String("party", req.Party),
			zap.Int("allocations", len(req.Allocations)))
		return nil
	})
}

func (e *GormReconciliationEngine) applyAllocation(tx *gorm.DB, alloc reconciliation.Allocation, opts reconciliation.Options) error {
	var payment reconciliation.PaymentEntry
	if err := tx.First(&payment, "name = ?", alloc.ReferenceName).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Payment entry not found: "+alloc.ReferenceName)
		}
		return err
	}

	if !opts.SkipModifiedCheck && !payment.UnallocatedAmount.Equal(alloc.UnreconciledAmount) {
		return shared.NewDomainError("DOCUMENT_MODIFIED",
			"Payment entry "+payment.Name+" was modified after references were fetched, please refresh and retry")
	}

	if alloc.AllocatedAmount.IsPositive() {
		var invoice selling.SalesInvoice
		if err := tx.First(&invoice, "name = ?", alloc.InvoiceNumber).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.NewDomainError("NOT_FOUND", "Invoice not found: "+alloc.InvoiceNumber)
			}
			return err
		}
		if invoice.OutstandingAmount.LessThan(alloc.AllocatedAmount) {
			return shared.NewDomainError("OVER_ALLOCATION",
				"Allocated amount exceeds outstanding balance of "+invoice.Name)
		}

		invoice.OutstandingAmount = invoice.OutstandingAmount.Sub(alloc.AllocatedAmount)
		invoice.Touch()
		if err := tx.Save(&invoice).Error; err != nil {
			return err
		}

		payment.UnallocatedAmount = payment.UnallocatedAmount.Sub(alloc.AllocatedAmount)
	}

	// Zero allocations exist to stamp dimensions onto the payment
	if payment.CostCenter == "" && alloc.CostCenter != "" {
		payment.CostCenter = alloc.CostCenter
	}
	if payment.Project == "" && alloc.Project != "" {
		payment.Project = alloc.Project
	}
	payment.Touch()
	return tx.Save(&payment).Error
}

var _ reconciliation.Engine = (*GormReconciliationEngine)(nil)
