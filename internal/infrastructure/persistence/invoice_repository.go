package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/cecypo/powerpack-backend/internal/domain/selling"
	"github.com/cecypo/powerpack-backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements selling.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByName finds a sales invoice by its document name
func (r *GormInvoiceRepository) FindByName(ctx context.Context, name string) (*selling.SalesInvoice, error) {
	var inv selling.SalesInvoice
	if err := r.db.WithContext(ctx).First(&inv, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// FindOverdue returns submitted invoices with positive outstanding and
// due date before today, ordered by due date ascending
func (r *GormInvoiceRepository) FindOverdue(ctx context.Context, customer, company string, today time.Time) ([]selling.SalesInvoice, error) {
	query := r.db.WithContext(ctx).
		Where("customer = ?", customer).
		Where("status = ?", selling.InvoiceStatusSubmitted).
		Where("outstanding_amount > 0").
		Where("due_date < ?", today.Truncate(24*time.Hour))
	if company != "" {
		query = query.Where("company = ?", company)
	}

	var invoices []selling.SalesInvoice
	if err := query.Order("due_date ASC").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Save persists invoice mutations
func (r *GormInvoiceRepository) Save(ctx context.Context, inv *selling.SalesInvoice) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

// LastSaleRate returns the most recent submitted sale of an item,
// optionally restricted to one customer
func (r *GormInvoiceRepository) LastSaleRate(ctx context.Context, itemCode, customer string) (selling.RateHistory, error) {
	query := r.db.WithContext(ctx).
		Table("sales_invoice_items AS sii").
		Select("sii.rate AS rate, si.posting_date AS posting_date").
		Joins("JOIN sales_invoices si ON si.name = sii.invoice_name").
		Where("sii.item_code = ?", itemCode).
		Where("si.status = ?", selling.InvoiceStatusSubmitted)
	if customer != "" {
		query = query.Where("si.customer = ?", customer)
	}

	var row selling.RateHistory
	err := query.Order("si.posting_date DESC").Limit(1).Scan(&row).Error
	if err != nil {
		return selling.RateHistory{}, err
	}
	row.Found = !row.PostingDate.IsZero()
	return row, nil
}

// LastPurchaseRate returns the most recent purchase of an item
func (r *GormInvoiceRepository) LastPurchaseRate(ctx context.Context, itemCode string) (selling.RateHistory, error) {
	var row selling.RateHistory
	err := r.db.WithContext(ctx).
		Table("purchase_invoice_items").
		Select("rate, posting_date").
		Where("item_code = ?", itemCode).
		Order("posting_date DESC").
		Limit(1).
		Scan(&row).Error
	if err != nil {
		return selling.RateHistory{}, err
	}
	row.Found = !row.PostingDate.IsZero()
	return row, nil
}

var _ selling.InvoiceRepository = (*GormInvoiceRepository)(nil)
