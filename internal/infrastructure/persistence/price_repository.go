package persistence

import (
	"context"
	"errors"

	"github.com/cecypo/powerpack-backend/internal/domain/catalog"
	"github.com/cecypo/powerpack-backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPriceRepository implements catalog.PriceRepository using GORM
type GormPriceRepository struct {
	db *gorm.DB
}

// NewGormPriceRepository creates a new GormPriceRepository
func NewGormPriceRepository(db *gorm.DB) *GormPriceRepository {
	return &GormPriceRepository{db: db}
}

// PriceListExists reports whether an enabled price list with the given
// name exists
func (r *GormPriceRepository) PriceListExists(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.PriceList{}).
		Where("name = ? AND enabled = ?", name, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindPrices returns generic price rows for the given items on one
// price list
func (r *GormPriceRepository) FindPrices(ctx context.Context, itemCodes []string, priceList string, selling bool) ([]catalog.ItemPrice, error) {
	if len(itemCodes) == 0 {
		return []catalog.ItemPrice{}, nil
	}
	var prices []catalog.ItemPrice
	if err := r.db.WithContext(ctx).
		Where("item_code IN ? AND price_list = ? AND selling = ? AND customer = ''", itemCodes, priceList, selling).
		Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

// FindCustomerPrices returns selling price rows scoped to one customer
func (r *GormPriceRepository) FindCustomerPrices(ctx context.Context, itemCodes []string, priceList, customer string) ([]catalog.ItemPrice, error) {
	if len(itemCodes) == 0 || customer == "" {
		return []catalog.ItemPrice{}, nil
	}
	var prices []catalog.ItemPrice
	if err := r.db.WithContext(ctx).
		Where("item_code IN ? AND price_list = ? AND selling = ? AND customer = ?", itemCodes, priceList, true, customer).
		Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

// FindPrice returns the generic price row for one item on one price list
func (r *GormPriceRepository) FindPrice(ctx context.Context, itemCode, priceList string, selling bool) (*catalog.ItemPrice, error) {
	var price catalog.ItemPrice
	if err := r.db.WithContext(ctx).
		Where("item_code = ? AND price_list = ? AND selling = ? AND customer = ''", itemCode, priceList, selling).
		First(&price).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &price, nil
}

// Save upserts an item price row on its (item, price list, selling,
// customer) key
func (r *GormPriceRepository) Save(ctx context.Context, price *catalog.ItemPrice) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "item_code"}, {Name: "price_list"}, {Name: "selling"}, {Name: "customer"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"rate", "updated_at"}),
		}).
		Create(price).Error
}

var _ catalog.PriceRepository = (*GormPriceRepository)(nil)
