package persistence

import (
	"context"
	"errors"

	"github.com/cecypo/powerpack-backend/internal/domain/catalog"
	"github.com/cecypo/powerpack-backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormBinRepository implements catalog.BinRepository using GORM
type GormBinRepository struct {
	db *gorm.DB
}

// NewGormBinRepository creates a new GormBinRepository
func NewGormBinRepository(db *gorm.DB) *GormBinRepository {
	return &GormBinRepository{db: db}
}

// Find returns the bin for one item in one warehouse
func (r *GormBinRepository) Find(ctx context.Context, itemCode, warehouse string) (*catalog.Bin, error) {
	var bin catalog.Bin
	if err := r.db.WithContext(ctx).
		Where("item_code = ? AND warehouse = ?", itemCode, warehouse).
		First(&bin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bin, nil
}

// FindByItems returns all bins for the given items, optionally narrowed
// to one warehouse
func (r *GormBinRepository) FindByItems(ctx context.Context, itemCodes []string, warehouse string) ([]catalog.Bin, error) {
	if len(itemCodes) == 0 {
		return []catalog.Bin{}, nil
	}
	query := r.db.WithContext(ctx).Where("item_code IN ?", itemCodes)
	if warehouse != "" {
		query = query.Where("warehouse = ?", warehouse)
	}
	var bins []catalog.Bin
	if err := query.Find(&bins).Error; err != nil {
		return nil, err
	}
	return bins, nil
}

// FindByItem returns all bins for one item across warehouses
func (r *GormBinRepository) FindByItem(ctx context.Context, itemCode string) ([]catalog.Bin, error) {
	var bins []catalog.Bin
	if err := r.db.WithContext(ctx).
		Where("item_code = ?", itemCode).
		Find(&bins).Error; err != nil {
		return nil, err
	}
	return bins, nil
}

var _ catalog.BinRepository = (*GormBinRepository)(nil)

// GormWarehouseRepository implements catalog.WarehouseRepository using GORM
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

// Exists reports whether an enabled warehouse with the given name exists
func (r *GormWarehouseRepository) Exists(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Warehouse{}).
		Where("name = ? AND disabled = ?", name, false).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ catalog.WarehouseRepository = (*GormWarehouseRepository)(nil)
