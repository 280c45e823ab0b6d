package persistence

import (
	"context"
	"errors"

	"github.com/cecypo/powerpack-backend/internal/domain/catalog"
	"github.com/cecypo/powerpack-backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormItemRepository implements catalog.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByCode finds an item by its code with tax entries preloaded
func (r *GormItemRepository) FindByCode(ctx context.Context, code string) (*catalog.Item, error) {
	var item catalog.Item
	if err := r.db.WithContext(ctx).
		Preload("TaxEntries").
		First(&item, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByCodes finds all existing items among the given codes, ordered
// by code ascending
func (r *GormItemRepository) FindByCodes(ctx context.Context, codes []string) ([]catalog.Item, error) {
	if len(codes) == 0 {
		return []catalog.Item{}, nil
	}
	var items []catalog.Item
	if err := r.db.WithContext(ctx).
		Preload("TaxEntries").
		Where("code IN ?", codes).
		Order("code ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

var _ catalog.ItemRepository = (*GormItemRepository)(nil)

// GormTaxTemplateRepository implements catalog.TaxTemplateRepository using GORM
type GormTaxTemplateRepository struct {
	db *gorm.DB
}

// NewGormTaxTemplateRepository creates a new GormTaxTemplateRepository
func NewGormTaxTemplateRepository(db *gorm.DB) *GormTaxTemplateRepository {
	return &GormTaxTemplateRepository{db: db}
}

// FindByName finds a tax template with its lines preloaded
func (r *GormTaxTemplateRepository) FindByName(ctx context.Context, name string) (*catalog.TaxTemplate, error) {
	var template catalog.TaxTemplate
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&template, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &template, nil
}

// FindByNames finds all existing templates among the given names
func (r *GormTaxTemplateRepository) FindByNames(ctx context.Context, names []string) ([]catalog.TaxTemplate, error) {
	if len(names) == 0 {
		return []catalog.TaxTemplate{}, nil
	}
	var templates []catalog.TaxTemplate
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("name IN ?", names).
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

var _ catalog.TaxTemplateRepository = (*GormTaxTemplateRepository)(nil)
