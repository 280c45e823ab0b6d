package persistence

import (
	"context"
	"errors"

	"github.com/cecypo/powerpack-backend/internal/domain/settings"
	"github.com/cecypo/powerpack-backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingsRepository implements settings.Repository using GORM
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Get returns the singleton settings row
func (r *GormSettingsRepository) Get(ctx context.Context) (*settings.PowerPackSettings, error) {
	var record settings.PowerPackSettings
	if err := r.db.WithContext(ctx).First(&record, "id = ?", settings.SingletonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Save upserts the singleton settings row
func (r *GormSettingsRepository) Save(ctx context.Context, s *settings.PowerPackSettings) error {
	s.ID = settings.SingletonID
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(s).Error
}

var _ settings.Repository = (*GormSettingsRepository)(nil)
