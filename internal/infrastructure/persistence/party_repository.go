package persistence

import (
	"context"
	"errors"

	"github.com/cecypo/powerpack-backend/internal/domain/partner"
	"github.com/cecypo/powerpack-backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPartyRepository implements partner.PartyRepository using GORM
type GormPartyRepository struct {
	db *gorm.DB
}

// NewGormPartyRepository creates a new GormPartyRepository
func NewGormPartyRepository(db *gorm.DB) *GormPartyRepository {
	return &GormPartyRepository{db: db}
}

// FindByName finds a party by name and kind
func (r *GormPartyRepository) FindByName(ctx context.Context, name string, kind partner.PartyKind) (*partner.Party, error) {
	var party partner.Party
	if err := r.db.WithContext(ctx).
		Where("name = ? AND kind = ?", name, kind).
		First(&party).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &party, nil
}

// FindByTaxID returns every party carrying the tax ID, newest first,
// excluding the named party. An empty kind matches both kinds.
func (r *GormPartyRepository) FindByTaxID(ctx context.Context, taxID, excludeParty string, kind partner.PartyKind) ([]partner.TaxIDMatch, error) {
	query := r.db.WithContext(ctx).
		Model(&partner.Party{}).
		Where("tax_id = ?", taxID)
	if excludeParty != "" {
		query = query.Where("name <> ?", excludeParty)
	}
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var parties []partner.Party
	if err := query.Order("created_at DESC").Find(&parties).Error; err != nil {
		return nil, err
	}

	matches := make([]partner.TaxIDMatch, 0, len(parties))
	for _, p := range parties {
		matches = append(matches, partner.TaxIDMatch{
			PartyName:   p.Name,
			DisplayName: p.DisplayName,
			Kind:        p.Kind,
			CreatedAt:   p.CreatedAt,
		})
	}
	return matches, nil
}

// Save upserts a party on its (name, kind) key
func (r *GormPartyRepository) Save(ctx context.Context, party *partner.Party) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}, {Name: "kind"}},
			DoUpdates: clause.AssignmentColumns([]string{"display_name", "tax_id", "disabled", "updated_at"}),
		}).
		Create(party).Error
}

var _ partner.PartyRepository = (*GormPartyRepository)(nil)
