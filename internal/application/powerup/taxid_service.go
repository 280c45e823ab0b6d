package powerup

import (
	"context"

	"github.com/cecypo/powerpack-backend/internal/domain/partner"
	"github.com/cecypo/powerpack-backend/internal/domain/settings"
	"github.com/cecypo/powerpack-backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TaxIDService flags tax IDs already registered to another party
type TaxIDService struct {
	partyRepo partner.PartyRepository
	gate      settings.FeatureGate
	logger    *zap.Logger
}

// NewTaxIDService creates a new TaxIDService
func NewTaxIDService(partyRepo partner.PartyRepository, gate settings.FeatureGate, logger *zap.Logger) *TaxIDService {
	return &TaxIDService{
		partyRepo: partyRepo,
		gate:      gate,
		logger:    logger,
	}
}

// CheckDuplicateTaxID reports every other party holding the given tax
// ID. The total count includes the document being checked, so two
// existing holders yield a total of three. An empty kind searches
// customers and suppliers alike; an unsupported kind yields an empty
// non-duplicate result.
func (s *TaxIDService) CheckDuplicateTaxID(ctx context.Context, taxID, currentParty, kind string) (*DuplicateTaxIDResult, error) {
	if !s.gate.IsEnabled(ctx, settings.FlagDuplicateTaxIDCheck) {
		return nil, shared.ErrFeatureDisabled
	}

	taxID = partner.NormalizeTaxID(taxID)
	if taxID == "" {
		return &DuplicateTaxIDResult{Matches: []TaxIDMatchRow{}}, nil
	}

	partyKind, ok := partner.ParseKind(kind)
	if !ok {
		return &DuplicateTaxIDResult{Matches: []TaxIDMatchRow{}}, nil
	}

	matches, err := s.partyRepo.FindByTaxID(ctx, taxID, currentParty, partyKind)
	if err != nil {
		return nil, err
	}

	rows := make([]TaxIDMatchRow, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, TaxIDMatchRow{
			PartyName:   m.PartyName,
			DisplayName: m.DisplayName,
			Kind:        string(m.Kind),
			CreatedAt:   m.CreatedAt,
		})
	}

	total := len(rows) + 1
	return &DuplicateTaxIDResult{
		HasDuplicates: total > 1,
		TotalCount:    total,
		Matches:       rows,
	}, nil
}
