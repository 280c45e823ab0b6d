package partner

import "context"

// PartyRepository provides access to customers and suppliers
type PartyRepository interface {
	// FindByName returns the party or shared.ErrNotFound
	FindByName(ctx context.Context, name string, kind PartyKind) (*Party, error)

	// FindByTaxID returns every party carrying the given tax ID,
	// excluding the named party so a document does not match itself.
	// An empty kind searches customers and suppliers alike.
	FindByTaxID(ctx context.Context, taxID, excludeParty string, kind PartyKind) ([]TaxIDMatch, error)

	// Save creates or updates a party
	Save(ctx context.Context, party *Party) error
}
