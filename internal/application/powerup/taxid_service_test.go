package powerup

import (
	"context"
	"testing"
	"time"

	"github.com/cecypo/powerpack-backend/internal/domain/partner"
	"github.com/cecypo/powerpack-backend/internal/domain/settings"
	"github.com/cecypo/powerpack-backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCheckDuplicateTaxID(t *testing.T) {
	registered := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	partyRepo := new(MockPartyRepository)
	partyRepo.On("FindByTaxID", mock.Anything, "P051234567X", "New Customer", partner.PartyKind("")).Return([]partner.TaxIDMatch{
		{PartyName: "CUST-0042", DisplayName: "ACME Ltd", Kind: partner.PartyKindCustomer, CreatedAt: registered},
		{PartyName: "SUPP-0007", DisplayName: "ACME Supplies", Kind: partner.PartyKindSupplier},
	}, nil)

	svc := NewTaxIDService(partyRepo, gateWith(settings.FlagDuplicateTaxIDCheck), zap.NewNop())

	result, err := svc.CheckDuplicateTaxID(context.Background(), "P051234567X", "New Customer", "")
	require.NoError(t, err)
	assert.True(t, result.HasDuplicates)
	assert.Equal(t, 3, result.TotalCount, "two existing holders plus the document being checked")
	require.Len(t, result.Matches, 2)
	assert.Equal(t, "CUST-0042", result.Matches[0].PartyName)
	assert.Equal(t, "ACME Ltd", result.Matches[0].DisplayName)
	assert.Equal(t, registered, result.Matches[0].CreatedAt)
}

func TestCheckDuplicateTaxIDFiltersByKind(t *testing.T) {
	partyRepo := new(MockPartyRepository)
	partyRepo.On("FindByTaxID", mock.Anything, "P051234567X", "", partner.PartyKindSupplier).Return([]partner.TaxIDMatch{
		{PartyName: "SUPP-0007", DisplayName: "ACME Supplies", Kind: partner.PartyKindSupplier},
	}, nil)

	svc := NewTaxIDService(partyRepo, gateWith(settings.FlagDuplicateTaxIDCheck), zap.NewNop())

	result, err := svc.CheckDuplicateTaxID(context.Background(), "P051234567X", "", "Supplier")
	require.NoError(t, err)
	assert.True(t, result.HasDuplicates)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "supplier", result.Matches[0].Kind)
}

func TestCheckDuplicateTaxIDUnsupportedKind(t *testing.T) {
	partyRepo := new(MockPartyRepository)

	svc := NewTaxIDService(partyRepo, gateWith(settings.FlagDuplicateTaxIDCheck), zap.NewNop())

	result, err := svc.CheckDuplicateTaxID(context.Background(), "P051234567X", "", "Employee")
	require.NoError(t, err)
	assert.False(t, result.HasDuplicates)
	assert.Empty(t, result.Matches)
	partyRepo.AssertNotCalled(t, "FindByTaxID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckDuplicateTaxIDNoMatches(t *testing.T) {
	partyRepo := new(MockPartyRepository)
	partyRepo.On("FindByTaxID", mock.Anything, "P051234567X", "", partner.PartyKind("")).Return([]partner.TaxIDMatch{}, nil)

	svc := NewTaxIDService(partyRepo, gateWith(settings.FlagDuplicateTaxIDCheck), zap.NewNop())

	result, err := svc.CheckDuplicateTaxID(context.Background(), "P051234567X", "", "")
	require.NoError(t, err)
	assert.False(t, result.HasDuplicates)
	assert.Equal(t, 1, result.TotalCount)
	assert.Empty(t, result.Matches)
}

func TestCheckDuplicateTaxIDEmptyTaxID(t *testing.T) {
	partyRepo := new(MockPartyRepository)

	svc := NewTaxIDService(partyRepo, gateWith(settings.FlagDuplicateTaxIDCheck), zap.NewNop())

	result, err := svc.CheckDuplicateTaxID(context.Background(), "   ", "ACME Ltd", "")
	require.NoError(t, err)
	assert.False(t, result.HasDuplicates)
	assert.Empty(t, result.Matches)
	partyRepo.AssertNotCalled(t, "FindByTaxID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckDuplicateTaxIDFeatureDisabled(t *testing.T) {
	svc := NewTaxIDService(new(MockPartyRepository), gateWith(), zap.NewNop())

	_, err := svc.CheckDuplicateTaxID(context.Background(), "P051234567X", "", "")
	assert.ErrorIs(t, err, shared.ErrFeatureDisabled)
}
