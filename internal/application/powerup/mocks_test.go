package powerup

import (
	"context"
	"time"

	"github.com/cecypo/powerpack-backend/internal/domain/catalog"
	"github.com/cecypo/powerpack-backend/internal/domain/partner"
	"github.com/cecypo/powerpack-backend/internal/domain/selling"
	"github.com/stretchr/testify/mock"
)

// stubGate enables exactly the named flags
type stubGate struct {
	enabled map[string]bool
}

func gateWith(flags ...string) *stubGate {
	g := &stubGate{enabled: make(map[string]bool, len(flags))}
	for _, f := range flags {
		g.enabled[f] = true
	}
	return g
}

func (g *stubGate) IsEnabled(_ context.Context, flag string) bool {
	return g.enabled[flag]
}

// MockItemRepository is a mock implementation of catalog.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByCode(ctx context.Context, code string) (*catalog.Item, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindByCodes(ctx context.Context, codes []string) ([]catalog.Item, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Item), args.Error(1)
}

// MockBinRepository is a mock implementation of catalog.BinRepository
type MockBinRepository struct {
	mock.Mock
}

func (m *MockBinRepository) Find(ctx context.Context, itemCode, warehouse string) (*catalog.Bin, error) {
	args := m.Called(ctx, itemCode, warehouse)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Bin), args.Error(1)
}

func (m *MockBinRepository) FindByItems(ctx context.Context, itemCodes []string, warehouse string) ([]catalog.Bin, error) {
	args := m.Called(ctx, itemCodes, warehouse)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Bin), args.Error(1)
}

func (m *MockBinRepository) FindByItem(ctx context.Context, itemCode string) ([]catalog.Bin, error) {
	args := m.Called(ctx, itemCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Bin), args.Error(1)
}

// MockPriceRepository is a mock implementation of catalog.PriceRepository
type MockPriceRepository struct {
	mock.Mock
}

func (m *MockPriceRepository) PriceListExists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockPriceRepository) FindPrices(ctx context.Context, itemCodes []string, priceList string, selling bool) ([]catalog.ItemPrice, error) {
	args := m.Called(ctx, itemCodes, priceList, selling)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.ItemPrice), args.Error(1)
}

func (m *MockPriceRepository) FindCustomerPrices(ctx context.Context, itemCodes []string, priceList, customer string) ([]catalog.ItemPrice, error) {
	args := m.Called(ctx, itemCodes, priceList, customer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.ItemPrice), args.Error(1)
}

func (m *MockPriceRepository) FindPrice(ctx context.Context, itemCode, priceList string, selling bool) (*catalog.ItemPrice, error) {
	args := m.Called(ctx, itemCode, priceList, selling)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ItemPrice), args.Error(1)
}

func (m *MockPriceRepository) Save(ctx context.Context, price *catalog.ItemPrice) error {
	args := m.Called(ctx, price)
	return args.Error(0)
}

// MockWarehouseRepository is a mock implementation of catalog.WarehouseRepository
type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) Exists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// MockTaxTemplateRepository is a mock implementation of catalog.TaxTemplateRepository
type MockTaxTemplateRepository struct {
	mock.Mock
}

func (m *MockTaxTemplateRepository) FindByName(ctx context.Context, name string) (*catalog.TaxTemplate, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.TaxTemplate), args.Error(1)
}

func (m *MockTaxTemplateRepository) FindByNames(ctx context.Context, names []string) ([]catalog.TaxTemplate, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.TaxTemplate), args.Error(1)
}

// MockInvoiceRepository is a mock implementation of selling.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByName(ctx context.Context, name string) (*selling.SalesInvoice, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*selling.SalesInvoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindOverdue(ctx context.Context, customer, company string, today time.Time) ([]selling.SalesInvoice, error) {
	args := m.Called(ctx, customer, company, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]selling.SalesInvoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, inv *selling.SalesInvoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) LastSaleRate(ctx context.Context, itemCode, customer string) (selling.RateHistory, error) {
	args := m.Called(ctx, itemCode, customer)
	return args.Get(0).(selling.RateHistory), args.Error(1)
}

func (m *MockInvoiceRepository) LastPurchaseRate(ctx context.Context, itemCode string) (selling.RateHistory, error) {
	args := m.Called(ctx, itemCode)
	return args.Get(0).(selling.RateHistory), args.Error(1)
}

// MockPartyRepository is a mock implementation of partner.PartyRepository
type MockPartyRepository struct {
	mock.Mock
}

func (m *MockPartyRepository) FindByName(ctx context.Context, name string, kind partner.PartyKind) (*partner.Party, error) {
	args := m.Called(ctx, name, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Party), args.Error(1)
}

func (m *MockPartyRepository) FindByTaxID(ctx context.Context, taxID, excludeParty string, kind partner.PartyKind) ([]partner.TaxIDMatch, error) {
	args := m.Called(ctx, taxID, excludeParty, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.TaxIDMatch), args.Error(1)
}

func (m *MockPartyRepository) Save(ctx context.Context, party *partner.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}
