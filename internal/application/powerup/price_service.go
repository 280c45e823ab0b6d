package powerup

import (
	"context"
	"errors"
	"sort"

	"github.com/cecypo/powerpack-backend/internal/domain/catalog"
	"github.com/cecypo/powerpack-backend/internal/domain/settings"
	"github.com/cecypo/powerpack-backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PriceService implements the bulk price editor behind the POS power-up
type PriceService struct {
	priceRepo catalog.PriceRepository
	itemRepo  catalog.ItemRepository
	gate      settings.FeatureGate
	logger    *zap.Logger
}

// NewPriceService creates a new PriceService
func NewPriceService(priceRepo catalog.PriceRepository, itemRepo catalog.ItemRepository, gate settings.FeatureGate, logger *zap.Logger) *PriceService {
	return &PriceService{
		priceRepo: priceRepo,
		itemRepo:  itemRepo,
		gate:      gate,
		logger:    logger,
	}
}

// FetchItemPrices returns cost and sell rates per item. Items without a
// price row report a zero rate; items that do not exist are skipped.
func (s *PriceService) FetchItemPrices(ctx context.Context, req FetchPricesRequest) ([]ItemPriceRow, error) {
	if !s.gate.IsEnabled(ctx, settings.FlagPOSPowerup) {
		return nil, shared.ErrFeatureDisabled
	}
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "No items selected")
	}
	if req.SellPriceList == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Sell price list is required")
	}

	items, err := s.itemRepo.FindByCodes(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(items))
	for _, item := range items {
		codes = append(codes, item.Code)
	}

	sellRates, err := s.rateMap(ctx, codes, req.SellPriceList, true)
	if err != nil {
		return nil, err
	}
	costRates := map[string]decimal.Decimal{}
	if req.CostPriceList != "" {
		costRates, err = s.rateMap(ctx, codes, req.CostPriceList, false)
		if err != nil {
			return nil, err
		}
	}

	rows := make([]ItemPriceRow, 0, len(codes))
	for _, code := range codes {
		rows = append(rows, ItemPriceRow{
			ItemCode: code,
			CostRate: costRates[code],
			SellRate: sellRates[code],
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ItemCode < rows[j].ItemCode })
	return rows, nil
}

func (s *PriceService) rateMap(ctx context.Context, codes []string, priceList string, selling bool) (map[string]decimal.Decimal, error) {
	prices, err := s.priceRepo.FindPrices(ctx, codes, priceList, selling)
	if err != nil {
		return nil, err
	}
	rates := make(map[string]decimal.Decimal, len(prices))
	for _, price := range prices {
		rates[price.ItemCode] = price.Rate
	}
	return rates, nil
}

// SaveItemPrices applies CODE::RATE assignments to one selling price
// list. Malformed pairs and per-pair storage failures are skipped and
// counted, never failing the rest of the batch.
func (s *PriceService) SaveItemPrices(ctx context.Context, req SavePricesRequest) (*SavePricesResponse, error) {
	if !s.gate.IsEnabled(ctx, settings.FlagPOSPowerup) {
		return nil, shared.ErrFeatureDisabled
	}
	if req.PriceList == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Price list is required")
	}

	exists, err := s.priceRepo.PriceListExists(ctx, req.PriceList)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Price list does not exist: "+req.PriceList)
	}

	pairs, skipped := ParsePricePairs(req.Pairs)
	if len(pairs) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "No valid price pairs in request")
	}

	applied := 0
	for _, pair := range pairs {
		if err := s.savePair(ctx, pair, req.PriceList); err != nil {
			s.logger.Warn("Skipping price assignment",
				zap.String("item_code", pair.ItemCode),
				zap.String("price_list", req.PriceList),
				zap.Error(err))
			skipped++
			continue
		}
		applied++
	}

	s.logger.Info("Bulk price save finished",
		zap.String("price_list", req.PriceList),
		zap.Int("applied", applied),
		zap.Int("skipped", skipped))
	return &SavePricesResponse{Applied: applied, Skipped: skipped}, nil
}

// savePair updates the existing selling row or creates a fresh one
func (s *PriceService) savePair(ctx context.Context, pair PricePair, priceList string) error {
	existing, err := s.priceRepo.FindPrice(ctx, pair.ItemCode, priceList, true)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		return s.priceRepo.Save(ctx, catalog.NewItemPrice(pair.ItemCode, priceList, pair.Rate))
	}
	existing.SetRate(pair.Rate)
	return s.priceRepo.Save(ctx, existing)
}
