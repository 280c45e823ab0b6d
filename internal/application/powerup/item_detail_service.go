package powerup

import (
	"context"
	"errors"
	"sort"

	"github.com/cecypo/powerpack-backend/internal/domain/catalog"
	"github.com/cecypo/powerpack-backend/internal/domain/selling"
	"github.com/cecypo/powerpack-backend/internal/domain/settings"
	"github.com/cecypo/powerpack-backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// bulkSelectionFlag maps a host document type to the flag gating its
// bulk selection dialog
func bulkSelectionFlag(docType string) string {
	switch docType {
	case "Quotation":
		return settings.FlagQuotationBulkSelection
	case "Sales Order":
		return settings.FlagSalesOrderBulkSelection
	case "Sales Invoice":
		return settings.FlagSalesInvoiceBulkSelection
	case "Stock Entry":
		return settings.FlagStockEntryBulkSelection
	case "Stock Reconciliation":
		return settings.FlagStockReconBulkSelection
	default:
		return settings.FlagItemListPowerup
	}
}

// ItemDetailService resolves enriched item rows for bulk selection
// dialogs and the quotation side panel
type ItemDetailService struct {
	itemRepo      catalog.ItemRepository
	binRepo       catalog.BinRepository
	priceRepo     catalog.PriceRepository
	warehouseRepo catalog.WarehouseRepository
	taxRepo       catalog.TaxTemplateRepository
	invoiceRepo   selling.InvoiceRepository
	gate          settings.FeatureGate
	logger        *zap.Logger
}

// NewItemDetailService creates a new ItemDetailService
func NewItemDetailService(
	itemRepo catalog.ItemRepository,
	binRepo catalog.BinRepository,
	priceRepo catalog.PriceRepository,
	warehouseRepo catalog.WarehouseRepository,
	taxRepo catalog.TaxTemplateRepository,
	invoiceRepo selling.InvoiceRepository,
	gate settings.FeatureGate,
	logger *zap.Logger,
) *ItemDetailService {
	return &ItemDetailService{
		itemRepo:      itemRepo,
		binRepo:       binRepo,
		priceRepo:     priceRepo,
		warehouseRepo: warehouseRepo,
		taxRepo:       taxRepo,
		invoiceRepo:   invoiceRepo,
		gate:          gate,
		logger:        logger,
	}
}

// GetBulkItemDetails returns one enriched row per sellable item, sorted
// by item code. The batched strategy loads everything in bulk queries;
// the per-item strategy degrades gracefully on individual lookup
// failures. Both produce identical rows for the same inputs. When the
// request names a customer, that customer's price on the list wins over
// the generic rate.
func (s *ItemDetailService) GetBulkItemDetails(ctx context.Context, req BulkItemDetailsRequest) ([]ItemDetail, error) {
	if !s.gate.IsEnabled(ctx, bulkSelectionFlag(req.DocType)) {
		return nil, shared.ErrFeatureDisabled
	}
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "No items selected")
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
	if req.Warehouse != "" {
		ok, err := s.warehouseRepo.Exists(ctx, req.Warehouse)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Warehouse does not exist: "+req.Warehouse)
		}
	}

	if req.UseBatched() {
		return s.bulkDetailsBatched(ctx, req)
	}
	return s.bulkDetailsPerItem(ctx, req)
}

func (s *ItemDetailService) bulkDetailsBatched(ctx context.Context, req BulkItemDetailsRequest) ([]ItemDetail, error) {
	items, err := s.itemRepo.FindByCodes(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(items))
	templateNames := make(map[string]struct{})
	for _, item := range items {
		if !item.Sellable() {
			continue
		}
		codes = append(codes, item.Code)
		if name := taxTemplateFor(item, req); name != "" {
			templateNames[name] = struct{}{}
		}
	}

	bins, err := s.binRepo.FindByItems(ctx, codes, req.Warehouse)
	if err != nil {
		return nil, err
	}
	binsByItem := make(map[string][]catalog.Bin, len(codes))
	for _, bin := range bins {
		binsByItem[bin.ItemCode] = append(binsByItem[bin.ItemCode], bin)
	}

	prices, err := s.priceRepo.FindPrices(ctx, codes, req.PriceList, true)
	if err != nil {
		return nil, err
	}
	priceByItem := make(map[string]decimal.Decimal, len(prices))
	for _, price := range prices {
		priceByItem[price.ItemCode] = price.Rate
	}
	if req.Customer != "" {
		customerPrices, err := s.priceRepo.FindCustomerPrices(ctx, codes, req.PriceList, req.Customer)
		if err != nil {
			return nil, err
		}
		for _, price := range customerPrices {
			priceByItem[price.ItemCode] = price.Rate
		}
	}

	names := make([]string, 0, len(templateNames))
	for name := range templateNames {
		names = append(names, name)
	}
	templates, err := s.taxRepo.FindByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	templateByName := make(map[string]catalog.TaxTemplate, len(templates))
	for _, tpl := range templates {
		templateByName[tpl.Name] = tpl
	}

	details := make([]ItemDetail, 0, len(items))
	for _, item := range items {
		if !item.Sellable() {
			continue
		}
		snap := catalog.AggregateBins(binsByItem[item.Code])
		templateName := taxTemplateFor(item, req)
		inclusive := decimal.Zero
		if tpl, ok := templateByName[templateName]; ok {
			inclusive = tpl.InclusiveRate()
		}
		details = append(details, buildDetail(item, snap, priceByItem[item.Code], templateName, inclusive))
	}
	sortDetails(details)
	return details, nil
}

// bulkDetailsPerItem resolves one item at a time. Lookup failures on a
// single item are logged and the item skipped, matching the tolerance
// clients expect from the older one-by-one endpoint.
func (s *ItemDetailService) bulkDetailsPerItem(ctx context.Context, req BulkItemDetailsRequest) ([]ItemDetail, error) {
	details := make([]ItemDetail, 0, len(req.Items))
	for _, code := range req.Items {
		detail, err := s.resolveOne(ctx, code, req)
		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				s.logger.Warn("Skipping item after lookup failure",
					zap.String("item_code", code),
					zap.Error(err))
			}
			continue
		}
		if detail != nil {
			details = append(details, *detail)
		}
	}
	sortDetails(details)
	return details, nil
}

func (s *ItemDetailService) resolveOne(ctx context.Context, code string, req BulkItemDetailsRequest) (*ItemDetail, error) {
	item, err := s.itemRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !item.Sellable() {
		return nil, nil
	}

	bins, err := s.binRepo.FindByItems(ctx, []string{item.Code}, req.Warehouse)
	if err != nil {
		return nil, err
	}
	snap := catalog.AggregateBins(bins)

	rate := decimal.Zero
	if price, err := s.priceRepo.FindPrice(ctx, item.Code, req.PriceList, true); err == nil {
		rate = price.Rate
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if req.Customer != "" {
		customerPrices, err := s.priceRepo.FindCustomerPrices(ctx, []string{item.Code}, req.PriceList, req.Customer)
		if err != nil {
			return nil, err
		}
		if len(customerPrices) > 0 {
			rate = customerPrices[0].Rate
		}
	}

	templateName := taxTemplateFor(*item, req)
	inclusive := decimal.Zero
	if templateName != "" {
		if tpl, err := s.taxRepo.FindByName(ctx, templateName); err == nil {
			inclusive = tpl.InclusiveRate()
		} else if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	detail := buildDetail(*item, snap, rate, templateName, inclusive)
	return &detail, nil
}

// taxTemplateFor picks the template for one row. A document-level
// template on the request wins over the item's own tax assignments.
func taxTemplateFor(item catalog.Item, req BulkItemDetailsRequest) string {
	if req.TaxTemplate != "" {
		return req.TaxTemplate
	}
	return catalog.ResolveTaxTemplate(item.TaxEntries, req.TaxCategory)
}

// buildDetail assembles one output row. Valuation prefers the bin rate
// over the item master rate.
func buildDetail(item catalog.Item, snap catalog.StockSnapshot, priceRate decimal.Decimal, templateName string, inclusiveRate decimal.Decimal) ItemDetail {
	valuation := snap.ValuationRate
	if valuation.IsZero() {
		valuation = item.ValuationRate
	}
	return ItemDetail{
		ItemCode:      item.Code,
		ItemName:      item.Name,
		Description:   item.Description,
		StockUOM:      item.StockUOM,
		Image:         item.SafeImage(),
		ActualQty:     snap.ActualQty,
		ReservedQty:   snap.ReservedQty,
		ProjectedQty:  snap.ProjectedQty,
		ValuationRate: valuation,
		PriceListRate: priceRate,
		NetRate:       catalog.NetRate(priceRate, inclusiveRate),
		TaxTemplate:   templateName,
	}
}

func sortDetails(details []ItemDetail) {
	sort.Slice(details, func(i, j int) bool {
		return details[i].ItemCode < details[j].ItemCode
	})
}

// GetBulkStockItemDetails returns stock-only rows, without prices or
// taxes. Items that do not exist are absent from the result.
func (s *ItemDetailService) GetBulkStockItemDetails(ctx context.Context, req BulkStockDetailsRequest) ([]StockItemDetail, error) {
	if !s.gate.IsEnabled(ctx, bulkSelectionFlag(req.DocType)) {
		return nil, shared.ErrFeatureDisabled
	}
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "No items selected")
	}
	if req.Warehouse != "" {
		ok, err := s.warehouseRepo.Exists(ctx, req.Warehouse)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Warehouse does not exist: "+req.Warehouse)
		}
	}

	items, err := s.itemRepo.FindByCodes(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(items))
	for _, item := range items {
		if !item.Disabled {
			codes = append(codes, item.Code)
		}
	}

	bins, err := s.binRepo.FindByItems(ctx, codes, req.Warehouse)
	if err != nil {
		return nil, err
	}
	binsByItem := make(map[string][]catalog.Bin, len(codes))
	for _, bin := range bins {
		binsByItem[bin.ItemCode] = append(binsByItem[bin.ItemCode], bin)
	}

	details := make([]StockItemDetail, 0, len(items))
	for _, item := range items {
		if item.Disabled {
			continue
		}
		snap := catalog.AggregateBins(binsByItem[item.Code])
		valuation := snap.ValuationRate
		if valuation.IsZero() {
			valuation = item.ValuationRate
		}
		details = append(details, StockItemDetail{
			ItemCode:      item.Code,
			ItemName:      item.Name,
			StockUOM:      item.StockUOM,
			ActualQty:     snap.ActualQty,
			ReservedQty:   snap.ReservedQty,
			ProjectedQty:  snap.ProjectedQty,
			ValuationRate: valuation,
		})
	}
	sort.Slice(details, func(i, j int) bool {
		return details[i].ItemCode < details[j].ItemCode
	})
	return details, nil
}

// GetItemInfoForQuotation summarizes one item's stock and trade history
// for the quotation side panel
func (s *ItemDetailService) GetItemInfoForQuotation(ctx context.Context, itemCode, customer, warehouse string) (*QuotationItemInfo, error) {
	if !s.gate.IsEnabled(ctx, settings.FlagQuotationTweaks) {
		return nil, shared.ErrFeatureDisabled
	}
	if itemCode == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Item code is required")
	}

	item, err := s.itemRepo.FindByCode(ctx, itemCode)
	if err != nil {
		return nil, err
	}

	var bins []catalog.Bin
	if warehouse != "" {
		bins, err = s.binRepo.FindByItems(ctx, []string{item.Code}, warehouse)
	} else {
		bins, err = s.binRepo.FindByItem(ctx, item.Code)
	}
	if err != nil {
		return nil, err
	}
	snap := catalog.AggregateBins(bins)
	valuation := snap.ValuationRate
	if valuation.IsZero() {
		valuation = item.ValuationRate
	}

	info := &QuotationItemInfo{
		ItemCode:      item.Code,
		ActualQty:     snap.ActualQty,
		ValuationRate: valuation,
	}

	if hist, err := s.invoiceRepo.LastPurchaseRate(ctx, item.Code); err != nil {
		s.logger.Warn("Last purchase rate lookup failed", zap.String("item_code", item.Code), zap.Error(err))
	} else if hist.Found {
		info.LastPurchaseRate = hist.Rate
		date := hist.PostingDate
		info.LastPurchaseDate = &date
	}

	if hist, err := s.invoiceRepo.LastSaleRate(ctx, item.Code, ""); err != nil {
		s.logger.Warn("Last sale rate lookup failed", zap.String("item_code", item.Code), zap.Error(err))
	} else if hist.Found {
		info.LastSaleRate = hist.Rate
		date := hist.PostingDate
		info.LastSaleDate = &date
	}

	if customer != "" {
		if hist, err := s.invoiceRepo.LastSaleRate(ctx, item.Code, customer); err != nil {
			s.logger.Warn("Customer sale rate lookup failed",
				zap.String("item_code", item.Code),
				zap.String("customer", customer),
				zap.Error(err))
		} else if hist.Found {
			info.LastCustomerRate = hist.Rate
			date := hist.PostingDate
			info.LastCustomerDate = &date
		}
	}

	return info, nil
}
