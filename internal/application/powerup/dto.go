package powerup

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// StringList accepts either a native JSON array of strings or the legacy
// delimiter-encoded form older clients still send: a single string such
// as `"[\"A\", \"B\"]"` or `"A,B"`. Both decode to the same clean slice.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler
func (l *StringList) UnmarshalJSON(data []byte) error {
	var native []string
	if err := json.Unmarshal(data, &native); err == nil {
		*l = normalizeStrings(native)
		return nil
	}

	var legacy string
	if err := json.Unmarshal(data, &legacy); err != nil {
		return err
	}
	*l = parseLegacyList(legacy)
	return nil
}

// parseLegacyList splits a bracketed or comma separated encoding into
// clean values
func parseLegacyList(raw string) []string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "[")
	raw = strings.TrimSuffix(raw, "]")
	if raw == "" {
		return nil
	}
	return normalizeStrings(strings.Split(raw, ","))
}

// normalizeStrings trims whitespace and stray quote characters and drops
// empty values
func normalizeStrings(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		v = strings.Trim(v, `"'`)
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// PricePair is one item price assignment. Legacy clients send these as
// "CODE::RATE" strings.
type PricePair struct {
	ItemCode string
	Rate     decimal.Decimal
}

// ParsePricePairs decodes CODE::RATE strings. Malformed entries are
// skipped rather than failing the batch; the skipped count is returned
// so callers can report it.
func ParsePricePairs(raw []string) ([]PricePair, int) {
	pairs := make([]PricePair, 0, len(raw))
	skipped := 0
	for _, entry := range raw {
		code, rateStr, ok := strings.Cut(entry, "::")
		if !ok {
			skipped++
			continue
		}
		code = strings.TrimSpace(code)
		rate, err := decimal.NewFromString(strings.TrimSpace(rateStr))
		if err != nil || code == "" {
			skipped++
			continue
		}
		pairs = append(pairs, PricePair{ItemCode: code, Rate: rate})
	}
	return pairs, skipped
}

// BulkItemDetailsRequest asks for enriched detail rows for a set of
// items. TaxTemplate carries the host document's taxes_and_charges
// template; when present it overrides the per-item tax assignments.
type BulkItemDetailsRequest struct {
	Items       StringList `json:"items" binding:"required"`
	DocType     string     `json:"doctype"`
	PriceList   string     `json:"price_list" binding:"required"`
	Warehouse   string     `json:"warehouse"`
	Customer    string     `json:"customer"`
	TaxCategory string     `json:"tax_category"`
	TaxTemplate string     `json:"taxes_and_charges"`
	Batched     *bool      `json:"batched"`
}

// UseBatched reports the requested resolution strategy, defaulting to
// batched
func (r BulkItemDetailsRequest) UseBatched() bool {
	return r.Batched == nil || *r.Batched
}

// BulkStockDetailsRequest asks for stock-only detail rows
type BulkStockDetailsRequest struct {
	Items     StringList `json:"items" binding:"required"`
	DocType   string     `json:"doctype"`
	Warehouse string     `json:"warehouse"`
}

// ItemDetail is one enriched row of the bulk resolver output
type ItemDetail struct {
	ItemCode      string          `json:"item_code"`
	ItemName      string          `json:"item_name"`
	Description   string          `json:"description"`
	StockUOM      string          `json:"stock_uom"`
	Image         string          `json:"image"`
	ActualQty     decimal.Decimal `json:"actual_qty"`
	ReservedQty   decimal.Decimal `json:"reserved_qty"`
	ProjectedQty  decimal.Decimal `json:"projected_qty"`
	ValuationRate decimal.Decimal `json:"valuation_rate"`
	PriceListRate decimal.Decimal `json:"price_list_rate"`
	NetRate       decimal.Decimal `json:"net_rate"`
	TaxTemplate   string          `json:"item_tax_template"`
}

// StockItemDetail is one row of the stock-only resolver output
type StockItemDetail struct {
	ItemCode      string          `json:"item_code"`
	ItemName      string          `json:"item_name"`
	StockUOM      string          `json:"stock_uom"`
	ActualQty     decimal.Decimal `json:"actual_qty"`
	ReservedQty   decimal.Decimal `json:"reserved_qty"`
	ProjectedQty  decimal.Decimal `json:"projected_qty"`
	ValuationRate decimal.Decimal `json:"valuation_rate"`
}

// QuotationItemInfo summarizes an item's stock and trade history for the
// quotation side panel
type QuotationItemInfo struct {
	ItemCode         string          `json:"item_code"`
	ActualQty        decimal.Decimal `json:"actual_qty"`
	ValuationRate    decimal.Decimal `json:"valuation_rate"`
	LastPurchaseRate decimal.Decimal `json:"last_purchase_rate"`
	LastPurchaseDate *time.Time      `json:"last_purchase_date,omitempty"`
	LastSaleRate     decimal.Decimal `json:"last_sale_rate"`
	LastSaleDate     *time.Time      `json:"last_sale_date,omitempty"`
	LastCustomerRate decimal.Decimal `json:"last_customer_rate"`
	LastCustomerDate *time.Time      `json:"last_customer_date,omitempty"`
}

// FetchPricesRequest asks for cost and sell rates per item
type FetchPricesRequest struct {
	Items         StringList `json:"items" binding:"required"`
	CostPriceList string     `json:"cost_price_list"`
	SellPriceList string     `json:"sell_price_list" binding:"required"`
}

// ItemPriceRow is one row of the price fetch output
type ItemPriceRow struct {
	ItemCode string          `json:"item_code"`
	CostRate decimal.Decimal `json:"cost_rate"`
	SellRate decimal.Decimal `json:"sell_rate"`
}

// SavePricesRequest carries price assignments for one price list
type SavePricesRequest struct {
	PriceList string     `json:"price_list" binding:"required"`
	Pairs     StringList `json:"pairs" binding:"required"`
}

// SavePricesResponse reports how many assignments were applied
type SavePricesResponse struct {
	Applied int `json:"applied"`
	Skipped int `json:"skipped"`
}

// DuplicateTaxIDResult is the outcome of a duplicate tax ID check
type DuplicateTaxIDResult struct {
	HasDuplicates bool            `json:"has_duplicates"`
	TotalCount    int             `json:"total_count"`
	Matches       []TaxIDMatchRow `json:"matches"`
}

// TaxIDMatchRow is one party sharing the contested tax ID
type TaxIDMatchRow struct {
	PartyName   string    `json:"party_name"`
	DisplayName string    `json:"display_name"`
	Kind        string    `json:"kind"`
	CreatedAt   time.Time `json:"created_at"`
}

// OverdueInvoiceRow is one overdue invoice in the warning payload
type OverdueInvoiceRow struct {
	Name              string          `json:"name"`
	PostingDate       time.Time       `json:"posting_date"`
	DueDate           time.Time       `json:"due_date"`
	GrandTotal        decimal.Decimal `json:"grand_total"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	Currency          string          `json:"currency"`
}

// OverdueInvoicesResult is the overdue warning payload for one customer
type OverdueInvoicesResult struct {
	Customer string              `json:"customer"`
	Invoices []OverdueInvoiceRow `json:"invoices"`
}
