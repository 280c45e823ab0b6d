package catalog

import (
	"testing"

	"github.com/cecypo/powerpack-backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestItemSellable(t *testing.T) {
	tests := []struct {
		name     string
		item     Item
		sellable bool
	}{
		{"sales item enabled", Item{IsSalesItem: true, Disabled: false}, true},
		{"disabled item", Item{IsSalesItem: true, Disabled: true}, false},
		{"non-sales item", Item{IsSalesItem: false, Disabled: false}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.sellable, tt.item.Sellable())
		})
	}
}

func TestItemSafeImage(t *testing.T) {
	tests := []struct {
		name  string
		image string
		want  string
	}{
		{"https url", "https://cdn.example.com/a.png", "https://cdn.example.com/a.png"},
		{"http url", "http://cdn.example.com/a.png", "http://cdn.example.com/a.png"},
		{"public file store", "/files/a.png", "/files/a.png"},
		{"private file store", "/private/files/a.png", ""},
		{"javascript scheme", "javascript:alert(1)", ""},
		{"relative path", "images/a.png", ""},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := Item{Image: tt.image}
			assert.Equal(t, tt.want, item.SafeImage())
		})
	}
}

func TestResolveTaxTemplate(t *testing.T) {
	entries := []ItemTaxEntry{
		{TaxTemplate: "VAT 16%", TaxCategory: "In-State"},
		{TaxTemplate: "VAT 8%", TaxCategory: ""},
		{TaxTemplate: "VAT 0%", TaxCategory: "Export"},
	}

	t.Run("exact category match wins", func(t *testing.T) {
		assert.Equal(t, "VAT 0%", ResolveTaxTemplate(entries, "Export"))
	})

	t.Run("falls back to default category", func(t *testing.T) {
		assert.Equal(t, "VAT 8%", ResolveTaxTemplate(entries, "Unknown Category"))
	})

	t.Run("empty category uses default", func(t *testing.T) {
		assert.Equal(t, "VAT 8%", ResolveTaxTemplate(entries, ""))
	})

	t.Run("first entry when no default exists", func(t *testing.T) {
		noDefault := []ItemTaxEntry{
			{TaxTemplate: "VAT 16%", TaxCategory: "In-State"},
			{TaxTemplate: "VAT 0%", TaxCategory: "Export"},
		}
		assert.Equal(t, "VAT 16%", ResolveTaxTemplate(noDefault, "Unknown"))
	})

	t.Run("empty entries resolve to empty", func(t *testing.T) {
		assert.Equal(t, "", ResolveTaxTemplate(nil, "Export"))
	})
}

func TestAggregateBins(t *testing.T) {
	bins := []Bin{
		{
			Entity:        shared.NewEntity(),
			ItemCode:      "ITEM-001",
			Warehouse:     "Main - C",
			ActualQty:     decimal.NewFromInt(10),
			ReservedQty:   decimal.NewFromInt(2),
			ProjectedQty:  decimal.NewFromInt(8),
			ValuationRate: decimal.NewFromInt(100),
		},
		{
			Entity:        shared.NewEntity(),
			ItemCode:      "ITEM-001",
			Warehouse:     "Store - C",
			ActualQty:     decimal.NewFromInt(6),
			ReservedQty:   decimal.NewFromInt(0),
			ProjectedQty:  decimal.NewFromInt(6),
			ValuationRate: decimal.NewFromInt(120),
		},
	}

	snap := AggregateBins(bins)
	assert.True(t, snap.ActualQty.Equal(decimal.NewFromInt(16)))
	assert.True(t, snap.ReservedQty.Equal(decimal.NewFromInt(2)))
	assert.True(t, snap.ProjectedQty.Equal(decimal.NewFromInt(14)))
	assert.True(t, snap.ValuationRate.Equal(decimal.NewFromInt(110)))
}

func TestAggregateBinsEmpty(t *testing.T) {
	snap := AggregateBins(nil)
	assert.True(t, snap.ActualQty.IsZero())
	assert.True(t, snap.ValuationRate.IsZero())
}
