package catalog

import (
	"github.com/cecypo/powerpack-backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Bin is the per-warehouse stock and valuation record for an item
type Bin struct {
	shared.Entity
	ItemCode      string          `gorm:"type:varchar(140);not null;uniqueIndex:idx_bin_item_warehouse,priority:1" json:"item_code"`
	Warehouse     string          `gorm:"type:varchar(140);not null;uniqueIndex:idx_bin_item_warehouse,priority:2" json:"warehouse"`
	ActualQty     decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0" json:"actual_qty"`
	ReservedQty   decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0" json:"reserved_qty"`
	ProjectedQty  decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0" json:"projected_qty"`
	ValuationRate decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0" json:"valuation_rate"`
}

// TableName returns the table name for GORM
func (Bin) TableName() string {
	return "bins"
}

// StockSnapshot is an item's stock position, either for one warehouse or
// aggregated across all of them
type StockSnapshot struct {
	ActualQty     decimal.Decimal `json:"actual_qty"`
	ReservedQty   decimal.Decimal `json:"reserved_qty"`
	ProjectedQty  decimal.Decimal `json:"projected_qty"`
	ValuationRate decimal.Decimal `json:"valuation_rate"`
}

// AggregateBins sums quantities across bins and averages the valuation
// rate. An empty slice yields a zero snapshot.
func AggregateBins(bins []Bin) StockSnapshot {
	var snap StockSnapshot
	if len(bins) == 0 {
		return snap
	}
	rateTotal := decimal.Zero
	for _, b := range bins {
		snap.ActualQty = snap.ActualQty.Add(b.ActualQty)
		snap.ReservedQty = snap.ReservedQty.Add(b.ReservedQty)
		snap.ProjectedQty = snap.ProjectedQty.Add(b.ProjectedQty)
		rateTotal = rateTotal.Add(b.ValuationRate)
	}
	snap.ValuationRate = rateTotal.Div(decimal.NewFromInt(int64(len(bins))))
	return snap
}

// Warehouse is a lookup row for validating warehouse references
type Warehouse struct {
	shared.Entity
	Name     string `gorm:"type:varchar(140);not null;uniqueIndex" json:"name"`
	Disabled bool   `gorm:"not null;default:false" json:"disabled"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}
