package catalog

import "context"

// ItemRepository provides read access to items and their tax entries
type ItemRepository interface {
	// FindByCode returns the item with its tax entries preloaded, or
	// shared.ErrNotFound
	FindByCode(ctx context.Context, code string) (*Item, error)

	// FindByCodes returns all existing items among the given codes with
	// tax entries preloaded, ordered by code ascending. Unknown codes
	// are simply absent from the result.
	FindByCodes(ctx context.Context, codes []string) ([]Item, error)
}

// BinRepository provides read access to per-warehouse stock records
type BinRepository interface {
	// Find returns the bin for (item, warehouse) or shared.ErrNotFound
	Find(ctx context.Context, itemCode, warehouse string) (*Bin, error)

	// FindByItems returns all bins for the given items. When warehouse
	// is non-empty only that warehouse's bins are returned.
	FindByItems(ctx context.Context, itemCodes []string, warehouse string) ([]Bin, error)

	// FindByItem returns all bins for one item across warehouses
	FindByItem(ctx context.Context, itemCode string) ([]Bin, error)
}

// PriceRepository provides access to price lists and item prices
type PriceRepository interface {
	// PriceListExists reports whether a price list with the given name
	// exists and is enabled
	PriceListExists(ctx context.Context, name string) (bool, error)

	// FindPrices returns generic item prices for the given items on one
	// price list, restricted to selling or buying rows
	FindPrices(ctx context.Context, itemCodes []string, priceList string, selling bool) ([]ItemPrice, error)

	// FindCustomerPrices returns selling prices scoped to one customer
	// for the given items on one price list
	FindCustomerPrices(ctx context.Context, itemCodes []string, priceList, customer string) ([]ItemPrice, error)

	// FindPrice returns the generic price row for (item, priceList,
	// selling) or shared.ErrNotFound
	FindPrice(ctx context.Context, itemCode, priceList string, selling bool) (*ItemPrice, error)

	// Save creates or updates an item price row
	Save(ctx context.Context, price *ItemPrice) error
}

// WarehouseRepository validates warehouse references
type WarehouseRepository interface {
	Exists(ctx context.Context, name string) (bool, error)
}

// TaxTemplateRepository provides read access to tax templates
type TaxTemplateRepository interface {
	// FindByName returns the template with lines preloaded, or
	// shared.ErrNotFound
	FindByName(ctx context.Context, name string) (*TaxTemplate, error)

	// FindByNames returns all existing templates among the given names
	// with lines preloaded
	FindByNames(ctx context.Context, names []string) ([]TaxTemplate, error)
}
