// Package catalog provides the read-only product catalog. Products are
// static seed data; the rest of the system treats this package as an
// external provider and never mutates what it returns.
package catalog

import "github.com/shopspring/decimal"

// StockStatus is the availability state of a product.
type StockStatus string

const (
	StockAvailable StockStatus = "available"
	StockLow       StockStatus = "low_stock"
	StockOut       StockStatus = "out_of_stock"
	StockSoldOut   StockStatus = "sold_out"
)

// Stock pairs an availability status with the remaining quantity.
// This is the canonical shape; a plain integer stock field is not supported.
type Stock struct {
	Status   StockStatus `json:"status"`
	Quantity int         `json:"quantity"`
}

// Product is a single catalog entry. OriginalPrice is the zero value when
// the product is not marked down; when present it is strictly greater than
// Price.
type Product struct {
	ID               int             `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
	OriginalPrice    decimal.Decimal `json:"originalPrice,omitzero"`
	Category         string          `json:"category"`
	Image            string          `json:"image"`
	Featured         bool            `json:"featured"`
	Rating           float64         `json:"rating"`
	Reviews          int             `json:"reviews"`
	Sizes            []string        `json:"sizes"`
	Colors           []string        `json:"colors"`
	Stock            Stock           `json:"stock"`
	HolyDropIncluded bool            `json:"holyDropIncluded"`
}

// HasMarkdown reports whether the product carries a list price above the
// current price.
func (p Product) HasMarkdown() bool {
	return p.OriginalPrice.GreaterThan(p.Price)
}

// Category is a storefront navigation entry.
type Category struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Count int    `json:"count"`
}
