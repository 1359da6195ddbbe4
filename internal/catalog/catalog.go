package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a product ID does not exist in the catalog.
var ErrNotFound = errors.New("catalog: product not found")

// Sort orders accepted by Filter.SortBy.
const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortRating    = "rating"
	SortNewest    = "newest"
)

// Filter narrows and orders a product listing. Zero values mean "no
// constraint"; MinPrice/MaxPrice are pointers so an explicit zero bound is
// distinguishable from absence.
type Filter struct {
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Search   string
	SortBy   string
	Limit    int
}

// PriceRange is the min/max price across the whole catalog, returned
// alongside listings so the UI can render filter sliders.
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// Provider serves the static catalog. It is safe for concurrent use: the
// seed data is never mutated and every listing is a fresh slice.
type Provider struct {
	products   []Product
	categories []Category
}

// NewProvider returns a Provider backed by the built-in seed data.
func NewProvider() *Provider {
	return &Provider{products: seedProducts, categories: seedCategories}
}

// List returns the products matching the filter, ordered per SortBy.
func (p *Provider) List(f Filter) []Product {
	out := make([]Product, 0, len(p.products))
	for _, prod := range p.products {
		if f.Category != "" && !strings.EqualFold(prod.Category, f.Category) {
			continue
		}
		if f.MinPrice != nil && prod.Price.LessThan(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && prod.Price.GreaterThan(*f.MaxPrice) {
			continue
		}
		if f.Search != "" {
			term := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(prod.Name), term) &&
				!strings.Contains(strings.ToLower(prod.Description), term) {
				continue
			}
		}
		out = append(out, prod)
	}

	switch f.SortBy {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.GreaterThan(out[j].Price) })
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	case SortNewest:
		// Highest ID first, as a proxy for most recently added.
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	}

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

// GetByID returns the product with the given ID.
func (p *Provider) GetByID(id int) (Product, error) {
	for _, prod := range p.products {
		if prod.ID == id {
			return prod, nil
		}
	}
	return Product{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// Featured returns up to 8 highlighted products: explicitly flagged ones
// plus anything rated 4.9 or above.
func (p *Provider) Featured() []Product {
	out := make([]Product, 0, 8)
	for _, prod := range p.products {
		if prod.Featured || prod.Rating >= 4.9 {
			out = append(out, prod)
			if len(out) == 8 {
				break
			}
		}
	}
	return out
}

// Categories returns the storefront navigation categories.
func (p *Provider) Categories() []Category {
	return p.categories
}

// PriceRange returns the lowest and highest current price in the catalog.
func (p *Provider) PriceRange() PriceRange {
	if len(p.products) == 0 {
		return PriceRange{}
	}
	r := PriceRange{Min: p.products[0].Price, Max: p.products[0].Price}
	for _, prod := range p.products[1:] {
		if prod.Price.LessThan(r.Min) {
			r.Min = prod.Price
		}
		if prod.Price.GreaterThan(r.Max) {
			r.Max = prod.Price
		}
	}
	return r
}
