// Package cart implements the shopping cart: line reconciliation by
// (product, size, color) identity, aggregate totals, and the per-user cart
// service backed by an injected repository.
package cart

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrLineNotFound is returned when a line ID does not exist in the cart.
var ErrLineNotFound = errors.New("cart: line not found")

// Snapshot captures the product fields a cart line keeps for display,
// independent of later catalog changes. Prices are captured at add time.
type Snapshot struct {
	ProductID         int
	Name              string
	Image             string
	UnitPrice         decimal.Decimal
	OriginalUnitPrice decimal.Decimal
}

// Line is one distinct (product, size, color) entry with its own quantity.
type Line struct {
	ID                string          `json:"id"`
	ProductID         int             `json:"productId"`
	ProductName       string          `json:"productName"`
	Image             string          `json:"image"`
	Size              string          `json:"size,omitempty"`
	Color             string          `json:"color,omitempty"`
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	OriginalUnitPrice decimal.Decimal `json:"originalUnitPrice,omitzero"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	AddedAt           time.Time       `json:"addedAt"`
}

type identity struct {
	productID   int
	size, color string
}

func (l Line) key() identity {
	return identity{productID: l.ProductID, size: l.Size, color: l.Color}
}

// lineSubtotal is the current price times quantity.
func (l Line) lineSubtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is one user's cart. Lines keep insertion order; the aggregate fields
// are recomputed from Lines inside every mutation so they are never stale.
type Cart struct {
	Lines     []Line          `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

// New returns an empty cart with zeroed totals.
func New() *Cart {
	c := &Cart{Lines: []Line{}}
	c.recompute()
	return c
}

// Add merges qty into an existing line with the same (product, size, color)
// identity, or appends a new line capturing the snapshot prices. Quantity
// bounds are the caller's responsibility; Add assumes validated input.
// Merging never reorders lines.
func (c *Cart) Add(snap Snapshot, size, color string, qty int) Line {
	defer c.recompute()

	key := identity{productID: snap.ProductID, size: size, color: color}
	for i := range c.Lines {
		if c.Lines[i].key() == key {
			c.Lines[i].Quantity += qty
			return c.Lines[i]
		}
	}

	line := Line{
		ID:                uuid.NewString(),
		ProductID:         snap.ProductID,
		ProductName:       snap.Name,
		Image:             snap.Image,
		Size:              size,
		Color:             color,
		Quantity:          qty,
		UnitPrice:         snap.UnitPrice,
		OriginalUnitPrice: snap.OriginalUnitPrice,
		AddedAt:           time.Now().UTC(),
	}
	c.Lines = append(c.Lines, line)
	return line
}

// UpdateQuantity overwrites the quantity of the line with the given ID.
// A value of zero or less removes the line instead. The line keeps its
// position in the cart.
func (c *Cart) UpdateQuantity(lineID string, qty int) error {
	for i := range c.Lines {
		if c.Lines[i].ID != lineID {
			continue
		}
		if qty <= 0 {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		} else {
			c.Lines[i].Quantity = qty
		}
		c.recompute()
		return nil
	}
	return ErrLineNotFound
}

// Remove deletes the line with the given ID.
func (c *Cart) Remove(lineID string) error {
	return c.UpdateQuantity(lineID, 0)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = c.Lines[:0]
	c.recompute()
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.Lines) == 0
}

// Clone returns a deep copy, so stored carts never alias live ones.
func (c *Cart) Clone() *Cart {
	out := *c
	out.Lines = make([]Line, len(c.Lines))
	copy(out.Lines, c.Lines)
	return &out
}

func (c *Cart) recompute() {
	t := Compute(c.Lines)
	c.Subtotal = t.Subtotal
	c.Discount = t.Discount
	c.Total = t.Total
	c.ItemCount = t.ItemCount
	for i := range c.Lines {
		c.Lines[i].Subtotal = c.Lines[i].lineSubtotal()
	}
}
