package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snap(productID int, price string) Snapshot {
	return Snapshot{
		ProductID: productID,
		Name:      "Produto Teste",
		Image:     "/img/test.jpg",
		UnitPrice: decimal.RequireFromString(price),
	}
}

func markedSnap(productID int, price, original string) Snapshot {
	s := snap(productID, price)
	s.OriginalUnitPrice = decimal.RequireFromString(original)
	return s
}

// assertConsistent recomputes totals independently and checks the cart's
// stored aggregates against them.
func assertConsistent(t *testing.T, c *Cart) {
	t.Helper()

	count := 0
	total := decimal.Zero
	for _, l := range c.Lines {
		count += l.Quantity
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	assert.Equal(t, count, c.ItemCount, "itemCount must equal sum of quantities")
	assert.True(t, total.Equal(c.Total), "total must equal sum of unitPrice×qty")
	assert.True(t, c.Discount.Equal(c.Subtotal.Sub(c.Total)), "discount must equal subtotal−total")
	assert.False(t, c.Discount.IsNegative(), "discount is never negative")
}

func TestAdd_MergesByIdentity(t *testing.T) {
	c := New()

	c.Add(snap(1, "100"), "M", "Black", 2)
	c.Add(snap(1, "100"), "M", "Black", 1)

	require.Len(t, c.Lines, 1, "same identity must merge, not duplicate")
	assert.Equal(t, 3, c.Lines[0].Quantity)
	assert.Equal(t, 3, c.ItemCount)
	assert.True(t, c.Total.Equal(decimal.NewFromInt(300)))
	assertConsistent(t, c)
}

func TestAdd_DifferentIdentityAppends(t *testing.T) {
	c := New()

	c.Add(snap(1, "100"), "M", "Black", 1)
	c.Add(snap(1, "100"), "G", "Black", 1)
	c.Add(snap(1, "100"), "M", "White", 1)
	c.Add(snap(2, "100"), "M", "Black", 1)

	assert.Len(t, c.Lines, 4, "each (product, size, color) identity gets its own line")
	assertConsistent(t, c)
}

func TestAdd_KeepsInsertionOrder(t *testing.T) {
	c := New()

	first := c.Add(snap(1, "50"), "P", "", 1)
	second := c.Add(snap(2, "60"), "M", "", 1)
	third := c.Add(snap(3, "70"), "G", "", 1)

	// Touching the middle line must not reorder anything.
	require.NoError(t, c.UpdateQuantity(second.ID, 5))
	c.Add(snap(1, "50"), "P", "", 2)

	require.Len(t, c.Lines, 3)
	assert.Equal(t, first.ID, c.Lines[0].ID)
	assert.Equal(t, second.ID, c.Lines[1].ID)
	assert.Equal(t, third.ID, c.Lines[2].ID)
	assertConsistent(t, c)
}

func TestUpdateQuantity(t *testing.T) {
	c := New()
	line := c.Add(snap(1, "100"), "", "", 2)

	require.NoError(t, c.UpdateQuantity(line.ID, 1))
	assert.Equal(t, 1, c.ItemCount)
	assert.True(t, c.Total.Equal(decimal.NewFromInt(100)))
	assertConsistent(t, c)
}

func TestUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	tests := []struct {
		name string
		qty  int
	}{
		{"zero", 0},
		{"negative", -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			line := c.Add(snap(1, "100"), "", "", 2)

			require.NoError(t, c.UpdateQuantity(line.ID, tt.qty))
			assert.True(t, c.Empty())
			assert.Equal(t, 0, c.ItemCount)
			assert.True(t, c.Total.IsZero())
		})
	}
}

func TestUpdateQuantity_UnknownLine(t *testing.T) {
	c := New()
	c.Add(snap(1, "100"), "", "", 1)

	err := c.UpdateQuantity("no-such-line", 2)
	assert.ErrorIs(t, err, ErrLineNotFound)
	assert.Equal(t, 1, c.ItemCount, "failed update must leave the cart untouched")
}

func TestRemove(t *testing.T) {
	c := New()
	keep := c.Add(snap(1, "100"), "M", "", 1)
	drop := c.Add(snap(2, "200"), "G", "", 1)

	require.NoError(t, c.Remove(drop.ID))
	require.Len(t, c.Lines, 1)
	assert.Equal(t, keep.ID, c.Lines[0].ID)

	assert.ErrorIs(t, c.Remove(drop.ID), ErrLineNotFound)
}

func TestClear(t *testing.T) {
	c := New()
	c.Add(snap(1, "100"), "", "", 3)

	c.Clear()
	assert.True(t, c.Empty())
	assert.Equal(t, 0, c.ItemCount)
	assert.True(t, c.Total.IsZero())
	assert.True(t, c.Subtotal.IsZero())
	assert.True(t, c.Discount.IsZero())
}

// Scenario from the storefront checkout flow: add, merge, shrink, remove.
func TestCartLifecycleScenario(t *testing.T) {
	c := New()
	assert.True(t, c.Total.IsZero())
	assert.Equal(t, 0, c.ItemCount)

	line := c.Add(snap(1, "100"), "M", "Black", 2)
	assert.Equal(t, 2, c.ItemCount)
	assert.True(t, c.Total.Equal(decimal.NewFromInt(200)))

	c.Add(snap(1, "100"), "M", "Black", 1)
	assert.Equal(t, 3, c.ItemCount)
	assert.True(t, c.Total.Equal(decimal.NewFromInt(300)))

	require.NoError(t, c.UpdateQuantity(line.ID, 1))
	assert.Equal(t, 1, c.ItemCount)
	assert.True(t, c.Total.Equal(decimal.NewFromInt(100)))

	require.NoError(t, c.Remove(line.ID))
	assert.True(t, c.Empty())
	assert.True(t, c.Total.IsZero())
	assertConsistent(t, c)
}

func TestLineSubtotal(t *testing.T) {
	c := New()
	c.Add(snap(1, "129.90"), "", "", 3)

	assert.True(t, c.Lines[0].Subtotal.Equal(decimal.RequireFromString("389.70")))
}
