package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Evolvetech-Johnn/holystreetstore/internal/catalog"
	"github.com/Evolvetech-Johnn/holystreetstore/internal/pkg/cache"
)

type fakeCatalog map[int]catalog.Product

func (f fakeCatalog) GetByID(id int) (catalog.Product, error) {
	p, ok := f[id]
	if !ok {
		return catalog.Product{}, catalog.ErrNotFound
	}
	return p, nil
}

func testCatalog() fakeCatalog {
	return fakeCatalog{
		1: {
			ID:            1,
			Name:          "Camiseta Oversized",
			Image:         "/img/tee.jpg",
			Price:         decimal.RequireFromString("129.90"),
			OriginalPrice: decimal.RequireFromString("159.90"),
		},
		2: {
			ID:    2,
			Name:  "Boné Dad Hat",
			Image: "/img/cap.jpg",
			Price: decimal.RequireFromString("89.90"),
		},
	}
}

func newTestService() (*Service, cache.Cache) {
	mirror := cache.NewMemoryCache("holystreet")
	return NewService(NewMemoryRepository(), testCatalog(), mirror), mirror
}

func TestService_GetCreatesEmptyCart(t *testing.T) {
	svc, _ := newTestService()

	c, err := svc.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, c.Empty())
	assert.Equal(t, 0, c.ItemCount)
	assert.True(t, c.Total.IsZero())
}

func TestService_AddItemCapturesPrices(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	c, err := svc.AddItem(ctx, 1, 1, "M", "Black", 2)
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)

	line := c.Lines[0]
	assert.Equal(t, "Camiseta Oversized", line.ProductName)
	assert.True(t, line.UnitPrice.Equal(decimal.RequireFromString("129.90")))
	assert.True(t, line.OriginalUnitPrice.Equal(decimal.RequireFromString("159.90")))
	assert.True(t, c.Discount.Equal(decimal.RequireFromString("60.00")))
}

func TestService_AddItemUnknownProduct(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AddItem(context.Background(), 1, 99, "", "", 1)
	assert.Error(t, err)

	c, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, c.Empty(), "failed add must not create lines")
}

func TestService_MutationsPersistAcrossLoads(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	added, err := svc.AddItem(ctx, 3, 2, "", "", 1)
	require.NoError(t, err)
	lineID := added.Lines[0].ID

	updated, err := svc.UpdateItem(ctx, 3, lineID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.ItemCount)

	reloaded, err := svc.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, reloaded.ItemCount)
	assert.True(t, reloaded.Total.Equal(decimal.RequireFromString("359.60")))

	count, err := svc.Count(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	removed, err := svc.RemoveItem(ctx, 3, lineID)
	require.NoError(t, err)
	assert.True(t, removed.Empty())
}

func TestService_UpdateUnknownLine(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.UpdateItem(context.Background(), 1, "missing", 2)
	assert.ErrorIs(t, err, ErrLineNotFound)

	_, err = svc.RemoveItem(context.Background(), 1, "missing")
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestService_CartsAreIsolatedPerUser(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, 1, "M", "", 1)
	require.NoError(t, err)

	other, err := svc.Get(ctx, 2)
	require.NoError(t, err)
	assert.True(t, other.Empty())
}

func TestService_MirrorFollowsCartState(t *testing.T) {
	svc, mirror := newTestService()
	ctx := context.Background()
	key := mirror.GenerateKey("cart", "5")

	added, err := svc.AddItem(ctx, 5, 2, "", "", 1)
	require.NoError(t, err)

	stored, err := mirror.Get(ctx, key)
	require.NoError(t, err)
	assert.Contains(t, stored, added.Lines[0].ID, "mirror must hold the serialized cart")

	_, err = svc.Clear(ctx, 5)
	require.NoError(t, err)

	stored, err = mirror.Get(ctx, key)
	require.NoError(t, err)
	assert.Empty(t, stored, "mirror entry is removed once the cart empties")
}

func TestService_NilMirrorIsSafe(t *testing.T) {
	svc := NewService(NewMemoryRepository(), testCatalog(), nil)

	_, err := svc.AddItem(context.Background(), 1, 1, "", "", 1)
	require.NoError(t, err)

	_, err = svc.Clear(context.Background(), 1)
	require.NoError(t, err)
}
