package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/Evolvetech-Johnn/holystreetstore/internal/catalog"
	"github.com/Evolvetech-Johnn/holystreetstore/internal/pkg/cache"
)

// ProductFinder is the slice of the catalog the cart needs: price and
// snapshot fields at add time.
type ProductFinder interface {
	GetByID(id int) (catalog.Product, error)
}

// Service owns all per-user carts. Mutations are serialized by an internal
// mutex so concurrent requests for the same user cannot lose updates.
//
// The optional mirror keeps a serialized copy of each cart under a fixed
// namespace key, deleted when the cart empties. Mirror failures are logged
// and never fail the request; the repository is the source of truth.
type Service struct {
	mu       sync.Mutex
	repo     Repository
	products ProductFinder
	mirror   cache.Cache // nil-safe: mirroring skipped if nil
}

// NewService wires the cart service. mirror may be nil.
func NewService(repo Repository, products ProductFinder, mirror cache.Cache) *Service {
	return &Service{repo: repo, products: products, mirror: mirror}
}

// Get returns the user's cart, creating an empty one on first access.
func (s *Service) Get(ctx context.Context, userID int) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, userID)
}

// Count returns the user's current item count without exposing the lines.
func (s *Service) Count(ctx context.Context, userID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(ctx, userID)
	if err != nil {
		return 0, err
	}
	return c.ItemCount, nil
}

// AddItem resolves the product, captures its prices, and merges the quantity
// into the user's cart. Quantity bounds are validated at the HTTP boundary.
func (s *Service) AddItem(ctx context.Context, userID, productID int, size, color string, qty int) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, err := s.products.GetByID(productID)
	if err != nil {
		return nil, err
	}

	c, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	snap := Snapshot{
		ProductID: product.ID,
		Name:      product.Name,
		Image:     product.Image,
		UnitPrice: product.Price,
	}
	if product.HasMarkdown() {
		snap.OriginalUnitPrice = product.OriginalPrice
	}
	c.Add(snap, size, color, qty)

	return c, s.save(ctx, userID, c)
}

// UpdateItem overwrites a line's quantity; zero or less removes the line.
func (s *Service) UpdateItem(ctx context.Context, userID int, lineID string, qty int) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := c.UpdateQuantity(lineID, qty); err != nil {
		return nil, err
	}
	return c, s.save(ctx, userID, c)
}

// RemoveItem deletes a line from the user's cart.
func (s *Service) RemoveItem(ctx context.Context, userID int, lineID string) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := c.Remove(lineID); err != nil {
		return nil, err
	}
	return c, s.save(ctx, userID, c)
}

// Clear empties the user's cart.
func (s *Service) Clear(ctx context.Context, userID int) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := New()
	return c, s.save(ctx, userID, c)
}

func (s *Service) load(ctx context.Context, userID int) (*Cart, error) {
	c, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("cart: load for user %d: %w", userID, err)
	}
	if c == nil {
		c = New()
	}
	return c, nil
}

func (s *Service) save(ctx context.Context, userID int, c *Cart) error {
	if err := s.repo.Put(ctx, userID, c); err != nil {
		return fmt.Errorf("cart: save for user %d: %w", userID, err)
	}
	s.mirrorCart(ctx, userID, c)
	return nil
}

// mirrorCart writes the serialized cart to the cache, or deletes the entry
// when the cart is empty.
func (s *Service) mirrorCart(ctx context.Context, userID int, c *Cart) {
	if s.mirror == nil {
		return
	}

	key := s.mirror.GenerateKey("cart", strconv.Itoa(userID))
	if c.Empty() {
		if err := s.mirror.Delete(ctx, key); err != nil {
			slog.WarnContext(ctx, "cart mirror delete failed", "user_id", userID, "error", err)
		}
		return
	}

	payload, err := json.Marshal(c)
	if err != nil {
		slog.WarnContext(ctx, "cart mirror marshal failed", "user_id", userID, "error", err)
		return
	}
	if err := s.mirror.Set(ctx, key, payload, 0); err != nil {
		slog.WarnContext(ctx, "cart mirror set failed", "user_id", userID, "error", err)
	}
}
