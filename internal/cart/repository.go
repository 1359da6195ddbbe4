package cart

import (
	"context"
	"sync"
)

// Repository is the port for cart storage, keyed by user ID. Implementations
// own the persistence; call sites never see the backing store.
type Repository interface {
	// Get returns the stored cart for the user, or (nil, nil) when the user
	// has no cart yet.
	Get(ctx context.Context, userID int) (*Cart, error)
	Put(ctx context.Context, userID int, c *Cart) error
	Delete(ctx context.Context, userID int) error
}

type memoryRepository struct {
	mu    sync.RWMutex
	carts map[int]*Cart
}

// NewMemoryRepository returns an in-process Repository guarded by a mutex.
// Carts are stored and returned as deep copies.
func NewMemoryRepository() Repository {
	return &memoryRepository{carts: make(map[int]*Cart)}
}

func (r *memoryRepository) Get(ctx context.Context, userID int) (*Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.carts[userID]
	if !ok {
		return nil, nil
	}
	return c.Clone(), nil
}

func (r *memoryRepository) Put(ctx context.Context, userID int, c *Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[userID] = c.Clone()
	return nil
}

func (r *memoryRepository) Delete(ctx context.Context, userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}
