package order

import (
	"context"
	"sync"
)

// Repository is the port for order storage. Orders are never deleted;
// cancellation is a status transition, not removal.
type Repository interface {
	// Get returns the order by ID, or (nil, nil) when it does not exist.
	Get(ctx context.Context, id int) (*Order, error)
	// GetByNumber returns the order with the given human-facing number, or
	// (nil, nil) when it does not exist.
	GetByNumber(ctx context.Context, orderNumber string) (*Order, error)
	// ListByUser returns all of a user's orders in unspecified order.
	ListByUser(ctx context.Context, userID int) ([]*Order, error)
	Put(ctx context.Context, o *Order) error
}

type memoryRepository struct {
	mu     sync.RWMutex
	orders map[int]*Order
}

// NewMemoryRepository returns an in-process Repository guarded by a mutex.
// Orders are stored and returned as deep copies.
func NewMemoryRepository() Repository {
	return &memoryRepository{orders: make(map[int]*Order)}
}

func (r *memoryRepository) Get(ctx context.Context, id int) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return o.Clone(), nil
}

func (r *memoryRepository) GetByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.OrderNumber == orderNumber {
			return o.Clone(), nil
		}
	}
	return nil, nil
}

func (r *memoryRepository) ListByUser(ctx context.Context, userID int) ([]*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Order, 0)
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o.Clone())
		}
	}
	return out, nil
}

func (r *memoryRepository) Put(ctx context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = o.Clone()
	return nil
}
