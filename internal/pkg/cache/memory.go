package cache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type memoryCache struct {
	mu          sync.RWMutex
	entries     map[string]string
	serviceName string
}

// NewMemoryCache returns an in-process Cache. TTLs are ignored; entries live
// until deleted. Intended for tests and for running without Redis.
func NewMemoryCache(serviceName string) Cache {
	return &memoryCache{
		entries:     make(map[string]string),
		serviceName: serviceName,
	}
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		m.entries[key] = string(v)
	case string:
		m.entries[key] = v
	default:
		m.entries[key] = fmt.Sprint(v)
	}
	return nil
}

func (m *memoryCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entries[key], nil
}

func (m *memoryCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *memoryCache) GenerateKey(operation, key string) string {
	return generateKey(m.serviceName, operation, key)
}
