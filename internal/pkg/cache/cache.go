// Package cache is a small key-value cache port with Redis and in-memory
// implementations. The cart service uses it to mirror serialized carts.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is the port the rest of the code depends on, so the Redis client
// never leaks into domain packages.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
	GenerateKey(operation, key string) string
}

func generateKey(serviceName, operation, key string) string {
	return fmt.Sprintf("%s:%s:%s", serviceName, operation, key)
}
