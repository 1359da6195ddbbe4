package orderlog

import "context"

// Repository is the port for persisting transition entries. The order
// service depends on this abstraction, not on SQLite directly, so the
// implementation can be swapped for Postgres, in-memory (tests), etc.
type Repository interface {
	// Save appends a new log entry. The table is append-only; entries are
	// never updated or deleted.
	Save(ctx context.Context, entry *Entry) error

	// History returns all entries for an order, oldest first.
	History(ctx context.Context, orderID int) ([]Entry, error)
}
