// Package sqlite provides a SQLite-backed implementation of
// orderlog.Repository.
//
// WAL mode is enabled on Open so that readers never block writers and vice
// versa — the settlement goroutine writes while HTTP handlers may be reading
// an order's history.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Evolvetech-Johnn/holystreetstore/internal/orderlog"

	// Register the pure-Go SQLite driver. No CGO, so the binary stays easy
	// to build and run in minimal containers.
	_ "modernc.org/sqlite"
)

// schema is the DDL executed once on startup.
// The table is append-only: each row is an immutable event in the order's
// lifecycle.
const schema = `
CREATE TABLE IF NOT EXISTS order_transitions (
    -- Surrogate primary key — auto-incremented by SQLite.
    id              INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Numeric order identifier. Not UNIQUE: one row per transition.
    order_id        INTEGER     NOT NULL,

    -- Human-facing order number, duplicated for log-only queries.
    order_number    TEXT        NOT NULL,

    -- Order status after the transition.
    status          TEXT        NOT NULL,

    -- Payment status after the transition.
    payment_status  TEXT        NOT NULL,

    -- Tracking code, empty until the order is confirmed.
    tracking_code   TEXT        NOT NULL DEFAULT '',

    -- Free-form annotation ("settlement", "user cancel", ...).
    note            TEXT        NOT NULL DEFAULT '',

    -- Wall-clock timestamp (RFC3339 stored as TEXT, SQLite idiom).
    occurred_at     TEXT        NOT NULL
);

-- Index for the common query: "give me all transitions for order X in order".
CREATE INDEX IF NOT EXISTS idx_order_transitions_order_id
    ON order_transitions(order_id, occurred_at);
`

// Repository is the SQLite implementation of orderlog.Repository.
type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at the given path and applies
// the schema. WAL mode is enabled for better concurrent read/write
// performance.
//
//	repo, err := sqlite.Open("./data/orders.db")
func Open(path string) (*Repository, error) {
	// The pure-Go driver uses _pragma query parameters to configure
	// connection state. busy_timeout waits for locks instead of failing
	// immediately.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if err := applySchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repository{db: db}, nil
}

// Close releases the database connection. Call it with defer in main().
func (r *Repository) Close() error {
	return r.db.Close()
}

// Save inserts a new transition entry. Safe to call concurrently.
func (r *Repository) Save(ctx context.Context, entry *orderlog.Entry) error {
	const q = `
		INSERT INTO order_transitions
			(order_id, order_number, status, payment_status, tracking_code, note, occurred_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.OrderID,
		entry.OrderNumber,
		entry.Status,
		entry.PaymentStatus,
		entry.TrackingCode,
		entry.Note,
		entry.OccurredAt.UTC().Format("2006-01-02T15:04:05.999999999Z"),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save transition for order %d: %w", entry.OrderID, err)
	}
	return nil
}

// History returns every transition for the order, oldest first.
func (r *Repository) History(ctx context.Context, orderID int) ([]orderlog.Entry, error) {
	const q = `
		SELECT order_id, order_number, status, payment_status, tracking_code, note, occurred_at
		FROM   order_transitions
		WHERE  order_id = ?
		ORDER  BY occurred_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, q, orderID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: history for order %d: %w", orderID, err)
	}
	defer rows.Close()

	var out []orderlog.Entry
	for rows.Next() {
		var entry orderlog.Entry
		var occurredAt string
		if err := rows.Scan(
			&entry.OrderID,
			&entry.OrderNumber,
			&entry.Status,
			&entry.PaymentStatus,
			&entry.TrackingCode,
			&entry.Note,
			&occurredAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scan transition for order %d: %w", orderID, err)
		}
		entry.OccurredAt, err = parseRFC3339(occurredAt)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

// applySchema runs the DDL statements once. Idempotent due to IF NOT EXISTS.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return nil
}
